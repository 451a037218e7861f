package model

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"maize_maturity/internal/models"
)

// leafNode marks a node without children, as in scikit-learn's tree arrays.
const leafNode = -1

// forestArtifact is the JSON export of a fitted scikit-learn RandomForestClassifier:
// the estimator's classes_ and, per tree, the arrays found on tree_.
type forestArtifact struct {
	Classes   []float64      `json:"classes"`
	NFeatures int            `json:"n_features"`
	Trees     []treeArtifact `json:"trees"`
}

type treeArtifact struct {
	ChildrenLeft  []int       `json:"children_left"`
	ChildrenRight []int       `json:"children_right"`
	Feature       []int       `json:"feature"`
	Threshold     []float64   `json:"threshold"`
	Value         [][]float64 `json:"value"` // per node class weights, len(classes) each
}

// ForestPredictor evaluates the forest natively. It is read-only after load.
type ForestPredictor struct {
	classes []float64
	trees   []treeArtifact
}

func loadForest(path string) (*ForestPredictor, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read forest artifact: %w", err)
	}
	var fa forestArtifact
	if err := json.Unmarshal(raw, &fa); err != nil {
		return nil, fmt.Errorf("%w: decode forest: %v", ErrInvalidArtifact, err)
	}
	if err := fa.validate(); err != nil {
		return nil, err
	}
	return &ForestPredictor{classes: fa.Classes, trees: fa.Trees}, nil
}

func (fa forestArtifact) validate() error {
	if len(fa.Classes) == 0 {
		return fmt.Errorf("%w: no classes", ErrInvalidArtifact)
	}
	if fa.NFeatures != models.FeatureCount {
		return fmt.Errorf("%w: expected %d features, got %d", ErrInvalidArtifact, models.FeatureCount, fa.NFeatures)
	}
	if len(fa.Trees) == 0 {
		return fmt.Errorf("%w: no trees", ErrInvalidArtifact)
	}
	for i, t := range fa.Trees {
		if err := t.validate(len(fa.Classes), fa.NFeatures); err != nil {
			return fmt.Errorf("%w: tree %d: %v", ErrInvalidArtifact, i, err)
		}
	}
	return nil
}

// validate checks array shapes and that every child index points forward,
// which rules out cycles during traversal.
func (t treeArtifact) validate(nClasses, nFeatures int) error {
	n := len(t.ChildrenLeft)
	if n == 0 {
		return fmt.Errorf("no nodes")
	}
	if len(t.ChildrenRight) != n || len(t.Feature) != n || len(t.Threshold) != n || len(t.Value) != n {
		return fmt.Errorf("node arrays differ in length")
	}
	for i := 0; i < n; i++ {
		left, right := t.ChildrenLeft[i], t.ChildrenRight[i]
		if left == leafNode || right == leafNode {
			if left != right {
				return fmt.Errorf("node %d has a single child", i)
			}
			if len(t.Value[i]) != nClasses {
				return fmt.Errorf("leaf %d has %d class weights, want %d", i, len(t.Value[i]), nClasses)
			}
			continue
		}
		if left <= i || left >= n || right <= i || right >= n {
			return fmt.Errorf("node %d has out of range children", i)
		}
		if f := t.Feature[i]; f < 0 || f >= nFeatures {
			return fmt.Errorf("node %d splits on unknown feature %d", i, f)
		}
	}
	return nil
}

// Predict averages per-tree class probabilities and returns the class with the
// highest mean, ties going to the lower index.
func (p *ForestPredictor) Predict(ctx context.Context, f models.Features) (float64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	// scikit-learn casts inputs to float32 before walking the trees.
	var x models.Features
	for i, v := range f {
		x[i] = float64(float32(v))
	}

	proba := make([]float64, len(p.classes))
	for i := range p.trees {
		leaf := p.trees[i].leafFor(x)
		var total float64
		for _, w := range leaf {
			total += w
		}
		if total == 0 {
			continue
		}
		for c, w := range leaf {
			proba[c] += w / total
		}
	}

	best := 0
	for c := 1; c < len(proba); c++ {
		if proba[c] > proba[best] {
			best = c
		}
	}
	return p.classes[best], nil
}

func (t *treeArtifact) leafFor(x models.Features) []float64 {
	node := 0
	for t.ChildrenLeft[node] != leafNode {
		if x[t.Feature[node]] <= t.Threshold[node] {
			node = t.ChildrenLeft[node]
		} else {
			node = t.ChildrenRight[node]
		}
	}
	return t.Value[node]
}

// Close is a no-op; the forest holds no external resources.
func (p *ForestPredictor) Close() error { return nil }
