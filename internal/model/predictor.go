// Package model loads the pre-fitted maturity classifier and exposes it
// as a Predictor. Training is out of scope: artifacts are consumed as-is.
package model

import (
	"context"
	"errors"

	"maize_maturity/internal/models"
)

// Predictor is a loaded classifier. Predict returns the raw class code for one feature vector.
// Implementations are safe for concurrent use.
type Predictor interface {
	Predict(ctx context.Context, f models.Features) (float64, error)
	Close() error
}

var (
	ErrArtifactMissing   = errors.New("model artifact not found")
	ErrArtifactEmpty     = errors.New("model artifact is empty")
	ErrUnsupportedFormat = errors.New("unsupported model artifact format")
	ErrInvalidArtifact   = errors.New("invalid model artifact")
)
