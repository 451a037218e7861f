package model

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// Default tensor names produced by skl2onnx for a fitted classifier.
const (
	DefaultInputName  = "float_input"
	DefaultOutputName = "label"
)

type loadOptions struct {
	inputName   string
	outputName  string
	libraryPath string
}

// Option tunes how an artifact is loaded.
type Option func(*loadOptions)

// WithTensorNames overrides the ONNX input and label output names. Empty values keep the defaults.
func WithTensorNames(input, output string) Option {
	return func(o *loadOptions) {
		if input != "" {
			o.inputName = input
		}
		if output != "" {
			o.outputName = output
		}
	}
}

// WithONNXLibrary sets the onnxruntime shared library location.
func WithONNXLibrary(path string) Option {
	return func(o *loadOptions) { o.libraryPath = path }
}

// Load opens the artifact at path. The format is chosen by extension:
// ".onnx" runs through onnxruntime, ".json" is a forest exported from scikit-learn.
func Load(path string, opts ...Option) (Predictor, error) {
	o := loadOptions{inputName: DefaultInputName, outputName: DefaultOutputName}
	for _, opt := range opts {
		opt(&o)
	}

	if err := checkArtifact(path); err != nil {
		return nil, err
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".onnx":
		p, err := newONNXPredictor(path, o)
		if err != nil {
			return nil, err
		}
		return p, nil
	case ".json":
		p, err := loadForest(path)
		if err != nil {
			return nil, err
		}
		return p, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, path)
	}
}

// checkArtifact verifies the file exists, is a regular file and is non-empty.
func checkArtifact(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("%w: %s", ErrArtifactMissing, path)
		}
		return fmt.Errorf("stat model artifact %q: %w", path, err)
	}
	if info.IsDir() {
		return fmt.Errorf("%w: %s is a directory", ErrInvalidArtifact, path)
	}
	if info.Size() == 0 {
		return fmt.Errorf("%w: %s", ErrArtifactEmpty, path)
	}
	return nil
}
