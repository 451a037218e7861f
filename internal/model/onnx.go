package model

import (
	"context"
	"fmt"
	"sync"

	"maize_maturity/internal/models"

	ort "github.com/yalue/onnxruntime_go"
)

var (
	envOnce sync.Once
	envErr  error
)

// initEnvironment initializes the onnxruntime environment once per process.
func initEnvironment(libraryPath string) error {
	envOnce.Do(func() {
		if libraryPath != "" {
			ort.SetSharedLibraryPath(libraryPath)
		}
		if err := ort.InitializeEnvironment(); err != nil {
			envErr = fmt.Errorf("failed to initialize ONNX environment: %w", err)
		}
	})
	return envErr
}

// ONNXPredictor runs a classifier exported to ONNX. Tensors are allocated per call,
// so one session serves concurrent requests.
type ONNXPredictor struct {
	session *ort.DynamicAdvancedSession
}

func newONNXPredictor(path string, o loadOptions) (*ONNXPredictor, error) {
	if err := initEnvironment(o.libraryPath); err != nil {
		return nil, err
	}
	session, err := ort.NewDynamicAdvancedSession(path,
		[]string{o.inputName}, []string{o.outputName}, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create ONNX session: %w", err)
	}
	return &ONNXPredictor{session: session}, nil
}

// Predict feeds a [1,5] float tensor and reads the int64 label output.
func (p *ONNXPredictor) Predict(ctx context.Context, f models.Features) (float64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	input, err := ort.NewTensor(ort.NewShape(1, models.FeatureCount), f.Float32())
	if err != nil {
		return 0, fmt.Errorf("failed to create input tensor: %w", err)
	}
	defer input.Destroy()

	output, err := ort.NewEmptyTensor[int64](ort.NewShape(1))
	if err != nil {
		return 0, fmt.Errorf("failed to create output tensor: %w", err)
	}
	defer output.Destroy()

	if err := p.session.Run([]ort.ArbitraryTensor{input}, []ort.ArbitraryTensor{output}); err != nil {
		return 0, fmt.Errorf("inference failed: %w", err)
	}

	labels := output.GetData()
	if len(labels) == 0 {
		return 0, fmt.Errorf("inference failed: empty label output")
	}
	return float64(labels[0]), nil
}

// Close releases the session. The process-wide environment stays initialized.
func (p *ONNXPredictor) Close() error {
	if p.session == nil {
		return nil
	}
	return p.session.Destroy()
}
