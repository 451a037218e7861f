package service

import (
	"context"
	"errors"
	"fmt"

	"maize_maturity/internal/logger"
	"maize_maturity/internal/model"
	"maize_maturity/internal/models"
	"maize_maturity/internal/repository"
)

var (
	ErrModelUnavailable = errors.New("model not loaded - service unavailable")
	ErrNoData           = errors.New("no data provided")
	ErrPredictionFailed = errors.New("prediction failed")
)

type PredictionService struct {
	predictor model.Predictor
	eventRepo repository.EventRepo
	log       *logger.Logger
}

func NewPredictionService(predictor model.Predictor, eventRepo repository.EventRepo, log *logger.Logger) *PredictionService {
	if log == nil {
		log = logger.Nop()
	}
	return &PredictionService{predictor: predictor, eventRepo: eventRepo, log: log}
}

// Ready reports whether a classifier was loaded at startup.
func (s *PredictionService) Ready() bool {
	return s.predictor != nil
}

// Predict runs one request through availability, body, validation and
// inference checks, in that order. A nil data map means the body was
// absent or not a JSON object.
func (s *PredictionService) Predict(ctx context.Context, data map[string]any) (models.PredictionResult, error) {
	if !s.Ready() {
		s.record(ctx, models.EventUnavailable, ErrModelUnavailable.Error(), nil)
		return models.PredictionResult{}, ErrModelUnavailable
	}
	if data == nil {
		s.record(ctx, models.EventRejected, ErrNoData.Error(), nil)
		return models.PredictionResult{}, ErrNoData
	}

	features, err := ValidateInput(data)
	if err != nil {
		s.record(ctx, models.EventRejected, err.Error(), data)
		return models.PredictionResult{}, err
	}

	raw, err := s.invoke(ctx, features)
	if err != nil {
		s.log.Errorw("prediction_failed", "err", err, "features", features)
		s.record(ctx, models.EventError, err.Error(), data)
		return models.PredictionResult{}, err
	}

	res := models.PredictionResult{Label: models.LabelFor(raw), Raw: raw}
	s.record(ctx, models.EventPrediction, string(res.Label), data)
	return res, nil
}

// invoke calls the classifier exactly once and turns errors and panics into ErrPredictionFailed.
func (s *PredictionService) invoke(ctx context.Context, f models.Features) (raw float64, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: panic: %v", ErrPredictionFailed, r)
		}
	}()
	raw, err = s.predictor.Predict(ctx, f)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrPredictionFailed, err)
	}
	return raw, nil
}

// record appends to the event log. Failures are logged and never reach the caller.
func (s *PredictionService) record(ctx context.Context, typ, desc string, data map[string]any) {
	if s.eventRepo == nil {
		return
	}
	ev := models.PredictionEvent{Type: typ, Description: desc}
	if data != nil {
		ev.Metadata = data
	}
	if err := s.eventRepo.Append(context.WithoutCancel(ctx), ev); err != nil {
		s.log.Warnw("event_log_append_failed", "err", err, "type", typ)
	}
}
