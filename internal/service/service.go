package service

import (
	"context"

	"maize_maturity"
	"maize_maturity/internal/logger"
	"maize_maturity/internal/model"
	"maize_maturity/internal/models"
	"maize_maturity/internal/repository"
)

// Prediction validates untrusted input and runs the classifier once per call.
type Prediction interface {
	Ready() bool
	Predict(ctx context.Context, data map[string]any) (models.PredictionResult, error)
}

// Monitoring reports whether the service can serve predictions.
type Monitoring interface {
	Status(ctx context.Context) maize_maturity.HealthResponse
}

// EventLog exposes the recorded /predict outcomes with filtering.
type EventLog interface {
	List(ctx context.Context, f LogFilter) ([]models.PredictionEvent, error)
}

// Service aggregates the sub-services used by the HTTP layer.
type Service struct {
	Prediction
	Monitoring
	EventLog
}

// NewService wires the services around a loaded predictor. A nil predictor
// puts the whole service in the degraded state: /predict answers 503.
func NewService(predictor model.Predictor, repos *repository.Repository, log *logger.Logger) *Service {
	return &Service{
		Prediction: NewPredictionService(predictor, repos.EventRepo, log),
		Monitoring: NewMonitoringService(predictor != nil),
		EventLog:   NewEventLogService(repos.EventRepo),
	}
}
