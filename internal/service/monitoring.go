package service

import (
	"context"
	"time"

	"maize_maturity"
)

// Version is reported by /health.
const Version = "1.0.0"

type MonitoringService struct {
	modelLoaded bool
	now         func() time.Time
}

func NewMonitoringService(modelLoaded bool) *MonitoringService {
	return &MonitoringService{modelLoaded: modelLoaded, now: time.Now}
}

// Status is healthy iff the model loaded. It never fails: callers must read
// the body rather than the HTTP status to detect degradation.
func (s *MonitoringService) Status(ctx context.Context) maize_maturity.HealthResponse {
	status := maize_maturity.StatusUnhealthy
	if s.modelLoaded {
		status = maize_maturity.StatusHealthy
	}
	return maize_maturity.HealthResponse{
		Status:      status,
		ModelLoaded: s.modelLoaded,
		Timestamp:   s.now().UTC().Format(time.RFC3339),
		Version:     Version,
	}
}
