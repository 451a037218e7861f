package handlers

import (
	"context"
	"sync"
	"time"

	"maize_maturity"
	"maize_maturity/internal/models"
	"maize_maturity/internal/service"

	"github.com/gin-gonic/gin"
)

// ---- Service Mocks ----

type mockPrediction struct {
	ready  bool
	result models.PredictionResult
	err    error

	mu       sync.Mutex
	calls    int
	lastData map[string]any
}

func (m *mockPrediction) Ready() bool { return m.ready }

func (m *mockPrediction) Predict(ctx context.Context, data map[string]any) (models.PredictionResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	m.lastData = data
	return m.result, m.err
}

type mockMonitoring struct {
	status maize_maturity.HealthResponse
}

func (m *mockMonitoring) Status(ctx context.Context) maize_maturity.HealthResponse {
	return m.status
}

type mockEventLog struct {
	resp     []models.PredictionEvent
	err      error
	lastFrom time.Time
	lastTo   time.Time
	lastType string
	calls    int
}

func (m *mockEventLog) List(ctx context.Context, f service.LogFilter) ([]models.PredictionEvent, error) {
	m.calls++
	m.lastFrom = f.From
	m.lastTo = f.To
	m.lastType = f.Type
	return m.resp, m.err
}

// ---- Shared Test Helpers ----

func newTestRouter(s *service.Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewHandler(s, nil)
	return h.InitRoutes()
}
