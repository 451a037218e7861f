package maize_maturity

// Response status values.
const (
	StatusSuccess     = "success"
	StatusError       = "error"
	StatusUnavailable = "unavailable"
	StatusHealthy     = "healthy"
	StatusUnhealthy   = "unhealthy"
	StatusRunning     = "running"
)

// PredictRequest is the /predict payload as sent by the client.
// The service itself decodes bodies loosely so that numeric strings are accepted.
type PredictRequest struct {
	R           float64 `json:"R" example:"100"`
	G           float64 `json:"G" example:"150"`
	B           float64 `json:"B" example:"50"`
	Temperature float64 `json:"temperature" example:"25"`
	Humidity    float64 `json:"humidity" example:"60"`
}

// PredictResponse is returned by a successful /predict call.
type PredictResponse struct {
	Prediction string  `json:"prediction" example:"Mature"`
	Confidence float64 `json:"confidence" example:"1"` // raw class code emitted by the classifier
	Status     string  `json:"status" example:"success"`
}

// ErrorResponse is the body of every non-2xx reply.
type ErrorResponse struct {
	Error   string `json:"error"`
	Status  string `json:"status,omitempty"`
	Details string `json:"details,omitempty"`
}

// HealthResponse reports whether predictions are possible.
type HealthResponse struct {
	Status      string `json:"status" example:"healthy"` // healthy | unhealthy
	ModelLoaded bool   `json:"model_loaded"`
	Timestamp   string `json:"timestamp"` // RFC3339
	Version     string `json:"version"`
}

// InfoResponse is the static service descriptor served at "/".
type InfoResponse struct {
	Message   string            `json:"message"`
	Status    string            `json:"status"`
	Endpoints map[string]string `json:"endpoints"`
}
