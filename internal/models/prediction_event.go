package models

import "time"

// Event types recorded for every /predict call.
const (
	EventPrediction  = "PREDICTION"
	EventRejected    = "REJECTED"
	EventUnavailable = "UNAVAILABLE"
	EventError       = "ERROR"
)

// PredictionEvent is a single request log entry.
type PredictionEvent struct {
	EventID     string    `json:"event_id"`
	OccurredAt  time.Time `json:"occurred_at"`
	Type        string    `json:"type"`        // PREDICTION | REJECTED | UNAVAILABLE | ERROR
	Description string    `json:"description"` // label or error text
	Metadata    any       `json:"metadata,omitempty"`
}
