package service

import "time"

// LogFilter narrows event log listings by time range and type.
type LogFilter struct {
	From time.Time // inclusive; zero means no lower bound
	To   time.Time // inclusive; zero means no upper bound
	Type string    // "", "PREDICTION", "REJECTED", "UNAVAILABLE", "ERROR"
}
