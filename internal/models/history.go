package models

// HistoryEntry is one successful prediction kept by the client.
type HistoryEntry struct {
	R          float64
	G          float64
	B          float64
	Temp       float64
	Humidity   float64
	Prediction string
}
