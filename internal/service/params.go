package service

import "time"

// Prediction sources recorded with each persisted run.
const (
	SourceAPI       = "api"
	SourceWS        = "ws"
	SourceSimulator = "simulator"
	SourceCLI       = "cli"
)

// HistoryFilter selects persisted predictions.
type HistoryFilter struct {
	From  time.Time // inclusive; zero means no lower bound
	To    time.Time // inclusive; zero means no upper bound
	Limit int       // <= 0 means repository default
}

// AlertFilter selects persisted alerts by time range and severity.
type AlertFilter struct {
	From     time.Time
	To       time.Time
	Severity string // "", "info", "warning", "critical"
}
