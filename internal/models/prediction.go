package models

import "time"

// PredictionRecord is a persisted advisory run.
type PredictionRecord struct {
	ID         string    `json:"id"`
	CreatedAt  time.Time `json:"created_at"`
	Reading    Reading   `json:"reading"`
	Efficiency float64   `json:"efficiency"`
	Severity   Severity  `json:"severity,omitempty"` // highest alert severity
	Source     string    `json:"source"`             // api | ws | simulator | cli
}

// AlertEvent is a single persisted alert of a prediction.
type AlertEvent struct {
	ID           string    `json:"id"`
	PredictionID string    `json:"prediction_id"`
	OccurredAt   time.Time `json:"occurred_at"`
	Severity     Severity  `json:"severity"`
	Code         string    `json:"code"`
	Message      string    `json:"message"`
}
