package repository

import (
	"context"
	"database/sql"
	"time"

	"solar_advisor/internal/models"
)

type Authorization interface {
	Create(ctx context.Context, username, hash string) (int, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
}

// PredictionRepo stores advisory runs together with their alerts.
type PredictionRepo interface {
	Save(ctx context.Context, rec models.PredictionRecord, alerts []models.AlertEvent) error
	List(ctx context.Context, from, to time.Time, limit int) ([]models.PredictionRecord, error)
	Latest(ctx context.Context) (models.PredictionRecord, error)
}

// AlertRepo reads persisted alerts.
type AlertRepo interface {
	List(ctx context.Context, from, to time.Time, severity string) ([]models.AlertEvent, error)
}

type Repository struct {
	Predictions PredictionRepo
	Alerts      AlertRepo
	Auth        Authorization
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{
		Predictions: NewPredictionSQLite(db),
		Alerts:      NewAlertSQLite(db),
		Auth:        NewUserRepository(db),
	}
}
