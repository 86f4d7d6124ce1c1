package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"solar_advisor/internal/models"
	"solar_advisor/internal/repository"
)

var (
	ErrNoPredictions    = errors.New("no predictions recorded yet")
	ErrInvalidTimeRange = errors.New("from must not be after to")
	ErrInvalidSeverity  = errors.New("unknown severity")
)

// HistoryService reads persisted predictions and alerts.
type HistoryService struct {
	predRepo  repository.PredictionRepo
	alertRepo repository.AlertRepo
}

func NewHistoryService(predRepo repository.PredictionRepo, alertRepo repository.AlertRepo) *HistoryService {
	return &HistoryService{predRepo: predRepo, alertRepo: alertRepo}
}

// Latest returns the most recent prediction or ErrNoPredictions.
func (s *HistoryService) Latest(ctx context.Context) (models.PredictionRecord, error) {
	rec, err := s.predRepo.Latest(ctx)
	if err != nil {
		return models.PredictionRecord{}, fmt.Errorf("load latest prediction: %w", err)
	}
	if rec.ID == "" {
		return models.PredictionRecord{}, ErrNoPredictions
	}
	return rec, nil
}

// List returns predictions newest first.
func (s *HistoryService) List(ctx context.Context, f HistoryFilter) ([]models.PredictionRecord, error) {
	if !f.From.IsZero() && !f.To.IsZero() && f.From.After(f.To) {
		return nil, ErrInvalidTimeRange
	}
	recs, err := s.predRepo.List(ctx, f.From, f.To, f.Limit)
	if err != nil {
		return nil, fmt.Errorf("list predictions: %w", err)
	}
	return recs, nil
}

// Alerts returns alerts oldest first, optionally filtered by severity.
func (s *HistoryService) Alerts(ctx context.Context, f AlertFilter) ([]models.AlertEvent, error) {
	if !f.From.IsZero() && !f.To.IsZero() && f.From.After(f.To) {
		return nil, ErrInvalidTimeRange
	}
	sev := strings.ToLower(strings.TrimSpace(f.Severity))
	if sev != "" && models.Severity(sev).Rank() == 0 {
		return nil, fmt.Errorf("%w: %q", ErrInvalidSeverity, f.Severity)
	}
	events, err := s.alertRepo.List(ctx, f.From, f.To, sev)
	if err != nil {
		return nil, fmt.Errorf("list alerts: %w", err)
	}
	return events, nil
}
