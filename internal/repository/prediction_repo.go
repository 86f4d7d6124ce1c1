package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"solar_advisor/internal/models"

	"github.com/google/uuid"
)

type PredictionSQLite struct {
	db *sql.DB
}

func NewPredictionSQLite(db *sql.DB) *PredictionSQLite {
	return &PredictionSQLite{db: db}
}

var _ PredictionRepo = (*PredictionSQLite)(nil)

const (
	defaultListLimit = 100
	maxListLimit     = 1000

	insertPredictionSQL = `
		INSERT INTO predictions (id, created_at, temperature_c, humidity_pct, dust_level,
			days_since_cleaning, panel_age_years, efficiency, severity, source)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	insertAlertSQL = `
		INSERT INTO alerts (id, prediction_id, occurred_at, severity, code, message)
		VALUES (?, ?, ?, ?, ?, ?)
	`

	selectPredictionColumns = `SELECT id, created_at, temperature_c, humidity_pct, dust_level, days_since_cleaning, panel_age_years, efficiency, severity, source FROM predictions`
)

// Save inserts the prediction and its alerts in one transaction. Empty IDs and
// zero timestamps are filled in; alerts inherit the prediction's ID and time.
func (r *PredictionSQLite) Save(ctx context.Context, rec models.PredictionRecord, alerts []models.AlertEvent) error {
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now().UTC()
	} else {
		rec.CreatedAt = rec.CreatedAt.UTC()
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin prediction transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, insertPredictionSQL,
		rec.ID,
		rec.CreatedAt,
		rec.Reading.TemperatureC,
		rec.Reading.HumidityPct,
		string(rec.Reading.DustLevel),
		rec.Reading.DaysSinceCleaning,
		rec.Reading.PanelAgeYears,
		rec.Efficiency,
		string(rec.Severity),
		rec.Source,
	); err != nil {
		return fmt.Errorf("insert prediction %s: %w", rec.ID, err)
	}

	for _, a := range alerts {
		if a.ID == "" {
			a.ID = uuid.NewString()
		}
		if _, err := tx.ExecContext(ctx, insertAlertSQL,
			a.ID,
			rec.ID,
			rec.CreatedAt,
			string(a.Severity),
			a.Code,
			a.Message,
		); err != nil {
			return fmt.Errorf("insert alert %s for prediction %s: %w", a.Code, rec.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit prediction %s: %w", rec.ID, err)
	}
	return nil
}

// clampLimit maps non-positive limits to the default and caps large ones.
func clampLimit(limit int) int {
	switch {
	case limit <= 0:
		return defaultListLimit
	case limit > maxListLimit:
		return maxListLimit
	default:
		return limit
	}
}

// List returns predictions within [from, to] (zero bounds are open), newest first.
func (r *PredictionSQLite) List(ctx context.Context, from, to time.Time, limit int) ([]models.PredictionRecord, error) {
	var (
		conds []string
		args  []any
	)
	if !from.IsZero() {
		conds = append(conds, "created_at >= ?")
		args = append(args, from.UTC())
	}
	if !to.IsZero() {
		conds = append(conds, "created_at <= ?")
		args = append(args, to.UTC())
	}

	q := selectPredictionColumns
	if len(conds) > 0 {
		q += " WHERE " + strings.Join(conds, " AND ")
	}
	q += " ORDER BY created_at DESC LIMIT ?"
	args = append(args, clampLimit(limit))

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("query predictions: %w", err)
	}
	defer rows.Close()

	out := make([]models.PredictionRecord, 0, 32)
	for rows.Next() {
		rec, err := scanPrediction(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate predictions: %w", err)
	}
	return out, nil
}

// Latest returns the newest prediction, or a zero record if none exist yet.
func (r *PredictionSQLite) Latest(ctx context.Context) (models.PredictionRecord, error) {
	row := r.db.QueryRowContext(ctx, selectPredictionColumns+" ORDER BY created_at DESC LIMIT 1")
	rec, err := scanPrediction(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.PredictionRecord{}, nil
		}
		return models.PredictionRecord{}, err
	}
	return rec, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPrediction(s rowScanner) (models.PredictionRecord, error) {
	var (
		rec      models.PredictionRecord
		dust     string
		severity string
	)
	if err := s.Scan(
		&rec.ID,
		&rec.CreatedAt,
		&rec.Reading.TemperatureC,
		&rec.Reading.HumidityPct,
		&dust,
		&rec.Reading.DaysSinceCleaning,
		&rec.Reading.PanelAgeYears,
		&rec.Efficiency,
		&severity,
		&rec.Source,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return rec, err
		}
		return rec, fmt.Errorf("scan prediction: %w", err)
	}
	rec.Reading.DustLevel = models.DustLevel(dust)
	rec.Severity = models.Severity(severity)
	rec.CreatedAt = rec.CreatedAt.UTC()
	return rec, nil
}
