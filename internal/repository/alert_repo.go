package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"solar_advisor/internal/models"
)

type AlertSQLite struct {
	db *sql.DB
}

func NewAlertSQLite(db *sql.DB) *AlertSQLite { return &AlertSQLite{db: db} }

var _ AlertRepo = (*AlertSQLite)(nil)

// List returns alerts filtered by [from, to] (inclusive) and/or severity, ordered ASC.
func (r *AlertSQLite) List(ctx context.Context, from, to time.Time, severity string) ([]models.AlertEvent, error) {
	var (
		conds []string
		args  []any
	)

	if !from.IsZero() {
		conds = append(conds, "occurred_at >= ?")
		args = append(args, from.UTC())
	}
	if !to.IsZero() {
		conds = append(conds, "occurred_at <= ?")
		args = append(args, to.UTC())
	}
	if severity = strings.ToLower(strings.TrimSpace(severity)); severity != "" {
		conds = append(conds, "severity = ?")
		args = append(args, severity)
	}

	q := `SELECT id, prediction_id, occurred_at, severity, code, message FROM alerts`
	if len(conds) > 0 {
		q += " WHERE " + strings.Join(conds, " AND ")
	}
	q += " ORDER BY occurred_at ASC"

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("query alerts: %w", err)
	}
	defer rows.Close()

	out := make([]models.AlertEvent, 0, 64)
	for rows.Next() {
		var (
			ev  models.AlertEvent
			sev string
		)
		if err := rows.Scan(&ev.ID, &ev.PredictionID, &ev.OccurredAt, &sev, &ev.Code, &ev.Message); err != nil {
			return nil, fmt.Errorf("scan alert: %w", err)
		}
		ev.Severity = models.Severity(sev)
		ev.OccurredAt = ev.OccurredAt.UTC()
		out = append(out, ev)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate alerts: %w", err)
	}
	return out, nil
}
