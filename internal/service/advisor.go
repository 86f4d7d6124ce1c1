package service

import (
	"context"
	"fmt"
	"time"

	"solar_advisor/internal/advisory"
	"solar_advisor/internal/features"
	"solar_advisor/internal/logger"
	"solar_advisor/internal/models"
	"solar_advisor/internal/repository"

	"github.com/google/uuid"
)

// ModelDetails is the loaded artifact plus the thresholds applied to its output.
type ModelDetails struct {
	models.ModelInfo
	Thresholds advisory.Thresholds `json:"thresholds"`
}

// PredictionService owns the immutable model and rule engine and shares them
// across concurrent requests without locking.
type PredictionService struct {
	model    Predictor
	schema   []string
	engine   *advisory.Engine
	predRepo repository.PredictionRepo // optional
	notifier Notifier                  // optional
	log      *logger.Logger
	now      func() time.Time
}

func NewPredictionService(model Predictor, engine *advisory.Engine, predRepo repository.PredictionRepo,
	notifier Notifier, log *logger.Logger) *PredictionService {
	return &PredictionService{
		model:    model,
		schema:   model.Schema(),
		engine:   engine,
		predRepo: predRepo,
		notifier: notifier,
		log:      log,
		now:      time.Now,
	}
}

// Advise encodes r against the model schema, predicts efficiency and evaluates
// the advisory rules. The report is recorded and forwarded best-effort.
func (s *PredictionService) Advise(ctx context.Context, r models.Reading, source string) (models.AdvisoryReport, error) {
	if err := ValidateReading(r); err != nil {
		return models.AdvisoryReport{}, err
	}

	v, err := features.Encode(r, s.schema)
	if err != nil {
		return models.AdvisoryReport{}, fmt.Errorf("encode reading: %w", err)
	}
	efficiency, err := s.model.Predict(v)
	if err != nil {
		return models.AdvisoryReport{}, fmt.Errorf("predict efficiency: %w", err)
	}

	rep := s.engine.Advise(r, efficiency)
	rep.PredictionID = uuid.NewString()
	rep.CreatedAt = s.now().UTC()

	s.record(ctx, r, rep, source)
	s.forward(ctx, r, rep)
	return rep, nil
}

func (s *PredictionService) record(ctx context.Context, r models.Reading, rep models.AdvisoryReport, source string) {
	if s.predRepo == nil {
		return
	}
	rec := models.PredictionRecord{
		ID:         rep.PredictionID,
		CreatedAt:  rep.CreatedAt,
		Reading:    r,
		Efficiency: rep.Efficiency,
		Severity:   rep.HighestSeverity(),
		Source:     source,
	}
	alerts := make([]models.AlertEvent, 0, len(rep.Alerts))
	for _, a := range rep.Alerts {
		alerts = append(alerts, models.AlertEvent{
			PredictionID: rep.PredictionID,
			OccurredAt:   rep.CreatedAt,
			Severity:     a.Severity,
			Code:         a.Code,
			Message:      a.Message,
		})
	}
	if err := s.predRepo.Save(ctx, rec, alerts); err != nil && s.log != nil {
		s.log.Errorw("prediction_save_failed", "prediction_id", rep.PredictionID, "err", err)
	}
}

func (s *PredictionService) forward(ctx context.Context, r models.Reading, rep models.AdvisoryReport) {
	if s.notifier == nil {
		return
	}
	if err := s.notifier.Publish(ctx, r, rep); err != nil && s.log != nil {
		s.log.Warnw("advisory_publish_failed", "prediction_id", rep.PredictionID, "err", err)
	}
}

// ModelDetails describes the model and thresholds in use.
func (s *PredictionService) ModelDetails() ModelDetails {
	return ModelDetails{ModelInfo: s.model.Info(), Thresholds: s.engine.Thresholds()}
}
