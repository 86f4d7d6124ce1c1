package service

import (
	"context"
	"errors"
	"math"
	"sync"
	"testing"
	"time"

	"solar_advisor/internal/advisory"
	"solar_advisor/internal/features"
	"solar_advisor/internal/models"
)

// ---- Test doubles ----

// predictorStub returns a fixed efficiency and remembers the vector it was given.
type predictorStub struct {
	schema []string
	eff    float64
	err    error
	got    models.FeatureVector
}

func (p *predictorStub) Schema() []string { return append([]string(nil), p.schema...) }
func (p *predictorStub) Predict(v models.FeatureVector) (float64, error) {
	p.got = v
	return p.eff, p.err
}
func (p *predictorStub) Info() models.ModelInfo {
	return models.ModelInfo{Algorithm: "stub", Schema: p.Schema(), TreeCount: 1}
}

// predRepoStub is an in-memory repository.PredictionRepo.
type predRepoStub struct {
	mu      sync.Mutex
	saved   []models.PredictionRecord
	alerts  [][]models.AlertEvent
	saveErr error
	latest  models.PredictionRecord
	listed  struct {
		from, to time.Time
		limit    int
	}
}

func (r *predRepoStub) Save(_ context.Context, rec models.PredictionRecord, alerts []models.AlertEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.saveErr != nil {
		return r.saveErr
	}
	r.saved = append(r.saved, rec)
	r.alerts = append(r.alerts, alerts)
	return nil
}

func (r *predRepoStub) List(_ context.Context, from, to time.Time, limit int) ([]models.PredictionRecord, error) {
	r.listed.from, r.listed.to, r.listed.limit = from, to, limit
	return r.saved, nil
}

func (r *predRepoStub) Latest(context.Context) (models.PredictionRecord, error) {
	return r.latest, nil
}

// notifierStub counts published reports.
type notifierStub struct {
	published []models.AdvisoryReport
	err       error
}

func (n *notifierStub) Publish(_ context.Context, _ models.Reading, rep models.AdvisoryReport) error {
	n.published = append(n.published, rep)
	return n.err
}

func newTestAdvisor(eff float64, repo *predRepoStub, n Notifier) (*PredictionService, *predictorStub) {
	p := &predictorStub{schema: features.DefaultSchema(), eff: eff}
	svc := NewPredictionService(p, advisory.NewEngine(advisory.DefaultThresholds()), repo, n, nil)
	svc.now = func() time.Time { return time.Date(2024, 3, 1, 10, 0, 0, 0, time.FixedZone("X", 3600)) }
	return svc, p
}

func sampleReading() models.Reading {
	return models.Reading{TemperatureC: 25, HumidityPct: 60, DustLevel: models.DustLow, DaysSinceCleaning: 7, PanelAgeYears: 3}
}

// ---- Tests ----

func TestAdvise_EncodesPredictsAndAdvises(t *testing.T) {
	repo := &predRepoStub{}
	svc, p := newTestAdvisor(88.5, repo, nil)

	rep, err := svc.Advise(context.Background(), sampleReading(), SourceAPI)
	if err != nil {
		t.Fatalf("Advise returned error: %v", err)
	}

	if err := features.Conforms(p.got, features.DefaultSchema()); err != nil {
		t.Fatalf("predictor received non-conforming vector %+v: %v", p.got, err)
	}
	if v, _ := p.got.Get(features.ColTempHumidity); v != 15 {
		t.Fatalf("expected Temp_Humidity 15, got %v", v)
	}
	if rep.Efficiency != 88.5 {
		t.Fatalf("expected efficiency 88.5, got %v", rep.Efficiency)
	}
	if rep.PredictionID == "" {
		t.Fatalf("expected prediction id")
	}
	if rep.CreatedAt.Location() != time.UTC {
		t.Fatalf("expected UTC timestamp, got %v", rep.CreatedAt.Location())
	}
	if len(rep.Alerts) != 1 || rep.Alerts[0].Code != models.AlertEfficiencyOptimal {
		t.Fatalf("expected single optimal alert, got %+v", rep.Alerts)
	}
}

func TestAdvise_PersistsRecordAndAlerts(t *testing.T) {
	repo := &predRepoStub{}
	svc, _ := newTestAdvisor(70, repo, nil)

	r := sampleReading()
	r.DustLevel = models.DustHigh
	r.DaysSinceCleaning = 5
	rep, err := svc.Advise(context.Background(), r, SourceWS)
	if err != nil {
		t.Fatalf("Advise returned error: %v", err)
	}

	if len(repo.saved) != 1 {
		t.Fatalf("expected 1 saved record, got %d", len(repo.saved))
	}
	rec := repo.saved[0]
	if rec.ID != rep.PredictionID || rec.Source != SourceWS || rec.Reading != r {
		t.Fatalf("unexpected record %+v", rec)
	}
	if rec.Severity != models.SeverityCritical {
		t.Fatalf("expected critical record severity, got %q", rec.Severity)
	}
	events := repo.alerts[0]
	if len(events) != len(rep.Alerts) {
		t.Fatalf("expected %d alert events, got %d", len(rep.Alerts), len(events))
	}
	for i, ev := range events {
		if ev.PredictionID != rep.PredictionID || ev.Code != rep.Alerts[i].Code || !ev.OccurredAt.Equal(rep.CreatedAt) {
			t.Fatalf("alert event %d does not match report: %+v", i, ev)
		}
	}
}

func TestAdvise_SaveFailureStillReturnsReport(t *testing.T) {
	repo := &predRepoStub{saveErr: errors.New("disk full")}
	svc, _ := newTestAdvisor(90, repo, nil)

	rep, err := svc.Advise(context.Background(), sampleReading(), SourceAPI)
	if err != nil {
		t.Fatalf("expected report despite save failure, got %v", err)
	}
	if rep.Efficiency != 90 {
		t.Fatalf("unexpected efficiency %v", rep.Efficiency)
	}
}

func TestAdvise_NilRepositorySkipsPersistence(t *testing.T) {
	p := &predictorStub{schema: features.DefaultSchema(), eff: 80}
	svc := NewPredictionService(p, advisory.NewEngine(advisory.DefaultThresholds()), nil, nil, nil)

	if _, err := svc.Advise(context.Background(), sampleReading(), SourceCLI); err != nil {
		t.Fatalf("Advise returned error: %v", err)
	}
}

func TestAdvise_ForwardsToNotifier(t *testing.T) {
	n := &notifierStub{err: errors.New("broker down")}
	svc, _ := newTestAdvisor(60, &predRepoStub{}, n)

	if _, err := svc.Advise(context.Background(), sampleReading(), SourceAPI); err != nil {
		t.Fatalf("publish failure must not fail Advise: %v", err)
	}
	if len(n.published) != 1 {
		t.Fatalf("expected 1 published report, got %d", len(n.published))
	}
}

func TestAdvise_InvalidReading(t *testing.T) {
	repo := &predRepoStub{}
	svc, p := newTestAdvisor(90, repo, nil)

	r := sampleReading()
	r.HumidityPct = 130
	_, err := svc.Advise(context.Background(), r, SourceAPI)
	if !errors.Is(err, ErrInvalidReading) {
		t.Fatalf("expected ErrInvalidReading, got %v", err)
	}
	if p.got.Len() != 0 || len(repo.saved) != 0 {
		t.Fatalf("invalid reading must not reach the model or the repository")
	}
}

func TestAdvise_UnknownDustIsSchemaMismatch(t *testing.T) {
	svc, _ := newTestAdvisor(90, &predRepoStub{}, nil)

	r := sampleReading()
	r.DustLevel = "Extreme"
	_, err := svc.Advise(context.Background(), r, SourceAPI)
	if !errors.Is(err, features.ErrSchemaMismatch) {
		t.Fatalf("expected ErrSchemaMismatch, got %v", err)
	}
	var sm *features.SchemaMismatchError
	if !errors.As(err, &sm) || len(sm.Extra) != 1 || sm.Extra[0] != "Dust_Level_Extreme" {
		t.Fatalf("expected extra column Dust_Level_Extreme, got %v", err)
	}
}

func TestAdvise_PredictError(t *testing.T) {
	svc, p := newTestAdvisor(0, &predRepoStub{}, nil)
	p.err = errors.New("boom")

	if _, err := svc.Advise(context.Background(), sampleReading(), SourceAPI); err == nil {
		t.Fatalf("expected predict error")
	}
}

func TestModelDetails(t *testing.T) {
	svc, _ := newTestAdvisor(0, nil, nil)
	d := svc.ModelDetails()
	if d.Algorithm != "stub" || d.TreeCount != 1 {
		t.Fatalf("unexpected model info %+v", d.ModelInfo)
	}
	if d.Thresholds != advisory.DefaultThresholds() {
		t.Fatalf("unexpected thresholds %+v", d.Thresholds)
	}
}

func TestValidateReading(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*models.Reading)
		wantErr bool
	}{
		{"valid", func(*models.Reading) {}, false},
		{"humidity bounds inclusive", func(r *models.Reading) { r.HumidityPct = 100 }, false},
		{"negative temperature allowed", func(r *models.Reading) { r.TemperatureC = -10 }, false},
		{"NaN temperature", func(r *models.Reading) { r.TemperatureC = math.NaN() }, true},
		{"infinite temperature", func(r *models.Reading) { r.TemperatureC = math.Inf(1) }, true},
		{"humidity above 100", func(r *models.Reading) { r.HumidityPct = 100.1 }, true},
		{"negative humidity", func(r *models.Reading) { r.HumidityPct = -1 }, true},
		{"negative days", func(r *models.Reading) { r.DaysSinceCleaning = -1 }, true},
		{"negative age", func(r *models.Reading) { r.PanelAgeYears = -2 }, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := sampleReading()
			tt.mutate(&r)
			err := ValidateReading(r)
			if tt.wantErr != (err != nil) {
				t.Fatalf("wantErr=%v, got %v", tt.wantErr, err)
			}
			if err != nil && !errors.Is(err, ErrInvalidReading) {
				t.Fatalf("expected ErrInvalidReading, got %v", err)
			}
		})
	}
}
