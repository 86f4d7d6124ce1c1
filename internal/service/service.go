package service

import (
	"context"
	"time"

	"solar_advisor/internal/advisory"
	"solar_advisor/internal/logger"
	"solar_advisor/internal/models"
	"solar_advisor/internal/recommend"
	"solar_advisor/internal/repository"
	"solar_advisor/internal/subsidy"
)

type Authorization interface {
	SignUp(ctx context.Context, username, password string) (int, error)
	GenerateToken(ctx context.Context, username, password string) (string, error)
	ParseToken(accessToken string) (int, error)
}

// Advisor runs the encode → predict → advise pipeline for one reading.
type Advisor interface {
	Advise(ctx context.Context, r models.Reading, source string) (models.AdvisoryReport, error)
	ModelDetails() ModelDetails
}

// History exposes persisted predictions and alerts.
type History interface {
	Latest(ctx context.Context) (models.PredictionRecord, error)
	List(ctx context.Context, f HistoryFilter) ([]models.PredictionRecord, error)
	Alerts(ctx context.Context, f AlertFilter) ([]models.AlertEvent, error)
}

// Subsidies looks up regional subsidy rules.
type Subsidies interface {
	Regions() []string
	Lookup(name string) (subsidy.Region, error)
}

// Recommender ranks catalog panels for a budget and climate. *recommend.Catalog implements it.
type Recommender interface {
	Recommend(q recommend.Query) (recommend.Result, error)
}

// Simulator feeds synthetic readings through the Advisor until ctx is canceled.
type Simulator interface {
	Run(ctx context.Context, tick time.Duration)
}

// Predictor is the loaded regressor. *ml.Model implements it.
type Predictor interface {
	Schema() []string
	Predict(v models.FeatureVector) (float64, error)
	Info() models.ModelInfo
}

// Notifier forwards finished reports, e.g. to MQTT. *notify.Publisher implements it.
type Notifier interface {
	Publish(ctx context.Context, r models.Reading, rep models.AdvisoryReport) error
}

// Service aggregates all sub-services for the HTTP layer.
type Service struct {
	Advisor
	History
	Subsidies
	Recommender
	Simulator
	Authorization
}

// Deps carries everything constructed at process start that services share.
type Deps struct {
	Model      Predictor
	Engine     *advisory.Engine
	Notifier   Notifier // optional
	Subsidies  Subsidies
	Catalog    Recommender
	Auth       AuthConfig
	Simulation SimulationConfig
	Log        *logger.Logger
}

// NewService wires the repository layer and shared dependencies into concrete services.
func NewService(repos *repository.Repository, deps Deps) *Service {
	advisor := NewPredictionService(deps.Model, deps.Engine, repos.Predictions, deps.Notifier, deps.Log)
	return &Service{
		Advisor:       advisor,
		History:       NewHistoryService(repos.Predictions, repos.Alerts),
		Subsidies:     deps.Subsidies,
		Recommender:   deps.Catalog,
		Simulator:     NewSimulatorService(advisor, deps.Simulation, deps.Log),
		Authorization: NewAuthService(repos.Auth, deps.Auth),
	}
}
