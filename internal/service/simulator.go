package service

import (
	"context"
	"math"
	"math/rand"
	"time"

	"solar_advisor/internal/logger"
	"solar_advisor/internal/models"
)

// Seasonal model of the synthetic site.
const (
	MeanTempC       = 25.0
	TempAmplitudeC  = 10.0
	TempPhaseDay    = 105
	TempNoiseC      = 3.0
	MinTempC        = 15.0
	MaxTempC        = 45.0
	MeanHumidity    = 60.0
	HumidityAmp     = 20.0
	HumidityPhase   = 200
	HumidityNoise   = 10.0
	MinHumidity     = 20.0
	MaxHumidity     = 95.0
	MaxCleaningDays = 30
	daysPerYear     = 365.0
)

// SimulationConfig seeds the synthetic reading generator.
type SimulationConfig struct {
	Seed          int64
	PanelAgeYears int
	StartDate     time.Time
}

// readingAdvisor is the slice of Advisor the simulator needs.
type readingAdvisor interface {
	Advise(ctx context.Context, r models.Reading, source string) (models.AdvisoryReport, error)
}

// SimulatorService produces one seasonal reading per tick, advancing one
// calendar day each time, and runs it through the advisory pipeline.
type SimulatorService struct {
	advisor  readingAdvisor
	rng      *rand.Rand
	day      time.Time
	panelAge int
	log      *logger.Logger
}

// NewSimulatorService returns a simulator. The same seed always yields the same readings.
func NewSimulatorService(advisor readingAdvisor, cfg SimulationConfig, log *logger.Logger) *SimulatorService {
	start := cfg.StartDate
	if start.IsZero() {
		start = time.Date(2023, time.January, 1, 0, 0, 0, 0, time.UTC)
	}
	return &SimulatorService{
		advisor:  advisor,
		rng:      rand.New(rand.NewSource(cfg.Seed)),
		day:      start,
		panelAge: cfg.PanelAgeYears,
		log:      log,
	}
}

// Run ticks at the given interval until ctx is canceled. Not safe for concurrent calls.
func (s *SimulatorService) Run(ctx context.Context, tick time.Duration) {
	t := time.NewTicker(tick)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			r := s.NextReading()
			rep, err := s.advisor.Advise(ctx, r, SourceSimulator)
			if err != nil {
				if s.log != nil {
					s.log.Warnw("simulated_advice_failed", "err", err)
				}
				continue
			}
			if s.log != nil {
				s.log.Debugw("simulated_advice",
					"efficiency", rep.Efficiency,
					"severity", rep.HighestSeverity(),
					"dust_level", r.DustLevel)
			}
		}
	}
}

// NextReading generates the reading for the current simulated day and moves to the next one.
func (s *SimulatorService) NextReading() models.Reading {
	doy := float64(s.day.YearDay())
	s.day = s.day.AddDate(0, 0, 1)

	temp := MeanTempC + TempAmplitudeC*math.Sin(2*math.Pi*(doy-TempPhaseDay)/daysPerYear)
	hum := MeanHumidity + HumidityAmp*math.Cos(2*math.Pi*(doy-HumidityPhase)/daysPerYear)

	return models.Reading{
		TemperatureC:      clamp(temp+s.rng.NormFloat64()*TempNoiseC, MinTempC, MaxTempC),
		HumidityPct:       clamp(hum+s.rng.NormFloat64()*HumidityNoise, MinHumidity, MaxHumidity),
		DustLevel:         s.dust(),
		DaysSinceCleaning: 1 + s.rng.Intn(MaxCleaningDays),
		PanelAgeYears:     s.panelAge,
	}
}

// dust draws Low/Medium/High with probabilities 0.6/0.3/0.1.
func (s *SimulatorService) dust() models.DustLevel {
	switch p := s.rng.Float64(); {
	case p < 0.6:
		return models.DustLow
	case p < 0.9:
		return models.DustMedium
	default:
		return models.DustHigh
	}
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
