// Package advisory turns a predicted efficiency and its reading into ordered maintenance alerts.
package advisory

import "solar_advisor/internal/models"

// Engine evaluates its rules in order; every applicable rule contributes alerts.
type Engine struct {
	thresholds Thresholds
	rules      []Rule
}

// NewEngine builds an engine with the default rule set for t.
func NewEngine(t Thresholds) *Engine {
	return NewEngineWithRules(t, DefaultRules(t)...)
}

// NewEngineWithRules builds an engine evaluating rules in the given order. t only
// supplies the optimal range reported alongside the alerts.
func NewEngineWithRules(t Thresholds, rules ...Rule) *Engine {
	return &Engine{thresholds: t, rules: append([]Rule(nil), rules...)}
}

// Thresholds returns the thresholds the engine was built with.
func (e *Engine) Thresholds() Thresholds { return e.thresholds }

// Advise runs every rule against the reading and prediction.
func (e *Engine) Advise(r models.Reading, efficiency float64) models.AdvisoryReport {
	in := Input{Reading: r, Efficiency: efficiency}
	rng := e.thresholds.OptimalRange()

	alerts := make([]models.Alert, 0, len(e.rules)+1)
	for _, rule := range e.rules {
		alerts = append(alerts, rule.Evaluate(in)...)
	}
	return models.AdvisoryReport{
		Efficiency:     efficiency,
		OptimalRange:   rng,
		DeltaVsOptimal: efficiency - rng.Mid(),
		Alerts:         alerts,
	}
}
