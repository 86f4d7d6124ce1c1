package advisory

import (
	"fmt"

	"solar_advisor/internal/models"
)

// Input is what every rule sees: the raw reading and the predicted efficiency.
type Input struct {
	Reading    models.Reading
	Efficiency float64
}

// Rule is one independent check. It returns zero or more alerts.
type Rule interface {
	Name() string
	Evaluate(in Input) []models.Alert
}

// DustRule flags heavily soiled panels, twice when cleaning is overdue.
type DustRule struct {
	CriticalDustDays int
}

func (DustRule) Name() string { return "dust" }

func (r DustRule) Evaluate(in Input) []models.Alert {
	if in.Reading.DustLevel != models.DustHigh {
		return nil
	}
	days := in.Reading.DaysSinceCleaning
	alerts := []models.Alert{{
		Severity: models.SeverityCritical,
		Code:     models.AlertDustHigh,
		Title:    "Critical Dust Alert",
		Message: fmt.Sprintf(
			"Immediate cleaning required. Dust level: High (7-10%% efficiency loss). Days since cleaning: %d days.", days),
	}}
	if days > r.CriticalDustDays {
		alerts = append(alerts, models.Alert{
			Severity: models.SeverityCritical,
			Code:     models.AlertDustUrgent,
			Title:    "Urgent Notice",
			Message:  fmt.Sprintf("Panels haven't been cleaned in %d days. Action required: clean within 24 hours.", days),
		})
	}
	return alerts
}

// EfficiencyBandRule places the prediction in exactly one of three bands.
type EfficiencyBandRule struct {
	CriticalEfficiency   float64
	OptimalLower         float64
	OptimalUpper         float64
	CleaningIntervalDays int
}

func (EfficiencyBandRule) Name() string { return "efficiency_band" }

func (r EfficiencyBandRule) Evaluate(in Input) []models.Alert {
	gap := r.OptimalUpper - in.Efficiency

	switch {
	case in.Efficiency < r.CriticalEfficiency:
		return []models.Alert{{
			Severity:  models.SeverityCritical,
			Code:      models.AlertEfficiencyCritical,
			Title:     "Critical Efficiency Alert",
			Message:   fmt.Sprintf("System underperforming by %.1f%%. Immediate inspection recommended.", gap),
			Magnitude: &gap,
		}}
	case in.Efficiency < r.OptimalLower:
		return []models.Alert{{
			Severity:  models.SeverityWarning,
			Code:      models.AlertEfficiencyWarning,
			Title:     "Efficiency Warning",
			Message:   fmt.Sprintf("Performance below optimal by %.1f%%. Schedule maintenance within 3 days.", gap),
			Magnitude: &gap,
		}}
	default:
		next := r.CleaningIntervalDays - in.Reading.DaysSinceCleaning
		return []models.Alert{{
			Severity:           models.SeverityInfo,
			Code:               models.AlertEfficiencyOptimal,
			Title:              "System Status: Optimal Performance",
			Message:            fmt.Sprintf("Next recommended cleaning in %d days.", next),
			NextCleaningInDays: &next,
		}}
	}
}

// AgeRule recommends a professional test for panels past their service age.
type AgeRule struct {
	AgeLimitYears int
}

func (AgeRule) Name() string { return "panel_age" }

func (r AgeRule) Evaluate(in Input) []models.Alert {
	age := in.Reading.PanelAgeYears
	if age <= r.AgeLimitYears {
		return nil
	}
	return []models.Alert{{
		Severity: models.SeverityInfo,
		Code:     models.AlertPanelAge,
		Title:    "Panel Age Notice",
		Message: fmt.Sprintf("System age: %d years (beyond %d-year recommendation). Consider professional efficiency test.",
			age, r.AgeLimitYears),
	}}
}

// DefaultRules returns the rules in priority order: dust, efficiency band, age.
func DefaultRules(t Thresholds) []Rule {
	return []Rule{
		DustRule{CriticalDustDays: t.CriticalDustDays},
		EfficiencyBandRule{
			CriticalEfficiency:   t.CriticalEfficiency,
			OptimalLower:         t.OptimalLower,
			OptimalUpper:         t.OptimalUpper,
			CleaningIntervalDays: t.CleaningIntervalDays,
		},
		AgeRule{AgeLimitYears: t.AgeLimitYears},
	}
}
