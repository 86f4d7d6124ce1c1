package advisory

import (
	"errors"
	"fmt"

	"solar_advisor/internal/models"
)

// Thresholds tunes the advisory rules.
type Thresholds struct {
	CriticalDustDays     int     `json:"critical_dust_days" mapstructure:"critical_dust_days"`
	OptimalLower         float64 `json:"optimal_lower" mapstructure:"optimal_lower"`
	OptimalUpper         float64 `json:"optimal_upper" mapstructure:"optimal_upper"`
	CriticalEfficiency   float64 `json:"critical_efficiency" mapstructure:"critical_efficiency"`
	AgeLimitYears        int     `json:"age_limit_years" mapstructure:"age_limit_years"`
	CleaningIntervalDays int     `json:"cleaning_interval_days" mapstructure:"cleaning_interval_days"`
}

// DefaultThresholds returns the values the efficiency page shipped with.
func DefaultThresholds() Thresholds {
	return Thresholds{
		CriticalDustDays:     3,
		OptimalLower:         85,
		OptimalUpper:         92,
		CriticalEfficiency:   75,
		AgeLimitYears:        8,
		CleaningIntervalDays: 14,
	}
}

// OptimalRange returns the configured optimal efficiency band.
func (t Thresholds) OptimalRange() models.EfficiencyRange {
	return models.EfficiencyRange{Lower: t.OptimalLower, Upper: t.OptimalUpper}
}

// Validate rejects threshold sets that would make the band rules overlap.
func (t Thresholds) Validate() error {
	var errs []error
	if t.OptimalLower >= t.OptimalUpper {
		errs = append(errs, fmt.Errorf("optimal range lower %.2f must be below upper %.2f", t.OptimalLower, t.OptimalUpper))
	}
	if t.CriticalEfficiency > t.OptimalLower {
		errs = append(errs, fmt.Errorf("critical efficiency %.2f exceeds optimal lower bound %.2f", t.CriticalEfficiency, t.OptimalLower))
	}
	if t.CriticalDustDays < 0 {
		errs = append(errs, errors.New("critical dust days must be >= 0"))
	}
	if t.AgeLimitYears < 0 {
		errs = append(errs, errors.New("age limit must be >= 0"))
	}
	if t.CleaningIntervalDays <= 0 {
		errs = append(errs, errors.New("cleaning interval must be > 0"))
	}
	return errors.Join(errs...)
}
