package service

import (
	"errors"
	"fmt"
	"math"

	"solar_advisor/internal/models"
)

var ErrInvalidReading = errors.New("invalid reading")

// ValidateReading checks the numeric domain of a reading. The dust level is left
// to the encoder, which rejects categories the model schema does not know.
func ValidateReading(r models.Reading) error {
	var errs []error
	if math.IsNaN(r.TemperatureC) || math.IsInf(r.TemperatureC, 0) {
		errs = append(errs, errors.New("temperature must be finite"))
	}
	if math.IsNaN(r.HumidityPct) || r.HumidityPct < 0 || r.HumidityPct > 100 {
		errs = append(errs, fmt.Errorf("humidity %.1f outside 0..100", r.HumidityPct))
	}
	if r.DaysSinceCleaning < 0 {
		errs = append(errs, fmt.Errorf("days since cleaning %d is negative", r.DaysSinceCleaning))
	}
	if r.PanelAgeYears < 0 {
		errs = append(errs, fmt.Errorf("panel age %d is negative", r.PanelAgeYears))
	}
	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %w", ErrInvalidReading, errors.Join(errs...))
}
