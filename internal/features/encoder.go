// Package features turns a Reading into the numeric vector a regressor expects.
package features

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"solar_advisor/internal/models"
)

// Column names shared with the offline training job.
const (
	ColTemperature   = "Temperature (°C)"
	ColHumidity      = "Humidity (%)"
	ColDaysClean     = "Days_Since_Cleaning"
	ColPanelAge      = "Panel_Age (years)"
	ColTempHumidity  = "Temp_Humidity"
	dustColumnPrefix = "Dust_Level_"
)

// ErrSchemaMismatch is matched by every error caused by a vector that cannot be
// reconciled with a model schema.
var ErrSchemaMismatch = errors.New("feature schema mismatch")

// SchemaMismatchError lists columns the encoder produced that the schema does not know.
type SchemaMismatchError struct {
	Extra []string
}

func (e *SchemaMismatchError) Error() string {
	return fmt.Sprintf("%s: unexpected columns %s", ErrSchemaMismatch, strings.Join(e.Extra, ", "))
}

func (e *SchemaMismatchError) Is(target error) bool { return target == ErrSchemaMismatch }

// DustColumn returns the one-hot column name of a dust level.
func DustColumn(d models.DustLevel) string { return dustColumnPrefix + string(d) }

// DefaultSchema is the column order produced by the training job.
func DefaultSchema() []string {
	return []string{
		ColTemperature,
		ColHumidity,
		ColDaysClean,
		ColPanelAge,
		DustColumn(models.DustHigh),
		DustColumn(models.DustLow),
		DustColumn(models.DustMedium),
		ColTempHumidity,
	}
}

// Raw builds the unreconciled feature set of a single reading. Only the observed
// dust level gets a one-hot column.
func Raw(r models.Reading) map[string]float64 {
	raw := map[string]float64{
		ColTemperature:  r.TemperatureC,
		ColHumidity:     r.HumidityPct,
		ColDaysClean:    float64(r.DaysSinceCleaning),
		ColPanelAge:     float64(r.PanelAgeYears),
		ColTempHumidity: r.TemperatureC * r.HumidityPct / 100,
	}
	raw[DustColumn(r.DustLevel)] = 1
	return raw
}

// Encode reconciles Raw(r) with schema: absent schema columns are zero-filled,
// the result follows schema order, and columns unknown to the schema are rejected.
func Encode(r models.Reading, schema []string) (models.FeatureVector, error) {
	if err := CheckSchema(schema); err != nil {
		return models.FeatureVector{}, err
	}

	raw := Raw(r)
	known := make(map[string]struct{}, len(schema))
	for _, name := range schema {
		known[name] = struct{}{}
	}

	var extra []string
	for name := range raw {
		if _, ok := known[name]; !ok {
			extra = append(extra, name)
		}
	}
	if len(extra) > 0 {
		sort.Strings(extra)
		return models.FeatureVector{}, &SchemaMismatchError{Extra: extra}
	}

	v := models.FeatureVector{
		Names:  make([]string, len(schema)),
		Values: make([]float64, len(schema)),
	}
	for i, name := range schema {
		v.Names[i] = name
		v.Values[i] = raw[name] // missing → 0
	}
	return v, nil
}

// CheckSchema rejects empty schemas and duplicate column names.
func CheckSchema(schema []string) error {
	if len(schema) == 0 {
		return fmt.Errorf("%w: empty schema", ErrSchemaMismatch)
	}
	seen := make(map[string]struct{}, len(schema))
	for _, name := range schema {
		if strings.TrimSpace(name) == "" {
			return fmt.Errorf("%w: blank column name", ErrSchemaMismatch)
		}
		if _, dup := seen[name]; dup {
			return fmt.Errorf("%w: duplicate column %q", ErrSchemaMismatch, name)
		}
		seen[name] = struct{}{}
	}
	return nil
}

// Conforms reports an error unless v has exactly the schema's columns in order.
func Conforms(v models.FeatureVector, schema []string) error {
	if len(v.Names) != len(schema) || len(v.Values) != len(schema) {
		return fmt.Errorf("%w: vector has %d columns, schema has %d", ErrSchemaMismatch, len(v.Names), len(schema))
	}
	for i, name := range schema {
		if v.Names[i] != name {
			return fmt.Errorf("%w: column %d is %q, want %q", ErrSchemaMismatch, i, v.Names[i], name)
		}
	}
	return nil
}
