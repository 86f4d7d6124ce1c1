package models

// DustLevel is the visually inspected dust coverage of the panel surface.
type DustLevel string

const (
	DustLow    DustLevel = "Low"
	DustMedium DustLevel = "Medium"
	DustHigh   DustLevel = "High"
)

// DustLevels lists the accepted dust levels in display order.
var DustLevels = []DustLevel{DustLow, DustMedium, DustHigh}

// Valid reports whether d is one of the enumerated dust levels.
func (d DustLevel) Valid() bool {
	for _, l := range DustLevels {
		if d == l {
			return true
		}
	}
	return false
}

// Reading is one user-submitted snapshot of panel operating conditions.
type Reading struct {
	TemperatureC      float64   `json:"temperature_c"`       // °C
	HumidityPct       float64   `json:"humidity_pct"`        // 0..100
	DustLevel         DustLevel `json:"dust_level"`          // Low | Medium | High
	DaysSinceCleaning int       `json:"days_since_cleaning"` // >= 0
	PanelAgeYears     int       `json:"panel_age_years"`     // >= 0
}

// FeatureVector is a Reading encoded in the column order of a model schema.
type FeatureVector struct {
	Names  []string  `json:"names"`
	Values []float64 `json:"values"`
}

// Len returns the number of columns.
func (v FeatureVector) Len() int { return len(v.Names) }

// Get returns the value of the named column.
func (v FeatureVector) Get(name string) (float64, bool) {
	for i, n := range v.Names {
		if n == name {
			return v.Values[i], true
		}
	}
	return 0, false
}
