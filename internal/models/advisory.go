package models

import "time"

// Severity ranks an alert. Higher values are more urgent.
type Severity string

const (
	SeverityInfo     Severity = "info"
	SeverityWarning  Severity = "warning"
	SeverityCritical Severity = "critical"
)

// Rank orders severities: info < warning < critical. Unknown values rank below info.
func (s Severity) Rank() int {
	switch s {
	case SeverityInfo:
		return 1
	case SeverityWarning:
		return 2
	case SeverityCritical:
		return 3
	default:
		return 0
	}
}

// Alert codes emitted by the advisory rules.
const (
	AlertDustHigh           = "dust_high"
	AlertDustUrgent         = "dust_urgent"
	AlertEfficiencyCritical = "efficiency_critical"
	AlertEfficiencyWarning  = "efficiency_warning"
	AlertEfficiencyOptimal  = "efficiency_optimal"
	AlertPanelAge           = "panel_age"
)

// Alert is a severity-tagged maintenance recommendation.
type Alert struct {
	Severity Severity `json:"severity"`
	Code     string   `json:"code"`
	Title    string   `json:"title"`
	Message  string   `json:"message"`
	// Magnitude is optimal upper bound minus predicted efficiency; negative means above optimal.
	Magnitude *float64 `json:"magnitude,omitempty"`
	// NextCleaningInDays is negative when cleaning is already overdue.
	NextCleaningInDays *int `json:"next_cleaning_in_days,omitempty"`
}

// EfficiencyRange is the configured optimal efficiency band in percent.
type EfficiencyRange struct {
	Lower float64 `json:"lower"`
	Upper float64 `json:"upper"`
}

// Mid returns the middle of the range.
func (r EfficiencyRange) Mid() float64 { return (r.Lower + r.Upper) / 2 }

// AdvisoryReport is the outcome of one encode → predict → advise run.
type AdvisoryReport struct {
	PredictionID   string          `json:"prediction_id,omitempty"`
	Efficiency     float64         `json:"efficiency"`
	OptimalRange   EfficiencyRange `json:"optimal_range"`
	DeltaVsOptimal float64         `json:"delta_vs_optimal"`
	Alerts         []Alert         `json:"alerts"`
	CreatedAt      time.Time       `json:"created_at,omitempty"`
}

// HighestSeverity returns the most urgent alert severity, or "" when there are no alerts.
func (r AdvisoryReport) HighestSeverity() Severity {
	var top Severity
	for _, a := range r.Alerts {
		if a.Severity.Rank() > top.Rank() {
			top = a.Severity
		}
	}
	return top
}
