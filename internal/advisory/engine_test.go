package advisory

import (
	"reflect"
	"testing"

	"solar_advisor/internal/models"
)

func wideRangeThresholds() Thresholds {
	t := DefaultThresholds()
	t.CriticalDustDays = 10
	t.OptimalUpper = 95
	return t
}

func codes(alerts []models.Alert) []string {
	out := make([]string, 0, len(alerts))
	for _, a := range alerts {
		out = append(out, a.Code)
	}
	return out
}

func countCode(alerts []models.Alert, code string) int {
	n := 0
	for _, a := range alerts {
		if a.Code == code {
			n++
		}
	}
	return n
}

func TestEngine_DustRule(t *testing.T) {
	e := NewEngine(wideRangeThresholds())

	cases := []struct {
		name       string
		dust       models.DustLevel
		days       int
		wantBase   int
		wantUrgent int
	}{
		{"low dust never fires", models.DustLow, 40, 0, 0},
		{"medium dust never fires", models.DustMedium, 40, 0, 0},
		{"high dust at threshold", models.DustHigh, 10, 1, 0},
		{"high dust past threshold", models.DustHigh, 15, 1, 1},
		{"high dust freshly cleaned", models.DustHigh, 0, 1, 0},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			rep := e.Advise(models.Reading{TemperatureC: 25, HumidityPct: 60, DustLevel: tc.dust, DaysSinceCleaning: tc.days}, 90)
			if got := countCode(rep.Alerts, models.AlertDustHigh); got != tc.wantBase {
				t.Errorf("base dust alerts: want %d, got %d", tc.wantBase, got)
			}
			if got := countCode(rep.Alerts, models.AlertDustUrgent); got != tc.wantUrgent {
				t.Errorf("urgent dust alerts: want %d, got %d", tc.wantUrgent, got)
			}
			for _, a := range rep.Alerts {
				if (a.Code == models.AlertDustHigh || a.Code == models.AlertDustUrgent) && a.Severity != models.SeverityCritical {
					t.Errorf("dust alert %s must be critical, got %s", a.Code, a.Severity)
				}
			}
		})
	}
}

func TestEngine_EfficiencyBands(t *testing.T) {
	e := NewEngine(wideRangeThresholds())
	bandCodes := []string{models.AlertEfficiencyCritical, models.AlertEfficiencyWarning, models.AlertEfficiencyOptimal}

	cases := []struct {
		eff          float64
		wantCode     string
		wantSeverity models.Severity
	}{
		{-5, models.AlertEfficiencyCritical, models.SeverityCritical},
		{70, models.AlertEfficiencyCritical, models.SeverityCritical},
		{74.999, models.AlertEfficiencyCritical, models.SeverityCritical},
		{75, models.AlertEfficiencyWarning, models.SeverityWarning},
		{84.9, models.AlertEfficiencyWarning, models.SeverityWarning},
		{85, models.AlertEfficiencyOptimal, models.SeverityInfo},
		{99, models.AlertEfficiencyOptimal, models.SeverityInfo},
	}
	for _, tc := range cases {
		rep := e.Advise(models.Reading{DustLevel: models.DustLow, DaysSinceCleaning: 2}, tc.eff)

		fired := 0
		for _, code := range bandCodes {
			fired += countCode(rep.Alerts, code)
		}
		if fired != 1 {
			t.Fatalf("eff=%v: want exactly one band alert, got %v", tc.eff, codes(rep.Alerts))
		}
		a := rep.Alerts[0]
		if a.Code != tc.wantCode || a.Severity != tc.wantSeverity {
			t.Errorf("eff=%v: want %s/%s, got %s/%s", tc.eff, tc.wantCode, tc.wantSeverity, a.Code, a.Severity)
		}
	}
}

func TestEngine_BandMagnitude(t *testing.T) {
	e := NewEngine(wideRangeThresholds())

	rep := e.Advise(models.Reading{DustLevel: models.DustLow}, 70)
	a := rep.Alerts[0]
	if a.Code != models.AlertEfficiencyCritical {
		t.Fatalf("want critical band alert, got %s", a.Code)
	}
	if a.Magnitude == nil || *a.Magnitude != 25.0 {
		t.Fatalf("magnitude: want 25, got %v", a.Magnitude)
	}
	if a.Message != "System underperforming by 25.0%. Immediate inspection recommended." {
		t.Fatalf("unexpected message %q", a.Message)
	}

	rep = e.Advise(models.Reading{DustLevel: models.DustLow}, 80)
	if m := rep.Alerts[0].Magnitude; m == nil || *m != 15.0 {
		t.Fatalf("warning magnitude: want 15, got %v", m)
	}

	rule := EfficiencyBandRule{CriticalEfficiency: 75, OptimalLower: 96, OptimalUpper: 97, CleaningIntervalDays: 14}
	alerts := rule.Evaluate(Input{Efficiency: 70})
	if *alerts[0].Magnitude != 27 {
		t.Fatalf("want 27, got %v", *alerts[0].Magnitude)
	}

	// A prediction above the upper bound yields a negative magnitude, reported unclamped.
	rule = EfficiencyBandRule{CriticalEfficiency: 75, OptimalLower: 85, OptimalUpper: 70, CleaningIntervalDays: 14}
	alerts = rule.Evaluate(Input{Efficiency: 80})
	if alerts[0].Code != models.AlertEfficiencyWarning || *alerts[0].Magnitude != -10 {
		t.Fatalf("unexpected alert %+v", alerts[0])
	}
}

func TestEngine_OptimalOverdueCleaning(t *testing.T) {
	e := NewEngine(wideRangeThresholds())

	rep := e.Advise(models.Reading{DustLevel: models.DustLow, DaysSinceCleaning: 20}, 90)
	a := rep.Alerts[0]
	if a.Code != models.AlertEfficiencyOptimal {
		t.Fatalf("want optimal alert, got %s", a.Code)
	}
	if a.NextCleaningInDays == nil || *a.NextCleaningInDays != -6 {
		t.Fatalf("next cleaning: want -6, got %v", a.NextCleaningInDays)
	}
	if a.Message != "Next recommended cleaning in -6 days." {
		t.Fatalf("unexpected message %q", a.Message)
	}
	if a.Magnitude != nil {
		t.Fatalf("optimal alert must not carry a magnitude")
	}
}

func TestEngine_AgeRule(t *testing.T) {
	e := NewEngine(wideRangeThresholds())
	for age := 0; age <= 15; age++ {
		rep := e.Advise(models.Reading{DustLevel: models.DustLow, PanelAgeYears: age}, 90)
		got := countCode(rep.Alerts, models.AlertPanelAge)
		want := 0
		if age > 8 {
			want = 1
		}
		if got != want {
			t.Errorf("age=%d: want %d age alerts, got %d", age, want, got)
		}
	}
}

func TestEngine_OrderAndDeterminism(t *testing.T) {
	e := NewEngine(wideRangeThresholds())
	r := models.Reading{TemperatureC: 33, HumidityPct: 70, DustLevel: models.DustHigh, DaysSinceCleaning: 15, PanelAgeYears: 10}

	first := e.Advise(r, 70)
	want := []string{models.AlertDustHigh, models.AlertDustUrgent, models.AlertEfficiencyCritical, models.AlertPanelAge}
	if got := codes(first.Alerts); !reflect.DeepEqual(got, want) {
		t.Fatalf("order: want %v, got %v", want, got)
	}
	for i := 0; i < 10; i++ {
		if again := e.Advise(r, 70); !reflect.DeepEqual(first, again) {
			t.Fatalf("advise not deterministic: %+v vs %+v", first, again)
		}
	}
	if first.HighestSeverity() != models.SeverityCritical {
		t.Fatalf("highest severity: want critical, got %s", first.HighestSeverity())
	}
}

func TestEngine_ReportRange(t *testing.T) {
	e := NewEngine(DefaultThresholds())
	rep := e.Advise(models.Reading{DustLevel: models.DustLow}, 90)
	if rep.OptimalRange != (models.EfficiencyRange{Lower: 85, Upper: 92}) {
		t.Fatalf("unexpected range %+v", rep.OptimalRange)
	}
	if rep.DeltaVsOptimal != 1.5 {
		t.Fatalf("delta: want 1.5, got %v", rep.DeltaVsOptimal)
	}
}

type constRule struct{ code string }

func (r constRule) Name() string { return r.code }
func (r constRule) Evaluate(Input) []models.Alert {
	return []models.Alert{{Severity: models.SeverityInfo, Code: r.code}}
}

func TestNewEngineWithRules_CustomOrder(t *testing.T) {
	e := NewEngineWithRules(DefaultThresholds(), constRule{"b"}, constRule{"a"}, AgeRule{AgeLimitYears: 1})
	rep := e.Advise(models.Reading{PanelAgeYears: 2}, 50)
	if got := codes(rep.Alerts); !reflect.DeepEqual(got, []string{"b", "a", models.AlertPanelAge}) {
		t.Fatalf("unexpected alerts %v", got)
	}
}

func TestThresholds_Validate(t *testing.T) {
	if err := DefaultThresholds().Validate(); err != nil {
		t.Fatalf("defaults must validate: %v", err)
	}
	bad := []Thresholds{
		{OptimalLower: 95, OptimalUpper: 85, CriticalEfficiency: 75, CleaningIntervalDays: 14},
		{OptimalLower: 85, OptimalUpper: 95, CriticalEfficiency: 90, CleaningIntervalDays: 14},
		{OptimalLower: 85, OptimalUpper: 95, CriticalEfficiency: 75, CriticalDustDays: -1, CleaningIntervalDays: 14},
		{OptimalLower: 85, OptimalUpper: 95, CriticalEfficiency: 75, CleaningIntervalDays: 0},
	}
	for i, th := range bad {
		if err := th.Validate(); err == nil {
			t.Errorf("case %d: expected validation error", i)
		}
	}
}
