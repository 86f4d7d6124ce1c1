// Package recommend suggests solar panels from a catalog for a budget and climate.
package recommend

import (
	"errors"
	"fmt"
	"math"
	"math/rand"
	"sort"
	"strings"
)

var (
	ErrInvalidBudget  = errors.New("budget must be a positive amount")
	ErrUnknownClimate = errors.New("unknown climate")
	ErrNoPanels       = errors.New("no panel fits the budget")
)

// Panel categories, cheapest first.
const (
	ThinFilm        = "Thin-film"
	Polycrystalline = "Polycrystalline"
	Monocrystalline = "Monocrystalline"
)

// Budget thresholds in rupees that move the preferred category up.
const (
	PolycrystallineFrom = 20000
	MonocrystallineFrom = 35000
)

// DefaultLimit is how many panels Recommend returns when no limit is given.
const DefaultLimit = 3

var (
	Companies  = []string{"Tata Power", "Luminous", "Adani Solar", "Vikram Solar", "Waaree"}
	PanelTypes = []string{Monocrystalline, Polycrystalline, ThinFilm}
	Climates   = []string{"Hot", "Sunny", "Temperate", "Cloudy"}
)

// Panel is one catalog entry.
type Panel struct {
	Company       string  `json:"company"`
	PanelType     string  `json:"panel_type"`
	EfficiencyPct float64 `json:"efficiency_pct"`
	PowerOutputW  int     `json:"power_output_w"`
	LifespanYears int     `json:"lifespan_years"`
	WarrantyYears int     `json:"warranty_years"`
	CostINR       int     `json:"cost_inr"`
	BestClimate   string  `json:"best_climate"`
}

// Generate builds a reproducible synthetic catalog of n panels.
// Types are drawn 0.4/0.4/0.2 (mono/poly/thin-film); the other columns uniformly.
func Generate(seed int64, n int) []Panel {
	rng := rand.New(rand.NewSource(seed))
	panels := make([]Panel, n)
	for i := range panels {
		panels[i] = Panel{
			Company:       Companies[rng.Intn(len(Companies))],
			PanelType:     drawType(rng),
			EfficiencyPct: 14 + rng.Float64()*8,
			PowerOutputW:  250 + rng.Intn(250),
			LifespanYears: 20 + rng.Intn(10),
			WarrantyYears: 10 + rng.Intn(15),
			CostINR:       10000 + rng.Intn(40000),
			BestClimate:   Climates[rng.Intn(len(Climates))],
		}
	}
	return panels
}

func drawType(rng *rand.Rand) string {
	switch p := rng.Float64(); {
	case p < 0.4:
		return Monocrystalline
	case p < 0.8:
		return Polycrystalline
	default:
		return ThinFilm
	}
}

// CategoryForBudget maps a budget to the panel type it can usually afford.
func CategoryForBudget(budget float64) string {
	switch {
	case budget < PolycrystallineFrom:
		return ThinFilm
	case budget < MonocrystallineFrom:
		return Polycrystalline
	default:
		return Monocrystalline
	}
}

// Catalog is read-only after construction and safe for concurrent use.
type Catalog struct {
	panels []Panel
}

// NewCatalog copies panels into a catalog.
func NewCatalog(panels []Panel) *Catalog {
	return &Catalog{panels: append([]Panel(nil), panels...)}
}

// Len returns the number of panels in the catalog.
func (c *Catalog) Len() int { return len(c.panels) }

// NormalizeClimate returns the canonical spelling of climate, ignoring case.
func NormalizeClimate(climate string) (string, error) {
	climate = strings.TrimSpace(climate)
	for _, cl := range Climates {
		if strings.EqualFold(cl, climate) {
			return cl, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownClimate, climate)
}

// Query selects panels.
type Query struct {
	Budget  float64
	Climate string
	Limit   int
}

// Match levels, from the narrowest filter to the widest.
const (
	MatchExact      = "type_and_climate"
	MatchTypeOnly   = "type"
	MatchBudgetOnly = "budget"
)

// Result is the ranked recommendation and which filter produced it.
type Result struct {
	Category string  `json:"category"`
	Climate  string  `json:"climate"`
	Match    string  `json:"match"`
	Panels   []Panel `json:"panels"`
}

// Recommend keeps panels within budget of the preferred category in the given climate.
// With none left it drops the climate, then the category. Survivors are ranked by efficiency.
func (c *Catalog) Recommend(q Query) (Result, error) {
	if math.IsNaN(q.Budget) || q.Budget <= 0 {
		return Result{}, ErrInvalidBudget
	}
	climate, err := NormalizeClimate(q.Climate)
	if err != nil {
		return Result{}, err
	}
	limit := q.Limit
	if limit <= 0 {
		limit = DefaultLimit
	}

	res := Result{Category: CategoryForBudget(q.Budget), Climate: climate}
	affordable := func(p Panel) bool { return float64(p.CostINR) <= q.Budget }
	levels := []struct {
		match string
		keep  func(Panel) bool
	}{
		{MatchExact, func(p Panel) bool {
			return affordable(p) && p.PanelType == res.Category && p.BestClimate == climate
		}},
		{MatchTypeOnly, func(p Panel) bool { return affordable(p) && p.PanelType == res.Category }},
		{MatchBudgetOnly, affordable},
	}
	for _, lvl := range levels {
		picked := c.filter(lvl.keep)
		if len(picked) == 0 {
			continue
		}
		sort.SliceStable(picked, func(i, j int) bool { return picked[i].EfficiencyPct > picked[j].EfficiencyPct })
		if len(picked) > limit {
			picked = picked[:limit]
		}
		res.Match = lvl.match
		res.Panels = picked
		return res, nil
	}
	return Result{}, fmt.Errorf("%w: %.0f", ErrNoPanels, q.Budget)
}

func (c *Catalog) filter(keep func(Panel) bool) []Panel {
	var out []Panel
	for _, p := range c.panels {
		if keep(p) {
			out = append(out, p)
		}
	}
	return out
}
