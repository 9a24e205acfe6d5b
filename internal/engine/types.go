// Package engine implements the cost projection core: it turns a
// capacity, reliability rating, and inflation rate into a scaled
// construction cost breakdown, a 10-year compounding operating cost
// forecast, and a cumulative total-cost-of-ownership breakdown.
package engine

import "github.com/frontrange/dccost/internal/refdata"

// Rating is the datacenter reliability classification selecting which
// unit-cost column applies.
type Rating = refdata.Tier

const (
	TierIII Rating = refdata.TierIII
	TierIV  Rating = refdata.TierIV
)

// ForecastYears is the fixed operating forecast horizon.
const ForecastYears = 10

const (
	hoursPerYear      = 8760
	utilizationFactor = 0.90
)

// Synthesized line items that never come from the reference tables.
const (
	ComponentLandAcquisition = "Land acquisition"
	ComponentElectricity     = "Electricity"
	ComponentWater           = "Water"
	ComponentConstruction    = "Construction"
)

// ConstructionLineItem is one component of the construction breakdown.
type ConstructionLineItem struct {
	Component     string  `json:"component"`
	TotalCostUSDM float64 `json:"total_cost_usd_millions"`
}

// ConstructionBreakdown is the full construction cost result set.
// Items are sorted by cost descending; equal costs keep table order.
// The ordering is a presentation contract (chart bar order).
type ConstructionBreakdown struct {
	Items     []ConstructionLineItem `json:"items"`
	TotalUSDM float64                `json:"total_usd_millions"`
}

// ForecastEntry is one (year, component) cell of the operating
// forecast, in USD millions rounded to two decimals.
type ForecastEntry struct {
	Year           int     `json:"year"`
	Component      string  `json:"component"`
	AnnualCostUSDM float64 `json:"annual_cost_usd_millions"`
}

// OperatingForecast is the 10-year operating cost result set.
type OperatingForecast struct {
	// BaseYear is the first forecast year (the current calendar year
	// at computation time).
	BaseYear int `json:"base_year"`

	// Components lists the forecast components in table order:
	// operations table rows first, then Electricity and Water.
	Components []string `json:"components"`

	// Entries holds one row per (year, component), grouped by year.
	Entries []ForecastEntry `json:"entries"`

	// FirstYearTotalUSDM is the summed annual cost at the base year,
	// used for the summary label.
	FirstYearTotalUSDM float64 `json:"first_year_total_usd_millions"`
}

// TCOEntry is one slice of the total-cost-of-ownership breakdown:
// either the single "Construction" entry or a component's 10-year
// operating sum.
type TCOEntry struct {
	Component string  `json:"component"`
	ValueUSDM float64 `json:"value_usd_millions"`
}

// TCOBreakdown merges the construction total with the cumulative
// operating forecast into a single flat breakdown.
type TCOBreakdown struct {
	Entries        []TCOEntry `json:"entries"`
	GrandTotalUSDM float64    `json:"grand_total_usd_millions"`
}

// CostReport bundles the three result sets produced per request.
type CostReport struct {
	Capacity     string                `json:"capacity"`
	Rating       string                `json:"rating"`
	Construction ConstructionBreakdown `json:"construction"`
	Forecast     OperatingForecast     `json:"forecast"`
	TCO          TCOBreakdown          `json:"tco"`
}
