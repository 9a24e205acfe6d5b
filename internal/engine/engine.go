package engine

import (
	"time"

	"github.com/rs/zerolog"

	"github.com/frontrange/dccost/internal/refdata"
)

// Engine computes cost reports from the reference tables. Every call
// recomputes from scratch; no results are cached across requests.
type Engine struct {
	ref    refdata.Provider
	logger zerolog.Logger
	now    func() time.Time
}

// Option configures an Engine.
type Option func(*Engine)

// WithClock overrides the clock used to determine the current calendar
// year. Intended for tests.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// New creates an Engine backed by the given reference data provider.
func New(ref refdata.Provider, logger zerolog.Logger, opts ...Option) *Engine {
	e := &Engine{
		ref:    ref,
		logger: logger.With().Str("component", "engine").Logger(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// ComputeCosts produces the three result sets for a project request:
// the construction breakdown, the 10-year operating forecast, and the
// cumulative total-cost-of-ownership breakdown.
//
// capacity is a free-form token such as "20MW"; inflationRate is a
// decimal in [0, 1) applied compounding over the forecast horizon.
// Errors are terminal for the request; there are no partial results
// and no internal fallbacks.
func (e *Engine) ComputeCosts(capacity string, rating Rating, inflationRate float64) (*CostReport, error) {
	mw, canonical, err := ParseCapacity(capacity)
	if err != nil {
		return nil, err
	}
	if inflationRate < 0 || inflationRate >= 1 {
		return nil, &InvalidInflationRateError{Rate: inflationRate}
	}

	construction, err := e.buildConstruction(rating, mw, canonical)
	if err != nil {
		return nil, err
	}

	year := e.now().Year()
	base, err := e.buildBaseItems(rating, mw, canonical, year)
	if err != nil {
		return nil, err
	}
	forecast := e.buildForecast(base, year, inflationRate)

	tco := buildTCO(construction, forecast)

	e.logger.Debug().
		Str("capacity", canonical).
		Str("rating", rating.String()).
		Float64("inflation_rate", inflationRate).
		Float64("construction_total", construction.TotalUSDM).
		Float64("first_year_om", forecast.FirstYearTotalUSDM).
		Float64("tco_grand_total", tco.GrandTotalUSDM).
		Msg("cost report computed")

	return &CostReport{
		Capacity:     canonical,
		Rating:       rating.String(),
		Construction: construction,
		Forecast:     forecast,
		TCO:          tco,
	}, nil
}
