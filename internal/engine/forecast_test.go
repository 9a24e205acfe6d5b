package engine

import (
	"math"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildBaseItems(t *testing.T) {
	e := New(newStubProvider(), zerolog.Nop())

	base, err := e.buildBaseItems(TierIII, 20, "20MW", 2025)
	require.NoError(t, err)

	require.Len(t, base, 4)
	assert.Equal(t, "Staffing", base[0].component)
	assert.InDelta(t, 2.4, base[0].costUSDM, 1e-9)
	assert.Equal(t, "Hardware maintenance", base[1].component)
	assert.InDelta(t, 1.8, base[1].costUSDM, 1e-9)

	// Electricity: 88 $/MWh × 20 MW × 8760 h × 0.90 / 1e6 = 13.87584
	assert.Equal(t, ComponentElectricity, base[2].component)
	assert.InDelta(t, 13.87584, base[2].costUSDM, 1e-9)

	// Water: fixed annual cost for 20MW is $6148 ⇒ 0.006148 $M/year
	assert.Equal(t, ComponentWater, base[3].component)
	assert.InDelta(t, 0.006148, base[3].costUSDM, 1e-9)
}

func TestBuildBaseItems_MissingElectricityRate(t *testing.T) {
	e := New(newStubProvider(), zerolog.Nop())

	_, err := e.buildBaseItems(TierIII, 20, "20MW", 1999)

	var rateErr *MissingElectricityRateError
	require.ErrorAs(t, err, &rateErr)
	assert.Equal(t, "20MW", rateErr.Capacity)
	assert.Equal(t, 1999, rateErr.Year)
	assert.Contains(t, err.Error(), "20MW")
	assert.Contains(t, err.Error(), "1999")
}

// TestBuildForecast_CompoundingLaw verifies annual_cost(i) equals
// base × (1+r)^i within rounding tolerance for every year, and that
// year zero equals the rounded base cost.
func TestBuildForecast_CompoundingLaw(t *testing.T) {
	e := New(newStubProvider(), zerolog.Nop())
	const r = 0.03

	base, err := e.buildBaseItems(TierIII, 20, "20MW", 2025)
	require.NoError(t, err)
	forecast := e.buildForecast(base, 2025, r)

	require.Len(t, forecast.Entries, ForecastYears*len(base))

	baseCost := make(map[string]float64, len(base))
	for _, item := range base {
		baseCost[item.component] = item.costUSDM
	}

	for _, entry := range forecast.Entries {
		i := entry.Year - forecast.BaseYear
		want := baseCost[entry.Component] * math.Pow(1+r, float64(i))
		assert.InDelta(t, want, entry.AnnualCostUSDM, 0.01,
			"%s year %d", entry.Component, entry.Year)
		if i == 0 {
			assert.Equal(t, round2(baseCost[entry.Component]), entry.AnnualCostUSDM)
		}
	}
}

// TestBuildForecast_ZeroInflation: r=0 means all ten years carry the
// identical per-component cost.
func TestBuildForecast_ZeroInflation(t *testing.T) {
	e := New(newStubProvider(), zerolog.Nop())

	base, err := e.buildBaseItems(TierIII, 20, "20MW", 2025)
	require.NoError(t, err)
	forecast := e.buildForecast(base, 2025, 0)

	yearZero := make(map[string]float64)
	for _, entry := range forecast.Entries {
		if entry.Year == forecast.BaseYear {
			yearZero[entry.Component] = entry.AnnualCostUSDM
		}
	}
	for _, entry := range forecast.Entries {
		assert.Equal(t, yearZero[entry.Component], entry.AnnualCostUSDM,
			"%s year %d", entry.Component, entry.Year)
	}
}

// TestBuildForecast_Idempotent: the forecaster is a pure function of
// its inputs; two runs with identical inputs agree entry for entry.
func TestBuildForecast_Idempotent(t *testing.T) {
	e := New(newStubProvider(), zerolog.Nop())

	first, err := e.buildBaseItems(TierIII, 20, "20MW", 2025)
	require.NoError(t, err)
	second, err := e.buildBaseItems(TierIII, 20, "20MW", 2025)
	require.NoError(t, err)

	assert.Equal(t, e.buildForecast(first, 2025, 0.03), e.buildForecast(second, 2025, 0.03))
}

func TestBuildForecast_FirstYearTotal(t *testing.T) {
	e := New(newStubProvider(), zerolog.Nop())

	base, err := e.buildBaseItems(TierIII, 20, "20MW", 2025)
	require.NoError(t, err)
	forecast := e.buildForecast(base, 2025, 0.03)

	var want float64
	for _, entry := range forecast.Entries {
		if entry.Year == forecast.BaseYear {
			want += entry.AnnualCostUSDM
		}
	}
	assert.InDelta(t, want, forecast.FirstYearTotalUSDM, 1e-9)

	// 2.4 + 1.8 + 13.88 + 0.01
	assert.InDelta(t, 18.09, forecast.FirstYearTotalUSDM, 1e-9)
}
