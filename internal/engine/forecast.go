package engine

import "math"

// baseItem is a component's year-0, pre-inflation annual cost.
type baseItem struct {
	component string
	costUSDM  float64
}

// buildBaseItems assembles the pre-inflation annual cost per component:
// every operations table row scaled by MW, plus the synthesized
// Electricity and Water items.
func (e *Engine) buildBaseItems(tier Rating, mw int, capacity string, year int) ([]baseItem, error) {
	rows := e.ref.OperationsTable(tier)

	items := make([]baseItem, 0, len(rows)+2)
	for _, row := range rows {
		items = append(items, baseItem{
			component: formatComponentLabel(row.Component),
			costUSDM:  row.RatePerMW * float64(mw),
		})
	}

	// Electricity: $/MWh × MW × hours/year × utilization, in USD millions.
	// The 0.90 utilization factor is fixed, not user-configurable.
	rate, ok := e.ref.ElectricityRate(capacity, year)
	if !ok {
		return nil, &MissingElectricityRateError{Capacity: capacity, Year: year}
	}
	electricity := rate * float64(mw) * hoursPerYear * utilizationFactor / 1_000_000
	items = append(items, baseItem{component: ComponentElectricity, costUSDM: electricity})

	water, err := e.ref.WaterAnnualCost(capacity)
	if err != nil {
		return nil, err
	}
	items = append(items, baseItem{component: ComponentWater, costUSDM: water / 1_000_000})

	return items, nil
}

// buildForecast compounds the base items over the 10-year horizon:
// annual_cost(year0+i) = base × (1+r)^i, rounded to two decimals. The
// inflation rate applies uniformly to every component.
func (e *Engine) buildForecast(base []baseItem, year int, inflationRate float64) OperatingForecast {
	components := make([]string, 0, len(base))
	for _, item := range base {
		components = append(components, item.component)
	}

	entries := make([]ForecastEntry, 0, ForecastYears*len(base))
	var firstYearTotal float64
	for i := 0; i < ForecastYears; i++ {
		factor := math.Pow(1+inflationRate, float64(i))
		for _, item := range base {
			cost := round2(item.costUSDM * factor)
			entries = append(entries, ForecastEntry{
				Year:           year + i,
				Component:      item.component,
				AnnualCostUSDM: cost,
			})
			if i == 0 {
				firstYearTotal += cost
			}
		}
	}

	return OperatingForecast{
		BaseYear:           year,
		Components:         components,
		Entries:            entries,
		FirstYearTotalUSDM: firstYearTotal,
	}
}
