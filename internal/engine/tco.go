package engine

// buildTCO merges the construction total with the 10-year sum per
// forecast component into a single flat breakdown. Construction comes
// first, then components in forecast order; the grand total is the sum
// of every entry. The two cost categories are independent and are
// combined only here.
func buildTCO(construction ConstructionBreakdown, forecast OperatingForecast) TCOBreakdown {
	sums := make(map[string]float64, len(forecast.Components))
	for _, entry := range forecast.Entries {
		sums[entry.Component] += entry.AnnualCostUSDM
	}

	entries := make([]TCOEntry, 0, len(forecast.Components)+1)
	entries = append(entries, TCOEntry{
		Component: ComponentConstruction,
		ValueUSDM: construction.TotalUSDM,
	})
	for _, component := range forecast.Components {
		entries = append(entries, TCOEntry{Component: component, ValueUSDM: sums[component]})
	}

	var grand float64
	for _, entry := range entries {
		grand += entry.ValueUSDM
	}

	return TCOBreakdown{Entries: entries, GrandTotalUSDM: grand}
}
