package engine

import (
	"sort"

	"github.com/frontrange/dccost/internal/refdata"
)

// buildConstruction produces the construction breakdown for a request.
//
// Each table row costs rate × mw rounded to the nearest USD million,
// unless the row carries a precomputed total, which is used as-is. The
// land acquisition item is always synthesized from the acreage table
// and the fixed per-acre price, never taken from the table. Items are
// sorted by cost descending with a stable sort so equal costs keep
// table order.
func (e *Engine) buildConstruction(tier Rating, mw int, capacity string) (ConstructionBreakdown, error) {
	rows := e.ref.ConstructionTable(tier)

	items := make([]ConstructionLineItem, 0, len(rows)+1)
	for _, row := range rows {
		item := ConstructionLineItem{Component: formatComponentLabel(row.Component)}
		switch row.Kind {
		case refdata.PrecomputedTotal:
			item.TotalCostUSDM = row.Total
		default:
			item.TotalCostUSDM = round0(row.RatePerMW * float64(mw))
		}
		items = append(items, item)
	}

	acres, ok := e.ref.LandAcreage(capacity)
	if !ok {
		return ConstructionBreakdown{}, &refdata.UnsupportedCapacityError{
			Capacity:  capacity,
			Supported: refdata.SupportedCapacities,
		}
	}
	landCost := round2(float64(acres) * e.ref.LandPricePerAcre() / 1_000_000)
	items = append(items, ConstructionLineItem{
		Component:     ComponentLandAcquisition,
		TotalCostUSDM: landCost,
	})

	sort.SliceStable(items, func(i, j int) bool {
		return items[i].TotalCostUSDM > items[j].TotalCostUSDM
	})

	var total float64
	for _, item := range items {
		total += item.TotalCostUSDM
	}

	return ConstructionBreakdown{Items: items, TotalUSDM: total}, nil
}
