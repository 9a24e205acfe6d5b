package engine

import (
	"github.com/frontrange/dccost/internal/refdata"
)

// stubProvider is an in-memory Provider with fully scripted tables.
type stubProvider struct {
	construction map[Rating][]refdata.ConstructionItem
	operations   map[Rating][]refdata.OperationsItem
	electricity  map[string]map[int]float64
	acreage      map[string]int
	pricePerAcre float64
	water        map[string]float64
}

func (s *stubProvider) ConstructionTable(tier refdata.Tier) []refdata.ConstructionItem {
	return s.construction[tier]
}

func (s *stubProvider) OperationsTable(tier refdata.Tier) []refdata.OperationsItem {
	return s.operations[tier]
}

func (s *stubProvider) ElectricityRate(capacity string, year int) (float64, bool) {
	rate, ok := s.electricity[capacity][year]
	return rate, ok
}

func (s *stubProvider) LandAcreage(capacity string) (int, bool) {
	acres, ok := s.acreage[capacity]
	return acres, ok
}

func (s *stubProvider) LandPricePerAcre() float64 { return s.pricePerAcre }

func (s *stubProvider) WaterAnnualCost(capacity string) (float64, error) {
	cost, ok := s.water[capacity]
	if !ok {
		return 0, &refdata.UnsupportedCapacityError{
			Capacity:  capacity,
			Supported: refdata.SupportedCapacities,
		}
	}
	return cost, nil
}

// newStubProvider returns a small deterministic reference set:
// two construction rows, two operations rows, and 20MW-only land,
// water, and 2025 electricity data.
func newStubProvider() *stubProvider {
	return &stubProvider{
		construction: map[Rating][]refdata.ConstructionItem{
			TierIII: {
				{Component: "server_hardware", Kind: refdata.RatePerMW, RatePerMW: 7.0},
				{Component: "cooling_systems", Kind: refdata.RatePerMW, RatePerMW: 1.9},
			},
			TierIV: {
				{Component: "server_hardware", Kind: refdata.RatePerMW, RatePerMW: 7.5},
				{Component: "cooling_systems", Kind: refdata.RatePerMW, RatePerMW: 2.5},
			},
		},
		operations: map[Rating][]refdata.OperationsItem{
			TierIII: {
				{Component: "staffing", RatePerMW: 0.12},
				{Component: "hardware_maintenance", RatePerMW: 0.09},
			},
			TierIV: {
				{Component: "staffing", RatePerMW: 0.16},
				{Component: "hardware_maintenance", RatePerMW: 0.11},
			},
		},
		electricity:  map[string]map[int]float64{"20MW": {2025: 88}},
		acreage:      map[string]int{"20MW": 15},
		pricePerAcre: 1_000_000,
		water:        map[string]float64{"20MW": 6148},
	}
}
