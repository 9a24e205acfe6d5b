package refdata

import "math"

// waterUsage fixes the daily water draw and service pipe size for each
// supported capacity class.
type waterUsage struct {
	GallonsPerDay float64
	PipeSizeIn    int
}

var waterUsageByCapacity = map[string]waterUsage{
	"5MW":   {GallonsPerDay: 2500, PipeSizeIn: 2},
	"20MW":  {GallonsPerDay: 10000, PipeSizeIn: 3},
	"100MW": {GallonsPerDay: 50000, PipeSizeIn: 8},
}

// 2025 Denver water rates: monthly service charge by pipe diameter and
// raw water cost per 1,000 gallons.
var waterPipeMonthlyRate = map[int]float64{
	2: 91,
	3: 196,
	8: 1355,
}

const rawWaterCostPer1000Gal = 1.04

// GenerateWaterCost calculates the annual water cost in USD for a
// capacity class.
//
// The calculation:
//  1. Annual raw water cost = (gallons/day × 365 / 1000) × rate per 1,000 gallons
//  2. Annual pipe charge = monthly pipe rate × 12
//  3. Total = raw water cost + pipe charge, rounded to the nearest dollar
//
// Returns *UnsupportedCapacityError for any capacity outside the fixed
// set; the error enumerates the supported classes.
func GenerateWaterCost(capacity string) (float64, error) {
	usage, ok := waterUsageByCapacity[capacity]
	if !ok {
		return 0, &UnsupportedCapacityError{Capacity: capacity, Supported: SupportedCapacities}
	}

	annualGallons := usage.GallonsPerDay * 365
	rawWaterCost := (annualGallons / 1000) * rawWaterCostPer1000Gal
	pipeCharge := waterPipeMonthlyRate[usage.PipeSizeIn] * 12

	return math.Round(rawWaterCost + pipeCharge), nil
}
