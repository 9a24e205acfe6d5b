package engine

import "fmt"

// InvalidCapacityFormatError reports a capacity token that could not be
// reduced to an integer megawatt value.
type InvalidCapacityFormatError struct {
	Token string
}

func (e *InvalidCapacityFormatError) Error() string {
	return fmt.Sprintf("invalid capacity format: could not extract MW from %q", e.Token)
}

// InvalidRatingError reports a reliability rating that is neither
// "Tier III" nor "Tier IV". An unknown rating is rejected, never
// coerced to a default tier.
type InvalidRatingError struct {
	Value string
}

func (e *InvalidRatingError) Error() string {
	return fmt.Sprintf("invalid reliability rating %q: must be \"Tier III\" or \"Tier IV\"", e.Value)
}

// InvalidInflationRateError reports an inflation rate outside [0, 1).
type InvalidInflationRateError struct {
	Rate float64
}

func (e *InvalidInflationRateError) Error() string {
	return fmt.Sprintf("invalid inflation rate %v: must be in [0, 1)", e.Rate)
}

// MissingElectricityRateError reports that no electricity rate row
// matches the capacity class and calendar year.
type MissingElectricityRateError struct {
	Capacity string
	Year     int
}

func (e *MissingElectricityRateError) Error() string {
	return fmt.Sprintf("no electricity rate found for %s in %d", e.Capacity, e.Year)
}
