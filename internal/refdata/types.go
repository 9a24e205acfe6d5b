package refdata

import (
	"fmt"
	"strings"
)

// Tier selects which reliability-rating cost column applies.
// Tier III and Tier IV are the industry datacenter reliability
// classifications; each maps to its own unit-cost column in the
// construction and operations tables.
type Tier int

const (
	TierIII Tier = iota
	TierIV
)

// String returns the display form, e.g. "Tier III".
func (t Tier) String() string {
	if t == TierIV {
		return "Tier IV"
	}
	return "Tier III"
}

// SourceKind tags how a construction line item's cost is derived.
type SourceKind int

const (
	// RatePerMW means the cost is a per-megawatt rate that must be
	// scaled by the requested capacity.
	RatePerMW SourceKind = iota

	// PrecomputedTotal means the table already carries the final cost
	// and no scaling applies.
	PrecomputedTotal
)

// ConstructionItem is one row of the construction cost table with the
// tier column already resolved. The source kind is fixed at load time,
// not inferred per call.
type ConstructionItem struct {
	// Component is the raw table name, e.g. "server_hardware".
	Component string

	Kind SourceKind

	// RatePerMW is the unit cost in USD millions per MW. Valid when
	// Kind == RatePerMW.
	RatePerMW float64

	// Total is the precomputed cost in USD millions. Valid when
	// Kind == PrecomputedTotal.
	Total float64
}

// OperationsItem is one row of the operations cost table with the tier
// column resolved to a per-MW annual rate in USD millions.
type OperationsItem struct {
	Component string
	RatePerMW float64
}

// Provider supplies the reference tables the projection engine consumes.
// Implementations must return rows in a deterministic table order and
// must not mutate returned data between calls.
type Provider interface {
	// ConstructionTable returns the ordered construction cost rows for
	// the given tier.
	ConstructionTable(tier Tier) []ConstructionItem

	// OperationsTable returns the ordered operations cost rows for the
	// given tier.
	OperationsTable(tier Tier) []OperationsItem

	// ElectricityRate returns the $/MWh rate for a capacity class and
	// calendar year. Returns (rate, true) if found, (0, false) if not.
	ElectricityRate(capacity string, year int) (float64, bool)

	// LandAcreage returns the acreage required for a capacity class.
	// Returns (acres, true) if found, (0, false) if not.
	LandAcreage(capacity string) (int, bool)

	// LandPricePerAcre returns the fixed land price in USD per acre.
	LandPricePerAcre() float64

	// WaterAnnualCost returns the annual water cost in USD for a
	// capacity class. Fails with *UnsupportedCapacityError for a
	// capacity outside the fixed set.
	WaterAnnualCost(capacity string) (float64, error)
}

// UnsupportedCapacityError reports a land or water lookup for a
// capacity outside the fixed supported set.
type UnsupportedCapacityError struct {
	Capacity  string
	Supported []string
}

func (e *UnsupportedCapacityError) Error() string {
	return fmt.Sprintf("unsupported capacity: %s. Choose from [%s]",
		e.Capacity, strings.Join(e.Supported, " "))
}

// DataFileError reports a reference data file that could not be loaded
// or written. It wraps the underlying I/O or parse error.
type DataFileError struct {
	Path string
	Err  error
}

func (e *DataFileError) Error() string {
	return fmt.Sprintf("reference data file %s: %v", e.Path, e.Err)
}

func (e *DataFileError) Unwrap() error { return e.Err }
