package refdata

// Land requirements and pricing for the Front Range market. Acreage is
// keyed by capacity class; the per-acre price is a single fixed figure.
var landAcreage = map[string]int{
	"5MW":   4,
	"20MW":  15,
	"100MW": 35,
}

// landPricePerAcre is the fixed land price in USD per acre.
const landPricePerAcre = 1_000_000
