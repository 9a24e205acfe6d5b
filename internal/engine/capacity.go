package engine

import (
	"strconv"
	"strings"
)

// ParseCapacity normalizes a free-form capacity token and extracts the
// integer megawatt value from its required "MW" suffix.
//
// The token is trimmed and upper-cased first, so " 20mw " parses to
// (20, "20MW"). Canonical is the normalized token used as the lookup
// key for land, water, and electricity tables.
//
// Returns *InvalidCapacityFormatError carrying the original token when
// the remainder does not parse as a positive integer.
func ParseCapacity(token string) (mw int, canonical string, err error) {
	canonical = strings.ToUpper(strings.TrimSpace(token))
	canonical = strings.ReplaceAll(canonical, " ", "")

	digits, found := strings.CutSuffix(canonical, "MW")
	if !found {
		return 0, "", &InvalidCapacityFormatError{Token: token}
	}

	mw, perr := strconv.Atoi(digits)
	if perr != nil || mw <= 0 {
		return 0, "", &InvalidCapacityFormatError{Token: token}
	}
	return mw, canonical, nil
}
