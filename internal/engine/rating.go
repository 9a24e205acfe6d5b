package engine

import "strings"

// ParseRating parses a reliability rating string. It accepts
// "Tier III" and "Tier IV" case-insensitively, tolerating extra
// whitespace between the words.
//
// Returns *InvalidRatingError for anything else; an unknown rating
// never degrades to a default tier.
func ParseRating(s string) (Rating, error) {
	normalized := strings.ToUpper(strings.Join(strings.Fields(s), " "))
	switch normalized {
	case "TIER III":
		return TierIII, nil
	case "TIER IV":
		return TierIV, nil
	default:
		return TierIII, &InvalidRatingError{Value: s}
	}
}
