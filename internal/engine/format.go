package engine

import (
	"math"
	"strings"
	"unicode"
)

// formatComponentLabel turns a raw table component name into its
// display form: underscores become spaces, the first rune is
// upper-cased, the remainder lower-cased. "server_hardware" becomes
// "Server hardware". Display names are component identity throughout
// the result sets.
func formatComponentLabel(name string) string {
	s := strings.ToLower(strings.ReplaceAll(name, "_", " "))
	runes := []rune(s)
	if len(runes) > 0 {
		runes[0] = unicode.ToUpper(runes[0])
	}
	return string(runes)
}

// round0 rounds to the nearest whole unit (USD millions).
func round0(v float64) float64 {
	return math.Round(v)
}

// round2 rounds to two decimals (USD millions).
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
