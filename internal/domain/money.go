package domain

import (
	"math"

	"github.com/shopspring/decimal"
)

// Round2 rounds a monetary value to 2 decimal places, half away from zero on
// the shortest decimal form of v (1.005 rounds to 1.01).
// Non-finite input is returned unchanged.
func Round2(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return v
	}
	return decimal.NewFromFloat(v).Round(2).InexactFloat64()
}

// IsFinite reports whether v is neither NaN nor infinite.
func IsFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
