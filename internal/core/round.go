// Package core holds the domain types and the money/time arithmetic
// shared by the advisory and ledger components.
//
// Amounts are dollar values. Rounding is explicit and
// half-away-from-zero; relying on display formatting would drift under
// repeated additions and break the aggregation invariants.
package core

import "math"

// Round2 rounds to 2 decimal places, half away from zero.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// Round1 rounds to 1 decimal place, half away from zero.
func Round1(v float64) float64 {
	return math.Round(v*10) / 10
}
