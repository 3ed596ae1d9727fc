package calc

import (
	"math"

	"github.com/shopspring/decimal"
)

// RoundTo rounds half away from zero to the given number of decimal places.
// Negative places round to tens, hundreds and so on.
func RoundTo(value float64, places int32) float64 {
	if !isFinite(value) {
		return value
	}
	return decimal.NewFromFloat(value).Round(places).InexactFloat64()
}

// Round2 rounds to cents.
func Round2(value float64) float64 {
	return RoundTo(value, 2)
}

// RoundDown floors to the given number of decimal places.
// RoundDown(1_234_567, -5) == 1_200_000.
func RoundDown(value float64, places int32) float64 {
	if !isFinite(value) {
		return value
	}
	return decimal.NewFromFloat(value).RoundFloor(places).InexactFloat64()
}

// SafeDiv returns numerator/denominator, or 0 when the denominator is zero.
func SafeDiv(numerator, denominator float64) float64 {
	if denominator == 0 {
		return 0
	}
	return numerator / denominator
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
