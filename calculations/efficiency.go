// Package calculations holds the fuel-efficiency and odometer math used by the
// dashboard, the analytics chart and the maintenance status. Everything here is
// pure: no I/O, no shared state, safe for concurrent use.
package calculations

import (
	"math"
	"math/big"
	"strconv"
)

// CalculateEfficiency converts a distance and the fuel used to cover it into a
// single efficiency figure (distance per unit of fuel), rounded to one decimal.
// ok is false when either input is not finite, fuelUsed <= 0 or distance < 0.
func CalculateEfficiency(distance, fuelUsed float64) (value float64, ok bool) {
	if !isFinite(distance) || !isFinite(fuelUsed) || fuelUsed <= 0 || distance < 0 {
		return 0, false
	}
	return RoundToTenth(distance / fuelUsed), true
}

// EfficiencyPtr is CalculateEfficiency for JSON-facing code where an undefined
// figure is rendered as null.
func EfficiencyPtr(distance, fuelUsed float64) *float64 {
	v, ok := CalculateEfficiency(distance, fuelUsed)
	if !ok {
		return nil
	}
	return &v
}

// RoundToTenth rounds a non-negative value to one fractional digit using the
// exact binary value of v, with ties rounded up.
func RoundToTenth(v float64) float64 {
	if !isFinite(v) || v < 0 || v >= 1e21 {
		return v
	}
	x := new(big.Float).SetPrec(256).SetFloat64(v)
	x.Mul(x, big.NewFloat(10))
	x.Add(x, big.NewFloat(0.5))
	n, _ := x.Int(nil)
	out, err := strconv.ParseFloat(n.String()+"e-1", 64)
	if err != nil {
		return v
	}
	return out
}

// RoundTo rounds v to the given number of decimals. It is used for display
// values only; efficiency figures go through RoundToTenth.
func RoundTo(v float64, precision int) float64 {
	ratio := math.Pow(10, float64(precision))
	return math.Round(v*ratio) / ratio
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
