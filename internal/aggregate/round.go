// Kaiserhaus - Retail Order Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/kaiserhaus

package aggregate

import (
	"math"

	"github.com/shopspring/decimal"
)

// roundBank rounds half to even at the given number of places.
func roundBank(v float64, places int32) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return v
	}
	f, _ := decimal.NewFromFloat(v).RoundBank(places).Float64()
	return f
}

// RoundCurrency rounds a monetary amount to 2 places, half to even.
func RoundCurrency(v float64) float64 {
	return roundBank(v, 2)
}

// RoundMinutes rounds a duration in minutes to 1 place, half to even.
func RoundMinutes(v float64) float64 {
	return roundBank(v, 1)
}

// RoundRatio rounds scores, percentages and other ratios to 2 places.
func RoundRatio(v float64) float64 {
	return roundBank(v, 2)
}

// RoundPtr applies round to a nullable value.
func RoundPtr(v *float64, round func(float64) float64) *float64 {
	if v == nil {
		return nil
	}
	r := round(*v)
	return &r
}
