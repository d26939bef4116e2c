// Kaiserhaus - Retail Order Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/kaiserhaus

package dashboard

import (
	"github.com/tomtom215/kaiserhaus/internal/aggregate"
	"github.com/tomtom215/kaiserhaus/internal/filter"
	"github.com/tomtom215/kaiserhaus/internal/table"
)

func dateRange(v filter.View, ts *table.Column) *DateRange {
	lo, hi, ok := aggregate.TimeRange(v, ts)
	if !ok {
		return nil
	}
	return &DateRange{Min: lo.Format(table.TimestampLayout), Max: hi.Format(table.TimestampLayout)}
}

func currency(v *float64) *float64 {
	return aggregate.RoundPtr(v, aggregate.RoundCurrency)
}

func minutes(v *float64) *float64 {
	return aggregate.RoundPtr(v, aggregate.RoundMinutes)
}

func ratio(v *float64) *float64 {
	return aggregate.RoundPtr(v, aggregate.RoundRatio)
}

// ValueBin is a rounded histogram bin.
type ValueBin struct {
	Lower float64 `json:"lower"`
	Upper float64 `json:"upper"`
	Count int     `json:"count"`
}

func bins(in []aggregate.Bin, round func(float64) float64) []ValueBin {
	out := make([]ValueBin, len(in))
	for i, b := range in {
		out[i] = ValueBin{Lower: round(b.Lower), Upper: round(b.Upper), Count: b.Count}
	}
	return out
}
