// Kaiserhaus - Retail Order Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/kaiserhaus

package aggregate

import (
	"math"
	"sort"
	"strconv"

	"github.com/tomtom215/kaiserhaus/internal/filter"
	"github.com/tomtom215/kaiserhaus/internal/table"
)

// DefaultPercentiles are the boxplot percentiles.
var DefaultPercentiles = []float64{50, 75, 90}

// DefaultBins is the histogram bin count when the caller gives none.
const DefaultBins = 10

// PercentileRow summarizes one group's distribution. Percentiles are keyed
// "p50", "p75", ...
type PercentileRow struct {
	Group       string             `json:"group"`
	Count       int                `json:"count"`
	Min         float64            `json:"min"`
	Max         float64            `json:"max"`
	Percentiles map[string]float64 `json:"percentiles"`
}

// PercentileTable computes percentiles of value per group. Groups with no
// values are omitted; rows are ordered by group ascending.
func PercentileTable(v filter.View, group, value *table.Column, percentiles []float64) []PercentileRow {
	if len(percentiles) == 0 {
		percentiles = DefaultPercentiles
	}
	samples := make(map[string][]float64)
	for _, i := range v.Indices() {
		k, ok := group.Text(i)
		if !ok {
			continue
		}
		x, ok := value.Float(i)
		if !ok {
			continue
		}
		samples[k] = append(samples[k], x)
	}

	keys := make([]string, 0, len(samples))
	for k := range samples {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make([]PercentileRow, 0, len(keys))
	for _, k := range keys {
		xs := samples[k]
		sort.Float64s(xs)
		row := PercentileRow{
			Group:       k,
			Count:       len(xs),
			Min:         xs[0],
			Max:         xs[len(xs)-1],
			Percentiles: make(map[string]float64, len(percentiles)),
		}
		for _, p := range percentiles {
			row.Percentiles[PercentileKey(p)] = Quantile(xs, p/100)
		}
		out = append(out, row)
	}
	return out
}

// PercentileKey names a percentile, e.g. 50 -> "p50".
func PercentileKey(p float64) string {
	return "p" + strconv.FormatFloat(p, 'f', -1, 64)
}

// Quantile returns the q-quantile (0..1) of sorted xs using linear
// interpolation between closest ranks. xs must be non-empty.
func Quantile(sorted []float64, q float64) float64 {
	if len(sorted) == 1 {
		return sorted[0]
	}
	q = math.Max(0, math.Min(1, q))
	rank := q * float64(len(sorted)-1)
	lo := int(math.Floor(rank))
	hi := int(math.Ceil(rank))
	return sorted[lo] + (sorted[hi]-sorted[lo])*(rank-float64(lo))
}

// Bin is one histogram bucket covering [Lower, Upper); the last bucket also
// includes Upper.
type Bin struct {
	Lower float64 `json:"lower"`
	Upper float64 `json:"upper"`
	Count int     `json:"count"`
}

// Histogram counts value into equal-width bins over its observed range. No
// values gives an empty list; a constant column gives a single bin.
func Histogram(v filter.View, value *table.Column, bins int) []Bin {
	if bins <= 0 {
		bins = DefaultBins
	}
	xs := make([]float64, 0, v.Len())
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, i := range v.Indices() {
		x, ok := value.Float(i)
		if !ok {
			continue
		}
		xs = append(xs, x)
		lo = math.Min(lo, x)
		hi = math.Max(hi, x)
	}
	if len(xs) == 0 {
		return []Bin{}
	}
	if lo == hi {
		return []Bin{{Lower: lo, Upper: hi, Count: len(xs)}}
	}

	width := (hi - lo) / float64(bins)
	out := make([]Bin, bins)
	for b := range out {
		out[b].Lower = lo + float64(b)*width
		out[b].Upper = lo + float64(b+1)*width
	}
	out[bins-1].Upper = hi
	for _, x := range xs {
		b := int((x - lo) / width)
		if b >= bins {
			b = bins - 1
		}
		out[b].Count++
	}
	return out
}

// Stats is a numeric column description.
type Stats struct {
	Count int      `json:"count"`
	Mean  *float64 `json:"mean"`
	Std   *float64 `json:"std"`
	Min   *float64 `json:"min"`
	P25   *float64 `json:"p25"`
	P50   *float64 `json:"p50"`
	P75   *float64 `json:"p75"`
	Max   *float64 `json:"max"`
}

// Describe returns count, mean, sample standard deviation, min, quartiles and
// max of value. Everything but Count is null without values; Std is null with
// fewer than two.
func Describe(v filter.View, value *table.Column) Stats {
	xs := make([]float64, 0, v.Len())
	for _, i := range v.Indices() {
		if x, ok := value.Float(i); ok {
			xs = append(xs, x)
		}
	}
	s := Stats{Count: len(xs)}
	if len(xs) == 0 {
		return s
	}
	sort.Float64s(xs)

	var sum float64
	for _, x := range xs {
		sum += x
	}
	mean := sum / float64(len(xs))
	s.Mean = &mean
	if len(xs) > 1 {
		var ss float64
		for _, x := range xs {
			ss += (x - mean) * (x - mean)
		}
		std := math.Sqrt(ss / float64(len(xs)-1))
		s.Std = &std
	}
	s.Min = ptr(xs[0])
	s.P25 = ptr(Quantile(xs, 0.25))
	s.P50 = ptr(Quantile(xs, 0.50))
	s.P75 = ptr(Quantile(xs, 0.75))
	s.Max = ptr(xs[len(xs)-1])
	return s
}

func ptr(x float64) *float64 {
	return &x
}
