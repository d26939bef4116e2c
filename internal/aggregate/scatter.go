// Kaiserhaus - Retail Order Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/kaiserhaus

package aggregate

import (
	"time"

	"github.com/tomtom215/kaiserhaus/internal/filter"
	"github.com/tomtom215/kaiserhaus/internal/table"
)

// Point is one scatter pair.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Scatter returns the (x, y) pairs where both values are present, in row
// order. limit <= 0 means no limit.
func Scatter(v filter.View, x, y *table.Column, limit int) []Point {
	out := make([]Point, 0)
	for _, i := range v.Indices() {
		xv, ok := x.Float(i)
		if !ok {
			continue
		}
		yv, ok := y.Float(i)
		if !ok {
			continue
		}
		out = append(out, Point{X: xv, Y: yv})
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out
}

// Distinct returns the sorted unique non-missing text values of c.
func Distinct(v filter.View, c *table.Column) []string {
	set := make(map[string]struct{})
	for _, i := range v.Indices() {
		if s, ok := c.Text(i); ok {
			set[s] = struct{}{}
		}
	}
	return sortedKeys(set)
}

// ValueCount is one entry of a frequency table.
type ValueCount struct {
	Value string `json:"value"`
	Count int    `json:"count"`
}

// ValueCounts counts distinct text values of c, most frequent first, ties by
// value ascending. Missing cells are skipped. n <= 0 means no limit.
func ValueCounts(v filter.View, c *table.Column, n int) []ValueCount {
	groups := TopN(GroupCount(v, c, ByValue), n)
	out := make([]ValueCount, len(groups))
	for i, g := range groups {
		out[i] = ValueCount{Value: g.Key, Count: g.Count}
	}
	return out
}

// TimeRange returns the earliest and latest timestamp of c in the view. ok is
// false when no row has a timestamp.
func TimeRange(v filter.View, c *table.Column) (lo, hi time.Time, ok bool) {
	for _, i := range v.Indices() {
		t, present := c.Time(i)
		if !present {
			continue
		}
		if !ok || t.Before(lo) {
			lo = t
		}
		if !ok || t.After(hi) {
			hi = t
		}
		ok = true
	}
	return lo, hi, ok
}
