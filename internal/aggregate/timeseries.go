// Kaiserhaus - Retail Order Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/kaiserhaus

package aggregate

import (
	"strings"
	"time"

	"github.com/tomtom215/kaiserhaus/internal/filter"
	"github.com/tomtom215/kaiserhaus/internal/table"
)

// Granularity is the width of a time bucket.
type Granularity int

const (
	Day Granularity = iota
	Week
	Month
)

// String returns the canonical frequency literal.
func (g Granularity) String() string {
	switch g {
	case Week:
		return "W"
	case Month:
		return "M"
	default:
		return "D"
	}
}

// ParseGranularity parses D/W/M or day/week/month. Empty means Day.
func ParseGranularity(s string) (Granularity, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "d", "day":
		return Day, nil
	case "w", "week":
		return Week, nil
	case "m", "month":
		return Month, nil
	}
	return Day, filter.NewBadFilter("freq", s, "expected D, W or M")
}

// Truncate returns the start of the bucket containing t, keyed on the wall-clock
// date of t and expressed in UTC. Weeks start on Monday.
func (g Granularity) Truncate(t time.Time) time.Time {
	y, m, d := t.Date()
	day := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	switch g {
	case Week:
		offset := (int(day.Weekday()) + 6) % 7
		return day.AddDate(0, 0, -offset)
	case Month:
		return time.Date(y, m, 1, 0, 0, 0, 0, time.UTC)
	default:
		return day
	}
}

// Next returns the start of the bucket after the one starting at t.
func (g Granularity) Next(t time.Time) time.Time {
	switch g {
	case Week:
		return t.AddDate(0, 0, 7)
	case Month:
		return t.AddDate(0, 1, 0)
	default:
		return t.AddDate(0, 0, 1)
	}
}

// Label formats a bucket start.
func (g Granularity) Label(t time.Time) string {
	if g == Month {
		return t.Format("2006-01")
	}
	return t.Format("2006-01-02")
}

// Bucket is one point of a time series. Value is null only for a Mean bucket
// without data.
type Bucket struct {
	Period string    `json:"period"`
	Start  time.Time `json:"-"`
	Value  *float64  `json:"value"`
	Count  int       `json:"count"`
}

// TimeSeries buckets ts at granularity g and reduces value per bucket. value
// may be nil for Count. Buckets span the observed minimum and maximum of the
// view with no gaps; empty buckets are zero (Count, Sum) or null (Mean).
func TimeSeries(v filter.View, ts, value *table.Column, g Granularity, r Reducer) []Bucket {
	series := TimeSeriesMulti(v, ts, []*table.Column{value}, g, r)
	out := make([]Bucket, len(series))
	for i, p := range series {
		out[i] = Bucket{Period: p.Period, Start: p.Start, Value: p.Values[0], Count: p.Counts[0]}
	}
	return out
}

// MultiBucket is one point of several series sharing a time axis.
type MultiBucket struct {
	Period string     `json:"period"`
	Start  time.Time  `json:"-"`
	Values []*float64 `json:"values"`
	Counts []int      `json:"counts"`
}

// TimeSeriesMulti reduces several value columns over one bucket axis. The axis
// is built from rows with a timestamp, independent of which values are present.
func TimeSeriesMulti(v filter.View, ts *table.Column, values []*table.Column, g Granularity, r Reducer) []MultiBucket {
	type cell struct {
		sums   []float64
		counts []int
	}
	buckets := make(map[int64]*cell)
	var first, last time.Time
	for _, i := range v.Indices() {
		t, ok := ts.Time(i)
		if !ok {
			continue
		}
		start := g.Truncate(t)
		if first.IsZero() || start.Before(first) {
			first = start
		}
		if last.IsZero() || start.After(last) {
			last = start
		}
		c := buckets[start.Unix()]
		if c == nil {
			c = &cell{sums: make([]float64, len(values)), counts: make([]int, len(values))}
			buckets[start.Unix()] = c
		}
		for j, col := range values {
			if r == Count || col == nil {
				c.counts[j]++
				continue
			}
			x, ok := col.Float(i)
			if !ok {
				continue
			}
			c.sums[j] += x
			c.counts[j]++
		}
	}
	if len(buckets) == 0 {
		return []MultiBucket{}
	}

	var out []MultiBucket
	for start := first; !start.After(last); start = g.Next(start) {
		b := MultiBucket{
			Period: g.Label(start),
			Start:  start,
			Values: make([]*float64, len(values)),
			Counts: make([]int, len(values)),
		}
		c := buckets[start.Unix()]
		for j := range values {
			var sum float64
			var n int
			if c != nil {
				sum, n = c.sums[j], c.counts[j]
			}
			b.Counts[j] = n
			b.Values[j] = reduce(r, sum, n)
		}
		out = append(out, b)
	}
	return out
}

func reduce(r Reducer, sum float64, n int) *float64 {
	var x float64
	switch r {
	case Count:
		x = float64(n)
	case Sum:
		x = sum
	case Mean:
		if n == 0 {
			return nil
		}
		x = sum / float64(n)
	}
	return &x
}
