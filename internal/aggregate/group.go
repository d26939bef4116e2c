// Kaiserhaus - Retail Order Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/kaiserhaus

package aggregate

import (
	"sort"

	"github.com/tomtom215/kaiserhaus/internal/filter"
	"github.com/tomtom215/kaiserhaus/internal/table"
)

// Order selects the sort order of grouped results.
type Order int

const (
	// ByValue sorts by value descending, ties by key ascending.
	ByValue Order = iota
	// ByKey sorts by key ascending.
	ByKey
)

// Reducer selects how values in a group or bucket are combined.
type Reducer int

const (
	Count Reducer = iota
	Sum
	Mean
)

// Group is one grouped result. Count is the number of rows (GroupCount) or
// of non-missing values (GroupSum, GroupMean) behind Value.
type Group struct {
	Key   string  `json:"key"`
	Value float64 `json:"value"`
	Count int     `json:"count"`
}

type acc struct {
	sum float64
	n   int
}

// GroupCount counts rows per key. Rows with a missing key are skipped.
func GroupCount(v filter.View, key *table.Column, order Order) []Group {
	counts := make(map[string]int)
	for _, i := range v.Indices() {
		k, ok := key.Text(i)
		if !ok {
			continue
		}
		counts[k]++
	}
	out := make([]Group, 0, len(counts))
	for k, n := range counts {
		out = append(out, Group{Key: k, Value: float64(n), Count: n})
	}
	sortGroups(out, order)
	return out
}

// GroupSum sums value per key. Rows with a missing key or value are skipped.
func GroupSum(v filter.View, key, value *table.Column, order Order) []Group {
	return reduceGroups(v, key, value, Sum, order)
}

// GroupMean averages value per key. Groups without any value are omitted.
func GroupMean(v filter.View, key, value *table.Column, order Order) []Group {
	return reduceGroups(v, key, value, Mean, order)
}

func reduceGroups(v filter.View, key, value *table.Column, r Reducer, order Order) []Group {
	groups := make(map[string]*acc)
	for _, i := range v.Indices() {
		k, ok := key.Text(i)
		if !ok {
			continue
		}
		x, ok := value.Float(i)
		if !ok {
			continue
		}
		a := groups[k]
		if a == nil {
			a = &acc{}
			groups[k] = a
		}
		a.sum += x
		a.n++
	}
	out := make([]Group, 0, len(groups))
	for k, a := range groups {
		g := Group{Key: k, Value: a.sum, Count: a.n}
		if r == Mean {
			g.Value = a.sum / float64(a.n)
		}
		out = append(out, g)
	}
	sortGroups(out, order)
	return out
}

func sortGroups(groups []Group, order Order) {
	sort.Slice(groups, func(a, b int) bool {
		if order == ByValue && groups[a].Value != groups[b].Value {
			return groups[a].Value > groups[b].Value
		}
		return groups[a].Key < groups[b].Key
	})
}

// TopN returns the first n groups. n <= 0 means no limit.
func TopN(groups []Group, n int) []Group {
	if n <= 0 || n >= len(groups) {
		return groups
	}
	return groups[:n]
}
