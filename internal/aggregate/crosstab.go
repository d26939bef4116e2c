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

// Cell is one entry of a cross-tab grid.
type Cell struct {
	Row   string   `json:"row"`
	Col   string   `json:"col"`
	Value *float64 `json:"value"`
	Count int      `json:"count"`
}

// CrossTab reduces value over every (row, col) pair of observed keys. The
// result always has len(rows)*len(cols) cells, ordered by row then column,
// both ascending. Empty combinations are 0 for Count and Sum and null for
// Mean. value may be nil for Count.
func CrossTab(v filter.View, rowKey, colKey, value *table.Column, r Reducer) []Cell {
	type pair struct{ row, col string }
	cells := make(map[pair]*acc)
	rowSet := make(map[string]struct{})
	colSet := make(map[string]struct{})

	for _, i := range v.Indices() {
		rk, ok := rowKey.Text(i)
		if !ok {
			continue
		}
		ck, ok := colKey.Text(i)
		if !ok {
			continue
		}
		rowSet[rk] = struct{}{}
		colSet[ck] = struct{}{}

		var x float64
		if r != Count && value != nil {
			if x, ok = value.Float(i); !ok {
				continue
			}
		}
		a := cells[pair{rk, ck}]
		if a == nil {
			a = &acc{}
			cells[pair{rk, ck}] = a
		}
		a.sum += x
		a.n++
	}

	rows := sortedKeys(rowSet)
	cols := sortedKeys(colSet)
	out := make([]Cell, 0, len(rows)*len(cols))
	for _, rk := range rows {
		for _, ck := range cols {
			var sum float64
			var n int
			if a := cells[pair{rk, ck}]; a != nil {
				sum, n = a.sum, a.n
			}
			out = append(out, Cell{Row: rk, Col: ck, Value: reduce(r, sum, n), Count: n})
		}
	}
	return out
}

func sortedKeys(set map[string]struct{}) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
