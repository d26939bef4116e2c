// Kaiserhaus - Retail Order Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/kaiserhaus

package filter

// Mask marks selected rows.
type Mask []bool

// Count returns the number of selected rows.
func (m Mask) Count() int {
	n := 0
	for _, ok := range m {
		if ok {
			n++
		}
	}
	return n
}

// View is the ordered list of selected row indices that aggregation consumes.
type View struct {
	Rows []int
}

// NewView converts a mask to a view. Indices are ascending.
func NewView(m Mask) View {
	rows := make([]int, 0, m.Count())
	for i, ok := range m {
		if ok {
			rows = append(rows, i)
		}
	}
	return View{Rows: rows}
}

// AllRows returns a view over rows [0, n).
func AllRows(n int) View {
	rows := make([]int, n)
	for i := range rows {
		rows[i] = i
	}
	return View{Rows: rows}
}

// Len returns the number of selected rows.
func (v View) Len() int {
	return len(v.Rows)
}

// Indices returns the selected row indices in ascending order.
func (v View) Indices() []int {
	return v.Rows
}
