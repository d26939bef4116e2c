// Kaiserhaus - Retail Order Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/kaiserhaus

// Package table holds the order dataset in memory.
//
// The Store loads the source file once (CSV and Parquet through an in-memory
// DuckDB connection, XLSX through excelize), coerces every column to a single
// kind, and then serves the Table read-only. The only mutation after load is the
// addition of derived columns (parsed order timestamp, lateness flag, ticket,
// net revenue, delay), each built at most once behind the Store's mutex.
package table

import (
	"fmt"
	"sync"
)

// Table is an immutable set of equally long columns plus lazily attached
// derived columns.
type Table struct {
	columns []*Column
	byName  map[string]*Column
	rows    int

	mu      sync.RWMutex
	derived map[Derived]*Column
}

// New assembles a table from columns of equal length.
func New(columns []*Column) (*Table, error) {
	t := &Table{
		columns: columns,
		byName:  make(map[string]*Column, len(columns)),
		derived: make(map[Derived]*Column),
	}
	for i, c := range columns {
		if i == 0 {
			t.rows = c.Len()
		} else if c.Len() != t.rows {
			return nil, fmt.Errorf("column %q has %d cells, want %d", c.Name, c.Len(), t.rows)
		}
		if _, dup := t.byName[c.Name]; dup {
			return nil, fmt.Errorf("duplicate column %q", c.Name)
		}
		t.byName[c.Name] = c
	}
	return t, nil
}

// FromRecords builds a table from a header and string rows using the load-time
// coercion rules. Short rows are padded with missing cells.
func FromRecords(header []string, records [][]string, ratio float64) (*Table, error) {
	cells := make([][]any, len(header))
	for j := range header {
		cells[j] = make([]any, len(records))
	}
	for i, rec := range records {
		for j := range header {
			if j < len(rec) {
				cells[j][i] = rec[j]
			}
		}
	}
	return fromCells(header, cells, ratio)
}

func fromCells(header []string, cells [][]any, ratio float64) (*Table, error) {
	columns := make([]*Column, len(header))
	seen := make(map[string]int, len(header))
	for j, name := range header {
		if name == "" {
			name = fmt.Sprintf("column_%d", j+1)
		}
		if n := seen[name]; n > 0 {
			seen[name] = n + 1
			name = fmt.Sprintf("%s_%d", name, n+1)
		} else {
			seen[name] = 1
		}
		columns[j] = coerceColumn(name, cells[j], ratio)
	}
	return New(columns)
}

// Rows returns the row count.
func (t *Table) Rows() int {
	return t.rows
}

// Columns returns the source columns in file order. Derived columns are not listed.
func (t *Table) Columns() []*Column {
	return append([]*Column(nil), t.columns...)
}

// ColumnNames returns the source column names in file order.
func (t *Table) ColumnNames() []string {
	names := make([]string, len(t.columns))
	for i, c := range t.columns {
		names[i] = c.Name
	}
	return names
}

// Column looks up a source column by exact name.
func (t *Table) Column(name string) (*Column, bool) {
	c, ok := t.byName[name]
	return c, ok
}

// derivedColumn returns an attached derived column.
func (t *Table) derivedColumn(d Derived) (*Column, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	c, ok := t.derived[d]
	return c, ok
}

// attach publishes a derived column; the first writer wins.
func (t *Table) attach(d Derived, c *Column) *Column {
	t.mu.Lock()
	defer t.mu.Unlock()
	if existing, ok := t.derived[d]; ok {
		return existing
	}
	t.derived[d] = c
	return c
}
