// Kaiserhaus - Retail Order Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/kaiserhaus

package dashboard

import (
	"context"
	"sort"
	"strings"

	"github.com/tomtom215/kaiserhaus/internal/aggregate"
	"github.com/tomtom215/kaiserhaus/internal/filter"
	"github.com/tomtom215/kaiserhaus/internal/table"
)

// Explorer paging limits.
const (
	DefaultPageLimit = 200
	MaxPageLimit     = 5000
	// TopCountsLimit bounds the categorical feature summary.
	TopCountsLimit = 20
)

// ColumnInfo describes one source column.
type ColumnInfo struct {
	Name string `json:"name"`
	Kind string `json:"kind"`
}

// PageRequest selects a page of raw rows.
type PageRequest struct {
	// Search is a case-insensitive substring matched against text columns.
	Search  string
	Columns []string
	Sort    string
	// Order is 1 for ascending, anything else for descending.
	Order  int
	Offset int
	Limit  int
}

// PageMeta describes a returned page.
type PageMeta struct {
	Total    int      `json:"total"`
	Returned int      `json:"returned"`
	Offset   int      `json:"offset"`
	Limit    int      `json:"limit"`
	Columns  []string `json:"columns"`
	SortedBy string   `json:"sorted_by,omitempty"`
	Order    string   `json:"order,omitempty"`
}

// Page is a page of raw rows keyed by column name.
type Page struct {
	Meta PageMeta         `json:"meta"`
	Rows []map[string]any `json:"data"`
}

// FeatureSummary describes one column: numeric statistics or the most frequent
// values.
type FeatureSummary struct {
	Column    string                 `json:"column"`
	Type      string                 `json:"type"`
	Summary   *aggregate.Stats       `json:"summary,omitempty"`
	TopCounts []aggregate.ValueCount `json:"top_counts,omitempty"`
}

// Columns lists the source columns with their kinds.
func (s *Service) Columns(_ context.Context) ([]ColumnInfo, error) {
	t, err := s.store.Get()
	if err != nil {
		return nil, err
	}
	cols := t.Columns()
	out := make([]ColumnInfo, len(cols))
	for i, c := range cols {
		out[i] = ColumnInfo{Name: c.Name, Kind: c.Kind.String()}
	}
	return out, nil
}

// SearchCount counts filtered rows containing search in any text column.
func (s *Service) SearchCount(ctx context.Context, q Query, search string) (Result[int], error) {
	v, warnings, err := s.searchView(ctx, q, search)
	if err != nil {
		return Result[int]{}, err
	}
	return Result[int]{Data: v.Len(), Warnings: warnings}, nil
}

func (s *Service) searchView(ctx context.Context, q Query, search string) (filter.View, []filter.Warning, error) {
	v, warnings, err := s.view(ctx, q)
	if err != nil {
		return filter.View{}, nil, err
	}
	needle := strings.ToLower(strings.TrimSpace(search))
	if needle == "" {
		return v, warnings, nil
	}
	t, err := s.store.Get()
	if err != nil {
		return filter.View{}, nil, err
	}

	var textCols []*table.Column
	for _, c := range t.Columns() {
		if c.Kind == table.KindText {
			textCols = append(textCols, c)
		}
	}
	rows := make([]int, 0, v.Len())
	for _, i := range v.Indices() {
		for _, c := range textCols {
			if cell, ok := c.Text(i); ok && strings.Contains(strings.ToLower(cell), needle) {
				rows = append(rows, i)
				break
			}
		}
	}
	return filter.View{Rows: rows}, warnings, nil
}

// Page returns filtered, searched and sorted raw rows. Sorting is stable and
// missing values sort last in both directions.
func (s *Service) Page(ctx context.Context, q Query, req PageRequest) (Result[Page], error) {
	t, err := s.store.Get()
	if err != nil {
		return Result[Page]{}, err
	}

	cols := t.Columns()
	if len(req.Columns) > 0 {
		cols = make([]*table.Column, 0, len(req.Columns))
		for _, name := range req.Columns {
			c, ok := t.Column(name)
			if !ok {
				return Result[Page]{}, filter.NewBadFilter("columns", name, "unknown column")
			}
			cols = append(cols, c)
		}
	}
	var sortCol *table.Column
	if req.Sort != "" {
		c, ok := t.Column(req.Sort)
		if !ok {
			return Result[Page]{}, filter.NewBadFilter("sort", req.Sort, "unknown column")
		}
		sortCol = c
	}

	v, warnings, err := s.searchView(ctx, q, req.Search)
	if err != nil {
		return Result[Page]{}, err
	}

	rows := append([]int(nil), v.Indices()...)
	meta := PageMeta{Total: len(rows), Offset: max(req.Offset, 0), Limit: clampLimit(req.Limit)}
	if sortCol != nil {
		asc := req.Order == 1
		sort.SliceStable(rows, func(a, b int) bool {
			return lessCell(sortCol, rows[a], rows[b], asc)
		})
		meta.SortedBy = sortCol.Name
		meta.Order = "desc"
		if asc {
			meta.Order = "asc"
		}
	}

	start := min(meta.Offset, len(rows))
	end := min(start+meta.Limit, len(rows))
	page := rows[start:end]

	meta.Returned = len(page)
	meta.Columns = make([]string, len(cols))
	for j, c := range cols {
		meta.Columns[j] = c.Name
	}
	out := Page{Meta: meta, Rows: make([]map[string]any, len(page))}
	for k, i := range page {
		rec := make(map[string]any, len(cols))
		for _, c := range cols {
			rec[c.Name] = c.Value(i)
		}
		out.Rows[k] = rec
	}
	return Result[Page]{Data: out, Warnings: warnings}, nil
}

func clampLimit(limit int) int {
	switch {
	case limit <= 0:
		return DefaultPageLimit
	case limit > MaxPageLimit:
		return MaxPageLimit
	}
	return limit
}

// lessCell orders rows a and b of c. Missing cells always go last.
func lessCell(c *table.Column, a, b int, asc bool) bool {
	ma, mb := c.IsMissing(a), c.IsMissing(b)
	if ma || mb {
		return !ma && mb
	}
	var cmp int
	switch c.Kind {
	case table.KindInteger, table.KindReal, table.KindBool:
		x, _ := c.Float(a)
		y, _ := c.Float(b)
		cmp = compare(x < y, x > y)
	case table.KindTimestamp:
		x, _ := c.Time(a)
		y, _ := c.Time(b)
		cmp = x.Compare(y)
	default:
		x, _ := c.Text(a)
		y, _ := c.Text(b)
		cmp = strings.Compare(x, y)
	}
	if asc {
		return cmp < 0
	}
	return cmp > 0
}

func compare(less, greater bool) int {
	switch {
	case less:
		return -1
	case greater:
		return 1
	}
	return 0
}

// FeatureSummary describes column name over the filtered rows. Numeric
// columns get descriptive statistics, others the TopCountsLimit most frequent
// values.
func (s *Service) FeatureSummary(ctx context.Context, q Query, name string) (Result[FeatureSummary], error) {
	t, err := s.store.Get()
	if err != nil {
		return Result[FeatureSummary]{}, err
	}
	c, ok := t.Column(name)
	if !ok {
		return Result[FeatureSummary]{}, filter.NewBadFilter("column", name, "unknown column")
	}
	v, warnings, err := s.view(ctx, q)
	if err != nil {
		return Result[FeatureSummary]{}, err
	}

	out := FeatureSummary{Column: c.Name}
	if c.Kind.Numeric() {
		stats := aggregate.Describe(v, c)
		out.Type = "numeric"
		out.Summary = &stats
	} else {
		out.Type = "categorical"
		out.TopCounts = aggregate.ValueCounts(v, c, TopCountsLimit)
	}
	return Result[FeatureSummary]{Data: out, Warnings: warnings}, nil
}
