// Kaiserhaus - Retail Order Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/kaiserhaus

// Package schema maps canonical order fields onto the columns actually present
// in a loaded table.
//
// Matching is forgiving: case, surrounding whitespace and the difference between
// "_" and " " are ignored, so "Macro Bairro " resolves macro_bairro. A caller may
// name a column explicitly (the *_col query parameters); an override that names
// an existing column always wins and is never cached.
package schema

import (
	"strings"
	"sync"

	"github.com/tomtom215/kaiserhaus/internal/metrics"
)

// Resolution is the outcome of resolving one canonical field.
type Resolution struct {
	Field    Field  `json:"field"`
	Column   string `json:"column"`
	Resolved bool   `json:"resolved"`
}

// Resolver resolves canonical fields against a fixed column list.
// It is safe for concurrent use.
type Resolver struct {
	columns []string
	exact   map[string]struct{}
	byNorm  map[string]string
	cache   sync.Map // Field -> Resolution
}

// NewResolver builds a resolver over the table's column names in source order.
// When two columns normalize to the same key, the first one wins.
func NewResolver(columns []string) *Resolver {
	r := &Resolver{
		columns: append([]string(nil), columns...),
		exact:   make(map[string]struct{}, len(columns)),
		byNorm:  make(map[string]string, len(columns)),
	}
	for _, c := range columns {
		r.exact[c] = struct{}{}
		key := normalize(c)
		if _, dup := r.byNorm[key]; !dup {
			r.byNorm[key] = c
		}
	}
	return r
}

// normalize folds case, trims, treats "_" as a space and collapses runs of spaces.
func normalize(name string) string {
	name = strings.ToLower(strings.ReplaceAll(name, "_", " "))
	return strings.Join(strings.Fields(name), " ")
}

// Columns returns the source column names in table order.
func (r *Resolver) Columns() []string {
	return append([]string(nil), r.columns...)
}

// HasColumn reports whether name is an existing column (exact, after trimming).
func (r *Resolver) HasColumn(name string) bool {
	_, ok := r.exact[strings.TrimSpace(name)]
	return ok
}

// Resolve returns the column backing field. The override is returned verbatim
// when it names an existing column; otherwise the alias table is consulted.
func (r *Resolver) Resolve(field Field, override string) (string, bool) {
	if o := strings.TrimSpace(override); o != "" {
		if _, ok := r.exact[o]; ok {
			return o, true
		}
	}

	if cached, ok := r.cache.Load(field); ok {
		res := cached.(Resolution)
		return res.Column, res.Resolved
	}

	res := Resolution{Field: field}
	for _, alias := range aliases[field] {
		if col, ok := r.byNorm[normalize(alias)]; ok {
			res.Column = col
			res.Resolved = true
			break
		}
	}
	actual, loaded := r.cache.LoadOrStore(field, res)
	if !loaded && !res.Resolved {
		metrics.RecordResolutionMiss(string(field))
	}
	res = actual.(Resolution)
	return res.Column, res.Resolved
}

// ResolveFirst resolves the first field in fields that has a column. The
// override applies to the whole lookup.
func (r *Resolver) ResolveFirst(override string, fields ...Field) (string, bool) {
	for _, f := range fields {
		if col, ok := r.Resolve(f, override); ok {
			return col, true
		}
	}
	return "", false
}

// Require is Resolve for fields a computation cannot do without.
func (r *Resolver) Require(field Field, override string) (string, error) {
	if col, ok := r.Resolve(field, override); ok {
		return col, nil
	}
	return "", &FieldUnresolvedError{Field: field, Override: strings.TrimSpace(override)}
}

// RequireFirst is ResolveFirst that fails naming the first field.
func (r *Resolver) RequireFirst(override string, fields ...Field) (string, error) {
	if col, ok := r.ResolveFirst(override, fields...); ok {
		return col, nil
	}
	var field Field
	if len(fields) > 0 {
		field = fields[0]
	}
	return "", &FieldUnresolvedError{Field: field, Override: strings.TrimSpace(override)}
}

// Fields lists every canonical field with its resolved column.
func (r *Resolver) Fields() []Resolution {
	out := make([]Resolution, 0, len(order))
	for _, f := range order {
		col, ok := r.Resolve(f, "")
		out = append(out, Resolution{Field: f, Column: col, Resolved: ok})
	}
	return out
}
