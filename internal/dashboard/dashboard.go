// Kaiserhaus - Retail Order Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/kaiserhaus

// Package dashboard implements the query functions behind every dashboard
// route. Each one compiles the request filter, resolves a fixed set of
// canonical fields (honoring per-request overrides) and hands the filtered view
// to one or two aggregation primitives. Results are rounded here, once, when
// the response records are built.
//
// Errors are returned unchanged from the engine: table.ErrDataUnavailable
// (wrapped), *schema.FieldUnresolvedError for a required field, and
// *filter.BadFilterError for malformed literals.
package dashboard

import (
	"context"
	"errors"

	"github.com/tomtom215/kaiserhaus/internal/filter"
	"github.com/tomtom215/kaiserhaus/internal/schema"
	"github.com/tomtom215/kaiserhaus/internal/table"
)

// Query is the per-request input shared by all dashboard functions.
type Query struct {
	Filter    filter.Spec
	Overrides filter.Overrides
}

// Result wraps query output with the filter warnings raised while computing it.
type Result[T any] struct {
	Data     T                `json:"data"`
	Warnings []filter.Warning `json:"warnings,omitempty"`
}

// Service answers dashboard queries against one store.
type Service struct {
	store *table.Store
}

// New creates a Service.
func New(store *table.Store) *Service {
	return &Service{store: store}
}

// Store returns the underlying store.
func (s *Service) Store() *table.Store {
	return s.store
}

// view compiles the request filter.
func (s *Service) view(ctx context.Context, q Query) (filter.View, []filter.Warning, error) {
	res, err := filter.Compile(ctx, s.store, q.Filter, q.Overrides)
	if err != nil {
		return filter.View{}, nil, err
	}
	return res.View(), res.Warnings, nil
}

// require resolves a field the query cannot do without.
func (s *Service) require(q Query, field schema.Field) (*table.Column, error) {
	return s.store.Require(q.Overrides, field)
}

// optional resolves a field whose absence degrades one value to null.
func (s *Service) optional(q Query, field schema.Field) *table.Column {
	c, ok := s.store.Lookup(q.Overrides, field)
	if !ok {
		return nil
	}
	return c
}

// firstOf resolves the first of fields that has a column. Each field is tried
// with its own override.
func (s *Service) firstOf(q Query, fields ...schema.Field) *table.Column {
	for _, f := range fields {
		if c := s.optional(q, f); c != nil {
			return c
		}
	}
	return nil
}

// derived returns a derived column required by the query.
func (s *Service) derived(q Query, d table.Derived) (*table.Column, error) {
	return s.store.Derive(d, q.Overrides)
}

// optionalDerived is derived for values that may be null. Only an unresolved
// input is swallowed.
func (s *Service) optionalDerived(q Query, d table.Derived) (*table.Column, error) {
	c, err := s.store.Derive(d, q.Overrides)
	if errors.Is(err, schema.ErrFieldUnresolved) {
		return nil, nil
	}
	return c, err
}
