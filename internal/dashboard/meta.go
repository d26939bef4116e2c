// Kaiserhaus - Retail Order Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/kaiserhaus

package dashboard

import (
	"context"

	"github.com/tomtom215/kaiserhaus/internal/aggregate"
	"github.com/tomtom215/kaiserhaus/internal/schema"
	"github.com/tomtom215/kaiserhaus/internal/table"
)

// DateRange is the observed span of order timestamps.
type DateRange struct {
	Min string `json:"min"`
	Max string `json:"max"`
}

// Fields lists every canonical field with the column it resolves to.
func (s *Service) Fields(_ context.Context) ([]schema.Resolution, error) {
	r, err := s.store.Resolver()
	if err != nil {
		return nil, err
	}
	return r.Fields(), nil
}

// Count returns the number of rows matching the filter.
func (s *Service) Count(ctx context.Context, q Query) (Result[int], error) {
	v, warnings, err := s.view(ctx, q)
	if err != nil {
		return Result[int]{}, err
	}
	return Result[int]{Data: v.Len(), Warnings: warnings}, nil
}

// Platforms lists the distinct platforms among filtered rows.
func (s *Service) Platforms(ctx context.Context, q Query) (Result[[]string], error) {
	return s.distinct(ctx, q, schema.Platform)
}

// Macros lists the distinct neighborhoods among filtered rows.
func (s *Service) Macros(ctx context.Context, q Query) (Result[[]string], error) {
	return s.distinct(ctx, q, schema.MacroBairro)
}

func (s *Service) distinct(ctx context.Context, q Query, field schema.Field) (Result[[]string], error) {
	col, err := s.require(q, field)
	if err != nil {
		return Result[[]string]{}, err
	}
	v, warnings, err := s.view(ctx, q)
	if err != nil {
		return Result[[]string]{}, err
	}
	return Result[[]string]{Data: aggregate.Distinct(v, col), Warnings: warnings}, nil
}

// DateRange returns the earliest and latest order timestamp among filtered
// rows, or nil when none has a timestamp.
func (s *Service) DateRange(ctx context.Context, q Query) (Result[*DateRange], error) {
	ts, err := s.derived(q, table.DerivedDatetime)
	if err != nil {
		return Result[*DateRange]{}, err
	}
	v, warnings, err := s.view(ctx, q)
	if err != nil {
		return Result[*DateRange]{}, err
	}
	return Result[*DateRange]{Data: dateRange(v, ts), Warnings: warnings}, nil
}
