// Kaiserhaus - Retail Order Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/kaiserhaus

package table

import (
	"fmt"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/tomtom215/kaiserhaus/internal/metrics"
	"github.com/tomtom215/kaiserhaus/internal/schema"
)

// Derived names a computed column. Names carry a "__" prefix so they can never
// collide with source columns in listings.
type Derived string

// Derived columns.
const (
	DerivedDatetime   Derived = "__order_ts"
	DerivedLate       Derived = "__late"
	DerivedTicket     Derived = "__ticket"
	DerivedNetRevenue Derived = "__net_revenue"
	DerivedDelay      Derived = "__delay_minutes"
)

// maxExcelSerial is 9999-12-31 in the 1900 date system.
const maxExcelSerial = 2958465

type derivation struct {
	inputs []schema.Field
	build  func(t *Table, look lookupFunc, opts Options) (*Column, error)
}

// lookupFunc resolves the first resolvable field to a column.
type lookupFunc func(fields ...schema.Field) (*Column, error)

var derivations = map[Derived]derivation{
	DerivedDatetime: {
		inputs: []schema.Field{schema.OrderDatetime, schema.OrderDate},
		build:  buildDatetime,
	},
	DerivedLate: {
		inputs: []schema.Field{schema.Status, schema.DeliveryMinutes, schema.ETAMinutes},
		build:  buildLate,
	},
	DerivedTicket: {
		inputs: []schema.Field{schema.TotalBRL, schema.NumItens},
		build:  buildTicket,
	},
	DerivedNetRevenue: {
		inputs: []schema.Field{schema.TotalBRL, schema.PlatformCommissionPct},
		build:  buildNetRevenue,
	},
	DerivedDelay: {
		inputs: []schema.Field{schema.DeliveryMinutes, schema.ETAMinutes},
		build:  buildDelay,
	},
}

// EnsureDerived returns the derived column d, building and attaching it on
// first use. It is idempotent; construction is serialized by the store mutex.
// A build failure (an unresolved input) is not cached.
func (s *Store) EnsureDerived(d Derived) (*Column, error) {
	t, err := s.Get()
	if err != nil {
		return nil, err
	}
	if c, ok := t.derivedColumn(d); ok {
		return c, nil
	}

	s.deriveMu.Lock()
	defer s.deriveMu.Unlock()

	if c, ok := t.derivedColumn(d); ok {
		return c, nil
	}
	c, err := s.build(t, d, nil)
	if err != nil {
		return nil, err
	}
	metrics.RecordDerivedColumn(string(d))
	return t.attach(d, c), nil
}

// Derive returns d for one request. When ov names a column for any input of d
// the column is built for this request only and never attached.
func (s *Store) Derive(d Derived, ov schema.Overrides) (*Column, error) {
	spec, ok := derivations[d]
	if !ok {
		return nil, fmt.Errorf("unknown derived column %q", d)
	}
	if !ov.Any(spec.inputs...) {
		return s.EnsureDerived(d)
	}
	t, err := s.Get()
	if err != nil {
		return nil, err
	}
	return s.build(t, d, ov)
}

func (s *Store) build(t *Table, d Derived, ov schema.Overrides) (*Column, error) {
	spec, ok := derivations[d]
	if !ok {
		return nil, fmt.Errorf("unknown derived column %q", d)
	}
	r, err := s.Resolver()
	if err != nil {
		return nil, err
	}
	look := func(fields ...schema.Field) (*Column, error) {
		if c, ok := lookup(t, r, ov, fields...); ok {
			return c, nil
		}
		return nil, unresolved(ov, fields...)
	}
	return spec.build(t, look, s.opts)
}

func buildDatetime(t *Table, look lookupFunc, _ Options) (*Column, error) {
	src, err := look(schema.OrderDatetime, schema.OrderDate)
	if err != nil {
		return nil, err
	}

	times := make([]time.Time, t.rows)
	valid := make([]bool, t.rows)
	for i := 0; i < t.rows; i++ {
		switch src.Kind {
		case KindTimestamp:
			times[i], valid[i] = src.Time(i)
		case KindInteger, KindReal:
			serial, ok := src.Float(i)
			if !ok || serial <= 0 || serial > maxExcelSerial {
				continue
			}
			ts, err := excelize.ExcelDateToTime(serial, false)
			if err != nil {
				continue
			}
			times[i], valid[i] = ts.Round(time.Second), true
		default:
			if s, ok := src.Text(i); ok {
				times[i], valid[i] = ParseTimestamp(s)
			}
		}
	}
	return NewTimeColumn(string(DerivedDatetime), times, valid), nil
}

var (
	lateTokens   = map[string]bool{"atrasado": true, "atrasada": true, "late": true, "delayed": true}
	onTimeTokens = map[string]bool{"no prazo": true, "on time": true, "pontual": true, "no_prazo": true, "on_time": true}
)

// buildLate derives the lateness flag. An explicit status value wins per row;
// otherwise delivery minutes are compared with the quoted ETA, or with the
// configured threshold when there is no ETA.
func buildLate(t *Table, look lookupFunc, opts Options) (*Column, error) {
	status, _ := look(schema.Status)
	delivery, deliveryErr := look(schema.DeliveryMinutes)
	eta, _ := look(schema.ETAMinutes)
	if status == nil && deliveryErr != nil {
		return nil, deliveryErr
	}

	flags := make([]bool, t.rows)
	valid := make([]bool, t.rows)
	for i := 0; i < t.rows; i++ {
		if status != nil {
			if s, ok := status.Text(i); ok {
				key := strings.ToLower(strings.TrimSpace(s))
				if lateTokens[key] {
					flags[i], valid[i] = true, true
					continue
				}
				if onTimeTokens[key] || onTimeTokens[strings.ReplaceAll(key, "_", " ")] {
					flags[i], valid[i] = false, true
					continue
				}
			}
		}
		if delivery == nil {
			continue
		}
		d, ok := delivery.Float(i)
		if !ok {
			continue
		}
		limit := opts.LateThresholdMinutes
		if eta != nil {
			if e, ok := eta.Float(i); ok {
				limit = e
			}
		}
		flags[i], valid[i] = d > limit, true
	}
	return NewBoolColumn(string(DerivedLate), flags, valid), nil
}

func buildTicket(t *Table, look lookupFunc, _ Options) (*Column, error) {
	total, err := look(schema.TotalBRL)
	if err != nil {
		return nil, err
	}
	items, err := look(schema.NumItens)
	if err != nil {
		return nil, err
	}
	return combine(t.rows, string(DerivedTicket), total, items, func(tot, n float64) (float64, bool) {
		if n == 0 {
			return 0, false
		}
		return tot / n, true
	}), nil
}

// buildNetRevenue applies the platform commission. Commissions above 1 are
// percentages (12 means 12%).
func buildNetRevenue(t *Table, look lookupFunc, _ Options) (*Column, error) {
	total, err := look(schema.TotalBRL)
	if err != nil {
		return nil, err
	}
	pct, err := look(schema.PlatformCommissionPct)
	if err != nil {
		return nil, err
	}
	return combine(t.rows, string(DerivedNetRevenue), total, pct, func(tot, p float64) (float64, bool) {
		return tot * (1 - NormalizeRate(p)), true
	}), nil
}

func buildDelay(t *Table, look lookupFunc, _ Options) (*Column, error) {
	delivery, err := look(schema.DeliveryMinutes)
	if err != nil {
		return nil, err
	}
	eta, err := look(schema.ETAMinutes)
	if err != nil {
		return nil, err
	}
	return combine(t.rows, string(DerivedDelay), delivery, eta, func(d, e float64) (float64, bool) {
		return d - e, true
	}), nil
}

// NormalizeRate turns a commission given as a percentage into a fraction.
func NormalizeRate(p float64) float64 {
	if p > 1 {
		return p / 100
	}
	return p
}

func combine(rows int, name string, a, b *Column, fn func(x, y float64) (float64, bool)) *Column {
	out := make([]float64, rows)
	valid := make([]bool, rows)
	for i := 0; i < rows; i++ {
		x, okX := a.Float(i)
		y, okY := b.Float(i)
		if !okX || !okY {
			continue
		}
		out[i], valid[i] = fn(x, y)
	}
	return NewNumberColumn(name, KindReal, out, valid)
}
