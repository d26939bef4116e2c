// Kaiserhaus - Retail Order Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/kaiserhaus

// Package filter compiles a declarative filter specification into a row mask
// over the loaded order table.
//
// Every literal in the specification is parsed before any column is touched, so
// a malformed value is always reported as a *BadFilterError, even when the
// column it would apply to is absent. A dimension whose column cannot be
// resolved is skipped and reported as a Warning instead of failing the request.
package filter

import (
	"context"
	"errors"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/tomtom215/kaiserhaus/internal/logging"
	"github.com/tomtom215/kaiserhaus/internal/metrics"
	"github.com/tomtom215/kaiserhaus/internal/schema"
	"github.com/tomtom215/kaiserhaus/internal/table"
)

// Filter dimensions, as named in query strings and errors.
const (
	DimStartDate      = "start_date"
	DimEndDate        = "end_date"
	DimPlatform       = "platform"
	DimMacroBairro    = "macro_bairro"
	DimClassePedido   = "classe_pedido"
	DimScoreMin       = "score_min"
	DimScoreMax       = "score_max"
	DimDeliveryStatus = "delivery_status"
)

// Delivery status literals.
const (
	StatusLate   = "atrasado"
	StatusOnTime = "no_prazo"
)

// Overrides maps a canonical field to the column a caller wants used for it.
type Overrides = schema.Overrides

// Spec is a filter specification. Every field is optional.
type Spec struct {
	StartDate      string   `json:"start_date,omitempty"`
	EndDate        string   `json:"end_date,omitempty"`
	Platform       []string `json:"platform,omitempty"`
	MacroBairro    []string `json:"macro_bairro,omitempty"`
	ClassePedido   []string `json:"classe_pedido,omitempty"`
	ScoreMin       string   `json:"score_min,omitempty"`
	ScoreMax       string   `json:"score_max,omitempty"`
	DeliveryStatus string   `json:"delivery_status,omitempty"`
}

// Warning reports a dimension that was skipped because its field did not resolve.
type Warning struct {
	Dimension string       `json:"dimension"`
	Field     schema.Field `json:"field"`
	Message   string       `json:"message"`
}

// Result is a compiled filter.
type Result struct {
	Mask     Mask
	Warnings []Warning
}

// View returns the selected rows.
func (r Result) View() View {
	return NewView(r.Mask)
}

// Count returns the number of selected rows.
func (r Result) Count() int {
	return r.Mask.Count()
}

// parsed holds the validated literals of a Spec.
type parsed struct {
	start, end       time.Time
	hasStart, hasEnd bool
	endExclusive     bool

	platform, macro, classe map[string]struct{}

	scoreMin, scoreMax       float64
	hasScoreMin, hasScoreMax bool

	status string
}

// dateLayouts are the accepted bound literals. The bool marks date-only layouts.
var dateLayouts = []struct {
	layout   string
	dateOnly bool
}{
	{"2006-01-02", true},
	{time.RFC3339, false},
	{"2006-01-02 15:04:05", false},
}

// ParseDate parses a date bound literal. dateOnly is true for YYYY-MM-DD.
func ParseDate(s string) (t time.Time, dateOnly bool, ok bool) {
	s = strings.TrimSpace(s)
	for _, l := range dateLayouts {
		if v, err := time.Parse(l.layout, s); err == nil {
			return v, l.dateOnly, true
		}
	}
	return time.Time{}, false, false
}

func parse(spec Spec) (*parsed, error) {
	p := &parsed{}

	if s := strings.TrimSpace(spec.StartDate); s != "" {
		v, _, ok := ParseDate(s)
		if !ok {
			return nil, NewBadFilter(DimStartDate, spec.StartDate, "expected YYYY-MM-DD or RFC3339")
		}
		p.start, p.hasStart = v, true
	}
	if s := strings.TrimSpace(spec.EndDate); s != "" {
		v, dateOnly, ok := ParseDate(s)
		if !ok {
			return nil, NewBadFilter(DimEndDate, spec.EndDate, "expected YYYY-MM-DD or RFC3339")
		}
		p.end, p.hasEnd = v, true
		if dateOnly {
			p.end = v.AddDate(0, 0, 1)
			p.endExclusive = true
		}
	}

	p.platform = toSet(spec.Platform)
	p.macro = toSet(spec.MacroBairro)
	p.classe = toSet(spec.ClassePedido)

	var err error
	if p.scoreMin, p.hasScoreMin, err = parseScore(DimScoreMin, spec.ScoreMin); err != nil {
		return nil, err
	}
	if p.scoreMax, p.hasScoreMax, err = parseScore(DimScoreMax, spec.ScoreMax); err != nil {
		return nil, err
	}

	switch status := strings.ToLower(strings.TrimSpace(spec.DeliveryStatus)); status {
	case "", StatusLate, StatusOnTime:
		p.status = status
	default:
		return nil, NewBadFilter(DimDeliveryStatus, spec.DeliveryStatus, "expected atrasado or no_prazo")
	}
	return p, nil
}

func parseScore(dim, raw string) (float64, bool, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0, false, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false, NewBadFilter(dim, raw, "expected a number")
	}
	return v, true, nil
}

// toSet normalizes a membership list. Blank entries are dropped; an empty
// result means the dimension is unset.
func toSet(values []string) map[string]struct{} {
	var set map[string]struct{}
	for _, v := range values {
		key := normalizeKey(v)
		if key == "" {
			continue
		}
		if set == nil {
			set = make(map[string]struct{}, len(values))
		}
		set[key] = struct{}{}
	}
	return set
}

func normalizeKey(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Compile turns spec into a row mask over the store's table. Errors are
// ErrDataUnavailable (wrapped) or *BadFilterError; unresolved dimensions become
// warnings.
func Compile(ctx context.Context, store *table.Store, spec Spec, ov Overrides) (Result, error) {
	p, err := parse(spec)
	if err != nil {
		var bf *BadFilterError
		if errors.As(err, &bf) {
			metrics.RecordFilterRejected(bf.Dimension)
		}
		return Result{}, err
	}

	t, err := store.Get()
	if err != nil {
		return Result{}, err
	}

	c := &compiler{ctx: ctx, store: store, ov: ov, mask: make(Mask, t.Rows()), live: t.Rows()}
	for i := range c.mask {
		c.mask[i] = true
	}

	steps := []func(*parsed) error{
		c.applyDates,
		func(p *parsed) error { return c.applySet(DimPlatform, schema.Platform, p.platform) },
		func(p *parsed) error { return c.applySet(DimMacroBairro, schema.MacroBairro, p.macro) },
		func(p *parsed) error { return c.applySet(DimClassePedido, schema.ClassePedido, p.classe) },
		c.applyScore,
		c.applyStatus,
	}
	for _, step := range steps {
		if c.live == 0 {
			break
		}
		if err := step(p); err != nil {
			return Result{}, err
		}
	}
	return Result{Mask: c.mask, Warnings: c.warnings}, nil
}

type compiler struct {
	ctx      context.Context
	store    *table.Store
	ov       Overrides
	mask     Mask
	live     int
	warnings []Warning
}

// keep ANDs pred into the mask.
func (c *compiler) keep(pred func(i int) bool) {
	for i, ok := range c.mask {
		if ok && !pred(i) {
			c.mask[i] = false
			c.live--
		}
	}
}

func (c *compiler) warn(dim string, field schema.Field) {
	w := Warning{
		Dimension: dim,
		Field:     field,
		Message:   "field " + string(field) + " not found; " + dim + " filter ignored",
	}
	c.warnings = append(c.warnings, w)
	metrics.RecordFilterUnresolved(dim)
	logging.Ctx(c.ctx).Warn().
		Str("dimension", dim).
		Str("field", string(field)).
		Msg("Filter dimension unresolved, skipping")
}

// skipUnresolved turns a FieldUnresolved error into a warning. Any other error
// is returned.
func (c *compiler) skipUnresolved(dim string, err error) error {
	var fe *schema.FieldUnresolvedError
	if errors.As(err, &fe) {
		c.warn(dim, fe.Field)
		return nil
	}
	return err
}

func (c *compiler) applyDates(p *parsed) error {
	if !p.hasStart && !p.hasEnd {
		return nil
	}
	dim := DimStartDate
	if !p.hasStart {
		dim = DimEndDate
	}
	ts, err := c.store.Derive(table.DerivedDatetime, c.ov)
	if err != nil {
		return c.skipUnresolved(dim, err)
	}
	c.keep(func(i int) bool {
		v, ok := ts.Time(i)
		if !ok {
			return false
		}
		if p.hasStart && v.Before(p.start) {
			return false
		}
		if p.hasEnd {
			if p.endExclusive {
				return v.Before(p.end)
			}
			return !v.After(p.end)
		}
		return true
	})
	return nil
}

func (c *compiler) applySet(dim string, field schema.Field, set map[string]struct{}) error {
	if len(set) == 0 {
		return nil
	}
	col, err := c.store.Require(c.ov, field)
	if err != nil {
		return c.skipUnresolved(dim, err)
	}
	c.keep(func(i int) bool {
		s, ok := col.Text(i)
		if !ok {
			return false
		}
		_, in := set[normalizeKey(s)]
		return in
	})
	return nil
}

func (c *compiler) applyScore(p *parsed) error {
	if !p.hasScoreMin && !p.hasScoreMax {
		return nil
	}
	dim := DimScoreMin
	if !p.hasScoreMin {
		dim = DimScoreMax
	}
	col, err := c.store.Require(c.ov, schema.SatisfactionScore)
	if err != nil {
		return c.skipUnresolved(dim, err)
	}
	c.keep(func(i int) bool {
		v, ok := col.Float(i)
		if !ok {
			return false
		}
		if p.hasScoreMin && v < p.scoreMin {
			return false
		}
		if p.hasScoreMax && v > p.scoreMax {
			return false
		}
		return true
	})
	return nil
}

func (c *compiler) applyStatus(p *parsed) error {
	if p.status == "" {
		return nil
	}
	late, err := c.store.Derive(table.DerivedLate, c.ov)
	if err != nil {
		return c.skipUnresolved(DimDeliveryStatus, err)
	}
	want := p.status == StatusLate
	c.keep(func(i int) bool {
		v, ok := late.Bool(i)
		return ok && v == want
	})
	return nil
}
