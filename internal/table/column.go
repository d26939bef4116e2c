// Kaiserhaus - Retail Order Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/kaiserhaus

package table

import (
	"math"
	"strconv"
	"time"
)

// Kind is the storage type of a column.
type Kind int

// Column kinds. Bool is only produced for derived flags.
const (
	KindMissing Kind = iota
	KindText
	KindInteger
	KindReal
	KindTimestamp
	KindBool
)

// String returns the kind name used in the columns listing.
func (k Kind) String() string {
	switch k {
	case KindText:
		return "text"
	case KindInteger:
		return "integer"
	case KindReal:
		return "real"
	case KindTimestamp:
		return "timestamp"
	case KindBool:
		return "bool"
	default:
		return "missing"
	}
}

// Numeric reports whether the kind stores numbers.
func (k Kind) Numeric() bool {
	return k == KindInteger || k == KindReal
}

// TimestampLayout is the text rendering of timestamp cells.
const TimestampLayout = "2006-01-02 15:04:05"

// Column is one typed column. Exactly one of the value slices is populated,
// matching Kind; valid[i] == false marks a missing cell.
type Column struct {
	Name  string
	Kind  Kind
	text  []string
	nums  []float64
	times []time.Time
	bools []bool
	valid []bool
}

// NewTextColumn builds a text column. A nil valid slice marks every cell present.
func NewTextColumn(name string, values []string, valid []bool) *Column {
	return &Column{Name: name, Kind: KindText, text: values, valid: fillValid(valid, len(values))}
}

// NewNumberColumn builds an integer or real column.
func NewNumberColumn(name string, kind Kind, values []float64, valid []bool) *Column {
	if kind != KindInteger {
		kind = KindReal
	}
	return &Column{Name: name, Kind: kind, nums: values, valid: fillValid(valid, len(values))}
}

// NewTimeColumn builds a timestamp column.
func NewTimeColumn(name string, values []time.Time, valid []bool) *Column {
	return &Column{Name: name, Kind: KindTimestamp, times: values, valid: fillValid(valid, len(values))}
}

// NewBoolColumn builds a boolean flag column.
func NewBoolColumn(name string, values []bool, valid []bool) *Column {
	return &Column{Name: name, Kind: KindBool, bools: values, valid: fillValid(valid, len(values))}
}

func fillValid(valid []bool, n int) []bool {
	if valid != nil {
		return valid
	}
	valid = make([]bool, n)
	for i := range valid {
		valid[i] = true
	}
	return valid
}

// Len returns the number of cells.
func (c *Column) Len() int {
	return len(c.valid)
}

// IsMissing reports whether cell i is missing.
func (c *Column) IsMissing(i int) bool {
	return !c.valid[i]
}

// Text renders cell i as text. Numbers drop a trailing ".0" for integer kinds.
func (c *Column) Text(i int) (string, bool) {
	if !c.valid[i] {
		return "", false
	}
	switch c.Kind {
	case KindText:
		return c.text[i], true
	case KindInteger:
		return strconv.FormatInt(int64(c.nums[i]), 10), true
	case KindReal:
		return strconv.FormatFloat(c.nums[i], 'f', -1, 64), true
	case KindTimestamp:
		return c.times[i].Format(TimestampLayout), true
	case KindBool:
		return strconv.FormatBool(c.bools[i]), true
	}
	return "", false
}

// Float returns cell i as a number. Text cells are parsed on access so that a
// column that stayed text at load time can still feed a numeric reduction.
func (c *Column) Float(i int) (float64, bool) {
	if !c.valid[i] {
		return 0, false
	}
	switch c.Kind {
	case KindInteger, KindReal:
		return c.nums[i], true
	case KindText:
		return parseNumber(c.text[i])
	case KindBool:
		if c.bools[i] {
			return 1, true
		}
		return 0, true
	}
	return 0, false
}

// Time returns cell i as a timestamp. Only timestamp columns answer.
func (c *Column) Time(i int) (time.Time, bool) {
	if !c.valid[i] || c.Kind != KindTimestamp {
		return time.Time{}, false
	}
	return c.times[i], true
}

// Bool returns cell i as a flag. Only bool columns answer.
func (c *Column) Bool(i int) (bool, bool) {
	if !c.valid[i] || c.Kind != KindBool {
		return false, false
	}
	return c.bools[i], true
}

// Value returns cell i as a JSON-ready value: nil, string, int64, float64 or bool.
// Timestamps are rendered with TimestampLayout.
func (c *Column) Value(i int) any {
	if !c.valid[i] {
		return nil
	}
	switch c.Kind {
	case KindText:
		return c.text[i]
	case KindInteger:
		return int64(c.nums[i])
	case KindReal:
		if math.IsNaN(c.nums[i]) || math.IsInf(c.nums[i], 0) {
			return nil
		}
		return c.nums[i]
	case KindTimestamp:
		return c.times[i].Format(TimestampLayout)
	case KindBool:
		return c.bools[i]
	}
	return nil
}
