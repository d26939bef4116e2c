// Kaiserhaus - Retail Order Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/kaiserhaus

package table

import (
	"testing"
	"time"
)

func TestParseNumber(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input string
		want  float64
		ok    bool
	}{
		{"42", 42, true},
		{" 3.5 ", 3.5, true},
		{"12,5", 12.5, true},
		{"1.234,56", 1234.56, true},
		{"1,234.56", 1234.56, true},
		{"R$ 89,90", 89.9, true},
		{"-7", -7, true},
		{"1,2,3", 0, false},
		{"abc", 0, false},
		{"", 0, false},
		{"NaN", 0, false},
		{"2024-01-05", 0, false},
	}

	for _, tt := range tests {
		got, ok := parseNumber(tt.input)
		if ok != tt.ok || (ok && got != tt.want) {
			t.Errorf("parseNumber(%q) = %v, %v; want %v, %v", tt.input, got, ok, tt.want, tt.ok)
		}
	}
}

func TestParseTimestamp(t *testing.T) {
	t.Parallel()

	want := time.Date(2024, 1, 5, 13, 30, 0, 0, time.UTC)
	tests := []struct {
		input string
		want  time.Time
		ok    bool
	}{
		{"2024-01-05T13:30:00Z", want, true},
		{"2024-01-05 13:30:00", want, true},
		{"2024-01-05 13:30", want, true},
		{"05/01/2024 13:30", want, true},
		{"2024-01-05", time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC), true},
		{"yesterday", time.Time{}, false},
	}

	for _, tt := range tests {
		got, ok := ParseTimestamp(tt.input)
		if ok != tt.ok || !got.Equal(tt.want) {
			t.Errorf("ParseTimestamp(%q) = %v, %v; want %v, %v", tt.input, got, ok, tt.want, tt.ok)
		}
	}
}

func TestCoerceColumn_Kinds(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		cells []any
		want  Kind
	}{
		{"integers", []any{"1", "2", "3"}, KindInteger},
		{"reals", []any{"1.5", "2", "3,25"}, KindReal},
		{"native ints", []any{int64(1), int32(2), nil}, KindInteger},
		{"timestamps", []any{"2024-01-01 10:00:00", "2024-01-02", nil}, KindTimestamp},
		{"native times", []any{time.Now(), nil}, KindTimestamp},
		{"text", []any{"iFood", "Rappi", "Balcão"}, KindText},
		{"all missing", []any{nil, "", "nan"}, KindText},
		{"mostly text", []any{"1", "a", "b", "c"}, KindText},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := coerceColumn("c", tt.cells, DefaultCoerceRatio)
			if c.Kind != tt.want {
				t.Errorf("kind = %v, want %v", c.Kind, tt.want)
			}
		})
	}
}

func TestCoerceColumn_UnparseableBecomesMissing(t *testing.T) {
	t.Parallel()

	cells := make([]any, 0, 20)
	for i := 0; i < 19; i++ {
		cells = append(cells, "10")
	}
	cells = append(cells, "n/d?")

	c := coerceColumn("total_brl", cells, DefaultCoerceRatio)
	if c.Kind != KindInteger {
		t.Fatalf("kind = %v, want integer", c.Kind)
	}
	if !c.IsMissing(19) {
		t.Error("unparseable cell should be missing")
	}
	if v, ok := c.Float(0); !ok || v != 10 {
		t.Errorf("Float(0) = %v, %v", v, ok)
	}
}

func TestColumnAccessors(t *testing.T) {
	t.Parallel()

	text := NewTextColumn("t", []string{"12,5", "x"}, nil)
	if v, ok := text.Float(0); !ok || v != 12.5 {
		t.Errorf("text Float(0) = %v, %v; want 12.5", v, ok)
	}
	if _, ok := text.Float(1); ok {
		t.Error("text Float(1) should fail")
	}

	num := NewNumberColumn("n", KindInteger, []float64{7, 0}, []bool{true, false})
	if s, _ := num.Text(0); s != "7" {
		t.Errorf("integer Text = %q, want 7", s)
	}
	if num.Value(1) != nil {
		t.Errorf("missing Value = %v, want nil", num.Value(1))
	}
	if v := num.Value(0); v != int64(7) {
		t.Errorf("integer Value = %#v, want int64(7)", v)
	}

	flag := NewBoolColumn("b", []bool{true}, nil)
	if v, ok := flag.Float(0); !ok || v != 1 {
		t.Errorf("bool Float = %v, %v; want 1", v, ok)
	}
}
