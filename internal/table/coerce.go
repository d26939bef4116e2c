// Kaiserhaus - Retail Order Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/kaiserhaus

package table

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// DefaultCoerceRatio is the share of non-missing cells that must parse before a
// column is given a numeric or timestamp kind.
const DefaultCoerceRatio = 0.9

// timestampLayouts are tried in order. Day-first layouts follow the ISO ones
// because the source spreadsheets are Brazilian.
var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
	"02/01/2006 15:04:05",
	"02/01/2006 15:04",
	"02/01/2006",
}

// missingTokens are text cells treated as missing regardless of column kind.
var missingTokens = map[string]struct{}{
	"":     {},
	"nan":  {},
	"null": {},
	"none": {},
	"nat":  {},
	"n/a":  {},
	"-":    {},
}

func isMissingToken(s string) bool {
	_, ok := missingTokens[strings.ToLower(strings.TrimSpace(s))]
	return ok
}

// parseNumber parses integers and decimals written with either "." or "," as
// the decimal separator, with optional thousands separators and an "R$" prefix.
func parseNumber(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	s = strings.TrimSpace(strings.TrimPrefix(s, "R$"))
	if s == "" {
		return 0, false
	}

	lastDot := strings.LastIndexByte(s, '.')
	lastComma := strings.LastIndexByte(s, ',')
	switch {
	case lastComma >= 0 && lastDot >= 0:
		if lastComma > lastDot {
			// 1.234,56
			s = strings.ReplaceAll(s, ".", "")
			s = strings.Replace(s, ",", ".", 1)
		} else {
			// 1,234.56
			s = strings.ReplaceAll(s, ",", "")
		}
	case lastComma >= 0:
		if strings.Count(s, ",") > 1 {
			return 0, false
		}
		s = strings.Replace(s, ",", ".", 1)
	}

	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

// ParseTimestamp parses a timestamp literal using the accepted layouts.
func ParseTimestamp(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range timestampLayouts {
		if ts, err := time.Parse(layout, s); err == nil {
			return ts, true
		}
	}
	return time.Time{}, false
}

// coerceColumn turns raw cells into a typed column. Raw cells are nil, string,
// bool, time.Time or any Go numeric type. A column takes a numeric or timestamp
// kind when at least ratio of its non-missing cells parse as such; the cells
// that do not parse become missing. Otherwise it stays text.
func coerceColumn(name string, cells []any, ratio float64) *Column {
	if ratio <= 0 || ratio > 1 {
		ratio = DefaultCoerceRatio
	}

	n := len(cells)
	text := make([]string, n)
	textValid := make([]bool, n)
	nums := make([]float64, n)
	numValid := make([]bool, n)
	times := make([]time.Time, n)
	timeValid := make([]bool, n)

	present, numeric, integral, stamps := 0, 0, 0, 0
	for i, cell := range cells {
		switch v := cell.(type) {
		case nil:
			continue
		case time.Time:
			present++
			stamps++
			times[i], timeValid[i] = v, true
			text[i], textValid[i] = v.Format(TimestampLayout), true
			continue
		case bool:
			present++
			text[i], textValid[i] = strconv.FormatBool(v), true
			continue
		case string:
			if isMissingToken(v) {
				continue
			}
			present++
			text[i], textValid[i] = strings.TrimSpace(v), true
			if f, ok := parseNumber(v); ok {
				nums[i], numValid[i] = f, true
			} else if ts, ok := ParseTimestamp(v); ok {
				times[i], timeValid[i] = ts, true
				stamps++
			}
		default:
			f, ok := toFloat(v)
			if !ok {
				s := fmt.Sprint(v)
				if isMissingToken(s) {
					continue
				}
				present++
				text[i], textValid[i] = s, true
				continue
			}
			present++
			nums[i], numValid[i] = f, true
			text[i], textValid[i] = strconv.FormatFloat(f, 'f', -1, 64), true
		}
		if numValid[i] {
			numeric++
			if nums[i] == math.Trunc(nums[i]) {
				integral++
			}
		}
	}

	if present == 0 {
		return NewTextColumn(name, text, textValid)
	}
	threshold := ratio * float64(present)
	switch {
	case float64(numeric) >= threshold:
		kind := KindReal
		if integral == numeric {
			kind = KindInteger
		}
		return NewNumberColumn(name, kind, nums, numValid)
	case float64(stamps) >= threshold:
		return NewTimeColumn(name, times, timeValid)
	default:
		return NewTextColumn(name, text, textValid)
	}
}

// toFloat converts Go numeric scan results to float64.
func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, !math.IsNaN(n) && !math.IsInf(n, 0)
	case float32:
		f := float64(n)
		return f, !math.IsNaN(f) && !math.IsInf(f, 0)
	case int:
		return float64(n), true
	case int8:
		return float64(n), true
	case int16:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint8:
		return float64(n), true
	case uint16:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	case fmt.Stringer:
		return parseNumber(n.String())
	}
	return 0, false
}
