// Kaiserhaus - Retail Order Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/kaiserhaus

package filter

import (
	"errors"
	"fmt"
)

// ErrBadFilter matches every *BadFilterError via errors.Is.
var ErrBadFilter = errors.New("bad filter")

// BadFilterError reports a filter or request literal that cannot be parsed.
type BadFilterError struct {
	Dimension string
	Value     string
	Reason    string
}

func (e *BadFilterError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("bad filter %s=%q: %s", e.Dimension, e.Value, e.Reason)
	}
	return fmt.Sprintf("bad filter %s=%q", e.Dimension, e.Value)
}

// Is makes errors.Is(err, ErrBadFilter) true.
func (e *BadFilterError) Is(target error) bool {
	return target == ErrBadFilter
}

// NewBadFilter builds a BadFilterError.
func NewBadFilter(dimension, value, reason string) *BadFilterError {
	return &BadFilterError{Dimension: dimension, Value: value, Reason: reason}
}
