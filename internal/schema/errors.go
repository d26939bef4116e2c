// Kaiserhaus - Retail Order Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/kaiserhaus

package schema

import (
	"errors"
	"fmt"
)

// ErrFieldUnresolved matches any *FieldUnresolvedError via errors.Is.
var ErrFieldUnresolved = errors.New("field unresolved")

// FieldUnresolvedError reports a required canonical field with no backing column.
type FieldUnresolvedError struct {
	Field    Field
	Override string
}

func (e *FieldUnresolvedError) Error() string {
	if e.Override != "" {
		return fmt.Sprintf("field unresolved: %s (override %q is not a column and no alias matched)", e.Field, e.Override)
	}
	return fmt.Sprintf("field unresolved: no column matches %s", e.Field)
}

// Is lets errors.Is(err, ErrFieldUnresolved) match.
func (e *FieldUnresolvedError) Is(target error) bool {
	return target == ErrFieldUnresolved
}
