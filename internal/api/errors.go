// Kaiserhaus - Retail Order Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/kaiserhaus

package api

import (
	"errors"
	"net/http"

	"github.com/tomtom215/kaiserhaus/internal/filter"
	"github.com/tomtom215/kaiserhaus/internal/schema"
	"github.com/tomtom215/kaiserhaus/internal/table"
	"github.com/tomtom215/kaiserhaus/internal/validation"
)

// Error codes for API responses
const (
	ErrCodeDataUnavailable  = "DATA_UNAVAILABLE"
	ErrCodeFieldUnresolved  = "FIELD_UNRESOLVED"
	ErrCodeBadFilter        = "BAD_FILTER"
	ErrCodeValidation       = validation.ErrorCode
	ErrCodeNotFound         = "NOT_FOUND"
	ErrCodeMethodNotAllowed = "METHOD_NOT_ALLOWED"
	ErrCodeTooManyRequests  = "TOO_MANY_REQUESTS"
	ErrCodeInternalError    = "INTERNAL_ERROR"
)

// apiFailure is the HTTP rendering of an engine error.
type apiFailure struct {
	status  int
	code    string
	message string
	details map[string]interface{}
}

// classifyError maps engine errors onto status codes. Unknown errors are 500.
func classifyError(err error) apiFailure {
	var unresolved *schema.FieldUnresolvedError
	var badFilter *filter.BadFilterError

	switch {
	case errors.Is(err, table.ErrDataUnavailable):
		return apiFailure{
			status:  http.StatusServiceUnavailable,
			code:    ErrCodeDataUnavailable,
			message: "Order data is not available",
		}
	case errors.As(err, &unresolved):
		details := map[string]interface{}{"field": string(unresolved.Field)}
		if unresolved.Override != "" {
			details["override"] = unresolved.Override
		}
		return apiFailure{
			status:  http.StatusUnprocessableEntity,
			code:    ErrCodeFieldUnresolved,
			message: unresolved.Error(),
			details: details,
		}
	case errors.As(err, &badFilter):
		return apiFailure{
			status:  http.StatusBadRequest,
			code:    ErrCodeBadFilter,
			message: badFilter.Error(),
			details: map[string]interface{}{
				"dimension": badFilter.Dimension,
				"value":     badFilter.Value,
			},
		}
	}
	return apiFailure{
		status:  http.StatusInternalServerError,
		code:    ErrCodeInternalError,
		message: "Query failed",
	}
}
