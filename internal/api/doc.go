// Kaiserhaus - Retail Order Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/kaiserhaus

/*
Package api exposes the order analytics engine over HTTP using the chi router.

Files:
  - chi_router.go: route table and middleware stack (SetupChi)
  - chi_middleware.go: CORS, rate limiting and security headers
  - handlers.go: Handler struct and constructor
  - handlers_helpers.go: JSON envelope, ETag and error responses
  - errors.go: engine error to HTTP status mapping
  - requests.go: query parameter parsing and validation
  - analytics_executor.go: cache-first query execution
  - handlers_health.go, handlers_meta.go, handlers_explorer.go
  - handlers_overview.go, handlers_ops.go, handlers_satisfaction.go, handlers_finance.go

Every JSON response uses models.APIResponse:

	{"status": "success", "data": ..., "metadata": {"timestamp": ..., "query_time_ms": 3}}

Engine errors map to:

	table.ErrDataUnavailable     503 DATA_UNAVAILABLE
	*schema.FieldUnresolvedError 422 FIELD_UNRESOLVED
	*filter.BadFilterError       400 BAD_FILTER
	request validation           400 VALIDATION_ERROR
*/
package api
