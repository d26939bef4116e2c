// Kaiserhaus - Retail Order Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/kaiserhaus

/*
Package middleware provides HTTP middleware components for the API.

Key Components:

  - RequestID: UUID request IDs propagated into the logging context
  - PrometheusMetrics: request count, latency and in-flight instrumentation
  - Compression: gzip for clients that send Accept-Encoding: gzip

All middleware uses the http.HandlerFunc form; the api package adapts it to
chi's func(http.Handler) http.Handler with chiMiddleware:

	r.Use(chiMiddleware(middleware.RequestID))
	r.Use(chiMiddleware(middleware.PrometheusMetrics))
*/
package middleware
