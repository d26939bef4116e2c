// Kaiserhaus - Retail Order Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/kaiserhaus

// Package metrics exposes the Prometheus instrumentation for Kaiserhaus:
// table load, schema resolution, filter compilation, result cache and API
// request metrics. All collectors register on the default registry and are
// served by promhttp on /metrics.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Table Store Metrics
	TableRows = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "kaiserhaus_table_rows",
			Help: "Number of rows in the loaded order table",
		},
	)

	TableColumns = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "kaiserhaus_table_columns",
			Help: "Number of source columns in the loaded order table",
		},
	)

	TableLoadDuration = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "kaiserhaus_table_load_duration_seconds",
			Help: "Time spent loading and coercing the source table",
		},
	)

	TableLoadErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "kaiserhaus_table_load_errors_total",
			Help: "Total number of failed source table loads",
		},
		[]string{"format"},
	)

	DerivedColumnsBuilt = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "kaiserhaus_derived_columns_built_total",
			Help: "Total number of derived columns materialized",
		},
		[]string{"column"},
	)

	// Schema and Filter Metrics
	ResolutionMisses = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "kaiserhaus_schema_resolution_misses_total",
			Help: "Total number of canonical field lookups with no matching column",
		},
		[]string{"field"},
	)

	FilterUnresolved = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "kaiserhaus_filter_unresolved_total",
			Help: "Total number of filter dimensions skipped because their field did not resolve",
		},
		[]string{"dimension"},
	)

	FilterRejected = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "kaiserhaus_filter_rejected_total",
			Help: "Total number of filter specifications rejected as malformed",
		},
		[]string{"dimension"},
	)

	// Result Cache Metrics
	CacheHits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "kaiserhaus_result_cache_hits_total",
			Help: "Total number of analytics results served from cache",
		},
	)

	CacheMisses = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "kaiserhaus_result_cache_misses_total",
			Help: "Total number of analytics results computed on demand",
		},
	)

	// API Endpoint Metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "api_active_requests",
			Help: "Current number of active API requests",
		},
	)
)

// RecordTableLoad records the outcome of the one-time table load.
func RecordTableLoad(format string, rows, columns int, duration time.Duration, err error) {
	if err != nil {
		TableLoadErrors.WithLabelValues(format).Inc()
		return
	}
	TableRows.Set(float64(rows))
	TableColumns.Set(float64(columns))
	TableLoadDuration.Set(duration.Seconds())
}

// RecordResolutionMiss counts a canonical field that did not resolve.
func RecordResolutionMiss(field string) {
	ResolutionMisses.WithLabelValues(field).Inc()
}

// RecordFilterUnresolved counts a filter dimension that degraded to a no-op.
func RecordFilterUnresolved(dimension string) {
	FilterUnresolved.WithLabelValues(dimension).Inc()
}

// RecordFilterRejected counts a malformed filter value.
func RecordFilterRejected(dimension string) {
	FilterRejected.WithLabelValues(dimension).Inc()
}

// RecordDerivedColumn counts a derived column materialization.
func RecordDerivedColumn(column string) {
	DerivedColumnsBuilt.WithLabelValues(column).Inc()
}

// RecordCacheLookup records a result cache hit or miss.
func RecordCacheLookup(hit bool) {
	if hit {
		CacheHits.Inc()
	} else {
		CacheMisses.Inc()
	}
}

// RecordAPIRequest records an API request metric
func RecordAPIRequest(method, endpoint, statusCode string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// TrackActiveRequest tracks active API requests
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}
