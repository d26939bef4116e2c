// Kaiserhaus - Retail Order Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/kaiserhaus

// Package models holds the JSON envelope shared by every HTTP endpoint.
package models

import (
	"time"

	"github.com/tomtom215/kaiserhaus/internal/filter"
)

// APIResponse represents a standardized API response wrapper used by all HTTP endpoints.
//
// Example successful response:
//
//	{
//	  "status": "success",
//	  "data": {"total_pedidos": 1000, "receita_total": 53120.4},
//	  "metadata": {
//	    "timestamp": "2026-01-28T12:00:00Z",
//	    "query_time_ms": 4,
//	    "warnings": [{"dimension": "platform", "field": "platform", "message": "..."}]
//	  }
//	}
//
// Example error response:
//
//	{
//	  "status": "error",
//	  "data": null,
//	  "error": {"code": "BAD_FILTER", "message": "...", "details": {"dimension": "score_min"}},
//	  "metadata": {"timestamp": "2026-01-28T12:00:00Z"}
//	}
type APIResponse struct {
	Status   string      `json:"status"`
	Data     interface{} `json:"data"`
	Metadata Metadata    `json:"metadata"`
	Error    *APIError   `json:"error,omitempty"`
}

// Metadata contains response metadata.
//
// QueryTimeMS is 0 and Cached is true when the payload came from the response
// cache. Warnings lists filter dimensions that were skipped because their
// column could not be resolved.
type Metadata struct {
	Timestamp   time.Time        `json:"timestamp"`
	QueryTimeMS int64            `json:"query_time_ms"`
	Cached      bool             `json:"cached,omitempty"`
	RequestID   string           `json:"request_id,omitempty"`
	Warnings    []filter.Warning `json:"warnings,omitempty"`
}

// APIError represents an error response.
type APIError struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}

// HealthStatus is the payload of GET /api/v1/health.
type HealthStatus struct {
	Status           string     `json:"status"` // "healthy" or "degraded"
	Version          string     `json:"version"`
	DataLoaded       bool       `json:"data_loaded"`
	DataError        string     `json:"data_error,omitempty"`
	Source           string     `json:"source,omitempty"`
	Format           string     `json:"format,omitempty"`
	Rows             int        `json:"rows"`
	Columns          int        `json:"columns"`
	LoadedAt         *time.Time `json:"loaded_at,omitempty"`
	LoadSeconds      float64    `json:"load_seconds,omitempty"`
	Uptime           float64    `json:"uptime_seconds"`
	CacheHitRate     float64    `json:"cache_hit_rate"`
	CacheEntries     int64      `json:"cache_entries"`
	UnresolvedFields []string   `json:"unresolved_fields,omitempty"`
}
