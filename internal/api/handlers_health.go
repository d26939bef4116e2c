// Kaiserhaus - Retail Order Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/kaiserhaus

package api

import (
	"net/http"
	"time"

	"github.com/tomtom215/kaiserhaus/internal/models"
)

// Health reports load status and basic process figures. It always answers
// 200 so dashboards can show why data is missing.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	status := models.HealthStatus{
		Status:  "healthy",
		Version: Version,
		Uptime:  time.Since(h.startTime).Seconds(),
	}
	if h.cache != nil {
		stats := h.cache.GetStats()
		status.CacheHitRate = h.cache.HitRate()
		status.CacheEntries = stats.TotalKeys
	}

	if err := h.store.Ready(); err != nil {
		status.Status = "degraded"
		status.DataError = err.Error()
		respondSuccess(w, r, status, models.Metadata{})
		return
	}

	info := h.store.Info()
	loadedAt := info.LoadedAt
	status.DataLoaded = true
	status.Source = info.Path
	status.Format = info.Format
	status.Rows = info.Rows
	status.Columns = info.Columns
	status.LoadedAt = &loadedAt
	status.LoadSeconds = info.Duration.Seconds()

	if resolver, err := h.store.Resolver(); err == nil {
		for _, res := range resolver.Fields() {
			if !res.Resolved {
				status.UnresolvedFields = append(status.UnresolvedFields, string(res.Field))
			}
		}
	}

	respondSuccess(w, r, status, models.Metadata{})
}

// HealthLive is the liveness probe. It succeeds while the process serves.
func (h *Handler) HealthLive(w http.ResponseWriter, r *http.Request) {
	respondSuccess(w, r, map[string]interface{}{
		"status": "alive",
		"uptime": time.Since(h.startTime).Seconds(),
	}, models.Metadata{})
}

// HealthReady is the readiness probe. It fails with 503 until the orders
// table is loaded.
func (h *Handler) HealthReady(w http.ResponseWriter, r *http.Request) {
	if err := h.store.Ready(); err != nil {
		respondEngineError(w, r, err)
		return
	}
	respondSuccess(w, r, map[string]interface{}{
		"status": "ready",
		"rows":   h.store.Info().Rows,
	}, models.Metadata{})
}
