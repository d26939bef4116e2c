// Kaiserhaus - Retail Order Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/kaiserhaus

package api

import (
	"time"

	"github.com/tomtom215/kaiserhaus/internal/cache"
	"github.com/tomtom215/kaiserhaus/internal/config"
	"github.com/tomtom215/kaiserhaus/internal/dashboard"
	"github.com/tomtom215/kaiserhaus/internal/table"
)

// Version is reported by the health endpoint. Overridden at build time.
var Version = "dev"

// Handler serves the analytics API.
type Handler struct {
	store     *table.Store
	svc       *dashboard.Service
	cache     *cache.Cache
	config    *config.Config
	startTime time.Time
}

// NewHandler creates a Handler over store. A zero API.CacheTTL disables the
// response cache.
func NewHandler(store *table.Store, cfg *config.Config) *Handler {
	h := &Handler{
		store:     store,
		svc:       dashboard.New(store),
		config:    cfg,
		startTime: time.Now(),
	}
	if cfg.API.CacheTTL > 0 {
		h.cache = cache.New(cfg.API.CacheTTL)
	}
	return h
}

// ClearCache drops every cached response.
func (h *Handler) ClearCache() {
	if h.cache != nil {
		h.cache.Clear()
	}
}

// Close stops the cache cleanup goroutine.
func (h *Handler) Close() {
	if h.cache != nil {
		h.cache.Close()
	}
}

// defaultLimit is the explorer page size when the request omits limit.
func (h *Handler) defaultLimit() int {
	if h.config.API.DefaultLimit > 0 {
		return h.config.API.DefaultLimit
	}
	return dashboard.DefaultPageLimit
}
