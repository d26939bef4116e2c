// Kaiserhaus - Retail Order Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/kaiserhaus

package api

import (
	"context"
	"net/http"

	"github.com/tomtom215/kaiserhaus/internal/dashboard"
	"github.com/tomtom215/kaiserhaus/internal/schema"
)

// MetaFields lists every canonical field and the column it resolved to.
func (h *Handler) MetaFields(w http.ResponseWriter, r *http.Request) {
	executePlain(h, w, r, "meta.fields", func(ctx context.Context) ([]schema.Resolution, error) {
		return h.svc.Fields(ctx)
	})
}

// MetaCount returns the number of rows matching the filter.
func (h *Handler) MetaCount(w http.ResponseWriter, r *http.Request) {
	serveDashboard(h, w, r, "meta.count", func(ctx context.Context, req *dashboardRequest) (dashboard.Result[int], error) {
		return h.svc.Count(ctx, req.query())
	})
}

// MetaPlatforms lists distinct platforms among filtered rows.
func (h *Handler) MetaPlatforms(w http.ResponseWriter, r *http.Request) {
	serveDashboard(h, w, r, "meta.platforms", func(ctx context.Context, req *dashboardRequest) (dashboard.Result[[]string], error) {
		return h.svc.Platforms(ctx, req.query())
	})
}

// MetaMacros lists distinct macro regions among filtered rows.
func (h *Handler) MetaMacros(w http.ResponseWriter, r *http.Request) {
	serveDashboard(h, w, r, "meta.macros", func(ctx context.Context, req *dashboardRequest) (dashboard.Result[[]string], error) {
		return h.svc.Macros(ctx, req.query())
	})
}

// MetaDateRange returns the first and last order timestamp.
func (h *Handler) MetaDateRange(w http.ResponseWriter, r *http.Request) {
	serveDashboard(h, w, r, "meta.date_range", func(ctx context.Context, req *dashboardRequest) (dashboard.Result[*dashboard.DateRange], error) {
		return h.svc.DateRange(ctx, req.query())
	})
}
