// Kaiserhaus - Retail Order Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/kaiserhaus

package api

import (
	"context"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/tomtom215/kaiserhaus/internal/dashboard"
)

// ExplorerColumns lists the source columns and their coerced kinds.
func (h *Handler) ExplorerColumns(w http.ResponseWriter, r *http.Request) {
	executePlain(h, w, r, "explorer.columns", func(ctx context.Context) ([]dashboard.ColumnInfo, error) {
		return h.svc.Columns(ctx)
	})
}

// ExplorerCount counts filtered rows matching the free-text search q.
func (h *Handler) ExplorerCount(w http.ResponseWriter, r *http.Request) {
	req, verr := parseExplorerRequest(r, h.defaultLimit())
	if verr != nil {
		respondValidationError(w, r, verr)
		return
	}
	executeQuery(h, w, r, "explorer.count", req, func(ctx context.Context) (dashboard.Result[int], error) {
		return h.svc.SearchCount(ctx, req.Base.query(), req.Search)
	})
}

// ExplorerData returns a page of raw rows.
//
// Query parameters: q, columns (repeated or comma-separated), sort,
// order (1 or asc for ascending, default descending), offset, limit.
func (h *Handler) ExplorerData(w http.ResponseWriter, r *http.Request) {
	req, verr := parseExplorerRequest(r, h.defaultLimit())
	if verr != nil {
		respondValidationError(w, r, verr)
		return
	}
	if h.config.API.MaxLimit > 0 && req.Limit > h.config.API.MaxLimit {
		req.Limit = h.config.API.MaxLimit
	}
	executeQuery(h, w, r, "explorer.data", req, func(ctx context.Context) (dashboard.Result[dashboard.Page], error) {
		return h.svc.Page(ctx, req.Base.query(), req.page())
	})
}

// ExplorerFeatureSummary describes one column over the filtered rows.
func (h *Handler) ExplorerFeatureSummary(w http.ResponseWriter, r *http.Request) {
	column := strings.TrimSpace(chi.URLParam(r, "column"))
	serveDashboard(h, w, r, "explorer.feature_summary:"+column, func(ctx context.Context, req *dashboardRequest) (dashboard.Result[dashboard.FeatureSummary], error) {
		return h.svc.FeatureSummary(ctx, req.query(), column)
	})
}
