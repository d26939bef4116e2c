// Kaiserhaus - Retail Order Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/kaiserhaus

package api

import (
	"context"
	"net/http"

	"github.com/tomtom215/kaiserhaus/internal/dashboard"
)

// SatisfactionKPIs returns the mean score, the very-satisfied share and the response count.
func (h *Handler) SatisfactionKPIs(w http.ResponseWriter, r *http.Request) {
	serveDashboard(h, w, r, "satisfaction.kpis", func(ctx context.Context, req *dashboardRequest) (dashboard.Result[dashboard.SatisfactionKPIs], error) {
		return h.svc.SatisfactionKPIs(ctx, req.query())
	})
}

// SatisfactionByMacro averages the score per macro region.
func (h *Handler) SatisfactionByMacro(w http.ResponseWriter, r *http.Request) {
	serveDashboard(h, w, r, "satisfaction.by_macro_bairro", func(ctx context.Context, req *dashboardRequest) (dashboard.Result[[]dashboard.MacroScore], error) {
		return h.svc.ScoreByMacro(ctx, req.query())
	})
}

// SatisfactionScatter pairs delivery minutes with the score.
func (h *Handler) SatisfactionScatter(w http.ResponseWriter, r *http.Request) {
	serveDashboard(h, w, r, "satisfaction.scatter_time_vs_score", func(ctx context.Context, req *dashboardRequest) (dashboard.Result[[]dashboard.ScorePoint], error) {
		return h.svc.ScoreScatter(ctx, req.query(), req.Sample)
	})
}

// SatisfactionSeries averages the score per period.
func (h *Handler) SatisfactionSeries(w http.ResponseWriter, r *http.Request) {
	serveDashboard(h, w, r, "satisfaction.timeseries", func(ctx context.Context, req *dashboardRequest) (dashboard.Result[[]dashboard.ScoreBucket], error) {
		return h.svc.ScoreSeries(ctx, req.query(), req.Freq)
	})
}

// SatisfactionPlatformHeatmap averages the score per platform and order class.
func (h *Handler) SatisfactionPlatformHeatmap(w http.ResponseWriter, r *http.Request) {
	serveDashboard(h, w, r, "satisfaction.heatmap_platform", func(ctx context.Context, req *dashboardRequest) (dashboard.Result[[]dashboard.PlatformScore], error) {
		return h.svc.PlatformHeatmap(ctx, req.query())
	})
}

// SatisfactionHistogram bins the score.
func (h *Handler) SatisfactionHistogram(w http.ResponseWriter, r *http.Request) {
	serveDashboard(h, w, r, "satisfaction.histogram", func(ctx context.Context, req *dashboardRequest) (dashboard.Result[[]dashboard.ValueBin], error) {
		return h.svc.ScoreHistogram(ctx, req.query(), req.Bins)
	})
}
