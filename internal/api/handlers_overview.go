// Kaiserhaus - Retail Order Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/kaiserhaus

package api

import (
	"context"
	"net/http"

	"github.com/tomtom215/kaiserhaus/internal/aggregate"
	"github.com/tomtom215/kaiserhaus/internal/dashboard"
)

// OverviewKPIs returns order count, revenue, average ticket and the covered period.
func (h *Handler) OverviewKPIs(w http.ResponseWriter, r *http.Request) {
	serveDashboard(h, w, r, "overview.kpis", func(ctx context.Context, req *dashboardRequest) (dashboard.Result[dashboard.OverviewKPIs], error) {
		return h.svc.OverviewKPIs(ctx, req.query())
	})
}

// OverviewSummary returns the cross-dashboard KPI block.
func (h *Handler) OverviewSummary(w http.ResponseWriter, r *http.Request) {
	serveDashboard(h, w, r, "overview.summary", func(ctx context.Context, req *dashboardRequest) (dashboard.Result[aggregate.KPI], error) {
		return h.svc.Summary(ctx, req.query())
	})
}

// OverviewOrdersSeries buckets order counts by freq (D, W or M).
func (h *Handler) OverviewOrdersSeries(w http.ResponseWriter, r *http.Request) {
	serveDashboard(h, w, r, "overview.timeseries_orders", func(ctx context.Context, req *dashboardRequest) (dashboard.Result[[]dashboard.OrdersPoint], error) {
		return h.svc.OrdersSeries(ctx, req.query(), req.Freq)
	})
}

// OverviewByPlatform counts orders per platform.
func (h *Handler) OverviewByPlatform(w http.ResponseWriter, r *http.Request) {
	serveDashboard(h, w, r, "overview.by_platform", func(ctx context.Context, req *dashboardRequest) (dashboard.Result[[]dashboard.PlatformOrders], error) {
		return h.svc.ByPlatform(ctx, req.query())
	})
}

// OverviewStatusDistribution counts orders per status.
func (h *Handler) OverviewStatusDistribution(w http.ResponseWriter, r *http.Request) {
	serveDashboard(h, w, r, "overview.status_distribution", func(ctx context.Context, req *dashboardRequest) (dashboard.Result[[]dashboard.StatusCount], error) {
		return h.svc.StatusDistribution(ctx, req.query())
	})
}

// OverviewMacroAvgRevenue returns average revenue per macro region.
func (h *Handler) OverviewMacroAvgRevenue(w http.ResponseWriter, r *http.Request) {
	serveDashboard(h, w, r, "overview.macro_bairro_avg_receita", func(ctx context.Context, req *dashboardRequest) (dashboard.Result[[]dashboard.MacroRevenue], error) {
		return h.svc.MacroAvgRevenue(ctx, req.query())
	})
}
