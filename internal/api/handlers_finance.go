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

// FinanceKPIs returns gross and net revenue.
func (h *Handler) FinanceKPIs(w http.ResponseWriter, r *http.Request) {
	serveDashboard(h, w, r, "finance.kpis", func(ctx context.Context, req *dashboardRequest) (dashboard.Result[dashboard.FinanceKPIs], error) {
		return h.svc.FinanceKPIs(ctx, req.query())
	})
}

// FinanceRevenueSeries sums gross and net revenue per period.
func (h *Handler) FinanceRevenueSeries(w http.ResponseWriter, r *http.Request) {
	serveDashboard(h, w, r, "finance.timeseries_revenue", func(ctx context.Context, req *dashboardRequest) (dashboard.Result[[]dashboard.RevenuePoint], error) {
		return h.svc.RevenueSeries(ctx, req.query(), req.Freq)
	})
}

// FinanceMarginByPlatform returns revenue and margin per platform.
func (h *Handler) FinanceMarginByPlatform(w http.ResponseWriter, r *http.Request) {
	serveDashboard(h, w, r, "finance.margin_by_platform", func(ctx context.Context, req *dashboardRequest) (dashboard.Result[[]dashboard.PlatformMargin], error) {
		return h.svc.MarginByPlatform(ctx, req.query())
	})
}

// FinanceRevenueByClass sums revenue per order class.
func (h *Handler) FinanceRevenueByClass(w http.ResponseWriter, r *http.Request) {
	serveDashboard(h, w, r, "finance.revenue_by_class", func(ctx context.Context, req *dashboardRequest) (dashboard.Result[dashboard.ClassBreakdown], error) {
		return h.svc.RevenueByClass(ctx, req.query())
	})
}

// FinanceTopClients lists the top_n clients by spend.
func (h *Handler) FinanceTopClients(w http.ResponseWriter, r *http.Request) {
	serveDashboard(h, w, r, "finance.top_clients", func(ctx context.Context, req *dashboardRequest) (dashboard.Result[[]dashboard.ClientSpend], error) {
		return h.svc.TopClients(ctx, req.query(), req.TopN)
	})
}
