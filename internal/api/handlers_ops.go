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

// OpsKPIs returns average preparation time, delivery time, delay and distance.
func (h *Handler) OpsKPIs(w http.ResponseWriter, r *http.Request) {
	serveDashboard(h, w, r, "ops.kpis", func(ctx context.Context, req *dashboardRequest) (dashboard.Result[dashboard.OpsKPIs], error) {
		return h.svc.OpsKPIs(ctx, req.query())
	})
}

// OpsDeliverySeries averages delivery minutes per period.
func (h *Handler) OpsDeliverySeries(w http.ResponseWriter, r *http.Request) {
	serveDashboard(h, w, r, "ops.timeseries_delivery", func(ctx context.Context, req *dashboardRequest) (dashboard.Result[[]dashboard.DeliveryPoint], error) {
		return h.svc.DeliverySeries(ctx, req.query(), req.Freq)
	})
}

// OpsDeliveryBoxplot returns delivery time percentiles per macro region.
func (h *Handler) OpsDeliveryBoxplot(w http.ResponseWriter, r *http.Request) {
	serveDashboard(h, w, r, "ops.boxplot_delivery_by_macro", func(ctx context.Context, req *dashboardRequest) (dashboard.Result[[]dashboard.DeliveryBox], error) {
		return h.svc.DeliveryBoxplot(ctx, req.query())
	})
}

// OpsDelayHeatmap returns mean delay against the quoted ETA per macro region.
func (h *Handler) OpsDelayHeatmap(w http.ResponseWriter, r *http.Request) {
	serveDashboard(h, w, r, "ops.heatmap_delay_by_macro", func(ctx context.Context, req *dashboardRequest) (dashboard.Result[[]dashboard.DelayCell], error) {
		return h.svc.DelayHeatmap(ctx, req.query())
	})
}

// OpsDistanceScatter returns distance and delivery time pairs. sample caps
// the number of points; 0 returns all of them.
func (h *Handler) OpsDistanceScatter(w http.ResponseWriter, r *http.Request) {
	serveDashboard(h, w, r, "ops.scatter_distance_vs_delivery", func(ctx context.Context, req *dashboardRequest) (dashboard.Result[[]dashboard.DistancePoint], error) {
		return h.svc.DistanceScatter(ctx, req.query(), req.Sample)
	})
}

// OpsDeliveryHistogram bins delivery minutes.
func (h *Handler) OpsDeliveryHistogram(w http.ResponseWriter, r *http.Request) {
	serveDashboard(h, w, r, "ops.histogram_delivery", func(ctx context.Context, req *dashboardRequest) (dashboard.Result[[]dashboard.ValueBin], error) {
		return h.svc.DeliveryHistogram(ctx, req.query(), req.Bins)
	})
}

// OpsLateRate returns the share of late orders per macro region.
func (h *Handler) OpsLateRate(w http.ResponseWriter, r *http.Request) {
	serveDashboard(h, w, r, "ops.late_rate_by_macro", func(ctx context.Context, req *dashboardRequest) (dashboard.Result[[]dashboard.LateRate], error) {
		return h.svc.LateRate(ctx, req.query())
	})
}
