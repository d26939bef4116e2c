// Kaiserhaus - Retail Order Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/kaiserhaus

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tomtom215/kaiserhaus/internal/middleware"
)

// Router wires handlers to routes.
type Router struct {
	handler       *Handler
	chiMiddleware *ChiMiddleware
}

// NewRouter creates a Router. A nil config uses DefaultChiMiddlewareConfig.
func NewRouter(handler *Handler, mwConfig *ChiMiddlewareConfig) *Router {
	return &Router{
		handler:       handler,
		chiMiddleware: NewChiMiddleware(mwConfig),
	}
}

// chiMiddleware adapts http.HandlerFunc middleware to Chi's func(http.Handler) http.Handler.
func chiMiddleware(mw func(http.HandlerFunc) http.HandlerFunc) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return mw(next.ServeHTTP)
	}
}

// SetupChi configures all HTTP routes.
func (router *Router) SetupChi() http.Handler {
	r := chi.NewRouter()
	h := router.handler

	// Global middleware, applied to all routes in order
	r.Use(chiMiddleware(middleware.RequestID))
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(router.chiMiddleware.CORS()) // global so OPTIONS preflight is answered

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		respondError(w, r, http.StatusNotFound, ErrCodeNotFound, "Route not found", nil, nil)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		respondError(w, r, http.StatusMethodNotAllowed, ErrCodeMethodNotAllowed, "Method not allowed", nil, nil)
	})

	r.Route("/api/v1/health", func(r chi.Router) {
		r.Use(router.chiMiddleware.RateLimitHealth())
		r.Use(APISecurityHeaders())
		r.Use(chiMiddleware(middleware.Compression))

		r.Get("/", h.Health)
		r.Get("/live", h.HealthLive)
		r.Get("/ready", h.HealthReady)
	})

	// promhttp negotiates its own compression
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(router.chiMiddleware.RateLimit())
		r.Use(APISecurityHeaders())
		r.Use(chiMiddleware(middleware.PrometheusMetrics))
		r.Use(chiMiddleware(middleware.Compression))

		r.Route("/meta", func(r chi.Router) {
			r.Get("/fields", h.MetaFields)
			r.Get("/count", h.MetaCount)
			r.Get("/platforms", h.MetaPlatforms)
			r.Get("/macros", h.MetaMacros)
			r.Get("/date_range", h.MetaDateRange)
		})

		// Explorer
		r.Get("/columns", h.ExplorerColumns)
		r.Get("/count", h.ExplorerCount)
		r.Get("/data", h.ExplorerData)
		r.Get("/feature/{column}/summary", h.ExplorerFeatureSummary)

		r.Route("/dashboard", func(r chi.Router) {
			r.Route("/overview", func(r chi.Router) {
				r.Get("/kpis", h.OverviewKPIs)
				r.Get("/summary", h.OverviewSummary)
				r.Get("/timeseries_orders", h.OverviewOrdersSeries)
				r.Get("/by_platform", h.OverviewByPlatform)
				r.Get("/status_distribution", h.OverviewStatusDistribution)
				r.Get("/macro_bairro_avg_receita", h.OverviewMacroAvgRevenue)
			})
			r.Route("/ops", func(r chi.Router) {
				r.Get("/kpis", h.OpsKPIs)
				r.Get("/timeseries_delivery", h.OpsDeliverySeries)
				r.Get("/boxplot_delivery_by_macro", h.OpsDeliveryBoxplot)
				r.Get("/heatmap_delay_by_macro", h.OpsDelayHeatmap)
				r.Get("/scatter_distance_vs_delivery", h.OpsDistanceScatter)
				r.Get("/histogram_delivery", h.OpsDeliveryHistogram)
				r.Get("/late_rate_by_macro", h.OpsLateRate)
			})
			r.Route("/satisfaction", func(r chi.Router) {
				r.Get("/kpis", h.SatisfactionKPIs)
				r.Get("/by_macro_bairro", h.SatisfactionByMacro)
				r.Get("/scatter_time_vs_score", h.SatisfactionScatter)
				r.Get("/timeseries", h.SatisfactionSeries)
				r.Get("/heatmap_platform", h.SatisfactionPlatformHeatmap)
				r.Get("/histogram", h.SatisfactionHistogram)
			})
			r.Route("/finance", func(r chi.Router) {
				r.Get("/kpis", h.FinanceKPIs)
				r.Get("/timeseries_revenue", h.FinanceRevenueSeries)
				r.Get("/margin_by_platform", h.FinanceMarginByPlatform)
				r.Get("/revenue_by_class", h.FinanceRevenueByClass)
				r.Get("/top_clients", h.FinanceTopClients)
			})
		})
	})

	return r
}
