// Kaiserhaus - Retail Order Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/kaiserhaus

package api

import (
	"context"
	"net/http"
	"time"

	"github.com/tomtom215/kaiserhaus/internal/cache"
	"github.com/tomtom215/kaiserhaus/internal/dashboard"
	"github.com/tomtom215/kaiserhaus/internal/logging"
	"github.com/tomtom215/kaiserhaus/internal/models"
)

// executeQuery runs a dashboard query behind the response cache.
//
// The key is derived from the route name and the parsed parameters, so two
// requests that differ only in parameter order share an entry. Only successful
// results are cached; errors are always recomputed.
func executeQuery[T any](h *Handler, w http.ResponseWriter, r *http.Request, name string, params interface{}, run func(ctx context.Context) (dashboard.Result[T], error)) {
	cacheKey := cache.GenerateKey(name, params)

	if h.cache != nil {
		if cached, found := h.cache.Get(cacheKey); found {
			if res, ok := cached.(dashboard.Result[T]); ok {
				respondSuccess(w, r, res.Data, models.Metadata{
					Cached:   true,
					Warnings: res.Warnings,
				})
				return
			}
		}
	}

	start := time.Now()
	res, err := run(r.Context())
	if err != nil {
		respondEngineError(w, r, err)
		return
	}
	elapsed := time.Since(start)

	if h.cache != nil {
		h.cache.Set(cacheKey, res)
	}

	logging.Ctx(r.Context()).Debug().
		Str("query", name).
		Dur("duration", elapsed).
		Int("warnings", len(res.Warnings)).
		Msg("Query executed")

	respondSuccess(w, r, res.Data, models.Metadata{
		QueryTimeMS: elapsed.Milliseconds(),
		Warnings:    res.Warnings,
	})
}

// executePlain runs a query that has no filter and therefore no warnings.
func executePlain[T any](h *Handler, w http.ResponseWriter, r *http.Request, name string, run func(ctx context.Context) (T, error)) {
	executeQuery(h, w, r, name, nil, func(ctx context.Context) (dashboard.Result[T], error) {
		data, err := run(ctx)
		return dashboard.Result[T]{Data: data}, err
	})
}

// serveDashboard parses the shared dashboard parameters and runs query behind
// the cache under name.
func serveDashboard[T any](h *Handler, w http.ResponseWriter, r *http.Request, name string, query func(ctx context.Context, req *dashboardRequest) (dashboard.Result[T], error)) {
	req, verr := parseDashboardRequest(r)
	if verr != nil {
		respondValidationError(w, r, verr)
		return
	}
	executeQuery(h, w, r, name, req, func(ctx context.Context) (dashboard.Result[T], error) {
		return query(ctx, req)
	})
}
