// Kaiserhaus - Retail Order Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/kaiserhaus

package api

import (
	"net/http"
	"strings"

	"github.com/tomtom215/kaiserhaus/internal/aggregate"
	"github.com/tomtom215/kaiserhaus/internal/dashboard"
	"github.com/tomtom215/kaiserhaus/internal/filter"
	"github.com/tomtom215/kaiserhaus/internal/schema"
	"github.com/tomtom215/kaiserhaus/internal/validation"
)

// Defaults for optional numeric parameters.
const (
	defaultTopN = 10
	defaultBins = aggregate.DefaultBins
)

// overrideParams maps *_col query parameters to the field they override.
var overrideParams = map[string]schema.Field{
	"id_col":       schema.OrderID,
	"date_col":     schema.OrderDatetime,
	"platform_col": schema.Platform,
	"mode_col":     schema.OrderMode,
	"status_col":   schema.Status,
	"macro_col":    schema.MacroBairro,
	"class_col":    schema.ClassePedido,
	"total_col":    schema.TotalBRL,
	"items_col":    schema.NumItens,
	"prep_col":     schema.PrepMinutes,
	"delivery_col": schema.DeliveryMinutes,
	"eta_col":      schema.ETAMinutes,
	"distance_col": schema.DistanceKM,
	"pct_col":      schema.PlatformCommissionPct,
	"score_col":    schema.SatisfactionScore,
	"client_col":   schema.ClienteID,
}

// dashboardRequest holds the parameters shared by dashboard routes. Filter
// literals are passed to the engine as-is.
type dashboardRequest struct {
	Filter    filter.Spec      `query:"-" json:"filter"`
	Overrides schema.Overrides `query:"-" json:"overrides,omitempty"`
	Freq      string           `query:"freq" json:"freq,omitempty"`
	TopN      int              `query:"top_n" json:"top_n,omitempty" validate:"min=1,max=1000"`
	Bins      int              `query:"bins" json:"bins,omitempty" validate:"min=1,max=200"`
	Sample    int              `query:"sample" json:"sample,omitempty" validate:"min=0,max=100000"`
}

// query returns the engine input for this request.
func (d *dashboardRequest) query() dashboard.Query {
	return dashboard.Query{Filter: d.Filter, Overrides: d.Overrides}
}

// explorerRequest holds the /data parameters.
type explorerRequest struct {
	Base    dashboardRequest `query:"-" json:"base" validate:"-"`
	Search  string           `query:"q" json:"q,omitempty" validate:"max=200"`
	Columns []string         `query:"columns" json:"columns,omitempty"`
	Sort    string           `query:"sort" json:"sort,omitempty"`
	Order   string           `query:"order" json:"order,omitempty" validate:"omitempty,oneof=1 -1 asc desc"`
	Offset  int              `query:"offset" json:"offset" validate:"min=0"`
	Limit   int              `query:"limit" json:"limit" validate:"min=1,max=5000"`
}

// page returns the engine page request.
func (e *explorerRequest) page() dashboard.PageRequest {
	order := -1
	if e.Order == "1" || strings.EqualFold(e.Order, "asc") {
		order = 1
	}
	return dashboard.PageRequest{
		Search:  e.Search,
		Columns: e.Columns,
		Sort:    e.Sort,
		Order:   order,
		Offset:  e.Offset,
		Limit:   e.Limit,
	}
}

// parseFilterSpec reads the filter dimensions from the query string.
func parseFilterSpec(r *http.Request) filter.Spec {
	q := r.URL.Query()
	return filter.Spec{
		StartDate:      strings.TrimSpace(q.Get(filter.DimStartDate)),
		EndDate:        strings.TrimSpace(q.Get(filter.DimEndDate)),
		Platform:       getMultiParam(r, filter.DimPlatform),
		MacroBairro:    getMultiParam(r, filter.DimMacroBairro),
		ClassePedido:   getMultiParam(r, filter.DimClassePedido),
		ScoreMin:       strings.TrimSpace(q.Get(filter.DimScoreMin)),
		ScoreMax:       strings.TrimSpace(q.Get(filter.DimScoreMax)),
		DeliveryStatus: strings.TrimSpace(q.Get(filter.DimDeliveryStatus)),
	}
}

// parseOverrides reads the *_col parameters. Returns nil when none are set.
func parseOverrides(r *http.Request) schema.Overrides {
	q := r.URL.Query()
	var ov schema.Overrides
	for param, field := range overrideParams {
		v := strings.TrimSpace(q.Get(param))
		if v == "" {
			continue
		}
		if ov == nil {
			ov = make(schema.Overrides)
		}
		ov[field] = v
	}
	return ov
}

// parseDashboardRequest parses and validates the shared dashboard parameters.
func parseDashboardRequest(r *http.Request) (*dashboardRequest, *validation.RequestValidationError) {
	req := &dashboardRequest{
		Filter:    parseFilterSpec(r),
		Overrides: parseOverrides(r),
		Freq:      strings.TrimSpace(r.URL.Query().Get("freq")),
	}

	var err *validation.RequestValidationError
	if req.TopN, err = intParam(r, "top_n", defaultTopN); err != nil {
		return nil, err
	}
	if req.Bins, err = intParam(r, "bins", defaultBins); err != nil {
		return nil, err
	}
	if req.Sample, err = intParam(r, "sample", 0); err != nil {
		return nil, err
	}

	if verr := validation.ValidateStruct(req); verr != nil {
		return nil, verr
	}
	return req, nil
}

// parseExplorerRequest parses and validates the /data parameters.
func parseExplorerRequest(r *http.Request, defaultLimit int) (*explorerRequest, *validation.RequestValidationError) {
	base, verr := parseDashboardRequest(r)
	if verr != nil {
		return nil, verr
	}
	q := r.URL.Query()
	req := &explorerRequest{
		Base:    *base,
		Search:  strings.TrimSpace(q.Get("q")),
		Columns: getMultiParam(r, "columns"),
		Sort:    strings.TrimSpace(q.Get("sort")),
		Order:   strings.TrimSpace(q.Get("order")),
	}

	var err *validation.RequestValidationError
	if req.Offset, err = intParam(r, "offset", 0); err != nil {
		return nil, err
	}
	if req.Limit, err = intParam(r, "limit", defaultLimit); err != nil {
		return nil, err
	}

	if verr := validation.ValidateStruct(req); verr != nil {
		return nil, verr
	}
	return req, nil
}

// intParam wraps getIntParam, reporting a malformed value as a validation error.
func intParam(r *http.Request, key string, defaultValue int) (int, *validation.RequestValidationError) {
	v, err := getIntParam(r, key, defaultValue)
	if err != nil {
		return 0, validation.NewRequestValidationError(key, "integer", r.URL.Query().Get(key), err.Error())
	}
	return v, nil
}
