// Kaiserhaus - Retail Order Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/kaiserhaus

package dashboard

import (
	"context"
	"sort"

	"github.com/tomtom215/kaiserhaus/internal/aggregate"
	"github.com/tomtom215/kaiserhaus/internal/schema"
	"github.com/tomtom215/kaiserhaus/internal/table"
)

// DefaultTopClients is the TopClients size when the caller gives none.
const DefaultTopClients = 10

// FinanceKPIs are gross and net revenue. Net is null without a commission
// column.
type FinanceKPIs struct {
	ReceitaTotal   float64  `json:"receita_total"`
	ReceitaLiquida *float64 `json:"receita_liquida"`
}

// RevenuePoint is gross and net revenue of one time bucket.
type RevenuePoint struct {
	Date  string   `json:"date"`
	Gross float64  `json:"gross"`
	Net   *float64 `json:"net"`
}

// PlatformMargin is the average gross and net order value of one platform.
// MarginPct is net over gross, in percent.
type PlatformMargin struct {
	Platform  string  `json:"platform"`
	Gross     float64 `json:"gross"`
	Net       float64 `json:"net"`
	MarginPct float64 `json:"margin_pct"`
}

// ClassRevenue is the revenue of one order class.
type ClassRevenue struct {
	Class   string  `json:"class"`
	Revenue float64 `json:"revenue"`
}

// ClassBreakdown is RevenueByClass output with the column that was grouped on.
type ClassBreakdown struct {
	GroupedBy string         `json:"grouped_by"`
	Classes   []ClassRevenue `json:"classes"`
}

// ClientSpend is the revenue of one client.
type ClientSpend struct {
	Client string  `json:"client"`
	Spent  float64 `json:"spent"`
	Orders int     `json:"orders"`
}

// FinanceKPIs sums gross and net revenue.
func (s *Service) FinanceKPIs(ctx context.Context, q Query) (Result[FinanceKPIs], error) {
	total, err := s.require(q, schema.TotalBRL)
	if err != nil {
		return Result[FinanceKPIs]{}, err
	}
	net, err := s.optionalDerived(q, table.DerivedNetRevenue)
	if err != nil {
		return Result[FinanceKPIs]{}, err
	}
	v, warnings, err := s.view(ctx, q)
	if err != nil {
		return Result[FinanceKPIs]{}, err
	}

	out := FinanceKPIs{ReceitaTotal: aggregate.RoundCurrency(aggregate.SumOf(v, total))}
	if net != nil {
		liquida := aggregate.RoundCurrency(aggregate.SumOf(v, net))
		out.ReceitaLiquida = &liquida
	}
	return Result[FinanceKPIs]{Data: out, Warnings: warnings}, nil
}

// RevenueSeries sums gross and net revenue per time bucket.
func (s *Service) RevenueSeries(ctx context.Context, q Query, freq string) (Result[[]RevenuePoint], error) {
	g, err := aggregate.ParseGranularity(freq)
	if err != nil {
		return Result[[]RevenuePoint]{}, err
	}
	ts, err := s.derived(q, table.DerivedDatetime)
	if err != nil {
		return Result[[]RevenuePoint]{}, err
	}
	total, err := s.require(q, schema.TotalBRL)
	if err != nil {
		return Result[[]RevenuePoint]{}, err
	}
	net, err := s.optionalDerived(q, table.DerivedNetRevenue)
	if err != nil {
		return Result[[]RevenuePoint]{}, err
	}
	v, warnings, err := s.view(ctx, q)
	if err != nil {
		return Result[[]RevenuePoint]{}, err
	}

	values := []*table.Column{total}
	if net != nil {
		values = append(values, net)
	}
	series := aggregate.TimeSeriesMulti(v, ts, values, g, aggregate.Sum)
	out := make([]RevenuePoint, len(series))
	for i, b := range series {
		out[i] = RevenuePoint{Date: b.Period, Gross: aggregate.RoundCurrency(*b.Values[0])}
		if net != nil {
			out[i].Net = currency(b.Values[1])
		}
	}
	return Result[[]RevenuePoint]{Data: out, Warnings: warnings}, nil
}

// MarginByPlatform compares average gross and net order value per platform,
// best margin first.
func (s *Service) MarginByPlatform(ctx context.Context, q Query) (Result[[]PlatformMargin], error) {
	platform, err := s.require(q, schema.Platform)
	if err != nil {
		return Result[[]PlatformMargin]{}, err
	}
	total, err := s.require(q, schema.TotalBRL)
	if err != nil {
		return Result[[]PlatformMargin]{}, err
	}
	net, err := s.derived(q, table.DerivedNetRevenue)
	if err != nil {
		return Result[[]PlatformMargin]{}, err
	}
	v, warnings, err := s.view(ctx, q)
	if err != nil {
		return Result[[]PlatformMargin]{}, err
	}

	netByKey := make(map[string]float64)
	for _, g := range aggregate.GroupMean(v, platform, net, aggregate.ByKey) {
		netByKey[g.Key] = g.Value
	}
	gross := aggregate.GroupMean(v, platform, total, aggregate.ByKey)
	out := make([]PlatformMargin, 0, len(gross))
	for _, g := range gross {
		n := netByKey[g.Key]
		var margin float64
		if g.Value != 0 {
			margin = n / g.Value * 100
		}
		out = append(out, PlatformMargin{
			Platform:  g.Key,
			Gross:     aggregate.RoundCurrency(g.Value),
			Net:       aggregate.RoundCurrency(n),
			MarginPct: aggregate.RoundRatio(margin),
		})
	}
	sort.SliceStable(out, func(a, b int) bool {
		return out[a].MarginPct > out[b].MarginPct
	})
	return Result[[]PlatformMargin]{Data: out, Warnings: warnings}, nil
}

// RevenueByClass sums revenue per order class. The class column is the
// classe_pedido field (or its override), then order_mode, then platform.
func (s *Service) RevenueByClass(ctx context.Context, q Query) (Result[ClassBreakdown], error) {
	total, err := s.require(q, schema.TotalBRL)
	if err != nil {
		return Result[ClassBreakdown]{}, err
	}
	class := s.firstOf(q, schema.ClassePedido, schema.OrderMode, schema.Platform)
	if class == nil {
		return Result[ClassBreakdown]{}, &schema.FieldUnresolvedError{
			Field:    schema.ClassePedido,
			Override: q.Overrides.Get(schema.ClassePedido),
		}
	}
	v, warnings, err := s.view(ctx, q)
	if err != nil {
		return Result[ClassBreakdown]{}, err
	}

	groups := aggregate.GroupSum(v, class, total, aggregate.ByValue)
	out := ClassBreakdown{GroupedBy: class.Name, Classes: make([]ClassRevenue, len(groups))}
	for i, g := range groups {
		out.Classes[i] = ClassRevenue{Class: g.Key, Revenue: aggregate.RoundCurrency(g.Value)}
	}
	return Result[ClassBreakdown]{Data: out, Warnings: warnings}, nil
}

// TopClients returns the n biggest spenders. Clients are identified by
// cliente_id, else by cliente_nome; with neither the list is empty.
func (s *Service) TopClients(ctx context.Context, q Query, n int) (Result[[]ClientSpend], error) {
	if n <= 0 {
		n = DefaultTopClients
	}
	total, err := s.require(q, schema.TotalBRL)
	if err != nil {
		return Result[[]ClientSpend]{}, err
	}
	v, warnings, err := s.view(ctx, q)
	if err != nil {
		return Result[[]ClientSpend]{}, err
	}

	client := s.firstOf(q, schema.ClienteID, schema.ClienteNome)
	if client == nil {
		return Result[[]ClientSpend]{Data: []ClientSpend{}, Warnings: warnings}, nil
	}
	groups := aggregate.TopN(aggregate.GroupSum(v, client, total, aggregate.ByValue), n)
	out := make([]ClientSpend, len(groups))
	for i, g := range groups {
		out[i] = ClientSpend{Client: g.Key, Spent: aggregate.RoundCurrency(g.Value), Orders: g.Count}
	}
	return Result[[]ClientSpend]{Data: out, Warnings: warnings}, nil
}
