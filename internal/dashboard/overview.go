// Kaiserhaus - Retail Order Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/kaiserhaus

package dashboard

import (
	"context"

	"github.com/tomtom215/kaiserhaus/internal/aggregate"
	"github.com/tomtom215/kaiserhaus/internal/schema"
	"github.com/tomtom215/kaiserhaus/internal/table"
)

// OverviewKPIs is the headline card set of the overview dashboard.
type OverviewKPIs struct {
	TotalPedidos int        `json:"total_pedidos"`
	ReceitaTotal float64    `json:"receita_total"`
	TicketMedio  *float64   `json:"ticket_medio"`
	Periodo      *DateRange `json:"periodo"`
}

// OrdersPoint is one bucket of the orders time series.
type OrdersPoint struct {
	Date   string `json:"date"`
	Orders int    `json:"orders"`
}

// PlatformOrders is the order count of one platform.
type PlatformOrders struct {
	Platform string `json:"platform"`
	Orders   int    `json:"orders"`
}

// StatusCount is the order count of one status.
type StatusCount struct {
	Status string `json:"status"`
	Count  int    `json:"count"`
}

// MacroRevenue is the average order value of one neighborhood.
type MacroRevenue struct {
	MacroBairro string  `json:"macro_bairro"`
	AvgReceita  float64 `json:"avg_receita"`
	Orders      int     `json:"orders"`
}

// OverviewKPIs computes order count, revenue, average ticket and period.
// Revenue, ticket and period degrade to zero or null when their fields do not
// resolve.
func (s *Service) OverviewKPIs(ctx context.Context, q Query) (Result[OverviewKPIs], error) {
	v, warnings, err := s.view(ctx, q)
	if err != nil {
		return Result[OverviewKPIs]{}, err
	}
	ticket, err := s.optionalDerived(q, table.DerivedTicket)
	if err != nil {
		return Result[OverviewKPIs]{}, err
	}
	ts, err := s.optionalDerived(q, table.DerivedDatetime)
	if err != nil {
		return Result[OverviewKPIs]{}, err
	}

	k := aggregate.KPISummary(v, aggregate.KPIFields{
		Total:  s.optional(q, schema.TotalBRL),
		Ticket: ticket,
	})
	out := OverviewKPIs{
		TotalPedidos: k.TotalOrders,
		ReceitaTotal: aggregate.RoundCurrency(k.TotalRevenue),
		TicketMedio:  currency(k.AvgTicket),
	}
	if ts != nil {
		out.Periodo = dateRange(v, ts)
	}
	return Result[OverviewKPIs]{Data: out, Warnings: warnings}, nil
}

// Summary returns the full KPI record: orders, revenue, ticket, delivery time
// and satisfaction. Unresolved optional fields leave their KPI null.
func (s *Service) Summary(ctx context.Context, q Query) (Result[aggregate.KPI], error) {
	v, warnings, err := s.view(ctx, q)
	if err != nil {
		return Result[aggregate.KPI]{}, err
	}
	ticket, err := s.optionalDerived(q, table.DerivedTicket)
	if err != nil {
		return Result[aggregate.KPI]{}, err
	}

	k := aggregate.KPISummary(v, aggregate.KPIFields{
		Total:        s.optional(q, schema.TotalBRL),
		Ticket:       ticket,
		Delivery:     s.optional(q, schema.DeliveryMinutes),
		Satisfaction: s.optional(q, schema.SatisfactionScore),
	})
	k.TotalRevenue = aggregate.RoundCurrency(k.TotalRevenue)
	k.AvgTicket = currency(k.AvgTicket)
	k.AvgDeliveryMinutes = minutes(k.AvgDeliveryMinutes)
	k.AvgSatisfaction = ratio(k.AvgSatisfaction)
	return Result[aggregate.KPI]{Data: k, Warnings: warnings}, nil
}

// OrdersSeries counts orders per time bucket. freq is D, W or M.
func (s *Service) OrdersSeries(ctx context.Context, q Query, freq string) (Result[[]OrdersPoint], error) {
	g, err := aggregate.ParseGranularity(freq)
	if err != nil {
		return Result[[]OrdersPoint]{}, err
	}
	ts, err := s.derived(q, table.DerivedDatetime)
	if err != nil {
		return Result[[]OrdersPoint]{}, err
	}
	v, warnings, err := s.view(ctx, q)
	if err != nil {
		return Result[[]OrdersPoint]{}, err
	}

	series := aggregate.TimeSeries(v, ts, nil, g, aggregate.Count)
	out := make([]OrdersPoint, len(series))
	for i, b := range series {
		out[i] = OrdersPoint{Date: b.Period, Orders: b.Count}
	}
	return Result[[]OrdersPoint]{Data: out, Warnings: warnings}, nil
}

// ByPlatform counts orders per platform, largest first.
func (s *Service) ByPlatform(ctx context.Context, q Query) (Result[[]PlatformOrders], error) {
	key, err := s.require(q, schema.Platform)
	if err != nil {
		return Result[[]PlatformOrders]{}, err
	}
	v, warnings, err := s.view(ctx, q)
	if err != nil {
		return Result[[]PlatformOrders]{}, err
	}

	groups := aggregate.GroupCount(v, key, aggregate.ByValue)
	out := make([]PlatformOrders, len(groups))
	for i, g := range groups {
		out[i] = PlatformOrders{Platform: g.Key, Orders: g.Count}
	}
	return Result[[]PlatformOrders]{Data: out, Warnings: warnings}, nil
}

// StatusDistribution counts orders per status, largest first.
func (s *Service) StatusDistribution(ctx context.Context, q Query) (Result[[]StatusCount], error) {
	key, err := s.require(q, schema.Status)
	if err != nil {
		return Result[[]StatusCount]{}, err
	}
	v, warnings, err := s.view(ctx, q)
	if err != nil {
		return Result[[]StatusCount]{}, err
	}

	groups := aggregate.GroupCount(v, key, aggregate.ByValue)
	out := make([]StatusCount, len(groups))
	for i, g := range groups {
		out[i] = StatusCount{Status: g.Key, Count: g.Count}
	}
	return Result[[]StatusCount]{Data: out, Warnings: warnings}, nil
}

// MacroAvgRevenue averages order value per neighborhood, highest first.
func (s *Service) MacroAvgRevenue(ctx context.Context, q Query) (Result[[]MacroRevenue], error) {
	key, err := s.require(q, schema.MacroBairro)
	if err != nil {
		return Result[[]MacroRevenue]{}, err
	}
	total, err := s.require(q, schema.TotalBRL)
	if err != nil {
		return Result[[]MacroRevenue]{}, err
	}
	v, warnings, err := s.view(ctx, q)
	if err != nil {
		return Result[[]MacroRevenue]{}, err
	}

	groups := aggregate.GroupMean(v, key, total, aggregate.ByValue)
	out := make([]MacroRevenue, len(groups))
	for i, g := range groups {
		out[i] = MacroRevenue{MacroBairro: g.Key, AvgReceita: aggregate.RoundCurrency(g.Value), Orders: g.Count}
	}
	return Result[[]MacroRevenue]{Data: out, Warnings: warnings}, nil
}
