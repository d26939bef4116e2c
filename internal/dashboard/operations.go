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

// OpsKPIs are the operational averages. Each is null when its field does not
// resolve or has no values in the filtered set.
type OpsKPIs struct {
	TempoMedioPreparo *float64 `json:"tempo_medio_preparo"`
	TempoMedioEntrega *float64 `json:"tempo_medio_entrega"`
	AtrasoMedio       *float64 `json:"atraso_medio"`
	DistanciaMedia    *float64 `json:"distancia_media"`
}

// DeliveryPoint is the average delivery time of one time bucket.
type DeliveryPoint struct {
	Date               string   `json:"date"`
	AvgDeliveryMinutes *float64 `json:"avg_delivery_minutes"`
	Orders             int      `json:"orders"`
}

// DeliveryBox is the delivery time distribution of one neighborhood.
type DeliveryBox struct {
	MacroBairro string  `json:"macro_bairro"`
	Count       int     `json:"count"`
	Min         float64 `json:"min"`
	P50         float64 `json:"p50"`
	P75         float64 `json:"p75"`
	P90         float64 `json:"p90"`
	Max         float64 `json:"max"`
}

// DelayCell is the average delay of one neighborhood and platform. Platform is
// empty when no platform column resolves and the grid collapses to one column.
type DelayCell struct {
	MacroBairro string   `json:"macro_bairro"`
	Platform    string   `json:"platform,omitempty"`
	AvgDelay    *float64 `json:"avg_delay"`
	Orders      int      `json:"orders"`
}

// DistancePoint is one order of the distance scatter.
type DistancePoint struct {
	DistanceKM      float64 `json:"distance_km"`
	DeliveryMinutes float64 `json:"delivery_minutes"`
}

// LateRate is the share of late orders in one neighborhood.
type LateRate struct {
	MacroBairro string  `json:"macro_bairro"`
	Orders      int     `json:"orders"`
	LateRatePct float64 `json:"late_rate_pct"`
}

// OpsKPIs averages preparation time, delivery time, delay and distance.
func (s *Service) OpsKPIs(ctx context.Context, q Query) (Result[OpsKPIs], error) {
	v, warnings, err := s.view(ctx, q)
	if err != nil {
		return Result[OpsKPIs]{}, err
	}
	delay, err := s.optionalDerived(q, table.DerivedDelay)
	if err != nil {
		return Result[OpsKPIs]{}, err
	}

	out := OpsKPIs{
		TempoMedioPreparo: minutes(aggregate.MeanOf(v, s.optional(q, schema.PrepMinutes))),
		TempoMedioEntrega: minutes(aggregate.MeanOf(v, s.optional(q, schema.DeliveryMinutes))),
		AtrasoMedio:       minutes(aggregate.MeanOf(v, delay)),
		DistanciaMedia:    ratio(aggregate.MeanOf(v, s.optional(q, schema.DistanceKM))),
	}
	return Result[OpsKPIs]{Data: out, Warnings: warnings}, nil
}

// DeliverySeries averages delivery minutes per time bucket. Buckets without
// deliveries are null.
func (s *Service) DeliverySeries(ctx context.Context, q Query, freq string) (Result[[]DeliveryPoint], error) {
	g, err := aggregate.ParseGranularity(freq)
	if err != nil {
		return Result[[]DeliveryPoint]{}, err
	}
	ts, err := s.derived(q, table.DerivedDatetime)
	if err != nil {
		return Result[[]DeliveryPoint]{}, err
	}
	delivery, err := s.require(q, schema.DeliveryMinutes)
	if err != nil {
		return Result[[]DeliveryPoint]{}, err
	}
	v, warnings, err := s.view(ctx, q)
	if err != nil {
		return Result[[]DeliveryPoint]{}, err
	}

	series := aggregate.TimeSeries(v, ts, delivery, g, aggregate.Mean)
	out := make([]DeliveryPoint, len(series))
	for i, b := range series {
		out[i] = DeliveryPoint{Date: b.Period, AvgDeliveryMinutes: minutes(b.Value), Orders: b.Count}
	}
	return Result[[]DeliveryPoint]{Data: out, Warnings: warnings}, nil
}

// DeliveryBoxplot returns delivery time percentiles per neighborhood.
func (s *Service) DeliveryBoxplot(ctx context.Context, q Query) (Result[[]DeliveryBox], error) {
	macro, err := s.require(q, schema.MacroBairro)
	if err != nil {
		return Result[[]DeliveryBox]{}, err
	}
	delivery, err := s.require(q, schema.DeliveryMinutes)
	if err != nil {
		return Result[[]DeliveryBox]{}, err
	}
	v, warnings, err := s.view(ctx, q)
	if err != nil {
		return Result[[]DeliveryBox]{}, err
	}

	rows := aggregate.PercentileTable(v, macro, delivery, aggregate.DefaultPercentiles)
	out := make([]DeliveryBox, len(rows))
	for i, r := range rows {
		out[i] = DeliveryBox{
			MacroBairro: r.Group,
			Count:       r.Count,
			Min:         aggregate.RoundMinutes(r.Min),
			P50:         aggregate.RoundMinutes(r.Percentiles["p50"]),
			P75:         aggregate.RoundMinutes(r.Percentiles["p75"]),
			P90:         aggregate.RoundMinutes(r.Percentiles["p90"]),
			Max:         aggregate.RoundMinutes(r.Max),
		}
	}
	return Result[[]DeliveryBox]{Data: out, Warnings: warnings}, nil
}

// DelayHeatmap averages delay (delivery minus ETA) over neighborhood by
// platform. Without a platform column it is a per-neighborhood mean.
func (s *Service) DelayHeatmap(ctx context.Context, q Query) (Result[[]DelayCell], error) {
	macro, err := s.require(q, schema.MacroBairro)
	if err != nil {
		return Result[[]DelayCell]{}, err
	}
	delay, err := s.derived(q, table.DerivedDelay)
	if err != nil {
		return Result[[]DelayCell]{}, err
	}
	v, warnings, err := s.view(ctx, q)
	if err != nil {
		return Result[[]DelayCell]{}, err
	}

	platform := s.optional(q, schema.Platform)
	if platform == nil {
		groups := aggregate.GroupMean(v, macro, delay, aggregate.ByKey)
		out := make([]DelayCell, len(groups))
		for i, g := range groups {
			avg := g.Value
			out[i] = DelayCell{MacroBairro: g.Key, AvgDelay: minutes(&avg), Orders: g.Count}
		}
		return Result[[]DelayCell]{Data: out, Warnings: warnings}, nil
	}

	cells := aggregate.CrossTab(v, macro, platform, delay, aggregate.Mean)
	out := make([]DelayCell, len(cells))
	for i, c := range cells {
		out[i] = DelayCell{MacroBairro: c.Row, Platform: c.Col, AvgDelay: minutes(c.Value), Orders: c.Count}
	}
	return Result[[]DelayCell]{Data: out, Warnings: warnings}, nil
}

// DistanceScatter pairs distance with delivery time. limit <= 0 returns every
// pair.
func (s *Service) DistanceScatter(ctx context.Context, q Query, limit int) (Result[[]DistancePoint], error) {
	distance, err := s.require(q, schema.DistanceKM)
	if err != nil {
		return Result[[]DistancePoint]{}, err
	}
	delivery, err := s.require(q, schema.DeliveryMinutes)
	if err != nil {
		return Result[[]DistancePoint]{}, err
	}
	v, warnings, err := s.view(ctx, q)
	if err != nil {
		return Result[[]DistancePoint]{}, err
	}

	points := aggregate.Scatter(v, distance, delivery, limit)
	out := make([]DistancePoint, len(points))
	for i, p := range points {
		out[i] = DistancePoint{DistanceKM: p.X, DeliveryMinutes: p.Y}
	}
	return Result[[]DistancePoint]{Data: out, Warnings: warnings}, nil
}

// DeliveryHistogram bins delivery minutes.
func (s *Service) DeliveryHistogram(ctx context.Context, q Query, n int) (Result[[]ValueBin], error) {
	delivery, err := s.require(q, schema.DeliveryMinutes)
	if err != nil {
		return Result[[]ValueBin]{}, err
	}
	v, warnings, err := s.view(ctx, q)
	if err != nil {
		return Result[[]ValueBin]{}, err
	}
	return Result[[]ValueBin]{
		Data:     bins(aggregate.Histogram(v, delivery, n), aggregate.RoundMinutes),
		Warnings: warnings,
	}, nil
}

// LateRate returns the percentage of late orders per neighborhood, highest
// first.
func (s *Service) LateRate(ctx context.Context, q Query) (Result[[]LateRate], error) {
	macro, err := s.require(q, schema.MacroBairro)
	if err != nil {
		return Result[[]LateRate]{}, err
	}
	late, err := s.derived(q, table.DerivedLate)
	if err != nil {
		return Result[[]LateRate]{}, err
	}
	v, warnings, err := s.view(ctx, q)
	if err != nil {
		return Result[[]LateRate]{}, err
	}

	groups := aggregate.GroupMean(v, macro, late, aggregate.ByValue)
	out := make([]LateRate, len(groups))
	for i, g := range groups {
		out[i] = LateRate{MacroBairro: g.Key, Orders: g.Count, LateRatePct: aggregate.RoundRatio(g.Value * 100)}
	}
	return Result[[]LateRate]{Data: out, Warnings: warnings}, nil
}
