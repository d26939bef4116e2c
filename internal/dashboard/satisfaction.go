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

// VerySatisfiedScore is the lowest score counted as "muito satisfeito".
const VerySatisfiedScore = 4.5

// SatisfactionKPIs are the satisfaction cards.
type SatisfactionKPIs struct {
	NivelMedio          *float64 `json:"nivel_medio"`
	PctMuitoSatisfeitos *float64 `json:"pct_muito_satisfeitos"`
	Respostas           int      `json:"respostas"`
}

// MacroScore is the average score of one neighborhood.
type MacroScore struct {
	MacroBairro   string  `json:"macro_bairro"`
	AvgSatisfacao float64 `json:"avg_satisfacao"`
	Respostas     int     `json:"respostas"`
}

// ScorePoint pairs delivery time with the score of one order.
type ScorePoint struct {
	DeliveryMinutes float64 `json:"delivery_minutes"`
	Satisfacao      float64 `json:"satisfacao"`
}

// ScoreBucket is the average score of one time bucket.
type ScoreBucket struct {
	Date          string   `json:"date"`
	AvgSatisfacao *float64 `json:"avg_satisfacao"`
	Respostas     int      `json:"respostas"`
}

// PlatformScore is one cell of the platform satisfaction heatmap. ClassePedido
// is empty when no order class column resolves.
type PlatformScore struct {
	Platform      string   `json:"platform"`
	ClassePedido  string   `json:"classe_pedido,omitempty"`
	AvgSatisfacao *float64 `json:"avg_satisfacao"`
	Respostas     int      `json:"respostas"`
}

// SatisfactionKPIs averages the score and the share of scores of at least
// VerySatisfiedScore.
func (s *Service) SatisfactionKPIs(ctx context.Context, q Query) (Result[SatisfactionKPIs], error) {
	score, err := s.require(q, schema.SatisfactionScore)
	if err != nil {
		return Result[SatisfactionKPIs]{}, err
	}
	v, warnings, err := s.view(ctx, q)
	if err != nil {
		return Result[SatisfactionKPIs]{}, err
	}

	out := SatisfactionKPIs{
		NivelMedio:          ratio(aggregate.MeanOf(v, score)),
		PctMuitoSatisfeitos: ratio(aggregate.ShareOf(v, score, func(x float64) bool { return x >= VerySatisfiedScore })),
	}
	for _, i := range v.Indices() {
		if _, ok := score.Float(i); ok {
			out.Respostas++
		}
	}
	return Result[SatisfactionKPIs]{Data: out, Warnings: warnings}, nil
}

// ScoreByMacro averages the score per neighborhood, highest first.
func (s *Service) ScoreByMacro(ctx context.Context, q Query) (Result[[]MacroScore], error) {
	macro, err := s.require(q, schema.MacroBairro)
	if err != nil {
		return Result[[]MacroScore]{}, err
	}
	score, err := s.require(q, schema.SatisfactionScore)
	if err != nil {
		return Result[[]MacroScore]{}, err
	}
	v, warnings, err := s.view(ctx, q)
	if err != nil {
		return Result[[]MacroScore]{}, err
	}

	groups := aggregate.GroupMean(v, macro, score, aggregate.ByValue)
	out := make([]MacroScore, len(groups))
	for i, g := range groups {
		out[i] = MacroScore{MacroBairro: g.Key, AvgSatisfacao: aggregate.RoundRatio(g.Value), Respostas: g.Count}
	}
	return Result[[]MacroScore]{Data: out, Warnings: warnings}, nil
}

// ScoreScatter pairs delivery time with score. limit <= 0 returns every pair.
func (s *Service) ScoreScatter(ctx context.Context, q Query, limit int) (Result[[]ScorePoint], error) {
	delivery, err := s.require(q, schema.DeliveryMinutes)
	if err != nil {
		return Result[[]ScorePoint]{}, err
	}
	score, err := s.require(q, schema.SatisfactionScore)
	if err != nil {
		return Result[[]ScorePoint]{}, err
	}
	v, warnings, err := s.view(ctx, q)
	if err != nil {
		return Result[[]ScorePoint]{}, err
	}

	points := aggregate.Scatter(v, delivery, score, limit)
	out := make([]ScorePoint, len(points))
	for i, p := range points {
		out[i] = ScorePoint{DeliveryMinutes: p.X, Satisfacao: p.Y}
	}
	return Result[[]ScorePoint]{Data: out, Warnings: warnings}, nil
}

// ScoreSeries averages the score per time bucket.
func (s *Service) ScoreSeries(ctx context.Context, q Query, freq string) (Result[[]ScoreBucket], error) {
	g, err := aggregate.ParseGranularity(freq)
	if err != nil {
		return Result[[]ScoreBucket]{}, err
	}
	ts, err := s.derived(q, table.DerivedDatetime)
	if err != nil {
		return Result[[]ScoreBucket]{}, err
	}
	score, err := s.require(q, schema.SatisfactionScore)
	if err != nil {
		return Result[[]ScoreBucket]{}, err
	}
	v, warnings, err := s.view(ctx, q)
	if err != nil {
		return Result[[]ScoreBucket]{}, err
	}

	series := aggregate.TimeSeries(v, ts, score, g, aggregate.Mean)
	out := make([]ScoreBucket, len(series))
	for i, b := range series {
		out[i] = ScoreBucket{Date: b.Period, AvgSatisfacao: ratio(b.Value), Respostas: b.Count}
	}
	return Result[[]ScoreBucket]{Data: out, Warnings: warnings}, nil
}

// PlatformHeatmap averages the score over platform by order class. Without an
// order class column it is a per-platform mean.
func (s *Service) PlatformHeatmap(ctx context.Context, q Query) (Result[[]PlatformScore], error) {
	platform, err := s.require(q, schema.Platform)
	if err != nil {
		return Result[[]PlatformScore]{}, err
	}
	score, err := s.require(q, schema.SatisfactionScore)
	if err != nil {
		return Result[[]PlatformScore]{}, err
	}
	v, warnings, err := s.view(ctx, q)
	if err != nil {
		return Result[[]PlatformScore]{}, err
	}

	classe := s.optional(q, schema.ClassePedido)
	if classe == nil {
		groups := aggregate.GroupMean(v, platform, score, aggregate.ByKey)
		out := make([]PlatformScore, len(groups))
		for i, g := range groups {
			avg := g.Value
			out[i] = PlatformScore{Platform: g.Key, AvgSatisfacao: ratio(&avg), Respostas: g.Count}
		}
		return Result[[]PlatformScore]{Data: out, Warnings: warnings}, nil
	}

	cells := aggregate.CrossTab(v, platform, classe, score, aggregate.Mean)
	out := make([]PlatformScore, len(cells))
	for i, c := range cells {
		out[i] = PlatformScore{Platform: c.Row, ClassePedido: c.Col, AvgSatisfacao: ratio(c.Value), Respostas: c.Count}
	}
	return Result[[]PlatformScore]{Data: out, Warnings: warnings}, nil
}

// ScoreHistogram bins satisfaction scores.
func (s *Service) ScoreHistogram(ctx context.Context, q Query, n int) (Result[[]ValueBin], error) {
	score, err := s.require(q, schema.SatisfactionScore)
	if err != nil {
		return Result[[]ValueBin]{}, err
	}
	v, warnings, err := s.view(ctx, q)
	if err != nil {
		return Result[[]ValueBin]{}, err
	}
	return Result[[]ValueBin]{
		Data:     bins(aggregate.Histogram(v, score, n), aggregate.RoundRatio),
		Warnings: warnings,
	}, nil
}
