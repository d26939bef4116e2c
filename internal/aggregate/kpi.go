// Kaiserhaus - Retail Order Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/kaiserhaus

package aggregate

import (
	"github.com/tomtom215/kaiserhaus/internal/filter"
	"github.com/tomtom215/kaiserhaus/internal/table"
)

// KPIFields are the columns behind KPISummary. Any of them may be nil when the
// field did not resolve; the matching KPI is then zero or null.
type KPIFields struct {
	Total        *table.Column
	Ticket       *table.Column
	Delivery     *table.Column
	Satisfaction *table.Column
}

// KPI is the fixed scalar summary of a view.
type KPI struct {
	TotalOrders        int      `json:"total_orders"`
	TotalRevenue       float64  `json:"total_revenue"`
	AvgTicket          *float64 `json:"avg_ticket"`
	AvgDeliveryMinutes *float64 `json:"avg_delivery_minutes"`
	AvgSatisfaction    *float64 `json:"avg_satisfaction"`
}

// KPISummary reduces the view to KPI. An empty view yields zero counts and
// sums and null averages.
func KPISummary(v filter.View, f KPIFields) KPI {
	k := KPI{TotalOrders: v.Len()}
	if f.Total != nil {
		k.TotalRevenue = SumOf(v, f.Total)
	}
	k.AvgTicket = MeanOf(v, f.Ticket)
	k.AvgDeliveryMinutes = MeanOf(v, f.Delivery)
	k.AvgSatisfaction = MeanOf(v, f.Satisfaction)
	return k
}

// SumOf sums the non-missing values of c. A nil column sums to 0.
func SumOf(v filter.View, c *table.Column) float64 {
	if c == nil {
		return 0
	}
	var sum float64
	for _, i := range v.Indices() {
		if x, ok := c.Float(i); ok {
			sum += x
		}
	}
	return sum
}

// MeanOf averages the non-missing values of c, or returns nil when there are
// none or c is nil.
func MeanOf(v filter.View, c *table.Column) *float64 {
	if c == nil {
		return nil
	}
	var a acc
	for _, i := range v.Indices() {
		if x, ok := c.Float(i); ok {
			a.sum += x
			a.n++
		}
	}
	if a.n == 0 {
		return nil
	}
	m := a.sum / float64(a.n)
	return &m
}

// ShareOf returns the percentage (0..100) of non-missing values of c for which
// pred holds, or nil without values.
func ShareOf(v filter.View, c *table.Column, pred func(float64) bool) *float64 {
	if c == nil {
		return nil
	}
	var hit, n int
	for _, i := range v.Indices() {
		x, ok := c.Float(i)
		if !ok {
			continue
		}
		n++
		if pred(x) {
			hit++
		}
	}
	if n == 0 {
		return nil
	}
	pct := float64(hit) / float64(n) * 100
	return &pct
}
