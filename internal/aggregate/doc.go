// Kaiserhaus - Retail Order Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/kaiserhaus

/*
Package aggregate implements the reductions behind every dashboard chart.

Each primitive is a pure function of a filter.View and one or more resolved
table columns. Nothing is cached and nothing is written, so any number of
requests may aggregate the same table concurrently.

Primitives:

  - GroupCount, GroupSum, GroupMean: one categorical key, sorted by value
    descending (ties by key ascending) or by key.
  - TopN: truncation of an ordered group result.
  - TimeSeries, TimeSeriesMulti: day, ISO week or month buckets, zero-filled
    between the observed minimum and maximum.
  - PercentileTable: p50/p75/p90 (linear interpolation) per group.
  - Histogram: equal-width bins over the observed range.
  - CrossTab: a rectangular grid of two categorical keys.
  - KPISummary: scalar reductions that tolerate an empty view.
  - Scatter, Distinct: raw pairs and sorted distinct values.

Values are returned unrounded. Callers apply RoundCurrency, RoundMinutes or
RoundRatio once, when building response records.
*/
package aggregate
