// Kaiserhaus - Retail Order Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/kaiserhaus

package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestRecordTableLoad(t *testing.T) {
	RecordTableLoad("csv", 1200, 14, 250*time.Millisecond, nil)

	if got := testutil.ToFloat64(TableRows); got != 1200 {
		t.Errorf("TableRows = %v, want 1200", got)
	}
	if got := testutil.ToFloat64(TableColumns); got != 14 {
		t.Errorf("TableColumns = %v, want 14", got)
	}

	before := testutil.ToFloat64(TableLoadErrors.WithLabelValues("xlsx"))
	RecordTableLoad("xlsx", 0, 0, 0, errors.New("no such file"))
	if got := testutil.ToFloat64(TableLoadErrors.WithLabelValues("xlsx")); got != before+1 {
		t.Errorf("TableLoadErrors = %v, want %v", got, before+1)
	}
	if got := testutil.ToFloat64(TableRows); got != 1200 {
		t.Errorf("failed load changed TableRows to %v", got)
	}
}

func TestRecordCounters(t *testing.T) {
	tests := []struct {
		name   string
		record func()
		metric prometheus.Collector
	}{
		{"resolution miss", func() { RecordResolutionMiss("distance_km") }, ResolutionMisses.WithLabelValues("distance_km")},
		{"filter unresolved", func() { RecordFilterUnresolved("platform") }, FilterUnresolved.WithLabelValues("platform")},
		{"filter rejected", func() { RecordFilterRejected("start_date") }, FilterRejected.WithLabelValues("start_date")},
		{"derived column", func() { RecordDerivedColumn("__late") }, DerivedColumnsBuilt.WithLabelValues("__late")},
		{"cache hit", func() { RecordCacheLookup(true) }, CacheHits},
		{"cache miss", func() { RecordCacheLookup(false) }, CacheMisses},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := testutil.ToFloat64(tt.metric)
			tt.record()
			if got := testutil.ToFloat64(tt.metric); got != before+1 {
				t.Errorf("counter = %v, want %v", got, before+1)
			}
		})
	}
}

func TestTrackActiveRequest(t *testing.T) {
	before := testutil.ToFloat64(APIActiveRequests)
	TrackActiveRequest(true)
	TrackActiveRequest(true)
	TrackActiveRequest(false)
	if got := testutil.ToFloat64(APIActiveRequests); got != before+1 {
		t.Errorf("APIActiveRequests = %v, want %v", got, before+1)
	}
}

func TestRecordAPIRequest(t *testing.T) {
	before := testutil.ToFloat64(APIRequestsTotal.WithLabelValues("GET", "/api/v1/meta/count", "200"))
	RecordAPIRequest("GET", "/api/v1/meta/count", "200", 3*time.Millisecond)
	if got := testutil.ToFloat64(APIRequestsTotal.WithLabelValues("GET", "/api/v1/meta/count", "200")); got != before+1 {
		t.Errorf("APIRequestsTotal = %v, want %v", got, before+1)
	}
}

func TestMetricLint(t *testing.T) {
	problems, err := testutil.GatherAndLint(prometheus.DefaultGatherer)
	if err != nil {
		t.Fatalf("GatherAndLint failed: %v", err)
	}
	for _, p := range problems {
		t.Logf("lint: %s: %s", p.Metric, p.Text)
	}
}
