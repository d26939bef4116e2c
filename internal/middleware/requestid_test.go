// Kaiserhaus - Retail Order Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/kaiserhaus

package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/tomtom215/kaiserhaus/internal/logging"
)

func TestRequestID_GeneratesNewID(t *testing.T) {
	var capturedID, correlationID string
	handler := RequestID(func(w http.ResponseWriter, r *http.Request) {
		capturedID = GetRequestID(r.Context())
		correlationID = logging.CorrelationIDFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	rec := httptest.NewRecorder()
	handler(rec, httptest.NewRequest(http.MethodGet, "/api/v1/meta/count", nil))

	responseID := rec.Header().Get(RequestIDHeader)
	if _, err := uuid.Parse(responseID); err != nil {
		t.Errorf("X-Request-ID %q is not a valid UUID: %v", responseID, err)
	}
	if capturedID != responseID {
		t.Errorf("context ID = %q, want response header ID %q", capturedID, responseID)
	}
	if correlationID == "" {
		t.Error("Expected a correlation ID in context")
	}
}

func TestRequestID_PreservesExistingID(t *testing.T) {
	var capturedID string
	handler := RequestID(func(w http.ResponseWriter, r *http.Request) {
		capturedID = GetRequestID(r.Context())
	})

	existingID := "existing-request-id-12345"
	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	req.Header.Set(RequestIDHeader, existingID)
	rec := httptest.NewRecorder()

	handler(rec, req)

	if got := rec.Header().Get(RequestIDHeader); got != existingID {
		t.Errorf("X-Request-ID = %q, want %q", got, existingID)
	}
	if capturedID != existingID {
		t.Errorf("context ID = %q, want %q", capturedID, existingID)
	}
}

func TestRequestID_RejectsUnsafeUpstreamID(t *testing.T) {
	tests := []struct {
		name string
		id   string
	}{
		{"newline", "abc\nforged log line"},
		{"too long", strings.Repeat("x", maxRequestIDLength+1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := RequestID(func(w http.ResponseWriter, r *http.Request) {})
			req := httptest.NewRequest(http.MethodGet, "/test", nil)
			req.Header.Set(RequestIDHeader, tt.id)
			rec := httptest.NewRecorder()

			handler(rec, req)

			got := rec.Header().Get(RequestIDHeader)
			if got == tt.id {
				t.Error("unsafe upstream ID should be replaced")
			}
			if _, err := uuid.Parse(got); err != nil {
				t.Errorf("replacement ID %q is not a UUID", got)
			}
		})
	}
}

func TestGetRequestID_WithoutID(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/test", nil)

	if id := GetRequestID(req.Context()); id != "" {
		t.Errorf("GetRequestID() = %q, want empty", id)
	}
}

func TestRequestID_UniquePerRequest(t *testing.T) {
	handler := RequestID(func(w http.ResponseWriter, r *http.Request) {})
	seen := make(map[string]bool)

	for i := 0; i < 50; i++ {
		rec := httptest.NewRecorder()
		handler(rec, httptest.NewRequest(http.MethodGet, "/test", nil))
		id := rec.Header().Get(RequestIDHeader)
		if seen[id] {
			t.Fatalf("duplicate request ID %q", id)
		}
		seen[id] = true
	}
}
