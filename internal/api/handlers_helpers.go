// Kaiserhaus - Retail Order Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/kaiserhaus

package api

import (
	"fmt"
	"hash/fnv"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/kaiserhaus/internal/logging"
	"github.com/tomtom215/kaiserhaus/internal/middleware"
	"github.com/tomtom215/kaiserhaus/internal/models"
	"github.com/tomtom215/kaiserhaus/internal/validation"
)

// respondJSON writes a JSON response. Successful responses carry an ETag
// computed over the data payload only, so per-request metadata such as the
// timestamp does not defeat revalidation. A matching If-None-Match yields 304.
func respondJSON(w http.ResponseWriter, r *http.Request, status int, response *models.APIResponse) {
	var etag string
	if status == http.StatusOK {
		payload, err := json.Marshal(response.Data)
		if err != nil {
			writeEncodeFailure(w, err)
			return
		}
		etag = generateETag(payload)
		response.Data = json.RawMessage(payload)
	}

	data, err := json.Marshal(response)
	if err != nil {
		writeEncodeFailure(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if etag != "" {
		w.Header().Set("ETag", etag)
		w.Header().Set("Cache-Control", "public, max-age=60")
		if r != nil && etagMatches(r.Header.Get("If-None-Match"), etag) {
			w.WriteHeader(http.StatusNotModified)
			return
		}
	} else {
		w.Header().Set("Cache-Control", "no-store")
	}

	w.WriteHeader(status)
	if _, err := w.Write(data); err != nil {
		logging.Debug().Err(err).Msg("Failed to write response body")
	}
}

func writeEncodeFailure(w http.ResponseWriter, err error) {
	logging.Error().Err(err).Msg("Failed to encode JSON response")
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusInternalServerError)
	_, _ = w.Write([]byte(`{"status":"error","data":null,"metadata":{},"error":{"code":"INTERNAL_ERROR","message":"Failed to encode response"}}`))
}

// generateETag returns a quoted FNV-1a hash of data.
func generateETag(data []byte) string {
	h := fnv.New64a()
	_, _ = h.Write(data)
	return fmt.Sprintf(`"%x"`, h.Sum64())
}

// etagMatches reports whether an If-None-Match header matches etag.
// Weak validators match their strong counterpart.
func etagMatches(header, etag string) bool {
	if header == "" {
		return false
	}
	for _, candidate := range strings.Split(header, ",") {
		candidate = strings.TrimSpace(candidate)
		if candidate == "*" || strings.TrimPrefix(candidate, "W/") == etag {
			return true
		}
	}
	return false
}

// respondSuccess wraps data in a success envelope.
func respondSuccess(w http.ResponseWriter, r *http.Request, data interface{}, meta models.Metadata) {
	meta.Timestamp = time.Now()
	meta.RequestID = middleware.GetRequestID(r.Context())
	respondJSON(w, r, http.StatusOK, &models.APIResponse{
		Status:   "success",
		Data:     data,
		Metadata: meta,
	})
}

// respondError writes an error envelope and logs the failure.
func respondError(w http.ResponseWriter, r *http.Request, status int, code, message string, details map[string]interface{}, err error) {
	event := logging.Warn()
	if status >= http.StatusInternalServerError && status != http.StatusServiceUnavailable {
		event = logging.Error()
	}
	if err != nil {
		event = event.Err(err)
	}
	requestID := ""
	if r != nil {
		requestID = middleware.GetRequestID(r.Context())
		event = event.Str("path", sanitizeLogValue(r.URL.Path))
	}
	event.Str("code", sanitizeLogValue(code)).
		Int("status", status).
		Str("request_id", requestID).
		Msg(message)

	respondJSON(w, r, status, &models.APIResponse{
		Status: "error",
		Data:   nil,
		Metadata: models.Metadata{
			Timestamp: time.Now(),
			RequestID: requestID,
		},
		Error: &models.APIError{
			Code:    code,
			Message: message,
			Details: details,
		},
	})
}

// respondEngineError maps an engine error onto its HTTP rendering.
func respondEngineError(w http.ResponseWriter, r *http.Request, err error) {
	f := classifyError(err)
	respondError(w, r, f.status, f.code, f.message, f.details, err)
}

// respondValidationError writes a 400 for a failed request validation.
func respondValidationError(w http.ResponseWriter, r *http.Request, verr *validation.RequestValidationError) {
	apiErr := verr.ToAPIError()
	respondError(w, r, http.StatusBadRequest, apiErr.Code, apiErr.Message, apiErr.Details, nil)
}

// sanitizeLogValue strips control characters from user-controlled values
// before they reach the log stream.
func sanitizeLogValue(s string) string {
	const maxLen = 200
	var b strings.Builder
	for _, r := range s {
		if r < 0x20 || r == 0x7f {
			continue
		}
		b.WriteRune(r)
		if b.Len() >= maxLen {
			break
		}
	}
	return b.String()
}

// parseCommaSeparated splits a comma-separated value, dropping empty parts.
func parseCommaSeparated(value string) []string {
	if value == "" {
		return nil
	}
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// getMultiParam accepts both repeated (?a=x&a=y) and comma-separated (?a=x,y)
// forms.
func getMultiParam(r *http.Request, key string) []string {
	var out []string
	for _, v := range r.URL.Query()[key] {
		out = append(out, parseCommaSeparated(v)...)
	}
	return out
}

// getIntParam parses an integer query parameter. Absent values return
// defaultValue; malformed ones return an error.
func getIntParam(r *http.Request, key string, defaultValue int) (int, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(key))
	if raw == "" {
		return defaultValue, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer", key)
	}
	return v, nil
}
