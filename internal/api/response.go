// Gridlens - Energy System Model Results Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gridlens

package api

import (
	"net/http"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/gridlens/internal/logging"
)

// APIResponse wraps every payload and every failure. Exactly one of Data
// and Error is set.
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *APIError   `json:"error,omitempty"`
	Meta    *APIMeta    `json:"meta,omitempty"`
}

type APIError struct {
	Code      string      `json:"code"` // one of the ErrCode constants
	Message   string      `json:"message"`
	Details   interface{} `json:"details,omitempty"`
	RequestID string      `json:"request_id,omitempty"`
}

// APIMeta ties a response to its request and session. CorrelationID is
// the short ID on the request's log lines. Cached reports a hit in the
// response cache.
type APIMeta struct {
	RequestID     string    `json:"request_id,omitempty"`
	CorrelationID string    `json:"correlation_id,omitempty"`
	SessionID     string    `json:"session_id,omitempty"`
	Timestamp     time.Time `json:"timestamp"`
	DurationMs    int64     `json:"duration_ms"`
	Cached        bool      `json:"cached"`
}

const (
	ErrCodeValidationError    = "VALIDATION_ERROR"
	ErrCodeNotFound           = "NOT_FOUND"
	ErrCodeMethodNotAllowed   = "METHOD_NOT_ALLOWED"
	ErrCodeTooManyRequests    = "TOO_MANY_REQUESTS"
	ErrCodeInternalError      = "INTERNAL_ERROR"
	ErrCodeServiceUnavailable = "SERVICE_UNAVAILABLE"
)

// ResponseWriter renders the envelope for one request and stamps it with
// the elapsed handler time.
type ResponseWriter struct {
	w       http.ResponseWriter
	r       *http.Request
	started time.Time
}

func NewResponseWriter(w http.ResponseWriter, r *http.Request) *ResponseWriter {
	return &ResponseWriter{w: w, r: r, started: time.Now()}
}

func (rw *ResponseWriter) Success(data interface{}) {
	rw.SuccessWithMeta(data, nil)
}

func (rw *ResponseWriter) SuccessWithMeta(data interface{}, meta *APIMeta) {
	rw.send(http.StatusOK, APIResponse{Success: true, Data: data, Meta: rw.stamp(meta)})
}

// SuccessRaw embeds a payload that is already JSON, as served from the
// response cache.
func (rw *ResponseWriter) SuccessRaw(data []byte, meta *APIMeta) {
	rw.SuccessWithMeta(json.RawMessage(data), meta)
}

func (rw *ResponseWriter) Error(status int, code, message string) {
	rw.ErrorWithDetails(status, code, message, nil)
}

// ErrorWithDetails repeats the request ID inside the error object so
// clients logging only the error still have it.
func (rw *ResponseWriter) ErrorWithDetails(status int, code, message string, details interface{}) {
	meta := rw.stamp(nil)
	rw.send(status, APIResponse{
		Error: &APIError{Code: code, Message: message, Details: details, RequestID: meta.RequestID},
		Meta:  meta,
	})
}

func (rw *ResponseWriter) ValidationError(msg string, details interface{}) {
	rw.ErrorWithDetails(http.StatusBadRequest, ErrCodeValidationError, msg, details)
}

func (rw *ResponseWriter) NotFound(msg string) {
	rw.Error(http.StatusNotFound, ErrCodeNotFound, msg)
}

func (rw *ResponseWriter) TooManyRequests(msg string) {
	rw.Error(http.StatusTooManyRequests, ErrCodeTooManyRequests, msg)
}

func (rw *ResponseWriter) InternalError(msg string) {
	rw.Error(http.StatusInternalServerError, ErrCodeInternalError, msg)
}

// ServiceUnavailable is used while no session is loaded.
func (rw *ResponseWriter) ServiceUnavailable(msg string) {
	rw.Error(http.StatusServiceUnavailable, ErrCodeServiceUnavailable, msg)
}

// stamp fills the request-scoped fields of meta. A session ID set by the
// handler wins over the one in the request context.
func (rw *ResponseWriter) stamp(meta *APIMeta) *APIMeta {
	if meta == nil {
		meta = new(APIMeta)
	}
	ctx := rw.r.Context()
	meta.RequestID = logging.RequestIDFromContext(ctx)
	meta.CorrelationID = logging.CorrelationIDFromContext(ctx)
	if meta.SessionID == "" {
		meta.SessionID = logging.SessionIDFromContext(ctx)
	}
	meta.Timestamp = time.Now().UTC()
	meta.DurationMs = time.Since(rw.started).Milliseconds()
	return meta
}

func (rw *ResponseWriter) send(status int, body APIResponse) {
	h := rw.w.Header()
	h.Set("Content-Type", "application/json; charset=utf-8")
	rw.w.WriteHeader(status)
	if err := json.NewEncoder(rw.w).Encode(body); err != nil {
		// Headers are gone; all that is left is to record it.
		logging.Ctx(rw.r.Context()).Error().Err(err).Msg("Encoding API response failed")
	}
}
