// Gridlens - Energy System Model Results Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gridlens

package middleware

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/tomtom215/gridlens/internal/metrics"
)

// PrometheusMetrics counts each request by method, route pattern and
// status and observes its latency. The in-flight gauge covers the handler.
func PrometheusMetrics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		metrics.TrackActiveRequest(true)
		defer metrics.TrackActiveRequest(false)

		began := time.Now()
		ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		metrics.RecordAPIRequest(r.Method, RoutePattern(r), strconv.Itoa(statusOf(ww)), time.Since(began))
	})
}

// RoutePattern names the route a request matched. Inside chi this is the
// pattern ("/api/v1/sources/{metric}") so label cardinality stays bounded;
// elsewhere it falls back to the raw path. Call it after routing.
func RoutePattern(r *http.Request) string {
	rctx := chi.RouteContext(r.Context())
	if rctx == nil {
		return r.URL.Path
	}
	if pattern := rctx.RoutePattern(); pattern != "" {
		return trimMethod(pattern)
	}
	return r.URL.Path
}

// trimMethod drops the "GET " prefix chi puts on patterns of routes
// registered per method. The method is recorded as its own label.
func trimMethod(pattern string) string {
	method, path, ok := strings.Cut(pattern, " ")
	if !ok || method == "" || strings.ToUpper(method) != method {
		return pattern
	}
	return path
}

// statusOf reports the status sent through ww. A handler that wrote
// nothing still answers 200 once net/http finishes the response.
func statusOf(ww chimw.WrapResponseWriter) int {
	if code := ww.Status(); code != 0 {
		return code
	}
	return http.StatusOK
}
