// Gridlens - Energy System Model Results Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gridlens

/*
Package middleware provides HTTP middleware shared by the Gridlens API.

All middleware uses the chi signature func(http.Handler) http.Handler:

  - RequestID: propagates or generates X-Request-ID and stores it, plus a
    correlation ID, in the logging context
  - PrometheusMetrics: request counts, latency and in-flight gauge labelled
    by chi route pattern so that path parameters do not explode cardinality
  - Compression: gzip or deflate for JSON responses, via chi's compressor
  - PerformanceMonitor: sliding window of request durations with
    per-route percentiles, served by the API's performance endpoint

Typical stack:

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.PrometheusMetrics)
	r.Use(perfMon.Middleware)
	r.Use(middleware.Compression)
*/
package middleware
