// Gridlens - Energy System Model Results Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gridlens

package metrics

import (
	"errors"
	"runtime"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Namespace prefixes every gridlens series.
const Namespace = "gridlens"

var startedAt = time.Now()

// DuckDB reads of result files.
var (
	TableReadDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: Namespace, Subsystem: "duckdb", Name: "table_read_duration_seconds",
		Help:    "Time to scan one CSV or Parquet result file.",
		Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
	}, []string{"format"})

	TableReadErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: Namespace, Subsystem: "duckdb", Name: "table_read_errors_total",
		Help: "Result files DuckDB failed to scan.",
	}, []string{"format"})
)

// Session lifecycle.
var (
	SessionLoads = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: Namespace, Subsystem: "session", Name: "loads_total",
		Help: "Session loads by status: success, invalid or error.",
	}, []string{"status"})

	SessionLoadDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: Namespace, Subsystem: "session", Name: "load_duration_seconds",
		Help:    "Time to read the network definition and every result table.",
		Buckets: []float64{0.1, 0.5, 1, 2.5, 5, 10, 30, 60, 120},
	})

	SessionTables = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: Namespace, Subsystem: "session", Name: "result_tables",
		Help: "Result tables in the current session per group.",
	}, []string{"group"})

	SessionLastLoad = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: Namespace, Subsystem: "session", Name: "last_load_timestamp_seconds",
		Help: "Unix time of the last successful load.",
	})
)

// Analytics queries, labelled by query family and metric name.
var (
	QueryDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: Namespace, Subsystem: "analytics", Name: "query_duration_seconds",
		Help:    "Analytics query latency.",
		Buckets: prometheus.DefBuckets,
	}, []string{"query", "metric"})

	QueryErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: Namespace, Subsystem: "analytics", Name: "query_errors_total",
		Help: "Failed analytics queries by error type.",
	}, []string{"query", "metric", "error_type"})
)

// HTTP API. Endpoints are chi route patterns.
var (
	APIRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: Namespace, Subsystem: "api", Name: "requests_total",
		Help: "API requests by method, route and status.",
	}, []string{"method", "endpoint", "status_code"})

	APIRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: Namespace, Subsystem: "api", Name: "request_duration_seconds",
		Help:    "API request latency.",
		Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
	}, []string{"method", "endpoint"})

	APIActiveRequests = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: Namespace, Subsystem: "api", Name: "active_requests",
		Help: "Requests currently being served.",
	})

	APIRateLimitHits = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: Namespace, Subsystem: "api", Name: "rate_limit_hits_total",
		Help: "Requests rejected with 429.",
	}, []string{"endpoint"})
)

// Response cache, labelled by tier: memory or disk.
var (
	CacheHits = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: Namespace, Subsystem: "cache", Name: "hits_total",
		Help: "Response cache hits.",
	}, []string{"cache_type"})

	CacheMisses = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: Namespace, Subsystem: "cache", Name: "misses_total",
		Help: "Response cache misses.",
	}, []string{"cache_type"})

	CacheSize = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: Namespace, Subsystem: "cache", Name: "entries",
		Help: "Entries held per tier.",
	}, []string{"cache_type"})

	CacheEvictions = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: Namespace, Subsystem: "cache", Name: "evictions_total",
		Help: "Entries pushed out of a tier by capacity or expiry.",
	}, []string{"cache_type"})
)

// Process.
var (
	AppInfo = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: Namespace, Name: "build_info",
		Help: "Always 1; labels carry the build version and Go runtime.",
	}, []string{"version", "go_version"})

	AppUptime = promauto.NewGaugeFunc(prometheus.GaugeOpts{
		Namespace: Namespace, Name: "uptime_seconds",
		Help: "Seconds since the process started.",
	}, func() float64 { return time.Since(startedAt).Seconds() })
)

// RecordBuildInfo publishes the running version once at startup.
func RecordBuildInfo(version string) {
	AppInfo.WithLabelValues(version, runtime.Version()).Set(1)
}

// RecordTableRead observes one result file scan; format is the file
// extension without the dot.
func RecordTableRead(format string, d time.Duration, err error) {
	TableReadDuration.WithLabelValues(format).Observe(d.Seconds())
	if err != nil {
		TableReadErrors.WithLabelValues(format).Inc()
	}
}

// RecordSessionLoaded sets the per-group table gauges and stamps the load
// time.
func RecordSessionLoaded(tablesPerGroup map[string]int) {
	for group, n := range tablesPerGroup {
		SessionTables.WithLabelValues(group).Set(float64(n))
	}
	SessionLastLoad.SetToCurrentTime()
}

// RecordQuery observes one analytics query. classify maps a failure to its
// error_type label; nil classifies everything as "other".
func RecordQuery(query, metric string, d time.Duration, err error, classify func(error) string) {
	QueryDuration.WithLabelValues(query, metric).Observe(d.Seconds())
	if err == nil {
		return
	}
	kind := "other"
	if classify != nil {
		kind = classify(err)
	}
	QueryErrors.WithLabelValues(query, metric, kind).Inc()
}

func RecordAPIRequest(method, endpoint, statusCode string, d time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(d.Seconds())
}

// TrackActiveRequest moves the in-flight gauge up on start and down on end.
func TrackActiveRequest(start bool) {
	if start {
		APIActiveRequests.Inc()
		return
	}
	APIActiveRequests.Dec()
}

func RecordCacheLookup(tier string, hit bool) {
	if hit {
		CacheHits.WithLabelValues(tier).Inc()
		return
	}
	CacheMisses.WithLabelValues(tier).Inc()
}

// ErrorType is the stock classifier for RecordQuery: "timeout" for errors
// reporting Timeout(), "other" for the rest.
func ErrorType(err error) string {
	var t interface{ Timeout() bool }
	if errors.As(err, &t) && t.Timeout() {
		return "timeout"
	}
	return "other"
}
