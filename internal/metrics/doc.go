// Gridlens - Energy System Model Results Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gridlens

/*
Package metrics provides Prometheus metrics collection and export for observability.

# Overview

The package provides metrics for:
  - Result file reads through DuckDB
  - Session loads
  - Analytics query latency and failures
  - HTTP request latency and throughput
  - Response cache hit/miss rates

# Metrics Endpoint

Metrics are exposed at the /metrics endpoint in Prometheus text format:

	curl http://localhost:8618/metrics

# Available Metrics

Every name below carries the gridlens_ prefix.

Result Files:
  - duckdb_table_read_duration_seconds (histogram), labels: format
  - duckdb_table_read_errors_total (counter), labels: format

Sessions:
  - session_loads_total (counter), labels: status (success, invalid, error)
  - session_load_duration_seconds (histogram)
  - session_result_tables (gauge), labels: group
  - session_last_load_timestamp_seconds (gauge)

Analytics Queries:
  - analytics_query_duration_seconds (histogram), labels: query, metric
  - analytics_query_errors_total (counter), labels: query, metric, error_type

HTTP:
  - api_requests_total (counter), labels: method, endpoint, status_code
  - api_request_duration_seconds (histogram), labels: method, endpoint
  - api_active_requests (gauge)
  - api_rate_limit_hits_total (counter), labels: endpoint

Cache:
  - cache_hits_total, cache_misses_total, cache_evictions_total (counters)
  - cache_entries (gauge)
    Labels: cache_type (memory, disk)

Process:
  - build_info (gauge), labels: version, go_version
  - uptime_seconds (gauge)

# Usage Example

	start := time.Now()
	res, err := session.LineParams().GetFlow(sel, false)
	metrics.RecordQuery("lines", "flow", time.Since(start), err, metrics.ErrorType)

# Thread Safety

All recording functions are safe for concurrent use; the Prometheus client
library handles synchronization internally.
*/
package metrics
