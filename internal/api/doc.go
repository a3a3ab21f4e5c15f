// Gridlens - Energy System Model Results Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gridlens

/*
Package api serves the analytics engine over HTTP.

Every endpoint is a GET and answers with the same envelope:

	{
	  "success": true,
	  "data": {...},
	  "meta": {"request_id": "...", "timestamp": "...", "duration_ms": 3, "cached": false}
	}

Errors carry a machine-readable code (VALIDATION_ERROR, NOT_FOUND,
SERVICE_UNAVAILABLE, INTERNAL_ERROR, TOO_MANY_REQUESTS) instead of data.

# Routes

	/api/v1/health/live                 liveness probe
	/api/v1/health/ready                503 until a session is loaded
	/api/v1/health                      component status
	/api/v1/session                     session description
	/api/v1/sources/{metric}            source metrics (level, filter_type, filter_names, hourly)
	/api/v1/lines/flow                  line flows (name | names, hourly)
	/api/v1/lines/transmission-fee      line transmission fees (name | names)
	/api/v1/lbs/fraction                stack fractions (name | names)
	/api/v1/lbs/capacity                stack capacities (name | names)
	/api/v1/aggregates/{metric}         aggregated consumer metrics (name | names)
	/api/v1/performance                 per-route latency statistics
	/metrics                            Prometheus exposition

Query results are cached per session, path and canonical query string, so
a reloaded session never serves answers computed for the previous one.
*/
package api
