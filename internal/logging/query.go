// Gridlens - Energy System Model Results Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gridlens

package logging

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

// QueryLogger logs the lifecycle of one analytics query family
// (sources, lines, consumers, lbs).
type QueryLogger struct {
	logger zerolog.Logger
}

// NewQueryLogger returns a QueryLogger tagged with the query family.
func NewQueryLogger(query string) *QueryLogger {
	return &QueryLogger{
		logger: With().Str("component", "analytics").Str("query", query).Logger(),
	}
}

// NewQueryLoggerWithLogger builds a QueryLogger on top of a custom logger.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func NewQueryLoggerWithLogger(logger zerolog.Logger, query string) *QueryLogger {
	return &QueryLogger{
		logger: logger.With().Str("component", "analytics").Str("query", query).Logger(),
	}
}

func (q *QueryLogger) withContext(ctx context.Context) *zerolog.Logger {
	c := q.logger.With()
	if id := RequestIDFromContext(ctx); id != "" {
		c = c.Str("request_id", id)
	}
	if id := SessionIDFromContext(ctx); id != "" {
		c = c.Str("session_id", id)
	}
	l := c.Logger()
	return &l
}

// Started logs at debug level that a metric computation began.
func (q *QueryLogger) Started(ctx context.Context, metric string, params map[string]string) {
	e := q.withContext(ctx).Debug().Str("metric", metric)
	for k, v := range params {
		e = e.Str(k, v)
	}
	e.Msg("Query started")
}

// Completed logs a successful computation with its result shape.
func (q *QueryLogger) Completed(ctx context.Context, metric string, frames int, d time.Duration) {
	q.withContext(ctx).Debug().
		Str("metric", metric).
		Int("frames", frames).
		Int64("duration_ms", d.Milliseconds()).
		Msg("Query completed")
}

// Failed logs a rejected or failed computation. Validation failures are
// logged at warn level, everything else at error level.
func (q *QueryLogger) Failed(ctx context.Context, metric string, err error, validation bool) {
	l := q.withContext(ctx)
	e := l.Error()
	if validation {
		e = l.Warn()
	}
	e.Err(err).Str("metric", metric).Msg("Query failed")
}

// CacheHit logs that a query result was served from cache.
func (q *QueryLogger) CacheHit(ctx context.Context, metric, key string) {
	q.withContext(ctx).Debug().Str("metric", metric).Str("cache_key", key).Msg("Query cache hit")
}
