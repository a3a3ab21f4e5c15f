// Gridlens - Energy System Model Results Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gridlens

package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/gridlens/internal/analytics"
	"github.com/tomtom215/gridlens/internal/cache"
	"github.com/tomtom215/gridlens/internal/engine"
	"github.com/tomtom215/gridlens/internal/frame"
	"github.com/tomtom215/gridlens/internal/logging"
	"github.com/tomtom215/gridlens/internal/metrics"
)

// QueryFunc computes one metric against the current session. The result
// must be JSON-serializable; it is cached in encoded form.
type QueryFunc func(ctx context.Context, s *engine.Session) (interface{}, error)

// QueryExecutor implements the cache-first flow shared by all metric
// handlers:
//
//  1. Resolve the current session (503 without one)
//  2. Look the request up in the response cache
//  3. Run the query on a miss and record its duration
//  4. Cache the encoded payload for the session
//  5. Respond with the envelope, flagging cache hits in meta
type QueryExecutor struct {
	handler *Handler
	query   string
	log     *logging.QueryLogger
}

// NewQueryExecutor creates an executor for one query family, such as
// "source" or "line". The family labels metrics and logs.
func NewQueryExecutor(h *Handler, query string) *QueryExecutor {
	return &QueryExecutor{
		handler: h,
		query:   query,
		log:     logging.NewQueryLogger(query),
	}
}

// Execute runs fn for metric, serving from the cache when possible.
func (e *QueryExecutor) Execute(w http.ResponseWriter, r *http.Request, metric string, params map[string]string, fn QueryFunc) {
	rw := NewResponseWriter(w, r)
	s, ok := e.handler.session(rw)
	if !ok {
		return
	}

	ctx := logging.ContextWithSessionID(r.Context(), s.ID())
	rw.r = r.WithContext(ctx)

	key := ""
	if e.handler.cache != nil {
		key = cache.Key(s.ID(), r.URL.Path, r.URL.Query())
		if cached, found := e.handler.cache.Get(key); found {
			e.log.CacheHit(ctx, metric, key)
			rw.SuccessRaw(cached, &APIMeta{Cached: true})
			return
		}
	}

	e.log.Started(ctx, metric, params)
	start := time.Now()
	data, err := fn(ctx, s)
	elapsed := time.Since(start)
	metrics.RecordQuery(e.query, metric, elapsed, err, classifyError)
	if err != nil {
		e.log.Failed(ctx, metric, err, isValidationError(err))
		writeError(rw, err)
		return
	}

	encoded, err := json.Marshal(data)
	if err != nil {
		writeError(rw, fmt.Errorf("failed to encode %s result: %w", metric, err))
		return
	}
	e.log.Completed(ctx, metric, countFrames(data), elapsed)

	if key != "" {
		e.handler.cache.Set(key, encoded)
	}
	rw.SuccessRaw(encoded, &APIMeta{})
}

// countFrames reports how many frames a query produced, for logging.
func countFrames(data interface{}) int {
	switch v := data.(type) {
	case *frame.Frame:
		return 1
	case analytics.Result:
		if v.IsSingle() {
			return 1
		}
		return len(v.Frames)
	}
	return 0
}
