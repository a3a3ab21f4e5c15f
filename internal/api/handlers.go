// Gridlens - Energy System Model Results Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gridlens

package api

import (
	"context"
	"net/http"
	"time"

	"github.com/tomtom215/gridlens/internal/cache"
	"github.com/tomtom215/gridlens/internal/engine"
	"github.com/tomtom215/gridlens/internal/middleware"
)

// Pinger reports whether a backing store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Handler contains dependencies for API handlers.
//
// Handler methods are split across files:
//   - handlers_health.go: liveness, readiness and component health
//   - handlers_session.go: session description and performance stats
//   - handlers_sources.go: generator and storage metrics
//   - handlers_lines.go: line flows and fees
//   - handlers_lbs.go: local balancing stack metrics
//   - handlers_aggregates.go: aggregated consumer metrics
type Handler struct {
	holder    *engine.Holder
	db        Pinger
	cache     cache.Store
	perfMon   *middleware.PerformanceMonitor
	startTime time.Time

	sources   *QueryExecutor
	lines     *QueryExecutor
	lbs       *QueryExecutor
	consumers *QueryExecutor
}

// HandlerDeps are the collaborators of a Handler. Only Holder is
// required; a nil Cache disables response caching.
type HandlerDeps struct {
	Holder      *engine.Holder
	DB          Pinger
	Cache       cache.Store
	Performance *middleware.PerformanceMonitor
}

// NewHandler creates a new API handler.
func NewHandler(deps HandlerDeps) *Handler {
	holder := deps.Holder
	if holder == nil {
		holder = &engine.Holder{}
	}
	h := &Handler{
		holder:    holder,
		db:        deps.DB,
		cache:     deps.Cache,
		perfMon:   deps.Performance,
		startTime: time.Now(),
	}
	h.sources = NewQueryExecutor(h, "sources")
	h.lines = NewQueryExecutor(h, "lines")
	h.lbs = NewQueryExecutor(h, "lbs")
	h.consumers = NewQueryExecutor(h, "consumers")
	return h
}

// session returns the current session or writes a 503.
func (h *Handler) session(rw *ResponseWriter) (*engine.Session, bool) {
	s := h.holder.Load()
	if s == nil {
		writeError(rw, ErrNoSession)
		return nil, false
	}
	return s, true
}

// Uptime returns how long the handler has been serving.
func (h *Handler) Uptime() time.Duration {
	return time.Since(h.startTime)
}

// NotFound answers unknown routes with the standard envelope.
func (h *Handler) NotFound(w http.ResponseWriter, r *http.Request) {
	NewResponseWriter(w, r).NotFound("route not found: " + r.URL.Path)
}

// MethodNotAllowed answers non-GET requests with the standard envelope.
func (h *Handler) MethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	NewResponseWriter(w, r).Error(http.StatusMethodNotAllowed, ErrCodeMethodNotAllowed, "method not allowed: "+r.Method)
}
