// Gridlens - Energy System Model Results Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gridlens

package api

import (
	"net/http"
	"time"
)

// HealthStatus describes the state of the service and its components.
type HealthStatus struct {
	Status            string     `json:"status"`
	SessionLoaded     bool       `json:"session_loaded"`
	SessionID         string     `json:"session_id,omitempty"`
	SessionLoadedAt   *time.Time `json:"session_loaded_at,omitempty"`
	DatabaseConnected bool       `json:"database_connected"`
	CacheEntries      int        `json:"cache_entries"`
	Uptime            float64    `json:"uptime"`
}

// Health reports component status. It is degraded while no session is
// loaded or the database cannot be reached, but always answers 200.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	dbConnected := h.db != nil && h.db.Ping(r.Context()) == nil

	health := HealthStatus{
		Status:            "healthy",
		DatabaseConnected: dbConnected,
		Uptime:            h.Uptime().Seconds(),
	}
	if s := h.holder.Load(); s != nil {
		loadedAt := s.LoadedAt()
		health.SessionLoaded = true
		health.SessionID = s.ID()
		health.SessionLoadedAt = &loadedAt
	}
	if h.cache != nil {
		health.CacheEntries = h.cache.Len()
	}
	if !health.SessionLoaded || (h.db != nil && !dbConnected) {
		health.Status = "degraded"
	}

	NewResponseWriter(w, r).Success(health)
}

// HealthLive handles liveness probe requests (Kubernetes-style)
// Returns 200 OK if the process is alive, regardless of dependencies
func (h *Handler) HealthLive(w http.ResponseWriter, r *http.Request) {
	NewResponseWriter(w, r).Success(map[string]interface{}{
		"alive":  true,
		"uptime": h.Uptime().Seconds(),
	})
}

// HealthReady handles readiness probe requests (Kubernetes-style)
// Returns 200 OK only once the session loader has stored a session.
func (h *Handler) HealthReady(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	s, ok := h.session(rw)
	if !ok {
		return
	}
	rw.Success(map[string]interface{}{
		"ready":      true,
		"session_id": s.ID(),
	})
}
