// Gridlens - Energy System Model Results Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gridlens

package api

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tomtom215/gridlens/internal/config"
	"github.com/tomtom215/gridlens/internal/engine"
)

func TestChiMiddlewareConfigFromServer(t *testing.T) {
	cfg := ChiMiddlewareConfigFromServer(&config.ServerConfig{
		CORSOrigins:     []string{"https://example.org"},
		RateLimitReqs:   5,
		RateLimitWindow: time.Second,
	})
	assert.Equal(t, []string{"https://example.org"}, cfg.CORSAllowedOrigins)
	assert.Equal(t, 5, cfg.RateLimitRequests)
	assert.Equal(t, time.Second, cfg.RateLimitWindow)
	assert.False(t, cfg.RateLimitDisabled)

	defaults := ChiMiddlewareConfigFromServer(&config.ServerConfig{RateLimitDisabled: true})
	assert.Equal(t, 100, defaults.RateLimitRequests)
	assert.Equal(t, time.Minute, defaults.RateLimitWindow)
	assert.True(t, defaults.RateLimitDisabled)
	assert.Empty(t, defaults.CORSAllowedOrigins)
}

func TestRateLimit(t *testing.T) {
	cfg := DefaultChiMiddlewareConfig()
	cfg.RateLimitRequests = 1
	cfg.RateLimitWindow = time.Hour

	holder := &engine.Holder{}
	holder.Store(testSession(t))
	router := NewRouter(NewHandler(HandlerDeps{Holder: holder}), cfg).SetupChi()

	rec, _ := serve(t, router, "/api/v1/session")
	require.Equal(t, http.StatusOK, rec.Code)

	rec, env := serve(t, router, "/api/v1/session")
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	require.NotNil(t, env.Error)
	assert.Equal(t, ErrCodeTooManyRequests, env.Error.Code)

	// Health probes have their own budget.
	rec, _ = serve(t, router, "/api/v1/health/live")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRateLimitDisabled(t *testing.T) {
	m := NewChiMiddleware(&ChiMiddlewareConfig{RateLimitRequests: 1, RateLimitWindow: time.Hour, RateLimitDisabled: true})
	h := m.RateLimit()(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	for i := 0; i < 3; i++ {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		assert.Equal(t, http.StatusNoContent, rec.Code)
	}
}

func TestCORSPreflight(t *testing.T) {
	cfg := DefaultChiMiddlewareConfig()
	cfg.CORSAllowedOrigins = []string{"https://dashboard.example"}
	router := NewRouter(NewHandler(HandlerDeps{}), cfg).SetupChi()

	req := httptest.NewRequest(http.MethodOptions, "/api/v1/session", nil)
	req.Header.Set("Origin", "https://dashboard.example")
	req.Header.Set("Access-Control-Request-Method", http.MethodGet)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, "https://dashboard.example", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestAPISecurityHeaders_HSTS(t *testing.T) {
	h := APISecurityHeaders()(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Forwarded-Proto", "https")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Contains(t, rec.Header().Get("Strict-Transport-Security"), "max-age=")

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Empty(t, rec.Header().Get("Strict-Transport-Security"))
}
