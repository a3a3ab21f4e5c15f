// Gridlens - Energy System Model Results Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gridlens

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tomtom215/gridlens/internal/middleware"
)

// Router mounts the Handler behind the middleware stack.
type Router struct {
	handler       *Handler
	chiMiddleware *ChiMiddleware
}

// NewRouter takes nil cfg as DefaultChiMiddlewareConfig.
func NewRouter(handler *Handler, cfg *ChiMiddlewareConfig) *Router {
	return &Router{handler: handler, chiMiddleware: NewChiMiddleware(cfg)}
}

// SetupChi returns the root handler. Health probes and analytics routes
// have separate rate limit budgets; /metrics has none.
func (router *Router) SetupChi() http.Handler {
	h := router.handler
	r := chi.NewRouter()

	r.Use(middleware.RequestID, chimiddleware.RealIP, chimiddleware.Recoverer, chimiddleware.StripSlashes)
	// Preflight requests never reach a route, so CORS sits on the root.
	r.Use(router.chiMiddleware.CORS())
	r.Use(middleware.Compression)
	if h.perfMon != nil {
		r.Use(h.perfMon.Middleware)
	}
	r.NotFound(h.NotFound)
	r.MethodNotAllowed(h.MethodNotAllowed)

	r.Route("/api/v1/health", router.mountHealth)
	r.Route("/api/v1", router.mountAnalytics)
	r.Handle("/metrics", promhttp.Handler())
	return r
}

func (router *Router) mountHealth(r chi.Router) {
	h := router.handler
	r.Use(router.chiMiddleware.RateLimitHealth(), APISecurityHeaders())
	r.Get("/", h.Health)
	r.Get("/live", h.HealthLive)
	r.Get("/ready", h.HealthReady)
}

func (router *Router) mountAnalytics(r chi.Router) {
	h := router.handler
	r.Use(router.chiMiddleware.RateLimit(), APISecurityHeaders(), middleware.PrometheusMetrics)

	r.Get("/session", h.Session)
	r.Get("/performance", h.Performance)

	r.Get("/sources", h.SourceMetrics)
	r.Get("/sources/{metric}", h.Sources)

	r.Get("/lines", h.LineNames)
	r.Get("/lines/flow", h.LineFlow)
	r.Get("/lines/transmission-fee", h.LineTransmissionFee)

	r.Get("/lbs", h.LBSNames)
	r.Get("/lbs/fraction", h.LBSFraction)
	r.Get("/lbs/capacity", h.LBSCapacity)

	r.Get("/aggregates/{metric}", h.Aggregates)
}
