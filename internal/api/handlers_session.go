// Gridlens - Energy System Model Results Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gridlens

package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/tomtom215/gridlens/internal/frame"
	"github.com/tomtom215/gridlens/internal/logging"
	"github.com/tomtom215/gridlens/internal/middleware"
)

// SessionInfo describes the loaded session.
type SessionInfo struct {
	ID                    string    `json:"id"`
	ScenarioName          string    `json:"scenario_name"`
	LoadedAt              time.Time `json:"loaded_at"`
	GeneratorCapacityCost string    `json:"generator_capacity_cost"`

	// ObjectiveFunctionValue is null when no objective file was found.
	ObjectiveFunctionValue *float64 `json:"objective_function_value"`

	YearSample   []int          `json:"year_sample"`
	HourSample   []int          `json:"hour_sample"`
	HourlyScale  float64        `json:"hourly_scale"`
	YearsBinding *frame.Binding `json:"years_binding"`

	LineNames  []string       `json:"line_names"`
	LBSNames   []string       `json:"lbs_names"`
	Network    map[string]int `json:"network"`
	ResultSets map[string]int `json:"results"`
}

// Session describes the current analysis session.
func (h *Handler) Session(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	s, ok := h.session(rw)
	if !ok {
		return
	}
	rw.r = r.WithContext(logging.ContextWithSessionID(r.Context(), s.ID()))

	info := SessionInfo{
		ID:                    s.ID(),
		ScenarioName:          s.ScenarioName(),
		LoadedAt:              s.LoadedAt(),
		GeneratorCapacityCost: string(s.GeneratorCapacityCost()),
		YearSample:            s.YearSample(),
		HourSample:            s.HourSample(),
		HourlyScale:           s.HourlyScale(),
		YearsBinding:          s.YearsBinding(),
		LineNames:             s.LineParams().LineNames(),
		LBSNames:              s.LBSParams().LBSNames(),
		Network:               s.Network().Summary(),
		ResultSets:            s.Results().Summary(),
	}
	if s.HasObjective() {
		v := s.ObjectiveFunctionValue()
		info.ObjectiveFunctionValue = &v
	}

	rw.Success(info)
}

// PerformanceReport is the payload of the performance endpoint.
type PerformanceReport struct {
	Routes []middleware.RouteStats    `json:"routes"`
	Recent []middleware.RequestSample `json:"recent"`
}

// Performance returns per-route latency statistics. The optional
// "recent" parameter bounds the number of raw samples (default 20).
func (h *Handler) Performance(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	if h.perfMon == nil {
		rw.ServiceUnavailable("performance monitoring is disabled")
		return
	}

	n := 20
	if v := r.URL.Query().Get("recent"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil || parsed < 0 {
			writeError(rw, &ParamError{Parameter: "recent", Message: "recent must be a non-negative integer"})
			return
		}
		n = parsed
	}

	rw.Success(PerformanceReport{
		Routes: h.perfMon.Stats(),
		Recent: h.perfMon.Recent(n),
	})
}
