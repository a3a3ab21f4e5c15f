// Gridlens - Energy System Model Results Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gridlens

package api

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/tomtom215/gridlens/internal/engine"
)

// namedQuery parses name/names/hourly and runs fn through exec.
func namedQuery(exec *QueryExecutor, w http.ResponseWriter, r *http.Request, metric string,
	fn func(s *engine.Session, req NamedRequest) (interface{}, error)) {
	req, err := parseNamedRequest(r.URL.Query())
	if err != nil {
		writeError(NewResponseWriter(w, r), err)
		return
	}

	params := map[string]string{paramHourly: strconv.FormatBool(req.Hourly)}
	switch {
	case req.Name != "":
		params[paramName] = req.Name
	case req.Names != nil:
		params[paramNames] = strings.Join(req.Names, ",")
	}

	exec.Execute(w, r, metric, params, func(_ context.Context, s *engine.Session) (interface{}, error) {
		return fn(s, req)
	})
}

// LineFlow serves /api/v1/lines/flow.
func (h *Handler) LineFlow(w http.ResponseWriter, r *http.Request) {
	namedQuery(h.lines, w, r, "flow", func(s *engine.Session, req NamedRequest) (interface{}, error) {
		return s.LineParams().GetFlow(req.Selector(), req.Hourly)
	})
}

// LineTransmissionFee serves /api/v1/lines/transmission-fee.
func (h *Handler) LineTransmissionFee(w http.ResponseWriter, r *http.Request) {
	namedQuery(h.lines, w, r, "transmission-fee", func(s *engine.Session, req NamedRequest) (interface{}, error) {
		return s.LineParams().GetTransmissionFee(req.Selector())
	})
}

// LineNames lists lines that have flow results.
func (h *Handler) LineNames(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	if s, ok := h.session(rw); ok {
		rw.Success(s.LineParams().LineNames())
	}
}
