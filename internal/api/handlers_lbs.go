// Gridlens - Energy System Model Results Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gridlens

package api

import (
	"net/http"

	"github.com/tomtom215/gridlens/internal/engine"
)

// LBSFraction serves /api/v1/lbs/fraction.
func (h *Handler) LBSFraction(w http.ResponseWriter, r *http.Request) {
	namedQuery(h.lbs, w, r, "fraction", func(s *engine.Session, req NamedRequest) (interface{}, error) {
		return s.LBSParams().GetLBSFraction(req.Selector())
	})
}

// LBSCapacity serves /api/v1/lbs/capacity.
func (h *Handler) LBSCapacity(w http.ResponseWriter, r *http.Request) {
	namedQuery(h.lbs, w, r, "capacity", func(s *engine.Session, req NamedRequest) (interface{}, error) {
		return s.LBSParams().GetLBSCapacity(req.Selector())
	})
}

// LBSNames lists stacks that have fraction results.
func (h *Handler) LBSNames(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	if s, ok := h.session(rw); ok {
		rw.Success(s.LBSParams().LBSNames())
	}
}
