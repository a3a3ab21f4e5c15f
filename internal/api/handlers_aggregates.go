// Gridlens - Energy System Model Results Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gridlens

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/tomtom215/gridlens/internal/analytics"
	"github.com/tomtom215/gridlens/internal/engine"
)

type aggregateMetric func(q *analytics.ConsumerQuery, sel analytics.Selector) (interface{}, error)

func resultMetric(fn func(*analytics.ConsumerQuery, analytics.Selector) (analytics.Result, error)) aggregateMetric {
	return func(q *analytics.ConsumerQuery, sel analytics.Selector) (interface{}, error) {
		return fn(q, sel)
	}
}

var aggregateMetrics = map[string]aggregateMetric{
	"fractions":                 resultMetric((*analytics.ConsumerQuery).GetFractions),
	"n-consumers":               resultMetric((*analytics.ConsumerQuery).GetNConsumers),
	"yearly-energy-usage":       resultMetric((*analytics.ConsumerQuery).GetYearlyEnergyUsage),
	"total-yearly-energy-usage": resultMetric((*analytics.ConsumerQuery).GetTotalYearlyEnergyUsage),
	"parameters": func(q *analytics.ConsumerQuery, sel analytics.Selector) (interface{}, error) {
		return q.GetAggregateParameters(sel)
	},
	"type-attachments": func(q *analytics.ConsumerQuery, sel analytics.Selector) (interface{}, error) {
		return q.GetAggregateElementsTypeAttachments(sel)
	},
}

// Aggregates serves /api/v1/aggregates/{metric}.
func (h *Handler) Aggregates(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "metric")
	metric, ok := aggregateMetrics[name]
	if !ok {
		writeError(NewResponseWriter(w, r), &UnknownMetricError{Group: "aggregate", Metric: name})
		return
	}
	namedQuery(h.consumers, w, r, name, func(s *engine.Session, req NamedRequest) (interface{}, error) {
		return metric(s.AggregatedConsumerParams(), req.Selector())
	})
}
