// Gridlens - Energy System Model Results Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gridlens

package api

import (
	"context"
	"net/http"
	"sort"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/tomtom215/gridlens/internal/analytics"
	"github.com/tomtom215/gridlens/internal/engine"
	"github.com/tomtom215/gridlens/internal/frame"
)

// sourceMetric computes one source metric from a parsed request.
type sourceMetric func(q *analytics.SourceQuery, req SourceRequest) (*frame.Frame, error)

// sourceMetrics maps the {metric} path segment to its query. Parameters
// a metric does not take are ignored.
var sourceMetrics = map[string]sourceMetric{
	"generation-sum": func(q *analytics.SourceQuery, req SourceRequest) (*frame.Frame, error) {
		return q.GetGenerationSum(req.Options())
	},
	"dump-energy-sum": func(q *analytics.SourceQuery, req SourceRequest) (*frame.Frame, error) {
		return q.GetDumpEnergySum(req.Options())
	},
	"load-sum": func(q *analytics.SourceQuery, req SourceRequest) (*frame.Frame, error) {
		return q.GetLoadSum(req.Options())
	},
	"installed-capacity": func(q *analytics.SourceQuery, req SourceRequest) (*frame.Frame, error) {
		return q.GetInstalledCapacity(analytics.Level(req.Level), req.Filter())
	},
	"generation-demand": func(q *analytics.SourceQuery, req SourceRequest) (*frame.Frame, error) {
		return q.GetGenerationDemand(req.Options())
	},
	"fuel-usage": func(q *analytics.SourceQuery, req SourceRequest) (*frame.Frame, error) {
		return q.GetFuelUsage(req.Options())
	},
	"fuel-cost": func(q *analytics.SourceQuery, req SourceRequest) (*frame.Frame, error) {
		return q.GetFuelCost(analytics.Level(req.Level), req.Filter())
	},
	"emission": func(q *analytics.SourceQuery, req SourceRequest) (*frame.Frame, error) {
		return q.GetEmission(req.Options())
	},
	// filter_names restricts the reported generators or types here.
	"emission-fee-total-cost": func(q *analytics.SourceQuery, req SourceRequest) (*frame.Frame, error) {
		return q.GetEmissionFeeTotalCost(analytics.Level(req.Level), req.FilterNames)
	},
	"state-of-charge": func(q *analytics.SourceQuery, req SourceRequest) (*frame.Frame, error) {
		return q.GetStateOfCharge(req.Options())
	},
	"ens": func(q *analytics.SourceQuery, req SourceRequest) (*frame.Frame, error) {
		return q.GetENS(req.Filter(), req.Hourly)
	},
	"local-capex-opex": func(q *analytics.SourceQuery, req SourceRequest) (*frame.Frame, error) {
		return q.GetLocalCapexOpex(req.Filter())
	},
	"global-capex-opex": func(q *analytics.SourceQuery, req SourceRequest) (*frame.Frame, error) {
		return q.GetGlobalCapexOpex(analytics.Level(req.Level))
	},
	// The network-* metrics read filter_names as generator type or fuel names.
	"network-costs-per-tech-type": func(q *analytics.SourceQuery, req SourceRequest) (*frame.Frame, error) {
		return q.GetNetworkCostsPerTechType(req.FilterNames)
	},
	"network-fuel-cost": func(q *analytics.SourceQuery, req SourceRequest) (*frame.Frame, error) {
		return q.GetNetworkFuelCost(req.FilterNames)
	},
	"network-fuel-availability": func(q *analytics.SourceQuery, req SourceRequest) (*frame.Frame, error) {
		return q.GetNetworkFuelAvailability(req.FilterNames)
	},
}

// SourceMetricNames lists the served source metrics in order.
func SourceMetricNames() []string {
	names := make([]string, 0, len(sourceMetrics))
	for n := range sourceMetrics {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Sources serves /api/v1/sources/{metric}.
func (h *Handler) Sources(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "metric")
	metric, ok := sourceMetrics[name]
	if !ok {
		writeError(NewResponseWriter(w, r), &UnknownMetricError{Group: "source", Metric: name})
		return
	}

	req, err := parseSourceRequest(r.URL.Query())
	if err != nil {
		writeError(NewResponseWriter(w, r), err)
		return
	}

	params := map[string]string{
		paramLevel:      req.Level,
		paramFilterType: req.FilterType,
		paramHourly:     strconv.FormatBool(req.Hourly),
	}
	if req.FilterNames != nil {
		params[paramFilterNames] = strings.Join(req.FilterNames, ",")
	}

	h.sources.Execute(w, r, name, params,
		func(_ context.Context, s *engine.Session) (interface{}, error) {
			return metric(s.SourceParams(), req)
		})
}

// SourceMetrics lists the metric names /api/v1/sources/{metric} accepts.
func (h *Handler) SourceMetrics(w http.ResponseWriter, r *http.Request) {
	NewResponseWriter(w, r).Success(SourceMetricNames())
}
