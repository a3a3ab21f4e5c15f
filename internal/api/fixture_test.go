// Gridlens - Energy System Model Results Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gridlens

package api

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/require"

	"github.com/tomtom215/gridlens/internal/analytics"
	"github.com/tomtom215/gridlens/internal/cache"
	"github.com/tomtom215/gridlens/internal/engine"
	"github.com/tomtom215/gridlens/internal/frame"
	"github.com/tomtom215/gridlens/internal/middleware"
	"github.com/tomtom215/gridlens/internal/network"
	"github.com/tomtom215/gridlens/internal/results"
)

const testLine = "b1->lbs_el"

func yearColumns(n int) []frame.Label {
	labels := make([]frame.Label, n)
	for i := range labels {
		labels[i] = frame.Int(i)
	}
	return labels
}

// hoursByYear builds an hour x year table; rows[h][y].
func hoursByYear(rows ...[]float64) *frame.Frame {
	f := frame.New([]string{analytics.HourLabel}, "", yearColumns(len(rows[0])))
	for h, r := range rows {
		f.AddRow(frame.K(h), r)
	}
	return f
}

func perEnergyType(et string, rows ...[]float64) *frame.Frame {
	f := frame.New([]string{analytics.HourLabel, analytics.EnergyTypeLabel}, "", yearColumns(len(rows[0])))
	for h, r := range rows {
		f.AddRow(frame.K(h, et), r)
	}
	return f
}

// byYear builds a year x name table with a single column.
func byYear(column string, values ...float64) *frame.Frame {
	f := frame.New([]string{analytics.YearLabel}, "", []frame.Label{frame.Str(column)})
	for y, v := range values {
		f.AddRow(frame.K(y), []float64{v})
	}
	return f
}

func testNetwork(t *testing.T) *network.Model {
	t.Helper()
	m, err := network.NewModel(network.Definition{
		Constants: network.Constants{NHours: 2, NYears: 2},
		Buses: map[string]*network.Bus{
			"b1":     {EnergyType: "ELECTRICITY"},
			"lbs_el": {EnergyType: "ELECTRICITY"},
		},
		Generators: map[string]*network.Generator{
			"g1": {EnergySourceType: "GT", Buses: []string{"b1"}},
		},
		Lines: map[string]*network.Line{
			testLine: {FromBus: "b1", ToBus: "lbs_el", EnergyType: "ELECTRICITY"},
		},
		LocalBalancingStacks: map[string]*network.LocalBalancingStack{
			"lbs1": {
				BusesOut: map[string]string{"ELECTRICITY": "lbs_el"},
				Buses:    map[string][]string{"ELECTRICITY": {"lbs_el"}},
			},
		},
		AggregatedConsumers: map[string]*network.AggregatedConsumer{
			"aggr1": {
				StackBaseFraction: map[string]float64{"lbs1": 1},
				AvailableStacks:   []string{"lbs1"},
				NConsumers:        []float64{10, 20},
				YearlyEnergyUsage: map[string][]float64{"ELECTRICITY": {1, 1}},
			},
		},
		GeneratorTypes: map[string]*network.GeneratorType{
			"GT": {Capex: []float64{1, 1}, Opex: []float64{1, 1}},
		},
	})
	require.NoError(t, err)
	return m
}

func testResults() *results.Set {
	s := results.NewSet()
	s.Generators.Put(results.CategoryGeneration, "g1", hoursByYear([]float64{1, 2}, []float64{3, 4}))
	s.Generators.Put(results.CategoryGenerationPerEnergyType, "g1", perEnergyType("ELECTRICITY", []float64{1, 2}, []float64{3, 4}))
	s.Generators.Put(results.CategoryCapacity, results.CategoryCapacity, byYear("g1", 10, 10))
	s.Lines.Put(results.CategoryFlow, testLine, hoursByYear([]float64{1, 2}, []float64{2, 2}))
	s.Fractions.Put(results.CategoryFraction, "aggr1", byYear("lbs1", 0.5, 0.5))
	return s
}

func testSession(t *testing.T) *engine.Session {
	t.Helper()
	s, err := engine.NewFromData(engine.Options{
		ScenarioName:          "test",
		ResultFormat:          results.FormatCSV,
		GeneratorCapacityCost: "brutto",
		NYearsAggregation:     1,
	}, testNetwork(t), testResults(), 12.5)
	require.NoError(t, err)
	return s
}

type testServer struct {
	holder  *engine.Holder
	cache   *cache.LRUCache
	handler http.Handler
}

// newTestServer serves a loaded session with an in-memory cache and
// rate limiting disabled.
func newTestServer(t *testing.T, loaded bool) *testServer {
	t.Helper()
	holder := &engine.Holder{}
	if loaded {
		holder.Store(testSession(t))
	}
	lru := cache.NewLRUCache(100, 0)

	cfg := DefaultChiMiddlewareConfig()
	cfg.RateLimitDisabled = true

	h := NewHandler(HandlerDeps{
		Holder:      holder,
		Cache:       lru,
		Performance: middleware.NewPerformanceMonitor(100, 0),
	})
	return &testServer{
		holder:  holder,
		cache:   lru,
		handler: NewRouter(h, cfg).SetupChi(),
	}
}

func (s *testServer) get(t *testing.T, target string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	return serve(t, s.handler, target)
}

func serve(t *testing.T, h http.Handler, target string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	var env envelope
	if rec.Header().Get("Content-Type") == "application/json; charset=utf-8" {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env), rec.Body.String())
	}
	return rec, env
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *APIError       `json:"error"`
	Meta    *APIMeta        `json:"meta"`
}

type frameDoc struct {
	IndexNames []string        `json:"index_names"`
	ColumnName string          `json:"column_name"`
	Columns    []interface{}   `json:"columns"`
	Index      [][]interface{} `json:"index"`
	Data       [][]*float64    `json:"data"`
}

func decodeFrame(t *testing.T, raw json.RawMessage) frameDoc {
	t.Helper()
	var f frameDoc
	require.NoError(t, json.Unmarshal(raw, &f))
	return f
}

func decodeFrames(t *testing.T, raw json.RawMessage) map[string]frameDoc {
	t.Helper()
	var m map[string]frameDoc
	require.NoError(t, json.Unmarshal(raw, &m))
	return m
}

// column returns the values of column j, which must have no null cells.
func (f frameDoc) column(t *testing.T, j int) []float64 {
	t.Helper()
	out := make([]float64, len(f.Data))
	for i, row := range f.Data {
		require.Greater(t, len(row), j)
		require.NotNil(t, row[j], "cell %d/%d is null", i, j)
		out[i] = *row[j]
	}
	return out
}
