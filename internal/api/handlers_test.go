// Gridlens - Energy System Model Results Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gridlens

package api

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tomtom215/gridlens/internal/analytics"
	"github.com/tomtom215/gridlens/internal/engine"
)

func TestHealthLive(t *testing.T) {
	srv := newTestServer(t, false)

	rec, env := srv.get(t, "/api/v1/health/live")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, env.Success)
	assert.Contains(t, string(env.Data), `"alive":true`)
}

func TestHealthReady(t *testing.T) {
	t.Run("no session", func(t *testing.T) {
		srv := newTestServer(t, false)
		rec, env := srv.get(t, "/api/v1/health/ready")
		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
		assert.False(t, env.Success)
		require.NotNil(t, env.Error)
		assert.Equal(t, ErrCodeServiceUnavailable, env.Error.Code)
	})

	t.Run("loaded", func(t *testing.T) {
		srv := newTestServer(t, true)
		rec, env := srv.get(t, "/api/v1/health/ready")
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, string(env.Data), srv.holder.Load().ID())
	})
}

func TestHealth(t *testing.T) {
	srv := newTestServer(t, false)
	_, env := srv.get(t, "/api/v1/health/")

	var status HealthStatus
	require.NoError(t, json.Unmarshal(env.Data, &status))
	assert.Equal(t, "degraded", status.Status)
	assert.False(t, status.SessionLoaded)

	srv.holder.Store(testSession(t))
	_, env = srv.get(t, "/api/v1/health/")
	require.NoError(t, json.Unmarshal(env.Data, &status))
	assert.Equal(t, "healthy", status.Status)
	assert.True(t, status.SessionLoaded)
	assert.NotNil(t, status.SessionLoadedAt)
}

func TestSession(t *testing.T) {
	srv := newTestServer(t, true)

	rec, env := srv.get(t, "/api/v1/session")
	require.Equal(t, http.StatusOK, rec.Code)

	var info SessionInfo
	require.NoError(t, json.Unmarshal(env.Data, &info))
	assert.Equal(t, "test", info.ScenarioName)
	assert.Equal(t, "brutto", info.GeneratorCapacityCost)
	require.NotNil(t, info.ObjectiveFunctionValue)
	assert.Equal(t, 12.5, *info.ObjectiveFunctionValue)
	assert.Equal(t, []int{0, 1}, info.YearSample)
	assert.Equal(t, []int{0, 1}, info.HourSample)
	assert.Equal(t, 1.0, info.HourlyScale)
	assert.Equal(t, []string{testLine}, info.LineNames)
	assert.Equal(t, []string{"lbs1"}, info.LBSNames)
	assert.Equal(t, 1, info.Network["generators"])
	assert.Equal(t, info.ID, env.Meta.SessionID)
}

func TestSession_NotLoaded(t *testing.T) {
	srv := newTestServer(t, false)
	rec, env := srv.get(t, "/api/v1/session")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Equal(t, ErrCodeServiceUnavailable, env.Error.Code)
}

func TestSources_GenerationSum(t *testing.T) {
	srv := newTestServer(t, true)

	rec, env := srv.get(t, "/api/v1/sources/generation-sum")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	f := decodeFrame(t, env.Data)
	assert.Equal(t, []string{analytics.NetworkElementNameLabel, analytics.YearLabel}, f.IndexNames)
	assert.Equal(t, analytics.EnergyTypeLabel, f.ColumnName)
	assert.Equal(t, []interface{}{"ELECTRICITY"}, f.Columns)
	assert.Equal(t, []float64{4, 6}, f.column(t, 0))
}

func TestSources_TypeLevel(t *testing.T) {
	srv := newTestServer(t, true)

	rec, env := srv.get(t, "/api/v1/sources/generation-sum?level=type")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	f := decodeFrame(t, env.Data)
	assert.Equal(t, []string{analytics.NetworkElementTypeLabel, analytics.YearLabel}, f.IndexNames)
	require.Len(t, f.Index, 2)
	assert.Equal(t, "GT", f.Index[0][0])
}

func TestSources_Validation(t *testing.T) {
	srv := newTestServer(t, true)

	tests := []struct {
		name    string
		query   string
		message string
	}{
		{"unknown level", "level=bus", "Level must be one of"},
		{"unknown filter type", "filter_type=region", "FilterType must be one of"},
		{"bad hourly flag", "hourly=sometimes", "hourly must be a boolean"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, env := srv.get(t, "/api/v1/sources/generation-sum?"+tt.query)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			require.NotNil(t, env.Error)
			assert.Equal(t, ErrCodeValidationError, env.Error.Code)
			assert.Contains(t, env.Error.Message, tt.message)
		})
	}
}

func TestSources_UnknownMetric(t *testing.T) {
	srv := newTestServer(t, true)

	rec, env := srv.get(t, "/api/v1/sources/sunshine")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, ErrCodeNotFound, env.Error.Code)
	assert.Equal(t, "unknown source metric: sunshine", env.Error.Message)
}

func TestSources_ListsMetrics(t *testing.T) {
	srv := newTestServer(t, true)

	_, env := srv.get(t, "/api/v1/sources/")
	var names []string
	require.NoError(t, json.Unmarshal(env.Data, &names))
	assert.Len(t, names, 16)
	assert.Contains(t, names, "network-fuel-availability")
	assert.IsIncreasing(t, names)
}

func TestSources_PostHocFilter(t *testing.T) {
	srv := newTestServer(t, true)

	_, env := srv.get(t, "/api/v1/sources/generation-sum?filter_names=nobody")
	f := decodeFrame(t, env.Data)
	assert.Empty(t, f.Data)
}

func TestLineFlow(t *testing.T) {
	srv := newTestServer(t, true)
	q := url.Values{"name": {testLine}}

	rec, env := srv.get(t, "/api/v1/lines/flow?"+q.Encode())
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	f := decodeFrame(t, env.Data)
	assert.Equal(t, []string{analytics.YearLabel}, f.IndexNames)
	assert.Equal(t, []interface{}{analytics.TotalEnergyVolumeColumn}, f.Columns)
	assert.Equal(t, []float64{3, 4}, f.column(t, 0))
}

func TestLineFlow_All(t *testing.T) {
	srv := newTestServer(t, true)

	rec, env := srv.get(t, "/api/v1/lines/flow?hourly=true")
	require.Equal(t, http.StatusOK, rec.Code)

	frames := decodeFrames(t, env.Data)
	require.Contains(t, frames, testLine)
	assert.Equal(t, []string{analytics.YearLabel, analytics.HourLabel}, frames[testLine].IndexNames)
}

func TestLineFlow_NameAndNames(t *testing.T) {
	srv := newTestServer(t, true)

	rec, env := srv.get(t, "/api/v1/lines/flow?name=a&names=b")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, ErrCodeValidationError, env.Error.Code)
}

func TestLineTransmissionFee_FreeLine(t *testing.T) {
	srv := newTestServer(t, true)
	q := url.Values{"names": {testLine}}

	rec, env := srv.get(t, "/api/v1/lines/transmission-fee?"+q.Encode())
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Contains(t, decodeFrames(t, env.Data), testLine)
}

func TestLBS_UnknownStack(t *testing.T) {
	srv := newTestServer(t, true)

	rec, env := srv.get(t, "/api/v1/lbs/capacity?name=nowhere")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, env.Error.Message, "local balancing stack")
}

func TestLBS_Fraction(t *testing.T) {
	srv := newTestServer(t, true)

	rec, env := srv.get(t, "/api/v1/lbs/fraction?name=lbs1")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	f := decodeFrame(t, env.Data)
	assert.Equal(t, []interface{}{"aggr1"}, f.Columns)
	assert.Equal(t, []float64{0.5, 0.5}, f.column(t, 0))
}

func TestAggregates(t *testing.T) {
	srv := newTestServer(t, true)

	rec, env := srv.get(t, "/api/v1/aggregates/n-consumers?name=aggr1")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, []float64{10, 20}, decodeFrame(t, env.Data).column(t, 0))

	rec, env = srv.get(t, "/api/v1/aggregates/parameters")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, analytics.AggregateNameLabel, decodeFrame(t, env.Data).IndexNames[0])

	rec, env = srv.get(t, "/api/v1/aggregates/happiness")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "unknown aggregate metric: happiness", env.Error.Message)
}

func TestQueryCache(t *testing.T) {
	srv := newTestServer(t, true)
	target := "/api/v1/sources/generation-sum?level=element&hourly=false"

	_, first := srv.get(t, target)
	require.True(t, first.Success)
	assert.False(t, first.Meta.Cached)
	assert.Equal(t, 1, srv.cache.Len())

	_, second := srv.get(t, target)
	assert.True(t, second.Meta.Cached)
	assert.JSONEq(t, string(first.Data), string(second.Data))

	_, reordered := srv.get(t, "/api/v1/sources/generation-sum?hourly=false&level=element")
	assert.True(t, reordered.Meta.Cached, "parameter order does not change the key")
	assert.Equal(t, 1, srv.cache.Len())

	_, other := srv.get(t, "/api/v1/sources/generation-sum?level=type")
	assert.False(t, other.Meta.Cached)
	assert.Equal(t, 2, srv.cache.Len())

	srv.holder.Store(testSession(t))
	_, reloaded := srv.get(t, target)
	assert.False(t, reloaded.Meta.Cached, "a new session never reuses cached answers")
}

func TestQueryCache_ErrorsAreNotCached(t *testing.T) {
	srv := newTestServer(t, true)

	srv.get(t, "/api/v1/lbs/capacity?name=nowhere")
	assert.Equal(t, 0, srv.cache.Len())
}

func TestRequestIDEchoed(t *testing.T) {
	srv := newTestServer(t, true)

	req, err := http.NewRequest(http.MethodGet, "/api/v1/session", nil)
	require.NoError(t, err)
	req.Header.Set("X-Request-ID", "req-123")
	rec := httptest.NewRecorder()
	srv.handler.ServeHTTP(rec, req)

	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	assert.Equal(t, "req-123", rec.Header().Get("X-Request-ID"))
	assert.Equal(t, "req-123", env.Meta.RequestID)
}

func TestSecurityHeaders(t *testing.T) {
	srv := newTestServer(t, true)

	rec, _ := srv.get(t, "/api/v1/session")
	assert.Equal(t, "nosniff", rec.Header().Get("X-Content-Type-Options"))
	assert.Equal(t, "DENY", rec.Header().Get("X-Frame-Options"))
}

func TestUnknownRoute(t *testing.T) {
	srv := newTestServer(t, true)

	rec, env := srv.get(t, "/api/v2/anything")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, ErrCodeNotFound, env.Error.Code)
}

func TestMethodNotAllowed(t *testing.T) {
	srv := newTestServer(t, true)

	req, err := http.NewRequest(http.MethodPost, "/api/v1/session", strings.NewReader("{}"))
	require.NoError(t, err)
	rec := httptest.NewRecorder()
	srv.handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestPerformance(t *testing.T) {
	srv := newTestServer(t, true)
	srv.get(t, "/api/v1/session")
	srv.get(t, "/api/v1/session")

	rec, env := srv.get(t, "/api/v1/performance?recent=1")
	require.Equal(t, http.StatusOK, rec.Code)

	var report PerformanceReport
	require.NoError(t, json.Unmarshal(env.Data, &report))
	require.NotEmpty(t, report.Routes)
	assert.Equal(t, "/api/v1/session", report.Routes[0].Route)
	assert.Len(t, report.Recent, 1)

	rec, _ = srv.get(t, "/api/v1/performance?recent=-1")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestMetricsEndpoint(t *testing.T) {
	srv := newTestServer(t, true)
	srv.get(t, "/api/v1/session")

	rec, _ := srv.get(t, "/metrics")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "api_requests_total")
}

func TestQueryWithoutCache(t *testing.T) {
	holder := &engine.Holder{}
	holder.Store(testSession(t))
	router := NewRouter(NewHandler(HandlerDeps{Holder: holder}), &ChiMiddlewareConfig{RateLimitDisabled: true}).SetupChi()

	for i := 0; i < 2; i++ {
		rec, env := serve(t, router, "/api/v1/aggregates/fractions?name=aggr1")
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		assert.False(t, env.Meta.Cached)
	}
}
