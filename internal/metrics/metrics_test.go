// Gridlens - Energy System Model Results Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gridlens

package metrics

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	io_prometheus_client "github.com/prometheus/client_model/go"
)

// histogramCount returns how many observations a histogram has recorded.
func histogramCount(t *testing.T, h prometheus.Observer) uint64 {
	t.Helper()
	metric, ok := h.(prometheus.Metric)
	if !ok {
		t.Fatalf("observer %T is not a metric", h)
	}
	var m io_prometheus_client.Metric
	if err := metric.Write(&m); err != nil {
		t.Fatalf("failed to write metric: %v", err)
	}
	return m.GetHistogram().GetSampleCount()
}

// TestRecordTableRead tests result file read recording
func TestRecordTableRead(t *testing.T) {
	before := testutil.ToFloat64(TableReadErrors.WithLabelValues("parquet"))
	csvReads := histogramCount(t, TableReadDuration.WithLabelValues("csv"))

	RecordTableRead("csv", 3*time.Millisecond, nil)
	RecordTableRead("parquet", 8*time.Millisecond, errors.New("IO Error: No files found"))

	after := testutil.ToFloat64(TableReadErrors.WithLabelValues("parquet"))
	if after-before != 1 {
		t.Errorf("parquet read errors increased by %v, want 1", after-before)
	}
	if got := histogramCount(t, TableReadDuration.WithLabelValues("csv")) - csvReads; got != 1 {
		t.Errorf("csv read observations increased by %d, want 1", got)
	}
}

// TestRecordQuery tests analytics query recording and error classification
func TestRecordQuery(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		classify func(error) string
		wantType string
	}{
		{
			name:     "default classifier",
			err:      errors.New("boom"),
			wantType: "other",
		},
		{
			name:     "timeout",
			err:      fmt.Errorf("query: %w", context.DeadlineExceeded),
			classify: ErrorType,
			wantType: "timeout",
		},
		{
			name:     "custom classifier",
			err:      errors.New(`line "x" not found`),
			classify: func(error) string { return "lookup" },
			wantType: "lookup",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			counter := QueryErrors.WithLabelValues("sources", "generation-sum", tt.wantType)
			before := testutil.ToFloat64(counter)

			RecordQuery("sources", "generation-sum", time.Millisecond, tt.err, tt.classify)

			if got := testutil.ToFloat64(counter) - before; got != 1 {
				t.Errorf("%s errors increased by %v, want 1", tt.wantType, got)
			}
		})
	}

	t.Run("success records no error", func(t *testing.T) {
		counter := QueryErrors.WithLabelValues("lines", "flow", "other")
		before := testutil.ToFloat64(counter)
		RecordQuery("lines", "flow", time.Millisecond, nil, ErrorType)
		if got := testutil.ToFloat64(counter); got != before {
			t.Errorf("error counter changed from %v to %v", before, got)
		}
	})
}

// TestRecordAPIRequest tests API request metric recording
func TestRecordAPIRequest(t *testing.T) {
	tests := []struct {
		method     string
		endpoint   string
		statusCode string
		duration   time.Duration
	}{
		{"GET", "/api/v1/session", "200", 5 * time.Millisecond},
		{"GET", "/api/v1/sources/{metric}", "400", time.Millisecond},
		{"GET", "/api/v1/lines/flow", "404", 2 * time.Millisecond},
		{"GET", "/api/v1/lbs/capacity", "500", 3 * time.Second},
	}

	for _, tt := range tests {
		t.Run(tt.endpoint+"_"+tt.statusCode, func(t *testing.T) {
			counter := APIRequestsTotal.WithLabelValues(tt.method, tt.endpoint, tt.statusCode)
			before := testutil.ToFloat64(counter)
			RecordAPIRequest(tt.method, tt.endpoint, tt.statusCode, tt.duration)
			if got := testutil.ToFloat64(counter) - before; got != 1 {
				t.Errorf("request counter increased by %v, want 1", got)
			}
		})
	}
}

// TestTrackActiveRequest_RequestLifecycle tests the gauge returns to its start value
func TestTrackActiveRequest_RequestLifecycle(t *testing.T) {
	before := testutil.ToFloat64(APIActiveRequests)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			TrackActiveRequest(true)
			TrackActiveRequest(false)
		}()
	}
	wg.Wait()

	if got := testutil.ToFloat64(APIActiveRequests); got != before {
		t.Errorf("active requests = %v after lifecycle, want %v", got, before)
	}
}

func TestRecordCacheLookup(t *testing.T) {
	hits := testutil.ToFloat64(CacheHits.WithLabelValues("memory"))
	misses := testutil.ToFloat64(CacheMisses.WithLabelValues("disk"))

	RecordCacheLookup("memory", true)
	RecordCacheLookup("disk", false)

	if got := testutil.ToFloat64(CacheHits.WithLabelValues("memory")) - hits; got != 1 {
		t.Errorf("memory hits increased by %v, want 1", got)
	}
	if got := testutil.ToFloat64(CacheMisses.WithLabelValues("disk")) - misses; got != 1 {
		t.Errorf("disk misses increased by %v, want 1", got)
	}
}

func TestRecordSessionLoaded(t *testing.T) {
	RecordSessionLoaded(map[string]int{"generators_results": 12, "lines_results": 3})

	if got := testutil.ToFloat64(SessionTables.WithLabelValues("generators_results")); got != 12 {
		t.Errorf("generator tables = %v, want 12", got)
	}
	if testutil.ToFloat64(SessionLastLoad) <= 0 {
		t.Error("last load timestamp should be set")
	}
}

func TestRecordBuildInfo(t *testing.T) {
	RecordBuildInfo("v0.3.0")

	if got := testutil.ToFloat64(AppInfo.WithLabelValues("v0.3.0", runtime.Version())); got != 1 {
		t.Errorf("build_info = %v, want 1", got)
	}
	if testutil.ToFloat64(AppUptime) <= 0 {
		t.Error("uptime should be positive")
	}
}

// TestMetricsRegistration verifies all metrics are properly registered
func TestMetricsRegistration(t *testing.T) {
	collectors := []prometheus.Collector{
		TableReadDuration,
		TableReadErrors,
		SessionLoads,
		SessionLoadDuration,
		SessionTables,
		SessionLastLoad,
		QueryDuration,
		QueryErrors,
		APIRequestsTotal,
		APIRequestDuration,
		APIActiveRequests,
		APIRateLimitHits,
		CacheHits,
		CacheMisses,
		CacheSize,
		CacheEvictions,
		AppInfo,
		AppUptime,
	}

	for _, m := range collectors {
		ch := make(chan *prometheus.Desc, 10)
		m.Describe(ch)
		close(ch)

		count := 0
		for range ch {
			count++
		}
		if count == 0 {
			t.Errorf("Metric has no descriptors")
		}
	}
}

// TestMetricGathering tests that metrics can be gathered using testutil
func TestMetricGathering(t *testing.T) {
	RecordTableRead("csv", time.Millisecond, nil)
	RecordAPIRequest("GET", "/test", "200", time.Millisecond)

	problems, err := testutil.GatherAndLint(prometheus.DefaultGatherer)
	if err != nil {
		t.Logf("Lint errors (may be expected): %v", err)
	}
	for _, p := range problems {
		t.Logf("Metric lint problem: %s", p.Text)
	}
}
