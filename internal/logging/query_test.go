// Gridlens - Energy System Model Results Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gridlens

package logging

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

func newQueryBuffer(t *testing.T) (*QueryLogger, *bytes.Buffer) {
	t.Helper()
	var buf bytes.Buffer
	logger := zerolog.New(&buf).Level(zerolog.DebugLevel)
	return NewQueryLoggerWithLogger(logger, "sources"), &buf
}

func TestQueryLogger_Lifecycle(t *testing.T) {
	t.Cleanup(func() { SetLevelString("info") })
	SetLevelString("debug")

	q, buf := newQueryBuffer(t)
	ctx := ContextWithSessionID(context.Background(), "sess-1")

	q.Started(ctx, "costs", map[string]string{"level": "type"})
	q.Completed(ctx, "costs", 3, 12*time.Millisecond)

	out := buf.String()
	for _, want := range []string{
		`"component":"analytics"`,
		`"query":"sources"`,
		`"metric":"costs"`,
		`"level":"type"`,
		`"session_id":"sess-1"`,
		`"frames":3`,
		`"duration_ms":12`,
		"Query started",
		"Query completed",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %s in output, got: %s", want, out)
		}
	}
}

func TestQueryLogger_Failed(t *testing.T) {
	q, buf := newQueryBuffer(t)
	ctx := ContextWithRequestID(context.Background(), "req-9")

	q.Failed(ctx, "emission", errors.New("unknown generator"), true)
	if !strings.Contains(buf.String(), `"level":"warn"`) {
		t.Errorf("validation failure should log at warn, got: %s", buf.String())
	}

	buf.Reset()
	q.Failed(ctx, "emission", errors.New("boom"), false)
	out := buf.String()
	if !strings.Contains(out, `"level":"error"`) || !strings.Contains(out, `"request_id":"req-9"`) {
		t.Errorf("unexpected output: %s", out)
	}
}

func TestQueryLogger_CacheHit(t *testing.T) {
	t.Cleanup(func() { SetLevelString("info") })
	SetLevelString("debug")

	q, buf := newQueryBuffer(t)
	q.CacheHit(context.Background(), "flow", "sess:lines:flow")

	if !strings.Contains(buf.String(), `"cache_key":"sess:lines:flow"`) {
		t.Errorf("expected cache key, got: %s", buf.String())
	}
}
