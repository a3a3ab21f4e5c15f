// Gridlens - Energy System Model Results Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gridlens

package database

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tomtom215/gridlens/internal/logging"
)

type stubCursor struct {
	closes int
	err    error
}

func (c *stubCursor) Close() error {
	c.closes++
	return c.err
}

func capture() (context.Context, *bytes.Buffer) {
	var buf bytes.Buffer
	ctx := logging.ContextWithLogger(context.Background(), logging.NewTestLogger(&buf))
	return logging.ContextWithRequestID(ctx, "req-42"), &buf
}

func TestCloseWithLog_Silent(t *testing.T) {
	ctx, buf := capture()
	cur := &stubCursor{}

	closeWithLog(ctx, cur, "result rows")

	assert.Equal(t, 1, cur.closes)
	assert.Zero(t, buf.Len())
}

func TestCloseWithLog_ReportsFailure(t *testing.T) {
	ctx, buf := capture()
	cur := &stubCursor{err: errors.New("parquet reader: bad connection")}

	closeWithLog(ctx, cur, "result rows")

	out := buf.String()
	assert.Contains(t, out, "DuckDB resource close failed")
	assert.Contains(t, out, `"type":"result rows"`)
	assert.Contains(t, out, "bad connection")
	assert.Contains(t, out, `"request_id":"req-42"`)
}

func TestCloseWithLog_NilCloser(t *testing.T) {
	assert.NotPanics(t, func() { closeWithLog(context.Background(), nil, "conn") })
}

func TestCloseQuietly(t *testing.T) {
	assert.NotPanics(t, func() { closeQuietly(nil) })

	cur := &stubCursor{err: errors.New("boom")}
	closeQuietly(cur)
	assert.Equal(t, 1, cur.closes)
}
