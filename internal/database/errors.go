// Gridlens - Energy System Model Results Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gridlens

package database

import (
	"context"
	"io"

	"github.com/tomtom215/gridlens/internal/logging"
)

// closeWithLog releases a scan cursor or connection after a read has
// already produced its result. A close failure is logged on the request
// logger of ctx and swallowed.
func closeWithLog(ctx context.Context, c io.Closer, what string) {
	if c == nil {
		return
	}
	if err := c.Close(); err != nil {
		logging.Ctx(ctx).Warn().Str("type", what).Err(err).Msg("DuckDB resource close failed")
	}
}

// closeQuietly is for error paths where the original error is what the
// caller reports.
func closeQuietly(c io.Closer) {
	if c == nil {
		return
	}
	_ = c.Close() //nolint:errcheck
}
