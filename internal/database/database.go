// Gridlens - Energy System Model Results Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gridlens

package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/url"
	"runtime"
	"strconv"
	"time"

	_ "github.com/duckdb/duckdb-go/v2"

	"github.com/tomtom215/gridlens/internal/config"
	"github.com/tomtom215/gridlens/internal/logging"
)

// defaultQueryTimeout bounds reads whose context carries no deadline.
const defaultQueryTimeout = 30 * time.Second

var errClosed = errors.New("duckdb reader is closed")

// DB is an in-memory DuckDB instance whose only job is scanning result
// files with read_csv_auto and read_parquet.
type DB struct {
	conn *sql.DB
	cfg  *config.DatabaseConfig
}

// dsn builds the connection string for an in-memory instance. Extension
// auto-install stays off so startup never reaches the network.
func dsn(cfg *config.DatabaseConfig, threads int) string {
	q := url.Values{}
	q.Set("threads", strconv.Itoa(threads))
	if cfg.MaxMemory != "" {
		q.Set("max_memory", cfg.MaxMemory)
	}
	q.Set("autoinstall_known_extensions", "false")
	return ":memory:?" + q.Encode()
}

// New opens the reader and checks that DuckDB answers.
func New(cfg *config.DatabaseConfig) (*DB, error) {
	threads := cfg.Threads
	if threads <= 0 {
		threads = runtime.NumCPU()
	}

	conn, err := sql.Open("duckdb", dsn(cfg, threads))
	if err != nil {
		return nil, fmt.Errorf("open duckdb: %w", err)
	}
	// One connection per core is enough for parallel table scans.
	conn.SetMaxOpenConns(runtime.NumCPU())
	conn.SetMaxIdleConns(2)
	conn.SetConnMaxIdleTime(5 * time.Minute)
	conn.SetConnMaxLifetime(time.Hour)

	db := &DB{conn: conn, cfg: cfg}

	ctx, cancel := context.WithTimeout(context.Background(), defaultQueryTimeout)
	defer cancel()
	if err := db.Ping(ctx); err != nil {
		closeQuietly(conn)
		return nil, fmt.Errorf("ping duckdb: %w", err)
	}

	logging.Debug().
		Int("threads", threads).
		Str("max_memory", cfg.MaxMemory).
		Msg("DuckDB reader ready")
	return db, nil
}

// Conn exposes the pool for callers that need raw SQL.
func (db *DB) Conn() *sql.DB { return db.conn }

// Close releases the instance. Closing twice is a no-op.
func (db *DB) Close() error {
	if db.conn == nil {
		return nil
	}
	conn := db.conn
	db.conn = nil
	return conn.Close()
}

func (db *DB) Ping(ctx context.Context) error {
	if db.conn == nil {
		return errClosed
	}
	return db.conn.PingContext(ctx)
}

// ensureContext applies defaultQueryTimeout unless ctx already has a
// deadline.
func (db *DB) ensureContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if ctx == nil {
		ctx = context.Background()
	}
	if _, ok := ctx.Deadline(); ok {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, defaultQueryTimeout)
}
