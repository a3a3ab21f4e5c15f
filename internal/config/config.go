// Gridlens - Energy System Model Results Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gridlens

package config

import (
	"time"
)

// Config is the full gridlens configuration. Load builds it once at
// startup and nothing mutates it afterwards, so it may be shared freely.
//
// Sections map to YAML keys and to environment variable families:
//
//	engine    GRIDLENS_*   network file, result directory, sampling
//	database  DUCKDB_*     reader memory and threads
//	server    HTTP_*, CORS_ORIGINS, RATE_LIMIT_*
//	cache     CACHE_*      response cache and its Badger tier
//	logging   LOG_*
type Config struct {
	Engine   EngineConfig   `koanf:"engine"`
	Database DatabaseConfig `koanf:"database"`
	Server   ServerConfig   `koanf:"server"`
	Cache    CacheConfig    `koanf:"cache"`
	Logging  LoggingConfig  `koanf:"logging"`
}

// EngineConfig describes one analysis session: the network definition,
// the result directory and the sampling used when the model was solved.
//
// Environment Variables:
//   - GRIDLENS_SOURCE_PATH: network definition JSON file (required)
//   - GRIDLENS_RESULT_PATH: result directory (required)
//   - GRIDLENS_RESULT_FORMAT: csv or parquet (default: csv)
//   - GRIDLENS_SCENARIO: scenario name (default: result directory name)
//   - GRIDLENS_YEAR_SAMPLE: comma-separated year positions (default: all years)
//   - GRIDLENS_HOUR_SAMPLE: comma-separated hour positions (default: all hours)
//   - GRIDLENS_DISCOUNT_RATE: comma-separated rates, one per year
//   - GRIDLENS_USE_HOURLY_SCALE: scale sampled hours to a full year (default: false)
//   - GRIDLENS_CAPACITY_COST: brutto or netto (default: brutto)
//   - GRIDLENS_N_YEARS_AGGREGATION: years represented by one solved year (default: 1)
type EngineConfig struct {
	SourcePath            string    `koanf:"source_path" validate:"required"`
	ResultPath            string    `koanf:"result_path" validate:"required"`
	ResultFormat          string    `koanf:"result_format" validate:"oneof=csv parquet"`
	ScenarioName          string    `koanf:"scenario_name"`
	YearSample            []int     `koanf:"year_sample" validate:"omitempty,ascending,dive,min=0"`
	HourSample            []int     `koanf:"hour_sample" validate:"omitempty,ascending,dive,min=0"`
	DiscountRate          []float64 `koanf:"discount_rate" validate:"omitempty,dive,finite"`
	UseHourlyScale        bool      `koanf:"use_hourly_scale"`
	GeneratorCapacityCost string    `koanf:"generator_capacity_cost"`
	NYearsAggregation     int       `koanf:"n_years_aggregation" validate:"min=1"`
}

// DatabaseConfig limits the in-memory DuckDB reader (DUCKDB_MAX_MEMORY,
// DUCKDB_THREADS). Nothing is ever written to disk.
type DatabaseConfig struct {
	MaxMemory string `koanf:"max_memory" validate:"bytesize"`
	Threads   int    `koanf:"threads" validate:"min=0"` // 0: one per CPU
}

// ServerConfig covers the listener, its timeouts and the middleware
// knobs. Variables: HTTP_HOST, HTTP_PORT (default 8618), HTTP_TIMEOUT,
// HTTP_SHUTDOWN_TIMEOUT, CORS_ORIGINS (comma-separated),
// RATE_LIMIT_REQUESTS, RATE_LIMIT_WINDOW and DISABLE_RATE_LIMIT.
type ServerConfig struct {
	Port              int           `koanf:"port"`
	Host              string        `koanf:"host"`
	Timeout           time.Duration `koanf:"timeout"`
	ShutdownTimeout   time.Duration `koanf:"shutdown_timeout"`
	CORSOrigins       []string      `koanf:"cors_origins"`
	RateLimitReqs     int           `koanf:"rate_limit_reqs"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`
}

// CacheConfig sizes the query response cache. Responses are keyed by
// session, so a reloaded session never serves stale entries.
//
// Environment Variables:
//   - CACHE_ENABLED: cache API responses (default: true)
//   - CACHE_CAPACITY: entries kept in memory (default: 1000)
//   - CACHE_TTL: entry lifetime (default: 10m)
//   - CACHE_DISK_PATH: Badger directory for a persistent tier (default: none)
//   - CACHE_CLEANUP_INTERVAL: expiry sweep and disk GC period (default: 5m)
type CacheConfig struct {
	Enabled         bool          `koanf:"enabled"`
	Capacity        int           `koanf:"capacity" validate:"min=1"`
	TTL             time.Duration `koanf:"ttl"`
	DiskPath        string        `koanf:"disk_path"`
	CleanupInterval time.Duration `koanf:"cleanup_interval"`
}

// LoggingConfig is read from LOG_LEVEL (trace..error, default info),
// LOG_FORMAT (json or console, default json) and LOG_CALLER.
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
	Caller bool   `koanf:"caller"` // add file:line to every event
}

// Load is LoadWithKoanf: defaults, then the YAML file named by CONFIG_PATH
// or found in DefaultConfigPaths, then the environment.
func Load() (*Config, error) {
	return LoadWithKoanf()
}
