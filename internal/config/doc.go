// Gridlens - Energy System Model Results Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gridlens

/*
Package config provides centralized configuration management for Gridlens.

Configuration is layered with Koanf v2: built-in defaults, then an optional
YAML file, then environment variables. The merged result is unmarshaled into
Config and validated before anything else starts.

# Configuration Structure

  - EngineConfig: the analysis session (network definition, result directory,
    year/hour samples, discount rate, capacity cost label)
  - DatabaseConfig: DuckDB memory and thread limits for reading result files
  - ServerConfig: HTTP server, CORS and rate limiting
  - CacheConfig: query response cache
  - LoggingConfig: zerolog level, format and caller reporting

# Environment Variables

Engine (EngineConfig):
  - GRIDLENS_SOURCE_PATH: network definition JSON (required)
  - GRIDLENS_RESULT_PATH: result directory (required)
  - GRIDLENS_RESULT_FORMAT: csv or parquet (default: csv)
  - GRIDLENS_SCENARIO: scenario name (default: result directory name)
  - GRIDLENS_YEAR_SAMPLE: comma-separated year positions, e.g. 0,1,2
  - GRIDLENS_HOUR_SAMPLE: comma-separated hour positions
  - GRIDLENS_DISCOUNT_RATE: comma-separated discount rates
  - GRIDLENS_USE_HOURLY_SCALE: scale sampled hours to a full year (default: false)
  - GRIDLENS_CAPACITY_COST: brutto or netto (default: brutto)
  - GRIDLENS_N_YEARS_AGGREGATION: years per solved year (default: 1)

Database (DatabaseConfig):
  - DUCKDB_MAX_MEMORY: Memory limit (default: 2GB)
  - DUCKDB_THREADS: Worker threads (default: NumCPU)

HTTP Server (ServerConfig):
  - HTTP_HOST: Bind address (default: 0.0.0.0)
  - HTTP_PORT: Listen port (default: 8618)
  - HTTP_TIMEOUT: Request timeout (default: 30s)
  - HTTP_SHUTDOWN_TIMEOUT: Graceful shutdown deadline (default: 10s)
  - CORS_ORIGINS: Comma-separated allowed origins (default: *)
  - RATE_LIMIT_REQUESTS: Requests per window (default: 100)
  - RATE_LIMIT_WINDOW: Window length (default: 1m)
  - DISABLE_RATE_LIMIT: Turn rate limiting off (default: false)

Cache (CacheConfig):
  - CACHE_ENABLED, CACHE_CAPACITY, CACHE_TTL, CACHE_DISK_PATH

Logging (LoggingConfig):
  - LOG_LEVEL, LOG_FORMAT, LOG_CALLER

# Usage Example

	cfg, err := config.Load()
	if err != nil {
	    log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{Level: cfg.Logging.Level, Format: cfg.Logging.Format})

# Thread Safety

Config is immutable after Load and safe for concurrent reads.
*/
package config
