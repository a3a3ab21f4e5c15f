// Gridlens - Energy System Model Results Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gridlens

package config

import (
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/tomtom215/gridlens/internal/validation"
)

// Rate limit bounds, enforced only while rate limiting is on.
const (
	minRateLimitRequests = 1
	maxRateLimitRequests = 100000
	minRateLimitWindow   = time.Second
	maxRateLimitWindow   = time.Hour
)

var (
	resultFormats = []string{"csv", "parquet"}
	logLevels     = []string{"trace", "debug", "info", "warn", "error"}
	logFormats    = []string{"json", "console"}
)

// Validate reports the first problem found, named after the environment
// variable that sets it. Sections are checked in declaration order.
func (c *Config) Validate() error {
	for _, check := range []func() error{
		c.validateEngine,
		c.validateDatabase,
		c.validateServer,
		c.validateCache,
		c.validateLogging,
	} {
		if err := check(); err != nil {
			return err
		}
	}
	return nil
}

// validateEngine covers paths and sample arrays. The capacity cost label
// is left to the engine so config files and reloads report it the same way.
func (c *Config) validateEngine() error {
	e := &c.Engine
	switch {
	case e.SourcePath == "":
		return errors.New("GRIDLENS_SOURCE_PATH is required")
	case e.ResultPath == "":
		return errors.New("GRIDLENS_RESULT_PATH is required")
	case !slices.Contains(resultFormats, e.ResultFormat):
		return errors.New("GRIDLENS_RESULT_FORMAT must be one of: csv, parquet")
	case e.NYearsAggregation < 1:
		return errors.New("GRIDLENS_N_YEARS_AGGREGATION must be at least 1")
	}
	if verr := validation.ValidateStruct(e); verr != nil {
		return fmt.Errorf("engine configuration is invalid: %w", verr)
	}
	return nil
}

func (c *Config) validateDatabase() error {
	if verr := validation.ValidateStruct(&c.Database); verr != nil {
		return fmt.Errorf("DUCKDB_MAX_MEMORY or DUCKDB_THREADS is invalid: %w", verr)
	}
	return nil
}

func (c *Config) validateServer() error {
	s := &c.Server
	if s.Port < 1 || s.Port > 65535 {
		return errors.New("HTTP_PORT must be between 1 and 65535")
	}
	if s.Timeout <= 0 {
		return errors.New("HTTP_TIMEOUT must be positive")
	}
	if s.RateLimitDisabled {
		return nil
	}
	if s.RateLimitReqs < minRateLimitRequests || s.RateLimitReqs > maxRateLimitRequests {
		return fmt.Errorf("RATE_LIMIT_REQUESTS must be between %d and %d",
			minRateLimitRequests, maxRateLimitRequests)
	}
	if s.RateLimitWindow < minRateLimitWindow || s.RateLimitWindow > maxRateLimitWindow {
		return fmt.Errorf("RATE_LIMIT_WINDOW must be between %v and %v",
			minRateLimitWindow, maxRateLimitWindow)
	}
	return nil
}

// validateCache ignores sizing while the cache is off.
func (c *Config) validateCache() error {
	if !c.Cache.Enabled {
		return nil
	}
	if c.Cache.Capacity < 1 {
		return errors.New("CACHE_CAPACITY must be at least 1 when CACHE_ENABLED=true")
	}
	if c.Cache.TTL <= 0 {
		return errors.New("CACHE_TTL must be positive when CACHE_ENABLED=true")
	}
	return nil
}

// validateLogging accepts an empty format, which the logger treats as json.
func (c *Config) validateLogging() error {
	if !slices.Contains(logLevels, c.Logging.Level) {
		return errors.New("LOG_LEVEL must be one of: trace, debug, info, warn, error")
	}
	if c.Logging.Format != "" && !slices.Contains(logFormats, c.Logging.Format) {
		return errors.New("LOG_FORMAT must be one of: json, console")
	}
	return nil
}
