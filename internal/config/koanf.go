// Gridlens - Energy System Model Results Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gridlens

package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// DefaultConfigPaths are tried in order when CONFIG_PATH is unset or missing.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/gridlens/config.yaml",
	"/etc/gridlens/config.yml",
}

const ConfigPathEnvVar = "CONFIG_PATH"

// defaultConfig is the bottom layer of LoadWithKoanf.
func defaultConfig() *Config {
	return &Config{
		Engine: EngineConfig{
			ResultFormat:          "csv",
			GeneratorCapacityCost: "brutto",
			NYearsAggregation:     1,
		},
		Database: DatabaseConfig{MaxMemory: "2GB"},
		Server: ServerConfig{
			Port:            8618,
			Host:            "0.0.0.0",
			Timeout:         30 * time.Second,
			ShutdownTimeout: 10 * time.Second,
			CORSOrigins:     []string{"*"},
			RateLimitReqs:   100,
			RateLimitWindow: time.Minute,
		},
		Cache: CacheConfig{
			Enabled:         true,
			Capacity:        1000,
			TTL:             10 * time.Minute,
			CleanupInterval: 5 * time.Minute,
		},
		Logging: LoggingConfig{Level: "info", Format: "json"},
	}
}

// LoadWithKoanf merges three layers, later ones winning: the built-in
// defaults, an optional YAML file, then the mapped environment variables.
// The merged result is validated before it is returned.
func LoadWithKoanf() (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}
	if path := findConfigFile(); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", path, err)
		}
	}
	if err := k.Load(env.ProviderWithValue("", ".", envValue), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return cfg, nil
}

// findConfigFile returns CONFIG_PATH when it exists, else the first of
// DefaultConfigPaths that exists, else "".
func findConfigFile() string {
	candidates := DefaultConfigPaths
	if p := os.Getenv(ConfigPathEnvVar); p != "" {
		candidates = append([]string{p}, DefaultConfigPaths...)
	}
	for _, p := range candidates {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}

// listKeys are set from comma-separated environment values. YAML gives
// them as lists. Numeric lists are converted element-wise by Unmarshal.
var listKeys = map[string]bool{
	"engine.year_sample":   true,
	"engine.hour_sample":   true,
	"engine.discount_rate": true,
	"server.cors_origins":  true,
}

// envValue maps an environment variable onto its koanf path and splits
// list values. Unmapped variables are skipped.
func envValue(key, value string) (string, interface{}) {
	path := envTransformFunc(key)
	if path == "" || !listKeys[path] {
		return path, value
	}
	var items []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return path, items
}

// envMappings is keyed by lowercased variable name.
var envMappings = map[string]string{
	"gridlens_source_path":         "engine.source_path",
	"gridlens_result_path":         "engine.result_path",
	"gridlens_result_format":       "engine.result_format",
	"gridlens_scenario":            "engine.scenario_name",
	"gridlens_year_sample":         "engine.year_sample",
	"gridlens_hour_sample":         "engine.hour_sample",
	"gridlens_discount_rate":       "engine.discount_rate",
	"gridlens_use_hourly_scale":    "engine.use_hourly_scale",
	"gridlens_capacity_cost":       "engine.generator_capacity_cost",
	"gridlens_n_years_aggregation": "engine.n_years_aggregation",

	"duckdb_max_memory": "database.max_memory",
	"duckdb_threads":    "database.threads",

	"http_port":             "server.port",
	"http_host":             "server.host",
	"http_timeout":          "server.timeout",
	"http_shutdown_timeout": "server.shutdown_timeout",
	"cors_origins":          "server.cors_origins",
	"rate_limit_requests":   "server.rate_limit_reqs",
	"rate_limit_window":     "server.rate_limit_window",
	"disable_rate_limit":    "server.rate_limit_disabled",

	"cache_enabled":          "cache.enabled",
	"cache_capacity":         "cache.capacity",
	"cache_ttl":              "cache.ttl",
	"cache_disk_path":        "cache.disk_path",
	"cache_cleanup_interval": "cache.cleanup_interval",

	"log_level":  "logging.level",
	"log_format": "logging.format",
	"log_caller": "logging.caller",
}

// envTransformFunc returns the koanf path for an environment variable,
// e.g. GRIDLENS_CAPACITY_COST -> engine.generator_capacity_cost, or "" for
// variables gridlens does not read.
func envTransformFunc(key string) string {
	return envMappings[strings.ToLower(key)]
}
