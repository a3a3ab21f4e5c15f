// Gridlens - Energy System Model Results Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gridlens

package main

import (
	"fmt"

	"github.com/tomtom215/gridlens/internal/cache"
	"github.com/tomtom215/gridlens/internal/config"
	"github.com/tomtom215/gridlens/internal/logging"
	"github.com/tomtom215/gridlens/internal/supervisor"
	"github.com/tomtom215/gridlens/internal/supervisor/services"
)

// responseCache holds the cache tiers built from configuration. store is a
// nil interface when caching is disabled so the API skips cache lookups.
type responseCache struct {
	store  cache.Store
	memory *cache.LRUCache
	disk   *cache.DiskStore
}

// initCache builds the memory tier and, when a disk path is configured, the
// Badger tier behind it.
func initCache(cfg *config.CacheConfig) (*responseCache, error) {
	if !cfg.Enabled {
		logging.Info().Msg("Response cache disabled")
		return &responseCache{}, nil
	}

	rc := &responseCache{memory: cache.NewLRUCache(cfg.Capacity, cfg.TTL)}
	if cfg.DiskPath == "" {
		rc.store = rc.memory
		logging.Info().Int("capacity", cfg.Capacity).Dur("ttl", cfg.TTL).Msg("Memory response cache enabled")
		return rc, nil
	}

	disk, err := cache.OpenDisk(cache.DiskConfig{
		Path:        cfg.DiskPath,
		TTL:         cfg.TTL,
		Compression: true,
	})
	if err != nil {
		return nil, fmt.Errorf("open disk cache: %w", err)
	}
	rc.disk = disk
	rc.store = cache.NewTiered(rc.memory, disk)

	logging.Info().
		Int("capacity", cfg.Capacity).
		Dur("ttl", cfg.TTL).
		Str("disk_path", cfg.DiskPath).
		Msg("Tiered response cache enabled")
	return rc, nil
}

// supervise adds the maintenance service when there is a cache to maintain.
func (rc *responseCache) supervise(tree *supervisor.SupervisorTree, cfg *config.CacheConfig) {
	if rc.store == nil {
		return
	}
	var disk services.GarbageCollector
	if rc.disk != nil {
		disk = rc.disk
	}
	tree.AddDataService(services.NewCacheMaintenanceService(rc.memory, disk, cfg.CleanupInterval))
}

func (rc *responseCache) close() {
	if rc.disk == nil {
		return
	}
	if err := rc.disk.Close(); err != nil {
		logging.Error().Err(err).Msg("Error closing disk cache")
	}
}
