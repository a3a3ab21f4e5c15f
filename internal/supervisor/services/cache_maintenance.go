// Gridlens - Energy System Model Results Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gridlens

package services

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/gridlens/internal/logging"
)

// DefaultMaintenanceInterval is used when no positive interval is given.
const DefaultMaintenanceInterval = 5 * time.Minute

// ExpiringCache drops entries whose TTL has passed. Satisfied by
// *cache.LRUCache.
type ExpiringCache interface {
	CleanupExpired() int
}

// GarbageCollector reclaims space in a persistent store. Satisfied by
// *cache.DiskStore.
type GarbageCollector interface {
	RunGC() error
}

// CacheMaintenanceService periodically expires memory cache entries and
// runs value log GC on the disk tier. Either target may be nil.
type CacheMaintenanceService struct {
	memory   ExpiringCache
	disk     GarbageCollector
	interval time.Duration
	name     string
	logger   zerolog.Logger
}

// NewCacheMaintenanceService creates the service.
func NewCacheMaintenanceService(memory ExpiringCache, disk GarbageCollector, interval time.Duration) *CacheMaintenanceService {
	if interval <= 0 {
		interval = DefaultMaintenanceInterval
	}
	return &CacheMaintenanceService{
		memory:   memory,
		disk:     disk,
		interval: interval,
		name:     "cache-maintenance",
		logger:   logging.WithComponent("cache-maintenance"),
	}
}

// Serve implements suture.Service. GC failures are logged and retried on
// the next tick.
func (s *CacheMaintenanceService) Serve(ctx context.Context) error {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			s.runOnce()
		}
	}
}

func (s *CacheMaintenanceService) runOnce() {
	start := time.Now()
	expired := 0
	if s.memory != nil {
		expired = s.memory.CleanupExpired()
	}
	if s.disk != nil {
		if err := s.disk.RunGC(); err != nil {
			s.logger.Warn().Err(err).Msg("disk cache GC failed")
		}
	}
	s.logger.Debug().
		Int("expired", expired).
		Dur("duration", time.Since(start)).
		Msg("cache maintenance complete")
}

// String names the service in supervisor events.
func (s *CacheMaintenanceService) String() string {
	return s.name
}
