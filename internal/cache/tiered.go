// Gridlens - Energy System Model Results Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gridlens

package cache

import (
	"github.com/tomtom215/gridlens/internal/metrics"
)

const (
	tierMemory = "memory"
	tierDisk   = "disk"
)

// Tiered is a memory LRU in front of an optional disk store. Entries evicted
// from memory for capacity are written to disk.
type Tiered struct {
	mem  *LRUCache
	disk *DiskStore
}

// NewTiered combines the tiers. disk may be nil.
func NewTiered(mem *LRUCache, disk *DiskStore) *Tiered {
	t := &Tiered{mem: mem, disk: disk}
	mem.OnEvict(func(key string, value []byte) {
		metrics.CacheEvictions.WithLabelValues(tierMemory).Inc()
		if t.disk != nil {
			t.disk.Set(key, value)
		}
	})
	return t
}

// Get checks memory, then disk. A disk hit is promoted into memory.
func (t *Tiered) Get(key string) ([]byte, bool) {
	if value, ok := t.mem.Get(key); ok {
		metrics.RecordCacheLookup(tierMemory, true)
		return value, true
	}
	metrics.RecordCacheLookup(tierMemory, false)

	if t.disk == nil {
		return nil, false
	}
	value, ok := t.disk.Get(key)
	metrics.RecordCacheLookup(tierDisk, ok)
	if ok {
		t.mem.Set(key, value)
	}
	return value, ok
}

// Set writes to memory and, when present, disk.
func (t *Tiered) Set(key string, value []byte) {
	t.mem.Set(key, value)
	if t.disk != nil {
		t.disk.Set(key, value)
	}
	metrics.CacheSize.WithLabelValues(tierMemory).Set(float64(t.mem.Len()))
}

// DropSession removes a session's entries from both tiers.
func (t *Tiered) DropSession(sessionID string) {
	t.mem.DropSession(sessionID)
	if t.disk != nil {
		t.disk.DropSession(sessionID)
	}
	metrics.CacheSize.WithLabelValues(tierMemory).Set(float64(t.mem.Len()))
}

// Len returns the number of entries in memory.
func (t *Tiered) Len() int {
	return t.mem.Len()
}

// Disk returns the disk tier or nil.
func (t *Tiered) Disk() *DiskStore {
	return t.disk
}

// Memory returns the memory tier.
func (t *Tiered) Memory() *LRUCache {
	return t.mem
}

var _ Store = (*Tiered)(nil)
