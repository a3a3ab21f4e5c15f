// Gridlens - Energy System Model Results Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gridlens

// Package cache stores serialized API responses for analytics queries.
//
// Query results only change when a new session is loaded, so responses are
// cached by (session ID, path, canonical query string). Two tiers exist:
//
//   - LRUCache: bounded in-memory cache with TTL and O(1) eviction
//   - DiskStore: optional BadgerDB tier that survives restarts and holds
//     entries evicted from memory
//
// Tiered combines them: lookups check memory first, then disk, promoting
// disk hits back into memory. Every lookup is counted in the
// gridlens_cache_hits_total / gridlens_cache_misses_total metrics with the
// tier as the cache_type label.
//
// Keys are built with Key, which prefixes the session ID so that the entries
// of a replaced session can be dropped with one prefix delete.
package cache
