// Gridlens - Energy System Model Results Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gridlens

package cache

import (
	"container/list"
	"strings"
	"sync"
	"time"
)

const (
	defaultCapacity = 1000
	defaultTTL      = 10 * time.Minute
)

type lruItem struct {
	key     string
	payload []byte
	expires time.Time
}

// LRUCache is the in-memory tier: a mutex-guarded recency list indexed by
// key, with a fixed TTL per entry. The front of order is the most
// recently used item.
type LRUCache struct {
	mu       sync.Mutex
	capacity int
	ttl      time.Duration
	index    map[string]*list.Element
	order    *list.List

	// spill receives entries pushed out by capacity, under mu.
	spill func(key string, value []byte)

	hits, misses, evictions int64

	now func() time.Time
}

// NewLRUCache falls back to 1000 entries and a 10 minute TTL for
// non-positive arguments.
func NewLRUCache(capacity int, ttl time.Duration) *LRUCache {
	if capacity <= 0 {
		capacity = defaultCapacity
	}
	if ttl <= 0 {
		ttl = defaultTTL
	}
	return &LRUCache{
		capacity: capacity,
		ttl:      ttl,
		index:    make(map[string]*list.Element, capacity),
		order:    list.New(),
		now:      time.Now,
	}
}

// OnEvict sets the spill hook. Expired entries never reach it.
func (c *LRUCache) OnEvict(fn func(key string, value []byte)) {
	c.mu.Lock()
	c.spill = fn
	c.mu.Unlock()
}

func (c *LRUCache) Get(key string) ([]byte, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	el, ok := c.index[key]
	if ok && c.expired(el) {
		c.unlink(el)
		ok = false
	}
	if !ok {
		c.misses++
		return nil, false
	}
	c.order.MoveToFront(el)
	c.hits++
	return el.Value.(*lruItem).payload, true
}

// Set stores value under key with a fresh TTL and trims the least
// recently used entries beyond capacity.
func (c *LRUCache) Set(key string, value []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()

	expires := c.now().Add(c.ttl)
	if el, ok := c.index[key]; ok {
		it := el.Value.(*lruItem)
		it.payload, it.expires = value, expires
		c.order.MoveToFront(el)
		return
	}
	c.index[key] = c.order.PushFront(&lruItem{key: key, payload: value, expires: expires})

	for c.order.Len() > c.capacity {
		oldest := c.order.Back()
		it := c.unlink(oldest)
		c.evictions++
		if c.spill != nil {
			c.spill(it.key, it.payload)
		}
	}
}

func (c *LRUCache) Remove(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	el, ok := c.index[key]
	if ok {
		c.unlink(el)
	}
	return ok
}

// DropSession forgets every response cached for sessionID.
func (c *LRUCache) DropSession(sessionID string) {
	prefix := sessionPrefix(sessionID)
	c.mu.Lock()
	defer c.mu.Unlock()
	for key, el := range c.index {
		if strings.HasPrefix(key, prefix) {
			c.unlink(el)
		}
	}
}

// Len counts expired entries too until a read or CleanupExpired drops them.
func (c *LRUCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.order.Len()
}

// CleanupExpired sweeps from the cold end and returns the number dropped.
func (c *LRUCache) CleanupExpired() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	dropped := 0
	for el := c.order.Back(); el != nil; {
		prev := el.Prev()
		if c.expired(el) {
			c.unlink(el)
			dropped++
		}
		el = prev
	}
	return dropped
}

func (c *LRUCache) Stats() (hits, misses, evictions int64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.hits, c.misses, c.evictions
}

// expired and unlink require mu.

func (c *LRUCache) expired(el *list.Element) bool {
	return c.now().After(el.Value.(*lruItem).expires)
}

func (c *LRUCache) unlink(el *list.Element) *lruItem {
	it := c.order.Remove(el).(*lruItem)
	delete(c.index, it.key)
	return it
}

var _ Store = (*LRUCache)(nil)
