// Gridlens - Energy System Model Results Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gridlens

package cache

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/dgraph-io/badger/v4/options"

	"github.com/tomtom215/gridlens/internal/logging"
)

// ErrStoreClosed is returned by DiskStore operations after Close.
var ErrStoreClosed = errors.New("disk cache is closed")

// DiskConfig configures the BadgerDB tier.
type DiskConfig struct {
	// Path is the BadgerDB directory. Ignored when InMemory is set.
	Path string

	// InMemory keeps the store in RAM (tests).
	InMemory bool

	// TTL applied to every entry.
	TTL time.Duration

	// Compression enables Snappy block compression.
	Compression bool

	// GCRatio is the value log discard ratio passed to RunValueLogGC.
	GCRatio float64
}

// DiskStore is a BadgerDB-backed cache tier. Expiry is delegated to Badger's
// per-entry TTL.
type DiskStore struct {
	db     *badger.DB
	cfg    DiskConfig
	mu     sync.RWMutex
	closed bool
}

// OpenDisk opens (or creates) a disk store.
func OpenDisk(cfg DiskConfig) (*DiskStore, error) {
	if !cfg.InMemory && cfg.Path == "" {
		return nil, errors.New("disk cache path is required")
	}
	if cfg.TTL <= 0 {
		cfg.TTL = 10 * time.Minute
	}
	if cfg.GCRatio <= 0 || cfg.GCRatio >= 1 {
		cfg.GCRatio = 0.5
	}

	opts := badger.DefaultOptions(cfg.Path)
	if cfg.InMemory {
		opts = badger.DefaultOptions("").WithInMemory(true)
	}
	if cfg.Compression {
		opts.Compression = options.Snappy
	}
	opts.Logger = nil

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open BadgerDB: %w", err)
	}

	logging.Debug().
		Str("path", cfg.Path).
		Bool("in_memory", cfg.InMemory).
		Dur("ttl", cfg.TTL).
		Msg("Disk cache opened")

	return &DiskStore{db: db, cfg: cfg}, nil
}

// Get returns the stored bytes for key.
func (d *DiskStore) Get(key string) ([]byte, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.closed {
		return nil, false
	}

	var value []byte
	err := d.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if err != nil {
			return err
		}
		value, err = item.ValueCopy(nil)
		return err
	})
	if err != nil {
		if !errors.Is(err, badger.ErrKeyNotFound) {
			logging.Warn().Err(err).Str("key", key).Msg("Disk cache read failed")
		}
		return nil, false
	}
	return value, true
}

// Set stores value under key with the configured TTL. Failures are logged;
// a cache write never fails the request that produced the value.
func (d *DiskStore) Set(key string, value []byte) {
	if err := d.Put(key, value); err != nil {
		logging.Warn().Err(err).Str("key", key).Msg("Disk cache write failed")
	}
}

// Put is Set with the error returned.
func (d *DiskStore) Put(key string, value []byte) error {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.closed {
		return ErrStoreClosed
	}

	return d.db.Update(func(txn *badger.Txn) error {
		return txn.SetEntry(badger.NewEntry([]byte(key), value).WithTTL(d.cfg.TTL))
	})
}

// DropSession deletes every key carrying the session prefix.
func (d *DiskStore) DropSession(sessionID string) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.closed {
		return
	}

	if err := d.db.DropPrefix([]byte(sessionPrefix(sessionID))); err != nil {
		logging.Warn().Err(err).Str("session_id", sessionID).Msg("Disk cache prefix drop failed")
	}
}

// Len counts live keys. It walks the key index and is meant for metrics and
// tests, not hot paths.
func (d *DiskStore) Len() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.closed {
		return 0
	}

	n := 0
	_ = d.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		it := txn.NewIterator(opts)
		defer it.Close()
		for it.Rewind(); it.Valid(); it.Next() {
			n++
		}
		return nil
	})
	return n
}

// RunGC runs value log garbage collection until nothing is left to rewrite.
func (d *DiskStore) RunGC() error {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.closed {
		return ErrStoreClosed
	}
	if d.cfg.InMemory {
		return nil
	}

	for {
		err := d.db.RunValueLogGC(d.cfg.GCRatio)
		if errors.Is(err, badger.ErrNoRewrite) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("run GC: %w", err)
		}
	}
}

// Close closes the underlying database. It is safe to call more than once.
func (d *DiskStore) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return nil
	}
	d.closed = true
	return d.db.Close()
}

var _ Store = (*DiskStore)(nil)
