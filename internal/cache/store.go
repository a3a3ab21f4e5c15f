// Gridlens - Energy System Model Results Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gridlens

package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"net/url"
	"sort"
	"strings"
)

// Store is implemented by every cache tier.
type Store interface {
	// Get returns the cached bytes and true when present and not expired.
	Get(key string) ([]byte, bool)

	// Set stores value under key with the store's default TTL.
	Set(key string, value []byte)

	// DropSession removes every entry belonging to sessionID.
	DropSession(sessionID string)

	// Len returns the number of live entries.
	Len() int
}

// Key builds a cache key scoped to a session. The query is canonicalized:
// parameter names and repeated values are sorted, and empty values dropped.
func Key(sessionID, path string, query url.Values) string {
	names := make([]string, 0, len(query))
	for name := range query {
		names = append(names, name)
	}
	sort.Strings(names)

	var b strings.Builder
	b.WriteString(path)
	for _, name := range names {
		values := make([]string, 0, len(query[name]))
		for _, v := range query[name] {
			if v != "" {
				values = append(values, v)
			}
		}
		if len(values) == 0 {
			continue
		}
		sort.Strings(values)
		b.WriteByte('&')
		b.WriteString(name)
		b.WriteByte('=')
		b.WriteString(strings.Join(values, ","))
	}

	hash := sha256.Sum256([]byte(b.String()))
	return sessionPrefix(sessionID) + hex.EncodeToString(hash[:16])
}

func sessionPrefix(sessionID string) string {
	return sessionID + ":"
}
