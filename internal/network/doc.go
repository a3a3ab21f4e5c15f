// Gridlens - Energy System Model Results Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gridlens

// Package network describes the energy system the optimizer solved: its
// generators, storages, buses, lines, local balancing stacks, aggregated
// consumers, technology types, fuels and fees.
//
// The analytics layer only sees the read-only Network interface. Model is
// the in-memory implementation, built from a Definition either in code
// (tests) or from a JSON document on disk (Load).
//
// Per-year series are slices indexed by year position and per-hour series
// are slices indexed by hour position.
package network
