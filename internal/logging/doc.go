// Gridlens - Energy System Model Results Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gridlens

// Package logging provides zerolog-based structured logging for Gridlens.
//
// A single global logger is configured once at startup from the LOG_*
// settings and shared by every package. JSON output is the default;
// console output is available for local runs.
//
// # Quick Start
//
//	logging.Init(logging.Config{Level: "info", Format: "json"})
//
//	logging.Info().Str("source_path", path).Msg("Loading network")
//	logging.Ctx(ctx).Warn().Err(err).Msg("Objective value missing")
//
// # Context Fields
//
// Ctx attaches the request ID, correlation ID and analytics session ID found
// in the context, so that every line emitted while answering an API request
// can be joined back to the session it queried.
//
// # Query Logging
//
// QueryLogger carries the fixed fields of an analytics query (query family and
// metric) and exposes started/completed/failed helpers used by the API layer.
//
// # Suture Integration
//
// NewSlogLogger returns a *slog.Logger backed by zerolog for sutureslog, so
// supervisor events land in the same stream as application logs.
package logging
