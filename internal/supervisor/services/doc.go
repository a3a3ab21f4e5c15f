// Gridlens - Energy System Model Results Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gridlens

/*
Package services holds the suture services of the gridlens tree.

HTTPServerService serves the analytics API and drains connections on
shutdown. SessionLoaderService owns the engine.Holder: it loads the first
session, swaps in a new one on Reload (SIGHUP) and drops the responses
cached for the old one. CacheMaintenanceService periodically expires
memory entries and runs Badger value log GC.

Serve returns ctx.Err() once its context is canceled. Any other return,
nil included, is treated by suture as a crash and restarted with backoff;
only suture.ErrDoNotRestart removes a service for good.
*/
package services
