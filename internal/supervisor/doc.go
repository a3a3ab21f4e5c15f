// Gridlens - Energy System Model Results Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gridlens

/*
Package supervisor runs the gridlens services under a suture v4 tree.

	gridlens
	├── data-layer
	│   ├── session-loader
	│   └── cache-maintenance   only with CACHE_ENABLED
	└── api-layer
	    └── http-server

The layers fail independently. If the result directory is missing or the
sampling is inconsistent, session-loader returns an error and suture
retries it with backoff. Meanwhile http-server keeps serving: health
probes answer and query routes return 503 until a session is in place.

Supervisor events (restarts, backoff, stop timeouts) are logged through
sutureslog into the zerolog stream:

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.TreeConfig{})
	tree.AddDataService(loader)
	tree.AddAPIService(httpService)
	err = tree.Serve(ctx)

DuckDB is not a service. cmd/server opens it before the tree starts and
closes it after Serve returns, then logs UnstoppedServiceReport.
*/
package supervisor
