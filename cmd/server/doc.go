// Gridlens - Energy System Model Results Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gridlens

/*
Package main is the entry point for the gridlens server.

Gridlens loads the network definition and solved result files of one
energy system model run and serves analytics over them as a JSON API:
generation and cost metrics per source, line flows, local balancing stack
and aggregated consumer views.

# Application Architecture

	RootSupervisor ("gridlens")
	├── DataSupervisor ("data-layer")
	│   ├── SessionLoaderService
	│   └── CacheMaintenanceService (if CACHE_ENABLED)
	└── APISupervisor ("api-layer")
	    └── HTTPServerService

Initialization order:

 1. Configuration: Koanf v2 with defaults, config.yaml and environment
 2. Logging: zerolog with JSON or console output
 3. Database: in-memory DuckDB used to read CSV and Parquet result files
 4. Cache: LRU memory tier with an optional BadgerDB disk tier
 5. Supervisor Tree: session loader, cache maintenance and HTTP server

# Configuration

	export GRIDLENS_SOURCE_PATH=/data/network.json
	export GRIDLENS_RESULT_PATH=/data/results/base
	export GRIDLENS_RESULT_FORMAT=parquet
	export GRIDLENS_YEAR_SAMPLE=0,5,10
	./gridlens

# Signal Handling

  - SIGHUP reloads the session from disk and drops its cached responses
  - SIGINT and SIGTERM drain HTTP connections and stop the tree
*/
package main
