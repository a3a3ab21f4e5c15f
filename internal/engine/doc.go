// Gridlens - Energy System Model Results Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gridlens

/*
Package engine assembles an analysis session from one optimizer run.

A Session owns the network definition, the result tables, the sampling the
model was solved with, and the four query objects built over them:

  - SourceParams: generator and storage metrics
  - LineParams: line flows and transmission fees
  - AggregatedConsumerParams: aggregated consumer parameters
  - LBSParams: local balancing stack fractions and capacities

Sessions are immutable once built. The HTTP layer reads the current session
through a Holder, and a reload swaps in a new Session atomically.

# Usage

	db, _ := database.New(&cfg.Database)
	session, err := engine.FromConfig(ctx, cfg.Engine, db)
	if err != nil {
	    return err
	}
	res, err := session.SourceParams().GetGenerationSum(analytics.SourceOptions{Level: analytics.LevelType})
*/
package engine
