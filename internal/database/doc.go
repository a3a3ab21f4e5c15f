// Gridlens - Energy System Model Results Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gridlens

// Package database reads optimizer result files through an in-memory DuckDB
// instance.
//
// DuckDB is never used as a store here. Each result file (CSV or Parquet) is
// scanned with read_csv_auto or read_parquet and converted into a
// frame.Frame: the first column becomes the row index, an "Energy Type"
// column (when present) becomes a second index level, and every other
// column header is parsed into a frame label (integer headers such as year
// positions become integer labels).
//
// # Usage
//
//	db, err := database.New(&cfg.Database)
//	if err != nil {
//	    return err
//	}
//	defer db.Close()
//
//	f, err := db.ReadTable(ctx, "results/generators_results/capacity/gen1.csv")
//
// # Thread Safety
//
// DB wraps a *sql.DB connection pool and is safe for concurrent use. The
// results loader reads many files in parallel through one DB.
package database
