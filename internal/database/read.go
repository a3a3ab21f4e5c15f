// Gridlens - Energy System Model Results Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gridlens

package database

import (
	"context"
	"fmt"
	"math"
	"math/big"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/duckdb/duckdb-go/v2"

	"github.com/tomtom215/gridlens/internal/frame"
	"github.com/tomtom215/gridlens/internal/metrics"
)

// EnergyTypeColumn is folded into the row key when a result file has it.
const EnergyTypeColumn = "Energy Type"

// ReadTable scans a CSV or Parquet result file into a frame.
// The format is chosen by file extension.
func (db *DB) ReadTable(ctx context.Context, path string) (f *frame.Frame, err error) {
	query, err := scanQuery(path)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	defer func() {
		metrics.RecordTableRead(strings.TrimPrefix(filepath.Ext(path), "."), time.Since(start), err)
	}()

	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	rows, err := db.conn.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	defer closeWithLog(ctx, rows, "result rows")

	headers, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("failed to read columns of %s: %w", path, err)
	}
	if len(headers) == 0 {
		return nil, fmt.Errorf("result file %s has no columns", path)
	}

	layout := newTableLayout(headers)
	f = frame.New(layout.indexNames, "", layout.columns)

	raw := make([]any, len(headers))
	ptrs := make([]any, len(headers))
	for i := range raw {
		ptrs[i] = &raw[i]
	}

	for rows.Next() {
		if err := rows.Scan(ptrs...); err != nil {
			return nil, fmt.Errorf("failed to scan row of %s: %w", path, err)
		}
		key := frame.K(toLabel(raw[0]))
		if layout.energyType >= 0 {
			key = frame.K(toLabel(raw[0]), toLabel(raw[layout.energyType]))
		}
		values := make([]float64, len(layout.valuePos))
		for i, pos := range layout.valuePos {
			values[i] = toFloat(raw[pos])
		}
		f.AddRow(key, values)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows of %s: %w", path, err)
	}

	return f, nil
}

// scanQuery builds the table function call for a result file
func scanQuery(path string) (string, error) {
	literal := quoteLiteral(path)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return fmt.Sprintf("SELECT * FROM read_csv_auto(%s, header = true)", literal), nil
	case ".parquet":
		return fmt.Sprintf("SELECT * FROM read_parquet(%s)", literal), nil
	default:
		return "", fmt.Errorf("unsupported result file format: %s", path)
	}
}

// quoteLiteral renders s as a SQL string literal
func quoteLiteral(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}

// tableLayout maps file columns onto frame axes
type tableLayout struct {
	indexNames []string
	columns    []frame.Label
	valuePos   []int
	energyType int
}

func newTableLayout(headers []string) tableLayout {
	l := tableLayout{
		indexNames: []string{headers[0]},
		energyType: -1,
	}
	for i := 1; i < len(headers); i++ {
		if headers[i] == EnergyTypeColumn && l.energyType < 0 {
			l.energyType = i
			continue
		}
		l.columns = append(l.columns, frame.ParseLabel(headers[i]))
		l.valuePos = append(l.valuePos, i)
	}
	if l.energyType >= 0 {
		l.indexNames = append(l.indexNames, EnergyTypeColumn)
	}
	return l
}

// toLabel converts an index cell. Whole numbers become integer labels.
func toLabel(v any) frame.Label {
	switch x := v.(type) {
	case nil:
		return frame.Str("")
	case string:
		return frame.ParseLabel(x)
	case []byte:
		return frame.ParseLabel(string(x))
	case bool:
		return frame.Str(strconv.FormatBool(x))
	}
	f := toFloat(v)
	if !math.IsNaN(f) && f == math.Trunc(f) && math.Abs(f) < 1<<53 {
		return frame.Int(int(f))
	}
	return frame.Str(fmt.Sprint(v))
}

// toFloat converts a value cell. Missing and non-numeric cells become NaN.
func toFloat(v any) float64 {
	switch x := v.(type) {
	case float64:
		return x
	case float32:
		return float64(x)
	case int64:
		return float64(x)
	case int32:
		return float64(x)
	case int16:
		return float64(x)
	case int8:
		return float64(x)
	case int:
		return float64(x)
	case uint64:
		return float64(x)
	case uint32:
		return float64(x)
	case uint16:
		return float64(x)
	case uint8:
		return float64(x)
	case bool:
		if x {
			return 1
		}
		return 0
	case *big.Int:
		f, _ := new(big.Float).SetInt(x).Float64()
		return f
	case string:
		return parseFloat(x)
	case []byte:
		return parseFloat(string(x))
	case duckdb.Decimal:
		return x.Float64()
	}
	return math.NaN()
}

func parseFloat(s string) float64 {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return math.NaN()
	}
	return f
}
