// Gridlens - Energy System Model Results Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gridlens

package frame

import (
	"math"
	"sort"
)

// Cell is one value in long format.
type Cell struct {
	Row    Key
	Column Label
	Value  float64
}

// Pivot turns cells into a frame with sorted rows and columns. Cells
// that share a (row, column) pair are summed, NaN counting as absent.
// Combinations with no cell get fill.
func Pivot(indexNames []string, columnName string, cells []Cell, fill float64) *Frame {
	type slot struct {
		sum  float64
		seen bool
	}
	rows := make(map[string]Key)
	cols := make(map[Label]struct{})
	acc := make(map[string]map[Label]*slot)

	for _, c := range cells {
		id := c.Row.String()
		if _, ok := rows[id]; !ok {
			rows[id] = c.Row
			acc[id] = make(map[Label]*slot)
		}
		cols[c.Column] = struct{}{}
		s, ok := acc[id][c.Column]
		if !ok {
			s = &slot{}
			acc[id][c.Column] = s
		}
		if !math.IsNaN(c.Value) {
			s.sum += c.Value
			s.seen = true
		}
	}

	colList := make([]Label, 0, len(cols))
	for c := range cols {
		colList = append(colList, c)
	}
	sort.Slice(colList, func(a, b int) bool { return colList[a].Less(colList[b]) })

	keys := make([]Key, 0, len(rows))
	for _, k := range rows {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(a, b int) bool { return keys[a].Less(keys[b]) })

	out := New(indexNames, columnName, colList)
	vals := make([]float64, len(colList))
	for _, k := range keys {
		row := acc[k.String()]
		for j, c := range colList {
			s, ok := row[c]
			switch {
			case !ok:
				vals[j] = fill
			case !s.seen:
				vals[j] = math.NaN()
			default:
				vals[j] = s.sum
			}
		}
		out.AddRow(k, vals)
	}
	return out
}

// Melt is the inverse of Pivot: one cell per (row, column) pair,
// including NaN cells.
func (f *Frame) Melt() []Cell {
	out := make([]Cell, 0, len(f.index)*len(f.columns))
	for i, k := range f.index {
		for j, c := range f.columns {
			out = append(out, Cell{Row: k, Column: c, Value: f.values[i][j]})
		}
	}
	return out
}

// Concat stacks frames vertically. Columns are the sorted union; cells a
// frame lacks get fill. Index names are taken from the first non-empty
// frame.
func Concat(fill float64, frames ...*Frame) *Frame {
	var names []string
	var colName string
	cols := make(map[Label]struct{})
	for _, f := range frames {
		if f == nil || f.Len() == 0 {
			continue
		}
		if names == nil {
			names, colName = f.IndexNames, f.ColumnName
		}
		for _, c := range f.columns {
			cols[c] = struct{}{}
		}
	}
	colList := make([]Label, 0, len(cols))
	for c := range cols {
		colList = append(colList, c)
	}
	sort.Slice(colList, func(a, b int) bool { return colList[a].Less(colList[b]) })

	out := New(names, colName, colList)
	vals := make([]float64, len(colList))
	for _, f := range frames {
		if f == nil {
			continue
		}
		for i, k := range f.index {
			for j, c := range colList {
				if p, ok := f.colPos[c]; ok {
					vals[j] = f.values[i][p]
				} else {
					vals[j] = fill
				}
			}
			out.AddRow(k, vals)
		}
	}
	return out
}
