// Gridlens - Energy System Model Results Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gridlens

package frame

import (
	"math"
	"sort"
)

// JoinOuter places frames side by side on the union of their rows.
// Columns keep their order, first frame first; a column present in
// several frames keeps the first one. Missing cells are NaN.
func JoinOuter(frames ...*Frame) *Frame {
	return join(nil, frames...)
}

// JoinLeft is JoinOuter restricted to the rows of left.
func JoinLeft(left, right *Frame) *Frame {
	return join(left, left, right)
}

func join(rowsFrom *Frame, frames ...*Frame) *Frame {
	var names []string
	var cols []Label
	seen := map[Label]struct{}{}
	rowSet := map[string]Key{}
	for _, f := range frames {
		if f == nil {
			continue
		}
		if names == nil && len(f.IndexNames) > 0 {
			names = f.IndexNames
		}
		for _, c := range f.columns {
			if _, ok := seen[c]; !ok {
				seen[c] = struct{}{}
				cols = append(cols, c)
			}
		}
		if rowsFrom == nil {
			for _, k := range f.index {
				rowSet[k.String()] = k
			}
		}
	}
	if rowsFrom != nil {
		for _, k := range rowsFrom.index {
			rowSet[k.String()] = k
		}
	}
	keys := make([]Key, 0, len(rowSet))
	for _, k := range rowSet {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(a, b int) bool { return keys[a].Less(keys[b]) })

	out := New(names, "", cols)
	row := make([]float64, len(cols))
	for _, k := range keys {
		for j, c := range cols {
			row[j] = math.NaN()
			for _, f := range frames {
				if f == nil {
					continue
				}
				if v, ok := f.Get(k, c); ok {
					row[j] = v
					break
				}
			}
		}
		out.AddRow(k, row)
	}
	return out
}

// SumByIndex stacks frames and sums rows sharing a key, skipping NaN.
// Cells with no value in any frame are 0.
func SumByIndex(frames ...*Frame) *Frame {
	var cells []Cell
	var names []string
	for _, f := range frames {
		if f == nil {
			continue
		}
		if names == nil && len(f.IndexNames) > 0 {
			names = f.IndexNames
		}
		cells = append(cells, f.Melt()...)
	}
	out := Pivot(names, "", cells, 0)
	return out.Map(func(v float64) float64 {
		if math.IsNaN(v) {
			return 0
		}
		return v
	})
}

// DropNaNRows removes every row holding at least one NaN.
func (f *Frame) DropNaNRows() *Frame {
	out := New(f.IndexNames, f.ColumnName, f.columns)
rows:
	for i, k := range f.index {
		for _, v := range f.values[i] {
			if math.IsNaN(v) {
				continue rows
			}
		}
		out.AddRow(k, f.values[i])
	}
	return out
}
