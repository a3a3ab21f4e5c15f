// Gridlens - Energy System Model Results Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gridlens

package frame

import (
	"fmt"
	"math"
	"sort"
)

// Frame is a labelled float64 table. Values are stored row-major.
//
// A Frame is safe for concurrent reads once construction is finished.
// Methods that return a *Frame never modify the receiver.
type Frame struct {
	// IndexNames names each level of the row keys (e.g. "Year").
	IndexNames []string
	// ColumnName names the column axis (e.g. "Energy Type").
	ColumnName string

	index   []Key
	columns []Label
	values  [][]float64

	rowPos map[string]int
	colPos map[Label]int
}

// New creates an empty frame with the given axes.
func New(indexNames []string, columnName string, columns []Label) *Frame {
	f := &Frame{
		IndexNames: append([]string(nil), indexNames...),
		ColumnName: columnName,
		columns:    append([]Label(nil), columns...),
		rowPos:     make(map[string]int),
		colPos:     make(map[Label]int, len(columns)),
	}
	for i, c := range f.columns {
		f.colPos[c] = i
	}
	return f
}

// Empty returns a frame with no rows, no columns and no axis names.
func Empty() *Frame {
	return New(nil, "", nil)
}

// EmptyWithIndex returns a frame with no rows or columns that still
// carries index names.
func EmptyWithIndex(indexNames ...string) *Frame {
	return New(indexNames, "", nil)
}

// AddRow appends a row, or overwrites the row with the same key.
// The values slice is copied and must match the column count.
func (f *Frame) AddRow(k Key, values []float64) {
	if len(values) != len(f.columns) {
		panic(fmt.Sprintf("frame: row has %d values, frame has %d columns", len(values), len(f.columns)))
	}
	row := append([]float64(nil), values...)
	id := k.String()
	if pos, ok := f.rowPos[id]; ok {
		f.values[pos] = row
		return
	}
	f.rowPos[id] = len(f.index)
	f.index = append(f.index, k.clone())
	f.values = append(f.values, row)
}

// Len is the number of rows.
func (f *Frame) Len() int { return len(f.index) }

// Width is the number of columns.
func (f *Frame) Width() int { return len(f.columns) }

// IsEmpty reports whether the frame has no rows or no columns.
func (f *Frame) IsEmpty() bool { return f == nil || len(f.index) == 0 || len(f.columns) == 0 }

// Index returns the row keys. The slice must not be modified.
func (f *Frame) Index() []Key { return f.index }

// Columns returns the column labels. The slice must not be modified.
func (f *Frame) Columns() []Label { return f.columns }

// Row returns the values of row i. The slice must not be modified.
func (f *Frame) Row(i int) []float64 { return f.values[i] }

// At returns the value at row i, column j.
func (f *Frame) At(i, j int) float64 { return f.values[i][j] }

// Set overwrites the cell at row i, column j. Only for frames that have
// not been shared yet.
func (f *Frame) Set(i, j int, v float64) { f.values[i][j] = v }

// RowOf returns the position of the row with key k.
func (f *Frame) RowOf(k Key) (int, bool) {
	pos, ok := f.rowPos[k.String()]
	return pos, ok
}

// ColumnOf returns the position of column c.
func (f *Frame) ColumnOf(c Label) (int, bool) {
	pos, ok := f.colPos[c]
	return pos, ok
}

// HasColumn reports whether column c exists.
func (f *Frame) HasColumn(c Label) bool {
	_, ok := f.colPos[c]
	return ok
}

// Get returns the cell at (k, c).
func (f *Frame) Get(k Key, c Label) (float64, bool) {
	i, ok := f.RowOf(k)
	if !ok {
		return math.NaN(), false
	}
	j, ok := f.ColumnOf(c)
	if !ok {
		return math.NaN(), false
	}
	return f.values[i][j], true
}

// Column returns a copy of column c in row order.
func (f *Frame) Column(c Label) ([]float64, bool) {
	j, ok := f.ColumnOf(c)
	if !ok {
		return nil, false
	}
	out := make([]float64, len(f.values))
	for i, row := range f.values {
		out[i] = row[j]
	}
	return out, true
}

// Level returns the position of the named index level, or -1.
func (f *Frame) Level(name string) int {
	for i, n := range f.IndexNames {
		if n == name {
			return i
		}
	}
	return -1
}

// Clone returns a deep copy.
func (f *Frame) Clone() *Frame {
	out := New(f.IndexNames, f.ColumnName, f.columns)
	for i, k := range f.index {
		out.AddRow(k, f.values[i])
	}
	return out
}

// Select returns a frame restricted to the given columns, in the given
// order. Columns not present in f are skipped.
func (f *Frame) Select(cols []Label) *Frame {
	keep := make([]Label, 0, len(cols))
	pos := make([]int, 0, len(cols))
	for _, c := range cols {
		if j, ok := f.colPos[c]; ok {
			keep = append(keep, c)
			pos = append(pos, j)
		}
	}
	out := New(f.IndexNames, f.ColumnName, keep)
	row := make([]float64, len(keep))
	for i, k := range f.index {
		for n, j := range pos {
			row[n] = f.values[i][j]
		}
		out.AddRow(k, row)
	}
	return out
}

// Sorted returns a copy with rows ordered by key and columns by label.
func (f *Frame) Sorted() *Frame {
	cols := append([]Label(nil), f.columns...)
	sort.SliceStable(cols, func(a, b int) bool { return cols[a].Less(cols[b]) })
	order := make([]int, len(f.index))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool { return f.index[order[a]].Less(f.index[order[b]]) })

	out := New(f.IndexNames, f.ColumnName, cols)
	row := make([]float64, len(cols))
	for _, i := range order {
		for n, c := range cols {
			row[n] = f.values[i][f.colPos[c]]
		}
		out.AddRow(f.index[i], row)
	}
	return out
}

// Map applies fn to every cell.
func (f *Frame) Map(fn func(float64) float64) *Frame {
	out := New(f.IndexNames, f.ColumnName, f.columns)
	row := make([]float64, len(f.columns))
	for i, k := range f.index {
		for j, v := range f.values[i] {
			row[j] = fn(v)
		}
		out.AddRow(k, row)
	}
	return out
}

// Scale multiplies every cell by s.
func (f *Frame) Scale(s float64) *Frame {
	out := f.Clone()
	for _, row := range out.values {
		scale(s, row)
	}
	return out
}

// ColumnSums sums each column over all rows, skipping NaN.
func (f *Frame) ColumnSums() []float64 {
	out := make([]float64, len(f.columns))
	for j := range f.columns {
		col := make([]float64, 0, len(f.values))
		for _, row := range f.values {
			col = append(col, row[j])
		}
		out[j] = SumSkipNaN(col)
	}
	return out
}

// Rename returns a copy with new axis names.
func (f *Frame) Rename(indexNames []string, columnName string) *Frame {
	out := f.Clone()
	out.IndexNames = append([]string(nil), indexNames...)
	out.ColumnName = columnName
	return out
}

// Reindex replaces the labels of index level `level` by looking each
// one up in b. A nil binding returns f unchanged.
func (f *Frame) Reindex(level int, b *Binding) (*Frame, error) {
	if b == nil {
		return f, nil
	}
	out := New(f.IndexNames, f.ColumnName, f.columns)
	for i, k := range f.index {
		if level < 0 || level >= len(k) {
			return nil, fmt.Errorf("frame: index level %d out of range", level)
		}
		year, ok := k[level].AsInt()
		if !ok {
			return nil, &BindingKeyError{Label: k[level].String()}
		}
		mapped, err := b.Year(year)
		if err != nil {
			return nil, err
		}
		nk := k.clone()
		nk[level] = Int(mapped)
		out.AddRow(nk, f.values[i])
	}
	return out, nil
}

// ReindexLevel is Reindex addressed by level name.
func (f *Frame) ReindexLevel(name string, b *Binding) (*Frame, error) {
	if b == nil {
		return f, nil
	}
	level := f.Level(name)
	if level < 0 {
		return nil, fmt.Errorf("frame: no index level named %q", name)
	}
	return f.Reindex(level, b)
}
