// Gridlens - Energy System Model Results Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gridlens

package analytics

import (
	"slices"

	"github.com/tomtom215/gridlens/internal/frame"
	"github.com/tomtom215/gridlens/internal/network"
)

// EnergySourceTypeMapping groups generator and storage names by their
// energy source type. Member lists are sorted.
func EnergySourceTypeMapping(net network.Network) map[string][]string {
	mapping := make(map[string][]string)
	for _, name := range network.Names(net.Generators()) {
		t := net.Generators()[name].EnergySourceType
		mapping[t] = append(mapping[t], name)
	}
	for _, name := range network.Names(net.Storages()) {
		t := net.Storages()[name].EnergySourceType
		mapping[t] = append(mapping[t], name)
	}
	for t := range mapping {
		slices.Sort(mapping[t])
		mapping[t] = slices.Compact(mapping[t])
	}
	return mapping
}

func invertMapping(mapping map[string][]string) map[string]string {
	out := make(map[string]string)
	for t, names := range mapping {
		for _, n := range names {
			out[n] = t
		}
	}
	return out
}

// AggregateByType collapses element columns into type columns by
// summing the members present in f. Types without any present member are
// omitted; if none remain the result is empty.
func AggregateByType(f *frame.Frame, mapping map[string][]string) *frame.Frame {
	if f == nil || f.Width() == 0 {
		return frame.Empty()
	}
	types := network.Names(mapping)
	var outCols []frame.Label
	var members [][]int
	for _, t := range types {
		var pos []int
		for _, n := range mapping[t] {
			if j, ok := f.ColumnOf(frame.Str(n)); ok {
				pos = append(pos, j)
			}
		}
		if len(pos) == 0 {
			continue
		}
		outCols = append(outCols, frame.Str(t))
		members = append(members, pos)
	}
	if len(outCols) == 0 {
		return frame.Empty()
	}

	out := frame.New(f.IndexNames, f.ColumnName, outCols)
	row := make([]float64, len(outCols))
	for i, k := range f.Index() {
		for n, pos := range members {
			vals := make([]float64, len(pos))
			for m, j := range pos {
				vals[m] = f.At(i, j)
			}
			row[n] = frame.SumSkipNaN(vals)
		}
		out.AddRow(k, row)
	}
	return out
}
