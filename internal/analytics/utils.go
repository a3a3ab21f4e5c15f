// Gridlens - Energy System Model Results Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gridlens

package analytics

import (
	"math"
	"slices"

	"github.com/tomtom215/gridlens/internal/frame"
	"github.com/tomtom215/gridlens/internal/network"
)

// ReindexYears remaps the year axis of f through b. Single-index frames
// use their only level, multi-index frames the level named Year.
func ReindexYears(f *frame.Frame, b *frame.Binding, multiIndex bool) (*frame.Frame, error) {
	if b == nil || f == nil {
		return f, nil
	}
	if multiIndex {
		return f.ReindexLevel(YearLabel, b)
	}
	return f.Reindex(0, b)
}

// HandleNSampleResults is the reindexing entry point for public outputs.
// Maps are always reindexed on their single index.
func HandleNSampleResults(r Result, b *frame.Binding, multiIndex bool) (Result, error) {
	if b == nil {
		return r, nil
	}
	if r.IsSingle() {
		f, err := ReindexYears(r.Frame, b, multiIndex)
		if err != nil {
			return Result{}, err
		}
		return Single(f), nil
	}
	out := make(map[string]*frame.Frame, len(r.Frames))
	for k, f := range r.Frames {
		rf, err := ReindexYears(f, b, false)
		if err != nil {
			return Result{}, err
		}
		out[k] = rf
	}
	return Mapped(out), nil
}

// AssignLabel tags every column of a year-indexed table with a constant
// series label, producing one entry per cell.
func AssignLabel(f *frame.Frame, label string) []entry {
	if f.IsEmpty() {
		return nil
	}
	out := make([]entry, 0, f.Len()*f.Width())
	for i, k := range f.Index() {
		year, ok := k[0].AsInt()
		if !ok {
			continue
		}
		for j, c := range f.Columns() {
			out = append(out, entry{element: c.String(), year: year, series: frame.Str(label), value: f.At(i, j)})
		}
	}
	return out
}

// GeneratorsEmissionTypes maps each generator with at least one emission
// fee to its fee names.
func GeneratorsEmissionTypes(net network.Network) map[string][]string {
	out := make(map[string][]string)
	for name, g := range net.Generators() {
		if len(g.EmissionFees) > 0 {
			fees := slices.Clone(g.EmissionFees)
			slices.Sort(fees)
			out[name] = fees
		}
	}
	return out
}

// DivideOrDefault divides elementwise, replacing non-finite quotients
// with def.
func DivideOrDefault(num, den []float64, def float64) []float64 {
	return frame.DivOrDefault(num, den, def)
}

// at returns s[i], NaN when i is out of range.
func at(s []float64, i int) float64 {
	if i < 0 || i >= len(s) {
		return math.NaN()
	}
	return s[i]
}

// pick returns s at every position in idx.
func pick(s []float64, idx []int) []float64 {
	out := make([]float64, len(idx))
	for n, i := range idx {
		out[n] = at(s, i)
	}
	return out
}

func mean(v []float64) float64 {
	return frame.Reduce("mean", v)
}

func toSet(names []string) map[string]struct{} {
	out := make(map[string]struct{}, len(names))
	for _, n := range names {
		out[n] = struct{}{}
	}
	return out
}

func intSet(v []int) map[int]struct{} {
	out := make(map[int]struct{}, len(v))
	for _, n := range v {
		out[n] = struct{}{}
	}
	return out
}
