// Gridlens - Energy System Model Results Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gridlens

package analytics

import (
	"math"

	"github.com/tomtom215/gridlens/internal/frame"
)

// entry is one value in long format before it is pivoted into an
// output frame. hour is ignored outside hourly resolution.
type entry struct {
	element string
	year    int
	hour    int
	series  frame.Label
	value   float64
}

type aggregateOptions struct {
	indexName   string
	level       Level
	filter      Filter
	hourly      bool
	skipBinding bool
	// zeroFill makes missing element-level cells 0 instead of NaN.
	zeroFill bool
}

// aggregate is the common post-processing step of source metrics:
// optional grouping by type, post-hoc name filtering, pivoting into
// (element|type, Year[, Hour]) rows with one column per series, and the
// years binding.
func (q *SourceQuery) aggregate(entries []entry, o aggregateOptions) (*frame.Frame, error) {
	if len(entries) == 0 {
		return frame.Empty(), nil
	}

	levelName := NetworkElementNameLabel
	fill := math.NaN()
	if o.level == LevelType {
		levelName = NetworkElementTypeLabel
		fill = 0
		entries = q.byType(entries)
	}
	if o.hourly || o.zeroFill {
		fill = 0
	}

	var keep map[string]struct{}
	if o.filter.postHoc() {
		keep = toSet(o.filter.Names)
	}

	indexNames := []string{levelName, YearLabel}
	if o.hourly {
		indexNames = append(indexNames, HourLabel)
	}

	cells := make([]frame.Cell, 0, len(entries))
	for _, e := range entries {
		if keep != nil {
			if _, ok := keep[e.element]; !ok {
				continue
			}
		}
		row := frame.K(e.element, e.year)
		if o.hourly {
			row = frame.K(e.element, e.year, e.hour)
		}
		value := e.value
		if o.level == LevelType && math.IsNaN(value) {
			value = 0
		}
		cells = append(cells, frame.Cell{Row: row, Column: e.series, Value: value})
	}

	out := frame.Pivot(indexNames, o.indexName, cells, fill)
	if o.skipBinding {
		return out, nil
	}
	return ReindexYears(out, q.binding, true)
}

// byType renames elements to their type. Elements without a type are
// dropped.
func (q *SourceQuery) byType(entries []entry) []entry {
	out := make([]entry, 0, len(entries))
	for _, e := range entries {
		t, ok := q.typeOf[e.element]
		if !ok {
			continue
		}
		e.element = t
		out = append(out, e)
	}
	return out
}

// densify adds zero entries so that every (element, year, hour) present
// carries every series seen in entries.
func densify(entries []entry) []entry {
	type rowKey struct {
		element    string
		year, hour int
	}
	series := map[frame.Label]struct{}{}
	rows := map[rowKey]map[frame.Label]struct{}{}
	var order []rowKey
	for _, e := range entries {
		series[e.series] = struct{}{}
		k := rowKey{e.element, e.year, e.hour}
		if _, ok := rows[k]; !ok {
			rows[k] = map[frame.Label]struct{}{}
			order = append(order, k)
		}
		rows[k][e.series] = struct{}{}
	}
	out := entries
	for _, k := range order {
		for s := range series {
			if _, ok := rows[k][s]; !ok {
				out = append(out, entry{element: k.element, year: k.year, hour: k.hour, series: s})
			}
		}
	}
	return out
}

func scaleEntries(entries []entry, s float64) []entry {
	for i := range entries {
		entries[i].value *= s
	}
	return entries
}
