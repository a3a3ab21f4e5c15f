// Gridlens - Energy System Model Results Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gridlens

/*
Package frame provides the labelled numeric table used for every result
and every query output in gridlens.

A Frame is a dense row-major float64 matrix with:
  - a row index made of Keys (one Label per index level, e.g. Year or
    (Network element name, Year, Hour))
  - a flat list of column Labels
  - NaN for "no data", which is distinct from 0

Labels are either integers (years, hours, placeholder columns) or strings
(element names, energy types, cost types). Integer labels always sort
before string labels so that mixed axes have a stable order.

Frames are built once and never mutated after they are handed to a
caller. Transformations (Reindex, Select, Clone) return new frames.

Long-format construction goes through Pivot, which accepts unordered
Cells, sums duplicates and fills missing combinations with a caller
chosen value:

	cells := []frame.Cell{
	    {Row: frame.Key{frame.Str("gen1"), frame.Int(0)}, Column: frame.Str("ELECTRICITY"), Value: 10},
	}
	f := frame.Pivot([]string{"Network element name", "Year"}, "Energy Type", cells, math.NaN())

Years binding (Binding) maps a reduced year position onto the calendar
year it represents. Reindex replaces one index level through a binding
and fails with a BindingKeyError if any year is missing from it.
*/
package frame
