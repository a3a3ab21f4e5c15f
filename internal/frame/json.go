// Gridlens - Energy System Model Results Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gridlens

package frame

import (
	"math"

	"github.com/goccy/go-json"
)

type frameJSON struct {
	IndexNames []string     `json:"index_names"`
	ColumnName string       `json:"column_name,omitempty"`
	Columns    []Label      `json:"columns"`
	Index      []Key        `json:"index"`
	Data       [][]*float64 `json:"data"`
}

// MarshalJSON encodes the frame in split orientation. NaN and infinite
// cells become null.
func (f *Frame) MarshalJSON() ([]byte, error) {
	out := frameJSON{
		IndexNames: f.IndexNames,
		ColumnName: f.ColumnName,
		Columns:    f.columns,
		Index:      f.index,
		Data:       make([][]*float64, len(f.values)),
	}
	if out.IndexNames == nil {
		out.IndexNames = []string{}
	}
	if out.Columns == nil {
		out.Columns = []Label{}
	}
	if out.Index == nil {
		out.Index = []Key{}
	}
	for i, row := range f.values {
		cells := make([]*float64, len(row))
		for j := range row {
			v := row[j]
			if math.IsNaN(v) || math.IsInf(v, 0) {
				continue
			}
			cells[j] = &v
		}
		out.Data[i] = cells
	}
	return json.Marshal(out)
}
