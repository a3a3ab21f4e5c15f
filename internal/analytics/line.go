// Gridlens - Energy System Model Results Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gridlens

package analytics

import (
	"fmt"

	"github.com/tomtom215/gridlens/internal/frame"
	"github.com/tomtom215/gridlens/internal/network"
	"github.com/tomtom215/gridlens/internal/results"
)

// LineParams is everything a LineQuery reads.
type LineParams struct {
	Network      network.Network
	Lines        results.Tables
	HourSample   []int
	HourlyScale  float64
	YearsBinding *frame.Binding
}

// LineQuery computes flows and transmission fee costs per line.
type LineQuery struct {
	net         network.Network
	flows       map[string]*frame.Frame
	hourSample  []int
	hourlyScale float64
	binding     *frame.Binding
}

// NewLineQuery builds a line query.
func NewLineQuery(p LineParams) *LineQuery {
	if p.HourlyScale == 0 {
		p.HourlyScale = 1
	}
	return &LineQuery{
		net:         p.Network,
		flows:       p.Lines.Category(results.CategoryFlow),
		hourSample:  p.HourSample,
		hourlyScale: p.HourlyScale,
		binding:     p.YearsBinding,
	}
}

// LineNames lists the lines with flow results.
func (q *LineQuery) LineNames() []string {
	return network.Names(q.flows)
}

// yearlySummary reduces every year column over hours into a single
// column indexed by year.
func (q *LineQuery) yearlySummary(f *frame.Frame, column, op string) (*frame.Frame, error) {
	out := frame.New([]string{YearLabel}, "", []frame.Label{frame.Str(column)})
	for _, c := range f.Columns() {
		year, ok := c.AsInt()
		if !ok {
			return nil, fmt.Errorf("line results: column %q is not a year", c.String())
		}
		values, _ := f.Column(c)
		out.AddRow(frame.K(year), []float64{frame.Reduce(op, values)})
	}
	return ReindexYears(out.Sorted(), q.binding, false)
}

func (q *LineQuery) flow(name string) (*frame.Frame, error) {
	f, ok := q.flows[name]
	if !ok {
		return frame.Empty(), nil
	}
	out, err := q.yearlySummary(f, TotalEnergyVolumeColumn, "sum")
	if err != nil {
		return nil, err
	}
	return out.Scale(q.hourlyScale), nil
}

func (q *LineQuery) flowHourly(name string) (*frame.Frame, error) {
	f, ok := q.flows[name]
	if !ok {
		return frame.Empty(), nil
	}
	column := frame.Str(TotalEnergyVolumeColumn)
	var cells []frame.Cell
	hourRows(f, func(_, hour, year int, v float64) {
		cells = append(cells, frame.Cell{Row: frame.K(year, hour), Column: column, Value: v})
	})
	out := frame.Pivot([]string{YearLabel, HourLabel}, "", cells, 0)
	return ReindexYears(out, q.binding, true)
}

// transmissionFee multiplies hour row i by the fee at hour sample
// position i. Lines without a fee cost nothing. A line with flow results
// but no network definition is a LookupError.
func (q *LineQuery) transmissionFee(name string) (*frame.Frame, error) {
	f, ok := q.flows[name]
	if !ok {
		return frame.Empty(), nil
	}
	line, ok := q.net.Lines()[name]
	if !ok {
		return nil, &LookupError{Kind: "line", Name: name}
	}

	var fee []float64
	if line.TransmissionFee != "" {
		tf, ok := q.net.TransmissionFees()[line.TransmissionFee]
		if !ok {
			return nil, &LookupError{Kind: "transmission fee", Name: line.TransmissionFee}
		}
		if f.Len() != len(q.hourSample) {
			return nil, fmt.Errorf("line %q: flow has %d hours but the hour sample has %d", name, f.Len(), len(q.hourSample))
		}
		fee = pick(tf.Fee, q.hourSample)
	} else {
		fee = make([]float64, f.Len())
	}

	cost := frame.New(f.IndexNames, "", f.Columns())
	for i, k := range f.Index() {
		row := append([]float64(nil), f.Row(i)...)
		for j := range row {
			row[j] *= fee[i]
		}
		cost.AddRow(k, row)
	}
	out, err := q.yearlySummary(cost, TransmissionFeeColumn, "sum")
	if err != nil {
		return nil, err
	}
	return out.Scale(q.hourlyScale), nil
}

// GetFlow returns yearly flow totals, or (Year, Hour) flows without the
// hourly scale.
func (q *LineQuery) GetFlow(sel Selector, hourly bool) (Result, error) {
	fn := q.flow
	if hourly {
		fn = q.flowHourly
	}
	return Apply(sel, q.LineNames, fn)
}

// GetTransmissionFee returns the yearly transmission fee cost per line.
func (q *LineQuery) GetTransmissionFee(sel Selector) (Result, error) {
	return Apply(sel, q.LineNames, q.transmissionFee)
}
