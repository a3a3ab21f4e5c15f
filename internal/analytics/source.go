// Gridlens - Energy System Model Results Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gridlens

package analytics

import (
	"fmt"
	"math"

	"github.com/tomtom215/gridlens/internal/frame"
	"github.com/tomtom215/gridlens/internal/network"
	"github.com/tomtom215/gridlens/internal/results"
)

// SourceParams is everything a SourceQuery reads.
type SourceParams struct {
	Network      network.Network
	Generators   results.Tables
	Storages     results.Tables
	Buses        results.Tables
	YearSample   []int
	DiscountRate []float64
	HourlyScale  float64
	HourSample   []int
	CapacityCost CapacityCost
	YearsBinding *frame.Binding
}

// SourceOptions are the common arguments of source metrics.
type SourceOptions struct {
	Level  Level
	Filter Filter
	Hourly bool
}

// SourceQuery computes generator and storage metrics.
type SourceQuery struct {
	net          network.Network
	generators   results.Tables
	storages     results.Tables
	buses        results.Tables
	yearSample   []int
	discountRate []float64
	hourlyScale  float64
	hourSample   []int
	capacityCost CapacityCost
	binding      *frame.Binding

	typeMapping map[string][]string
	typeOf      map[string]string

	generatorCapacityPlus *frame.Frame
	storageCapacityPlus   *frame.Frame
}

// NewSourceQuery derives the type mapping and capacity additions once.
func NewSourceQuery(p SourceParams) (*SourceQuery, error) {
	if p.Network == nil {
		return nil, fmt.Errorf("source query: network is required")
	}
	if p.CapacityCost == "" {
		p.CapacityCost = Brutto
	}
	if p.HourlyScale == 0 {
		p.HourlyScale = 1
	}
	q := &SourceQuery{
		net:          p.Network,
		generators:   p.Generators,
		storages:     p.Storages,
		buses:        p.Buses,
		yearSample:   p.YearSample,
		discountRate: p.DiscountRate,
		hourlyScale:  p.HourlyScale,
		hourSample:   p.HourSample,
		capacityCost: p.CapacityCost,
		binding:      p.YearsBinding,
	}
	q.typeMapping = EnergySourceTypeMapping(p.Network)
	q.typeOf = invertMapping(q.typeMapping)

	var err error
	q.generatorCapacityPlus, q.storageCapacityPlus, err = q.calculateCapacityPlus()
	if err != nil {
		return nil, err
	}
	return q, nil
}

// TypeMapping returns the energy source type mapping.
func (q *SourceQuery) TypeMapping() map[string][]string { return q.typeMapping }

// DiscountRate is carried for callers; no metric consumes it.
func (q *SourceQuery) DiscountRate() []float64 { return q.discountRate }

// CapacityPlus returns the generator and storage capacity additions,
// attributed to the year the investment was decided.
func (q *SourceQuery) CapacityPlus() (generators, storages *frame.Frame) {
	return q.generatorCapacityPlus, q.storageCapacityPlus
}

func (q *SourceQuery) capacityTable(t results.Tables) *frame.Frame {
	f, ok := t.Table(results.CategoryCapacity, results.CategoryCapacity)
	if !ok {
		return frame.Empty()
	}
	return f
}

// calculateCapacityPlus takes year-over-year capacity deltas, clips
// negatives to zero and shifts each type's columns back by its build
// time.
func (q *SourceQuery) calculateCapacityPlus() (gen, stor *frame.Frame, err error) {
	gen = capacityDeltas(q.capacityTable(q.generators))
	stor = capacityDeltas(q.capacityTable(q.storages))

	for _, t := range network.Names(q.typeMapping) {
		target := stor
		var buildTime int
		if gt, ok := q.net.GeneratorTypes()[t]; ok {
			target, buildTime = gen, gt.BuildTime
		} else if st, ok := q.net.StorageTypes()[t]; ok {
			buildTime = st.BuildTime
		} else {
			return nil, nil, &LookupError{Kind: "energy source type", Name: t}
		}
		if target.Len() == 0 {
			continue
		}
		for _, unit := range q.typeMapping[t] {
			j, ok := target.ColumnOf(frame.Str(unit))
			if !ok {
				return nil, nil, &LookupError{Kind: "capacity column", Name: unit}
			}
			shiftColumnBack(target, j, buildTime)
		}
	}
	return gen, stor, nil
}

func capacityDeltas(capacity *frame.Frame) *frame.Frame {
	if capacity.Len() == 0 {
		return capacity.Clone()
	}
	sorted := capacity.Sorted()
	out := frame.New(sorted.IndexNames, sorted.ColumnName, sorted.Columns())
	row := make([]float64, sorted.Width())
	for i, k := range sorted.Index() {
		for j := range row {
			d := 0.0
			if i > 0 {
				d = sorted.At(i, j) - sorted.At(i-1, j)
			}
			if math.IsNaN(d) || d < 0 {
				d = 0
			}
			row[j] = d
		}
		out.AddRow(k, row)
	}
	return out
}

// shiftColumnBack moves column j up by n rows, zero-filling the tail.
func shiftColumnBack(f *frame.Frame, j, n int) {
	rows := f.Len()
	col := make([]float64, rows)
	for i := 0; i < rows; i++ {
		if i+n < rows && i+n >= 0 {
			col[i] = f.At(i+n, j)
		}
	}
	for i, v := range col {
		f.Set(i, j, v)
	}
}
