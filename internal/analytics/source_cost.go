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
	"github.com/tomtom215/gridlens/internal/results"
)

// opexTable is capacity times type opex for every sampled year, one
// column per unit. Rows outside the year sample are not produced.
func (q *SourceQuery) opexTable(capacity *frame.Frame, names []string, opexOf func(string) ([]float64, error)) (*frame.Frame, error) {
	in := toSet(names)
	var cols []frame.Label
	for _, c := range capacity.Columns() {
		if _, ok := in[c.String()]; ok {
			cols = append(cols, c)
		}
	}
	years := slices.Clone(q.yearSample)
	slices.Sort(years)

	out := frame.New([]string{YearLabel}, "", cols)
	row := make([]float64, len(cols))
	for _, year := range years {
		for j, c := range cols {
			capacityValue, ok := capacity.Get(frame.K(year), c)
			if !ok {
				capacityValue = math.NaN()
			}
			opex, err := opexOf(c.String())
			if err != nil {
				return nil, err
			}
			row[j] = capacityValue * at(opex, year)
		}
		out.AddRow(frame.K(year), row)
	}
	return out, nil
}

// calculateOpex computes opex for the given units, optionally summed per
// type, and applies the netto conversion to generators. Years with any
// missing value are dropped.
func (q *SourceQuery) calculateOpex(generators, storages []string, byType bool) (*frame.Frame, error) {
	gen, err := q.opexTable(q.capacityTable(q.generators), generators, func(name string) ([]float64, error) {
		gt, err := q.generatorType(name)
		if err != nil {
			return nil, err
		}
		return gt.Opex, nil
	})
	if err != nil {
		return nil, err
	}
	stor, err := q.opexTable(q.capacityTable(q.storages), storages, func(name string) ([]float64, error) {
		s, ok := q.net.Storages()[name]
		if !ok {
			return nil, &LookupError{Kind: "storage", Name: name}
		}
		st, ok := q.net.StorageTypes()[s.EnergySourceType]
		if !ok {
			return nil, &LookupError{Kind: "storage type", Name: s.EnergySourceType}
		}
		return st.Opex, nil
	})
	if err != nil {
		return nil, err
	}
	if byType {
		gen = AggregateByType(gen, q.typeMapping)
		stor = AggregateByType(stor, q.typeMapping)
	}
	gen, err = q.applyCapacityCost(gen)
	if err != nil {
		return nil, err
	}
	return frame.JoinOuter(gen, stor).DropNaNRows(), nil
}

// applyCapacityCost multiplies generator columns by the mean of their
// type's reference efficiency profile when opex is reported netto.
// Columns may hold generator names or generator type names.
func (q *SourceQuery) applyCapacityCost(gen *frame.Frame) (*frame.Frame, error) {
	if q.capacityCost != Netto || gen.Width() == 0 {
		return gen, nil
	}
	factors := make([]float64, gen.Width())
	for j, c := range gen.Columns() {
		typeName := c.String()
		if _, ok := q.net.GeneratorTypes()[typeName]; !ok {
			g, ok := q.net.Generators()[typeName]
			if !ok {
				return nil, &LookupError{Kind: "generator", Name: typeName}
			}
			typeName = g.EnergySourceType
		}
		gt, ok := q.net.GeneratorTypes()[typeName]
		if !ok {
			return nil, &LookupError{Kind: "generator type", Name: typeName}
		}
		if len(gt.Efficiency) == 0 {
			return nil, &LookupError{Kind: "efficiency profile of generator type", Name: typeName}
		}
		factors[j] = mean(gt.Efficiency[0].Values)
	}
	out := gen.Clone()
	for i := 0; i < out.Len(); i++ {
		for j, f := range factors {
			out.Set(i, j, out.At(i, j)*f)
		}
	}
	return out, nil
}

func costEntries(capex, opex *frame.Frame) []entry {
	var out []entry
	for _, e := range append(AssignLabel(capex, CapexLabel), AssignLabel(opex, OpexLabel)...) {
		if !math.IsNaN(e.value) {
			out = append(out, e)
		}
	}
	return out
}

func restrictColumns(f *frame.Frame, names []string) *frame.Frame {
	in := toSet(names)
	var cols []frame.Label
	for _, c := range f.Columns() {
		if _, ok := in[c.String()]; ok {
			cols = append(cols, c)
		}
	}
	return f.Select(cols)
}

// GetGlobalCapexOpex reports capex and opex of units outside every local
// balancing stack. A missing counterpart is NaN, not 0.
func (q *SourceQuery) GetGlobalCapexOpex(level Level) (*frame.Frame, error) {
	generators, storages := q.globalElements()

	genCapex, hasGen := q.generators.Table(results.CategoryGlobalCapex, results.CategoryGlobalCapex)
	storCapex, hasStor := q.storages.Table(results.CategoryGlobalCapex, results.CategoryGlobalCapex)
	var capex *frame.Frame
	switch {
	case hasGen && hasStor:
		capex = frame.JoinLeft(genCapex, storCapex)
	case hasGen:
		capex = genCapex
	case hasStor:
		capex = storCapex
	default:
		capex = frame.Empty()
	}
	capex = restrictColumns(capex, append(slices.Clone(generators), storages...))

	opex, err := q.calculateOpex(generators, storages, false)
	if err != nil {
		return nil, err
	}
	if capex.IsEmpty() && opex.IsEmpty() {
		return frame.Empty(), nil
	}
	return q.aggregate(costEntries(capex, opex), aggregateOptions{
		indexName: CostTypeLabel,
		level:     level,
	})
}

// GetLocalCapexOpex reports capex and opex per technology type for units
// inside local balancing stacks. Capex comes from the per-aggregate
// result tables; with a structural filter only aggregates named in it
// are read.
func (q *SourceQuery) GetLocalCapexOpex(filter Filter) (*frame.Frame, error) {
	s := q.filterElements(filter)
	globalGens, globalStors := q.globalElements()
	generators := without(s.generators, globalGens)
	storages := without(s.storages, globalStors)

	pickTables := func(t results.Tables) []*frame.Frame {
		tables := t.Category(results.CategoryLocalCapex)
		var keep map[string]struct{}
		if filter.structural() {
			keep = toSet(filter.Names)
		}
		var out []*frame.Frame
		for _, name := range network.Names(tables) {
			if keep != nil {
				if _, ok := keep[name]; !ok {
					continue
				}
			}
			out = append(out, tables[name])
		}
		return out
	}
	genTables := pickTables(q.generators)
	storTables := pickTables(q.storages)

	var capex *frame.Frame
	switch {
	case len(genTables) > 0 && len(storTables) > 0:
		capex = frame.JoinLeft(frame.SumByIndex(genTables...), frame.SumByIndex(storTables...))
	case len(genTables) > 0:
		capex = frame.SumByIndex(genTables...)
	case len(storTables) > 0:
		capex = frame.SumByIndex(storTables...)
	default:
		capex = frame.Empty()
	}

	opex, err := q.calculateOpex(generators, storages, true)
	if err != nil {
		return nil, err
	}
	if capex.IsEmpty() && opex.IsEmpty() {
		return frame.Empty(), nil
	}
	return q.aggregate(costEntries(capex, opex), aggregateOptions{
		indexName: CostTypeLabel,
		level:     LevelElement,
		filter:    filter,
	})
}

func without(names, drop []string) []string {
	d := toSet(drop)
	var out []string
	for _, n := range names {
		if _, ok := d[n]; !ok {
			out = append(out, n)
		}
	}
	return out
}

type unitSeries struct {
	name   string
	series map[string][]float64
}

// perUnitEntries samples per-year attributes of technology types or
// fuels at the year sample.
func (q *SourceQuery) perUnitEntries(units []unitSeries, keys []string) []entry {
	var out []entry
	for _, key := range keys {
		for _, u := range units {
			for _, year := range q.yearSample {
				out = append(out, entry{element: u.name, year: year, series: frame.Str(key), value: at(u.series[key], year)})
			}
		}
	}
	return out
}

// GetNetworkCostsPerTechType reports input capex and opex of every
// generator and storage type at the sampled years.
func (q *SourceQuery) GetNetworkCostsPerTechType(names []string) (*frame.Frame, error) {
	var units []unitSeries
	for _, name := range network.Names(q.net.GeneratorTypes()) {
		gt := q.net.GeneratorTypes()[name]
		units = append(units, unitSeries{name: name, series: map[string][]float64{CapexLabel: gt.Capex, OpexLabel: gt.Opex}})
	}
	for _, name := range network.Names(q.net.StorageTypes()) {
		st := q.net.StorageTypes()[name]
		units = append(units, unitSeries{name: name, series: map[string][]float64{CapexLabel: st.Capex, OpexLabel: st.Opex}})
	}
	return q.aggregate(q.perUnitEntries(units, []string{CapexLabel, OpexLabel}), aggregateOptions{
		indexName: CostTypeLabel,
		level:     LevelElement,
		filter:    Filter{Names: names},
	})
}

// GetNetworkFuelCost reports input fuel prices at the sampled years.
func (q *SourceQuery) GetNetworkFuelCost(names []string) (*frame.Frame, error) {
	return q.fuelAttribute("cost", names, func(f *network.Fuel) []float64 { return f.Cost })
}

// GetNetworkFuelAvailability reports input fuel availability at the
// sampled years.
func (q *SourceQuery) GetNetworkFuelAvailability(names []string) (*frame.Frame, error) {
	return q.fuelAttribute("availability", names, func(f *network.Fuel) []float64 { return f.Availability })
}

func (q *SourceQuery) fuelAttribute(key string, names []string, get func(*network.Fuel) []float64) (*frame.Frame, error) {
	var units []unitSeries
	for _, name := range network.Names(q.net.Fuels()) {
		units = append(units, unitSeries{name: name, series: map[string][]float64{key: get(q.net.Fuels()[name])}})
	}
	return q.aggregate(q.perUnitEntries(units, []string{key}), aggregateOptions{
		indexName: FuelLabel,
		level:     LevelElement,
		filter:    Filter{Names: names},
	})
}
