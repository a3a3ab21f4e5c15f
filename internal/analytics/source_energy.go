// Gridlens - Energy System Model Results Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gridlens

package analytics

import (
	"math"

	"github.com/tomtom215/gridlens/internal/frame"
	"github.com/tomtom215/gridlens/internal/results"
)

// hourRows walks a table with hour rows and year columns.
func hourRows(f *frame.Frame, fn func(row int, hour int, year int, v float64)) {
	years := make([]int, f.Width())
	valid := make([]bool, f.Width())
	for j, c := range f.Columns() {
		years[j], valid[j] = c.AsInt()
	}
	for i, k := range f.Index() {
		hour, ok := k[0].AsInt()
		if !ok {
			hour = i
		}
		for j := range years {
			if valid[j] {
				fn(i, hour, years[j], f.At(i, j))
			}
		}
	}
}

// yearRows walks a table with year rows and one column per name.
func yearRows(f *frame.Frame, fn func(year int, col frame.Label, v float64)) {
	for i, k := range f.Index() {
		year, ok := k[0].AsInt()
		if !ok {
			continue
		}
		for j, c := range f.Columns() {
			fn(year, c, f.At(i, j))
		}
	}
}

// generatorEnergyTypeEntries reads (Hour, Energy Type) x year tables.
func (q *SourceQuery) generatorEnergyTypeEntries(category string, generators []string) []entry {
	tables := q.generators.Category(category)
	var out []entry
	for _, name := range generators {
		f, ok := tables[name]
		if !ok {
			continue
		}
		hourRows(f, func(i, hour, year int, v float64) {
			k := f.Index()[i]
			if len(k) < 2 {
				return
			}
			out = append(out, entry{element: name, year: year, hour: hour, series: k[1], value: v})
		})
	}
	return out
}

// storageEntries reads hour x year storage tables; the series is the
// storage type's energy type.
func (q *SourceQuery) storageEntries(category string, storages []string) ([]entry, error) {
	tables := q.storages.Category(category)
	var out []entry
	for _, name := range storages {
		f, ok := tables[name]
		if !ok {
			continue
		}
		et, err := q.storageEnergyType(name)
		if err != nil {
			return nil, err
		}
		series := frame.Str(et)
		hourRows(f, func(_, hour, year int, v float64) {
			out = append(out, entry{element: name, year: year, hour: hour, series: series, value: v})
		})
	}
	return densify(out), nil
}

func (q *SourceQuery) storageEnergyType(name string) (string, error) {
	s, ok := q.net.Storages()[name]
	if !ok {
		return "", &LookupError{Kind: "storage", Name: name}
	}
	st, ok := q.net.StorageTypes()[s.EnergySourceType]
	if !ok {
		return "", &LookupError{Kind: "storage type", Name: s.EnergySourceType}
	}
	return st.EnergyType, nil
}

func (q *SourceQuery) energyOptions(o SourceOptions) aggregateOptions {
	return aggregateOptions{
		indexName: EnergyTypeLabel,
		level:     o.Level,
		filter:    o.Filter,
		hourly:    o.Hourly,
	}
}

// GetGenerationSum is generator output per energy type plus storage
// discharge, scaled to annual totals outside hourly resolution.
func (q *SourceQuery) GetGenerationSum(o SourceOptions) (*frame.Frame, error) {
	s := q.filterElements(o.Filter)
	entries := q.generatorEnergyTypeEntries(results.CategoryGenerationPerEnergyType, s.generators)
	stor, err := q.storageEntries(results.CategoryGeneration, s.storages)
	if err != nil {
		return nil, err
	}
	entries = append(entries, stor...)
	if !o.Hourly {
		scaleEntries(entries, q.hourlyScale)
	}
	return q.aggregate(entries, q.energyOptions(o))
}

// GetDumpEnergySum is curtailed generator energy per energy type.
func (q *SourceQuery) GetDumpEnergySum(o SourceOptions) (*frame.Frame, error) {
	s := q.filterElements(o.Filter)
	entries := q.generatorEnergyTypeEntries(results.CategoryDumpEnergyPerEnergyType, s.generators)
	if !o.Hourly {
		scaleEntries(entries, q.hourlyScale)
	}
	return q.aggregate(entries, q.energyOptions(o))
}

// GetLoadSum is energy charged into storages.
func (q *SourceQuery) GetLoadSum(o SourceOptions) (*frame.Frame, error) {
	return q.storageMetric(results.CategoryLoad, o)
}

// GetStateOfCharge is storage state of charge. Outside hourly
// resolution it is summed over hours and scaled like the energy sums.
func (q *SourceQuery) GetStateOfCharge(o SourceOptions) (*frame.Frame, error) {
	return q.storageMetric(results.CategoryStateOfCharge, o)
}

func (q *SourceQuery) storageMetric(category string, o SourceOptions) (*frame.Frame, error) {
	s := q.filterElements(o.Filter)
	entries, err := q.storageEntries(category, s.storages)
	if err != nil {
		return nil, err
	}
	if !o.Hourly {
		scaleEntries(entries, q.hourlyScale)
	}
	return q.aggregate(entries, q.energyOptions(o))
}

// GetENS is energy not served per bus, keyed by the bus energy type.
// It is always reported per element.
func (q *SourceQuery) GetENS(filter Filter, hourly bool) (*frame.Frame, error) {
	s := q.filterElements(filter)
	tables := q.buses.Category(results.CategoryGenerationENS)
	var entries []entry
	for _, name := range s.buses {
		f, ok := tables[name]
		if !ok {
			continue
		}
		bus, ok := q.net.Buses()[name]
		if !ok {
			continue
		}
		series := frame.Str(bus.EnergyType)
		hourRows(f, func(_, hour, year int, v float64) {
			entries = append(entries, entry{element: name, year: year, hour: hour, series: series, value: v})
		})
	}
	entries = densify(entries)
	if !hourly {
		scaleEntries(entries, q.hourlyScale)
	}
	return q.aggregate(entries, aggregateOptions{
		indexName: EnergyTypeLabel,
		level:     LevelElement,
		filter:    filter,
		hourly:    hourly,
	})
}

// GetInstalledCapacity reports capacity per year. The energy type axis
// carries the single placeholder column 0.
func (q *SourceQuery) GetInstalledCapacity(level Level, filter Filter) (*frame.Frame, error) {
	s := q.filterElements(filter)
	placeholder := frame.Int(0)
	var entries []entry
	collect := func(f *frame.Frame, names []string) {
		in := toSet(names)
		yearRows(f, func(year int, col frame.Label, v float64) {
			if _, ok := in[col.String()]; !ok || math.IsNaN(v) {
				return
			}
			entries = append(entries, entry{element: col.String(), year: year, series: placeholder, value: v})
		})
	}
	collect(q.capacityTable(q.generators), s.generators)
	collect(q.capacityTable(q.storages), s.storages)

	return q.aggregate(entries, aggregateOptions{
		indexName: EnergyTypeLabel,
		level:     level,
		filter:    filter,
	})
}

// GetGenerationDemand divides generation by each energy type's
// conversion rate. Row i of a generation table is matched with the rate
// at hour sample position i; rows past the sample are dropped.
// Generators whose type has no conversion rate are left out.
func (q *SourceQuery) GetGenerationDemand(o SourceOptions) (*frame.Frame, error) {
	s := q.filterElements(o.Filter)
	tables := q.generators.Category(results.CategoryGeneration)
	var entries []entry
	for _, name := range s.generators {
		f, ok := tables[name]
		if !ok {
			continue
		}
		gt, err := q.generatorType(name)
		if err != nil {
			return nil, err
		}
		if len(gt.ConversionRate) == 0 {
			continue
		}
		for _, profile := range gt.ConversionRate {
			series := frame.Str(profile.EnergyType)
			rates := pick(profile.Values, q.hourSample)
			hourRows(f, func(i, hour, year int, v float64) {
				if i >= len(rates) {
					return
				}
				d := v / rates[i]
				if math.IsNaN(d) {
					return
				}
				entries = append(entries, entry{element: name, year: year, hour: hour, series: series, value: d})
			})
		}
	}
	if !o.Hourly {
		scaleEntries(entries, q.hourlyScale)
	}
	return q.aggregate(entries, q.energyOptions(o))
}
