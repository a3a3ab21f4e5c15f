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

func (q *SourceQuery) generatorType(name string) (*network.GeneratorType, error) {
	g, ok := q.net.Generators()[name]
	if !ok {
		return nil, &LookupError{Kind: "generator", Name: name}
	}
	gt, ok := q.net.GeneratorTypes()[g.EnergySourceType]
	if !ok {
		return nil, &LookupError{Kind: "generator type", Name: g.EnergySourceType}
	}
	return gt, nil
}

// fuelUsageEntries converts generation into fuel volume. Outside hourly
// resolution the volume is scaled to annual totals. Generators whose type
// burns no fuel are left out.
func (q *SourceQuery) fuelUsageEntries(generators []string, hourly bool) ([]entry, error) {
	tables := q.generators.Category(results.CategoryGeneration)
	var out []entry
	for _, name := range generators {
		f, ok := tables[name]
		if !ok {
			continue
		}
		gt, err := q.generatorType(name)
		if err != nil {
			return nil, err
		}
		if gt.Fuel == "" {
			continue
		}
		fuel, ok := q.net.Fuels()[gt.Fuel]
		if !ok {
			return nil, &LookupError{Kind: "fuel", Name: gt.Fuel}
		}
		series := frame.Str(gt.Fuel)
		hourRows(f, func(_, hour, year int, v float64) {
			out = append(out, entry{element: name, year: year, hour: hour, series: series, value: v / fuel.EnergyPerUnit})
		})
	}
	if !hourly {
		scaleEntries(out, q.hourlyScale)
	}
	return out, nil
}

// GetFuelUsage is fuel volume burnt per fuel.
func (q *SourceQuery) GetFuelUsage(o SourceOptions) (*frame.Frame, error) {
	s := q.filterElements(o.Filter)
	entries, err := q.fuelUsageEntries(s.generators, o.Hourly)
	if err != nil {
		return nil, err
	}
	return q.aggregate(entries, aggregateOptions{
		indexName: FuelLabel,
		level:     o.Level,
		filter:    o.Filter,
		hourly:    o.Hourly,
	})
}

// GetFuelCost is fuel volume times the fuel's yearly price.
func (q *SourceQuery) GetFuelCost(level Level, filter Filter) (*frame.Frame, error) {
	s := q.filterElements(filter)
	entries, err := q.fuelUsageEntries(s.generators, false)
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return frame.Empty(), nil
	}
	sample := intSet(q.yearSample)
	for i, e := range entries {
		if _, ok := sample[e.year]; !ok {
			continue
		}
		fuel := q.net.Fuels()[e.series.String()]
		entries[i].value = e.value * at(fuel.Cost, e.year)
	}
	return q.aggregate(entries, aggregateOptions{
		indexName: FuelLabel,
		level:     level,
		filter:    filter,
	})
}

// emissionEntries applies each fuel's emission factor and the generator
// type's yearly reduction to fuel usage, for every network emission
// type and every sampled year.
func (q *SourceQuery) emissionEntries(generators []string, hourly bool) ([]entry, error) {
	usage, err := q.fuelUsageEntries(generators, hourly)
	if err != nil {
		return nil, err
	}
	sample := intSet(q.yearSample)
	emissionTypes := q.net.EmissionTypes()
	var out []entry
	for _, u := range usage {
		if _, ok := sample[u.year]; !ok {
			continue
		}
		gt, err := q.generatorType(u.element)
		if err != nil {
			return nil, err
		}
		fuel := q.net.Fuels()[gt.Fuel]
		for _, et := range emissionTypes {
			factor := fuel.Emission[et]
			reduction := 0.0
			if r, ok := gt.EmissionReduction[et]; ok && u.year < len(r) {
				reduction = r[u.year]
			}
			out = append(out, entry{
				element: u.element,
				year:    u.year,
				hour:    u.hour,
				series:  frame.Str(et),
				value:   u.value * factor * (1 - reduction),
			})
		}
	}
	return out, nil
}

// GetEmission is emitted quantity per emission type.
func (q *SourceQuery) GetEmission(o SourceOptions) (*frame.Frame, error) {
	return q.emission(o, false)
}

func (q *SourceQuery) emission(o SourceOptions, skipBinding bool) (*frame.Frame, error) {
	s := q.filterElements(o.Filter)
	entries, err := q.emissionEntries(s.generators, o.Hourly)
	if err != nil {
		return nil, err
	}
	return q.aggregate(entries, aggregateOptions{
		indexName:   EmissionLabel,
		level:       o.Level,
		filter:      o.Filter,
		hourly:      o.Hourly,
		skipBinding: skipBinding,
	})
}

// GetEmissionFeeTotalCost prices each generator's emissions with the
// fees it is subject to. When all of a generator's fees target the same
// emission type their prices are added up and charged once.
func (q *SourceQuery) GetEmissionFeeTotalCost(level Level, names []string) (*frame.Frame, error) {
	emissions, err := q.emission(SourceOptions{Level: LevelElement}, true)
	if err != nil {
		return nil, err
	}

	emitted := map[string]struct{}{}
	for _, k := range emissions.Index() {
		emitted[k[0].String()] = struct{}{}
	}

	var entries []entry
	feesByGenerator := GeneratorsEmissionTypes(q.net)
	for _, gen := range network.Names(feesByGenerator) {
		if _, ok := emitted[gen]; !ok {
			continue
		}
		fees := feesByGenerator[gen]
		types := map[string]struct{}{}
		for _, fee := range fees {
			if ef, ok := q.net.EmissionFees()[fee]; ok {
				types[ef.EmissionType] = struct{}{}
			}
		}
		if len(types) == 1 && len(fees) > 1 {
			entries = append(entries, q.emissionFeeEntries(emissions, fees[0], gen, q.summedPrice(fees))...)
			continue
		}
		for _, fee := range fees {
			entries = append(entries, q.emissionFeeEntries(emissions, fee, gen, nil)...)
		}
	}

	if len(entries) == 0 {
		return emissions.Map(func(float64) float64 { return math.NaN() }), nil
	}
	return q.aggregate(entries, aggregateOptions{
		indexName: EmissionLabel,
		level:     level,
		filter:    Filter{Names: names},
		zeroFill:  true,
	})
}

func (q *SourceQuery) summedPrice(fees []string) []float64 {
	var prices [][]float64
	n := 0
	for _, fee := range fees {
		if ef, ok := q.net.EmissionFees()[fee]; ok {
			prices = append(prices, ef.Price)
			n = max(n, len(ef.Price))
		}
	}
	total := make([]float64, n)
	for i := range total {
		for _, p := range prices {
			total[i] += at(p, i)
		}
	}
	return total
}

func (q *SourceQuery) emissionFeeEntries(emissions *frame.Frame, feeName, gen string, total []float64) []entry {
	fee, ok := q.net.EmissionFees()[feeName]
	if !ok {
		return nil
	}
	column := frame.Str(fee.EmissionType)
	if !emissions.HasColumn(column) {
		return nil
	}
	price := fee.Price
	if total != nil && len(total) >= len(q.yearSample) {
		price = total
	}
	years := slices.Clone(q.yearSample)
	slices.Sort(years)

	var out []entry
	for _, year := range years {
		v, ok := emissions.Get(frame.K(gen, year), column)
		if !ok {
			continue
		}
		cost := v * at(price, year)
		if math.IsNaN(cost) {
			continue
		}
		out = append(out, entry{element: gen, year: year, series: column, value: cost})
	}
	return out
}
