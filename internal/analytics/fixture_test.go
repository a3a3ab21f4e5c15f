// Gridlens - Energy System Model Results Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gridlens

package analytics

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tomtom215/gridlens/internal/frame"
	"github.com/tomtom215/gridlens/internal/network"
	"github.com/tomtom215/gridlens/internal/results"
)

const testHourlyScale = 10.0

func ptr[T any](v T) *T { return &v }

func yearLabels(n int) []frame.Label {
	out := make([]frame.Label, n)
	for i := range out {
		out[i] = frame.Int(i)
	}
	return out
}

// hoursByYear builds an hour x year table; rows[h][y].
func hoursByYear(rows ...[]float64) *frame.Frame {
	f := frame.New([]string{HourLabel}, "", yearLabels(len(rows[0])))
	for h, r := range rows {
		f.AddRow(frame.K(h), r)
	}
	return f
}

// perEnergyType builds an (Hour, Energy Type) x year table for one
// energy type.
func perEnergyType(et string, rows ...[]float64) *frame.Frame {
	f := frame.New([]string{HourLabel, EnergyTypeLabel}, "", yearLabels(len(rows[0])))
	for h, r := range rows {
		f.AddRow(frame.K(h, et), r)
	}
	return f
}

// byYear builds a year x name table from columns.
func byYear(cols map[string][]float64) *frame.Frame {
	names := network.Names(cols)
	labels := make([]frame.Label, len(names))
	for i, n := range names {
		labels[i] = frame.Str(n)
	}
	f := frame.New([]string{YearLabel}, "", labels)
	for y := 0; y < len(cols[names[0]]); y++ {
		row := make([]float64, len(names))
		for i, n := range names {
			row[i] = cols[n][y]
		}
		f.AddRow(frame.K(y), row)
	}
	return f
}

func value(t *testing.T, f *frame.Frame, k frame.Key, col frame.Label) float64 {
	t.Helper()
	v, ok := f.Get(k, col)
	require.Truef(t, ok, "cell %v/%v missing", k, col)
	return v
}

func testNetwork(t *testing.T) *network.Model {
	t.Helper()
	m, err := network.NewModel(network.Definition{
		Constants:     network.Constants{NHours: 4, NYears: 3},
		EmissionTypes: []string{"CO2", "SO2"},
		Buses: map[string]*network.Bus{
			"bus_el":   {EnergyType: "ELECTRICITY"},
			"bus_heat": {EnergyType: "HEAT"},
			"lbs_el":   {EnergyType: "ELECTRICITY"},
			"lbs_heat": {EnergyType: "HEAT"},
		},
		Generators: map[string]*network.Generator{
			"gen1": {EnergySourceType: "GEN_TYPE_1", Buses: []string{"bus_el"}, EmissionFees: []string{"ets_co2", "ets_co2_b"}},
			"gen2": {EnergySourceType: "GEN_TYPE_2", Buses: []string{"lbs_heat"}, EmissionFees: []string{"ets_co2", "so2_fee"}},
			"gen3": {EnergySourceType: "GEN_TYPE_1", Buses: []string{"lbs_el"}},
		},
		Storages: map[string]*network.Storage{
			"stor1": {EnergySourceType: "STOR_TYPE", Bus: "lbs_heat"},
		},
		Lines: map[string]*network.Line{
			"bus_el->lbs_el":     {TransmissionFee: "tf1"},
			"bus_heat->lbs_heat": {},
		},
		LocalBalancingStacks: map[string]*network.LocalBalancingStack{
			"lbs1": {
				BusesOut: map[string]string{"ELECTRICITY": "lbs_el", "HEAT": "lbs_heat"},
				Buses:    map[string][]string{"ELECTRICITY": {"lbs_el"}, "HEAT": {"lbs_heat"}},
			},
		},
		AggregatedConsumers: map[string]*network.AggregatedConsumer{
			"aggr1": {
				StackBaseFraction: map[string]float64{"lbs1": 1},
				AvailableStacks:   []string{"lbs1"},
				NConsumers:        []float64{10, 10, 10},
				YearlyEnergyUsage: map[string][]float64{"HEAT": {1, 2, 3}},
				AverageArea:       ptr(2.0),
			},
			"aggr2": {
				NConsumers:  []float64{100, 100, 100},
				AverageArea: ptr(2.0),
			},
		},
		GeneratorTypes: map[string]*network.GeneratorType{
			"GEN_TYPE_1": {
				Capex:             []float64{1, 1, 1},
				Opex:              []float64{2, 2, 2},
				BuildTime:         1,
				Fuel:              "coal",
				ConversionRate:    []network.Profile{{EnergyType: "ELECTRICITY", Values: []float64{1, 1, 1, 1}}},
				Efficiency:        []network.Profile{{EnergyType: "ELECTRICITY", Values: []float64{4, 4, 4, 4}}},
				EmissionReduction: map[string][]float64{"CO2": {0, 0.5, 0}},
			},
			"GEN_TYPE_2": {
				Capex:      []float64{3, 3, 3},
				Opex:       []float64{1, 1, 1},
				BuildTime:  3,
				Fuel:       "gas",
				Efficiency: []network.Profile{{EnergyType: "HEAT", Values: []float64{2, 2}}},
			},
		},
		StorageTypes: map[string]*network.StorageType{
			"STOR_TYPE": {EnergyType: "HEAT", Capex: []float64{1, 1, 1}, Opex: []float64{1, 1, 1}},
		},
		Fuels: map[string]*network.Fuel{
			"coal": {EnergyPerUnit: 2, Cost: []float64{1, 2, 3}, Availability: []float64{10, 10, 10}, Emission: map[string]float64{"CO2": 1}},
			"gas":  {EnergyPerUnit: 1, Cost: []float64{1, 1, 1}, Availability: []float64{5, 5, 5}, Emission: map[string]float64{"CO2": 0.5, "SO2": 0.1}},
		},
		TransmissionFees: map[string]*network.TransmissionFee{
			"tf1": {Fee: []float64{1, 2, 3, 4}},
		},
		EmissionFees: map[string]*network.EmissionFee{
			"ets_co2":   {EmissionType: "CO2", Price: []float64{10, 10, 10}},
			"ets_co2_b": {EmissionType: "CO2", Price: []float64{1, 1, 1}},
			"so2_fee":   {EmissionType: "SO2", Price: []float64{5, 5, 5}},
		},
	})
	require.NoError(t, err)
	return m
}

func testResults() *results.Set {
	s := results.NewSet()

	s.Generators.Put(results.CategoryGeneration, "gen1", hoursByYear([]float64{1, 2, 3}, []float64{1, 2, 3}))
	s.Generators.Put(results.CategoryGeneration, "gen2", hoursByYear([]float64{2, 2, 2}, []float64{2, 2, 2}))
	s.Generators.Put(results.CategoryGeneration, "gen3", hoursByYear([]float64{0, 0, 0}, []float64{1, 1, 1}))

	s.Generators.Put(results.CategoryGenerationPerEnergyType, "gen1", perEnergyType("ELECTRICITY", []float64{1, 2, 3}, []float64{1, 2, 3}))
	s.Generators.Put(results.CategoryGenerationPerEnergyType, "gen2", perEnergyType("HEAT", []float64{2, 2, 2}, []float64{2, 2, 2}))
	s.Generators.Put(results.CategoryGenerationPerEnergyType, "gen3", perEnergyType("ELECTRICITY", []float64{0, 0, 0}, []float64{1, 1, 1}))
	s.Generators.Put(results.CategoryDumpEnergyPerEnergyType, "gen1", perEnergyType("ELECTRICITY", []float64{0, 1, 0}, []float64{0, 1, 0}))

	s.Generators.Put(results.CategoryCapacity, results.CategoryCapacity, byYear(map[string][]float64{
		"gen1": {10, 20, 30},
		"gen2": {10, 10, 10},
		"gen3": {1, 1, 1},
	}))
	s.Generators.Put(results.CategoryGlobalCapex, results.CategoryGlobalCapex, byYear(map[string][]float64{
		"gen1": {100, 100, 100},
	}))
	s.Generators.Put(results.CategoryLocalCapex, "aggr1", byYear(map[string][]float64{
		"GEN_TYPE_1": {7, 7, 7},
		"GEN_TYPE_2": {8, 8, 8},
	}))

	s.Storages.Put(results.CategoryGeneration, "stor1", hoursByYear([]float64{1, 1, 1}, []float64{0, 0, 0}))
	s.Storages.Put(results.CategoryLoad, "stor1", hoursByYear([]float64{2, 2, 2}, []float64{2, 2, 2}))
	s.Storages.Put(results.CategoryStateOfCharge, "stor1", hoursByYear([]float64{5, 5, 5}, []float64{5, 5, 5}))
	s.Storages.Put(results.CategoryCapacity, results.CategoryCapacity, byYear(map[string][]float64{
		"stor1": {5, 5, 5},
	}))

	s.Buses.Put(results.CategoryGenerationENS, "bus_el", hoursByYear([]float64{0.5, 0.5, 0.5}, []float64{0.5, 0.5, 0.5}))

	s.Lines.Put(results.CategoryFlow, "bus_el->lbs_el", hoursByYear([]float64{1, 1, 1}, []float64{2, 2, 2}))
	s.Lines.Put(results.CategoryFlow, "bus_heat->lbs_heat", hoursByYear([]float64{3, 3, 3}, []float64{3, 3, 3}))

	s.Fractions.Put(results.CategoryFraction, "aggr1", byYear(map[string][]float64{"lbs1": {0.5, 0.5, 0.5}}))
	s.Fractions.Put(results.CategoryFraction, "aggr2", byYear(map[string][]float64{"lbs1": {0, 0, 0}}))
	return s
}

func newTestSourceQuery(t *testing.T, cost CapacityCost, binding *frame.Binding) *SourceQuery {
	t.Helper()
	res := testResults()
	q, err := NewSourceQuery(SourceParams{
		Network:      testNetwork(t),
		Generators:   res.Generators,
		Storages:     res.Storages,
		Buses:        res.Buses,
		YearSample:   []int{0, 1, 2},
		DiscountRate: []float64{0.02, 0.02, 0.02},
		HourlyScale:  testHourlyScale,
		HourSample:   []int{0, 1},
		CapacityCost: cost,
		YearsBinding: binding,
	})
	require.NoError(t, err)
	return q
}
