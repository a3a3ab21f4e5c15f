// Gridlens - Energy System Model Results Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gridlens

package network

import "maps"

// AggregateYears returns a copy of the model whose per-year series are
// taken at the given calendar years, so position i of every series is
// reduced year i. years[i] is the first calendar year of block i. Hourly
// series are left alone. Constants.NYears becomes len(years).
func (m *Model) AggregateYears(years []int) (*Model, error) {
	src := &m.def
	def := Definition{
		Constants:            Constants{NHours: src.Constants.NHours, NYears: len(years)},
		EmissionTypes:        append([]string(nil), src.EmissionTypes...),
		Generators:           cloneEach(src.Generators, func(g Generator) Generator { return g }),
		Storages:             cloneEach(src.Storages, func(s Storage) Storage { return s }),
		Buses:                cloneEach(src.Buses, func(b Bus) Bus { return b }),
		Lines:                cloneEach(src.Lines, func(l Line) Line { return l }),
		LocalBalancingStacks: cloneEach(src.LocalBalancingStacks, func(l LocalBalancingStack) LocalBalancingStack { return l }),
		TransmissionFees:     cloneEach(src.TransmissionFees, func(f TransmissionFee) TransmissionFee { return f }),
		AggregatedConsumers: cloneEach(src.AggregatedConsumers, func(ac AggregatedConsumer) AggregatedConsumer {
			ac.NConsumers = pickYears(ac.NConsumers, years)
			ac.YearlyEnergyUsage = pickYearsEach(ac.YearlyEnergyUsage, years)
			return ac
		}),
		GeneratorTypes: cloneEach(src.GeneratorTypes, func(gt GeneratorType) GeneratorType {
			gt.Capex = pickYears(gt.Capex, years)
			gt.Opex = pickYears(gt.Opex, years)
			gt.EmissionReduction = pickYearsEach(gt.EmissionReduction, years)
			return gt
		}),
		StorageTypes: cloneEach(src.StorageTypes, func(st StorageType) StorageType {
			st.Capex = pickYears(st.Capex, years)
			st.Opex = pickYears(st.Opex, years)
			return st
		}),
		Fuels: cloneEach(src.Fuels, func(f Fuel) Fuel {
			f.Cost = pickYears(f.Cost, years)
			f.Availability = pickYears(f.Availability, years)
			return f
		}),
		EmissionFees: cloneEach(src.EmissionFees, func(ef EmissionFee) EmissionFee {
			ef.Price = pickYears(ef.Price, years)
			return ef
		}),
	}
	return NewModel(def)
}

// cloneEach copies every element of m through fn into a new map.
func cloneEach[T any](m map[string]*T, fn func(T) T) map[string]*T {
	out := make(map[string]*T, len(m))
	for k, v := range m {
		c := fn(*v)
		out[k] = &c
	}
	return out
}

// pickYears returns s[y] for each y in years. Years past the end of s are
// dropped, so a short series stays short.
func pickYears(s []float64, years []int) []float64 {
	if s == nil {
		return nil
	}
	out := make([]float64, 0, len(years))
	for _, y := range years {
		if y < 0 || y >= len(s) {
			break
		}
		out = append(out, s[y])
	}
	return out
}

func pickYearsEach(m map[string][]float64, years []int) map[string][]float64 {
	if m == nil {
		return nil
	}
	out := maps.Clone(m)
	for k, s := range out {
		out[k] = pickYears(s, years)
	}
	return out
}
