// Gridlens - Energy System Model Results Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gridlens

// Package results holds the optimizer output tables once they are in
// memory. Tables are organised as group -> category -> name -> table,
// mirroring the result directory written by the optimizer.
package results

import (
	"github.com/tomtom215/gridlens/internal/frame"
)

// Result group directory names.
const (
	GroupGenerators = "generators_results"
	GroupStorages   = "storages_results"
	GroupBuses      = "bus_results"
	GroupLines      = "lines_results"
	GroupFractions  = "fractions_results"
)

// Groups lists every result group in load order.
var Groups = []string{GroupGenerators, GroupStorages, GroupBuses, GroupLines, GroupFractions}

// Result categories read by the analytics layer.
const (
	CategoryCapacity                = "capacity"
	CategoryGeneration              = "generation"
	CategoryGenerationPerEnergyType = "generation_per_energy_type"
	CategoryDumpEnergyPerEnergyType = "dump_energy_per_energy_type"
	CategoryLoad                    = "load"
	CategoryStateOfCharge           = "state_of_charge"
	CategoryGlobalCapex             = "global_capex"
	CategoryLocalCapex              = "local_capex"
	CategoryGenerationENS           = "generation_ens"
	CategoryFlow                    = "flow"
	CategoryFraction                = "fraction"
)

// EnergyTypeColumn is folded into the row key of per-energy-type tables.
const EnergyTypeColumn = "Energy Type"

// ObjectiveFunctionFile is the stem of the objective value file at the
// root of the result directory.
const ObjectiveFunctionFile = "Objective_func_value"

// Tables is one result group: category -> name -> table.
type Tables map[string]map[string]*frame.Frame

// Category returns the tables of a category. A missing category yields
// a nil map, which reads as empty.
func (t Tables) Category(category string) map[string]*frame.Frame {
	if t == nil {
		return nil
	}
	return t[category]
}

// Table returns a single table.
func (t Tables) Table(category, name string) (*frame.Frame, bool) {
	f, ok := t.Category(category)[name]
	return f, ok
}

// Put stores a table, creating the category when needed.
func (t Tables) Put(category, name string, f *frame.Frame) {
	if t[category] == nil {
		t[category] = make(map[string]*frame.Frame)
	}
	t[category][name] = f
}

// Set is the full result dictionary of one optimizer run.
type Set struct {
	Generators Tables
	Storages   Tables
	Buses      Tables
	Lines      Tables
	Fractions  Tables
}

// NewSet returns a set with every group initialised.
func NewSet() *Set {
	return &Set{
		Generators: Tables{},
		Storages:   Tables{},
		Buses:      Tables{},
		Lines:      Tables{},
		Fractions:  Tables{},
	}
}

// Group returns the tables for a group directory name.
func (s *Set) Group(name string) Tables {
	switch name {
	case GroupGenerators:
		return s.Generators
	case GroupStorages:
		return s.Storages
	case GroupBuses:
		return s.Buses
	case GroupLines:
		return s.Lines
	case GroupFractions:
		return s.Fractions
	}
	return nil
}

// Summary counts tables per group.
func (s *Set) Summary() map[string]int {
	out := make(map[string]int, len(Groups))
	for _, g := range Groups {
		n := 0
		for _, names := range s.Group(g) {
			n += len(names)
		}
		out[g] = n
	}
	return out
}
