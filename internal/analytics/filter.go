// Gridlens - Energy System Model Results Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gridlens

package analytics

import (
	"fmt"
	"slices"

	"github.com/tomtom215/gridlens/internal/network"
)

// FilterKind says what Filter.Names refer to.
type FilterKind string

const (
	FilterNone  FilterKind = ""
	FilterBus   FilterKind = "bus"
	FilterStack FilterKind = "stack"
	FilterAggr  FilterKind = "aggr"
)

// ParseFilterKind validates a filter kind; the empty string means none.
func ParseFilterKind(s string) (FilterKind, error) {
	switch FilterKind(s) {
	case FilterNone, FilterBus, FilterStack, FilterAggr:
		return FilterKind(s), nil
	}
	return FilterNone, fmt.Errorf("invalid filter_type: %s. Must be one of ['aggr', 'bus', 'stack']", s)
}

// Filter narrows the generators and storages a metric covers. A nil
// Names slice means no names were given.
type Filter struct {
	Kind  FilterKind
	Names []string
}

// NoFilter covers the whole network.
var NoFilter = Filter{}

func (f Filter) structural() bool {
	return f.Kind != FilterNone && f.Names != nil
}

func (f Filter) postHoc() bool {
	return f.Kind == FilterNone && f.Names != nil
}

// scope is the concrete set of elements a filter resolves to.
type scope struct {
	generators []string
	storages   []string
	buses      []string
}

// FilterElements resolves f into sorted generator, storage and bus
// names. aggr goes through the consumers' stacks, stack through the
// stacks' outlet buses, bus uses the names as buses. Without a kind or
// without names the whole network is returned.
func (q *SourceQuery) FilterElements(f Filter) (generators, storages, buses []string) {
	s := q.filterElements(f)
	return s.generators, s.storages, s.buses
}

func (q *SourceQuery) filterElements(f Filter) scope {
	net := q.net
	if !f.structural() {
		return scope{
			generators: network.Names(net.Generators()),
			storages:   network.Names(net.Storages()),
			buses:      network.Names(net.Buses()),
		}
	}

	buses := toSet(f.Names)
	stacks := toSet(f.Names)
	if f.Kind == FilterAggr {
		stacks = map[string]struct{}{}
		for _, name := range f.Names {
			if aggr, ok := net.AggregatedConsumers()[name]; ok {
				for stack := range aggr.StackBaseFraction {
					stacks[stack] = struct{}{}
				}
			}
		}
	}
	if f.Kind == FilterStack || f.Kind == FilterAggr {
		buses = map[string]struct{}{}
		for stack := range stacks {
			if lbs, ok := net.LocalBalancingStacks()[stack]; ok {
				for _, bus := range lbs.BusesOut {
					buses[bus] = struct{}{}
				}
			}
		}
	}

	gens, stors := q.elementsOnBuses(buses)
	busList := make([]string, 0, len(buses))
	for b := range buses {
		busList = append(busList, b)
	}
	slices.Sort(busList)
	return scope{generators: gens, storages: stors, buses: busList}
}

func (q *SourceQuery) elementsOnBuses(buses map[string]struct{}) (generators, storages []string) {
	for _, name := range network.Names(q.net.Generators()) {
		for _, b := range q.net.Generators()[name].Buses {
			if _, ok := buses[b]; ok {
				generators = append(generators, name)
				break
			}
		}
	}
	for _, name := range network.Names(q.net.Storages()) {
		if _, ok := buses[q.net.Storages()[name].Bus]; ok {
			storages = append(storages, name)
		}
	}
	return generators, storages
}

// globalElements are the units on buses that are not the outlet of any
// local balancing stack.
func (q *SourceQuery) globalElements() (generators, storages []string) {
	outlets := map[string]struct{}{}
	for _, lbs := range q.net.LocalBalancingStacks() {
		for _, bus := range lbs.BusesOut {
			outlets[bus] = struct{}{}
		}
	}
	global := map[string]struct{}{}
	for name := range q.net.Buses() {
		if _, ok := outlets[name]; !ok {
			global[name] = struct{}{}
		}
	}
	return q.elementsOnBuses(global)
}
