// Gridlens - Energy System Model Results Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gridlens

package analytics

import (
	"fmt"
	"slices"

	"github.com/tomtom215/gridlens/internal/frame"
	"github.com/tomtom215/gridlens/internal/network"
	"github.com/tomtom215/gridlens/internal/results"
)

// LBSParams is everything an LBSQuery reads.
type LBSParams struct {
	Network      network.Network
	Fractions    results.Tables
	Generators   results.Tables
	Storages     results.Tables
	YearsBinding *frame.Binding
}

// LBSQuery reports local balancing stack fractions and capacity.
type LBSQuery struct {
	net        network.Network
	fractions  map[string]*frame.Frame
	generators results.Tables
	storages   results.Tables
	binding    *frame.Binding
}

// NewLBSQuery builds a local balancing stack query.
func NewLBSQuery(p LBSParams) *LBSQuery {
	return &LBSQuery{
		net:        p.Network,
		fractions:  p.Fractions.Category(results.CategoryFraction),
		generators: p.Generators,
		storages:   p.Storages,
		binding:    p.YearsBinding,
	}
}

// LBSNames is the sorted union of stacks found in any aggregate's
// fraction table.
func (q *LBSQuery) LBSNames() []string {
	seen := map[string]struct{}{}
	for _, f := range q.fractions {
		for _, c := range f.Columns() {
			seen[c.String()] = struct{}{}
		}
	}
	return network.Names(seen)
}

// lbsFraction has one column per aggregate using the stack. Columns that
// are zero in every year are dropped; if none is left, a zero column is
// returned for the first aggregate offering the stack.
func (q *LBSQuery) lbsFraction(name string, applyBinding bool) (*frame.Frame, error) {
	column := frame.Str(name)
	var parts []*frame.Frame
	var aggregates []string
	for _, aggr := range network.Names(q.fractions) {
		f := q.fractions[aggr]
		values, ok := f.Column(column)
		if !ok {
			continue
		}
		part := frame.New([]string{YearLabel}, "", []frame.Label{frame.Str(aggr)})
		for i, k := range f.Index() {
			part.AddRow(k, []float64{values[i]})
		}
		parts = append(parts, part)
		aggregates = append(aggregates, aggr)
	}
	all := frame.JoinOuter(parts...)
	all.IndexNames = []string{YearLabel}

	var keep []frame.Label
	for _, c := range all.Columns() {
		values, _ := all.Column(c)
		if slices.ContainsFunc(values, func(v float64) bool { return v != 0 }) {
			keep = append(keep, c)
		}
	}
	out := all.Select(keep)

	if len(keep) == 0 {
		for _, aggr := range aggregates {
			ac, ok := q.net.AggregatedConsumers()[aggr]
			if !ok || !slices.Contains(ac.AvailableStacks, name) {
				continue
			}
			zeros := frame.New([]string{YearLabel}, "", []frame.Label{frame.Str(aggr)})
			for _, k := range all.Index() {
				zeros.AddRow(k, []float64{0})
			}
			out = zeros
			break
		}
	}
	if !applyBinding {
		return out, nil
	}
	return ReindexYears(out, q.binding, false)
}

// attachedSources lists the generators and storages on the stack's
// buses, without duplicates.
func (q *LBSQuery) attachedSources(name string) (generators, storages []string, err error) {
	lbs, ok := q.net.LocalBalancingStacks()[name]
	if !ok {
		return nil, nil, &LookupError{Kind: "local balancing stack", Name: name}
	}
	for _, et := range network.Names(lbs.Buses) {
		for _, busName := range lbs.Buses[et] {
			bus, ok := q.net.Buses()[busName]
			if !ok {
				return nil, nil, &LookupError{Kind: "bus", Name: busName}
			}
			for _, g := range bus.Generators {
				if !slices.Contains(generators, g) {
					generators = append(generators, g)
				}
			}
			for _, s := range bus.Storages {
				if !slices.Contains(storages, s) {
					storages = append(storages, s)
				}
			}
		}
	}
	return generators, storages, nil
}

// fractionFactor is the number of consumers on the stack per year: the
// last non-zero aggregate fraction times that aggregate's consumer count.
// It is all zeros when the stack is inactive everywhere.
func (q *LBSQuery) fractionFactor(name string) ([]frame.Key, []float64, error) {
	frac, err := q.lbsFraction(name, false)
	if err != nil {
		return nil, nil, err
	}
	var nonZero []frame.Label
	for _, c := range frac.Columns() {
		values, _ := frac.Column(c)
		if slices.ContainsFunc(values, func(v float64) bool { return v != 0 }) {
			nonZero = append(nonZero, c)
		}
	}
	factor := make([]float64, frac.Len())
	if len(nonZero) == 0 {
		return frac.Index(), factor, nil
	}

	last := nonZero[len(nonZero)-1]
	ac, ok := q.net.AggregatedConsumers()[last.String()]
	if !ok {
		return nil, nil, &LookupError{Kind: "aggregated consumer", Name: last.String()}
	}
	values, _ := frac.Column(last)
	for i, k := range frac.Index() {
		year, ok := k[0].AsInt()
		if !ok {
			return nil, nil, fmt.Errorf("fraction results: index %q is not a year", k[0].String())
		}
		factor[i] = values[i] * at(ac.NConsumers, year)
	}
	return frac.Index(), factor, nil
}

// lbsCapacity de-normalises attached capacity by the fraction factor,
// mapping x/0 and 0/0 to 0.
func (q *LBSQuery) lbsCapacity(name string) (*frame.Frame, error) {
	generators, storages, err := q.attachedSources(name)
	if err != nil {
		return nil, err
	}
	if len(generators) == 0 && len(storages) == 0 {
		return frame.EmptyWithIndex(YearLabel), nil
	}
	_, factor, err := q.fractionFactor(name)
	if err != nil {
		return nil, err
	}

	var parts []*frame.Frame
	for _, src := range []struct {
		tables results.Tables
		names  []string
	}{{q.generators, generators}, {q.storages, storages}} {
		if len(src.names) == 0 {
			continue
		}
		capacity, ok := src.tables.Table(results.CategoryCapacity, results.CategoryCapacity)
		if !ok {
			return nil, &LookupError{Kind: "result table", Name: results.CategoryCapacity}
		}
		part, err := divideColumns(capacity, src.names, factor)
		if err != nil {
			return nil, fmt.Errorf("local balancing stack %q: %w", name, err)
		}
		parts = append(parts, part)
	}

	out := parts[0]
	if len(parts) == 2 {
		out = frame.JoinOuter(parts[0], parts[1])
	}
	out.IndexNames = []string{YearLabel}
	return ReindexYears(out, q.binding, false)
}

func divideColumns(capacity *frame.Frame, names []string, factor []float64) (*frame.Frame, error) {
	if capacity.Len() != len(factor) {
		return nil, fmt.Errorf("capacity has %d years but the fraction factor has %d", capacity.Len(), len(factor))
	}
	cols := make([]frame.Label, len(names))
	for j, n := range names {
		cols[j] = frame.Str(n)
		if !capacity.HasColumn(cols[j]) {
			return nil, &LookupError{Kind: "capacity column", Name: n}
		}
	}
	out := frame.New(capacity.IndexNames, "", cols)
	quotients := make([][]float64, len(cols))
	for j, c := range cols {
		values, _ := capacity.Column(c)
		quotients[j] = DivideOrDefault(values, factor, 0)
	}
	row := make([]float64, len(cols))
	for i, k := range capacity.Index() {
		for j := range cols {
			row[j] = quotients[j][i]
		}
		out.AddRow(k, row)
	}
	return out, nil
}

// GetLBSFraction returns the per-aggregate fraction of consumers served
// by each selected stack.
func (q *LBSQuery) GetLBSFraction(sel Selector) (Result, error) {
	return Apply(sel, q.LBSNames, func(name string) (*frame.Frame, error) {
		return q.lbsFraction(name, true)
	})
}

// GetLBSCapacity returns the de-normalised capacity of each selected
// stack's generators and storages.
func (q *LBSQuery) GetLBSCapacity(sel Selector) (Result, error) {
	return Apply(sel, q.LBSNames, q.lbsCapacity)
}
