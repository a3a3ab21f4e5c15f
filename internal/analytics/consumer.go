// Gridlens - Energy System Model Results Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gridlens

package analytics

import (
	"github.com/tomtom215/gridlens/internal/frame"
	"github.com/tomtom215/gridlens/internal/network"
	"github.com/tomtom215/gridlens/internal/results"
)

// ConsumerParams is everything a ConsumerQuery reads.
type ConsumerParams struct {
	Network      network.Network
	Fractions    results.Tables
	YearsBinding *frame.Binding
}

// ConsumerQuery reports aggregated consumer parameters.
type ConsumerQuery struct {
	net       network.Network
	fractions map[string]*frame.Frame
	binding   *frame.Binding
}

// NewConsumerQuery builds an aggregated consumer query.
func NewConsumerQuery(p ConsumerParams) *ConsumerQuery {
	return &ConsumerQuery{
		net:       p.Network,
		fractions: p.Fractions.Category(results.CategoryFraction),
		binding:   p.YearsBinding,
	}
}

// perAggregate builds one frame per selected aggregated consumer. An
// empty selection yields a single empty frame.
func (q *ConsumerQuery) perAggregate(sel Selector, build func(*network.AggregatedConsumer) *frame.Frame) (Result, error) {
	selected := DictFilter(q.net.AggregatedConsumers(), sel)
	if len(selected) == 0 {
		return Single(frame.Empty()), nil
	}
	var r Result
	if sel.IsOne() {
		r = Single(build(selected[sel.Names()[0]]))
	} else {
		out := make(map[string]*frame.Frame, len(selected))
		for name, ac := range selected {
			out[name] = build(ac)
		}
		r = Mapped(out)
	}
	return HandleNSampleResults(r, q.binding, false)
}

func yearSeries(column string, values []float64) *frame.Frame {
	f := frame.New([]string{YearLabel}, "", []frame.Label{frame.Str(column)})
	for i, v := range values {
		f.AddRow(frame.K(i), []float64{v})
	}
	return f
}

func yearTable(columns map[string][]float64, scale []float64) *frame.Frame {
	names := network.Names(columns)
	cols := make([]frame.Label, len(names))
	n := 0
	for j, name := range names {
		cols[j] = frame.Str(name)
		n = max(n, len(columns[name]))
	}
	if scale != nil {
		n = max(n, len(scale))
	}
	f := frame.New([]string{YearLabel}, "", cols)
	row := make([]float64, len(cols))
	for i := 0; i < n; i++ {
		for j, name := range names {
			row[j] = at(columns[name], i)
			if scale != nil {
				row[j] *= at(scale, i)
			}
		}
		f.AddRow(frame.K(i), row)
	}
	return f
}

// GetFractions returns the stack fraction results of the selected
// aggregates.
func (q *ConsumerQuery) GetFractions(sel Selector) (Result, error) {
	selected := DictFilter(q.fractions, sel)
	if len(selected) == 0 {
		return Single(frame.Empty()), nil
	}
	var r Result
	if sel.IsOne() {
		r = Single(selected[sel.Names()[0]])
	} else {
		r = Mapped(selected)
	}
	return HandleNSampleResults(r, q.binding, false)
}

// GetNConsumers returns the consumer count per year.
func (q *ConsumerQuery) GetNConsumers(sel Selector) (Result, error) {
	return q.perAggregate(sel, func(ac *network.AggregatedConsumer) *frame.Frame {
		return yearSeries(NConsumersColumn, ac.NConsumers)
	})
}

// GetYearlyEnergyUsage returns per-consumer usage per energy type.
func (q *ConsumerQuery) GetYearlyEnergyUsage(sel Selector) (Result, error) {
	return q.perAggregate(sel, func(ac *network.AggregatedConsumer) *frame.Frame {
		return yearTable(ac.YearlyEnergyUsage, nil)
	})
}

// GetTotalYearlyEnergyUsage is per-consumer usage times the consumer
// count.
func (q *ConsumerQuery) GetTotalYearlyEnergyUsage(sel Selector) (Result, error) {
	return q.perAggregate(sel, func(ac *network.AggregatedConsumer) *frame.Frame {
		return yearTable(ac.YearlyEnergyUsage, ac.NConsumers)
	})
}

// GetAggregateParameters returns consumer count and total usable area
// for every selected aggregate, indexed by (Aggregate Name, Year). A nil
// average area counts as 1.
func (q *ConsumerQuery) GetAggregateParameters(sel Selector) (*frame.Frame, error) {
	selected := DictFilter(q.net.AggregatedConsumers(), sel)
	if len(selected) == 0 {
		return frame.Empty(), nil
	}
	cols := []frame.Label{frame.Str(NConsumersParamColumn), frame.Str(TotalUsableAreaColumn)}
	out := frame.New([]string{AggregateNameLabel, YearLabel}, "", cols)
	for _, name := range network.Names(selected) {
		ac := selected[name]
		area := 1.0
		if ac.AverageArea != nil {
			area = *ac.AverageArea
		}
		for year, n := range ac.NConsumers {
			out.AddRow(frame.K(name, year), []float64{n, n * area})
		}
	}
	return ReindexYears(out, q.binding, true)
}

// GetAggregateElementsTypeAttachments marks, per (aggregate, stack), the
// generator and storage types reachable through the stack's buses.
func (q *ConsumerQuery) GetAggregateElementsTypeAttachments(sel Selector) (*frame.Frame, error) {
	names := sel.Names()
	if sel.IsAll() {
		names = network.Names(q.net.AggregatedConsumers())
	}
	var cells []frame.Cell
	for _, aggr := range names {
		ac, ok := q.net.AggregatedConsumers()[aggr]
		if !ok {
			continue
		}
		for _, stack := range ac.AvailableStacks {
			lbs, ok := q.net.LocalBalancingStacks()[stack]
			if !ok {
				return nil, &LookupError{Kind: "local balancing stack", Name: stack}
			}
			types, err := q.typesOnBuses(lbs)
			if err != nil {
				return nil, err
			}
			for _, t := range types {
				cells = append(cells, frame.Cell{Row: frame.K(aggr, stack), Column: frame.Str(t), Value: 1})
			}
		}
	}
	if len(cells) == 0 {
		return frame.Empty(), nil
	}
	out := frame.Pivot([]string{attachmentAggregateLevel, attachmentStackLevel}, attachmentColumnName, cells, 0)
	return out.Map(func(v float64) float64 {
		if v > 0 {
			return 1
		}
		return 0
	}), nil
}

func (q *ConsumerQuery) typesOnBuses(lbs *network.LocalBalancingStack) ([]string, error) {
	seen := map[string]struct{}{}
	for _, buses := range lbs.Buses {
		for _, busName := range buses {
			bus, ok := q.net.Buses()[busName]
			if !ok {
				return nil, &LookupError{Kind: "bus", Name: busName}
			}
			for _, g := range bus.Generators {
				seen[q.net.Generators()[g].EnergySourceType] = struct{}{}
			}
			for _, s := range bus.Storages {
				seen[q.net.Storages()[s].EnergySourceType] = struct{}{}
			}
		}
	}
	return network.Names(seen), nil
}
