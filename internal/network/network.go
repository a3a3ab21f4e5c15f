// Gridlens - Energy System Model Results Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gridlens

package network

import (
	"maps"
	"slices"
)

// Network is the read-only view the analytics layer uses.
// Returned maps must not be modified.
type Network interface {
	Generators() map[string]*Generator
	Storages() map[string]*Storage
	Buses() map[string]*Bus
	Lines() map[string]*Line
	LocalBalancingStacks() map[string]*LocalBalancingStack
	AggregatedConsumers() map[string]*AggregatedConsumer
	GeneratorTypes() map[string]*GeneratorType
	StorageTypes() map[string]*StorageType
	Fuels() map[string]*Fuel
	TransmissionFees() map[string]*TransmissionFee
	EmissionFees() map[string]*EmissionFee
	EmissionTypes() []string
	Constants() Constants
}

// Names returns the keys of m in ascending order.
func Names[T any](m map[string]T) []string {
	return slices.Sorted(maps.Keys(m))
}

// Definition is the serialisable form of a network.
type Definition struct {
	Constants            Constants                       `json:"constants"`
	EmissionTypes        []string                        `json:"emission_types"`
	Generators           map[string]*Generator           `json:"generators" validate:"dive"`
	Storages             map[string]*Storage             `json:"storages" validate:"dive"`
	Buses                map[string]*Bus                 `json:"buses" validate:"dive"`
	Lines                map[string]*Line                `json:"lines" validate:"dive"`
	LocalBalancingStacks map[string]*LocalBalancingStack `json:"local_balancing_stacks" validate:"dive"`
	AggregatedConsumers  map[string]*AggregatedConsumer  `json:"aggregated_consumers" validate:"dive"`
	GeneratorTypes       map[string]*GeneratorType       `json:"generator_types" validate:"dive"`
	StorageTypes         map[string]*StorageType         `json:"storage_types" validate:"dive"`
	Fuels                map[string]*Fuel                `json:"fuels" validate:"dive"`
	TransmissionFees     map[string]*TransmissionFee     `json:"transmission_fees" validate:"dive"`
	EmissionFees         map[string]*EmissionFee         `json:"emission_fees" validate:"dive"`
}

// Model is the in-memory Network.
type Model struct {
	def Definition
}

var _ Network = (*Model)(nil)

// NewModel names every element after its map key, derives bus
// attachments and validates the references between collections.
// The definition is owned by the model afterwards.
func NewModel(def Definition) (*Model, error) {
	m := &Model{def: def}
	m.normalize()
	m.link()
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return m, nil
}

func (m *Model) normalize() {
	d := &m.def
	if d.Generators == nil {
		d.Generators = map[string]*Generator{}
	}
	if d.Storages == nil {
		d.Storages = map[string]*Storage{}
	}
	if d.Buses == nil {
		d.Buses = map[string]*Bus{}
	}
	if d.Lines == nil {
		d.Lines = map[string]*Line{}
	}
	if d.LocalBalancingStacks == nil {
		d.LocalBalancingStacks = map[string]*LocalBalancingStack{}
	}
	if d.AggregatedConsumers == nil {
		d.AggregatedConsumers = map[string]*AggregatedConsumer{}
	}
	if d.GeneratorTypes == nil {
		d.GeneratorTypes = map[string]*GeneratorType{}
	}
	if d.StorageTypes == nil {
		d.StorageTypes = map[string]*StorageType{}
	}
	if d.Fuels == nil {
		d.Fuels = map[string]*Fuel{}
	}
	if d.TransmissionFees == nil {
		d.TransmissionFees = map[string]*TransmissionFee{}
	}
	if d.EmissionFees == nil {
		d.EmissionFees = map[string]*EmissionFee{}
	}

	for k, v := range d.Generators {
		v.Name = k
	}
	for k, v := range d.Storages {
		v.Name = k
	}
	for k, v := range d.Buses {
		v.Name = k
	}
	for k, v := range d.Lines {
		v.Name = k
	}
	for k, v := range d.LocalBalancingStacks {
		v.Name = k
	}
	for k, v := range d.AggregatedConsumers {
		v.Name = k
	}
	for k, v := range d.GeneratorTypes {
		v.Name = k
	}
	for k, v := range d.StorageTypes {
		v.Name = k
	}
	for k, v := range d.Fuels {
		v.Name = k
	}
	for k, v := range d.TransmissionFees {
		v.Name = k
	}
	for k, v := range d.EmissionFees {
		v.Name = k
	}
}

// link fills Bus.Generators and Bus.Storages in name order.
func (m *Model) link() {
	for _, b := range m.def.Buses {
		b.Generators = nil
		b.Storages = nil
	}
	for _, name := range Names(m.def.Generators) {
		for _, bus := range m.def.Generators[name].Buses {
			if b, ok := m.def.Buses[bus]; ok {
				b.Generators = append(b.Generators, name)
			}
		}
	}
	for _, name := range Names(m.def.Storages) {
		if b, ok := m.def.Buses[m.def.Storages[name].Bus]; ok {
			b.Storages = append(b.Storages, name)
		}
	}
}

func (m *Model) Generators() map[string]*Generator { return m.def.Generators }
func (m *Model) Storages() map[string]*Storage { return m.def.Storages }
func (m *Model) Buses() map[string]*Bus { return m.def.Buses }
func (m *Model) Lines() map[string]*Line { return m.def.Lines }
func (m *Model) LocalBalancingStacks() map[string]*LocalBalancingStack {
	return m.def.LocalBalancingStacks
}
func (m *Model) AggregatedConsumers() map[string]*AggregatedConsumer {
	return m.def.AggregatedConsumers
}
func (m *Model) GeneratorTypes() map[string]*GeneratorType { return m.def.GeneratorTypes }
func (m *Model) StorageTypes() map[string]*StorageType { return m.def.StorageTypes }
func (m *Model) Fuels() map[string]*Fuel { return m.def.Fuels }
func (m *Model) TransmissionFees() map[string]*TransmissionFee {
	return m.def.TransmissionFees
}
func (m *Model) EmissionFees() map[string]*EmissionFee { return m.def.EmissionFees }
func (m *Model) EmissionTypes() []string { return m.def.EmissionTypes }
func (m *Model) Constants() Constants { return m.def.Constants }

// Summary counts the elements of each collection, for logging.
func (m *Model) Summary() map[string]int {
	return map[string]int{
		"generators":             len(m.def.Generators),
		"storages":               len(m.def.Storages),
		"buses":                  len(m.def.Buses),
		"lines":                  len(m.def.Lines),
		"local_balancing_stacks": len(m.def.LocalBalancingStacks),
		"aggregated_consumers":   len(m.def.AggregatedConsumers),
		"generator_types":        len(m.def.GeneratorTypes),
		"storage_types":          len(m.def.StorageTypes),
		"fuels":                  len(m.def.Fuels),
	}
}
