// Gridlens - Energy System Model Results Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gridlens

package network

// Constants holds the scalar sizes of the modelled horizon.
type Constants struct {
	NHours int `json:"n_hours" validate:"min=1"`
	NYears int `json:"n_years" validate:"min=1"`
}

// Generator is a generating unit attached to one or more buses.
type Generator struct {
	Name             string   `json:"-"`
	EnergySourceType string   `json:"energy_source_type" validate:"required"`
	Buses            []string `json:"buses"`
	EmissionFees     []string `json:"emission_fees,omitempty"`
}

// Storage is a storage unit attached to a single bus.
type Storage struct {
	Name             string `json:"-"`
	EnergySourceType string `json:"energy_source_type" validate:"required"`
	Bus              string `json:"bus" validate:"required"`
}

// Bus carries a single energy type. Generators and Storages are derived
// from the units' bus references when the model is built.
type Bus struct {
	Name       string   `json:"-"`
	EnergyType string   `json:"energy_type" validate:"required"`
	Generators []string `json:"-"`
	Storages   []string `json:"-"`
}

// Line connects two buses. TransmissionFee is empty when the line is free.
type Line struct {
	Name            string `json:"-"`
	FromBus         string `json:"from_bus,omitempty"`
	ToBus           string `json:"to_bus,omitempty"`
	EnergyType      string `json:"energy_type,omitempty"`
	TransmissionFee string `json:"transmission_fee,omitempty"`
}

// LocalBalancingStack groups buses serving a set of consumers.
// BusesOut maps energy type to the outlet bus, Buses maps energy type to
// every bus of that type inside the stack.
type LocalBalancingStack struct {
	Name     string              `json:"-"`
	BusesOut map[string]string   `json:"buses_out"`
	Buses    map[string][]string `json:"buses"`
}

// AggregatedConsumer is a group of identical consumers.
type AggregatedConsumer struct {
	Name              string               `json:"-"`
	StackBaseFraction map[string]float64   `json:"stack_base_fraction"`
	AvailableStacks   []string             `json:"available_stacks"`
	NConsumers        []float64            `json:"n_consumers"`
	YearlyEnergyUsage map[string][]float64 `json:"yearly_energy_usage"`
	AverageArea       *float64             `json:"average_area,omitempty"`
}

// Profile is a series bound to one energy type.
type Profile struct {
	EnergyType string    `json:"energy_type"`
	Values     []float64 `json:"values"`
}

// GeneratorType holds the technology parameters shared by generators.
// ConversionRate (per hour) and Efficiency keep the declared energy type
// order; the first efficiency profile is the reference one.
type GeneratorType struct {
	Name              string               `json:"-"`
	Capex             []float64            `json:"capex"`
	Opex              []float64            `json:"opex"`
	BuildTime         int                  `json:"build_time" validate:"min=0"`
	Fuel              string               `json:"fuel,omitempty"`
	ConversionRate    []Profile            `json:"conversion_rate,omitempty"`
	Efficiency        []Profile            `json:"efficiency,omitempty"`
	EmissionReduction map[string][]float64 `json:"emission_reduction,omitempty"`
}

// StorageType holds the technology parameters shared by storages.
type StorageType struct {
	Name       string    `json:"-"`
	EnergyType string    `json:"energy_type" validate:"required"`
	Capex      []float64 `json:"capex"`
	Opex       []float64 `json:"opex"`
	BuildTime  int       `json:"build_time" validate:"min=0"`
}

// Fuel has a per-year cost and availability and a per-unit emission
// factor for each emission type.
type Fuel struct {
	Name          string             `json:"-"`
	EnergyPerUnit float64            `json:"energy_per_unit" validate:"gt=0"`
	Cost          []float64          `json:"cost"`
	Availability  []float64          `json:"availability"`
	Emission      map[string]float64 `json:"emission"`
}

// TransmissionFee is an hourly price applied to a line's flow.
type TransmissionFee struct {
	Name string    `json:"-"`
	Fee  []float64 `json:"fee"`
}

// EmissionFee is a per-year price for one emission type.
type EmissionFee struct {
	Name         string    `json:"-"`
	EmissionType string    `json:"emission_type" validate:"required"`
	Price        []float64 `json:"price"`
}
