// Gridlens - Energy System Model Results Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gridlens

package network

import (
	"errors"
	"fmt"

	"github.com/tomtom215/gridlens/internal/validation"
)

// Validate checks field constraints and that every name a collection
// refers to exists in the referenced collection.
func (m *Model) Validate() error {
	if verr := validation.ValidateStruct(&m.def); verr != nil {
		return fmt.Errorf("invalid network definition: %w", verr)
	}

	var errs []error
	d := &m.def
	for _, name := range Names(d.Generators) {
		g := d.Generators[name]
		if _, ok := d.GeneratorTypes[g.EnergySourceType]; !ok {
			errs = append(errs, fmt.Errorf("generator %q: unknown generator type %q", name, g.EnergySourceType))
		}
		for _, bus := range g.Buses {
			if _, ok := d.Buses[bus]; !ok {
				errs = append(errs, fmt.Errorf("generator %q: unknown bus %q", name, bus))
			}
		}
		for _, fee := range g.EmissionFees {
			if _, ok := d.EmissionFees[fee]; !ok {
				errs = append(errs, fmt.Errorf("generator %q: unknown emission fee %q", name, fee))
			}
		}
	}
	for _, name := range Names(d.Storages) {
		s := d.Storages[name]
		if _, ok := d.StorageTypes[s.EnergySourceType]; !ok {
			errs = append(errs, fmt.Errorf("storage %q: unknown storage type %q", name, s.EnergySourceType))
		}
		if _, ok := d.Buses[s.Bus]; !ok {
			errs = append(errs, fmt.Errorf("storage %q: unknown bus %q", name, s.Bus))
		}
	}
	for _, name := range Names(d.Lines) {
		l := d.Lines[name]
		if l.TransmissionFee == "" {
			continue
		}
		if _, ok := d.TransmissionFees[l.TransmissionFee]; !ok {
			errs = append(errs, fmt.Errorf("line %q: unknown transmission fee %q", name, l.TransmissionFee))
		}
	}
	for _, name := range Names(d.GeneratorTypes) {
		gt := d.GeneratorTypes[name]
		if gt.Fuel == "" {
			continue
		}
		if _, ok := d.Fuels[gt.Fuel]; !ok {
			errs = append(errs, fmt.Errorf("generator type %q: unknown fuel %q", name, gt.Fuel))
		}
	}
	for _, name := range Names(d.LocalBalancingStacks) {
		lbs := d.LocalBalancingStacks[name]
		for _, et := range Names(lbs.BusesOut) {
			if _, ok := d.Buses[lbs.BusesOut[et]]; !ok {
				errs = append(errs, fmt.Errorf("local balancing stack %q: unknown outlet bus %q", name, lbs.BusesOut[et]))
			}
		}
		for _, et := range Names(lbs.Buses) {
			for _, bus := range lbs.Buses[et] {
				if _, ok := d.Buses[bus]; !ok {
					errs = append(errs, fmt.Errorf("local balancing stack %q: unknown bus %q", name, bus))
				}
			}
		}
	}
	for _, name := range Names(d.AggregatedConsumers) {
		ac := d.AggregatedConsumers[name]
		for _, stack := range ac.AvailableStacks {
			if _, ok := d.LocalBalancingStacks[stack]; !ok {
				errs = append(errs, fmt.Errorf("aggregated consumer %q: unknown stack %q", name, stack))
			}
		}
	}
	return errors.Join(errs...)
}
