// Gridlens - Energy System Model Results Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gridlens

package analytics

import (
	"fmt"
	"strings"
)

// LookupError reports a name the network or results were expected to
// contain. It signals inconsistent inputs, not an empty selection.
type LookupError struct {
	Kind string
	Name string
}

func (e *LookupError) Error() string {
	return fmt.Sprintf("%s %q not found", e.Kind, e.Name)
}

// CapacityCost selects how generator opex is reported.
type CapacityCost string

const (
	Brutto CapacityCost = "brutto"
	Netto  CapacityCost = "netto"
)

// ParseCapacityCost validates a capacity cost label.
func ParseCapacityCost(s string) (CapacityCost, error) {
	switch CapacityCost(s) {
	case Brutto, Netto:
		return CapacityCost(s), nil
	}
	allowed := []string{"'" + string(Brutto) + "'", "'" + string(Netto) + "'"}
	return "", fmt.Errorf("Invalid generator_capacity_cost: %s. Must be one of [%s]", s, strings.Join(allowed, ", ")) //nolint:staticcheck // message format is part of the API
}
