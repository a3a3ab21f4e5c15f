// Gridlens - Energy System Model Results Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gridlens

package engine

import (
	"fmt"
	"strings"

	"github.com/tomtom215/gridlens/internal/analytics"
	"github.com/tomtom215/gridlens/internal/validation"
)

// ValidationError rejects session options before any file is read.
// Message names the parameter; Reason, when set, is the failed rule.
type ValidationError struct {
	Parameter string
	Message   string
	Reason    string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// sampleArrays maps option fields to their configuration names and the
// element type each array holds.
var sampleArrays = map[string]struct{ name, dtype string }{
	"YearSample":   {"year_sample", "non-negative int"},
	"HourSample":   {"hour_sample", "non-negative int"},
	"DiscountRate": {"discount_rate", "finite float64"},
}

// arrayError reports a failed rule on one of the sample arrays. A rule
// on a single element (HourSample[3]) rejects the element type; a rule on
// the whole array (ordering) rejects the array.
func arrayError(fe *validation.ValidationError) *ValidationError {
	field, _, perElement := strings.Cut(fe.Field(), "[")
	arr, ok := sampleArrays[field]
	if !ok {
		arr.name, arr.dtype = field, "number"
	}
	msg := fmt.Sprintf("Array %s must be a numeric array", arr.name)
	if perElement {
		msg = fmt.Sprintf("Elements of the array %s must be of type %s", arr.name, arr.dtype)
	}
	return &ValidationError{Parameter: arr.name, Message: msg, Reason: fe.Error()}
}

// validateOptions checks the capacity cost label first, then the arrays.
func validateOptions(opts Options) (analytics.CapacityCost, error) {
	capacityCost, err := analytics.ParseCapacityCost(opts.GeneratorCapacityCost)
	if err != nil {
		return "", &ValidationError{Parameter: "generator_capacity_cost", Message: err.Error()}
	}

	if verr := validation.ValidateStruct(&opts); verr != nil {
		first := verr.Errors()[0]
		return "", arrayError(&first)
	}

	if opts.NYearsAggregation < 0 {
		return "", &ValidationError{
			Parameter: "n_years_aggregation",
			Message:   "n_years_aggregation must not be negative",
		}
	}
	return capacityCost, nil
}
