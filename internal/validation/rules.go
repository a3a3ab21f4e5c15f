// Gridlens - Energy System Model Results Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gridlens

package validation

import (
	"math"
	"reflect"
	"regexp"

	"github.com/go-playground/validator/v10"
)

var customRules = map[string]validator.Func{
	"ascending": isAscending,
	"finite":    isFinite,
	"bytesize":  isByteSize,
}

// isAscending holds for integer slices with strictly increasing values,
// the shape of year and hour samples.
func isAscending(fl validator.FieldLevel) bool {
	v := fl.Field()
	if v.Kind() != reflect.Slice {
		return false
	}
	for i := 1; i < v.Len(); i++ {
		if v.Index(i).Int() <= v.Index(i-1).Int() {
			return false
		}
	}
	return true
}

// isFinite rejects NaN and ±Inf. Pair it with dive for slices.
func isFinite(fl validator.FieldLevel) bool {
	v := fl.Field()
	if v.Kind() != reflect.Float32 && v.Kind() != reflect.Float64 {
		return false
	}
	f := v.Float()
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

var byteSizeRE = regexp.MustCompile(`^[0-9]+(\.[0-9]+)?\s*(B|KB|MB|GB|TB|KiB|MiB|GiB|TiB)$`)

// isByteSize matches DuckDB memory_limit values like "2GB" or "512MiB".
func isByteSize(fl validator.FieldLevel) bool {
	return byteSizeRE.MatchString(fl.Field().String())
}
