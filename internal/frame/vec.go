// Gridlens - Energy System Model Results Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gridlens

package frame

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

func scale(s float64, v []float64) {
	floats.Scale(s, v)
}

// SumSkipNaN sums v ignoring NaN. An all-NaN or empty slice sums to 0.
func SumSkipNaN(v []float64) float64 {
	clean := make([]float64, 0, len(v))
	for _, x := range v {
		if !math.IsNaN(x) {
			clean = append(clean, x)
		}
	}
	return floats.Sum(clean)
}

// Reduce applies a named reduction over v, skipping NaN. Supported
// operations are sum, mean, max and min. Unknown operations return NaN.
func Reduce(op string, v []float64) float64 {
	clean := make([]float64, 0, len(v))
	for _, x := range v {
		if !math.IsNaN(x) {
			clean = append(clean, x)
		}
	}
	switch op {
	case "sum":
		return floats.Sum(clean)
	case "mean":
		if len(clean) == 0 {
			return math.NaN()
		}
		return floats.Sum(clean) / float64(len(clean))
	case "max":
		if len(clean) == 0 {
			return math.NaN()
		}
		return floats.Max(clean)
	case "min":
		if len(clean) == 0 {
			return math.NaN()
		}
		return floats.Min(clean)
	}
	return math.NaN()
}

// MulVec returns the elementwise product of a and b.
func MulVec(a, b []float64) []float64 {
	out := append([]float64(nil), a...)
	floats.Mul(out, b)
	return out
}

// DivOrDefault divides num by den elementwise. Cells where the quotient
// is not finite (x/0, 0/0, NaN input) get def.
func DivOrDefault(num, den []float64, def float64) []float64 {
	out := make([]float64, len(num))
	for i := range num {
		q := num[i] / den[i]
		if math.IsNaN(q) || math.IsInf(q, 0) {
			q = def
		}
		out[i] = q
	}
	return out
}
