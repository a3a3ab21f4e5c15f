// Gridlens - Energy System Model Results Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gridlens

package frame

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/goccy/go-json"
)

// Binding maps a reduced year-sample position to the calendar year it
// stands for. It is produced when several consecutive years were
// aggregated into one representative year.
type Binding struct {
	years map[int]int
	keys  []int
}

// NewBinding copies m into a new binding.
func NewBinding(m map[int]int) *Binding {
	b := &Binding{years: make(map[int]int, len(m))}
	for k, v := range m {
		b.years[k] = v
		b.keys = append(b.keys, k)
	}
	sort.Ints(b.keys)
	return b
}

// Year looks up the calendar year for reduced year i.
func (b *Binding) Year(i int) (int, error) {
	y, ok := b.years[i]
	if !ok {
		return 0, &BindingKeyError{Label: strconv.Itoa(i)}
	}
	return y, nil
}

// Keys returns the reduced years in ascending order.
func (b *Binding) Keys() []int {
	return append([]int(nil), b.keys...)
}

// Years returns the calendar years in reduced-year order.
func (b *Binding) Years() []int {
	out := make([]int, len(b.keys))
	for i, k := range b.keys {
		out[i] = b.years[k]
	}
	return out
}

// Len is the number of reduced years.
func (b *Binding) Len() int { return len(b.keys) }

// MarshalJSON encodes the binding as {"<reduced>": <calendar>}.
func (b *Binding) MarshalJSON() ([]byte, error) {
	m := make(map[string]int, len(b.years))
	for k, v := range b.years {
		m[strconv.Itoa(k)] = v
	}
	return json.Marshal(m)
}

// BindingKeyError is returned when a year label has no entry in a
// years binding.
type BindingKeyError struct {
	Label string
}

func (e *BindingKeyError) Error() string {
	return fmt.Sprintf("year %s is not present in the years binding", e.Label)
}
