// Gridlens - Energy System Model Results Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gridlens

package analytics

import (
	"github.com/goccy/go-json"

	"github.com/tomtom215/gridlens/internal/frame"
)

type selectorKind int

const (
	selectAll selectorKind = iota
	selectOne
	selectMany
)

// Selector picks the names a query runs for.
type Selector struct {
	kind  selectorKind
	names []string
}

// All selects every known name.
func All() Selector { return Selector{kind: selectAll} }

// One selects a single name; the query returns a single frame.
func One(name string) Selector { return Selector{kind: selectOne, names: []string{name}} }

// Many selects a list of names; the query returns a name-keyed map.
func Many(names ...string) Selector {
	return Selector{kind: selectMany, names: append([]string{}, names...)}
}

// IsAll reports whether no names were given.
func (s Selector) IsAll() bool { return s.kind == selectAll }

// IsOne reports whether a single name was given.
func (s Selector) IsOne() bool { return s.kind == selectOne }

// Names returns the selected names, nil for All.
func (s Selector) Names() []string { return s.names }

// Result is either one frame or a name-keyed map of frames.
type Result struct {
	Frame  *frame.Frame
	Frames map[string]*frame.Frame
}

// Single wraps one frame.
func Single(f *frame.Frame) Result { return Result{Frame: f} }

// Mapped wraps a map of frames.
func Mapped(m map[string]*frame.Frame) Result {
	if m == nil {
		m = map[string]*frame.Frame{}
	}
	return Result{Frames: m}
}

// IsSingle reports whether the result holds one frame.
func (r Result) IsSingle() bool { return r.Frames == nil }

// MarshalJSON encodes the frame, or the map of frames.
func (r Result) MarshalJSON() ([]byte, error) {
	if r.IsSingle() {
		if r.Frame == nil {
			return json.Marshal(frame.Empty())
		}
		return json.Marshal(r.Frame)
	}
	return json.Marshal(r.Frames)
}

// Apply runs fn for the selected names. One returns fn's frame directly,
// Many and All return a map; All takes its names from all().
func Apply(sel Selector, all func() []string, fn func(name string) (*frame.Frame, error)) (Result, error) {
	if sel.IsOne() {
		f, err := fn(sel.names[0])
		if err != nil {
			return Result{}, err
		}
		return Single(f), nil
	}
	names := sel.names
	if sel.IsAll() {
		names = all()
	}
	out := make(map[string]*frame.Frame, len(names))
	for _, n := range names {
		f, err := fn(n)
		if err != nil {
			return Result{}, err
		}
		out[n] = f
	}
	return Mapped(out), nil
}

// DictFilter restricts m to the selected keys. All returns m itself,
// missing keys are dropped silently.
func DictFilter[T any](m map[string]T, sel Selector) map[string]T {
	if sel.IsAll() {
		return m
	}
	out := make(map[string]T, len(sel.names))
	for _, k := range sel.names {
		if v, ok := m[k]; ok {
			out[k] = v
		}
	}
	return out
}
