// Gridlens - Energy System Model Results Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gridlens

package analytics

import (
	"errors"
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tomtom215/gridlens/internal/frame"
)

func TestApply(t *testing.T) {
	all := func() []string { return []string{"a", "b"} }
	calls := 0
	fn := func(name string) (*frame.Frame, error) {
		calls++
		f := frame.New([]string{YearLabel}, "", []frame.Label{frame.Str(name)})
		f.AddRow(frame.K(0), []float64{1})
		return f, nil
	}

	one, err := Apply(One("a"), all, fn)
	require.NoError(t, err)
	assert.True(t, one.IsSingle())
	assert.True(t, one.Frame.HasColumn(frame.Str("a")))

	many, err := Apply(Many("b"), all, fn)
	require.NoError(t, err)
	assert.False(t, many.IsSingle())
	assert.Len(t, many.Frames, 1)

	everything, err := Apply(All(), all, fn)
	require.NoError(t, err)
	assert.Len(t, everything.Frames, 2)
	assert.Equal(t, 4, calls)

	boom := errors.New("boom")
	_, err = Apply(All(), all, func(string) (*frame.Frame, error) { return nil, boom })
	assert.ErrorIs(t, err, boom)
}

func TestDictFilter(t *testing.T) {
	m := map[string]int{"a": 1, "b": 2}
	assert.Equal(t, m, DictFilter(m, All()))
	assert.Equal(t, map[string]int{"b": 2}, DictFilter(m, Many("b", "z")))
	assert.Empty(t, DictFilter(m, One("z")))
}

func TestResultMarshalJSON(t *testing.T) {
	single, err := json.Marshal(Single(nil))
	require.NoError(t, err)
	assert.Contains(t, string(single), `"data"`)

	mapped, err := json.Marshal(Mapped(map[string]*frame.Frame{"x": frame.Empty()}))
	require.NoError(t, err)
	assert.Contains(t, string(mapped), `"x"`)
}

func TestHandleNSampleResults(t *testing.T) {
	f := byYear(map[string][]float64{"a": {1, 2}})

	same, err := HandleNSampleResults(Single(f), nil, false)
	require.NoError(t, err)
	assert.Same(t, f, same.Frame)

	b := frame.NewBinding(map[int]int{0: 2020, 1: 2050})
	mapped, err := HandleNSampleResults(Mapped(map[string]*frame.Frame{"a": f}), b, false)
	require.NoError(t, err)
	assert.Equal(t, []frame.Key{frame.K(2020), frame.K(2050)}, mapped.Frames["a"].Index())

	_, err = HandleNSampleResults(Single(f), frame.NewBinding(map[int]int{0: 2020}), false)
	var keyErr *frame.BindingKeyError
	assert.ErrorAs(t, err, &keyErr)
}

func TestDivideOrDefault(t *testing.T) {
	assert.Equal(t, []float64{2, 0, 0}, DivideOrDefault([]float64{1, 0, 3}, []float64{0.5, 0, 0}, 0))
}
