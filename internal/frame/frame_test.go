// Gridlens - Energy System Model Results Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gridlens

package frame

import (
	"errors"
	"math"
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLabelOrdering(t *testing.T) {
	tests := []struct {
		name string
		a, b Label
		want bool
	}{
		{"ints numeric", Int(2), Int(10), true},
		{"strings lexical", Str("a"), Str("b"), true},
		{"int before string", Int(99), Str("0"), true},
		{"string after int", Str("0"), Int(99), false},
		{"equal", Int(1), Int(1), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.a.Less(tt.b))
		})
	}
}

func TestParseLabel(t *testing.T) {
	assert.Equal(t, Int(3), ParseLabel("3"))
	assert.Equal(t, Str("gen1"), ParseLabel("gen1"))

	n, ok := Str("12").AsInt()
	assert.True(t, ok)
	assert.Equal(t, 12, n)

	_, ok = Str("x").AsInt()
	assert.False(t, ok)
}

func TestAddRowOverwrites(t *testing.T) {
	f := New([]string{"Year"}, "", []Label{Str("a")})
	f.AddRow(K(0), []float64{1})
	f.AddRow(K(0), []float64{2})

	require.Equal(t, 1, f.Len())
	v, ok := f.Get(K(0), Str("a"))
	require.True(t, ok)
	assert.Equal(t, 2.0, v)
}

func TestSelectSkipsMissing(t *testing.T) {
	f := New([]string{"Year"}, "", []Label{Str("a"), Str("b")})
	f.AddRow(K(0), []float64{1, 2})

	s := f.Select([]Label{Str("b"), Str("zzz")})
	assert.Equal(t, []Label{Str("b")}, s.Columns())
	assert.Equal(t, []float64{2}, s.Row(0))
}

func TestSorted(t *testing.T) {
	f := New([]string{"Year"}, "", []Label{Str("b"), Str("a")})
	f.AddRow(K(2), []float64{1, 2})
	f.AddRow(K(0), []float64{3, 4})

	s := f.Sorted()
	assert.Equal(t, []Label{Str("a"), Str("b")}, s.Columns())
	assert.Equal(t, []Key{K(0), K(2)}, s.Index())
	assert.Equal(t, []float64{4, 3}, s.Row(0))
}

func TestReindex(t *testing.T) {
	f := New([]string{"Year"}, "", []Label{Str("a")})
	for i := 0; i < 3; i++ {
		f.AddRow(K(i), []float64{float64(i)})
	}

	t.Run("nil binding is identity", func(t *testing.T) {
		out, err := f.Reindex(0, nil)
		require.NoError(t, err)
		assert.Same(t, f, out)
	})

	t.Run("maps every year", func(t *testing.T) {
		out, err := f.Reindex(0, NewBinding(map[int]int{0: 2, 1: 4, 2: 6}))
		require.NoError(t, err)
		assert.Equal(t, []Key{K(2), K(4), K(6)}, out.Index())
		assert.Equal(t, []float64{1}, out.Row(1))
	})

	t.Run("missing year fails", func(t *testing.T) {
		_, err := f.Reindex(0, NewBinding(map[int]int{0: 2}))
		var keyErr *BindingKeyError
		require.True(t, errors.As(err, &keyErr))
		assert.Equal(t, "1", keyErr.Label)
	})

	t.Run("named level", func(t *testing.T) {
		m := New([]string{"Aggregate Name", "Year"}, "", []Label{Str("x")})
		m.AddRow(K("aggr1", 0), []float64{1})
		out, err := m.ReindexLevel("Year", NewBinding(map[int]int{0: 5}))
		require.NoError(t, err)
		assert.Equal(t, []Key{K("aggr1", 5)}, out.Index())
	})
}

func TestPivot(t *testing.T) {
	cells := []Cell{
		{Row: K("gen1", 0), Column: Str("HEAT"), Value: 1},
		{Row: K("gen1", 0), Column: Str("HEAT"), Value: 2},
		{Row: K("gen2", 0), Column: Str("ELECTRICITY"), Value: 5},
		{Row: K("gen2", 0), Column: Str("HEAT"), Value: math.NaN()},
	}
	f := Pivot([]string{"Network element name", "Year"}, "Energy Type", cells, math.NaN())

	require.Equal(t, []Label{Str("ELECTRICITY"), Str("HEAT")}, f.Columns())
	require.Equal(t, []Key{K("gen1", 0), K("gen2", 0)}, f.Index())

	heat, _ := f.Get(K("gen1", 0), Str("HEAT"))
	assert.Equal(t, 3.0, heat)

	elec, _ := f.Get(K("gen1", 0), Str("ELECTRICITY"))
	assert.True(t, math.IsNaN(elec), "missing cell takes fill")

	heat2, _ := f.Get(K("gen2", 0), Str("HEAT"))
	assert.True(t, math.IsNaN(heat2), "all-NaN cell stays NaN")
}

func TestConcat(t *testing.T) {
	a := New([]string{"Year"}, "", []Label{Str("x")})
	a.AddRow(K(0), []float64{1})
	b := New([]string{"Year"}, "", []Label{Str("y")})
	b.AddRow(K(1), []float64{2})

	out := Concat(0, a, Empty(), b)
	assert.Equal(t, []Label{Str("x"), Str("y")}, out.Columns())
	assert.Equal(t, []float64{1, 0}, out.Row(0))
	assert.Equal(t, []float64{0, 2}, out.Row(1))
}

func TestVectorHelpers(t *testing.T) {
	assert.Equal(t, 3.0, SumSkipNaN([]float64{1, math.NaN(), 2}))
	assert.Equal(t, 0.0, SumSkipNaN(nil))

	assert.Equal(t, []float64{2, 0, 0.6}, DivOrDefault([]float64{1, 2, 3}, []float64{0.5, 0, 5}, 0))
	assert.Equal(t, []float64{0}, DivOrDefault([]float64{0}, []float64{0}, 0))

	assert.InDelta(t, 2.0, Reduce("mean", []float64{1, 3}), 1e-12)
	assert.Equal(t, 3.0, Reduce("max", []float64{1, 3}))
	assert.Equal(t, 1.0, Reduce("min", []float64{1, 3}))
	assert.True(t, math.IsNaN(Reduce("median", []float64{1})))
}

func TestMarshalJSON(t *testing.T) {
	f := New([]string{"Year"}, "Energy Type", []Label{Str("HEAT"), Int(0)})
	f.AddRow(K(0), []float64{1.5, math.NaN()})

	raw, err := json.Marshal(f)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"index_names": ["Year"],
		"column_name": "Energy Type",
		"columns": ["HEAT", 0],
		"index": [[0]],
		"data": [[1.5, null]]
	}`, string(raw))
}
