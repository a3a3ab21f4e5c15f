// Gridlens - Energy System Model Results Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gridlens

package api

import (
	"errors"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tomtom215/gridlens/internal/analytics"
	"github.com/tomtom215/gridlens/internal/validation"
)

func TestParseList(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  []string
	}{
		{"absent", "", nil},
		{"empty value selects nothing", "names=", []string{}},
		{"comma list", "names=a,b", []string{"a", "b"}},
		{"trims and skips blanks", "names=+a+,,b", []string{"a", "b"}},
		{"repeated parameter", "names=a&names=b,c", []string{"a", "b", "c"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q, err := url.ParseQuery(tt.query)
			require.NoError(t, err)
			assert.Equal(t, tt.want, parseList(q, "names"))
		})
	}
}

func TestParseSourceRequest(t *testing.T) {
	req, err := parseSourceRequest(url.Values{})
	require.NoError(t, err)
	assert.Equal(t, "element", req.Level)
	assert.Nil(t, req.FilterNames)
	assert.Equal(t, analytics.NoFilter, req.Filter())

	q, _ := url.ParseQuery("level=type&filter_type=bus&filter_names=b1,b2&hourly=1")
	req, err = parseSourceRequest(q)
	require.NoError(t, err)
	opts := req.Options()
	assert.Equal(t, analytics.LevelType, opts.Level)
	assert.Equal(t, analytics.FilterBus, opts.Filter.Kind)
	assert.Equal(t, []string{"b1", "b2"}, opts.Filter.Names)
	assert.True(t, opts.Hourly)
}

func TestParseSourceRequest_Invalid(t *testing.T) {
	q, _ := url.ParseQuery("level=everything&filter_type=planet")
	_, err := parseSourceRequest(q)
	require.Error(t, err)

	var verr *validation.RequestValidationError
	require.True(t, errors.As(err, &verr))
	assert.Len(t, verr.Errors(), 2)
	assert.Equal(t, "validation", classifyError(err))
}

func TestNamedRequestSelector(t *testing.T) {
	tests := []struct {
		query string
		one   bool
		all   bool
		names []string
	}{
		{query: "", all: true},
		{query: "name=x", one: true, names: []string{"x"}},
		{query: "names=x,y", names: []string{"x", "y"}},
		{query: "names=", names: []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			q, _ := url.ParseQuery(tt.query)
			req, err := parseNamedRequest(q)
			require.NoError(t, err)

			sel := req.Selector()
			assert.Equal(t, tt.one, sel.IsOne())
			assert.Equal(t, tt.all, sel.IsAll())
			if !tt.all {
				assert.Equal(t, tt.names, sel.Names())
			}
		})
	}
}

func TestParseNamedRequest_Errors(t *testing.T) {
	q, _ := url.ParseQuery("name=a&names=b")
	_, err := parseNamedRequest(q)
	var perr *ParamError
	require.True(t, errors.As(err, &perr))
	assert.Equal(t, "names", perr.Parameter)

	q, _ = url.ParseQuery("hourly=perhaps")
	_, err = parseNamedRequest(q)
	require.True(t, errors.As(err, &perr))
	assert.Equal(t, "hourly", perr.Parameter)
}
