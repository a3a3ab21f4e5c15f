// Gridlens - Energy System Model Results Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gridlens

package api

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/tomtom215/gridlens/internal/analytics"
	"github.com/tomtom215/gridlens/internal/validation"
)

// Query parameter names
const (
	paramLevel       = "level"
	paramFilterType  = "filter_type"
	paramFilterNames = "filter_names"
	paramHourly      = "hourly"
	paramName        = "name"
	paramNames       = "names"
)

// SourceRequest holds the parameters of a source metric query.
type SourceRequest struct {
	Level      string `validate:"oneof=element type"`
	FilterType string `validate:"omitempty,oneof=bus stack aggr"`

	// FilterNames is nil when filter_names was not given.
	FilterNames []string `validate:"omitempty,dive,required"`
	Hourly      bool
}

// Filter converts the request into an analytics filter.
func (r SourceRequest) Filter() analytics.Filter {
	return analytics.Filter{Kind: analytics.FilterKind(r.FilterType), Names: r.FilterNames}
}

// Options converts the request into source query options.
func (r SourceRequest) Options() analytics.SourceOptions {
	return analytics.SourceOptions{
		Level:  analytics.Level(r.Level),
		Filter: r.Filter(),
		Hourly: r.Hourly,
	}
}

// NamedRequest selects lines, stacks or aggregated consumers by name.
type NamedRequest struct {
	Name   string
	Names  []string `validate:"omitempty,dive,required"`
	Hourly bool
}

// Selector returns One for name, Many for names and All otherwise.
func (r NamedRequest) Selector() analytics.Selector {
	switch {
	case r.Name != "":
		return analytics.One(r.Name)
	case r.Names != nil:
		return analytics.Many(r.Names...)
	}
	return analytics.All()
}

// parseSourceRequest reads and validates source query parameters. The
// level defaults to element.
func parseSourceRequest(q url.Values) (SourceRequest, error) {
	req := SourceRequest{
		Level:       q.Get(paramLevel),
		FilterType:  q.Get(paramFilterType),
		FilterNames: parseList(q, paramFilterNames),
	}
	if req.Level == "" {
		req.Level = string(analytics.LevelElement)
	}

	hourly, err := parseBool(q, paramHourly)
	if err != nil {
		return req, err
	}
	req.Hourly = hourly

	if verr := validation.ValidateStruct(&req); verr != nil {
		return req, verr
	}
	return req, nil
}

func parseNamedRequest(q url.Values) (NamedRequest, error) {
	req := NamedRequest{
		Name:  strings.TrimSpace(q.Get(paramName)),
		Names: parseList(q, paramNames),
	}
	if req.Name != "" && req.Names != nil {
		return req, &ParamError{Parameter: paramNames, Message: "name and names are mutually exclusive"}
	}

	hourly, err := parseBool(q, paramHourly)
	if err != nil {
		return req, err
	}
	req.Hourly = hourly

	if verr := validation.ValidateStruct(&req); verr != nil {
		return req, verr
	}
	return req, nil
}

// parseList splits a comma separated parameter. Repeated parameters are
// concatenated. A present but empty parameter yields an empty, non-nil
// slice, which selects nothing.
func parseList(q url.Values, key string) []string {
	raw, ok := q[key]
	if !ok {
		return nil
	}
	out := []string{}
	for _, v := range raw {
		for _, part := range strings.Split(v, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

func parseBool(q url.Values, key string) (bool, error) {
	v := q.Get(key)
	if v == "" {
		return false, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, &ParamError{Parameter: key, Message: fmt.Sprintf("%s must be a boolean, got %q", key, v)}
	}
	return b, nil
}
