// Gridlens - Energy System Model Results Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gridlens

package api

import (
	"errors"
	"fmt"

	"github.com/tomtom215/gridlens/internal/analytics"
	"github.com/tomtom215/gridlens/internal/engine"
	"github.com/tomtom215/gridlens/internal/frame"
	"github.com/tomtom215/gridlens/internal/logging"
	"github.com/tomtom215/gridlens/internal/metrics"
	"github.com/tomtom215/gridlens/internal/validation"
)

var (
	// ErrNoSession is returned while the session loader has not stored a session yet.
	ErrNoSession = errors.New("no analysis session is loaded")
)

// ParamError rejects a query parameter that cannot be parsed.
type ParamError struct {
	Parameter string
	Message   string
}

func (e *ParamError) Error() string {
	return e.Message
}

// UnknownMetricError names a metric path segment no handler serves.
type UnknownMetricError struct {
	Group  string
	Metric string
}

func (e *UnknownMetricError) Error() string {
	return fmt.Sprintf("unknown %s metric: %s", e.Group, e.Metric)
}

// classifyError labels query failures for the query error counter.
func classifyError(err error) string {
	var (
		paramErr   *ParamError
		reqErr     *validation.RequestValidationError
		engineErr  *engine.ValidationError
		lookupErr  *analytics.LookupError
		bindingErr *frame.BindingKeyError
	)
	switch {
	case errors.As(err, &paramErr), errors.As(err, &reqErr), errors.As(err, &engineErr):
		return "validation"
	case errors.As(err, &lookupErr):
		return "lookup"
	case errors.As(err, &bindingErr):
		return "binding"
	}
	return metrics.ErrorType(err)
}

func isValidationError(err error) bool {
	return classifyError(err) == "validation"
}

// writeError maps an engine or request error onto the response envelope.
func writeError(rw *ResponseWriter, err error) {
	var (
		paramErr   *ParamError
		reqErr     *validation.RequestValidationError
		engineErr  *engine.ValidationError
		lookupErr  *analytics.LookupError
		unknownErr *UnknownMetricError
	)
	switch {
	case errors.As(err, &reqErr):
		apiErr := reqErr.ToAPIError()
		rw.ValidationError(apiErr.Message, apiErr.Details)
	case errors.As(err, &paramErr):
		rw.ValidationError(paramErr.Message, map[string]interface{}{"field": paramErr.Parameter})
	case errors.As(err, &engineErr):
		details := map[string]interface{}{"field": engineErr.Parameter}
		if engineErr.Reason != "" {
			details["reason"] = engineErr.Reason
		}
		rw.ValidationError(engineErr.Message, details)
	case errors.As(err, &unknownErr), errors.As(err, &lookupErr):
		rw.NotFound(err.Error())
	case errors.Is(err, ErrNoSession):
		rw.ServiceUnavailable(err.Error())
	default:
		logging.Ctx(rw.r.Context()).Error().Err(err).Msg("Query failed")
		rw.InternalError(err.Error())
	}
}
