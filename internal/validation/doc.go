// Gridlens - Energy System Model Results Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gridlens

// Package validation checks tagged structs with go-playground/validator v10.
//
// Configuration, session options and the query parameters of every
// analytics endpoint pass through ValidateStruct, so a bad year sample reads
// the same whether it came from config.yaml or from a URL.
//
// The files split as follows:
//
//	validator.go  shared validator, ValidationError, RequestValidationError, APIError
//	rules.go      gridlens-specific tags
//	messages.go   per-tag message text
//
// Usage from a handler:
//
//	type sourceQuery struct {
//	    Level string `validate:"omitempty,oneof=element type"`
//	}
//
//	if verr := validation.ValidateStruct(&q); verr != nil {
//	    apiErr := verr.ToAPIError()
//	    rw.ErrorWithDetails(http.StatusBadRequest, apiErr.Code, apiErr.Message, apiErr.Details)
//	    return
//	}
//
// # Tags
//
//   - ascending: integer slice with strictly increasing values (year and hour samples)
//   - finite: float that is neither NaN nor infinite; use with dive for slices
//   - bytesize: DuckDB memory limit such as "2GB" or "512MiB"
//
// # Errors
//
// One failure maps to
//
//	{"code": "VALIDATION_ERROR", "message": "YearSample must be strictly increasing",
//	 "details": {"field": "YearSample", "tag": "ascending", "value": [2, 1]}}
//
// Several failures are joined with "; " and details carries a "fields" list.
// The validator is built once and is safe for concurrent use.
package validation
