// Gridlens - Energy System Model Results Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gridlens

package validation

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

const codeValidation = "VALIDATION_ERROR"

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

// GetValidator returns the shared validator with the gridlens rules
// (ascending, finite, bytesize) registered.
func GetValidator() *validator.Validate {
	validateOnce.Do(func() {
		v := validator.New(validator.WithRequiredStructEnabled())
		for tag, fn := range customRules {
			// Only an empty tag or a nil func makes registration fail.
			_ = v.RegisterValidation(tag, fn)
		}
		validate = v
	})
	return validate
}

// ValidationError is one rejected field.
type ValidationError struct {
	field   string
	tag     string
	param   string
	value   interface{}
	message string
}

func (e *ValidationError) Field() string      { return e.field }
func (e *ValidationError) Tag() string        { return e.tag }
func (e *ValidationError) Param() string      { return e.param }
func (e *ValidationError) Value() interface{} { return e.value }
func (e *ValidationError) Error() string      { return e.message }

// RequestValidationError collects every rejected field of one struct.
type RequestValidationError struct {
	errors []ValidationError
}

func (ve *RequestValidationError) Errors() []ValidationError { return ve.errors }

func (ve *RequestValidationError) Error() string {
	if len(ve.errors) == 0 {
		return "validation failed"
	}
	parts := make([]string, 0, len(ve.errors))
	for i := range ve.errors {
		parts = append(parts, ve.errors[i].message)
	}
	return strings.Join(parts, "; ")
}

// APIError carries the code, message and details of a 400 response.
// It mirrors api.APIError; the api package imports validation, not the reverse.
type APIError struct {
	Code    string
	Message string
	Details map[string]interface{}
}

// ToAPIError shapes the collected failures for the response envelope. A
// single failure reports its field, tag and value; several failures are
// listed under "fields".
func (ve *RequestValidationError) ToAPIError() *APIError {
	out := &APIError{Code: codeValidation, Message: "Validation failed"}
	switch len(ve.errors) {
	case 0:
		return out
	case 1:
		only := ve.errors[0]
		out.Message = only.message
		out.Details = map[string]interface{}{
			"field": only.field,
			"tag":   only.tag,
			"value": only.value,
		}
		return out
	}

	fields := make([]map[string]interface{}, 0, len(ve.errors))
	parts := make([]string, 0, len(ve.errors))
	for _, fe := range ve.errors {
		fields = append(fields, map[string]interface{}{
			"field":   fe.field,
			"tag":     fe.tag,
			"message": fe.message,
		})
		parts = append(parts, fmt.Sprintf("%s: %s", fe.field, fe.message))
	}
	out.Message = strings.Join(parts, "; ")
	out.Details = map[string]interface{}{"fields": fields}
	return out
}

// ValidateStruct checks s against its validate tags. It returns nil when
// every field passes.
func ValidateStruct(s interface{}) *RequestValidationError {
	err := GetValidator().Struct(s)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		// InvalidValidationError: s was not a struct.
		return &RequestValidationError{errors: []ValidationError{{
			field:   "unknown",
			tag:     "unknown",
			message: err.Error(),
		}}}
	}

	out := &RequestValidationError{errors: make([]ValidationError, 0, len(fieldErrs))}
	for _, fe := range fieldErrs {
		out.errors = append(out.errors, ValidationError{
			field:   fe.Field(),
			tag:     fe.Tag(),
			param:   fe.Param(),
			value:   fe.Value(),
			message: describe(fe),
		})
	}
	return out
}
