// Gridlens - Energy System Model Results Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gridlens

package validation

import (
	"fmt"
	"reflect"

	"github.com/go-playground/validator/v10"
)

// Messages keyed by tag. Entries in bareMessages take the field name only;
// paramMessages also take the tag parameter.
var (
	bareMessages = map[string]string{
		"required":  "%s is required",
		"ascending": "%s must be strictly increasing",
		"finite":    "%s must contain finite numbers",
		"bytesize":  "%s must be a size such as 2GB or 512MiB",
		"file":      "%s must be an existing file",
		"dir":       "%s must be an existing directory",
	}
	paramMessages = map[string]string{
		"oneof": "%s must be one of: %s",
		"gte":   "%s must be greater than or equal to %s",
		"lte":   "%s must be less than or equal to %s",
		"gt":    "%s must be greater than %s",
		"lt":    "%s must be less than %s",
	}
)

func describe(fe validator.FieldError) string {
	name, tag, param := fe.Field(), fe.Tag(), fe.Param()
	if tmpl, ok := bareMessages[tag]; ok {
		return fmt.Sprintf(tmpl, name)
	}
	if tmpl, ok := paramMessages[tag]; ok {
		return fmt.Sprintf(tmpl, name, param)
	}

	// min and max count characters on strings and compare values otherwise.
	unit := ""
	if fe.Kind() == reflect.String {
		unit = " characters"
	}
	switch tag {
	case "min":
		return fmt.Sprintf("%s must be at least %s%s", name, param, unit)
	case "max":
		return fmt.Sprintf("%s must be at most %s%s", name, param, unit)
	}
	return fmt.Sprintf("%s failed %s validation", name, tag)
}
