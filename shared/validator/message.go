package validator

import (
	"errors"
	"strings"

	val "github.com/go-playground/validator/v10"
)

var messages = map[string]string{
	"required":      "{field} is required",
	"email":         "{field} must be a valid email address",
	"url":           "{field} must be a valid URL",
	"uuid":          "{field} must be a valid UUID",
	"oneof":         "{field} must be one of {param}",
	"len":           "{field} must be {param} characters long",
	"min":           "{field} must be at least {param}",
	"max":           "{field} must be at most {param}",
	"gt":            "{field} must be greater than {param}",
	"gte":           "{field} must be greater than or equal to {param}",
	"lte":           "{field} must be less than or equal to {param}",
	"datetime":      "{field} must match the format {param}",
	"hhmm":          "{field} must be a time in HH:MM format",
	"nefield":       "{field} must differ from {param}",
	"excluded_with": "{field} cannot be combined with {param}",
	"mimetypes":     "{field} must be one of {param}",
	"maxfilesize":   "{field} must not exceed {param} MB",
}

// message renders the first violation in a client-facing sentence.
func message(err error) string {
	var violations val.ValidationErrors
	if !errors.As(err, &violations) || len(violations) == 0 {
		return err.Error()
	}

	first := violations[0]

	tmpl, ok := messages[first.Tag()]
	if !ok {
		return first.Error()
	}

	return strings.NewReplacer("{field}", first.Field(), "{param}", first.Param()).Replace(tmpl)
}
