// Package validation turns struct tag validation failures into field-keyed messages
// suitable for JSON error responses.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Validator validates request DTOs using `validate` struct tags.
// Field names in messages follow the `json` tag so they match the request body.
type Validator struct {
	v *validator.Validate
}

// New returns a Validator ready for concurrent use.
func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		if name == "" {
			return f.Name
		}
		return name
	})
	return &Validator{v: v}
}

// Errors maps a field name to a human-readable message.
type Errors map[string]string

func (e Errors) Error() string {
	return e.First()
}

// First returns the message for the alphabetically first field, for single-line responses.
func (e Errors) First() string {
	if len(e) == 0 {
		return ""
	}
	keys := make([]string, 0, len(e))
	for k := range e {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return e[keys[0]]
}

// Struct validates s. It returns nil when s is valid and Errors otherwise.
// Non-validation failures (such as passing a non-struct) are returned as-is.
func (val *Validator) Struct(s any) error {
	err := val.v.Struct(s)
	if err == nil {
		return nil
	}
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return err
	}
	out := make(Errors, len(ve))
	for _, fe := range ve {
		if _, seen := out[fe.Field()]; !seen {
			out[fe.Field()] = fieldMessage(fe)
		}
	}
	return out
}

// fieldMessage converts a single FieldError into a human-readable message.
func fieldMessage(fe validator.FieldError) string {
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return field + " is required."
	case "required_without":
		return fmt.Sprintf("%s is required when %s is not provided.", field, jsonName(fe.Param()))
	case "email":
		return field + " must be a valid email address."
	case "max":
		return fmt.Sprintf("%s cannot exceed %s characters.", field, fe.Param())
	case "min":
		return fmt.Sprintf("%s must be at least %s characters.", field, fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s.", field, strings.ReplaceAll(fe.Param(), " ", ", "))
	case "url", "http_url":
		return field + " must be a valid http(s) URL."
	case "gt":
		return fmt.Sprintf("%s must be greater than %s.", field, fe.Param())
	default:
		return fmt.Sprintf("%s is invalid.", field)
	}
}

// jsonName turns a Go field name parameter into its snake_case JSON form.
func jsonName(goName string) string {
	var b strings.Builder
	prevLower := false
	for _, r := range goName {
		upper := r >= 'A' && r <= 'Z'
		if upper {
			if prevLower {
				b.WriteByte('_')
			}
			r += 'a' - 'A'
		}
		prevLower = !upper
		b.WriteRune(r)
	}
	return b.String()
}
