// Package dto holds the shapes that cross the API boundary: request
// bodies that are validated before anything is written, and response
// projections built from model records. They are deliberately separate
// from the storage structs in package model.
package dto

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// FieldError describes one rejected field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError is returned whenever input is missing a required
// field or a field fails its format check.
type ValidationError struct {
	Fields []FieldError `json:"errors"`
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.Field+": "+f.Message)
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func invalid(field, msg string) *ValidationError {
	return &ValidationError{Fields: []FieldError{{Field: field, Message: msg}}}
}

// selfChecker is implemented by shapes whose rules cannot be expressed
// with struct tags, such as partial updates.
type selfChecker interface {
	check(v *validator.Validate) []FieldError
}

// Validator wraps go-playground/validator and reports errors with JSON
// field names. It satisfies echo.Validator.
type Validator struct {
	v *validator.Validate
}

func NewValidator() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
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

// Validate checks struct tags and, for partial shapes, their own rules.
func (cv *Validator) Validate(i any) error {
	var fields []FieldError
	if err := cv.v.Struct(i); err != nil {
		var ves validator.ValidationErrors
		if !errors.As(err, &ves) {
			return err
		}
		for _, fe := range ves {
			fields = append(fields, FieldError{Field: fe.Field(), Message: message(fe)})
		}
	}
	if sc, ok := i.(selfChecker); ok {
		fields = append(fields, sc.check(cv.v)...)
	}
	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}

var std = NewValidator()

// Validate checks i with the package validator.
func Validate(i any) error { return std.Validate(i) }

// Parse decodes a JSON document into v and validates it. A field with
// the wrong JSON type fails decoding instead of being dropped.
func Parse(data []byte, v any) error {
	if err := json.Unmarshal(data, v); err != nil {
		var te *json.UnmarshalTypeError
		if errors.As(err, &te) {
			return invalid(te.Field, fmt.Sprintf("must be of type %s", te.Type))
		}
		return invalid("body", "malformed JSON")
	}
	return Validate(v)
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "max":
		return "must be at most " + fe.Param() + " characters"
	case "oneof":
		return "must be one of: " + strings.ReplaceAll(fe.Param(), " ", ", ")
	case "hexcolor", "len":
		return "must be a hex color like #3B82F6"
	}
	return "failed " + fe.Tag() + " check"
}

// checkVar runs a tag rule against a single value, for fields that are
// not covered by struct tags.
func checkVar(v *validator.Validate, field string, value any, tag string) []FieldError {
	err := v.Var(value, tag)
	if err == nil {
		return nil
	}
	var ves validator.ValidationErrors
	if errors.As(err, &ves) && len(ves) > 0 {
		return []FieldError{{Field: field, Message: message(ves[0])}}
	}
	return []FieldError{{Field: field, Message: err.Error()}}
}
