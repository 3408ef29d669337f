// Package validate wraps go-playground/validator with JSON field names and
// human readable messages.
package validate

import (
	"errors"
	"fmt"
	"reflect"
	"slices"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Validator validates request structs.
type Validator struct {
	validate *validator.Validate
	oneOf    map[string][]string
}

// FieldError is a single field validation failure.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Errors is a collection of field failures.
type Errors []FieldError

func (e Errors) Error() string {
	parts := make([]string, len(e))
	for i, fe := range e {
		parts[i] = fe.Field + ": " + fe.Message
	}
	return strings.Join(parts, "; ")
}

// New returns a Validator that reports fields by their json tag name.
func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		switch name {
		case "-":
			return ""
		case "":
			return f.Name
		}
		return name
	})
	return &Validator{validate: v, oneOf: make(map[string][]string)}
}

// RegisterEnum adds a tag accepting exactly the given values. Empty strings
// pass so "required" stays in charge of presence.
func (v *Validator) RegisterEnum(tag string, values []string) error {
	allowed := slices.Clone(values)
	v.oneOf[tag] = allowed
	return v.validate.RegisterValidation(tag, func(fl validator.FieldLevel) bool {
		s := fl.Field().String()
		return s == "" || slices.Contains(allowed, s)
	})
}

// Struct validates s, returning Errors on field failures.
func (v *Validator) Struct(s any) error {
	err := v.validate.Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	out := make(Errors, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, FieldError{Field: fe.Field(), Message: v.message(fe)})
	}
	return out
}

func (v *Validator) message(e validator.FieldError) string {
	if allowed, ok := v.oneOf[e.Tag()]; ok {
		return "must be one of: " + strings.Join(allowed, ", ")
	}

	switch e.Tag() {
	case "required":
		return "is required"
	case "min":
		return fmt.Sprintf("must be at least %s characters", e.Param())
	case "max":
		return fmt.Sprintf("must be at most %s characters", e.Param())
	case "gte":
		return "must be at least " + e.Param()
	case "lte":
		return "must be at most " + e.Param()
	case "email":
		return "must be a valid email address"
	case "ulid":
		return "must be a valid ULID"
	default:
		return fmt.Sprintf("failed %s validation", e.Tag())
	}
}
