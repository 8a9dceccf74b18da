// Package validation provides struct validation with go-playground/validator
// integration, shared by the configuration layer and callers embedding the
// engine.
package validation

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/opflow/opflow/internal/core/tensor"
)

// ValidationError represents a single failed constraint with details.
type ValidationError struct {
	Field   string      `json:"field"`
	Value   interface{} `json:"value"`
	Message string      `json:"message"`
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("validation error on field '%s': %s (got: %v)", e.Field, e.Message, e.Value)
}

// ValidationErrors aggregates every failed constraint of one Struct call.
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return "no validation errors"
	}
	msgs := make([]string, len(e))
	for i, err := range e {
		msgs[i] = err.Error()
	}
	return strings.Join(msgs, "; ")
}

// Validate is the shared validator instance with engine-specific tags
// registered.
var Validate *validator.Validate

func init() {
	Validate = validator.New()

	// "device" accepts any spec tensor.ParseDevice accepts.
	_ = Validate.RegisterValidation("device", validateDevice)

	// Report fields under their koanf key rather than the Go field name.
	Validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("koanf"), ",", 2)[0]
		if name == "" || name == "-" {
			return fld.Name
		}
		return name
	})
}

// Struct validates a struct and converts validator errors to our format.
func Struct(s interface{}) error {
	err := Validate.Struct(s)
	if err == nil {
		return nil
	}

	var errs ValidationErrors
	if fieldErrors, ok := err.(validator.ValidationErrors); ok {
		for _, fe := range fieldErrors {
			errs = append(errs, ValidationError{
				Field:   fe.Field(),
				Value:   fe.Value(),
				Message: message(fe),
			})
		}
		return errs
	}
	return err
}

func validateDevice(fl validator.FieldLevel) bool {
	_, err := tensor.ParseDevice(fl.Field().String())
	return err == nil
}

// message returns a human-readable description for a failed tag.
func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "field is required"
	case "gte":
		return fmt.Sprintf("must be greater than or equal to %s", fe.Param())
	case "lte":
		return fmt.Sprintf("must be less than or equal to %s", fe.Param())
	case "device":
		return "must be a valid device spec such as cpu, cuda or cuda:1"
	default:
		return fmt.Sprintf("failed '%s' validation", fe.Tag())
	}
}
