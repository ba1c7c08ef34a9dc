// Package validation checks request payloads before they reach the services.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"modelhub/internal/models"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Report fields by their JSON names, as the client sent them.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		if name == "" {
			return fld.Name
		}
		return name
	})
	_ = v.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})
	return v
}

// Struct validates s against its `validate` tags. The first failing field is
// reported as a validation AppError.
func Struct(s any) error {
	if err := validate.Struct(s); err != nil {
		return toAppError(err, "")
	}
	return nil
}

// Var validates a single value against tag, naming it field in the error.
func Var(field string, value any, tag string) error {
	if err := validate.Var(value, tag); err != nil {
		return toAppError(err, field)
	}
	return nil
}

func toAppError(err error, field string) error {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return models.NewValidationError(err.Error())
	}
	fe := fieldErrs[0]
	name := field
	if name == "" {
		name = fe.Field()
	}
	return models.NewValidationError(message(name, fe))
}

func message(name string, fe validator.FieldError) string {
	isText := fe.Kind() == reflect.String
	switch fe.Tag() {
	case "required", "notblank":
		return fmt.Sprintf("%s is required", name)
	case "email":
		return fmt.Sprintf("%s must be a valid email address", name)
	case "min", "gte":
		if isText {
			return fmt.Sprintf("%s must be at least %s characters", name, fe.Param())
		}
		return fmt.Sprintf("%s must be at least %s", name, fe.Param())
	case "max", "lte":
		if isText {
			return fmt.Sprintf("%s must be at most %s characters", name, fe.Param())
		}
		return fmt.Sprintf("%s must be at most %s", name, fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", name, strings.ReplaceAll(fe.Param(), " ", ", "))
	case "url":
		return fmt.Sprintf("%s must be a valid URL", name)
	default:
		return fmt.Sprintf("%s is invalid", name)
	}
}
