// Package validation applies the declarative field rules attached to input payloads.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"
	"unicode"

	"github.com/RajatSinghRajawat/maanvibackend/internal/apperr"
	"github.com/RajatSinghRajawat/maanvibackend/internal/models"
	"github.com/go-playground/validator/v10"
)

// Enum is implemented by the closed string types in models.
type Enum interface {
	IsValid() bool
}

var validate = newValidator()

// fieldMessages overrides the generated message for fields whose rule needs more context.
var fieldMessages = map[string]string{
	"month": "Month must be between 1 and 12",
	"year":  "Year must be valid",
}

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})

	mustRegister(v, "notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})
	mustRegister(v, "enum", func(fl validator.FieldLevel) bool {
		e, ok := fl.Field().Interface().(Enum)
		return ok && e.IsValid()
	})
	mustRegister(v, "isodate", func(fl validator.FieldLevel) bool {
		_, err := models.ParseDate(fl.Field().String(), time.UTC)
		return err == nil
	})

	return v
}

func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic(fmt.Sprintf("failed to register validation %q: %v", tag, err))
	}
}

// Struct validates payload against its `validate` tags. It returns nil or an
// *apperr.Error of kind validation carrying one message per rejected field.
func Struct(payload any) error {
	err := validate.Struct(payload)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return apperr.Internal(fmt.Errorf("failed to validate payload: %w", err))
	}

	fields := make([]apperr.FieldError, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		fields = append(fields, apperr.FieldError{Field: fe.Field(), Message: message(fe)})
	}
	return apperr.Validation("Validation failed", fields...)
}

func message(fe validator.FieldError) string {
	field := fe.Field()
	if msg, ok := fieldMessages[field]; ok {
		return msg
	}

	switch fe.Tag() {
	case "required", "notblank":
		return capitalize(field) + " is required"
	case "email":
		return "Please provide a valid email"
	case "enum":
		return "Invalid " + field
	case "uuid":
		return "Valid " + field + " ID is required"
	case "isodate":
		return "Valid " + field + " is required"
	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%s must be at least %s characters", capitalize(field), fe.Param())
		}
		return fmt.Sprintf("%s must be at least %s", capitalize(field), fe.Param())
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%s must be at most %s characters", capitalize(field), fe.Param())
		}
		return fmt.Sprintf("%s must be at most %s", capitalize(field), fe.Param())
	}
	return "Invalid " + field
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	r := []rune(s)
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}
