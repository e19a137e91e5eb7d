// Package validation wraps go-playground/validator so that field errors are
// reported with their JSON names as apperr.ValidationError values.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"relief-coordination-api/internal/apperr"

	"github.com/go-playground/validator/v10"
)

// New returns a validator that names fields after their json tag.
func New() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// MustRegister adds a custom tag and panics if the validator rejects it.
// Tags are registered while services are built, so a bad one stops startup.
func MustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic(fmt.Sprintf("register validation %q: %v", tag, err))
	}
}

// Struct validates s and converts the first failure into an
// *apperr.ValidationError. prefix is prepended to the field name.
func Struct(v *validator.Validate, s any, prefix string, reasons map[string]string) error {
	err := v.Struct(s)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		field := strings.TrimSuffix(prefix, ".")
		if field == "" {
			field = "body"
		}
		return apperr.Invalid(field, err.Error())
	}
	fe := fieldErrs[0]
	return apperr.Invalid(prefix+fe.Field(), Reason(fe, reasons))
}

// Reason renders a short human message for a failed tag. Custom tags can be
// described through reasons, keyed by tag name.
func Reason(fe validator.FieldError, reasons map[string]string) string {
	if r, ok := reasons[fe.Tag()]; ok {
		return r
	}
	switch fe.Tag() {
	case "required":
		return "is required"
	case "gte":
		return "must be >= " + fe.Param()
	case "min":
		return "must be at least " + fe.Param() + " characters"
	case "max":
		return "must be at most " + fe.Param() + " characters"
	case "email":
		return "must be a valid email address"
	case "oneof":
		return "must be one of " + strings.ReplaceAll(fe.Param(), " ", ", ")
	default:
		return "failed " + fe.Tag() + " check"
	}
}
