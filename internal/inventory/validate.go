package inventory

import (
	"fmt"
	"strings"

	"relief-coordination-api/internal/apperr"
	"relief-coordination-api/internal/models"
	"relief-coordination-api/internal/validation"

	"github.com/go-playground/validator/v10"
)

// ItemInput is one submitted stock line. Quantity is a pointer so that an
// omitted quantity can be told apart from zero.
type ItemInput struct {
	ItemName  string `json:"itemName" validate:"required"`
	Category  string `json:"category" validate:"required,category"`
	Quantity  *int   `json:"quantity" validate:"required,gte=0"`
	Unit      string `json:"unit" validate:"required,unit"`
	Condition string `json:"condition" validate:"required,condition"`
}

// SubmitRequest is the caller-facing submission contract.
type SubmitRequest struct {
	RegistrationNumber string      `json:"registrationNumber"`
	Items              []ItemInput `json:"items"`
}

var itemReasons = map[string]string{
	"category":  "must be one of " + strings.Join(models.Categories, ", "),
	"unit":      "must be one of " + strings.Join(models.Units, ", "),
	"condition": "must be one of " + strings.Join(models.Conditions, ", "),
}

func newValidator() *validator.Validate {
	v := validation.New()
	validation.MustRegister(v, "category", func(fl validator.FieldLevel) bool {
		return models.IsCategory(fl.Field().String())
	})
	validation.MustRegister(v, "unit", func(fl validator.FieldLevel) bool {
		return models.IsUnit(fl.Field().String())
	})
	validation.MustRegister(v, "condition", func(fl validator.FieldLevel) bool {
		return models.IsCondition(fl.Field().String())
	})
	return v
}

// validateRequest checks the whole submission and returns the first
// offending field as an *apperr.ValidationError.
func validateRequest(v *validator.Validate, req SubmitRequest) error {
	if strings.TrimSpace(req.RegistrationNumber) == "" {
		return apperr.Invalid("registrationNumber", "is required")
	}
	if len(req.Items) == 0 {
		return apperr.Invalid("items", "must contain at least one item")
	}
	for i, item := range req.Items {
		if err := validation.Struct(v, item, fmt.Sprintf("items[%d].", i), itemReasons); err != nil {
			return err
		}
	}
	return nil
}
