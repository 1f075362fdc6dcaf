// Package validation checks request payloads before they reach the store.
package validation

import (
	"errors"

	"postapi/internal/models"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// Required validates payload's struct tags. Required payload fields are pointers,
// so a field is missing only when it was absent (or null) in the request body;
// an empty value counts as present. On failure it returns a validation error
// carrying message.
func Required(payload any, message string) error {
	err := validate.Struct(payload)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		return models.NewValidationError(message)
	}

	var invalid *validator.InvalidValidationError
	if errors.As(err, &invalid) {
		return models.NewInternalError(err)
	}
	return models.NewValidationError(message)
}

// MissingFields lists the JSON names of the required fields absent from payload.
func MissingFields(payload any) []string {
	var verrs validator.ValidationErrors
	if !errors.As(validate.Struct(payload), &verrs) {
		return nil
	}

	fields := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, fe.Field())
	}
	return fields
}

func init() {
	validate.RegisterTagNameFunc(jsonTagName)
}
