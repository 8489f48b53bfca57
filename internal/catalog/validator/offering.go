package validator

import (
	"errors"
	"fmt"
	"strings"

	"atelier/pkg/logger"
	"atelier/pkg/model"

	"github.com/go-playground/validator/v10"
)

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (v ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", v.Field, v.Message)
}

type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	if len(v) == 0 {
		return ""
	}
	var messages []string
	for _, err := range v {
		messages = append(messages, err.Error())
	}
	return fmt.Sprintf("validation failed: %d error(s): [%s]", len(v), strings.Join(messages, "; "))
}

type OfferingValidator struct {
	validate *validator.Validate
	logger   *logger.Logger
}

func NewOfferingValidator(log *logger.Logger) *OfferingValidator {
	return &OfferingValidator{
		validate: validator.New(),
		logger:   log,
	}
}

func (v *OfferingValidator) Validate(offering *model.ServiceOffering) error {
	if err := v.validate.Struct(offering); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			return v.translateValidationErrors(validationErrs)
		}
		return err
	}

	// A deposit larger than the price is always a data-entry mistake.
	if offering.DepositCents > 0 && offering.PriceCents > 0 && offering.DepositCents > offering.PriceCents {
		return ValidationErrors{{
			Field:   "deposit_cents",
			Message: "deposit cannot exceed the service price",
		}}
	}
	return nil
}

func (v *OfferingValidator) ValidateUpdate(updates *model.ServiceOfferingUpdate) error {
	if err := v.validate.Struct(updates); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			return v.translateValidationErrors(validationErrs)
		}
		return err
	}
	return nil
}

func (v *OfferingValidator) translateValidationErrors(errs validator.ValidationErrors) ValidationErrors {
	var validationErrors ValidationErrors

	for _, err := range errs {
		message := err.Error()

		switch err.Tag() {
		case "required":
			message = fmt.Sprintf("%s is required", err.Field())
		case "min":
			message = fmt.Sprintf("%s must be at least %s", err.Field(), err.Param())
		case "max":
			message = fmt.Sprintf("%s must be at most %s", err.Field(), err.Param())
		case "mongodb":
			message = fmt.Sprintf("%s must be a valid object ID", err.Field())
		}

		validationErrors = append(validationErrors, ValidationError{
			Field:   err.Field(),
			Message: message,
		})
	}

	return validationErrors
}
