package handler

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type (
	// ErrorResponse describes one rejected field.
	ErrorResponse struct {
		FailedField string `json:"field"`
		Tag         string `json:"tag"`
		Param       string `json:"param,omitempty"`
		Value       any    `json:"value"`
	}

	// ValidationResponse is the 400 body of a rejected request.
	ValidationResponse struct {
		Message string          `json:"message"`
		Errors  []ErrorResponse `json:"errors"`
	}

	// XValidator wraps a validator.Validate reporting json field names.
	XValidator struct {
		validate *validator.Validate
	}
)

// NewValidator returns a validator naming fields after their json tag.
func NewValidator() *XValidator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(fieldName)

	return &XValidator{validate: v}
}

// Validate performs validation on the provided data and returns a slice of ErrorResponse.
func (v *XValidator) Validate(data any) []ErrorResponse {
	var validationErrors []ErrorResponse

	err := v.validate.Struct(data)
	if err == nil {
		return nil
	}

	var errs validator.ValidationErrors
	if !errors.As(err, &errs) {
		return []ErrorResponse{{Tag: err.Error()}}
	}

	for _, fe := range errs {
		validationErrors = append(validationErrors, ErrorResponse{
			FailedField: fe.Field(),
			Tag:         fe.Tag(),
			Param:       fe.Param(),
			Value:       fe.Value(),
		})
	}

	return validationErrors
}

// Check validates data and writes the 400 answer when it is rejected.
// It reports whether the handler may go on.
func (v *XValidator) Check(c *fiber.Ctx, data any) (bool, error) {
	errs := v.Validate(data)
	if len(errs) == 0 {
		return true, nil
	}

	return false, c.Status(fiber.StatusBadRequest).JSON(ValidationResponse{
		Message: MsgValidationFailed,
		Errors:  errs,
	})
}
