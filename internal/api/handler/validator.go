package handler

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/packagetracker/tracker/internal/core/domain"
)

// echoValidator wraps go-playground/validator so Echo can call c.Validate(req).
type echoValidator struct {
	v *validator.Validate
}

// NewValidator returns an echoValidator ready to be assigned to echo.Echo.Validator.
// Besides the built-in tags it understands:
//   - apidate:   yyyy-MM-dd
//   - birthdate: dd-MM-yyyy
func NewValidator() *echoValidator {
	v := validator.New()
	_ = v.RegisterValidation("apidate", func(fl validator.FieldLevel) bool {
		_, ok := domain.ParseAPIDate(fl.Field().String())
		return ok
	})
	_ = v.RegisterValidation("birthdate", func(fl validator.FieldLevel) bool {
		_, ok := domain.ParseBirthDate(fl.Field().String())
		return ok
	})
	return &echoValidator{v: v}
}

// Validate satisfies the echo.Validator interface.
func (ev *echoValidator) Validate(i any) error {
	if err := ev.v.Struct(i); err != nil {
		var ve validator.ValidationErrors
		if errors.As(err, &ve) {
			msgs := make([]string, 0, len(ve))
			for _, fe := range ve {
				msgs = append(msgs, fieldError(fe))
			}
			return fmt.Errorf("%s", strings.Join(msgs, "; "))
		}
		return err
	}
	return nil
}

// fieldError converts a single ValidationError into a human-readable message.
func fieldError(fe validator.FieldError) string {
	field := strings.ToLower(fe.Field())
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "email":
		return field + " must be a valid email"
	case "min":
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s", field, fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, fe.Param())
	case "apidate":
		return field + " must be a date formatted yyyy-mm-dd"
	case "birthdate":
		return field + " must be a date formatted dd-mm-yyyy"
	default:
		return fmt.Sprintf("%s failed validation (%s)", field, fe.Tag())
	}
}
