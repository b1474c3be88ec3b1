// Package validator adapts go-playground/validator to echo's Validator interface.
package validator

import (
	validatorv10 "github.com/go-playground/validator/v10"
)

// CustomValidator wraps a validator.Validate instance for echo.
type CustomValidator struct {
	validate *validatorv10.Validate
}

// New creates a CustomValidator with struct-tag validation enabled.
func New() *CustomValidator {
	return &CustomValidator{
		validate: validatorv10.New(),
	}
}

// Validate validates the given struct against its `validate` tags.
func (v *CustomValidator) Validate(i any) error {
	return v.validate.Struct(i)
}
