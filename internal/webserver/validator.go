package webserver

import (
	validatorv10 "github.com/go-playground/validator/v10"
)

// Validator adapts validator/v10 to echo.Validator.
type Validator struct {
	validate *validatorv10.Validate
}

func NewValidator() *Validator {
	return &Validator{validate: validatorv10.New()}
}

func (v *Validator) Validate(i interface{}) error {
	return v.validate.Struct(i)
}
