// Package validator bridges go-playground/validator into echo.
package validator

import (
	domainerrors "gisty/internal/domain/errors"

	playground "github.com/go-playground/validator/v10"
)

// echoValidator implements echo.Validator on top of go-playground/validator.
type echoValidator struct {
	validate *playground.Validate
}

// New constructs the validator echo uses for c.Validate calls.
func New() *echoValidator {
	return &echoValidator{validate: playground.New()}
}

// Validate checks the struct tags of a bound request payload.
func (v *echoValidator) Validate(i any) error {
	if err := v.validate.Struct(i); err != nil {
		return domainerrors.ErrValidationFailed.WrapMessage(err.Error())
	}

	return nil
}
