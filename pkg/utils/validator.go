package utils

import (
	"github.com/go-playground/validator/v10"
)

type Validator struct {
	validate *validator.Validate
}

func NewValidator() *Validator {
	return &Validator{
		validate: validator.New(),
	}
}

func (v *Validator) Struct(s interface{}) error {
	return v.validate.Struct(s)
}

// IsEmail reports whether s looks like local@domain.tld. Empty strings
// are not emails; optional fields check emptiness first.
func (v *Validator) IsEmail(s string) bool {
	return v.validate.Var(s, "email") == nil
}
