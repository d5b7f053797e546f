package utils

import (
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"
)

// Stripe caps price lookup keys at 200 characters.
const maxLookupKeyLen = 200

type Validator struct {
	validate *validator.Validate
}

func NewValidator() *Validator {
	v := validator.New()

	// Custom validations
	v.RegisterValidation("lookup_key", validateLookupKey)

	return &Validator{
		validate: v,
	}
}

func (v *Validator) Struct(s interface{}) error {
	return v.validate.Struct(s)
}

func validateLookupKey(fl validator.FieldLevel) bool {
	key := fl.Field().String()
	if key == "" || len(key) > maxLookupKeyLen {
		return false
	}
	return strings.IndexFunc(key, unicode.IsSpace) < 0
}
