package binder

import (
	"regexp"

	"github.com/go-playground/validator/v10"
)

var (
	phoneRE = regexp.MustCompile(`^\+?[0-9][0-9 ().-]{4,23}$`)
)

// phoneValidator accepts loosely-formatted phone numbers: an optional leading
// +, then digits with common separators. The empty string is allowed so the
// validator can be used to clear out values; combine with `required` when the
// field must be present.
func phoneValidator(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	return phoneRE.MatchString(value)
}
