package school

import (
	"github.com/go-playground/validator/v10"

	"github.com/trezcool/masomo/core"
	"github.com/trezcool/masomo/core/person"
)

var (
	phoneTag  = "phone"
	phoneText = "phone number must contain at least 10 characters"

	roleTag  = "role"
	roleText = "role must be one of Student or Teacher"
)

// register validators
func init() {
	_ = core.Validate.RegisterValidation(phoneTag, phoneValidation)
	core.RegisterCustomTranslation(phoneTag, phoneText)

	_ = core.Validate.RegisterValidation(roleTag, roleValidation)
	core.RegisterCustomTranslation(roleTag, roleText)
}

// Custom Validators

func phoneValidation(fl validator.FieldLevel) bool {
	return person.ValidatePhone(fl.Field().String())
}

func roleValidation(fl validator.FieldLevel) bool {
	return person.Role(fl.Field().String()).IsValid()
}
