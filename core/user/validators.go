package user

import (
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"

	"github.com/codewithmesree/saiu-learnflow/core"
)

var (
	roleTag  = "role"
	roleText = "role must be one of admin, professor or student"

	departmentTag  = "department"
	departmentText = "unknown department"
)

// InitValidators registers the user validators. core.InitValidators must run first.
func InitValidators(validate *validator.Validate, translator ut.Translator) {
	_ = validate.RegisterValidation(roleTag, roleValidation)
	core.RegisterCustomTranslation(validate, translator, roleTag, roleText)

	_ = validate.RegisterValidation(departmentTag, departmentValidation)
	core.RegisterCustomTranslation(validate, translator, departmentTag, departmentText)
}

// Custom Validators

func roleValidation(fl validator.FieldLevel) bool {
	return IsValidRole(fl.Field().String())
}

func departmentValidation(fl validator.FieldLevel) bool {
	dept := fl.Field().String()
	for _, d := range Departments {
		if d == dept {
			return true
		}
	}
	return false
}

func IsValidRole(role string) bool {
	for _, r := range AllRoles {
		if r == role {
			return true
		}
	}
	return false
}
