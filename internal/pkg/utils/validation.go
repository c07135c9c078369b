package utils

import (
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

func init() {
	validate = validator.New()
	validate.RegisterTagNameFunc(jsonFieldName)
	validate.RegisterValidation("fhir_gender", validateFhirGender)
}

func ValidateStruct(s interface{}) error {
	return validate.Struct(s)
}

// jsonFieldName makes validation messages name fields the way clients send
// them.
func jsonFieldName(field reflect.StructField) string {
	name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
	if name == "-" || name == "" {
		return field.Name
	}
	return name
}

func validateFhirGender(fl validator.FieldLevel) bool {
	switch strings.ToLower(strings.TrimSpace(fl.Field().String())) {
	case "male", "female", "other", "unknown":
		return true
	}
	return false
}
