package utils

import (
	"regexp"
	"time"

	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

var dateKeyRegex = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

func init() {
	validate = validator.New()
	validate.RegisterValidation("date_key", validateDateKey)
}

func ValidateStruct(s interface{}) error {
	return validate.Struct(s)
}

func validateDateKey(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if !dateKeyRegex.MatchString(value) {
		return false
	}
	_, err := time.Parse("2006-01-02", value)
	return err == nil
}
