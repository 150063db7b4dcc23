package util

import (
	"fmt"
	"regexp"

	"github.com/go-playground/validator/v10"
)

var Validate *validator.Validate

func init() {
	Validate = validator.New()

	Validate.RegisterValidation("hasuppercase", validateHasUppercase)
}

func validateHasUppercase(fl validator.FieldLevel) bool {
	password := fl.Field().String()

	return regexp.MustCompile(`[A-Z]`).MatchString(password)
}

type ErrorResponse struct {
	Field string `json:"field"`
	Tag   string `json:"tag"`
	Msg   string `json:"message"`
}

func ValidateStruct(s interface{}) []*ErrorResponse {
	var errors []*ErrorResponse
	err := Validate.Struct(s)
	if err != nil {

		for _, err := range err.(validator.ValidationErrors) {
			var element ErrorResponse
			element.Field = err.Field()
			element.Tag = err.Tag()

			switch err.Tag() {
			case "required":
				element.Msg = fmt.Sprintf("Field '%s' is required.", element.Field)
			case "min":
				element.Msg = fmt.Sprintf("Field '%s' must have at least %s characters/value.", element.Field, err.Param())
			case "max":
				element.Msg = fmt.Sprintf("Field '%s' must have at most %s characters/value.", element.Field, err.Param())
			case "email":
				element.Msg = "Invalid email format."
			case "hasuppercase":
				element.Msg = "Password must contain at least one uppercase letter."
			case "url":
				element.Msg = fmt.Sprintf("Field '%s' must be a valid URL.", element.Field)
			case "oneof":
				element.Msg = fmt.Sprintf("Field '%s' must be one of: %s.", element.Field, err.Param())
			case "datetime":
				element.Msg = fmt.Sprintf("Field '%s' must match the format %s.", element.Field, err.Param())
			default:
				element.Msg = fmt.Sprintf("Field '%s' failed validation for tag '%s'.", element.Field, element.Tag)
			}
			errors = append(errors, &element)
		}
	}
	return errors
}
