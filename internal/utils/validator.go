// internal/utils/validator.go
package utils

import (
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

var principalIDPattern = regexp.MustCompile(`^[a-z0-9]+([._-][a-z0-9]+)*$`)

func init() {
	validate = validator.New()
	validate.RegisterValidation("principal_id", validatePrincipalID)
	validate.RegisterValidation("amount", validateAmount)
}

func ValidateStruct(s interface{}) error {
	return validate.Struct(s)
}

// Principal identifiers follow the host ledger's account naming: lowercase
// alphanumeric segments separated by '.', '_' or '-', 2-64 characters.
func validatePrincipalID(fl validator.FieldLevel) bool {
	principal := fl.Field().String()

	if len(principal) < 2 || len(principal) > 64 {
		return false
	}

	return principalIDPattern.MatchString(principal)
}

// Amounts travel as unsigned base-10 integer strings so 10^24-scale values
// never pass through a float.
func validateAmount(fl validator.FieldLevel) bool {
	amount := fl.Field().String()

	if amount == "" || len(amount) > 40 {
		return false
	}

	for _, ch := range amount {
		if ch < '0' || ch > '9' {
			return false
		}
	}

	return true
}

type ValidationError struct {
	Field   string `json:"field"`
	Tag     string `json:"tag"`
	Message string `json:"message"`
}

func GetValidationErrors(err error) []ValidationError {
	var validationErrors []ValidationError

	if validationErrs, ok := err.(validator.ValidationErrors); ok {
		for _, e := range validationErrs {
			validationErrors = append(validationErrors, ValidationError{
				Field:   strings.ToLower(e.Field()),
				Tag:     e.Tag(),
				Message: getValidationMessage(e),
			})
		}
	}

	return validationErrors
}

func getValidationMessage(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return e.Field() + " is required"
	case "min":
		return e.Field() + " must be at least " + e.Param()
	case "max":
		return e.Field() + " must be at most " + e.Param()
	case "principal_id":
		return "Principal id must be 2-64 characters of lowercase letters, digits and separators"
	case "amount":
		return "Amount must be an unsigned base-10 integer string"
	default:
		return e.Field() + " is invalid"
	}
}
