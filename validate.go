package accounts

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
)

// Rules for the single-value validators below. The struct tags on the
// request types in interfaces.go must stay in step with them.
const (
	nameRules     = "required,alpha"
	ageRules      = "gte=18,lte=120"
	usernameRules = "required,alphanum"
	passwordRules = "required,password"

	minPasswordLength = 10
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// report fields by their JSON names
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	if err := v.RegisterValidation("password", func(fl validator.FieldLevel) bool {
		return passwordProblem(fl.Field().String()) == ""
	}); err != nil {
		panic(err)
	}
	return v
}

func ValidateName(name string) error {
	return validateVar("name", name, nameRules)
}

func ValidateSurname(surname string) error {
	return validateVar("surname", surname, nameRules)
}

func ValidateAge(age int) error {
	return validateVar("age", age, ageRules)
}

func ValidateUsername(username string) error {
	return validateVar("username", username, usernameRules)
}

func ValidatePassword(password string) error {
	return validateVar("password", password, passwordRules)
}

func validateVar(field string, value interface{}, rules string) error {
	return toValidationErrors(validate.Var(value, rules), field)
}

// validateStruct runs every rule on s and reports the first failure of each
// invalid field.
func validateStruct(s interface{}) error {
	return toValidationErrors(validate.Struct(s), "")
}

func toValidationErrors(err error, field string) error {
	if err == nil {
		return nil
	}

	var errs validator.ValidationErrors
	if !errors.As(err, &errs) {
		return err
	}

	out := make(ValidationErrors, 0, len(errs))
	for _, fe := range errs {
		name := field
		if ns := fe.Namespace(); ns != "" {
			// drop the top-level struct name
			if i := strings.IndexByte(ns, '.'); i >= 0 {
				name = ns[i+1:]
			}
		}
		out = append(out, FieldError{Field: name, Message: fieldMessage(name, fe), Tag: fe.Tag()})
	}
	return out
}

func fieldMessage(name string, fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", name)
	case "alpha":
		return fmt.Sprintf("%s must contain letters only", name)
	case "alphanum":
		return fmt.Sprintf("%s must contain only letters or digits", name)
	case "gte":
		return fmt.Sprintf("%s must be greater than or equal to %s", name, fe.Param())
	case "lte":
		return fmt.Sprintf("%s must be less than or equal to %s", name, fe.Param())
	case "password":
		if s, ok := fe.Value().(string); ok {
			return passwordProblem(s)
		}
	}
	return fmt.Sprintf("%s failed on the '%s' rule", name, fe.Tag())
}

// passwordProblem returns the first strength rule p breaks, or "".
func passwordProblem(p string) string {
	switch {
	case utf8.RuneCountInString(p) < minPasswordLength:
		return fmt.Sprintf("password must be at least %d characters long", minPasswordLength)
	case !strings.ContainsFunc(p, isUpper):
		return "password must contain at least one capital letter"
	case !strings.ContainsFunc(p, isDigit):
		return "password must contain at least one number"
	}
	return ""
}

func isUpper(r rune) bool { return r >= 'A' && r <= 'Z' }

func isDigit(r rune) bool { return r >= '0' && r <= '9' }
