// Package validation checks inbound payloads before they reach a service.
//
// Rules are declared as struct tags on the request types in internal/ports and
// interpreted by go-playground/validator. Three rules are specific to this
// service: password, datestring and objectid.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/taskflow/core/internal/domain/entities"
)

// PasswordSymbols is the set a password must draw at least one symbol from
const PasswordSymbols = "!@#$%^&*()-_=+[]{};:,.?/~"

const (
	passwordMinLen = 6
	passwordMaxLen = 18
)

// Error is the first rule a payload violated
type Error struct {
	Field   string
	Rule    string
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

// Validator implements echo.Validator
type Validator struct {
	validate *validator.Validate
}

// New creates a validator with the custom rules registered
func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		for _, tag := range []string{"json", "param"} {
			name := strings.SplitN(fld.Tag.Get(tag), ",", 2)[0]
			if name != "" && name != "-" {
				return name
			}
		}
		return fld.Name
	})

	// Registration only fails on empty tags or nil funcs
	_ = v.RegisterValidation("password", func(fl validator.FieldLevel) bool {
		return IsValidPassword(fl.Field().String())
	})
	_ = v.RegisterValidation("datestring", func(fl validator.FieldLevel) bool {
		_, err := entities.ParseDeadline(fl.Field().String())
		return err == nil
	})
	_ = v.RegisterValidation("objectid", func(fl validator.FieldLevel) bool {
		return primitive.IsValidObjectID(fl.Field().String())
	})

	return &Validator{validate: v}
}

// Validate validates structs and reports the first violated rule
func (v *Validator) Validate(i interface{}) error {
	err := v.validate.Struct(i)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return err
	}

	fe := verrs[0]
	return &Error{
		Field:   fe.Field(),
		Rule:    fe.Tag(),
		Message: message(fe),
	}
}

func message(fe validator.FieldError) string {
	field := fe.Field()

	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "min":
		return fmt.Sprintf("%s must contain at least %s character(s)", field, fe.Param())
	case "max":
		return fmt.Sprintf("%s must contain at most %s character(s)", field, fe.Param())
	case "len":
		return fmt.Sprintf("%s must contain exactly %s character(s)", field, fe.Param())
	case "email":
		return "Invalid email"
	case "oneof":
		options := strings.Fields(fe.Param())
		return fmt.Sprintf("Invalid enum value. Expected '%s', received '%v'", strings.Join(options, "' | '"), fe.Value())
	case "password":
		return fmt.Sprintf("password must be %d-%d characters and contain a lowercase letter, an uppercase letter, a digit and one of %s",
			passwordMinLen, passwordMaxLen, PasswordSymbols)
	case "datestring":
		return fmt.Sprintf("%s must be a valid date", field)
	case "objectid":
		return fmt.Sprintf("%s must be a 24 character hex id", field)
	default:
		return fmt.Sprintf("%s failed on the %s rule", field, fe.Tag())
	}
}

// IsValidPassword checks the length and that each required character class
// appears at least once. Other characters, spaces included, are allowed.
func IsValidPassword(password string) bool {
	n := utf8.RuneCountInString(password)
	if n < passwordMinLen || n > passwordMaxLen {
		return false
	}

	var lower, upper, digit, symbol bool
	for _, r := range password {
		switch {
		case unicode.IsLower(r):
			lower = true
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsDigit(r):
			digit = true
		case strings.ContainsRune(PasswordSymbols, r):
			symbol = true
		}
	}

	return lower && upper && digit && symbol
}
