package validation

import (
	"unicode"

	"github.com/go-playground/validator/v10"
)

type Validator struct {
	v *validator.Validate
}

func New() *Validator {
	return &Validator{v: NewValidate()}
}

// NewValidate builds the shared validator instance with the custom
// rules registered.
func NewValidate() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("strongpassword", strongPassword)
	return v
}

func (v *Validator) Validate(i interface{}) error {
	return v.v.Struct(i)
}

// strongPassword: at least 8 chars with lower, upper, digit and symbol.
func strongPassword(fl validator.FieldLevel) bool {
	s := fl.Field().String()
	if len(s) < 8 {
		return false
	}
	var lower, upper, digit, symbol bool
	for _, r := range s {
		switch {
		case unicode.IsLower(r):
			lower = true
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsDigit(r):
			digit = true
		case unicode.IsPunct(r) || unicode.IsSymbol(r):
			symbol = true
		}
	}
	return lower && upper && digit && symbol
}

// FieldError is one entry of the structured validation error list.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Errors flattens a validator error into field/message pairs for 422
// responses.
func Errors(err error) []FieldError {
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return []FieldError{{Field: "", Message: "invalid input"}}
	}
	out := make([]FieldError, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, FieldError{Field: fe.Field(), Message: message(fe)})
	}
	return out
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "must not be empty"
	case "min":
		return "must not be less than " + fe.Param() + " characters"
	case "max":
		return "must not be greater than " + fe.Param() + " characters"
	case "email":
		return "invalid email format"
	case "eqfield":
		return "does not match " + fe.Param()
	case "strongpassword":
		return "password is not strong enough"
	case "oneof":
		return "must be one of " + fe.Param()
	case "gte":
		return "must be at least " + fe.Param()
	default:
		return "invalid value"
	}
}
