// Package form holds the field rules shared by the CookNest client forms and
// the registration endpoint.
package form

import (
	"errors"
	"regexp"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Keys used in Errors.
const (
	FieldName     = "name"
	FieldEmail    = "email"
	FieldPassword = "password"
	FieldMethod   = "method"
	FieldForm     = "form"
)

// PaymentMethods is the fixed list offered by the payment view.
var PaymentMethods = []string{"Credit Card", "Debit Card", "UPI", "Net Banking", "Cash on Delivery"}

// wideSpace lists the Unicode space runes; RE2's \s covers ASCII only.
const wideSpace = `\t\n\v\f\r \x{00a0}\x{1680}\x{2000}-\x{200a}\x{2028}\x{2029}\x{202f}\x{205f}\x{3000}\x{feff}`

var emailPattern = regexp.MustCompile(`^[^` + wideSpace + `@]+@[^` + wideSpace + `@]+\.[^` + wideSpace + `@]+$`)

// Errors maps a field key to the message shown next to it.
type Errors map[string]string

func (e Errors) Error() string {
	keys := make([]string, 0, len(e))
	for k := range e {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e[k])
	}
	return strings.Join(parts, "; ")
}

// First returns the message of the first failing field in form order.
func (e Errors) First() string {
	for _, key := range []string{FieldName, FieldEmail, FieldPassword, FieldMethod, FieldForm} {
		if msg, ok := e[key]; ok {
			return msg
		}
	}
	for _, msg := range e {
		return msg
	}
	return ""
}

// Login is the login form payload.
type Login struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// Registration is the register form payload.
type Registration struct {
	Name     string `json:"name" validate:"required,min=2"`
	Email    string `json:"email" validate:"required,emailshape"`
	Password string `json:"password" validate:"required,min=6,complexity"`
}

var registrationMessages = map[string]string{
	"Name.required":       "Name is required",
	"Name.min":            "Name must be at least 2 characters",
	"Email.required":      "Email is required",
	"Email.emailshape":    "Please enter a valid email address",
	"Password.required":   "Password is required",
	"Password.min":        "Password must be at least 6 characters",
	"Password.complexity": "Password must contain uppercase, lowercase, and number",
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("emailshape", func(fl validator.FieldLevel) bool {
		return emailPattern.MatchString(fl.Field().String())
	})
	_ = v.RegisterValidation("complexity", func(fl validator.FieldLevel) bool {
		return hasMixedCaseAndDigit(fl.Field().String())
	})
	_ = v.RegisterValidation("paymethod", func(fl validator.FieldLevel) bool {
		return IsPaymentMethod(fl.Field().String())
	})
	return v
}

// ValidateLogin checks the login form. It returns nil when the form may be
// submitted.
func ValidateLogin(l Login) Errors {
	l.Email = strings.TrimSpace(l.Email)
	l.Password = strings.TrimSpace(l.Password)
	if err := validate.Struct(l); err != nil {
		return Errors{FieldForm: "Please fill in all fields"}
	}
	if err := validate.Var(l.Email, "emailshape"); err != nil {
		return Errors{FieldEmail: "Please enter a valid email address"}
	}
	return nil
}

// ValidateRegistration checks the register form, one message per failing
// field. Name and email are trimmed first; the password is taken as typed.
func ValidateRegistration(r Registration) Errors {
	r.Name = strings.TrimSpace(r.Name)
	r.Email = strings.TrimSpace(r.Email)
	return collect(validate.Struct(r), registrationMessages)
}

// ValidatePayment requires one of PaymentMethods.
func ValidatePayment(method string) Errors {
	if err := validate.Var(method, "required,paymethod"); err != nil {
		return Errors{FieldMethod: "Please select a payment method"}
	}
	return nil
}

// IsPaymentMethod reports whether m is one of PaymentMethods.
func IsPaymentMethod(m string) bool {
	for _, pm := range PaymentMethods {
		if pm == m {
			return true
		}
	}
	return false
}

func hasMixedCaseAndDigit(s string) bool {
	var upper, lower, digit bool
	for _, r := range s {
		switch {
		case 'A' <= r && r <= 'Z':
			upper = true
		case 'a' <= r && r <= 'z':
			lower = true
		case '0' <= r && r <= '9':
			digit = true
		}
	}
	return upper && lower && digit
}

func collect(err error, messages map[string]string) Errors {
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return Errors{FieldForm: err.Error()}
	}
	out := Errors{}
	for _, fe := range verrs {
		field := strings.ToLower(fe.Field())
		if _, seen := out[field]; seen {
			continue
		}
		if msg, ok := messages[fe.Field()+"."+fe.Tag()]; ok {
			out[field] = msg
		} else {
			out[field] = fe.Error()
		}
	}
	return out
}
