// Package validate implements the client-side form checks that run before
// any network call. Every check returns the user-facing message, or "" when
// the value is acceptable.
package validate

import (
	"regexp"
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/dmitrijs2005/fraudsentry/internal/client/models"
)

// Form field names, matching the API's JSON field names.
const (
	FieldName            = "name"
	FieldEmail           = "email"
	FieldAddress         = "address"
	FieldMobileNumber    = "mobileNumber"
	FieldPassword        = "password"
	FieldConfirmPassword = "confirmPassword"
	FieldOTP             = "otp"
	FieldNewPassword     = "newPassword"
	FieldAmount          = "amount"
)

const MinPasswordLength = 6

var (
	emailPattern = regexp.MustCompile(`\S+@\S+\.\S+`)
	phonePattern = regexp.MustCompile(`^[0-9]{10,15}$`)
	nonDigit     = regexp.MustCompile(`[^0-9]`)
)

// FieldErrors maps a form field to its message. A nil FieldErrors is empty.
type FieldErrors map[string]string

// Set records msg for field unless msg is empty. The first message for a
// field wins.
func (e FieldErrors) Set(field, msg string) {
	if msg == "" {
		return
	}
	if _, ok := e[field]; ok {
		return
	}
	e[field] = msg
}

func (e FieldErrors) OK() bool { return len(e) == 0 }

func (e FieldErrors) Get(field string) string { return e[field] }

// Fields returns the fields with errors in lexical order.
func (e FieldErrors) Fields() []string {
	out := make([]string, 0, len(e))
	for f := range e {
		out = append(out, f)
	}
	sort.Strings(out)
	return out
}

func blank(v string) bool { return strings.TrimSpace(v) == "" }

// Required returns msg when v is blank.
func Required(v, msg string) string {
	if blank(v) {
		return msg
	}
	return ""
}

func Email(v string) string {
	switch {
	case blank(v):
		return "Email is required"
	case !emailPattern.MatchString(v):
		return "Email is invalid"
	}
	return ""
}

func Password(v string) string {
	switch {
	case v == "":
		return "Password is required"
	case len([]rune(v)) < MinPasswordLength:
		return "Password must be at least 6 characters"
	}
	return ""
}

// Phone accepts any formatting as long as the digits alone number 10 to 15.
func Phone(v string) string {
	switch {
	case blank(v):
		return "Mobile number is required"
	case !phonePattern.MatchString(nonDigit.ReplaceAllString(v, "")):
		return "Please enter a valid mobile number"
	}
	return ""
}

func Confirm(password, confirm string) string {
	switch {
	case confirm == "":
		return "Please confirm your password"
	case confirm != password:
		return "Passwords do not match"
	}
	return ""
}

func OTP(v string) string {
	return Required(v, "OTP is required")
}

// Amount parses a transfer amount. It must be a plain decimal greater than zero.
func Amount(raw string) (decimal.Decimal, string) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return decimal.Zero, "Amount is required"
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, "Amount must be a number"
	}
	if d.Sign() <= 0 {
		return decimal.Zero, "Amount must be greater than zero"
	}
	return d, ""
}

// Profile checks the editable profile fields shared by registration and
// profile editing.
func Profile(f models.ProfileFields) FieldErrors {
	errs := FieldErrors{}
	errs.Set(FieldName, Required(f.Name, "Name is required"))
	errs.Set(FieldEmail, Email(f.Email))
	errs.Set(FieldAddress, Required(f.Address, "Address is required"))
	errs.Set(FieldMobileNumber, Phone(f.MobileNumber))
	return errs
}

// Login checks the sign-in form.
func Login(email, password string) FieldErrors {
	errs := FieldErrors{}
	errs.Set(FieldEmail, Email(email))
	errs.Set(FieldPassword, Password(password))
	return errs
}

// Registration checks the sign-up form.
func Registration(f models.ProfileFields, password, confirm string) FieldErrors {
	errs := Profile(f)
	errs.Set(FieldPassword, Password(password))
	errs.Set(FieldConfirmPassword, Confirm(password, confirm))
	return errs
}
