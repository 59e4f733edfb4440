package validate

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/dmitrijs2005/fraudsentry/internal/client/models"
)

func validProfile() models.ProfileFields {
	return models.ProfileFields{
		Name:         "Alice",
		Email:        "alice@example.com",
		Address:      "1 Main St",
		MobileNumber: "+91 98765-43210",
	}
}

func TestEmail(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", "Email is required"},
		{"   ", "Email is required"},
		{"alice", "Email is invalid"},
		{"alice@example", "Email is invalid"},
		{"@example.com", "Email is invalid"},
		{"alice@.com", "Email is invalid"},
		{"alice@example.com", ""},
		{"a@b.c", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Email(tt.in), "input %q", tt.in)
	}
}

func TestPassword(t *testing.T) {
	assert.Equal(t, "Password is required", Password(""))
	for n := 1; n < MinPasswordLength; n++ {
		assert.Equal(t, "Password must be at least 6 characters", Password(strings.Repeat("x", n)))
	}
	assert.Empty(t, Password("secret"))
	assert.Empty(t, Password("пароль"), "length counts characters, not bytes")
}

func TestPhone(t *testing.T) {
	tests := []struct {
		in string
		ok bool
	}{
		{"123456789", false},
		{"1234567890", true},
		{"123456789012345", true},
		{"1234567890123456", false},
		{"(555) 123-4567", true},
		{"+1 555 123 4567 89", true},
		{"phone: 12345", false},
	}
	for _, tt := range tests {
		got := Phone(tt.in)
		if tt.ok {
			assert.Empty(t, got, tt.in)
		} else {
			assert.Equal(t, "Please enter a valid mobile number", got, tt.in)
		}
	}
	assert.Equal(t, "Mobile number is required", Phone(""))
}

func TestConfirm(t *testing.T) {
	assert.Equal(t, "Please confirm your password", Confirm("secret1", ""))
	assert.Equal(t, "Passwords do not match", Confirm("secret1", "secret2"))
	assert.Empty(t, Confirm("secret1", "secret1"))
}

func TestAmount(t *testing.T) {
	_, msg := Amount("")
	assert.Equal(t, "Amount is required", msg)
	_, msg = Amount("ten")
	assert.Equal(t, "Amount must be a number", msg)
	_, msg = Amount("0")
	assert.Equal(t, "Amount must be greater than zero", msg)
	_, msg = Amount("-3")
	assert.Equal(t, "Amount must be greater than zero", msg)

	d, msg := Amount(" 12.50 ")
	assert.Empty(t, msg)
	assert.True(t, d.Equal(decimal.RequireFromString("12.5")))
}

func TestRegistration_EveryMissingFieldBlocks(t *testing.T) {
	blankers := map[string]func(*models.ProfileFields, *string, *string){
		FieldName:            func(p *models.ProfileFields, _, _ *string) { p.Name = "" },
		FieldEmail:           func(p *models.ProfileFields, _, _ *string) { p.Email = "" },
		FieldAddress:         func(p *models.ProfileFields, _, _ *string) { p.Address = "" },
		FieldMobileNumber:    func(p *models.ProfileFields, _, _ *string) { p.MobileNumber = "" },
		FieldPassword:        func(_ *models.ProfileFields, pw, _ *string) { *pw = "" },
		FieldConfirmPassword: func(_ *models.ProfileFields, _, c *string) { *c = "" },
	}

	for field, mutate := range blankers {
		t.Run(field, func(t *testing.T) {
			p, pw, confirm := validProfile(), "secret1", "secret1"
			mutate(&p, &pw, &confirm)

			errs := Registration(p, pw, confirm)
			assert.False(t, errs.OK())
			assert.NotEmpty(t, errs.Get(field))
		})
	}
}

func TestRegistration_Valid(t *testing.T) {
	errs := Registration(validProfile(), "secret1", "secret1")
	assert.True(t, errs.OK(), errs)
}

func TestRegistration_Mismatch(t *testing.T) {
	errs := Registration(validProfile(), "secret1", "secret2")
	assert.Equal(t, []string{FieldConfirmPassword}, errs.Fields())
	assert.Equal(t, "Passwords do not match", errs.Get(FieldConfirmPassword))
}

func TestLogin(t *testing.T) {
	errs := Login("nope", "123")
	assert.Equal(t, []string{FieldEmail, FieldPassword}, errs.Fields())
	assert.True(t, Login("a@b.co", "secret").OK())
}

func TestFieldErrors_FirstMessageWins(t *testing.T) {
	errs := FieldErrors{}
	errs.Set(FieldEmail, "")
	assert.True(t, errs.OK())
	errs.Set(FieldEmail, "first")
	errs.Set(FieldEmail, "second")
	assert.Equal(t, "first", errs.Get(FieldEmail))

	var none FieldErrors
	assert.True(t, none.OK())
	assert.Empty(t, none.Get(FieldEmail))
}
