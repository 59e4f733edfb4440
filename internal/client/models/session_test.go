package models

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestSession_Valid(t *testing.T) {
	assert.False(t, Session{}.Valid())
	assert.False(t, Session{UserID: "u1"}.Valid())
	assert.False(t, Session{Token: "t"}.Valid())
	assert.True(t, Session{UserID: "u1", Token: "t"}.Valid())
}

func TestProfile_WithFieldsKeepsBalance(t *testing.T) {
	p := Profile{Name: "Old", Email: "old@example.com", AmountAvailable: decimal.RequireFromString("150.25")}

	got := p.WithFields(ProfileFields{Name: "New", Email: "new@example.com", Address: "Main St", MobileNumber: "1234567890"})

	assert.Equal(t, "New", got.Name)
	assert.Equal(t, "new@example.com", got.Email)
	assert.Equal(t, "Main St", got.Address)
	assert.Equal(t, "1234567890", got.MobileNumber)
	assert.True(t, got.AmountAvailable.Equal(decimal.RequireFromString("150.25")))
	assert.Equal(t, "Old", p.Name, "receiver must not be modified")
}

func TestProfile_Fields(t *testing.T) {
	p := Profile{Name: "A", Email: "a@b.c", Address: "X", MobileNumber: "123"}
	assert.Equal(t, ProfileFields{Name: "A", Email: "a@b.c", Address: "X", MobileNumber: "123"}, p.Fields())
}
