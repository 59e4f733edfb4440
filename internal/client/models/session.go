// Package models defines the client-side data model: the authenticated
// session, profile fields, directory entries and transactions.
package models

import "github.com/shopspring/decimal"

// Profile holds the editable personal details of an account together with
// its available balance as last reported by the API.
type Profile struct {
	Name            string          `json:"name"`
	Email           string          `json:"email"`
	Address         string          `json:"address"`
	MobileNumber    string          `json:"mobileNumber"`
	AmountAvailable decimal.Decimal `json:"amountAvailable"`
}

// ProfileFields are the user-editable subset of Profile.
type ProfileFields struct {
	Name         string `json:"name"`
	Email        string `json:"email"`
	Address      string `json:"address"`
	MobileNumber string `json:"mobileNumber"`
}

// Fields returns the editable part of p.
func (p Profile) Fields() ProfileFields {
	return ProfileFields{Name: p.Name, Email: p.Email, Address: p.Address, MobileNumber: p.MobileNumber}
}

// WithFields returns a copy of p with the editable fields replaced.
func (p Profile) WithFields(f ProfileFields) Profile {
	p.Name = f.Name
	p.Email = f.Email
	p.Address = f.Address
	p.MobileNumber = f.MobileNumber
	return p
}

// Session is the currently authenticated actor.
//
// UserID never changes for the lifetime of a session. DeviceID is attached
// in memory by the session provider and is not part of the persisted form.
type Session struct {
	UserID   string
	Token    string
	Profile  Profile
	DeviceID string
}

// Valid reports whether s carries both an identity and a credential.
func (s Session) Valid() bool {
	return s.UserID != "" && s.Token != ""
}
