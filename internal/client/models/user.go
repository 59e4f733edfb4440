package models

import "github.com/shopspring/decimal"

// UserSummary is a directory entry for another account, used to pick a
// payment recipient.
type UserSummary struct {
	ID              string
	Name            string
	Email           string
	MobileNumber    string
	AmountAvailable decimal.Decimal
}
