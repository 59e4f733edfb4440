package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction is a completed transfer as recorded by the backend.
// Amount is never negative.
type Transaction struct {
	TxnID       string
	RecipientID string
	Amount      decimal.Decimal
	Date        time.Time
}
