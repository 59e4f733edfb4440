package views

import (
	"time"

	"github.com/shopspring/decimal"
)

const currencySign = "₹"

// FormatAmount renders a money value with two decimals and no grouping,
// e.g. "₹1250.50".
func FormatAmount(d decimal.Decimal) string {
	if d.IsNegative() {
		return "-" + currencySign + d.Neg().StringFixed(2)
	}
	return currencySign + d.StringFixed(2)
}

// FormatDate renders t in the local time zone.
func FormatDate(t time.Time) string {
	return t.Local().Format("2 Jan 2006, 15:04:05")
}
