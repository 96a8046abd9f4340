// Package display converts source-currency amounts for presentation.
package display

import "github.com/shopspring/decimal"

// Rate converts source currency (USD) into the displayed currency (INR).
const Rate = 82

const Symbol = "₹"

var rate = decimal.NewFromInt(Rate)

// Convert applies the display rate once.
func Convert(amount decimal.Decimal) decimal.Decimal {
	return amount.Mul(rate)
}

// Format renders amount in display currency with two decimals, e.g. ₹819.18.
func Format(amount decimal.Decimal) string {
	return Symbol + Convert(amount).StringFixed(2)
}
