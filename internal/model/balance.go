// Package model holds the ledger and budget types shared across cashheal.
package model

import "github.com/shopspring/decimal"

// Balance is the singleton running funds record.
type Balance struct {
	// Total is the lifetime sum of income.
	Total decimal.Decimal `json:"total"`
	// Current is what is left to spend after expenses.
	Current decimal.Decimal `json:"current"`
}

// SeedBalance returns the balance created on first initialization.
func SeedBalance() Balance {
	return Balance{
		Total:   decimal.NewFromInt(350),
		Current: decimal.NewFromInt(150),
	}
}

// ClampZero returns d, or zero when d is negative.
func ClampZero(d decimal.Decimal) decimal.Decimal {
	if d.IsNegative() {
		return decimal.Zero
	}
	return d
}
