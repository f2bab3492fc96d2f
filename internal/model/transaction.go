package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType distinguishes income from expense entries.
type TransactionType string

const (
	// TransactionIncome adds funds to the balance.
	TransactionIncome TransactionType = "income"
	// TransactionExpense spends funds against a category.
	TransactionExpense TransactionType = "expense"
)

// Valid reports whether t is a known transaction type.
func (t TransactionType) Valid() bool {
	return t == TransactionIncome || t == TransactionExpense
}

// Transaction is an immutable ledger entry.
type Transaction struct {
	CreatedAt   time.Time       `json:"createdAt"`
	CategoryKey *string         `json:"categoryKey"`
	Type        TransactionType `json:"type"`
	Amount      decimal.Decimal `json:"amount"`
	ID          int64           `json:"id"`
}

// CreatedAtMillis returns the creation time as epoch milliseconds, the persisted form.
func (t Transaction) CreatedAtMillis() int64 {
	return t.CreatedAt.UnixMilli()
}

// Category returns the category key, or "" for income entries.
func (t Transaction) Category() string {
	if t.CategoryKey == nil {
		return ""
	}
	return *t.CategoryKey
}
