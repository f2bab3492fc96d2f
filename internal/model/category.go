package model

import "github.com/shopspring/decimal"

// Category is a named expense bucket accumulating spend.
type Category struct {
	Key    string          `json:"key"`
	Label  string          `json:"label"`
	Color  string          `json:"color"`
	Emoji  string          `json:"emoji"`
	Amount decimal.Decimal `json:"amount"`
	ID     int64           `json:"id"`
}

// ApplyDelta returns the category amount after adding delta, clamped at zero.
func (c Category) ApplyDelta(delta decimal.Decimal) decimal.Decimal {
	return ClampZero(c.Amount.Add(delta))
}

// SeedCategories is the fixed set created on first initialization.
func SeedCategories() []Category {
	return []Category{
		{Key: "food", Label: "Nourriture", Amount: decimal.NewFromInt(20), Color: "#10b981", Emoji: "🍕"},
		{Key: "fun", Label: "Loisirs", Amount: decimal.NewFromInt(50), Color: "#22c55e", Emoji: "🎮"},
		{Key: "clothes", Label: "Vêtements", Amount: decimal.NewFromInt(30), Color: "#16a34a", Emoji: "👕"},
		{Key: "transport", Label: "Transport", Amount: decimal.NewFromInt(15), Color: "#15803d", Emoji: "🚌"},
	}
}
