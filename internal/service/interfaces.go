// Package service defines the interfaces shared by the ledger, storage and presentation layers.
package service

import (
	"context"
	"time"

	"github.com/Veraticus/cashheal/internal/model"
	"github.com/shopspring/decimal"
)

// TransactionFilter defines filtering options for transaction queries.
// Nil bounds are open; both bounds are inclusive. Limit <= 0 means no limit.
type TransactionFilter struct {
	From  *time.Time
	To    *time.Time
	Limit int
}

// Storage defines the contract for the ledger persistence layer.
type Storage interface {
	// Initialize creates the schema and seeds the balance and categories when empty.
	// It is safe to call on every start.
	Initialize(ctx context.Context) error

	// Balance operations
	GetBalance(ctx context.Context) (model.Balance, error)
	SetBalance(ctx context.Context, total, current decimal.Decimal) error

	// Category operations
	GetCategories(ctx context.Context) ([]model.Category, error)
	GetCategory(ctx context.Context, key string) (*model.Category, error)
	UpdateCategoryAmount(ctx context.Context, key string, delta decimal.Decimal) error
	SetCategoryAmount(ctx context.Context, key string, amount decimal.Decimal) error

	// Transaction operations
	AddTransaction(ctx context.Context, txType model.TransactionType, amount decimal.Decimal, categoryKey *string) (model.Transaction, error)
	GetTransactions(ctx context.Context, filter TransactionFilter) ([]model.Transaction, error)

	// Database management
	BeginTx(ctx context.Context) (Transaction, error)
	Close() error
}

// Transaction represents an exclusive write transaction.
type Transaction interface {
	Commit() error
	Rollback() error
	// Include all Storage methods for use within transaction
	Storage
}

// KeyValue is a string key-value substrate with an atomic multi-key write.
type KeyValue interface {
	// Get returns the value and whether the key exists.
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	// SetMulti writes every entry or none of them.
	SetMulti(ctx context.Context, entries map[string]string) error
	Remove(ctx context.Context, key string) error
}
