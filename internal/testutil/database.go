// Package testutil builds seeded ledger stores for tests.
package testutil

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/Veraticus/cashheal/internal/kvstore"
	"github.com/Veraticus/cashheal/internal/model"
	"github.com/Veraticus/cashheal/internal/service"
	"github.com/Veraticus/cashheal/internal/storage"
	"github.com/shopspring/decimal"
)

// Backend names a storage implementation.
type Backend string

// Backends available to tests.
const (
	BackendSQLite Backend = "sqlite"
	BackendKV     Backend = "kv"
)

// AllBackends lists every backend, for running one test against each.
var AllBackends = []Backend{BackendSQLite, BackendKV}

// TestDB represents an initialized store with its plan store.
type TestDB struct {
	Storage service.Storage
	KV      service.KeyValue
	Plans   *storage.PlanStore
	t       *testing.T
}

// SetupTestDB creates an initialized, seeded store for backend.
// Cleanup is registered with t.
//
// Example:
//
//	for _, backend := range testutil.AllBackends {
//		db := testutil.SetupTestDB(t, backend)
//		...
//	}
func SetupTestDB(t *testing.T, backend Backend, opts ...storage.Option) *TestDB {
	t.Helper()

	var (
		store service.Storage
		kv    service.KeyValue
	)
	switch backend {
	case BackendSQLite:
		s, err := storage.NewSQLiteStorage(filepath.Join(t.TempDir(), "cashheal.db"), opts...)
		if err != nil {
			t.Fatalf("failed to create test database: %v", err)
		}
		store, kv = s, s
	case BackendKV:
		mem := kvstore.NewMemory()
		store, kv = storage.NewKVStorage(mem, opts...), mem
	default:
		t.Fatalf("unknown backend %q", backend)
	}

	if err := store.Initialize(context.Background()); err != nil {
		t.Fatalf("failed to initialize %s store: %v", backend, err)
	}

	t.Cleanup(func() {
		_ = store.Close()
	})

	return &TestDB{
		Storage: store,
		KV:      kv,
		Plans:   storage.NewPlanStore(kv),
		t:       t,
	}
}

// WithTransaction executes fn within a transaction that is always rolled back.
func (db *TestDB) WithTransaction(fn func(tx service.Transaction) error) error {
	ctx := context.Background()
	tx, err := db.Storage.BeginTx(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	defer func() { _ = tx.Rollback() }()

	return fn(tx)
}

// MustBalance returns the current balance or fails the test.
func (db *TestDB) MustBalance() model.Balance {
	db.t.Helper()
	b, err := db.Storage.GetBalance(context.Background())
	if err != nil {
		db.t.Fatalf("failed to read balance: %v", err)
	}
	return b
}

// MustCategory returns the category with key or fails the test.
func (db *TestDB) MustCategory(key string) model.Category {
	db.t.Helper()
	c, err := db.Storage.GetCategory(context.Background(), key)
	if err != nil {
		db.t.Fatalf("failed to read category %q: %v", key, err)
	}
	return *c
}

// MustTransactions returns every transaction newest first or fails the test.
func (db *TestDB) MustTransactions() []model.Transaction {
	db.t.Helper()
	txns, err := db.Storage.GetTransactions(context.Background(), service.TransactionFilter{})
	if err != nil {
		db.t.Fatalf("failed to read transactions: %v", err)
	}
	return txns
}

// MustSetBalance overwrites the balance or fails the test.
func (db *TestDB) MustSetBalance(total, current string) {
	db.t.Helper()
	err := db.Storage.SetBalance(context.Background(), Dec(total), Dec(current))
	if err != nil {
		db.t.Fatalf("failed to set balance: %v", err)
	}
}

// Dec parses a decimal literal.
func Dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// Clock is a settable time source for storage.WithClock.
type Clock struct {
	now time.Time
}

// NewClock starts a clock at now.
func NewClock(now time.Time) *Clock {
	return &Clock{now: now}
}

// Now returns the clock's time.
func (c *Clock) Now() time.Time {
	return c.now
}

// Set moves the clock to now.
func (c *Clock) Set(now time.Time) {
	c.now = now
}
