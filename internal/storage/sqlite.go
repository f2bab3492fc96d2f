package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/Veraticus/cashheal/internal/common"
	"github.com/Veraticus/cashheal/internal/model"
	"github.com/Veraticus/cashheal/internal/service"
	"github.com/shopspring/decimal"

	_ "github.com/mattn/go-sqlite3" // SQLite driver
)

// SQLiteStorage implements service.Storage and service.KeyValue using SQLite.
type SQLiteStorage struct {
	db        *sql.DB
	now       func() time.Time
	dbPath    string
	migrateMu sync.Mutex
}

// querier is satisfied by both *sql.DB and *sql.Tx.
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// NewSQLiteStorage creates a new SQLite storage instance.
// Every transaction it starts is BEGIN IMMEDIATE, so writers are serialized.
func NewSQLiteStorage(dbPath string, opts ...Option) (*SQLiteStorage, error) {
	if err := validateString(dbPath, "dbPath"); err != nil {
		return nil, err
	}

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=5000&_txlock=immediate")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// One connection: in-process writers queue on the pool instead of racing for the lock.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	o := buildOptions(opts)
	return &SQLiteStorage{
		db:     db,
		dbPath: dbPath,
		now:    o.now,
	}, nil
}

// Path returns the database file path.
func (s *SQLiteStorage) Path() string {
	return s.dbPath
}

// Close closes the database connection.
func (s *SQLiteStorage) Close() error {
	return s.db.Close()
}

// Initialize migrates the schema and seeds an empty ledger.
func (s *SQLiteStorage) Initialize(ctx context.Context) error {
	if err := validateContext(ctx); err != nil {
		return err
	}

	s.migrateMu.Lock()
	defer s.migrateMu.Unlock()

	if err := s.Migrate(ctx); err != nil {
		return common.StorageError("initialize", err)
	}

	return s.withTx(ctx, "initialize", func(q querier) error {
		return seedLedger(ctx, q)
	})
}

// withTx runs fn inside an immediate transaction and commits on success.
func (s *SQLiteStorage) withTx(ctx context.Context, op string, fn func(querier) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return common.StorageError(op, err)
	}
	defer func() { _ = tx.Rollback() }()

	if err := fn(tx); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return common.StorageError(op, err)
	}
	return nil
}

// GetBalance returns the singleton balance, or zeros when none exists.
func (s *SQLiteStorage) GetBalance(ctx context.Context) (model.Balance, error) {
	if err := validateContext(ctx); err != nil {
		return model.Balance{}, err
	}
	return getBalance(ctx, s.db)
}

// SetBalance overwrites the singleton balance, creating it if needed.
func (s *SQLiteStorage) SetBalance(ctx context.Context, total, current decimal.Decimal) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	return s.withTx(ctx, "set balance", func(q querier) error {
		return setBalance(ctx, q, total, current)
	})
}

// GetCategories returns every category in insertion order.
func (s *SQLiteStorage) GetCategories(ctx context.Context) ([]model.Category, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	return getCategories(ctx, s.db)
}

// GetCategory returns the category with the given key.
func (s *SQLiteStorage) GetCategory(ctx context.Context, key string) (*model.Category, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateCategoryKey(key); err != nil {
		return nil, err
	}
	return getCategory(ctx, s.db, key)
}

// UpdateCategoryAmount adds delta to a category's spend, flooring at zero.
func (s *SQLiteStorage) UpdateCategoryAmount(ctx context.Context, key string, delta decimal.Decimal) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateCategoryKey(key); err != nil {
		return err
	}
	return s.withTx(ctx, "update category amount", func(q querier) error {
		return updateCategoryAmount(ctx, q, key, delta)
	})
}

// SetCategoryAmount overwrites a category's spend, flooring at zero.
func (s *SQLiteStorage) SetCategoryAmount(ctx context.Context, key string, amount decimal.Decimal) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateCategoryKey(key); err != nil {
		return err
	}
	return setCategoryAmount(ctx, s.db, key, amount)
}

// AddTransaction appends a ledger entry stamped with the store clock.
func (s *SQLiteStorage) AddTransaction(ctx context.Context, txType model.TransactionType, amount decimal.Decimal, categoryKey *string) (model.Transaction, error) {
	if err := validateContext(ctx); err != nil {
		return model.Transaction{}, err
	}
	return addTransaction(ctx, s.db, s.now(), txType, amount, categoryKey)
}

// GetTransactions returns entries newest first.
func (s *SQLiteStorage) GetTransactions(ctx context.Context, filter service.TransactionFilter) ([]model.Transaction, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateFilter(filter); err != nil {
		return nil, err
	}
	return getTransactions(ctx, s.db, filter)
}

// BeginTx starts a new exclusive write transaction.
func (s *SQLiteStorage) BeginTx(ctx context.Context) (service.Transaction, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, common.StorageError("begin transaction", err)
	}

	slog.Debug("Began ledger transaction", "backend", "sqlite")
	return &sqliteTransaction{
		tx:      tx,
		storage: s,
	}, nil
}

// sqliteTransaction wraps sql.Tx to implement service.Transaction.
type sqliteTransaction struct {
	tx      *sql.Tx
	storage *SQLiteStorage
}

func (t *sqliteTransaction) Commit() error {
	if err := t.tx.Commit(); err != nil {
		return common.StorageError("commit", err)
	}
	return nil
}

func (t *sqliteTransaction) Rollback() error {
	return t.tx.Rollback()
}

func (t *sqliteTransaction) Initialize(_ context.Context) error {
	return fmt.Errorf("initialize cannot be run within a transaction")
}

func (t *sqliteTransaction) GetBalance(ctx context.Context) (model.Balance, error) {
	if err := validateContext(ctx); err != nil {
		return model.Balance{}, err
	}
	return getBalance(ctx, t.tx)
}

func (t *sqliteTransaction) SetBalance(ctx context.Context, total, current decimal.Decimal) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	return setBalance(ctx, t.tx, total, current)
}

func (t *sqliteTransaction) GetCategories(ctx context.Context) ([]model.Category, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	return getCategories(ctx, t.tx)
}

func (t *sqliteTransaction) GetCategory(ctx context.Context, key string) (*model.Category, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateCategoryKey(key); err != nil {
		return nil, err
	}
	return getCategory(ctx, t.tx, key)
}

func (t *sqliteTransaction) UpdateCategoryAmount(ctx context.Context, key string, delta decimal.Decimal) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateCategoryKey(key); err != nil {
		return err
	}
	return updateCategoryAmount(ctx, t.tx, key, delta)
}

func (t *sqliteTransaction) SetCategoryAmount(ctx context.Context, key string, amount decimal.Decimal) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateCategoryKey(key); err != nil {
		return err
	}
	return setCategoryAmount(ctx, t.tx, key, amount)
}

func (t *sqliteTransaction) AddTransaction(ctx context.Context, txType model.TransactionType, amount decimal.Decimal, categoryKey *string) (model.Transaction, error) {
	if err := validateContext(ctx); err != nil {
		return model.Transaction{}, err
	}
	return addTransaction(ctx, t.tx, t.storage.now(), txType, amount, categoryKey)
}

func (t *sqliteTransaction) GetTransactions(ctx context.Context, filter service.TransactionFilter) ([]model.Transaction, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateFilter(filter); err != nil {
		return nil, err
	}
	return getTransactions(ctx, t.tx, filter)
}

func (t *sqliteTransaction) BeginTx(_ context.Context) (service.Transaction, error) {
	return nil, ErrNestedTx
}

func (t *sqliteTransaction) Close() error {
	// Transactions should be committed or rolled back, not closed
	return fmt.Errorf("transactions must be committed or rolled back, not closed")
}
