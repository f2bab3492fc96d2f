package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sort"
	"strconv"
	"sync"
	"time"

	"github.com/Veraticus/cashheal/internal/common"
	"github.com/Veraticus/cashheal/internal/model"
	"github.com/Veraticus/cashheal/internal/service"
	"github.com/shopspring/decimal"
)

// Keys used by KVStorage.
const (
	KeyBalance      = "cashheal_balance"
	KeyCategories   = "cashheal_categories"
	KeyTransactions = "cashheal_transactions"
	KeySequence     = "cashheal_seq"
)

// KVStorage implements service.Storage on top of a key-value substrate.
// The ledger lives in four JSON documents. Writers hold mu for the whole
// transaction and publish every changed document with one SetMulti.
type KVStorage struct {
	kv  service.KeyValue
	now func() time.Time
	mu  sync.Mutex
}

// NewKVStorage creates a ledger store over kv.
func NewKVStorage(kv service.KeyValue, opts ...Option) *KVStorage {
	o := buildOptions(opts)
	return &KVStorage{kv: kv, now: o.now}
}

type transactionRecord struct {
	CategoryKey *string               `json:"categoryKey"`
	Type        model.TransactionType `json:"type"`
	Amount      decimal.Decimal       `json:"amount"`
	ID          int64                 `json:"id"`
	CreatedAt   int64                 `json:"createdAt"`
}

func (r transactionRecord) toModel() model.Transaction {
	t := model.Transaction{
		ID:        r.ID,
		Type:      r.Type,
		Amount:    r.Amount,
		CreatedAt: time.UnixMilli(r.CreatedAt),
	}
	if r.CategoryKey != nil {
		key := *r.CategoryKey
		t.CategoryKey = &key
	}
	return t
}

// kvState is a private copy of the ledger documents.
type kvState struct {
	balance      *model.Balance
	dirty        map[string]bool
	categories   []model.Category
	transactions []transactionRecord
	seq          int64
}

func loadJSON(ctx context.Context, kv service.KeyValue, key string, dst any) (bool, error) {
	raw, ok, err := kv.Get(ctx, key)
	if err != nil {
		return false, common.StorageError("load "+key, err)
	}
	if !ok {
		return false, nil
	}
	if err := json.Unmarshal([]byte(raw), dst); err != nil {
		return false, common.StorageError("decode "+key, err)
	}
	return true, nil
}

func (s *KVStorage) loadState(ctx context.Context) (*kvState, error) {
	st := &kvState{dirty: map[string]bool{}}

	var b model.Balance
	found, err := loadJSON(ctx, s.kv, KeyBalance, &b)
	if err != nil {
		return nil, err
	}
	if found {
		st.balance = &b
	}

	if _, err := loadJSON(ctx, s.kv, KeyCategories, &st.categories); err != nil {
		return nil, err
	}
	if _, err := loadJSON(ctx, s.kv, KeyTransactions, &st.transactions); err != nil {
		return nil, err
	}

	raw, ok, err := s.kv.Get(ctx, KeySequence)
	if err != nil {
		return nil, common.StorageError("load "+KeySequence, err)
	}
	if ok {
		st.seq, err = strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return nil, common.StorageError("decode "+KeySequence, err)
		}
	}
	return st, nil
}

func (st *kvState) encode() (map[string]string, error) {
	entries := make(map[string]string, len(st.dirty))
	for key := range st.dirty {
		var (
			data []byte
			err  error
		)
		switch key {
		case KeyBalance:
			data, err = json.Marshal(st.balance)
		case KeyCategories:
			data, err = json.Marshal(st.categories)
		case KeyTransactions:
			data, err = json.Marshal(st.transactions)
		case KeySequence:
			data = []byte(strconv.FormatInt(st.seq, 10))
		}
		if err != nil {
			return nil, common.StorageError("encode "+key, err)
		}
		entries[key] = string(data)
	}
	return entries, nil
}

func (st *kvState) getBalance() model.Balance {
	if st.balance == nil {
		return model.Balance{Total: decimal.Zero, Current: decimal.Zero}
	}
	return *st.balance
}

func (st *kvState) setBalance(total, current decimal.Decimal) error {
	if total.IsNegative() || current.IsNegative() {
		return fmt.Errorf("%w: balance cannot be negative", common.ErrInvalidAmount)
	}
	st.balance = &model.Balance{Total: total, Current: current}
	st.dirty[KeyBalance] = true
	return nil
}

func (st *kvState) categoryIndex(key string) (int, error) {
	for i, c := range st.categories {
		if c.Key == key {
			return i, nil
		}
	}
	return -1, fmt.Errorf("%w: %s", common.ErrCategoryNotFound, key)
}

func (st *kvState) getCategories() []model.Category {
	out := make([]model.Category, len(st.categories))
	copy(out, st.categories)
	return out
}

func (st *kvState) getCategory(key string) (*model.Category, error) {
	i, err := st.categoryIndex(key)
	if err != nil {
		return nil, err
	}
	c := st.categories[i]
	return &c, nil
}

func (st *kvState) setCategoryAmount(key string, amount decimal.Decimal) error {
	i, err := st.categoryIndex(key)
	if err != nil {
		return err
	}
	st.categories[i].Amount = model.ClampZero(amount)
	st.dirty[KeyCategories] = true
	return nil
}

func (st *kvState) updateCategoryAmount(key string, delta decimal.Decimal) error {
	i, err := st.categoryIndex(key)
	if err != nil {
		return err
	}
	return st.setCategoryAmount(key, st.categories[i].ApplyDelta(delta))
}

func (st *kvState) addTransaction(now time.Time, txType model.TransactionType, amount decimal.Decimal, categoryKey *string) (model.Transaction, error) {
	key, err := validateEntry(txType, amount, categoryKey)
	if err != nil {
		return model.Transaction{}, err
	}
	if key != nil {
		if _, err := st.categoryIndex(*key); err != nil {
			return model.Transaction{}, err
		}
	}

	st.seq++
	rec := transactionRecord{
		ID:          st.seq,
		Type:        txType,
		CategoryKey: key,
		Amount:      amount,
		CreatedAt:   now.UnixMilli(),
	}
	st.transactions = append(st.transactions, rec)
	st.dirty[KeyTransactions] = true
	st.dirty[KeySequence] = true
	return rec.toModel(), nil
}

func (st *kvState) getTransactions(filter service.TransactionFilter) []model.Transaction {
	out := []model.Transaction{}
	for _, rec := range st.transactions {
		if filter.From != nil && rec.CreatedAt < filter.From.UnixMilli() {
			continue
		}
		if filter.To != nil && rec.CreatedAt > filter.To.UnixMilli() {
			continue
		}
		out = append(out, rec.toModel())
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID > out[j].ID
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})

	if filter.Limit > 0 && len(out) > filter.Limit {
		out = out[:filter.Limit]
	}
	return out
}

func (st *kvState) seed() {
	if st.balance == nil {
		seed := model.SeedBalance()
		st.balance = &seed
		st.dirty[KeyBalance] = true
		slog.Info("Seeded balance", "total", seed.Total, "current", seed.Current)
	}
	if len(st.categories) == 0 {
		st.categories = model.SeedCategories()
		for i := range st.categories {
			st.categories[i].ID = int64(i + 1)
		}
		st.dirty[KeyCategories] = true
		slog.Info("Seeded categories", "count", len(st.categories))
	}
}

// update runs fn in a write transaction and commits it.
func (s *KVStorage) update(ctx context.Context, fn func(*kvTransaction) error) error {
	tx, err := s.begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if err := fn(tx); err != nil {
		return err
	}
	return tx.Commit()
}

func (s *KVStorage) begin(ctx context.Context) (*kvTransaction, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	s.mu.Lock()
	st, err := s.loadState(ctx)
	if err != nil {
		s.mu.Unlock()
		return nil, err
	}
	return &kvTransaction{storage: s, state: st, ctx: ctx}, nil
}

// Initialize seeds an empty ledger.
func (s *KVStorage) Initialize(ctx context.Context) error {
	return s.update(ctx, func(tx *kvTransaction) error {
		tx.state.seed()
		return nil
	})
}

// GetBalance returns the balance, or zeros when none exists.
func (s *KVStorage) GetBalance(ctx context.Context) (model.Balance, error) {
	if err := validateContext(ctx); err != nil {
		return model.Balance{}, err
	}
	var b model.Balance
	found, err := loadJSON(ctx, s.kv, KeyBalance, &b)
	if err != nil {
		return model.Balance{}, err
	}
	if !found {
		return model.Balance{Total: decimal.Zero, Current: decimal.Zero}, nil
	}
	return b, nil
}

// SetBalance overwrites the balance document.
func (s *KVStorage) SetBalance(ctx context.Context, total, current decimal.Decimal) error {
	return s.update(ctx, func(tx *kvTransaction) error {
		return tx.state.setBalance(total, current)
	})
}

// GetCategories returns every category in insertion order.
func (s *KVStorage) GetCategories(ctx context.Context) ([]model.Category, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	categories := []model.Category{}
	if _, err := loadJSON(ctx, s.kv, KeyCategories, &categories); err != nil {
		return nil, err
	}
	return categories, nil
}

// GetCategory returns the category with the given key.
func (s *KVStorage) GetCategory(ctx context.Context, key string) (*model.Category, error) {
	if err := validateCategoryKey(key); err != nil {
		return nil, err
	}
	categories, err := s.GetCategories(ctx)
	if err != nil {
		return nil, err
	}
	st := kvState{categories: categories}
	return st.getCategory(key)
}

// UpdateCategoryAmount adds delta to a category's spend, flooring at zero.
func (s *KVStorage) UpdateCategoryAmount(ctx context.Context, key string, delta decimal.Decimal) error {
	if err := validateCategoryKey(key); err != nil {
		return err
	}
	return s.update(ctx, func(tx *kvTransaction) error {
		return tx.state.updateCategoryAmount(key, delta)
	})
}

// SetCategoryAmount overwrites a category's spend, flooring at zero.
func (s *KVStorage) SetCategoryAmount(ctx context.Context, key string, amount decimal.Decimal) error {
	if err := validateCategoryKey(key); err != nil {
		return err
	}
	return s.update(ctx, func(tx *kvTransaction) error {
		return tx.state.setCategoryAmount(key, amount)
	})
}

// AddTransaction appends a ledger entry stamped with the store clock.
func (s *KVStorage) AddTransaction(ctx context.Context, txType model.TransactionType, amount decimal.Decimal, categoryKey *string) (model.Transaction, error) {
	var txn model.Transaction
	err := s.update(ctx, func(tx *kvTransaction) error {
		var addErr error
		txn, addErr = tx.state.addTransaction(s.now(), txType, amount, categoryKey)
		return addErr
	})
	return txn, err
}

// GetTransactions returns entries newest first.
func (s *KVStorage) GetTransactions(ctx context.Context, filter service.TransactionFilter) ([]model.Transaction, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateFilter(filter); err != nil {
		return nil, err
	}
	var records []transactionRecord
	if _, err := loadJSON(ctx, s.kv, KeyTransactions, &records); err != nil {
		return nil, err
	}
	st := kvState{transactions: records}
	return st.getTransactions(filter), nil
}

// BeginTx starts an exclusive write transaction. Other writers block until it ends.
func (s *KVStorage) BeginTx(ctx context.Context) (service.Transaction, error) {
	tx, err := s.begin(ctx)
	if err != nil {
		return nil, err
	}
	slog.Debug("Began ledger transaction", "backend", "kv")
	return tx, nil
}

// Close is a no-op; the substrate is owned by the caller.
func (s *KVStorage) Close() error {
	return nil
}

// kvTransaction stages changes on a private copy of the ledger.
type kvTransaction struct {
	ctx     context.Context
	storage *KVStorage
	state   *kvState
	done    bool
}

func (t *kvTransaction) finish() {
	t.done = true
	t.storage.mu.Unlock()
}

func (t *kvTransaction) Commit() error {
	if t.done {
		return ErrTxDone
	}
	defer t.finish()

	if len(t.state.dirty) == 0 {
		return nil
	}
	entries, err := t.state.encode()
	if err != nil {
		return err
	}
	if err := t.storage.kv.SetMulti(t.ctx, entries); err != nil {
		return common.StorageError("commit", err)
	}
	return nil
}

func (t *kvTransaction) Rollback() error {
	if t.done {
		return ErrTxDone
	}
	t.finish()
	return nil
}

func (t *kvTransaction) active() error {
	if t.done {
		return ErrTxDone
	}
	return nil
}

func (t *kvTransaction) Initialize(_ context.Context) error {
	return fmt.Errorf("initialize cannot be run within a transaction")
}

func (t *kvTransaction) GetBalance(_ context.Context) (model.Balance, error) {
	if err := t.active(); err != nil {
		return model.Balance{}, err
	}
	return t.state.getBalance(), nil
}

func (t *kvTransaction) SetBalance(_ context.Context, total, current decimal.Decimal) error {
	if err := t.active(); err != nil {
		return err
	}
	return t.state.setBalance(total, current)
}

func (t *kvTransaction) GetCategories(_ context.Context) ([]model.Category, error) {
	if err := t.active(); err != nil {
		return nil, err
	}
	return t.state.getCategories(), nil
}

func (t *kvTransaction) GetCategory(_ context.Context, key string) (*model.Category, error) {
	if err := t.active(); err != nil {
		return nil, err
	}
	if err := validateCategoryKey(key); err != nil {
		return nil, err
	}
	return t.state.getCategory(key)
}

func (t *kvTransaction) UpdateCategoryAmount(_ context.Context, key string, delta decimal.Decimal) error {
	if err := t.active(); err != nil {
		return err
	}
	if err := validateCategoryKey(key); err != nil {
		return err
	}
	return t.state.updateCategoryAmount(key, delta)
}

func (t *kvTransaction) SetCategoryAmount(_ context.Context, key string, amount decimal.Decimal) error {
	if err := t.active(); err != nil {
		return err
	}
	if err := validateCategoryKey(key); err != nil {
		return err
	}
	return t.state.setCategoryAmount(key, amount)
}

func (t *kvTransaction) AddTransaction(_ context.Context, txType model.TransactionType, amount decimal.Decimal, categoryKey *string) (model.Transaction, error) {
	if err := t.active(); err != nil {
		return model.Transaction{}, err
	}
	return t.state.addTransaction(t.storage.now(), txType, amount, categoryKey)
}

func (t *kvTransaction) GetTransactions(_ context.Context, filter service.TransactionFilter) ([]model.Transaction, error) {
	if err := t.active(); err != nil {
		return nil, err
	}
	if err := validateFilter(filter); err != nil {
		return nil, err
	}
	return t.state.getTransactions(filter), nil
}

func (t *kvTransaction) BeginTx(_ context.Context) (service.Transaction, error) {
	return nil, ErrNestedTx
}

func (t *kvTransaction) Close() error {
	return fmt.Errorf("transactions must be committed or rolled back, not closed")
}
