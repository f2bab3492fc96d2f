// Package ledger records income and expenses against the balance and categories.
package ledger

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/Veraticus/cashheal/internal/budget"
	"github.com/Veraticus/cashheal/internal/common"
	"github.com/Veraticus/cashheal/internal/model"
	"github.com/Veraticus/cashheal/internal/service"
	"github.com/shopspring/decimal"
)

// DefaultRecentLimit is how many transactions a Snapshot includes.
const DefaultRecentLimit = 20

// Recorder applies ledger mutations atomically.
type Recorder struct {
	storage service.Storage
}

// NewRecorder creates a Recorder over storage.
func NewRecorder(storage service.Storage) *Recorder {
	return &Recorder{storage: storage}
}

// Snapshot is the ledger state as a caller should display it after a mutation.
type Snapshot struct {
	Categories []model.Category    `json:"categories"`
	Recent     []model.Transaction `json:"transactions"`
	Balance    model.Balance       `json:"balance"`
}

// inTx runs fn in a storage transaction, committing only if fn succeeds.
func (r *Recorder) inTx(ctx context.Context, fn func(service.Transaction) error) error {
	tx, err := r.storage.BeginTx(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if err := fn(tx); err != nil {
		return err
	}
	return tx.Commit()
}

// RecordIncome adds amount to both balance totals and appends an income entry.
func (r *Recorder) RecordIncome(ctx context.Context, amount decimal.Decimal) (model.Transaction, error) {
	if !amount.IsPositive() {
		return model.Transaction{}, fmt.Errorf("%w: income must be greater than zero", common.ErrInvalidAmount)
	}

	var txn model.Transaction
	err := r.inTx(ctx, func(tx service.Transaction) error {
		balance, err := tx.GetBalance(ctx)
		if err != nil {
			return err
		}
		if err := tx.SetBalance(ctx, balance.Total.Add(amount), balance.Current.Add(amount)); err != nil {
			return err
		}
		txn, err = tx.AddTransaction(ctx, model.TransactionIncome, amount, nil)
		return err
	})
	if err != nil {
		return model.Transaction{}, fmt.Errorf("record income: %w", err)
	}

	slog.Info("Recorded income", "id", txn.ID, "amount", amount)
	return txn, nil
}

// RecordExpense charges amount to a category and the current balance.
// The current balance floors at zero; the total is unchanged.
func (r *Recorder) RecordExpense(ctx context.Context, amount decimal.Decimal, categoryKey string) (model.Transaction, error) {
	if !amount.IsPositive() {
		return model.Transaction{}, fmt.Errorf("%w: expense must be greater than zero", common.ErrInvalidAmount)
	}
	if categoryKey == "" {
		return model.Transaction{}, common.ErrCategoryRequired
	}

	var txn model.Transaction
	err := r.inTx(ctx, func(tx service.Transaction) error {
		if _, err := tx.GetCategory(ctx, categoryKey); err != nil {
			return err
		}
		if err := tx.UpdateCategoryAmount(ctx, categoryKey, amount); err != nil {
			return err
		}
		balance, err := tx.GetBalance(ctx)
		if err != nil {
			return err
		}
		if err := tx.SetBalance(ctx, balance.Total, model.ClampZero(balance.Current.Sub(amount))); err != nil {
			return err
		}
		txn, err = tx.AddTransaction(ctx, model.TransactionExpense, amount, &categoryKey)
		return err
	})
	if err != nil {
		return model.Transaction{}, fmt.Errorf("record expense: %w", err)
	}

	slog.Info("Recorded expense", "id", txn.ID, "amount", amount, "category", categoryKey)
	return txn, nil
}

// AdjustBalance applies a manual edit to the current balance. A positive
// delta is recorded as income; a negative one only lowers the balance.
func (r *Recorder) AdjustBalance(ctx context.Context, delta decimal.Decimal) (model.Balance, error) {
	if delta.IsZero() {
		return model.Balance{}, fmt.Errorf("%w: adjustment cannot be zero", common.ErrInvalidAmount)
	}

	if delta.IsPositive() {
		if _, err := r.RecordIncome(ctx, delta); err != nil {
			return model.Balance{}, err
		}
		return r.storage.GetBalance(ctx)
	}

	var updated model.Balance
	err := r.inTx(ctx, func(tx service.Transaction) error {
		balance, err := tx.GetBalance(ctx)
		if err != nil {
			return err
		}
		updated = model.Balance{Total: balance.Total, Current: model.ClampZero(balance.Current.Add(delta))}
		return tx.SetBalance(ctx, updated.Total, updated.Current)
	})
	if err != nil {
		return model.Balance{}, fmt.Errorf("adjust balance: %w", err)
	}

	slog.Info("Adjusted balance", "delta", delta, "current", updated.Current)
	return updated, nil
}

// Snapshot reads the balance, categories and most recent transactions.
func (r *Recorder) Snapshot(ctx context.Context, recent int) (Snapshot, error) {
	if recent <= 0 {
		recent = DefaultRecentLimit
	}

	balance, err := r.storage.GetBalance(ctx)
	if err != nil {
		return Snapshot{}, err
	}
	categories, err := r.storage.GetCategories(ctx)
	if err != nil {
		return Snapshot{}, err
	}
	txns, err := r.storage.GetTransactions(ctx, service.TransactionFilter{Limit: recent})
	if err != nil {
		return Snapshot{}, err
	}

	return Snapshot{Balance: balance, Categories: categories, Recent: txns}, nil
}

// PeriodSpending sums expenses in the period window ending at now.
func (r *Recorder) PeriodSpending(ctx context.Context, period model.Period, now time.Time) (decimal.Decimal, error) {
	if !period.Valid() {
		return decimal.Zero, fmt.Errorf("%w: %q", common.ErrInvalidPeriod, period)
	}

	from := period.Start(now)
	txns, err := r.storage.GetTransactions(ctx, service.TransactionFilter{From: &from, To: &now})
	if err != nil {
		return decimal.Zero, err
	}

	total := decimal.Zero
	for _, t := range txns {
		if t.Type == model.TransactionExpense {
			total = total.Add(t.Amount)
		}
	}
	return total, nil
}

// SpendingByCategory sums expenses per category key in [from, to].
func (r *Recorder) SpendingByCategory(ctx context.Context, from, to time.Time) (map[string]decimal.Decimal, error) {
	txns, err := r.storage.GetTransactions(ctx, service.TransactionFilter{From: &from, To: &to})
	if err != nil {
		return nil, err
	}
	sums := make(map[string]decimal.Decimal)
	for _, t := range txns {
		if t.Type != model.TransactionExpense {
			continue
		}
		sums[t.Category()] = sums[t.Category()].Add(t.Amount)
	}
	return sums, nil
}

// TargetSource supplies per-period budget targets.
type TargetSource interface {
	GetBudgetTarget(ctx context.Context, period model.Period) (decimal.Decimal, error)
}

// Status reports spending against target for every period.
func (r *Recorder) Status(ctx context.Context, targets TargetSource, now time.Time) ([]budget.PeriodProgress, error) {
	out := make([]budget.PeriodProgress, 0, len(model.Periods))
	for _, period := range model.Periods {
		target, err := targets.GetBudgetTarget(ctx, period)
		if err != nil {
			return nil, err
		}
		spent, err := r.PeriodSpending(ctx, period, now)
		if err != nil {
			return nil, err
		}
		out = append(out, budget.Progress(period, target, spent))
	}
	return out, nil
}
