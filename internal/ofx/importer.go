package ofx

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Veraticus/cashheal/internal/common"
	"github.com/Veraticus/cashheal/internal/model"
	"github.com/Veraticus/cashheal/internal/service"
	"github.com/shopspring/decimal"
)

// Recorder is the subset of the ledger the importer writes through.
type Recorder interface {
	RecordIncome(ctx context.Context, amount decimal.Decimal) (model.Transaction, error)
	RecordExpense(ctx context.Context, amount decimal.Decimal, categoryKey string) (model.Transaction, error)
}

const seenPrefix = "ofx_imported_"

// Importer records parsed statement entries in the ledger. When given a
// KeyValue it remembers imported entries so re-importing a file is a no-op.
type Importer struct {
	recorder Recorder
	seen     service.KeyValue
}

// NewImporter creates an Importer. seen may be nil.
func NewImporter(recorder Recorder, seen service.KeyValue) *Importer {
	return &Importer{recorder: recorder, seen: seen}
}

// ImportOptions controls one import run.
type ImportOptions struct {
	// OnEntry is called after each entry is handled, recorded or not.
	OnEntry func(Entry)
	// Category receives every expense.
	Category string
	DryRun   bool
}

// Summary reports what an import did.
type Summary struct {
	IncomeTotal  decimal.Decimal
	ExpenseTotal decimal.Decimal
	Income       int
	Expenses     int
	Duplicates   int
}

// Import records entries one at a time. Each entry is its own ledger
// transaction; on error the summary covers the entries recorded so far.
func (im *Importer) Import(ctx context.Context, entries []Entry, opts ImportOptions) (Summary, error) {
	summary := Summary{IncomeTotal: decimal.Zero, ExpenseTotal: decimal.Zero}

	for _, e := range entries {
		if e.Type == model.TransactionExpense && opts.Category == "" {
			return summary, fmt.Errorf("%w: statement contains expenses", common.ErrCategoryRequired)
		}
	}

	inRun := make(map[string]bool, len(entries))
	for _, e := range entries {
		if err := ctx.Err(); err != nil {
			return summary, err
		}

		dup, err := im.isDuplicate(ctx, e, inRun)
		if err != nil {
			return summary, err
		}
		inRun[e.Key()] = true

		switch {
		case dup:
			summary.Duplicates++
		case e.Type == model.TransactionIncome:
			if !opts.DryRun {
				if _, err := im.recorder.RecordIncome(ctx, e.Amount); err != nil {
					return summary, fmt.Errorf("import %s: %w", e.Key(), err)
				}
			}
			summary.Income++
			summary.IncomeTotal = summary.IncomeTotal.Add(e.Amount)
		default:
			if !opts.DryRun {
				if _, err := im.recorder.RecordExpense(ctx, e.Amount, opts.Category); err != nil {
					return summary, fmt.Errorf("import %s: %w", e.Key(), err)
				}
			}
			summary.Expenses++
			summary.ExpenseTotal = summary.ExpenseTotal.Add(e.Amount)
		}

		if !dup && !opts.DryRun {
			if err := im.markSeen(ctx, e); err != nil {
				return summary, err
			}
		}
		if opts.OnEntry != nil {
			opts.OnEntry(e)
		}
	}

	slog.Info("Imported statement entries",
		"income", summary.Income,
		"expenses", summary.Expenses,
		"duplicates", summary.Duplicates,
		"dry_run", opts.DryRun)
	return summary, nil
}

func (im *Importer) isDuplicate(ctx context.Context, e Entry, inRun map[string]bool) (bool, error) {
	if e.FitID == "" {
		return false, nil
	}
	if inRun[e.Key()] {
		return true, nil
	}
	if im.seen == nil {
		return false, nil
	}
	_, ok, err := im.seen.Get(ctx, seenPrefix+e.Key())
	if err != nil {
		return false, common.StorageError("check imported entry", err)
	}
	return ok, nil
}

func (im *Importer) markSeen(ctx context.Context, e Entry) error {
	if im.seen == nil || e.FitID == "" {
		return nil
	}
	if err := im.seen.Set(ctx, seenPrefix+e.Key(), e.PostedAt.UTC().Format("2006-01-02")); err != nil {
		return common.StorageError("mark imported entry", err)
	}
	return nil
}
