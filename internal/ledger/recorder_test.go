package ledger

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/Veraticus/cashheal/internal/common"
	"github.com/Veraticus/cashheal/internal/model"
	"github.com/Veraticus/cashheal/internal/service"
	"github.com/Veraticus/cashheal/internal/storage"
	"github.com/Veraticus/cashheal/internal/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var dec = testutil.Dec

func assertDec(t *testing.T, want string, got decimal.Decimal) {
	t.Helper()
	assert.Truef(t, dec(want).Equal(got), "want %s, got %s", want, got)
}

// failingStorage makes AddTransaction fail inside transactions, after the
// balance and category have already been written.
type failingStorage struct {
	service.Storage
}

func (f *failingStorage) BeginTx(ctx context.Context) (service.Transaction, error) {
	tx, err := f.Storage.BeginTx(ctx)
	if err != nil {
		return nil, err
	}
	return &failingTx{Transaction: tx}, nil
}

type failingTx struct {
	service.Transaction
}

var errInjected = errors.New("injected failure")

func (f *failingTx) AddTransaction(context.Context, model.TransactionType, decimal.Decimal, *string) (model.Transaction, error) {
	return model.Transaction{}, common.StorageError("add transaction", errInjected)
}

func TestRecordIncome(t *testing.T) {
	for _, backend := range testutil.AllBackends {
		t.Run(string(backend), func(t *testing.T) {
			db := testutil.SetupTestDB(t, backend)
			r := NewRecorder(db.Storage)

			txn, err := r.RecordIncome(context.Background(), dec("20"))
			require.NoError(t, err)
			assert.Equal(t, model.TransactionIncome, txn.Type)
			assert.Nil(t, txn.CategoryKey)

			b := db.MustBalance()
			assertDec(t, "370", b.Total)
			assertDec(t, "170", b.Current)

			for _, c := range []string{"food", "fun", "clothes", "transport"} {
				before := map[string]string{"food": "20", "fun": "50", "clothes": "30", "transport": "15"}[c]
				assertDec(t, before, db.MustCategory(c).Amount)
			}

			txns := db.MustTransactions()
			require.Len(t, txns, 1)
			assertDec(t, "20", txns[0].Amount)
		})
	}
}

func TestRecordExpense(t *testing.T) {
	for _, backend := range testutil.AllBackends {
		t.Run(string(backend), func(t *testing.T) {
			db := testutil.SetupTestDB(t, backend)
			r := NewRecorder(db.Storage)

			txn, err := r.RecordExpense(context.Background(), dec("12.5"), "food")
			require.NoError(t, err)
			assert.Equal(t, "food", txn.Category())

			b := db.MustBalance()
			assertDec(t, "350", b.Total)
			assertDec(t, "137.5", b.Current)
			assertDec(t, "32.5", db.MustCategory("food").Amount)
			assertDec(t, "50", db.MustCategory("fun").Amount)

			txns := db.MustTransactions()
			require.Len(t, txns, 1)
			assert.Equal(t, model.TransactionExpense, txns[0].Type)
		})
	}
}

func TestRecordExpense_BalanceFloorsAtZero(t *testing.T) {
	for _, backend := range testutil.AllBackends {
		t.Run(string(backend), func(t *testing.T) {
			db := testutil.SetupTestDB(t, backend)
			db.MustSetBalance("100", "10")
			r := NewRecorder(db.Storage)

			_, err := r.RecordExpense(context.Background(), dec("25"), "fun")
			require.NoError(t, err)

			b := db.MustBalance()
			assert.True(t, b.Current.IsZero())
			assertDec(t, "100", b.Total)
			assertDec(t, "75", db.MustCategory("fun").Amount)
			assertDec(t, "25", db.MustTransactions()[0].Amount)
		})
	}
}

func TestRecord_ValidationLeavesLedgerUntouched(t *testing.T) {
	tests := []struct {
		run     func(*Recorder) error
		wantErr error
		name    string
	}{
		{
			name:    "zero income",
			run:     func(r *Recorder) error { _, err := r.RecordIncome(context.Background(), dec("0")); return err },
			wantErr: common.ErrInvalidAmount,
		},
		{
			name:    "negative expense",
			run:     func(r *Recorder) error { _, err := r.RecordExpense(context.Background(), dec("-1"), "food"); return err },
			wantErr: common.ErrInvalidAmount,
		},
		{
			name:    "expense without category",
			run:     func(r *Recorder) error { _, err := r.RecordExpense(context.Background(), dec("1"), ""); return err },
			wantErr: common.ErrCategoryRequired,
		},
		{
			name:    "expense unknown category",
			run:     func(r *Recorder) error { _, err := r.RecordExpense(context.Background(), dec("1"), "rent"); return err },
			wantErr: common.ErrCategoryNotFound,
		},
		{
			name:    "zero adjustment",
			run:     func(r *Recorder) error { _, err := r.AdjustBalance(context.Background(), dec("0")); return err },
			wantErr: common.ErrInvalidAmount,
		},
	}

	for _, backend := range testutil.AllBackends {
		for _, tt := range tests {
			t.Run(string(backend)+"/"+tt.name, func(t *testing.T) {
				db := testutil.SetupTestDB(t, backend)
				err := tt.run(NewRecorder(db.Storage))
				assert.ErrorIs(t, err, tt.wantErr)

				b := db.MustBalance()
				assertDec(t, "350", b.Total)
				assertDec(t, "150", b.Current)
				assert.Empty(t, db.MustTransactions())
			})
		}
	}
}

func TestRecordExpense_RollsBackOnMidOperationFailure(t *testing.T) {
	for _, backend := range testutil.AllBackends {
		t.Run(string(backend), func(t *testing.T) {
			db := testutil.SetupTestDB(t, backend)
			r := NewRecorder(&failingStorage{Storage: db.Storage})

			_, err := r.RecordExpense(context.Background(), dec("10"), "food")
			require.Error(t, err)
			assert.ErrorIs(t, err, common.ErrStorageFailure)
			assert.ErrorIs(t, err, errInjected)

			b := db.MustBalance()
			assertDec(t, "150", b.Current)
			assertDec(t, "20", db.MustCategory("food").Amount)
			assert.Empty(t, db.MustTransactions())

			_, err = r.RecordIncome(context.Background(), dec("10"))
			assert.ErrorIs(t, err, errInjected)
			assertDec(t, "350", db.MustBalance().Total)
		})
	}
}

func TestAdjustBalance(t *testing.T) {
	for _, backend := range testutil.AllBackends {
		t.Run(string(backend), func(t *testing.T) {
			db := testutil.SetupTestDB(t, backend)
			r := NewRecorder(db.Storage)
			ctx := context.Background()

			b, err := r.AdjustBalance(ctx, dec("50"))
			require.NoError(t, err)
			assertDec(t, "400", b.Total)
			assertDec(t, "200", b.Current)
			require.Len(t, db.MustTransactions(), 1)

			b, err = r.AdjustBalance(ctx, dec("-500"))
			require.NoError(t, err)
			assertDec(t, "400", b.Total)
			assert.True(t, b.Current.IsZero())
			assert.Len(t, db.MustTransactions(), 1, "decrements are not ledger entries")
			assertDec(t, "20", db.MustCategory("food").Amount)
		})
	}
}

func TestRecorder_ConcurrentExpenses(t *testing.T) {
	for _, backend := range testutil.AllBackends {
		t.Run(string(backend), func(t *testing.T) {
			db := testutil.SetupTestDB(t, backend)
			db.MustSetBalance("1000", "1000")
			r := NewRecorder(db.Storage)

			const n = 25
			var wg sync.WaitGroup
			errs := make(chan error, n)
			for i := 0; i < n; i++ {
				wg.Add(1)
				go func() {
					defer wg.Done()
					_, err := r.RecordExpense(context.Background(), dec("2"), "transport")
					errs <- err
				}()
			}
			wg.Wait()
			close(errs)
			for err := range errs {
				require.NoError(t, err)
			}

			assertDec(t, "950", db.MustBalance().Current)
			assertDec(t, "65", db.MustCategory("transport").Amount)
			assert.Len(t, db.MustTransactions(), n)
		})
	}
}

func TestSnapshot(t *testing.T) {
	for _, backend := range testutil.AllBackends {
		t.Run(string(backend), func(t *testing.T) {
			db := testutil.SetupTestDB(t, backend)
			r := NewRecorder(db.Storage)
			ctx := context.Background()

			for i := 0; i < 3; i++ {
				_, err := r.RecordExpense(ctx, dec("1"), "clothes")
				require.NoError(t, err)
			}

			snap, err := r.Snapshot(ctx, 2)
			require.NoError(t, err)
			assertDec(t, "147", snap.Balance.Current)
			assert.Len(t, snap.Categories, 4)
			assert.Len(t, snap.Recent, 2)
			assertDec(t, "33", snap.Categories[2].Amount)
		})
	}
}

func TestPeriodSpending(t *testing.T) {
	now := time.Date(2024, 5, 8, 18, 0, 0, 0, time.Local)
	clock := testutil.NewClock(now)

	for _, backend := range testutil.AllBackends {
		t.Run(string(backend), func(t *testing.T) {
			db := testutil.SetupTestDB(t, backend, storage.WithClock(clock.Now))
			r := NewRecorder(db.Storage)
			ctx := context.Background()

			entries := []struct {
				at     time.Time
				amount string
				income bool
			}{
				{at: now.Add(-2 * time.Hour), amount: "5"},
				{at: now.Add(-time.Hour), amount: "100", income: true},
				{at: time.Date(2024, 5, 7, 23, 0, 0, 0, time.Local), amount: "7"},
				{at: time.Date(2024, 5, 2, 12, 0, 0, 0, time.Local), amount: "11"},
				// last month but inside the trailing fourteen days
				{at: time.Date(2024, 4, 28, 12, 0, 0, 0, time.Local), amount: "13"},
				{at: time.Date(2024, 4, 20, 12, 0, 0, 0, time.Local), amount: "17"},
			}
			for _, e := range entries {
				clock.Set(e.at)
				var err error
				if e.income {
					_, err = r.RecordIncome(ctx, dec(e.amount))
				} else {
					_, err = r.RecordExpense(ctx, dec(e.amount), "food")
				}
				require.NoError(t, err)
			}
			clock.Set(now)

			tests := map[model.Period]string{
				model.PeriodDay:      "5",
				model.PeriodTwoWeeks: "36",
				model.PeriodMonth:    "23",
			}
			for period, want := range tests {
				got, err := r.PeriodSpending(ctx, period, now)
				require.NoError(t, err)
				assertDec(t, want, got)
			}

			_, err := r.PeriodSpending(ctx, "fortnight", now)
			assert.ErrorIs(t, err, common.ErrInvalidPeriod)

			byCat, err := r.SpendingByCategory(ctx, model.PeriodMonth.Start(now), now)
			require.NoError(t, err)
			assertDec(t, "23", byCat["food"])
		})
	}
}

func TestStatus(t *testing.T) {
	now := time.Date(2024, 5, 8, 18, 0, 0, 0, time.Local)
	clock := testutil.NewClock(now.Add(-time.Hour))

	db := testutil.SetupTestDB(t, testutil.BackendKV, storage.WithClock(clock.Now))
	r := NewRecorder(db.Storage)
	ctx := context.Background()

	require.NoError(t, db.Plans.SetBudgetTarget(ctx, model.PeriodDay, dec("50")))
	_, err := r.RecordExpense(ctx, dec("80"), "food")
	require.NoError(t, err)

	status, err := r.Status(ctx, db.Plans, now)
	require.NoError(t, err)
	require.Len(t, status, 3)

	day := status[0]
	assert.Equal(t, model.PeriodDay, day.Period)
	assert.True(t, day.Over)
	assert.True(t, day.Remaining.IsZero())
	assertDec(t, "1", day.Ratio)

	month := status[2]
	assertDec(t, "900", month.Target)
	assertDec(t, "820", month.Remaining)
	assert.False(t, month.Over)
}
