package ofx

import (
	"context"
	"strings"
	"testing"

	"github.com/Veraticus/cashheal/internal/common"
	"github.com/Veraticus/cashheal/internal/ledger"
	"github.com/Veraticus/cashheal/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parseSample(t *testing.T, data string) []Entry {
	t.Helper()
	entries, err := NewParser().ParseFile(context.Background(), strings.NewReader(data))
	require.NoError(t, err)
	return entries
}

func TestImport_RecordsEntries(t *testing.T) {
	db := testutil.SetupTestDB(t, testutil.BackendSQLite)
	importer := NewImporter(ledger.NewRecorder(db.Storage), db.KV)

	var seen int
	summary, err := importer.Import(context.Background(), parseSample(t, sampleBankOFX), ImportOptions{
		Category: "food",
		OnEntry:  func(Entry) { seen++ },
	})
	require.NoError(t, err)

	assert.Equal(t, 4, seen)
	assert.Equal(t, 1, summary.Income)
	assert.Equal(t, 3, summary.Expenses)
	assert.True(t, testutil.Dec("1500").Equal(summary.IncomeTotal))
	assert.True(t, testutil.Dec("650.50").Equal(summary.ExpenseTotal))

	b := db.MustBalance()
	assert.True(t, testutil.Dec("1850").Equal(b.Total))
	// The second expense floors the balance at zero before the deposit lands.
	assert.True(t, testutil.Dec("1000").Equal(b.Current), b.Current.String())
	assert.True(t, testutil.Dec("670.5").Equal(db.MustCategory("food").Amount))
	assert.Len(t, db.MustTransactions(), 4)
}

func TestImport_SkipsPreviouslyImported(t *testing.T) {
	db := testutil.SetupTestDB(t, testutil.BackendKV)
	importer := NewImporter(ledger.NewRecorder(db.Storage), db.KV)
	entries := parseSample(t, sampleCreditCardOFX)

	_, err := importer.Import(context.Background(), entries, ImportOptions{Category: "fun"})
	require.NoError(t, err)

	summary, err := importer.Import(context.Background(), append(entries, entries...), ImportOptions{Category: "fun"})
	require.NoError(t, err)
	assert.Equal(t, 4, summary.Duplicates)
	assert.Zero(t, summary.Expenses)
	assert.Len(t, db.MustTransactions(), 2)
}

func TestImport_DryRunWritesNothing(t *testing.T) {
	db := testutil.SetupTestDB(t, testutil.BackendKV)
	importer := NewImporter(ledger.NewRecorder(db.Storage), db.KV)

	summary, err := importer.Import(context.Background(), parseSample(t, sampleBankOFX), ImportOptions{Category: "food", DryRun: true})
	require.NoError(t, err)
	assert.Equal(t, 3, summary.Expenses)
	assert.Empty(t, db.MustTransactions())
	assert.True(t, testutil.Dec("150").Equal(db.MustBalance().Current))

	// Dry runs do not mark entries as imported.
	summary, err = importer.Import(context.Background(), parseSample(t, sampleBankOFX), ImportOptions{Category: "food"})
	require.NoError(t, err)
	assert.Zero(t, summary.Duplicates)
}

func TestImport_RequiresCategoryForExpenses(t *testing.T) {
	db := testutil.SetupTestDB(t, testutil.BackendKV)
	importer := NewImporter(ledger.NewRecorder(db.Storage), nil)

	_, err := importer.Import(context.Background(), parseSample(t, sampleBankOFX), ImportOptions{})
	assert.ErrorIs(t, err, common.ErrCategoryRequired)
	assert.Empty(t, db.MustTransactions())

	_, err = importer.Import(context.Background(), parseSample(t, sampleBankOFX), ImportOptions{Category: "rent"})
	assert.ErrorIs(t, err, common.ErrCategoryNotFound)
}
