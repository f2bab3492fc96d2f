package storage

import (
	"context"
	"testing"
	"time"

	"github.com/Veraticus/cashheal/internal/common"
	"github.com/Veraticus/cashheal/internal/kvstore"
	"github.com/Veraticus/cashheal/internal/model"
	"github.com/Veraticus/cashheal/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func planBackends(t *testing.T) map[string]service.KeyValue {
	t.Helper()
	sqlite := createTestStorage(t)
	require.NoError(t, sqlite.Initialize(context.Background()))
	return map[string]service.KeyValue{
		"memory": kvstore.NewMemory(),
		"sqlite": sqlite,
	}
}

func samplePlan() model.BudgetPlan {
	return model.BudgetPlan{
		MonthlyIncome:        dec("3000"),
		Rent:                 dec("1000"),
		FixedCharges:         dec("1300"),
		SavingsAmount:        dec("600"),
		SavingsPercentage:    dec("20"),
		AvailableForSpending: dec("1100"),
		DailyBudget:          dec("36.6666666666666667"),
		WeeklyBudget:         dec("275"),
		BiweeklyBudget:       dec("550"),
		MonthlySpending:      dec("1100"),
		DailySpending:        dec("50"),
		WeeklySpending:       dec("350"),
		BiweeklySpending:     dec("700"),
		SavingsStrategy:      model.StrategyBalanced,
	}
}

func TestPlanStore_SaveLoadClear(t *testing.T) {
	for name, kv := range planBackends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			plans := NewPlanStore(kv)

			saved, err := plans.LoadPlan(ctx)
			require.NoError(t, err)
			assert.Nil(t, saved)

			at := time.UnixMilli(1710504000123)
			require.NoError(t, plans.SavePlan(ctx, samplePlan(), at))

			saved, err = plans.LoadPlan(ctx)
			require.NoError(t, err)
			require.NotNil(t, saved)
			assert.True(t, at.Equal(saved.SavedAt))
			assertDec(t, "1100", saved.Plan.AvailableForSpending)
			assertDec(t, "36.6666666666666667", saved.Plan.DailyBudget)
			assert.Equal(t, model.StrategyBalanced, saved.Plan.SavingsStrategy)

			require.NoError(t, plans.ClearPlan(ctx))
			saved, err = plans.LoadPlan(ctx)
			require.NoError(t, err)
			assert.Nil(t, saved)
		})
	}
}

func TestPlanStore_CorruptPlan(t *testing.T) {
	kv := kvstore.NewMemory()
	require.NoError(t, kv.Set(context.Background(), KeyBudgetPlan, "{not json"))

	_, err := NewPlanStore(kv).LoadPlan(context.Background())
	assert.ErrorIs(t, err, common.ErrStorageFailure)
}

func TestPlanStore_Targets(t *testing.T) {
	for name, kv := range planBackends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			plans := NewPlanStore(kv)

			defaults := map[model.Period]string{
				model.PeriodDay:      "60",
				model.PeriodTwoWeeks: "400",
				model.PeriodMonth:    "900",
			}
			for period, want := range defaults {
				got, err := plans.GetBudgetTarget(ctx, period)
				require.NoError(t, err)
				assertDec(t, want, got)
			}

			require.NoError(t, plans.SavePlan(ctx, samplePlan(), time.Now()))
			require.NoError(t, plans.SetBudgetTarget(ctx, model.PeriodDay, dec("42.5")))

			got, err := plans.GetBudgetTarget(ctx, model.PeriodDay)
			require.NoError(t, err)
			assertDec(t, "42.5", got)

			require.NoError(t, plans.ClearPlan(ctx))
			got, err = plans.GetBudgetTarget(ctx, model.PeriodDay)
			require.NoError(t, err)
			assertDec(t, "42.5", got)

			all, err := plans.GetBudgetTargets(ctx)
			require.NoError(t, err)
			assert.Len(t, all, 3)
			assertDec(t, "900", all[model.PeriodMonth])

			err = plans.SetBudgetTarget(ctx, "year", dec("1"))
			assert.ErrorIs(t, err, common.ErrInvalidPeriod)
			_, err = plans.GetBudgetTarget(ctx, "week")
			assert.ErrorIs(t, err, common.ErrInvalidPeriod)
			err = plans.SetBudgetTarget(ctx, model.PeriodMonth, dec("-1"))
			assert.ErrorIs(t, err, common.ErrInvalidAmount)
		})
	}
}
