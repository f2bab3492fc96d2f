package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Veraticus/cashheal/internal/common"
	"github.com/Veraticus/cashheal/internal/model"
	"github.com/Veraticus/cashheal/internal/service"
	"github.com/shopspring/decimal"
)

// KeyBudgetPlan holds the last advisor plan.
const KeyBudgetPlan = "budgetAdvisorPlan"

// BudgetTargetKey returns the key holding the target for period.
func BudgetTargetKey(period model.Period) string {
	return "budget_target_" + string(period)
}

// PlanStore persists the budget plan and per-period targets. Both are
// independent of the ledger and of each other.
type PlanStore struct {
	kv service.KeyValue
}

// NewPlanStore creates a PlanStore over kv.
func NewPlanStore(kv service.KeyValue) *PlanStore {
	return &PlanStore{kv: kv}
}

// planRecord flattens the plan next to its save timestamp.
type planRecord struct {
	model.BudgetPlan
	Timestamp int64 `json:"timestamp"`
}

// SavePlan replaces the stored plan.
func (p *PlanStore) SavePlan(ctx context.Context, plan model.BudgetPlan, savedAt time.Time) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	data, err := json.Marshal(planRecord{BudgetPlan: plan, Timestamp: savedAt.UnixMilli()})
	if err != nil {
		return common.StorageError("encode plan", err)
	}
	if err := p.kv.Set(ctx, KeyBudgetPlan, string(data)); err != nil {
		return common.StorageError("save plan", err)
	}
	return nil
}

// LoadPlan returns the stored plan, or nil when none was saved.
func (p *PlanStore) LoadPlan(ctx context.Context) (*model.SavedPlan, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	raw, ok, err := p.kv.Get(ctx, KeyBudgetPlan)
	if err != nil {
		return nil, common.StorageError("load plan", err)
	}
	if !ok {
		return nil, nil
	}

	var rec planRecord
	if err := json.Unmarshal([]byte(raw), &rec); err != nil {
		return nil, common.StorageError("decode plan", err)
	}
	return &model.SavedPlan{
		Plan:    rec.BudgetPlan,
		SavedAt: time.UnixMilli(rec.Timestamp),
	}, nil
}

// ClearPlan removes the stored plan.
func (p *PlanStore) ClearPlan(ctx context.Context) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := p.kv.Remove(ctx, KeyBudgetPlan); err != nil {
		return common.StorageError("clear plan", err)
	}
	return nil
}

// GetBudgetTarget returns the target for period, or its default when unset.
func (p *PlanStore) GetBudgetTarget(ctx context.Context, period model.Period) (decimal.Decimal, error) {
	if err := validateContext(ctx); err != nil {
		return decimal.Zero, err
	}
	if !period.Valid() {
		return decimal.Zero, fmt.Errorf("%w: %q", common.ErrInvalidPeriod, period)
	}

	raw, ok, err := p.kv.Get(ctx, BudgetTargetKey(period))
	if err != nil {
		return decimal.Zero, common.StorageError("load budget target", err)
	}
	if !ok {
		return period.DefaultTarget(), nil
	}
	value, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, common.StorageError("decode budget target", err)
	}
	return value, nil
}

// GetBudgetTargets returns the target for every period.
func (p *PlanStore) GetBudgetTargets(ctx context.Context) (map[model.Period]decimal.Decimal, error) {
	targets := make(map[model.Period]decimal.Decimal, len(model.Periods))
	for _, period := range model.Periods {
		value, err := p.GetBudgetTarget(ctx, period)
		if err != nil {
			return nil, err
		}
		targets[period] = value
	}
	return targets, nil
}

// SetBudgetTarget stores the target for period.
func (p *PlanStore) SetBudgetTarget(ctx context.Context, period model.Period, value decimal.Decimal) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if !period.Valid() {
		return fmt.Errorf("%w: %q", common.ErrInvalidPeriod, period)
	}
	if value.IsNegative() {
		return fmt.Errorf("%w: target cannot be negative", common.ErrInvalidAmount)
	}
	if err := p.kv.Set(ctx, BudgetTargetKey(period), value.String()); err != nil {
		return common.StorageError("save budget target", err)
	}
	return nil
}
