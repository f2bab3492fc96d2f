package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// SavingsStrategy is one of the three savings presets offered by the advisor.
type SavingsStrategy string

const (
	// StrategyAggressive saves 10% of income.
	StrategyAggressive SavingsStrategy = "aggressive"
	// StrategyBalanced saves 20% of income.
	StrategyBalanced SavingsStrategy = "balanced"
	// StrategyConservative saves 30% of income.
	StrategyConservative SavingsStrategy = "conservative"
)

// BudgetQuestionnaireInput holds the advisor answers.
type BudgetQuestionnaireInput struct {
	MonthlyIncome     decimal.Decimal `json:"monthlyIncome"`
	Rent              decimal.Decimal `json:"rent"`
	DailySpending     decimal.Decimal `json:"dailySpending"`
	SavingsPercentage decimal.Decimal `json:"savingsPercentage"`
	Strategy          SavingsStrategy `json:"savingsType"`
}

// BudgetPlan is the derived budget breakdown for one questionnaire submission.
// The *Budget fields answer "what can I afford"; the *Spending fields echo
// what the user currently spends.
type BudgetPlan struct {
	MonthlyIncome        decimal.Decimal `json:"monthlyBudget"`
	Rent                 decimal.Decimal `json:"rent"`
	FixedCharges         decimal.Decimal `json:"fixedCharges"`
	SavingsAmount        decimal.Decimal `json:"savingsAmount"`
	SavingsPercentage    decimal.Decimal `json:"savingsPercentage"`
	AvailableForSpending decimal.Decimal `json:"availableForSpending"`
	DailyBudget          decimal.Decimal `json:"dailyBudget"`
	WeeklyBudget         decimal.Decimal `json:"weeklyBudget"`
	BiweeklyBudget       decimal.Decimal `json:"biweeklyBudget"`
	MonthlySpending      decimal.Decimal `json:"monthlySpending"`
	DailySpending        decimal.Decimal `json:"dailySpending"`
	WeeklySpending       decimal.Decimal `json:"weeklySpending"`
	BiweeklySpending     decimal.Decimal `json:"biweeklySpending"`
	SavingsStrategy      SavingsStrategy `json:"savingsType"`
}

// SavedPlan is a persisted plan snapshot.
type SavedPlan struct {
	SavedAt time.Time
	Plan    BudgetPlan
}

// Period identifies a budget target window.
type Period string

const (
	// PeriodDay is the current calendar day.
	PeriodDay Period = "day"
	// PeriodTwoWeeks is the trailing fourteen days.
	PeriodTwoWeeks Period = "two_weeks"
	// PeriodMonth is the current calendar month.
	PeriodMonth Period = "month"
)

// Periods lists every period in display order.
var Periods = []Period{PeriodDay, PeriodTwoWeeks, PeriodMonth}

// Valid reports whether p is a known period.
func (p Period) Valid() bool {
	switch p {
	case PeriodDay, PeriodTwoWeeks, PeriodMonth:
		return true
	}
	return false
}

// DefaultTarget returns the budget target used when none has been set.
func (p Period) DefaultTarget() decimal.Decimal {
	switch p {
	case PeriodDay:
		return decimal.NewFromInt(60)
	case PeriodTwoWeeks:
		return decimal.NewFromInt(400)
	case PeriodMonth:
		return decimal.NewFromInt(900)
	}
	return decimal.Zero
}

// Start returns the beginning of the period window that contains now.
func (p Period) Start(now time.Time) time.Time {
	switch p {
	case PeriodDay:
		y, m, d := now.Date()
		return time.Date(y, m, d, 0, 0, 0, 0, now.Location())
	case PeriodTwoWeeks:
		return now.AddDate(0, 0, -14)
	case PeriodMonth:
		y, m, _ := now.Date()
		return time.Date(y, m, 1, 0, 0, 0, 0, now.Location())
	}
	return now
}
