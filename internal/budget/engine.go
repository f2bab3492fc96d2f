// Package budget turns budget advisor answers into a spending plan.
package budget

import (
	"github.com/Veraticus/cashheal/internal/model"
	"github.com/shopspring/decimal"
)

var (
	fixedChargeRate = decimal.RequireFromString("0.10")
	hundred         = decimal.NewFromInt(100)
	daysPerMonth    = decimal.NewFromInt(30)
	weeksPerMonth   = decimal.NewFromInt(4)
	fortnights      = decimal.NewFromInt(2)
	daysPerWeek     = decimal.NewFromInt(7)
	daysPerFortnite = decimal.NewFromInt(14)
)

// Compute derives a BudgetPlan from validated questionnaire answers.
//
// Fixed charges are rent plus a flat 10% of income. Whatever income remains after
// fixed charges and savings is available for spending, never less than zero.
// The *Spending fields scale the stated daily habit and are independent of income.
func Compute(in model.BudgetQuestionnaireInput) model.BudgetPlan {
	fixedCharges := in.Rent.Add(in.MonthlyIncome.Mul(fixedChargeRate))
	savingsAmount := in.MonthlyIncome.Mul(in.SavingsPercentage).Div(hundred)
	available := model.ClampZero(in.MonthlyIncome.Sub(fixedCharges).Sub(savingsAmount))

	return model.BudgetPlan{
		MonthlyIncome:        in.MonthlyIncome,
		Rent:                 in.Rent,
		FixedCharges:         fixedCharges,
		SavingsAmount:        savingsAmount,
		SavingsPercentage:    in.SavingsPercentage,
		SavingsStrategy:      in.Strategy,
		AvailableForSpending: available,
		DailyBudget:          available.Div(daysPerMonth),
		WeeklyBudget:         available.Div(weeksPerMonth),
		BiweeklyBudget:       available.Div(fortnights),
		MonthlySpending:      available,
		DailySpending:        in.DailySpending,
		WeeklySpending:       in.DailySpending.Mul(daysPerWeek),
		BiweeklySpending:     in.DailySpending.Mul(daysPerFortnite),
	}
}
