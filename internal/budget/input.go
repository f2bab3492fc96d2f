package budget

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/Veraticus/cashheal/internal/common"
	"github.com/Veraticus/cashheal/internal/model"
	"github.com/shopspring/decimal"
)

var amountNoise = regexp.MustCompile(`[^0-9.,-]`)

var strategyPercentages = map[model.SavingsStrategy]int64{
	model.StrategyAggressive:   10,
	model.StrategyBalanced:     20,
	model.StrategyConservative: 30,
}

// Strategies lists the savings presets in the order the advisor offers them.
var Strategies = []model.SavingsStrategy{
	model.StrategyConservative,
	model.StrategyBalanced,
	model.StrategyAggressive,
}

// ParseAmount parses user input such as "12,50 €" into a strictly positive amount.
func ParseAmount(raw string) (decimal.Decimal, error) {
	d, err := parseDecimal(raw)
	if err != nil {
		return decimal.Zero, err
	}
	if !d.IsPositive() {
		return decimal.Zero, fmt.Errorf("%w: %q must be greater than zero", common.ErrInvalidAmount, raw)
	}
	return d, nil
}

// ParseNonNegativeAmount is ParseAmount that also accepts zero.
func ParseNonNegativeAmount(raw string) (decimal.Decimal, error) {
	d, err := parseDecimal(raw)
	if err != nil {
		return decimal.Zero, err
	}
	if d.IsNegative() {
		return decimal.Zero, fmt.Errorf("%w: %q is negative", common.ErrInvalidAmount, raw)
	}
	return d, nil
}

func parseDecimal(raw string) (decimal.Decimal, error) {
	cleaned := amountNoise.ReplaceAllString(strings.TrimSpace(raw), "")
	cleaned = strings.Replace(cleaned, ",", ".", 1)
	if cleaned == "" {
		return decimal.Zero, fmt.Errorf("%w: %q is not a number", common.ErrInvalidAmount, raw)
	}
	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %q is not a number", common.ErrInvalidAmount, raw)
	}
	return d, nil
}

// ParseStrategy looks up a savings strategy by name.
func ParseStrategy(name string) (model.SavingsStrategy, error) {
	s := model.SavingsStrategy(strings.ToLower(strings.TrimSpace(name)))
	if _, ok := strategyPercentages[s]; !ok {
		return "", fmt.Errorf("%w: %q", common.ErrInvalidStrategy, name)
	}
	return s, nil
}

// StrategyPercentage returns the savings percentage for s, or zero if unknown.
func StrategyPercentage(s model.SavingsStrategy) decimal.Decimal {
	return decimal.NewFromInt(strategyPercentages[s])
}

// NewInput validates questionnaire answers and resolves the strategy percentage.
func NewInput(income, rent, daily decimal.Decimal, strategy model.SavingsStrategy) (model.BudgetQuestionnaireInput, error) {
	if !income.IsPositive() {
		return model.BudgetQuestionnaireInput{}, fmt.Errorf("%w: monthly income must be greater than zero", common.ErrInvalidAmount)
	}
	if rent.IsNegative() {
		return model.BudgetQuestionnaireInput{}, fmt.Errorf("%w: rent cannot be negative", common.ErrInvalidAmount)
	}
	if daily.IsNegative() {
		return model.BudgetQuestionnaireInput{}, fmt.Errorf("%w: daily spending cannot be negative", common.ErrInvalidAmount)
	}
	if _, ok := strategyPercentages[strategy]; !ok {
		return model.BudgetQuestionnaireInput{}, fmt.Errorf("%w: %q", common.ErrInvalidStrategy, strategy)
	}

	return model.BudgetQuestionnaireInput{
		MonthlyIncome:     income,
		Rent:              rent,
		DailySpending:     daily,
		SavingsPercentage: StrategyPercentage(strategy),
		Strategy:          strategy,
	}, nil
}
