package budget

import (
	"github.com/Veraticus/cashheal/internal/model"
	"github.com/shopspring/decimal"
)

// PeriodProgress describes spending against a period target.
type PeriodProgress struct {
	Period    model.Period    `json:"period"`
	Target    decimal.Decimal `json:"target"`
	Spent     decimal.Decimal `json:"spent"`
	Remaining decimal.Decimal `json:"remaining"`
	Ratio     decimal.Decimal `json:"ratio"`
	Over      bool            `json:"over"`
}

// Progress compares spent against target.
func Progress(period model.Period, target, spent decimal.Decimal) PeriodProgress {
	p := PeriodProgress{
		Period:    period,
		Target:    target,
		Spent:     spent,
		Remaining: model.ClampZero(target.Sub(spent)),
		Ratio:     decimal.Zero,
		Over:      spent.GreaterThan(target),
	}
	if target.IsPositive() {
		p.Ratio = decimal.Min(decimal.NewFromInt(1), model.ClampZero(spent.Div(target)))
	}
	return p
}
