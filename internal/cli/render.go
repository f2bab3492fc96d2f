package cli

import (
	"strings"

	"github.com/Veraticus/cashheal/internal/budget"
	"github.com/Veraticus/cashheal/internal/i18n"
	"github.com/Veraticus/cashheal/internal/model"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"
)

const transactionTimeLayout = "2006-01-02 15:04"

// Renderer formats ledger state for the terminal in one language and currency.
type Renderer struct {
	translator *i18n.Translator
	currency   string
}

// NewRenderer creates a Renderer.
func NewRenderer(translator *i18n.Translator, currency string) *Renderer {
	return &Renderer{translator: translator, currency: currency}
}

func (r *Renderer) money(d decimal.Decimal) string {
	return i18n.FormatCurrency(d, r.currency)
}

// table lays rows out in columns sized to their widest cell.
func table(header []string, rows [][]string) string {
	widths := make([]int, len(header))
	for i, h := range header {
		widths[i] = lipgloss.Width(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			if w := lipgloss.Width(cell); w > widths[i] {
				widths[i] = w
			}
		}
	}

	render := func(cells []string, style lipgloss.Style) string {
		out := make([]string, len(cells))
		for i, cell := range cells {
			out[i] = cellStyle.Width(widths[i] + 2).Render(cell)
		}
		return style.Render(lipgloss.JoinHorizontal(lipgloss.Top, out...))
	}

	lines := []string{render(header, headerStyle)}
	for _, row := range rows {
		lines = append(lines, render(row, lipgloss.NewStyle()))
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

// Balance renders the balance box.
func (r *Renderer) Balance(b model.Balance) string {
	content := lipgloss.JoinVertical(lipgloss.Left,
		SubtleStyle.Render(r.translator.T("balance.current")),
		boldStyle.Render(r.money(b.Current)),
		"",
		SubtleStyle.Render(r.translator.T("balance.total")),
		r.money(b.Total),
	)
	return renderBox(walletIcon+" "+r.translator.T("balance.title"), content)
}

// Categories renders the category spend table.
func (r *Renderer) Categories(categories []model.Category) string {
	rows := make([][]string, 0, len(categories))
	for _, c := range categories {
		label := lipgloss.NewStyle().Foreground(lipgloss.Color(c.Color)).Render(c.Label)
		rows = append(rows, []string{c.Emoji, c.Key, label, r.money(c.Amount)})
	}
	return FormatTitle(r.translator.T("categories.title")) + "\n" +
		table([]string{"", "key", "", ""}, rows)
}

// Transactions renders transactions newest first, as given.
func (r *Renderer) Transactions(txns []model.Transaction) string {
	title := FormatTitle(r.translator.T("transactions.title"))
	if len(txns) == 0 {
		return title + "\n" + SubtleStyle.Render(r.translator.T("transactions.empty"))
	}

	rows := make([][]string, 0, len(txns))
	for _, t := range txns {
		amount := r.money(t.Amount)
		kind := r.translator.T("tx.expense")
		if t.Type == model.TransactionIncome {
			kind = r.translator.T("tx.income")
			amount = incomeStyle.Render("+" + amount)
		} else {
			amount = expenseStyle.Render("-" + amount)
		}
		rows = append(rows, []string{
			t.CreatedAt.Local().Format(transactionTimeLayout),
			kind,
			t.Category(),
			amount,
		})
	}
	return title + "\n" + table([]string{"", "", "", ""}, rows)
}

// Plan renders a budget plan.
func (r *Renderer) Plan(plan model.BudgetPlan) string {
	rows := []struct {
		key    string
		amount decimal.Decimal
		strong bool
	}{
		{key: "advisor.monthly_budget", amount: plan.MonthlyIncome},
		{key: "advisor.fixed_charges", amount: plan.FixedCharges},
		{key: "advisor.savings", amount: plan.SavingsAmount},
		{key: "advisor.available", amount: plan.AvailableForSpending, strong: true},
		{key: "advisor.daily_budget", amount: plan.DailyBudget, strong: true},
		{key: "advisor.weekly_budget", amount: plan.WeeklyBudget},
		{key: "advisor.biweekly_budget", amount: plan.BiweeklyBudget},
		{key: "advisor.weekly_spending", amount: plan.WeeklySpending},
		{key: "advisor.biweekly_spending", amount: plan.BiweeklySpending},
	}

	label := lipgloss.NewStyle().Width(30).Foreground(SubtleColor)
	lines := make([]string, 0, len(rows)+1)
	lines = append(lines, SubtleStyle.Render(r.translator.T("strategy."+string(plan.SavingsStrategy))))
	for _, row := range rows {
		value := r.money(row.amount)
		if row.strong {
			value = incomeStyle.Bold(true).Render(value)
		}
		lines = append(lines, label.Render(r.translator.T(row.key))+value)
	}
	return renderBox(r.translator.T("advisor.result_title"), lipgloss.JoinVertical(lipgloss.Left, lines...))
}

// Status renders spend against target per period with a progress bar.
func (r *Renderer) Status(status []budget.PeriodProgress) string {
	bar := progress.New(progress.WithSolidFill(string(PrimaryColor)), progress.WithWidth(24))
	overBar := progress.New(progress.WithSolidFill(string(ErrorColor)), progress.WithWidth(24))

	var b strings.Builder
	b.WriteString(FormatTitle(ChartIcon + " " + r.translator.T("advisor.title")))
	b.WriteString("\n")
	for _, p := range status {
		ratio := p.Ratio.InexactFloat64()
		line := bar.ViewAs(ratio)
		note := r.translator.T("status.remaining") + " " + r.money(p.Remaining)
		if p.Over {
			line = overBar.ViewAs(ratio)
			note = expenseStyle.Render(r.translator.T("status.over"))
		}

		b.WriteString(boldStyle.Render(r.translator.T("period."+string(p.Period))))
		b.WriteString("\n  ")
		b.WriteString(line)
		b.WriteString("\n  ")
		b.WriteString(r.translator.T("status.spent") + " " + r.money(p.Spent) + " / " +
			r.translator.T("status.target") + " " + r.money(p.Target) + "  " + note)
		b.WriteString("\n")
	}
	return b.String()
}
