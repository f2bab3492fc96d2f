package tui

import (
	"fmt"
	"strings"

	"github.com/Veraticus/cashheal/internal/budget"
	"github.com/Veraticus/cashheal/internal/i18n"
	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"
)

var promptKeys = map[Step]string{
	StepIncome:   "advisor.income_prompt",
	StepRent:     "advisor.rent_prompt",
	StepDaily:    "advisor.daily_prompt",
	StepStrategy: "advisor.strategy_prompt",
}

// View renders the current step.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var body string
	switch m.step {
	case StepResult:
		body = m.renderResult()
	case StepStrategy:
		body = m.renderStrategies()
	default:
		body = m.renderAmountPrompt()
	}

	sections := []string{
		m.theme.Title.Render(m.translator.T("advisor.title")),
		body,
	}
	if m.err != nil {
		sections = append(sections, m.theme.StatusError.Render("✗ "+m.err.Error()))
	}
	sections = append(sections, m.theme.Help.Render(m.help.View(m.keymap)))

	return m.theme.BorderedBox.Render(lipgloss.JoinVertical(lipgloss.Left, sections...))
}

func (m Model) renderAmountPrompt() string {
	progress := m.theme.Subtitle.Render(fmt.Sprintf("%d/4", int(m.step)+1))
	prompt := m.theme.Prompt.Render(m.translator.T(promptKeys[m.step]))
	return lipgloss.JoinVertical(lipgloss.Left, progress, prompt, m.input.View())
}

func (m Model) renderStrategies() string {
	var b strings.Builder
	b.WriteString(m.theme.Subtitle.Render("4/4"))
	b.WriteString("\n")
	b.WriteString(m.theme.Prompt.Render(m.translator.T(promptKeys[StepStrategy])))
	b.WriteString("\n")

	for i, s := range budget.Strategies {
		label := m.translator.T("strategy." + string(s))
		if i == m.strategy {
			b.WriteString(m.theme.Selected.Render("› " + label))
		} else {
			b.WriteString(m.theme.Normal.Render("  " + label))
		}
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) renderResult() string {
	p := m.plan
	rows := []struct {
		key    string
		amount decimal.Decimal
		strong bool
	}{
		{key: "advisor.monthly_budget", amount: p.MonthlyIncome},
		{key: "advisor.fixed_charges", amount: p.FixedCharges},
		{key: "advisor.savings", amount: p.SavingsAmount},
		{key: "advisor.available", amount: p.AvailableForSpending, strong: true},
		{key: "advisor.daily_budget", amount: p.DailyBudget, strong: true},
		{key: "advisor.weekly_budget", amount: p.WeeklyBudget},
		{key: "advisor.biweekly_budget", amount: p.BiweeklyBudget},
		{key: "advisor.weekly_spending", amount: p.WeeklySpending},
		{key: "advisor.biweekly_spending", amount: p.BiweeklySpending},
	}

	lines := []string{m.theme.Prompt.Render(m.translator.T("advisor.result_title"))}
	for _, row := range rows {
		value := i18n.FormatCurrency(row.amount, m.currency)
		if row.strong {
			value = m.theme.Highlighted.Render(value)
		} else {
			value = m.theme.Value.Render(value)
		}
		lines = append(lines, m.theme.Label.Render(m.translator.T(row.key))+value)
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}
