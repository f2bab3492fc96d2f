// Package tui implements the interactive budget advisor questionnaire.
package tui

import (
	"github.com/Veraticus/cashheal/internal/budget"
	"github.com/Veraticus/cashheal/internal/i18n"
	"github.com/Veraticus/cashheal/internal/model"
	"github.com/Veraticus/cashheal/internal/tui/themes"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/shopspring/decimal"
)

// Step is a position in the questionnaire.
type Step int

const (
	StepIncome Step = iota
	StepRent
	StepDaily
	StepStrategy
	StepResult
)

// Model is the advisor wizard state.
type Model struct {
	theme      themes.Theme
	err        error
	translator *i18n.Translator
	currency   string
	keymap     KeyMap
	help       help.Model
	input      textinput.Model
	income     decimal.Decimal
	rent       decimal.Decimal
	daily      decimal.Decimal
	plan       model.BudgetPlan
	strategy   int
	step       Step
	accepted   bool
	quitting   bool
}

// NewModel creates a wizard that labels amounts in currency.
func NewModel(translator *i18n.Translator, currency string) Model {
	input := textinput.New()
	input.Placeholder = "0.00"
	input.CharLimit = 16
	input.Width = 20
	input.Focus()

	return Model{
		theme:      themes.Default,
		translator: translator,
		currency:   currency,
		keymap:     DefaultKeyMap(),
		help:       help.New(),
		input:      input,
		strategy:   defaultStrategyIndex(),
		step:       StepIncome,
	}
}

func defaultStrategyIndex() int {
	for i, s := range budget.Strategies {
		if s == model.StrategyBalanced {
			return i
		}
	}
	return 0
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		if m.step < StepStrategy {
			var cmd tea.Cmd
			m.input, cmd = m.input.Update(msg)
			return m, cmd
		}
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, m.keymap.Quit):
		m.quitting = true
		return m, tea.Quit
	case key.Matches(keyMsg, m.keymap.Back):
		return m.back()
	}

	switch m.step {
	case StepIncome, StepRent, StepDaily:
		return m.updateAmount(keyMsg)
	case StepStrategy:
		return m.updateStrategy(keyMsg)
	case StepResult:
		if key.Matches(keyMsg, m.keymap.Confirm) {
			m.accepted = true
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m Model) updateAmount(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if !key.Matches(msg, m.keymap.Confirm) {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}

	var (
		amount decimal.Decimal
		err    error
	)
	if m.step == StepIncome {
		amount, err = budget.ParseAmount(m.input.Value())
	} else {
		amount, err = budget.ParseNonNegativeAmount(m.input.Value())
	}
	if err != nil {
		m.err = err
		return m, nil
	}

	m.err = nil
	switch m.step {
	case StepIncome:
		m.income = amount
	case StepRent:
		m.rent = amount
	case StepDaily:
		m.daily = amount
	}
	m.step++
	m.input.SetValue("")
	if m.step == StepStrategy {
		m.input.Blur()
	}
	return m, nil
}

func (m Model) updateStrategy(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keymap.Up):
		if m.strategy > 0 {
			m.strategy--
		}
	case key.Matches(msg, m.keymap.Down):
		if m.strategy < len(budget.Strategies)-1 {
			m.strategy++
		}
	case key.Matches(msg, m.keymap.Confirm):
		input, err := budget.NewInput(m.income, m.rent, m.daily, budget.Strategies[m.strategy])
		if err != nil {
			m.err = err
			return m, nil
		}
		m.err = nil
		m.plan = budget.Compute(input)
		m.step = StepResult
	}
	return m, nil
}

func (m Model) back() (tea.Model, tea.Cmd) {
	if m.step == StepIncome {
		return m, nil
	}
	m.err = nil
	m.step--
	if m.step < StepStrategy {
		m.input.SetValue(m.previousAnswer().StringFixed(2))
		m.input.Focus()
	}
	return m, nil
}

func (m Model) previousAnswer() decimal.Decimal {
	switch m.step {
	case StepIncome:
		return m.income
	case StepRent:
		return m.rent
	case StepDaily:
		return m.daily
	}
	return decimal.Zero
}

// Step returns the current questionnaire step.
func (m Model) Step() Step {
	return m.step
}

// Plan returns the computed plan and whether the user accepted it.
func (m Model) Plan() (model.BudgetPlan, bool) {
	return m.plan, m.accepted
}

// Err returns the last validation error shown to the user.
func (m Model) Err() error {
	return m.err
}
