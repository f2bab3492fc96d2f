package tui

import (
	"testing"

	"github.com/Veraticus/cashheal/internal/i18n"
	"github.com/Veraticus/cashheal/internal/model"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

var (
	enter = tea.KeyMsg{Type: tea.KeyEnter}
	esc   = tea.KeyMsg{Type: tea.KeyEsc}
	down  = tea.KeyMsg{Type: tea.KeyDown}
	up    = tea.KeyMsg{Type: tea.KeyUp}
)

func newTestModel() Model {
	return NewModel(i18n.NewTranslator("en"), "USD")
}

func send(t *testing.T, m Model, msgs ...tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	var cmd tea.Cmd
	for _, msg := range msgs {
		var next tea.Model
		next, cmd = m.Update(msg)
		var ok bool
		m, ok = next.(Model)
		require.True(t, ok)
	}
	return m, cmd
}

func answer(t *testing.T, m Model, value string) Model {
	t.Helper()
	m, _ = send(t, m, runes(value), enter)
	return m
}

func TestWizardCompletesPlan(t *testing.T) {
	m := newTestModel()
	assert.Equal(t, StepIncome, m.Step())

	m = answer(t, m, "3000")
	m = answer(t, m, "1000")
	m = answer(t, m, "50")
	require.Equal(t, StepStrategy, m.Step())

	m, _ = send(t, m, enter)
	require.Equal(t, StepResult, m.Step())

	plan, accepted := m.Plan()
	assert.False(t, accepted)
	assert.Equal(t, model.StrategyBalanced, plan.SavingsStrategy)
	assert.True(t, plan.AvailableForSpending.Equal(decimal.NewFromInt(1100)))
	assert.True(t, plan.DailyBudget.Equal(decimal.RequireFromString("36.67")))
	assert.Contains(t, m.View(), "$36.67")

	m, cmd := send(t, m, enter)
	_, accepted = m.Plan()
	assert.True(t, accepted)
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestWizardStrategySelection(t *testing.T) {
	tests := []struct {
		name string
		keys []tea.Msg
		want model.SavingsStrategy
	}{
		{name: "default", want: model.StrategyBalanced},
		{name: "down", keys: []tea.Msg{down}, want: model.StrategyAggressive},
		{name: "up", keys: []tea.Msg{up}, want: model.StrategyConservative},
		{name: "clamped at top", keys: []tea.Msg{up, up, up}, want: model.StrategyConservative},
		{name: "clamped at bottom", keys: []tea.Msg{down, down, runes("j")}, want: model.StrategyAggressive},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newTestModel()
			m = answer(t, m, "2000")
			m = answer(t, m, "0")
			m = answer(t, m, "0")

			m, _ = send(t, m, append(tt.keys, enter)...)
			plan, _ := m.Plan()
			assert.Equal(t, tt.want, plan.SavingsStrategy)
		})
	}
}

func TestWizardRejectsInvalidAnswers(t *testing.T) {
	tests := []struct {
		name    string
		prior   []string
		value   string
		atStep  Step
		wantErr bool
	}{
		{name: "non numeric income", value: "abc", atStep: StepIncome, wantErr: true},
		{name: "zero income", value: "0", atStep: StepIncome, wantErr: true},
		{name: "negative rent", prior: []string{"1000"}, value: "-5", atStep: StepRent, wantErr: true},
		{name: "zero rent accepted", prior: []string{"1000"}, value: "0", atStep: StepDaily},
		{name: "comma decimal", prior: []string{"1000", "200"}, value: "12,5", atStep: StepStrategy},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newTestModel()
			for _, v := range tt.prior {
				m = answer(t, m, v)
			}
			m = answer(t, m, tt.value)

			assert.Equal(t, tt.atStep, m.Step())
			if tt.wantErr {
				assert.Error(t, m.Err())
				assert.Contains(t, m.View(), "✗")
			} else {
				assert.NoError(t, m.Err())
			}
		})
	}
}

func TestWizardBackRestoresAnswer(t *testing.T) {
	m := newTestModel()
	m = answer(t, m, "3000")
	m = answer(t, m, "1000")

	m, _ = send(t, m, esc)
	assert.Equal(t, StepRent, m.Step())
	assert.Equal(t, "1000.00", m.input.Value())

	m, _ = send(t, m, esc, esc)
	assert.Equal(t, StepIncome, m.Step())
}

func TestWizardQuit(t *testing.T) {
	m := newTestModel()
	m, cmd := send(t, m, tea.KeyMsg{Type: tea.KeyCtrlC})

	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
	_, accepted := m.Plan()
	assert.False(t, accepted)
	assert.Empty(t, m.View())
}

func TestWizardViewIsTranslated(t *testing.T) {
	m := NewModel(i18n.NewTranslator("fr"), "EUR")
	view := m.View()
	assert.Contains(t, view, i18n.NewTranslator("fr").T("advisor.title"))
	assert.Contains(t, view, "1/4")
}
