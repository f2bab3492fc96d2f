package tui

import (
	"context"
	"errors"
	"fmt"

	"github.com/Veraticus/cashheal/internal/i18n"
	"github.com/Veraticus/cashheal/internal/model"
	tea "github.com/charmbracelet/bubbletea"
)

// ErrCancelled is returned when the user quits before accepting a plan.
var ErrCancelled = errors.New("advisor cancelled")

// RunAdvisor runs the questionnaire and returns the accepted plan.
func RunAdvisor(ctx context.Context, translator *i18n.Translator, currency string, opts ...tea.ProgramOption) (model.BudgetPlan, error) {
	opts = append([]tea.ProgramOption{tea.WithContext(ctx)}, opts...)
	p := tea.NewProgram(NewModel(translator, currency), opts...)

	final, err := p.Run()
	if err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return model.BudgetPlan{}, ErrCancelled
		}
		return model.BudgetPlan{}, fmt.Errorf("running advisor: %w", err)
	}

	m, ok := final.(Model)
	if !ok {
		return model.BudgetPlan{}, fmt.Errorf("unexpected model type %T", final)
	}
	plan, accepted := m.Plan()
	if !accepted {
		return model.BudgetPlan{}, ErrCancelled
	}
	return plan, nil
}
