package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strconv"

	"github.com/Veraticus/cashheal/internal/budget"
	"github.com/Veraticus/cashheal/internal/i18n"
	"github.com/Veraticus/cashheal/internal/model"
	"github.com/shopspring/decimal"
)

// Prompter asks the advisor questions line by line, for terminals where the
// interactive wizard cannot run.
type Prompter struct {
	reader     *LineReader
	writer     io.Writer
	translator *i18n.Translator
}

// NewPrompter creates a prompter reading answers from r.
func NewPrompter(r io.Reader, w io.Writer, translator *i18n.Translator) *Prompter {
	return &Prompter{
		reader:     NewLineReader(r),
		writer:     w,
		translator: translator,
	}
}

// AskBudgetInput runs the questionnaire, repeating a question until its
// answer is valid.
func (p *Prompter) AskBudgetInput(ctx context.Context) (model.BudgetQuestionnaireInput, error) {
	income, err := p.askAmount(ctx, "advisor.income_prompt", budget.ParseAmount)
	if err != nil {
		return model.BudgetQuestionnaireInput{}, err
	}
	rent, err := p.askAmount(ctx, "advisor.rent_prompt", budget.ParseNonNegativeAmount)
	if err != nil {
		return model.BudgetQuestionnaireInput{}, err
	}
	daily, err := p.askAmount(ctx, "advisor.daily_prompt", budget.ParseNonNegativeAmount)
	if err != nil {
		return model.BudgetQuestionnaireInput{}, err
	}
	strategy, err := p.askStrategy(ctx)
	if err != nil {
		return model.BudgetQuestionnaireInput{}, err
	}
	return budget.NewInput(income, rent, daily, strategy)
}

func (p *Prompter) askAmount(ctx context.Context, key string, parse func(string) (decimal.Decimal, error)) (decimal.Decimal, error) {
	for {
		p.print(FormatPrompt(p.translator.T(key)))

		line, err := p.reader.ReadLine(ctx)
		if err != nil {
			return decimal.Zero, fmt.Errorf("reading answer: %w", err)
		}

		amount, err := parse(line)
		if err == nil {
			return amount, nil
		}
		p.print(FormatError(err.Error()) + "\n")
	}
}

func (p *Prompter) askStrategy(ctx context.Context) (model.SavingsStrategy, error) {
	for {
		p.print(promptStyle.Render(p.translator.T("advisor.strategy_prompt")) + "\n")
		for i, s := range budget.Strategies {
			marker := " "
			if s == model.StrategyBalanced {
				marker = "*"
			}
			p.print(fmt.Sprintf("  %s%d. %s\n", marker, i+1, p.translator.T("strategy."+string(s))))
		}
		p.print(FormatPrompt("1-3"))

		line, err := p.reader.ReadLine(ctx)
		if err != nil {
			return "", fmt.Errorf("reading answer: %w", err)
		}
		if line == "" {
			return model.StrategyBalanced, nil
		}
		if n, convErr := strconv.Atoi(line); convErr == nil && n >= 1 && n <= len(budget.Strategies) {
			return budget.Strategies[n-1], nil
		}

		strategy, err := budget.ParseStrategy(line)
		if err == nil {
			return strategy, nil
		}
		p.print(FormatError(err.Error()) + "\n")
	}
}

func (p *Prompter) print(s string) {
	if _, err := fmt.Fprint(p.writer, s); err != nil {
		slog.Warn("Failed to write prompt", "error", err)
	}
}
