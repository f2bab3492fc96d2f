package main

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/Veraticus/cashheal/internal/budget"
	"github.com/Veraticus/cashheal/internal/cli"
	"github.com/Veraticus/cashheal/internal/common"
	"github.com/Veraticus/cashheal/internal/i18n"
	"github.com/Veraticus/cashheal/internal/model"
	"github.com/Veraticus/cashheal/internal/tui"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
)

func advisorCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "advisor",
		Short: "Build a budget plan from a short questionnaire",
		Long: `Answer four questions (monthly budget, rent, daily spending, savings goal)
and get a daily, weekly and monthly spending budget. The plan is saved and
replaces any earlier one.

With --income the questionnaire is skipped and the flags are used instead.
Otherwise an interactive wizard runs, or line prompts when stdin is not a terminal.`,
		Example: `  cashheal advisor
  cashheal advisor --income 3000 --rent 1000 --daily 50 --strategy balanced`,
		Args: cobra.NoArgs,
		RunE: runAdvisor,
	}

	cmd.Flags().String("income", "", "monthly income")
	cmd.Flags().String("rent", "0", "monthly rent")
	cmd.Flags().String("daily", "0", "current daily spending")
	cmd.Flags().String("strategy", string(model.StrategyBalanced), "savings strategy (conservative, balanced, aggressive)")

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show the saved plan",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := openApp(cmd.Context())
			if err != nil {
				return err
			}
			defer func() { _ = a.Close() }()

			saved, err := a.plans.LoadPlan(cmd.Context())
			if err != nil {
				return err
			}
			if saved == nil {
				fmt.Fprintln(cmd.OutOrStdout(), cli.FormatInfo(a.translator.T("advisor.no_plan")))
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), a.renderer.Plan(saved.Plan))
			fmt.Fprintln(cmd.OutOrStdout(), cli.SubtleStyle.Render(saved.SavedAt.Local().Format(time.RFC1123)))
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "reset",
		Short: "Delete the saved plan",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := openApp(cmd.Context())
			if err != nil {
				return err
			}
			defer func() { _ = a.Close() }()

			if err := a.plans.ClearPlan(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess(a.translator.T("advisor.no_plan")))
			return nil
		},
	})

	return cmd
}

func runAdvisor(cmd *cobra.Command, _ []string) error {
	a, err := openApp(cmd.Context())
	if err != nil {
		return err
	}
	defer func() { _ = a.Close() }()

	ctx := cmd.Context()
	var plan model.BudgetPlan

	switch {
	case cmd.Flags().Changed("income"):
		input, err := inputFromFlags(cmd)
		if err != nil {
			return err
		}
		plan = budget.Compute(input)

	case isTerminal(cmd):
		plan, err = tui.RunAdvisor(ctx, a.translator, a.cfg.Settings.Currency)
		if errors.Is(err, tui.ErrCancelled) {
			return nil
		}
		if err != nil {
			return err
		}

	default:
		input, err := cli.NewPrompter(cmd.InOrStdin(), cmd.OutOrStdout(), a.translator).AskBudgetInput(ctx)
		if err != nil {
			return err
		}
		plan = budget.Compute(input)
	}

	if err := a.plans.SavePlan(ctx, plan, time.Now()); err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), a.renderer.Plan(plan))
	fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess(a.translator.T("advisor.saved")))
	return nil
}

func inputFromFlags(cmd *cobra.Command) (model.BudgetQuestionnaireInput, error) {
	incomeFlag, _ := cmd.Flags().GetString("income")
	rentFlag, _ := cmd.Flags().GetString("rent")
	dailyFlag, _ := cmd.Flags().GetString("daily")
	strategyFlag, _ := cmd.Flags().GetString("strategy")

	income, err := budget.ParseAmount(incomeFlag)
	if err != nil {
		return model.BudgetQuestionnaireInput{}, fmt.Errorf("--income: %w", err)
	}
	rent, err := budget.ParseNonNegativeAmount(rentFlag)
	if err != nil {
		return model.BudgetQuestionnaireInput{}, fmt.Errorf("--rent: %w", err)
	}
	daily, err := budget.ParseNonNegativeAmount(dailyFlag)
	if err != nil {
		return model.BudgetQuestionnaireInput{}, fmt.Errorf("--daily: %w", err)
	}
	strategy, err := budget.ParseStrategy(strategyFlag)
	if err != nil {
		return model.BudgetQuestionnaireInput{}, err
	}
	return budget.NewInput(income, rent, daily, strategy)
}

// isTerminal reports whether the command reads from an interactive terminal.
func isTerminal(cmd *cobra.Command) bool {
	f, ok := cmd.InOrStdin().(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

func targetsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "targets [period] [value]",
		Short: "Show or set the per-period budget targets",
		Long: `Without arguments, list the targets for day, two_weeks and month.
With a period, show that target; with a period and value, set it.`,
		Example: `  cashheal targets
  cashheal targets day 45`,
		Args: cobra.MaximumNArgs(2),
		ValidArgs: []string{
			string(model.PeriodDay), string(model.PeriodTwoWeeks), string(model.PeriodMonth),
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(cmd.Context())
			if err != nil {
				return err
			}
			defer func() { _ = a.Close() }()

			ctx := cmd.Context()
			periods := model.Periods
			if len(args) > 0 {
				period := model.Period(strings.ToLower(args[0]))
				if !period.Valid() {
					return fmt.Errorf("%w: %q", common.ErrInvalidPeriod, args[0])
				}
				periods = []model.Period{period}

				if len(args) == 2 {
					value, err := budget.ParseNonNegativeAmount(args[1])
					if err != nil {
						return err
					}
					if err := a.plans.SetBudgetTarget(ctx, period, value); err != nil {
						return err
					}
				}
			}

			for _, period := range periods {
				target, err := a.plans.GetBudgetTarget(ctx, period)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%-12s %s\n",
					a.translator.T("period."+string(period)),
					i18n.FormatCurrency(target, a.cfg.Settings.Currency))
			}
			return nil
		},
	}
}

func statusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show spending against each budget target",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := openApp(cmd.Context())
			if err != nil {
				return err
			}
			defer func() { _ = a.Close() }()

			status, err := a.recorder.Status(cmd.Context(), a.plans, time.Now())
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), a.renderer.Status(status))
			return nil
		},
	}
}
