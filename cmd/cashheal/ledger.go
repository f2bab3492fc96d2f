package main

import (
	"fmt"
	"io"

	"github.com/Veraticus/cashheal/internal/budget"
	"github.com/Veraticus/cashheal/internal/cli"
	"github.com/Veraticus/cashheal/internal/i18n"
	"github.com/Veraticus/cashheal/internal/ledger"
	"github.com/Veraticus/cashheal/internal/service"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

func printSnapshot(w io.Writer, a *app, snap ledger.Snapshot) {
	fmt.Fprintln(w, a.renderer.Balance(snap.Balance))
	fmt.Fprintln(w, a.renderer.Categories(snap.Categories))
	fmt.Fprintln(w, a.renderer.Transactions(snap.Recent))
}

func balanceCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "balance",
		Short: "Show the current balance",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := openApp(cmd.Context())
			if err != nil {
				return err
			}
			defer func() { _ = a.Close() }()

			balance, err := a.storage.GetBalance(cmd.Context())
			if err != nil {
				return fmt.Errorf("failed to get balance: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), a.renderer.Balance(balance))
			return nil
		},
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "adjust <delta>",
		Short: "Add to or subtract from the current balance",
		Long: `Adjust the current balance by delta. A positive delta is recorded as income;
a negative one lowers the balance, never below zero, without creating an entry.`,
		Example: `  cashheal balance adjust 50
  cashheal balance adjust -- -20`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			delta, err := decimal.NewFromString(args[0])
			if err != nil {
				return fmt.Errorf("invalid delta %q: %w", args[0], err)
			}

			a, err := openApp(cmd.Context())
			if err != nil {
				return err
			}
			defer func() { _ = a.Close() }()

			balance, err := a.recorder.AdjustBalance(cmd.Context(), delta)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), a.renderer.Balance(balance))
			return nil
		},
	})

	return cmd
}

func categoriesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "categories",
		Short: "Show and edit expense categories",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List categories with their spend",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := openApp(cmd.Context())
			if err != nil {
				return err
			}
			defer func() { _ = a.Close() }()

			categories, err := a.storage.GetCategories(cmd.Context())
			if err != nil {
				return fmt.Errorf("failed to get categories: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), a.renderer.Categories(categories))
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "set <key> <amount>",
		Short: "Overwrite a category's accumulated spend",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			amount, err := budget.ParseNonNegativeAmount(args[1])
			if err != nil {
				return err
			}

			a, err := openApp(cmd.Context())
			if err != nil {
				return err
			}
			defer func() { _ = a.Close() }()

			ctx := cmd.Context()
			if err := a.storage.SetCategoryAmount(ctx, args[0], amount); err != nil {
				return err
			}
			category, err := a.storage.GetCategory(ctx, args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess(fmt.Sprintf("%s %s: %s",
				category.Emoji, category.Label, i18n.FormatCurrency(category.Amount, a.cfg.Settings.Currency))))
			return nil
		},
	})

	return cmd
}

func incomeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "income <amount>",
		Short: "Record income",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			amount, err := budget.ParseAmount(args[0])
			if err != nil {
				return err
			}

			a, err := openApp(cmd.Context())
			if err != nil {
				return err
			}
			defer func() { _ = a.Close() }()

			if _, err := a.recorder.RecordIncome(cmd.Context(), amount); err != nil {
				return err
			}
			return showSnapshot(cmd, a)
		},
	}
}

func expenseCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "expense <amount>",
		Short:   "Record an expense against a category",
		Example: `  cashheal expense 12,50 --category food`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			category, _ := cmd.Flags().GetString("category")

			amount, err := budget.ParseAmount(args[0])
			if err != nil {
				return err
			}

			a, err := openApp(cmd.Context())
			if err != nil {
				return err
			}
			defer func() { _ = a.Close() }()

			if _, err := a.recorder.RecordExpense(cmd.Context(), amount, category); err != nil {
				return err
			}
			return showSnapshot(cmd, a)
		},
	}

	cmd.Flags().StringP("category", "c", "", "category key (food, fun, clothes, transport)")
	return cmd
}

func showSnapshot(cmd *cobra.Command, a *app) error {
	snap, err := a.recorder.Snapshot(cmd.Context(), 5)
	if err != nil {
		return err
	}
	printSnapshot(cmd.OutOrStdout(), a, snap)
	return nil
}

func transactionsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "transactions",
		Short: "List recorded transactions, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			fromFlag, _ := cmd.Flags().GetString("from")
			toFlag, _ := cmd.Flags().GetString("to")
			limit, _ := cmd.Flags().GetInt("limit")

			from, err := parseDateFlag(fromFlag, false)
			if err != nil {
				return err
			}
			to, err := parseDateFlag(toFlag, true)
			if err != nil {
				return err
			}

			a, err := openApp(cmd.Context())
			if err != nil {
				return err
			}
			defer func() { _ = a.Close() }()

			txns, err := a.storage.GetTransactions(cmd.Context(), service.TransactionFilter{
				From:  from,
				To:    to,
				Limit: limit,
			})
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), a.renderer.Transactions(txns))
			return nil
		},
	}

	cmd.Flags().String("from", "", "earliest date (YYYY-MM-DD or RFC3339)")
	cmd.Flags().String("to", "", "latest date (YYYY-MM-DD or RFC3339)")
	cmd.Flags().Int("limit", ledger.DefaultRecentLimit, "maximum entries, 0 for all")
	return cmd
}
