package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/Veraticus/cashheal/internal/cli"
	"github.com/Veraticus/cashheal/internal/i18n"
	"github.com/Veraticus/cashheal/internal/ofx"
	"github.com/spf13/cobra"
)

func importOFXCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import-ofx [files...]",
		Short: "Import transactions from OFX/QFX files",
		Long: `Record the entries of OFX or QFX statements exported from your bank.

Credits are recorded as income and debits as expenses in --category.
Entries already imported are skipped, so a file can be imported again safely.`,
		Example: `  cashheal import-ofx ~/Downloads/statement.qfx --category food
  cashheal import-ofx ~/Downloads/*.ofx --category fun --dry-run`,
		Args: cobra.MinimumNArgs(1),
		RunE: runImportOFX,
	}

	cmd.Flags().BoolP("dry-run", "d", false, "Preview import without saving")
	cmd.Flags().StringP("category", "c", "", "category key for expenses")
	cmd.Flags().Bool("no-progress", false, "Hide the progress bar")
	return cmd
}

// expandFiles resolves glob patterns, keeping literal paths that exist.
func expandFiles(patterns []string) ([]string, error) {
	var files []string
	for _, pattern := range patterns {
		matches, err := filepath.Glob(pattern)
		if err != nil {
			return nil, fmt.Errorf("invalid pattern %s: %w", pattern, err)
		}
		if len(matches) > 0 {
			files = append(files, matches...)
			continue
		}
		if _, err := os.Stat(pattern); err == nil {
			files = append(files, pattern)
		} else {
			slog.Warn("No files found matching pattern", "pattern", pattern)
		}
	}
	if len(files) == 0 {
		return nil, errors.New("no files found to import")
	}
	return files, nil
}

func parseStatement(cmd *cobra.Command, parser *ofx.Parser, path string) ([]ofx.Entry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	entries, err := parser.ParseFile(cmd.Context(), f)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", filepath.Base(path), err)
	}
	return entries, nil
}

func runImportOFX(cmd *cobra.Command, args []string) error {
	dryRun, _ := cmd.Flags().GetBool("dry-run")
	category, _ := cmd.Flags().GetString("category")
	noProgress, _ := cmd.Flags().GetBool("no-progress")

	files, err := expandFiles(args)
	if err != nil {
		return err
	}

	parser := ofx.NewParser()
	var entries []ofx.Entry
	for _, path := range files {
		parsed, err := parseStatement(cmd, parser, path)
		if err != nil {
			return err
		}
		slog.Info("Parsed statement", "file", filepath.Base(path), "entries", len(parsed))
		entries = append(entries, parsed...)
	}

	out := cmd.OutOrStdout()
	if len(entries) == 0 {
		fmt.Fprintln(out, cli.FormatWarning("No transactions found"))
		return nil
	}

	a, err := openApp(cmd.Context())
	if err != nil {
		return err
	}
	defer func() { _ = a.Close() }()

	interrupts := cli.NewInterruptHandler(out)
	ctx, stop := interrupts.HandleInterrupts(cmd.Context(), "Entries imported so far are kept; rerun the same command to finish.")
	defer stop()

	opts := ofx.ImportOptions{Category: category, DryRun: dryRun}
	if !noProgress {
		bar := cli.NewProgressBar(len(entries), out, "Importing entries...")
		opts.OnEntry = func(ofx.Entry) { _ = bar.Add(1) }
	}

	summary, err := ofx.NewImporter(a.recorder, a.kv).Import(ctx, entries, opts)
	if err != nil {
		return err
	}

	currency := a.cfg.Settings.Currency
	if dryRun {
		fmt.Fprintln(out, cli.FormatWarning("Dry run: nothing was recorded"))
	}
	fmt.Fprintln(out, cli.FormatSuccess(fmt.Sprintf("%d income (%s), %d expenses (%s), %d already imported",
		summary.Income, i18n.FormatCurrency(summary.IncomeTotal, currency),
		summary.Expenses, i18n.FormatCurrency(summary.ExpenseTotal, currency),
		summary.Duplicates)))
	return nil
}
