package main

import (
	"fmt"
	"os"
	"time"

	"github.com/Veraticus/cashheal/internal/charts"
	"github.com/Veraticus/cashheal/internal/cli"
	"github.com/spf13/cobra"
)

func chartCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "chart",
		Short: "Render a spending chart as PNG",
		Long: `Render spending per category (--kind categories) or spending against
each budget target (--kind status) to a PNG file.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			outPath, _ := cmd.Flags().GetString("out")
			kind, _ := cmd.Flags().GetString("kind")

			a, err := openApp(cmd.Context())
			if err != nil {
				return err
			}
			defer func() { _ = a.Close() }()

			gen := charts.NewGenerator(a.cfg.Settings.Currency, a.translator)

			var png []byte
			switch kind {
			case "categories":
				categories, err := a.storage.GetCategories(cmd.Context())
				if err != nil {
					return err
				}
				png, err = gen.CategoryPie(categories)
				if err != nil {
					return err
				}
			case "status":
				status, err := a.recorder.Status(cmd.Context(), a.plans, time.Now())
				if err != nil {
					return err
				}
				png, err = gen.PeriodBars(status)
				if err != nil {
					return err
				}
			default:
				return fmt.Errorf("unknown chart kind %q (use categories or status)", kind)
			}

			if err := os.WriteFile(outPath, png, 0o600); err != nil {
				return fmt.Errorf("failed to write chart: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess(cli.ChartIcon+" "+outPath))
			return nil
		},
	}

	cmd.Flags().StringP("out", "o", "cashheal-chart.png", "output file")
	cmd.Flags().String("kind", "categories", "chart kind (categories, status)")
	return cmd
}
