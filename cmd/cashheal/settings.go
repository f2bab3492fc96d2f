package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/Veraticus/cashheal/internal/cli"
	"github.com/Veraticus/cashheal/internal/config"
	"github.com/Veraticus/cashheal/internal/i18n"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func settingsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Show or change the display currency and language",
		Example: `  cashheal settings
  cashheal settings --currency USD --language en`,
		Args: cobra.NoArgs,
		RunE: runSettings,
	}

	cmd.Flags().String("currency", "", "display currency ("+strings.Join(config.SupportedCurrencies, ", ")+")")
	cmd.Flags().String("language", "", "display language ("+strings.Join(config.SupportedLanguages, ", ")+")")
	return cmd
}

var sampleAmount = decimal.RequireFromString("1234.5")

func runSettings(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(viper.GetViper())
	if err != nil {
		return err
	}
	settings := cfg.Settings

	changed := false
	if cmd.Flags().Changed("currency") {
		settings.Currency, _ = cmd.Flags().GetString("currency")
		changed = true
	}
	if cmd.Flags().Changed("language") {
		settings.Language, _ = cmd.Flags().GetString("language")
		changed = true
	}

	out := cmd.OutOrStdout()
	if changed {
		settings = settings.Normalize()
		if err := settings.Validate(); err != nil {
			return err
		}
		path, err := writeSettings(settings)
		if err != nil {
			return err
		}
		fmt.Fprintln(out, cli.FormatSuccess("Saved to "+path))
	}

	t := i18n.NewTranslator(settings.Language)
	fmt.Fprintf(out, "%s: %s (%s)\n", t.T("settings.currency"), settings.Currency,
		i18n.FormatCurrency(sampleAmount, settings.Currency))
	fmt.Fprintf(out, "%s: %s\n", t.T("settings.language"), settings.Language)
	return nil
}

// writeSettings stores settings in the config file in use, creating the
// default one when there is none.
func writeSettings(s config.Settings) (string, error) {
	viper.Set("display.currency", s.Currency)
	viper.Set("display.language", s.Language)

	path := viper.ConfigFileUsed()
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		path = filepath.Join(home, ".config", "cashheal", "config.yaml")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return "", fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := viper.WriteConfigAs(path); err != nil {
		return "", fmt.Errorf("failed to write config: %w", err)
	}
	return path, nil
}
