// Package cli provides styled terminal output for cashheal using lipgloss.
package cli

import (
	"github.com/charmbracelet/lipgloss"
)

// Palette shared by messages, tables and progress bars.
var (
	PrimaryColor = lipgloss.Color("#10b981")
	ErrorColor   = lipgloss.Color("#ef4444")
	SubtleColor  = lipgloss.Color("#737373")

	borderColor = lipgloss.Color("#404040")
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(PrimaryColor)
	incomeStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#22c55e"))
	expenseStyle = lipgloss.NewStyle().Foreground(ErrorColor)
	warningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#f59e0b"))
	infoStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#3b82f6"))
	boldStyle    = lipgloss.NewStyle().Bold(true)
	promptStyle  = titleStyle

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(borderColor).
			Padding(1, 2)

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			BorderStyle(lipgloss.NormalBorder()).
			BorderBottom(true).
			BorderForeground(borderColor)

	cellStyle = lipgloss.NewStyle().PaddingRight(2)

	// SubtleStyle dims secondary text such as timestamps.
	SubtleStyle = lipgloss.NewStyle().Foreground(SubtleColor)
)

const (
	successIcon = "✓"
	errorIcon   = "✗"
	warningIcon = "⚠️"
	infoIcon    = "ℹ️"
	walletIcon  = "💶"

	// ChartIcon prefixes the path of a written chart.
	ChartIcon = "📊"
)

func withIcon(style lipgloss.Style, icon, message string) string {
	return style.Render(icon + " " + message)
}

// FormatSuccess formats a success message.
func FormatSuccess(message string) string { return withIcon(incomeStyle, successIcon, message) }

// FormatError formats an error message.
func FormatError(message string) string { return withIcon(expenseStyle, errorIcon, message) }

// FormatWarning formats a warning.
func FormatWarning(message string) string { return withIcon(warningStyle, warningIcon, message) }

// FormatInfo formats an informational message.
func FormatInfo(message string) string { return withIcon(infoStyle, infoIcon, message) }

// FormatTitle formats a section title.
func FormatTitle(title string) string {
	return withIcon(titleStyle.MarginBottom(1), walletIcon, title)
}

// FormatPrompt formats a question awaiting an answer.
func FormatPrompt(prompt string) string {
	return promptStyle.Render(prompt + " → ")
}

func renderBox(title, content string) string {
	return boxStyle.Render(lipgloss.JoinVertical(lipgloss.Left, titleStyle.Render(title), content))
}
