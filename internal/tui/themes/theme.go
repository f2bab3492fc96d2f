// Package themes holds the lipgloss styles used by the advisor wizard.
package themes

import "github.com/charmbracelet/lipgloss"

// Theme defines the visual style for the TUI.
type Theme struct {
	Title       lipgloss.Style
	Subtitle    lipgloss.Style
	Prompt      lipgloss.Style
	Normal      lipgloss.Style
	Selected    lipgloss.Style
	Label       lipgloss.Style
	Value       lipgloss.Style
	Highlighted lipgloss.Style
	Help        lipgloss.Style
	StatusError lipgloss.Style
	BorderedBox lipgloss.Style
	Primary     lipgloss.Color
	Muted       lipgloss.Color
	Error       lipgloss.Color
	Success     lipgloss.Color
}

// Default is the default theme, drawn from the category palette.
var Default = Theme{
	Primary: lipgloss.Color("#10b981"),
	Success: lipgloss.Color("#22c55e"),
	Error:   lipgloss.Color("#ef4444"),
	Muted:   lipgloss.Color("#737373"),

	Title: lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#10b981")).
		MarginBottom(1),
	Subtitle: lipgloss.NewStyle().
		Foreground(lipgloss.Color("#a3a3a3")).
		MarginBottom(1),
	Prompt: lipgloss.NewStyle().
		Bold(true),
	Normal: lipgloss.NewStyle(),
	Selected: lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#10b981")),
	Label: lipgloss.NewStyle().
		Foreground(lipgloss.Color("#a3a3a3")).
		Width(30),
	Value: lipgloss.NewStyle().
		Bold(true),
	Highlighted: lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#22c55e")),
	Help: lipgloss.NewStyle().
		Foreground(lipgloss.Color("#737373")).
		MarginTop(1),
	StatusError: lipgloss.NewStyle().
		Foreground(lipgloss.Color("#ef4444")),
	BorderedBox: lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#404040")).
		Padding(1, 2),
}
