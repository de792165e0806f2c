package tui

import "github.com/charmbracelet/lipgloss"

var (
	colorAccent  = lipgloss.Color("#a855f7")
	colorSuccess = lipgloss.Color("#16a34a")
	colorDanger  = lipgloss.Color("#dc2626")
	colorDimmed  = lipgloss.Color("#6b7280")
	colorBright  = lipgloss.Color("#f9fafb")
	colorBorder  = lipgloss.Color("#4b5563")
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorAccent)

	questionStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorBright).
			MarginBottom(1)

	cursorStyle = lipgloss.NewStyle().
			Foreground(colorAccent).
			Bold(true)

	dimStyle = lipgloss.NewStyle().Foreground(colorDimmed)

	successStyle = lipgloss.NewStyle().
			Foreground(colorSuccess).
			Bold(true)

	dangerStyle = lipgloss.NewStyle().Foreground(colorDanger)

	panelStyle = lipgloss.NewStyle().
			Padding(1, 2).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(colorBorder)
)
