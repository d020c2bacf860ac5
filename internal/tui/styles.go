package tui

import (
	"github.com/charmbracelet/lipgloss"
)

// Colors
var (
	colorPrimary   = lipgloss.Color("#7C3AED")
	colorSecondary = lipgloss.Color("#10B981")
	colorAccent    = lipgloss.Color("#F59E0B")
	colorError     = lipgloss.Color("#EF4444")
	colorMuted     = lipgloss.Color("#6B7280")
)

// Styles
var (
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorPrimary)

	SubtitleStyle = lipgloss.NewStyle().
			Foreground(colorMuted).
			Italic(true)

	// Key/value tables
	KeyStyle = lipgloss.NewStyle().
			Foreground(colorSecondary).
			Bold(true)

	ValueStyle = lipgloss.NewStyle()

	NumberStyle = lipgloss.NewStyle().
			Foreground(colorAccent)

	BoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorMuted).
			Padding(0, 1)

	StatusOKStyle = lipgloss.NewStyle().
			Foreground(colorSecondary)

	StatusErrorStyle = lipgloss.NewStyle().
				Foreground(colorError)

	ErrorMessageStyle = lipgloss.NewStyle().
				Foreground(colorError).
				Bold(true)

	HelpStyle = lipgloss.NewStyle().
			Foreground(colorMuted)
)

// RenderTitle renders a heading
func RenderTitle(title string) string {
	return TitleStyle.Render(title)
}

// RenderError renders an error line
func RenderError(err string) string {
	return ErrorMessageStyle.Render("Error: " + err)
}

// RenderHelp renders help text
func RenderHelp(help string) string {
	return HelpStyle.Render(help)
}

// RenderStatus renders OK or FAIL
func RenderStatus(ok bool) string {
	if ok {
		return StatusOKStyle.Render("OK")
	}
	return StatusErrorStyle.Render("FAIL")
}
