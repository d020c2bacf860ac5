// ============================================================================
// cta - Conformance Test Application front-end
// ============================================================================
//
// Package:     logviewer
// Description: Styles for the journal viewer
// Author:      Mike Stoffels
// Created:     2025-12-07
// License:     MIT
// ============================================================================

package logviewer

import (
	"github.com/charmbracelet/lipgloss"
)

// Color palette
var (
	// Primary colors
	ColorPrimary   = lipgloss.Color("#8B5CF6") // Violet
	ColorSecondary = lipgloss.Color("#06B6D4") // Cyan
	ColorSuccess   = lipgloss.Color("#10B981") // Emerald
	ColorWarning   = lipgloss.Color("#F59E0B") // Amber
	ColorError     = lipgloss.Color("#EF4444") // Red
	ColorMuted     = lipgloss.Color("#6B7280") // Gray
	ColorDimmed    = lipgloss.Color("#374151") // Dark Gray

	// Background colors
	ColorBgPanel = lipgloss.Color("#1E293B") // Slate 800

	// Text colors
	ColorText      = lipgloss.Color("#F8FAFC") // Slate 50
	ColorTextMuted = lipgloss.Color("#94A3B8") // Slate 400
	ColorTextDim   = lipgloss.Color("#64748B") // Slate 500

	// Outcome colors
	ColorOK     = lipgloss.Color("#10B981") // Emerald
	ColorFailed = lipgloss.Color("#DC2626") // Dark Red
)

// Logo/Header styles
var (
	LogoStyle = lipgloss.NewStyle().
			Foreground(ColorPrimary).
			Bold(true)
)

// Entry styles
var (
	EntryTimestampStyle = lipgloss.NewStyle().
				Foreground(ColorTextDim)

	EntryOperationStyle = lipgloss.NewStyle().
				Foreground(ColorSecondary).
				Bold(true)

	EntryCallStyle = lipgloss.NewStyle().
			Foreground(ColorText)

	EntryDetailStyle = lipgloss.NewStyle().
				Foreground(ColorTextMuted).
				PaddingLeft(11)

	EntryDurationStyle = lipgloss.NewStyle().
				Foreground(ColorTextDim)

	StatusOKBadgeStyle = lipgloss.NewStyle().
				Foreground(ColorOK).
				Bold(true)

	StatusFailedBadgeStyle = lipgloss.NewStyle().
				Foreground(ColorFailed).
				Background(lipgloss.Color("#450A0A")).
				Bold(true)
)

// Panel/Box styles
var (
	EntryPanelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorDimmed).
			Padding(0, 1)

	FilterBarStyle = lipgloss.NewStyle().
			Background(ColorBgPanel).
			Foreground(ColorText).
			Padding(0, 1)
)

// Status bar styles
var (
	StatusBarStyle = lipgloss.NewStyle().
			Background(ColorBgPanel).
			Foreground(ColorText).
			Padding(0, 1)

	StatusOnlineStyle = lipgloss.NewStyle().
				Foreground(ColorSuccess).
				Bold(true)

	StatusOfflineStyle = lipgloss.NewStyle().
				Foreground(ColorError).
				Bold(true)

	StatusPausedStyle = lipgloss.NewStyle().
				Foreground(ColorWarning).
				Bold(true)
)

// Help styles
var (
	HelpStyle = lipgloss.NewStyle().
			Foreground(ColorTextMuted).
			MarginTop(1)

	HelpKeyStyle = lipgloss.NewStyle().
			Foreground(ColorPrimary).
			Bold(true)

	HelpDescStyle = lipgloss.NewStyle().
			Foreground(ColorTextMuted)
)

// Filter badge styles
var (
	FilterActiveStyle = lipgloss.NewStyle().
				Foreground(ColorSuccess).
				Bold(true)

	FilterInactiveStyle = lipgloss.NewStyle().
				Foreground(ColorTextDim)
)

// Title panel style
var (
	TitlePanelStyle = lipgloss.NewStyle().
			Border(lipgloss.DoubleBorder()).
			BorderForeground(ColorPrimary).
			Padding(0, 2).
			MarginBottom(1)
)

// Logo
const Logo = "CTA Journal"

// RenderKeyHint renders a keyboard shortcut hint
func RenderKeyHint(key, description string) string {
	return HelpKeyStyle.Render(key) + " " + HelpDescStyle.Render(description)
}

// RenderStatusBadge renders the outcome of an entry
func RenderStatusBadge(failed bool) string {
	if failed {
		return StatusFailedBadgeStyle.Render("[FAIL]")
	}
	return StatusOKBadgeStyle.Render("[ OK ]")
}

// RenderFilterStatus renders a filter status indicator
func RenderFilterStatus(name string, active bool) string {
	if active {
		return FilterActiveStyle.Render(name)
	}
	return FilterInactiveStyle.Render(name)
}
