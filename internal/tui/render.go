package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/msto63/cta/pkg/tcllist"
)

// RenderDict renders a decoded attribute mapping as an aligned key/value
// table in engine order. Numeric values are highlighted.
func RenderDict(d *tcllist.Dict) string {
	if d == nil || d.Len() == 0 {
		return SubtitleStyle.Render("(no attributes)")
	}

	width := 0
	for _, key := range d.Keys() {
		if w := lipgloss.Width(key); w > width {
			width = w
		}
	}

	keyStyle := KeyStyle.Width(width + 2)
	lines := make([]string, 0, d.Len())
	d.Range(func(key string, value tcllist.Value) bool {
		style := ValueStyle
		if value.IsNumeric() {
			style = NumberStyle
		}
		lines = append(lines, lipgloss.JoinHorizontal(lipgloss.Top,
			keyStyle.Render(key),
			style.Render(value.String()),
		))
		return true
	})
	return strings.Join(lines, "\n")
}

// RenderBox renders a titled table inside a rounded border
func RenderBox(title, body string) string {
	return BoxStyle.Render(lipgloss.JoinVertical(lipgloss.Left, RenderTitle(title), body))
}
