// Package components provides small lipgloss rendering helpers shared by
// hookman's interactive views.
package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/hooktools/hookman/tui/theme"
)

// RenderHeader creates a consistent header line, optionally with a muted
// subtitle underneath.
func RenderHeader(title string, subtitle ...string) string {
	t := theme.DefaultTheme

	header := t.Header.Render(fmt.Sprintf("%s %s", theme.IconHook, title))

	if len(subtitle) > 0 && subtitle[0] != "" {
		sub := t.Muted.Render(subtitle[0])
		return lipgloss.JoinVertical(lipgloss.Left, header, sub)
	}

	return header
}

// RenderFooter creates a centered footer under a top border, used for key
// hints.
func RenderFooter(content string, width int) string {
	t := theme.DefaultTheme

	footerStyle := lipgloss.NewStyle().
		Foreground(t.Colors.MutedText).
		Width(width).
		Align(lipgloss.Center).
		BorderStyle(lipgloss.NormalBorder()).
		BorderTop(true).
		BorderForeground(t.Colors.Border).
		MarginTop(1)

	return footerStyle.Render(content)
}

// RenderStatusBar lays out three segments across the given width. When the
// segments do not fit, only the left one is shown.
func RenderStatusBar(left, center, right string, width int) string {
	t := theme.DefaultTheme

	total := lipgloss.Width(left) + lipgloss.Width(center) + lipgloss.Width(right)
	if total >= width {
		return left
	}

	remaining := width - total
	leftGap := remaining / 2
	rightGap := remaining - leftGap

	bar := left + strings.Repeat(" ", leftGap) + center + strings.Repeat(" ", rightGap) + right

	return lipgloss.NewStyle().
		Width(width).
		Background(t.Colors.SubtleBackground).
		Foreground(t.Colors.LightText).
		Render(bar)
}

// RenderDivider creates a horizontal divider
func RenderDivider(width int) string {
	return lipgloss.NewStyle().
		Foreground(theme.DefaultTheme.Colors.Border).
		Render(strings.Repeat("─", width))
}

// RenderKeyValue creates a key-value display
func RenderKeyValue(key, value string) string {
	t := theme.DefaultTheme
	return fmt.Sprintf("%s %s", t.Muted.Render(key+":"), value)
}
