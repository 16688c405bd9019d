package components

import (
	"fmt"
	"strings"

	"github.com/theirongolddev/wealthview/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

// RenderStatusBar renders the bottom status bar.
// series names the series on screen; dataAge is the last load duration.
func RenderStatusBar(width int, series, dataAge string, refreshing, autoRefresh bool) string {
	t := theme.Active

	keyStyle := lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface).Bold(true)
	textStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	dimStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)
	liveStyle := lipgloss.NewStyle().Foreground(t.Green).Background(t.Surface)

	left := textStyle.Render(" ") +
		keyStyle.Render("?") + textStyle.Render(" help  ") +
		keyStyle.Render("n") + textStyle.Render(" series  ") +
		keyStyle.Render("q") + textStyle.Render(" quit")

	var right string
	if series != "" {
		right += dimStyle.Render("series ") + textStyle.Render(series) + dimStyle.Render("  ")
	}
	switch {
	case refreshing:
		right += liveStyle.Render("↻ refreshing") + dimStyle.Render("  ")
	case autoRefresh:
		right += liveStyle.Render("● auto") + dimStyle.Render("  ")
	}
	if dataAge != "" {
		right += dimStyle.Render(fmt.Sprintf("loaded in %s ", dataAge))
	}

	padding := width - lipgloss.Width(left) - lipgloss.Width(right)
	if padding < 0 {
		padding = 0
	}

	return left + textStyle.Render(strings.Repeat(" ", padding)) + right
}
