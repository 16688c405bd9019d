package tui

import (
	"fmt"
	"strings"

	"github.com/theirongolddev/wealthview/internal/cli"
	"github.com/theirongolddev/wealthview/internal/model"
	"github.com/theirongolddev/wealthview/internal/tui/components"
	"github.com/theirongolddev/wealthview/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

// dataTableOverhead is the card border, title, header and footer lines.
const dataTableOverhead = 6

func (a App) renderDataTab(cw, h int) string {
	t := theme.Active
	points := a.report.Points

	headerStyle := lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface).Bold(true)
	rowStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	projStyle := lipgloss.NewStyle().Foreground(t.Projected()).Background(t.Surface)
	dimStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)
	gainStyle := lipgloss.NewStyle().Foreground(t.Gain()).Background(t.Surface)
	lossStyle := lipgloss.NewStyle().Foreground(t.Loss()).Background(t.Surface)
	markerStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.Surface)

	const (
		dateW   = 12
		valueW  = 16
		changeW = 14
		catW    = 10
	)
	innerW := components.CardInnerWidth(cw)

	visible := h - dataTableOverhead
	if visible < 1 {
		visible = 1
	}
	start := a.dataScroll
	if start > len(points)-visible {
		start = max(0, len(points)-visible)
	}
	end := min(len(points), start+visible)

	var body strings.Builder
	body.WriteString(headerStyle.Render(fmt.Sprintf("  %-*s %*s %*s  %-*s",
		dateW, "Date", valueW, "Value", changeW, "Change", catW, "Category")))
	body.WriteString("\n")

	for i := start; i < end; i++ {
		p := points[i]
		style := rowStyle
		if p.Category == model.CategoryProjected {
			style = projStyle
		}

		marker := "  "
		if i == a.dataScroll {
			marker = "▸ "
		}
		body.WriteString(markerStyle.Render(marker))
		body.WriteString(style.Render(fmt.Sprintf("%-*s %*s ",
			dateW, cli.FormatMonth(p.Date), valueW, cli.FormatMoney(p.Value.Round(2)))))

		change := ""
		changeStyle := dimStyle
		if i > 0 {
			d := p.Value.Sub(points[i-1].Value)
			change = cli.FormatMoneyDelta(d.Round(2))
			changeStyle = signedStyle(d, gainStyle, lossStyle)
		}
		body.WriteString(changeStyle.Render(fmt.Sprintf("%*s", changeW, change)))
		body.WriteString(style.Render(fmt.Sprintf("  %-*s", catW, truncStr(string(p.Category), catW))))
		body.WriteString("\n")
	}

	footer := fmt.Sprintf("rows %d-%d of %d  [j/k] scroll  [g/G] top/bottom  [e] export CSV", start+1, end, len(points))
	if len(points) == 0 {
		footer = "no data"
	}
	body.WriteString(dimStyle.Render(truncStr(footer, innerW)))

	title := fmt.Sprintf("Combined data · %s (%d actual, %d projected)",
		a.report.Series, len(a.report.Actual()), len(a.report.Projections()))
	return components.ContentCard(title, body.String(), cw)
}
