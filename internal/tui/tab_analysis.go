package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/theirongolddev/wealthview/internal/cli"
	"github.com/theirongolddev/wealthview/internal/model"
	"github.com/theirongolddev/wealthview/internal/tui/components"
	"github.com/theirongolddev/wealthview/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"
)

func (a App) renderAnalysisTab(cw int) string {
	t := theme.Active
	r := a.report
	var b strings.Builder

	headerStyle := lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface).Bold(true)
	rowStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	dimStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	gainStyle := lipgloss.NewStyle().Foreground(t.Gain()).Background(t.Surface)
	lossStyle := lipgloss.NewStyle().Foreground(t.Loss()).Background(t.Surface)

	// Yearly table
	const colW = 15
	var table strings.Builder
	table.WriteString(headerStyle.Render(fmt.Sprintf("%-6s %6s %*s %*s %*s %*s",
		"Year", "Months", colW, "Average", colW, "Minimum", colW, "Maximum", colW, "Growth")))
	table.WriteString("\n")
	table.WriteString(dimStyle.Render(strings.Repeat("─", 6+1+6+4*(colW+1))))
	table.WriteString("\n")
	for _, y := range r.Yearly {
		table.WriteString(rowStyle.Render(fmt.Sprintf("%-6d %6d %*s %*s %*s ",
			y.Year, y.Count,
			colW, cli.FormatMoney(y.Average.Round(2)),
			colW, cli.FormatMoney(y.Minimum),
			colW, cli.FormatMoney(y.Maximum))))
		style := gainStyle
		if y.Growth.IsNegative() {
			style = lossStyle
		}
		table.WriteString(style.Render(fmt.Sprintf("%*s", colW, cli.FormatMoneyDelta(y.Growth))))
		table.WriteString("\n")
	}
	b.WriteString(components.ContentCard("Yearly statistics", table.String(), cw))
	b.WriteString("\n")

	// Recent growth + share of growth by year
	halves := components.LayoutRow(cw, 2)
	leftW, rightW := halves[0], halves[1]
	if a.isCompactLayout() {
		leftW, rightW = cw, cw
	}

	var recentCard string
	if len(r.RecentGrowth) > 0 {
		labels := make([]string, len(r.RecentGrowth))
		vals := make([]float64, len(r.RecentGrowth))
		for i, g := range r.RecentGrowth {
			labels[i] = cli.FormatMonthShort(g.Date)
			vals[i] = g.PercentChange.InexactFloat64()
		}
		recentCard = components.ContentCard(
			fmt.Sprintf("Growth, last %d months", len(r.RecentGrowth)),
			components.DivergingBars(labels, vals, components.CardInnerWidth(leftW)),
			leftW,
		)
	}

	var shareCard string
	if shares := growthShares(r.Yearly); len(shares) > 0 {
		innerW := components.CardInnerWidth(rightW)
		barW := innerW - 6 - 6
		if barW < 4 {
			barW = 4
		}
		var body strings.Builder
		for i, s := range shares {
			body.WriteString(components.ShareBar(strconv.Itoa(r.Yearly[i].Year), s, 5, barW))
			if i < len(shares)-1 {
				body.WriteString("\n")
			}
		}
		shareCard = components.ContentCard("Share of total growth", body.String(), rightW)
	}

	if a.isCompactLayout() {
		for _, c := range []string{recentCard, shareCard} {
			if c != "" {
				b.WriteString(c)
				b.WriteString("\n")
			}
		}
	} else {
		b.WriteString(components.CardRow([]string{recentCard, shareCard}))
		b.WriteString("\n")
	}

	// Full growth history
	if len(r.Growth) > 0 {
		vals := make([]float64, len(r.Growth))
		best, worst := r.Growth[0], r.Growth[0]
		for i, g := range r.Growth {
			vals[i] = g.PercentChange.InexactFloat64()
			if g.PercentChange.GreaterThan(best.PercentChange) {
				best = g
			}
			if g.PercentChange.LessThan(worst.PercentChange) {
				worst = g
			}
		}
		body := components.Sparkline(vals, t.Accent) + "\n" +
			dimStyle.Render("best ") + gainStyle.Render(cli.FormatPercentChange(best.PercentChange)) +
			dimStyle.Render(" ("+cli.FormatMonthShort(best.Date)+")   worst ") +
			signedStyle(worst.PercentChange, gainStyle, lossStyle).Render(cli.FormatPercentChange(worst.PercentChange)) +
			dimStyle.Render(" ("+cli.FormatMonthShort(worst.Date)+")")
		b.WriteString(components.ContentCard(
			fmt.Sprintf("Monthly growth history (%d months)", len(r.Growth)),
			body, cw))
	}

	return b.String()
}

// growthShares returns each year's growth as a fraction of the summed
// positive growth. Years that lost value get a zero share.
func growthShares(years []model.YearlyStat) []float64 {
	total := decimal.Zero
	for _, y := range years {
		if y.Growth.IsPositive() {
			total = total.Add(y.Growth)
		}
	}
	if total.IsZero() {
		return nil
	}
	shares := make([]float64, len(years))
	for i, y := range years {
		if y.Growth.IsPositive() {
			shares[i] = y.Growth.Div(total).InexactFloat64()
		}
	}
	return shares
}

func signedStyle(d decimal.Decimal, gain, loss lipgloss.Style) lipgloss.Style {
	if d.IsNegative() {
		return loss
	}
	return gain
}
