package tui

import (
	"fmt"
	"strings"

	"github.com/theirongolddev/wealthview/internal/cli"
	"github.com/theirongolddev/wealthview/internal/tui/components"
	"github.com/theirongolddev/wealthview/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

func (a App) renderOverviewTab(cw int) string {
	t := theme.Active
	r := a.report
	var b strings.Builder

	// Row 1: headline cards
	cur := r.Headline.Current
	cards := []components.MetricCardData{
		{
			Label: "Current · " + cli.FormatMonthShort(cur.Date),
			Value: cli.FormatMoney(cur.Value),
			Delta: cli.FormatMoneyDelta(cur.Delta) + " vs prior month",
		},
	}
	for _, p := range r.Headline.Projected {
		cards = append(cards, components.MetricCardData{
			Label: "Projected · " + cli.FormatMonthShort(p.Date),
			Value: cli.FormatMoney(p.Value),
			Delta: cli.FormatMoneyDelta(p.Delta),
		})
	}
	cards = append(cards, components.MetricCardData{
		Label: "Avg monthly change",
		Value: cli.FormatMoneyDelta(r.AverageDelta),
		Delta: "over the last 6 months",
	})
	b.WriteString(components.MetricCardRow(cards, cw))
	b.WriteString("\n")

	// Row 2: actual + projected chart
	if len(r.Points) > 0 {
		vals := make([]float64, len(r.Points))
		for i, p := range r.Points {
			vals[i] = p.Value.InexactFloat64()
		}
		chartH := 12
		if a.isCompactLayout() {
			chartH = 8
		}

		legend := lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface).Render("■ actual") +
			lipgloss.NewStyle().Background(t.Surface).Render("  ") +
			lipgloss.NewStyle().Foreground(t.Projected()).Background(t.Surface).Render("■ projected")

		body := components.SeriesChart(vals, chartMonthLabels(r.Points), r.Observations,
			t.Blue, t.Projected(), components.CardInnerWidth(cw), chartH) + "\n" + legend
		b.WriteString(components.ContentCard(
			fmt.Sprintf("%s over time (%d months + %d projected)", r.Series, r.Observations, len(r.Points)-r.Observations),
			body,
			cw,
		))
		b.WriteString("\n")
	}

	// Row 3: recent growth + latest year
	halves := components.LayoutRow(cw, 2)

	var growthCard, yearCard string
	if len(r.RecentGrowth) > 0 {
		labels := make([]string, len(r.RecentGrowth))
		vals := make([]float64, len(r.RecentGrowth))
		for i, g := range r.RecentGrowth {
			labels[i] = cli.FormatMonthShort(g.Date)
			vals[i] = g.PercentChange.InexactFloat64()
		}
		w := halves[0]
		if a.isCompactLayout() {
			w = cw
		}
		growthCard = components.ContentCard("Recent monthly growth",
			components.DivergingBars(labels, vals, components.CardInnerWidth(w)), w)
	}

	if n := len(r.Yearly); n > 0 {
		y := r.Yearly[n-1]
		labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
		valueStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)

		rows := []struct{ label, value string }{
			{"Months observed", fmt.Sprintf("%d", y.Count)},
			{"Average", cli.FormatMoney(y.Average.Round(2))},
			{"Low", cli.FormatMoney(y.Minimum)},
			{"High", cli.FormatMoney(y.Maximum)},
		}
		var body strings.Builder
		for _, row := range rows {
			body.WriteString(labelStyle.Render(fmt.Sprintf("%-16s ", row.label)))
			body.WriteString(valueStyle.Render(row.value))
			body.WriteString("\n")
		}
		body.WriteString(labelStyle.Render(fmt.Sprintf("%-16s ", "Growth")))
		growthColor := t.Gain()
		if y.Growth.IsNegative() {
			growthColor = t.Loss()
		}
		body.WriteString(lipgloss.NewStyle().Foreground(growthColor).Background(t.Surface).Render(cli.FormatMoneyDelta(y.Growth)))

		w := halves[1]
		if a.isCompactLayout() {
			w = cw
		}
		yearCard = components.ContentCard(fmt.Sprintf("%d so far", y.Year), body.String(), w)
	}

	if a.isCompactLayout() {
		for _, c := range []string{growthCard, yearCard} {
			if c != "" {
				b.WriteString(c)
				b.WriteString("\n")
			}
		}
	} else {
		b.WriteString(components.CardRow([]string{growthCard, yearCard}))
	}

	return b.String()
}
