package cmd

import (
	"fmt"

	"github.com/theirongolddev/wealthview/internal/cli"

	"github.com/spf13/cobra"
)

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Headline metrics and projections for a series",
	RunE:  runSummary,
}

func init() {
	rootCmd.AddCommand(summaryCmd)
}

func runSummary(_ *cobra.Command, _ []string) error {
	report, err := loadReport()
	if err != nil {
		return err
	}

	actual := report.Actual()
	first, last := actual[0], actual[len(actual)-1]
	cur := report.Headline.Current

	fmt.Println()
	fmt.Println(cli.RenderTitle(fmt.Sprintf("%s  %s", appConfig.General.Title, report.Series)))
	fmt.Println()

	rows := [][]string{
		{"Series", report.Series},
		{"Source", report.Source},
		{"Observations", cli.FormatNumber(int64(report.Observations))},
		{"Range", fmt.Sprintf("%s to %s", cli.FormatMonthShort(first.Date), cli.FormatMonthShort(last.Date))},
		{"---"},
		{"Current", cli.FormatMoney(cur.Value.Round(2))},
		{"Last month", cli.FormatMoneyDelta(cur.Delta.Round(2))},
		{"Avg monthly change", cli.FormatMoneyDelta(report.AverageDelta.Round(2))},
		{"---"},
	}
	for _, p := range report.Headline.Projected {
		rows = append(rows, []string{
			"Projected " + cli.FormatMonthShort(p.Date),
			fmt.Sprintf("%s  (%s)", cli.FormatMoney(p.Value.Round(2)), cli.FormatMoneyDelta(p.Delta.Round(2))),
		})
	}
	if n := len(report.Growth); n > 0 {
		rows = append(rows, []string{"---"})
		rows = append(rows, []string{"Latest growth", cli.FormatPercentChange(report.Growth[n-1].PercentChange)})
	}

	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"Metric", "Value"},
		Rows:    rows,
	}))

	values := make([]float64, len(report.Points))
	for i, p := range report.Points {
		values[i] = p.Value.InexactFloat64()
	}
	fmt.Printf("\n  %s\n", cli.RenderSparkline(values))
	fmt.Printf("  %s\n", cli.Muted(fmt.Sprintf("%d actual, %d projected", len(actual), len(report.Projections()))))
	return nil
}
