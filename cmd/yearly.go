package cmd

import (
	"fmt"
	"strconv"

	"github.com/theirongolddev/wealthview/internal/cli"

	"github.com/spf13/cobra"
)

var yearlyCmd = &cobra.Command{
	Use:   "yearly",
	Short: "Yearly average, range and growth",
	RunE:  runYearly,
}

func init() {
	rootCmd.AddCommand(yearlyCmd)
}

func runYearly(_ *cobra.Command, _ []string) error {
	report, err := loadReport()
	if err != nil {
		return err
	}

	fmt.Println()
	fmt.Println(cli.RenderTitle(fmt.Sprintf("YEARLY  %s", report.Series)))
	fmt.Println()

	rows := make([][]string, 0, len(report.Yearly))
	for _, y := range report.Yearly {
		rows = append(rows, []string{
			strconv.Itoa(y.Year),
			cli.FormatNumber(int64(y.Count)),
			cli.FormatMoney(y.Average.Round(2)),
			cli.FormatMoney(y.Minimum.Round(2)),
			cli.FormatMoney(y.Maximum.Round(2)),
			cli.FormatMoneyDelta(y.Growth.Round(2)),
		})
	}

	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"Year", "Months", "Average", "Min", "Max", "Growth"},
		Rows:    rows,
	}))
	return nil
}
