package cmd

import (
	"fmt"

	"github.com/theirongolddev/wealthview/internal/cli"
	"github.com/theirongolddev/wealthview/internal/model"

	"github.com/spf13/cobra"
)

var projectionCmd = &cobra.Command{
	Use:     "projection",
	Aliases: []string{"proj"},
	Short:   "Combined actual and projected values",
	RunE:    runProjection,
}

func init() {
	rootCmd.AddCommand(projectionCmd)
}

func runProjection(_ *cobra.Command, _ []string) error {
	report, err := loadReport()
	if err != nil {
		return err
	}

	fmt.Println()
	fmt.Println(cli.RenderTitle(fmt.Sprintf("PROJECTION  %s", report.Series)))
	fmt.Println()

	maxVal := 0.0
	for _, p := range report.Points {
		if v := p.Value.InexactFloat64(); v > maxVal {
			maxVal = v
		}
	}

	fmt.Printf("  %-10s  %14s  %-9s\n", "Date", "Value", "Category")
	for _, p := range report.Points {
		projected := p.Category == model.CategoryProjected
		line := fmt.Sprintf("  %-10s  %14s  %-9s", cli.FormatMonth(p.Date), cli.FormatMoney(p.Value.Round(2)), p.Category)
		if projected {
			line = cli.Projected(line)
		}
		fmt.Printf("%s  %s\n", line, cli.RenderValueBar(p.Value.InexactFloat64(), maxVal, 30, projected))
	}

	fmt.Printf("\n  %s\n", cli.Muted(fmt.Sprintf("Average monthly change over the last window: %s",
		cli.FormatMoneyDelta(report.AverageDelta.Round(2)))))
	return nil
}
