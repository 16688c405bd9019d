package cmd

import (
	"fmt"

	"github.com/theirongolddev/wealthview/internal/cli"

	"github.com/spf13/cobra"
)

var flagGrowthAll bool

var growthCmd = &cobra.Command{
	Use:   "growth",
	Short: "Month-over-month growth rates",
	RunE:  runGrowth,
}

func init() {
	growthCmd.Flags().BoolVar(&flagGrowthAll, "all", false, "Show every month instead of the most recent")
	rootCmd.AddCommand(growthCmd)
}

func runGrowth(_ *cobra.Command, _ []string) error {
	report, err := loadReport()
	if err != nil {
		return err
	}

	rates := report.RecentGrowth
	title := fmt.Sprintf("GROWTH  %s  last %d months", report.Series, len(rates))
	if flagGrowthAll {
		rates = report.Growth
		title = fmt.Sprintf("GROWTH  %s  all months", report.Series)
	}

	fmt.Println()
	fmt.Println(cli.RenderTitle(title))
	fmt.Println()

	if len(rates) == 0 {
		fmt.Println("  Not enough data for growth rates.")
		return nil
	}

	maxAbs := 0.0
	for _, g := range rates {
		v := g.PercentChange.InexactFloat64()
		if v < 0 {
			v = -v
		}
		if v > maxAbs {
			maxAbs = v
		}
	}

	for _, g := range rates {
		v := g.PercentChange.InexactFloat64()
		pct := fmt.Sprintf("%8s", cli.FormatPercentChange(g.PercentChange))
		fmt.Printf("  %-8s  %s  %s\n",
			cli.FormatMonthShort(g.Date),
			cli.Signed(pct, v),
			cli.RenderSignedBar(v, maxAbs, 20))
	}
	return nil
}
