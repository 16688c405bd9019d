package cmd

import (
	"fmt"

	"github.com/theirongolddev/wealthview/internal/cli"
	"github.com/theirongolddev/wealthview/internal/source"

	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"series"},
	Short:   "List the series found in the data directory",
	RunE:    runList,
}

func init() {
	rootCmd.AddCommand(listCmd)
}

func runList(_ *cobra.Command, _ []string) error {
	result, err := loadData()
	if err != nil {
		return err
	}

	series := result.Series
	if len(series) == 0 {
		def, err := source.Default()
		if err != nil {
			return err
		}
		fmt.Printf("\n  No series files in %s.\n", flagDataDir)
		fmt.Println("  Commands fall back to the built-in sample:")
		series = append(series, def)
	}

	fmt.Println()
	fmt.Println(cli.RenderTitle("SERIES"))
	fmt.Println()

	rows := make([][]string, 0, len(series))
	for _, s := range series {
		span := "-"
		if s.Len() > 0 {
			span = fmt.Sprintf("%s to %s",
				cli.FormatMonth(s.Observations[0].Date),
				cli.FormatMonth(s.Observations[s.Len()-1].Date))
		}
		rows = append(rows, []string{s.Name, cli.FormatNumber(int64(s.Len())), span, s.Source})
	}

	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"Name", "Months", "Range", "Source"},
		Rows:    rows,
	}))
	return nil
}
