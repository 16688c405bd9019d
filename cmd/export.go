package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/theirongolddev/wealthview/internal/export"

	"github.com/spf13/cobra"
)

var (
	flagExportFormat string
	flagExportOutput string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write the combined actual and projected series to CSV or JSON",
	RunE:  runExport,
}

func init() {
	exportCmd.Flags().StringVar(&flagExportFormat, "format", "", "Export format: csv or json (default from config)")
	exportCmd.Flags().StringVarP(&flagExportOutput, "output", "o", "", "Output path, or - for stdout")
	rootCmd.AddCommand(exportCmd)
}

func runExport(_ *cobra.Command, _ []string) error {
	name := flagExportFormat
	if name == "" {
		name = appConfig.Export.Format
	}
	format, err := export.ParseFormat(name)
	if err != nil {
		return err
	}

	report, err := loadReport()
	if err != nil {
		return err
	}

	if flagExportOutput == "-" {
		return export.Write(os.Stdout, format, report)
	}

	path := exportPath(flagExportOutput, appConfig.Export.Dir, report.Series, format)
	if err := export.ToFile(path, format, report); err != nil {
		return err
	}
	if !flagQuiet {
		fmt.Fprintf(os.Stderr, "  Wrote %d rows to %s\n", len(report.Points), path)
	}
	return nil
}

// exportPath resolves where an export lands: an explicit output wins,
// otherwise the default file name inside dir (or the working directory).
func exportPath(output, dir, series string, format export.Format) string {
	if output != "" {
		return output
	}
	if dir == "" {
		dir = "."
	}
	return filepath.Join(dir, export.DefaultFileName(series, format))
}
