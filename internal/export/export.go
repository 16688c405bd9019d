// Package export serializes a report's combined series for download.
package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/theirongolddev/wealthview/internal/model"
)

// Format selects the export encoding.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatJSON Format = "json"
)

// ParseFormat accepts "csv" or "json" in any case.
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(s))) {
	case FormatCSV, "":
		return FormatCSV, nil
	case FormatJSON:
		return FormatJSON, nil
	}
	return "", fmt.Errorf("unknown export format %q (want csv or json)", s)
}

// Header is the first row of every CSV export.
var Header = []string{"date", "value", "category"}

// WriteCSV writes points as date,value,category rows. Values are fixed to two
// decimal places.
func WriteCSV(w io.Writer, points []model.Point) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Header); err != nil {
		return err
	}
	for _, p := range points {
		row := []string{
			p.Date.Format("2006-01-02"),
			p.Value.StringFixed(2),
			string(p.Category),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteJSON writes the full report as indented JSON.
func WriteJSON(w io.Writer, report model.Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(report)
}

// Write encodes report in the given format.
func Write(w io.Writer, format Format, report model.Report) error {
	switch format {
	case FormatCSV:
		return WriteCSV(w, report.Points)
	case FormatJSON:
		return WriteJSON(w, report)
	}
	return fmt.Errorf("unknown export format %q", format)
}

// ToFile writes the report to path, creating parent directories. The file is
// written to a temp file first and renamed into place.
func ToFile(path string, format Format, report model.Report) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return fmt.Errorf("creating export dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmp.Name()
	defer func() { _ = os.Remove(tmpPath) }()

	if err := Write(tmp, format, report); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("writing %s: %w", format, err)
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmpPath, 0o644); err != nil { //nolint:gosec // export is meant to be shared
		return err
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("renaming export: %w", err)
	}
	return nil
}

// DefaultFileName returns "<series>-projection.<ext>".
func DefaultFileName(series string, format Format) string {
	name := strings.ToLower(strings.TrimSpace(series))
	if name == "" {
		name = "wealth"
	}
	name = strings.ReplaceAll(name, " ", "-")
	return name + "-projection." + string(format)
}
