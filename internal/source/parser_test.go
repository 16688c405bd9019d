package source

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/theirongolddev/wealthview/internal/model"
)

// writeSeries creates a temp series file and returns a DiscoveredFile for it.
func writeSeries(t *testing.T, name string, lines ...string) DiscoveredFile {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(strings.Join(lines, "\n")+"\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	format, _ := FormatForExt(filepath.Ext(name))
	return DiscoveredFile{
		Path:   path,
		Name:   strings.TrimSuffix(name, filepath.Ext(name)),
		Format: format,
	}
}

func month(y int, m time.Month) time.Time {
	return time.Date(y, m, 1, 0, 0, 0, 0, time.UTC)
}

func TestParseFile_CSVWithHeader(t *testing.T) {
	df := writeSeries(t, "savings.csv",
		"date,value",
		"2024-01-01,100.50",
		"2024-02-01,110",
		"2024-03-01,99.25",
	)

	result := ParseFile(df)
	if result.Err != nil {
		t.Fatalf("unexpected error: %v", result.Err)
	}

	s := result.Series
	if s.Name != "savings" {
		t.Errorf("Name = %q, want savings", s.Name)
	}
	if s.Source != df.Path {
		t.Errorf("Source = %q, want %q", s.Source, df.Path)
	}
	if s.Len() != 3 {
		t.Fatalf("Len = %d, want 3", s.Len())
	}
	if !s.Observations[0].Value.Equal(decimal.RequireFromString("100.50")) {
		t.Errorf("first value = %s, want 100.50", s.Observations[0].Value)
	}
	if !s.Observations[2].Date.Equal(month(2024, time.March)) {
		t.Errorf("last date = %v, want 2024-03-01", s.Observations[2].Date)
	}
}

func TestParseFile_CSVNamedValueColumn(t *testing.T) {
	df := writeSeries(t, "accounts.csv",
		"note,date,balance",
		"opening,2024-01-15,10",
		",2024-02-01,20",
	)

	result := ParseFile(df)
	if result.Err != nil {
		t.Fatalf("unexpected error: %v", result.Err)
	}
	obs := result.Series.Observations
	if len(obs) != 2 {
		t.Fatalf("got %d observations, want 2", len(obs))
	}
	if !obs[0].Date.Equal(month(2024, time.January)) {
		t.Errorf("date not normalized to first of month: %v", obs[0].Date)
	}
	if !obs[1].Value.Equal(decimal.NewFromInt(20)) {
		t.Errorf("value = %s, want 20", obs[1].Value)
	}
}

func TestParseFile_CSVWithoutHeader(t *testing.T) {
	df := writeSeries(t, "bare.csv",
		"2024-01,1",
		"2024-02,2",
	)

	result := ParseFile(df)
	if result.Err != nil {
		t.Fatalf("unexpected error: %v", result.Err)
	}
	if result.Series.Len() != 2 {
		t.Errorf("Len = %d, want 2", result.Series.Len())
	}
}

func TestParseFile_CSVMalformedDateReportsLine(t *testing.T) {
	df := writeSeries(t, "bad.csv",
		"date,value",
		"2024-01-01,1",
		"2024-13-01,2",
	)

	result := ParseFile(df)
	var mde *model.MalformedDateError
	if !errors.As(result.Err, &mde) {
		t.Fatalf("expected MalformedDateError, got %v", result.Err)
	}
	if mde.Line != 3 {
		t.Errorf("Line = %d, want 3", mde.Line)
	}
	if mde.Input != "2024-13-01" {
		t.Errorf("Input = %q, want 2024-13-01", mde.Input)
	}
}

func TestParseFile_JSONDocument(t *testing.T) {
	df := writeSeries(t, "brokerage.json",
		`{"name": "Brokerage", "observations": [`,
		`  {"date": "2024-01-01", "value": 1500.25},`,
		`  {"date": "2024-02-01", "value": "1600.75"}`,
		`]}`,
	)

	result := ParseFile(df)
	if result.Err != nil {
		t.Fatalf("unexpected error: %v", result.Err)
	}
	if result.Series.Name != "Brokerage" {
		t.Errorf("Name = %q, want Brokerage (declared name wins)", result.Series.Name)
	}
	if !result.Series.Observations[0].Value.Equal(decimal.RequireFromString("1500.25")) {
		t.Errorf("value = %s, want 1500.25", result.Series.Observations[0].Value)
	}
	if !result.Series.Observations[1].Value.Equal(decimal.RequireFromString("1600.75")) {
		t.Errorf("quoted value = %s, want 1600.75", result.Series.Observations[1].Value)
	}
}

func TestParseFile_JSONArray(t *testing.T) {
	df := writeSeries(t, "list.json",
		`[{"date": "2024-01", "value": 1}, {"date": "2024-02", "value": 2}]`,
	)

	result := ParseFile(df)
	if result.Err != nil {
		t.Fatalf("unexpected error: %v", result.Err)
	}
	if result.Series.Name != "list" {
		t.Errorf("Name = %q, want list (file stem)", result.Series.Name)
	}
	if result.Series.Len() != 2 {
		t.Errorf("Len = %d, want 2", result.Series.Len())
	}
}

func TestParseFile_YAML(t *testing.T) {
	tests := []struct {
		name  string
		lines []string
	}{
		{"document", []string{
			"name: pension",
			"observations:",
			"  - date: 2024-01-01",
			"    value: 10.10",
			"  - date: 2024-02-01",
			"    value: 20.20",
		}},
		{"sequence", []string{
			"- date: 2024-01-01",
			"  value: 10.10",
			"- date: 2024-02-01",
			"  value: 20.20",
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			df := writeSeries(t, "pension.yaml", tt.lines...)
			result := ParseFile(df)
			if result.Err != nil {
				t.Fatalf("unexpected error: %v", result.Err)
			}
			if result.Series.Name != "pension" {
				t.Errorf("Name = %q, want pension", result.Series.Name)
			}
			obs := result.Series.Observations
			if len(obs) != 2 {
				t.Fatalf("got %d observations, want 2", len(obs))
			}
			if !obs[1].Value.Equal(decimal.RequireFromString("20.20")) {
				t.Errorf("value = %s, want 20.20", obs[1].Value)
			}
		})
	}
}

func TestParse_Rejects(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr error
	}{
		{"negative", "date,value\n2024-01-01,-5\n", ErrNegativeValue},
		{"duplicate month", "date,value\n2024-01-01,1\n2024-01-15,2\n", ErrUnordered},
		{"descending", "date,value\n2024-02-01,1\n2024-01-01,2\n", ErrUnordered},
		{"not a number", "date,value\n2024-01-01,abc\n", ErrInvalidValue},
		{"empty", "date,value\n", ErrEmpty},
		{"header without value column", "date\n2022-01-01\n", ErrMissingColumn},
		{"header without date column", "value\n100\n", ErrMissingColumn},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(strings.NewReader(tt.input), FormatCSV, "x")
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("err = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestParse_UnsupportedFormat(t *testing.T) {
	if _, err := Parse(strings.NewReader(""), Format("xml"), "x"); err == nil {
		t.Error("expected error for unsupported format")
	}
}

func TestParseFile_Missing(t *testing.T) {
	result := ParseFile(DiscoveredFile{Path: filepath.Join(t.TempDir(), "nope.csv"), Format: FormatCSV})
	if result.Err == nil {
		t.Error("expected error for missing file")
	}
}

func TestDefault(t *testing.T) {
	s, err := Default()
	if err != nil {
		t.Fatalf("Default: %v", err)
	}
	if s.Name != DefaultSeriesName || s.Source != EmbeddedSource {
		t.Errorf("got name=%q source=%q", s.Name, s.Source)
	}
	if s.Len() != 34 {
		t.Errorf("Len = %d, want 34", s.Len())
	}
	first := s.Observations[0]
	if !first.Date.Equal(month(2022, time.January)) || !first.Value.Equal(decimal.RequireFromString("6433.58")) {
		t.Errorf("first = %v %s", first.Date, first.Value)
	}
	last, _ := s.Last()
	if !last.Date.Equal(month(2024, time.October)) || !last.Value.Equal(decimal.RequireFromString("98554.79")) {
		t.Errorf("last = %v %s", last.Date, last.Value)
	}
}
