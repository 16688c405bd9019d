package export

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/theirongolddev/wealthview/internal/model"
)

func samplePoints() []model.Point {
	return []model.Point{
		{Date: time.Date(2024, 9, 1, 0, 0, 0, 0, time.UTC), Value: decimal.RequireFromString("90446.03"), Category: model.CategoryActual},
		{Date: time.Date(2024, 10, 1, 0, 0, 0, 0, time.UTC), Value: decimal.RequireFromString("98554.79"), Category: model.CategoryActual},
		{Date: time.Date(2024, 11, 1, 0, 0, 0, 0, time.UTC), Value: decimal.RequireFromString("102330.618"), Category: model.CategoryProjected},
	}
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteCSV(&buf, samplePoints()); err != nil {
		t.Fatalf("WriteCSV: %v", err)
	}

	want := "date,value,category\n" +
		"2024-09-01,90446.03,Actual\n" +
		"2024-10-01,98554.79,Actual\n" +
		"2024-11-01,102330.62,Projected\n"
	if buf.String() != want {
		t.Errorf("WriteCSV output:\n%s\nwant:\n%s", buf.String(), want)
	}
}

func TestWriteCSV_RoundTrip(t *testing.T) {
	points := samplePoints()
	var buf bytes.Buffer
	if err := WriteCSV(&buf, points); err != nil {
		t.Fatal(err)
	}

	rows, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("reading back: %v", err)
	}
	if len(rows) != len(points)+1 {
		t.Fatalf("got %d rows, want %d", len(rows), len(points)+1)
	}
	for i, p := range points {
		if rows[i+1][2] != string(p.Category) {
			t.Errorf("row %d category = %q, want %q", i+1, rows[i+1][2], p.Category)
		}
	}
}

func TestWriteJSON(t *testing.T) {
	r := model.Report{Series: "wealth", Points: samplePoints()}
	var buf bytes.Buffer
	if err := WriteJSON(&buf, r); err != nil {
		t.Fatalf("WriteJSON: %v", err)
	}

	var decoded struct {
		Series string `json:"series"`
		Points []struct {
			Category string `json:"category"`
		} `json:"points"`
	}
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("decoding: %v", err)
	}
	if decoded.Series != "wealth" || len(decoded.Points) != 3 || decoded.Points[2].Category != "Projected" {
		t.Errorf("decoded = %+v", decoded)
	}
}

func TestToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "wealth-projection.csv")
	r := model.Report{Points: samplePoints()}

	if err := ToFile(path, FormatCSV, r); err != nil {
		t.Fatalf("ToFile: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(string(data), "date,value,category\n") {
		t.Errorf("unexpected content: %q", data)
	}

	entries, _ := os.ReadDir(filepath.Dir(path))
	if len(entries) != 1 {
		t.Errorf("temp files left behind: %v", entries)
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{"", FormatCSV, false},
		{"CSV", FormatCSV, false},
		{" json ", FormatJSON, false},
		{"xlsx", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseFormat(tt.in)
			if (err != nil) != tt.wantErr || got != tt.want {
				t.Errorf("ParseFormat(%q) = %q, %v", tt.in, got, err)
			}
		})
	}
}

func TestDefaultFileName(t *testing.T) {
	if got := DefaultFileName("My Savings", FormatJSON); got != "my-savings-projection.json" {
		t.Errorf("DefaultFileName = %q", got)
	}
	if got := DefaultFileName("", FormatCSV); got != "wealth-projection.csv" {
		t.Errorf("DefaultFileName empty = %q", got)
	}
}
