// Package source discovers and parses monthly series files.
package source

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/theirongolddev/wealthview/internal/model"
)

var (
	// ErrNegativeValue is returned for observations below zero.
	ErrNegativeValue = errors.New("negative value")
	// ErrUnordered is returned when months are not strictly increasing.
	ErrUnordered = errors.New("observations not in strictly increasing month order")
	// ErrInvalidValue is returned for values that are not decimal numbers.
	ErrInvalidValue = errors.New("invalid value")
	// ErrEmpty is returned for files without any observation.
	ErrEmpty = errors.New("no observations")
	// ErrMissingColumn is returned when a CSV header lacks a date or value column.
	ErrMissingColumn = errors.New("missing column")
)

// Column names recognized in a CSV header for the value column, in priority order.
var valueColumns = []string{"value", "wealth", "amount", "balance"}

// ParseResult holds the output of parsing a single series file.
type ParseResult struct {
	Series model.Series
	Err    error
}

// ParseFile reads and validates a series file. The series is named after the
// file stem unless the file declares a name.
func ParseFile(df DiscoveredFile) ParseResult {
	data, err := os.ReadFile(df.Path)
	if err != nil {
		return ParseResult{Err: err}
	}

	format := df.Format
	if format == "" {
		f, ok := FormatForExt(filepath.Ext(df.Path))
		if !ok {
			return ParseResult{Err: fmt.Errorf("%s: unsupported file type", df.Path)}
		}
		format = f
	}

	name := df.Name
	if name == "" {
		name = strings.TrimSuffix(filepath.Base(df.Path), filepath.Ext(df.Path))
	}

	s, err := Parse(bytes.NewReader(data), format, name)
	if err != nil {
		return ParseResult{Err: fmt.Errorf("%s: %w", df.Path, err)}
	}
	s.Source = df.Path
	return ParseResult{Series: s}
}

// Parse decodes a series in the given format and validates month ordering.
func Parse(r io.Reader, format Format, name string) (model.Series, error) {
	var (
		s   model.Series
		err error
	)
	switch format {
	case FormatCSV:
		s, err = parseCSV(r)
	case FormatJSON:
		s, err = parseJSON(r)
	case FormatYAML:
		s, err = parseYAML(r)
	default:
		return model.Series{}, fmt.Errorf("unsupported format %q", format)
	}
	if err != nil {
		return model.Series{}, err
	}
	if s.Name == "" {
		s.Name = name
	}
	if err := Validate(s); err != nil {
		return model.Series{}, err
	}
	return s, nil
}

// Validate checks that the series is non-empty, non-negative, and strictly
// increasing by month.
func Validate(s model.Series) error {
	if len(s.Observations) == 0 {
		return ErrEmpty
	}
	for i, o := range s.Observations {
		if o.Value.IsNegative() {
			return fmt.Errorf("%w: %s at %s", ErrNegativeValue, o.Value, FormatMonth(o.Date))
		}
		if i > 0 && !o.Date.After(s.Observations[i-1].Date) {
			return fmt.Errorf("%w: %s follows %s", ErrUnordered,
				FormatMonth(o.Date), FormatMonth(s.Observations[i-1].Date))
		}
	}
	return nil
}

func parseCSV(r io.Reader) (model.Series, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	dateCol, valueCol := 0, 1
	var s model.Series

	for first := true; ; first = false {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return model.Series{}, fmt.Errorf("reading csv: %w", err)
		}
		line, _ := cr.FieldPos(0)

		if first && isHeader(rec) {
			dateCol, valueCol, err = headerColumns(rec)
			if err != nil {
				return model.Series{}, err
			}
			continue
		}
		if len(rec) == 1 && strings.TrimSpace(rec[0]) == "" {
			continue
		}
		if dateCol < 0 || valueCol < 0 || dateCol >= len(rec) || valueCol >= len(rec) {
			return model.Series{}, fmt.Errorf("line %d: expected at least %d columns, got %d",
				line, max(dateCol, valueCol)+1, len(rec))
		}

		obs, err := buildObservation(rec[dateCol], rec[valueCol])
		if err != nil {
			var mde *model.MalformedDateError
			if errors.As(err, &mde) {
				mde.Line = line
				return model.Series{}, mde
			}
			return model.Series{}, fmt.Errorf("line %d: %w", line, err)
		}
		s.Observations = append(s.Observations, obs)
	}
	return s, nil
}

// isHeader reports whether the first CSV record names its columns.
func isHeader(rec []string) bool {
	if containsFold(rec, "date") {
		return true
	}
	for _, name := range valueColumns {
		if containsFold(rec, name) {
			return true
		}
	}
	return false
}

// headerColumns locates the date and value columns of a header record.
func headerColumns(rec []string) (dateCol, valueCol int, err error) {
	dateCol = 0
	for i, h := range rec {
		if strings.EqualFold(strings.TrimSpace(h), "date") {
			dateCol = i
			break
		}
	}
	for _, name := range valueColumns {
		for i, h := range rec {
			if i != dateCol && strings.EqualFold(strings.TrimSpace(h), name) {
				return dateCol, i, nil
			}
		}
	}
	// Fall back to the first column that is not the date.
	for i := range rec {
		if i != dateCol {
			return dateCol, i, nil
		}
	}
	return 0, 0, fmt.Errorf("%w: csv header %v has no value column", ErrMissingColumn, rec)
}

func containsFold(rec []string, want string) bool {
	for _, h := range rec {
		if strings.EqualFold(strings.TrimSpace(h), want) {
			return true
		}
	}
	return false
}

func parseJSON(r io.Reader) (model.Series, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return model.Series{}, err
	}
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return model.Series{}, ErrEmpty
	}

	var doc seriesDocument
	if trimmed[0] == '[' {
		if err := json.Unmarshal(trimmed, &doc.Observations); err != nil {
			return model.Series{}, fmt.Errorf("decoding json: %w", err)
		}
	} else if err := json.Unmarshal(trimmed, &doc); err != nil {
		return model.Series{}, fmt.Errorf("decoding json: %w", err)
	}
	return fromDocument(doc)
}

func parseYAML(r io.Reader) (model.Series, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return model.Series{}, err
	}

	var doc seriesDocument
	if err := yaml.Unmarshal(data, &doc); err != nil {
		// A bare sequence of observations is also accepted.
		var list []rawObservation
		if listErr := yaml.Unmarshal(data, &list); listErr != nil {
			return model.Series{}, fmt.Errorf("decoding yaml: %w", err)
		}
		doc = seriesDocument{Observations: list}
	}
	return fromDocument(doc)
}

func fromDocument(doc seriesDocument) (model.Series, error) {
	s := model.Series{Name: strings.TrimSpace(doc.Name)}
	for i, ro := range doc.Observations {
		obs, err := buildObservation(string(ro.Date), string(ro.Value))
		if err != nil {
			return model.Series{}, fmt.Errorf("observation %d: %w", i+1, err)
		}
		s.Observations = append(s.Observations, obs)
	}
	return s, nil
}

func buildObservation(rawDate, rawValue string) (model.Observation, error) {
	date, err := ParseMonth(rawDate)
	if err != nil {
		return model.Observation{}, err
	}
	rawValue = strings.TrimSpace(rawValue)
	value, err := decimal.NewFromString(rawValue)
	if err != nil {
		return model.Observation{}, fmt.Errorf("%w %q", ErrInvalidValue, rawValue)
	}
	if value.IsNegative() {
		return model.Observation{}, fmt.Errorf("%w: %s at %s", ErrNegativeValue, rawValue, FormatMonth(date))
	}
	return model.Observation{Date: date, Value: value}, nil
}
