package source

import (
	"bytes"
	_ "embed"
	"fmt"

	"github.com/theirongolddev/wealthview/internal/model"
)

// DefaultSeriesName is the name of the built-in dataset.
const DefaultSeriesName = "wealth"

// EmbeddedSource marks a series that came from the binary rather than a file.
const EmbeddedSource = "embedded"

//go:embed data/wealth.csv
var defaultCSV []byte

// Default returns the built-in monthly wealth series used when no data
// directory holds any series file.
func Default() (model.Series, error) {
	s, err := Parse(bytes.NewReader(defaultCSV), FormatCSV, DefaultSeriesName)
	if err != nil {
		return model.Series{}, fmt.Errorf("embedded series: %w", err)
	}
	s.Source = EmbeddedSource
	return s, nil
}
