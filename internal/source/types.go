package source

import (
	"strings"

	"gopkg.in/yaml.v3"
)

// Format identifies the encoding of a series file.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// FormatForExt maps a file extension (with or without the dot) to a Format.
func FormatForExt(ext string) (Format, bool) {
	switch strings.ToLower(strings.TrimPrefix(ext, ".")) {
	case "csv":
		return FormatCSV, true
	case "json":
		return FormatJSON, true
	case "yaml", "yml":
		return FormatYAML, true
	}
	return "", false
}

// DiscoveredFile represents a series file found during directory scanning.
type DiscoveredFile struct {
	Path   string
	Name   string // file stem, used as the series name unless the file sets one
	Format Format
}

// rawObservation is the JSON/YAML shape of one observation.
type rawObservation struct {
	Date  rawScalar `json:"date" yaml:"date"`
	Value rawScalar `json:"value" yaml:"value"`
}

// seriesDocument is the object form of a JSON/YAML series file.
type seriesDocument struct {
	Name         string           `json:"name" yaml:"name"`
	Observations []rawObservation `json:"observations" yaml:"observations"`
}

// rawScalar keeps the literal text of a scalar. Numbers are parsed as decimals
// without passing through float64, and YAML dates are not resolved to
// timestamps. Both 12.5 and "12.5" are accepted.
type rawScalar string

func (v *rawScalar) UnmarshalJSON(b []byte) error {
	*v = rawScalar(strings.Trim(strings.TrimSpace(string(b)), `"`))
	return nil
}

func (v *rawScalar) UnmarshalYAML(node *yaml.Node) error {
	*v = rawScalar(strings.TrimSpace(node.Value))
	return nil
}
