package pipeline

import (
	"fmt"
	"sort"
	"strings"

	"github.com/theirongolddev/wealthview/internal/model"
	"github.com/theirongolddev/wealthview/internal/source"
)

// SelectSeries picks the series to report on. An empty name selects the
// first series by name. With no loaded series at all, the built-in dataset
// is returned so the dashboard always has something to show.
func SelectSeries(loaded []model.Series, name string) (model.Series, error) {
	if len(loaded) == 0 {
		if name != "" && !strings.EqualFold(name, source.DefaultSeriesName) {
			return model.Series{}, fmt.Errorf("series %q not found: no series files loaded", name)
		}
		return source.Default()
	}

	if name == "" {
		sorted := make([]model.Series, len(loaded))
		copy(sorted, loaded)
		sort.SliceStable(sorted, func(i, j int) bool {
			return sorted[i].Name < sorted[j].Name
		})
		return sorted[0], nil
	}

	for _, s := range loaded {
		if strings.EqualFold(s.Name, name) {
			return s, nil
		}
	}
	return model.Series{}, fmt.Errorf("series %q not found (available: %s)", name, strings.Join(Names(loaded), ", "))
}

// Names returns the sorted series names of loaded.
func Names(loaded []model.Series) []string {
	names := make([]string, 0, len(loaded))
	for _, s := range loaded {
		names = append(names, s.Name)
	}
	sort.Strings(names)
	return names
}
