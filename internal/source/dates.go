package source

import (
	"strings"
	"time"

	"github.com/theirongolddev/wealthview/internal/model"
)

// Accepted date layouts, tried in order.
var monthLayouts = []string{"2006-01-02", "2006-01"}

// ParseMonth parses a YYYY-MM-DD (or YYYY-MM) string into the first day of
// that month in UTC.
func ParseMonth(s string) (time.Time, error) {
	s = strings.TrimSpace(s)

	var firstErr error
	for _, layout := range monthLayouts {
		t, err := time.Parse(layout, s)
		if err == nil {
			return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC), nil
		}
		if firstErr == nil {
			firstErr = err
		}
	}
	return time.Time{}, &model.MalformedDateError{Input: s, Err: firstErr}
}

// FormatMonth renders a month the way ParseMonth reads it.
func FormatMonth(t time.Time) string {
	return t.Format("2006-01-02")
}
