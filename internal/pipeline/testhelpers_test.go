package pipeline

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/theirongolddev/wealthview/internal/model"
	"github.com/theirongolddev/wealthview/internal/source"
)

func month(y int, m time.Month) time.Time {
	return time.Date(y, m, 1, 0, 0, 0, 0, time.UTC)
}

// seriesFrom builds a monthly series starting at start with the given values.
func seriesFrom(start time.Time, values ...string) model.Series {
	s := model.Series{Name: "test", Source: "test"}
	for i, v := range values {
		s.Observations = append(s.Observations, model.Observation{
			Date:  start.AddDate(0, i, 0),
			Value: decimal.RequireFromString(v),
		})
	}
	return s
}

func defaultSeries(t testing.TB) model.Series {
	t.Helper()
	s, err := source.Default()
	if err != nil {
		t.Fatalf("source.Default: %v", err)
	}
	return s
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}
