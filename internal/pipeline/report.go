package pipeline

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/theirongolddev/wealthview/internal/model"
)

// BuildReport runs every derivation over the series once and bundles the results.
// Nothing is cached between calls; the report is a pure function of series and now.
func BuildReport(series model.Series, now time.Time) (model.Report, error) {
	avg, err := AverageRecentDelta(series, WindowSize)
	if err != nil {
		return model.Report{}, fmt.Errorf("series %q: %w", series.Name, err)
	}

	projections, err := ProjectForward(series, avg, HorizonMonths)
	if err != nil {
		return model.Report{}, fmt.Errorf("series %q: %w", series.Name, err)
	}

	growth, err := AggregateGrowthRates(series)
	if err != nil {
		return model.Report{}, fmt.Errorf("series %q: %w", series.Name, err)
	}

	return model.Report{
		Series:       series.Name,
		Source:       series.Source,
		GeneratedAt:  now,
		Observations: series.Len(),
		AverageDelta: avg,
		Points:       CombineActualAndProjected(series, projections),
		Yearly:       AggregateYears(series),
		Growth:       growth,
		RecentGrowth: RecentGrowthRates(growth, WindowSize),
		Headline:     buildHeadline(series, projections),
	}, nil
}

// buildHeadline compares the latest observation with the month before it and
// each projected month with the month before that.
func buildHeadline(series model.Series, projections []model.Point) model.Headline {
	var h model.Headline

	last, ok := series.Last()
	if !ok {
		return h
	}
	h.Current = model.Metric{Date: last.Date, Value: last.Value, Delta: decimal.Zero}
	if n := series.Len(); n >= 2 {
		h.Current.Delta = last.Value.Sub(series.Observations[n-2].Value)
	}

	prev := last.Value
	h.Projected = make([]model.Metric, 0, len(projections))
	for _, p := range projections {
		h.Projected = append(h.Projected, model.Metric{
			Date:  p.Date,
			Value: p.Value,
			Delta: p.Value.Sub(prev),
		})
		prev = p.Value
	}
	return h
}
