package pipeline

import (
	"github.com/shopspring/decimal"

	"github.com/theirongolddev/wealthview/internal/model"
)

const (
	// WindowSize is the number of trailing observations used to estimate the trend.
	WindowSize = 6
	// HorizonMonths is the number of calendar months projected past the last observation.
	HorizonMonths = 2
)

// AverageRecentDelta returns the mean month-over-month change across the last
// window observations. The window yields window-1 differences, since the first
// observation of the window has no predecessor inside it.
//
// The series must hold at least window+1 observations.
func AverageRecentDelta(series model.Series, window int) (decimal.Decimal, error) {
	n := series.Len()
	if window < 2 || n < window+1 {
		need := window + 1
		if need < 3 {
			need = 3
		}
		return decimal.Zero, &model.InsufficientDataError{Op: "average recent delta", Need: need, Have: n}
	}

	tail := series.Observations[n-window:]
	sum := decimal.Zero
	for i := 1; i < len(tail); i++ {
		sum = sum.Add(tail[i].Value.Sub(tail[i-1].Value))
	}
	return sum.Div(decimal.NewFromInt(int64(window - 1))), nil
}

// ProjectForward extrapolates horizon months past the last observation,
// adding avgDelta once per month. The projection is linear, not compounding.
func ProjectForward(series model.Series, avgDelta decimal.Decimal, horizon int) ([]model.Point, error) {
	last, ok := series.Last()
	if !ok {
		return nil, &model.InsufficientDataError{Op: "project forward", Need: 1, Have: 0}
	}
	if horizon <= 0 {
		return []model.Point{}, nil
	}

	points := make([]model.Point, horizon)
	for i := 1; i <= horizon; i++ {
		points[i-1] = model.Point{
			Date:     last.Date.AddDate(0, i, 0),
			Value:    last.Value.Add(avgDelta.Mul(decimal.NewFromInt(int64(i)))),
			Category: model.CategoryProjected,
		}
	}
	return points, nil
}

// CombineActualAndProjected returns the observations tagged Actual followed by
// the projections. Callers are responsible for projections starting after the
// last observation; no overlap check is made.
func CombineActualAndProjected(series model.Series, projections []model.Point) []model.Point {
	out := make([]model.Point, 0, series.Len()+len(projections))
	for _, o := range series.Observations {
		out = append(out, model.Point{
			Date:     o.Date,
			Value:    o.Value,
			Category: model.CategoryActual,
		})
	}
	for _, p := range projections {
		p.Category = model.CategoryProjected
		out = append(out, p)
	}
	return out
}
