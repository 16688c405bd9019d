// Package pipeline loads series and derives projections and aggregate statistics from them.
package pipeline

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/theirongolddev/wealthview/internal/model"
)

// AggregateYears partitions the series by calendar year and computes the
// mean, minimum, maximum, and growth (last minus first) of each year.
// Results are sorted by year ascending.
func AggregateYears(series model.Series) []model.YearlyStat {
	type yearAcc struct {
		sum   decimal.Decimal
		first decimal.Decimal
		stat  model.YearlyStat
	}

	yearMap := make(map[int]*yearAcc)

	for _, o := range series.Observations {
		y := o.Date.Year()
		acc, ok := yearMap[y]
		if !ok {
			acc = &yearAcc{
				sum:   decimal.Zero,
				first: o.Value,
				stat: model.YearlyStat{
					Year:    y,
					Minimum: o.Value,
					Maximum: o.Value,
				},
			}
			yearMap[y] = acc
		}

		acc.sum = acc.sum.Add(o.Value)
		acc.stat.Count++
		if o.Value.LessThan(acc.stat.Minimum) {
			acc.stat.Minimum = o.Value
		}
		if o.Value.GreaterThan(acc.stat.Maximum) {
			acc.stat.Maximum = o.Value
		}
		// Series order is chronological, so the latest value seen closes the year.
		acc.stat.Growth = o.Value.Sub(acc.first)
	}

	years := make([]model.YearlyStat, 0, len(yearMap))
	for _, acc := range yearMap {
		acc.stat.Average = acc.sum.Div(decimal.NewFromInt(int64(acc.stat.Count)))
		years = append(years, acc.stat)
	}
	sort.Slice(years, func(i, j int) bool {
		return years[i].Year < years[j].Year
	})

	return years
}

// AggregateGrowthRates computes the percent change between every pair of
// adjacent observations. The result has one element fewer than the series.
// A zero prior value fails with *model.DivisionByZeroError.
func AggregateGrowthRates(series model.Series) ([]model.MonthlyGrowthRate, error) {
	obs := series.Observations
	if len(obs) < 2 {
		return []model.MonthlyGrowthRate{}, nil
	}

	hundred := decimal.NewFromInt(100)
	rates := make([]model.MonthlyGrowthRate, 0, len(obs)-1)
	for i := 1; i < len(obs); i++ {
		prev, curr := obs[i-1], obs[i]
		if prev.Value.IsZero() {
			return nil, &model.DivisionByZeroError{Op: "monthly growth rate", Date: curr.Date}
		}
		rates = append(rates, model.MonthlyGrowthRate{
			Date:          curr.Date,
			PercentChange: curr.Value.Sub(prev.Value).Mul(hundred).Div(prev.Value),
		})
	}
	return rates, nil
}

// RecentGrowthRates returns a copy of the trailing n rates.
func RecentGrowthRates(rates []model.MonthlyGrowthRate, n int) []model.MonthlyGrowthRate {
	if n <= 0 {
		return []model.MonthlyGrowthRate{}
	}
	if len(rates) > n {
		rates = rates[len(rates)-n:]
	}
	out := make([]model.MonthlyGrowthRate, len(rates))
	copy(out, rates)
	return out
}
