package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// YearlyStat holds aggregate values for one calendar year of a series.
type YearlyStat struct {
	Year    int             `json:"year"`
	Count   int             `json:"count"`
	Average decimal.Decimal `json:"average"`
	Minimum decimal.Decimal `json:"minimum"`
	Maximum decimal.Decimal `json:"maximum"`
	Growth  decimal.Decimal `json:"growth"` // last value of the year minus the first
}

// MonthlyGrowthRate is the percent change from the previous month to Date.
type MonthlyGrowthRate struct {
	Date          time.Time       `json:"date"`
	PercentChange decimal.Decimal `json:"percent_change"`
}

// Metric is a single headline figure with its change against a reference value.
type Metric struct {
	Date  time.Time       `json:"date"`
	Value decimal.Decimal `json:"value"`
	Delta decimal.Decimal `json:"delta"`
}

// Headline holds the dashboard's top-row metrics: the latest observed value
// followed by each projected month.
type Headline struct {
	Current   Metric   `json:"current"`
	Projected []Metric `json:"projected"`
}

// Report bundles every derived view of one series.
type Report struct {
	Series       string              `json:"series"`
	Source       string              `json:"source"`
	GeneratedAt  time.Time           `json:"generated_at"`
	Observations int                 `json:"observations"`
	AverageDelta decimal.Decimal     `json:"average_delta"`
	Points       []Point             `json:"points"`
	Yearly       []YearlyStat        `json:"yearly"`
	Growth       []MonthlyGrowthRate `json:"growth"`
	RecentGrowth []MonthlyGrowthRate `json:"recent_growth"`
	Headline     Headline            `json:"headline"`
}

// Actual returns only the observed points of the report.
func (r Report) Actual() []Point {
	return r.byCategory(CategoryActual)
}

// Projections returns only the projected points of the report.
func (r Report) Projections() []Point {
	return r.byCategory(CategoryProjected)
}

func (r Report) byCategory(c Category) []Point {
	var out []Point
	for _, p := range r.Points {
		if p.Category == c {
			out = append(out, p)
		}
	}
	return out
}
