// Package model defines domain types for wealthview series and derived metrics.
package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Category tags a point of the combined sequence as observed or extrapolated.
type Category string

const (
	CategoryActual    Category = "Actual"
	CategoryProjected Category = "Projected"
)

// Observation is one monthly value. Date is always the first day of the month (UTC).
type Observation struct {
	Date  time.Time
	Value decimal.Decimal
}

// Series is an ordered, immutable list of observations.
// Observations are strictly increasing by month with one entry per month.
type Series struct {
	Name         string
	Source       string // file path, or "embedded" for the built-in dataset
	Observations []Observation
}

// Len returns the number of observations.
func (s Series) Len() int {
	return len(s.Observations)
}

// Last returns the most recent observation and false if the series is empty.
func (s Series) Last() (Observation, bool) {
	if len(s.Observations) == 0 {
		return Observation{}, false
	}
	return s.Observations[len(s.Observations)-1], true
}

// Values returns the observation values as float64, for charts only.
func (s Series) Values() []float64 {
	out := make([]float64, len(s.Observations))
	for i, o := range s.Observations {
		out[i] = o.Value.InexactFloat64()
	}
	return out
}

// Point is one element of the combined actual + projected sequence.
type Point struct {
	Date     time.Time       `json:"date"`
	Value    decimal.Decimal `json:"value"`
	Category Category        `json:"category"`
}
