package pipeline

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/theirongolddev/wealthview/internal/model"
)

func TestAggregateYears(t *testing.T) {
	years := AggregateYears(defaultSeries(t))
	if len(years) != 3 {
		t.Fatalf("got %d years, want 3", len(years))
	}

	tests := []struct {
		year                 int
		count                int
		minimum, maximum     string
		growth, averageRound string
	}{
		{2022, 12, "6433.58", "21245.29", "13735.82", "15761.87"},
		{2023, 12, "24133.65", "50422.58", "26288.93", "34566.32"},
		{2024, 10, "55240.27", "98554.79", "43314.52", "78557.14"},
	}

	for i, tt := range tests {
		got := years[i]
		if got.Year != tt.year {
			t.Fatalf("years[%d].Year = %d, want %d", i, got.Year, tt.year)
		}
		if got.Count != tt.count {
			t.Errorf("%d: Count = %d, want %d", tt.year, got.Count, tt.count)
		}
		if !got.Minimum.Equal(dec(tt.minimum)) {
			t.Errorf("%d: Minimum = %s, want %s", tt.year, got.Minimum, tt.minimum)
		}
		if !got.Maximum.Equal(dec(tt.maximum)) {
			t.Errorf("%d: Maximum = %s, want %s", tt.year, got.Maximum, tt.maximum)
		}
		if !got.Growth.Equal(dec(tt.growth)) {
			t.Errorf("%d: Growth = %s, want %s", tt.year, got.Growth, tt.growth)
		}
		if !got.Average.Round(2).Equal(dec(tt.averageRound)) {
			t.Errorf("%d: Average = %s, want ~%s", tt.year, got.Average, tt.averageRound)
		}
	}
}

func TestAggregateYears_SingleObservationYear(t *testing.T) {
	s := seriesFrom(month(2023, time.November), "10", "20", "35")
	years := AggregateYears(s)
	if len(years) != 2 {
		t.Fatalf("got %d years, want 2", len(years))
	}
	if y := years[1]; y.Year != 2024 || !y.Growth.IsZero() || y.Count != 1 {
		t.Errorf("2024 = %+v, want single observation with zero growth", y)
	}
	if !years[1].Average.Equal(decimal.NewFromInt(35)) {
		t.Errorf("2024 average = %s, want 35", years[1].Average)
	}
}

func TestAggregateYears_Empty(t *testing.T) {
	if got := AggregateYears(model.Series{}); len(got) != 0 {
		t.Errorf("got %v, want empty", got)
	}
}

func TestAggregateGrowthRates(t *testing.T) {
	s := seriesFrom(month(2024, time.January), "100", "110", "99")

	rates, err := AggregateGrowthRates(s)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rates) != 2 {
		t.Fatalf("got %d rates, want 2", len(rates))
	}
	if !rates[0].PercentChange.Equal(decimal.NewFromInt(10)) {
		t.Errorf("rate[0] = %s, want 10", rates[0].PercentChange)
	}
	if !rates[1].PercentChange.Equal(decimal.NewFromInt(-10)) {
		t.Errorf("rate[1] = %s, want -10", rates[1].PercentChange)
	}
	if !rates[0].Date.Equal(month(2024, time.February)) {
		t.Errorf("rate[0] date = %v, want 2024-02", rates[0].Date)
	}
}

func TestAggregateGrowthRates_OneFewerThanSeries(t *testing.T) {
	s := defaultSeries(t)
	rates, err := AggregateGrowthRates(s)
	if err != nil {
		t.Fatal(err)
	}
	if len(rates) != s.Len()-1 {
		t.Errorf("len = %d, want %d", len(rates), s.Len()-1)
	}
}

func TestAggregateGrowthRates_DivisionByZero(t *testing.T) {
	s := seriesFrom(month(2024, time.January), "10", "0", "5")

	_, err := AggregateGrowthRates(s)
	var dbz *model.DivisionByZeroError
	if !errors.As(err, &dbz) {
		t.Fatalf("err = %v, want DivisionByZeroError", err)
	}
	if !dbz.Date.Equal(month(2024, time.March)) {
		t.Errorf("Date = %v, want 2024-03", dbz.Date)
	}
}

func TestAggregateGrowthRates_ShortSeries(t *testing.T) {
	rates, err := AggregateGrowthRates(seriesFrom(month(2024, time.January), "5"))
	if err != nil || len(rates) != 0 {
		t.Errorf("got %v, %v; want empty, nil", rates, err)
	}
}

func TestRecentGrowthRates(t *testing.T) {
	rates, _ := AggregateGrowthRates(defaultSeries(t))

	recent := RecentGrowthRates(rates, WindowSize)
	if len(recent) != WindowSize {
		t.Fatalf("len = %d, want %d", len(recent), WindowSize)
	}
	if !recent[len(recent)-1].Date.Equal(month(2024, time.October)) {
		t.Errorf("last recent = %v, want 2024-10", recent[len(recent)-1].Date)
	}

	// Mutating the copy must not affect the input.
	recent[0].PercentChange = decimal.NewFromInt(999)
	if rates[len(rates)-WindowSize].PercentChange.Equal(decimal.NewFromInt(999)) {
		t.Error("RecentGrowthRates returned an alias of its input")
	}

	if got := RecentGrowthRates(rates[:2], WindowSize); len(got) != 2 {
		t.Errorf("short input: len = %d, want 2", len(got))
	}
	if got := RecentGrowthRates(rates, 0); len(got) != 0 {
		t.Errorf("n=0: len = %d, want 0", len(got))
	}
}
