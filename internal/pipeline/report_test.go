package pipeline

import (
	"errors"
	"testing"
	"time"

	"github.com/theirongolddev/wealthview/internal/model"
)

func TestBuildReport(t *testing.T) {
	now := time.Date(2024, 11, 5, 12, 0, 0, 0, time.UTC)
	r, err := BuildReport(defaultSeries(t), now)
	if err != nil {
		t.Fatalf("BuildReport: %v", err)
	}

	if r.Series != "wealth" || r.Observations != 34 || !r.GeneratedAt.Equal(now) {
		t.Errorf("header = %q %d %v", r.Series, r.Observations, r.GeneratedAt)
	}
	if len(r.Points) != 36 {
		t.Errorf("len(Points) = %d, want 36", len(r.Points))
	}
	if len(r.Actual()) != 34 || len(r.Projections()) != 2 {
		t.Errorf("actual=%d projections=%d", len(r.Actual()), len(r.Projections()))
	}
	if len(r.Yearly) != 3 {
		t.Errorf("len(Yearly) = %d, want 3", len(r.Yearly))
	}
	if len(r.Growth) != 33 || len(r.RecentGrowth) != WindowSize {
		t.Errorf("growth=%d recent=%d", len(r.Growth), len(r.RecentGrowth))
	}

	h := r.Headline
	if !h.Current.Value.Equal(dec("98554.79")) || !h.Current.Delta.Equal(dec("8108.76")) {
		t.Errorf("current = %s (%s)", h.Current.Value, h.Current.Delta)
	}
	if len(h.Projected) != 2 {
		t.Fatalf("len(Projected) = %d, want 2", len(h.Projected))
	}
	if !h.Projected[0].Value.Equal(dec("102330.618")) || !h.Projected[0].Delta.Equal(dec("3775.828")) {
		t.Errorf("projected[0] = %s (%s)", h.Projected[0].Value, h.Projected[0].Delta)
	}
	if !h.Projected[1].Delta.Equal(dec("3775.828")) {
		t.Errorf("projected[1] delta = %s, want 3775.828", h.Projected[1].Delta)
	}
}

func TestBuildReport_Errors(t *testing.T) {
	short := seriesFrom(month(2024, time.January), "1", "2", "3")
	_, err := BuildReport(short, time.Now())
	var ide *model.InsufficientDataError
	if !errors.As(err, &ide) {
		t.Errorf("short series: err = %v, want InsufficientDataError", err)
	}

	zero := seriesFrom(month(2024, time.January), "0", "1", "2", "3", "4", "5", "6")
	_, err = BuildReport(zero, time.Now())
	var dbz *model.DivisionByZeroError
	if !errors.As(err, &dbz) {
		t.Errorf("zero series: err = %v, want DivisionByZeroError", err)
	}
}

func TestBuildReport_DoesNotMutateSeries(t *testing.T) {
	s := defaultSeries(t)
	before := make([]string, s.Len())
	for i, o := range s.Observations {
		before[i] = o.Value.String()
	}

	if _, err := BuildReport(s, time.Now()); err != nil {
		t.Fatal(err)
	}
	for i, o := range s.Observations {
		if o.Value.String() != before[i] {
			t.Fatalf("observation %d mutated: %s -> %s", i, before[i], o.Value)
		}
	}
}
