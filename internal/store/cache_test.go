package store

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/theirongolddev/wealthview/internal/model"
)

func openTestCache(t *testing.T) *Cache {
	t.Helper()
	c, err := Open(filepath.Join(t.TempDir(), "cache", "series.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { _ = c.Close() })
	return c
}

func testSeries(path string, values ...string) model.Series {
	s := model.Series{Name: filepath.Base(path), Source: path}
	for i, v := range values {
		s.Observations = append(s.Observations, model.Observation{
			Date:  time.Date(2024, time.Month(i+1), 1, 0, 0, 0, 0, time.UTC),
			Value: decimal.RequireFromString(v),
		})
	}
	return s
}

func TestCache_SaveAndLoad(t *testing.T) {
	c := openTestCache(t)

	a := testSeries("/data/a.csv", "100.10", "200.20", "0.005")
	b := testSeries("/data/b.csv", "1")
	if err := c.SaveSeries(a, 111, 10); err != nil {
		t.Fatalf("SaveSeries a: %v", err)
	}
	if err := c.SaveSeries(b, 222, 20); err != nil {
		t.Fatalf("SaveSeries b: %v", err)
	}

	tracked, err := c.GetTrackedFiles()
	if err != nil {
		t.Fatalf("GetTrackedFiles: %v", err)
	}
	if got := tracked["/data/a.csv"]; got.MtimeNs != 111 || got.SizeBytes != 10 {
		t.Errorf("tracked a = %+v", got)
	}

	loaded, err := c.LoadAllSeries()
	if err != nil {
		t.Fatalf("LoadAllSeries: %v", err)
	}
	if len(loaded) != 2 {
		t.Fatalf("loaded %d series, want 2", len(loaded))
	}
	got := loaded[0]
	if got.Source != a.Source || got.Name != a.Name || got.Len() != 3 {
		t.Fatalf("loaded[0] = %+v", got)
	}
	for i, o := range got.Observations {
		if !o.Date.Equal(a.Observations[i].Date) {
			t.Errorf("obs %d date = %v, want %v", i, o.Date, a.Observations[i].Date)
		}
		if !o.Value.Equal(a.Observations[i].Value) {
			t.Errorf("obs %d value = %s, want %s", i, o.Value, a.Observations[i].Value)
		}
	}
}

func TestCache_SaveReplaces(t *testing.T) {
	c := openTestCache(t)

	if err := c.SaveSeries(testSeries("/data/a.csv", "1", "2", "3"), 1, 1); err != nil {
		t.Fatal(err)
	}
	if err := c.SaveSeries(testSeries("/data/a.csv", "9"), 2, 2); err != nil {
		t.Fatal(err)
	}

	loaded, err := c.LoadAllSeries()
	if err != nil {
		t.Fatal(err)
	}
	if len(loaded) != 1 || loaded[0].Len() != 1 {
		t.Fatalf("loaded = %+v, want one series with one observation", loaded)
	}
	if !loaded[0].Observations[0].Value.Equal(decimal.NewFromInt(9)) {
		t.Errorf("value = %s, want 9", loaded[0].Observations[0].Value)
	}
}

func TestCache_DeleteFile(t *testing.T) {
	c := openTestCache(t)

	if err := c.SaveSeries(testSeries("/data/a.csv", "1"), 1, 1); err != nil {
		t.Fatal(err)
	}
	if err := c.DeleteFile("/data/a.csv"); err != nil {
		t.Fatal(err)
	}

	n, err := c.SeriesCount()
	if err != nil {
		t.Fatal(err)
	}
	if n != 0 {
		t.Errorf("SeriesCount = %d, want 0", n)
	}
}

func TestOpen_Reopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "series.db")
	c, err := Open(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := c.SaveSeries(testSeries("/data/a.csv", "1"), 1, 1); err != nil {
		t.Fatal(err)
	}
	_ = c.Close()

	// Migrations already applied; reopening must not fail.
	c, err = Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer func() { _ = c.Close() }()

	n, err := c.SeriesCount()
	if err != nil || n != 1 {
		t.Errorf("SeriesCount = %d, %v; want 1", n, err)
	}
}
