package pipeline

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/theirongolddev/wealthview/internal/model"
	"github.com/theirongolddev/wealthview/internal/source"
	"github.com/theirongolddev/wealthview/internal/store"
)

func writeFile(t testing.TB, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

const sampleCSV = "date,value\n2024-01-01,1\n2024-02-01,2\n2024-03-01,3\n"

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "alpha.csv", sampleCSV)
	writeFile(t, dir, "beta.json", `[{"date":"2024-01-01","value":5}]`)
	writeFile(t, dir, "broken.csv", "date,value\nnot-a-date,1\n")

	var calls atomic.Int64
	result, err := Load(dir, func(current, total int) {
		calls.Add(1)
		if total != 3 || current < 1 || current > 3 {
			t.Errorf("progress %d/%d out of range", current, total)
		}
	})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if result.TotalFiles != 3 || result.ParsedFiles != 2 || result.FileErrors != 1 {
		t.Errorf("total=%d parsed=%d errors=%d", result.TotalFiles, result.ParsedFiles, result.FileErrors)
	}
	if len(result.Errors) != 1 || !strings.Contains(result.Errors[0].Error(), "broken.csv") {
		t.Errorf("Errors = %v", result.Errors)
	}
	if calls.Load() != 3 {
		t.Errorf("progress called %d times, want 3", calls.Load())
	}
	if got := Names(result.Series); len(got) != 2 || got[0] != "alpha" || got[1] != "beta" {
		t.Errorf("Names = %v", got)
	}
}

func TestLoad_HeaderWithoutValueColumnIsCounted(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "alpha.csv", sampleCSV)
	writeFile(t, dir, "dates-only.csv", "date\n2022-01-01\n")

	result, err := Load(dir, nil)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if result.ParsedFiles != 1 || result.FileErrors != 1 {
		t.Errorf("parsed=%d errors=%d, want 1 and 1", result.ParsedFiles, result.FileErrors)
	}
	if len(result.Errors) != 1 || !errors.Is(result.Errors[0], source.ErrMissingColumn) {
		t.Errorf("Errors = %v, want ErrMissingColumn", result.Errors)
	}
}

func TestLoad_EmptyDir(t *testing.T) {
	result, err := Load(filepath.Join(t.TempDir(), "missing"), nil)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if result.TotalFiles != 0 || len(result.Series) != 0 {
		t.Errorf("result = %+v, want empty", result)
	}
}

func TestLoadWithCache(t *testing.T) {
	dir := t.TempDir()
	alpha := writeFile(t, dir, "alpha.csv", sampleCSV)
	beta := writeFile(t, dir, "beta.csv", sampleCSV)

	cache, err := store.Open(filepath.Join(t.TempDir(), "series.db"))
	if err != nil {
		t.Fatal(err)
	}
	defer func() { _ = cache.Close() }()

	// Cold load parses everything.
	cold, err := LoadWithCache(dir, cache, nil)
	if err != nil {
		t.Fatalf("cold load: %v", err)
	}
	if cold.Reparsed != 2 || cold.CacheHits != 0 || len(cold.Series) != 2 {
		t.Errorf("cold: reparsed=%d hits=%d series=%d", cold.Reparsed, cold.CacheHits, len(cold.Series))
	}

	// Warm load serves everything from cache.
	warm, err := LoadWithCache(dir, cache, nil)
	if err != nil {
		t.Fatalf("warm load: %v", err)
	}
	if warm.Reparsed != 0 || warm.CacheHits != 2 || len(warm.Series) != 2 {
		t.Errorf("warm: reparsed=%d hits=%d series=%d", warm.Reparsed, warm.CacheHits, len(warm.Series))
	}
	if warm.Series[0].Source != alpha || warm.Series[0].Len() != 3 {
		t.Errorf("warm series[0] = %s (%d obs)", warm.Series[0].Source, warm.Series[0].Len())
	}

	// Changing one file reparses only that file; removing one prunes it.
	writeFile(t, dir, "alpha.csv", sampleCSV+"2024-04-01,4\n")
	future := time.Now().Add(time.Hour)
	if err := os.Chtimes(alpha, future, future); err != nil {
		t.Fatal(err)
	}
	if err := os.Remove(beta); err != nil {
		t.Fatal(err)
	}

	changed, err := LoadWithCache(dir, cache, nil)
	if err != nil {
		t.Fatalf("changed load: %v", err)
	}
	if changed.Reparsed != 1 || changed.CacheHits != 0 || changed.Pruned != 1 {
		t.Errorf("changed: reparsed=%d hits=%d pruned=%d", changed.Reparsed, changed.CacheHits, changed.Pruned)
	}
	if len(changed.Series) != 1 || changed.Series[0].Len() != 4 {
		t.Errorf("changed series = %+v", changed.Series)
	}
}

func TestSelectSeries(t *testing.T) {
	a := seriesFrom(month(2024, time.January), "1")
	a.Name = "savings"
	b := seriesFrom(month(2024, time.January), "2")
	b.Name = "brokerage"
	loaded := []model.Series{a, b}

	got, err := SelectSeries(loaded, "")
	if err != nil || got.Name != "brokerage" {
		t.Errorf("default pick = %q, %v; want brokerage", got.Name, err)
	}

	got, err = SelectSeries(loaded, "Savings")
	if err != nil || got.Name != "savings" {
		t.Errorf("by name = %q, %v; want savings", got.Name, err)
	}

	if _, err := SelectSeries(loaded, "pension"); err == nil || !strings.Contains(err.Error(), "brokerage, savings") {
		t.Errorf("unknown name err = %v", err)
	}

	got, err = SelectSeries(nil, "")
	if err != nil || got.Source != "embedded" || got.Len() != 34 {
		t.Errorf("fallback = %q/%d, %v", got.Source, got.Len(), err)
	}

	if _, err := SelectSeries(nil, "pension"); err == nil {
		t.Error("expected error selecting a named series with nothing loaded")
	}
}
