package tui

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/theirongolddev/wealthview/internal/config"
	"github.com/theirongolddev/wealthview/internal/logging"
	"github.com/theirongolddev/wealthview/internal/model"
	"github.com/theirongolddev/wealthview/internal/source"
	"github.com/theirongolddev/wealthview/internal/tui/theme"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/shopspring/decimal"
)

func isolateConfig(t *testing.T) {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("XDG_CACHE_HOME", t.TempDir())
}

func testSeries(name string, n int, start, step int64) model.Series {
	s := model.Series{Name: name, Source: name + ".csv"}
	for i := 0; i < n; i++ {
		s.Observations = append(s.Observations, model.Observation{
			Date:  time.Date(2023, time.Month(1+i), 1, 0, 0, 0, 0, time.UTC),
			Value: decimal.NewFromInt(start + int64(i)*step),
		})
	}
	return s
}

func loadedApp(series ...model.Series) App {
	a := App{
		log:             logging.Discard(),
		loaded:          true,
		width:           140,
		height:          50,
		title:           "Wealth Dashboard",
		refreshInterval: 30 * time.Second,
	}
	m, _ := a.Update(DataLoadedMsg{Series: series})
	return m.(App)
}

func press(t *testing.T, a App, key string) App {
	t.Helper()
	var msg tea.KeyMsg
	switch key {
	case "left":
		msg = tea.KeyMsg{Type: tea.KeyLeft}
	case "right":
		msg = tea.KeyMsg{Type: tea.KeyRight}
	default:
		msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)}
	}
	m, _ := a.Update(msg)
	return m.(App)
}

func TestRecomputeFallsBackToBuiltInDataset(t *testing.T) {
	isolateConfig(t)
	a := loadedApp()

	if a.reportErr != nil {
		t.Fatalf("reportErr = %v", a.reportErr)
	}
	if a.report.Series != source.DefaultSeriesName {
		t.Errorf("Series = %q, want %q", a.report.Series, source.DefaultSeriesName)
	}
	if got := len(a.report.Points); got != 36 {
		t.Errorf("len(Points) = %d, want 36", got)
	}
}

func TestRecomputeReportsShortSeries(t *testing.T) {
	isolateConfig(t)
	a := loadedApp(testSeries("tiny", 3, 100, 10))

	if a.reportErr == nil {
		t.Fatal("expected an error for a 3-month series")
	}
	if !strings.Contains(a.View(), "No report") {
		t.Error("expected the error card in the view")
	}
}

func TestNextSeriesCycles(t *testing.T) {
	isolateConfig(t)
	a := loadedApp(testSeries("savings", 12, 1000, 50), testSeries("brokerage", 12, 5000, 200))

	if a.selected != "brokerage" {
		t.Fatalf("initial selection = %q, want brokerage (first by name)", a.selected)
	}
	a = press(t, a, "n")
	if a.selected != "savings" || a.report.Series != "savings" {
		t.Errorf("after n: selected=%q report=%q, want savings", a.selected, a.report.Series)
	}
	a = press(t, a, "n")
	if a.selected != "brokerage" {
		t.Errorf("after second n: selected=%q, want brokerage", a.selected)
	}
}

func TestMissingSelectionFallsBack(t *testing.T) {
	isolateConfig(t)
	a := App{log: logging.Discard(), selected: "gone"}
	a.series = []model.Series{testSeries("savings", 12, 1000, 50)}
	a.recompute()

	if a.reportErr != nil {
		t.Fatalf("reportErr = %v", a.reportErr)
	}
	if a.selected != "savings" {
		t.Errorf("selected = %q, want savings", a.selected)
	}
}

func TestTabKeys(t *testing.T) {
	isolateConfig(t)
	a := loadedApp()

	tests := []struct {
		key  string
		want int
	}{
		{"a", tabAnalysis},
		{"d", tabData},
		{"x", tabSettings},
		{"o", tabOverview},
		{"left", tabSettings},
		{"right", tabOverview},
	}
	for _, tt := range tests {
		a = press(t, a, tt.key)
		if a.activeTab != tt.want {
			t.Errorf("after %q activeTab = %d, want %d", tt.key, a.activeTab, tt.want)
		}
	}
}

func TestDataScrollClamps(t *testing.T) {
	isolateConfig(t)
	a := loadedApp()
	a = press(t, a, "d")

	a = press(t, a, "k")
	if a.dataScroll != 0 {
		t.Errorf("scroll above top = %d, want 0", a.dataScroll)
	}
	a = press(t, a, "G")
	if want := len(a.report.Points) - 1; a.dataScroll != want {
		t.Errorf("G scroll = %d, want %d", a.dataScroll, want)
	}
	a = press(t, a, "j")
	if want := len(a.report.Points) - 1; a.dataScroll != want {
		t.Errorf("scroll past bottom = %d, want %d", a.dataScroll, want)
	}
	a = press(t, a, "g")
	if a.dataScroll != 0 {
		t.Errorf("g scroll = %d, want 0", a.dataScroll)
	}
}

func TestRefreshFailureKeepsData(t *testing.T) {
	isolateConfig(t)
	a := loadedApp()
	before := a.report.Series

	m, _ := a.Update(RefreshDataMsg{Err: errors.New("disk on fire")})
	a = m.(App)
	if a.report.Series != before {
		t.Errorf("report replaced after failed refresh: %q", a.report.Series)
	}
	if a.loadErr == nil {
		t.Error("expected loadErr to be recorded")
	}
}

func TestViewRendersEveryTab(t *testing.T) {
	isolateConfig(t)
	a := loadedApp()

	wants := []string{"Avg monthly change", "Yearly statistics", "Combined data", "Parse cache:"}
	for tab, want := range wants {
		a.activeTab = tab
		out := a.View()
		if !strings.Contains(out, want) {
			t.Errorf("tab %d view missing %q", tab, want)
		}
		if lines := strings.Count(out, "\n") + 1; lines > a.height {
			t.Errorf("tab %d renders %d lines, taller than %d", tab, lines, a.height)
		}
	}
}

func TestViewTooNarrow(t *testing.T) {
	a := App{width: 40, height: 10}
	if !strings.Contains(a.View(), "too narrow") {
		t.Error("expected narrow-terminal message")
	}
}

func TestGrowthShares(t *testing.T) {
	years := []model.YearlyStat{
		{Year: 2022, Growth: decimal.NewFromInt(100)},
		{Year: 2023, Growth: decimal.NewFromInt(-50)},
		{Year: 2024, Growth: decimal.NewFromInt(300)},
	}
	got := growthShares(years)
	want := []float64{0.25, 0, 0.75}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("share[%d] = %v, want %v", i, got[i], want[i])
		}
	}

	if growthShares([]model.YearlyStat{{Growth: decimal.NewFromInt(-1)}}) != nil {
		t.Error("expected nil shares when no year grew")
	}
}

func TestChartMonthLabels(t *testing.T) {
	points := []model.Point{
		{Date: time.Date(2023, 11, 1, 0, 0, 0, 0, time.UTC)},
		{Date: time.Date(2023, 12, 1, 0, 0, 0, 0, time.UTC)},
		{Date: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)},
	}
	got := chartMonthLabels(points)
	want := []string{"Nov 23", "Dec", "Jan 24"}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("label[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestThemeKeyCyclesAndPersists(t *testing.T) {
	isolateConfig(t)
	first := theme.Names()[0]
	theme.SetActive(first)
	t.Cleanup(func() { theme.SetActive(first) })

	a := loadedApp()
	_ = press(t, a, "t")

	want := theme.Next(first).Name
	if theme.Active.Name != want {
		t.Errorf("active theme = %q, want %q", theme.Active.Name, want)
	}
	cfg, err := config.Load()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Appearance.Theme != want {
		t.Errorf("saved theme = %q, want %q", cfg.Appearance.Theme, want)
	}
}
