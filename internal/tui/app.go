// Package tui provides the interactive Bubble Tea dashboard for wealthview.
package tui

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/theirongolddev/wealthview/internal/cli"
	"github.com/theirongolddev/wealthview/internal/config"
	"github.com/theirongolddev/wealthview/internal/export"
	"github.com/theirongolddev/wealthview/internal/logging"
	"github.com/theirongolddev/wealthview/internal/model"
	"github.com/theirongolddev/wealthview/internal/pipeline"
	"github.com/theirongolddev/wealthview/internal/store"
	"github.com/theirongolddev/wealthview/internal/tui/components"
	"github.com/theirongolddev/wealthview/internal/tui/theme"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/sirupsen/logrus"
)

// DataLoadedMsg is sent when the data pipeline finishes.
type DataLoadedMsg struct {
	Series     []model.Series
	FileErrors int
	LoadTime   time.Duration
	Err        error
}

// ProgressMsg reports file parsing progress.
type ProgressMsg struct {
	Current int
	Total   int
}

// RefreshDataMsg is sent when a background data refresh completes.
type RefreshDataMsg struct {
	Series     []model.Series
	FileErrors int
	LoadTime   time.Duration
	Err        error
}

// ExportDoneMsg is sent when the export key finishes writing a file.
type ExportDoneMsg struct {
	Path string
	Err  error
}

// Options configures a new App.
type Options struct {
	DataDir  string
	Series   string
	UseCache bool
	Logger   *logrus.Logger
}

// App is the root Bubble Tea model.
type App struct {
	// Data
	series     []model.Series
	loaded     bool
	loadTime   time.Duration
	fileErrors int
	loadErr    error

	// Auto-refresh state
	autoRefresh     bool
	refreshInterval time.Duration
	lastRefresh     time.Time
	refreshing      bool

	// Derived view of the selected series
	selected  string
	report    model.Report
	reportErr error

	// UI state
	width     int
	height    int
	activeTab int
	showHelp  bool
	flash     string

	// Per-tab state
	dataScroll int
	settings   settingsState

	// First-run setup (huh form)
	setupForm *huh.Form
	setupVals *SetupValues // shared with the form across model copies
	needSetup bool

	// Loading, fed by the loader goroutine
	spinner     spinner.Model
	progress    int
	progressMax int
	loadSub     chan tea.Msg

	dataDir  string
	useCache bool
	title    string
	log      *logrus.Logger
}

// Tab indexes, matching components.Tabs.
const (
	tabOverview = iota
	tabAnalysis
	tabData
	tabSettings
)

const (
	minTerminalWidth = 80
	compactWidth     = 120
	maxContentWidth  = 180

	// Scroll navigation
	scrollOverhead    = 10 // approximate header + status bar height for half-page calc
	minHalfPageScroll = 1  // minimum lines for half-page scroll
	minContentHeight  = 5  // minimum content area height

	tickInterval = 250 * time.Millisecond
)

// loadConfigOrDefault loads config, returning defaults on error.
// This ensures the TUI can always start even if config is corrupted.
func loadConfigOrDefault() config.Config {
	cfg, err := config.Load()
	if err != nil {
		return config.DefaultConfig()
	}
	return cfg
}

func refreshIntervalFor(cfg config.Config) time.Duration {
	d := time.Duration(cfg.TUI.RefreshIntervalSec) * time.Second
	if d < 10*time.Second {
		d = 30 * time.Second // minimum 10s, default 30s
	}
	return d
}

// NewApp creates a new TUI app model.
func NewApp(opts Options) App {
	needSetup := !config.Exists()

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.Active.Accent).Background(theme.Active.Surface)

	cfg := loadConfigOrDefault()
	title := cfg.General.Title
	if title == "" {
		title = config.DefaultConfig().General.Title
	}

	log := opts.Logger
	if log == nil {
		log = logging.Discard()
	}

	return App{
		dataDir:         opts.DataDir,
		selected:        opts.Series,
		useCache:        opts.UseCache,
		log:             log,
		title:           title,
		needSetup:       needSetup,
		autoRefresh:     cfg.TUI.AutoRefresh,
		refreshInterval: refreshIntervalFor(cfg),
		spinner:         sp,
		loadSub:         make(chan tea.Msg, 1),
	}
}

// Init implements tea.Model.
func (a App) Init() tea.Cmd {
	return tea.Batch(
		tea.EnableMouseCellMotion,
		loadDataCmd(a.dataDir, a.useCache, a.log, a.loadSub),
		a.spinner.Tick,
		tickCmd(),
	)
}

// recompute rebuilds the report for the selected series. A selection that
// no longer exists falls back to the first series.
func (a *App) recompute() {
	s, err := pipeline.SelectSeries(a.series, a.selected)
	if err != nil && a.selected != "" {
		a.log.WithError(err).Warn("selected series unavailable, falling back")
		s, err = pipeline.SelectSeries(a.series, "")
	}
	if err != nil {
		a.report = model.Report{}
		a.reportErr = err
		return
	}

	a.selected = s.Name
	a.report, a.reportErr = pipeline.BuildReport(s, time.Now())
	if a.reportErr != nil {
		a.log.WithError(a.reportErr).WithField("series", s.Name).Warn("building report")
	}

	if maxScroll := len(a.report.Points) - 1; a.dataScroll > maxScroll {
		a.dataScroll = max(0, maxScroll)
	}
}

// nextSeries cycles the selection through the loaded series names.
func (a *App) nextSeries() {
	names := pipeline.Names(a.series)
	if len(names) < 2 {
		return
	}
	idx := -1
	for i, n := range names {
		if strings.EqualFold(n, a.selected) {
			idx = i
			break
		}
	}
	a.selected = names[(idx+1)%len(names)]
	a.dataScroll = 0
	a.recompute()
}

// Update implements tea.Model.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		if a.setupForm != nil {
			a.setupForm = a.setupForm.WithWidth(msg.Width).WithHeight(msg.Height)
		}
		return a, nil

	case tea.MouseMsg:
		if !a.loaded || a.showHelp || (a.needSetup && a.setupForm != nil) {
			return a, nil
		}

		switch msg.Button {
		case tea.MouseButtonWheelUp:
			if a.activeTab == tabData {
				a.scrollData(-1)
			}
			return a, nil

		case tea.MouseButtonWheelDown:
			if a.activeTab == tabData {
				a.scrollData(1)
			}
			return a, nil

		case tea.MouseButtonLeft:
			// Tab bar occupies the first line
			if msg.Y == 0 {
				if tab := a.tabAtX(msg.X); tab >= 0 && tab < len(components.Tabs) {
					a.activeTab = tab
				}
			}
			return a, nil
		}
		return a, nil

	case tea.KeyMsg:
		return a.updateKey(msg)

	case DataLoadedMsg:
		a.series = msg.Series
		a.fileErrors = msg.FileErrors
		a.loadErr = msg.Err
		a.loaded = true
		a.loadTime = msg.LoadTime
		a.lastRefresh = time.Now()
		a.recompute()

		// Activate first-run setup after data loads
		if a.needSetup {
			vals := DefaultSetupValues(a.dataDir)
			a.setupVals = &vals
			a.setupForm = NewSetupForm(len(a.series), a.setupVals)
			if a.width > 0 {
				a.setupForm = a.setupForm.WithWidth(a.width).WithHeight(a.height)
			}
			return a, a.setupForm.Init()
		}
		return a, nil

	case ProgressMsg:
		a.progress = msg.Current
		a.progressMax = msg.Total
		return a, waitForLoadMsg(a.loadSub)

	case spinner.TickMsg:
		if !a.loaded {
			var cmd tea.Cmd
			a.spinner, cmd = a.spinner.Update(msg)
			return a, cmd
		}
		return a, nil

	case tickMsg:
		cmds := []tea.Cmd{tickCmd()}
		if a.loaded && a.autoRefresh && !a.refreshing {
			if time.Since(a.lastRefresh) >= a.refreshInterval {
				a.refreshing = true
				cmds = append(cmds, refreshDataCmd(a.dataDir, a.useCache, a.log))
			}
		}
		return a, tea.Batch(cmds...)

	case RefreshDataMsg:
		a.refreshing = false
		a.lastRefresh = time.Now()
		if msg.Err != nil {
			// Keep showing the last good data.
			a.loadErr = msg.Err
			return a, nil
		}
		a.loadErr = nil
		a.series = msg.Series
		a.fileErrors = msg.FileErrors
		a.loadTime = msg.LoadTime
		a.recompute()
		return a, nil

	case ExportDoneMsg:
		if msg.Err != nil {
			a.flash = "export failed: " + msg.Err.Error()
		} else {
			a.flash = "exported " + msg.Path
		}
		return a, nil
	}

	// Forward unhandled messages to the setup form (cursor blinks, etc.)
	if a.needSetup && a.setupForm != nil {
		return a.updateSetupForm(msg)
	}

	return a, nil
}

func (a App) updateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	if key == "ctrl+c" {
		return a, tea.Quit
	}

	if !a.loaded {
		return a, nil
	}

	// First-run setup wizard intercepts all keys
	if a.needSetup && a.setupForm != nil {
		return a.updateSetupForm(msg)
	}

	// Settings tab has its own keybindings (text input)
	if a.activeTab == tabSettings && a.settings.editing {
		return a.updateSettingsInput(msg)
	}

	if key == "?" {
		a.showHelp = !a.showHelp
		return a, nil
	}
	if a.showHelp {
		a.showHelp = false
		return a, nil
	}

	a.flash = ""

	if a.activeTab == tabData {
		switch key {
		case "j", "down":
			a.scrollData(1)
			return a, nil
		case "k", "up":
			a.scrollData(-1)
			return a, nil
		case "g":
			a.dataScroll = 0
			return a, nil
		case "G":
			a.scrollData(len(a.report.Points))
			return a, nil
		case "ctrl+d":
			a.scrollData(a.halfPage())
			return a, nil
		case "ctrl+u":
			a.scrollData(-a.halfPage())
			return a, nil
		}
	}

	if a.activeTab == tabSettings {
		switch key {
		case "j", "down":
			if a.settings.cursor < settingsFieldCount-1 {
				a.settings.cursor++
			}
			return a, nil
		case "k", "up":
			if a.settings.cursor > 0 {
				a.settings.cursor--
			}
			return a, nil
		case "enter":
			return a.settingsStartEdit()
		}
	}

	switch key {
	case "q":
		return a, tea.Quit
	case "r":
		if !a.refreshing {
			a.refreshing = true
			return a, refreshDataCmd(a.dataDir, a.useCache, a.log)
		}
		return a, nil
	case "R":
		a.autoRefresh = !a.autoRefresh
		// Persist to config (best-effort)
		cfg := loadConfigOrDefault()
		cfg.TUI.AutoRefresh = a.autoRefresh
		if err := config.Save(cfg); err != nil {
			a.log.WithError(err).Warn("saving auto-refresh setting")
		}
		return a, nil
	case "n":
		a.nextSeries()
		return a, nil
	case "t":
		next := theme.Next(theme.Active.Name)
		theme.SetActive(next.Name)
		cfg := loadConfigOrDefault()
		cfg.Appearance.Theme = next.Name
		if err := config.Save(cfg); err != nil {
			a.log.WithError(err).Warn("saving theme")
		}
		return a, nil
	case "e":
		if a.reportErr != nil {
			return a, nil
		}
		return a, exportCmd(a.report)
	}

	if len(key) == 1 {
		if idx := components.TabIdxByKey(rune(key[0])); idx >= 0 {
			a.activeTab = idx
			return a, nil
		}
	}
	switch key {
	case "left", "shift+tab":
		a.activeTab = (a.activeTab - 1 + len(components.Tabs)) % len(components.Tabs)
	case "right", "tab":
		a.activeTab = (a.activeTab + 1) % len(components.Tabs)
	}
	return a, nil
}

func (a App) halfPage() int {
	halfPage := (a.height - scrollOverhead) / 2
	if halfPage < minHalfPageScroll {
		halfPage = minHalfPageScroll
	}
	return halfPage
}

func (a *App) scrollData(delta int) {
	a.dataScroll += delta
	if maxScroll := len(a.report.Points) - 1; a.dataScroll > maxScroll {
		a.dataScroll = maxScroll
	}
	if a.dataScroll < 0 {
		a.dataScroll = 0
	}
}

func (a App) updateSetupForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	form, cmd := a.setupForm.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		a.setupForm = f
	}

	switch a.setupForm.State {
	case huh.StateCompleted:
		vals := *a.setupVals
		if err := ApplySetup(vals); err != nil {
			a.flash = "could not save config: " + err.Error()
		}
		a.needSetup = false
		a.setupForm = nil
		if vals.Series != "" {
			a.selected = vals.Series
		}
		if dir := strings.TrimSpace(vals.DataDir); dir != "" && dir != a.dataDir {
			a.dataDir = dir
			a.refreshing = true
			return a, refreshDataCmd(a.dataDir, a.useCache, a.log)
		}
		a.recompute()
		return a, nil

	case huh.StateAborted:
		a.needSetup = false
		a.setupForm = nil
		return a, nil
	}

	return a, cmd
}

func (a App) contentWidth() int {
	cw := a.width
	if cw > maxContentWidth {
		cw = maxContentWidth
	}
	return cw
}

func (a App) isCompactLayout() bool {
	return a.contentWidth() < compactWidth
}

// View implements tea.Model.
func (a App) View() string {
	if a.width == 0 {
		return ""
	}

	if a.width < minTerminalWidth {
		return a.viewTooNarrow()
	}

	if !a.loaded {
		return a.viewLoading()
	}

	if a.needSetup && a.setupForm != nil {
		return a.setupForm.View()
	}

	if a.showHelp {
		return a.viewHelp()
	}

	return a.viewMain()
}

func (a App) viewTooNarrow() string {
	h := a.height
	if h < 5 {
		h = 5
	}

	msg := fmt.Sprintf(
		"\n  Terminal too narrow (%d cols)\n\n  wealthview needs at least %d columns.\n",
		a.width,
		minTerminalWidth,
	)

	return padHeight(truncateHeight(msg, h), h)
}

func (a App) viewLoading() string {
	t := theme.Active
	w := a.width
	h := a.height

	cardStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.BorderAccent).
		Background(t.Surface).
		Padding(2, 4)

	logoStyle := lipgloss.NewStyle().
		Foreground(t.AccentBright).
		Background(t.Surface).
		Bold(true)

	subtitleStyle := lipgloss.NewStyle().
		Foreground(t.TextMuted).
		Background(t.Surface)

	spinnerStyle := lipgloss.NewStyle().
		Foreground(t.Accent).
		Background(t.Surface)

	countStyle := lipgloss.NewStyle().
		Foreground(t.TextPrimary).
		Background(t.Surface)

	var b strings.Builder
	b.WriteString(logoStyle.Render("◈ wealthview"))
	b.WriteString(subtitleStyle.Render(" · " + a.title))
	b.WriteString("\n\n")

	if a.progressMax > 0 {
		barW := 40
		if barW > w-30 {
			barW = w - 30
		}
		if barW < 20 {
			barW = 20
		}
		pct := float64(a.progress) / float64(a.progressMax)
		b.WriteString(spinnerStyle.Render(a.spinner.View()))
		b.WriteString(subtitleStyle.Render(" Parsing series files\n\n"))
		b.WriteString(components.ProgressBar(pct, barW))
		b.WriteString("\n")
		b.WriteString(countStyle.Render(cli.FormatNumber(int64(a.progress))))
		b.WriteString(subtitleStyle.Render(" / "))
		b.WriteString(countStyle.Render(cli.FormatNumber(int64(a.progressMax))))
	} else {
		b.WriteString(spinnerStyle.Render(a.spinner.View()))
		b.WriteString(subtitleStyle.Render(" Discovering series..."))
	}

	card := cardStyle.Render(b.String())

	return lipgloss.Place(w, h, lipgloss.Center, lipgloss.Center, card,
		lipgloss.WithWhitespaceBackground(t.Background))
}

func (a App) viewHelp() string {
	t := theme.Active
	h := a.height
	w := a.width

	cardStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.BorderAccent).
		Background(t.Surface).
		Padding(1, 3)

	titleStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.Surface).Bold(true)
	sectionStyle := lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface).Bold(true)
	keyStyle := lipgloss.NewStyle().Foreground(t.Cyan).Background(t.Surface).Bold(true)
	descStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	dimStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)

	var b strings.Builder
	b.WriteString(titleStyle.Render("◈ Keyboard Shortcuts"))
	b.WriteString("\n\n")

	sections := []struct {
		name     string
		bindings []struct{ key, desc string }
	}{
		{"Navigation", []struct{ key, desc string }{
			{"o a d x", "Jump to tab"},
			{"← →", "Previous / Next tab"},
			{"j k", "Scroll data / settings"},
			{"g G", "Top / Bottom of data"},
			{"^d ^u", "Half-page scroll"},
		}},
		{"Actions", []struct{ key, desc string }{
			{"n", "Next series"},
			{"t", "Cycle theme"},
			{"e", "Export combined CSV"},
			{"Enter", "Edit setting"},
			{"Esc", "Cancel edit"},
			{"r", "Refresh data"},
			{"R", "Toggle auto-refresh"},
			{"?", "Toggle help"},
			{"q", "Quit"},
		}},
	}
	for i, sec := range sections {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(sectionStyle.Render(sec.name))
		b.WriteString("\n")
		for _, bind := range sec.bindings {
			fmt.Fprintf(&b, "  %s  %s\n",
				keyStyle.Render(fmt.Sprintf("%-10s", bind.key)),
				descStyle.Render(bind.desc))
		}
	}

	b.WriteString("\n")
	b.WriteString(dimStyle.Render("Press any key to close"))

	card := cardStyle.Render(b.String())

	return lipgloss.Place(w, h, lipgloss.Center, lipgloss.Center, card,
		lipgloss.WithWhitespaceBackground(t.Background))
}

func (a App) viewMain() string {
	t := theme.Active
	w := a.width
	cw := a.contentWidth()
	h := a.height

	// 1. Header: tab bar + series pill
	header := components.RenderTabBar(a.activeTab, w) +
		lipgloss.NewStyle().Background(t.Surface).Width(w).Render(a.renderSeriesPill())

	// 2. Status bar
	dataAge := fmt.Sprintf("%.1fs", a.loadTime.Seconds())
	statusBar := components.RenderStatusBar(w, a.report.Series, dataAge, a.refreshing, a.autoRefresh)

	// 3. Content zone height
	headerH := lipgloss.Height(header)
	statusH := lipgloss.Height(statusBar)
	contentH := h - headerH - statusH
	if contentH < minContentHeight {
		contentH = minContentHeight
	}

	// 4. Tab content
	var content string
	switch {
	case a.reportErr != nil && a.activeTab != tabSettings:
		content = a.renderReportError(cw)
	case a.activeTab == tabOverview:
		content = a.renderOverviewTab(cw)
	case a.activeTab == tabAnalysis:
		content = a.renderAnalysisTab(cw)
	case a.activeTab == tabData:
		content = a.renderDataTab(cw, contentH)
	case a.activeTab == tabSettings:
		content = a.renderSettingsTab(cw)
	}

	// 5. Truncate + pad to exactly contentH lines
	content = padHeight(truncateHeight(content, contentH), contentH)

	// 6. Fill each line to full width with background
	content = fillLinesWithBackground(content, cw, t.Background)

	// 7. Center when w > cw
	content = lipgloss.Place(w, contentH, lipgloss.Center, lipgloss.Top, content,
		lipgloss.WithWhitespaceBackground(t.Background))

	output := lipgloss.JoinVertical(lipgloss.Left, header, content, statusBar)

	return lipgloss.Place(w, h, lipgloss.Left, lipgloss.Top, output,
		lipgloss.WithWhitespaceBackground(t.Background))
}

// renderSeriesPill summarizes the selected series under the tab bar.
func (a App) renderSeriesPill() string {
	t := theme.Active
	dimStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)
	accentStyle := lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface).Bold(true)
	warnStyle := lipgloss.NewStyle().Foreground(t.Orange).Background(t.Surface)

	sep := dimStyle.Render(" │ ")
	pill := dimStyle.Render(" ") + accentStyle.Render(a.title)
	if r := a.report; r.Series != "" {
		pill += sep + accentStyle.Render(r.Series)
		pill += sep + dimStyle.Render(fmt.Sprintf("%d months", r.Observations))
		if actual := r.Actual(); len(actual) > 0 {
			pill += sep + dimStyle.Render(cli.FormatMonthShort(actual[0].Date)+" → "+cli.FormatMonthShort(actual[len(actual)-1].Date))
		}
	}
	if a.fileErrors > 0 {
		pill += sep + warnStyle.Render(fmt.Sprintf("%d file(s) skipped", a.fileErrors))
	}
	if a.loadErr != nil {
		pill += sep + warnStyle.Render("refresh failed")
	}
	if a.flash != "" {
		pill += sep + accentStyle.Render(a.flash)
	}
	return pill + dimStyle.Render(" ")
}

func (a App) renderReportError(cw int) string {
	t := theme.Active
	warnStyle := lipgloss.NewStyle().Foreground(t.Orange).Background(t.Surface)
	hintStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)

	body := warnStyle.Render(a.reportErr.Error()) + "\n\n" +
		hintStyle.Render("Press n for the next series, x for settings, r to reload.")
	return components.ContentCard("No report", body, cw)
}

// ─── Helpers ────────────────────────────────────────────────────

type tickMsg struct{}

func tickCmd() tea.Cmd {
	return tea.Tick(tickInterval, func(time.Time) tea.Msg {
		return tickMsg{}
	})
}

// loadSeries runs the pipeline, preferring the parse cache.
func loadSeries(dataDir string, useCache bool, log *logrus.Logger, progressFn pipeline.ProgressFunc) (*pipeline.LoadResult, error) {
	if useCache {
		cache, err := storeOpen()
		if err == nil {
			cr, loadErr := pipeline.LoadWithCache(dataDir, cache, progressFn)
			_ = cache.Close()
			if loadErr == nil {
				logFileErrors(log, &cr.LoadResult)
				return &cr.LoadResult, nil
			}
			log.WithError(loadErr).Warn("cached load failed, falling back to a full parse")
		} else {
			log.WithError(err).Warn("opening parse cache")
		}
	}

	result, err := pipeline.Load(dataDir, progressFn)
	if err != nil {
		return nil, err
	}
	logFileErrors(log, result)
	return result, nil
}

func logFileErrors(log *logrus.Logger, r *pipeline.LoadResult) {
	for _, err := range r.Errors {
		log.WithError(err).Warn("skipping series file")
	}
}

// loadDataCmd starts the data loading pipeline in a background goroutine.
// It streams ProgressMsg updates and a final DataLoadedMsg through sub.
func loadDataCmd(dataDir string, useCache bool, log *logrus.Logger, sub chan tea.Msg) tea.Cmd {
	return func() tea.Msg {
		go func() {
			start := time.Now()

			// Non-blocking send so workers aren't stalled.
			// If the channel is full, we skip this update and the next one catches up.
			progressFn := func(current, total int) {
				select {
				case sub <- ProgressMsg{Current: current, Total: total}:
				default:
				}
			}

			result, err := loadSeries(dataDir, useCache, log, progressFn)
			if err != nil {
				sub <- DataLoadedMsg{LoadTime: time.Since(start), Err: err}
				return
			}
			sub <- DataLoadedMsg{
				Series:     result.Series,
				FileErrors: result.FileErrors,
				LoadTime:   time.Since(start),
			}
		}()

		// Block until the first message (either ProgressMsg or DataLoadedMsg)
		return <-sub
	}
}

// waitForLoadMsg blocks until the next message arrives from the loader goroutine.
func waitForLoadMsg(sub chan tea.Msg) tea.Cmd {
	return func() tea.Msg {
		return <-sub
	}
}

func storeOpen() (*store.Cache, error) {
	return store.Open(pipeline.CachePath())
}

// refreshDataCmd reloads series data in the background (no progress UI).
func refreshDataCmd(dataDir string, useCache bool, log *logrus.Logger) tea.Cmd {
	return func() tea.Msg {
		start := time.Now()
		result, err := loadSeries(dataDir, useCache, log, nil)
		if err != nil {
			return RefreshDataMsg{LoadTime: time.Since(start), Err: err}
		}
		return RefreshDataMsg{
			Series:     result.Series,
			FileErrors: result.FileErrors,
			LoadTime:   time.Since(start),
		}
	}
}

// exportCmd writes the combined sequence as CSV into the configured export dir.
func exportCmd(report model.Report) tea.Cmd {
	return func() tea.Msg {
		cfg := loadConfigOrDefault()
		name := export.DefaultFileName(report.Series, export.FormatCSV)
		path := filepath.Join(cfg.Export.Dir, name)
		return ExportDoneMsg{Path: path, Err: export.ToFile(path, export.FormatCSV, report)}
	}
}

// chartMonthLabels builds compact X-axis labels: the year is shown on the
// first point and on every January.
func chartMonthLabels(points []model.Point) []string {
	labels := make([]string, len(points))
	for i, p := range points {
		if i == 0 || p.Date.Month() == time.January {
			labels[i] = p.Date.Format("Jan 06")
		} else {
			labels[i] = p.Date.Format("Jan")
		}
	}
	return labels
}

func truncStr(s string, limit int) string {
	if limit <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit-1]) + "…"
}

func truncateHeight(s string, limit int) string {
	lines := strings.Split(s, "\n")
	if len(lines) <= limit {
		return s
	}
	return strings.Join(lines[:limit], "\n")
}

func padHeight(s string, h int) string {
	lines := strings.Split(s, "\n")
	if len(lines) >= h {
		return s
	}
	padding := strings.Repeat("\n", h-len(lines))
	return s + padding
}

// fillLinesWithBackground pads each line to width w with background color.
func fillLinesWithBackground(s string, w int, bg lipgloss.Color) string {
	lines := strings.Split(s, "\n")

	var result strings.Builder
	for i, line := range lines {
		placed := lipgloss.PlaceHorizontal(w, lipgloss.Left, line,
			lipgloss.WithWhitespaceBackground(bg))
		result.WriteString(placed)
		if i < len(lines)-1 {
			result.WriteString("\n")
		}
	}
	return result.String()
}

// ─── Mouse Support ──────────────────────────────────────────────

// tabAtX returns the tab index at the given X coordinate, or -1 if none.
// Hitboxes are derived from the same width rules used by RenderTabBar.
func (a App) tabAtX(x int) int {
	pos := 0
	for i, tab := range components.Tabs {
		tabW := components.TabVisualWidth(tab, i == a.activeTab)

		if x >= pos && x < pos+tabW {
			return i
		}
		pos += tabW

		// Separator is one column between tabs.
		if i < len(components.Tabs)-1 {
			pos++
		}
	}
	return -1
}
