package tui

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/theirongolddev/wealthview/internal/cli"
	"github.com/theirongolddev/wealthview/internal/config"
	"github.com/theirongolddev/wealthview/internal/pipeline"
	"github.com/theirongolddev/wealthview/internal/tui/components"
	"github.com/theirongolddev/wealthview/internal/tui/theme"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const (
	settingsFieldTheme = iota
	settingsFieldSeries
	settingsFieldCurrency
	settingsFieldTitle
	settingsFieldAutoRefresh
	settingsFieldRefreshInterval
	settingsFieldCount // sentinel
)

// settingsState tracks the settings tab state.
type settingsState struct {
	cursor  int
	editing bool
	input   textinput.Model
	saved   bool  // flash "saved" message briefly
	saveErr error // non-nil if last save failed
}

func newSettingsInput() textinput.Model {
	ti := textinput.New()
	ti.CharLimit = 256
	ti.Width = 50
	return ti
}

func (a App) settingsStartEdit() (tea.Model, tea.Cmd) {
	cfg := loadConfigOrDefault()
	a.settings.editing = true
	a.settings.saved = false

	ti := newSettingsInput()

	switch a.settings.cursor {
	case settingsFieldTheme:
		ti.Placeholder = strings.Join(theme.Names(), ", ")
		ti.SetValue(theme.Active.Name)
	case settingsFieldSeries:
		ti.Placeholder = "series name (empty for the first)"
		ti.SetValue(a.selected)
	case settingsFieldCurrency:
		ti.Placeholder = "$"
		ti.CharLimit = 4
		ti.SetValue(cfg.Appearance.Currency)
	case settingsFieldTitle:
		ti.Placeholder = config.DefaultConfig().General.Title
		ti.SetValue(a.title)
	case settingsFieldAutoRefresh:
		ti.Placeholder = "true or false"
		ti.SetValue(strconv.FormatBool(a.autoRefresh))
	case settingsFieldRefreshInterval:
		ti.Placeholder = "30 (seconds, minimum 10)"
		ti.SetValue(strconv.Itoa(int(a.refreshInterval.Seconds())))
	}

	ti.Focus()
	a.settings.input = ti
	return a, ti.Cursor.BlinkCmd()
}

func (a App) updateSettingsInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		a.settingsSave()
		a.settings.editing = false
		a.settings.saved = a.settings.saveErr == nil
		return a, nil
	case "esc":
		a.settings.editing = false
		return a, nil
	}

	var cmd tea.Cmd
	a.settings.input, cmd = a.settings.input.Update(msg)
	return a, cmd
}

func (a *App) settingsSave() {
	cfg := loadConfigOrDefault()
	val := strings.TrimSpace(a.settings.input.Value())

	switch a.settings.cursor {
	case settingsFieldTheme:
		if !theme.Valid(val) {
			a.settings.saveErr = fmt.Errorf("unknown theme %q", val)
			return
		}
		cfg.Appearance.Theme = val
		theme.SetActive(val)
	case settingsFieldSeries:
		cfg.General.Series = val
		a.selected = val
		a.dataScroll = 0
		a.recompute()
	case settingsFieldCurrency:
		if val == "" {
			a.settings.saveErr = errors.New("currency symbol is required")
			return
		}
		cfg.Appearance.Currency = val
		cli.SetCurrency(val)
	case settingsFieldTitle:
		if val == "" {
			val = config.DefaultConfig().General.Title
		}
		cfg.General.Title = val
		a.title = val
	case settingsFieldAutoRefresh:
		b, err := strconv.ParseBool(val)
		if err != nil {
			a.settings.saveErr = fmt.Errorf("auto refresh: %w", err)
			return
		}
		cfg.TUI.AutoRefresh = b
		a.autoRefresh = b
	case settingsFieldRefreshInterval:
		interval, err := strconv.Atoi(val)
		if err != nil || interval < 10 {
			a.settings.saveErr = errors.New("refresh interval must be a number of seconds >= 10")
			return
		}
		cfg.TUI.RefreshIntervalSec = interval
		a.refreshInterval = time.Duration(interval) * time.Second
	}

	a.settings.saveErr = config.Save(cfg)
}

func (a App) renderSettingsTab(cw int) string {
	t := theme.Active
	cfg := loadConfigOrDefault()

	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	valueStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	selectedStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.SurfaceBright).Bold(true)
	selectedLabelStyle := lipgloss.NewStyle().Foreground(t.Accent).Background(t.SurfaceBright).Bold(true)
	accentStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.Surface)
	greenStyle := lipgloss.NewStyle().Foreground(t.GreenBright).Background(t.Surface)
	markerStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.SurfaceBright)

	seriesDisplay := a.selected
	if seriesDisplay == "" {
		seriesDisplay = "(first available)"
	}

	fields := []struct{ label, value string }{
		{"Theme", theme.Active.Name},
		{"Series", seriesDisplay},
		{"Currency", cfg.Appearance.Currency},
		{"Title", a.title},
		{"Auto Refresh", strconv.FormatBool(a.autoRefresh)},
		{"Refresh Interval", fmt.Sprintf("%ds", int(a.refreshInterval.Seconds()))},
	}

	var formBody strings.Builder
	for i, f := range fields {
		if a.settings.editing && i == a.settings.cursor {
			formBody.WriteString(markerStyle.Render("▸ "))
			formBody.WriteString(accentStyle.Render(fmt.Sprintf("%-18s ", f.label)))
			formBody.WriteString(a.settings.input.View())
			formBody.WriteString("\n")
			continue
		}

		if i == a.settings.cursor {
			marker := markerStyle.Render("▸ ")
			label := selectedLabelStyle.Render(fmt.Sprintf("%-18s ", f.label+":"))
			value := selectedStyle.Render(f.value)
			formBody.WriteString(marker)
			formBody.WriteString(label)
			formBody.WriteString(value)
			usedWidth := lipgloss.Width(marker) + lipgloss.Width(label) + lipgloss.Width(value)
			if padLen := components.CardInnerWidth(cw) - usedWidth; padLen > 0 {
				formBody.WriteString(lipgloss.NewStyle().Background(t.SurfaceBright).Render(strings.Repeat(" ", padLen)))
			}
		} else {
			formBody.WriteString(lipgloss.NewStyle().Background(t.Surface).Render("  "))
			formBody.WriteString(labelStyle.Render(fmt.Sprintf("%-18s ", f.label+":")))
			formBody.WriteString(valueStyle.Render(f.value))
		}
		formBody.WriteString("\n")
	}

	if a.settings.saveErr != nil {
		warnStyle := lipgloss.NewStyle().Foreground(t.Orange).Background(t.Surface)
		formBody.WriteString("\n")
		formBody.WriteString(warnStyle.Render(fmt.Sprintf("Save failed: %s", a.settings.saveErr)))
	} else if a.settings.saved {
		formBody.WriteString("\n")
		formBody.WriteString(greenStyle.Render("Saved!"))
	}

	formBody.WriteString("\n")
	formBody.WriteString(labelStyle.Render("[j/k] navigate  [Enter] edit  [Esc] cancel"))

	cachePath := "(disabled)"
	if a.useCache {
		cachePath = pipeline.CachePath()
	}
	available := strings.Join(pipeline.Names(a.series), ", ")
	if available == "" {
		available = "(built-in sample)"
	}

	info := []struct{ label, value string }{
		{"Data directory:", a.dataDir},
		{"Series loaded:", cli.FormatNumber(int64(len(a.series)))},
		{"Available:", available},
		{"Files skipped:", cli.FormatNumber(int64(a.fileErrors))},
		{"Load time:", fmt.Sprintf("%.1fs", a.loadTime.Seconds())},
		{"Parse cache:", cachePath},
		{"Config file:", config.ConfigPath()},
	}
	var infoBody strings.Builder
	for i, row := range info {
		infoBody.WriteString(labelStyle.Render(fmt.Sprintf("%-17s", row.label)))
		infoBody.WriteString(valueStyle.Render(truncStr(row.value, components.CardInnerWidth(cw)-17)))
		if i < len(info)-1 {
			infoBody.WriteString("\n")
		}
	}

	var b strings.Builder
	b.WriteString(components.ContentCard("Settings", formBody.String(), cw))
	b.WriteString("\n")
	b.WriteString(components.ContentCard("General", infoBody.String(), cw))

	return b.String()
}
