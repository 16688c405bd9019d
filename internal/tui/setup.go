package tui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/theirongolddev/wealthview/internal/cli"
	"github.com/theirongolddev/wealthview/internal/config"
	"github.com/theirongolddev/wealthview/internal/tui/theme"

	"github.com/charmbracelet/huh"
)

// SetupValues holds the answers of the first-run setup form.
type SetupValues struct {
	DataDir  string
	Series   string
	Theme    string
	Currency string
}

// DefaultSetupValues seeds the form from the current config.
// dataDir, when set, wins over the configured directory.
func DefaultSetupValues(dataDir string) SetupValues {
	cfg := loadConfigOrDefault()
	if dataDir == "" {
		dataDir = cfg.DataDir()
	}
	return SetupValues{
		DataDir:  dataDir,
		Series:   cfg.General.Series,
		Theme:    cfg.Appearance.Theme,
		Currency: cfg.Appearance.Currency,
	}
}

// NewSetupForm builds the huh form used by the dashboard and `wealthview setup`.
func NewSetupForm(seriesCount int, vals *SetupValues) *huh.Form {
	themeOpts := make([]huh.Option[string], 0, len(theme.All))
	for _, t := range theme.All {
		themeOpts = append(themeOpts, huh.NewOption(t.Name, t.Name))
	}

	found := "No series files found yet; the built-in sample dataset will be shown."
	if seriesCount > 0 {
		found = fmt.Sprintf("Found %d series.", seriesCount)
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewNote().
				Title("Welcome to wealthview").
				Description(found+"\nLet's set up a few things."),
			huh.NewInput().
				Title("Data directory").
				Description("Folder holding monthly series files (.csv, .json, .yaml).").
				Value(&vals.DataDir),
			huh.NewInput().
				Title("Default series").
				Description("Series name (file name without extension). Leave empty for the first one.").
				Value(&vals.Series),
		),
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Color theme").
				Options(themeOpts...).
				Value(&vals.Theme),
			huh.NewInput().
				Title("Currency symbol").
				CharLimit(4).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return errors.New("currency symbol is required")
					}
					return nil
				}).
				Value(&vals.Currency),
		),
	).WithShowHelp(false)
}

// ApplySetup activates the chosen settings and persists them.
func ApplySetup(vals SetupValues) error {
	cfg := loadConfigOrDefault()

	if dir := strings.TrimSpace(vals.DataDir); dir != "" {
		cfg.General.DataDir = dir
	}
	cfg.General.Series = strings.TrimSpace(vals.Series)

	if theme.Valid(vals.Theme) {
		cfg.Appearance.Theme = vals.Theme
		theme.SetActive(vals.Theme)
	}
	if c := strings.TrimSpace(vals.Currency); c != "" {
		cfg.Appearance.Currency = c
		cli.SetCurrency(c)
	}

	return config.Save(cfg)
}
