package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/theirongolddev/wealthview/internal/logging"
	"github.com/theirongolddev/wealthview/internal/pipeline"
	"github.com/theirongolddev/wealthview/internal/tui"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch interactive TUI dashboard",
	RunE:  runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(_ *cobra.Command, _ []string) error {
	// Force TrueColor profile so all background styling produces ANSI codes
	// Without this, lipgloss may default to Ascii profile (no colors)
	lipgloss.SetColorProfile(termenv.TrueColor)

	// The alt screen owns stderr, so the dashboard logs to a file.
	tuiLog := logging.Discard()
	logPath := filepath.Join(pipeline.CacheDir(), "tui.log")
	if err := os.MkdirAll(filepath.Dir(logPath), 0o750); err == nil {
		//nolint:gosec // log path lives in the user's cache dir
		if f, err := os.OpenFile(logPath, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0o600); err == nil {
			defer func() { _ = f.Close() }()
			level := flagLogLevel
			if level == "" {
				level = appConfig.General.LogLevel
			}
			tuiLog = logging.NewWithWriter(f, level, logrus.WarnLevel, false)
		}
	}

	app := tui.NewApp(tui.Options{
		DataDir:  flagDataDir,
		Series:   flagSeries,
		UseCache: !flagNoCache,
		Logger:   tuiLog,
	})
	p := tea.NewProgram(app, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}

	return nil
}
