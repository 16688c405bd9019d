package cmd

import (
	"errors"
	"fmt"

	"github.com/theirongolddev/wealthview/internal/config"
	"github.com/theirongolddev/wealthview/internal/source"
	"github.com/theirongolddev/wealthview/internal/tui"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
)

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "First-time setup wizard",
	RunE:  runSetup,
}

func init() {
	rootCmd.AddCommand(setupCmd)
}

func runSetup(_ *cobra.Command, _ []string) error {
	files, err := source.ScanDir(flagDataDir)
	if err != nil {
		logger.WithError(err).Debug("scan before setup failed")
	}

	vals := tui.DefaultSetupValues(flagDataDir)
	form := tui.NewSetupForm(len(source.SeriesNames(files)), &vals)
	if err := form.Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			fmt.Println("  Setup cancelled, nothing saved.")
			return nil
		}
		return fmt.Errorf("setup form: %w", err)
	}

	if err := tui.ApplySetup(vals); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}

	fmt.Println()
	fmt.Printf("  Saved to %s\n", config.ConfigPath())
	fmt.Println("  Run `wealthview setup` anytime to reconfigure.")
	fmt.Println()
	return nil
}
