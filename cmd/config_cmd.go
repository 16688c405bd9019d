package cmd

import (
	"fmt"

	"github.com/theirongolddev/wealthview/internal/config"

	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show current configuration",
	RunE:  runConfig,
}

func init() {
	rootCmd.AddCommand(configCmd)
}

func runConfig(_ *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	fmt.Printf("  Config file: %s\n", config.ConfigPath())
	if config.Exists() {
		fmt.Println("  Status: loaded")
	} else {
		fmt.Println("  Status: using defaults (no config file)")
	}
	fmt.Println()

	fmt.Println("  [General]")
	fmt.Printf("    Data directory: %s\n", cfg.DataDir())
	fmt.Printf("    Series:         %s\n", orDefault(cfg.General.Series, "(first by name)"))
	fmt.Printf("    Title:          %s\n", cfg.General.Title)
	fmt.Printf("    Log level:      %s\n", cfg.General.LogLevel)
	fmt.Println()

	fmt.Println("  [Appearance]")
	fmt.Printf("    Theme:    %s\n", cfg.Appearance.Theme)
	fmt.Printf("    Currency: %s\n", cfg.Appearance.Currency)
	fmt.Println()

	fmt.Println("  [Export]")
	fmt.Printf("    Format:    %s\n", cfg.Export.Format)
	fmt.Printf("    Directory: %s\n", orDefault(cfg.Export.Dir, "(working directory)"))
	fmt.Println()

	fmt.Println("  [Serve]")
	fmt.Printf("    Address:         %s\n", cfg.Serve.Addr)
	fmt.Printf("    Reload schedule: %s\n", cfg.Serve.ReloadSchedule)
	fmt.Printf("    Events buffer:   %d\n", cfg.Serve.EventsBuffer)
	fmt.Println()

	fmt.Println("  [TUI]")
	fmt.Printf("    Auto refresh:     %v\n", cfg.TUI.AutoRefresh)
	fmt.Printf("    Refresh interval: %ds\n", cfg.TUI.RefreshIntervalSec)
	fmt.Println()

	fmt.Println("  Run `wealthview setup` to reconfigure.")
	return nil
}

func orDefault(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
