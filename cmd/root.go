// Package cmd implements the wealthview CLI commands.
package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/theirongolddev/wealthview/internal/cli"
	"github.com/theirongolddev/wealthview/internal/config"
	"github.com/theirongolddev/wealthview/internal/logging"
	"github.com/theirongolddev/wealthview/internal/model"
	"github.com/theirongolddev/wealthview/internal/pipeline"
	"github.com/theirongolddev/wealthview/internal/source"
	"github.com/theirongolddev/wealthview/internal/store"
	"github.com/theirongolddev/wealthview/internal/tui/theme"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	flagDataDir  string
	flagSeries   string
	flagNoCache  bool
	flagQuiet    bool
	flagLogLevel string
)

var (
	appConfig = config.DefaultConfig()
	logger    = logging.Discard()
)

var rootCmd = &cobra.Command{
	Use:               "wealthview",
	Short:             "Wealth projection dashboard",
	Long:              "Project a monthly wealth series two months ahead and summarize it by year and month.",
	PersistentPreRunE: initRuntime,
	RunE:              runSummary,
	SilenceUsage:      true,
}

// Execute is the main entry point called from main.go.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&flagDataDir, "data-dir", "d", "", "Directory of series files (default from config)")
	rootCmd.PersistentFlags().StringVarP(&flagSeries, "series", "s", "", "Series to report on (default: first by name)")
	rootCmd.PersistentFlags().BoolVar(&flagNoCache, "no-cache", false, "Skip SQLite cache, reparse everything")
	rootCmd.PersistentFlags().BoolVarP(&flagQuiet, "quiet", "q", false, "Suppress progress output")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "Log level: debug, info, warn, error")
}

// initRuntime resolves config, flags and the logger before any command runs.
// Flags win over the environment, which wins over the config file.
func initRuntime(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "  Config error, using defaults: %v\n", err)
		cfg = config.DefaultConfig()
	}
	appConfig = cfg

	if flagDataDir == "" {
		flagDataDir = cfg.DataDir()
	}
	if flagSeries == "" {
		flagSeries = cfg.General.Series
	}
	level := flagLogLevel
	if level == "" {
		level = cfg.General.LogLevel
	}
	logger = logging.New(level, logrus.WarnLevel, false)

	cli.SetCurrency(cfg.Appearance.Currency)
	theme.SetActive(cfg.Appearance.Theme)

	logger.WithFields(logrus.Fields{
		"command":  cmd.Name(),
		"data_dir": flagDataDir,
		"series":   flagSeries,
	}).Debug("runtime initialized")
	return nil
}

// loadData is the shared data loading path used by all commands.
// Uses SQLite cache when available for fast subsequent runs.
func loadData() (*pipeline.LoadResult, error) {
	if !flagQuiet {
		fmt.Fprintf(os.Stderr, "  Scanning %s...\n", flagDataDir)
	}

	progressFn := func(current, total int) {
		if flagQuiet {
			return
		}
		if current%10 == 0 || current == total {
			fmt.Fprintf(os.Stderr, "\r  Parsing %s", cli.RenderProgressBar(current, total, 20))
		}
	}

	if !flagNoCache {
		cache, err := store.Open(pipeline.CachePath())
		if err != nil {
			logger.WithError(err).Warn("parse cache unavailable, doing full parse")
		} else {
			defer func() { _ = cache.Close() }()

			cr, err := pipeline.LoadWithCache(flagDataDir, cache, progressFn)
			if err != nil {
				logger.WithError(err).Warn("cache error, falling back to full parse")
			} else {
				if !flagQuiet && cr.TotalFiles > 0 {
					cached, err := cache.SeriesCount()
					if err != nil {
						logger.WithError(err).Debug("counting cached series")
						cached = -1
					}
					fmt.Fprintf(os.Stderr, "\r  %s    \n", cacheStatsLine(cr, cached))
				}
				reportFileErrors(&cr.LoadResult)
				return &cr.LoadResult, nil
			}
		}
	}

	result, err := pipeline.Load(flagDataDir, progressFn)
	if err != nil {
		return nil, err
	}

	if !flagQuiet && result.TotalFiles > 0 {
		fmt.Fprintf(os.Stderr, "\r  Parsed %d series files    \n", result.ParsedFiles)
	}
	reportFileErrors(result)
	return result, nil
}

// cacheStatsLine summarizes a cached load. cached is the number of series
// files held in the cache, or negative when unknown.
func cacheStatsLine(cr *pipeline.CachedLoadResult, cached int) string {
	line := fmt.Sprintf("%d cached + %d reparsed", cr.CacheHits, cr.Reparsed)
	if cr.Reparsed == 0 {
		line = fmt.Sprintf("Loaded %d series from cache", len(cr.Series))
	}
	if cached >= 0 {
		line += fmt.Sprintf(" (%d in cache)", cached)
	}
	return line
}

func reportFileErrors(result *pipeline.LoadResult) {
	for _, err := range result.Errors {
		logger.WithError(err).Warn("skipping series file")
	}
	if result.FileErrors > 0 && !flagQuiet {
		fmt.Fprintf(os.Stderr, "  %d file(s) could not be parsed (see --log-level warn)\n", result.FileErrors)
	}
}

// loadSeries loads the data directory and selects the requested series.
// With no series files, the built-in dataset is used.
func loadSeries() (model.Series, error) {
	result, err := loadData()
	if err != nil {
		return model.Series{}, err
	}
	series, err := pipeline.SelectSeries(result.Series, flagSeries)
	if err != nil {
		return model.Series{}, err
	}
	if series.Source == source.EmbeddedSource && !flagQuiet {
		fmt.Fprintf(os.Stderr, "  No series files in %s, showing the built-in sample\n", flagDataDir)
	}
	return series, nil
}

// loadReport loads the selected series and derives its report.
func loadReport() (model.Report, error) {
	series, err := loadSeries()
	if err != nil {
		return model.Report{}, err
	}
	report, err := pipeline.BuildReport(series, time.Now())
	if err != nil {
		return model.Report{}, err
	}
	logger.WithFields(logrus.Fields{
		"series":       report.Series,
		"observations": report.Observations,
	}).Debug("report built")
	return report, nil
}
