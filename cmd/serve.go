package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/exec"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/theirongolddev/wealthview/internal/cli"
	"github.com/theirongolddev/wealthview/internal/daemon"
	"github.com/theirongolddev/wealthview/internal/logging"
	"github.com/theirongolddev/wealthview/internal/model"
	"github.com/theirongolddev/wealthview/internal/pipeline"
	"github.com/theirongolddev/wealthview/internal/store"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

type serveRuntimeState struct {
	PID       int       `json:"pid"`
	Addr      string    `json:"addr"`
	StartedAt time.Time `json:"started_at"`
	DataDir   string    `json:"data_dir"`
	Series    string    `json:"series,omitempty"`
}

var (
	flagServeAddr         string
	flagServeSchedule     string
	flagServeDetach       bool
	flagServePIDFile      string
	flagServeLogFile      string
	flagServeEventsBuffer int
	flagServeChild        bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the report over HTTP/SSE and reload it on a schedule",
	RunE:  runServe,
}

var serveStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show server process and API status",
	RunE:  runServeStatus,
}

var serveStopCmd = &cobra.Command{
	Use:   "stop",
	Short: "Stop the running server",
	RunE:  runServeStop,
}

func init() {
	defaultPID := filepath.Join(pipeline.CacheDir(), "wealthview.pid")
	defaultLog := filepath.Join(pipeline.CacheDir(), "serve.log")

	serveCmd.PersistentFlags().StringVar(&flagServeAddr, "addr", "", "HTTP listen address (default from config)")
	serveCmd.PersistentFlags().StringVar(&flagServeSchedule, "schedule", "", "Reload schedule in cron syntax (default from config)")
	serveCmd.PersistentFlags().StringVar(&flagServePIDFile, "pid-file", defaultPID, "PID file path")
	serveCmd.PersistentFlags().StringVar(&flagServeLogFile, "log-file", defaultLog, "Log file path for detached mode")
	serveCmd.PersistentFlags().IntVar(&flagServeEventsBuffer, "events-buffer", 0, "Max in-memory events retained (default from config)")

	serveCmd.Flags().BoolVar(&flagServeDetach, "detach", false, "Run the server as a background process")
	serveCmd.Flags().BoolVar(&flagServeChild, "child", false, "Internal: mark detached child process")
	_ = serveCmd.Flags().MarkHidden("child")

	serveCmd.AddCommand(serveStatusCmd)
	serveCmd.AddCommand(serveStopCmd)
	rootCmd.AddCommand(serveCmd)
}

// resolveServeFlags fills unset serve flags from the loaded config.
func resolveServeFlags() {
	if flagServeAddr == "" {
		flagServeAddr = appConfig.Serve.Addr
	}
	if flagServeSchedule == "" {
		flagServeSchedule = appConfig.Serve.ReloadSchedule
	}
	if flagServeEventsBuffer <= 0 {
		flagServeEventsBuffer = appConfig.Serve.EventsBuffer
	}
}

func runServe(_ *cobra.Command, _ []string) error {
	if flagServeDetach && flagServeChild {
		return errors.New("invalid serve launch mode")
	}
	resolveServeFlags()

	if flagServeDetach {
		return startServeDetached()
	}

	return runServeForeground()
}

func startServeDetached() error {
	if err := ensureServerNotRunning(flagServePIDFile); err != nil {
		return err
	}

	exe, err := os.Executable()
	if err != nil {
		return fmt.Errorf("resolve executable: %w", err)
	}

	args := filterDetachArg(os.Args[1:])
	args = append(args, "--child")

	if err := os.MkdirAll(filepath.Dir(flagServePIDFile), 0o750); err != nil {
		return fmt.Errorf("create server directory: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(flagServeLogFile), 0o750); err != nil {
		return fmt.Errorf("create server log directory: %w", err)
	}

	//nolint:gosec // server log path is configured by the local user
	logf, err := os.OpenFile(flagServeLogFile, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0o600)
	if err != nil {
		return fmt.Errorf("open server log file: %w", err)
	}
	defer func() { _ = logf.Close() }()

	cmd := exec.Command(exe, args...) //nolint:gosec // exe/args come from current process invocation
	cmd.Stdout = logf
	cmd.Stderr = logf
	cmd.Stdin = nil
	cmd.Env = os.Environ()

	if err := cmd.Start(); err != nil {
		return fmt.Errorf("start detached server: %w", err)
	}

	fmt.Printf("  Started server (pid %d)\n", cmd.Process.Pid)
	fmt.Printf("  PID file: %s\n", flagServePIDFile)
	fmt.Printf("  API: http://%s/v1/status\n", flagServeAddr)
	fmt.Printf("  Log: %s\n", flagServeLogFile)
	return nil
}

func runServeForeground() error {
	if err := ensureServerNotRunning(flagServePIDFile); err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(flagServePIDFile), 0o750); err != nil {
		return fmt.Errorf("create server directory: %w", err)
	}

	pid := os.Getpid()
	if err := writePID(flagServePIDFile, pid); err != nil {
		return err
	}
	defer func() { _ = os.Remove(flagServePIDFile) }()

	state := serveRuntimeState{
		PID:       pid,
		Addr:      flagServeAddr,
		StartedAt: time.Now(),
		DataDir:   flagDataDir,
		Series:    flagSeries,
	}
	_ = writeState(statePath(flagServePIDFile), state)
	defer func() { _ = os.Remove(statePath(flagServePIDFile)) }()

	level := flagLogLevel
	if level == "" {
		level = os.Getenv("WEALTHVIEW_LOG_LEVEL")
	}
	svcLog := logging.New(level, logrus.InfoLevel, true)

	svc := daemon.New(daemon.Config{
		DataDir:      flagDataDir,
		Series:       flagSeries,
		Schedule:     flagServeSchedule,
		Addr:         flagServeAddr,
		EventsBuffer: flagServeEventsBuffer,
		Load:         serveLoader(flagDataDir, flagSeries, !flagNoCache, svcLog),
		Logger:       svcLog,
	})

	fmt.Printf("  wealthview listening on http://%s\n", flagServeAddr)
	fmt.Printf("  Reloading %s from %s\n", flagServeSchedule, flagDataDir)
	fmt.Printf("  Stop with: wealthview serve stop --pid-file %s\n", flagServePIDFile)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := svc.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

// serveLoader reads the series on every scheduled reload. The parse cache is
// opened per reload so a long-running server never holds the database.
func serveLoader(dataDir, series string, useCache bool, log *logrus.Logger) daemon.LoadFunc {
	return func() (model.Series, error) {
		var result *pipeline.LoadResult
		if useCache {
			if cache, err := store.Open(pipeline.CachePath()); err != nil {
				log.WithError(err).Warn("parse cache unavailable, doing full parse")
			} else {
				cr, err := pipeline.LoadWithCache(dataDir, cache, nil)
				_ = cache.Close()
				if err != nil {
					log.WithError(err).Warn("cache error, falling back to full parse")
				} else {
					result = &cr.LoadResult
				}
			}
		}
		if result == nil {
			r, err := pipeline.Load(dataDir, nil)
			if err != nil {
				return model.Series{}, err
			}
			result = r
		}
		for _, err := range result.Errors {
			log.WithError(err).Warn("skipping series file")
		}
		return pipeline.SelectSeries(result.Series, series)
	}
}

func runServeStatus(_ *cobra.Command, _ []string) error {
	resolveServeFlags()

	pid, err := readPID(flagServePIDFile)
	if err != nil {
		fmt.Printf("  Server: not running (pid file not found)\n")
		return nil
	}

	alive := processAlive(pid)
	if !alive {
		fmt.Printf("  Server: stale pid file (pid %d not alive)\n", pid)
		return nil
	}

	addr := flagServeAddr
	if st, err := readState(statePath(flagServePIDFile)); err == nil && st.Addr != "" {
		addr = st.Addr
	}

	fmt.Printf("  Server PID: %d\n", pid)
	fmt.Printf("  Address: http://%s\n", addr)

	client := &http.Client{Timeout: 2 * time.Second}
	resp, err := client.Get("http://" + addr + "/v1/status") //nolint:noctx // short status probe
	if err != nil {
		fmt.Printf("  API status: unreachable (%v)\n", err)
		return nil
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		fmt.Printf("  API status: HTTP %d\n", resp.StatusCode)
		return nil
	}

	var st daemon.Status
	if err := json.NewDecoder(resp.Body).Decode(&st); err != nil {
		fmt.Printf("  API status: malformed response (%v)\n", err)
		return nil
	}

	if st.LastReloadAt.IsZero() {
		fmt.Printf("  Last reload: pending\n")
	} else {
		fmt.Printf("  Last reload: %s\n", st.LastReloadAt.Local().Format(time.RFC3339))
	}
	fmt.Printf("  Reload count: %d\n", st.ReloadCount)
	fmt.Printf("  Series: %s\n", st.Summary.Series)
	fmt.Printf("  Last value: %s\n", cli.FormatMoney(st.Summary.LastValue.Round(2)))
	fmt.Printf("  Next projection: %s\n", cli.FormatMoney(st.Summary.NextProjection.Round(2)))
	if st.LastError != "" {
		fmt.Printf("  Last error: %s\n", st.LastError)
	}
	return nil
}

func runServeStop(_ *cobra.Command, _ []string) error {
	pid, err := readPID(flagServePIDFile)
	if err != nil {
		return errors.New("server is not running")
	}

	proc, err := os.FindProcess(pid)
	if err != nil {
		return fmt.Errorf("find server process: %w", err)
	}
	if err := proc.Signal(syscall.SIGTERM); err != nil {
		return fmt.Errorf("signal server process: %w", err)
	}

	deadline := time.Now().Add(8 * time.Second)
	for time.Now().Before(deadline) {
		if !processAlive(pid) {
			_ = os.Remove(flagServePIDFile)
			_ = os.Remove(statePath(flagServePIDFile))
			fmt.Printf("  Stopped server (pid %d)\n", pid)
			return nil
		}
		time.Sleep(150 * time.Millisecond)
	}

	return fmt.Errorf("server (pid %d) did not exit in time", pid)
}

func filterDetachArg(args []string) []string {
	out := make([]string, 0, len(args))
	for _, a := range args {
		if a == "--detach" || strings.HasPrefix(a, "--detach=") {
			continue
		}
		out = append(out, a)
	}
	return out
}

func ensureServerNotRunning(pidFile string) error {
	pid, err := readPID(pidFile)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}
	if processAlive(pid) {
		return fmt.Errorf("server already running (pid %d)", pid)
	}
	_ = os.Remove(pidFile)
	_ = os.Remove(statePath(pidFile))
	return nil
}

func writePID(path string, pid int) error {
	return os.WriteFile(path, []byte(strconv.Itoa(pid)+"\n"), 0o600)
}

func readPID(path string) (int, error) {
	//nolint:gosec // server pid path is configured by the local user
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, err
	}
	pid, err := strconv.Atoi(strings.TrimSpace(string(data)))
	if err != nil || pid <= 0 {
		return 0, fmt.Errorf("invalid pid in %s", path)
	}
	return pid, nil
}

func processAlive(pid int) bool {
	proc, err := os.FindProcess(pid)
	if err != nil {
		return false
	}
	err = proc.Signal(syscall.Signal(0))
	return err == nil || errors.Is(err, syscall.EPERM)
}

func statePath(pidFile string) string {
	return pidFile + ".json"
}

func writeState(path string, st serveRuntimeState) error {
	data, err := json.MarshalIndent(st, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(data, '\n'), 0o600)
}

func readState(path string) (serveRuntimeState, error) {
	var st serveRuntimeState
	//nolint:gosec // server state path is configured by the local user
	data, err := os.ReadFile(path)
	if err != nil {
		return st, err
	}
	if err := json.Unmarshal(data, &st); err != nil {
		return st, err
	}
	return st, nil
}
