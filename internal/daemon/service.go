// Package daemon provides the long-running HTTP report service.
package daemon

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/mux"
	"github.com/robfig/cron/v3"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/theirongolddev/wealthview/internal/export"
	"github.com/theirongolddev/wealthview/internal/model"
	"github.com/theirongolddev/wealthview/internal/pipeline"
)

// LoadFunc returns the series the service reports on.
type LoadFunc func() (model.Series, error)

// Config controls the service runtime behavior.
type Config struct {
	DataDir      string
	Series       string
	Schedule     string // cron spec for reloads, e.g. "@every 30s"
	Addr         string
	EventsBuffer int

	// Load overrides how the series is read. When nil, the series is loaded
	// from DataDir and selected by name.
	Load   LoadFunc
	Logger *logrus.Logger
	Now    func() time.Time
}

// Snapshot is a compact report state for status/event payloads.
type Snapshot struct {
	At             time.Time       `json:"at"`
	Series         string          `json:"series"`
	Source         string          `json:"source"`
	Observations   int             `json:"observations"`
	LastDate       time.Time       `json:"last_date"`
	LastValue      decimal.Decimal `json:"last_value"`
	AverageDelta   decimal.Decimal `json:"average_delta"`
	NextProjection decimal.Decimal `json:"next_projection"`
}

// Delta captures snapshot changes between reloads.
type Delta struct {
	Observations   int             `json:"observations"`
	LastValue      decimal.Decimal `json:"last_value"`
	AverageDelta   decimal.Decimal `json:"average_delta"`
	NextProjection decimal.Decimal `json:"next_projection"`
	SeriesChanged  bool            `json:"series_changed,omitempty"`
}

func (d Delta) isZero() bool {
	return d.Observations == 0 &&
		d.LastValue.IsZero() &&
		d.AverageDelta.IsZero() &&
		d.NextProjection.IsZero() &&
		!d.SeriesChanged
}

// Event types.
const (
	EventSnapshot      = "snapshot"
	EventReportChanged = "report_changed"
)

// Event is emitted whenever the report changes.
type Event struct {
	ID        int64     `json:"id"`
	Type      string    `json:"type"`
	Timestamp time.Time `json:"timestamp"`
	Snapshot  Snapshot  `json:"snapshot"`
	Delta     Delta     `json:"delta"`
}

// Status is served at /v1/status.
type Status struct {
	StartedAt       time.Time `json:"started_at"`
	LastReloadAt    time.Time `json:"last_reload_at"`
	Schedule        string    `json:"schedule"`
	ReloadCount     int64     `json:"reload_count"`
	DataDir         string    `json:"data_dir"`
	Series          string    `json:"series,omitempty"`
	Summary         Snapshot  `json:"summary"`
	LastError       string    `json:"last_error,omitempty"`
	EventCount      int       `json:"event_count"`
	SubscriberCount int       `json:"subscriber_count"`
}

// Service provides the report runtime and HTTP API.
type Service struct {
	cfg Config
	log *logrus.Logger

	// reloadMu serializes ReloadOnce so events leave in ID order.
	reloadMu sync.Mutex

	mu           sync.RWMutex
	startedAt    time.Time
	lastReloadAt time.Time
	reloadCount  int64
	lastError    string
	hasReport    bool
	report       model.Report
	snapshot     Snapshot
	nextEventID  int64
	events       []Event

	nextSubID int
	subs      map[int]chan Event
}

// New returns a new service with the provided config.
func New(cfg Config) *Service {
	if cfg.Schedule == "" {
		cfg.Schedule = "@every 30s"
	}
	if cfg.EventsBuffer < 1 {
		cfg.EventsBuffer = 200
	}
	if cfg.Addr == "" {
		cfg.Addr = "127.0.0.1:8787"
	}
	if cfg.Logger == nil {
		cfg.Logger = logrus.StandardLogger()
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}

	s := &Service{
		cfg:       cfg,
		log:       cfg.Logger,
		startedAt: cfg.Now(),
		subs:      make(map[int]chan Event),
	}
	if s.cfg.Load == nil {
		s.cfg.Load = s.loadFromDir
	}
	return s
}

// Run serves HTTP and reloads on the cron schedule until ctx is canceled.
func (s *Service) Run(ctx context.Context) error {
	sched := cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.PrintfLogger(s.log))))
	if _, err := sched.AddFunc(s.cfg.Schedule, s.ReloadOnce); err != nil {
		return fmt.Errorf("invalid reload schedule %q: %w", s.cfg.Schedule, err)
	}

	server := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	// Seed the initial report so status is useful immediately.
	s.ReloadOnce()

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		s.log.WithField("addr", s.cfg.Addr).Info("http server listening")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		sched.Start()
		s.log.WithField("schedule", s.cfg.Schedule).Info("reload scheduler started")
		<-gctx.Done()

		<-sched.Stop().Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

// Handler returns the HTTP API.
func (s *Service) Handler() http.Handler {
	r := mux.NewRouter()
	r.Use(s.logRequests)
	r.HandleFunc("/healthz", s.handleHealth).Methods(http.MethodGet)
	r.HandleFunc("/v1/status", s.handleStatus).Methods(http.MethodGet)
	r.HandleFunc("/v1/report", s.handleReport).Methods(http.MethodGet)
	r.HandleFunc("/v1/export.csv", s.handleExportCSV).Methods(http.MethodGet)
	r.HandleFunc("/v1/events", s.handleEvents).Methods(http.MethodGet)
	r.HandleFunc("/v1/stream", s.handleStream).Methods(http.MethodGet)
	return r
}

func (s *Service) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		s.log.WithFields(logrus.Fields{
			"method":   r.Method,
			"path":     r.URL.Path,
			"duration": time.Since(start).String(),
		}).Debug("request")
	})
}

// ReloadOnce reloads the series, rebuilds the report, and publishes an event
// if anything changed.
func (s *Service) ReloadOnce() {
	s.reloadMu.Lock()
	defer s.reloadMu.Unlock()

	now := s.cfg.Now()

	report, err := s.buildReport(now)
	if err != nil {
		s.mu.Lock()
		s.lastError = err.Error()
		s.lastReloadAt = now
		s.reloadCount++
		s.mu.Unlock()
		s.log.WithError(err).Warn("reload failed")
		return
	}

	snap := snapshotFromReport(report, now)

	var (
		ev      Event
		publish bool
	)

	s.mu.Lock()
	prev := s.snapshot
	prevExists := s.hasReport

	s.hasReport = true
	s.report = report
	s.snapshot = snap
	s.lastReloadAt = now
	s.reloadCount++
	s.lastError = ""

	if !prevExists {
		s.nextEventID++
		ev = Event{
			ID:        s.nextEventID,
			Type:      EventSnapshot,
			Timestamp: now,
			Snapshot:  snap,
		}
		publish = true
	} else {
		delta := diffSnapshots(prev, snap)
		if !delta.isZero() {
			s.nextEventID++
			ev = Event{
				ID:        s.nextEventID,
				Type:      EventReportChanged,
				Timestamp: now,
				Snapshot:  snap,
				Delta:     delta,
			}
			publish = true
		}
	}
	if publish {
		s.appendEventLocked(ev)
	}
	s.mu.Unlock()

	if publish {
		s.log.WithFields(logrus.Fields{
			"event":        ev.Type,
			"series":       snap.Series,
			"observations": snap.Observations,
		}).Info("report updated")
	}
}

func (s *Service) buildReport(now time.Time) (model.Report, error) {
	series, err := s.cfg.Load()
	if err != nil {
		return model.Report{}, err
	}
	return pipeline.BuildReport(series, now)
}

func (s *Service) loadFromDir() (model.Series, error) {
	result, err := pipeline.Load(s.cfg.DataDir, nil)
	if err != nil {
		return model.Series{}, err
	}
	for _, fe := range result.Errors {
		s.log.WithError(fe).Warn("skipping series file")
	}
	return pipeline.SelectSeries(result.Series, s.cfg.Series)
}

func snapshotFromReport(r model.Report, at time.Time) Snapshot {
	snap := Snapshot{
		At:           at,
		Series:       r.Series,
		Source:       r.Source,
		Observations: r.Observations,
		LastDate:     r.Headline.Current.Date,
		LastValue:    r.Headline.Current.Value,
		AverageDelta: r.AverageDelta,
	}
	if len(r.Headline.Projected) > 0 {
		snap.NextProjection = r.Headline.Projected[0].Value
	}
	return snap
}

func diffSnapshots(prev, curr Snapshot) Delta {
	return Delta{
		Observations:   curr.Observations - prev.Observations,
		LastValue:      curr.LastValue.Sub(prev.LastValue),
		AverageDelta:   curr.AverageDelta.Sub(prev.AverageDelta),
		NextProjection: curr.NextProjection.Sub(prev.NextProjection),
		SeriesChanged:  curr.Series != prev.Series || curr.Source != prev.Source,
	}
}

// appendEventLocked records ev and fans it out. s.mu must be held.
func (s *Service) appendEventLocked(ev Event) {
	s.events = append(s.events, ev)
	if len(s.events) > s.cfg.EventsBuffer {
		s.events = s.events[len(s.events)-s.cfg.EventsBuffer:]
	}

	for _, ch := range s.subs {
		select {
		case ch <- ev:
		default:
		}
	}
}

func (s *Service) snapshotStatus() Status {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return Status{
		StartedAt:       s.startedAt,
		LastReloadAt:    s.lastReloadAt,
		Schedule:        s.cfg.Schedule,
		ReloadCount:     s.reloadCount,
		DataDir:         s.cfg.DataDir,
		Series:          s.cfg.Series,
		Summary:         s.snapshot,
		LastError:       s.lastError,
		EventCount:      len(s.events),
		SubscriberCount: len(s.subs),
	}
}

// currentReport returns the latest report, or false before the first
// successful reload.
func (s *Service) currentReport() (model.Report, string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.report, s.lastError, s.hasReport
}

func (s *Service) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("ok\n"))
}

func (s *Service) handleStatus(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.snapshotStatus())
}

func (s *Service) handleReport(w http.ResponseWriter, _ *http.Request) {
	report, lastErr, ok := s.currentReport()
	if !ok {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"error": reportUnavailable(lastErr)})
		return
	}
	writeJSON(w, http.StatusOK, report)
}

func (s *Service) handleExportCSV(w http.ResponseWriter, _ *http.Request) {
	report, lastErr, ok := s.currentReport()
	if !ok {
		http.Error(w, reportUnavailable(lastErr), http.StatusServiceUnavailable)
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition",
		fmt.Sprintf("attachment; filename=%q", export.DefaultFileName(report.Series, export.FormatCSV)))
	if err := export.WriteCSV(w, report.Points); err != nil {
		s.log.WithError(err).Warn("writing csv export")
	}
}

func reportUnavailable(lastErr string) string {
	if lastErr == "" {
		return "report not ready"
	}
	return "report not ready: " + lastErr
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func (s *Service) handleEvents(w http.ResponseWriter, _ *http.Request) {
	s.mu.RLock()
	events := make([]Event, len(s.events))
	copy(events, s.events)
	s.mu.RUnlock()

	writeJSON(w, http.StatusOK, events)
}

func (s *Service) handleStream(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	ch := make(chan Event, 16)
	id := s.addSubscriber(ch)
	defer s.removeSubscriber(id)

	// Send current snapshot immediately.
	current := Event{
		Type:      EventSnapshot,
		Timestamp: s.cfg.Now(),
		Snapshot:  s.snapshotStatus().Summary,
	}
	writeSSE(w, current)
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			return
		case ev := <-ch:
			writeSSE(w, ev)
			flusher.Flush()
		}
	}
}

func writeSSE(w http.ResponseWriter, ev Event) {
	data, err := json.Marshal(ev)
	if err != nil {
		return
	}
	if ev.ID > 0 {
		_, _ = fmt.Fprintf(w, "id: %d\n", ev.ID)
	}
	_, _ = fmt.Fprintf(w, "event: %s\n", ev.Type)
	_, _ = fmt.Fprintf(w, "data: %s\n\n", data)
}

func (s *Service) addSubscriber(ch chan Event) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextSubID++
	id := s.nextSubID
	s.subs[id] = ch
	return id
}

func (s *Service) removeSubscriber(id int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.subs, id)
}
