// Package daemon provides the long-running dashboard data service.
package daemon

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/GregLauar/Progress-Dashboard/internal/config"
	"github.com/GregLauar/Progress-Dashboard/internal/cycle"
	"github.com/GregLauar/Progress-Dashboard/internal/model"
	"github.com/GregLauar/Progress-Dashboard/internal/pipeline"
	"github.com/GregLauar/Progress-Dashboard/internal/store"
)

// Config controls the daemon runtime behavior.
type Config struct {
	App      config.Config
	UseCache bool
	Interval time.Duration
	Addr     string
}

// Status is served at /v1/status.
type Status struct {
	StartedAt      time.Time `json:"started_at"`
	LastLoadAt     time.Time `json:"last_load_at"`
	LoadCount      int64     `json:"load_count"`
	IntervalSec    int       `json:"interval_sec"`
	BudgetRows     int       `json:"budget_rows"`
	AuMRows        int       `json:"aum_rows"`
	ObjectiveRows  int       `json:"objective_rows"`
	CacheHits      int       `json:"cache_hits"`
	WindowStart    string    `json:"window_start"`
	WindowEnd      string    `json:"window_end"`
	LastError      string    `json:"last_error,omitempty"`
	StreamClients  int       `json:"stream_clients"`
	SlideDwellSec  int       `json:"slide_dwell_sec"`
	PlaylistLength int       `json:"playlist_length"`
}

// SeriesPoint is one dated row of a comparison series. Absent members are
// null, not zero.
type SeriesPoint struct {
	Date     string   `json:"date"`
	Budget   *float64 `json:"budget"`
	Actual   *float64 `json:"actual"`
	Forecast *float64 `json:"forecast"`
}

// SeriesPayload is served at /v1/series.
type SeriesPayload struct {
	Table      string        `json:"table"`
	Category   string        `json:"category"`
	Cumulative bool          `json:"cumulative"`
	Points     []SeriesPoint `json:"points"`
}

// KeyResultPayload is one child item of an objective.
type KeyResultPayload struct {
	Name     string  `json:"name"`
	Progress float64 `json:"progress"`
}

// ObjectivePayload is one objective with its averaged progress.
type ObjectivePayload struct {
	Objective   string             `json:"objective"`
	AvgProgress float64            `json:"avg_progress"`
	KeyResults  []KeyResultPayload `json:"key_results"`
}

// SlideEvent is one SSE frame of the /v1/stream rotation.
type SlideEvent struct {
	Index      int                `json:"index"`
	Total      int                `json:"total"`
	Kind       string             `json:"kind"`
	Title      string             `json:"title"`
	Series     *SeriesPayload     `json:"series,omitempty"`
	Objectives []ObjectivePayload `json:"objectives,omitempty"`
}

// Service provides the daemon runtime and HTTP API.
type Service struct {
	cfg Config

	mu         sync.RWMutex
	startedAt  time.Time
	lastLoadAt time.Time
	loadCount  int64
	lastError  string
	tables     *pipeline.Tables
	clients    int
}

// New returns a new daemon service with the provided config.
func New(cfg Config) *Service {
	if cfg.Interval < 5*time.Second {
		cfg.Interval = time.Minute
	}
	if cfg.Addr == "" {
		cfg.Addr = "127.0.0.1:8787"
	}

	return &Service{
		cfg:       cfg,
		startedAt: time.Now(),
	}
}

// Run starts HTTP endpoints and periodic reloads until ctx is canceled.
func (s *Service) Run(ctx context.Context) error {
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", s.handleHealth)
	mux.HandleFunc("/v1/status", s.handleStatus)
	mux.HandleFunc("/v1/series", s.handleSeries)
	mux.HandleFunc("/v1/okr", s.handleOKR)
	mux.HandleFunc("/v1/stream", s.handleStream)

	server := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	// Seed initial tables so status and series are useful immediately.
	s.reload()

	ticker := time.NewTicker(s.cfg.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			return server.Shutdown(shutdownCtx)
		case <-ticker.C:
			s.reload()
		case err := <-errCh:
			return fmt.Errorf("daemon http server: %w", err)
		}
	}
}

// reload refreshes the tables. A failed reload keeps the previous tables and
// records the error; the endpoints keep serving the last good data.
func (s *Service) reload() {
	tables, err := s.loadTables()

	s.mu.Lock()
	s.lastLoadAt = time.Now()
	s.loadCount++
	if err != nil {
		s.lastError = err.Error()
	} else {
		s.lastError = ""
		s.tables = tables
	}
	s.mu.Unlock()

	if err != nil {
		log.Printf("progdash daemon reload error: %v", err)
	}
}

func (s *Service) loadTables() (*pipeline.Tables, error) {
	if s.cfg.UseCache {
		cache, err := store.Open(pipeline.CachePath())
		if err == nil {
			defer func() { _ = cache.Close() }()
			return pipeline.LoadWithCache(s.cfg.App, cache)
		}
	}
	return pipeline.Load(s.cfg.App)
}

func (s *Service) currentTables() *pipeline.Tables {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.tables
}

func (s *Service) snapshotStatus() Status {
	s.mu.RLock()
	defer s.mu.RUnlock()

	st := Status{
		StartedAt:      s.startedAt,
		LastLoadAt:     s.lastLoadAt,
		LoadCount:      s.loadCount,
		IntervalSec:    int(s.cfg.Interval.Seconds()),
		WindowStart:    s.cfg.App.Window.Start,
		WindowEnd:      s.cfg.App.Window.End,
		LastError:      s.lastError,
		StreamClients:  s.clients,
		SlideDwellSec:  int(s.cfg.App.Delay().Seconds()),
		PlaylistLength: len(cycle.Playlist(s.cfg.App)),
	}
	if s.tables != nil {
		st.BudgetRows = len(s.tables.Budget)
		st.AuMRows = len(s.tables.AuM)
		st.ObjectiveRows = len(s.tables.Objectives)
		st.CacheHits = s.tables.CacheHits
	}
	return st
}

func (s *Service) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("ok\n"))
}

func (s *Service) handleStatus(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(s.snapshotStatus())
}

// handleSeries serves one comparison series:
// /v1/series?table=aum&category=AuM%20at%20the%20EoP&cumulative=true
func (s *Service) handleSeries(w http.ResponseWriter, r *http.Request) {
	tables := s.currentTables()
	if tables == nil {
		http.Error(w, "data not loaded", http.StatusServiceUnavailable)
		return
	}

	q := r.URL.Query()
	category := q.Get("category")
	if category == "" {
		http.Error(w, "missing category parameter", http.StatusBadRequest)
		return
	}

	ref := model.TableBudget
	switch strings.ToLower(q.Get("table")) {
	case "", "budget":
	case "aum":
		ref = model.TableAuM
	default:
		http.Error(w, "unknown table, expected budget or aum", http.StatusBadRequest)
		return
	}

	cumulative := q.Get("cumulative") == "true" || q.Get("cumulative") == "1"

	triple := pipeline.CompareSeries(tables.Table(ref), category, cumulative)
	payload := seriesPayload(string(ref), category, cumulative, triple)

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(payload)
}

func (s *Service) handleOKR(w http.ResponseWriter, _ *http.Request) {
	tables := s.currentTables()
	if tables == nil {
		http.Error(w, "data not loaded", http.StatusServiceUnavailable)
		return
	}

	payload := okrPayload(pipeline.SummarizeObjectives(tables.Objectives))

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(payload)
}

// handleStream serves the slide rotation as SSE. Each connection gets its
// own cycler so late joiners start from the first slide; slides advance at
// the configured dwell time.
func (s *Service) handleStream(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	s.mu.Lock()
	s.clients++
	s.mu.Unlock()
	defer func() {
		s.mu.Lock()
		s.clients--
		s.mu.Unlock()
	}()

	cycler := cycle.New(cycle.Playlist(s.cfg.App))
	cycler.Start()
	defer cycler.Stop()

	ticker := time.NewTicker(s.cfg.App.Delay())
	defer ticker.Stop()

	// First slide goes out immediately.
	s.writeSlide(w, cycler)
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			return
		case <-ticker.C:
			s.writeSlide(w, cycler)
			flusher.Flush()
		}
	}
}

func (s *Service) writeSlide(w http.ResponseWriter, cycler *cycle.Cycler) {
	index := cycler.Index()
	view, ok := cycler.Tick()
	if !ok {
		return
	}

	ev := SlideEvent{
		Index: index,
		Total: cycler.Len(),
		Title: view.Title,
	}

	tables := s.currentTables()
	switch {
	case view.Kind == model.ViewOKR:
		ev.Kind = "okr"
		if tables != nil {
			ev.Objectives = okrPayload(pipeline.SummarizeObjectives(tables.Objectives))
		}
	default:
		ev.Kind = "chart"
		if tables != nil {
			triple := pipeline.CompareSeries(tables.Table(view.Table), view.Category, view.Cumulative)
			p := seriesPayload(string(view.Table), view.Category, view.Cumulative, triple)
			ev.Series = &p
		}
	}

	data, err := json.Marshal(ev)
	if err != nil {
		return
	}
	_, _ = fmt.Fprintf(w, "event: slide\n")
	_, _ = fmt.Fprintf(w, "data: %s\n\n", data)
}

func seriesPayload(table, category string, cumulative bool, triple model.SeriesTriple) SeriesPayload {
	p := SeriesPayload{
		Table:      table,
		Category:   category,
		Cumulative: cumulative,
		Points:     []SeriesPoint{},
	}
	for _, d := range triple.Dates() {
		pt := SeriesPoint{Date: d.Format("2006-01-02")}
		if v, ok := triple.Budget.ValueAt(d); ok {
			f, _ := v.Float64()
			pt.Budget = &f
		}
		if v, ok := triple.Actual.ValueAt(d); ok {
			f, _ := v.Float64()
			pt.Actual = &f
		}
		if v, ok := triple.Forecast.ValueAt(d); ok {
			f, _ := v.Float64()
			pt.Forecast = &f
		}
		p.Points = append(p.Points, pt)
	}
	return p
}

func okrPayload(summaries []model.ObjectiveSummary) []ObjectivePayload {
	out := make([]ObjectivePayload, 0, len(summaries))
	for _, s := range summaries {
		o := ObjectivePayload{
			Objective:   s.Objective,
			AvgProgress: s.AvgProgress,
		}
		for _, c := range s.Children {
			o.KeyResults = append(o.KeyResults, KeyResultPayload{Name: c.ChildItem, Progress: c.Progress})
		}
		out = append(out, o)
	}
	return out
}
