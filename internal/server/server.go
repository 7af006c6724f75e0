// Package server exposes a read-only status API over the outcome journal
// and the sentinel files. It exists for humans and dashboards; the
// quiz-content collaborator keeps polling the sentinels on disk and never
// needs this surface.
package server

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"runtime"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/me/solvebatch/internal/batch"
	"github.com/me/solvebatch/internal/config"
	"github.com/me/solvebatch/internal/store"
)

// Server serves the status API.
type Server struct {
	router    chi.Router
	logger    *slog.Logger
	cfg       config.Config
	journal   store.Store
	startTime time.Time
}

// New creates a Server with all routes registered.
func New(cfg config.Config, journal store.Store, logger *slog.Logger) *Server {
	s := &Server{
		router:    chi.NewRouter(),
		logger:    logger.With("component", "server"),
		cfg:       cfg,
		journal:   journal,
		startTime: time.Now(),
	}
	s.routes()
	return s
}

// Handler returns the http.Handler for the server.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) routes() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.Recoverer)

	s.router.Get("/healthz", s.handleHealth)
	s.router.Get("/runs", s.handleListRuns)
	s.router.Get("/runs/{id}", s.handleGetRun)
	s.router.Get("/batch", s.handleBatchStatus)
}

type healthResponse struct {
	Status    string `json:"status"`
	GoVersion string `json:"go_version"`
	Uptime    string `json:"uptime"`
	JobDir    string `json:"job_dir"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, healthResponse{
		Status:    "healthy",
		GoVersion: runtime.Version(),
		Uptime:    time.Since(s.startTime).Round(time.Second).String(),
		JobDir:    s.cfg.JobDir,
	})
}

func (s *Server) handleListRuns(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			s.respondError(w, http.StatusBadRequest, "limit must be an integer")
			return
		}
		limit = n
	}

	runs, err := s.journal.ListRuns(r.Context(), limit)
	if err != nil {
		s.logger.Error("list runs", "error", err)
		s.respondError(w, http.StatusInternalServerError, "journal unavailable")
		return
	}
	s.respondJSON(w, http.StatusOK, runs)
}

func (s *Server) handleGetRun(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	run, err := s.journal.GetRun(r.Context(), id)
	if err != nil {
		s.logger.Error("get run", "run_id", id, "error", err)
		s.respondError(w, http.StatusInternalServerError, "journal unavailable")
		return
	}
	if run == nil {
		s.respondError(w, http.StatusNotFound, "run not found")
		return
	}
	s.respondJSON(w, http.StatusOK, run)
}

type sentinelStatus struct {
	Path     string `json:"path"`
	Complete bool   `json:"complete"`
}

type batchStatusResponse struct {
	Full  sentinelStatus `json:"full"`
	Retry sentinelStatus `json:"retry"`
}

// handleBatchStatus mirrors what filesystem collaborators see: sentinel
// presence only, no log parsing.
func (s *Server) handleBatchStatus(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, batchStatusResponse{
		Full: sentinelStatus{
			Path:     s.cfg.RunSentinel,
			Complete: batch.SentinelExists(s.cfg.RunSentinel),
		},
		Retry: sentinelStatus{
			Path:     s.cfg.RetrySentinel,
			Complete: batch.SentinelExists(s.cfg.RetrySentinel),
		},
	})
}

func (s *Server) respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.logger.Error("encode response", "error", err)
	}
}

func (s *Server) respondError(w http.ResponseWriter, status int, msg string) {
	s.respondJSON(w, status, map[string]string{"error": msg})
}
