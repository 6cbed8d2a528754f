// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/jeranaias/vicas-tui/internal/config"
	"github.com/jeranaias/vicas-tui/internal/repository"
	"github.com/jeranaias/vicas-tui/internal/vi"
)

// ============================================================================
// CONSTANTS
// ============================================================================

const (
	// DefaultAddr is used when the configuration leaves the address empty.
	DefaultAddr = "127.0.0.1:8787"

	// DocumentPath serves the whole reference document.
	DocumentPath = "/vi/cas"

	// shutdownTimeout bounds the graceful shutdown when the start context ends.
	shutdownTimeout = 5 * time.Second
)

// User-facing envelope messages.
const (
	msgUnavailable      = "Dados de referência indisponíveis."
	msgRecordNotFound   = "CAS %s não encontrado."
	msgRouteNotFound    = "Rota %s não encontrada."
	msgMethodNotAllowed = "Método %s não permitido."
	msgInternal         = "Erro interno do servidor."
	msgTooManyRequests  = "Muitas requisições. Tente novamente em instantes."
)

// Version is reported by /health. Set by the cli package at startup.
var Version = "dev"

// ============================================================================
// SERVER
// ============================================================================

// Server serves the reference document loaded from a repository.
type Server struct {
	cfg    config.ServerConfig
	repo   repository.Repository
	store  *documentStore
	router chi.Router
	server *http.Server

	limiter   *RateLimiter
	logger    *log.Logger
	startTime time.Time
}

// New creates a server for repo. The document is not loaded until Reload
// or Start is called.
func New(cfg config.ServerConfig, repo repository.Repository) *Server {
	if cfg.Addr == "" {
		cfg.Addr = DefaultAddr
	}

	s := &Server{
		cfg:       cfg,
		repo:      repo,
		store:     newDocumentStore(),
		logger:    log.Default(),
		startTime: time.Now(),
	}
	if cfg.RateLimit > 0 {
		s.limiter = NewRateLimiter(cfg.RateLimit)
	}

	s.setupRoutes()
	return s
}

// OpenSource builds the repository the server reads from: the SQLite
// snapshot when configured, the JSON file otherwise.
func OpenSource(cfg config.ServerConfig) (repository.Repository, error) {
	switch {
	case cfg.SQLite != "":
		return repository.OpenSQLite(cfg.SQLite)
	case cfg.File != "":
		return repository.NewFileRepository(cfg.File), nil
	default:
		return nil, errors.New("server needs a reference file or sqlite snapshot (server.file / server.sqlite)")
	}
}

// WithLogger replaces the request and lifecycle logger.
func (s *Server) WithLogger(logger *log.Logger) *Server {
	s.logger = logger
	return s
}

// Addr returns the listen address.
func (s *Server) Addr() string {
	return s.cfg.Addr
}

// Handler returns the routed handler with its middleware stack.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Reload loads the document from the repository and swaps it in. A failed
// reload keeps serving the previous document.
func (s *Server) Reload(ctx context.Context) error {
	start := time.Now()
	doc, err := s.repo.Load(ctx)
	if err != nil {
		s.logger.Printf("RELOAD_FAILED | source=%s err=%v", s.repo.Describe(), err)
		return err
	}
	if err := s.store.Swap(doc); err != nil {
		s.logger.Printf("RELOAD_FAILED | source=%s err=%v", s.repo.Describe(), err)
		return err
	}
	s.logger.Printf("RELOAD_OK | source=%s entries=%d lastUpdated=%q elapsed=%s",
		s.repo.Describe(), doc.Len(), doc.LastUpdated, time.Since(start).Round(time.Millisecond))
	return nil
}

// watchPath is the file the watcher follows, if any.
func (s *Server) watchPath() string {
	if s.cfg.SQLite != "" {
		return s.cfg.SQLite
	}
	return s.cfg.File
}

// ============================================================================
// ROUTES
// ============================================================================

// setupRoutes configures the middleware stack and all HTTP routes.
func (s *Server) setupRoutes() {
	r := chi.NewRouter()

	r.Use(RequestIDMiddleware)
	r.Use(RecoveryMiddleware(s.logger))
	r.Use(LoggingMiddleware(s.logger))
	r.Use(SecurityHeadersMiddleware)
	r.Use(CORSMiddleware(NewCORSConfig(s.cfg.CORSOrigins)))
	if s.limiter != nil {
		r.Use(RateLimitMiddleware(s.limiter, s.logger))
	}

	r.Get(DocumentPath, s.handleDocument)
	r.Get(DocumentPath+"/{cas}", s.handleRecord)
	r.Get("/health", s.handleHealth)

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, r, http.StatusNotFound, fmt.Sprintf(msgRouteNotFound, r.URL.Path))
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, r, http.StatusMethodNotAllowed, fmt.Sprintf(msgMethodNotAllowed, r.Method))
	})

	s.router = r
}

// ============================================================================
// HANDLERS
// ============================================================================

// handleDocument handles GET /vi/cas.
func (s *Server) handleDocument(w http.ResponseWriter, r *http.Request) {
	snap := s.store.Snapshot()
	if snap == nil {
		writeError(w, r, http.StatusServiceUnavailable, msgUnavailable)
		return
	}

	w.Header().Set("ETag", snap.etag)
	w.Header().Set("Last-Modified", snap.loadedAt.UTC().Format(http.TimeFormat))
	w.Header().Set("Cache-Control", "no-cache")

	if etagMatches(r.Header.Get("If-None-Match"), snap.etag) {
		w.WriteHeader(http.StatusNotModified)
		return
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write(snap.body)
}

// handleRecord handles GET /vi/cas/{cas}.
func (s *Server) handleRecord(w http.ResponseWriter, r *http.Request) {
	snap := s.store.Snapshot()
	if snap == nil {
		writeError(w, r, http.StatusServiceUnavailable, msgUnavailable)
		return
	}

	cas := strings.TrimSpace(chi.URLParam(r, "cas"))
	rec, ok := snap.doc.Lookup(cas)
	if !ok {
		writeError(w, r, http.StatusNotFound, fmt.Sprintf(msgRecordNotFound, cas))
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

// HealthResponse represents the health check response.
type HealthResponse struct {
	Status      string `json:"status"`
	Version     string `json:"version"`
	Source      string `json:"source"`
	Entries     int    `json:"entries"`
	LastUpdated string `json:"lastUpdated,omitempty"`
	LoadedAt    string `json:"loadedAt,omitempty"`
	Uptime      string `json:"uptime"`
}

// handleHealth handles GET /health. It answers 503 until a document has
// been loaded.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	health := HealthResponse{
		Status:  "ok",
		Version: Version,
		Source:  s.repo.Describe(),
		Uptime:  time.Since(s.startTime).Round(time.Second).String(),
	}

	status := http.StatusOK
	if snap := s.store.Snapshot(); snap != nil {
		health.Entries = snap.doc.Len()
		health.LastUpdated = snap.doc.LastUpdated
		health.LoadedAt = snap.loadedAt.UTC().Format(time.RFC3339)
	} else {
		health.Status = "unavailable"
		status = http.StatusServiceUnavailable
	}

	writeJSON(w, status, health)
}

// ============================================================================
// SERVER LIFECYCLE
// ============================================================================

// Start loads the document, starts the file watcher when configured and
// serves until ctx is cancelled. A failed initial load aborts the start.
func (s *Server) Start(ctx context.Context) error {
	if err := s.Reload(ctx); err != nil {
		return fmt.Errorf("initial load failed: %w", err)
	}

	if s.cfg.Watch {
		if path := s.watchPath(); path != "" {
			w, err := NewWatcher(path, s.Reload, s.logger)
			if err != nil {
				return fmt.Errorf("failed to watch %s: %w", path, err)
			}
			go w.Run(ctx)
		}
	}

	s.server = &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Printf("SERVER_START | addr=%s source=%s version=%s", s.cfg.Addr, s.repo.Describe(), Version)
		errCh <- s.server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		s.stopLimiter()
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return s.Shutdown(shutdownCtx)
	}
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.stopLimiter()
	if s.server == nil {
		return nil
	}

	s.logger.Printf("SERVER_SHUTDOWN | starting graceful shutdown")
	if err := s.server.Shutdown(ctx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) stopLimiter() {
	if s.limiter != nil {
		s.limiter.Stop()
	}
}

// ============================================================================
// HELPERS
// ============================================================================

// writeJSON writes a JSON response.
func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeError writes the service error envelope.
func writeError(w http.ResponseWriter, r *http.Request, status int, message string) {
	writeJSON(w, status, vi.NewAPIError(status, r.URL.Path, message))
}

// etagMatches reports whether an If-None-Match header matches etag. Weak
// validators compare equal to their strong form.
func etagMatches(header, etag string) bool {
	if header == "" {
		return false
	}
	for _, candidate := range strings.Split(header, ",") {
		candidate = strings.TrimSpace(candidate)
		if candidate == "*" {
			return true
		}
		if strings.TrimPrefix(candidate, "W/") == etag {
			return true
		}
	}
	return false
}
