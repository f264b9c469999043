// Package api provides the HTTP surface for CampaignForge.
//
// It exposes RESTful endpoints for starting campaign sessions, exchanging
// conversation turns, and retrieving the assembled campaign package. The API
// delegates all conversation logic to the flow orchestrator.
package api

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/bluereef/campaignforge/internal/flow"
)

// Default server timings.
const (
	DefaultAddr              = ":8080"
	DefaultReadHeaderTimeout = 10 * time.Second
	DefaultShutdownTimeout   = 10 * time.Second
)

// contextKey is a private type for request context values.
type contextKey string

// ContextKeySessionID carries the session ID parsed from the URL path.
const ContextKeySessionID contextKey = "sessionID"

// Server wires the orchestrator to HTTP handlers.
type Server struct {
	orchestrator *flow.Orchestrator
	addr         string
	httpServer   *http.Server
}

// Opts holds server configuration options.
type Opts struct {
	Addr string
}

// Option configures the server.
type Option func(*Opts)

// WithAddr sets the listen address.
func WithAddr(addr string) Option {
	return func(o *Opts) {
		if addr != "" {
			o.Addr = addr
		}
	}
}

// NewServer creates an API server around the given orchestrator.
func NewServer(orchestrator *flow.Orchestrator, opts ...Option) *Server {
	cfg := Opts{Addr: DefaultAddr}
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Server{orchestrator: orchestrator, addr: cfg.Addr}
}

// Handler builds the route table.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/health", s.healthHandler)
	mux.HandleFunc("/sessions", s.sessionsHandler)
	mux.HandleFunc("/sessions/", s.sessionRouter)
	return mux
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	s.httpServer = &http.Server{
		Addr:              s.addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: DefaultReadHeaderTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("Server.Run: API listening", "addr", s.addr)
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		slog.Info("Server.Run: shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), DefaultShutdownTimeout)
		defer cancel()
		return s.httpServer.Shutdown(shutdownCtx)
	}
}

// sessionRouter dispatches /sessions/{id} and /sessions/{id}/{action}
// requests. The session ID is placed on the request context so handlers read
// it uniformly.
func (s *Server) sessionRouter(w http.ResponseWriter, r *http.Request) {
	rest := strings.TrimPrefix(r.URL.Path, "/sessions/")
	parts := strings.SplitN(strings.Trim(rest, "/"), "/", 2)
	if parts[0] == "" {
		http.NotFound(w, r)
		return
	}

	r = r.WithContext(context.WithValue(r.Context(), ContextKeySessionID, parts[0]))

	action := ""
	if len(parts) == 2 {
		action = parts[1]
	}
	switch action {
	case "":
		s.closeSessionHandler(w, r)
	case "messages":
		s.sendMessageHandler(w, r)
	case "summary":
		s.sessionSummaryHandler(w, r)
	case "campaign":
		s.campaignOutputHandler(w, r)
	default:
		http.NotFound(w, r)
	}
}
