// Package web exposes the merged event list over HTTP for external tools.
package web

import (
	"context"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/timeaxis/timeaxis/internal/logging"
	"github.com/timeaxis/timeaxis/internal/store"
)

// Server serves the event query API.
type Server struct {
	Store *store.Store
	Addr  string

	log zerolog.Logger
}

// NewServer creates a server bound to addr over the given store.
func NewServer(st *store.Store, addr string) *Server {
	return &Server{
		Store: st,
		Addr:  addr,
		log:   logging.Component("web"),
	}
}

// Handler builds the route mux.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/events", s.handleEvents)
	mux.HandleFunc("/api/healthz", s.handleHealth)
	return mux
}

// ListenAndServe starts the HTTP server and blocks until ctx is cancelled or
// the listener fails.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.Addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	s.log.Info().Str("addr", s.Addr).Msg("serving event API")

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		return err
	}
}
