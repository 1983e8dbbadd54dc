// Package server assembles the HTTP router and owns the server lifecycle.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
)

// RouteRegistrar is implemented by the handlers that mount themselves on the
// router.
type RouteRegistrar interface {
	RegisterRoutes(r chi.Router)
}

// Server wraps the HTTP server with graceful shutdown.
type Server struct {
	httpServer *http.Server
	logger     *zerolog.Logger
}

// New builds the router with the shared middleware stack, mounts the given
// handlers and returns a ready-to-run Server.
func New(addr string, logger *zerolog.Logger, handlers ...RouteRegistrar) *Server {
	r := chi.NewRouter()

	r.Use(requestID)
	r.Use(requestLogger(logger))
	r.Use(middleware.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	for _, h := range handlers {
		h.RegisterRoutes(r)
	}

	return &Server{
		httpServer: &http.Server{
			Addr:              addr,
			Handler:           r,
			ReadHeaderTimeout: 10 * time.Second,
		},
		logger: logger,
	}
}

// Run serves HTTP until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)

	go func() {
		s.logger.Info().Str("addr", s.httpServer.Addr).Msg("http server listening")
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	s.logger.Info().Msg("shutting down http server")
	return s.httpServer.Shutdown(shutdownCtx)
}
