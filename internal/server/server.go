// Package server exposes the form session engine over HTTP for resident
// deployments, where the in-memory session registry lives for the lifetime
// of the process.
package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/jumpypanter/serverforms/internal/application"
	"github.com/jumpypanter/serverforms/internal/catalog"
	"github.com/jumpypanter/serverforms/internal/ports"
)

type Server struct {
	engine   *application.Engine
	viewer   *application.Viewer
	catalog  *catalog.Catalog
	resolver ports.IdentityResolver
	logger   *slog.Logger
	http     *http.Server
}

func New(addr string, engine *application.Engine, viewer *application.Viewer, cat *catalog.Catalog, resolver ports.IdentityResolver, logger *slog.Logger) *Server {
	s := &Server{
		engine:   engine,
		viewer:   viewer,
		catalog:  cat,
		resolver: resolver,
		logger:   logger,
	}

	router := chi.NewRouter()
	router.Use(RequestIDMiddleware)
	router.Use(LoggingMiddleware(logger))

	router.Get("/healthz", s.handleHealth)
	router.Post("/forms/{form}/start", s.handleStart)
	router.Post("/answers", s.handleAnswer)
	router.Get("/players", s.handleListPlayers)
	router.Get("/players/{player}/responses", s.handleResponses)
	router.Post("/reload", s.handleReload)

	s.http = &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler { return s.http.Handler }

// Run serves until the context is canceled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("http surface listening", slog.String("addr", s.http.Addr))
		if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
			return
		}
		errCh <- nil
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		s.logger.Info("shutting down http surface")
		if err := s.http.Shutdown(shutdownCtx); err != nil {
			return err
		}
		return <-errCh
	case err := <-errCh:
		return err
	}
}
