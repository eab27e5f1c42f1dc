// Package web provides the HTTP API for the lexer.
//
// The server is built on the chi router with its standard middleware
// stack (request IDs, real IP, request logging, panic recovery and a
// per-request timeout). Handlers tokenize the submitted statement and
// answer with JSON.
package web

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"golang.org/x/sync/errgroup"

	"github.com/cabewaldrop/pglex/internal/logging"
	"github.com/cabewaldrop/pglex/internal/sql/lexer"
)

// Server is the HTTP front end of the lexer.
type Server struct {
	router *chi.Mux
	port   int
	policy lexer.Policy
	log    *slog.Logger
}

// NewServer creates a server listening on port. policy is the default
// classification policy for requests that do not ask for strict mode.
func NewServer(port int, policy lexer.Policy) *Server {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))

	s := &Server{
		router: r,
		port:   port,
		policy: policy,
		log:    logging.WithComponent("web"),
	}

	s.routes()
	return s
}

func (s *Server) routes() {
	s.router.Get("/", s.handleIndex)
	s.router.Get("/health", s.handleHealth)

	s.router.Route("/api", func(r chi.Router) {
		r.Use(WithPolicy(s.policy))
		r.Post("/tokenize", s.handleAPITokenize)
	})
}

// Router returns the chi router for testing purposes.
func (s *Server) Router() http.Handler {
	return s.router
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", s.port),
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		s.log.Info("starting server", "port", s.port, "policy", s.policy.String())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		s.log.Info("shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown error: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return err
	}
	s.log.Info("server stopped")
	return nil
}
