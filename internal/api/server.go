package api

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/platformeng/patternctl/internal/batch"
	"github.com/platformeng/patternctl/internal/catalog"
	"github.com/platformeng/patternctl/internal/classifier"
	"github.com/platformeng/patternctl/internal/logger"
	"github.com/platformeng/patternctl/internal/resolver"
)

const shutdownTimeout = 30 * time.Second

// Server exposes the decision engine over HTTP. Every handler is a thin
// adapter around the pure resolution layer, so the server holds no mutable
// state beyond the listener itself.
type Server struct {
	log        *logger.Logger
	router     *chi.Mux
	server     *http.Server
	catalog    *catalog.Catalog
	validator  *batch.Validator
	classifier *classifier.Classifier
}

// New builds a fully routed server over the loaded catalog.
func New(c *catalog.Catalog, log *logger.Logger) *Server {
	s := &Server{
		log:        log,
		router:     chi.NewRouter(),
		catalog:    c,
		validator:  batch.New(resolver.New(c)),
		classifier: classifier.New(c),
	}

	s.setupMiddleware()
	s.setupRoutes()

	return s
}

// Handler returns the routed handler, primarily for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) setupMiddleware() {
	s.router.Use(chimiddleware.RequestID)
	s.router.Use(chimiddleware.RealIP)
	s.router.Use(chimiddleware.Recoverer)
	s.router.Use(chimiddleware.Timeout(30 * time.Second))

	corsOrigins := os.Getenv("CORS_ORIGINS")
	if corsOrigins == "" {
		corsOrigins = "http://localhost:5173,http://localhost:3000"
	}

	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{corsOrigins},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		MaxAge:         300,
	}))
}

func (s *Server) setupRoutes() {
	s.router.Get("/health", s.handleHealth)

	s.router.Route("/api", func(r chi.Router) {
		r.Post("/dry-run", s.handleDryRun)
		r.Post("/analyze", s.handleAnalyze)
		r.Get("/patterns", s.handlePatterns)
		r.Get("/patterns/{name}", s.handlePattern)
		r.Get("/catalog/version", s.handleCatalogVersion)
	})
}

// Start serves until SIGINT or SIGTERM, then drains in-flight requests.
func (s *Server) Start(port string) error {
	s.server = &http.Server{
		Addr:         ":" + port,
		Handler:      s.router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		s.log.WithFields(map[string]any{"port": port}).Info("starting HTTP server")
		if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errc <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errc:
		return fmt.Errorf("server failed: %w", err)
	case <-quit:
	}

	s.log.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := s.server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	s.log.Info("server exited")
	return nil
}

// Stop shuts the server down gracefully. Safe to call when Start was never
// reached.
func (s *Server) Stop() error {
	if s.server == nil {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	return s.server.Shutdown(ctx)
}
