// Package server is the HTTP host shell for the dashboard: it walks the deck,
// renders section pages with one sandboxed iframe per chart, and serves the
// embedded chart documents those iframes load. Each chart renders in
// isolation; a broken export degrades to an inline warning without touching
// its siblings.
package server

import (
	"context"
	"fmt"
	"html/template"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog"

	"github.com/avelin/chartdeck"
	"github.com/avelin/chartdeck/internal/deck"
)

// Config holds server configuration.
type Config struct {
	Addr     string
	Log      zerolog.Logger
	Embedder *chartdeck.Embedder
	Deck     *deck.Deck
	Render   RenderDefaults
	DevMode  bool
}

// RenderDefaults fill in whatever a deck entry leaves unset.
type RenderDefaults struct {
	Height        int // pixels
	Width         int // pixels, 0 = fluid
	FrameDuration int // ms
}

// Server represents the HTTP server.
type Server struct {
	router   *chi.Mux
	server   *http.Server
	log      zerolog.Logger
	embedder *chartdeck.Embedder
	deck     *deck.Deck
	render   RenderDefaults
	markdown *deck.Renderer
	pages    *template.Template
}

// New creates the HTTP server. Returns an error if the page templates fail to
// parse or the deck prose fails to render.
func New(cfg Config) (*Server, error) {
	pages, err := template.ParseFS(templates, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parsing page templates: %w", err)
	}

	s := &Server{
		router:   chi.NewRouter(),
		log:      cfg.Log.With().Str("component", "server").Logger(),
		embedder: cfg.Embedder,
		deck:     cfg.Deck,
		render:   cfg.Render,
		markdown: deck.NewRenderer(),
		pages:    pages,
	}

	s.setupMiddleware(cfg.DevMode)
	s.setupRoutes()

	s.server = &http.Server{
		Addr:         cfg.Addr,
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return s, nil
}

// setupMiddleware configures the middleware stack.
func (s *Server) setupMiddleware(devMode bool) {
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(s.loggingMiddleware)
	s.router.Use(middleware.Timeout(60 * time.Second))

	if devMode {
		s.router.Use(cors.Handler(cors.Options{
			AllowedOrigins: []string{"*"},
			AllowedMethods: []string{"GET", "OPTIONS"},
			AllowedHeaders: []string{"Accept", "Content-Type"},
		}))
	}
}

// setupRoutes registers all HTTP routes.
func (s *Server) setupRoutes() {
	s.router.Get("/", s.handleIndex)
	s.router.Get("/healthz", s.handleHealth)
	s.router.Get("/sections/{slug}", s.handleSection)
	s.router.Get("/charts/{name}", s.handleChart)
	s.router.Get("/images/{name}", s.handleImage)
}

// loggingMiddleware logs one line per request with status and duration.
func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		s.log.Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Dur("duration", time.Since(start)).
			Msg("request")
	})
}

// Start begins serving. Blocks until the listener fails or Shutdown is called.
func (s *Server) Start() error {
	s.log.Info().Str("addr", s.server.Addr).Msg("listening")
	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

// Handler exposes the router for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}
