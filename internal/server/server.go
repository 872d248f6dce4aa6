// Package server serves the portfolio dynamically: pages are rendered per
// request so query parameters drive the filters, alongside a JSON API, the
// search endpoint and the live slideshow channel.
package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	log "github.com/sirupsen/logrus"

	"github.com/lmesias/folio/internal/db"
	"github.com/lmesias/folio/internal/pages"
	"github.com/lmesias/folio/internal/site"
	"github.com/lmesias/folio/internal/slideshow"
)

// Config holds server configuration.
type Config struct {
	Port     int
	AllowAll bool // allow all CORS origins (dev mode)

	// SourceDir holds the page templates and static files.
	SourceDir      string
	Pages          []site.Page
	DetailTemplate string
	// Exclude patterns are never served as static files.
	Exclude []string

	GalleryDelay  time.Duration
	BannerDelay   time.Duration
	ReducedMotion bool
}

// Server is the development and preview server.
type Server struct {
	cfg        Config
	db         *db.DB
	data       pages.DataSource
	renderer   *pages.Renderer
	clock      slideshow.Clock
	logger     *log.Logger
	router     chi.Router
	httpServer *http.Server
}

// Option customizes a Server.
type Option func(*Server)

// WithClock sets the clock driving live slideshows.
func WithClock(c slideshow.Clock) Option {
	return func(s *Server) { s.clock = c }
}

// WithLogger sets the server's logger.
func WithLogger(l *log.Logger) Option {
	return func(s *Server) { s.logger = l }
}

// New creates a server. database may be nil, in which case search is
// unavailable.
func New(cfg Config, database *db.DB, data pages.DataSource, renderer *pages.Renderer, opts ...Option) *Server {
	s := &Server{
		cfg:      cfg,
		db:       database,
		data:     data,
		renderer: renderer,
		clock:    slideshow.SystemClock{},
		logger:   log.StandardLogger(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.cfg.GalleryDelay <= 0 {
		s.cfg.GalleryDelay = slideshow.GalleryDelay
	}
	if s.cfg.BannerDelay <= 0 {
		s.cfg.BannerDelay = slideshow.BannerDelay
	}

	s.router = s.buildRouter()
	return s
}

// buildRouter creates and configures the chi router with all routes.
func (s *Server) buildRouter() chi.Router {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	// CORS
	corsOpts := cors.Options{
		AllowedOrigins:   []string{"http://localhost:*", "http://127.0.0.1:*"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}
	if s.cfg.AllowAll {
		corsOpts.AllowedOrigins = []string{"*"}
	}
	r.Use(cors.Handler(corsOpts))

	// Health check
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	})

	// The websocket route must not sit behind a timeout: it holds the
	// connection open for the life of the slideshow.
	r.Get("/ws/slideshow/{slug}", s.handleLive)

	r.Group(func(r chi.Router) {
		r.Use(middleware.Timeout(60 * time.Second))
		s.registerAPI(r)
		s.registerPages(r)
		r.Handle("/*", s.staticHandler())
	})

	return r
}

// Router returns the chi router for registering additional routes.
func (s *Server) Router() chi.Router { return s.router }

// Database returns the search database.
func (s *Server) Database() *db.DB { return s.db }

// ServerConfig returns the server configuration.
func (s *Server) ServerConfig() Config { return s.cfg }

// Reindex loads every record and rebuilds the search database.
func (s *Server) Reindex(ctx context.Context) error {
	if s.db == nil {
		return nil
	}
	projects, err := s.data.LoadProjects(ctx)
	if err != nil {
		return fmt.Errorf("loading projects: %w", err)
	}
	pubs, err := s.data.LoadPublications(ctx)
	if err != nil {
		return fmt.Errorf("loading publications: %w", err)
	}
	if err := s.db.Index(ctx, projects, pubs); err != nil {
		return err
	}
	s.logger.WithFields(log.Fields{"projects": len(projects), "publications": len(pubs)}).Info("search index rebuilt")
	return nil
}

// Start begins listening on the configured port.
func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.cfg.Port)
	s.httpServer = &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	s.logger.WithField("addr", addr).Info("folio server listening")
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpServer != nil {
		return s.httpServer.Shutdown(ctx)
	}
	return nil
}
