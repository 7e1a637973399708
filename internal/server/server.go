// Package server exposes enumeration, usage and disk information over HTTP
// and streams listings over a WebSocket.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/gorilla/websocket"

	"github.com/ziadkadry99/treeutil/internal/logger"
	"github.com/ziadkadry99/treeutil/internal/usage"
	"github.com/ziadkadry99/treeutil/internal/walker"
)

// Config holds server configuration.
type Config struct {
	Port     int
	BaseDir  string // relative request paths resolve against this directory
	AllowAll bool   // allow all CORS origins (dev mode)
}

// Server is the HTTP front end of treeutil.
type Server struct {
	cfg        Config
	walker     *walker.Walker
	usage      *usage.Calculator
	log        *logger.Logger
	router     chi.Router
	upgrader   websocket.Upgrader
	httpServer *http.Server
}

// localOrigins are the browser origins allowed unless AllowAll is set. They
// govern both CORS and WebSocket upgrades.
var localOrigins = []string{"http://localhost:*", "http://127.0.0.1:*"}

// New creates a server that enumerates with w.
func New(cfg Config, w *walker.Walker, log *logger.Logger) *Server {
	if log == nil {
		log = logger.Discard()
	}
	s := &Server{
		cfg:    cfg,
		walker: w,
		usage:  usage.NewCalculator(w, nil),
		log:    log,
	}

	s.upgrader = websocket.Upgrader{CheckOrigin: s.checkOrigin}
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
		AllowedOrigins:   localOrigins,
		AllowedMethods:   []string{"GET", "OPTIONS"},
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
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Group(func(r chi.Router) {
		r.Use(middleware.Timeout(60 * time.Second))
		r.Get("/api/list", s.handleList)
		r.Get("/api/usage", s.handleUsage)
		r.Get("/api/diskinfo", s.handleDiskInfo)
	})

	// Streams outlive the request timeout.
	r.Get("/ws/list", s.handleListStream)

	return r
}

// checkOrigin admits WebSocket clients without an Origin header (non-browser
// tools) and browsers on an allowed origin. CORS does not apply to
// WebSocket upgrades, so a page on any other site is refused here.
func (s *Server) checkOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" || s.cfg.AllowAll {
		return true
	}
	u, err := url.Parse(origin)
	if err != nil {
		return false
	}
	for _, allowed := range localOrigins {
		a, _ := url.Parse(strings.TrimSuffix(allowed, ":*"))
		if strings.EqualFold(u.Scheme, a.Scheme) && strings.EqualFold(u.Hostname(), a.Hostname()) {
			return true
		}
	}
	return false
}

// Router returns the chi router.
func (s *Server) Router() chi.Router { return s.router }

// Start begins listening on the configured port. It returns nil once
// Shutdown has completed.
func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.cfg.Port)
	s.httpServer = &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	s.log.Infof("treeutil server listening on %s (base=%s)", addr, s.cfg.BaseDir)
	if err := s.httpServer.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpServer != nil {
		return s.httpServer.Shutdown(ctx)
	}
	return nil
}
