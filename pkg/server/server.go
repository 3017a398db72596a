// Package server exposes a Manager over HTTP.
//
// Routes:
//
//	GET    /                           interactive HTML view
//	GET    /api/graph                  graph snapshot with revision
//	GET    /api/graph.svg              Graphviz drawing
//	GET    /api/paths                  named paths
//	GET    /api/nodes/{id}/neighbors   publishers and subscribers (id URL-escaped)
//	POST   /api/reload                 reload the current source
//	GET    /api/layout                 current positions
//	PUT    /api/layout                 apply and save positions
//	DELETE /api/layout                 delete saved positions, restore auto layout
//	GET    /api/version                build information
//	GET    /ws                         reload notifications
//
// The manager is not safe for concurrent use, so every call goes through one
// mutex. Reload notifications are pushed to WebSocket clients as
// {"type": "reload", "revision": "..."}.
package server

import (
	"context"
	"errors"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/rosview/pkg/manager"
	"github.com/matzehuels/rosview/pkg/observability"
	"github.com/matzehuels/rosview/pkg/render"
)

// Config configures a Server.
type Config struct {
	Manager *manager.Manager

	// Render options for the HTML and SVG views.
	Render render.Options

	Logger *log.Logger
}

// Server serves one manager.
type Server struct {
	mu     sync.Mutex
	mgr    *manager.Manager
	render render.Options
	hub    *hub
	logger *log.Logger
	router chi.Router
}

// New creates a server for cfg.Manager.
func New(cfg Config) *Server {
	logger := cfg.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	s := &Server{
		mgr:    cfg.Manager,
		render: cfg.Render,
		hub:    newHub(logger),
		logger: logger,
	}
	s.router = s.routes()
	return s
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler { return s.router }

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(s.observe)

	r.Get("/", s.handleIndex)
	r.Get("/ws", s.handleWebSocket)
	r.Route("/api", func(r chi.Router) {
		r.Get("/graph", s.handleGraph)
		r.Get("/graph.svg", s.handleSVG)
		r.Get("/paths", s.handlePaths)
		r.Get("/nodes/{id}/neighbors", s.handleNeighbors)
		r.Post("/reload", s.handleReload)
		r.Get("/layout", s.handleGetLayout)
		r.Put("/layout", s.handlePutLayout)
		r.Delete("/layout", s.handleDeleteLayout)
		r.Get("/version", s.handleVersion)
	})
	return r
}

// observe reports every request to the server hooks.
func (s *Server) observe(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		observability.Server().OnRequest(r.Context(), r.Method, r.URL.Path, status, time.Since(start))
	})
}

// Reload reloads the manager's source and notifies WebSocket clients.
func (s *Server) Reload(ctx context.Context) error {
	s.mu.Lock()
	err := s.mgr.Reload(ctx)
	rev := s.mgr.Revision()
	s.mu.Unlock()
	if err != nil {
		s.logger.Error("reload failed", "err", err)
		return err
	}
	s.hub.broadcast(ctx, message{Type: "reload", Revision: rev})
	return nil
}

// ListenAndServe serves on addr until ctx is cancelled.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() { errc <- srv.ListenAndServe() }()
	s.logger.Info("serving", "addr", addr)

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	s.hub.closeAll()
	if err := srv.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
