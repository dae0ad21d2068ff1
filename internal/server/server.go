// Package server serves the generated site for local preview, together
// with a small JSON API over the portfolio data and live reload.
package server

import (
	"context"
	"fmt"
	"net/http"
	"os/exec"
	"runtime"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"github.com/ziadkadry99/folio/internal/info"
	"github.com/ziadkadry99/folio/internal/logging"
	"github.com/ziadkadry99/folio/internal/posts"
)

// Config holds server configuration.
type Config struct {
	Port     int
	Dir      string // Generated site to serve.
	AllowAll bool   // Allow all CORS origins.
}

// Server is the preview server.
type Server struct {
	cfg        Config
	logger     *zap.Logger
	router     chi.Router
	httpServer *http.Server
	hub        *hub

	mu    sync.RWMutex
	info  *info.Info
	posts []posts.Entry
}

// New creates a server for the site in cfg.Dir.
func New(cfg Config, logger *zap.Logger) *Server {
	s := &Server{
		cfg:    cfg,
		logger: logging.OrNop(logger),
	}
	s.hub = newHub(s.logger)
	s.router = s.buildRouter()
	return s
}

func (s *Server) buildRouter() chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger(s.logger))
	r.Use(middleware.Recoverer)

	corsOpts := cors.Options{
		AllowedOrigins: []string{"http://localhost:*", "http://127.0.0.1:*"},
		AllowedMethods: []string{"GET", "HEAD", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}
	if s.cfg.AllowAll {
		corsOpts.AllowedOrigins = []string{"*"}
	}
	r.Use(cors.Handler(corsOpts))

	// The websocket outlives any request timeout.
	r.Get("/livereload", s.hub.serve)

	r.Group(func(r chi.Router) {
		r.Use(middleware.Timeout(60 * time.Second))

		r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
		})

		r.Route("/api", func(r chi.Router) {
			r.Get("/publications", s.handlePublications)
			r.Get("/publications/{id}/bibtex", s.handleBibtex)
			r.Get("/posts", s.handlePosts)
		})

		r.Get("/blog-post.html", s.handleForward)
		r.Handle("/*", s.staticHandler())
	})

	return r
}

// requestLogger logs each request at debug level.
func requestLogger(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			next.ServeHTTP(ww, r)
			logger.Debug("request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.Status()),
				zap.Duration("elapsed", time.Since(start)),
				zap.String("request_id", middleware.GetReqID(r.Context())))
		})
	}
}

// Router returns the chi router for registering additional routes.
func (s *Server) Router() chi.Router { return s.router }

// SetInfo replaces the portfolio data the API reads.
func (s *Server) SetInfo(doc *info.Info) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.info = doc
}

// SetPosts replaces the posts index the API reads.
func (s *Server) SetPosts(entries []posts.Entry) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.posts = entries
}

func (s *Server) snapshot() (*info.Info, []posts.Entry) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.info, s.posts
}

// Reload tells every connected page to reload.
func (s *Server) Reload() { s.hub.broadcast("reload") }

// Start begins listening on the configured port.
func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.cfg.Port)
	s.httpServer = &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       120 * time.Second,
	}
	s.logger.Info("serving site", zap.String("addr", addr), zap.String("dir", s.cfg.Dir))
	return s.httpServer.ListenAndServe()
}

// Shutdown closes live-reload connections and stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.hub.close()
	if s.httpServer != nil {
		return s.httpServer.Shutdown(ctx)
	}
	return nil
}

// OpenBrowser opens url in the default browser.
func OpenBrowser(url string) {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "windows":
		cmd = exec.Command("cmd", "/c", "start", url)
	case "darwin":
		cmd = exec.Command("open", url)
	default:
		cmd = exec.Command("xdg-open", url)
	}
	_ = cmd.Start()
}
