// Package server exposes the relay to browser extensions and remote
// readers over HTTP and WebSocket.
package server

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/riordanpawley/translate-ai/internal/metrics"
	"github.com/riordanpawley/translate-ai/internal/services/channel"
)

// Config holds server configuration
type Config struct {
	Addr           string
	AllowedOrigins []string
	RatePerMinute  int // 0 disables limiting
}

// Server is the relay server
type Server struct {
	cfg        Config
	handler    channel.Handler
	registry   *prometheus.Registry
	metrics    *metrics.HTTPMetrics
	limiter    *ClientLimiter
	logger     *slog.Logger
	router     chi.Router
	httpServer *http.Server
}

// New creates a server answering with h. reg receives the HTTP metrics and
// is served on /metrics.
func New(cfg Config, h channel.Handler, reg *prometheus.Registry, logger *slog.Logger) *Server {
	s := &Server{
		cfg:      cfg,
		handler:  h,
		registry: reg,
		metrics:  metrics.NewHTTPMetrics(reg),
		logger:   logger,
	}
	if cfg.RatePerMinute > 0 {
		s.limiter = NewClientLimiter(cfg.RatePerMinute)
	}

	s.router = s.buildRouter()
	return s
}

func (s *Server) buildRouter() chi.Router {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.requestLogger)
	r.Use(middleware.Recoverer)
	r.Use(s.metrics.Middleware)

	// CORS
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: s.cfg.AllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok"}`))
	})
	r.Handle("/metrics", metrics.Handler(s.registry))

	r.Group(func(r chi.Router) {
		r.Use(s.rateLimit)
		r.Post(channel.MessagesPath, s.handleMessage)
		r.Get(channel.PortPath, s.handlePort)
	})

	return r
}

// Handler returns the root handler
func (s *Server) Handler() http.Handler { return s.router }

// Start listens on the configured address until Shutdown
func (s *Server) Start() error {
	s.httpServer = &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	s.logger.Info("relay server listening", "addr", s.cfg.Addr)
	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Serve accepts connections on l until Shutdown
func (s *Server) Serve(l net.Listener) error {
	s.httpServer = &http.Server{
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	if err := s.httpServer.Serve(l); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpServer != nil {
		return s.httpServer.Shutdown(ctx)
	}
	return nil
}

func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.logger.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", time.Since(start),
			"request_id", middleware.GetReqID(r.Context()),
		)
	})
}
