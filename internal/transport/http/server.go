package http

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/Heyymant/Uncommon/internal/app"
	"github.com/Heyymant/Uncommon/internal/config"
	"github.com/Heyymant/Uncommon/internal/prompts"
	"github.com/Heyymant/Uncommon/internal/transport/ws"
)

// Server represents the HTTP server
type Server struct {
	server    *http.Server
	hub       *app.RoomHub
	generator *prompts.Generator
	config    *config.Config
	logger    *slog.Logger
}

// NewServer creates a new HTTP server
func NewServer(cfg *config.Config, hub *app.RoomHub, generator *prompts.Generator, logger *slog.Logger) *Server {
	s := &Server{
		hub:       hub,
		generator: generator,
		config:    cfg,
		logger:    logger,
	}

	r := chi.NewRouter()
	r.Use(s.corsMiddleware)
	r.Use(s.logMiddleware)

	r.Get("/api/health", s.handleHealth)
	r.Get("/api/prompts", s.handlePrompts)
	r.Get("/api/rooms/{roomCode}", s.handleGetRoom)
	r.Get("/api/rooms/{roomCode}/qr", s.handleRoomQR)
	r.Get("/api/stats", s.handleStats)

	wsHandler := ws.NewHandler(hub, generator, logger)
	r.Get("/ws", wsHandler.ServeHTTP)

	s.server = &http.Server{
		Addr:        cfg.GetAddr(),
		Handler:     r,
		ReadTimeout: 15 * time.Second,
		IdleTimeout: 60 * time.Second,
	}

	return s
}

// corsMiddleware adds CORS headers and answers preflight requests
func (s *Server) corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// logMiddleware logs each request with its status and duration
func (s *Server) logMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		wrapped := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}

		next.ServeHTTP(wrapped, r)

		s.logger.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", wrapped.statusCode,
			"duration", time.Since(start),
		)
	})
}

// Start starts the HTTP server
func (s *Server) Start() error {
	s.logger.Info("server starting", "addr", s.server.Addr)
	return s.server.ListenAndServe()
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("server shutting down")
	return s.server.Shutdown(ctx)
}
