package http

import (
	"bufio"
	"context"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"mentiroso/internal/app"
	"mentiroso/internal/config"
	"mentiroso/internal/transport/ws"
)

// Server represents the HTTP server
type Server struct {
	server     *http.Server
	controller *app.Controller
	hub        *app.Hub
	config     *config.Config
	logger     *slog.Logger
}

// NewServer creates a new HTTP server
func NewServer(cfg *config.Config, controller *app.Controller, hub *app.Hub, logger *slog.Logger) *Server {
	s := &Server{
		controller: controller,
		hub:        hub,
		config:     cfg,
		logger:     logger,
	}

	router := mux.NewRouter()
	s.setupRoutes(router)

	s.server = &http.Server{
		Addr:    cfg.GetAddr(),
		Handler: s.middleware(router),
		// Start waits on the word service, so leave room for its timeout
		ReadTimeout:  15 * time.Second,
		WriteTimeout: cfg.Provider.Timeout + 15*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return s
}

// Handler returns the root handler, middleware included
func (s *Server) Handler() http.Handler {
	return s.server.Handler
}

// setupRoutes configures all HTTP routes
func (s *Server) setupRoutes(r *mux.Router) {
	api := r.PathPrefix("/api").Subrouter()

	api.HandleFunc("/health", s.handleHealth).Methods(http.MethodGet)
	api.HandleFunc("/categories", s.handleCategories).Methods(http.MethodGet)

	api.HandleFunc("/session", s.handleGetSession).Methods(http.MethodGet)
	api.HandleFunc("/session", s.handleResetSession).Methods(http.MethodDelete)

	api.HandleFunc("/game", s.handleGetGame).Methods(http.MethodGet)
	api.HandleFunc("/game", s.handleStartGame).Methods(http.MethodPost)
	api.HandleFunc("/game", s.handleReset).Methods(http.MethodDelete)
	api.HandleFunc("/game/reveal", s.handleRevealCard).Methods(http.MethodGet)
	api.HandleFunc("/game/reveal/next", s.handleRevealNext).Methods(http.MethodPost)
	api.HandleFunc("/game/votes", s.handleSubmitVote).Methods(http.MethodPost)
	api.HandleFunc("/game/continue", s.handleContinue).Methods(http.MethodPost)
	api.HandleFunc("/game/ready", s.handleReady).Methods(http.MethodPost)
	api.HandleFunc("/game/finish", s.handleFinish).Methods(http.MethodPost)

	api.HandleFunc("/display/qr", s.handleDisplayQR).Methods(http.MethodGet)

	// WebSocket
	r.Handle("/ws", ws.NewHandler(s.controller, s.hub, s.logger)).Methods(http.MethodGet)
}

// middleware wraps the handler with logging and CORS
func (s *Server) middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		// Add CORS headers
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		// Handle preflight
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		// Wrap response writer to capture status code
		wrapped := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}

		next.ServeHTTP(wrapped, r)

		// Polling the view is noisy outside development
		if s.config.IsDevelopment() || !isPollRequest(r) {
			s.logger.Info("request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", wrapped.statusCode,
				"duration", time.Since(start),
			)
		}
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

// responseWriter wraps http.ResponseWriter to capture status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// Hijack implements http.Hijacker for WebSocket support
func (rw *responseWriter) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	if hijacker, ok := rw.ResponseWriter.(http.Hijacker); ok {
		return hijacker.Hijack()
	}
	return nil, nil, http.ErrNotSupported
}

// Flush implements http.Flusher
func (rw *responseWriter) Flush() {
	if flusher, ok := rw.ResponseWriter.(http.Flusher); ok {
		flusher.Flush()
	}
}

// isPollRequest checks if the request only reads the game view
func isPollRequest(r *http.Request) bool {
	return r.Method == http.MethodGet && r.URL.Path == "/api/game"
}
