package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	_ "net/http/pprof" // Import for side effects (registers pprof handlers)
	"time"

	"github.com/gorilla/mux"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/framegate/framegate/internal/config"
	"github.com/framegate/framegate/internal/errors"
	"github.com/framegate/framegate/internal/health"
	"github.com/framegate/framegate/internal/logger"
	"github.com/framegate/framegate/internal/store"
)

// Server is the HTTP front end for the timecode API.
type Server struct {
	config       *config.ServerConfig
	router       *mux.Router
	httpServer   *http.Server
	logger       *logrus.Logger
	redis        *redis.Client
	anchors      *store.AnchorStore
	healthMgr    *health.Manager
	errorHandler *errors.ErrorHandler
	limiter      *clientLimiter
}

// New creates a new server instance.
func New(cfg *config.ServerConfig, log *logrus.Logger, redisClient *redis.Client, anchors *store.AnchorStore) *Server {
	s := &Server{
		config:       cfg,
		router:       mux.NewRouter(),
		logger:       log,
		redis:        redisClient,
		anchors:      anchors,
		healthMgr:    health.NewManager(log),
		errorHandler: errors.NewErrorHandler(log),
	}

	if cfg.RateLimit > 0 {
		s.limiter = newClientLimiter(cfg.RateLimit, cfg.RateLimitBurst)
	}

	s.registerHealthCheckers()
	s.setupRoutes()

	return s
}

// Start starts the HTTP server and blocks until ctx is cancelled.
func (s *Server) Start(ctx context.Context) error {
	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", s.config.Port),
		Handler:      s.router,
		ReadTimeout:  s.config.ReadTimeout,
		WriteTimeout: s.config.WriteTimeout,
	}

	go s.healthMgr.StartPeriodicChecks(ctx, 30*time.Second)

	s.logger.WithField("port", s.config.Port).Info("Starting HTTP server")

	errCh := make(chan error, 1)
	go func() {
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server failed to start: %w", err)
	case <-ctx.Done():
		return s.Shutdown()
	}
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown() error {
	s.logger.Info("Shutting down HTTP server")

	ctx, cancel := context.WithTimeout(context.Background(), s.config.ShutdownTimeout)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("failed to shutdown server: %w", err)
	}

	s.logger.Info("HTTP server shutdown complete")
	return nil
}

// setupRoutes configures all routes
func (s *Server) setupRoutes() {
	s.router.Use(s.requestIDMiddleware)
	s.router.Use(logger.RequestLoggerMiddleware(s.logger))
	s.router.Use(s.recoveryMiddleware)
	s.router.Use(s.errorHandler.Middleware)
	s.router.Use(s.metricsMiddleware)
	s.router.Use(s.corsMiddleware)
	if s.limiter != nil {
		s.router.Use(s.rateLimitMiddleware)
	}

	// Health endpoints
	healthHandler := health.NewHandler(s.healthMgr)
	s.router.HandleFunc("/health", healthHandler.HandleHealth).Methods("GET")
	s.router.HandleFunc("/ready", healthHandler.HandleReady).Methods("GET")
	s.router.HandleFunc("/live", healthHandler.HandleLive).Methods("GET")

	// Version endpoint
	s.router.HandleFunc("/version", s.handleVersion).Methods("GET")

	// API routes
	api := s.router.PathPrefix("/api/v1").Subrouter()
	api.HandleFunc("/rates", s.handleRates).Methods("GET")
	api.HandleFunc("/timecodes/parse", s.handleParse).Methods("POST")
	api.HandleFunc("/timecodes/add", s.handleAddFrames).Methods("POST")
	api.HandleFunc("/timecodes/convert", s.handleConvert).Methods("POST")
	api.HandleFunc("/splices/duration", s.handleSpliceDuration).Methods("POST")

	api.HandleFunc("/anchors", s.handleListAnchors).Methods("GET")
	api.HandleFunc("/anchors/{name}", s.handleGetAnchor).Methods("GET")
	api.HandleFunc("/anchors/{name}", s.handlePutAnchor).Methods("PUT")
	api.HandleFunc("/anchors/{name}", s.handleDeleteAnchor).Methods("DELETE")

	// Debug endpoints (only if enabled)
	if s.config.DebugEndpoints {
		s.logger.Info("Enabling debug endpoints")
		s.router.PathPrefix("/debug/pprof/").Handler(http.DefaultServeMux)
	}

	s.router.NotFoundHandler = http.HandlerFunc(s.errorHandler.HandleNotFound)
	s.router.MethodNotAllowedHandler = http.HandlerFunc(s.errorHandler.HandleMethodNotAllowed)
}

// registerHealthCheckers registers all health checkers
func (s *Server) registerHealthCheckers() {
	s.healthMgr.Register(health.NewRedisChecker(s.redis))
	s.healthMgr.Register(health.NewMemoryChecker(0))
}

// GetRouter returns the router for testing.
func (s *Server) GetRouter() *mux.Router {
	return s.router
}

// writeJSON is a helper to write JSON responses
func (s *Server) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.logger.WithError(err).Error("Failed to encode response")
	}
}

// writeError is a helper to write error responses
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	s.errorHandler.HandleError(w, r, err)
}
