// Package http provides the API HTTP server, its router and middleware chain.
package http

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	authHTTP "github.com/allisson/taskhub/internal/auth/http"
	"github.com/allisson/taskhub/internal/auth/service"
	"github.com/allisson/taskhub/internal/config"
	"github.com/allisson/taskhub/internal/metrics"
	taskHTTP "github.com/allisson/taskhub/internal/task/http"
	userHTTP "github.com/allisson/taskhub/internal/user/http"
)

// Handlers groups the feature handlers and the token service the router needs.
type Handlers struct {
	User         *userHTTP.UserHandler
	Task         *taskHTTP.TaskHandler
	Login        *authHTTP.LoginHandler
	TokenService service.TokenService
}

// Server represents the API HTTP server. Health and readiness live outside
// the versioned group; everything under /v1 except login requires a valid
// bearer token.
type Server struct {
	server *http.Server
	db     *sql.DB
	logger *slog.Logger
}

// NewServer creates a new API server with the full middleware chain and all
// routes registered. The metrics provider may be nil when metrics are
// disabled.
func NewServer(
	cfg *config.Config,
	db *sql.DB,
	logger *slog.Logger,
	handlers Handlers,
	metricsProvider *metrics.Provider,
) *Server {
	s := &Server{
		db:     db,
		logger: logger,
	}

	s.server = &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.ServerHost, cfg.ServerPort),
		Handler:      s.createRouter(cfg, handlers, metricsProvider),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return s
}

// createRouter builds the Gin engine with the middleware chain and routes.
func (s *Server) createRouter(
	cfg *config.Config,
	handlers Handlers,
	metricsProvider *metrics.Provider,
) *gin.Engine {
	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(requestid.New(requestid.WithGenerator(func() string {
		return uuid.Must(uuid.NewV7()).String()
	})))
	router.Use(CustomLoggerMiddleware(s.logger))

	if corsMiddleware := createCORSMiddleware(cfg.CORSEnabled, cfg.CORSAllowOrigins, s.logger); corsMiddleware != nil {
		router.Use(corsMiddleware)
	}

	if metricsProvider != nil {
		router.Use(metrics.HTTPMetricsMiddleware(metricsProvider.MeterProvider(), cfg.MetricsNamespace))
	}

	router.GET("/health", s.healthHandler)
	router.GET("/ready", s.readinessHandler)

	v1 := router.Group("/v1")

	login := v1.Group("/auth")
	if cfg.RateLimitLoginEnabled {
		login.Use(authHTTP.LoginRateLimitMiddleware(
			cfg.RateLimitLoginRequestsPerSec,
			cfg.RateLimitLoginBurst,
			s.logger,
		))
	}
	login.POST("/login", handlers.Login.LoginHandler)

	protected := v1.Group("")
	protected.Use(authHTTP.AuthenticationMiddleware(handlers.TokenService, s.logger))

	users := protected.Group("/users")
	users.POST("", handlers.User.CreateHandler)
	users.GET("", handlers.User.ListHandler)
	users.GET("/:id", handlers.User.GetHandler)
	users.PATCH("/:id", handlers.User.UpdateHandler)
	users.DELETE("/:id", handlers.User.DeleteHandler)

	tasks := protected.Group("/tasks")
	tasks.POST("", handlers.Task.CreateHandler)
	tasks.GET("", handlers.Task.ListHandler)
	tasks.GET("/search", handlers.Task.SearchHandler)
	tasks.GET("/:id", handlers.Task.GetHandler)
	tasks.PATCH("/:id", handlers.Task.UpdateHandler)
	tasks.DELETE("/:id", handlers.Task.DeleteHandler)

	return router
}

// healthHandler reports process liveness.
func (s *Server) healthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}

// readinessHandler reports whether the server can serve traffic, checking
// the database connection.
func (s *Server) readinessHandler(c *gin.Context) {
	components := gin.H{"database": "ok"}

	if s.db == nil {
		components["database"] = "error"
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":     "not_ready",
			"components": components,
		})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	if err := s.db.PingContext(ctx); err != nil {
		s.logger.Error("readiness check failed", slog.Any("error", err))
		components["database"] = "error"
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":     "not_ready",
			"components": components,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":     "ready",
		"components": components,
	})
}

// GetHandler returns the http.Handler for testing purposes.
func (s *Server) GetHandler() http.Handler {
	return s.server.Handler
}

// Start starts the API HTTP server.
func (s *Server) Start(ctx context.Context) error {
	s.logger.Info("starting http server", slog.String("addr", s.server.Addr))

	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

// Shutdown gracefully shuts down the API HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down http server")
	return s.server.Shutdown(ctx)
}
