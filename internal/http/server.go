// Package http provides the HTTP server, routing, and server-level middleware.
package http

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/metric"

	authHTTP "github.com/atelierhq/backend/internal/auth/http"
	authUseCase "github.com/atelierhq/backend/internal/auth/usecase"
	"github.com/atelierhq/backend/internal/config"
	"github.com/atelierhq/backend/internal/metrics"
	userHTTP "github.com/atelierhq/backend/internal/user/http"
)

// Server represents the API HTTP server.
type Server struct {
	server *http.Server
	logger *slog.Logger

	config        *config.Config
	authHandler   *authHTTP.AuthHandler
	userHandler   *userHTTP.UserHandler
	authUseCase   authUseCase.AuthUseCase
	meterProvider metric.MeterProvider
}

// NewServer creates a new HTTP server with all route dependencies.
// The meterProvider may be nil when metrics are disabled.
func NewServer(
	cfg *config.Config,
	logger *slog.Logger,
	authHandler *authHTTP.AuthHandler,
	userHandler *userHTTP.UserHandler,
	authUC authUseCase.AuthUseCase,
	meterProvider metric.MeterProvider,
) *Server {
	return &Server{
		logger:        logger,
		config:        cfg,
		authHandler:   authHandler,
		userHandler:   userHandler,
		authUseCase:   authUC,
		meterProvider: meterProvider,
		server: &http.Server{
			Addr:         fmt.Sprintf("%s:%d", cfg.ServerHost, cfg.ServerPort),
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 15 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
	}
}

// setupRouter builds the gin engine with middleware and all API routes.
func (s *Server) setupRouter(ctx context.Context) *gin.Engine {
	gin.SetMode(s.config.GetGinMode())

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(requestid.New())
	router.Use(CustomLoggerMiddleware(s.logger))

	if corsMiddleware := createCORSMiddleware(s.config.CORSEnabled, s.config.CORSAllowOrigins, s.logger); corsMiddleware != nil {
		router.Use(corsMiddleware)
	}

	if s.config.MetricsEnabled && s.meterProvider != nil {
		router.Use(metrics.HTTPMetricsMiddleware(s.meterProvider, s.config.MetricsNamespace))
	}

	router.GET("/health", HealthHandler())
	router.GET("/ready", ReadinessHandler(ctx))

	// Unauthenticated endpoints. The login rate limit is IP-keyed since
	// there is no principal yet.
	public := router.Group("/v1/auth")
	if s.config.RateLimitLoginEnabled {
		public.Use(authHTTP.LoginRateLimitMiddleware(
			s.config.RateLimitLoginRequestsPerSec,
			s.config.RateLimitLoginBurst,
			s.logger,
		))
	}
	public.POST("/login", s.authHandler.LoginHandler)
	public.POST("/refresh", s.authHandler.RefreshHandler)

	// Authenticated endpoints. Every request re-resolves the caller's
	// roles from storage before any access decision.
	private := router.Group("/v1")
	private.Use(authHTTP.AuthenticationMiddleware(s.authUseCase, s.logger))
	if s.config.RateLimitEnabled {
		private.Use(authHTTP.RateLimitMiddleware(
			s.config.RateLimitRequestsPerSec,
			s.config.RateLimitBurst,
			s.logger,
		))
	}

	private.POST("/auth/logout", s.authHandler.LogoutHandler)
	private.POST("/auth/logout-all", s.authHandler.LogoutAllHandler)
	private.GET("/auth/profile", s.authHandler.ProfileHandler)

	users := private.Group("/users")
	users.POST("", authHTTP.RequireRoles(s.logger, "admin"), s.userHandler.CreateUserHandler)
	users.GET("", authHTTP.RequireRoles(s.logger, "admin", "moderator"), s.userHandler.ListUsersHandler)
	users.GET("/:id", authHTTP.RequireRoles(s.logger, "admin", "moderator"), s.userHandler.GetUserHandler)
	users.PATCH("/:id", authHTTP.RequireRoles(s.logger, "admin"), s.userHandler.UpdateUserHandler)
	users.POST("/:id/roles", authHTTP.RequireRoles(s.logger, "admin"), s.userHandler.AssignRoleHandler)

	return router
}

// Start starts the HTTP server.
func (s *Server) Start(ctx context.Context) error {
	s.server.Handler = s.setupRouter(ctx)

	s.logger.Info("starting http server", slog.String("addr", s.server.Addr))

	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

// Shutdown gracefully shuts down the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down http server")
	return s.server.Shutdown(ctx)
}
