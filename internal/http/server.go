// Package http provides the public and admin HTTP API of the school website.
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

	authDomain "github.com/allisson/schoolsite/internal/auth/domain"
	authHTTP "github.com/allisson/schoolsite/internal/auth/http"
	authUseCase "github.com/allisson/schoolsite/internal/auth/usecase"
	"github.com/allisson/schoolsite/internal/config"
	contactHTTP "github.com/allisson/schoolsite/internal/contact/http"
	"github.com/allisson/schoolsite/internal/httputil"
	"github.com/allisson/schoolsite/internal/metrics"
	settingHTTP "github.com/allisson/schoolsite/internal/setting/http"
)

const readinessTimeout = 2 * time.Second

// Server represents the API HTTP server.
type Server struct {
	db     *sql.DB
	server *http.Server
	logger *slog.Logger
	router *gin.Engine
}

// RouterDependencies groups the handlers and use cases mounted by SetupRouter.
type RouterDependencies struct {
	SessionUseCase       authUseCase.SessionUseCase
	SessionHandler       *authHTTP.SessionHandler
	PasswordResetHandler *authHTTP.PasswordResetHandler
	AdminHandler         *authHTTP.AdminHandler
	AuditLogHandler      *authHTTP.AuditLogHandler
	SettingHandler       *settingHTTP.SettingHandler
	ContactHandler       *contactHTTP.ContactHandler
	MetricsProvider      *metrics.Provider
}

// NewServer creates a new HTTP server. Call SetupRouter before Start.
func NewServer(
	db *sql.DB,
	host string,
	port int,
	logger *slog.Logger,
) *Server {
	return &Server{
		db:     db,
		logger: logger,
		server: newHTTPServer(host, port, nil),
	}
}

// SetupRouter builds the gin engine with every route. ctx bounds the
// background cleanup of the per-IP rate limiters.
func (s *Server) SetupRouter(ctx context.Context, cfg *config.Config, deps RouterDependencies) error {
	gin.SetMode(cfg.GetGinMode())

	router := gin.New()
	if err := router.SetTrustedProxies(splitCommaList(cfg.TrustedProxies)); err != nil {
		return fmt.Errorf("invalid trusted proxies: %w", err)
	}

	router.Use(gin.Recovery())
	router.Use(requestid.New(requestid.WithGenerator(func() string {
		return uuid.Must(uuid.NewV7()).String()
	})))
	router.Use(CustomLoggerMiddleware(s.logger))

	if corsMiddleware := newCORSMiddleware(cfg.CORSEnabled, cfg.CORSAllowOrigins, s.logger); corsMiddleware != nil {
		router.Use(corsMiddleware)
	}

	if cfg.MetricsEnabled && deps.MetricsProvider != nil {
		router.Use(metrics.HTTPMetricsMiddleware(deps.MetricsProvider.MeterProvider(), cfg.MetricsNamespace))
	}

	router.GET("/health", s.healthHandler)
	router.GET("/ready", s.readinessHandler)

	loginLimiter := s.rateLimiter(ctx, cfg, "login")
	resetLimiter := s.rateLimiter(ctx, cfg, "password_reset")
	contactLimiter := s.rateLimiter(ctx, cfg, "contact")

	v1 := router.Group("/v1")
	{
		v1.GET("/settings", deps.SettingHandler.PublicListHandler)
		v1.POST("/contact", append(contactLimiter, deps.ContactHandler.SubmitHandler)...)

		admin := v1.Group("/admin")
		admin.POST("/login", append(loginLimiter, deps.SessionHandler.LoginHandler)...)
		admin.POST("/password-reset", append(resetLimiter, deps.PasswordResetHandler.RequestHandler)...)
		admin.POST("/password-reset/confirm", append(resetLimiter, deps.PasswordResetHandler.ConfirmHandler)...)

		authenticated := admin.Group("")
		authenticated.Use(authHTTP.AdminAuthMiddleware(deps.SessionUseCase, s.logger))
		{
			authenticated.POST("/logout", deps.SessionHandler.LogoutHandler)
			authenticated.GET("/me", deps.SessionHandler.MeHandler)
			authenticated.GET("/settings", deps.SettingHandler.AdminListHandler)
			authenticated.PUT(
				"/settings/:key",
				authHTTP.RequireRole(s.logger, authDomain.RoleSuperAdmin, authDomain.RoleAdmin),
				deps.SettingHandler.UpdateHandler,
			)

			superadmin := authenticated.Group("")
			superadmin.Use(authHTTP.RequireRole(s.logger, authDomain.RoleSuperAdmin))
			{
				superadmin.POST("/admins", deps.AdminHandler.CreateHandler)
				superadmin.GET("/admins", deps.AdminHandler.ListHandler)
				superadmin.GET("/admins/:id", deps.AdminHandler.GetHandler)
				superadmin.PATCH("/admins/:id", deps.AdminHandler.UpdateHandler)
				superadmin.DELETE("/admins/:id", deps.AdminHandler.DeleteHandler)
				superadmin.GET("/audit-logs", deps.AuditLogHandler.ListHandler)
			}
		}
	}

	s.router = router
	return nil
}

// rateLimiter returns the per-IP limiter chain for scope, empty when disabled.
func (s *Server) rateLimiter(ctx context.Context, cfg *config.Config, scope string) []gin.HandlerFunc {
	if !cfg.RateLimitLoginEnabled {
		return nil
	}
	return []gin.HandlerFunc{
		httputil.IPRateLimitMiddleware(
			ctx,
			scope,
			cfg.RateLimitLoginRequestsPerSec,
			cfg.RateLimitLoginBurst,
			s.logger,
		),
	}
}

// GetHandler returns the http.Handler for testing purposes.
func (s *Server) GetHandler() http.Handler {
	return s.router
}

// healthHandler reports liveness.
func (s *Server) healthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}

// readinessHandler reports whether the database answers a ping.
func (s *Server) readinessHandler(c *gin.Context) {
	database := "ok"
	if s.db == nil {
		database = "error"
	} else {
		ctx, cancel := context.WithTimeout(c.Request.Context(), readinessTimeout)
		defer cancel()
		if err := s.db.PingContext(ctx); err != nil {
			s.logger.Warn("readiness check failed", slog.Any("error", err))
			database = "error"
		}
	}

	if database != "ok" {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":     "not_ready",
			"components": gin.H{"database": database},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":     "ready",
		"components": gin.H{"database": database},
	})
}

// Start starts the HTTP server and blocks until it stops.
func (s *Server) Start(ctx context.Context) error {
	if s.router == nil {
		return fmt.Errorf("router not configured: call SetupRouter first")
	}
	s.server.Handler = s.router

	return listenAndServe(s.server, s.logger)
}

// Shutdown gracefully shuts down the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down http server")
	return s.server.Shutdown(ctx)
}
