// Package app provides dependency injection container for assembling application components.
package app

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"sync"

	"github.com/redis/go-redis/v9"

	authHTTP "github.com/allisson/schoolsite/internal/auth/http"
	authService "github.com/allisson/schoolsite/internal/auth/service"
	authUseCase "github.com/allisson/schoolsite/internal/auth/usecase"
	"github.com/allisson/schoolsite/internal/config"
	contactHTTP "github.com/allisson/schoolsite/internal/contact/http"
	contactUseCase "github.com/allisson/schoolsite/internal/contact/usecase"
	"github.com/allisson/schoolsite/internal/database"
	"github.com/allisson/schoolsite/internal/http"
	"github.com/allisson/schoolsite/internal/mail"
	"github.com/allisson/schoolsite/internal/metrics"
	outboxUseCase "github.com/allisson/schoolsite/internal/outbox/usecase"
	settingHTTP "github.com/allisson/schoolsite/internal/setting/http"
	settingUseCase "github.com/allisson/schoolsite/internal/setting/usecase"
)

// Container holds all application dependencies and provides methods to access them.
// It follows the lazy initialization pattern - components are created on first access.
type Container struct {
	// Configuration
	config *config.Config

	// Background context for goroutines owned by container components.
	// Cancelled by Shutdown.
	ctx    context.Context
	cancel context.CancelFunc

	// Infrastructure
	logger          *slog.Logger
	db              *sql.DB
	redisClient     *redis.Client
	metricsProvider *metrics.Provider
	businessMetrics metrics.BusinessMetrics

	// Managers
	txManager database.TxManager

	// Services
	kmsService     authService.KMSService
	sessionSecret  []byte
	passwordHasher authService.PasswordHasher
	tokenIssuer    authService.TokenIssuer
	auditSigner    authService.AuditSigner
	denylist       authService.Denylist
	mailer         mail.Mailer

	// Repositories
	adminRepository    authUseCase.AdminRepository
	auditLogRepository authUseCase.AuditLogRepository
	settingRepository  settingUseCase.SettingRepository
	outboxRepository   outboxUseCase.OutboxEventRepository

	// Use Cases
	sessionUseCase       authUseCase.SessionUseCase
	passwordResetUseCase authUseCase.PasswordResetUseCase
	adminUseCase         authUseCase.AdminUseCase
	auditLogUseCase      authUseCase.AuditLogUseCase
	settingUseCase       settingUseCase.SettingUseCase
	contactUseCase       contactUseCase.ContactUseCase
	outboxUseCase        outboxUseCase.UseCase

	// HTTP Handlers
	sessionHandler       *authHTTP.SessionHandler
	passwordResetHandler *authHTTP.PasswordResetHandler
	adminHandler         *authHTTP.AdminHandler
	auditLogHandler      *authHTTP.AuditLogHandler
	settingHandler       *settingHTTP.SettingHandler
	contactHandler       *contactHTTP.ContactHandler

	// Servers and Workers
	httpServer    *http.Server
	metricsServer *http.MetricsServer

	// Initialization flags and mutex for thread-safety
	mu                       sync.Mutex
	loggerInit               sync.Once
	dbInit                   sync.Once
	redisClientInit          sync.Once
	metricsProviderInit      sync.Once
	businessMetricsInit      sync.Once
	txManagerInit            sync.Once
	kmsServiceInit           sync.Once
	sessionSecretInit        sync.Once
	passwordHasherInit       sync.Once
	tokenIssuerInit          sync.Once
	auditSignerInit          sync.Once
	denylistInit             sync.Once
	mailerInit               sync.Once
	adminRepositoryInit      sync.Once
	auditLogRepositoryInit   sync.Once
	settingRepositoryInit    sync.Once
	outboxRepositoryInit     sync.Once
	sessionUseCaseInit       sync.Once
	passwordResetUseCaseInit sync.Once
	adminUseCaseInit         sync.Once
	auditLogUseCaseInit      sync.Once
	settingUseCaseInit       sync.Once
	contactUseCaseInit       sync.Once
	outboxUseCaseInit        sync.Once
	sessionHandlerInit       sync.Once
	passwordResetHandlerInit sync.Once
	adminHandlerInit         sync.Once
	auditLogHandlerInit      sync.Once
	settingHandlerInit       sync.Once
	contactHandlerInit       sync.Once
	httpServerInit           sync.Once
	metricsServerInit        sync.Once
	initErrors               map[string]error
}

// NewContainer creates a new dependency injection container with the provided configuration.
func NewContainer(cfg *config.Config) *Container {
	ctx, cancel := context.WithCancel(context.Background())
	return &Container{
		config:     cfg,
		ctx:        ctx,
		cancel:     cancel,
		initErrors: make(map[string]error),
	}
}

// Config returns the application configuration.
func (c *Container) Config() *config.Config {
	return c.config
}

// Logger returns the configured logger instance.
// It creates a new logger on first access based on the log level in configuration.
func (c *Container) Logger() *slog.Logger {
	c.loggerInit.Do(func() {
		c.logger = c.initLogger()
	})
	return c.logger
}

// DB returns the database connection.
// It creates and configures the database connection on first access.
func (c *Container) DB() (*sql.DB, error) {
	var err error
	c.dbInit.Do(func() {
		c.db, err = c.initDB()
		if err != nil {
			c.initErrors["db"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["db"]; exists {
		return nil, storedErr
	}
	return c.db, nil
}

// TxManager returns the transaction manager.
// It requires a database connection to be initialized first.
func (c *Container) TxManager() (database.TxManager, error) {
	var err error
	c.txManagerInit.Do(func() {
		c.txManager, err = c.initTxManager()
		if err != nil {
			c.initErrors["txManager"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["txManager"]; exists {
		return nil, storedErr
	}
	return c.txManager, nil
}

// RedisClient returns the Redis client, or nil when REDIS_URL is not set.
func (c *Container) RedisClient() (*redis.Client, error) {
	var err error
	c.redisClientInit.Do(func() {
		c.redisClient, err = c.initRedisClient()
		if err != nil {
			c.initErrors["redisClient"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["redisClient"]; exists {
		return nil, storedErr
	}
	return c.redisClient, nil
}

// MetricsProvider returns the Prometheus-backed meter provider, or nil when
// metrics are disabled.
func (c *Container) MetricsProvider() (*metrics.Provider, error) {
	var err error
	c.metricsProviderInit.Do(func() {
		c.metricsProvider, err = c.initMetricsProvider()
		if err != nil {
			c.initErrors["metricsProvider"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["metricsProvider"]; exists {
		return nil, storedErr
	}
	return c.metricsProvider, nil
}

// BusinessMetrics returns the business metrics recorder. It is a no-op
// recorder when metrics are disabled.
func (c *Container) BusinessMetrics() (metrics.BusinessMetrics, error) {
	var err error
	c.businessMetricsInit.Do(func() {
		c.businessMetrics, err = c.initBusinessMetrics()
		if err != nil {
			c.initErrors["businessMetrics"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["businessMetrics"]; exists {
		return nil, storedErr
	}
	return c.businessMetrics, nil
}

// HTTPServer returns the API server with its router configured.
func (c *Container) HTTPServer() (*http.Server, error) {
	var err error
	c.httpServerInit.Do(func() {
		c.httpServer, err = c.initHTTPServer()
		if err != nil {
			c.initErrors["httpServer"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["httpServer"]; exists {
		return nil, storedErr
	}
	return c.httpServer, nil
}

// MetricsServer returns the metrics server, or nil when metrics are disabled.
func (c *Container) MetricsServer() (*http.MetricsServer, error) {
	var err error
	c.metricsServerInit.Do(func() {
		c.metricsServer, err = c.initMetricsServer()
		if err != nil {
			c.initErrors["metricsServer"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["metricsServer"]; exists {
		return nil, storedErr
	}
	return c.metricsServer, nil
}

// Shutdown performs cleanup of all initialized resources.
// It should be called when the application is shutting down.
func (c *Container) Shutdown(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.cancel()

	var shutdownErrors []error

	if c.httpServer != nil {
		if err := c.httpServer.Shutdown(ctx); err != nil {
			shutdownErrors = append(shutdownErrors, fmt.Errorf("http server shutdown: %w", err))
		}
	}

	if c.metricsServer != nil {
		if err := c.metricsServer.Shutdown(ctx); err != nil {
			shutdownErrors = append(shutdownErrors, fmt.Errorf("metrics server shutdown: %w", err))
		}
	}

	if c.metricsProvider != nil {
		if err := c.metricsProvider.Shutdown(ctx); err != nil {
			shutdownErrors = append(shutdownErrors, fmt.Errorf("metrics provider shutdown: %w", err))
		}
	}

	if c.redisClient != nil {
		if err := c.redisClient.Close(); err != nil {
			shutdownErrors = append(shutdownErrors, fmt.Errorf("redis close: %w", err))
		}
	}

	if c.db != nil {
		if err := c.db.Close(); err != nil {
			shutdownErrors = append(shutdownErrors, fmt.Errorf("database close: %w", err))
		}
	}

	return errors.Join(shutdownErrors...)
}

// initLogger creates and configures a structured logger based on the log level.
func (c *Container) initLogger() *slog.Logger {
	var logLevel slog.Level
	switch c.config.LogLevel {
	case "debug":
		logLevel = slog.LevelDebug
	case "info":
		logLevel = slog.LevelInfo
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}

	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	})

	return slog.New(handler).With(slog.String("env", c.config.AppEnv))
}

// initDB creates and configures the database connection.
func (c *Container) initDB() (*sql.DB, error) {
	db, err := database.Connect(database.Config{
		Driver:             c.config.DBDriver,
		ConnectionString:   c.config.DBConnectionString,
		MaxOpenConnections: c.config.DBMaxOpenConnections,
		MaxIdleConnections: c.config.DBMaxIdleConnections,
		ConnMaxLifetime:    c.config.DBConnMaxLifetime,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return db, nil
}

// initTxManager creates the transaction manager using the database connection.
func (c *Container) initTxManager() (database.TxManager, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for tx manager: %w", err)
	}
	return database.NewTxManager(db), nil
}

// initRedisClient connects to Redis when configured.
func (c *Container) initRedisClient() (*redis.Client, error) {
	if c.config.RedisURL == "" {
		return nil, nil
	}
	return authService.NewRedisClient(c.ctx, c.config.RedisURL)
}

// initMetricsProvider creates the meter provider when metrics are enabled.
func (c *Container) initMetricsProvider() (*metrics.Provider, error) {
	if !c.config.MetricsEnabled {
		return nil, nil
	}
	provider, err := metrics.NewProvider(c.config.MetricsNamespace)
	if err != nil {
		return nil, fmt.Errorf("failed to create metrics provider: %w", err)
	}
	return provider, nil
}

// initBusinessMetrics creates the business metrics recorder.
func (c *Container) initBusinessMetrics() (metrics.BusinessMetrics, error) {
	provider, err := c.MetricsProvider()
	if err != nil {
		return nil, fmt.Errorf("failed to get metrics provider for business metrics: %w", err)
	}
	if provider == nil {
		return metrics.NewNoOpBusinessMetrics(), nil
	}
	return metrics.NewBusinessMetrics(provider.MeterProvider(), c.config.MetricsNamespace)
}

// initHTTPServer creates the API server and mounts every route.
func (c *Container) initHTTPServer() (*http.Server, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for http server: %w", err)
	}

	metricsProvider, err := c.MetricsProvider()
	if err != nil {
		return nil, fmt.Errorf("failed to get metrics provider for http server: %w", err)
	}

	sessionUseCase, err := c.SessionUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get session use case for http server: %w", err)
	}

	sessionHandler, err := c.SessionHandler()
	if err != nil {
		return nil, fmt.Errorf("failed to get session handler for http server: %w", err)
	}

	passwordResetHandler, err := c.PasswordResetHandler()
	if err != nil {
		return nil, fmt.Errorf("failed to get password reset handler for http server: %w", err)
	}

	adminHandler, err := c.AdminHandler()
	if err != nil {
		return nil, fmt.Errorf("failed to get admin handler for http server: %w", err)
	}

	auditLogHandler, err := c.AuditLogHandler()
	if err != nil {
		return nil, fmt.Errorf("failed to get audit log handler for http server: %w", err)
	}

	settingHandler, err := c.SettingHandler()
	if err != nil {
		return nil, fmt.Errorf("failed to get setting handler for http server: %w", err)
	}

	contactHandler, err := c.ContactHandler()
	if err != nil {
		return nil, fmt.Errorf("failed to get contact handler for http server: %w", err)
	}

	server := http.NewServer(db, c.config.ServerHost, c.config.ServerPort, c.Logger())
	if err := server.SetupRouter(c.ctx, c.config, http.RouterDependencies{
		SessionUseCase:       sessionUseCase,
		SessionHandler:       sessionHandler,
		PasswordResetHandler: passwordResetHandler,
		AdminHandler:         adminHandler,
		AuditLogHandler:      auditLogHandler,
		SettingHandler:       settingHandler,
		ContactHandler:       contactHandler,
		MetricsProvider:      metricsProvider,
	}); err != nil {
		return nil, fmt.Errorf("failed to set up router: %w", err)
	}

	return server, nil
}

// initMetricsServer creates the metrics server when metrics are enabled.
func (c *Container) initMetricsServer() (*http.MetricsServer, error) {
	provider, err := c.MetricsProvider()
	if err != nil {
		return nil, fmt.Errorf("failed to get metrics provider for metrics server: %w", err)
	}
	if provider == nil {
		return nil, nil
	}
	return http.NewMetricsServer(c.config.ServerHost, c.config.MetricsPort, c.Logger(), provider), nil
}
