package app

import (
	"fmt"

	authHTTP "github.com/allisson/schoolsite/internal/auth/http"
	authRepository "github.com/allisson/schoolsite/internal/auth/repository"
	authService "github.com/allisson/schoolsite/internal/auth/service"
	authUseCase "github.com/allisson/schoolsite/internal/auth/usecase"
)

// KMSService returns the KMS service used to decrypt the session secret.
func (c *Container) KMSService() authService.KMSService {
	c.kmsServiceInit.Do(func() {
		c.kmsService = authService.NewKMSService()
	})
	return c.kmsService
}

// PasswordHasher returns the bcrypt password hasher.
func (c *Container) PasswordHasher() authService.PasswordHasher {
	c.passwordHasherInit.Do(func() {
		c.passwordHasher = authService.NewPasswordHasher(authService.DefaultPasswordCost)
	})
	return c.passwordHasher
}

// SessionSecret returns the token signing secret, decrypted through KMS when KMS_KEY_URI is set.
func (c *Container) SessionSecret() ([]byte, error) {
	var err error
	c.sessionSecretInit.Do(func() {
		c.sessionSecret, err = c.initSessionSecret()
		if err != nil {
			c.initErrors["sessionSecret"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["sessionSecret"]; exists {
		return nil, storedErr
	}
	return c.sessionSecret, nil
}

// TokenIssuer returns the JWT issuer for session and reset tokens.
func (c *Container) TokenIssuer() (authService.TokenIssuer, error) {
	var err error
	c.tokenIssuerInit.Do(func() {
		c.tokenIssuer, err = c.initTokenIssuer()
		if err != nil {
			c.initErrors["tokenIssuer"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["tokenIssuer"]; exists {
		return nil, storedErr
	}
	return c.tokenIssuer, nil
}

// AuditSigner returns the HMAC signer for audit log entries.
func (c *Container) AuditSigner() (authService.AuditSigner, error) {
	var err error
	c.auditSignerInit.Do(func() {
		c.auditSigner, err = c.initAuditSigner()
		if err != nil {
			c.initErrors["auditSigner"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["auditSigner"]; exists {
		return nil, storedErr
	}
	return c.auditSigner, nil
}

// Denylist returns the revoked token denylist. It is Redis-backed when REDIS_URL is set.
func (c *Container) Denylist() (authService.Denylist, error) {
	var err error
	c.denylistInit.Do(func() {
		c.denylist, err = c.initDenylist()
		if err != nil {
			c.initErrors["denylist"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["denylist"]; exists {
		return nil, storedErr
	}
	return c.denylist, nil
}

// AdminRepository returns the admin repository based on database driver.
func (c *Container) AdminRepository() (authUseCase.AdminRepository, error) {
	var err error
	c.adminRepositoryInit.Do(func() {
		c.adminRepository, err = c.initAdminRepository()
		if err != nil {
			c.initErrors["adminRepository"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["adminRepository"]; exists {
		return nil, storedErr
	}
	return c.adminRepository, nil
}

// AuditLogRepository returns the audit log repository based on database driver.
func (c *Container) AuditLogRepository() (authUseCase.AuditLogRepository, error) {
	var err error
	c.auditLogRepositoryInit.Do(func() {
		c.auditLogRepository, err = c.initAuditLogRepository()
		if err != nil {
			c.initErrors["auditLogRepository"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["auditLogRepository"]; exists {
		return nil, storedErr
	}
	return c.auditLogRepository, nil
}

// AuditLogUseCase returns the audit log use case.
func (c *Container) AuditLogUseCase() (authUseCase.AuditLogUseCase, error) {
	var err error
	c.auditLogUseCaseInit.Do(func() {
		c.auditLogUseCase, err = c.initAuditLogUseCase()
		if err != nil {
			c.initErrors["auditLogUseCase"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["auditLogUseCase"]; exists {
		return nil, storedErr
	}
	return c.auditLogUseCase, nil
}

// SessionUseCase returns the session use case.
func (c *Container) SessionUseCase() (authUseCase.SessionUseCase, error) {
	var err error
	c.sessionUseCaseInit.Do(func() {
		c.sessionUseCase, err = c.initSessionUseCase()
		if err != nil {
			c.initErrors["sessionUseCase"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["sessionUseCase"]; exists {
		return nil, storedErr
	}
	return c.sessionUseCase, nil
}

// PasswordResetUseCase returns the password reset use case.
func (c *Container) PasswordResetUseCase() (authUseCase.PasswordResetUseCase, error) {
	var err error
	c.passwordResetUseCaseInit.Do(func() {
		c.passwordResetUseCase, err = c.initPasswordResetUseCase()
		if err != nil {
			c.initErrors["passwordResetUseCase"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["passwordResetUseCase"]; exists {
		return nil, storedErr
	}
	return c.passwordResetUseCase, nil
}

// AdminUseCase returns the admin management use case.
func (c *Container) AdminUseCase() (authUseCase.AdminUseCase, error) {
	var err error
	c.adminUseCaseInit.Do(func() {
		c.adminUseCase, err = c.initAdminUseCase()
		if err != nil {
			c.initErrors["adminUseCase"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["adminUseCase"]; exists {
		return nil, storedErr
	}
	return c.adminUseCase, nil
}

// SessionHandler returns the HTTP handler for login, logout and me.
func (c *Container) SessionHandler() (*authHTTP.SessionHandler, error) {
	var err error
	c.sessionHandlerInit.Do(func() {
		c.sessionHandler, err = c.initSessionHandler()
		if err != nil {
			c.initErrors["sessionHandler"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["sessionHandler"]; exists {
		return nil, storedErr
	}
	return c.sessionHandler, nil
}

// PasswordResetHandler returns the HTTP handler for the password reset flow.
func (c *Container) PasswordResetHandler() (*authHTTP.PasswordResetHandler, error) {
	var err error
	c.passwordResetHandlerInit.Do(func() {
		c.passwordResetHandler, err = c.initPasswordResetHandler()
		if err != nil {
			c.initErrors["passwordResetHandler"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["passwordResetHandler"]; exists {
		return nil, storedErr
	}
	return c.passwordResetHandler, nil
}

// AdminHandler returns the HTTP handler for admin management.
func (c *Container) AdminHandler() (*authHTTP.AdminHandler, error) {
	var err error
	c.adminHandlerInit.Do(func() {
		c.adminHandler, err = c.initAdminHandler()
		if err != nil {
			c.initErrors["adminHandler"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["adminHandler"]; exists {
		return nil, storedErr
	}
	return c.adminHandler, nil
}

// AuditLogHandler returns the HTTP handler for audit log queries.
func (c *Container) AuditLogHandler() (*authHTTP.AuditLogHandler, error) {
	var err error
	c.auditLogHandlerInit.Do(func() {
		c.auditLogHandler, err = c.initAuditLogHandler()
		if err != nil {
			c.initErrors["auditLogHandler"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["auditLogHandler"]; exists {
		return nil, storedErr
	}
	return c.auditLogHandler, nil
}

// initSessionSecret resolves the signing secret from configuration.
func (c *Container) initSessionSecret() ([]byte, error) {
	secret, err := authService.LoadSessionSecret(
		c.ctx,
		authService.SecretSourceConfig{
			Secret:     c.config.SessionSecret,
			KMSKeyURI:  c.config.KMSKeyURI,
			Production: c.config.IsProduction(),
		},
		c.KMSService(),
		c.Logger(),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load session secret: %w", err)
	}
	return secret, nil
}

// initTokenIssuer creates the token issuer from the session secret.
func (c *Container) initTokenIssuer() (authService.TokenIssuer, error) {
	secret, err := c.SessionSecret()
	if err != nil {
		return nil, fmt.Errorf("failed to get session secret for token issuer: %w", err)
	}
	return authService.NewTokenIssuer(secret, c.config.TokenIssuer)
}

// initAuditSigner creates the audit signer from the session secret.
func (c *Container) initAuditSigner() (authService.AuditSigner, error) {
	secret, err := c.SessionSecret()
	if err != nil {
		return nil, fmt.Errorf("failed to get session secret for audit signer: %w", err)
	}
	return authService.NewAuditSigner(secret)
}

// initDenylist selects the Redis denylist when a client is configured.
func (c *Container) initDenylist() (authService.Denylist, error) {
	client, err := c.RedisClient()
	if err != nil {
		return nil, fmt.Errorf("failed to get redis client for denylist: %w", err)
	}
	if client == nil {
		c.Logger().Warn("REDIS_URL is not set, logout will not revoke session tokens")
		return authService.NewNoOpDenylist(), nil
	}
	return authService.NewRedisDenylist(client), nil
}

// initAdminRepository creates the admin repository based on the database driver.
func (c *Container) initAdminRepository() (authUseCase.AdminRepository, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for admin repository: %w", err)
	}

	switch c.config.DBDriver {
	case "postgres":
		return authRepository.NewPostgreSQLAdminRepository(db), nil
	case "mysql":
		return authRepository.NewMySQLAdminRepository(db), nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
	}
}

// initAuditLogRepository creates the audit log repository based on the database driver.
func (c *Container) initAuditLogRepository() (authUseCase.AuditLogRepository, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for audit log repository: %w", err)
	}

	switch c.config.DBDriver {
	case "postgres":
		return authRepository.NewPostgreSQLAuditLogRepository(db), nil
	case "mysql":
		return authRepository.NewMySQLAuditLogRepository(db), nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
	}
}

// initAuditLogUseCase creates the audit log use case with all its dependencies.
func (c *Container) initAuditLogUseCase() (authUseCase.AuditLogUseCase, error) {
	auditLogRepository, err := c.AuditLogRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get audit log repository for audit log use case: %w", err)
	}

	auditSigner, err := c.AuditSigner()
	if err != nil {
		return nil, fmt.Errorf("failed to get audit signer for audit log use case: %w", err)
	}

	return authUseCase.NewAuditLogUseCase(auditLogRepository, auditSigner), nil
}

// initSessionUseCase creates the session use case with all its dependencies.
func (c *Container) initSessionUseCase() (authUseCase.SessionUseCase, error) {
	txManager, err := c.TxManager()
	if err != nil {
		return nil, fmt.Errorf("failed to get tx manager for session use case: %w", err)
	}

	adminRepository, err := c.AdminRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get admin repository for session use case: %w", err)
	}

	tokenIssuer, err := c.TokenIssuer()
	if err != nil {
		return nil, fmt.Errorf("failed to get token issuer for session use case: %w", err)
	}

	denylist, err := c.Denylist()
	if err != nil {
		return nil, fmt.Errorf("failed to get denylist for session use case: %w", err)
	}

	auditLogUseCase, err := c.AuditLogUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get audit log use case for session use case: %w", err)
	}

	baseUseCase := authUseCase.NewSessionUseCase(
		txManager,
		adminRepository,
		c.PasswordHasher(),
		tokenIssuer,
		denylist,
		auditLogUseCase,
		authUseCase.LockoutConfig{
			MaxAttempts: c.config.LockoutMaxAttempts,
			Duration:    c.config.LockoutDuration,
		},
	)

	// Wrap with metrics if enabled
	if c.config.MetricsEnabled {
		businessMetrics, err := c.BusinessMetrics()
		if err != nil {
			return nil, fmt.Errorf("failed to get business metrics for session use case: %w", err)
		}
		return authUseCase.NewSessionUseCaseWithMetrics(baseUseCase, businessMetrics), nil
	}

	return baseUseCase, nil
}

// initPasswordResetUseCase creates the password reset use case with all its dependencies.
func (c *Container) initPasswordResetUseCase() (authUseCase.PasswordResetUseCase, error) {
	txManager, err := c.TxManager()
	if err != nil {
		return nil, fmt.Errorf("failed to get tx manager for password reset use case: %w", err)
	}

	adminRepository, err := c.AdminRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get admin repository for password reset use case: %w", err)
	}

	outboxRepository, err := c.OutboxRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get outbox repository for password reset use case: %w", err)
	}

	tokenIssuer, err := c.TokenIssuer()
	if err != nil {
		return nil, fmt.Errorf("failed to get token issuer for password reset use case: %w", err)
	}

	auditLogUseCase, err := c.AuditLogUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get audit log use case for password reset use case: %w", err)
	}

	baseUseCase := authUseCase.NewPasswordResetUseCase(
		txManager,
		adminRepository,
		outboxRepository,
		c.PasswordHasher(),
		tokenIssuer,
		auditLogUseCase,
		c.config.PublicBaseURL,
	)

	// Wrap with metrics if enabled
	if c.config.MetricsEnabled {
		businessMetrics, err := c.BusinessMetrics()
		if err != nil {
			return nil, fmt.Errorf("failed to get business metrics for password reset use case: %w", err)
		}
		return authUseCase.NewPasswordResetUseCaseWithMetrics(baseUseCase, businessMetrics), nil
	}

	return baseUseCase, nil
}

// initAdminUseCase creates the admin management use case with all its dependencies.
func (c *Container) initAdminUseCase() (authUseCase.AdminUseCase, error) {
	txManager, err := c.TxManager()
	if err != nil {
		return nil, fmt.Errorf("failed to get tx manager for admin use case: %w", err)
	}

	adminRepository, err := c.AdminRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get admin repository for admin use case: %w", err)
	}

	auditLogUseCase, err := c.AuditLogUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get audit log use case for admin use case: %w", err)
	}

	baseUseCase := authUseCase.NewAdminUseCase(txManager, adminRepository, c.PasswordHasher(), auditLogUseCase)

	// Wrap with metrics if enabled
	if c.config.MetricsEnabled {
		businessMetrics, err := c.BusinessMetrics()
		if err != nil {
			return nil, fmt.Errorf("failed to get business metrics for admin use case: %w", err)
		}
		return authUseCase.NewAdminUseCaseWithMetrics(baseUseCase, businessMetrics), nil
	}

	return baseUseCase, nil
}

// initSessionHandler creates the session HTTP handler.
func (c *Container) initSessionHandler() (*authHTTP.SessionHandler, error) {
	sessionUseCase, err := c.SessionUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get session use case for session handler: %w", err)
	}
	return authHTTP.NewSessionHandler(sessionUseCase, c.Logger()), nil
}

// initPasswordResetHandler creates the password reset HTTP handler.
func (c *Container) initPasswordResetHandler() (*authHTTP.PasswordResetHandler, error) {
	passwordResetUseCase, err := c.PasswordResetUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get password reset use case for password reset handler: %w", err)
	}
	return authHTTP.NewPasswordResetHandler(passwordResetUseCase, c.Logger()), nil
}

// initAdminHandler creates the admin management HTTP handler.
func (c *Container) initAdminHandler() (*authHTTP.AdminHandler, error) {
	adminUseCase, err := c.AdminUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get admin use case for admin handler: %w", err)
	}
	return authHTTP.NewAdminHandler(adminUseCase, c.Logger()), nil
}

// initAuditLogHandler creates the audit log HTTP handler.
func (c *Container) initAuditLogHandler() (*authHTTP.AuditLogHandler, error) {
	auditLogUseCase, err := c.AuditLogUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get audit log use case for audit log handler: %w", err)
	}
	return authHTTP.NewAuditLogHandler(auditLogUseCase, c.Logger()), nil
}
