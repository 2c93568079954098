package app

import (
	"fmt"

	contactHTTP "github.com/allisson/schoolsite/internal/contact/http"
	contactUseCase "github.com/allisson/schoolsite/internal/contact/usecase"
	settingHTTP "github.com/allisson/schoolsite/internal/setting/http"
	settingRepository "github.com/allisson/schoolsite/internal/setting/repository"
	settingUseCase "github.com/allisson/schoolsite/internal/setting/usecase"
)

// SettingRepository returns the site settings repository based on database driver.
func (c *Container) SettingRepository() (settingUseCase.SettingRepository, error) {
	var err error
	c.settingRepositoryInit.Do(func() {
		c.settingRepository, err = c.initSettingRepository()
		if err != nil {
			c.initErrors["settingRepository"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["settingRepository"]; exists {
		return nil, storedErr
	}
	return c.settingRepository, nil
}

// SettingUseCase returns the site settings use case.
func (c *Container) SettingUseCase() (settingUseCase.SettingUseCase, error) {
	var err error
	c.settingUseCaseInit.Do(func() {
		c.settingUseCase, err = c.initSettingUseCase()
		if err != nil {
			c.initErrors["settingUseCase"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["settingUseCase"]; exists {
		return nil, storedErr
	}
	return c.settingUseCase, nil
}

// SettingHandler returns the HTTP handler for site settings.
func (c *Container) SettingHandler() (*settingHTTP.SettingHandler, error) {
	var err error
	c.settingHandlerInit.Do(func() {
		c.settingHandler, err = c.initSettingHandler()
		if err != nil {
			c.initErrors["settingHandler"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["settingHandler"]; exists {
		return nil, storedErr
	}
	return c.settingHandler, nil
}

// ContactUseCase returns the contact form use case.
func (c *Container) ContactUseCase() (contactUseCase.ContactUseCase, error) {
	var err error
	c.contactUseCaseInit.Do(func() {
		c.contactUseCase, err = c.initContactUseCase()
		if err != nil {
			c.initErrors["contactUseCase"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["contactUseCase"]; exists {
		return nil, storedErr
	}
	return c.contactUseCase, nil
}

// ContactHandler returns the HTTP handler for the contact form.
func (c *Container) ContactHandler() (*contactHTTP.ContactHandler, error) {
	var err error
	c.contactHandlerInit.Do(func() {
		c.contactHandler, err = c.initContactHandler()
		if err != nil {
			c.initErrors["contactHandler"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["contactHandler"]; exists {
		return nil, storedErr
	}
	return c.contactHandler, nil
}

// initSettingRepository creates the settings repository based on the database driver.
func (c *Container) initSettingRepository() (settingUseCase.SettingRepository, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for setting repository: %w", err)
	}

	switch c.config.DBDriver {
	case "postgres":
		return settingRepository.NewPostgreSQLSettingRepository(db), nil
	case "mysql":
		return settingRepository.NewMySQLSettingRepository(db), nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
	}
}

// initSettingUseCase creates the settings use case with all its dependencies.
func (c *Container) initSettingUseCase() (settingUseCase.SettingUseCase, error) {
	txManager, err := c.TxManager()
	if err != nil {
		return nil, fmt.Errorf("failed to get tx manager for setting use case: %w", err)
	}

	repository, err := c.SettingRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get setting repository for setting use case: %w", err)
	}

	auditLogUseCase, err := c.AuditLogUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get audit log use case for setting use case: %w", err)
	}

	baseUseCase := settingUseCase.NewSettingUseCase(txManager, repository, auditLogUseCase)

	// Wrap with metrics if enabled
	if c.config.MetricsEnabled {
		businessMetrics, err := c.BusinessMetrics()
		if err != nil {
			return nil, fmt.Errorf("failed to get business metrics for setting use case: %w", err)
		}
		return settingUseCase.NewSettingUseCaseWithMetrics(baseUseCase, businessMetrics), nil
	}

	return baseUseCase, nil
}

// initSettingHandler creates the settings HTTP handler.
func (c *Container) initSettingHandler() (*settingHTTP.SettingHandler, error) {
	useCase, err := c.SettingUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get setting use case for setting handler: %w", err)
	}
	return settingHTTP.NewSettingHandler(useCase, c.Logger()), nil
}

// initContactUseCase creates the contact use case on top of the outbox.
func (c *Container) initContactUseCase() (contactUseCase.ContactUseCase, error) {
	outboxRepository, err := c.OutboxRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get outbox repository for contact use case: %w", err)
	}
	return contactUseCase.NewContactUseCase(outboxRepository), nil
}

// initContactHandler creates the contact HTTP handler.
func (c *Container) initContactHandler() (*contactHTTP.ContactHandler, error) {
	useCase, err := c.ContactUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get contact use case for contact handler: %w", err)
	}
	return contactHTTP.NewContactHandler(useCase, c.Logger()), nil
}
