package app

import (
	"fmt"
	"log/slog"

	"github.com/allisson/schoolsite/internal/mail"
	outboxRepository "github.com/allisson/schoolsite/internal/outbox/repository"
	outboxUseCase "github.com/allisson/schoolsite/internal/outbox/usecase"
)

// Mailer returns the mail transport. It sends through SMTP when SMTP_HOST is
// set and logs messages otherwise.
func (c *Container) Mailer() mail.Mailer {
	c.mailerInit.Do(func() {
		c.mailer = c.initMailer()
	})
	return c.mailer
}

// OutboxRepository returns the outbox event repository based on database driver.
func (c *Container) OutboxRepository() (outboxUseCase.OutboxEventRepository, error) {
	var err error
	c.outboxRepositoryInit.Do(func() {
		c.outboxRepository, err = c.initOutboxRepository()
		if err != nil {
			c.initErrors["outboxRepository"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["outboxRepository"]; exists {
		return nil, storedErr
	}
	return c.outboxRepository, nil
}

// OutboxUseCase returns the outbox worker that relays queued emails.
func (c *Container) OutboxUseCase() (outboxUseCase.UseCase, error) {
	var err error
	c.outboxUseCaseInit.Do(func() {
		c.outboxUseCase, err = c.initOutboxUseCase()
		if err != nil {
			c.initErrors["outboxUseCase"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["outboxUseCase"]; exists {
		return nil, storedErr
	}
	return c.outboxUseCase, nil
}

// initMailer selects the mail transport from configuration.
func (c *Container) initMailer() mail.Mailer {
	if c.config.SMTPHost == "" {
		c.Logger().Warn("SMTP_HOST is not set, emails will be logged instead of sent")
		return mail.NewLogMailer(c.Logger())
	}

	c.Logger().Info("smtp mailer configured",
		slog.String("host", c.config.SMTPHost),
		slog.Int("port", c.config.SMTPPort))

	return mail.NewSMTPMailer(mail.SMTPConfig{
		Host:     c.config.SMTPHost,
		Port:     c.config.SMTPPort,
		Username: c.config.SMTPUsername,
		Password: c.config.SMTPPassword,
		From:     c.config.SMTPFrom,
	})
}

// initOutboxRepository creates the outbox event repository based on the database driver.
func (c *Container) initOutboxRepository() (outboxUseCase.OutboxEventRepository, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for outbox repository: %w", err)
	}

	switch c.config.DBDriver {
	case "postgres":
		return outboxRepository.NewPostgreSQLOutboxEventRepository(db), nil
	case "mysql":
		return outboxRepository.NewMySQLOutboxEventRepository(db), nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
	}
}

// initOutboxUseCase creates the outbox worker with the mail relay processor.
func (c *Container) initOutboxUseCase() (outboxUseCase.UseCase, error) {
	logger := c.Logger()

	txManager, err := c.TxManager()
	if err != nil {
		return nil, fmt.Errorf("failed to get tx manager for outbox use case: %w", err)
	}

	repository, err := c.OutboxRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get outbox repository for outbox use case: %w", err)
	}

	businessMetrics, err := c.BusinessMetrics()
	if err != nil {
		return nil, fmt.Errorf("failed to get business metrics for outbox use case: %w", err)
	}

	processor := outboxUseCase.NewMailRelayProcessor(
		c.Mailer(),
		c.config.ContactRecipient,
		c.config.SiteName,
		logger,
	)

	return outboxUseCase.NewOutboxUseCase(
		outboxUseCase.Config{
			Interval:   c.config.OutboxInterval,
			BatchSize:  c.config.OutboxBatchSize,
			MaxRetries: c.config.OutboxMaxRetries,
		},
		txManager,
		repository,
		processor,
		businessMetrics,
		logger,
	), nil
}
