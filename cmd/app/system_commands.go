package main

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/allisson/schoolsite/cmd/app/commands"
	"github.com/allisson/schoolsite/internal/app"
)

func getSystemCommands(version string) []*cli.Command {
	return []*cli.Command{
		{
			Name:  "server",
			Usage: "Start the HTTP API (and the outbox worker when OUTBOX_ENABLED is set)",
			Action: func(ctx context.Context, cmd *cli.Command) error {
				return commands.RunServer(ctx, version)
			},
		},
		{
			Name:  "worker",
			Usage: "Run only the outbox worker that sends queued emails",
			Action: func(ctx context.Context, cmd *cli.Command) error {
				return commands.RunWorker(ctx, version)
			},
		},
		{
			Name:  "migrate",
			Usage: "Apply the embedded database migrations",
			Action: func(ctx context.Context, cmd *cli.Command) error {
				return withContainer(ctx, func(container *app.Container) error {
					cfg := container.Config()
					return commands.RunMigrations(container.Logger(), cfg.DBDriver, cfg.DBConnectionString)
				})
			},
		},
		{
			Name:  "clean-audit-logs",
			Usage: "Delete audit logs older than the given number of days",
			Flags: []cli.Flag{
				&cli.IntFlag{
					Name:     "days",
					Aliases:  []string{"d"},
					Required: true,
					Usage:    "Delete audit logs older than this many days",
				},
				&cli.BoolFlag{
					Name:    "dry-run",
					Aliases: []string{"n"},
					Usage:   "Only count the logs that would be deleted",
				},
				formatFlag(),
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				return withContainer(ctx, func(container *app.Container) error {
					auditLogUseCase, err := container.AuditLogUseCase()
					if err != nil {
						return err
					}
					return commands.RunCleanAuditLogs(
						ctx,
						auditLogUseCase,
						container.Logger(),
						commands.DefaultIO().Writer,
						int(cmd.Int("days")),
						cmd.Bool("dry-run"),
						cmd.String("format"),
					)
				})
			},
		},
		{
			Name:  "verify-audit-logs",
			Usage: "Check the HMAC signatures of audit logs in a time range",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:     "since",
					Aliases:  []string{"s", "start-date"},
					Required: true,
					Usage:    "Start of the range, YYYY-MM-DD or YYYY-MM-DD HH:MM:SS (UTC)",
				},
				&cli.StringFlag{
					Name:     "until",
					Aliases:  []string{"u", "end-date"},
					Required: true,
					Usage:    "End of the range; a date without time covers the whole day",
				},
				formatFlag(),
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				return withContainer(ctx, func(container *app.Container) error {
					auditLogUseCase, err := container.AuditLogUseCase()
					if err != nil {
						return err
					}
					return commands.RunVerifyAuditLogs(
						ctx,
						auditLogUseCase,
						container.Logger(),
						commands.DefaultIO().Writer,
						cmd.String("since"),
						cmd.String("until"),
						cmd.String("format"),
					)
				})
			},
		},
	}
}
