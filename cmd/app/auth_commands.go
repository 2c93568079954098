package main

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/allisson/schoolsite/cmd/app/commands"
	"github.com/allisson/schoolsite/internal/app"
)

func getAdminCommands() []*cli.Command {
	return []*cli.Command{
		{
			Name:  "create-admin",
			Usage: "Create an admin account (use this to bootstrap the first superadmin)",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:     "email",
					Aliases:  []string{"e"},
					Required: true,
					Usage:    "Login email address",
				},
				&cli.StringFlag{
					Name:     "name",
					Aliases:  []string{"n"},
					Required: true,
					Usage:    "Display name",
				},
				&cli.StringFlag{
					Name:    "role",
					Aliases: []string{"r"},
					Value:   "superadmin",
					Usage:   "Role: superadmin, admin or editor",
				},
				&cli.StringFlag{
					Name:    "password",
					Sources: cli.EnvVars("ADMIN_PASSWORD"),
					Usage:   "Initial password (omit to be prompted)",
				},
				formatFlag(),
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				return withContainer(ctx, func(container *app.Container) error {
					adminUseCase, err := container.AdminUseCase()
					if err != nil {
						return err
					}
					return commands.RunCreateAdmin(
						ctx,
						adminUseCase,
						container.Logger(),
						commands.DefaultIO(),
						cmd.String("email"),
						cmd.String("name"),
						cmd.String("role"),
						cmd.String("password"),
						cmd.String("format"),
					)
				})
			},
		},
		{
			Name:  "list-admins",
			Usage: "List admin accounts",
			Flags: []cli.Flag{
				&cli.IntFlag{
					Name:  "offset",
					Value: 0,
					Usage: "Number of admins to skip",
				},
				&cli.IntFlag{
					Name:  "limit",
					Value: 50,
					Usage: "Maximum number of admins to print",
				},
				formatFlag(),
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				return withContainer(ctx, func(container *app.Container) error {
					adminUseCase, err := container.AdminUseCase()
					if err != nil {
						return err
					}
					return commands.RunListAdmins(
						ctx,
						adminUseCase,
						commands.DefaultIO().Writer,
						int(cmd.Int("offset")),
						int(cmd.Int("limit")),
						cmd.String("format"),
					)
				})
			},
		},
		{
			Name:  "update-admin",
			Usage: "Update, reactivate or reset the password of an admin account",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:     "id",
					Aliases:  []string{"i"},
					Required: true,
					Usage:    "Admin ID (UUID)",
				},
				&cli.StringFlag{
					Name:    "name",
					Aliases: []string{"n"},
					Usage:   "New display name",
				},
				&cli.StringFlag{
					Name:    "role",
					Aliases: []string{"r"},
					Usage:   "New role: superadmin, admin or editor",
				},
				&cli.BoolFlag{
					Name:    "active",
					Aliases: []string{"a"},
					Usage:   "Activate (--active) or deactivate (--active=false) the account",
				},
				&cli.BoolFlag{
					Name:  "reset-password",
					Usage: "Prompt for a new password",
				},
				formatFlag(),
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				opts := commands.UpdateAdminOptions{ResetPassword: cmd.Bool("reset-password")}
				if cmd.IsSet("name") {
					name := cmd.String("name")
					opts.Name = &name
				}
				if cmd.IsSet("role") {
					role := cmd.String("role")
					opts.Role = &role
				}
				if cmd.IsSet("active") {
					active := cmd.Bool("active")
					opts.IsActive = &active
				}

				return withContainer(ctx, func(container *app.Container) error {
					adminUseCase, err := container.AdminUseCase()
					if err != nil {
						return err
					}
					return commands.RunUpdateAdmin(
						ctx,
						adminUseCase,
						container.Logger(),
						commands.DefaultIO(),
						cmd.String("id"),
						opts,
						cmd.String("format"),
					)
				})
			},
		},
	}
}
