package main

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/allisson/schoolsite/internal/app"
	"github.com/allisson/schoolsite/internal/config"
)

func getCommands(version string) []*cli.Command {
	cmds := []*cli.Command{}
	cmds = append(cmds, getSystemCommands(version)...)
	cmds = append(cmds, getAdminCommands()...)
	return cmds
}

// withContainer runs fn with a container built from the environment and shuts
// the container down afterwards.
func withContainer(ctx context.Context, fn func(container *app.Container) error) error {
	container := app.NewContainer(config.Load())
	defer func() { _ = container.Shutdown(ctx) }()
	return fn(container)
}

func formatFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "format",
		Aliases: []string{"f"},
		Value:   "text",
		Usage:   "Output format: 'text' or 'json'",
	}
}
