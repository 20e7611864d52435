package main

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/viralspark/gateway/cmd/app/commands"
	"github.com/viralspark/gateway/internal/app"
	"github.com/viralspark/gateway/internal/config"
)

func getRegistryCommands() []*cli.Command {
	return []*cli.Command{
		{
			Name:  "seed-capabilities",
			Usage: "Seed the capability registry from the configuration file",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:    "format",
					Aliases: []string{"f"},
					Value:   "text",
					Usage:   "Output format: 'text' or 'json'",
				},
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				cfg := config.Load()
				container := app.NewContainer(cfg)
				defer func() { _ = container.Shutdown(ctx) }()

				capabilityUseCase, err := container.CapabilityUseCase()
				if err != nil {
					return err
				}

				return commands.RunSeedCapabilities(
					ctx,
					capabilityUseCase,
					container.Logger(),
					commands.DefaultIO().Writer,
					cmd.String("format"),
				)
			},
		},
	}
}
