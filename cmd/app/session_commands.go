package main

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/radarone/vault/cmd/app/commands"
	"github.com/radarone/vault/internal/app"
	"github.com/radarone/vault/internal/config"
)

func getSessionCommands() []*cli.Command {
	return []*cli.Command{
		{
			Name:  "mark-session",
			Usage: "Record a scraper outcome for a stored marketplace session",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:     "user",
					Aliases:  []string{"u"},
					Required: true,
					Usage:    "User id owning the session",
				},
				&cli.StringFlag{
					Name:     "site",
					Aliases:  []string{"s"},
					Required: true,
					Usage:    "Site key (e.g., MERCADO_LIVRE, OLX)",
				},
				&cli.StringFlag{
					Name:     "status",
					Required: true,
					Usage:    "Outcome: 'needs-reauth' or 'used'",
				},
				&cli.StringFlag{
					Name:  "reason",
					Value: "",
					Usage: "Why the session needs re-authentication",
				},
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				cfg := config.Load()
				container := app.NewContainer(cfg)
				defer func() { _ = container.Shutdown(ctx) }()

				useCase, err := container.SessionUseCase()
				if err != nil {
					return err
				}

				return commands.RunMarkSession(
					ctx,
					useCase,
					container.Logger(),
					commands.DefaultIO().Writer,
					cmd.String("user"),
					cmd.String("site"),
					cmd.String("status"),
					cmd.String("reason"),
				)
			},
		},
		{
			Name:  "open-session",
			Usage: "Decrypt an active marketplace session for the scraping worker",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:     "user",
					Aliases:  []string{"u"},
					Required: true,
					Usage:    "User id owning the session",
				},
				&cli.StringFlag{
					Name:     "site",
					Aliases:  []string{"s"},
					Required: true,
					Usage:    "Site key (e.g., MERCADO_LIVRE, OLX)",
				},
				newFormatFlag(),
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				container := app.NewContainer(config.Load())
				defer func() { _ = container.Shutdown(ctx) }()

				useCase, err := container.SessionUseCase()
				if err != nil {
					return err
				}

				return commands.RunOpenSession(
					ctx,
					useCase,
					container.Logger(),
					commands.DefaultIO().Writer,
					cmd.String("user"),
					cmd.String("site"),
					cmd.String("format"),
				)
			},
		},
	}
}
