package main

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/radarone/vault/cmd/app/commands"
	"github.com/radarone/vault/internal/app"
	"github.com/radarone/vault/internal/config"
)

func getNationalIDCommands() []*cli.Command {
	return []*cli.Command{
		{
			Name:  "check-national-id",
			Usage: "Validate and format a CPF and preview its lookup hash",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:     "value",
					Aliases:  []string{"v"},
					Required: true,
					Usage:    "CPF, with or without punctuation",
				},
				newFormatFlag(),
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				container := app.NewContainer(config.Load())

				return commands.RunCheckNationalID(
					container.NationalIDEncryptor(),
					commands.DefaultIO().Writer,
					cmd.String("value"),
					cmd.String("format"),
				)
			},
		},
		{
			Name:  "lookup-national-id",
			Usage: "Report whether a CPF is registered to any user",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:     "value",
					Aliases:  []string{"v"},
					Required: true,
					Usage:    "CPF, with or without punctuation",
				},
				newFormatFlag(),
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				container := app.NewContainer(config.Load())
				defer func() { _ = container.Shutdown(ctx) }()

				useCase, err := container.NationalIDUseCase()
				if err != nil {
					return err
				}

				return commands.RunLookupNationalID(
					ctx,
					useCase,
					commands.DefaultIO().Writer,
					cmd.String("value"),
					cmd.String("format"),
				)
			},
		},
		{
			Name:  "reveal-national-id",
			Usage: "Decrypt the CPF registered by a user (support access, logged)",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:     "user",
					Aliases:  []string{"u"},
					Required: true,
					Usage:    "User id owning the national id",
				},
				newFormatFlag(),
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				container := app.NewContainer(config.Load())
				defer func() { _ = container.Shutdown(ctx) }()

				useCase, err := container.NationalIDUseCase()
				if err != nil {
					return err
				}

				return commands.RunRevealNationalID(
					ctx,
					useCase,
					container.Logger(),
					commands.DefaultIO().Writer,
					cmd.String("user"),
					cmd.String("format"),
				)
			},
		},
	}
}
