package main

import (
	"context"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/radarone/vault/cmd/app/commands"
	"github.com/radarone/vault/internal/app"
	"github.com/radarone/vault/internal/config"
)

func getAuthCommands() []*cli.Command {
	return []*cli.Command{
		{
			Name:  "issue-token",
			Usage: "Sign a bearer token for a user",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:     "user",
					Aliases:  []string{"u"},
					Required: true,
					Usage:    "User id to place in the token subject",
				},
				&cli.IntFlag{
					Name:  "ttl-hours",
					Value: 0,
					Usage: "Token lifetime in hours (defaults to AUTH_TOKEN_EXPIRATION_HOURS)",
				},
				newFormatFlag(),
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				cfg := config.Load()
				container := app.NewContainer(cfg)

				tokenService, err := container.TokenService()
				if err != nil {
					return err
				}

				ttl := cfg.AuthTokenExpiration
				if hours := cmd.Int("ttl-hours"); hours > 0 {
					ttl = time.Duration(hours) * time.Hour
				}

				return commands.RunIssueToken(
					tokenService,
					commands.DefaultIO().Writer,
					cmd.String("user"),
					ttl,
					cmd.String("format"),
				)
			},
		},
	}
}
