package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/Black-And-White-Club/ladder-bot/app"
	"github.com/Black-And-White-Club/ladder-bot/config"
	"github.com/Black-And-White-Club/ladder-bot/pkg/attr"
	"github.com/Black-And-White-Club/ladder-bot/pkg/observability"
	"github.com/urfave/cli/v2"
)

func main() {
	cliApp := &cli.App{
		Name:  "ladder",
		Usage: "competitive ladder scoring service",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Value:   "config.yaml",
				Usage:   "path to the configuration file",
				EnvVars: []string{"LADDER_CONFIG"},
			},
		},
		Commands: []*cli.Command{
			serveCommand(),
		},
	}

	if err := cliApp.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func serveCommand() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "run the event router and the query API",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "migrate",
				Usage: "apply pending migrations before starting",
			},
		},
		Action: func(c *cli.Context) error {
			ctx, cancel := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
			defer cancel()

			cfg, err := config.LoadConfig(c.String("config"))
			if err != nil {
				return cli.Exit("failed to load config: "+err.Error(), 1)
			}

			obs, err := observability.New(observability.Config{
				Environment: cfg.Observability.Environment,
				Level:       cfg.SlogLevel(),
				Output:      os.Stdout,
			})
			if err != nil {
				return cli.Exit("failed to initialize observability: "+err.Error(), 1)
			}
			logger := obs.Logger

			application, err := app.Initialize(ctx, cfg, obs, c.Bool("migrate"))
			if err != nil {
				logger.Error("Failed to initialize application", attr.Error(err))
				return cli.Exit(err.Error(), 1)
			}
			defer func() {
				if err := application.Close(); err != nil {
					logger.Error("Error during shutdown", attr.Error(err))
				}
			}()

			logger.InfoContext(ctx, "Ladder service started")
			if err := application.Run(ctx); err != nil && ctx.Err() == nil {
				logger.Error("Ladder service stopped", attr.Error(err))
				return err
			}

			logger.Info("Ladder service shut down gracefully")
			return nil
		},
	}
}
