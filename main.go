// main.go
package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"movie-booking/cmd"
	"movie-booking/internal/data/repository"
	"movie-booking/internal/wire"
	"movie-booking/pkg/gateway"

	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
)

func main() {
	envFlag := &cli.StringFlag{
		Name:    "env-file",
		Value:   ".env",
		Usage:   "optional env file read before the environment",
		EnvVars: []string{"ENV_FILE"},
	}

	app := &cli.App{
		Name:   "movie-booking",
		Usage:  "Movie ticket booking API",
		Flags:  []cli.Flag{envFlag},
		Action: serve,
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "migrate, seed empty tables and run the HTTP server",
				Action: serve,
			},
			{
				Name:  "migrate",
				Usage: "apply pending schema migrations",
				Action: func(c *cli.Context) error {
					return withRuntime(c, func(ctx context.Context, rt *cmd.Runtime) error {
						return rt.Schema.Migrate(ctx)
					})
				},
			},
			{
				Name:  "seed",
				Usage: "insert the starter catalog into empty tables",
				Action: func(c *cli.Context) error {
					return withRuntime(c, func(ctx context.Context, rt *cmd.Runtime) error {
						if err := rt.Schema.Migrate(ctx); err != nil {
							return err
						}
						_, err := rt.Schema.Seed(ctx)
						return err
					})
				},
			},
			{
				Name:  "reseed",
				Usage: "truncate movies and showtimes (cascading to bookings) and insert the starter catalog",
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "yes", Usage: "confirm the destructive reseed"},
				},
				Action: func(c *cli.Context) error {
					if !c.Bool("yes") {
						return errors.New("reseed deletes every booking; rerun with --yes to confirm")
					}
					return withRuntime(c, func(ctx context.Context, rt *cmd.Runtime) error {
						if err := rt.Schema.Migrate(ctx); err != nil {
							return err
						}
						return rt.Schema.Reseed(ctx)
					})
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func serve(c *cli.Context) error {
	return withRuntime(c, func(ctx context.Context, rt *cmd.Runtime) error {
		if err := rt.Schema.Migrate(ctx); err != nil {
			return err
		}

		if rt.Config.App.SeedOnStart {
			if _, err := rt.Schema.Seed(ctx); err != nil {
				return err
			}
		}

		// Initialize all repositories
		repos := repository.NewRepository(rt.DB, rt.Logger)

		// Wire all dependencies
		gw := gateway.New(rt.Config.Payment, rt.Logger)
		app := wire.Wiring(repos, rt.DB, rt.Config, gw, rt.Logger)

		rt.Logger.Info("Starting HTTP server", zap.String("port", rt.Config.App.Port))

		return cmd.APIServer(ctx, app.Router, rt.Config.App.Port, rt.Logger)
	})
}

// withRuntime runs fn with a bootstrapped runtime and a context cancelled
// on SIGINT or SIGTERM.
func withRuntime(c *cli.Context, fn func(ctx context.Context, rt *cmd.Runtime) error) error {
	ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
	defer stop()

	rt, err := cmd.Bootstrap(ctx, c.String("env-file"))
	if err != nil {
		return err
	}
	defer rt.Close()

	if err := fn(ctx, rt); err != nil {
		rt.Logger.Error("Command failed", zap.String("command", c.Command.Name), zap.Error(err))
		return fmt.Errorf("%s: %w", c.Command.Name, err)
	}

	return nil
}
