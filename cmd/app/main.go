// Package main provides the entry point for the application with CLI commands.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/holograph/vault/cmd/app/commands"
	"github.com/holograph/vault/internal/app"
	"github.com/holograph/vault/internal/config"
)

const version = "1.0.0"

func main() {
	cmd := &cli.Command{
		Name:    "holograph",
		Usage:   "Holograph record vault application",
		Version: version,
		Commands: []*cli.Command{
			{
				Name:  "server",
				Usage: "Start the HTTP server",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return commands.RunServer(ctx, version)
				},
			},
			{
				Name:  "migrate",
				Usage: "Run database migrations",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					cfg := config.Load()
					container := app.NewContainer(cfg)
					return commands.RunMigrations(container.Logger(), cfg.DBDriver, cfg.DBConnectionString)
				},
			},
			{
				Name:  "provision-tenant-keys",
				Usage: "Provision a full keyset for an existing tenant (overwrites any current keyset)",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "tenant-id",
						Aliases:  []string{"t"},
						Required: true,
						Usage:    "Tenant ID (UUID)",
					},
				},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					cfg := config.Load()
					container := app.NewContainer(cfg)
					logger := container.Logger()
					defer shutdownContainer(ctx, container, logger)

					provisioner, err := container.Provisioner()
					if err != nil {
						return fmt.Errorf("failed to initialize provisioner: %w", err)
					}

					return commands.RunProvisionTenantKeys(ctx, provisioner, logger, cmd.String("tenant-id"))
				},
			},
			{
				Name:  "delete-tenant-keys",
				Usage: "Delete a tenant's keyset (data encrypted under it becomes unrecoverable)",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "tenant-id",
						Aliases:  []string{"t"},
						Required: true,
						Usage:    "Tenant ID (UUID)",
					},
				},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					cfg := config.Load()
					container := app.NewContainer(cfg)
					logger := container.Logger()
					defer shutdownContainer(ctx, container, logger)

					provisioner, err := container.Provisioner()
					if err != nil {
						return fmt.Errorf("failed to initialize provisioner: %w", err)
					}

					return commands.RunDeleteTenantKeys(ctx, provisioner, logger, cmd.String("tenant-id"))
				},
			},
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		slog.Error("application error", slog.Any("error", err))
		os.Exit(1)
	}
}

func shutdownContainer(ctx context.Context, container *app.Container, logger *slog.Logger) {
	if err := container.Shutdown(ctx); err != nil {
		logger.Error("failed to shutdown container", slog.Any("error", err))
	}
}
