package main

import (
	"context"
	"database/sql"
	"errors"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"webapp/internal/config"
	"webapp/internal/db"
	"webapp/internal/logging"
)

type migrateFunc func(ctx context.Context, handle *sql.DB, logger *zap.Logger) error

func rootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "migrate [command]",
		Short:        "Manage the users database schema",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
	}
	cmd.AddCommand(
		migrationCommand("up", "Apply all pending migrations", db.MigrateUp),
		migrationCommand("down", "Roll back the latest migration", db.MigrateDown),
		migrationCommand("status", "Print the status of every migration", db.MigrationStatus),
	)
	return cmd
}

func migrationCommand(use, short string, fn migrateFunc) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) (runErr error) {
			cfg, err := config.LoadConfig()
			if err != nil {
				return err
			}
			logger, err := logging.New(cfg.LogLevel, cfg.LogFile)
			if err != nil {
				return err
			}
			defer func() { _ = logger.Sync() }()

			handle, err := db.OpenSQL(cmd.Context(), cfg.DatabaseURL)
			if err != nil {
				logger.Error("open database", zap.Error(err))
				return err
			}
			defer func() {
				if err := handle.Close(); err != nil {
					runErr = errors.Join(runErr, err)
				}
			}()

			if err := fn(cmd.Context(), handle, logger); err != nil {
				logger.Error("migration failed", zap.String("command", use), zap.Error(err))
				return err
			}
			logger.Info("migration finished", zap.String("command", use))
			return nil
		},
	}
}
