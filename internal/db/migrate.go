package db

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"

	_ "github.com/jackc/pgx/v5/stdlib" // driver "pgx" para database/sql
	"github.com/pressly/goose/v3"
	"go.uber.org/zap"
)

//go:embed migrations/*.sql
var migrations embed.FS

const migrationsDir = "migrations"

// OpenSQL abre un handle database/sql sobre pgx, usado solo por goose.
func OpenSQL(ctx context.Context, databaseURL string) (*sql.DB, error) {
	handle, err := sql.Open("pgx", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if err := handle.PingContext(ctx); err != nil {
		return nil, errors.Join(fmt.Errorf("ping database: %w", err), handle.Close())
	}
	return handle, nil
}

func setupGoose(logger *zap.Logger) error {
	goose.SetBaseFS(migrations)
	goose.SetLogger(zap.NewStdLog(logger.Named("goose")))
	return goose.SetDialect("postgres")
}

// MigrateUp aplica todas las migraciones pendientes.
func MigrateUp(ctx context.Context, handle *sql.DB, logger *zap.Logger) error {
	if err := setupGoose(logger); err != nil {
		return err
	}
	return goose.UpContext(ctx, handle, migrationsDir)
}

// MigrateDown revierte la ultima migracion aplicada.
func MigrateDown(ctx context.Context, handle *sql.DB, logger *zap.Logger) error {
	if err := setupGoose(logger); err != nil {
		return err
	}
	return goose.DownContext(ctx, handle, migrationsDir)
}

// MigrationStatus imprime el estado de cada migracion en el logger.
func MigrationStatus(ctx context.Context, handle *sql.DB, logger *zap.Logger) error {
	if err := setupGoose(logger); err != nil {
		return err
	}
	return goose.StatusContext(ctx, handle, migrationsDir)
}
