package db

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/udisondev/gridnav/internal/db/migrations"
)

// RunMigrations creates or upgrades the levels schema on dsn.
// goose needs database/sql, so it gets its own short-lived pgx stdlib
// connection next to the pool.
func RunMigrations(ctx context.Context, dsn string) error {
	sqlDB, err := sql.Open("pgx", dsn)
	if err != nil {
		return fmt.Errorf("opening sql connection for migrations: %w", err)
	}
	defer sqlDB.Close()

	version, err := migrations.Apply(ctx, sqlDB)
	if err != nil {
		return err
	}
	slog.Info("level store schema ready", "version", version)
	return nil
}
