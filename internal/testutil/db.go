package testutil

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"

	"github.com/udisondev/gridnav/internal/db/migrations"
)

// TestDSNEnv names an existing database to test against instead of a container.
const TestDSNEnv = "GRIDNAV_TEST_DSN"

// SetupTestDB returns a migrated pool. It uses the database named by
// GRIDNAV_TEST_DSN when set, otherwise it starts a PostgreSQL testcontainer.
// Skipped in -short mode when no DSN is given.
func SetupTestDB(tb testing.TB) *pgxpool.Pool {
	tb.Helper()
	ctx := context.Background()

	dsn := os.Getenv(TestDSNEnv)
	if dsn == "" {
		if testing.Short() {
			tb.Skipf("skipping database test in short mode (set %s to run)", TestDSNEnv)
		}
		dsn = startPostgres(ctx, tb)
	}

	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		tb.Fatalf("connecting to test db: %v", err)
	}
	tb.Cleanup(func() { pool.Close() })

	if err := runMigrations(ctx, pool); err != nil {
		tb.Fatalf("running migrations: %v", err)
	}
	if _, err := pool.Exec(ctx, "TRUNCATE levels"); err != nil {
		tb.Fatalf("truncating levels: %v", err)
	}

	return pool
}

func startPostgres(ctx context.Context, tb testing.TB) string {
	tb.Helper()

	container, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("test"),
		postgres.WithPassword("test"),
		postgres.BasicWaitStrategies(),
	)
	if err != nil {
		tb.Fatalf("starting postgres container: %v", err)
	}
	tb.Cleanup(func() {
		if err := testcontainers.TerminateContainer(container); err != nil {
			tb.Logf("terminating postgres container: %v", err)
		}
	})

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		tb.Fatalf("getting connection string: %v", err)
	}
	return dsn
}

// runMigrations applies the embedded migrations through a database/sql handle.
func runMigrations(ctx context.Context, pool *pgxpool.Pool) error {
	connStr := stdlib.RegisterConnConfig(pool.Config().ConnConfig)
	sqlDB, err := sql.Open("pgx", connStr)
	if err != nil {
		return fmt.Errorf("opening sql.DB: %w", err)
	}
	defer sqlDB.Close()

	_, err = migrations.Apply(ctx, sqlDB)
	return err
}
