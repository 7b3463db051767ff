// Package testutil provides database plumbing for the Postgres contract
// tests. The tests skip unless TEST_DATABASE_URL points at a disposable
// database.
package testutil

import (
	"context"
	"os"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/harborline/sso-migrate/internal/adapters/postgres"
	pgrunlog "github.com/harborline/sso-migrate/internal/adapters/postgres/runlog"
)

// OpenMigratedPool connects to TEST_DATABASE_URL, ensures the schema, and
// truncates run_logs so each test package starts clean.
func OpenMigratedPool(t *testing.T) *pgxpool.Pool {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set; skipping postgres contract test")
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, dsn)
	if err != nil {
		t.Fatalf("open pool: %v", err)
	}
	t.Cleanup(pool.Close)

	if err := pgrunlog.EnsureSchema(ctx, pool); err != nil {
		t.Fatalf("ensure schema: %v", err)
	}
	if _, err := pool.Exec(ctx, `TRUNCATE run_logs`); err != nil {
		t.Fatalf("truncate run_logs: %v", err)
	}
	return pool
}
