package persistence

import (
	"context"
	"os"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
)

// mustTestPool connects to the database named by TEST_DATABASE_URL and
// applies the core DDL. Tests are skipped when no test database is available
// (CI provisions one externally, e.g. via Testcontainers).
func mustTestPool(t *testing.T) *pgxpool.Pool {
	t.Helper()

	url, ok := os.LookupEnv("TEST_DATABASE_URL")
	if !ok || url == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	ctx := context.Background()
	pool, err := pgxpool.New(ctx, url)
	if err != nil {
		t.Fatalf("create test pool: %v", err)
	}
	t.Cleanup(pool.Close)

	if err := Bootstrap(ctx, pool); err != nil {
		t.Fatalf("apply core schema: %v", err)
	}

	return pool
}
