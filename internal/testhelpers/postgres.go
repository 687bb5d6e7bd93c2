// Package testhelpers provides database fixtures for repository tests.
package testhelpers

import (
	"context"
	"os"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"

	"storefront/internal/migrate"
)

// PostgresPool connects to TEST_DB_DSN, applies migrations and truncates the
// storefront tables. The test is skipped when TEST_DB_DSN is unset.
func PostgresPool(t *testing.T) *pgxpool.Pool {
	t.Helper()
	dsn := os.Getenv("TEST_DB_DSN")
	if dsn == "" {
		t.Skip("TEST_DB_DSN not set")
	}
	ctx := context.Background()
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		t.Fatalf("connect db: %v", err)
	}
	t.Cleanup(pool.Close)

	if _, err := migrate.Apply(ctx, pool); err != nil {
		t.Fatalf("apply migrations: %v", err)
	}
	if _, err := pool.Exec(ctx, `TRUNCATE catalog_items, orders`); err != nil {
		t.Fatalf("truncate tables: %v", err)
	}
	return pool
}
