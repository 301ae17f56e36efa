package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

// setupTestDB creates a PostgreSQL container for testing and applies the
// gene_keys schema. Returns a cleanup function that must be called after
// tests complete.
func setupTestDB(t *testing.T) (*Pool, func()) {
	t.Helper()

	ctx := context.Background()

	container, err := postgres.Run(ctx, "postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("test"),
		postgres.WithPassword("test"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second),
		),
	)
	require.NoError(t, err, "failed to start postgres container")

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err, "failed to get connection string")

	pool, err := NewPool(ctx, dsn)
	require.NoError(t, err, "failed to create pool")

	// Schema inline rather than through the migrations package to avoid an
	// import cycle (migrations imports this package).
	_, err = pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS gene_keys (
			gate            INTEGER PRIMARY KEY CHECK (gate BETWEEN 1 AND 64),
			name            TEXT NOT NULL DEFAULT '',
			meaning         TEXT NOT NULL DEFAULT '',
			shadow          TEXT NOT NULL DEFAULT '',
			manifestation   TEXT NOT NULL DEFAULT '',
			gift            TEXT NOT NULL DEFAULT '',
			transformation  TEXT NOT NULL DEFAULT '',
			siddhi          TEXT NOT NULL DEFAULT '',
			final_state     TEXT NOT NULL DEFAULT '',
			synthesis       TEXT NOT NULL DEFAULT '',
			created_at      TIMESTAMPTZ NOT NULL DEFAULT now()
		)
	`)
	require.NoError(t, err, "failed to create gene_keys table")

	cleanup := func() {
		pool.Close()
		if err := container.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	}

	return pool, cleanup
}
