package testutil

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
)

// PostgresDB is a throwaway PostgreSQL instance backed by a testcontainer.
// It is terminated automatically when the test finishes.
type PostgresDB struct {
	DSN  string
	Pool *pgxpool.Pool
}

// StartPostgres launches a PostgreSQL container and connects a pool to it.
// Cleanup is registered on t.
func StartPostgres(ctx context.Context, t *testing.T) *PostgresDB {
	t.Helper()

	container, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("creditos_test"),
		postgres.WithUsername("creditos"),
		postgres.WithPassword("creditos"),
		postgres.BasicWaitStrategies(),
	)
	require.NoError(t, err, "start postgres container")
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := container.Terminate(ctx); err != nil {
			t.Logf("terminate postgres container: %v", err)
		}
	})

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err, "postgres connection string")

	pool, err := pgxpool.New(ctx, dsn)
	require.NoError(t, err, "connect pool")
	require.NoError(t, pool.Ping(ctx), "ping postgres")
	t.Cleanup(pool.Close)

	return &PostgresDB{DSN: dsn, Pool: pool}
}

// ApplyMigrations executes the forward migrations from dir in lexicographic
// order. Only *.up.sql files are applied; rollbacks stay on disk for
// golang-migrate.
func (db *PostgresDB) ApplyMigrations(t *testing.T, dir string) {
	t.Helper()

	entries, err := os.ReadDir(dir)
	require.NoError(t, err, "read migrations dir %s", dir)

	var files []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".up.sql") {
			files = append(files, e.Name())
		}
	}
	sort.Strings(files)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	for _, name := range files {
		sql, err := os.ReadFile(filepath.Join(dir, name))
		require.NoError(t, err, "read migration %s", name)
		_, err = db.Pool.Exec(ctx, string(sql))
		require.NoError(t, err, "apply migration %s", name)
	}
}
