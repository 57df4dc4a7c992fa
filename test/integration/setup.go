package integration

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"product-catalog/internal/config"
	"product-catalog/internal/database"
	"product-catalog/internal/repository"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

// StoreFactory returns an empty product store whose ids start at 1.
type StoreFactory func(t *testing.T) repository.ProductRepository

// Stores returns the stores every integration test runs against. PostgreSQL
// is only included outside -short mode.
func Stores(t *testing.T) map[string]StoreFactory {
	t.Helper()

	stores := map[string]StoreFactory{
		"sqlite": NewSQLiteStore,
	}
	if !testing.Short() {
		stores["postgres"] = SetupPostgresStore(t)
	}
	return stores
}

// NewSQLiteStore opens a SQLite store on a fresh temp file.
func NewSQLiteStore(t *testing.T) repository.ProductRepository {
	t.Helper()

	cfg := config.DatabaseConfig{
		URL:            "sqlite:///" + filepath.Join(t.TempDir(), "catalog.db"),
		MaxConnections: 4,
	}

	repo, closeStore, err := repository.Open(context.Background(), cfg, zerolog.Nop())
	if err != nil {
		t.Fatalf("failed to open sqlite store: %v", err)
	}
	t.Cleanup(closeStore)

	return repo
}

// SetupPostgresStore starts one PostgreSQL container for the calling test and
// returns a factory that truncates the table before handing out a repository.
func SetupPostgresStore(t *testing.T) StoreFactory {
	t.Helper()

	ctx := context.Background()

	postgresContainer, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second)),
	)
	if err != nil {
		t.Fatalf("failed to start postgres container: %v", err)
	}

	connStr, err := postgresContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		t.Fatalf("failed to get connection string: %v", err)
	}

	dbConfig := config.DatabaseConfig{
		URL:             connStr,
		MaxConnections:  10,
		MinConnections:  2,
		MaxConnLifetime: 300,
	}

	pool, err := database.NewPool(ctx, dbConfig, zerolog.Nop())
	if err != nil {
		t.Fatalf("failed to create connection pool: %v", err)
	}

	if err := database.EnsureSchema(ctx, pool); err != nil {
		t.Fatalf("failed to create schema: %v", err)
	}

	t.Cleanup(func() {
		pool.Close()
		if err := postgresContainer.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	})

	return func(t *testing.T) repository.ProductRepository {
		t.Helper()
		CleanupDB(t, pool)
		return repository.NewProductRepository(pool, zerolog.Nop())
	}
}

// CleanupDB removes all products and resets the id sequence.
func CleanupDB(t *testing.T, pool *pgxpool.Pool) {
	t.Helper()

	if _, err := pool.Exec(context.Background(), "TRUNCATE products RESTART IDENTITY"); err != nil {
		t.Fatalf("failed to clean products table: %v", err)
	}
}
