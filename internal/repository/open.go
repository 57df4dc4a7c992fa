package repository

import (
	"context"
	"fmt"

	"product-catalog/internal/config"
	"product-catalog/internal/database"

	"github.com/rs/zerolog"
)

// Open connects to the store named by cfg.URL, creates the schema if it is
// missing and returns the matching repository with a func that releases the store.
func Open(ctx context.Context, cfg config.DatabaseConfig, logger zerolog.Logger) (ProductRepository, func(), error) {
	switch cfg.Driver() {
	case config.DriverPostgres:
		pool, err := database.NewPool(ctx, cfg, logger)
		if err != nil {
			return nil, nil, err
		}
		if err := database.EnsureSchema(ctx, pool); err != nil {
			pool.Close()
			return nil, nil, err
		}
		return NewProductRepository(pool, logger), pool.Close, nil

	case config.DriverSQLite:
		db, err := database.OpenSQLite(ctx, cfg.SQLitePath(), cfg.MaxConnections, logger)
		if err != nil {
			return nil, nil, err
		}
		if err := database.EnsureSQLiteSchema(ctx, db); err != nil {
			db.Close()
			return nil, nil, err
		}
		return NewSQLiteProductRepository(db, logger), func() { db.Close() }, nil

	case config.DriverMemory:
		logger.Warn().Msg("using in-memory product store, data is lost on exit")
		return NewMemoryProductRepository(logger), func() {}, nil

	default:
		return nil, nil, fmt.Errorf("unsupported database URL scheme: %q", cfg.URL)
	}
}
