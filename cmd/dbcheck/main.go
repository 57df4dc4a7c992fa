package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"product-catalog/internal/config"
	"product-catalog/internal/repository"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
)

// dbcheck connects to DATABASE_URL, creates the schema if needed and reports
// the number of stored products.
func main() {
	listDatabases := flag.Bool("list", false, "list the databases on a PostgreSQL server")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Invalid configuration: %v\n", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	repo, closeStore, err := repository.Open(ctx, cfg.Database, zerolog.Nop())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Unable to open database: %v\n", err)
		os.Exit(1)
	}
	defer closeStore()

	if err := repo.Ping(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Ping failed: %v\n", err)
		os.Exit(1)
	}

	count, err := repo.Count(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Count failed: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Successfully connected to %s store: %d products\n", cfg.Database.Driver(), count)

	if *listDatabases {
		if cfg.Database.Driver() != config.DriverPostgres {
			fmt.Fprintln(os.Stderr, "-list requires a PostgreSQL DATABASE_URL")
			os.Exit(1)
		}
		if err := printDatabases(ctx, cfg.Database.URL); err != nil {
			fmt.Fprintf(os.Stderr, "Listing databases failed: %v\n", err)
			os.Exit(1)
		}
	}
}

func printDatabases(ctx context.Context, connString string) error {
	conn, err := pgx.Connect(ctx, connString)
	if err != nil {
		return fmt.Errorf("unable to connect: %w", err)
	}
	defer conn.Close(ctx)

	rows, err := conn.Query(ctx, "SELECT datname FROM pg_database WHERE datistemplate = false ORDER BY datname")
	if err != nil {
		return fmt.Errorf("query failed: %w", err)
	}

	names, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return fmt.Errorf("scan failed: %w", err)
	}

	fmt.Println("\nAvailable databases:")
	for _, name := range names {
		fmt.Printf("  - %s\n", name)
	}
	return nil
}
