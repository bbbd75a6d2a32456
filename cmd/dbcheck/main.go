// Command dbcheck verifies that the configured database is reachable and
// carries the service schema. It exits non-zero when anything is missing.
package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/menu-interativo/back-end/internal/config"
	"github.com/menu-interativo/back-end/internal/database"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	if err := config.LoadDotEnv(); err != nil {
		return err
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	logger := config.NewLogger(cfg.Logger)

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	pool, err := database.NewPool(ctx, cfg.Database, logger)
	if err != nil {
		return err
	}
	defer pool.Close()

	var dbName, version string
	if err := pool.QueryRow(ctx, "SELECT current_database(), version()").Scan(&dbName, &version); err != nil {
		return fmt.Errorf("failed to query server: %w", err)
	}
	logger.Info().Str("database", dbName).Str("version", version).Msg("connected")

	missing, err := database.MissingTables(ctx, pool)
	if err != nil {
		return err
	}
	if len(missing) > 0 {
		return fmt.Errorf("schema incomplete, missing tables: %s", strings.Join(missing, ", "))
	}

	logger.Info().Int("tables", len(database.Tables)).Msg("schema present")
	return nil
}
