package main

import (
	"context"
	"fmt"

	"github.com/helixml/listingllm/internal/config"
	"github.com/helixml/listingllm/internal/database"
)

// openDatabase prepares the data directory and connects to the configured database.
func openDatabase(ctx context.Context, cfg config.AppConfig) (database.Database, error) {
	if err := cfg.EnsureDataDir(); err != nil {
		return database.Database{}, fmt.Errorf("create data directory: %w", err)
	}

	db, err := database.NewDatabase(ctx, cfg.DBURL())
	if err != nil {
		return database.Database{}, fmt.Errorf("connect database: %w", err)
	}
	return db, nil
}
