// Command fps-refresh pulls the HDB Carpark Information dataset from
// data.gov.sg and caches the Free Parking Scheme membership list in the
// configured store. Run quarterly or whenever HDB announces FPS changes.
package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"

	"parksmart/internal/backend"
	"parksmart/internal/config"
	"parksmart/internal/fps"
)

func main() {
	_ = godotenv.Load()

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", "error", err)
		os.Exit(1)
	}

	store, err := backend.Open(cfg, logger)
	if err != nil {
		logger.Error("Failed to open data backend", "error", err, "backend", cfg.DataBackend)
		os.Exit(1)
	}
	if store.Cleanup != nil {
		defer store.Cleanup()
	}

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	logger.Info("Fetching HDB Carpark Information from data.gov.sg")
	ids, err := fps.NewFetcher(cfg.FPSDatasetURL).Fetch(ctx)
	if err != nil {
		logger.Error("Failed to fetch FPS carpark list", "error", err)
		os.Exit(1)
	}

	if err := fps.Save(store.Store, ids); err != nil {
		logger.Error("Failed to cache FPS carpark list", "error", err)
		os.Exit(1)
	}

	logger.Info("FPS carpark list refreshed", "count", len(ids))
}
