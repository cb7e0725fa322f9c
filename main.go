// main.go
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"cineacme/cmd"
	"cineacme/internal/data/memstore"
	"cineacme/internal/data/repository"
	"cineacme/internal/wire"
	"cineacme/pkg/cache"
	"cineacme/pkg/database"
	"cineacme/pkg/metrics"
	"cineacme/pkg/utils"

	"go.uber.org/zap"
)

func main() {
	// Load config
	config, err := utils.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	logger, err := utils.InitLogger(config.App.LogPath, config.App.Debug)
	if err != nil {
		log.Printf("Failed to init logger: %v. Using standard log.", err)
		logger, _ = zap.NewProduction()
	}
	defer logger.Sync()

	logger.Info("Starting application",
		zap.String("app", config.App.Name),
		zap.String("port", config.App.Port),
		zap.String("store", config.App.StoreDriver),
		zap.Bool("debug", config.App.Debug),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	repos, closeStore := openStore(ctx, config, logger)
	defer closeStore()

	rdb := cache.NewRedisClient(ctx, config.Redis, logger)
	if rdb != nil {
		defer rdb.Close()
	}

	var m *metrics.Metrics
	if config.Metrics.Enabled {
		m = metrics.New(config.Metrics.Namespace, nil)
	}

	// Wire all dependencies
	app := wire.Wiring(repos, config, rdb, m, logger)

	if err := app.Service.Auth.EnsureAdmin(ctx); err != nil {
		logger.Fatal("Failed to seed admin account", zap.Error(err))
	}

	if err := cmd.APIServer(ctx, app.Router, config.App.Port, logger); err != nil {
		logger.Fatal("Server error", zap.Error(err))
	}
	logger.Info("Server stopped")
}

// openStore picks the repository implementation named by STORE_DRIVER.
func openStore(ctx context.Context, config *utils.Config, logger *zap.Logger) (*repository.Repository, func()) {
	if config.App.StoreDriver == utils.StoreDriverMemory {
		logger.Warn("Using in-memory store, data is lost on restart")
		return memstore.NewRepository(logger), func() {}
	}

	db, err := database.InitDB(config.Database)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	logger.Info("Database connected successfully")

	if config.Database.Migrate {
		if err := database.Migrate(ctx, db); err != nil {
			db.Close()
			logger.Fatal("Failed to apply schema", zap.Error(err))
		}
		logger.Info("Database schema applied")
	}

	return repository.NewRepository(db, logger), db.Close
}
