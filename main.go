package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/side105/devconnector/internal/config"
	"github.com/side105/devconnector/internal/repository"
	"github.com/side105/devconnector/internal/server"
)

func main() {
	logger, err := zap.NewDevelopment()
	if err != nil {
		panic(err) // Should not happen in development
	}
	defer func() {
		_ = logger.Sync() // Flushes buffer, if any
	}()

	// Load configuration
	cfgPath := "configs/config.yml"
	if p := os.Getenv("DEVCONNECTOR_CONFIG"); p != "" {
		cfgPath = p
	}
	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		logger.Fatal("Failed to load config", zap.Error(err))
	}

	// Context for startup and graceful shutdown
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// Database connection
	client, err := repository.NewMongoDB(ctx, cfg.Database.URI, logger)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		_ = client.Disconnect(context.Background())
	}()

	db := client.Database(cfg.Database.Name)

	// Bootstrap indexes
	if err := repository.EnsureIndexes(ctx, db, logger); err != nil {
		logger.Fatal("Failed to ensure indexes", zap.Error(err))
	}

	// Initialize and run the server
	srv := server.NewServer(db, cfg, logger)
	srv.Run(cfg.Server.Port)
}
