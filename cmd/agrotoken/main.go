package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"agrotoken/internal/api"
	"agrotoken/internal/api/handlers"
	"agrotoken/internal/app"
	"agrotoken/pkg/config"
	"agrotoken/pkg/logger"

	"go.uber.org/zap"
)

// @title Agrotoken API
// @version 1.0
// @description Receipt validation, currency conversion and receipt-backed token registry

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(cfg.Logger.Level, cfg.Logger.Format); err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	appLogger := logger.Get()
	appLogger.Info("Starting agrotoken service", zap.String("storage", cfg.Storage.Driver))

	ctx := context.Background()
	store, closeStore, err := app.OpenStore(ctx, cfg, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to open storage", zap.Error(err))
	}
	defer closeStore()

	services, err := app.NewServices(cfg, store, app.LedgerLatency(cfg.Ledger), appLogger)
	if err != nil {
		appLogger.Fatal("Failed to initialize services", zap.Error(err))
	}

	router := api.SetupRouter(api.Handlers{
		Receipts: handlers.NewReceiptHandler(services.Tokenizer, services.Documents, appLogger),
		Market:   handlers.NewMarketHandler(services.Converter, appLogger),
		Tokens:   handlers.NewTokenHandler(services.Registry, appLogger),
		Health:   handlers.NewHealthHandler(services.Store),
	}, cfg, appLogger)

	go func() {
		addr := ":" + cfg.Server.Port
		appLogger.Info("Server starting", zap.String("address", addr))
		if err := router.Listen(addr); err != nil {
			appLogger.Fatal("Server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server")
	if err := router.Shutdown(); err != nil {
		appLogger.Error("Server shutdown error", zap.Error(err))
	}
}
