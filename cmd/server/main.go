package main

import (
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/activshop/storefront/internal/api"
	"github.com/activshop/storefront/internal/cart"
	"github.com/activshop/storefront/internal/catalog"
	"github.com/activshop/storefront/internal/config"
	"github.com/activshop/storefront/internal/dispatch"
	"github.com/activshop/storefront/internal/order"
	"github.com/activshop/storefront/internal/remotelog"
	"github.com/activshop/storefront/internal/repository/postgres"
	"github.com/activshop/storefront/internal/service"
	"github.com/activshop/storefront/internal/storage"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	var logger *zap.Logger
	if cfg.Environment == "production" {
		logger, err = zap.NewProduction()
	} else {
		logger, err = zap.NewDevelopment()
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	// Local durable storage (carts always live here)
	store, err := storage.NewFileStore(cfg.Storage.DataDir, logger)
	if err != nil {
		logger.Fatal("Failed to open local storage", zap.Error(err))
	}

	// Order ledger: local file by default, postgres when configured
	var ledger order.Ledger
	switch cfg.Storage.Driver {
	case "postgres":
		db, err := postgres.NewConnection(cfg.Database)
		if err != nil {
			logger.Fatal("Failed to connect to database", zap.Error(err))
		}
		defer db.Close()
		ledger = postgres.NewOrderLedger(db, logger)
	default:
		ledger = order.NewFileLedger(store, "activshop_orders", logger)
	}

	// Catalog: a load failure is a degraded state, not a crash
	cat, loadErr := catalog.NewLoader(cfg.Catalog.Source, logger).Load()
	if loadErr != nil {
		logger.Error("Catalog unavailable", zap.Error(loadErr))
		cat = catalog.New(nil)
	}

	remote := remotelog.NewClient(cfg.RemoteLog.ScriptURL, logger)
	if remote == nil {
		logger.Info("Remote order mirroring disabled")
	}

	checkout := service.NewCheckoutService(
		cat,
		order.NewBuilder(),
		ledger,
		dispatch.NewDispatcher(cfg.Channels, logger),
		remote,
		logger,
	)

	router := api.NewRouter(cfg, api.Deps{
		Catalog:        cat,
		CatalogLoadErr: loadErr,
		Carts:          cart.NewManager(store, logger),
		Ledger:         ledger,
		Checkout:       checkout,
		Remote:         remote,
	}, logger)

	logger.Info("Starting server",
		zap.String("port", cfg.Port),
		zap.String("storage", cfg.Storage.Driver),
	)
	if err := router.Run(":" + cfg.Port); err != nil {
		logger.Fatal("Server stopped", zap.Error(err))
	}
}
