package main

import (
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/activshop/storefront/internal/config"
	"github.com/activshop/storefront/internal/order"
	"github.com/activshop/storefront/internal/repository/postgres"
	"github.com/activshop/storefront/internal/storage"
)

// Dumps the order ledger as CSV to stdout, for the shop owner's
// bookkeeping. Usage: go run cmd/export-orders/main.go [> commandes.csv]
func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	logger, _ := zap.NewDevelopment()
	defer logger.Sync()

	var ledger order.Ledger
	switch cfg.Storage.Driver {
	case "postgres":
		db, err := postgres.NewConnection(cfg.Database)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to connect to database: %v\n", err)
			os.Exit(1)
		}
		defer db.Close()
		ledger = postgres.NewOrderLedger(db, logger)
	default:
		store, err := storage.NewFileStore(cfg.Storage.DataDir, logger)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to open local storage: %v\n", err)
			os.Exit(1)
		}
		ledger = order.NewFileLedger(store, "activshop_orders", logger)
	}

	orders, err := ledger.List()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to list orders: %v\n", err)
		os.Exit(1)
	}

	csv := order.ExportCSV(orders)
	if csv == "" {
		fmt.Fprintln(os.Stderr, "No orders to export")
		return
	}
	fmt.Print(csv)
}
