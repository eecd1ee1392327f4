// Command importer seeds the database from historical xlsx workbooks.
package main

import (
	"context"
	"flag"
	"os"

	"github.com/Neshhin/credit-approval-system/internal/infrastructure/config"
	"github.com/Neshhin/credit-approval-system/internal/infrastructure/importer"
	"github.com/Neshhin/credit-approval-system/pkg/observability"
	"github.com/Neshhin/credit-approval-system/pkg/postgres"
)

func main() {
	customersPath := flag.String("customers", "", "path to the customer workbook (xlsx)")
	loansPath := flag.String("loans", "", "path to the loan workbook (xlsx)")
	flag.Parse()

	logger := observability.InitLogger(observability.LogConfig{
		Level:  os.Getenv("LOG_LEVEL"),
		Format: os.Getenv("LOG_FORMAT"),
	})

	if *customersPath == "" && *loansPath == "" {
		logger.Error("nothing to import, pass -customers and/or -loans")
		os.Exit(2)
	}

	cfg := config.Load()
	ctx := context.Background()

	pool, err := postgres.NewPool(ctx, postgres.Config{
		Host:     cfg.DB.Host,
		Port:     cfg.DB.Port,
		User:     cfg.DB.User,
		Password: cfg.DB.Password,
		Database: cfg.DB.Name,
		SSLMode:  cfg.DB.SSLMode,
	})
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	imp := importer.NewSpreadsheetImporter(pool, logger)

	if *customersPath != "" {
		stats, err := imp.ImportCustomers(ctx, *customersPath)
		if err != nil {
			logger.Error("customer import failed", "error", err)
			os.Exit(1)
		}
		logger.Info("customers imported", "created", stats.Created, "skipped", stats.Skipped)
	}

	if *loansPath != "" {
		stats, err := imp.ImportLoans(ctx, *loansPath)
		if err != nil {
			logger.Error("loan import failed", "error", err)
			os.Exit(1)
		}
		logger.Info("loans imported", "created", stats.Created, "skipped", stats.Skipped)
	}

	if err := imp.ResetSequences(ctx); err != nil {
		logger.Error("failed to reset id sequences", "error", err)
		os.Exit(1)
	}
}
