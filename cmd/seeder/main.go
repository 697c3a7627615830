// cmd/seeder/main.go
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"sort"

	"github.com/tealeg/xlsx/v3"

	"github.com/ammerola/stockledger/internal/adapters/db"
	"github.com/ammerola/stockledger/internal/adapters/memory"
	"github.com/ammerola/stockledger/internal/core/ports"
	"github.com/ammerola/stockledger/internal/core/services"
	"github.com/ammerola/stockledger/internal/pkg/config"
	"github.com/ammerola/stockledger/internal/pkg/logger"
)

func main() {
	var (
		catalogFile = flag.String("catalog", "", "Excel workbook with Materials and History sheets (default: built-in catalog)")
		logLevel    = flag.String("log-level", "info", "Log level (debug, info, warn, error)")
		dryRun      = flag.Bool("dry-run", false, "Seed an in-memory store and print the summary without touching the database")
		reset       = flag.Bool("reset", false, "Delete all materials and their movements before seeding")
	)
	flag.Parse()

	log := logger.SetupLogger(*logLevel, "text")
	ctx := context.Background()

	catalog := defaultCatalog()
	if *catalogFile != "" {
		file, err := xlsx.OpenFile(*catalogFile)
		if err != nil {
			log.Error("failed to open catalog", slog.String("error", err.Error()))
			os.Exit(1)
		}
		if catalog, err = loadCatalog(file); err != nil {
			log.Error("failed to load catalog", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}

	tx, materialRepo, movementRepo, closeFn, err := openStorage(ctx, *dryRun, log)
	if err != nil {
		log.Error("failed to open storage", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer closeFn()

	ledger := services.NewLedgerService(tx, materialRepo, movementRepo, log)
	materials := services.NewMaterialService(tx, materialRepo, movementRepo, log)
	seeder := NewSeeder(materials, ledger, log)

	if *reset {
		removed, err := seeder.Reset(ctx)
		if err != nil {
			log.Error("failed to reset data", slog.String("error", err.Error()))
			os.Exit(1)
		}
		log.Info("existing data cleared", slog.Int("materials", removed))
	}

	summary, err := seeder.Seed(ctx, catalog)
	if err != nil {
		log.Error("seeding failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	printSummary(summary)
}

func openStorage(ctx context.Context, dryRun bool, log *slog.Logger) (ports.TxManager, ports.MaterialRepository, ports.MovementRepository, func(), error) {
	if dryRun {
		store := memory.NewStore()
		materials, movements := store.Repositories()
		return store, materials, movements, func() {}, nil
	}

	cfg, err := config.Load(log)
	if err != nil {
		return nil, nil, nil, nil, err
	}
	if !cfg.UsesPostgres() {
		return nil, nil, nil, nil, fmt.Errorf("seeding needs STORAGE_DRIVER=%s; use -dry-run for in-memory", config.DriverPostgres)
	}

	if err := db.RunMigrationsWithRetry(ctx, &db.MigrationConfig{DatabaseURL: cfg.GetDatabaseURL()}, log, 3); err != nil {
		return nil, nil, nil, nil, err
	}

	database, err := db.NewDatabase(ctx, &db.Config{
		Host:               cfg.Database.Host,
		Port:               cfg.Database.Port,
		User:               cfg.Database.User,
		Password:           cfg.Database.Password,
		Database:           cfg.Database.Name,
		SSLMode:            cfg.Database.SSLMode,
		MaxConnections:     cfg.Database.MaxConnections,
		MinConnections:     cfg.Database.MinConnections,
		MaxConnLifetime:    cfg.Database.MaxConnLifetime,
		MaxConnIdleTime:    cfg.Database.MaxConnIdleTime,
		HealthCheckPeriod:  cfg.Database.HealthCheckPeriod,
		ConnectTimeout:     cfg.Database.ConnectTimeout,
		StatementCacheMode: cfg.Database.StatementCacheMode,
		EnableQueryLogging: cfg.Database.EnableQueryLogging,
	}, log)
	if err != nil {
		return nil, nil, nil, nil, err
	}

	return db.NewTxManager(database, log),
		db.NewMaterialRepository(database, log),
		db.NewMovementRepository(database, log),
		database.Close,
		nil
}

func printSummary(s *Summary) {
	fmt.Println("SEED DATA SUMMARY")
	fmt.Printf("  Materials created: %d (skipped %d existing)\n", s.Materials, s.Skipped)
	fmt.Printf("  Stock movements:   %d\n", s.Movements)

	categories := make([]string, 0, len(s.Categories))
	for c := range s.Categories {
		categories = append(categories, c)
	}
	sort.Strings(categories)
	fmt.Printf("  Categories:        %d\n", len(categories))
	for _, c := range categories {
		fmt.Printf("    - %s: %d\n", c, s.Categories[c])
	}

	fmt.Printf("  Zero stock:        %d\n", s.ZeroStock)
	fmt.Printf("  Low stock:         %d\n", s.LowStock)
}
