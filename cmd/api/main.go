// cmd/api/main.go
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/ammerola/stockledger/internal/adapters/db"
	"github.com/ammerola/stockledger/internal/adapters/memory"
	"github.com/ammerola/stockledger/internal/adapters/storage"
	"github.com/ammerola/stockledger/internal/core/ports"
	"github.com/ammerola/stockledger/internal/core/services"
	"github.com/ammerola/stockledger/internal/handlers"
	"github.com/ammerola/stockledger/internal/handlers/middleware"
	"github.com/ammerola/stockledger/internal/pkg/config"
	"github.com/ammerola/stockledger/internal/pkg/logger"
	"github.com/ammerola/stockledger/internal/workers"
)

// Build information injected at compile time
var (
	Version   = "dev"
	BuildTime = "unknown"
	GoVersion = "unknown"
)

func main() {
	slogger := logger.SetupLogger("debug", "json")

	slogger.Info("starting stock ledger API",
		slog.String("version", Version),
		slog.String("build_time", BuildTime),
		slog.String("go_version", GoVersion),
	)

	cfg, err := config.Load(slogger)
	if err != nil {
		slogger.Error("failed to load configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Reconfigure logger with loaded settings
	slogger = logger.SetupLogger(cfg.App.LogLevel, cfg.App.LogFormat)
	slogger.Info("configuration loaded",
		slog.String("environment", cfg.App.Environment),
		slog.String("storage", cfg.Storage.Driver),
		slog.String("log_level", cfg.App.LogLevel),
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	deps, err := initializeDependencies(ctx, cfg, slogger)
	if err != nil {
		slogger.Error("failed to initialize dependencies", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer deps.cleanup()

	server := setupHTTPServer(ctx, cfg, deps, slogger)

	serverErrors := make(chan error, 1)
	go func() {
		slogger.Info("starting HTTP server",
			slog.String("address", cfg.GetServerAddress()),
			slog.Bool("tls", cfg.Server.TLSEnabled),
		)

		if cfg.Server.TLSEnabled {
			serverErrors <- server.ListenAndServeTLS(cfg.Server.TLSCertFile, cfg.Server.TLSKeyFile)
		} else {
			serverErrors <- server.ListenAndServe()
		}
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM, syscall.SIGQUIT)

	select {
	case err := <-serverErrors:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			slogger.Error("server error", slog.String("error", err.Error()))
		}
	case sig := <-shutdown:
		slogger.Info("shutdown signal received",
			slog.String("signal", sig.String()),
		)

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.GracefulTimeout)
		defer shutdownCancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			slogger.Error("failed to gracefully shutdown server", slog.String("error", err.Error()))
			server.Close()
		}

		slogger.Info("server shutdown complete")
	}
}

// dependencies holds all application dependencies
type dependencies struct {
	database ports.Database
	queue    *workers.Queue
	routes   *handlers.Routes
}

func (d *dependencies) cleanup() {
	if d.queue != nil {
		_ = d.queue.Close()
	}
	if d.database != nil {
		d.database.Close()
	}
}

// repositories bundles the storage-backed ports the services need.
type repositories struct {
	tx        ports.TxManager
	materials ports.MaterialRepository
	movements ports.MovementRepository
}

func initializeDependencies(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*dependencies, error) {
	deps := &dependencies{}

	var repos repositories
	switch {
	case cfg.UsesPostgres():
		database, err := connectPostgres(ctx, cfg, logger)
		if err != nil {
			return nil, err
		}
		deps.database = database
		repos = repositories{
			tx:        db.NewTxManager(database, logger),
			materials: db.NewMaterialRepository(database, logger),
			movements: db.NewMovementRepository(database, logger),
		}
	default:
		logger.Warn("using in-memory storage; data is lost on restart")
		store := memory.NewStore()
		materials, movements := store.Repositories()
		repos = repositories{tx: store, materials: materials, movements: movements}
	}

	archive, err := newReportArchive(ctx, cfg, logger)
	if err != nil {
		deps.cleanup()
		return nil, err
	}

	ledger := services.NewLedgerService(repos.tx, repos.materials, repos.movements, logger)
	materials := services.NewMaterialService(repos.tx, repos.materials, repos.movements, logger)
	sales := services.NewSalesService(ledger, repos.materials, repos.movements, logger)
	insights := services.NewInsightsService(repos.materials, repos.movements, cfg.Insights.FastMovingDays, logger)

	deps.routes = &handlers.Routes{
		Materials: handlers.NewMaterialHandler(materials, logger),
		Movements: handlers.NewMovementHandler(ledger, logger),
		Sales:     handlers.NewSalesHandler(sales, logger),
		Insights:  handlers.NewInsightsHandler(insights, logger),
		Export:    handlers.NewExportHandler(materials, insights, archive, logger),
	}
	if cfg.Server.EnableHealthCheck {
		deps.routes.Health = handlers.NewHealthHandler(deps.database, cfg, logger)
	}

	if cfg.WorkerEnabled() {
		deps.queue = workers.NewQueue(cfg.Worker)
		deps.routes.Export.WithQueue(deps.queue)
		if deps.routes.Health != nil {
			deps.routes.Health.WithQueue(deps.queue)
		}
		logger.Info("background worker queue enabled", slog.String("redis_addr", cfg.Worker.RedisAddr))
	}

	logger.Info("all dependencies initialized successfully")
	return deps, nil
}

func connectPostgres(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*db.Database, error) {
	logger.Info("connecting to database",
		slog.String("host", cfg.Database.Host),
		slog.String("database", cfg.Database.Name),
	)

	if cfg.Database.AutoMigrate {
		if err := runMigrations(ctx, cfg, logger); err != nil {
			return nil, err
		}
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
	}, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}
	return database, nil
}

// newReportArchive returns nil when no bucket is configured; the archive
// endpoint then answers 503.
func newReportArchive(ctx context.Context, cfg *config.Config, logger *slog.Logger) (ports.ReportArchive, error) {
	if cfg.AWS.ReportBucket == "" {
		logger.Info("report archive disabled")
		return nil, nil
	}

	archive, err := storage.NewS3Archive(ctx, &storage.S3Config{
		Region:          cfg.AWS.Region,
		Bucket:          cfg.AWS.ReportBucket,
		AccessKeyID:     cfg.AWS.AccessKeyID,
		SecretAccessKey: cfg.AWS.SecretAccessKey,
		Endpoint:        cfg.AWS.S3Endpoint,
		UsePathStyle:    cfg.AWS.UsePathStyle,
		CreateBucket:    !cfg.IsProduction(),
	}, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize report archive: %w", err)
	}
	return archive, nil
}

func setupHTTPServer(ctx context.Context, cfg *config.Config, deps *dependencies, logger *slog.Logger) *http.Server {
	mux := http.NewServeMux()
	deps.routes.Register(mux)

	// First listed is outermost.
	chain := []func(http.Handler) http.Handler{
		middleware.RequestID(cfg.Security.RequestIDHeader),
		middleware.ProxyHeaders(cfg.Security.TrustedProxies),
		middleware.Logger(logger),
		middleware.Recovery(logger),
		middleware.RateLimit(ctx, cfg.Security.RateLimitRequests, cfg.Security.RateLimitDuration),
	}
	if len(cfg.Security.AllowedOrigins) > 0 {
		chain = append(chain, middleware.CORS(cfg.Security.AllowedOrigins))
	}
	if cfg.Security.SecureHeaders {
		chain = append(chain, middleware.SecureHeaders)
	}
	chain = append(chain, middleware.Compression)
	if cfg.Server.WriteTimeout > 0 {
		chain = append(chain, middleware.Timeout(cfg.Server.WriteTimeout))
	}

	return &http.Server{
		Addr:           cfg.GetServerAddress(),
		Handler:        middleware.Chain(mux, chain...),
		ReadTimeout:    cfg.Server.ReadTimeout,
		WriteTimeout:   cfg.Server.WriteTimeout,
		IdleTimeout:    cfg.Server.IdleTimeout,
		MaxHeaderBytes: cfg.Server.MaxHeaderBytes,
		ErrorLog:       slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}
}

func runMigrations(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	logger.Info("running database migrations")

	err := db.RunMigrationsWithRetry(ctx, &db.MigrationConfig{
		DatabaseURL: cfg.GetDatabaseURL(),
		TableName:   "schema_migrations",
		SchemaName:  "public",
		ForceDirty:  cfg.Database.ForceDirty,
	}, logger, 3)
	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	return nil
}
