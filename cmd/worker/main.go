// cmd/worker/main.go
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hibiken/asynq"

	"github.com/ammerola/stockledger/internal/adapters/db"
	"github.com/ammerola/stockledger/internal/adapters/storage"
	"github.com/ammerola/stockledger/internal/core/domain"
	"github.com/ammerola/stockledger/internal/core/ports"
	"github.com/ammerola/stockledger/internal/core/services"
	"github.com/ammerola/stockledger/internal/pkg/config"
	"github.com/ammerola/stockledger/internal/pkg/logger"
	"github.com/ammerola/stockledger/internal/reports"
	"github.com/ammerola/stockledger/internal/workers"
)

func main() {
	slogger := logger.SetupLogger("info", "json")

	cfg, err := config.Load(slogger)
	if err != nil {
		slogger.Error("failed to load configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Reconfigure logger with loaded settings
	slogger = logger.SetupLogger(cfg.App.LogLevel, cfg.App.LogFormat)

	if !cfg.WorkerEnabled() {
		slogger.Error("worker needs REDIS_ADDR")
		os.Exit(1)
	}
	if !cfg.UsesPostgres() {
		slogger.Error("worker needs STORAGE_DRIVER=postgres")
		os.Exit(1)
	}

	slogger.Info("starting worker",
		slog.String("environment", cfg.App.Environment),
		slog.String("redis_addr", cfg.Worker.RedisAddr))

	ctx := context.Background()
	database, err := initDatabase(ctx, cfg, slogger)
	if err != nil {
		slogger.Error("failed to initialize database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer database.Close()

	archive, err := initArchive(ctx, cfg, slogger)
	if err != nil {
		slogger.Error("failed to initialize report archive", slog.String("error", err.Error()))
		os.Exit(1)
	}

	tx := db.NewTxManager(database, slogger)
	materialRepo := db.NewMaterialRepository(database, slogger)
	movementRepo := db.NewMovementRepository(database, slogger)

	materialService := services.NewMaterialService(tx, materialRepo, movementRepo, slogger)
	insightsService := services.NewInsightsService(materialRepo, movementRepo, cfg.Insights.FastMovingDays, slogger)

	processor := workers.NewReportProcessor(
		reports.NewGenerator(materialService, insightsService, archive, slogger),
		insightsService,
		slogger,
	)

	redisOpt := workers.RedisOpt(cfg.Worker)
	asynqLog := newAsynqLogger(slogger)

	srv := asynq.NewServer(redisOpt, asynq.Config{
		Concurrency:     cfg.Worker.Concurrency,
		Queues:          cfg.Worker.Queues,
		StrictPriority:  cfg.Worker.StrictPriority,
		ErrorHandler:    asynq.ErrorHandlerFunc(handleError(slogger)),
		RetryDelayFunc:  exponentialBackoff,
		ShutdownTimeout: cfg.Worker.ShutdownTimeout,
		HealthCheckFunc: healthCheck(slogger),
		Logger:          asynqLog,
	})

	mux := asynq.NewServeMux()
	processor.Register(mux)

	scheduler := asynq.NewScheduler(redisOpt, &asynq.SchedulerOpts{
		Logger:   asynqLog,
		Location: time.UTC,
		PostEnqueueFunc: func(info *asynq.TaskInfo, err error) {
			if err != nil {
				slogger.Warn("scheduled task not enqueued", slog.String("error", err.Error()))
				return
			}
			slogger.Info("scheduled task enqueued",
				slog.String("type", info.Type),
				slog.String("task_id", info.ID))
		},
	})
	if err := registerSchedules(scheduler, cfg, archive != nil, slogger); err != nil {
		slogger.Error("failed to register schedules", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if err := srv.Start(mux); err != nil {
		slogger.Error("failed to run worker server", slog.String("error", err.Error()))
		os.Exit(1)
	}
	if err := scheduler.Start(); err != nil {
		slogger.Error("failed to start scheduler", slog.String("error", err.Error()))
		srv.Shutdown()
		os.Exit(1)
	}

	slogger.Info("worker started successfully",
		slog.Int("concurrency", cfg.Worker.Concurrency),
		slog.Any("queues", cfg.Worker.Queues))

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, syscall.SIGINT, syscall.SIGTERM)
	sig := <-shutdown
	slogger.Info("shutdown signal received", slog.String("signal", sig.String()))

	scheduler.Shutdown()
	srv.Shutdown()
	slogger.Info("worker shutdown complete")
}

// registerSchedules adds the periodic archive and digest tasks. The archive
// is only scheduled when a bucket is configured.
func registerSchedules(scheduler *asynq.Scheduler, cfg *config.Config, canArchive bool, logger *slog.Logger) error {
	if cfg.Worker.ArchiveCron != "" && canArchive {
		task, err := workers.NewArchiveInventoryTask(workers.TriggerSchedule, time.Now(), cfg.Worker.RetryMax)
		if err != nil {
			return err
		}
		if _, err := scheduler.Register(cfg.Worker.ArchiveCron, task); err != nil {
			return fmt.Errorf("invalid archive schedule %q: %w", cfg.Worker.ArchiveCron, err)
		}
		logger.Info("scheduled inventory archive", slog.String("cron", cfg.Worker.ArchiveCron))
	}

	if cfg.Worker.DigestCron != "" {
		task, err := workers.NewLowStockDigestTask(domain.UrgencyHigh)
		if err != nil {
			return err
		}
		if _, err := scheduler.Register(cfg.Worker.DigestCron, task); err != nil {
			return fmt.Errorf("invalid digest schedule %q: %w", cfg.Worker.DigestCron, err)
		}
		logger.Info("scheduled low stock digest", slog.String("cron", cfg.Worker.DigestCron))
	}
	return nil
}

func initDatabase(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*db.Database, error) {
	dbConfig := &db.Config{
		Host:               cfg.Database.Host,
		Port:               cfg.Database.Port,
		User:               cfg.Database.User,
		Password:           cfg.Database.Password,
		Database:           cfg.Database.Name,
		SSLMode:            cfg.Database.SSLMode,
		MaxConnections:     10, // Fewer connections for worker
		MinConnections:     2,
		MaxConnLifetime:    cfg.Database.MaxConnLifetime,
		MaxConnIdleTime:    cfg.Database.MaxConnIdleTime,
		HealthCheckPeriod:  cfg.Database.HealthCheckPeriod,
		ConnectTimeout:     cfg.Database.ConnectTimeout,
		StatementCacheMode: cfg.Database.StatementCacheMode,
		EnableQueryLogging: cfg.Database.EnableQueryLogging,
	}

	return db.NewDatabase(ctx, dbConfig, logger)
}

func initArchive(ctx context.Context, cfg *config.Config, logger *slog.Logger) (ports.ReportArchive, error) {
	if cfg.AWS.ReportBucket == "" {
		logger.Warn("no report bucket configured, archive tasks will be skipped")
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
		return nil, err
	}
	return archive, nil
}

func handleError(logger *slog.Logger) func(context.Context, *asynq.Task, error) {
	return func(ctx context.Context, task *asynq.Task, err error) {
		logger.ErrorContext(ctx, "task processing failed",
			slog.String("type", task.Type()),
			slog.String("payload", string(task.Payload())),
			slog.String("error", err.Error()))
	}
}

func exponentialBackoff(n int, _ error, _ *asynq.Task) time.Duration {
	baseDelay := time.Second
	maxDelay := 10 * time.Minute
	delay := baseDelay * time.Duration(1<<uint(min(n, 20)))
	if delay > maxDelay {
		delay = maxDelay
	}
	return delay
}

func healthCheck(logger *slog.Logger) func(error) {
	return func(err error) {
		if err != nil {
			logger.Error("worker health check failed", slog.String("error", err.Error()))
		}
	}
}

// asynqLogger adapts slog for Asynq
type asynqLogger struct {
	logger *slog.Logger
}

func newAsynqLogger(logger *slog.Logger) *asynqLogger {
	return &asynqLogger{
		logger: logger.With(slog.String("component", "asynq")),
	}
}

func (l *asynqLogger) Debug(args ...any) {
	l.logger.Debug(fmt.Sprint(args...))
}

func (l *asynqLogger) Info(args ...any) {
	l.logger.Info(fmt.Sprint(args...))
}

func (l *asynqLogger) Warn(args ...any) {
	l.logger.Warn(fmt.Sprint(args...))
}

func (l *asynqLogger) Error(args ...any) {
	l.logger.Error(fmt.Sprint(args...))
}

func (l *asynqLogger) Fatal(args ...any) {
	l.logger.Error(fmt.Sprint(args...))
	os.Exit(1)
}
