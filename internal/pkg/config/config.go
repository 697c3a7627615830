// internal/pkg/config/config.go
package config

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// ErrMissingRequiredConfig is wrapped by every missing-value failure.
var ErrMissingRequiredConfig = errors.New("missing required configuration")

// Storage drivers.
const (
	DriverPostgres = "postgres"
	DriverMemory   = "memory"
)

// Config holds all application configuration
type Config struct {
	App      AppConfig
	Storage  StorageConfig
	Database DatabaseConfig
	AWS      AWSConfig
	Security SecurityConfig
	Server   ServerConfig
	Insights InsightsConfig
	Worker   WorkerConfig
}

// AppConfig holds application-specific configuration
type AppConfig struct {
	Name        string `required:"true"`
	Environment string // development, staging, production
	Version     string
	LogLevel    string
	LogFormat   string // json, text
	Debug       bool
}

// StorageConfig selects the persistence backend.
type StorageConfig struct {
	Driver string `required:"true"` // postgres, memory
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Host               string
	Port               string
	User               string
	Password           string
	Name               string
	SSLMode            string
	MaxConnections     int32
	MinConnections     int32
	MaxConnLifetime    time.Duration
	MaxConnIdleTime    time.Duration
	HealthCheckPeriod  time.Duration
	ConnectTimeout     time.Duration
	StatementCacheMode string
	EnableQueryLogging bool
	AutoMigrate        bool
	ForceDirty         bool
}

// AWSConfig holds AWS configuration
type AWSConfig struct {
	Region          string
	AccessKeyID     string
	SecretAccessKey string
	ReportBucket    string // empty disables report archiving
	S3Endpoint      string // For MinIO in development
	UsePathStyle    bool   // For MinIO compatibility
	SecretsName     string // empty reads secrets from the environment
}

// SecurityConfig holds security configuration
type SecurityConfig struct {
	RateLimitRequests int
	RateLimitDuration time.Duration
	AllowedOrigins    []string
	TrustedProxies    []string
	SecureHeaders     bool
	RequestIDHeader   string
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host              string
	Port              string `required:"true"`
	ReadTimeout       time.Duration
	WriteTimeout      time.Duration
	IdleTimeout       time.Duration
	MaxHeaderBytes    int
	GracefulTimeout   time.Duration
	EnableHealthCheck bool
	TLSEnabled        bool
	TLSCertFile       string
	TLSKeyFile        string
}

// InsightsConfig tunes the analytics defaults.
type InsightsConfig struct {
	FastMovingDays int
}

// WorkerConfig configures the asynq background worker and its Redis
// backend. An empty RedisAddr disables background jobs.
type WorkerConfig struct {
	RedisAddr       string
	RedisPassword   string
	RedisDB         int
	Concurrency     int
	Queues          map[string]int // queue name -> priority
	StrictPriority  bool
	RetryMax        int
	ShutdownTimeout time.Duration
	ArchiveCron     string // empty disables the scheduled archive
	DigestCron      string // empty disables the low-stock digest
}

// Load loads configuration from environment variables and overlays secrets.
func Load(logger *slog.Logger) (*Config, error) {
	env := newEnvSource()
	environment := env.getEnv("APP_ENV", "development")

	// Load .env file in development
	if environment == "development" || environment == "local" {
		if err := godotenv.Load(); err != nil {
			logger.Warn("no .env file found, using environment variables",
				slog.String("error", err.Error()))
		} else {
			logger.Info(".env file loaded successfully")
		}
	}

	cfg := fromEnv(env, environment)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	provider, err := NewSecretsProvider(ctx, cfg.AWS, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create secrets provider: %w", err)
	}
	if err := cfg.ApplySecrets(ctx, provider); err != nil {
		return nil, fmt.Errorf("failed to apply secrets: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

func fromEnv(env envSource, environment string) *Config {
	return &Config{
		App: AppConfig{
			Name:        env.getEnv("APP_NAME", "stockledger-api"),
			Environment: environment,
			Version:     env.getEnv("APP_VERSION", "dev"),
			LogLevel:    env.getEnv("LOG_LEVEL", "debug"),
			LogFormat:   env.getEnv("LOG_FORMAT", "json"),
			Debug:       env.getBoolEnv("APP_DEBUG", environment == "development"),
		},
		Storage: StorageConfig{
			Driver: strings.ToLower(env.getEnv("STORAGE_DRIVER", DriverPostgres)),
		},
		Database: DatabaseConfig{
			Host:               env.getEnv("DB_HOST", "localhost"),
			Port:               env.getEnv("DB_PORT", "5432"),
			User:               env.getEnv("DB_USER", "stockledger"),
			Password:           env.getEnv("DB_PASSWORD", "stockledger_dev"),
			Name:               env.getEnv("DB_NAME", "stockledger"),
			SSLMode:            env.getEnv("DB_SSL_MODE", "disable"),
			MaxConnections:     int32(env.getIntEnv("DB_MAX_CONNECTIONS", 25)),
			MinConnections:     int32(env.getIntEnv("DB_MIN_CONNECTIONS", 5)),
			MaxConnLifetime:    env.getDurationEnv("DB_CONNECTION_LIFETIME", time.Hour),
			MaxConnIdleTime:    env.getDurationEnv("DB_IDLE_TIME", 30*time.Minute),
			HealthCheckPeriod:  env.getDurationEnv("DB_HEALTH_CHECK_PERIOD", time.Minute),
			ConnectTimeout:     env.getDurationEnv("DB_CONNECT_TIMEOUT", 10*time.Second),
			StatementCacheMode: env.getEnv("DB_STATEMENT_CACHE_MODE", "describe"),
			EnableQueryLogging: env.getBoolEnv("DB_QUERY_LOGGING", environment == "development"),
			AutoMigrate:        env.getBoolEnv("DB_AUTO_MIGRATE", environment != "production"),
			ForceDirty:         env.getBoolEnv("DB_MIGRATIONS_FORCE_DIRTY", false),
		},
		AWS: AWSConfig{
			Region:          env.getEnv("AWS_REGION", "us-east-1"),
			AccessKeyID:     env.getEnv("AWS_ACCESS_KEY_ID", ""),
			SecretAccessKey: env.getEnv("AWS_SECRET_ACCESS_KEY", ""),
			ReportBucket:    env.getEnv("AWS_S3_REPORT_BUCKET", ""),
			S3Endpoint:      env.getEnv("AWS_S3_ENDPOINT", ""),
			UsePathStyle:    env.getBoolEnv("AWS_S3_PATH_STYLE", environment == "development"),
			SecretsName:     env.getEnv("AWS_SECRETS_NAME", ""),
		},
		Security: SecurityConfig{
			RateLimitRequests: env.getIntEnv("RATE_LIMIT_REQUESTS", 100),
			RateLimitDuration: env.getDurationEnv("RATE_LIMIT_DURATION", time.Minute),
			AllowedOrigins:    env.getSliceEnv("ALLOWED_ORIGINS", []string{"*"}),
			TrustedProxies:    env.getSliceEnv("TRUSTED_PROXIES", []string{}),
			SecureHeaders:     env.getBoolEnv("SECURE_HEADERS", environment == "production"),
			RequestIDHeader:   env.getEnv("REQUEST_ID_HEADER", "X-Request-ID"),
		},
		Server: ServerConfig{
			Host:              env.getEnv("SERVER_HOST", "0.0.0.0"),
			Port:              env.getEnv("SERVER_PORT", "8080"),
			ReadTimeout:       env.getDurationEnv("SERVER_READ_TIMEOUT", 15*time.Second),
			WriteTimeout:      env.getDurationEnv("SERVER_WRITE_TIMEOUT", 15*time.Second),
			IdleTimeout:       env.getDurationEnv("SERVER_IDLE_TIMEOUT", 60*time.Second),
			MaxHeaderBytes:    env.getIntEnv("SERVER_MAX_HEADER_BYTES", 1<<20), // 1 MB
			GracefulTimeout:   env.getDurationEnv("SERVER_GRACEFUL_TIMEOUT", 30*time.Second),
			EnableHealthCheck: env.getBoolEnv("ENABLE_HEALTH_CHECK", true),
			TLSEnabled:        env.getBoolEnv("TLS_ENABLED", false),
			TLSCertFile:       env.getEnv("TLS_CERT_FILE", ""),
			TLSKeyFile:        env.getEnv("TLS_KEY_FILE", ""),
		},
		Insights: InsightsConfig{
			FastMovingDays: env.getIntEnv("INSIGHTS_FAST_MOVING_DAYS", 30),
		},
		Worker: WorkerConfig{
			RedisAddr:       env.getEnv("REDIS_ADDR", ""),
			RedisPassword:   env.getEnv("REDIS_PASSWORD", ""),
			RedisDB:         env.getIntEnv("ASYNQ_REDIS_DB", 0),
			Concurrency:     env.getIntEnv("ASYNQ_CONCURRENCY", 4),
			Queues:          parseQueues(env.getEnv("ASYNQ_QUEUES", "reports:3,alerts:1")),
			StrictPriority:  env.getBoolEnv("ASYNQ_STRICT_PRIORITY", false),
			RetryMax:        env.getIntEnv("ASYNQ_RETRY_MAX", 3),
			ShutdownTimeout: env.getDurationEnv("ASYNQ_SHUTDOWN_TIMEOUT", 30*time.Second),
			ArchiveCron:     env.getEnv("WORKER_ARCHIVE_CRON", "0 2 * * *"),
			DigestCron:      env.getEnv("WORKER_DIGEST_CRON", "0 8 * * 1-5"),
		},
	}
}

// Validate validates the configuration
func (c *Config) Validate() error {
	validators := []Validator{&BasicValidator{}}
	if c.IsProduction() {
		validators = append(validators, &ProductionValidator{})
	}

	for _, v := range validators {
		if err := v.Validate(c); err != nil {
			return err
		}
	}
	return nil
}

// GetDatabaseURL returns the formatted database connection string
func (c *Config) GetDatabaseURL() string {
	return fmt.Sprintf(
		"postgresql://%s:%s@%s:%s/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Name,
		c.Database.SSLMode,
	)
}

// GetServerAddress returns the formatted server address
func (c *Config) GetServerAddress() string {
	return fmt.Sprintf("%s:%s", c.Server.Host, c.Server.Port)
}

// IsProduction returns true if running in production
func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}

// IsDevelopment returns true if running in development
func (c *Config) IsDevelopment() bool {
	return c.App.Environment == "development" || c.App.Environment == "local"
}

// WorkerEnabled reports whether a Redis backend for background jobs is set.
func (c *Config) WorkerEnabled() bool {
	return c.Worker.RedisAddr != ""
}

// UsesPostgres reports whether the PostgreSQL adapter is selected.
func (c *Config) UsesPostgres() bool {
	return c.Storage.Driver == DriverPostgres
}

// Helper functions

// envSource reads settings through viper's environment binding.
type envSource struct {
	v *viper.Viper
}

func newEnvSource() envSource {
	v := viper.New()
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	return envSource{v: v}
}

func (e envSource) getEnv(key, defaultValue string) string {
	if value := strings.TrimSpace(e.v.GetString(key)); value != "" {
		return value
	}
	return defaultValue
}

func (e envSource) getBoolEnv(key string, defaultValue bool) bool {
	if value := e.v.GetString(key); value != "" {
		b, err := strconv.ParseBool(value)
		if err == nil {
			return b
		}
	}
	return defaultValue
}

func (e envSource) getIntEnv(key string, defaultValue int) int {
	if value := e.v.GetString(key); value != "" {
		i, err := strconv.Atoi(value)
		if err == nil {
			return i
		}
	}
	return defaultValue
}

func (e envSource) getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := e.v.GetString(key); value != "" {
		d, err := time.ParseDuration(value)
		if err == nil {
			return d
		}
	}
	return defaultValue
}

func (e envSource) getSliceEnv(key string, defaultValue []string) []string {
	value := e.v.GetString(key)
	if value == "" {
		return defaultValue
	}
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// parseQueues reads "name:priority" pairs separated by commas. Entries
// without a valid positive priority get priority 1.
func parseQueues(value string) map[string]int {
	queues := make(map[string]int)
	for _, part := range strings.Split(value, ",") {
		name, priority, _ := strings.Cut(strings.TrimSpace(part), ":")
		if name == "" {
			continue
		}
		p, err := strconv.Atoi(priority)
		if err != nil || p <= 0 {
			p = 1
		}
		queues[name] = p
	}
	return queues
}
