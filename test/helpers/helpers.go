// test/helpers/helpers.go
package helpers

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/ammerola/stockledger/internal/adapters/db"
	"github.com/ammerola/stockledger/internal/core/domain"
	"github.com/ammerola/stockledger/internal/pkg/config"
)

// TestDB represents a test database instance
type TestDB struct {
	PgxPool  *pgxpool.Pool
	Database *db.Database
	Resource *dockertest.Resource
	Pool     *dockertest.Pool
	Config   *db.Config
}

// TestLogger returns a test logger
func TestLogger() *slog.Logger {
	level := slog.LevelError
	if testing.Verbose() {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
}

// SetupTestDB starts a PostgreSQL container and applies the migrations.
func SetupTestDB(t *testing.T) *TestDB {
	t.Helper()

	pool, err := dockertest.NewPool("")
	require.NoError(t, err, "Could not connect to Docker")

	resource, err := pool.RunWithOptions(&dockertest.RunOptions{
		Repository: "postgres",
		Tag:        "16-alpine",
		Env: []string{
			"POSTGRES_USER=test",
			"POSTGRES_PASSWORD=test",
			"POSTGRES_DB=test_stockledger",
			"listen_addresses = '*'",
		},
	}, func(config *docker.HostConfig) {
		config.AutoRemove = true
		config.RestartPolicy = docker.RestartPolicy{Name: "no"}
	})
	require.NoError(t, err, "Could not start PostgreSQL container")

	t.Cleanup(func() {
		if err := pool.Purge(resource); err != nil {
			t.Logf("Could not purge resource: %s", err)
		}
	})

	dbConfig := &db.Config{
		Host:               "localhost",
		Port:               resource.GetPort("5432/tcp"),
		User:               "test",
		Password:           "test",
		Database:           "test_stockledger",
		SSLMode:            "disable",
		MaxConnections:     5,
		MinConnections:     1,
		MaxConnLifetime:    time.Hour,
		MaxConnIdleTime:    time.Minute * 30,
		HealthCheckPeriod:  time.Minute,
		ConnectTimeout:     time.Second * 10,
		StatementCacheMode: "describe",
		EnableQueryLogging: testing.Verbose(),
	}

	var database *db.Database
	err = pool.Retry(func() error {
		var err error
		database, err = db.NewDatabase(context.Background(), dbConfig, TestLogger())
		return err
	})
	require.NoError(t, err, "Could not connect to PostgreSQL")
	t.Cleanup(database.Close)

	err = db.RunMigrationsWithRetry(context.Background(), &db.MigrationConfig{
		DatabaseURL: dbConfig.URL(),
	}, TestLogger(), 3)
	require.NoError(t, err, "Could not run migrations")

	return &TestDB{
		PgxPool:  database.Pool(),
		Database: database,
		Resource: resource,
		Pool:     pool,
		Config:   dbConfig,
	}
}

// TruncateAllTables empties the ledger tables between tests.
func TruncateAllTables(t *testing.T, pool *pgxpool.Pool) {
	t.Helper()

	_, err := pool.Exec(context.Background(), "TRUNCATE TABLE stock_movements, materials CASCADE")
	require.NoError(t, err, "Failed to truncate tables")
}

// LoadTestConfig returns a valid configuration backed by in-memory storage.
func LoadTestConfig(t *testing.T) *config.Config {
	t.Helper()

	cfg := &config.Config{
		App: config.AppConfig{
			Name:        "stockledger-test",
			Environment: "test",
			Version:     "test",
			LogLevel:    "debug",
			LogFormat:   "text",
		},
		Storage: config.StorageConfig{Driver: config.DriverMemory},
		Database: config.DatabaseConfig{
			Host:           "localhost",
			Port:           "5432",
			User:           "test",
			Password:       "test",
			Name:           "test_stockledger",
			SSLMode:        "disable",
			MaxConnections: 5,
			MinConnections: 1,
		},
		Security: config.SecurityConfig{
			RateLimitRequests: 0,
			AllowedOrigins:    []string{"*"},
			RequestIDHeader:   "X-Request-ID",
		},
		Server: config.ServerConfig{
			Host:         "localhost",
			Port:         "8080",
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 15 * time.Second,
		},
		Insights: config.InsightsConfig{FastMovingDays: 30},
	}
	require.NoError(t, cfg.Validate())
	return cfg
}

// CreateTestMaterial creates a test material with a zero damaged balance.
func CreateTestMaterial(overrides ...func(*domain.Material)) *domain.Material {
	now := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)
	m := &domain.Material{
		ID:                uuid.New(),
		SKU:               "TILE-" + uuid.NewString()[:8],
		Name:              "Porcelain Floor Tile 60x60",
		Category:          "Tiles",
		Supplier:          "TileWorks",
		UnitPrice:         decimal.RequireFromString("45.50"),
		AvailableQuantity: 100,
		ReorderLevel:      domain.DefaultReorderLevel,
		CreatedAt:         now,
		UpdatedAt:         now,
	}

	for _, override := range overrides {
		override(m)
	}

	return m
}

// CreateTestMaterials creates count materials with distinct SKUs, each one
// second newer than the last.
func CreateTestMaterials(count int) []*domain.Material {
	categories := []string{"Tiles", "Paint", "Timber", "Fixtures"}

	out := make([]*domain.Material, count)
	for i := range out {
		out[i] = CreateTestMaterial(func(m *domain.Material) {
			m.SKU = fmt.Sprintf("MAT-%03d", i+1)
			m.Name = fmt.Sprintf("Test Material %d", i+1)
			m.Category = categories[i%len(categories)]
			m.CreatedAt = m.CreatedAt.Add(time.Duration(i) * time.Second)
			m.UpdatedAt = m.CreatedAt
		})
	}
	return out
}

// FixedClock returns a clock stuck at t.
func FixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

// Clock is a manually advanced clock safe for concurrent use.
type Clock struct {
	mu  sync.Mutex
	now time.Time
}

// NewClock creates a clock starting at start.
func NewClock(start time.Time) *Clock {
	return &Clock{now: start}
}

// Now returns the current reading and ticks one millisecond so successive
// events are strictly ordered.
func (c *Clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(time.Millisecond)
	return c.now
}

// Advance moves the clock forward by d.
func (c *Clock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}
