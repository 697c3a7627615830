// internal/pkg/logger/logger_test.go
package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeLine(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	var entry map[string]any
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &entry))
	return entry
}

func TestNew_JSON(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, Options{Level: "info", Format: "json", ServiceName: "stockledger-api", Environment: "test"})

	ctx := context.WithValue(context.Background(), ContextKeyRequestID, "req-1")
	ctx = context.WithValue(ctx, ContextKeyStatusCode, 201)
	ctx = context.WithValue(ctx, ContextKeyDuration, 1500*time.Microsecond)

	log.InfoContext(ctx, "movement recorded", slog.String("sku", "TILE-001"))

	entry := decodeLine(t, &buf)
	assert.Equal(t, "INFO", entry["severity"])
	assert.Equal(t, "movement recorded", entry["msg"])
	assert.Equal(t, "req-1", entry["request_id"])
	assert.EqualValues(t, 201, entry["status_code"])
	assert.EqualValues(t, 1.5, entry["duration_ms"])
	assert.Equal(t, "TILE-001", entry["sku"])
	assert.Equal(t, "stockledger-api", entry["service"])
	assert.Equal(t, "test", entry["env"])
}

func TestNew_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, Options{Level: "warn", Format: "json"})

	log.Info("dropped")
	assert.Zero(t, buf.Len())

	log.Warn("kept")
	assert.Contains(t, buf.String(), "kept")
}

func TestSanitizationHandler(t *testing.T) {
	tests := []struct {
		name     string
		log      func(*slog.Logger)
		key      string
		expected string
	}{
		{
			name:     "blacklisted_attribute",
			log:      func(l *slog.Logger) { l.Info("connect", slog.String("db_password", "hunter2")) },
			key:      "db_password",
			expected: redacted,
		},
		{
			name:     "inline_secret",
			log:      func(l *slog.Logger) { l.Info("failed", slog.String("error", "token=abc123 rejected")) },
			key:      "error",
			expected: "token=" + redacted + " rejected",
		},
		{
			name:     "dsn_credentials",
			log:      func(l *slog.Logger) { l.Info("dial", slog.String("dsn", "postgresql://app:s3cr3t@db:5432/stock")) },
			key:      "dsn",
			expected: "postgresql://app:" + redacted + "@db:5432/stock",
		},
		{
			name:     "email_address",
			log:      func(l *slog.Logger) { l.Info("sale", slog.String("customer", "jo@example.com")) },
			key:      "customer",
			expected: redacted,
		},
		{
			name:     "plain_values_untouched",
			log:      func(l *slog.Logger) { l.Info("sale", slog.String("reference", "INV-1001")) },
			key:      "reference",
			expected: "INV-1001",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			tt.log(New(&buf, Options{Format: "json"}))

			entry := decodeLine(t, &buf)
			assert.Equal(t, tt.expected, entry[tt.key])
		})
	}
}

func TestPrettyTextHandler(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, Options{Level: "debug", Format: "text"}).With(slog.String("component", "ledger"))

	log.Debug("posting", slog.Int64("quantity", 5))

	line := buf.String()
	assert.Contains(t, line, "DEBUG")
	assert.Contains(t, line, "posting")
	assert.Contains(t, line, "component\033[0m=ledger")
	assert.Contains(t, line, "quantity\033[0m=5")
	assert.True(t, strings.HasSuffix(line, "\n"))
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, ParseLevel("DEBUG"))
	assert.Equal(t, slog.LevelWarn, ParseLevel("warning"))
	assert.Equal(t, slog.LevelError, ParseLevel("error"))
	assert.Equal(t, slog.LevelInfo, ParseLevel("verbose"))
}

func TestFromContext(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, Options{Format: "json"})

	assert.Same(t, log, FromContext(WithLogger(context.Background(), log)))
	assert.Same(t, slog.Default(), FromContext(context.Background()))
}
