// internal/pkg/config/validators.go
package config

import (
	"fmt"
	"reflect"
	"strings"
)

// maxFastMovingDays bounds the configured sales window to ten years.
const maxFastMovingDays = 3650

// Validator checks one aspect of a configuration.
type Validator interface {
	Validate(cfg *Config) error
}

// BasicValidator performs basic configuration validation
type BasicValidator struct{}

// Validate performs basic validation
func (v *BasicValidator) Validate(cfg *Config) error {
	if err := validateRequiredFields(cfg); err != nil {
		return err
	}

	switch cfg.Storage.Driver {
	case DriverPostgres:
		if cfg.Database.Host == "" {
			return fmt.Errorf("%w: database host", ErrMissingRequiredConfig)
		}
		if cfg.Database.Name == "" {
			return fmt.Errorf("%w: database name", ErrMissingRequiredConfig)
		}
		if cfg.Database.MaxConnections < cfg.Database.MinConnections {
			return fmt.Errorf("database max_connections must be >= min_connections")
		}
	case DriverMemory:
	default:
		return fmt.Errorf("storage driver must be %s or %s, got %q", DriverPostgres, DriverMemory, cfg.Storage.Driver)
	}

	if cfg.Security.RateLimitRequests < 0 {
		return fmt.Errorf("rate_limit_requests cannot be negative")
	}
	if cfg.Security.RateLimitRequests > 0 && cfg.Security.RateLimitDuration <= 0 {
		return fmt.Errorf("rate_limit_duration must be positive")
	}
	if cfg.Insights.FastMovingDays <= 0 || cfg.Insights.FastMovingDays > maxFastMovingDays {
		return fmt.Errorf("insights fast_moving_days must be between 1 and %d", maxFastMovingDays)
	}

	if cfg.Worker.RedisAddr != "" {
		if cfg.Worker.Concurrency <= 0 {
			return fmt.Errorf("worker concurrency must be positive")
		}
		if len(cfg.Worker.Queues) == 0 {
			return fmt.Errorf("worker needs at least one queue")
		}
	}

	if cfg.Server.TLSEnabled {
		if cfg.Server.TLSCertFile == "" || cfg.Server.TLSKeyFile == "" {
			return fmt.Errorf("TLS cert and key files must be provided when TLS is enabled")
		}
	}

	return nil
}

// ProductionValidator performs strict validation for production environments
type ProductionValidator struct{}

// Validate performs production-specific validation
func (v *ProductionValidator) Validate(cfg *Config) error {
	if cfg.Storage.Driver == DriverMemory {
		return fmt.Errorf("in-memory storage cannot be used in production")
	}

	if cfg.Database.Password == "" || strings.HasPrefix(cfg.Database.Password, "MISSING_") {
		return fmt.Errorf("%w: database password", ErrMissingRequiredConfig)
	}
	if cfg.Database.Password == "stockledger_dev" {
		return fmt.Errorf("default database password cannot be used in production")
	}

	if cfg.Database.SSLMode == "disable" {
		return fmt.Errorf("database SSL must be enabled in production")
	}

	if !cfg.Security.SecureHeaders {
		return fmt.Errorf("secure headers must be enabled in production")
	}

	for _, origin := range cfg.Security.AllowedOrigins {
		if origin == "*" {
			return fmt.Errorf("wildcard origin (*) not allowed in production")
		}
	}

	return nil
}

// validateRequiredFields uses reflection to check required struct tags
func validateRequiredFields(cfg any) error {
	v := reflect.ValueOf(cfg)
	if v.Kind() == reflect.Ptr {
		v = v.Elem()
	}

	return validateStruct(v, "")
}

func validateStruct(v reflect.Value, prefix string) error {
	t := v.Type()

	for i := 0; i < v.NumField(); i++ {
		field := v.Field(i)
		fieldType := t.Field(i)
		fieldName := fieldType.Name

		if prefix != "" {
			fieldName = prefix + "." + fieldName
		}

		if required := fieldType.Tag.Get("required"); required == "true" {
			if isZeroValue(field) {
				return fmt.Errorf("%w: %s", ErrMissingRequiredConfig, fieldName)
			}
		}

		if field.Kind() == reflect.Struct {
			if err := validateStruct(field, fieldName); err != nil {
				return err
			}
		}
	}

	return nil
}

func isZeroValue(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.String:
		return v.String() == "" || strings.HasPrefix(v.String(), "MISSING_")
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return v.Int() == 0
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return v.Uint() == 0
	case reflect.Float32, reflect.Float64:
		return v.Float() == 0
	case reflect.Bool:
		return !v.Bool()
	case reflect.Slice, reflect.Map:
		return v.IsNil() || v.Len() == 0
	case reflect.Ptr, reflect.Interface:
		return v.IsNil()
	default:
		return false
	}
}
