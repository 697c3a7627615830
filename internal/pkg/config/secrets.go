// internal/pkg/config/secrets.go
package config

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"
)

// Secret keys overlaid onto the configuration.
const (
	SecretDBPassword         = "DB_PASSWORD"
	SecretAWSAccessKeyID     = "AWS_ACCESS_KEY_ID"
	SecretAWSSecretAccessKey = "AWS_SECRET_ACCESS_KEY"
)

// SecretsProvider resolves sensitive values.
type SecretsProvider interface {
	GetSecret(ctx context.Context, key string) (string, error)
	GetSecrets(ctx context.Context, keys []string) (map[string]string, error)
	RefreshSecrets(ctx context.Context) error
}

// secretsAPI is the part of the Secrets Manager client we use.
type secretsAPI interface {
	GetSecretValue(ctx context.Context, params *secretsmanager.GetSecretValueInput, optFns ...func(*secretsmanager.Options)) (*secretsmanager.GetSecretValueOutput, error)
}

// NewSecretsProvider returns AWS Secrets Manager when a secret name is
// configured and the environment otherwise.
func NewSecretsProvider(ctx context.Context, cfg AWSConfig, logger *slog.Logger) (SecretsProvider, error) {
	if cfg.SecretsName == "" {
		return NewEnvSecretsManager(), nil
	}
	return NewAWSSecretsManager(ctx, cfg.Region, cfg.SecretsName, logger)
}

// ApplySecrets overrides credentials with values from provider.
func (c *Config) ApplySecrets(ctx context.Context, provider SecretsProvider) error {
	secrets, err := provider.GetSecrets(ctx, []string{
		SecretDBPassword,
		SecretAWSAccessKeyID,
		SecretAWSSecretAccessKey,
	})
	if err != nil {
		return err
	}

	if v, ok := secrets[SecretDBPassword]; ok && v != "" {
		c.Database.Password = v
	}
	if v, ok := secrets[SecretAWSAccessKeyID]; ok && v != "" {
		c.AWS.AccessKeyID = v
	}
	if v, ok := secrets[SecretAWSSecretAccessKey]; ok && v != "" {
		c.AWS.SecretAccessKey = v
	}
	return nil
}

// AWSSecretsManager implements AWS Secrets Manager integration
type AWSSecretsManager struct {
	client     secretsAPI
	secretName string
	cache      map[string]string
	cacheMu    sync.RWMutex
	lastFetch  time.Time
	ttl        time.Duration
	logger     *slog.Logger
}

// NewAWSSecretsManager creates a new AWS Secrets Manager client
func NewAWSSecretsManager(ctx context.Context, region, secretName string, logger *slog.Logger) (*AWSSecretsManager, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	return newAWSSecretsManager(secretsmanager.NewFromConfig(cfg), secretName, logger), nil
}

func newAWSSecretsManager(client secretsAPI, secretName string, logger *slog.Logger) *AWSSecretsManager {
	return &AWSSecretsManager{
		client:     client,
		secretName: secretName,
		cache:      make(map[string]string),
		ttl:        5 * time.Minute,
		logger:     logger.With(slog.String("component", "secrets")),
	}
}

// GetSecret retrieves a single secret
func (sm *AWSSecretsManager) GetSecret(ctx context.Context, key string) (string, error) {
	secrets, err := sm.GetSecrets(ctx, []string{key})
	if err != nil {
		return "", err
	}

	val, ok := secrets[key]
	if !ok {
		return "", fmt.Errorf("%w: secret key %s", ErrMissingRequiredConfig, key)
	}

	return val, nil
}

// GetSecrets retrieves multiple secrets. The whole secret document is
// cached for the TTL.
func (sm *AWSSecretsManager) GetSecrets(ctx context.Context, keys []string) (map[string]string, error) {
	sm.cacheMu.RLock()
	if time.Since(sm.lastFetch) < sm.ttl && len(sm.cache) > 0 {
		cached := pick(sm.cache, keys)
		sm.cacheMu.RUnlock()
		sm.logger.DebugContext(ctx, "returning cached secrets")
		return cached, nil
	}
	sm.cacheMu.RUnlock()

	sm.logger.InfoContext(ctx, "fetching secrets from AWS Secrets Manager",
		slog.String("secret_name", sm.secretName))

	result, err := sm.client.GetSecretValue(ctx, &secretsmanager.GetSecretValueInput{
		SecretId:     aws.String(sm.secretName),
		VersionStage: aws.String("AWSCURRENT"),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get secret value: %w", err)
	}
	if result.SecretString == nil {
		return nil, fmt.Errorf("secret %s has no string value", sm.secretName)
	}

	var secretData map[string]string
	if err := json.Unmarshal([]byte(*result.SecretString), &secretData); err != nil {
		return nil, fmt.Errorf("failed to parse secret JSON: %w", err)
	}

	sm.cacheMu.Lock()
	sm.cache = secretData
	sm.lastFetch = time.Now()
	sm.cacheMu.Unlock()

	filtered := pick(secretData, keys)
	for _, key := range keys {
		if _, ok := filtered[key]; !ok {
			sm.logger.DebugContext(ctx, "secret key not found in AWS Secrets Manager",
				slog.String("key", key))
		}
	}

	return filtered, nil
}

// RefreshSecrets refreshes the secrets cache
func (sm *AWSSecretsManager) RefreshSecrets(ctx context.Context) error {
	sm.cacheMu.Lock()
	sm.cache = make(map[string]string)
	sm.lastFetch = time.Time{}
	sm.cacheMu.Unlock()

	_, err := sm.GetSecrets(ctx, []string{})
	return err
}

func pick(from map[string]string, keys []string) map[string]string {
	out := make(map[string]string, len(keys))
	for _, key := range keys {
		if val, ok := from[key]; ok {
			out[key] = val
		}
	}
	return out
}

// EnvSecretsManager implements secrets management using environment variables
type EnvSecretsManager struct{}

// NewEnvSecretsManager creates a new environment-based secrets manager
func NewEnvSecretsManager() *EnvSecretsManager {
	return &EnvSecretsManager{}
}

// GetSecret retrieves a secret from environment variables
func (em *EnvSecretsManager) GetSecret(_ context.Context, key string) (string, error) {
	val := os.Getenv(key)
	if val == "" {
		return "", fmt.Errorf("%w: environment variable %s", ErrMissingRequiredConfig, key)
	}
	return val, nil
}

// GetSecrets retrieves multiple secrets from environment variables
func (em *EnvSecretsManager) GetSecrets(_ context.Context, keys []string) (map[string]string, error) {
	secrets := make(map[string]string)
	for _, key := range keys {
		if val := os.Getenv(key); val != "" {
			secrets[key] = val
		}
	}
	return secrets, nil
}

// RefreshSecrets is a no-op for environment variables
func (em *EnvSecretsManager) RefreshSecrets(context.Context) error {
	return nil
}
