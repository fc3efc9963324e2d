// Package config содержит конфигурацию сервиса учетных записей.
package config

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"siteauth/internal/auth/domain/credentials"
	"siteauth/internal/auth/domain/services"
	pkgconfig "siteauth/pkg/config"
	"siteauth/pkg/logger"
)

// Константы ошибок и сообщений для конфигурации.
const (
	ServiceName = "siteauth"

	// DefaultEnvFile читается, если существует.
	DefaultEnvFile = ".env"

	LogConfigLoaded     = "Configuration loaded successfully"
	ErrFailedLoadConfig = "Failed to load configuration"
	ErrInvalidConfig    = "Invalid configuration"
)

// Config представляет полную конфигурацию приложения.
type Config struct {
	Store    StoreConfig    `yaml:"store"`
	Postgres PostgresConfig `yaml:"postgres"`
	HTTP     HTTPConfig     `yaml:"http"`
	JWT      JWTConfig      `yaml:"jwt"`
	Account  AccountConfig  `yaml:"account"`
	Redis    RedisConfig    `yaml:"redis"`
	Logging  LoggingConfig  `yaml:"logging"`
	Shutdown ShutdownConfig `yaml:"shutdown"`
}

// Load загружает конфигурацию из переменных окружения и файла envFile.
func Load(ctx context.Context, envFile string) (*Config, error) {
	log := logger.Log(ctx)

	cfg, err := pkgconfig.Load[Config](ctx, ServiceName, envFile)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrFailedLoadConfig, err)
	}

	if err := cfg.Validate(); err != nil {
		log.Error(ctx, ErrInvalidConfig, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", ErrInvalidConfig, err)
	}

	log.Info(ctx, LogConfigLoaded,
		zap.String("store", cfg.Store.Kind),
		zap.String("postgres_host", cfg.Postgres.Host),
		zap.Int("postgres_port", cfg.Postgres.Port),
		zap.String("http_address", cfg.HTTP.GetAddress()),
		zap.Bool("redis_enabled", cfg.Redis.Enabled),
		zap.Duration("token_ttl", cfg.JWT.TokenTTL),
		zap.Duration("temporary_account_ttl", cfg.Account.TemporaryAccountTTL),
		zap.String("log_level", cfg.Logging.Level),
		zap.String("log_mode", cfg.Logging.Mode),
		zap.Duration("shutdown_timeout", cfg.Shutdown.Timeout))

	return cfg, nil
}

// Validate проверяет значения, для которых нет безопасного значения по умолчанию.
func (c *Config) Validate() error {
	if c.Store.Kind != StorePostgres && c.Store.Kind != StoreMemory {
		return fmt.Errorf("%w: %q", ErrUnknownStore, c.Store.Kind)
	}
	if c.JWT.SecretKey == "" {
		return ErrEmptySecret
	}
	if c.JWT.TokenTTL <= 0 {
		return ErrNonPositiveTokenTTL
	}
	if c.Account.AdminEmail == "" || c.Account.AdminPassword == "" {
		return ErrEmptyAdminCredentials
	}
	if !credentials.ValidEmail(credentials.NormalizeEmail(c.Account.AdminEmail)) {
		return ErrInvalidAdminEmail
	}
	if !credentials.ValidatePassword(c.Account.AdminPassword) || len(c.Account.AdminPassword) > services.MaxPasswordBytes {
		return ErrWeakAdminPassword
	}
	return nil
}
