package config

import (
	"fmt"
	"time"

	"siteauth/pkg/retry"
)

// Виды хранилища учетных записей.
const (
	StorePostgres = "postgres"
	StoreMemory   = "memory"
)

// StoreConfig выбирает хранилище учетных записей.
type StoreConfig struct {
	Kind string `yaml:"kind" env:"AUTH_STORE" env-default:"postgres"`
}

// PostgresConfig содержит настройки подключения к базе данных.
type PostgresConfig struct {
	Host           string        `yaml:"host" env:"AUTH_POSTGRES_HOST" env-default:"localhost"`
	Port           int           `yaml:"port" env:"AUTH_POSTGRES_PORT" env-default:"5432"`
	User           string        `yaml:"user" env:"AUTH_POSTGRES_USER" env-default:"postgres"`
	Password       string        `yaml:"password" env:"AUTH_POSTGRES_PASSWORD" env-default:"postgres"`
	Database       string        `yaml:"database" env:"AUTH_POSTGRES_DB" env-default:"siteauth"`
	MinConn        int           `yaml:"min_conn" env:"AUTH_POSTGRES_MIN_CONN" env-default:"1"`
	MaxConn        int           `yaml:"max_conn" env:"AUTH_POSTGRES_MAX_CONN" env-default:"10"`
	MigrationsDir  string        `yaml:"migrations_dir" env:"AUTH_MIGRATIONS_DIR" env-default:"migrations/auth"`
	ConnectRetries int           `yaml:"connect_retries" env:"AUTH_POSTGRES_CONNECT_RETRIES" env-default:"5"`
	ConnectBackoff time.Duration `yaml:"connect_backoff" env:"AUTH_POSTGRES_CONNECT_BACKOFF" env-default:"500ms"`
}

// GetDSN возвращает строку подключения к PostgreSQL.
func (p *PostgresConfig) GetDSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
		p.Host, p.Port, p.User, p.Password, p.Database)
}

// GetConnectionURL возвращает URL-строку подключения для миграций.
func (p *PostgresConfig) GetConnectionURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=disable",
		p.User, p.Password, p.Host, p.Port, p.Database)
}

// GetConnectRetry возвращает политику повторов первого подключения.
func (p *PostgresConfig) GetConnectRetry() retry.Config {
	cfg := retry.DefaultConfig()
	if p.ConnectRetries > 0 {
		cfg.MaxAttempts = p.ConnectRetries
	}
	if p.ConnectBackoff > 0 {
		cfg.InitialBackoff = p.ConnectBackoff
	}
	return cfg
}
