// Package db подключает сервис учетных записей к Postgres.
package db

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"siteauth/internal/auth/config"
	"siteauth/pkg/db/postgres"
	"siteauth/pkg/logger"
)

// Константы для сообщений логгера.
const (
	LogDBInitializing    = "initializing account database"
	LogDBInitialized     = "account database initialized successfully"
	LogMigrationStarting = "starting database migrations for account service"
)

// Константы для сообщений об ошибках.
const (
	ErrDBMigrations = "failed to apply account database migrations"
	ErrDBConnection = "failed to connect to account database"
	ErrGetPath      = "failed to get path"
)

// DB представляет соединение с базой данных сервиса учетных записей.
type DB struct {
	database *postgres.Database
}

// MigrationsURL преобразует каталог миграций в URL источника file://.
func MigrationsURL(migrationsDir string) (string, error) {
	if filepath.IsAbs(migrationsDir) {
		return "file://" + migrationsDir, nil
	}
	absPath, err := filepath.Abs(migrationsDir)
	if err != nil {
		return "", fmt.Errorf("%s: %w", ErrGetPath, err)
	}
	return "file://" + absPath, nil
}

// New применяет миграции и открывает пул соединений.
func New(ctx context.Context, cfg *config.PostgresConfig) (*DB, error) {
	log := logger.Log(ctx)

	log.Info(ctx, LogDBInitializing,
		zap.String("host", cfg.Host),
		zap.Int("port", cfg.Port),
		zap.String("database", cfg.Database),
		zap.Int("min_conn", cfg.MinConn),
		zap.Int("max_conn", cfg.MaxConn))

	migrationsPath, err := MigrationsURL(cfg.MigrationsDir)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrDBMigrations, err)
	}

	log.Info(ctx, LogMigrationStarting, zap.String("migrations_path", migrationsPath))
	if err := postgres.MigrateDSN(ctx, cfg.GetConnectionURL(), migrationsPath); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrDBMigrations, err)
	}

	database, err := postgres.New(ctx, postgres.Options{
		DSN:      cfg.GetDSN(),
		MinConns: cfg.MinConn,
		MaxConns: cfg.MaxConn,
		Connect:  cfg.GetConnectRetry(),
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrDBConnection, err)
	}

	log.Info(ctx, LogDBInitialized)

	return &DB{database: database}, nil
}

// Close закрывает соединение с базой данных.
func (db *DB) Close(ctx context.Context) error {
	db.database.Close(ctx)
	return nil
}

// Pool возвращает пул соединений с базой данных.
func (db *DB) Pool() *pgxpool.Pool {
	return db.database.Pool()
}

// Ping проверяет соединение с базой данных.
func (db *DB) Ping(ctx context.Context) error {
	return db.database.Ping(ctx)
}
