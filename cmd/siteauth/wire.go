package main

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"siteauth/internal/auth/adapters/memory"
	"siteauth/internal/auth/adapters/postgres"
	limiter "siteauth/internal/auth/adapters/redis"
	"siteauth/internal/auth/adapters/services"
	"siteauth/internal/auth/app"
	"siteauth/internal/auth/config"
	"siteauth/internal/auth/db"
	"siteauth/internal/auth/ports/api"
	"siteauth/internal/auth/ports/repositories"
	svc "siteauth/internal/auth/ports/services"
	redisdb "siteauth/pkg/db/redis"
	"siteauth/pkg/logger"
	"siteauth/pkg/resilience"
)

const (
	LogStoreMemory        = "using in-memory account store, data is lost on restart"
	LogStorePostgres      = "using postgres account store"
	LogSchemaReady        = "account schema is ready"
	LogLimiterDisabled    = "login attempt limiter disabled"
	LogLimiterEnabled     = "login attempt limiter connected to redis"
	LogLimiterUnavailable = "redis unavailable, login attempts are not limited"

	ErrInitDatabase  = "failed to initialize database"
	ErrEnsureSchema  = "failed to ensure account schema"
	ErrCloseDatabase = "failed to close database"
	ErrCloseRedis    = "failed to close redis"
)

// deps - собранные зависимости процесса.
type deps struct {
	repo     repositories.UserRepository
	accounts api.AccountUseCase

	database *db.DB
	redis    *redisdb.Client
}

// buildDeps подключает хранилище, ограничитель и сервис учетных записей.
func buildDeps(ctx context.Context, cfg *config.Config) (*deps, error) {
	log := logger.Log(ctx)
	d := &deps{}

	switch cfg.Store.Kind {
	case config.StoreMemory:
		log.Warn(ctx, LogStoreMemory)
		d.repo = memory.NewUserRepository()
	default:
		database, err := db.New(ctx, &cfg.Postgres)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", ErrInitDatabase, err)
		}
		log.Info(ctx, LogStorePostgres)
		d.database = database
		d.repo = postgres.NewUserRepository(database.Pool())
	}

	if err := d.repo.EnsureSchema(ctx); err != nil {
		return nil, errors.Join(fmt.Errorf("%s: %w", ErrEnsureSchema, err), d.close(ctx))
	}
	log.Debug(ctx, LogSchemaReady)

	factory := services.NewServiceFactory(cfg.JWT.ToDomain(), cfg.JWT.BCryptCost)
	d.accounts = app.NewAccountUseCase(
		d.repo,
		factory.PasswordService(),
		factory.TokenService(),
		cfg.Account.ToApp(),
		app.WithAttemptLimiter(d.buildLimiter(ctx, &cfg.Redis)),
	)

	return d, nil
}

func (d *deps) buildLimiter(ctx context.Context, cfg *config.RedisConfig) svc.AttemptLimiter {
	log := logger.Log(ctx)

	if !cfg.Enabled {
		log.Info(ctx, LogLimiterDisabled)
		return services.NewNoopLimiter()
	}

	client, err := redisdb.NewClient(ctx, cfg.ToClient())
	if err != nil {
		log.Warn(ctx, LogLimiterUnavailable, zap.Error(err))
		return services.NewNoopLimiter()
	}

	log.Info(ctx, LogLimiterEnabled,
		zap.String("address", cfg.ToClient().Address()),
		zap.Int64("max_attempts", cfg.MaxAttempts),
		zap.Duration("window", cfg.Window))
	d.redis = client
	breaker := resilience.NewBreaker("redis-limiter", cfg.ToBreaker())
	return limiter.NewAttemptLimiter(limiter.NewGuardedCounter(client, breaker), cfg.ToLimiter())
}

// close освобождает подключения к хранилищам.
func (d *deps) close(ctx context.Context) error {
	var errs []error
	if d.database != nil {
		if err := d.database.Close(ctx); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", ErrCloseDatabase, err))
		}
	}
	if d.redis != nil {
		if err := d.redis.Close(); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", ErrCloseRedis, err))
		}
	}
	return errors.Join(errs...)
}
