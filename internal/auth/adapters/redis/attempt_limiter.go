package redis

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	svc "siteauth/internal/auth/ports/services"
	"siteauth/pkg/logger"
)

const keyPrefix = "siteauth:login-failures:"

// Counter - операции над счетчиками, которые нужны ограничителю.
type Counter interface {
	IncrWithTTL(ctx context.Context, key string, ttl time.Duration) (int64, error)
	GetInt(ctx context.Context, key string) (int64, error)
	Delete(ctx context.Context, keys ...string) error
}

// LimiterConfig задает окно и порог неудачных попыток.
type LimiterConfig struct {
	MaxAttempts int64
	Window      time.Duration
}

// AttemptLimiter считает неудачные входы в Redis. Окно начинается с первой неудачи.
type AttemptLimiter struct {
	counter Counter
	cfg     LimiterConfig
}

// NewAttemptLimiter создает ограничитель попыток входа.
func NewAttemptLimiter(counter Counter, cfg LimiterConfig) svc.AttemptLimiter {
	return &AttemptLimiter{counter: counter, cfg: cfg}
}

func counterKey(key string) string {
	return keyPrefix + strings.ToLower(strings.TrimSpace(key))
}

// Allow сообщает, не исчерпан ли лимит неудачных попыток для key.
func (l *AttemptLimiter) Allow(ctx context.Context, key string) (bool, error) {
	if l.cfg.MaxAttempts <= 0 {
		return true, nil
	}

	failures, err := l.counter.GetInt(ctx, counterKey(key))
	if err != nil {
		return false, fmt.Errorf("reading login failures: %w", err)
	}

	return failures < l.cfg.MaxAttempts, nil
}

// RegisterFailure учитывает неудачную попытку.
func (l *AttemptLimiter) RegisterFailure(ctx context.Context, key string) error {
	failures, err := l.counter.IncrWithTTL(ctx, counterKey(key), l.cfg.Window)
	if err != nil {
		return fmt.Errorf("registering login failure: %w", err)
	}

	if l.cfg.MaxAttempts > 0 && failures == l.cfg.MaxAttempts {
		logger.Log(ctx).With(zap.String("limiter", "login")).
			Warn(ctx, "login attempts exhausted", zap.Duration("window", l.cfg.Window))
	}
	return nil
}

// Reset сбрасывает счетчик после успешного входа.
func (l *AttemptLimiter) Reset(ctx context.Context, key string) error {
	if err := l.counter.Delete(ctx, counterKey(key)); err != nil {
		return fmt.Errorf("resetting login failures: %w", err)
	}
	return nil
}
