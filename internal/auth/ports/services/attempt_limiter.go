package services

import "context"

// AttemptLimiter ограничивает число неудачных попыток входа по ключу.
type AttemptLimiter interface {
	Allow(ctx context.Context, key string) (bool, error)

	RegisterFailure(ctx context.Context, key string) error

	Reset(ctx context.Context, key string) error
}
