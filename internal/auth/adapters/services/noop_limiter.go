package services

import (
	"context"

	svc "siteauth/internal/auth/ports/services"
)

// NoopLimiter разрешает любые попытки. Используется, когда Redis отключен.
type NoopLimiter struct{}

// NewNoopLimiter создает ограничитель без ограничений.
func NewNoopLimiter() svc.AttemptLimiter {
	return NoopLimiter{}
}

func (NoopLimiter) Allow(context.Context, string) (bool, error) { return true, nil }

func (NoopLimiter) RegisterFailure(context.Context, string) error { return nil }

func (NoopLimiter) Reset(context.Context, string) error { return nil }
