package redis

import (
	"context"
	"time"

	"siteauth/pkg/resilience"
)

// GuardedCounter пропускает обращения к счетчикам через выключатель, чтобы недоступный
// Redis не задерживал каждый вход на время таймаута.
type GuardedCounter struct {
	counter Counter
	breaker *resilience.Breaker
}

// NewGuardedCounter оборачивает counter выключателем.
func NewGuardedCounter(counter Counter, breaker *resilience.Breaker) *GuardedCounter {
	return &GuardedCounter{counter: counter, breaker: breaker}
}

// IncrWithTTL реализует Counter.
func (g *GuardedCounter) IncrWithTTL(ctx context.Context, key string, ttl time.Duration) (int64, error) {
	var n int64
	err := g.breaker.Execute(ctx, func() error {
		var err error
		n, err = g.counter.IncrWithTTL(ctx, key, ttl)
		return err
	})
	return n, err
}

// GetInt реализует Counter.
func (g *GuardedCounter) GetInt(ctx context.Context, key string) (int64, error) {
	var n int64
	err := g.breaker.Execute(ctx, func() error {
		var err error
		n, err = g.counter.GetInt(ctx, key)
		return err
	})
	return n, err
}

// Delete реализует Counter.
func (g *GuardedCounter) Delete(ctx context.Context, keys ...string) error {
	return g.breaker.Execute(ctx, func() error {
		return g.counter.Delete(ctx, keys...)
	})
}
