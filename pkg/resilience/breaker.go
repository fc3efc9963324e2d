// Package resilience содержит автоматический выключатель для обращений к внешним зависимостям.
package resilience

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"

	"siteauth/pkg/logger"
)

// State - состояние выключателя.
type State int

// Состояния выключателя.
const (
	StateClosed State = iota
	StateOpen
	StateHalfOpen
)

func (s State) String() string {
	switch s {
	case StateClosed:
		return "closed"
	case StateOpen:
		return "open"
	case StateHalfOpen:
		return "half-open"
	default:
		return "unknown"
	}
}

const (
	LogBreakerTripped = "circuit breaker tripped"
	LogBreakerReset   = "circuit breaker reset"
	LogBreakerProbe   = "circuit breaker allowing probe"
)

// ErrOpen возвращается, пока выключатель разомкнут.
var ErrOpen = errors.New("circuit breaker is open")

// Config задает пороги выключателя.
type Config struct {
	// FailureThreshold - число ошибок подряд, после которого выключатель размыкается.
	FailureThreshold int
	// Cooldown - время в разомкнутом состоянии до пробного запроса.
	Cooldown time.Duration
	// SuccessThreshold - число успешных пробных запросов для замыкания.
	SuccessThreshold int
}

// DefaultConfig возвращает конфигурацию по умолчанию.
func DefaultConfig() Config {
	return Config{
		FailureThreshold: 5,
		Cooldown:         10 * time.Second,
		SuccessThreshold: 1,
	}
}

// Breaker пропускает вызовы, пока зависимость отвечает, и отсекает их после серии ошибок.
type Breaker struct {
	name string
	cfg  Config
	now  func() time.Time

	mu        sync.Mutex
	state     State
	failures  int
	successes int
	probing   bool
	changedAt time.Time
}

// NewBreaker создает замкнутый выключатель.
func NewBreaker(name string, cfg Config) *Breaker {
	return newBreaker(name, cfg, time.Now)
}

func newBreaker(name string, cfg Config, now func() time.Time) *Breaker {
	if cfg.FailureThreshold <= 0 {
		cfg.FailureThreshold = DefaultConfig().FailureThreshold
	}
	if cfg.SuccessThreshold <= 0 {
		cfg.SuccessThreshold = 1
	}
	return &Breaker{name: name, cfg: cfg, now: now, state: StateClosed, changedAt: now()}
}

// Execute вызывает fn, если выключатель это позволяет, и учитывает результат.
func (b *Breaker) Execute(ctx context.Context, fn func() error) error {
	allowed, probe := b.allow(ctx)
	if !allowed {
		return ErrOpen
	}

	err := fn()
	b.record(ctx, err, probe)
	return err
}

// State возвращает текущее состояние.
func (b *Breaker) State() State {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.state
}

func (b *Breaker) log(ctx context.Context) *logger.Logger {
	return logger.Log(ctx).With(zap.String("circuit_breaker", b.name))
}

// allow сообщает, можно ли выполнить вызов и является ли он пробным.
// В полуоткрытом состоянии одновременно выполняется не больше одного пробного вызова.
func (b *Breaker) allow(ctx context.Context) (allowed, probe bool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	switch b.state {
	case StateClosed:
		return true, false
	case StateOpen:
		if b.now().Sub(b.changedAt) < b.cfg.Cooldown {
			return false, false
		}
		b.setState(StateHalfOpen)
		b.log(ctx).Info(ctx, LogBreakerProbe)
	}

	if b.probing {
		return false, false
	}
	b.probing = true
	return true, true
}

func (b *Breaker) record(ctx context.Context, err error, probe bool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if probe {
		b.probing = false
	}

	if err != nil {
		b.failures++
		if (probe && b.state == StateHalfOpen) || (b.state == StateClosed && b.failures >= b.cfg.FailureThreshold) {
			b.log(ctx).Warn(ctx, LogBreakerTripped, zap.Int("failures", b.failures), zap.Error(err))
			b.setState(StateOpen)
		}
		return
	}

	switch {
	case b.state == StateClosed:
		b.failures = 0
	case probe && b.state == StateHalfOpen:
		b.successes++
		if b.successes >= b.cfg.SuccessThreshold {
			b.setState(StateClosed)
			b.log(ctx).Info(ctx, LogBreakerReset)
		}
	}
}

// setState вызывается под mu.
func (b *Breaker) setState(s State) {
	b.state = s
	b.changedAt = b.now()
	b.failures = 0
	b.successes = 0
	b.probing = false
}
