// Package shutdown реализует корректное завершение приложения по SIGINT/SIGTERM.
package shutdown

import (
	"context"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"go.uber.org/zap"

	"siteauth/pkg/logger"
)

// Константы для логирования.
const (
	LogShutdownStarted  = "shutdown started"
	LogShutdownTimedOut = "shutdown timed out, some hooks did not finish"
	LogHookFailed       = "shutdown hook failed"
)

// Hook освобождает ресурс в пределах переданного контекста.
type Hook func(ctx context.Context) error

// Wait блокируется до SIGINT/SIGTERM или отмены ctx, затем параллельно выполняет hooks,
// ограничивая их общим timeout.
func Wait(ctx context.Context, timeout time.Duration, hooks ...Hook) {
	sigCtx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	<-sigCtx.Done()

	log := logger.Log(ctx)
	log.Info(ctx, LogShutdownStarted, zap.Duration("timeout", timeout))

	hookCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), timeout)
	defer cancel()

	var wg sync.WaitGroup
	for i, hook := range hooks {
		wg.Add(1)
		go func(idx int, fn Hook) {
			defer wg.Done()
			if err := fn(hookCtx); err != nil {
				log.Warn(hookCtx, LogHookFailed, zap.Int("hook", idx), zap.Error(err))
			}
		}(i, hook)
	}

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-hookCtx.Done():
		log.Warn(ctx, LogShutdownTimedOut)
	}
}
