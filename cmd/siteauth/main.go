// Package main реализует точку входа сервиса учетных записей.
package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/go-extras/cobraflags"
	"github.com/spf13/cobra"

	"siteauth/internal/auth/config"
	"siteauth/pkg/logger"
)

// Константы для переменных окружения.
const (
	EnvLoggerMode  = "AUTH_LOGGER_MODE"
	EnvLoggerLevel = "AUTH_LOGGER_LEVEL"
)

// Константы для сообщений об ошибках.
const (
	ErrInitLogger           = "failed to initialize logger"
	ErrSyncLogger           = "failed to sync logger"
	ErrLoadConfig           = "failed to load configuration"
	ErrInitLoggerWithConfig = "failed to initialize logger with configuration settings"
)

// Константы для игнорируемых ошибок.
const (
	ErrSyncStderr = "sync /dev/stderr: invalid argument"
	ErrSyncStdout = "sync /dev/stdout: invalid argument"
)

const envFileFlag = "env-file"

var rootFlags = map[string]cobraflags.Flag{
	envFileFlag: &cobraflags.StringFlag{
		Name:  envFileFlag,
		Value: config.DefaultEnvFile,
		Usage: "Environment file loaded before reading configuration (ignored if missing)",
	},
}

func newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "siteauth",
		Short:         "Account registration, login and profile service",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runServe,
	}
	cobraflags.RegisterMap(root, rootFlags)

	for _, sub := range []*cobra.Command{newServeCommand(), newBootstrapAdminCommand()} {
		cobraflags.RegisterMap(sub, rootFlags)
		root.AddCommand(sub)
	}
	return root
}

func main() {
	log, err := logger.NewLogger(config.ParseEnvironment(os.Getenv(EnvLoggerMode)), os.Getenv(EnvLoggerLevel))
	if err != nil {
		panic(ErrInitLogger + ": " + err.Error())
	}
	logger.SetGlobalLogger(log)

	ctx := logger.NewRequestIDContext(context.Background(), "")

	exitCode := 0
	if err := newRootCommand().ExecuteContext(ctx); err != nil {
		logger.Log(ctx).Error(ctx, err.Error())
		exitCode = 1
	}

	syncLogger(logger.Log(ctx))
	os.Exit(exitCode)
}

// loadConfig читает конфигурацию и заменяет стартовый логгер настроенным.
func loadConfig(ctx context.Context) (*config.Config, error) {
	cfg, err := config.Load(ctx, rootFlags[envFileFlag].GetString())
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrLoadConfig, err)
	}

	log, err := cfg.Logging.NewLogger()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrInitLoggerWithConfig, err)
	}
	logger.SetGlobalLogger(log)

	return cfg, nil
}

func syncLogger(log *logger.Logger) {
	if err := log.Sync(); err != nil {
		errMsg := err.Error()
		if strings.Contains(errMsg, ErrSyncStderr) || strings.Contains(errMsg, ErrSyncStdout) {
			return
		}
		_, _ = fmt.Fprintf(os.Stderr, "%s: %v\n", ErrSyncLogger, err)
	}
}
