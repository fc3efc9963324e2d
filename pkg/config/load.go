// Package config загружает конфигурацию сервисов из переменных окружения
// с необязательным .env файлом.
package config

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"siteauth/pkg/logger"
)

const (
	msgLoadingConfiguration    = "loading configuration"
	msgConfigurationLoaded     = "configuration loaded successfully"
	msgEnvFileLoaded           = "environment file loaded"
	msgFailedLoadConfiguration = "failed to load configuration"

	errFailedReadEnvFile       = "failed to read environment file"
	errFailedLoadConfiguration = "failed to load configuration"

	attrService = "service"
	attrPath    = "path"
)

// Load заполняет структуру T из окружения. Если envFile существует, его значения
// добавляются в окружение, не перезаписывая уже заданные переменные.
func Load[T any](ctx context.Context, serviceName, envFile string) (*T, error) {
	log := logger.Log(ctx).With(zap.String(attrService, serviceName))
	log.Info(ctx, msgLoadingConfiguration)

	if envFile != "" {
		if _, err := os.Stat(envFile); err == nil {
			if err := godotenv.Load(envFile); err != nil {
				log.Error(ctx, errFailedReadEnvFile, zap.String(attrPath, envFile), zap.Error(err))
				return nil, fmt.Errorf("%s: %w", errFailedReadEnvFile, err)
			}
			log.Info(ctx, msgEnvFileLoaded, zap.String(attrPath, envFile))
		} else if !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%s: %w", errFailedReadEnvFile, err)
		}
	}

	var cfg T
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		log.Error(ctx, msgFailedLoadConfiguration, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errFailedLoadConfiguration, err)
	}

	log.Info(ctx, msgConfigurationLoaded)
	return &cfg, nil
}
