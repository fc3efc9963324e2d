package config

import (
	"strings"

	"siteauth/pkg/logger"
)

// LoggingConfig содержит настройки логирования.
type LoggingConfig struct {
	Level string `yaml:"level" env:"AUTH_LOGGER_LEVEL" env-default:"info"`
	Mode  string `yaml:"mode" env:"AUTH_LOGGER_MODE" env-default:"development"`
}

// ParseEnvironment переводит строку режима в logger.Environment.
// Все, кроме "production", считается разработкой.
func ParseEnvironment(mode string) logger.Environment {
	if strings.EqualFold(strings.TrimSpace(mode), string(logger.Production)) {
		return logger.Production
	}
	return logger.Development
}

// GetEnvironment получает строку режима в logger.Environment.
func (l *LoggingConfig) GetEnvironment() logger.Environment {
	return ParseEnvironment(l.Mode)
}

// NewLogger создает логгер по настройкам.
func (l *LoggingConfig) NewLogger() (*logger.Logger, error) {
	return logger.NewLogger(l.GetEnvironment(), l.Level)
}
