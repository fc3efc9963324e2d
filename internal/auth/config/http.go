package config

import (
	"fmt"
	"time"
)

// HTTPConfig представляет конфигурацию HTTP сервера.
type HTTPConfig struct {
	Host         string        `yaml:"host" env:"AUTH_HTTP_HOST" env-default:"0.0.0.0"`
	Port         int           `yaml:"port" env:"AUTH_HTTP_PORT" env-default:"3001"`
	ReadTimeout  time.Duration `yaml:"read_timeout" env:"AUTH_HTTP_READ_TIMEOUT" env-default:"5s"`
	WriteTimeout time.Duration `yaml:"write_timeout" env:"AUTH_HTTP_WRITE_TIMEOUT" env-default:"10s"`
	BodyLimit    int           `yaml:"body_limit" env:"AUTH_HTTP_BODY_LIMIT" env-default:"65536"`
}

// GetAddress возвращает адрес HTTP сервера.
func (c *HTTPConfig) GetAddress() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}
