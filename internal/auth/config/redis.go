package config

import (
	"time"

	limiter "siteauth/internal/auth/adapters/redis"
	redisdb "siteauth/pkg/db/redis"
	"siteauth/pkg/resilience"
)

// RedisConfig представляет конфигурацию Redis для ограничения попыток входа.
type RedisConfig struct {
	Enabled     bool          `yaml:"enabled" env:"AUTH_REDIS_ENABLED" env-default:"false"`
	Host        string        `yaml:"host" env:"AUTH_REDIS_HOST" env-default:"localhost"`
	Port        int           `yaml:"port" env:"AUTH_REDIS_PORT" env-default:"6379"`
	Password    string        `yaml:"password" env:"AUTH_REDIS_PASSWORD" env-default:""`
	DB          int           `yaml:"db" env:"AUTH_REDIS_DB" env-default:"0"`
	PoolSize    int           `yaml:"pool_size" env:"AUTH_REDIS_POOL_SIZE" env-default:"10"`
	Timeout     time.Duration `yaml:"timeout" env:"AUTH_REDIS_TIMEOUT" env-default:"3s"`
	MaxAttempts int64         `yaml:"max_attempts" env:"AUTH_LOGIN_MAX_ATTEMPTS" env-default:"5"`
	Window      time.Duration `yaml:"window" env:"AUTH_LOGIN_WINDOW" env-default:"15m"`

	BreakerThreshold int           `yaml:"breaker_threshold" env:"AUTH_REDIS_BREAKER_THRESHOLD" env-default:"5"`
	BreakerCooldown  time.Duration `yaml:"breaker_cooldown" env:"AUTH_REDIS_BREAKER_COOLDOWN" env-default:"30s"`
}

// ToClient возвращает параметры подключения.
func (c *RedisConfig) ToClient() *redisdb.Config {
	return &redisdb.Config{
		Host:     c.Host,
		Port:     c.Port,
		Password: c.Password,
		DB:       c.DB,
		PoolSize: c.PoolSize,
		Timeout:  c.Timeout,
	}
}

// ToLimiter возвращает параметры ограничителя попыток.
func (c *RedisConfig) ToLimiter() limiter.LimiterConfig {
	return limiter.LimiterConfig{MaxAttempts: c.MaxAttempts, Window: c.Window}
}

// ToBreaker возвращает параметры выключателя для обращений к Redis.
func (c *RedisConfig) ToBreaker() resilience.Config {
	return resilience.Config{
		FailureThreshold: c.BreakerThreshold,
		Cooldown:         c.BreakerCooldown,
		SuccessThreshold: 1,
	}
}
