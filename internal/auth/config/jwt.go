package config

import (
	"time"

	"siteauth/internal/auth/domain/services"
)

// JWTConfig содержит настройки для JWT токенов.
type JWTConfig struct {
	SecretKey  string        `yaml:"secret_key" env:"AUTH_JWT_SECRET_KEY" env-default:"super-secret-key-change-me-in-production"`
	TokenTTL   time.Duration `yaml:"token_ttl" env:"AUTH_JWT_TOKEN_TTL" env-default:"2h"`
	Issuer     string        `yaml:"issuer" env:"AUTH_JWT_ISSUER" env-default:"siteauth"`
	BCryptCost int           `yaml:"bcrypt_cost" env:"AUTH_JWT_BCRYPT_COST" env-default:"10"`
}

// ToDomain преобразует настройки в services.JWTConfig.
func (c *JWTConfig) ToDomain() services.JWTConfig {
	return services.JWTConfig{
		SecretKey: []byte(c.SecretKey),
		TokenTTL:  c.TokenTTL,
		Issuer:    c.Issuer,
	}
}
