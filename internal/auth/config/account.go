package config

import (
	"time"

	"siteauth/internal/auth/app"
)

// AccountConfig содержит настройки учетных записей и администратора по умолчанию.
type AccountConfig struct {
	AdminEmail          string        `yaml:"admin_email" env:"AUTH_ADMIN_EMAIL" env-default:"admin@example.com"`
	AdminPassword       string        `yaml:"admin_password" env:"AUTH_ADMIN_PASSWORD" env-default:"ChangeMe123!"`
	TemporaryAccountTTL time.Duration `yaml:"temporary_account_ttl" env:"AUTH_TEMPORARY_ACCOUNT_TTL" env-default:"336h"`
}

// ToApp преобразует настройки в app.AccountConfig.
func (c *AccountConfig) ToApp() app.AccountConfig {
	return app.AccountConfig{
		AdminEmail:          c.AdminEmail,
		AdminPassword:       c.AdminPassword,
		TemporaryAccountTTL: c.TemporaryAccountTTL,
	}
}
