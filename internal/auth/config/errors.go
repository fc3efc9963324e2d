package config

import "errors"

// Ошибки валидации конфигурации.
var (
	ErrUnknownStore          = errors.New("unknown store kind")
	ErrEmptySecret           = errors.New("jwt secret key must not be empty")
	ErrNonPositiveTokenTTL   = errors.New("token ttl must be positive")
	ErrEmptyAdminCredentials = errors.New("admin email and password must be set")
	ErrInvalidAdminEmail     = errors.New("admin email is not a valid address")
	ErrWeakAdminPassword     = errors.New("admin password must be 8-72 bytes with upper, lower, digit and special characters")
)
