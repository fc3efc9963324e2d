package services

import (
	"time"

	"siteauth/internal/auth/domain/entities"
)

// JWTConfig содержит настройки выпуска токенов.
type JWTConfig struct {
	SecretKey []byte
	TokenTTL  time.Duration
	Issuer    string
}

// TokenClaims - данные, которые несет токен доступа.
// AccountExpiresAt копирует срок учетной записи на момент выпуска и не заменяет
// проверку по хранилищу.
type TokenClaims struct {
	UserID           string
	Email            string
	Role             entities.Role
	AccountExpiresAt *time.Time
	IssuedAt         time.Time
	ExpiresAt        time.Time
}
