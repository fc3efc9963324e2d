package services

import (
	"context"
	"time"

	"siteauth/internal/auth/domain/entities"
	"siteauth/internal/auth/domain/services"
)

// TokenService выпускает и проверяет токены доступа.
type TokenService interface {
	Issue(ctx context.Context, user *entities.User) (string, time.Time, error)

	// Verify возвращает ErrInvalidToken для поврежденных токенов и ErrTokenExpired
	// для просроченных. К хранилищу не обращается.
	Verify(ctx context.Context, token string) (*services.TokenClaims, error)
}
