// Package api определяет входные порты сервиса учетных записей.
package api

import (
	"context"

	"siteauth/internal/auth/domain/entities"
	"siteauth/internal/auth/domain/services"
)

// AccountTypeTemporary - значение AccountType для временной учетной записи.
const AccountTypeTemporary = "temporary"

// RegisterInput содержит данные регистрации.
// DateOfBirth - дата в формате YYYY-MM-DD. ExpiresAt необязателен и учитывается
// только для временной учетной записи (RFC3339 или YYYY-MM-DD).
type RegisterInput struct {
	FirstName       string
	LastName        string
	Email           string
	DateOfBirth     string
	Phone           string
	Password        string
	ConfirmPassword string
	AccountType     string
	ExpiresAt       string
}

// AccountUseCase определяет операции жизненного цикла учетной записи.
type AccountUseCase interface {
	Register(ctx context.Context, in RegisterInput) (*services.AuthResult, error)

	Login(ctx context.Context, email, password string) (*services.AuthResult, error)

	GetProfile(ctx context.Context, token string) (*entities.Profile, error)

	// EnsureAdminBootstrap создает администратора, если его еще нет. Вызывается при старте.
	EnsureAdminBootstrap(ctx context.Context) error
}
