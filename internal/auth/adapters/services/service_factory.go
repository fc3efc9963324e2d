// Package services содержит адаптеры паролей, токенов и ограничения попыток входа.
package services

import (
	"siteauth/internal/auth/domain/services"
	svc "siteauth/internal/auth/ports/services"
)

// ServiceFactory создает сервисы паролей и токенов из одной конфигурации.
type ServiceFactory struct {
	passwordService svc.PasswordService
	tokenService    svc.TokenService
}

// NewServiceFactory создает фабрику сервисов.
func NewServiceFactory(jwtConfig services.JWTConfig, bcryptCost int) *ServiceFactory {
	return &ServiceFactory{
		passwordService: NewBcrypt(bcryptCost),
		tokenService:    NewJWT(jwtConfig),
	}
}

// PasswordService возвращает сервис для работы с паролями.
func (f *ServiceFactory) PasswordService() svc.PasswordService {
	return f.passwordService
}

// TokenService возвращает сервис для работы с токенами.
func (f *ServiceFactory) TokenService() svc.TokenService {
	return f.tokenService
}
