package repositories

import (
	"context"

	"siteauth/internal/auth/domain/entities"
)

// UserRepository определяет хранилище учетных записей.
//
// FindByEmail сравнивает email без учета регистра только если вызывающий передает
// уже нормализованный email. Create возвращает services.ErrEmailAlreadyExists при
// нарушении уникальности, проверяемой самим хранилищем. Отсутствующая запись дает
// entities.ErrUserNotFound.
type UserRepository interface {
	Create(ctx context.Context, user *entities.User) (*entities.User, error)

	FindByID(ctx context.Context, id string) (*entities.User, error)

	FindByEmail(ctx context.Context, email string) (*entities.User, error)

	// EnsureSchema идемпотентно создает таблицу пользователей и индексы.
	EnsureSchema(ctx context.Context) error

	Ping(ctx context.Context) error
}
