package entities

import (
	"errors"
	"time"
)

// Ошибки домена пользователя.
var (
	ErrUserNotFound = errors.New("user not found")
	ErrUnknownRole  = errors.New("unknown user role")
)

// Role определяет права учетной записи. Роль задается при создании и далее не меняется.
type Role string

// Поддерживаемые роли.
const (
	RoleAdmin     Role = "admin"
	RoleNormal    Role = "normal"
	RoleTemporary Role = "temporary"
)

// ParseRole преобразует строку из хранилища в Role.
func ParseRole(s string) (Role, error) {
	switch r := Role(s); r {
	case RoleAdmin, RoleNormal, RoleTemporary:
		return r, nil
	default:
		return "", ErrUnknownRole
	}
}

// User представляет учетную запись.
// ExpiresAt задан только для RoleTemporary.
type User struct {
	ID           string
	FirstName    string
	LastName     string
	Email        string
	PasswordHash string
	DateOfBirth  time.Time
	Phone        string
	Role         Role
	ExpiresAt    *time.Time
	CreatedAt    time.Time
}

// IsExpired сообщает, истек ли срок временной учетной записи к моменту now.
// Для остальных ролей всегда false.
func (u *User) IsExpired(now time.Time) bool {
	if u.Role != RoleTemporary || u.ExpiresAt == nil {
		return false
	}
	return !now.Before(*u.ExpiresAt)
}

// Profile - представление пользователя без хэша пароля.
type Profile struct {
	ID          string
	FirstName   string
	LastName    string
	Email       string
	DateOfBirth time.Time
	Phone       string
	Role        Role
	ExpiresAt   *time.Time
	CreatedAt   time.Time
}

// Sanitize возвращает профиль, безопасный для передачи наружу.
func (u *User) Sanitize() *Profile {
	p := &Profile{
		ID:          u.ID,
		FirstName:   u.FirstName,
		LastName:    u.LastName,
		Email:       u.Email,
		DateOfBirth: u.DateOfBirth,
		Phone:       u.Phone,
		Role:        u.Role,
		CreatedAt:   u.CreatedAt,
	}
	if u.ExpiresAt != nil {
		exp := *u.ExpiresAt
		p.ExpiresAt = &exp
	}
	return p
}
