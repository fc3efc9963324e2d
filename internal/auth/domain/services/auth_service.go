package services

import (
	"errors"
	"fmt"
	"time"

	"siteauth/internal/auth/domain/entities"
)

// Ошибки домена аутентификации.
var (
	ErrValidation            = errors.New("validation failed")
	ErrEmailAlreadyExists    = errors.New("user with this email already exists")
	ErrTooManyAttempts       = errors.New("too many failed login attempts")
	ErrTokenGenerationFailed = errors.New("failed to generate authentication token")
)

// ValidationError описывает некорректное или неполное поле входных данных.
type ValidationError struct {
	Field  string
	Reason string
}

// NewValidationError создает ошибку валидации поля.
func NewValidationError(field, reason string) *ValidationError {
	return &ValidationError{Field: field, Reason: reason}
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

// Unwrap позволяет сопоставлять любую ValidationError с ErrValidation.
func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

// AuthReason уточняет причину отказа в аутентификации.
type AuthReason int

// Причины отказа.
const (
	ReasonInvalidCredentials AuthReason = iota + 1
	ReasonExpired
	ReasonInvalidToken
)

func (r AuthReason) String() string {
	switch r {
	case ReasonInvalidCredentials:
		return "invalid_credentials"
	case ReasonExpired:
		return "expired"
	case ReasonInvalidToken:
		return "invalid_token"
	default:
		return "unknown"
	}
}

// AuthError - отказ в аутентификации. Две AuthError равны для errors.Is,
// если совпадает причина.
type AuthError struct {
	Reason  AuthReason
	message string
}

func (e *AuthError) Error() string {
	return e.message
}

// Is сравнивает ошибки по причине.
func (e *AuthError) Is(target error) bool {
	t, ok := target.(*AuthError)
	return ok && t.Reason == e.Reason
}

// Экземпляры AuthError для сопоставления через errors.Is.
// ErrAccountExpired и ErrTokenExpired имеют одну причину и взаимозаменяемы для errors.Is.
var (
	ErrInvalidCredentials = &AuthError{Reason: ReasonInvalidCredentials, message: "invalid email or password"}
	ErrAccountExpired     = &AuthError{Reason: ReasonExpired, message: "account has expired"}
	ErrTokenExpired       = &AuthError{Reason: ReasonExpired, message: "token has expired"}
	ErrInvalidToken       = &AuthError{Reason: ReasonInvalidToken, message: "invalid token"}
)

// IsUnauthorized сообщает, должна ли ошибка отображаться наружу как отказ в доступе.
// Отсутствующий пользователь тоже считается отказом в доступе.
func IsUnauthorized(err error) bool {
	var authErr *AuthError
	return errors.As(err, &authErr) || errors.Is(err, entities.ErrUserNotFound)
}

// AuthResult - результат успешной регистрации или входа.
type AuthResult struct {
	Token     string
	ExpiresAt time.Time
	User      *entities.Profile
}
