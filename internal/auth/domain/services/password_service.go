package services

import "errors"

// Ошибки работы с паролями.
var (
	ErrHashingFailed   = errors.New("failed to hash password")
	ErrInvalidPassword = errors.New("invalid password")
	ErrPasswordTooLong = errors.New("password is too long")
)

// MaxPasswordBytes - предел bcrypt на длину пароля в байтах.
const MaxPasswordBytes = 72
