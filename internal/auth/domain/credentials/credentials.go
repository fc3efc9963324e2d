// Package credentials содержит чистые проверки пароля, телефона и email.
package credentials

import (
	"regexp"
	"strings"
	"unicode"
)

// MinPasswordLength - минимальная длина пароля.
const MinPasswordLength = 8

var (
	countryCodePhone = regexp.MustCompile(`^\+\d{1,3}[\d-]{6,}$`)
	emailPattern     = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
)

// ValidatePassword проверяет, что пароль не короче MinPasswordLength символов и содержит
// заглавную и строчную букву, цифру и хотя бы один не буквенно-цифровой символ.
func ValidatePassword(password string) bool {
	if len([]rune(password)) < MinPasswordLength {
		return false
	}

	var hasUpper, hasLower, hasDigit, hasSpecial bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsDigit(r):
			hasDigit = true
		case !unicode.IsLetter(r):
			hasSpecial = true
		}
	}

	return hasUpper && hasLower && hasDigit && hasSpecial
}

// NormalizePhone удаляет из номера все пробельные символы.
func NormalizePhone(phone string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, phone)
}

// HasCountryCode проверяет нормализованный номер: "+", 1-3 цифры кода страны,
// затем не меньше 6 цифр или дефисов.
func HasCountryCode(normalizedPhone string) bool {
	return countryCodePhone.MatchString(normalizedPhone)
}

// NormalizeEmail приводит email к виду, в котором он хранится.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// ValidEmail проверяет формат email.
func ValidEmail(email string) bool {
	return emailPattern.MatchString(email)
}
