package app

import (
	"strings"
	"time"

	"siteauth/internal/auth/domain/credentials"
	"siteauth/internal/auth/domain/services"
	"siteauth/internal/auth/ports/api"
)

const dateLayout = time.DateOnly

// registration - проверенные и нормализованные данные регистрации.
type registration struct {
	firstName   string
	lastName    string
	email       string
	dateOfBirth time.Time
	phone       string
	password    string
	temporary   bool
	expiresAt   *time.Time
}

func validateRegistration(in api.RegisterInput) (*registration, error) {
	required := []struct {
		field string
		value string
	}{
		{"firstName", in.FirstName},
		{"lastName", in.LastName},
		{"email", in.Email},
		{"dateOfBirth", in.DateOfBirth},
		{"phone", in.Phone},
		{"password", in.Password},
		{"confirmPassword", in.ConfirmPassword},
	}
	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			return nil, services.NewValidationError(r.field, "is required")
		}
	}

	email := credentials.NormalizeEmail(in.Email)
	if !credentials.ValidEmail(email) {
		return nil, services.NewValidationError("email", "invalid email format")
	}

	if in.Password != in.ConfirmPassword {
		return nil, services.NewValidationError("confirmPassword", "passwords do not match")
	}
	if !credentials.ValidatePassword(in.Password) {
		return nil, services.NewValidationError("password",
			"must be at least 8 characters and contain upper and lower case letters, a digit and a special character")
	}
	if len(in.Password) > services.MaxPasswordBytes {
		return nil, services.NewValidationError("password", "must not exceed 72 bytes")
	}

	phone := credentials.NormalizePhone(in.Phone)
	if !credentials.HasCountryCode(phone) {
		return nil, services.NewValidationError("phone", "must start with a country code, e.g. +1")
	}

	dob, err := time.Parse(dateLayout, strings.TrimSpace(in.DateOfBirth))
	if err != nil {
		return nil, services.NewValidationError("dateOfBirth", "must be a date in YYYY-MM-DD format")
	}

	reg := &registration{
		firstName:   strings.TrimSpace(in.FirstName),
		lastName:    strings.TrimSpace(in.LastName),
		email:       email,
		dateOfBirth: dob,
		phone:       phone,
		password:    in.Password,
		temporary:   in.AccountType == api.AccountTypeTemporary,
	}

	if reg.temporary && strings.TrimSpace(in.ExpiresAt) != "" {
		exp, err := parseExpiresAt(in.ExpiresAt)
		if err != nil {
			return nil, services.NewValidationError("expiresAt", "invalid expiration date")
		}
		reg.expiresAt = &exp
	}

	return reg, nil
}

// parseExpiresAt принимает RFC3339 или дату YYYY-MM-DD (полночь UTC).
func parseExpiresAt(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t.UTC(), nil
	}
	return time.Parse(dateLayout, value)
}
