package http

import (
	"time"

	"siteauth/internal/auth/domain/entities"
	"siteauth/internal/auth/domain/services"
	"siteauth/internal/auth/ports/api"
	"siteauth/internal/catalog"
)

// RegisterRequest содержит данные для регистрации пользователя.
type RegisterRequest struct {
	FirstName       string `json:"firstName"`
	LastName        string `json:"lastName"`
	Email           string `json:"email"`
	DateOfBirth     string `json:"dateOfBirth"`
	Phone           string `json:"phone"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
	AccountType     string `json:"accountType"`
	ExpiresAt       string `json:"expiresAt,omitempty"`
}

func (r *RegisterRequest) toInput() api.RegisterInput {
	return api.RegisterInput{
		FirstName:       r.FirstName,
		LastName:        r.LastName,
		Email:           r.Email,
		DateOfBirth:     r.DateOfBirth,
		Phone:           r.Phone,
		Password:        r.Password,
		ConfirmPassword: r.ConfirmPassword,
		AccountType:     r.AccountType,
		ExpiresAt:       r.ExpiresAt,
	}
}

// LoginRequest содержит данные для входа пользователя.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UserResponse - профиль пользователя без хэша пароля.
type UserResponse struct {
	ID          string     `json:"id"`
	FirstName   string     `json:"firstName"`
	LastName    string     `json:"lastName"`
	Email       string     `json:"email"`
	DateOfBirth string     `json:"dateOfBirth"`
	Phone       string     `json:"phone"`
	Role        string     `json:"role"`
	ExpiresAt   *time.Time `json:"expiresAt"`
	CreatedAt   time.Time  `json:"createdAt"`
}

// AuthResponse возвращается после регистрации и входа.
type AuthResponse struct {
	Token          string       `json:"token"`
	TokenExpiresAt time.Time    `json:"tokenExpiresAt"`
	User           UserResponse `json:"user"`
}

// ProfileResponse возвращается обработчиком профиля.
type ProfileResponse struct {
	User UserResponse `json:"user"`
}

// HealthResponse - состояние сервиса.
type HealthResponse struct {
	Status   string  `json:"status"`
	Uptime   float64 `json:"uptime"`
	Database string  `json:"database"`
}

// ServiceResponse - элемент публичного каталога услуг.
type ServiceResponse struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

func toUserResponse(p *entities.Profile) UserResponse {
	return UserResponse{
		ID:          p.ID,
		FirstName:   p.FirstName,
		LastName:    p.LastName,
		Email:       p.Email,
		DateOfBirth: p.DateOfBirth.Format(time.DateOnly),
		Phone:       p.Phone,
		Role:        string(p.Role),
		ExpiresAt:   p.ExpiresAt,
		CreatedAt:   p.CreatedAt,
	}
}

func toAuthResponse(res *services.AuthResult) AuthResponse {
	return AuthResponse{
		Token:          res.Token,
		TokenExpiresAt: res.ExpiresAt,
		User:           toUserResponse(res.User),
	}
}

func toServiceResponses(list []catalog.Service) []ServiceResponse {
	out := make([]ServiceResponse, 0, len(list))
	for _, s := range list {
		out = append(out, ServiceResponse{ID: s.ID, Name: s.Name, Slug: s.Slug})
	}
	return out
}
