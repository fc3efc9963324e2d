package http

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v3"

	"siteauth/internal/auth/domain/services"
)

// Сообщения об ошибках, отдаваемые клиенту.
const (
	ErrorInvalidRequest   = "invalid request body"
	ErrorEmailExists      = "user with this email already exists"
	ErrorTooManyAttempts  = "too many failed login attempts, try again later"
	ErrorUnauthorized     = "unauthorized"
	ErrorInvalidCreds     = "invalid email or password"
	ErrorExpired          = "account or token has expired"
	ErrorInternal         = "internal server error"
	ErrorRouteNotFound    = "route not found"
	ErrorServiceNotFound  = "service not found"
	ErrorFailedToSendResp = "error sending response"
)

// Вспомогательная функция для обработки ошибок HTTP.
func sendErrorResponse(ctx fiber.Ctx, statusCode int, message string) error {
	if err := ctx.Status(statusCode).JSON(fiber.Map{
		"error": message,
	}); err != nil {
		return fmt.Errorf("%s: %w", ErrorFailedToSendResp, err)
	}
	return nil
}

// statusFor сопоставляет ошибку сервиса с HTTP статусом и безопасным сообщением.
// Внутренние ошибки наружу не раскрываются.
func statusFor(err error) (int, string) {
	var (
		validationErr *services.ValidationError
		authErr       *services.AuthError
	)

	switch {
	case errors.As(err, &validationErr):
		return fiber.StatusBadRequest, validationErr.Error()
	case errors.Is(err, services.ErrEmailAlreadyExists):
		return fiber.StatusConflict, ErrorEmailExists
	case errors.Is(err, services.ErrTooManyAttempts):
		return fiber.StatusTooManyRequests, ErrorTooManyAttempts
	case errors.As(err, &authErr):
		switch authErr.Reason {
		case services.ReasonInvalidCredentials:
			return fiber.StatusUnauthorized, ErrorInvalidCreds
		case services.ReasonExpired:
			return fiber.StatusUnauthorized, ErrorExpired
		default:
			return fiber.StatusUnauthorized, ErrorUnauthorized
		}
	case services.IsUnauthorized(err):
		return fiber.StatusUnauthorized, ErrorUnauthorized
	default:
		return fiber.StatusInternalServerError, ErrorInternal
	}
}

func sendServiceError(ctx fiber.Ctx, err error) error {
	status, message := statusFor(err)
	return sendErrorResponse(ctx, status, message)
}
