package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"siteauth/pkg/logger"
)

// Константы для логирования.
const (
	ErrorNoAuthHeader       = "no authorization header provided"
	ErrorInvalidTokenFormat = "invalid token format"

	bearerPrefix = "Bearer "
	localToken   = "bearerToken"
)

// NewAuthMiddleware извлекает токен из заголовка Authorization: Bearer <token>.
// Проверка самого токена выполняется сервисом учетных записей.
func NewAuthMiddleware() fiber.Handler {
	return func(ctx fiber.Ctx) error {
		requestCtx := ctx.Context()
		log := logger.Log(requestCtx).With(zap.String("middleware", "auth"))

		authHeader := ctx.Get(fiber.HeaderAuthorization)
		if authHeader == "" {
			log.Debug(requestCtx, ErrorNoAuthHeader)
			return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": ErrorNoAuthHeader})
		}

		if len(authHeader) <= len(bearerPrefix) || !strings.EqualFold(authHeader[:len(bearerPrefix)], bearerPrefix) {
			log.Debug(requestCtx, ErrorInvalidTokenFormat)
			return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": ErrorInvalidTokenFormat})
		}

		token := strings.TrimSpace(authHeader[len(bearerPrefix):])
		if token == "" {
			log.Debug(requestCtx, ErrorInvalidTokenFormat)
			return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": ErrorInvalidTokenFormat})
		}

		ctx.Locals(localToken, token)
		return ctx.Next()
	}
}

// BearerToken возвращает токен, сохраненный NewAuthMiddleware.
func BearerToken(ctx fiber.Ctx) string {
	token, _ := ctx.Locals(localToken).(string)
	return token
}
