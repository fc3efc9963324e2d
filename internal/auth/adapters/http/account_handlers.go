package http

import (
	"fmt"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"siteauth/internal/auth/adapters/http/middleware"
	"siteauth/internal/auth/ports/api"
	"siteauth/pkg/logger"
)

// Константы для логирования.
const (
	LogHandlerRegister   = "account handler: register"
	LogHandlerLogin      = "account handler: login"
	LogHandlerGetProfile = "account handler: get profile"

	LogRequestRejected = "request rejected"
	LogRequestFailed   = "failed to serve request"
)

// AccountHandler содержит HTTP обработчики учетных записей.
type AccountHandler struct {
	accounts api.AccountUseCase
}

// NewAccountHandler создает обработчик учетных записей.
func NewAccountHandler(accounts api.AccountUseCase) *AccountHandler {
	return &AccountHandler{accounts: accounts}
}

func (h *AccountHandler) fail(ctx fiber.Ctx, msg string, err error) error {
	requestCtx := ctx.Context()
	log := logger.Log(requestCtx)

	status, _ := statusFor(err)
	if status == fiber.StatusInternalServerError {
		log.Error(requestCtx, LogRequestFailed, zap.String("handler", msg), zap.Error(err))
	} else {
		log.Debug(requestCtx, LogRequestRejected, zap.String("handler", msg), zap.Int("status", status), zap.Error(err))
	}
	return sendServiceError(ctx, err)
}

// Register обрабатывает запрос на регистрацию нового пользователя.
func (h *AccountHandler) Register(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()
	log := logger.Log(requestCtx)
	log.Debug(requestCtx, LogHandlerRegister)

	var req RegisterRequest
	if err := ctx.Bind().JSON(&req); err != nil {
		log.Debug(requestCtx, ErrorInvalidRequest, zap.Error(err))
		return sendErrorResponse(ctx, fiber.StatusBadRequest, ErrorInvalidRequest)
	}

	res, err := h.accounts.Register(requestCtx, req.toInput())
	if err != nil {
		return h.fail(ctx, LogHandlerRegister, err)
	}

	if err := ctx.Status(fiber.StatusCreated).JSON(toAuthResponse(res)); err != nil {
		return fmt.Errorf("sending response: %w", err)
	}
	return nil
}

// Login обрабатывает запрос на вход пользователя.
func (h *AccountHandler) Login(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()
	log := logger.Log(requestCtx)
	log.Debug(requestCtx, LogHandlerLogin)

	var req LoginRequest
	if err := ctx.Bind().JSON(&req); err != nil {
		log.Debug(requestCtx, ErrorInvalidRequest, zap.Error(err))
		return sendErrorResponse(ctx, fiber.StatusBadRequest, ErrorInvalidRequest)
	}

	if req.Email == "" || req.Password == "" {
		return sendErrorResponse(ctx, fiber.StatusBadRequest, "email and password are required")
	}

	res, err := h.accounts.Login(requestCtx, req.Email, req.Password)
	if err != nil {
		return h.fail(ctx, LogHandlerLogin, err)
	}

	if err := ctx.Status(fiber.StatusOK).JSON(toAuthResponse(res)); err != nil {
		return fmt.Errorf("sending response: %w", err)
	}
	return nil
}

// GetProfile возвращает профиль владельца токена.
func (h *AccountHandler) GetProfile(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()
	logger.Log(requestCtx).Debug(requestCtx, LogHandlerGetProfile)

	profile, err := h.accounts.GetProfile(requestCtx, middleware.BearerToken(ctx))
	if err != nil {
		return h.fail(ctx, LogHandlerGetProfile, err)
	}

	if err := ctx.Status(fiber.StatusOK).JSON(ProfileResponse{User: toUserResponse(profile)}); err != nil {
		return fmt.Errorf("sending response: %w", err)
	}
	return nil
}
