package http

import (
	"context"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"siteauth/internal/catalog"
	"siteauth/pkg/logger"
)

// Состояния в ответе health.
const (
	StatusOK          = "ok"
	StatusDegraded    = "degraded"
	StatusUnavailable = "unavailable"

	healthPingTimeout = 2 * time.Second
)

// Pinger проверяет доступность хранилища.
type Pinger interface {
	Ping(ctx context.Context) error
}

// PublicHandler обслуживает публичные маршруты сайта.
type PublicHandler struct {
	store   Pinger
	catalog *catalog.Catalog
	started time.Time
}

// NewPublicHandler создает обработчик публичных маршрутов.
func NewPublicHandler(store Pinger, c *catalog.Catalog, started time.Time) *PublicHandler {
	return &PublicHandler{store: store, catalog: c, started: started}
}

// Health сообщает время работы процесса и доступность хранилища.
// Недоступное хранилище не меняет статус ответа 200.
func (h *PublicHandler) Health(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()

	resp := HealthResponse{
		Status:   StatusOK,
		Uptime:   time.Since(h.started).Seconds(),
		Database: StatusOK,
	}

	pingCtx, cancel := context.WithTimeout(requestCtx, healthPingTimeout)
	defer cancel()

	if err := h.store.Ping(pingCtx); err != nil {
		logger.Log(requestCtx).Warn(requestCtx, "store ping failed", zap.Error(err))
		resp.Status = StatusDegraded
		resp.Database = StatusUnavailable
	}

	if err := ctx.Status(fiber.StatusOK).JSON(resp); err != nil {
		return fmt.Errorf("sending response: %w", err)
	}
	return nil
}

// Services возвращает публичный каталог услуг.
func (h *PublicHandler) Services(ctx fiber.Ctx) error {
	if err := ctx.Status(fiber.StatusOK).JSON(toServiceResponses(h.catalog.List())); err != nil {
		return fmt.Errorf("sending response: %w", err)
	}
	return nil
}

// ServiceBySlug возвращает одну услугу каталога по slug.
func (h *PublicHandler) ServiceBySlug(ctx fiber.Ctx) error {
	svc, ok := h.catalog.BySlug(ctx.Params("slug"))
	if !ok {
		return sendErrorResponse(ctx, fiber.StatusNotFound, ErrorServiceNotFound)
	}

	if err := ctx.Status(fiber.StatusOK).JSON(ServiceResponse{ID: svc.ID, Name: svc.Name, Slug: svc.Slug}); err != nil {
		return fmt.Errorf("sending response: %w", err)
	}
	return nil
}
