// Package http содержит HTTP интерфейс сервиса учетных записей.
package http

import (
	"github.com/gofiber/fiber/v3"

	"siteauth/internal/auth/adapters/http/middleware"
)

// SetupRouter настраивает маршрутизацию для HTTP сервера.
func SetupRouter(app *fiber.App, accounts *AccountHandler, public *PublicHandler) {
	app.Use(middleware.NewRequestIDMiddleware())
	app.Use(middleware.NewLoggerMiddleware())
	app.Use(middleware.NewRecoveryMiddleware())

	api := app.Group("/api")

	api.Get("/health", public.Health)
	api.Get("/public/services", public.Services)
	api.Get("/public/services/:slug", public.ServiceBySlug)

	authRoutes := api.Group("/auth")
	authRoutes.Post("/register", accounts.Register)
	authRoutes.Post("/login", accounts.Login)
	// В fiber v3 обработчик идет первым, middleware после него.
	authRoutes.Get("/profile", accounts.GetProfile, middleware.NewAuthMiddleware())

	// Обработчик для несуществующих маршрутов.
	app.Use(func(c fiber.Ctx) error {
		return sendErrorResponse(c, fiber.StatusNotFound, ErrorRouteNotFound)
	})
}
