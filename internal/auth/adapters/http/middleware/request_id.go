// Package middleware содержит промежуточное ПО для HTTP обработчиков.
package middleware

import (
	"github.com/gofiber/fiber/v3"

	"siteauth/pkg/logger"
)

// HeaderRequestID - заголовок с идентификатором запроса.
const HeaderRequestID = "X-Request-ID"

// maxRequestIDLength ограничивает длину принятого от клиента идентификатора.
const maxRequestIDLength = 128

// NewRequestIDMiddleware берет идентификатор запроса из заголовка или генерирует новый,
// кладет его в контекст запроса и возвращает клиенту.
func NewRequestIDMiddleware() fiber.Handler {
	return func(ctx fiber.Ctx) error {
		id := ctx.Get(HeaderRequestID)
		if len(id) > maxRequestIDLength {
			id = ""
		}

		requestCtx := logger.NewRequestIDContext(ctx.Context(), id)
		id, _ = logger.GetRequestID(requestCtx)

		ctx.SetContext(requestCtx)
		ctx.Set(HeaderRequestID, id)

		return ctx.Next()
	}
}
