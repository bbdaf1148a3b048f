package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/salon-pos/internal/application/dto"
)

// loadedChecker lo implementan los managers de estado (*catalog.Manager, *sales.Manager).
type loadedChecker interface {
	Loaded() bool
}

// RequireLoaded responde 503 mientras algún estado no se haya cargado desde el almacén
// (por ejemplo, si la carga inicial falló). Un POST /api/refresh exitoso lo habilita.
func RequireLoaded(checkers ...loadedChecker) fiber.Handler {
	return func(c *fiber.Ctx) error {
		for _, ch := range checkers {
			if !ch.Loaded() {
				return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{
					Code:      "STATE_NOT_LOADED",
					Message:   "datos aún no cargados desde el almacén, intente más tarde",
					Retryable: true,
				})
			}
		}
		return c.Next()
	}
}
