package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Restaurante-api/internal/application/apperr"
	"github.com/jhoicas/Restaurante-api/internal/application/dto"
	"github.com/jhoicas/Restaurante-api/internal/domain/entity"
)

// reply responde data dentro del sobre {error:false, data}.
func reply(c *fiber.Ctx, status int, data any) error {
	return c.Status(status).JSON(dto.OK(data))
}

// principal actor autenticado o 401 si la ruta se montó sin AuthMiddleware.
func principal(c *fiber.Ctx) (*entity.Principal, error) {
	p := GetPrincipal(c)
	if p == nil {
		return nil, apperr.Unauthorized("no autenticado")
	}
	return p, nil
}
