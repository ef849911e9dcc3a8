package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Restaurante-api/internal/application/apperr"
)

// Recover convierte un panic en error para el traductor global. Los valores que no son
// error se envuelven en *apperr.UnknownError.
func Recover() fiber.Handler {
	return func(c *fiber.Ctx) (err error) {
		defer func() {
			r := recover()
			if r == nil {
				return
			}
			if e, ok := r.(error); ok {
				err = e
				return
			}
			err = &apperr.UnknownError{Value: r}
		}()
		return c.Next()
	}
}
