package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Restaurante-api/internal/application/apperr"
	"github.com/jhoicas/Restaurante-api/internal/domain/entity"
)

// RoleMetadata roles requeridos por una ruta. Class aplica a todo el grupo y Method a la
// ruta concreta; si Method no está vacío reemplaza a Class.
type RoleMetadata struct {
	Class  []entity.Role
	Method []entity.Role
}

// Required roles efectivos de la ruta; vacío significa sin restricción.
func (m RoleMetadata) Required() []entity.Role {
	if len(m.Method) > 0 {
		return m.Method
	}
	return m.Class
}

// WithMethod copia de la metadata con roles a nivel de ruta.
func (m RoleMetadata) WithMethod(roles ...entity.Role) RoleMetadata {
	m.Method = roles
	return m
}

// Authorize middleware que exige que el rol del actor esté entre los requeridos.
// Debe usarse DESPUÉS de AuthMiddleware.
func Authorize(meta RoleMetadata) fiber.Handler {
	required := meta.Required()
	return func(c *fiber.Ctx) error {
		if len(required) == 0 {
			return c.Next()
		}
		p := GetPrincipal(c)
		if p == nil || p.Role == "" {
			return apperr.Forbidden("acceso denegado: usuario sin rol")
		}
		if !p.Role.In(required...) {
			return apperr.Forbidden("acceso denegado: rol " + string(p.Role) + " no autorizado")
		}
		return c.Next()
	}
}

// RequireRoles atajo de Authorize con roles a nivel de ruta.
func RequireRoles(roles ...entity.Role) fiber.Handler {
	return Authorize(RoleMetadata{Method: roles})
}
