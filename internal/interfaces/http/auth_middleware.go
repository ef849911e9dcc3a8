package http

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/jhoicas/Restaurante-api/internal/application/apperr"
	"github.com/jhoicas/Restaurante-api/internal/application/ports"
	"github.com/jhoicas/Restaurante-api/internal/domain"
	"github.com/jhoicas/Restaurante-api/internal/domain/entity"
)

// Locals keys para el actor autenticado y los claims del token en Fiber.
const (
	LocalPrincipal = "principal"
	LocalClaims    = "token_claims"
)

const bearerPrefix = "Bearer "

// AuthMiddleware valida el Bearer Token contra el proveedor de identidad y resuelve el
// usuario local enlazado. El estado activo/inactivo del usuario no se comprueba aquí.
func AuthMiddleware(verifier ports.TokenVerifier, resolver ports.PrincipalResolver, log zerolog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get(fiber.HeaderAuthorization)
		if authHeader == "" {
			return apperr.Unauthorized("Authorization header requerido")
		}
		if !strings.HasPrefix(authHeader, bearerPrefix) {
			return apperr.Unauthorized("formato: Bearer <token>")
		}
		token := strings.TrimSpace(authHeader[len(bearerPrefix):])
		if token == "" {
			return apperr.Unauthorized("token vacío")
		}

		verified, err := verifier.VerifyToken(c.UserContext(), token)
		if err != nil {
			log.Debug().Err(err).Str("path", c.Path()).Msg("token rechazado")
			return apperr.Unauthorized("token inválido o expirado")
		}

		principal, err := resolver.ResolvePrincipal(c.UserContext(), verified.Subject)
		if err != nil || principal == nil {
			if err != nil && !errors.Is(err, domain.ErrUserNotFound) {
				log.Error().Err(err).Str("subject", verified.Subject).Msg("no se pudo resolver el usuario")
			}
			return apperr.Unauthorized("usuario no registrado")
		}

		c.Locals(LocalPrincipal, principal)
		c.Locals(LocalClaims, verified.Claims)
		return c.Next()
	}
}

// GetPrincipal devuelve el actor autenticado (después del middleware de auth).
func GetPrincipal(c *fiber.Ctx) *entity.Principal {
	p, _ := c.Locals(LocalPrincipal).(*entity.Principal)
	return p
}

// GetClaims devuelve los claims del token verificado.
func GetClaims(c *fiber.Ctx) map[string]any {
	claims, _ := c.Locals(LocalClaims).(map[string]any)
	return claims
}

// GetRole devuelve el rol del actor autenticado o "" si no hay actor.
func GetRole(c *fiber.Ctx) entity.Role {
	if p := GetPrincipal(c); p != nil {
		return p.Role
	}
	return ""
}
