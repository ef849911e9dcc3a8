package http_test

import (
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/Restaurante-api/internal/domain/entity"
	apphttp "github.com/jhoicas/Restaurante-api/internal/interfaces/http"
)

// buildRoleApp instala el actor indicado (o ninguno) y luego el guard de roles.
func buildRoleApp(p *entity.Principal, meta apphttp.RoleMetadata) *fiber.App {
	app := fiber.New(fiber.Config{ErrorHandler: apphttp.NewErrorHandler(zerolog.Nop(), false)})
	app.Get("/ruta",
		func(c *fiber.Ctx) error {
			if p != nil {
				c.Locals(apphttp.LocalPrincipal, p)
			}
			return c.Next()
		},
		apphttp.Authorize(meta),
		func(c *fiber.Ctx) error { return c.JSON(fiber.Map{"ok": true}) },
	)
	return app
}

func TestAuthorize(t *testing.T) {
	manager := &entity.Principal{UserID: "u1", Role: entity.RoleManager}
	waiter := &entity.Principal{UserID: "u2", Role: entity.RoleWaiter}
	roleless := &entity.Principal{UserID: "u3"}
	mgmt := []entity.Role{entity.RoleManager, entity.RoleOwner, entity.RoleAdmin}

	tests := []struct {
		name      string
		principal *entity.Principal
		meta      apphttp.RoleMetadata
		want      int
	}{
		{"sin metadata y sin actor", nil, apphttp.RoleMetadata{}, http.StatusOK},
		{"sin metadata con actor", waiter, apphttp.RoleMetadata{}, http.StatusOK},
		{"metadata sin actor", nil, apphttp.RoleMetadata{Class: mgmt}, http.StatusForbidden},
		{"metadata con actor sin rol", roleless, apphttp.RoleMetadata{Class: mgmt}, http.StatusForbidden},
		{"rol en el conjunto", manager, apphttp.RoleMetadata{Class: mgmt}, http.StatusOK},
		{"rol fuera del conjunto", waiter, apphttp.RoleMetadata{Class: mgmt}, http.StatusForbidden},
		{"método reemplaza clase: permite", waiter, apphttp.RoleMetadata{Class: mgmt, Method: []entity.Role{entity.RoleWaiter}}, http.StatusOK},
		{"método reemplaza clase: niega", manager, apphttp.RoleMetadata{Class: mgmt, Method: []entity.Role{entity.RoleAdmin}}, http.StatusForbidden},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, body := doGet(t, buildRoleApp(tt.principal, tt.meta), "/ruta", "")
			assert.Equal(t, tt.want, resp.StatusCode)
			if tt.want == http.StatusForbidden {
				assert.Equal(t, "FORBIDDEN", body["errorCode"])
			}
		})
	}
}

func TestRoleMetadata_Required(t *testing.T) {
	class := apphttp.RoleMetadata{Class: []entity.Role{entity.RoleManager}}
	assert.Equal(t, []entity.Role{entity.RoleManager}, class.Required())
	assert.Equal(t, []entity.Role{entity.RoleAdmin}, class.WithMethod(entity.RoleAdmin).Required())
	assert.Empty(t, apphttp.RoleMetadata{}.Required())
}

func TestRequireRoles(t *testing.T) {
	app := fiber.New(fiber.Config{ErrorHandler: apphttp.NewErrorHandler(zerolog.Nop(), false)})
	app.Get("/ruta",
		func(c *fiber.Ctx) error {
			c.Locals(apphttp.LocalPrincipal, &entity.Principal{Role: entity.RoleKitchenStaff})
			return c.Next()
		},
		apphttp.RequireRoles(entity.RoleKitchenStaff),
		func(c *fiber.Ctx) error { return c.SendStatus(http.StatusNoContent) },
	)
	resp, _ := doGet(t, app, "/ruta", "")
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
}
