package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Restaurante-api/internal/application/dto"
	"github.com/jhoicas/Restaurante-api/internal/application/usecase"
)

// UserHandler maneja las peticiones HTTP de usuarios (protegido).
type UserHandler struct {
	uc *usecase.UserUseCase
}

// NewUserHandler construye el handler.
func NewUserHandler(uc *usecase.UserUseCase) *UserHandler {
	return &UserHandler{uc: uc}
}

// Me GET /api/users/me
func (h *UserHandler) Me(c *fiber.Ctx) error {
	p, err := principal(c)
	if err != nil {
		return err
	}
	out, err := h.uc.Me(c.UserContext(), p)
	if err != nil {
		return err
	}
	return reply(c, fiber.StatusOK, out)
}

// List GET /api/users?limit=&offset=
func (h *UserHandler) List(c *fiber.Ctx) error {
	p, err := principal(c)
	if err != nil {
		return err
	}
	var page dto.PageRequest
	if err := parseQuery(c, &page); err != nil {
		return err
	}
	out, err := h.uc.List(c.UserContext(), p, page)
	if err != nil {
		return err
	}
	return reply(c, fiber.StatusOK, out)
}

// GetByID GET /api/users/:id
func (h *UserHandler) GetByID(c *fiber.Ctx) error {
	p, err := principal(c)
	if err != nil {
		return err
	}
	out, err := h.uc.Get(c.UserContext(), p, c.Params("id"))
	if err != nil {
		return err
	}
	return reply(c, fiber.StatusOK, out)
}

// Create POST /api/users
func (h *UserHandler) Create(c *fiber.Ctx) error {
	p, err := principal(c)
	if err != nil {
		return err
	}
	var in dto.CreateUserRequest
	if err := parseBody(c, &in); err != nil {
		return err
	}
	out, err := h.uc.Create(c.UserContext(), p, in)
	if err != nil {
		return err
	}
	return reply(c, fiber.StatusCreated, out)
}

// ChangeRole PATCH /api/users/:id/role
func (h *UserHandler) ChangeRole(c *fiber.Ctx) error {
	p, err := principal(c)
	if err != nil {
		return err
	}
	var in dto.ChangeRoleRequest
	if err := parseBody(c, &in); err != nil {
		return err
	}
	out, err := h.uc.ChangeRole(c.UserContext(), p, c.Params("id"), in)
	if err != nil {
		return err
	}
	return reply(c, fiber.StatusOK, out)
}

// SetActive PATCH /api/users/:id/active
func (h *UserHandler) SetActive(c *fiber.Ctx) error {
	p, err := principal(c)
	if err != nil {
		return err
	}
	var in dto.SetActiveRequest
	if err := parseBody(c, &in); err != nil {
		return err
	}
	out, err := h.uc.SetActive(c.UserContext(), p, c.Params("id"), *in.Active)
	if err != nil {
		return err
	}
	return reply(c, fiber.StatusOK, out)
}

// Delete DELETE /api/users/:id
func (h *UserHandler) Delete(c *fiber.Ctx) error {
	p, err := principal(c)
	if err != nil {
		return err
	}
	if err := h.uc.Delete(c.UserContext(), p, c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}
