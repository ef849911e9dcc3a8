package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Restaurante-api/internal/application/dto"
	"github.com/jhoicas/Restaurante-api/internal/application/usecase"
	"github.com/jhoicas/Restaurante-api/internal/domain/entity"
)

// OrderHandler comandas (protegido; los permisos por acción los aplica el caso de uso).
type OrderHandler struct {
	uc *usecase.OrderUseCase
}

// NewOrderHandler construye el handler.
func NewOrderHandler(uc *usecase.OrderUseCase) *OrderHandler {
	return &OrderHandler{uc: uc}
}

// Create POST /api/orders
func (h *OrderHandler) Create(c *fiber.Ctx) error {
	p, err := principal(c)
	if err != nil {
		return err
	}
	var in dto.CreateOrderRequest
	if err := parseBody(c, &in); err != nil {
		return err
	}
	out, err := h.uc.Create(c.UserContext(), p, in)
	if err != nil {
		return err
	}
	return reply(c, fiber.StatusCreated, out)
}

// List GET /api/orders?status=&limit=&offset=
func (h *OrderHandler) List(c *fiber.Ctx) error {
	p, err := principal(c)
	if err != nil {
		return err
	}
	var f dto.OrderFilter
	if err := parseQuery(c, &f); err != nil {
		return err
	}
	return reply(c, fiber.StatusOK, h.uc.List(c.UserContext(), p, f))
}

// GetByID GET /api/orders/:id
func (h *OrderHandler) GetByID(c *fiber.Ctx) error {
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

// Transition POST /api/orders/:id/:action (take, prepare, ready, serve, pay, cancel)
func (h *OrderHandler) Transition(c *fiber.Ctx) error {
	p, err := principal(c)
	if err != nil {
		return err
	}
	out, err := h.uc.Transition(c.UserContext(), p, c.Params("id"), entity.OrderAction(c.Params("action")))
	if err != nil {
		return err
	}
	return reply(c, fiber.StatusOK, out)
}

// Bill GET /api/orders/:id/bill: cuenta en PDF.
func (h *OrderHandler) Bill(c *fiber.Ctx) error {
	p, err := principal(c)
	if err != nil {
		return err
	}
	id := c.Params("id")
	pdf, err := h.uc.Bill(c.UserContext(), p, id)
	if err != nil {
		return err
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`inline; filename="cuenta-%s.pdf"`, id))
	return c.Send(pdf)
}
