package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Restaurante-api/internal/application/dto"
	"github.com/jhoicas/Restaurante-api/internal/application/usecase"
)

// MenuHandler ingredientes, platos y cartas.
type MenuHandler struct {
	ingredients *usecase.IngredientUseCase
	dishes      *usecase.DishUseCase
	cards       *usecase.CardUseCase
}

// NewMenuHandler construye el handler.
func NewMenuHandler(ingredients *usecase.IngredientUseCase, dishes *usecase.DishUseCase, cards *usecase.CardUseCase) *MenuHandler {
	return &MenuHandler{ingredients: ingredients, dishes: dishes, cards: cards}
}

// ── Ingredientes ──────────────────────────────────────────────────────────────

// CreateIngredient POST /api/ingredients
func (h *MenuHandler) CreateIngredient(c *fiber.Ctx) error {
	var in dto.CreateIngredientRequest
	if err := parseBody(c, &in); err != nil {
		return err
	}
	out, err := h.ingredients.Create(c.UserContext(), in)
	if err != nil {
		return err
	}
	return reply(c, fiber.StatusCreated, out)
}

// ListIngredients GET /api/ingredients
func (h *MenuHandler) ListIngredients(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := parseQuery(c, &page); err != nil {
		return err
	}
	return reply(c, fiber.StatusOK, h.ingredients.List(c.UserContext(), page))
}

// GetIngredient GET /api/ingredients/:id
func (h *MenuHandler) GetIngredient(c *fiber.Ctx) error {
	out, err := h.ingredients.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return reply(c, fiber.StatusOK, out)
}

// UpdateStock PATCH /api/ingredients/:id/stock
func (h *MenuHandler) UpdateStock(c *fiber.Ctx) error {
	var in dto.UpdateStockRequest
	if err := parseBody(c, &in); err != nil {
		return err
	}
	out, err := h.ingredients.UpdateStock(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return err
	}
	return reply(c, fiber.StatusOK, out)
}

// DeleteIngredient DELETE /api/ingredients/:id
func (h *MenuHandler) DeleteIngredient(c *fiber.Ctx) error {
	if err := h.ingredients.Delete(c.UserContext(), c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ── Platos ────────────────────────────────────────────────────────────────────

// CreateDish POST /api/dishes
func (h *MenuHandler) CreateDish(c *fiber.Ctx) error {
	var in dto.CreateDishRequest
	if err := parseBody(c, &in); err != nil {
		return err
	}
	out, err := h.dishes.Create(c.UserContext(), in)
	if err != nil {
		return err
	}
	return reply(c, fiber.StatusCreated, out)
}

// ListDishes GET /api/dishes?available=true
func (h *MenuHandler) ListDishes(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := parseQuery(c, &page); err != nil {
		return err
	}
	var available *bool
	if c.Query("available") != "" {
		v := c.QueryBool("available")
		available = &v
	}
	return reply(c, fiber.StatusOK, h.dishes.List(c.UserContext(), available, page))
}

// GetDish GET /api/dishes/:id (ingredientes poblados)
func (h *MenuHandler) GetDish(c *fiber.Ctx) error {
	out, err := h.dishes.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return reply(c, fiber.StatusOK, out)
}

// SetDishAvailability PATCH /api/dishes/:id/availability
func (h *MenuHandler) SetDishAvailability(c *fiber.Ctx) error {
	var in dto.SetAvailabilityRequest
	if err := parseBody(c, &in); err != nil {
		return err
	}
	out, err := h.dishes.SetAvailability(c.UserContext(), c.Params("id"), *in.Available)
	if err != nil {
		return err
	}
	return reply(c, fiber.StatusOK, out)
}

// DeleteDish DELETE /api/dishes/:id
func (h *MenuHandler) DeleteDish(c *fiber.Ctx) error {
	if err := h.dishes.Delete(c.UserContext(), c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ── Cartas ────────────────────────────────────────────────────────────────────

// CreateCard POST /api/cards
func (h *MenuHandler) CreateCard(c *fiber.Ctx) error {
	var in dto.CreateCardRequest
	if err := parseBody(c, &in); err != nil {
		return err
	}
	out, err := h.cards.Create(c.UserContext(), in)
	if err != nil {
		return err
	}
	return reply(c, fiber.StatusCreated, out)
}

// ListCards GET /api/cards?active=true
func (h *MenuHandler) ListCards(c *fiber.Ctx) error {
	return reply(c, fiber.StatusOK, h.cards.List(c.UserContext(), c.QueryBool("active")))
}

// GetCard GET /api/cards/:id (platos poblados)
func (h *MenuHandler) GetCard(c *fiber.Ctx) error {
	out, err := h.cards.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return reply(c, fiber.StatusOK, out)
}

// AddDish POST /api/cards/:id/dishes
func (h *MenuHandler) AddDish(c *fiber.Ctx) error {
	var in dto.CardDishRequest
	if err := parseBody(c, &in); err != nil {
		return err
	}
	out, err := h.cards.AddDish(c.UserContext(), c.Params("id"), in.DishID)
	if err != nil {
		return err
	}
	return reply(c, fiber.StatusOK, out)
}

// RemoveDish DELETE /api/cards/:id/dishes/:dishId
func (h *MenuHandler) RemoveDish(c *fiber.Ctx) error {
	out, err := h.cards.RemoveDish(c.UserContext(), c.Params("id"), c.Params("dishId"))
	if err != nil {
		return err
	}
	return reply(c, fiber.StatusOK, out)
}

// DeleteCard DELETE /api/cards/:id
func (h *MenuHandler) DeleteCard(c *fiber.Ctx) error {
	if err := h.cards.Delete(c.UserContext(), c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}
