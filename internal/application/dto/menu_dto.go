package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateIngredientRequest alta de ingrediente.
type CreateIngredientRequest struct {
	Name     string          `json:"name" validate:"required,max=120"`
	Unit     string          `json:"unit" validate:"required,oneof=g kg ml l unit"`
	Stock    decimal.Decimal `json:"stock"`
	Allergen bool            `json:"allergen"`
}

// UpdateStockRequest fija la existencia de un ingrediente.
type UpdateStockRequest struct {
	Stock decimal.Decimal `json:"stock"`
}

// IngredientResponse salida de un ingrediente.
type IngredientResponse struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Unit      string          `json:"unit"`
	Stock     decimal.Decimal `json:"stock"`
	Allergen  bool            `json:"allergen"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

// DishIngredientInput ingrediente usado por un plato.
type DishIngredientInput struct {
	IngredientID string          `json:"ingredientId" validate:"required"`
	Quantity     decimal.Decimal `json:"quantity"`
}

// CreateDishRequest alta de plato.
type CreateDishRequest struct {
	Name        string                `json:"name" validate:"required,max=200"`
	Description string                `json:"description" validate:"omitempty,max=1000"`
	Category    string                `json:"category" validate:"required,oneof=starter main dessert drink"`
	Price       decimal.Decimal       `json:"price"`
	Available   *bool                 `json:"available"`
	Ingredients []DishIngredientInput `json:"ingredients" validate:"omitempty,dive"`
}

// SetAvailabilityRequest disponibilidad de un plato.
type SetAvailabilityRequest struct {
	Available *bool `json:"available" validate:"required"`
}

// DishIngredientResponse ingrediente poblado dentro de un plato. Ingredient es nil si el
// ingrediente referenciado ya no existe.
type DishIngredientResponse struct {
	IngredientID string              `json:"ingredientId"`
	Ingredient   *IngredientResponse `json:"ingredient,omitempty"`
	Quantity     decimal.Decimal     `json:"quantity"`
}

// DishResponse salida de un plato.
type DishResponse struct {
	ID          string                   `json:"id"`
	Name        string                   `json:"name"`
	Description string                   `json:"description,omitempty"`
	Category    string                   `json:"category"`
	Price       decimal.Decimal          `json:"price"`
	Available   bool                     `json:"available"`
	Ingredients []DishIngredientResponse `json:"ingredients"`
}

// CreateCardRequest alta de carta.
type CreateCardRequest struct {
	Name        string   `json:"name" validate:"required,max=120"`
	Description string   `json:"description" validate:"omitempty,max=1000"`
	Active      bool     `json:"active"`
	Dishes      []string `json:"dishes" validate:"omitempty,dive,required"`
}

// CardDishRequest plato a agregar a una carta.
type CardDishRequest struct {
	DishID string `json:"dishId" validate:"required"`
}

// CardResponse salida de una carta. Dishes solo se llena en el detalle.
type CardResponse struct {
	ID          string         `json:"id"`
	Name        string         `json:"name"`
	Description string         `json:"description,omitempty"`
	Active      bool           `json:"active"`
	DishIDs     []string       `json:"dishIds"`
	Dishes      []DishResponse `json:"dishes,omitempty"`
}
