package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderItemInput línea solicitada.
type OrderItemInput struct {
	DishID   string `json:"dishId" validate:"required"`
	Quantity int    `json:"quantity" validate:"required,min=1,max=100"`
	Notes    string `json:"notes" validate:"omitempty,max=300"`
}

// CreateOrderRequest alta de comanda.
type CreateOrderRequest struct {
	TableNumber int              `json:"tableNumber" validate:"required,min=1"`
	Items       []OrderItemInput `json:"items" validate:"required,min=1,dive"`
}

// OrderFilter filtros del listado de comandas.
type OrderFilter struct {
	Status string `query:"status" validate:"omitempty,oneof=pending taken preparing ready served paid cancelled"`
	PageRequest
}

// OrderItemResponse línea de la comanda.
type OrderItemResponse struct {
	DishID    string          `json:"dishId"`
	Name      string          `json:"name"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
	Subtotal  decimal.Decimal `json:"subtotal"`
	Notes     string          `json:"notes,omitempty"`
}

// OrderResponse salida de una comanda.
type OrderResponse struct {
	ID          string              `json:"id"`
	TableNumber int                 `json:"tableNumber"`
	Status      string              `json:"status"`
	Items       []OrderItemResponse `json:"items"`
	Total       decimal.Decimal     `json:"total"`
	CreatedBy   string              `json:"createdBy"`
	HandledBy   string              `json:"handledBy,omitempty"`
	CreatedAt   time.Time           `json:"createdAt"`
	UpdatedAt   time.Time           `json:"updatedAt"`
}
