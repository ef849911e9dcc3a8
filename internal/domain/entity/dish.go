package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Categorías de plato.
const (
	DishStarter = "starter"
	DishMain    = "main"
	DishDessert = "dessert"
	DishDrink   = "drink"
)

// DishIngredient referencia a un Ingredient con la cantidad usada por porción.
type DishIngredient struct {
	IngredientID string          `bson:"ingredientId" json:"ingredientId" validate:"required"`
	Quantity     decimal.Decimal `bson:"quantity" json:"quantity"`
}

// Dish plato de la carta. Price es precio de venta con impuestos incluidos.
type Dish struct {
	ID          string           `bson:"_id,omitempty" json:"id"`
	Name        string           `bson:"name" json:"name" validate:"required,max=200"`
	Description string           `bson:"description,omitempty" json:"description,omitempty"`
	Category    string           `bson:"category" json:"category" validate:"required,oneof=starter main dessert drink"`
	Price       decimal.Decimal  `bson:"price" json:"price"`
	Available   bool             `bson:"available" json:"available"`
	Ingredients []DishIngredient `bson:"ingredients" json:"ingredients" validate:"dive"`
	Version     int64            `bson:"__v" json:"-"`
	CreatedAt   time.Time        `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time        `bson:"updatedAt" json:"updatedAt"`
}

// IngredientIDs devuelve los ids referenciados, sin repetir.
func (d *Dish) IngredientIDs() []string {
	seen := make(map[string]struct{}, len(d.Ingredients))
	ids := make([]string, 0, len(d.Ingredients))
	for _, in := range d.Ingredients {
		if _, ok := seen[in.IngredientID]; ok {
			continue
		}
		seen[in.IngredientID] = struct{}{}
		ids = append(ids, in.IngredientID)
	}
	return ids
}
