package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Ingredient insumo de cocina con su existencia actual.
type Ingredient struct {
	ID        string          `bson:"_id,omitempty" json:"id"`
	Name      string          `bson:"name" json:"name" validate:"required,max=120"`
	Unit      string          `bson:"unit" json:"unit" validate:"required,oneof=g kg ml l unit"`
	Stock     decimal.Decimal `bson:"stock" json:"stock"`
	Allergen  bool            `bson:"allergen" json:"allergen"`
	Version   int64           `bson:"__v" json:"-"`
	CreatedAt time.Time       `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time       `bson:"updatedAt" json:"updatedAt"`
}
