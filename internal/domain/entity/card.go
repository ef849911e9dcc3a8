package entity

import "time"

// Card carta o menú publicado; Dishes guarda ids de Dish.
type Card struct {
	ID          string    `bson:"_id,omitempty" json:"id"`
	Name        string    `bson:"name" json:"name" validate:"required,max=120"`
	Description string    `bson:"description,omitempty" json:"description,omitempty"`
	Active      bool      `bson:"active" json:"active"`
	Dishes      []string  `bson:"dishes" json:"dishes"`
	Version     int64     `bson:"__v" json:"-"`
	CreatedAt   time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time `bson:"updatedAt" json:"updatedAt"`
}

// HasDish indica si la carta ya contiene el plato.
func (c *Card) HasDish(dishID string) bool {
	for _, id := range c.Dishes {
		if id == dishID {
			return true
		}
	}
	return false
}
