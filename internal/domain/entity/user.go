package entity

import "time"

// User cuenta local del restaurante, enlazada a una identidad del proveedor externo.
// ExternalID está oculto por defecto en las lecturas del repositorio.
type User struct {
	ID         string    `bson:"_id,omitempty" json:"id"`
	ExternalID string    `bson:"externalId,omitempty" json:"externalId,omitempty" validate:"required"`
	Email      string    `bson:"email" json:"email" validate:"required,email"`
	Name       string    `bson:"name" json:"name" validate:"required,max=200"`
	Phone      string    `bson:"phone,omitempty" json:"phone,omitempty"`
	Role       Role      `bson:"role" json:"role" validate:"required,oneof=customer waiter kitchen_staff manager owner admin"`
	Active     bool      `bson:"active" json:"active"`
	Version    int64     `bson:"__v" json:"-"`
	CreatedAt  time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt  time.Time `bson:"updatedAt" json:"updatedAt"`
}

// Principal actor autenticado de una petición. Se construye por petición y no se persiste.
type Principal struct {
	UserID     string
	ExternalID string
	Role       Role
	Active     bool
}

// PrincipalFromUser construye el Principal a partir del usuario local y el sujeto verificado.
func PrincipalFromUser(u *User, externalID string) *Principal {
	if u == nil {
		return nil
	}
	return &Principal{
		UserID:     u.ID,
		ExternalID: externalID,
		Role:       u.Role,
		Active:     u.Active,
	}
}
