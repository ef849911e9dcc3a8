// Package identity implementa los proveedores de identidad: verificación OIDC de tokens
// emitidos por un proveedor externo y un proveedor local (bcrypt + JWT HS256) con cuentas
// almacenadas en MongoDB.
package identity

import "time"

// Account cuenta del proveedor local. UID es el sujeto de los tokens emitidos y el
// externalId del usuario enlazado. PasswordHash está oculto por defecto en las lecturas.
type Account struct {
	ID           string    `bson:"_id,omitempty"`
	UID          string    `bson:"uid" validate:"required"`
	Email        string    `bson:"email" validate:"required,email"`
	DisplayName  string    `bson:"displayName,omitempty"`
	PasswordHash string    `bson:"passwordHash,omitempty" validate:"required"`
	Disabled     bool      `bson:"disabled"`
	Version      int64     `bson:"__v"`
	CreatedAt    time.Time `bson:"createdAt"`
	UpdatedAt    time.Time `bson:"updatedAt"`
}

// HiddenAccountFields campos que el repositorio de cuentas omite salvo selección explícita.
var HiddenAccountFields = []string{"passwordHash"}
