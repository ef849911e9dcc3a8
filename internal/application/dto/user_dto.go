package dto

import "time"

// CreateUserRequest alta de un usuario por un administrador del restaurante.
// Con proveedor local se crea también la cuenta (Password obligatorio); con OIDC se enlaza
// una identidad existente (ExternalID obligatorio).
type CreateUserRequest struct {
	Email      string `json:"email" validate:"required,email"`
	Name       string `json:"name" validate:"required,min=1,max=200"`
	Phone      string `json:"phone" validate:"omitempty,max=30"`
	Role       string `json:"role" validate:"omitempty,oneof=customer waiter kitchen_staff manager owner admin"`
	Password   string `json:"password" validate:"omitempty,min=8"`
	ExternalID string `json:"externalId" validate:"omitempty,max=128"`
}

// RegisterRequest autorregistro de clientes (solo proveedor local).
type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Name     string `json:"name" validate:"required,min=1,max=200"`
	Phone    string `json:"phone" validate:"omitempty,max=30"`
}

// ChangeRoleRequest cambio de rol de un usuario.
type ChangeRoleRequest struct {
	Role string `json:"role" validate:"required,oneof=customer waiter kitchen_staff manager owner admin"`
}

// SetActiveRequest activación o desactivación de un usuario.
type SetActiveRequest struct {
	Active *bool `json:"active" validate:"required"`
}

// UserResponse salida de un usuario.
type UserResponse struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Phone     string    `json:"phone,omitempty"`
	Role      string    `json:"role"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// LoginRequest entrada para login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse token emitido y usuario local.
type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}
