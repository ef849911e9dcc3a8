package entity

import "strings"

// Role nivel de autorización de un usuario.
// Jerarquía: customer < waiter < kitchen_staff < manager < owner < admin.
type Role string

// Roles válidos para User.
const (
	RoleCustomer     Role = "customer"
	RoleWaiter       Role = "waiter"
	RoleKitchenStaff Role = "kitchen_staff"
	RoleManager      Role = "manager"
	RoleOwner        Role = "owner"
	RoleAdmin        Role = "admin"
)

// AllRoles en orden jerárquico ascendente.
var AllRoles = []Role{RoleCustomer, RoleWaiter, RoleKitchenStaff, RoleManager, RoleOwner, RoleAdmin}

// Valid indica si el rol es uno de los seis definidos.
func (r Role) Valid() bool {
	return r.Level() > 0
}

// Level posición en la jerarquía (1..6); 0 para valores desconocidos.
func (r Role) Level() int {
	for i, role := range AllRoles {
		if role == r {
			return i + 1
		}
	}
	return 0
}

// In indica si el rol pertenece al conjunto dado.
func (r Role) In(set ...Role) bool {
	for _, s := range set {
		if s == r {
			return true
		}
	}
	return false
}

func (r Role) String() string { return string(r) }

// ParseRole normaliza y valida un rol recibido como texto.
func ParseRole(s string) (Role, bool) {
	r := Role(strings.ToLower(strings.TrimSpace(s)))
	return r, r.Valid()
}
