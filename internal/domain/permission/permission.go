// Package permission centraliza el mapeo rol → capacidad.
// Las funciones son puras: sin efectos secundarios ni modos de fallo.
package permission

import "github.com/jhoicas/Restaurante-api/internal/domain/entity"

// CanManageUsers crear, listar y activar/desactivar usuarios.
func CanManageUsers(role entity.Role) bool {
	return role.In(entity.RoleManager, entity.RoleOwner, entity.RoleAdmin)
}

// CanChangeRoles mismo conjunto que CanManageUsers.
func CanChangeRoles(role entity.Role) bool {
	return role.In(entity.RoleManager, entity.RoleOwner, entity.RoleAdmin)
}

// CanDeleteUsers solo admin.
func CanDeleteUsers(role entity.Role) bool {
	return role == entity.RoleAdmin
}

// CanCreateOwners solo admin.
func CanCreateOwners(role entity.Role) bool {
	return role == entity.RoleAdmin
}

// CanManageOrders crear y pagar comandas: cualquier rol.
func CanManageOrders(role entity.Role) bool {
	return role.In(entity.AllRoles...)
}

// CanTakeOrders tomar y servir comandas en sala.
func CanTakeOrders(role entity.Role) bool {
	return role.In(entity.RoleWaiter, entity.RoleManager, entity.RoleOwner, entity.RoleAdmin)
}

// CanPrepareOrders preparar comandas en cocina.
func CanPrepareOrders(role entity.Role) bool {
	return role.In(entity.RoleKitchenStaff, entity.RoleManager, entity.RoleOwner, entity.RoleAdmin)
}

// CanSuperviseRestaurant supervisión completa del restaurante.
func CanSuperviseRestaurant(role entity.Role) bool {
	return role.In(entity.RoleOwner, entity.RoleAdmin)
}
