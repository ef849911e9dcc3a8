package permission

import (
	"fmt"

	"github.com/jhoicas/Restaurante-api/internal/domain"
	"github.com/jhoicas/Restaurante-api/internal/domain/entity"
)

// Motivos de rechazo; todos envuelven domain.ErrForbidden.
var (
	ErrSelfRoleChange     = fmt.Errorf("%w: no puede cambiar su propio rol", domain.ErrForbidden)
	ErrAdminGrant         = fmt.Errorf("%w: solo un admin puede asignar el rol admin", domain.ErrForbidden)
	ErrOwnerGrant         = fmt.Errorf("%w: solo un admin puede asignar el rol owner", domain.ErrForbidden)
	ErrManagerGrant       = fmt.Errorf("%w: solo admin u owner pueden asignar el rol manager", domain.ErrForbidden)
	ErrRoleChangeRejected = fmt.Errorf("%w: su rol no permite cambiar roles", domain.ErrForbidden)
)

// ValidateRoleChange valida, en orden, que requester pueda asignar newRole a target.
// El primer chequeo que falla determina el error.
func ValidateRoleChange(requesterID string, requesterRole entity.Role, targetID string, newRole entity.Role) error {
	if requesterID == targetID {
		return ErrSelfRoleChange
	}
	return ValidateRoleGrant(requesterRole, newRole)
}

// ValidateRoleGrant reglas 2 a 5 de ValidateRoleChange; se reutiliza al crear usuarios con rol.
func ValidateRoleGrant(requesterRole, newRole entity.Role) error {
	switch {
	case newRole == entity.RoleAdmin && requesterRole != entity.RoleAdmin:
		return ErrAdminGrant
	case newRole == entity.RoleOwner && !CanCreateOwners(requesterRole):
		return ErrOwnerGrant
	case newRole == entity.RoleManager && !requesterRole.In(entity.RoleAdmin, entity.RoleOwner):
		return ErrManagerGrant
	case !CanChangeRoles(requesterRole):
		return ErrRoleChangeRejected
	}
	return nil
}
