package usecase

import (
	"context"
	"errors"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/jhoicas/Restaurante-api/internal/application/apperr"
	"github.com/jhoicas/Restaurante-api/internal/application/dto"
	"github.com/jhoicas/Restaurante-api/internal/application/ports"
	"github.com/jhoicas/Restaurante-api/internal/domain"
	"github.com/jhoicas/Restaurante-api/internal/domain/entity"
	"github.com/jhoicas/Restaurante-api/internal/domain/permission"
	"github.com/jhoicas/Restaurante-api/internal/domain/repository"
)

// UserUseCase aplica reglas de negocio para usuarios.
type UserUseCase struct {
	repo     repository.Repository[entity.User]
	accounts ports.AccountManager
	log      zerolog.Logger
}

// NewUserUseCase construye el caso de uso. accounts puede ser nil (proveedor sin
// administración de cuentas).
func NewUserUseCase(repo repository.Repository[entity.User], accounts ports.AccountManager, log zerolog.Logger) *UserUseCase {
	return &UserUseCase{repo: repo, accounts: accounts, log: log}
}

var _ ports.PrincipalResolver = (*UserUseCase)(nil)

// ResolvePrincipal busca el usuario local enlazado al sujeto verificado.
func (uc *UserUseCase) ResolvePrincipal(ctx context.Context, subject string) (*entity.Principal, error) {
	if subject == "" {
		return nil, domain.ErrUserNotFound
	}
	user := uc.repo.FindOneBy(ctx, repository.Condition{"externalId": subject})
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	return entity.PrincipalFromUser(user, subject), nil
}

// Me devuelve el usuario autenticado.
func (uc *UserUseCase) Me(ctx context.Context, p *entity.Principal) (*dto.UserResponse, error) {
	user := uc.repo.FindOneByID(ctx, p.UserID)
	if user == nil {
		return nil, apperr.NotFound("usuario no encontrado")
	}
	return toUserResponse(user), nil
}

// List usuarios paginados; requiere rol de gestión de usuarios.
func (uc *UserUseCase) List(ctx context.Context, p *entity.Principal, page dto.PageRequest) ([]dto.UserResponse, error) {
	if !permission.CanManageUsers(p.Role) {
		return nil, apperr.Forbidden("no tiene permiso para listar usuarios")
	}
	page.DefaultPage()
	users := uc.repo.FindAll(ctx, repository.FindOptions{Limit: int64(page.Limit), Offset: int64(page.Offset)})
	out := make([]dto.UserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, *toUserResponse(u))
	}
	return out, nil
}

// Get usuario por id; cada usuario puede verse a sí mismo, los gestores a cualquiera.
func (uc *UserUseCase) Get(ctx context.Context, p *entity.Principal, id string) (*dto.UserResponse, error) {
	if err := repository.CheckID("id", id); err != nil {
		return nil, err
	}
	if id != p.UserID && !permission.CanManageUsers(p.Role) {
		return nil, apperr.Forbidden("no tiene permiso para ver este usuario")
	}
	user := uc.repo.FindOneByID(ctx, id)
	if user == nil {
		return nil, apperr.NotFound("usuario no encontrado")
	}
	return toUserResponse(user), nil
}

// Create da de alta un usuario con el rol pedido (customer por defecto). El rol otorgado
// pasa por las mismas reglas que un cambio de rol.
func (uc *UserUseCase) Create(ctx context.Context, p *entity.Principal, in dto.CreateUserRequest) (*dto.UserResponse, error) {
	if !permission.CanManageUsers(p.Role) {
		return nil, apperr.Forbidden("no tiene permiso para crear usuarios")
	}
	role := entity.RoleCustomer
	if in.Role != "" {
		r, ok := entity.ParseRole(in.Role)
		if !ok {
			return nil, apperr.BadRequest("rol inválido")
		}
		role = r
	}
	if err := permission.ValidateRoleGrant(p.Role, role); err != nil {
		return nil, apperr.FromDomain(err)
	}
	return uc.create(ctx, in.Email, in.Name, in.Phone, in.Password, in.ExternalID, role)
}

// Register autorregistro de un cliente (requiere proveedor con administración de cuentas).
func (uc *UserUseCase) Register(ctx context.Context, in dto.RegisterRequest) (*dto.UserResponse, error) {
	if uc.accounts == nil {
		return nil, apperr.New(http.StatusMethodNotAllowed, "el registro se hace en el proveedor de identidad")
	}
	return uc.create(ctx, in.Email, in.Name, in.Phone, in.Password, "", entity.RoleCustomer)
}

// BootstrapAdmin crea el primer administrador sin actor. Falla con 409 si ya existe un admin.
func (uc *UserUseCase) BootstrapAdmin(ctx context.Context, in dto.CreateUserRequest) (*dto.UserResponse, error) {
	if uc.repo.FindOneBy(ctx, repository.Condition{"role": entity.RoleAdmin}) != nil {
		return nil, apperr.Conflict("ya existe un administrador")
	}
	return uc.create(ctx, in.Email, in.Name, in.Phone, in.Password, in.ExternalID, entity.RoleAdmin)
}

func (uc *UserUseCase) create(ctx context.Context, email, name, phone, password, externalID string, role entity.Role) (*dto.UserResponse, error) {
	email = normalizeEmail(email)
	createdAccount := false
	if externalID == "" {
		if uc.accounts == nil {
			return nil, apperr.BadRequest("externalId es obligatorio con el proveedor de identidad configurado")
		}
		if password == "" {
			return nil, apperr.BadRequest("password es obligatorio")
		}
		uid, err := uc.accounts.CreateAccount(ctx, email, password, name)
		if err != nil {
			return nil, apperr.FromDomain(err)
		}
		externalID = uid
		createdAccount = true
	}

	user, err := uc.repo.Insert(ctx, &entity.User{
		ExternalID: externalID,
		Email:      email,
		Name:       normalizeName(name),
		Phone:      phone,
		Role:       role,
		Active:     true,
	})
	if err != nil {
		if createdAccount {
			if derr := uc.accounts.DeleteAccount(ctx, externalID); derr != nil {
				uc.log.Error().Err(derr).Str("uid", externalID).Msg("no se pudo revertir la cuenta creada")
			}
		}
		return nil, apperr.FromDomain(err)
	}
	uc.log.Info().Str("user_id", user.ID).Str("role", string(role)).Msg("usuario creado")
	return toUserResponse(user), nil
}

// ChangeRole cambia el rol de un usuario tras pasar el validador de cambios de rol.
func (uc *UserUseCase) ChangeRole(ctx context.Context, p *entity.Principal, targetID string, in dto.ChangeRoleRequest) (*dto.UserResponse, error) {
	if err := repository.CheckID("id", targetID); err != nil {
		return nil, err
	}
	newRole, ok := entity.ParseRole(in.Role)
	if !ok {
		return nil, apperr.BadRequest("rol inválido")
	}
	target := uc.repo.FindOneByID(ctx, targetID)
	if target == nil {
		return nil, apperr.NotFound("usuario no encontrado")
	}
	if err := permission.ValidateRoleChange(p.UserID, p.Role, target.ID, newRole); err != nil {
		return nil, apperr.FromDomain(err)
	}
	if target.Role == newRole {
		return toUserResponse(target), nil
	}
	if !uc.repo.UpdateOneBy(ctx, repository.Condition{"_id": target.ID}, repository.Fields{"role": newRole}) {
		return nil, apperr.Internal(errors.New("no se pudo actualizar el rol"))
	}
	uc.log.Info().Str("user_id", target.ID).Str("from", string(target.Role)).Str("to", string(newRole)).
		Str("by", p.UserID).Msg("rol actualizado")
	target.Role = newRole
	if fresh := uc.repo.FindOneByID(ctx, target.ID); fresh != nil {
		target = fresh
	}
	return toUserResponse(target), nil
}

// SetActive activa o desactiva un usuario y su cuenta en el proveedor.
// No se puede cambiar el estado propio ni el de un rol superior.
func (uc *UserUseCase) SetActive(ctx context.Context, p *entity.Principal, targetID string, active bool) (*dto.UserResponse, error) {
	if !permission.CanManageUsers(p.Role) {
		return nil, apperr.Forbidden("no tiene permiso para activar o desactivar usuarios")
	}
	if err := repository.CheckID("id", targetID); err != nil {
		return nil, err
	}
	if targetID == p.UserID {
		return nil, apperr.Forbidden("no puede cambiar su propio estado")
	}
	target := uc.repo.FindOneByID(ctx, targetID, repository.FindOptions{Select: []string{"externalId"}})
	if target == nil {
		return nil, apperr.NotFound("usuario no encontrado")
	}
	if target.Role.Level() > p.Role.Level() {
		return nil, apperr.Forbidden("no puede cambiar el estado de un rol superior")
	}
	if target.Active == active {
		return toUserResponse(target), nil
	}
	if uc.accounts != nil {
		if err := uc.accounts.SetAccountDisabled(ctx, target.ExternalID, !active); err != nil && !errors.Is(err, domain.ErrNotFound) {
			return nil, apperr.BadGateway("el proveedor de identidad rechazó el cambio").Wrapf(err, "deshabilitar cuenta %s", target.ExternalID)
		}
	}
	if !uc.repo.UpdateOneBy(ctx, repository.Condition{"_id": target.ID}, repository.Fields{"active": active}) {
		return nil, apperr.Internal(errors.New("no se pudo actualizar el estado"))
	}
	target.Active = active
	return toUserResponse(target), nil
}

// Delete elimina un usuario y su cuenta en el proveedor; solo admin.
func (uc *UserUseCase) Delete(ctx context.Context, p *entity.Principal, targetID string) error {
	if !permission.CanDeleteUsers(p.Role) {
		return apperr.Forbidden("solo un administrador puede eliminar usuarios")
	}
	if err := repository.CheckID("id", targetID); err != nil {
		return err
	}
	if targetID == p.UserID {
		return apperr.Forbidden("no puede eliminarse a sí mismo")
	}
	target := uc.repo.FindOneByID(ctx, targetID, repository.FindOptions{Select: []string{"externalId"}})
	if target == nil {
		return apperr.NotFound("usuario no encontrado")
	}
	if uc.accounts != nil {
		if err := uc.accounts.DeleteAccount(ctx, target.ExternalID); err != nil && !errors.Is(err, domain.ErrNotFound) {
			return apperr.BadGateway("el proveedor de identidad rechazó la eliminación").Wrapf(err, "eliminar cuenta %s", target.ExternalID)
		}
	}
	if !uc.repo.DeleteOneBy(ctx, repository.Condition{"_id": target.ID}) {
		return apperr.Internal(errors.New("no se pudo eliminar el usuario"))
	}
	uc.log.Info().Str("user_id", target.ID).Str("by", p.UserID).Msg("usuario eliminado")
	return nil
}

func toUserResponse(u *entity.User) *dto.UserResponse {
	if u == nil {
		return nil
	}
	return &dto.UserResponse{
		ID:        u.ID,
		Email:     u.Email,
		Name:      u.Name,
		Phone:     u.Phone,
		Role:      string(u.Role),
		Active:    u.Active,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}
