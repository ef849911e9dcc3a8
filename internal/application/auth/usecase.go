package auth

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/jhoicas/Restaurante-api/internal/application/apperr"
	"github.com/jhoicas/Restaurante-api/internal/application/dto"
	"github.com/jhoicas/Restaurante-api/internal/application/ports"
	"github.com/jhoicas/Restaurante-api/internal/domain"
	"github.com/jhoicas/Restaurante-api/internal/domain/entity"
	"github.com/jhoicas/Restaurante-api/internal/domain/repository"
)

// AuthUseCase inicio de sesión con el proveedor de identidad embebido.
type AuthUseCase struct {
	authenticator ports.PasswordAuthenticator
	users         repository.Repository[entity.User]
	log           zerolog.Logger
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(authenticator ports.PasswordAuthenticator, users repository.Repository[entity.User], log zerolog.Logger) *AuthUseCase {
	return &AuthUseCase{authenticator: authenticator, users: users, log: log}
}

// Login verifica credenciales en el proveedor y exige un usuario local activo.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	token, uid, err := uc.authenticator.SignIn(ctx, in.Email, in.Password)
	switch {
	case errors.Is(err, domain.ErrUnauthorized):
		return nil, apperr.Unauthorized("credenciales inválidas")
	case errors.Is(err, domain.ErrForbidden):
		return nil, apperr.Forbidden("la cuenta está deshabilitada")
	case err != nil:
		return nil, apperr.Internal(err)
	}

	user := uc.users.FindOneBy(ctx, repository.Condition{"externalId": uid})
	if user == nil {
		uc.log.Warn().Str("uid", uid).Msg("cuenta sin usuario local")
		return nil, apperr.Unauthorized("credenciales inválidas")
	}
	if !user.Active {
		return nil, apperr.Forbidden("usuario inactivo")
	}
	return &dto.LoginResponse{
		Token: token,
		User: dto.UserResponse{
			ID:        user.ID,
			Email:     user.Email,
			Name:      user.Name,
			Phone:     user.Phone,
			Role:      string(user.Role),
			Active:    user.Active,
			CreatedAt: user.CreatedAt,
			UpdatedAt: user.UpdatedAt,
		},
	}, nil
}
