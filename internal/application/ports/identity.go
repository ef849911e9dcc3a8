package ports

import (
	"context"

	"github.com/jhoicas/Restaurante-api/internal/domain/entity"
)

// VerifiedToken resultado de verificar un token del proveedor de identidad.
type VerifiedToken struct {
	Subject string
	Claims  map[string]any
}

// TokenVerifier verifica tokens bearer contra el proveedor externo de identidad.
// Cualquier error (red, firma, expiración) significa token no válido.
type TokenVerifier interface {
	VerifyToken(ctx context.Context, token string) (*VerifiedToken, error)
}

// PrincipalResolver resuelve el usuario local enlazado a un sujeto verificado.
type PrincipalResolver interface {
	ResolvePrincipal(ctx context.Context, subject string) (*entity.Principal, error)
}

// AccountManager ciclo de vida de cuentas en el proveedor de identidad.
// Es nil cuando el proveedor no permite administrar cuentas desde la aplicación.
type AccountManager interface {
	CreateAccount(ctx context.Context, email, password, displayName string) (uid string, err error)
	SetAccountDisabled(ctx context.Context, uid string, disabled bool) error
	DeleteAccount(ctx context.Context, uid string) error
}

// PasswordAuthenticator inicio de sesión con correo y contraseña.
type PasswordAuthenticator interface {
	// SignIn devuelve el token emitido y el UID de la cuenta; domain.ErrUnauthorized si
	// las credenciales no son válidas, domain.ErrForbidden si la cuenta está deshabilitada.
	SignIn(ctx context.Context, email, password string) (token, uid string, err error)
}
