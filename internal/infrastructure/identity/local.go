package identity

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/Restaurante-api/internal/application/ports"
	"github.com/jhoicas/Restaurante-api/internal/domain"
	"github.com/jhoicas/Restaurante-api/internal/domain/repository"
	"github.com/jhoicas/Restaurante-api/pkg/jwt"
)

// LocalConfig parámetros de emisión de tokens del proveedor local.
type LocalConfig struct {
	Secret     string
	Issuer     string
	ExpMinutes int
	// BcryptCost 0 usa bcrypt.DefaultCost.
	BcryptCost int
}

// LocalProvider proveedor de identidad embebido: cuentas con contraseña bcrypt y tokens
// HS256. Implementa TokenVerifier, AccountManager y PasswordAuthenticator.
type LocalProvider struct {
	accounts repository.Repository[Account]
	cfg      LocalConfig
	now      func() time.Time
	log      zerolog.Logger
}

var (
	_ ports.TokenVerifier         = (*LocalProvider)(nil)
	_ ports.AccountManager        = (*LocalProvider)(nil)
	_ ports.PasswordAuthenticator = (*LocalProvider)(nil)
)

// NewLocalProvider construye el proveedor local.
func NewLocalProvider(accounts repository.Repository[Account], cfg LocalConfig, log zerolog.Logger) (*LocalProvider, error) {
	if cfg.Secret == "" {
		return nil, errors.New("identity: secret vacío")
	}
	if cfg.BcryptCost == 0 {
		cfg.BcryptCost = bcrypt.DefaultCost
	}
	if cfg.ExpMinutes <= 0 {
		cfg.ExpMinutes = 60
	}
	return &LocalProvider{accounts: accounts, cfg: cfg, now: time.Now, log: log}, nil
}

// VerifyToken valida firma, expiración y emisor de un token emitido por SignIn.
func (p *LocalProvider) VerifyToken(_ context.Context, token string) (*ports.VerifiedToken, error) {
	claims, err := jwt.Parse(p.cfg.Secret, p.cfg.Issuer, token)
	if err != nil {
		return nil, fmt.Errorf("identity: token inválido: %w", err)
	}
	out := map[string]any{
		"sub":   claims.Subject,
		"iss":   claims.Issuer,
		"email": claims.Email,
	}
	if claims.ExpiresAt != nil {
		out["exp"] = claims.ExpiresAt.Unix()
	}
	return &ports.VerifiedToken{Subject: claims.Subject, Claims: out}, nil
}

// CreateAccount registra una cuenta nueva y devuelve su UID. Un correo ya registrado
// devuelve el *domain.DuplicateKeyError del repositorio.
func (p *LocalProvider) CreateAccount(ctx context.Context, email, password, displayName string) (string, error) {
	if len(password) < 8 {
		return "", fmt.Errorf("%w: la contraseña debe tener al menos 8 caracteres", domain.ErrInvalidInput)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), p.cfg.BcryptCost)
	if err != nil {
		return "", fmt.Errorf("identity: hash de contraseña: %w", err)
	}
	acc, err := p.accounts.Insert(ctx, &Account{
		UID:          uuid.New().String(),
		Email:        strings.ToLower(strings.TrimSpace(email)),
		DisplayName:  displayName,
		PasswordHash: string(hash),
	})
	if err != nil {
		return "", err
	}
	p.log.Info().Str("uid", acc.UID).Msg("cuenta creada")
	return acc.UID, nil
}

// SetAccountDisabled habilita o deshabilita la cuenta; domain.ErrNotFound si no existe.
func (p *LocalProvider) SetAccountDisabled(ctx context.Context, uid string, disabled bool) error {
	if !p.accounts.UpdateOneBy(ctx, repository.Condition{"uid": uid}, repository.Fields{"disabled": disabled}) {
		return fmt.Errorf("%w: cuenta %s", domain.ErrNotFound, uid)
	}
	return nil
}

// DeleteAccount elimina la cuenta; domain.ErrNotFound si no existe.
func (p *LocalProvider) DeleteAccount(ctx context.Context, uid string) error {
	if !p.accounts.DeleteOneBy(ctx, repository.Condition{"uid": uid}) {
		return fmt.Errorf("%w: cuenta %s", domain.ErrNotFound, uid)
	}
	return nil
}

// SignIn verifica correo y contraseña y emite un token para la cuenta.
func (p *LocalProvider) SignIn(ctx context.Context, email, password string) (string, string, error) {
	acc := p.accounts.FindOneBy(ctx,
		repository.Condition{"email": strings.ToLower(strings.TrimSpace(email))},
		repository.FindOptions{Select: HiddenAccountFields},
	)
	if acc == nil {
		return "", "", domain.ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword([]byte(acc.PasswordHash), []byte(password)); err != nil {
		return "", "", domain.ErrUnauthorized
	}
	if acc.Disabled {
		return "", "", domain.ErrForbidden
	}
	token, err := jwt.GenerateAt(p.now(), p.cfg.Secret, acc.UID, acc.Email, p.cfg.Issuer, p.cfg.ExpMinutes)
	if err != nil {
		return "", "", err
	}
	return token, acc.UID, nil
}
