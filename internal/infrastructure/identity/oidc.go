package identity

import (
	"context"
	"errors"
	"fmt"

	"github.com/coreos/go-oidc/v3/oidc"

	"github.com/jhoicas/Restaurante-api/internal/application/ports"
)

// OIDCVerifier verifica ID tokens de un proveedor OpenID Connect (Firebase, Auth0,
// Keycloak...). El sujeto del token es el externalId del usuario local.
type OIDCVerifier struct {
	verifier *oidc.IDTokenVerifier
}

var _ ports.TokenVerifier = (*OIDCVerifier)(nil)

// NewOIDCVerifier descubre el proveedor en issuerURL y construye el verificador para clientID.
func NewOIDCVerifier(ctx context.Context, issuerURL, clientID string) (*OIDCVerifier, error) {
	if issuerURL == "" || clientID == "" {
		return nil, errors.New("identity: issuer y client id son obligatorios")
	}
	provider, err := oidc.NewProvider(ctx, issuerURL)
	if err != nil {
		return nil, fmt.Errorf("identity: descubrir proveedor OIDC: %w", err)
	}
	return &OIDCVerifier{verifier: provider.Verifier(&oidc.Config{ClientID: clientID})}, nil
}

// NewOIDCVerifierWithKeys verificador con un juego de llaves fijo, sin descubrimiento.
func NewOIDCVerifierWithKeys(issuerURL string, keys oidc.KeySet, config *oidc.Config) *OIDCVerifier {
	return &OIDCVerifier{verifier: oidc.NewVerifier(issuerURL, keys, config)}
}

// VerifyToken valida firma, emisor, audiencia y expiración del ID token.
func (v *OIDCVerifier) VerifyToken(ctx context.Context, token string) (*ports.VerifiedToken, error) {
	idToken, err := v.verifier.Verify(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("identity: token inválido: %w", err)
	}
	var claims map[string]any
	if err := idToken.Claims(&claims); err != nil {
		return nil, fmt.Errorf("identity: leer claims: %w", err)
	}
	if idToken.Subject == "" {
		return nil, errors.New("identity: token sin sujeto")
	}
	return &ports.VerifiedToken{Subject: idToken.Subject, Claims: claims}, nil
}
