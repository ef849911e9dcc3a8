package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromViper_Defaults(t *testing.T) {
	v := viper.New()
	v.Set("JWT_SECRET", "secreto")

	cfg, err := FromViper(v)
	require.NoError(t, err)
	assert.Equal(t, "development", cfg.App.Env)
	assert.False(t, cfg.App.IsProduction())
	assert.Equal(t, "0.0.0.0:8080", cfg.HTTP.Addr())
	assert.Equal(t, time.Minute, cfg.HTTP.RateLimitWindow)
	assert.Equal(t, IdentityLocal, cfg.Identity.Provider)
	assert.Equal(t, "restaurante", cfg.Mongo.Database)
	assert.Equal(t, 10*time.Second, cfg.Mongo.Timeout)
	assert.True(t, cfg.Metrics.Enabled)
}

func TestFromViper_ValoresComoTexto(t *testing.T) {
	v := viper.New()
	v.Set("JWT_SECRET", "secreto")
	v.Set("HTTP_PORT", "9090")
	v.Set("MONGO_MAX_POOL", "50")
	v.Set("APP_ENV", "production")

	cfg, err := FromViper(v)
	require.NoError(t, err)
	assert.Equal(t, 9090, cfg.HTTP.Port)
	assert.Equal(t, uint64(50), cfg.Mongo.MaxPool)
	assert.True(t, cfg.App.IsProduction())
}

func TestFromViper_OIDCRequiereIssuer(t *testing.T) {
	v := viper.New()
	v.Set("IDENTITY_PROVIDER", "OIDC")

	_, err := FromViper(v)
	require.Error(t, err)

	v.Set("OIDC_ISSUER_URL", "https://securetoken.google.com/restaurante")
	v.Set("OIDC_CLIENT_ID", "restaurante")
	cfg, err := FromViper(v)
	require.NoError(t, err)
	assert.Equal(t, IdentityOIDC, cfg.Identity.Provider)
}

func TestFromViper_LocalRequiereSecreto(t *testing.T) {
	_, err := FromViper(viper.New())
	assert.Error(t, err)
}

func TestFromViper_PoolInvalido(t *testing.T) {
	v := viper.New()
	v.Set("JWT_SECRET", "secreto")
	v.Set("MONGO_MIN_POOL", 30)
	v.Set("MONGO_MAX_POOL", 10)

	_, err := FromViper(v)
	assert.Error(t, err)
}
