package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Proveedores de identidad soportados.
const (
	IdentityOIDC  = "oidc"
	IdentityLocal = "local"
)

// Config agrupa la configuración de la aplicación (lectura vía Viper desde env y opcionalmente archivo).
type Config struct {
	App      AppConfig
	HTTP     HTTPConfig
	Mongo    MongoConfig
	Identity IdentityConfig
	JWT      JWTConfig
	Metrics  MetricsConfig
}

// AppConfig configuración general de la aplicación.
type AppConfig struct {
	Env      string // development, staging, production
	Name     string
	LogLevel string
}

// IsProduction indica si se ejecuta en producción.
func (c AppConfig) IsProduction() bool {
	return c.Env == "production"
}

// HTTPConfig configuración del servidor HTTP.
type HTTPConfig struct {
	Host            string
	Port            int
	RateLimitMax    int
	RateLimitWindow time.Duration
}

// Addr devuelve la dirección de escucha (host:port).
func (c HTTPConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// MongoConfig configuración de MongoDB.
type MongoConfig struct {
	URI          string
	Database     string
	MinPool      uint64
	MaxPool      uint64
	Timeout      time.Duration
	WriteConcern string // "majority", "1" o un número de nodos
}

// IdentityConfig proveedor externo de identidad.
type IdentityConfig struct {
	Provider  string // oidc | local
	IssuerURL string
	ClientID  string
}

// JWTConfig configuración de JWT para el proveedor local.
type JWTConfig struct {
	Secret     string
	Expiration int // minutos
	Issuer     string
}

// MetricsConfig exposición de métricas Prometheus.
type MetricsConfig struct {
	Enabled bool
}

// Load lee la configuración desde variables de entorno (y opcionalmente desde archivo).
// Las env vars tienen prioridad. Nombres esperados: APP_ENV, MONGO_URI, JWT_SECRET, etc.
func Load() (*Config, error) {
	v := viper.New()

	// Opcional: archivo de configuración (.env o config.env)
	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // ignoramos error si no existe

	v.SetConfigName("config")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	_ = v.ReadInConfig()

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	return FromViper(v)
}

// FromViper construye la configuración desde una instancia de viper ya cargada.
func FromViper(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		App: AppConfig{
			Env:      getString(v, "APP_ENV", "development"),
			Name:     getString(v, "APP_NAME", "restaurante-api"),
			LogLevel: getString(v, "LOG_LEVEL", "info"),
		},
		HTTP: HTTPConfig{
			Host:            getString(v, "HTTP_HOST", "0.0.0.0"),
			Port:            getInt(v, "HTTP_PORT", 8080),
			RateLimitMax:    getInt(v, "HTTP_RATE_LIMIT_MAX", 100),
			RateLimitWindow: time.Duration(getInt(v, "HTTP_RATE_LIMIT_WINDOW_SECONDS", 60)) * time.Second,
		},
		Mongo: MongoConfig{
			URI:          getString(v, "MONGO_URI", "mongodb://localhost:27017"),
			Database:     getString(v, "MONGO_DATABASE", "restaurante"),
			MinPool:      uint64(getInt(v, "MONGO_MIN_POOL", 2)),
			MaxPool:      uint64(getInt(v, "MONGO_MAX_POOL", 25)),
			Timeout:      time.Duration(getInt(v, "MONGO_TIMEOUT_SECONDS", 10)) * time.Second,
			WriteConcern: getString(v, "MONGO_WRITE_CONCERN", "majority"),
		},
		Identity: IdentityConfig{
			Provider:  strings.ToLower(getString(v, "IDENTITY_PROVIDER", IdentityLocal)),
			IssuerURL: getString(v, "OIDC_ISSUER_URL", ""),
			ClientID:  getString(v, "OIDC_CLIENT_ID", ""),
		},
		JWT: JWTConfig{
			Secret:     getString(v, "JWT_SECRET", ""),
			Expiration: getInt(v, "JWT_EXPIRATION_MINUTES", 60),
			Issuer:     getString(v, "JWT_ISSUER", "restaurante-api"),
		},
		Metrics: MetricsConfig{
			Enabled: getBool(v, "METRICS_ENABLED", true),
		},
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch c.Identity.Provider {
	case IdentityOIDC:
		if c.Identity.IssuerURL == "" || c.Identity.ClientID == "" {
			return fmt.Errorf("config: OIDC_ISSUER_URL y OIDC_CLIENT_ID son obligatorios con IDENTITY_PROVIDER=oidc")
		}
	case IdentityLocal:
		if c.JWT.Secret == "" {
			return fmt.Errorf("config: JWT_SECRET es obligatorio con IDENTITY_PROVIDER=local")
		}
	default:
		return fmt.Errorf("config: IDENTITY_PROVIDER desconocido %q", c.Identity.Provider)
	}
	if c.Mongo.MinPool > c.Mongo.MaxPool {
		return fmt.Errorf("config: MONGO_MIN_POOL (%d) mayor que MONGO_MAX_POOL (%d)", c.Mongo.MinPool, c.Mongo.MaxPool)
	}
	return nil
}

func getString(v *viper.Viper, key, def string) string {
	if v.IsSet(key) {
		return v.GetString(key)
	}
	return def
}

func getInt(v *viper.Viper, key string, def int) int {
	if v.IsSet(key) {
		switch v.Get(key).(type) {
		case int:
			return v.GetInt(key)
		case string:
			n, err := strconv.Atoi(strings.TrimSpace(v.GetString(key)))
			if err != nil {
				return def
			}
			return n
		default:
			return v.GetInt(key)
		}
	}
	return def
}

func getBool(v *viper.Viper, key string, def bool) bool {
	if v.IsSet(key) {
		return v.GetBool(key)
	}
	return def
}
