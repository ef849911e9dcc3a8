package mongodb

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"go.mongodb.org/mongo-driver/v2/mongo/readpref"
	"go.mongodb.org/mongo-driver/v2/mongo/writeconcern"

	"github.com/jhoicas/Restaurante-api/internal/observability"
	"github.com/jhoicas/Restaurante-api/pkg/config"
)

// NewClient crea el cliente de MongoDB con el pool, el registro BSON propio y el monitor
// de pool, y verifica la conexión con un ping al primario.
func NewClient(ctx context.Context, appName string, cfg config.MongoConfig, metrics *observability.Metrics, log zerolog.Logger) (*mongo.Client, error) {
	opts := options.Client().
		ApplyURI(cfg.URI).
		SetAppName(appName).
		SetRegistry(registry).
		SetWriteConcern(EvalWriteConcern(cfg.WriteConcern)).
		SetPoolMonitor(newPoolMonitor(metrics, log))
	if cfg.MaxPool > 0 {
		opts.SetMaxPoolSize(cfg.MaxPool)
	}
	if cfg.MinPool > 0 {
		opts.SetMinPoolSize(cfg.MinPool)
	}
	if cfg.Timeout > 0 {
		opts.SetTimeout(cfg.Timeout)
	}

	client, err := mongo.Connect(opts)
	if err != nil {
		return nil, fmt.Errorf("conectar mongo: %w", err)
	}
	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout(cfg))
	defer cancel()
	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("ping mongo: %w", err)
	}
	return client, nil
}

const defaultPingTimeout = 10 * time.Second

func pingTimeout(cfg config.MongoConfig) time.Duration {
	if cfg.Timeout > 0 {
		return cfg.Timeout
	}
	return defaultPingTimeout
}

// EvalWriteConcern traduce el write concern configurado; majority por defecto.
func EvalWriteConcern(w string) *writeconcern.WriteConcern {
	switch w {
	case "", "majority":
		return writeconcern.Majority()
	case "1":
		return writeconcern.W1()
	default:
		if n, err := strconv.Atoi(w); err == nil {
			return &writeconcern.WriteConcern{W: n}
		}
		return writeconcern.Majority()
	}
}
