package mongodb

import (
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/v2/event"

	"github.com/jhoicas/Restaurante-api/internal/observability"
)

const (
	poolStateOpen  = "open"
	poolStateInUse = "in_use"
)

// newPoolMonitor publica los eventos del pool de conexiones como métricas Prometheus.
func newPoolMonitor(metrics *observability.Metrics, log zerolog.Logger) *event.PoolMonitor {
	return &event.PoolMonitor{
		Event: func(e *event.PoolEvent) {
			handlePoolEvent(metrics, log, e)
		},
	}
}

func handlePoolEvent(metrics *observability.Metrics, log zerolog.Logger, e *event.PoolEvent) {
	if e == nil {
		return
	}
	switch e.Type {
	case event.ConnectionCreated:
		// Una conexión creada puede cerrarse sin llegar a estar lista.
		metrics.PoolConnection(e.Address, poolStateOpen, 1)
	case event.ConnectionClosed:
		metrics.PoolConnection(e.Address, poolStateOpen, -1)
	case event.ConnectionReady:
		metrics.PoolEvent(e.Address, e.Type)
	case event.ConnectionCheckedOut:
		metrics.PoolAcquire(e.Address, e.Duration)
		metrics.PoolConnection(e.Address, poolStateInUse, 1)
	case event.ConnectionCheckedIn:
		metrics.PoolConnection(e.Address, poolStateInUse, -1)
	case event.ConnectionCheckOutFailed:
		metrics.PoolEvent(e.Address, e.Type)
		log.Error().Str("address", e.Address).Str("reason", e.Reason).Msg("mongo: no se pudo obtener conexión del pool")
	default:
		return
	}
}
