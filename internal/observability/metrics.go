package observability

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics agrupa las métricas Prometheus de la aplicación. Un *Metrics nil es válido
// y no registra nada.
type Metrics struct {
	registry        *prometheus.Registry
	handler         http.Handler
	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	storeErrors     *prometheus.CounterVec
	poolConnections *prometheus.GaugeVec
	poolEvents      *prometheus.CounterVec
	poolAcquire     *prometheus.HistogramVec
}

// NewMetrics inicializa el registro y las métricas base.
func NewMetrics(namespace string) *Metrics {
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	m := &Metrics{
		registry: registry,
		requestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Peticiones HTTP por ruta, método y código.",
		}, []string{"route", "method", "code"}),
		requestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "Duración de las peticiones HTTP por ruta.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route", "method"}),
		storeErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "repository_swallowed_errors_total",
			Help:      "Errores del almacén registrados y colapsados por el repositorio genérico.",
		}, []string{"collection", "operation"}),
		poolConnections: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "mongo_pool_connections",
			Help:      "Conexiones del pool de MongoDB por estado.",
		}, []string{"address", "state"}),
		poolEvents: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "mongo_pool_events_total",
			Help:      "Eventos del pool de MongoDB.",
		}, []string{"address", "event"}),
		poolAcquire: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "mongo_pool_acquire_seconds",
			Help:      "Tiempo para obtener una conexión del pool.",
			Buckets:   []float64{0.0001, 0.001, 0.01, 0.1, 0.2, 0.5, 1, 2},
		}, []string{"address"}),
	}
	registry.MustRegister(m.requestsTotal, m.requestDuration, m.storeErrors, m.poolConnections, m.poolEvents, m.poolAcquire)
	m.handler = promhttp.HandlerFor(registry, promhttp.HandlerOpts{Registry: registry})
	return m
}

// Handler handler de Fiber para el endpoint /metrics.
func (m *Metrics) Handler() fiber.Handler {
	if m == nil {
		return func(c *fiber.Ctx) error {
			return fiber.ErrServiceUnavailable
		}
	}
	return adaptor.HTTPHandler(m.handler)
}

// Middleware registra cantidad y duración de cada petición.
func (m *Metrics) Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if m == nil {
			return c.Next()
		}
		start := time.Now()
		// El error se traduce aquí para medir el estado que recibe el cliente.
		if err := c.Next(); err != nil {
			if herr := c.App().Config().ErrorHandler(c, err); herr != nil {
				_ = c.SendStatus(fiber.StatusInternalServerError)
			}
		}

		status := c.Response().StatusCode()
		route := "unknown"
		if r := c.Route(); r != nil && r.Path != "" {
			route = r.Path
		}
		method := c.Method()
		m.requestsTotal.WithLabelValues(route, method, strconv.Itoa(status)).Inc()
		m.requestDuration.WithLabelValues(route, method).Observe(time.Since(start).Seconds())
		return nil
	}
}

// StoreError cuenta un error del almacén que el repositorio registró y colapsó.
func (m *Metrics) StoreError(collection, operation string) {
	if m == nil {
		return
	}
	m.storeErrors.WithLabelValues(collection, operation).Inc()
}

// PoolConnection ajusta el gauge de conexiones del pool (delta +1/-1).
func (m *Metrics) PoolConnection(address, state string, delta float64) {
	if m == nil {
		return
	}
	m.poolConnections.WithLabelValues(address, state).Add(delta)
}

// PoolEvent cuenta un evento del pool.
func (m *Metrics) PoolEvent(address, event string) {
	if m == nil {
		return
	}
	m.poolEvents.WithLabelValues(address, event).Inc()
}

// PoolAcquire registra el tiempo de obtención de una conexión.
func (m *Metrics) PoolAcquire(address string, d time.Duration) {
	if m == nil {
		return
	}
	m.poolAcquire.WithLabelValues(address).Observe(d.Seconds())
}

// Registerer expone el registro para métricas propias.
func (m *Metrics) Registerer() prometheus.Registerer {
	if m == nil {
		return prometheus.NewRegistry()
	}
	return m.registry
}
