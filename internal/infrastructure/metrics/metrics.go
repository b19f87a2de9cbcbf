// Package metrics registra los collectors Prometheus del servicio.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/ecoplaza/ecoplaza-api/internal/application/ports"
)

var _ ports.Metrics = (*Metrics)(nil)

// Metrics collectors HTTP y de dominio.
type Metrics struct {
	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	transiciones    *prometheus.CounterVec
	rbacHits        prometheus.Counter
	rbacMisses      prometheus.Counter
	webhookEnvios   *prometheus.CounterVec
}

// New registra los collectors en reg.
func New(reg prometheus.Registerer) *Metrics {
	promFactory := promauto.With(reg)
	return &Metrics{
		requestsTotal: promFactory.NewCounterVec(prometheus.CounterOpts{
			Name: "ecoplaza_http_requests_total",
			Help: "Total de requests HTTP atendidos",
		}, []string{"method", "route", "status"}),
		requestDuration: promFactory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "ecoplaza_http_request_duration_seconds",
			Help:    "Duración de los requests HTTP",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}, []string{"method", "route"}),
		transiciones: promFactory.NewCounterVec(prometheus.CounterOpts{
			Name: "ecoplaza_locales_transiciones_total",
			Help: "Cambios de estado del semáforo de locales",
		}, []string{"desde", "hacia"}),
		rbacHits: promFactory.NewCounter(prometheus.CounterOpts{
			Name: "ecoplaza_rbac_cache_hits_total",
			Help: "Consultas de permisos resueltas desde caché",
		}),
		rbacMisses: promFactory.NewCounter(prometheus.CounterOpts{
			Name: "ecoplaza_rbac_cache_misses_total",
			Help: "Consultas de permisos que fueron a base de datos",
		}),
		webhookEnvios: promFactory.NewCounterVec(prometheus.CounterOpts{
			Name: "ecoplaza_webhook_envios_total",
			Help: "Envíos de webhooks salientes por resultado",
		}, []string{"resultado"}),
	}
}

// ObserveHTTP registra un request terminado. route es el patrón, no el path.
func (m *Metrics) ObserveHTTP(method, route string, status int, d time.Duration) {
	m.requestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.requestDuration.WithLabelValues(method, route).Observe(d.Seconds())
}

func (m *Metrics) LocalTransicion(desde, hacia string) {
	m.transiciones.WithLabelValues(desde, hacia).Inc()
}

func (m *Metrics) RBACCacheHit()  { m.rbacHits.Inc() }
func (m *Metrics) RBACCacheMiss() { m.rbacMisses.Inc() }

func (m *Metrics) WebhookEnvio(resultado string) {
	m.webhookEnvios.WithLabelValues(resultado).Inc()
}
