package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_Contadores(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg)

	m.ObserveHTTP("GET", "/api/locales", 200, 15*time.Millisecond)
	m.ObserveHTTP("GET", "/api/locales", 200, 5*time.Millisecond)
	m.LocalTransicion("verde", "amarillo")
	m.RBACCacheHit()
	m.RBACCacheMiss()
	m.RBACCacheMiss()
	m.WebhookEnvio("ok")

	assert.Equal(t, 2.0, testutil.ToFloat64(m.requestsTotal.WithLabelValues("GET", "/api/locales", "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.transiciones.WithLabelValues("verde", "amarillo")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.rbacHits))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.rbacMisses))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.webhookEnvios.WithLabelValues("ok")))

	families, err := reg.Gather()
	require.NoError(t, err)
	nombres := make([]string, 0, len(families))
	for _, f := range families {
		nombres = append(nombres, f.GetName())
	}
	assert.Contains(t, nombres, "ecoplaza_http_request_duration_seconds")
}
