package ports

// Metrics contadores de dominio expuestos en /metrics.
type Metrics interface {
	LocalTransicion(desde, hacia string)
	RBACCacheHit()
	RBACCacheMiss()
	WebhookEnvio(resultado string)
}

// NopMetrics no registra nada; útil en tests y CLI.
type NopMetrics struct{}

func (NopMetrics) LocalTransicion(string, string) {}
func (NopMetrics) RBACCacheHit()                  {}
func (NopMetrics) RBACCacheMiss()                 {}
func (NopMetrics) WebhookEnvio(string)            {}
