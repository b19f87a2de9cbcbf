// Package webhook notificaciones salientes hacia los flujos de n8n.
package webhook

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"

	"github.com/ecoplaza/ecoplaza-api/internal/application/ports"
)

var (
	_ ports.LeadNotifier       = (*N8NNotifier)(nil)
	_ ports.RepulseSender      = (*N8NNotifier)(nil)
	_ ports.AprobacionNotifier = (*N8NNotifier)(nil)
)

// Resultados registrados en la métrica de envíos.
const (
	ResultadoOK       = "ok"
	ResultadoError    = "error"
	ResultadoOmitido  = "omitido"
	envioTimeout      = 30 * time.Second
	maxIntervaloRetry = 5 * time.Second
	maxCuerpoError    = 200
)

// Endpoints URLs de los flujos de n8n. Una URL vacía omite ese tipo de envío.
type Endpoints struct {
	LeadAsignado string
	Repulse      string
	Aprobaciones string
}

// ErrSinURL el flujo pedido no está configurado.
var ErrSinURL = errors.New("webhook no configurado")

// N8NNotifier envía eventos a los webhooks de n8n con límite de tasa. Las
// notificaciones van en segundo plano con reintentos exponenciales; los mensajes
// de repulse son síncronos y de un solo intento.
type N8NNotifier struct {
	urls       Endpoints
	httpClient *http.Client
	limiter    *rate.Limiter
	maxRetries uint64
	metrics    ports.Metrics
	wg         sync.WaitGroup
}

// NewN8NNotifier construye el notificador.
func NewN8NNotifier(urls Endpoints, maxRetries int, ratePerSecond float64, m ports.Metrics) *N8NNotifier {
	if m == nil {
		m = ports.NopMetrics{}
	}
	if ratePerSecond <= 0 {
		ratePerSecond = 5
	}
	if maxRetries < 0 {
		maxRetries = 0
	}
	return &N8NNotifier{
		urls:       urls,
		httpClient: &http.Client{Timeout: 10 * time.Second},
		limiter:    rate.NewLimiter(rate.Limit(ratePerSecond), 1),
		maxRetries: uint64(maxRetries),
		metrics:    m,
	}
}

// LeadAsignado no bloquea: el envío corre en una goroutine desligada de la cancelación del request.
func (n *N8NNotifier) LeadAsignado(ctx context.Context, payload ports.LeadAsignado) {
	if n.urls.LeadAsignado == "" {
		n.metrics.WebhookEnvio(ResultadoOmitido)
		log.Debug().Str("lead_telefono", payload.LeadTelefono).Msg("webhook: N8N_WEBHOOK_LEAD_ASIGNADO no configurado")
		return
	}
	n.despachar(ctx, n.urls.LeadAsignado, payload, func(e *zerolog.Event) *zerolog.Event {
		return e.Str("lead_telefono", payload.LeadTelefono).Str("vendedor", payload.VendedorNombre)
	}, "asignación")
}

// AprobacionEvento avisa nuevas solicitudes de descuento y sus resoluciones.
func (n *N8NNotifier) AprobacionEvento(ctx context.Context, ev ports.AprobacionEvento) {
	if n.urls.Aprobaciones == "" {
		n.metrics.WebhookEnvio(ResultadoOmitido)
		log.Debug().Str("aprobacion_id", ev.AprobacionID).Msg("webhook: N8N_WEBHOOK_APROBACIONES no configurado")
		return
	}
	n.despachar(ctx, n.urls.Aprobaciones, ev, func(e *zerolog.Event) *zerolog.Event {
		return e.Str("aprobacion_id", ev.AprobacionID).Str("tipo", ev.Tipo)
	}, "aprobación")
}

// despachar serializa y envía en segundo plano con reintentos.
func (n *N8NNotifier) despachar(ctx context.Context, url string, payload any, campos func(*zerolog.Event) *zerolog.Event, que string) {
	body, err := json.Marshal(payload)
	if err != nil {
		n.metrics.WebhookEnvio(ResultadoError)
		log.Error().Err(err).Msg("webhook: serializar payload")
		return
	}

	bg, cancel := context.WithTimeout(context.WithoutCancel(ctx), envioTimeout)
	n.wg.Add(1)
	go func() {
		defer n.wg.Done()
		defer cancel()
		if err := n.enviar(bg, url, body); err != nil {
			n.metrics.WebhookEnvio(ResultadoError)
			campos(log.Warn().Err(err)).Msgf("webhook: no se pudo notificar la %s", que)
			return
		}
		n.metrics.WebhookEnvio(ResultadoOK)
		campos(log.Info()).Msgf("webhook: %s notificada", que)
	}()
}

// Configurado indica si hay URL para los mensajes de repulse.
func (n *N8NNotifier) Configurado() bool { return n.urls.Repulse != "" }

// EnviarRepulse hace un solo intento para no duplicar el WhatsApp. Una respuesta
// 2xx que no es JSON cuenta como aceptada.
func (n *N8NNotifier) EnviarRepulse(ctx context.Context, m ports.RepulseMensaje) (ports.RepulseResultado, error) {
	if n.urls.Repulse == "" {
		n.metrics.WebhookEnvio(ResultadoOmitido)
		return ports.RepulseResultado{}, fmt.Errorf("%w: N8N_REPULSE_WEBHOOK_URL", ErrSinURL)
	}
	body, err := json.Marshal(m)
	if err != nil {
		return ports.RepulseResultado{}, fmt.Errorf("serializar mensaje: %w", err)
	}
	if err := n.limiter.Wait(ctx); err != nil {
		return ports.RepulseResultado{}, fmt.Errorf("limitador: %w", err)
	}
	resp, err := n.post(ctx, n.urls.Repulse, body)
	if err != nil {
		n.metrics.WebhookEnvio(ResultadoError)
		var perm *backoff.PermanentError
		if errors.As(err, &perm) {
			err = perm.Err
		}
		return ports.RepulseResultado{}, err
	}

	res := ports.RepulseResultado{Success: true, Status: "accepted"}
	if err := json.Unmarshal(resp, &res); err != nil {
		res = ports.RepulseResultado{Success: true, Status: "accepted"}
	}
	if res.Aceptado() {
		n.metrics.WebhookEnvio(ResultadoOK)
	} else {
		n.metrics.WebhookEnvio(ResultadoError)
	}
	return res, nil
}

// Wait espera los envíos en curso; se usa en el apagado.
func (n *N8NNotifier) Wait() { n.wg.Wait() }

func (n *N8NNotifier) enviar(ctx context.Context, url string, body []byte) error {
	if err := n.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("limitador: %w", err)
	}
	op := func() error {
		_, err := n.post(ctx, url, body)
		return err
	}

	eb := backoff.NewExponentialBackOff()
	eb.InitialInterval = 200 * time.Millisecond
	eb.MaxInterval = maxIntervaloRetry
	b := backoff.WithContext(backoff.WithMaxRetries(eb, n.maxRetries), ctx)
	return backoff.Retry(op, b)
}

var errServidor = errors.New("n8n respondió con error")

// post un intento; devuelve el cuerpo de la respuesta. 4xx se marca Permanent.
func (n *N8NNotifier) post(ctx context.Context, url string, body []byte) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, backoff.Permanent(err)
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := n.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	cuerpo, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))

	switch {
	case resp.StatusCode < 300:
		return cuerpo, nil
	case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500:
		return nil, fmt.Errorf("%w: HTTP %d: %s", errServidor, resp.StatusCode, recortar(cuerpo))
	default:
		return nil, backoff.Permanent(fmt.Errorf("%w: HTTP %d: %s", errServidor, resp.StatusCode, recortar(cuerpo)))
	}
}

func recortar(b []byte) string {
	s := strings.TrimSpace(string(b))
	if len(s) > maxCuerpoError {
		s = s[:maxCuerpoError]
	}
	return s
}
