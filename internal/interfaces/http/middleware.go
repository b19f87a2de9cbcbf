package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
)

// httpObserver lo implementa *metrics.Metrics.
type httpObserver interface {
	ObserveHTTP(method, route string, status int, d time.Duration)
}

// RequestLogger registra cada request con zerolog y alimenta las métricas HTTP.
// La ruta registrada en métricas es el patrón (/api/leads/:id), no el path.
func RequestLogger(m httpObserver) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		if err != nil {
			// deja que el ErrorHandler arme la respuesta antes de leer el status
			if herr := c.App().ErrorHandler(c, err); herr != nil {
				_ = c.SendStatus(fiber.StatusInternalServerError)
			}
		}
		status := c.Response().StatusCode()
		d := time.Since(start)
		if m != nil {
			m.ObserveHTTP(c.Method(), c.Route().Path, status, d)
		}

		ev := log.Info()
		switch {
		case status >= 500:
			ev = log.Error()
		case status >= 400:
			ev = log.Warn()
		}
		ev.Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", status).
			Dur("latency", d).
			Str("ip", c.IP()).
			Str("user_id", GetUserID(c)).
			Msg("http: request")
		return nil
	}
}
