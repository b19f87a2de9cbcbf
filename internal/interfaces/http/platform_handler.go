package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
)

// BuildInfo datos de versión expuestos en /api/version.
type BuildInfo struct {
	Service     string
	Version     string
	BuildID     string
	Environment string
}

// Health godoc
// @Summary      Estado del servicio
// @Tags         platform
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Router       /health [get]
func Health(info BuildInfo) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": info.Service})
	}
}

// Version godoc
// @Summary      Versión desplegada
// @Tags         platform
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Router       /api/version [get]
func Version(info BuildInfo) fiber.Handler {
	return func(c *fiber.Ctx) error {
		noCache(c)
		return c.JSON(fiber.Map{
			"build_id":    info.BuildID,
			"version":     info.Version,
			"timestamp":   time.Now().UTC().Format(time.RFC3339),
			"environment": info.Environment,
		})
	}
}
