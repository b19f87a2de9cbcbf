package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/ecoplaza/ecoplaza-api/internal/application/analytics"
)

// ExecutiveHandler reportes ejecutivos. Todos aceptan proyecto_id opcional.
type ExecutiveHandler struct {
	uc *analytics.ExecutiveUseCase
}

// NewExecutiveHandler construye el handler.
func NewExecutiveHandler(uc *analytics.ExecutiveUseCase) *ExecutiveHandler {
	return &ExecutiveHandler{uc: uc}
}

func responder(c *fiber.Ctx, fn func() (any, error)) error {
	out, err := fn()
	if err != nil {
		return mapError(c, err)
	}
	return ok(c, out)
}

// Summary godoc
// @Summary      Resumen ejecutivo
// @Tags         executive
// @Security     Bearer
// @Produce      json
// @Param        proyecto_id  query  string  false  "Proyecto"
// @Success      200  {object}  dto.ExecutiveSummary
// @Router       /api/executive/summary [get]
func (h *ExecutiveHandler) Summary(c *fiber.Ctx) error {
	return responder(c, func() (any, error) { return h.uc.Summary(c.UserContext(), c.Query("proyecto_id")) })
}

// Funnel godoc
// @Summary      Embudo de conversión
// @Tags         executive
// @Security     Bearer
// @Produce      json
// @Param        proyecto_id  query  string  false  "Proyecto"
// @Success      200  {object}  dto.ExecutiveFunnel
// @Router       /api/executive/funnel [get]
func (h *ExecutiveHandler) Funnel(c *fiber.Ctx) error {
	return responder(c, func() (any, error) { return h.uc.Funnel(c.UserContext(), c.Query("proyecto_id")) })
}

// Pipeline godoc
// @Summary      Locales y valor por color
// @Tags         executive
// @Security     Bearer
// @Produce      json
// @Param        proyecto_id  query  string  false  "Proyecto"
// @Success      200  {array}  dto.PipelineEstado
// @Router       /api/executive/pipeline [get]
func (h *ExecutiveHandler) Pipeline(c *fiber.Ctx) error {
	return responder(c, func() (any, error) { return h.uc.Pipeline(c.UserContext(), c.Query("proyecto_id")) })
}

// Vendedores godoc
// @Summary      Ranking de vendedores
// @Tags         executive
// @Security     Bearer
// @Produce      json
// @Param        proyecto_id  query  string  false  "Proyecto"
// @Success      200  {array}  dto.VendedorRanking
// @Router       /api/executive/vendedores [get]
func (h *ExecutiveHandler) Vendedores(c *fiber.Ctx) error {
	return responder(c, func() (any, error) { return h.uc.Vendedores(c.UserContext(), c.Query("proyecto_id")) })
}

// Canales godoc
// @Summary      Métricas por canal (utm)
// @Tags         executive
// @Security     Bearer
// @Produce      json
// @Param        proyecto_id  query  string  false  "Proyecto"
// @Success      200  {array}  dto.CanalMetricas
// @Router       /api/executive/canales [get]
func (h *ExecutiveHandler) Canales(c *fiber.Ctx) error {
	return responder(c, func() (any, error) { return h.uc.Canales(c.UserContext(), c.Query("proyecto_id")) })
}

// Financiero godoc
// @Summary      Morosidad, inicial pendiente y proyección del mes
// @Tags         executive
// @Security     Bearer
// @Produce      json
// @Param        proyecto_id  query  string  false  "Proyecto"
// @Success      200  {object}  dto.ExecutiveFinanciero
// @Router       /api/executive/financiero [get]
func (h *ExecutiveHandler) Financiero(c *fiber.Ctx) error {
	return responder(c, func() (any, error) { return h.uc.Financiero(c.UserContext(), c.Query("proyecto_id")) })
}

// Proyectos godoc
// @Summary      Resumen por proyecto
// @Tags         executive
// @Security     Bearer
// @Produce      json
// @Param        proyecto_id  query  string  false  "Proyecto"
// @Success      200  {array}  dto.ProyectoResumen
// @Router       /api/executive/proyectos [get]
func (h *ExecutiveHandler) Proyectos(c *fiber.Ctx) error {
	return responder(c, func() (any, error) { return h.uc.Proyectos(c.UserContext(), c.Query("proyecto_id")) })
}
