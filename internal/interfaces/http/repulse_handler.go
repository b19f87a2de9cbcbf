package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/ecoplaza/ecoplaza-api/internal/application/dto"
	"github.com/ecoplaza/ecoplaza-api/internal/application/usecase"
)

// RepulseHandler campañas de re-engagement por WhatsApp.
type RepulseHandler struct {
	uc *usecase.RepulseUseCase
}

// NewRepulseHandler construye el handler.
func NewRepulseHandler(uc *usecase.RepulseUseCase) *RepulseHandler {
	return &RepulseHandler{uc: uc}
}

// Templates godoc
// @Summary      Plantillas activas del proyecto
// @Tags         repulse
// @Security     Bearer
// @Produce      json
// @Param        proyecto_id  query  string  true  "Proyecto"
// @Success      200  {array}  dto.RepulseTemplateResponse
// @Router       /api/repulse/templates [get]
func (h *RepulseHandler) Templates(c *fiber.Ctx) error {
	out, err := h.uc.Templates(c.UserContext(), c.Query("proyecto_id"))
	if err != nil {
		return mapError(c, err)
	}
	return ok(c, out)
}

// CreateTemplate godoc
// @Summary      Crear plantilla
// @Description  El mensaje admite {{nombre}} y {{telefono}}.
// @Tags         repulse
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RepulseTemplateRequest  true  "Plantilla"
// @Success      201   {object}  dto.RepulseTemplateResponse
// @Router       /api/repulse/templates [post]
func (h *RepulseHandler) CreateTemplate(c *fiber.Ctx) error {
	var in dto.RepulseTemplateRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.CreateTemplate(c.UserContext(), GetActor(c), in)
	if err != nil {
		return mapError(c, err)
	}
	return created(c, out)
}

// UpdateTemplate godoc
// @Summary      Editar plantilla
// @Tags         repulse
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                      true  "ID de la plantilla"
// @Param        body  body  dto.RepulseTemplateRequest  true  "Plantilla"
// @Success      200   {object}  dto.RepulseTemplateResponse
// @Router       /api/repulse/templates/{id} [put]
func (h *RepulseHandler) UpdateTemplate(c *fiber.Ctx) error {
	var in dto.RepulseTemplateRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.UpdateTemplate(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return mapError(c, err)
	}
	return ok(c, out)
}

// DeleteTemplate godoc
// @Summary      Desactivar plantilla
// @Tags         repulse
// @Security     Bearer
// @Param        id  path  string  true  "ID de la plantilla"
// @Success      200
// @Router       /api/repulse/templates/{id} [delete]
func (h *RepulseHandler) DeleteTemplate(c *fiber.Ctx) error {
	if err := h.uc.DeleteTemplate(c.UserContext(), c.Params("id")); err != nil {
		return mapError(c, err)
	}
	return ok(c, fiber.Map{"id": c.Params("id")})
}

// Leads godoc
// @Summary      Leads de la campaña
// @Tags         repulse
// @Security     Bearer
// @Produce      json
// @Param        proyecto_id  query  string  true   "Proyecto"
// @Param        estado       query  string  false  "pendiente, enviado, respondio, sin_respuesta o excluido"
// @Success      200  {array}  dto.RepulseLeadResponse
// @Router       /api/repulse/leads [get]
func (h *RepulseHandler) Leads(c *fiber.Ctx) error {
	out, err := h.uc.Leads(c.UserContext(), c.Query("proyecto_id"), c.Query("estado"))
	if err != nil {
		return mapError(c, err)
	}
	return ok(c, out)
}

// Agregar godoc
// @Summary      Agregar leads a la campaña
// @Description  Los leads que ya están en la campaña se omiten; excluidos o con compra se informan en errores.
// @Tags         repulse
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.AgregarRepulseRequest  true  "Leads"
// @Success      200   {object}  dto.AgregarRepulseResult
// @Router       /api/repulse/leads [post]
func (h *RepulseHandler) Agregar(c *fiber.Ctx) error {
	var in dto.AgregarRepulseRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.AgregarVarios(c.UserContext(), GetActor(c), in)
	if err != nil {
		return mapError(c, err)
	}
	return ok(c, out)
}

// Quitar godoc
// @Summary      Quitar lead de la campaña
// @Tags         repulse
// @Security     Bearer
// @Param        id  path  string  true  "ID de la entrada"
// @Success      200
// @Router       /api/repulse/leads/{id} [delete]
func (h *RepulseHandler) Quitar(c *fiber.Ctx) error {
	if err := h.uc.Quitar(c.UserContext(), c.Params("id")); err != nil {
		return mapError(c, err)
	}
	return ok(c, fiber.Map{"id": c.Params("id")})
}

// CambiarEstado godoc
// @Summary      Cambiar estado de un lead en la campaña
// @Tags         repulse
// @Security     Bearer
// @Accept       json
// @Param        id    path  string                    true  "ID de la entrada"
// @Param        body  body  dto.RepulseEstadoRequest  true  "Estado"
// @Success      200
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/repulse/leads/{id}/estado [patch]
func (h *RepulseHandler) CambiarEstado(c *fiber.Ctx) error {
	var in dto.RepulseEstadoRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if err := h.uc.CambiarEstado(c.UserContext(), c.Params("id"), in.Estado); err != nil {
		return mapError(c, err)
	}
	return ok(c, fiber.Map{"id": c.Params("id"), "estado": in.Estado})
}

// Excluir godoc
// @Summary      Excluir lead de futuros repulses
// @Tags         repulse
// @Security     Bearer
// @Param        leadId  path  string  true  "ID del lead"
// @Success      200
// @Router       /api/repulse/exclusiones/{leadId} [post]
func (h *RepulseHandler) Excluir(c *fiber.Ctx) error {
	if err := h.uc.Excluir(c.UserContext(), c.Params("leadId")); err != nil {
		return mapError(c, err)
	}
	return ok(c, fiber.Map{"lead_id": c.Params("leadId"), "excluido": true})
}

// Reincluir godoc
// @Summary      Revertir la exclusión de un lead
// @Tags         repulse
// @Security     Bearer
// @Param        leadId  path  string  true  "ID del lead"
// @Success      200
// @Router       /api/repulse/exclusiones/{leadId} [delete]
func (h *RepulseHandler) Reincluir(c *fiber.Ctx) error {
	if err := h.uc.Reincluir(c.UserContext(), c.Params("leadId")); err != nil {
		return mapError(c, err)
	}
	return ok(c, fiber.Map{"lead_id": c.Params("leadId"), "excluido": false})
}

// Candidatos godoc
// @Summary      Leads candidatos a re-engagement
// @Description  Creados hace más de 30 días, sin compra, sin exclusión y fuera de la campaña.
// @Tags         repulse
// @Security     Bearer
// @Produce      json
// @Param        proyecto_id  query  string  true  "Proyecto"
// @Success      200  {array}  dto.LeadResponse
// @Router       /api/repulse/candidatos [get]
func (h *RepulseHandler) Candidatos(c *fiber.Ctx) error {
	out, err := h.uc.Candidatos(c.UserContext(), c.Query("proyecto_id"))
	if err != nil {
		return mapError(c, err)
	}
	return ok(c, out)
}

// Detectar godoc
// @Summary      Agregar candidatos a la campaña (cron)
// @Tags         cron
// @Produce      json
// @Param        proyecto_id  query  string  true  "Proyecto"
// @Success      200  {object}  dto.DeteccionRepulseResponse
// @Router       /api/cron/repulse-detect [get]
func (h *RepulseHandler) Detectar(c *fiber.Ctx) error {
	out, err := h.uc.Detectar(c.UserContext(), c.Query("proyecto_id"))
	if err != nil {
		return mapError(c, err)
	}
	return c.JSON(out)
}

// EnviarLote godoc
// @Summary      Enviar lote de repulses
// @Description  Registra los envíos y los despacha en segundo plano; consultar el avance con el batch_id.
// @Tags         repulse
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.EnviarLoteRequest  true  "Lote"
// @Success      202   {object}  dto.EnviarLoteResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/repulse/send-batch [post]
func (h *RepulseHandler) EnviarLote(c *fiber.Ctx) error {
	var in dto.EnviarLoteRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.EnviarLote(c.UserContext(), GetActor(c), in)
	if err != nil {
		return mapError(c, err)
	}
	return c.Status(fiber.StatusAccepted).JSON(dto.DataResponse{Success: true, Data: out})
}

// EstadoLote godoc
// @Summary      Avance de un lote
// @Tags         repulse
// @Security     Bearer
// @Produce      json
// @Param        batchId  path  string  true  "ID del lote"
// @Success      200  {object}  dto.EstadoLoteResponse
// @Router       /api/repulse/send-batch/{batchId} [get]
func (h *RepulseHandler) EstadoLote(c *fiber.Ctx) error {
	out, err := h.uc.EstadoLote(c.UserContext(), c.Params("batchId"))
	if err != nil {
		return mapError(c, err)
	}
	noCache(c)
	return ok(c, out)
}

// Historial godoc
// @Summary      Envíos hechos a un lead
// @Tags         repulse
// @Security     Bearer
// @Produce      json
// @Param        leadId  path  string  true  "ID del lead"
// @Success      200  {array}  dto.RepulseEnvioResponse
// @Router       /api/repulse/historial/{leadId} [get]
func (h *RepulseHandler) Historial(c *fiber.Ctx) error {
	out, err := h.uc.Historial(c.UserContext(), c.Params("leadId"))
	if err != nil {
		return mapError(c, err)
	}
	return ok(c, out)
}

// MarcarRespuesta godoc
// @Summary      Registrar que el lead respondió
// @Tags         repulse
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del envío"
// @Success      200  {object}  dto.RepulseEnvioResponse
// @Router       /api/repulse/envios/{id}/respuesta [post]
func (h *RepulseHandler) MarcarRespuesta(c *fiber.Ctx) error {
	out, err := h.uc.MarcarRespuesta(c.UserContext(), c.Params("id"))
	if err != nil {
		return mapError(c, err)
	}
	return ok(c, out)
}

// Stats godoc
// @Summary      Conteos de la campaña
// @Tags         repulse
// @Security     Bearer
// @Produce      json
// @Param        proyecto_id  query  string  true  "Proyecto"
// @Success      200  {object}  dto.RepulseStatsResponse
// @Router       /api/repulse/stats [get]
func (h *RepulseHandler) Stats(c *fiber.Ctx) error {
	out, err := h.uc.Stats(c.UserContext(), c.Query("proyecto_id"))
	if err != nil {
		return mapError(c, err)
	}
	return ok(c, out)
}

// Cuota godoc
// @Summary      Uso del cupo diario de WhatsApp
// @Tags         repulse
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.CuotaWhatsAppResponse
// @Router       /api/repulse/cuota [get]
func (h *RepulseHandler) Cuota(c *fiber.Ctx) error {
	out, err := h.uc.Cuota(c.UserContext())
	if err != nil {
		return mapError(c, err)
	}
	noCache(c)
	return ok(c, out)
}
