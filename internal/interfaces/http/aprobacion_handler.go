package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/ecoplaza/ecoplaza-api/internal/application/dto"
	"github.com/ecoplaza/ecoplaza-api/internal/application/usecase"
	"github.com/ecoplaza/ecoplaza-api/internal/domain/entity"
)

// AprobacionHandler aprobaciones de descuento.
type AprobacionHandler struct {
	uc *usecase.AprobacionUseCase
}

// NewAprobacionHandler construye el handler.
func NewAprobacionHandler(uc *usecase.AprobacionUseCase) *AprobacionHandler {
	return &AprobacionHandler{uc: uc}
}

// GetConfig godoc
// @Summary      Rangos de aprobación del proyecto
// @Tags         aprobaciones
// @Security     Bearer
// @Produce      json
// @Param        proyectoId  path  string  true  "Proyecto"
// @Success      200  {object}  dto.ConfigAprobacionResponse
// @Router       /api/aprobaciones/config/{proyectoId} [get]
func (h *AprobacionHandler) GetConfig(c *fiber.Ctx) error {
	out, err := h.uc.GetConfig(c.UserContext(), c.Params("proyectoId"))
	if err != nil {
		return mapError(c, err)
	}
	return ok(c, out)
}

// SaveConfig godoc
// @Summary      Guardar rangos de aprobación
// @Tags         aprobaciones
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        proyectoId  path  string                       true  "Proyecto"
// @Param        body        body  dto.ConfigAprobacionRequest  true  "Configuración"
// @Success      200  {object}  dto.ConfigAprobacionResponse
// @Router       /api/aprobaciones/config/{proyectoId} [put]
func (h *AprobacionHandler) SaveConfig(c *fiber.Ctx) error {
	var in dto.ConfigAprobacionRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.SaveConfig(c.UserContext(), GetActor(c), c.Params("proyectoId"), in)
	if err != nil {
		return mapError(c, err)
	}
	return ok(c, out)
}

// Solicitar godoc
// @Summary      Solicitar aprobación de descuento
// @Description  Si el descuento cae en el tramo libre responde requiere_aprobacion=false y no crea solicitud.
// @Tags         aprobaciones
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.SolicitarDescuentoRequest  true  "Precios"
// @Success      200   {object}  dto.SolicitarDescuentoResponse
// @Router       /api/aprobaciones [post]
func (h *AprobacionHandler) Solicitar(c *fiber.Ctx) error {
	var in dto.SolicitarDescuentoRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Solicitar(c.UserContext(), GetActor(c), in)
	if err != nil {
		return mapError(c, err)
	}
	if out.RequiereAprobacion {
		return created(c, out)
	}
	return ok(c, out)
}

// Pendientes godoc
// @Summary      Solicitudes que esperan mi aprobación
// @Tags         aprobaciones
// @Security     Bearer
// @Produce      json
// @Param        proyecto_id  query  string  false  "Proyecto"
// @Success      200  {array}  dto.AprobacionResponse
// @Router       /api/aprobaciones/pendientes [get]
func (h *AprobacionHandler) Pendientes(c *fiber.Ctx) error {
	out, err := h.uc.Pendientes(c.UserContext(), GetActor(c), c.Query("proyecto_id"))
	if err != nil {
		return mapError(c, err)
	}
	return ok(c, out)
}

// Mias godoc
// @Summary      Mis solicitudes
// @Tags         aprobaciones
// @Security     Bearer
// @Produce      json
// @Param        proyecto_id  query  string  false  "Proyecto"
// @Success      200  {array}  dto.AprobacionResponse
// @Router       /api/aprobaciones/mias [get]
func (h *AprobacionHandler) Mias(c *fiber.Ctx) error {
	out, err := h.uc.MisSolicitudes(c.UserContext(), GetActor(c), c.Query("proyecto_id"))
	if err != nil {
		return mapError(c, err)
	}
	return ok(c, out)
}

// Historial godoc
// @Summary      Historial de solicitudes
// @Tags         aprobaciones
// @Security     Bearer
// @Produce      json
// @Param        proyecto_id  query  string  false  "Proyecto"
// @Param        estado       query  string  false  "pendiente, aprobado, rechazado o cancelado"
// @Param        vendedor_id  query  string  false  "Usuario vendedor"
// @Param        desde        query  string  false  "YYYY-MM-DD"
// @Param        hasta        query  string  false  "YYYY-MM-DD"
// @Success      200  {array}  dto.AprobacionResponse
// @Router       /api/aprobaciones/historial [get]
func (h *AprobacionHandler) Historial(c *fiber.Ctx) error {
	f := entity.AprobacionFilter{
		ProyectoID: c.Query("proyecto_id"),
		Estado:     c.Query("estado"),
		VendedorID: c.Query("vendedor_id"),
	}
	if v := c.Query("desde"); v != "" {
		t, err := time.ParseInLocation("2006-01-02", v, time.Local)
		if err != nil {
			return fail(c, fiber.StatusBadRequest, "VALIDATION", "desde debe ser YYYY-MM-DD")
		}
		f.Desde = &t
	}
	if v := c.Query("hasta"); v != "" {
		t, err := time.ParseInLocation("2006-01-02", v, time.Local)
		if err != nil {
			return fail(c, fiber.StatusBadRequest, "VALIDATION", "hasta debe ser YYYY-MM-DD")
		}
		fin := t.AddDate(0, 0, 1).Add(-time.Nanosecond)
		f.Hasta = &fin
	}
	out, err := h.uc.Historial(c.UserContext(), f)
	if err != nil {
		return mapError(c, err)
	}
	return ok(c, out)
}

// Get godoc
// @Summary      Detalle de una solicitud
// @Tags         aprobaciones
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la solicitud"
// @Success      200  {object}  dto.AprobacionResponse
// @Router       /api/aprobaciones/{id} [get]
func (h *AprobacionHandler) Get(c *fiber.Ctx) error {
	out, err := h.uc.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return mapError(c, err)
	}
	return ok(c, out)
}

// Aprobar godoc
// @Summary      Aprobar solicitud
// @Description  Queda aprobada cuando aprobaron todos los roles requeridos.
// @Tags         aprobaciones
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                         true   "ID de la solicitud"
// @Param        body  body  dto.ResolverAprobacionRequest  false  "Comentario"
// @Success      200   {object}  dto.AprobacionResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/aprobaciones/{id}/aprobar [post]
func (h *AprobacionHandler) Aprobar(c *fiber.Ctx) error {
	var in dto.ResolverAprobacionRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&in); err != nil {
			return badBody(c)
		}
	}
	out, err := h.uc.Aprobar(c.UserContext(), GetActor(c), c.Params("id"), in.Comentario)
	if err != nil {
		return mapError(c, err)
	}
	return ok(c, out)
}

// Rechazar godoc
// @Summary      Rechazar solicitud
// @Tags         aprobaciones
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                         true   "ID de la solicitud"
// @Param        body  body  dto.ResolverAprobacionRequest  false  "Motivo"
// @Success      200   {object}  dto.AprobacionResponse
// @Router       /api/aprobaciones/{id}/rechazar [post]
func (h *AprobacionHandler) Rechazar(c *fiber.Ctx) error {
	var in dto.ResolverAprobacionRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&in); err != nil {
			return badBody(c)
		}
	}
	out, err := h.uc.Rechazar(c.UserContext(), GetActor(c), c.Params("id"), in.Comentario)
	if err != nil {
		return mapError(c, err)
	}
	return ok(c, out)
}

// Cancelar godoc
// @Summary      Cancelar mi solicitud
// @Tags         aprobaciones
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la solicitud"
// @Success      200  {object}  dto.AprobacionResponse
// @Router       /api/aprobaciones/{id}/cancelar [post]
func (h *AprobacionHandler) Cancelar(c *fiber.Ctx) error {
	out, err := h.uc.Cancelar(c.UserContext(), GetActor(c), c.Params("id"))
	if err != nil {
		return mapError(c, err)
	}
	return ok(c, out)
}

// Stats godoc
// @Summary      Métricas de aprobaciones
// @Tags         aprobaciones
// @Security     Bearer
// @Produce      json
// @Param        proyecto_id  query  string  true  "Proyecto"
// @Success      200  {object}  dto.AprobacionStatsResponse
// @Router       /api/aprobaciones/stats [get]
func (h *AprobacionHandler) Stats(c *fiber.Ctx) error {
	out, err := h.uc.Stats(c.UserContext(), c.Query("proyecto_id"))
	if err != nil {
		return mapError(c, err)
	}
	return ok(c, out)
}
