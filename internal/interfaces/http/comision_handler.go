package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/ecoplaza/ecoplaza-api/internal/application/dto"
	"github.com/ecoplaza/ecoplaza-api/internal/application/usecase"
)

// ComisionHandler comisiones por venta.
type ComisionHandler struct {
	uc *usecase.ComisionUseCase
}

// NewComisionHandler construye el handler.
func NewComisionHandler(uc *usecase.ComisionUseCase) *ComisionHandler {
	return &ComisionHandler{uc: uc}
}

// Mine godoc
// @Summary      Mis comisiones
// @Tags         comisiones
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.ComisionResponse
// @Router       /api/comisiones [get]
func (h *ComisionHandler) Mine(c *fiber.Ctx) error {
	out, err := h.uc.Mine(c.UserContext(), GetActor(c))
	if err != nil {
		return mapError(c, err)
	}
	return ok(c, out)
}

// All godoc
// @Summary      Todas las comisiones
// @Tags         comisiones
// @Security     Bearer
// @Produce      json
// @Param        estado      query  string  false  "pendiente_inicial, disponible o pagada"
// @Param        usuario_id  query  string  false  "Usuario"
// @Success      200  {array}  dto.ComisionResponse
// @Router       /api/comisiones/all [get]
func (h *ComisionHandler) All(c *fiber.Ctx) error {
	out, err := h.uc.All(c.UserContext(), c.Query("estado"), c.Query("usuario_id"))
	if err != nil {
		return mapError(c, err)
	}
	return ok(c, out)
}

// Stats godoc
// @Summary      Totales de comisiones
// @Description  Sin permiso de lectura global devuelve las del usuario actual.
// @Tags         comisiones
// @Security     Bearer
// @Produce      json
// @Param        usuario_id  query  string  false  "Usuario"
// @Success      200  {object}  dto.ComisionStatsResponse
// @Router       /api/comisiones/stats [get]
func (h *ComisionHandler) Stats(c *fiber.Ctx) error {
	out, err := h.uc.Stats(c.UserContext(), GetActor(c), c.Query("usuario_id"))
	if err != nil {
		return mapError(c, err)
	}
	return ok(c, out)
}

// Pagar godoc
// @Summary      Marcar comisión como pagada
// @Tags         comisiones
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la comisión"
// @Success      200  {object}  dto.ComisionResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/comisiones/{id}/pagar [patch]
func (h *ComisionHandler) Pagar(c *fiber.Ctx) error {
	out, err := h.uc.Pagar(c.UserContext(), GetActor(c), c.Params("id"))
	if err != nil {
		return mapError(c, err)
	}
	return ok(c, out)
}

// UpdatePorcentaje godoc
// @Summary      Cambiar porcentaje de una comisión
// @Tags         comisiones
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                       true  "ID de la comisión"
// @Param        body  body  dto.UpdatePorcentajeRequest  true  "porcentaje"
// @Success      200   {object}  dto.ComisionResponse
// @Router       /api/comisiones/{id}/porcentaje [patch]
func (h *ComisionHandler) UpdatePorcentaje(c *fiber.Ctx) error {
	var in dto.UpdatePorcentajeRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.UpdatePorcentaje(c.UserContext(), c.Params("id"), in.Porcentaje)
	if err != nil {
		return mapError(c, err)
	}
	return ok(c, out)
}

// Trazabilidad godoc
// @Summary      Comisiones de un local con sus participantes
// @Tags         comisiones
// @Security     Bearer
// @Produce      json
// @Param        localId  path  string  true  "ID del local"
// @Success      200  {array}  dto.ComisionTrazabilidadResponse
// @Router       /api/comisiones/local/{localId} [get]
func (h *ComisionHandler) Trazabilidad(c *fiber.Ctx) error {
	out, err := h.uc.Trazabilidad(c.UserContext(), GetActor(c), c.Params("localId"))
	if err != nil {
		return mapError(c, err)
	}
	return ok(c, out)
}
