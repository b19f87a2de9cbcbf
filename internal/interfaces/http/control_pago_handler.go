package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/ecoplaza/ecoplaza-api/internal/application/dto"
	"github.com/ecoplaza/ecoplaza-api/internal/application/usecase"
)

// ControlPagoHandler ventas procesadas, calendario de pagos y abonos.
type ControlPagoHandler struct {
	uc    *usecase.ControlPagoUseCase
	pagos *usecase.PagoUseCase
}

// NewControlPagoHandler construye el handler.
func NewControlPagoHandler(uc *usecase.ControlPagoUseCase, pagos *usecase.PagoUseCase) *ControlPagoHandler {
	return &ControlPagoHandler{uc: uc, pagos: pagos}
}

// ProcesarVenta godoc
// @Summary      Procesar venta de un local en rojo
// @Description  Crea el control, el calendario de pagos y las comisiones en una transacción.
// @Tags         control-pagos
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ProcesarVentaRequest  true  "Montos y condiciones"
// @Success      201   {object}  dto.ProcesarVentaResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/control-pagos [post]
func (h *ControlPagoHandler) ProcesarVenta(c *fiber.Ctx) error {
	var in dto.ProcesarVentaRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.ProcesarVenta(c.UserContext(), GetActor(c), in)
	if err != nil {
		return mapError(c, err)
	}
	return created(c, out)
}

// List godoc
// @Summary      Listar controles de pago
// @Tags         control-pagos
// @Security     Bearer
// @Produce      json
// @Param        estado  query  string  false  "activo, completado o cancelado"
// @Param        limit   query  int     false  "Límite"  default(20)
// @Param        offset  query  int     false  "Offset"  default(0)
// @Success      200  {object}  dto.ControlPagoListResponse
// @Router       /api/control-pagos [get]
func (h *ControlPagoHandler) List(c *fiber.Ctx) error {
	page := dto.PageRequest{Limit: c.QueryInt("limit", 20), Offset: c.QueryInt("offset", 0)}
	out, err := h.uc.List(c.UserContext(), c.Query("estado"), page)
	if err != nil {
		return mapError(c, err)
	}
	return ok(c, out)
}

// GetByID godoc
// @Summary      Obtener control de pagos
// @Tags         control-pagos
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del control"
// @Success      200  {object}  dto.ControlPagoResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/control-pagos/{id} [get]
func (h *ControlPagoHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return mapError(c, err)
	}
	return ok(c, out)
}

// GetByLocal godoc
// @Summary      Control de pagos de un local
// @Tags         control-pagos
// @Security     Bearer
// @Produce      json
// @Param        localId  path  string  true  "ID del local"
// @Success      200  {object}  dto.ControlPagoResponse
// @Router       /api/control-pagos/local/{localId} [get]
func (h *ControlPagoHandler) GetByLocal(c *fiber.Ctx) error {
	out, err := h.uc.GetByLocal(c.UserContext(), c.Params("localId"))
	if err != nil {
		return mapError(c, err)
	}
	return ok(c, out)
}

// Stats godoc
// @Summary      Controles por estado
// @Tags         control-pagos
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.ControlPagoStatsResponse
// @Router       /api/control-pagos/stats [get]
func (h *ControlPagoHandler) Stats(c *fiber.Ctx) error {
	out, err := h.uc.Stats(c.UserContext())
	if err != nil {
		return mapError(c, err)
	}
	return ok(c, out)
}

// Pagos godoc
// @Summary      Calendario de pagos con abonos
// @Tags         control-pagos
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del control"
// @Success      200  {array}  dto.PagoResponse
// @Router       /api/control-pagos/{id}/pagos [get]
func (h *ControlPagoHandler) Pagos(c *fiber.Ctx) error {
	out, err := h.uc.Pagos(c.UserContext(), c.Params("id"))
	if err != nil {
		return mapError(c, err)
	}
	return ok(c, out)
}

// PagosStats godoc
// @Summary      Resumen del calendario
// @Tags         control-pagos
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del control"
// @Success      200  {object}  dto.PagosStatsResponse
// @Router       /api/control-pagos/{id}/pagos/stats [get]
func (h *ControlPagoHandler) PagosStats(c *fiber.Ctx) error {
	out, err := h.uc.PagosStats(c.UserContext(), c.Params("id"))
	if err != nil {
		return mapError(c, err)
	}
	return ok(c, out)
}

// EstadoCuentaPDF godoc
// @Summary      Estado de cuenta en PDF
// @Tags         control-pagos
// @Security     Bearer
// @Produce      application/pdf
// @Param        id   path  string  true  "ID del control"
// @Success      200  {file}  binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/control-pagos/{id}/pdf [get]
func (h *ControlPagoHandler) EstadoCuentaPDF(c *fiber.Ctx) error {
	pdf, nombre, err := h.uc.EstadoCuenta(c.UserContext(), c.Params("id"))
	if err != nil {
		return mapError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `inline; filename="`+nombre+`"`)
	return c.Send(pdf)
}

// RegistrarAbono godoc
// @Summary      Registrar abono
// @Description  monto > 0 y no mayor a lo que falta pagar.
// @Tags         pagos
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                     true  "ID del pago"
// @Param        body  body  dto.RegistrarAbonoRequest  true  "Abono"
// @Success      201   {object}  dto.PagoResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/pagos/{id}/abonos [post]
func (h *ControlPagoHandler) RegistrarAbono(c *fiber.Ctx) error {
	var in dto.RegistrarAbonoRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.pagos.RegistrarAbono(c.UserContext(), GetActor(c), c.Params("id"), in)
	if err != nil {
		return mapError(c, err)
	}
	return created(c, out)
}

// MarcarSeparacion godoc
// @Summary      Marcar separación como pagada o no pagada
// @Tags         pagos
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                       true  "ID del pago"
// @Param        body  body  dto.MarcarSeparacionRequest  true  "pagado"
// @Success      200   {object}  dto.PagoResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/pagos/{id}/separacion [post]
func (h *ControlPagoHandler) MarcarSeparacion(c *fiber.Ctx) error {
	var in dto.MarcarSeparacionRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.pagos.MarcarSeparacion(c.UserContext(), GetActor(c), c.Params("id"), in.Pagado)
	if err != nil {
		return mapError(c, err)
	}
	return ok(c, out)
}
