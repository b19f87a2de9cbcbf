package http

import (
	"bytes"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"github.com/ecoplaza/ecoplaza-api/internal/application/dto"
	"github.com/ecoplaza/ecoplaza-api/internal/application/usecase"
	"github.com/ecoplaza/ecoplaza-api/internal/interfaces/csvimport"
)

// LocalHandler semáforo de locales.
type LocalHandler struct {
	uc *usecase.LocalUseCase
}

// NewLocalHandler construye el handler.
func NewLocalHandler(uc *usecase.LocalUseCase) *LocalHandler {
	return &LocalHandler{uc: uc}
}

func queryDecimal(c *fiber.Ctx, key string) (*decimal.Decimal, error) {
	v := c.Query(key)
	if v == "" {
		return nil, nil
	}
	d, err := decimal.NewFromString(v)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

// List godoc
// @Summary      Listar locales
// @Tags         locales
// @Security     Bearer
// @Produce      json
// @Param        proyecto_id  query  string  false  "Proyecto"
// @Param        estado       query  string  false  "verde, amarillo, naranja o rojo"
// @Param        metraje_min  query  number  false  "Metraje mínimo"
// @Param        metraje_max  query  number  false  "Metraje máximo"
// @Param        page         query  int     false  "Página"  default(1)
// @Param        page_size    query  int     false  "Tamaño"  default(50)
// @Success      200  {object}  dto.LocalListResponse
// @Router       /api/locales [get]
func (h *LocalHandler) List(c *fiber.Ctx) error {
	in := dto.LocalListRequest{
		ProyectoID: c.Query("proyecto_id"),
		Estado:     c.Query("estado"),
		Page:       c.QueryInt("page", 1),
		PageSize:   c.QueryInt("page_size", 50),
	}
	var err error
	if in.MetrajeMin, err = queryDecimal(c, "metraje_min"); err != nil {
		return fail(c, fiber.StatusBadRequest, "VALIDATION", "metraje_min inválido")
	}
	if in.MetrajeMax, err = queryDecimal(c, "metraje_max"); err != nil {
		return fail(c, fiber.StatusBadRequest, "VALIDATION", "metraje_max inválido")
	}
	out, err := h.uc.List(c.UserContext(), in)
	if err != nil {
		return mapError(c, err)
	}
	return ok(c, out)
}

// GetByID godoc
// @Summary      Obtener local
// @Tags         locales
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del local"
// @Success      200  {object}  dto.LocalResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/locales/{id} [get]
func (h *LocalHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return mapError(c, err)
	}
	return ok(c, out)
}

// Stats godoc
// @Summary      Locales por color
// @Tags         locales
// @Security     Bearer
// @Produce      json
// @Param        proyecto_id  query  string  false  "Proyecto"
// @Success      200  {object}  dto.LocalStatsResponse
// @Router       /api/locales/stats [get]
func (h *LocalHandler) Stats(c *fiber.Ctx) error {
	out, err := h.uc.Stats(c.UserContext(), c.Query("proyecto_id"))
	if err != nil {
		return mapError(c, err)
	}
	return ok(c, out)
}

// Historial godoc
// @Summary      Historial del local (más reciente primero)
// @Tags         locales
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del local"
// @Success      200  {array}  dto.LocalHistorialResponse
// @Router       /api/locales/{id}/historial [get]
func (h *LocalHandler) Historial(c *fiber.Ctx) error {
	out, err := h.uc.Historial(c.UserContext(), c.Params("id"))
	if err != nil {
		return mapError(c, err)
	}
	return ok(c, out)
}

// CambiarEstado godoc
// @Summary      Cambiar color del semáforo
// @Description  Un local bloqueado solo acepta verde. Volver a verde desde rojo exige locales:admin.
// @Tags         locales
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                    true  "ID del local"
// @Param        body  body  dto.CambiarEstadoRequest  true  "estado, lead_id"
// @Success      200   {object}  dto.LocalResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Router       /api/locales/{id}/estado [patch]
func (h *LocalHandler) CambiarEstado(c *fiber.Ctx) error {
	var in dto.CambiarEstadoRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.CambiarEstado(c.UserContext(), GetActor(c), c.Params("id"), in)
	if err != nil {
		return mapError(c, err)
	}
	return ok(c, out)
}

// SetMonto godoc
// @Summary      Establecer monto de venta (solo en naranja)
// @Tags         locales
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string               true  "ID del local"
// @Param        body  body  dto.SetMontoRequest  true  "monto_venta"
// @Success      200   {object}  dto.LocalResponse
// @Router       /api/locales/{id}/monto [patch]
func (h *LocalHandler) SetMonto(c *fiber.Ctx) error {
	var in dto.SetMontoRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.SetMonto(c.UserContext(), GetActor(c), c.Params("id"), in.MontoVenta)
	if err != nil {
		return mapError(c, err)
	}
	return ok(c, out)
}

// Desbloquear godoc
// @Summary      Desbloquear local
// @Tags         locales
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del local"
// @Success      200  {object}  dto.LocalResponse
// @Router       /api/locales/{id}/desbloquear [post]
func (h *LocalHandler) Desbloquear(c *fiber.Ctx) error {
	out, err := h.uc.Desbloquear(c.UserContext(), GetActor(c), c.Params("id"))
	if err != nil {
		return mapError(c, err)
	}
	return ok(c, out)
}

// Delete godoc
// @Summary      Eliminar local
// @Tags         locales
// @Security     Bearer
// @Param        id   path  string  true  "ID del local"
// @Success      204
// @Router       /api/locales/{id} [delete]
func (h *LocalHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.UserContext(), c.Params("id")); err != nil {
		return mapError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Import godoc
// @Summary      Importar locales
// @Description  CSV (multipart file o text/csv) o JSON con un arreglo de filas.
// @Tags         locales
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Success      200  {object}  dto.ImportLocalesResponse
// @Router       /api/locales/import [post]
func (h *LocalHandler) Import(c *fiber.Ctx) error {
	var rows []dto.ImportLocalRow
	switch {
	case strings.HasPrefix(c.Get(fiber.HeaderContentType), fiber.MIMEMultipartForm):
		fh, err := c.FormFile("file")
		if err != nil {
			return fail(c, fiber.StatusBadRequest, "VALIDATION", "file es requerido")
		}
		f, err := fh.Open()
		if err != nil {
			return badBody(c)
		}
		defer f.Close()
		if rows, err = csvimport.Locales(f); err != nil {
			return mapError(c, err)
		}
	case strings.HasPrefix(c.Get(fiber.HeaderContentType), "text/csv"):
		var err error
		if rows, err = csvimport.Locales(bytes.NewReader(c.Body())); err != nil {
			return mapError(c, err)
		}
	default:
		if err := c.BodyParser(&rows); err != nil {
			return badBody(c)
		}
	}
	out, err := h.uc.Import(c.UserContext(), rows)
	if err != nil {
		return mapError(c, err)
	}
	return ok(c, out)
}
