package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/ecoplaza/ecoplaza-api/internal/application/dto"
	"github.com/ecoplaza/ecoplaza-api/internal/application/usecase"
	"github.com/ecoplaza/ecoplaza-api/internal/interfaces/csvimport"
)

// LeadHandler endpoints de leads.
type LeadHandler struct {
	uc *usecase.LeadUseCase
}

// NewLeadHandler construye el handler.
func NewLeadHandler(uc *usecase.LeadUseCase) *LeadHandler {
	return &LeadHandler{uc: uc}
}

func leadFiltros(c *fiber.Ctx) (dto.LeadListRequest, error) {
	in := dto.LeadListRequest{
		ProyectoID:  c.Query("proyecto_id"),
		Estado:      c.Query("estado"),
		VendedorID:  c.Query("vendedor_id"),
		PageRequest: dto.PageRequest{Limit: c.QueryInt("limit", 20), Offset: c.QueryInt("offset", 0)},
	}
	for _, f := range []struct {
		param string
		dst   **time.Time
	}{{"desde", &in.Desde}, {"hasta", &in.Hasta}} {
		if v := c.Query(f.param); v != "" {
			t, err := time.ParseInLocation("2006-01-02", v, time.Local)
			if err != nil {
				return in, err
			}
			*f.dst = &t
		}
	}
	return in, nil
}

// List godoc
// @Summary      Listar leads
// @Description  Los vendedores solo ven sus leads.
// @Tags         leads
// @Security     Bearer
// @Produce      json
// @Param        proyecto_id  query  string  false  "Proyecto"
// @Param        estado       query  string  false  "Estado"
// @Param        vendedor_id  query  string  false  "Vendedor"
// @Param        desde        query  string  false  "YYYY-MM-DD"
// @Param        hasta        query  string  false  "YYYY-MM-DD"
// @Param        limit        query  int     false  "Límite"  default(20)
// @Param        offset       query  int     false  "Offset"  default(0)
// @Success      200  {object}  dto.LeadListResponse
// @Router       /api/leads [get]
func (h *LeadHandler) List(c *fiber.Ctx) error {
	in, err := leadFiltros(c)
	if err != nil {
		return fail(c, fiber.StatusBadRequest, "VALIDATION", "fecha inválida, formato YYYY-MM-DD")
	}
	out, err := h.uc.List(c.UserContext(), GetActor(c), in)
	if err != nil {
		return mapError(c, err)
	}
	return ok(c, out)
}

// Stats godoc
// @Summary      Conteo de leads por estado
// @Tags         leads
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.LeadStatsResponse
// @Router       /api/leads/stats [get]
func (h *LeadHandler) Stats(c *fiber.Ctx) error {
	in, err := leadFiltros(c)
	if err != nil {
		return fail(c, fiber.StatusBadRequest, "VALIDATION", "fecha inválida, formato YYYY-MM-DD")
	}
	out, err := h.uc.Stats(c.UserContext(), GetActor(c), in)
	if err != nil {
		return mapError(c, err)
	}
	return ok(c, out)
}

// Search godoc
// @Summary      Buscar lead por teléfono
// @Tags         leads
// @Security     Bearer
// @Produce      json
// @Param        telefono  query  string  true  "Teléfono"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  map[string]interface{}
// @Router       /api/leads/search [get]
func (h *LeadHandler) Search(c *fiber.Ctx) error {
	tel := c.Query("telefono")
	if usecase.NormalizarTelefono(tel) == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"found": false, "error": "telefono es requerido"})
	}
	lead, err := h.uc.Search(c.UserContext(), tel)
	if err != nil {
		return mapError(c, err)
	}
	if lead == nil {
		return c.JSON(fiber.Map{"found": false})
	}
	return c.JSON(fiber.Map{"found": true, "lead": lead})
}

// Asignar godoc
// @Summary      Asignar lead a vendedor
// @Description  vendedor_id vacío libera el lead. Notifica a n8n en segundo plano.
// @Tags         leads
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                  true  "ID del lead"
// @Param        body  body  dto.AsignarLeadRequest  true  "vendedor_id"
// @Success      200   {object}  dto.LeadResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/leads/{id}/asignar [patch]
func (h *LeadHandler) Asignar(c *fiber.Ctx) error {
	var in dto.AsignarLeadRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Asignar(c.UserContext(), c.Params("id"), in.VendedorID)
	if err != nil {
		return mapError(c, err)
	}
	return ok(c, out)
}

// CreateManual godoc
// @Summary      Crear lead manual
// @Tags         leads
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateLeadManualRequest  true  "Datos del lead"
// @Success      201   {object}  dto.LeadResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/leads [post]
func (h *LeadHandler) CreateManual(c *fiber.Ctx) error {
	var in dto.CreateLeadManualRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.CreateManual(c.UserContext(), in)
	if err != nil {
		return mapError(c, err)
	}
	return created(c, out)
}

// RegistrarVisita godoc
// @Summary      Registrar visita sin local
// @Tags         leads
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegistrarVisitaRequest  true  "telefono, proyecto_id"
// @Success      200   {object}  dto.RegistrarVisitaResponse
// @Router       /api/leads/visita [post]
func (h *LeadHandler) RegistrarVisita(c *fiber.Ctx) error {
	var in dto.RegistrarVisitaRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.RegistrarVisita(c.UserContext(), in)
	if err != nil {
		return mapError(c, err)
	}
	if out.Creado {
		return created(c, out)
	}
	return ok(c, out)
}

// Import godoc
// @Summary      Importar leads
// @Description  JSON {proyecto_id, leads[]} o multipart con file (CSV) y proyecto_id.
// @Tags         leads
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Success      200  {object}  dto.ImportLeadsResponse
// @Router       /api/leads/import [post]
func (h *LeadHandler) Import(c *fiber.Ctx) error {
	var in dto.ImportLeadsRequest
	if fh, err := c.FormFile("file"); err == nil {
		f, err := fh.Open()
		if err != nil {
			return badBody(c)
		}
		defer f.Close()
		rows, err := csvimport.Leads(f)
		if err != nil {
			return mapError(c, err)
		}
		in = dto.ImportLeadsRequest{ProyectoID: c.FormValue("proyecto_id"), Leads: rows}
	} else if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Import(c.UserContext(), in)
	if err != nil {
		return mapError(c, err)
	}
	return ok(c, out)
}
