package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/ecoplaza/ecoplaza-api/internal/application/dto"
	"github.com/ecoplaza/ecoplaza-api/internal/application/usecase"
)

// UsuarioHandler administración de cuentas y catálogo de proyectos.
type UsuarioHandler struct {
	uc        *usecase.UsuarioUseCase
	proyectos *usecase.ProyectoUseCase
}

// NewUsuarioHandler construye el handler.
func NewUsuarioHandler(uc *usecase.UsuarioUseCase, proyectos *usecase.ProyectoUseCase) *UsuarioHandler {
	return &UsuarioHandler{uc: uc, proyectos: proyectos}
}

// List godoc
// @Summary      Listar usuarios
// @Tags         usuarios
// @Security     Bearer
// @Produce      json
// @Param        activos_only   query  bool    false  "Solo activos (default true)"
// @Param        rol            query  string  false  "Rol"
// @Param        con_reuniones  query  bool    false  "Solo quienes tienen reuniones en el proyecto"
// @Param        proyecto_id    query  string  false  "Requerido con con_reuniones"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/usuarios [get]
func (h *UsuarioHandler) List(c *fiber.Ctx) error {
	in := dto.UsuarioListRequest{
		ActivosOnly:  c.QueryBool("activos_only", true),
		Rol:          c.Query("rol"),
		ConReuniones: c.QueryBool("con_reuniones", false),
		ProyectoID:   c.Query("proyecto_id"),
	}
	out, err := h.uc.List(c.UserContext(), in)
	if err != nil {
		return mapError(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "usuarios": out, "total": len(out)})
}

// Create godoc
// @Summary      Crear usuario
// @Description  Los roles vendedor y vendedor_caseta reciben su ficha de vendedor.
// @Tags         usuarios
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateUsuarioRequest  true  "Datos de la cuenta"
// @Success      201   {object}  dto.UsuarioResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/usuarios [post]
func (h *UsuarioHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateUsuarioRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return mapError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// SetActivo godoc
// @Summary      Activar o desactivar usuario
// @Tags         usuarios
// @Security     Bearer
// @Accept       json
// @Param        id    path  string                true  "ID del usuario"
// @Param        body  body  dto.SetActivoRequest  true  "activo"
// @Success      204
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/usuarios/{id}/activo [patch]
func (h *UsuarioHandler) SetActivo(c *fiber.Ctx) error {
	var in dto.SetActivoRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if err := h.uc.SetActivo(c.UserContext(), c.Params("id"), in.Activo); err != nil {
		return mapError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ProyectosPublicos godoc
// @Summary      Proyectos activos (público)
// @Tags         proyectos
// @Produce      json
// @Success      200  {array}  dto.ProyectoResponse
// @Router       /api/public/proyectos [get]
func (h *UsuarioHandler) ProyectosPublicos(c *fiber.Ctx) error {
	out, err := h.proyectos.List(c.UserContext(), false)
	if err != nil {
		return mapError(c, err)
	}
	return ok(c, out)
}

// Proyectos godoc
// @Summary      Proyectos
// @Tags         proyectos
// @Security     Bearer
// @Produce      json
// @Param        include_inactive  query  bool  false  "Incluir inactivos"
// @Success      200  {array}  dto.ProyectoResponse
// @Router       /api/proyectos [get]
func (h *UsuarioHandler) Proyectos(c *fiber.Ctx) error {
	out, err := h.proyectos.List(c.UserContext(), c.QueryBool("include_inactive", false))
	if err != nil {
		return mapError(c, err)
	}
	return ok(c, out)
}
