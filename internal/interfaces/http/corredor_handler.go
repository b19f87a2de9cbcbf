package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/ecoplaza/ecoplaza-api/internal/application/dto"
	"github.com/ecoplaza/ecoplaza-api/internal/application/usecase"
	"github.com/ecoplaza/ecoplaza-api/internal/domain/entity"
	"github.com/ecoplaza/ecoplaza-api/internal/domain/expansion"
)

// CorredorHandler registro de corredores y bandeja de revisión.
type CorredorHandler struct {
	uc *usecase.CorredorUseCase
}

// NewCorredorHandler construye el handler.
func NewCorredorHandler(uc *usecase.CorredorUseCase) *CorredorHandler {
	return &CorredorHandler{uc: uc}
}

// Create godoc
// @Summary      Crear registro de corredor (borrador)
// @Tags         expansion
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegistroCorredorRequest  true  "Datos del corredor"
// @Success      201   {object}  dto.RegistroCorredorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/expansion/registro [post]
func (h *CorredorHandler) Create(c *fiber.Ctx) error {
	var in dto.RegistroCorredorRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Create(c.UserContext(), GetActor(c), in)
	if err != nil {
		return mapError(c, err)
	}
	return created(c, out)
}

// Update godoc
// @Summary      Editar registro (borrador u observado)
// @Tags         expansion
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                        true  "ID del registro"
// @Param        body  body  dto.RegistroCorredorRequest  true  "Datos del corredor"
// @Success      200   {object}  dto.RegistroCorredorResponse
// @Router       /api/expansion/registros/{id} [put]
func (h *CorredorHandler) Update(c *fiber.Ctx) error {
	var in dto.RegistroCorredorRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Update(c.UserContext(), GetActor(c), c.Params("id"), in)
	if err != nil {
		return mapError(c, err)
	}
	return ok(c, out)
}

// Mine godoc
// @Summary      Mi registro con documentos e historial
// @Tags         expansion
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.RegistroDetalleResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/expansion/registro [get]
func (h *CorredorHandler) Mine(c *fiber.Ctx) error {
	out, err := h.uc.Mine(c.UserContext(), GetActor(c))
	if err != nil {
		return mapError(c, err)
	}
	return ok(c, out)
}

// Detalle godoc
// @Summary      Detalle de un registro
// @Tags         expansion
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del registro"
// @Success      200  {object}  dto.RegistroDetalleResponse
// @Router       /api/expansion/registros/{id} [get]
func (h *CorredorHandler) Detalle(c *fiber.Ctx) error {
	out, err := h.uc.Detalle(c.UserContext(), GetActor(c), c.Params("id"))
	if err != nil {
		return mapError(c, err)
	}
	return ok(c, out)
}

// UploadDocumento godoc
// @Summary      Subir documento del registro
// @Description  jpeg, png, webp o pdf hasta 5 MB. Reemplaza el documento previo del mismo tipo.
// @Tags         expansion
// @Security     Bearer
// @Accept       multipart/form-data
// @Produce      json
// @Param        id              path      string  true  "ID del registro"
// @Param        tipo_documento  formData  string  true  "Tipo de documento"
// @Param        file            formData  file    true  "Archivo"
// @Success      201  {object}  dto.DocumentoCorredorResponse
// @Router       /api/expansion/registros/{id}/documentos [post]
func (h *CorredorHandler) UploadDocumento(c *fiber.Ctx) error {
	fh, err := c.FormFile("file")
	if err != nil {
		return fail(c, fiber.StatusBadRequest, "VALIDATION", "file es requerido")
	}
	if fh.Size > expansion.MaxDocumentoBytes {
		return fail(c, fiber.StatusRequestEntityTooLarge, "VALIDATION", "el archivo supera 5 MB")
	}
	f, err := fh.Open()
	if err != nil {
		return badBody(c)
	}
	defer f.Close()
	out, err := h.uc.UploadDocumento(c.UserContext(), GetActor(c), c.Params("id"), usecase.UploadDocumentoInput{
		TipoDocumento: c.FormValue("tipo_documento"),
		FileName:      fh.Filename,
		ContentType:   fh.Header.Get(fiber.HeaderContentType),
		Size:          fh.Size,
		Body:          f,
	})
	if err != nil {
		return mapError(c, err)
	}
	return created(c, out)
}

func (h *CorredorHandler) transicion(c *fiber.Ctx, fn func() (*dto.RegistroCorredorResponse, error)) error {
	out, err := fn()
	if err != nil {
		return mapError(c, err)
	}
	return ok(c, out)
}

// Enviar godoc
// @Summary      Enviar registro a revisión
// @Tags         expansion
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del registro"
// @Success      200  {object}  dto.RegistroCorredorResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/expansion/registros/{id}/enviar [post]
func (h *CorredorHandler) Enviar(c *fiber.Ctx) error {
	return h.transicion(c, func() (*dto.RegistroCorredorResponse, error) {
		return h.uc.Enviar(c.UserContext(), GetActor(c), c.Params("id"))
	})
}

// TomarRevision godoc
// @Summary      Tomar registro en revisión
// @Tags         expansion
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del registro"
// @Success      200  {object}  dto.RegistroCorredorResponse
// @Router       /api/expansion/registros/{id}/revision [post]
func (h *CorredorHandler) TomarRevision(c *fiber.Ctx) error {
	return h.transicion(c, func() (*dto.RegistroCorredorResponse, error) {
		return h.uc.TomarRevision(c.UserContext(), GetActor(c), c.Params("id"))
	})
}

// Aprobar godoc
// @Summary      Aprobar registro
// @Tags         expansion
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del registro"
// @Success      200  {object}  dto.RegistroCorredorResponse
// @Router       /api/expansion/registros/{id}/aprobar [post]
func (h *CorredorHandler) Aprobar(c *fiber.Ctx) error {
	return h.transicion(c, func() (*dto.RegistroCorredorResponse, error) {
		return h.uc.Aprobar(c.UserContext(), GetActor(c), c.Params("id"))
	})
}

// Rechazar godoc
// @Summary      Rechazar registro
// @Tags         expansion
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string             true  "ID del registro"
// @Param        body  body  dto.MotivoRequest  true  "motivo"
// @Success      200   {object}  dto.RegistroCorredorResponse
// @Router       /api/expansion/registros/{id}/rechazar [post]
func (h *CorredorHandler) Rechazar(c *fiber.Ctx) error {
	var in dto.MotivoRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	return h.transicion(c, func() (*dto.RegistroCorredorResponse, error) {
		return h.uc.Rechazar(c.UserContext(), GetActor(c), c.Params("id"), in.Motivo)
	})
}

// Observar godoc
// @Summary      Devolver registro con observaciones
// @Tags         expansion
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string             true  "ID del registro"
// @Param        body  body  dto.MotivoRequest  true  "observaciones"
// @Success      200   {object}  dto.RegistroCorredorResponse
// @Router       /api/expansion/registros/{id}/observar [post]
func (h *CorredorHandler) Observar(c *fiber.Ctx) error {
	var in dto.MotivoRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	return h.transicion(c, func() (*dto.RegistroCorredorResponse, error) {
		return h.uc.Observar(c.UserContext(), GetActor(c), c.Params("id"), in.Observaciones)
	})
}

// List godoc
// @Summary      Bandeja de registros
// @Tags         expansion
// @Security     Bearer
// @Produce      json
// @Param        estado        query  string  false  "Estado"
// @Param        tipo_persona  query  string  false  "natural o juridica"
// @Param        busqueda      query  string  false  "Nombre, email, DNI o RUC"
// @Success      200  {array}  dto.RegistroCorredorResponse
// @Router       /api/expansion/registros [get]
func (h *CorredorHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext(), entity.RegistroFilter{
		Estado:      c.Query("estado"),
		TipoPersona: c.Query("tipo_persona"),
		Busqueda:    c.Query("busqueda"),
	})
	if err != nil {
		return mapError(c, err)
	}
	return ok(c, out)
}

// Stats godoc
// @Summary      Conteo de la bandeja por estado
// @Tags         expansion
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.InboxStatsResponse
// @Router       /api/expansion/stats [get]
func (h *CorredorHandler) Stats(c *fiber.Ctx) error {
	out, err := h.uc.Stats(c.UserContext())
	if err != nil {
		return mapError(c, err)
	}
	return ok(c, out)
}
