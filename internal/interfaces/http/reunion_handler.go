package http

import (
	"context"
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/ecoplaza/ecoplaza-api/internal/application/dto"
	"github.com/ecoplaza/ecoplaza-api/internal/application/usecase"
	"github.com/ecoplaza/ecoplaza-api/internal/domain/entity"
)

// ReunionHandler grabaciones de reuniones y sus action items.
type ReunionHandler struct {
	uc            *usecase.ReunionUseCase
	retencionDias int
}

// NewReunionHandler construye el handler. retencionDias aplica a la limpieza programada.
func NewReunionHandler(uc *usecase.ReunionUseCase, retencionDias int) *ReunionHandler {
	return &ReunionHandler{uc: uc, retencionDias: retencionDias}
}

// Upload godoc
// @Summary      Subir grabación
// @Description  Audio o video hasta 2 GB. La reunión queda en procesando.
// @Tags         reuniones
// @Security     Bearer
// @Accept       multipart/form-data
// @Produce      json
// @Param        file           formData  file    true   "Grabación"
// @Param        titulo         formData  string  true   "Título"
// @Param        fecha_reunion  formData  string  false  "YYYY-MM-DD"
// @Param        proyecto_id    formData  string  false  "Proyecto"
// @Success      201  {object}  dto.ReunionResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/reuniones/upload [post]
func (h *ReunionHandler) Upload(c *fiber.Ctx) error {
	fh, err := c.FormFile("file")
	if err != nil {
		return fail(c, fiber.StatusBadRequest, "VALIDATION", "no se proporcionó ningún archivo")
	}
	in := dto.UploadReunionInput{
		Titulo:      c.FormValue("titulo"),
		FileName:    fh.Filename,
		ContentType: fh.Header.Get(fiber.HeaderContentType),
		Size:        fh.Size,
	}
	if v := c.FormValue("fecha_reunion"); v != "" {
		t, err := time.ParseInLocation("2006-01-02", v, time.Local)
		if err != nil {
			return fail(c, fiber.StatusBadRequest, "VALIDATION", "fecha_reunion inválida, formato YYYY-MM-DD")
		}
		in.FechaReunion = &t
	}
	if v := c.FormValue("proyecto_id"); v != "" {
		in.ProyectoID = &v
	}
	f, err := fh.Open()
	if err != nil {
		return badBody(c)
	}
	defer f.Close()
	out, err := h.uc.Upload(c.UserContext(), GetActor(c), in, f)
	if err != nil {
		return mapError(c, err)
	}
	return created(c, out)
}

// PresignedURL godoc
// @Summary      URL firmada para subida directa
// @Description  Crea la reunión en subiendo; confirmar con upload-complete.
// @Tags         reuniones
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.PresignedURLRequest  true  "Archivo a subir"
// @Success      200   {object}  dto.PresignedURLResponse
// @Router       /api/reuniones/presigned-url [post]
func (h *ReunionHandler) PresignedURL(c *fiber.Ctx) error {
	var in dto.PresignedURLRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.PresignedURL(c.UserContext(), GetActor(c), in)
	if err != nil {
		return mapError(c, err)
	}
	return ok(c, out)
}

// UploadComplete godoc
// @Summary      Confirmar subida directa
// @Tags         reuniones
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                     true  "ID de la reunión"
// @Param        body  body  dto.UploadCompleteRequest  true  "storage_path"
// @Success      200   {object}  dto.ReunionResponse
// @Router       /api/reuniones/{id}/upload-complete [post]
func (h *ReunionHandler) UploadComplete(c *fiber.Ctx) error {
	var in dto.UploadCompleteRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.UploadComplete(c.UserContext(), c.Params("id"), in.StoragePath)
	if err != nil {
		return mapError(c, err)
	}
	return ok(c, out)
}

// List godoc
// @Summary      Listar reuniones
// @Tags         reuniones
// @Security     Bearer
// @Produce      json
// @Param        proyecto_id  query  string  false  "Proyecto"
// @Param        estado       query  string  false  "subiendo, procesando, completado o error"
// @Param        limit        query  int     false  "Límite"  default(20)
// @Param        offset       query  int     false  "Offset"  default(0)
// @Success      200  {object}  dto.ReunionListResponse
// @Router       /api/reuniones [get]
func (h *ReunionHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext(), entity.ReunionFilter{
		ProyectoID: c.Query("proyecto_id"),
		Estado:     c.Query("estado"),
		Limit:      c.QueryInt("limit", 20),
		Offset:     c.QueryInt("offset", 0),
	})
	if err != nil {
		return mapError(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "reuniones": out.Reuniones, "total": out.Total, "hasMore": out.HasMore})
}

// Get godoc
// @Summary      Reunión con sus action items
// @Tags         reuniones
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la reunión"
// @Success      200  {object}  dto.ReunionDetalleResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/reuniones/{id} [get]
func (h *ReunionHandler) Get(c *fiber.Ctx) error {
	out, err := h.uc.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return mapError(c, err)
	}
	return ok(c, out)
}

// UpdateEstado godoc
// @Summary      Callback del pipeline de procesamiento
// @Tags         reuniones
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                          true  "ID de la reunión"
// @Param        body  body  dto.UpdateReunionEstadoRequest  true  "estado y resultado"
// @Success      200   {object}  dto.ReunionResponse
// @Router       /api/reuniones/{id}/estado [patch]
func (h *ReunionHandler) UpdateEstado(c *fiber.Ctx) error {
	var in dto.UpdateReunionEstadoRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.UpdateEstado(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return mapError(c, err)
	}
	return ok(c, out)
}

// Delete godoc
// @Summary      Eliminar reunión y su media
// @Tags         reuniones
// @Security     Bearer
// @Param        id   path  string  true  "ID de la reunión"
// @Success      204
// @Router       /api/reuniones/{id} [delete]
func (h *ReunionHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.UserContext(), c.Params("id")); err != nil {
		return mapError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Reextract godoc
// @Summary      Re-extraer action items con IA
// @Tags         reuniones
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la reunión"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      504  {object}  dto.ErrorResponse
// @Router       /api/reuniones/{id}/reextract-actions [post]
func (h *ReunionHandler) Reextract(c *fiber.Ctx) error {
	out, err := h.uc.Reextract(c.UserContext(), c.Params("id"))
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return fail(c, fiber.StatusGatewayTimeout, "TIMEOUT", "el servicio de IA tardó demasiado; intenta de nuevo")
		}
		return mapError(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "actionItemsCount": out.ActionItemsCount, "message": out.Message})
}

// Cleanup godoc
// @Summary      Limpiar media vencida
// @Description  Protegido con Authorization: Bearer CRON_SECRET.
// @Tags         cron
// @Produce      json
// @Success      200  {object}  dto.CleanupResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/cron/cleanup-reuniones [get]
func (h *ReunionHandler) Cleanup(c *fiber.Ctx) error {
	out, err := h.uc.CleanupMedia(c.UserContext(), h.retencionDias)
	if err != nil {
		return mapError(c, err)
	}
	return c.JSON(out)
}

// MisActionItems godoc
// @Summary      Mis action items
// @Tags         action-items
// @Security     Bearer
// @Produce      json
// @Param        include_completed  query  bool  false  "Incluir completados"
// @Success      200  {array}  dto.ActionItemResponse
// @Router       /api/action-items [get]
func (h *ReunionHandler) MisActionItems(c *fiber.Ctx) error {
	out, err := h.uc.MisActionItems(c.UserContext(), GetActor(c), c.QueryBool("include_completed", false))
	if err != nil {
		return mapError(c, err)
	}
	return ok(c, out)
}

// CompletarActionItem godoc
// @Summary      Marcar action item como completado
// @Tags         action-items
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                          true  "ID del item"
// @Param        body  body  dto.CompletarActionItemRequest  true  "completado"
// @Success      200   {object}  dto.ActionItemResponse
// @Router       /api/action-items/{id}/completar [patch]
func (h *ReunionHandler) CompletarActionItem(c *fiber.Ctx) error {
	var in dto.CompletarActionItemRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.CompletarActionItem(c.UserContext(), GetActor(c), c.Params("id"), in.Completado)
	if err != nil {
		return mapError(c, err)
	}
	return ok(c, out)
}

// VincularActionItem godoc
// @Summary      Vincular action item a un usuario
// @Tags         action-items
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                         true  "ID del item"
// @Param        body  body  dto.VincularActionItemRequest  true  "usuario_id"
// @Success      200   {object}  dto.ActionItemResponse
// @Router       /api/action-items/{id}/vincular [patch]
func (h *ReunionHandler) VincularActionItem(c *fiber.Ctx) error {
	var in dto.VincularActionItemRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.VincularActionItem(c.UserContext(), c.Params("id"), in.UsuarioID)
	if err != nil {
		return mapError(c, err)
	}
	return ok(c, out)
}

// UpdateActionItem godoc
// @Summary      Editar action item
// @Tags         action-items
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                       true  "ID del item"
// @Param        body  body  dto.UpdateActionItemRequest  true  "Campos a cambiar"
// @Success      200   {object}  dto.ActionItemResponse
// @Router       /api/action-items/{id} [patch]
func (h *ReunionHandler) UpdateActionItem(c *fiber.Ctx) error {
	var in dto.UpdateActionItemRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.UpdateActionItem(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return mapError(c, err)
	}
	return ok(c, out)
}
