package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/ecoplaza/ecoplaza-api/internal/application/dto"
	"github.com/ecoplaza/ecoplaza-api/internal/application/permisos"
)

// RBACHandler permisos del usuario actual y mantenimiento de la caché.
type RBACHandler struct {
	svc *permisos.Service
}

// NewRBACHandler construye el handler.
func NewRBACHandler(svc *permisos.Service) *RBACHandler {
	return &RBACHandler{svc: svc}
}

// Permissions godoc
// @Summary      Permisos efectivos del usuario actual
// @Tags         rbac
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.UserPermissionsResponse
// @Router       /api/permissions [get]
func (h *RBACHandler) Permissions(c *fiber.Ctx) error {
	out, err := h.svc.Describe(c.UserContext(), GetUserID(c), GetRol(c))
	if err != nil {
		return mapError(c, err)
	}
	noCache(c)
	return ok(c, out)
}

// ClearCache godoc
// @Summary      Limpiar caché de permisos
// @Description  Sin user_id vacía toda la caché.
// @Tags         rbac
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ClearCacheRequest  false  "user_id"
// @Success      200   {object}  map[string]interface{}
// @Router       /api/dev/clear-rbac-cache [post]
func (h *RBACHandler) ClearCache(c *fiber.Ctx) error {
	var in dto.ClearCacheRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&in); err != nil {
			return badBody(c)
		}
	}
	if in.UserID != "" {
		h.svc.InvalidateUser(in.UserID)
	} else {
		h.svc.InvalidateAll()
	}
	log.Info().Str("por", GetUserID(c)).Str("user_id", in.UserID).Msg("rbac: caché invalidada")
	return c.JSON(fiber.Map{"success": true, "user_id": in.UserID})
}

// CacheStats godoc
// @Summary      Estado de la caché de permisos
// @Tags         rbac
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.CacheStatsResponse
// @Router       /api/dev/rbac-cache-stats [get]
func (h *RBACHandler) CacheStats(c *fiber.Ctx) error {
	return ok(c, h.svc.Stats())
}
