package http

import (
	"context"
	"crypto/subtle"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/ecoplaza/ecoplaza-api/internal/application/usecase"
	"github.com/ecoplaza/ecoplaza-api/internal/domain/entity"
	"github.com/ecoplaza/ecoplaza-api/internal/domain/rbac"
	"github.com/ecoplaza/ecoplaza-api/internal/domain/repository"
	"github.com/ecoplaza/ecoplaza-api/pkg/jwt"
)

// Locals keys con los claims del token.
const (
	LocalUserID = "user_id"
	LocalEmail  = "email"
	LocalRol    = "rol"
)

// AuthMiddleware valida el Bearer Token JWT y deja user_id, email y rol en c.Locals.
func AuthMiddleware(jwtSecret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenString, code, msg := bearer(c)
		if tokenString == "" {
			return fail(c, fiber.StatusUnauthorized, code, msg)
		}
		userID, email, rol, err := jwt.Parse(jwtSecret, tokenString)
		if err != nil {
			return fail(c, fiber.StatusUnauthorized, "INVALID_TOKEN", "token inválido o expirado")
		}
		c.Locals(LocalUserID, userID)
		c.Locals(LocalEmail, email)
		c.Locals(LocalRol, rol)
		return c.Next()
	}
}

func bearer(c *fiber.Ctx) (token, code, msg string) {
	authHeader := c.Get(fiber.HeaderAuthorization)
	if authHeader == "" {
		return "", "MISSING_TOKEN", "Authorization header requerido"
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", "INVALID_TOKEN", "formato: Bearer <token>"
	}
	token = strings.TrimSpace(parts[1])
	if token == "" {
		return "", "MISSING_TOKEN", "token vacío"
	}
	return token, "", ""
}

// CronAuth protege las tareas programadas con Authorization: Bearer <CRON_SECRET>.
// Sin secreto configurado el endpoint queda cerrado.
func CronAuth(secret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token, _, _ := bearer(c)
		if secret == "" || token == "" || subtle.ConstantTimeCompare([]byte(token), []byte(secret)) != 1 {
			return fail(c, fiber.StatusUnauthorized, "UNAUTHORIZED", "no autorizado")
		}
		return c.Next()
	}
}

// permissionChecker lo implementa *permisos.Service.
type permissionChecker interface {
	HasPermission(ctx context.Context, userID, rol string, p rbac.Permission) bool
	AuditDenied(ctx context.Context, a repository.PermisoAudit)
}

// RequirePermission exige modulo:accion. Va DESPUÉS de AuthMiddleware.
// Un rechazo responde 403 FORBIDDEN y queda auditado.
func RequirePermission(checker permissionChecker, modulo, accion string) fiber.Handler {
	p := rbac.P(modulo, accion)
	return func(c *fiber.Ctx) error {
		userID := GetUserID(c)
		if userID == "" {
			return fail(c, fiber.StatusUnauthorized, "UNAUTHORIZED", "usuario no autenticado")
		}
		if checker.HasPermission(c.UserContext(), userID, GetRol(c), p) {
			return c.Next()
		}
		checker.AuditDenied(c.UserContext(), repository.PermisoAudit{
			UsuarioID: userID,
			Modulo:    modulo,
			Accion:    accion,
			Ruta:      c.Method() + " " + c.Path(),
			IP:        c.IP(),
			UserAgent: c.Get(fiber.HeaderUserAgent),
		})
		return fail(c, fiber.StatusForbidden, "FORBIDDEN", "no tienes permiso "+p.String())
	}
}

// RequireRole restringe la ruta a los roles indicados; superadmin siempre pasa.
func RequireRole(roles ...string) fiber.Handler {
	permitidos := make(map[string]struct{}, len(roles))
	for _, r := range roles {
		permitidos[r] = struct{}{}
	}
	return func(c *fiber.Ctx) error {
		rol := GetRol(c)
		if rol == "" {
			return fail(c, fiber.StatusUnauthorized, "UNAUTHORIZED", "rol no encontrado en el token")
		}
		if _, ok := permitidos[rol]; ok || rol == entity.RolSuperadmin {
			return c.Next()
		}
		return fail(c, fiber.StatusForbidden, "FORBIDDEN", "rol sin acceso a este recurso")
	}
}

func local(c *fiber.Ctx, key string) string {
	s, _ := c.Locals(key).(string)
	return s
}

// GetUserID devuelve el UserID del contexto (después del middleware de auth).
func GetUserID(c *fiber.Ctx) string { return local(c, LocalUserID) }

// GetRol devuelve el rol del token.
func GetRol(c *fiber.Ctx) string { return local(c, LocalRol) }

// GetActor arma el actor de los casos de uso a partir de los claims.
func GetActor(c *fiber.Ctx) usecase.Actor {
	return usecase.Actor{UserID: GetUserID(c), Email: local(c, LocalEmail), Rol: GetRol(c)}
}
