package repository

import (
	"context"
	"time"

	"github.com/ecoplaza/ecoplaza-api/internal/domain/rbac"
)

// PermisoAudit intento de acceso sin permiso.
type PermisoAudit struct {
	UsuarioID string
	Modulo    string
	Accion    string
	Ruta      string
	IP        string
	UserAgent string
	CreatedAt time.Time
}

// RBACRepository carga permisos desde roles, rol_permisos y usuario_permisos_extra.
type RBACRepository interface {
	// LoadPermissions devuelve nil si el usuario no existe o está inactivo.
	LoadPermissions(ctx context.Context, userID string) (*rbac.UserPermissions, error)
	// RolActivo rol del usuario si existe y está activo; "" en otro caso.
	RolActivo(ctx context.Context, userID string) (string, error)
	Audit(ctx context.Context, a PermisoAudit) error
}
