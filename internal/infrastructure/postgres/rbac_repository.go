package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/ecoplaza/ecoplaza-api/internal/domain/rbac"
	"github.com/ecoplaza/ecoplaza-api/internal/domain/repository"
)

var _ repository.RBACRepository = (*RBACRepo)(nil)

// RBACRepo carga permisos desde las tablas roles, rol_permisos y usuario_permisos_extra.
type RBACRepo struct {
	q Querier
}

// NewRBACRepository construye el adaptador.
func NewRBACRepository(q Querier) *RBACRepo {
	return &RBACRepo{q: q}
}

// LoadPermissions permisos del rol más los extra vigentes. Usuario inexistente o inactivo ⇒ nil.
func (r *RBACRepo) LoadPermissions(ctx context.Context, userID string) (*rbac.UserPermissions, error) {
	up := rbac.UserPermissions{UserID: userID}
	var rolID *string
	err := r.q.QueryRow(ctx, `
		SELECT u.rol, COALESCE(u.rol_id, ro.id)::TEXT
		FROM usuarios u
		LEFT JOIN roles ro ON ro.nombre = u.rol AND ro.activo = TRUE
		WHERE u.id = $1 AND u.activo = TRUE`, userID).Scan(&up.Rol, &rolID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("rbac usuario: %w", err)
	}

	if rolID != nil {
		up.RolID = *rolID
		if up.Permisos, err = r.permisos(ctx, `
			SELECT p.modulo, p.accion
			FROM rol_permisos rp
			JOIN permisos p ON p.id = rp.permiso_id
			WHERE rp.rol_id = $1`, up.RolID); err != nil {
			return nil, err
		}
	}

	if up.PermisosExtra, err = r.permisos(ctx, `
		SELECT p.modulo, p.accion
		FROM usuario_permisos_extra e
		JOIN permisos p ON p.id = e.permiso_id
		WHERE e.usuario_id = $1 AND e.activo = TRUE
		  AND (e.fecha_expiracion IS NULL OR e.fecha_expiracion > NOW())`, userID); err != nil {
		return nil, err
	}
	return &up, nil
}

// RolActivo rol vigente del usuario para la matriz heredada.
func (r *RBACRepo) RolActivo(ctx context.Context, userID string) (string, error) {
	var rol string
	err := r.q.QueryRow(ctx, `SELECT rol FROM usuarios WHERE id = $1 AND activo = TRUE`, userID).Scan(&rol)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", nil
		}
		return "", fmt.Errorf("rbac rol: %w", err)
	}
	return rol, nil
}

func (r *RBACRepo) permisos(ctx context.Context, query, arg string) ([]rbac.Permission, error) {
	rows, err := r.q.Query(ctx, query, arg)
	if err != nil {
		return nil, fmt.Errorf("rbac permisos: %w", err)
	}
	defer rows.Close()
	var list []rbac.Permission
	for rows.Next() {
		var p rbac.Permission
		if err := rows.Scan(&p.Modulo, &p.Accion); err != nil {
			return nil, fmt.Errorf("scan permiso: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

// Audit registra un intento de acceso no autorizado.
func (r *RBACRepo) Audit(ctx context.Context, a repository.PermisoAudit) error {
	detalle, err := json.Marshal(map[string]string{
		"permiso_requerido": a.Modulo + ":" + a.Accion,
		"route":             a.Ruta,
	})
	if err != nil {
		return fmt.Errorf("audit detalle: %w", err)
	}
	_, err = r.q.Exec(ctx, `
		INSERT INTO permisos_audit (usuario_id, accion, tabla_afectada, valores_despues, realizado_por, ip_address, user_agent, created_at)
		VALUES ($1, 'unauthorized_access_attempt', $2, $3, $1, $4, $5, $6)`,
		a.UsuarioID, a.Modulo, detalle, nullIfEmpty(a.IP), nullIfEmpty(a.UserAgent), a.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert permisos_audit: %w", err)
	}
	return nil
}
