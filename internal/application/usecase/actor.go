package usecase

import (
	"context"
	"regexp"
	"strings"
	"time"

	"github.com/ecoplaza/ecoplaza-api/internal/domain/rbac"
)

// Actor usuario autenticado que ejecuta la operación (viene de los claims del JWT).
type Actor struct {
	UserID string
	Email  string
	Rol    string
}

// PermissionChecker consulta de permisos que necesitan algunos casos de uso.
type PermissionChecker interface {
	HasPermission(ctx context.Context, userID, rol string, p rbac.Permission) bool
}

// CacheInvalidator invalida la caché de permisos de un usuario.
type CacheInvalidator interface {
	InvalidateUser(userID string)
}

const fechaLayout = "2006-01-02"

var reNoDigitos = regexp.MustCompile(`[\s\-()]`)

// NormalizarTelefono quita espacios, guiones y paréntesis.
func NormalizarTelefono(s string) string {
	return reNoDigitos.ReplaceAllString(strings.TrimSpace(s), "")
}

func parseFecha(s string) (time.Time, error) {
	return time.ParseInLocation(fechaLayout, strings.TrimSpace(s), time.Local)
}

func formatFecha(t time.Time) string {
	return t.Format(fechaLayout)
}

func formatFechaPtr(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := formatFecha(*t)
	return &s
}

func strPtr(s string) *string {
	return &s
}

// nilSiVacio nil para cadenas vacías o solo espacios.
func nilSiVacio(s *string) *string {
	if s == nil || strings.TrimSpace(*s) == "" {
		return nil
	}
	v := strings.TrimSpace(*s)
	return &v
}
