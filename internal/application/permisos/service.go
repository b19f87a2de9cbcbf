// Package permisos resuelve y cachea los permisos efectivos de cada usuario.
package permisos

import (
	"context"
	"fmt"
	"time"

	"github.com/patrickmn/go-cache"
	"github.com/rs/zerolog/log"

	"github.com/ecoplaza/ecoplaza-api/internal/application/dto"
	"github.com/ecoplaza/ecoplaza-api/internal/application/ports"
	"github.com/ecoplaza/ecoplaza-api/internal/domain/rbac"
	"github.com/ecoplaza/ecoplaza-api/internal/domain/repository"
)

// Config RBAC desde base de datos o matriz heredada.
type Config struct {
	Enabled bool
	TTL     time.Duration
	Cleanup time.Duration
}

// Service consulta de permisos con caché por usuario.
type Service struct {
	repo    repository.RBACRepository
	cfg     Config
	cache   *cache.Cache
	metrics ports.Metrics
}

// NewService construye el servicio. TTL y Cleanup en cero toman 5 y 2 minutos.
func NewService(repo repository.RBACRepository, cfg Config, m ports.Metrics) *Service {
	if cfg.TTL <= 0 {
		cfg.TTL = 5 * time.Minute
	}
	if cfg.Cleanup <= 0 {
		cfg.Cleanup = 2 * time.Minute
	}
	if m == nil {
		m = ports.NopMetrics{}
	}
	return &Service{
		repo:    repo,
		cfg:     cfg,
		cache:   cache.New(cfg.TTL, cfg.Cleanup),
		metrics: m,
	}
}

// GetUserPermissions permisos efectivos. En ambos modos el rol y el estado
// activo se leen de la base; el rol del token solo se muestra en Describe.
// Un usuario inactivo o inexistente obtiene una lista vacía.
func (s *Service) GetUserPermissions(ctx context.Context, userID, rol string) (*rbac.UserPermissions, error) {
	if v, ok := s.cache.Get(userID); ok {
		s.metrics.RBACCacheHit()
		return v.(*rbac.UserPermissions), nil
	}
	s.metrics.RBACCacheMiss()

	up, err := s.cargar(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("cargar permisos: %w", err)
	}
	if up == nil {
		up = &rbac.UserPermissions{UserID: userID}
	}
	s.cache.SetDefault(userID, up)
	return up, nil
}

func (s *Service) cargar(ctx context.Context, userID string) (*rbac.UserPermissions, error) {
	if s.cfg.Enabled {
		return s.repo.LoadPermissions(ctx, userID)
	}
	rol, err := s.repo.RolActivo(ctx, userID)
	if err != nil || rol == "" {
		return nil, err
	}
	return &rbac.UserPermissions{UserID: userID, Rol: rol, Permisos: rbac.LegacyPermissions(rol)}, nil
}

// HasPermission evalúa un permiso; cualquier error de carga deniega.
func (s *Service) HasPermission(ctx context.Context, userID, rol string, p rbac.Permission) bool {
	up, err := s.GetUserPermissions(ctx, userID, rol)
	if err != nil {
		log.Error().Err(err).Str("user_id", userID).Str("permiso", p.String()).Msg("rbac: error al verificar permiso")
		return false
	}
	return rbac.Evaluar(up, p)
}

// HasAny true si tiene al menos uno.
func (s *Service) HasAny(ctx context.Context, userID, rol string, ps ...rbac.Permission) bool {
	up, err := s.GetUserPermissions(ctx, userID, rol)
	if err != nil {
		return false
	}
	for _, p := range ps {
		if rbac.Evaluar(up, p) {
			return true
		}
	}
	return false
}

// HasAll true si tiene todos.
func (s *Service) HasAll(ctx context.Context, userID, rol string, ps ...rbac.Permission) bool {
	up, err := s.GetUserPermissions(ctx, userID, rol)
	if err != nil {
		return false
	}
	for _, p := range ps {
		if !rbac.Evaluar(up, p) {
			return false
		}
	}
	return true
}

// ListUserPermissions permisos en formato "modulo:accion", sin duplicados y ordenados.
func (s *Service) ListUserPermissions(ctx context.Context, userID, rol string) ([]string, error) {
	up, err := s.GetUserPermissions(ctx, userID, rol)
	if err != nil {
		return nil, err
	}
	return up.List(), nil
}

// Describe permisos del usuario para GET /api/permissions.
func (s *Service) Describe(ctx context.Context, userID, rol string) (*dto.UserPermissionsResponse, error) {
	up, err := s.GetUserPermissions(ctx, userID, rol)
	if err != nil {
		return nil, err
	}
	out := &dto.UserPermissionsResponse{
		UserID:        userID,
		Rol:           up.Rol,
		RolID:         up.RolID,
		Permisos:      formatear(up.Permisos),
		PermisosExtra: formatear(up.PermisosExtra),
	}
	if out.Rol == "" {
		out.Rol = rol
	}
	return out, nil
}

func formatear(ps []rbac.Permission) []string {
	out := make([]string, 0, len(ps))
	for _, p := range ps {
		out = append(out, p.String())
	}
	return out
}

// InvalidateUser descarta la entrada del usuario.
func (s *Service) InvalidateUser(userID string) {
	s.cache.Delete(userID)
}

// InvalidateAll vacía la caché.
func (s *Service) InvalidateAll() {
	s.cache.Flush()
}

// Stats entradas totales, vigentes y expiradas aún no purgadas.
func (s *Service) Stats() dto.CacheStatsResponse {
	total := s.cache.ItemCount()
	valid := len(s.cache.Items())
	return dto.CacheStatsResponse{Total: total, Valid: valid, Expired: total - valid}
}

// AuditDenied registra el intento sin bloquear al llamador.
func (s *Service) AuditDenied(ctx context.Context, a repository.PermisoAudit) {
	if a.CreatedAt.IsZero() {
		a.CreatedAt = time.Now()
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
		defer cancel()
		if err := s.repo.Audit(ctx, a); err != nil {
			log.Warn().Err(err).Str("user_id", a.UsuarioID).Msg("rbac: no se pudo auditar acceso denegado")
		}
	}()
}
