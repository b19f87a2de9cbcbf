package permisos

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ecoplaza/ecoplaza-api/internal/domain/entity"
	"github.com/ecoplaza/ecoplaza-api/internal/domain/rbac"
	"github.com/ecoplaza/ecoplaza-api/internal/domain/repository"
)

type fakeRBACRepo struct {
	mu      sync.Mutex
	perms   map[string]*rbac.UserPermissions
	roles   map[string]string // usuarios activos
	err     error
	loads   int
	audited chan repository.PermisoAudit
}

func (f *fakeRBACRepo) LoadPermissions(_ context.Context, userID string) (*rbac.UserPermissions, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.loads++
	if f.err != nil {
		return nil, f.err
	}
	return f.perms[userID], nil
}

func (f *fakeRBACRepo) RolActivo(_ context.Context, userID string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.loads++
	if f.err != nil {
		return "", f.err
	}
	return f.roles[userID], nil
}

func (f *fakeRBACRepo) Audit(_ context.Context, a repository.PermisoAudit) error {
	f.audited <- a
	return nil
}

type fakeMetrics struct{ hits, misses int }

func (m *fakeMetrics) LocalTransicion(string, string) {}
func (m *fakeMetrics) RBACCacheHit()                  { m.hits++ }
func (m *fakeMetrics) RBACCacheMiss()                 { m.misses++ }
func (m *fakeMetrics) WebhookEnvio(string)            {}

func newRepo() *fakeRBACRepo {
	return &fakeRBACRepo{
		perms: map[string]*rbac.UserPermissions{
			"u1": {UserID: "u1", Rol: entity.RolFinanzas, Permisos: []rbac.Permission{rbac.P(rbac.ModControlPagos, rbac.AccRead)}},
			"u2": {UserID: "u2", Rol: entity.RolCorredor, PermisosExtra: []rbac.Permission{rbac.P(rbac.ModExpansion, rbac.AccRead)}},
			"sa": {UserID: "sa", Rol: entity.RolSuperadmin},
			// desactivado: la consulta de permisos no devuelve rol
			"baja": {UserID: "baja"},
		},
		roles: map[string]string{
			"v1":  entity.RolVendedor,
			"c1":  entity.RolCorredor,
			"adm": entity.RolAdmin,
		},
		audited: make(chan repository.PermisoAudit, 1),
	}
}

// ────────────────────────────────────────────────────────────────────────────────

func TestService_CacheHitYMiss(t *testing.T) {
	repo := newRepo()
	m := &fakeMetrics{}
	s := NewService(repo, Config{Enabled: true}, m)
	ctx := context.Background()

	assert.True(t, s.HasPermission(ctx, "u1", "", rbac.P(rbac.ModControlPagos, rbac.AccRead)))
	assert.False(t, s.HasPermission(ctx, "u1", "", rbac.P(rbac.ModControlPagos, rbac.AccWrite)))
	assert.Equal(t, 1, repo.loads)
	assert.Equal(t, 1, m.misses)
	assert.Equal(t, 1, m.hits)

	s.InvalidateUser("u1")
	s.HasPermission(ctx, "u1", "", rbac.P(rbac.ModControlPagos, rbac.AccRead))
	assert.Equal(t, 2, repo.loads)
}

func TestService_ReglasEspeciales(t *testing.T) {
	s := NewService(newRepo(), Config{Enabled: true}, nil)
	ctx := context.Background()

	assert.True(t, s.HasPermission(ctx, "sa", "", rbac.P(rbac.ModUsuarios, rbac.AccDelete)))
	assert.True(t, s.HasPermission(ctx, "u1", "", rbac.P(rbac.ModLeads, rbac.AccAssign)))
	assert.False(t, s.HasPermission(ctx, "u2", "", rbac.P(rbac.ModLeads, rbac.AccAssign)))
	assert.False(t, s.HasPermission(ctx, "u1", "", rbac.P(rbac.ModLeads, rbac.AccExport)))
	assert.True(t, s.HasPermission(ctx, "u2", "", rbac.P(rbac.ModExpansion, rbac.AccRead)))
}

func TestService_UsuarioInactivoSinPermisos(t *testing.T) {
	s := NewService(newRepo(), Config{Enabled: true}, nil)
	list, err := s.ListUserPermissions(context.Background(), "desconocido", entity.RolAdmin)
	require.NoError(t, err)
	assert.Empty(t, list)
	assert.False(t, s.HasPermission(context.Background(), "desconocido", entity.RolSuperadmin, rbac.P(rbac.ModLeads, rbac.AccRead)))
}

func TestService_ErrorDeCargaDeniega(t *testing.T) {
	repo := newRepo()
	repo.err = errors.New("db caída")
	s := NewService(repo, Config{Enabled: true}, nil)
	ctx := context.Background()

	assert.False(t, s.HasPermission(ctx, "u1", "", rbac.P(rbac.ModControlPagos, rbac.AccRead)))
	assert.False(t, s.HasAny(ctx, "u1", "", rbac.P(rbac.ModControlPagos, rbac.AccRead)))
	assert.False(t, s.HasAll(ctx, "u1", ""))
}

func TestService_MatrizHeredada(t *testing.T) {
	repo := newRepo()
	s := NewService(repo, Config{Enabled: false}, nil)
	ctx := context.Background()

	assert.True(t, s.HasAll(ctx, "v1", entity.RolVendedor,
		rbac.P(rbac.ModLeads, rbac.AccRead), rbac.P(rbac.ModLocales, rbac.AccCambiarEstado)))
	assert.False(t, s.HasAny(ctx, "v1", entity.RolVendedor, rbac.P(rbac.ModLocales, rbac.AccAdmin)))
	assert.Equal(t, 1, repo.loads, "la segunda consulta sale del caché")

	d, err := s.Describe(ctx, "c1", entity.RolCorredor)
	require.NoError(t, err)
	assert.Equal(t, []string{"expansion:read", "expansion:write"}, d.Permisos)
}

// ── Usuarios desactivados ───────────────────────────────────────────────────────

func TestService_RBACUsuarioSinRolNoAsignaLeads(t *testing.T) {
	s := NewService(newRepo(), Config{Enabled: true}, nil)
	ctx := context.Background()

	assert.False(t, s.HasPermission(ctx, "baja", entity.RolAdmin, rbac.P(rbac.ModLeads, rbac.AccAssign)))
	assert.False(t, s.HasPermission(ctx, "desconocido", "", rbac.P(rbac.ModLeads, rbac.AccAssign)))
}

func TestService_MatrizHeredadaAdminDesactivado(t *testing.T) {
	repo := newRepo()
	s := NewService(repo, Config{Enabled: false}, nil)
	ctx := context.Background()

	assert.True(t, s.HasPermission(ctx, "adm", entity.RolAdmin, rbac.P(rbac.ModUsuarios, rbac.AccDelete)))

	// baja del admin: el token sigue diciendo admin
	delete(repo.roles, "adm")
	s.InvalidateUser("adm")
	assert.False(t, s.HasPermission(ctx, "adm", entity.RolAdmin, rbac.P(rbac.ModUsuarios, rbac.AccDelete)))
	assert.False(t, s.HasPermission(ctx, "adm", entity.RolAdmin, rbac.P(rbac.ModLeads, rbac.AccAssign)))

	list, err := s.ListUserPermissions(ctx, "adm", entity.RolAdmin)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestService_MatrizHeredadaUsaRolDeLaBase(t *testing.T) {
	s := NewService(newRepo(), Config{Enabled: false}, nil)
	// token viejo con rol admin para un usuario que hoy es vendedor
	assert.False(t, s.HasPermission(context.Background(), "v1", entity.RolAdmin, rbac.P(rbac.ModUsuarios, rbac.AccDelete)))
}

func TestService_Stats(t *testing.T) {
	s := NewService(newRepo(), Config{Enabled: true, TTL: 20 * time.Millisecond, Cleanup: time.Hour}, nil)
	ctx := context.Background()
	_, _ = s.GetUserPermissions(ctx, "u1", "")
	_, _ = s.GetUserPermissions(ctx, "u2", "")
	assert.Equal(t, 2, s.Stats().Valid)

	time.Sleep(40 * time.Millisecond)
	st := s.Stats()
	assert.Equal(t, 2, st.Total)
	assert.Equal(t, 2, st.Expired)

	s.InvalidateAll()
	assert.Equal(t, 0, s.Stats().Total)
}

func TestService_AuditDeniedNoBloquea(t *testing.T) {
	repo := newRepo()
	s := NewService(repo, Config{Enabled: true}, nil)
	s.AuditDenied(context.Background(), repository.PermisoAudit{UsuarioID: "u1", Modulo: "leads", Accion: "delete"})

	select {
	case a := <-repo.audited:
		assert.Equal(t, "u1", a.UsuarioID)
		assert.False(t, a.CreatedAt.IsZero())
	case <-time.After(time.Second):
		t.Fatal("la auditoría no se registró")
	}
}
