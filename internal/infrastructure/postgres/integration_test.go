//go:build integration

package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	pgxdecimal "github.com/jackc/pgx-shopspring-decimal"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/ecoplaza/ecoplaza-api/internal/application/ports"
	"github.com/ecoplaza/ecoplaza-api/internal/domain"
	"github.com/ecoplaza/ecoplaza-api/internal/domain/entity"
)

// newTestPool levanta postgres en un contenedor y aplica el esquema embebido.
func newTestPool(t *testing.T) *pgxpool.Pool {
	t.Helper()
	ctx := context.Background()

	pg, err := tcpostgres.RunContainer(ctx,
		testcontainers.WithImage("postgres:16-alpine"),
		tcpostgres.WithDatabase("ecoplaza"),
		tcpostgres.WithUsername("ecoplaza"),
		tcpostgres.WithPassword("ecoplaza"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).WithStartupTimeout(30*time.Second),
		),
	)
	if err != nil {
		t.Skipf("docker no disponible: %v", err)
	}
	t.Cleanup(func() {
		timeoutCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		_ = pg.Terminate(timeoutCtx)
	})

	dsn, err := pg.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	cfg, err := pgxpool.ParseConfig(dsn)
	require.NoError(t, err)
	cfg.AfterConnect = func(ctx context.Context, conn *pgx.Conn) error {
		pgxdecimal.Register(conn.TypeMap())
		return nil
	}
	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	require.NoError(t, ApplySchema(ctx, pool))
	// idempotente
	require.NoError(t, ApplySchema(ctx, pool))
	return pool
}

func seedProyecto(t *testing.T, pool *pgxpool.Pool, slug string) string {
	t.Helper()
	id := uuid.New().String()
	_, err := pool.Exec(context.Background(),
		`INSERT INTO proyectos (id, nombre, slug) VALUES ($1, $2, $3)`, id, "Proyecto "+slug, slug)
	require.NoError(t, err)
	return id
}

func seedUsuario(t *testing.T, repos ports.TxRepos, rol string) *entity.Usuario {
	t.Helper()
	now := time.Now().UTC()
	u := &entity.Usuario{
		ID: uuid.New().String(), Nombre: "Usuario " + rol, Email: uuid.New().String() + "@ecoplaza.pe",
		PasswordHash: "x", Rol: rol, Activo: true, CreatedAt: now, UpdatedAt: now,
	}
	require.NoError(t, repos.Usuarios.Create(context.Background(), u))
	return u
}

// ────────────────────────────────────────────────────────────────────────────────

func TestIntegration_LeadsYLocales(t *testing.T) {
	pool := newTestPool(t)
	ctx := context.Background()
	repos := ReposFor(pool)
	proyectoID := seedProyecto(t, pool, "trapiche")

	now := time.Now().UTC()
	lead := &entity.Lead{
		ID: uuid.New().String(), ProyectoID: proyectoID, Telefono: "51987654321",
		Estado: entity.LeadCompleto, FechaCaptura: now, CreatedAt: now, UpdatedAt: now,
	}
	require.NoError(t, repos.Leads.Create(ctx, lead))

	dup := *lead
	dup.ID = uuid.New().String()
	assert.ErrorIs(t, repos.Leads.Create(ctx, &dup), domain.ErrDuplicate)

	found, err := repos.Leads.FindByTelefono(ctx, "51987654321")
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, "Proyecto trapiche", *found.ProyectoNombre)

	precio := decimal.NewFromInt(120000)
	local := &entity.Local{
		ID: uuid.New().String(), Codigo: "A-101", ProyectoID: proyectoID, Metraje: decimal.NewFromFloat(24.5),
		PrecioBase: &precio, Estado: entity.LocalVerde, CreatedAt: now, UpdatedAt: now,
	}
	require.NoError(t, repos.Locales.Create(ctx, local))

	stats, err := repos.Locales.Stats(ctx, proyectoID)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Verde)
	assert.Equal(t, 1, stats.Total)

	got, err := repos.Locales.GetByCodigo(ctx, proyectoID, "A-101")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.True(t, got.Metraje.Equal(decimal.NewFromFloat(24.5)))
}

func TestIntegration_TxRollback(t *testing.T) {
	pool := newTestPool(t)
	ctx := context.Background()
	runner := NewTxRunner(pool)

	var id string
	err := runner.Run(ctx, func(r ports.TxRepos) error {
		u := seedUsuario(t, r, entity.RolAdmin)
		id = u.ID
		return domain.ErrConflict
	})
	assert.ErrorIs(t, err, domain.ErrConflict)

	u, err := NewUsuarioRepository(pool).GetByID(ctx, id)
	require.NoError(t, err)
	assert.Nil(t, u)
}

func TestIntegration_CorredorDocumentos(t *testing.T) {
	pool := newTestPool(t)
	ctx := context.Background()
	repos := ReposFor(pool)
	u := seedUsuario(t, repos, entity.RolCorredor)

	now := time.Now().UTC()
	reg := &entity.RegistroCorredor{
		ID: uuid.New().String(), UsuarioID: u.ID, TipoPersona: entity.PersonaNatural,
		Email: u.Email, Telefono: "987654321", Estado: entity.RegistroBorrador, CreatedAt: now, UpdatedAt: now,
	}
	require.NoError(t, repos.Corredores.Create(ctx, reg))

	otro := *reg
	otro.ID = uuid.New().String()
	assert.ErrorIs(t, repos.Corredores.Create(ctx, &otro), domain.ErrConflict)

	for _, path := range []string{"v1.pdf", "v2.pdf"} {
		require.NoError(t, repos.Corredores.SaveDocumento(ctx, &entity.DocumentoCorredor{
			ID: uuid.New().String(), RegistroID: reg.ID, TipoDocumento: entity.DocDNIFrente,
			StoragePath: path, CreatedAt: now,
		}))
	}
	docs, err := repos.Corredores.ListDocumentos(ctx, reg.ID)
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, "v2.pdf", docs[0].StoragePath)

	list, err := repos.Corredores.List(ctx, entity.RegistroFilter{Busqueda: u.Email[:8]})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, 1, list[0].DocumentosCount)
}

func TestIntegration_ReunionesMediaVencida(t *testing.T) {
	pool := newTestPool(t)
	ctx := context.Background()
	repos := ReposFor(pool)

	viejo := time.Now().UTC().AddDate(0, 0, -40)
	path := "reuniones/global/1_demo.mp3"
	re := &entity.Reunion{
		ID: uuid.New().String(), Titulo: "Comité", MediaStoragePath: &path,
		Estado: entity.ReunionCompletado, CreatedAt: viejo, UpdatedAt: viejo,
	}
	require.NoError(t, repos.Reuniones.Create(ctx, re))
	require.NoError(t, repos.ActionItems.CreateBatch(ctx, []*entity.ActionItem{
		{ID: uuid.New().String(), ReunionID: re.ID, Descripcion: "Enviar propuesta", Prioridad: entity.PrioridadAlta, CreatedAt: viejo},
	}))

	vencidas, err := repos.Reuniones.ListMediaVencida(ctx, time.Now().UTC().AddDate(0, 0, -30))
	require.NoError(t, err)
	require.Len(t, vencidas, 1)
	assert.Empty(t, vencidas[0].PuntosClave)

	require.NoError(t, repos.Reuniones.MarcarMediaEliminada(ctx, re.ID, time.Now().UTC()))
	vencidas, err = repos.Reuniones.ListMediaVencida(ctx, time.Now().UTC())
	require.NoError(t, err)
	assert.Empty(t, vencidas)

	items, err := repos.ActionItems.ListByReunion(ctx, re.ID)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Comité", *items[0].ReunionTitulo)

	require.NoError(t, repos.ActionItems.DeleteByReunion(ctx, re.ID))
	items, err = repos.ActionItems.ListByReunion(ctx, re.ID)
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestIntegration_Executive(t *testing.T) {
	pool := newTestPool(t)
	ctx := context.Background()
	exec := NewExecutiveRepository(pool)
	seedProyecto(t, pool, "callao")

	c, err := exec.ContarLeads(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, 0, c.Total)

	m, err := exec.MetricasProyectos(ctx)
	require.NoError(t, err)
	require.Len(t, m, 1)
	assert.True(t, m[0].Revenue.IsZero())
}

func TestIntegration_RepulseCampania(t *testing.T) {
	pool := newTestPool(t)
	ctx := context.Background()
	repos := ReposFor(pool)
	repo := NewRepulseRepository(pool)
	proyectoID := seedProyecto(t, pool, "repulse")

	viejo := time.Now().UTC().AddDate(0, -2, 0)
	nuevoLead := func(tel string) *entity.Lead {
		l := &entity.Lead{
			ID: uuid.New().String(), ProyectoID: proyectoID, Telefono: tel, Nombre: &tel,
			Estado: entity.LeadCompleto, FechaCaptura: viejo, CreatedAt: viejo, UpdatedAt: viejo,
		}
		require.NoError(t, repos.Leads.Create(ctx, l))
		return l
	}
	l1, l2 := nuevoLead("51900000001"), nuevoLead("51900000002")

	corte := time.Now().UTC().AddDate(0, 0, -30)
	cand, err := repo.Candidatos(ctx, proyectoID, corte)
	require.NoError(t, err)
	assert.Len(t, cand, 2)

	now := time.Now().UTC()
	rl := &entity.RepulseLead{ID: uuid.New().String(), LeadID: l1.ID, ProyectoID: proyectoID,
		Origen: entity.RepulseOrigenManual, Estado: entity.RepulsePendiente, CreatedAt: now, UpdatedAt: now}
	require.NoError(t, repo.CreateLead(ctx, rl))
	dup := *rl
	dup.ID = uuid.New().String()
	assert.ErrorIs(t, repo.CreateLead(ctx, &dup), domain.ErrDuplicate)

	cand, err = repo.Candidatos(ctx, proyectoID, corte)
	require.NoError(t, err)
	require.Len(t, cand, 1)
	assert.Equal(t, l2.ID, cand[0].ID)

	require.NoError(t, repo.SetExcluido(ctx, l1.ID, true, now))
	el, err := repo.Elegibilidad(ctx, l1.ID)
	require.NoError(t, err)
	assert.True(t, el.Existe)
	assert.True(t, el.Excluido)
	got, err := repo.GetLead(ctx, rl.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.RepulseExcluido, got.Estado)

	require.NoError(t, repo.SetExcluido(ctx, l1.ID, false, now))
	leads, err := repo.ListLeads(ctx, entity.RepulseLeadFilter{ProyectoID: proyectoID, IDs: []string{rl.ID}})
	require.NoError(t, err)
	require.Len(t, leads, 1)
	assert.Equal(t, entity.RepulsePendiente, leads[0].Estado)
	assert.Equal(t, "51900000001", leads[0].LeadTelefono)

	batch := uuid.New().String()
	envio := &entity.RepulseEnvio{ID: uuid.New().String(), RepulseLeadID: rl.ID, LeadID: l1.ID, ProyectoID: proyectoID,
		BatchID: batch, MensajeEnviado: "Hola", EnvioEstado: entity.EnvioPendiente, CreatedAt: now}
	require.NoError(t, repo.CreateEnvios(ctx, []*entity.RepulseEnvio{envio}))
	envio.EnvioEstado, envio.EnviadoAt = entity.EnvioEnviado, &now
	require.NoError(t, repo.UpdateEnvio(ctx, envio))
	require.NoError(t, repo.RegistrarEnvio(ctx, rl.ID, nil, now))

	estado, err := repo.EstadoBatch(ctx, batch)
	require.NoError(t, err)
	assert.Equal(t, 1, estado.Total)
	assert.Equal(t, 1, estado.Enviados)

	stats, err := repo.Stats(ctx, proyectoID)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Enviados)

	_, err = repo.Elegibilidad(ctx, uuid.New().String())
	require.NoError(t, err)
}

func TestIntegration_AprobacionesDescuento(t *testing.T) {
	pool := newTestPool(t)
	ctx := context.Background()
	repos := ReposFor(pool)
	repo := NewAprobacionRepository(pool)
	proyectoID := seedProyecto(t, pool, "descuentos")
	vendedor := seedUsuario(t, repos, entity.RolVendedor)

	cfg, err := repo.GetConfig(ctx, proyectoID)
	require.NoError(t, err)
	assert.Nil(t, cfg)

	now := time.Now().UTC()
	rangos := []entity.RangoDescuento{{Min: decimal.Zero, Max: decimal.NewFromInt(100), Aprobadores: []string{entity.RolAdmin}}}
	require.NoError(t, repo.SaveConfig(ctx, &entity.ConfigAprobacion{ID: uuid.New().String(), ProyectoID: proyectoID,
		Rangos: rangos, NotificarWhatsapp: true, UpdatedAt: now}))
	require.NoError(t, repo.SaveConfig(ctx, &entity.ConfigAprobacion{ID: uuid.New().String(), ProyectoID: proyectoID,
		Rangos: rangos, UpdatedAt: now}))
	cfg, err = repo.GetConfig(ctx, proyectoID)
	require.NoError(t, err)
	require.NotNil(t, cfg)
	assert.False(t, cfg.NotificarWhatsapp)
	assert.Equal(t, []string{entity.RolAdmin}, cfg.Rangos[0].Aprobadores)

	precio := decimal.NewFromInt(50000)
	local := &entity.Local{ID: uuid.New().String(), Codigo: "B-201", ProyectoID: proyectoID, Metraje: decimal.NewFromInt(20),
		PrecioBase: &precio, Estado: entity.LocalVerde, CreatedAt: now, UpdatedAt: now}
	require.NoError(t, repos.Locales.Create(ctx, local))

	s := &entity.SolicitudAprobacion{
		ID: uuid.New().String(), ProyectoID: proyectoID, LocalID: local.ID, VendedorID: vendedor.ID,
		VendedorNombre: vendedor.Nombre, PrecioLista: precio, PrecioNegociado: decimal.NewFromInt(40000),
		DescuentoPorcentaje: decimal.NewFromInt(20), DescuentoMonto: decimal.NewFromInt(10000),
		AprobadoresRequeridos: []string{entity.RolAdmin}, Aprobaciones: []entity.DecisionAprobacion{},
		Estado: entity.AprobacionPendiente, FechaSolicitud: now,
	}
	require.NoError(t, repo.Create(ctx, s))

	pend, err := repo.List(ctx, entity.AprobacionFilter{ProyectoID: proyectoID, Rol: entity.RolAdmin})
	require.NoError(t, err)
	require.Len(t, pend, 1)
	assert.Equal(t, "B-201", *pend[0].LocalCodigo)

	s.Aprobaciones = append(s.Aprobaciones, entity.DecisionAprobacion{Rol: entity.RolAdmin, UsuarioID: vendedor.ID, Fecha: now, Decision: "aprobado"})
	s.Estado, s.FechaResolucion = entity.AprobacionAprobado, &now
	require.NoError(t, repo.Update(ctx, s))
	assert.ErrorIs(t, repo.Update(ctx, s), domain.ErrConflict)

	got, err := repo.GetByID(ctx, s.ID)
	require.NoError(t, err)
	require.Len(t, got.Aprobaciones, 1)
	assert.Equal(t, entity.AprobacionAprobado, got.Estado)

	st, err := repo.Stats(ctx, proyectoID)
	require.NoError(t, err)
	assert.Equal(t, 1, st.Aprobadas)
	assert.True(t, decimal.NewFromInt(20).Equal(st.DescuentoPromedio))
}
