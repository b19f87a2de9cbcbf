package usecase

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ecoplaza/ecoplaza-api/internal/application/dto"
	"github.com/ecoplaza/ecoplaza-api/internal/application/ports"
	"github.com/ecoplaza/ecoplaza-api/internal/domain"
	"github.com/ecoplaza/ecoplaza-api/internal/domain/entity"
)

var gerente = Actor{UserID: "u-a", Email: "admin@ecoplaza.pe", Rol: entity.RolAdmin}

func newAprobacionUC(t *testing.T) (*AprobacionUseCase, *fakeAprobacionRepo, *fakeAprobacionNotifier) {
	t.Helper()
	s := seedVenta(t)
	s.usuarios["u-a"] = &entity.Usuario{ID: "u-a", Nombre: "Ana", Rol: entity.RolAdmin, Activo: true}
	s.locales["loc1"].PrecioBase = ptr(decimal.NewFromInt(50000))
	s.locales["loc2"] = &entity.Local{ID: "loc2", Codigo: "A-102", ProyectoID: "p1", Estado: entity.LocalVerde}
	repo, n := newAprobacionRepo(), &fakeAprobacionNotifier{}
	uc := NewAprobacionUseCase(repo, &fakeLocalRepo{s}, &fakeUsuarioRepo{s}, n)
	uc.now = fixedNow
	return uc, repo, n
}

func solicitar(t *testing.T, uc *AprobacionUseCase, negociado int64) *dto.AprobacionResponse {
	t.Helper()
	out, err := uc.Solicitar(context.Background(), vendedor, dto.SolicitarDescuentoRequest{
		LocalID:         "loc1",
		PrecioNegociado: decimal.NewFromInt(negociado),
		Comentario:      ptr("cliente paga al contado"),
	})
	require.NoError(t, err)
	require.True(t, out.RequiereAprobacion)
	require.NotNil(t, out.Solicitud)
	return out.Solicitud
}

// ── Solicitud ────────────────────────────────────────────────────────────────

func TestSolicitar_TramoLibreNoCreaSolicitud(t *testing.T) {
	uc, repo, n := newAprobacionUC(t)

	out, err := uc.Solicitar(context.Background(), vendedor, dto.SolicitarDescuentoRequest{
		LocalID: "loc1", PrecioNegociado: decimal.NewFromInt(48000),
	})
	require.NoError(t, err)
	assert.False(t, out.RequiereAprobacion)
	assert.True(t, decimal.NewFromInt(4).Equal(out.DescuentoPorcentaje))
	assert.Nil(t, out.Solicitud)
	assert.Empty(t, repo.solicitudes)
	assert.Empty(t, n.eventos)
}

func TestSolicitar_CreaPendienteConAprobadores(t *testing.T) {
	uc, _, n := newAprobacionUC(t)

	s := solicitar(t, uc, 44000)
	assert.Equal(t, entity.AprobacionPendiente, s.Estado)
	assert.Equal(t, []string{entity.RolJefeVentas, entity.RolAdmin}, s.AprobadoresRequeridos)
	assert.True(t, decimal.NewFromInt(12).Equal(s.DescuentoPorcentaje))
	assert.True(t, decimal.NewFromInt(6000).Equal(s.DescuentoMonto))
	assert.Equal(t, "Vera", s.VendedorNombre)
	assert.Equal(t, "A-101", *s.LocalCodigo)
	assert.NotNil(t, s.Aprobaciones)
	assert.Equal(t, []string{ports.EventoNuevaSolicitud}, n.tipos())
}

func TestSolicitar_PrecioListaDelRequestSinPrecioBase(t *testing.T) {
	uc, _, _ := newAprobacionUC(t)
	ctx := context.Background()

	_, err := uc.Solicitar(ctx, vendedor, dto.SolicitarDescuentoRequest{LocalID: "loc2", PrecioNegociado: decimal.NewFromInt(100)})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	out, err := uc.Solicitar(ctx, vendedor, dto.SolicitarDescuentoRequest{
		LocalID: "loc2", PrecioLista: ptr(decimal.NewFromInt(30000)), PrecioNegociado: decimal.NewFromInt(24000),
	})
	require.NoError(t, err)
	assert.Equal(t, []string{entity.RolAdmin}, out.Solicitud.AprobadoresRequeridos)
}

func TestSolicitar_Validaciones(t *testing.T) {
	uc, _, _ := newAprobacionUC(t)
	ctx := context.Background()

	_, err := uc.Solicitar(ctx, vendedor, dto.SolicitarDescuentoRequest{LocalID: "nope", PrecioNegociado: decimal.NewFromInt(1)})
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = uc.Solicitar(ctx, vendedor, dto.SolicitarDescuentoRequest{LocalID: "loc1", PrecioNegociado: decimal.NewFromInt(50000)})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = uc.Solicitar(ctx, vendedor, dto.SolicitarDescuentoRequest{LocalID: "loc1", PrecioNegociado: decimal.Zero})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ── Resolución ───────────────────────────────────────────────────────────────

func TestAprobar_RequiereTodosLosRoles(t *testing.T) {
	uc, _, n := newAprobacionUC(t)
	ctx := context.Background()
	s := solicitar(t, uc, 44000)

	out, err := uc.Aprobar(ctx, jefe, s.ID, nil)
	require.NoError(t, err)
	assert.Equal(t, entity.AprobacionPendiente, out.Estado)
	require.Len(t, out.Aprobaciones, 1)
	assert.Equal(t, "Jorge", out.Aprobaciones[0].UsuarioNombre)

	_, err = uc.Aprobar(ctx, jefe, s.ID, nil)
	assert.ErrorIs(t, err, domain.ErrConflict)
	_, err = uc.Aprobar(ctx, finanzas, s.ID, nil)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	out, err = uc.Aprobar(ctx, gerente, s.ID, ptr("ok"))
	require.NoError(t, err)
	assert.Equal(t, entity.AprobacionAprobado, out.Estado)
	assert.Equal(t, "ok", *out.ComentarioResolucion)
	assert.Equal(t, "u-a", *out.ResueltoPor)
	require.NotNil(t, out.FechaResolucion)
	assert.Equal(t, []string{ports.EventoNuevaSolicitud, ports.EventoSolicitudAprobada}, n.tipos())

	_, err = uc.Rechazar(ctx, gerente, s.ID, nil)
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestAprobar_ComentarioPorDefecto(t *testing.T) {
	uc, _, _ := newAprobacionUC(t)
	s := solicitar(t, uc, 40000)

	out, err := uc.Aprobar(context.Background(), gerente, s.ID, nil)
	require.NoError(t, err)
	assert.Equal(t, entity.AprobacionAprobado, out.Estado)
	assert.Equal(t, "Aprobado", *out.ComentarioResolucion)
}

func TestRechazar_UnVotoBasta(t *testing.T) {
	uc, _, n := newAprobacionUC(t)
	ctx := context.Background()
	s := solicitar(t, uc, 44000)

	_, err := uc.Rechazar(ctx, vendedor, s.ID, nil)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	out, err := uc.Rechazar(ctx, jefe, s.ID, ptr("muy bajo"))
	require.NoError(t, err)
	assert.Equal(t, entity.AprobacionRechazado, out.Estado)
	assert.Equal(t, "muy bajo", *out.ComentarioResolucion)
	assert.Equal(t, ports.EventoSolicitudRechazada, n.tipos()[1])
}

func TestCancelar_SoloElVendedor(t *testing.T) {
	uc, _, _ := newAprobacionUC(t)
	ctx := context.Background()
	s := solicitar(t, uc, 44000)

	_, err := uc.Cancelar(ctx, jefe, s.ID)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	out, err := uc.Cancelar(ctx, vendedor, s.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.AprobacionCancelado, out.Estado)
	assert.Equal(t, "Cancelado por el vendedor", *out.ComentarioResolucion)

	_, err = uc.Cancelar(ctx, vendedor, s.ID)
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestPendientes_PorRol(t *testing.T) {
	uc, _, _ := newAprobacionUC(t)
	ctx := context.Background()
	solicitar(t, uc, 44000) // jefe + admin
	solicitar(t, uc, 40000) // admin

	list, err := uc.Pendientes(ctx, jefe, "p1")
	require.NoError(t, err)
	assert.Len(t, list, 1)

	list, err = uc.Pendientes(ctx, gerente, "p1")
	require.NoError(t, err)
	assert.Len(t, list, 2)

	list, err = uc.Pendientes(ctx, finanzas, "p1")
	require.NoError(t, err)
	assert.Empty(t, list)

	mias, err := uc.MisSolicitudes(ctx, vendedor, "p1")
	require.NoError(t, err)
	assert.Len(t, mias, 2)
}

// ── Configuración y métricas ─────────────────────────────────────────────────

func TestConfig_PorDefectoYGuardada(t *testing.T) {
	uc, _, n := newAprobacionUC(t)
	ctx := context.Background()

	c, err := uc.GetConfig(ctx, "p1")
	require.NoError(t, err)
	assert.True(t, c.PorDefecto)
	assert.Len(t, c.Rangos, 4)
	assert.True(t, c.NotificarWhatsapp)

	_, err = uc.SaveConfig(ctx, gerente, "p1", dto.ConfigAprobacionRequest{
		Rangos: []entity.RangoDescuento{{Min: decimal.NewFromInt(10), Max: decimal.NewFromInt(5)}},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	c, err = uc.SaveConfig(ctx, gerente, "p1", dto.ConfigAprobacionRequest{
		Rangos: []entity.RangoDescuento{
			{Min: decimal.Zero, Max: decimal.NewFromInt(2)},
			{Min: decimal.NewFromInt(2), Max: decimal.NewFromInt(100), Aprobadores: []string{entity.RolGerencia}},
		},
	})
	require.NoError(t, err)
	assert.False(t, c.PorDefecto)
	assert.False(t, c.NotificarWhatsapp)
	assert.NotNil(t, c.Rangos[0].Aprobadores)

	// 4 % ya no es libre y sin aviso por WhatsApp.
	out, err := uc.Solicitar(ctx, vendedor, dto.SolicitarDescuentoRequest{LocalID: "loc1", PrecioNegociado: decimal.NewFromInt(48000)})
	require.NoError(t, err)
	assert.True(t, out.RequiereAprobacion)
	assert.Equal(t, []string{entity.RolGerencia}, out.Solicitud.AprobadoresRequeridos)
	assert.Empty(t, n.eventos)
}

func TestStats_Aprobaciones(t *testing.T) {
	uc, _, _ := newAprobacionUC(t)
	ctx := context.Background()
	s := solicitar(t, uc, 44000)
	solicitar(t, uc, 40000)
	_, err := uc.Rechazar(ctx, jefe, s.ID, nil)
	require.NoError(t, err)

	st, err := uc.Stats(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, 2, st.Total)
	assert.Equal(t, 1, st.Pendientes)
	assert.Equal(t, 1, st.Rechazadas)
	assert.True(t, decimal.NewFromInt(16).Equal(st.DescuentoPromedio))

	_, err = uc.Stats(ctx, "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
