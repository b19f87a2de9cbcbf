package analytics

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ecoplaza/ecoplaza-api/internal/domain/entity"
	"github.com/ecoplaza/ecoplaza-api/internal/domain/repository"
)

func dec(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func str(s string) *string { return &s }

type fakeExecRepo struct {
	leads      repository.LeadsConteo
	locales    []repository.LocalValor
	activos    []repository.VendedorActivo
	porVend    []repository.ConteoVendedor
	ventas     []repository.VentasUsuario
	comisiones []repository.MontoUsuario
	canales    []repository.CanalConteo
	pendientes []repository.PagoPendiente
	controles  []repository.ControlSaldo
	proyectos  []repository.ProyectoMetricas
	err        error
}

func (f *fakeExecRepo) ContarLeads(context.Context, string) (repository.LeadsConteo, error) {
	return f.leads, f.err
}
func (f *fakeExecRepo) LocalesValor(context.Context, string) ([]repository.LocalValor, error) {
	return f.locales, nil
}
func (f *fakeExecRepo) VendedoresActivos(context.Context) ([]repository.VendedorActivo, error) {
	return f.activos, nil
}
func (f *fakeExecRepo) LeadsPorVendedor(context.Context, string) ([]repository.ConteoVendedor, error) {
	return f.porVend, nil
}
func (f *fakeExecRepo) VentasPorUsuario(context.Context, string) ([]repository.VentasUsuario, error) {
	return f.ventas, nil
}
func (f *fakeExecRepo) ComisionesDisponibles(context.Context) ([]repository.MontoUsuario, error) {
	return f.comisiones, nil
}
func (f *fakeExecRepo) LeadsPorCanal(context.Context, string) ([]repository.CanalConteo, error) {
	return f.canales, nil
}
func (f *fakeExecRepo) PagosPendientes(context.Context, string) ([]repository.PagoPendiente, error) {
	return f.pendientes, nil
}
func (f *fakeExecRepo) ControlesActivos(context.Context, string) ([]repository.ControlSaldo, error) {
	return f.controles, nil
}
func (f *fakeExecRepo) MetricasProyectos(context.Context) ([]repository.ProyectoMetricas, error) {
	return f.proyectos, nil
}

// ────────────────────────────────────────────────────────────────────────────────

func TestSummary(t *testing.T) {
	repo := &fakeExecRepo{
		leads: repository.LeadsConteo{Total: 3, Completos: 2, Visitaron: 1},
		locales: []repository.LocalValor{
			{Estado: entity.LocalRojo, MontoVenta: dec("100000")},
			{Estado: entity.LocalRojo, MontoVenta: dec("50001")},
			{Estado: entity.LocalVerde, PrecioBase: dec("90000")},
		},
	}
	s, err := NewExecutiveUseCase(repo).Summary(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, 2, s.LocalesVendidos)
	assert.Equal(t, 3, s.TotalLocales)
	assert.True(t, decimal.RequireFromString("150001").Equal(s.RevenueTotal))
	assert.True(t, decimal.RequireFromString("75001").Equal(s.PromedioVenta))
	assert.Equal(t, 66.67, s.TasaConversion)
}

func TestSummary_ErrorDelRepo(t *testing.T) {
	repo := &fakeExecRepo{err: errors.New("db caída")}
	_, err := NewExecutiveUseCase(repo).Summary(context.Background(), "")
	assert.Error(t, err)
}

func TestBuildFunnel_SinDenominador(t *testing.T) {
	f := BuildFunnel(repository.LeadsConteo{Total: 10, Completos: 4}, 0)
	assert.Equal(t, 40.0, f.ConversionCompletos)
	assert.Equal(t, 0.0, f.ConversionVisitaron)
	assert.Equal(t, 0.0, f.ConversionVentas)
}

func TestBuildPipeline(t *testing.T) {
	p := BuildPipeline([]repository.LocalValor{
		{Estado: entity.LocalNaranja, MontoVenta: dec("80000"), PrecioBase: dec("90000")},
		{Estado: entity.LocalNaranja, PrecioBase: dec("70000")},
		{Estado: entity.LocalAmarillo},
	})
	require.Len(t, p, 4)
	assert.Equal(t, []string{"verde", "amarillo", "naranja", "rojo"},
		[]string{p[0].Estado, p[1].Estado, p[2].Estado, p[3].Estado})
	assert.Equal(t, 2, p[2].Cantidad)
	assert.True(t, decimal.RequireFromString("150000").Equal(p[2].ValorTotal))
	assert.Equal(t, 1, p[1].Cantidad)
	assert.True(t, p[1].ValorTotal.IsZero())
}

func TestBuildRanking(t *testing.T) {
	r := BuildRanking(
		[]repository.VendedorActivo{
			{UsuarioID: "u1", Nombre: "Ana", Rol: entity.RolVendedor, VendedorID: str("v1")},
			{UsuarioID: "u2", Nombre: "Luis", Rol: entity.RolJefeVentas},
			{UsuarioID: "u3", Nombre: "Fin", Rol: entity.RolFinanzas},
		},
		[]repository.ConteoVendedor{{VendedorID: "v1", Asignados: 4, Visitaron: 2}},
		[]repository.VentasUsuario{
			{UsuarioID: "u1", Ventas: 1, Monto: decimal.NewFromInt(100)},
			{UsuarioID: "u2", Ventas: 2, Monto: decimal.NewFromInt(300)},
		},
		[]repository.MontoUsuario{{UsuarioID: "u1", Monto: decimal.NewFromInt(5)}},
	)
	require.Len(t, r, 2)
	assert.Equal(t, "u2", r[0].UsuarioID)
	assert.Equal(t, 0.0, r[0].TasaConversion)
	assert.Equal(t, 25.0, r[1].TasaConversion)
	assert.True(t, decimal.NewFromInt(5).Equal(r[1].ComisionesPendientes))
}

func TestCanal(t *testing.T) {
	cases := map[string]*string{
		"Victoria (IA)": str("VICTORIA"),
		"Directo":       nil,
		"Facebook":      str("facebook"),
		"Instagram":     str("iNSTAGRAM"),
	}
	for want, utm := range cases {
		assert.Equal(t, want, Canal(utm))
	}
	assert.Equal(t, "Victoria (IA)", Canal(str("12345")))
	assert.Equal(t, "Directo", Canal(str("  ")))
}

func TestBuildCanales_AgrupaYOrdena(t *testing.T) {
	c := BuildCanales([]repository.CanalConteo{
		{UTM: str("facebook"), Leads: 2, Visitaron: 1},
		{UTM: str("victoria"), Leads: 3, Visitaron: 2, Compraron: 1},
		{UTM: str("999"), Leads: 1},
		{UTM: nil, Leads: 1},
	})
	require.Len(t, c, 3)
	assert.Equal(t, "Victoria (IA)", c[0].Canal)
	assert.Equal(t, 4, c[0].Leads)
	assert.Equal(t, 50.0, c[0].ConversionVisita)
	assert.Equal(t, 50.0, c[0].ConversionCompra)
}

func TestBuildFinanciero(t *testing.T) {
	ahora := time.Date(2026, 6, 15, 10, 0, 0, 0, time.UTC)
	f := BuildFinanciero(
		[]repository.PagoPendiente{
			{ControlPagoID: "c1", MontoEsperado: decimal.NewFromInt(1000), MontoAbonado: decimal.NewFromInt(400),
				FechaEsperada: time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC), Estado: entity.PagoParcial},
			{ControlPagoID: "c1", MontoEsperado: decimal.RequireFromString("500.6"),
				FechaEsperada: time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC), Estado: entity.PagoPendiente},
			{ControlPagoID: "c2", MontoEsperado: decimal.NewFromInt(800),
				FechaEsperada: time.Date(2026, 6, 30, 0, 0, 0, 0, time.UTC), Estado: entity.PagoPendiente},
			{ControlPagoID: "c2", MontoEsperado: decimal.NewFromInt(800),
				FechaEsperada: time.Date(2026, 7, 30, 0, 0, 0, 0, time.UTC), Estado: entity.PagoPendiente},
		},
		[]repository.ControlSaldo{
			{ID: "c1", InicialRestante: decimal.Zero},
			{ID: "c2", InicialRestante: decimal.RequireFromString("1200.4")},
			{ID: "c3", InicialRestante: decimal.Zero},
		},
		ahora,
	)
	assert.Equal(t, 2, f.Morosidad.PagosVencidos)
	assert.True(t, decimal.NewFromInt(1101).Equal(f.Morosidad.MontoVencido))
	assert.Equal(t, 1, f.Morosidad.ClientesMorosos)
	assert.Equal(t, 33.33, f.Morosidad.PorcentajeMorosidad)
	assert.Equal(t, 1, f.InicialPendiente.Cantidad)
	assert.True(t, decimal.NewFromInt(1200).Equal(f.InicialPendiente.Monto))
	assert.Equal(t, 1, f.ProyeccionMes.Pagos)
	assert.True(t, decimal.NewFromInt(800).Equal(f.ProyeccionMes.Monto))
}

func TestProyectos_FiltraYOrdena(t *testing.T) {
	repo := &fakeExecRepo{proyectos: []repository.ProyectoMetricas{
		{ProyectoID: "p1", Nombre: "Norte", LocalesTotal: 4, LocalesVendidos: 1, Revenue: decimal.NewFromInt(10)},
		{ProyectoID: "p2", Nombre: "Sur", LocalesTotal: 3, LocalesVendidos: 2, Revenue: decimal.NewFromInt(20)},
	}}
	uc := NewExecutiveUseCase(repo)

	all, err := uc.Proyectos(context.Background(), "")
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "p2", all[0].ProyectoID)
	assert.Equal(t, 66.67, all[0].OcupacionPorcentaje)

	repo.proyectos = []repository.ProyectoMetricas{
		{ProyectoID: "p1", LocalesTotal: 4, LocalesVendidos: 1},
		{ProyectoID: "p2"},
	}
	uno, err := uc.Proyectos(context.Background(), "p1")
	require.NoError(t, err)
	require.Len(t, uno, 1)
	assert.Equal(t, 25.0, uno[0].OcupacionPorcentaje)
}
