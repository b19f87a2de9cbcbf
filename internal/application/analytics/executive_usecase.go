// Package analytics contiene los casos de uso del dashboard ejecutivo:
// KPIs de ventas, embudo, pipeline por color, ranking de vendedores, canales,
// salud financiera de la cobranza y métricas por proyecto.
package analytics

import (
	"context"
	"math"
	"sort"
	"strings"
	"time"
	"unicode"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/ecoplaza/ecoplaza-api/internal/application/dto"
	"github.com/ecoplaza/ecoplaza-api/internal/domain/entity"
	"github.com/ecoplaza/ecoplaza-api/internal/domain/repository"
)

// ExecutiveUseCase agrega las consultas read-only del ExecutiveRepository.
//
// Cada endpoint lanza sus consultas en paralelo con errgroup y delega el cálculo
// en funciones puras (sin acceso a datos) para poder probarlas por separado.
// proyectoID vacío significa todos los proyectos.
type ExecutiveUseCase struct {
	repo repository.ExecutiveRepository
	now  func() time.Time
}

// NewExecutiveUseCase construye el caso de uso.
func NewExecutiveUseCase(repo repository.ExecutiveRepository) *ExecutiveUseCase {
	return &ExecutiveUseCase{repo: repo, now: time.Now}
}

// Summary KPIs generales.
func (uc *ExecutiveUseCase) Summary(ctx context.Context, proyectoID string) (*dto.ExecutiveSummary, error) {
	var (
		leads   repository.LeadsConteo
		locales []repository.LocalValor
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		leads, err = uc.repo.ContarLeads(gctx, proyectoID)
		return err
	})
	g.Go(func() (err error) {
		locales, err = uc.repo.LocalesValor(gctx, proyectoID)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	s := BuildSummary(leads, locales)
	return &s, nil
}

// Funnel embudo captación → venta.
func (uc *ExecutiveUseCase) Funnel(ctx context.Context, proyectoID string) (*dto.ExecutiveFunnel, error) {
	var (
		leads   repository.LeadsConteo
		locales []repository.LocalValor
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		leads, err = uc.repo.ContarLeads(gctx, proyectoID)
		return err
	})
	g.Go(func() (err error) {
		locales, err = uc.repo.LocalesValor(gctx, proyectoID)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	f := BuildFunnel(leads, contarVendidos(locales))
	return &f, nil
}

// Pipeline cantidad y valor por color del semáforo.
func (uc *ExecutiveUseCase) Pipeline(ctx context.Context, proyectoID string) ([]dto.PipelineEstado, error) {
	locales, err := uc.repo.LocalesValor(ctx, proyectoID)
	if err != nil {
		return nil, err
	}
	return BuildPipeline(locales), nil
}

// Vendedores ranking por monto vendido.
func (uc *ExecutiveUseCase) Vendedores(ctx context.Context, proyectoID string) ([]dto.VendedorRanking, error) {
	var (
		activos    []repository.VendedorActivo
		leads      []repository.ConteoVendedor
		ventas     []repository.VentasUsuario
		comisiones []repository.MontoUsuario
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		activos, err = uc.repo.VendedoresActivos(gctx)
		return err
	})
	g.Go(func() (err error) {
		leads, err = uc.repo.LeadsPorVendedor(gctx, proyectoID)
		return err
	})
	g.Go(func() (err error) {
		ventas, err = uc.repo.VentasPorUsuario(gctx, proyectoID)
		return err
	})
	g.Go(func() (err error) {
		comisiones, err = uc.repo.ComisionesDisponibles(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return BuildRanking(activos, leads, ventas, comisiones), nil
}

// Canales leads por canal de origen.
func (uc *ExecutiveUseCase) Canales(ctx context.Context, proyectoID string) ([]dto.CanalMetricas, error) {
	conteos, err := uc.repo.LeadsPorCanal(ctx, proyectoID)
	if err != nil {
		return nil, err
	}
	return BuildCanales(conteos), nil
}

// Financiero morosidad, inicial pendiente y proyección del mes.
func (uc *ExecutiveUseCase) Financiero(ctx context.Context, proyectoID string) (*dto.ExecutiveFinanciero, error) {
	var (
		pendientes []repository.PagoPendiente
		controles  []repository.ControlSaldo
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		pendientes, err = uc.repo.PagosPendientes(gctx, proyectoID)
		return err
	})
	g.Go(func() (err error) {
		controles, err = uc.repo.ControlesActivos(gctx, proyectoID)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	f := BuildFinanciero(pendientes, controles, uc.now())
	return &f, nil
}

// Proyectos métricas de los proyectos activos, ordenadas por revenue.
func (uc *ExecutiveUseCase) Proyectos(ctx context.Context, proyectoID string) ([]dto.ProyectoResumen, error) {
	metricas, err := uc.repo.MetricasProyectos(ctx)
	if err != nil {
		return nil, err
	}
	if proyectoID != "" {
		filtradas := metricas[:0]
		for _, m := range metricas {
			if m.ProyectoID == proyectoID {
				filtradas = append(filtradas, m)
			}
		}
		metricas = filtradas
	}
	return BuildProyectos(metricas), nil
}

// ── Cálculos puros ───────────────────────────────────────────────────────────

// porcentaje num/den*100 con 2 decimales; 0 si den es 0.
func porcentaje(num, den int) float64 {
	if den == 0 {
		return 0
	}
	return math.Round(float64(num)/float64(den)*10000) / 100
}

func contarVendidos(locales []repository.LocalValor) int {
	n := 0
	for _, l := range locales {
		if l.Estado == entity.LocalRojo {
			n++
		}
	}
	return n
}

// BuildSummary vendidos = locales en rojo; revenue = suma de monto_venta de los rojos.
func BuildSummary(leads repository.LeadsConteo, locales []repository.LocalValor) dto.ExecutiveSummary {
	s := dto.ExecutiveSummary{
		TotalLeads:     leads.Total,
		LeadsCompletos: leads.Completos,
		LeadsVisitaron: leads.Visitaron,
		TotalLocales:   len(locales),
		RevenueTotal:   decimal.Zero,
		PromedioVenta:  decimal.Zero,
	}
	for _, l := range locales {
		if l.Estado != entity.LocalRojo {
			continue
		}
		s.LocalesVendidos++
		if l.MontoVenta != nil {
			s.RevenueTotal = s.RevenueTotal.Add(*l.MontoVenta)
		}
	}
	s.TasaConversion = porcentaje(s.LocalesVendidos, s.TotalLeads)
	if s.LocalesVendidos > 0 {
		s.PromedioVenta = s.RevenueTotal.Div(decimal.NewFromInt(int64(s.LocalesVendidos))).Round(0)
	}
	return s
}

// BuildFunnel cada conversión es contra la etapa anterior.
func BuildFunnel(leads repository.LeadsConteo, ventas int) dto.ExecutiveFunnel {
	return dto.ExecutiveFunnel{
		LeadsCaptados:       leads.Total,
		LeadsCompletos:      leads.Completos,
		LeadsVisitaron:      leads.Visitaron,
		Ventas:              ventas,
		ConversionCompletos: porcentaje(leads.Completos, leads.Total),
		ConversionVisitaron: porcentaje(leads.Visitaron, leads.Completos),
		ConversionVentas:    porcentaje(ventas, leads.Visitaron),
	}
}

var ordenPipeline = []string{entity.LocalVerde, entity.LocalAmarillo, entity.LocalNaranja, entity.LocalRojo}

// BuildPipeline siempre devuelve los cuatro colores en orden. El valor de un local es
// monto_venta, si no precio_base, si no 0.
func BuildPipeline(locales []repository.LocalValor) []dto.PipelineEstado {
	idx := make(map[string]int, len(ordenPipeline))
	out := make([]dto.PipelineEstado, len(ordenPipeline))
	for i, e := range ordenPipeline {
		idx[e] = i
		out[i] = dto.PipelineEstado{Estado: e, ValorTotal: decimal.Zero}
	}
	for _, l := range locales {
		i, ok := idx[l.Estado]
		if !ok {
			continue
		}
		out[i].Cantidad++
		switch {
		case l.MontoVenta != nil:
			out[i].ValorTotal = out[i].ValorTotal.Add(*l.MontoVenta)
		case l.PrecioBase != nil:
			out[i].ValorTotal = out[i].ValorTotal.Add(*l.PrecioBase)
		}
	}
	return out
}

var rolesRanking = map[string]bool{
	entity.RolVendedor:       true,
	entity.RolVendedorCaseta: true,
	entity.RolJefeVentas:     true,
}

// BuildRanking cruza usuarios activos de venta con sus leads, ventas en rojo y
// comisiones disponibles. Orden por monto_total descendente.
func BuildRanking(
	activos []repository.VendedorActivo,
	leads []repository.ConteoVendedor,
	ventas []repository.VentasUsuario,
	comisiones []repository.MontoUsuario,
) []dto.VendedorRanking {
	porVendedor := make(map[string]repository.ConteoVendedor, len(leads))
	for _, l := range leads {
		porVendedor[l.VendedorID] = l
	}
	porUsuario := make(map[string]repository.VentasUsuario, len(ventas))
	for _, v := range ventas {
		porUsuario[v.UsuarioID] = v
	}
	pendientes := make(map[string]decimal.Decimal, len(comisiones))
	for _, c := range comisiones {
		pendientes[c.UsuarioID] = c.Monto
	}

	out := make([]dto.VendedorRanking, 0, len(activos))
	for _, a := range activos {
		if !rolesRanking[a.Rol] {
			continue
		}
		r := dto.VendedorRanking{
			UsuarioID:            a.UsuarioID,
			Nombre:               a.Nombre,
			Rol:                  a.Rol,
			MontoTotal:           decimal.Zero,
			ComisionesPendientes: decimal.Zero,
		}
		if a.VendedorID != nil {
			c := porVendedor[*a.VendedorID]
			r.LeadsAsignados, r.LeadsVisitaron = c.Asignados, c.Visitaron
		}
		if v, ok := porUsuario[a.UsuarioID]; ok {
			r.VentasCerradas, r.MontoTotal = v.Ventas, v.Monto
		}
		if m, ok := pendientes[a.UsuarioID]; ok {
			r.ComisionesPendientes = m
		}
		r.TasaConversion = porcentaje(r.VentasCerradas, r.LeadsAsignados)
		out = append(out, r)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].MontoTotal.GreaterThan(out[j].MontoTotal) })
	return out
}

// Canal etiqueta del utm: victoria o numérico es el bot de IA, vacío es directo,
// el resto capitalizado.
func Canal(utm *string) string {
	if utm == nil || strings.TrimSpace(*utm) == "" {
		return "Directo"
	}
	u := strings.TrimSpace(*utm)
	if strings.EqualFold(u, "victoria") || esNumerico(u) {
		return "Victoria (IA)"
	}
	r := []rune(strings.ToLower(u))
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}

func esNumerico(s string) bool {
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return s != ""
}

// BuildCanales agrupa por etiqueta de canal y ordena por leads descendente.
func BuildCanales(conteos []repository.CanalConteo) []dto.CanalMetricas {
	idx := make(map[string]int)
	var out []dto.CanalMetricas
	for _, c := range conteos {
		canal := Canal(c.UTM)
		i, ok := idx[canal]
		if !ok {
			i = len(out)
			idx[canal] = i
			out = append(out, dto.CanalMetricas{Canal: canal})
		}
		out[i].Leads += c.Leads
		out[i].Visitaron += c.Visitaron
		out[i].Compraron += c.Compraron
	}
	for i := range out {
		out[i].ConversionVisita = porcentaje(out[i].Visitaron, out[i].Leads)
		out[i].ConversionCompra = porcentaje(out[i].Compraron, out[i].Visitaron)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Leads > out[j].Leads })
	if out == nil {
		out = []dto.CanalMetricas{}
	}
	return out
}

// BuildFinanciero los montos se redondean a enteros.
//
//   - morosidad: pagos pendiente|parcial con fecha_esperada anterior a hoy.
//   - inicial_pendiente: controles activos con inicial_restante > 0.
//   - proyeccion_mes: pagos no completados que vencen entre hoy y fin de mes.
func BuildFinanciero(pendientes []repository.PagoPendiente, controles []repository.ControlSaldo, ahora time.Time) dto.ExecutiveFinanciero {
	hoy := time.Date(ahora.Year(), ahora.Month(), ahora.Day(), 0, 0, 0, 0, ahora.Location())
	finMes := time.Date(ahora.Year(), ahora.Month()+1, 1, 0, 0, 0, 0, ahora.Location()).Add(-time.Nanosecond)

	var out dto.ExecutiveFinanciero
	montoVencido, montoProyectado := decimal.Zero, decimal.Zero
	morosos := make(map[string]bool)
	for _, p := range pendientes {
		falta := decimal.Max(p.MontoEsperado.Sub(p.MontoAbonado), decimal.Zero)
		vencido := p.FechaEsperada.Before(hoy) &&
			(p.Estado == entity.PagoPendiente || p.Estado == entity.PagoParcial)
		if vencido {
			out.Morosidad.PagosVencidos++
			montoVencido = montoVencido.Add(falta)
			morosos[p.ControlPagoID] = true
		}
		if p.Estado != entity.PagoCompletado && !p.FechaEsperada.Before(hoy) && !p.FechaEsperada.After(finMes) {
			out.ProyeccionMes.Pagos++
			montoProyectado = montoProyectado.Add(falta)
		}
	}
	out.Morosidad.MontoVencido = montoVencido.Round(0)
	out.Morosidad.ClientesMorosos = len(morosos)
	out.Morosidad.PorcentajeMorosidad = porcentaje(len(morosos), len(controles))
	out.ProyeccionMes.Monto = montoProyectado.Round(0)

	inicial := decimal.Zero
	for _, c := range controles {
		if c.InicialRestante.IsPositive() {
			out.InicialPendiente.Cantidad++
			inicial = inicial.Add(c.InicialRestante)
		}
	}
	out.InicialPendiente.Monto = inicial.Round(0)
	return out
}

// BuildProyectos ocupación = vendidos/total; orden por revenue descendente.
func BuildProyectos(metricas []repository.ProyectoMetricas) []dto.ProyectoResumen {
	out := make([]dto.ProyectoResumen, 0, len(metricas))
	for _, m := range metricas {
		out = append(out, dto.ProyectoResumen{
			ProyectoID:          m.ProyectoID,
			Nombre:              m.Nombre,
			Leads:               m.Leads,
			LocalesTotal:        m.LocalesTotal,
			LocalesVendidos:     m.LocalesVendidos,
			OcupacionPorcentaje: porcentaje(m.LocalesVendidos, m.LocalesTotal),
			Revenue:             m.Revenue,
		})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Revenue.GreaterThan(out[j].Revenue) })
	return out
}
