package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/ecoplaza/ecoplaza-api/internal/domain/entity"
	"github.com/ecoplaza/ecoplaza-api/internal/domain/repository"
)

var _ repository.ExecutiveRepository = (*ExecutiveRepo)(nil)

// ExecutiveRepo consultas de solo lectura del dashboard ejecutivo.
// Las agregaciones (tasas, redondeos, orden) las hace el use case.
type ExecutiveRepo struct {
	q Querier
}

// NewExecutiveRepository construye el adaptador.
func NewExecutiveRepository(q Querier) *ExecutiveRepo {
	return &ExecutiveRepo{q: q}
}

// porProyecto filtro opcional por proyecto sobre la columna indicada.
func porProyecto(col, proyectoID string) *filtros {
	w := &filtros{}
	if proyectoID != "" {
		w.add(col+" = ?", proyectoID)
	}
	return w
}

// collect recorre rows aplicando scan a cada fila.
func collect[T any](rows pgx.Rows, err error, op string, scan func(pgx.Rows, *T) error) ([]T, error) {
	if err != nil {
		return nil, fmt.Errorf("executive.%s: %w", op, err)
	}
	defer rows.Close()
	var out []T
	for rows.Next() {
		var t T
		if err := scan(rows, &t); err != nil {
			return nil, fmt.Errorf("executive.%s scan: %w", op, err)
		}
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("executive.%s rows: %w", op, err)
	}
	return out, nil
}

// ContarLeads total, completos y visitaron.
func (r *ExecutiveRepo) ContarLeads(ctx context.Context, proyectoID string) (repository.LeadsConteo, error) {
	w := porProyecto("proyecto_id", proyectoID)
	query := `
		SELECT COUNT(*),
		       COUNT(*) FILTER (WHERE estado = '` + entity.LeadCompleto + `'),
		       COUNT(*) FILTER (WHERE asistio)
		FROM leads` + w.where()
	var c repository.LeadsConteo
	if err := r.q.QueryRow(ctx, query, w.args...).Scan(&c.Total, &c.Completos, &c.Visitaron); err != nil {
		return c, fmt.Errorf("executive.ContarLeads: %w", err)
	}
	return c, nil
}

// LocalesValor estado y montos de cada local.
func (r *ExecutiveRepo) LocalesValor(ctx context.Context, proyectoID string) ([]repository.LocalValor, error) {
	w := porProyecto("proyecto_id", proyectoID)
	rows, err := r.q.Query(ctx, `SELECT estado, monto_venta, precio_base FROM locales`+w.where(), w.args...)
	return collect(rows, err, "LocalesValor", func(rows pgx.Rows, v *repository.LocalValor) error {
		return rows.Scan(&v.Estado, &v.MontoVenta, &v.PrecioBase)
	})
}

// VendedoresActivos usuarios activos con rol de venta.
func (r *ExecutiveRepo) VendedoresActivos(ctx context.Context) ([]repository.VendedorActivo, error) {
	rows, err := r.q.Query(ctx, `
		SELECT id, nombre, rol, vendedor_id FROM usuarios
		WHERE activo AND rol IN ($1, $2, $3)
		ORDER BY nombre`, entity.RolVendedor, entity.RolVendedorCaseta, entity.RolJefeVentas)
	return collect(rows, err, "VendedoresActivos", func(rows pgx.Rows, v *repository.VendedorActivo) error {
		return rows.Scan(&v.UsuarioID, &v.Nombre, &v.Rol, &v.VendedorID)
	})
}

// LeadsPorVendedor asignados y visitaron por vendedor.
func (r *ExecutiveRepo) LeadsPorVendedor(ctx context.Context, proyectoID string) ([]repository.ConteoVendedor, error) {
	w := porProyecto("proyecto_id", proyectoID)
	query := `
		SELECT vendedor_asignado_id, COUNT(*), COUNT(*) FILTER (WHERE asistio)
		FROM leads` + w.and("vendedor_asignado_id IS NOT NULL") + `
		GROUP BY vendedor_asignado_id`
	rows, err := r.q.Query(ctx, query, w.args...)
	return collect(rows, err, "LeadsPorVendedor", func(rows pgx.Rows, v *repository.ConteoVendedor) error {
		return rows.Scan(&v.VendedorID, &v.Asignados, &v.Visitaron)
	})
}

// VentasPorUsuario locales en rojo agrupados por quien cerró la venta.
func (r *ExecutiveRepo) VentasPorUsuario(ctx context.Context, proyectoID string) ([]repository.VentasUsuario, error) {
	w := porProyecto("proyecto_id", proyectoID)
	query := `
		SELECT vendedor_cerro_venta_id, COUNT(*), COALESCE(SUM(monto_venta), 0)
		FROM locales` + w.and("estado = '"+entity.LocalRojo+"'", "vendedor_cerro_venta_id IS NOT NULL") + `
		GROUP BY vendedor_cerro_venta_id`
	rows, err := r.q.Query(ctx, query, w.args...)
	return collect(rows, err, "VentasPorUsuario", func(rows pgx.Rows, v *repository.VentasUsuario) error {
		return rows.Scan(&v.UsuarioID, &v.Ventas, &v.Monto)
	})
}

// ComisionesDisponibles suma de comisiones disponibles por usuario.
func (r *ExecutiveRepo) ComisionesDisponibles(ctx context.Context) ([]repository.MontoUsuario, error) {
	rows, err := r.q.Query(ctx, `
		SELECT usuario_id, COALESCE(SUM(monto_comision), 0) FROM comisiones
		WHERE estado = $1 GROUP BY usuario_id`, entity.ComisionDisponible)
	return collect(rows, err, "ComisionesDisponibles", func(rows pgx.Rows, v *repository.MontoUsuario) error {
		return rows.Scan(&v.UsuarioID, &v.Monto)
	})
}

// LeadsPorCanal leads por utm crudo; compraron = vinculado a un local en rojo.
func (r *ExecutiveRepo) LeadsPorCanal(ctx context.Context, proyectoID string) ([]repository.CanalConteo, error) {
	w := porProyecto("l.proyecto_id", proyectoID)
	query := `
		SELECT NULLIF(TRIM(l.utm), ''), COUNT(*),
		       COUNT(*) FILTER (WHERE l.asistio),
		       COUNT(*) FILTER (WHERE EXISTS (
		           SELECT 1 FROM locales_leads ll JOIN locales lo ON lo.id = ll.local_id
		           WHERE ll.lead_id = l.id AND lo.estado = '` + entity.LocalRojo + `'))
		FROM leads l` + w.where() + `
		GROUP BY 1`
	rows, err := r.q.Query(ctx, query, w.args...)
	return collect(rows, err, "LeadsPorCanal", func(rows pgx.Rows, v *repository.CanalConteo) error {
		return rows.Scan(&v.UTM, &v.Leads, &v.Visitaron, &v.Compraron)
	})
}

// PagosPendientes pagos no completados de controles activos.
func (r *ExecutiveRepo) PagosPendientes(ctx context.Context, proyectoID string) ([]repository.PagoPendiente, error) {
	w := porProyecto("c.proyecto_id", proyectoID)
	query := `
		SELECT p.control_pago_id, p.monto_esperado, p.monto_abonado, p.fecha_esperada, p.estado
		FROM pagos_local p
		JOIN control_pagos c ON c.id = p.control_pago_id` +
		w.and("c.estado = '"+entity.ControlActivo+"'", "p.estado <> '"+entity.PagoCompletado+"'")
	rows, err := r.q.Query(ctx, query, w.args...)
	return collect(rows, err, "PagosPendientes", func(rows pgx.Rows, v *repository.PagoPendiente) error {
		return rows.Scan(&v.ControlPagoID, &v.MontoEsperado, &v.MontoAbonado, &v.FechaEsperada, &v.Estado)
	})
}

// ControlesActivos controles activos con su inicial pendiente.
func (r *ExecutiveRepo) ControlesActivos(ctx context.Context, proyectoID string) ([]repository.ControlSaldo, error) {
	w := porProyecto("proyecto_id", proyectoID)
	query := `SELECT id, inicial_restante FROM control_pagos` + w.and("estado = '"+entity.ControlActivo+"'")
	rows, err := r.q.Query(ctx, query, w.args...)
	return collect(rows, err, "ControlesActivos", func(rows pgx.Rows, v *repository.ControlSaldo) error {
		return rows.Scan(&v.ID, &v.InicialRestante)
	})
}

// MetricasProyectos leads, locales y revenue de cada proyecto activo.
func (r *ExecutiveRepo) MetricasProyectos(ctx context.Context) ([]repository.ProyectoMetricas, error) {
	query := `
		SELECT p.id, p.nombre,
		       (SELECT COUNT(*) FROM leads l WHERE l.proyecto_id = p.id),
		       (SELECT COUNT(*) FROM locales lo WHERE lo.proyecto_id = p.id),
		       (SELECT COUNT(*) FROM locales lo WHERE lo.proyecto_id = p.id AND lo.estado = $1),
		       (SELECT COALESCE(SUM(lo.monto_venta), 0) FROM locales lo WHERE lo.proyecto_id = p.id AND lo.estado = $1)
		FROM proyectos p
		WHERE p.activo`
	rows, err := r.q.Query(ctx, query, entity.LocalRojo)
	return collect(rows, err, "MetricasProyectos", func(rows pgx.Rows, v *repository.ProyectoMetricas) error {
		return rows.Scan(&v.ProyectoID, &v.Nombre, &v.Leads, &v.LocalesTotal, &v.LocalesVendidos, &v.Revenue)
	})
}
