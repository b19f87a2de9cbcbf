package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/ecoplaza/ecoplaza-api/internal/domain"
	"github.com/ecoplaza/ecoplaza-api/internal/domain/entity"
	"github.com/ecoplaza/ecoplaza-api/internal/domain/repository"
)

var _ repository.ComisionRepository = (*ComisionRepo)(nil)

// ComisionRepo implementación del puerto ComisionRepository sobre PostgreSQL.
type ComisionRepo struct {
	q Querier
}

// NewComisionRepository construye el adaptador.
func NewComisionRepository(q Querier) *ComisionRepo {
	return &ComisionRepo{q: q}
}

const comisionSelect = `
	SELECT c.id, c.control_pago_id, c.local_id, c.usuario_id, c.rol_usuario, c.fase, c.porcentaje_comision,
	       c.monto_venta, c.monto_comision, c.estado, c.fecha_procesado, c.fecha_disponible,
	       c.fecha_inicial_completa, c.fecha_pago_comision, c.pagado_por, c.created_at,
	       u.nombre, lo.codigo, p.nombre
	FROM comisiones c
	LEFT JOIN usuarios u ON u.id = c.usuario_id
	LEFT JOIN locales lo ON lo.id = c.local_id
	LEFT JOIN proyectos p ON p.id = lo.proyecto_id`

func comisionDest(c *entity.Comision) []any {
	return []any{&c.ID, &c.ControlPagoID, &c.LocalID, &c.UsuarioID, &c.RolUsuario, &c.Fase, &c.PorcentajeComision,
		&c.MontoVenta, &c.MontoComision, &c.Estado, &c.FechaProcesado, &c.FechaDisponible,
		&c.FechaInicialCompleta, &c.FechaPagoComision, &c.PagadoPor, &c.CreatedAt,
		&c.UsuarioNombre, &c.LocalCodigo, &c.ProyectoNombre}
}

// CreateBatch inserta las comisiones de una venta.
func (r *ComisionRepo) CreateBatch(ctx context.Context, cs []*entity.Comision) error {
	if len(cs) == 0 {
		return nil
	}
	b := &pgx.Batch{}
	for _, c := range cs {
		b.Queue(`
			INSERT INTO comisiones (id, control_pago_id, local_id, usuario_id, rol_usuario, fase, porcentaje_comision,
			                        monto_venta, monto_comision, estado, fecha_procesado, fecha_disponible,
			                        fecha_inicial_completa, created_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`,
			c.ID, c.ControlPagoID, c.LocalID, c.UsuarioID, c.RolUsuario, c.Fase, c.PorcentajeComision,
			c.MontoVenta, c.MontoComision, c.Estado, c.FechaProcesado, c.FechaDisponible,
			c.FechaInicialCompleta, c.CreatedAt)
	}
	if err := r.q.SendBatch(ctx, b).Close(); err != nil {
		return fmt.Errorf("insert comisiones: %w", err)
	}
	return nil
}

// GetByID obtiene una comisión.
func (r *ComisionRepo) GetByID(ctx context.Context, id string) (*entity.Comision, error) {
	var c entity.Comision
	if err := r.q.QueryRow(ctx, comisionSelect+` WHERE c.id = $1`, id).Scan(comisionDest(&c)...); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get comision: %w", err)
	}
	return &c, nil
}

// List comisiones más recientes primero.
func (r *ComisionRepo) List(ctx context.Context, f entity.ComisionFilter) ([]*entity.Comision, error) {
	var w filtros
	if f.Estado != "" {
		w.add("c.estado = ?", f.Estado)
	}
	if f.UsuarioID != "" {
		w.add("c.usuario_id = ?", f.UsuarioID)
	}
	rows, err := r.q.Query(ctx, comisionSelect+w.where()+` ORDER BY c.fecha_procesado DESC, c.fase DESC`, w.args...)
	if err != nil {
		return nil, fmt.Errorf("list comisiones: %w", err)
	}
	defer rows.Close()
	var list []*entity.Comision
	for rows.Next() {
		var c entity.Comision
		if err := rows.Scan(comisionDest(&c)...); err != nil {
			return nil, fmt.Errorf("scan comision: %w", err)
		}
		list = append(list, &c)
	}
	return list, rows.Err()
}

// Stats montos y conteos por estado.
func (r *ComisionRepo) Stats(ctx context.Context, usuarioID string) (*entity.ComisionStats, error) {
	var w filtros
	if usuarioID != "" {
		w.add("usuario_id = ?", usuarioID)
	}
	query := `
		SELECT COALESCE(SUM(monto_comision), 0),
		       COALESCE(SUM(monto_comision) FILTER (WHERE estado = 'disponible'), 0),
		       COALESCE(SUM(monto_comision) FILTER (WHERE estado = 'pagada'), 0),
		       COALESCE(SUM(monto_comision) FILTER (WHERE estado = 'pendiente_inicial'), 0),
		       COUNT(*),
		       COUNT(*) FILTER (WHERE estado = 'disponible'),
		       COUNT(*) FILTER (WHERE estado = 'pagada'),
		       COUNT(*) FILTER (WHERE estado = 'pendiente_inicial')
		FROM comisiones` + w.where()
	var s entity.ComisionStats
	err := r.q.QueryRow(ctx, query, w.args...).Scan(&s.TotalGenerado, &s.Disponible, &s.Pagado, &s.PendienteInicial,
		&s.CountTotal, &s.CountDisponible, &s.CountPagado, &s.CountPendiente)
	if err != nil {
		return nil, fmt.Errorf("comisiones stats: %w", err)
	}
	return &s, nil
}

// Update persiste porcentaje, monto, estado y datos de pago.
func (r *ComisionRepo) Update(ctx context.Context, c *entity.Comision) error {
	query := `
		UPDATE comisiones SET porcentaje_comision = $2, monto_comision = $3, estado = $4,
		       fecha_disponible = $5, fecha_inicial_completa = $6, fecha_pago_comision = $7, pagado_por = $8
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query, c.ID, c.PorcentajeComision, c.MontoComision, c.Estado,
		c.FechaDisponible, c.FechaInicialCompleta, c.FechaPagoComision, c.PagadoPor)
	if err != nil {
		return fmt.Errorf("update comision: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Liberar pasa a disponible las comisiones pendientes del control.
func (r *ComisionRepo) Liberar(ctx context.Context, controlID string, ahora time.Time) (int64, error) {
	tag, err := r.q.Exec(ctx, `
		UPDATE comisiones SET estado = 'disponible', fecha_disponible = $2, fecha_inicial_completa = $2
		WHERE control_pago_id = $1 AND estado = 'pendiente_inicial'`, controlID, ahora)
	if err != nil {
		return 0, fmt.Errorf("liberar comisiones: %w", err)
	}
	return tag.RowsAffected(), nil
}

// Trazabilidad comisiones del local con los participantes de la venta.
func (r *ComisionRepo) Trazabilidad(ctx context.Context, localID string) ([]*entity.ComisionTrazabilidad, error) {
	query := `
		SELECT c.id, c.control_pago_id, c.local_id, c.usuario_id, c.rol_usuario, c.fase, c.porcentaje_comision,
		       c.monto_venta, c.monto_comision, c.estado, c.fecha_procesado, c.fecha_disponible,
		       c.fecha_inicial_completa, c.fecha_pago_comision, c.pagado_por, c.created_at,
		       u.nombre, lo.codigo, p.nombre,
		       vl.nombre, un.nombre, ur.nombre, up.nombre
		FROM comisiones c
		JOIN control_pagos cp ON cp.id = c.control_pago_id
		LEFT JOIN usuarios u ON u.id = c.usuario_id
		LEFT JOIN locales lo ON lo.id = c.local_id
		LEFT JOIN proyectos p ON p.id = lo.proyecto_id
		LEFT JOIN leads le ON le.id = cp.lead_id
		LEFT JOIN vendedores vl ON vl.id = le.vendedor_asignado_id
		LEFT JOIN usuarios un ON un.id = lo.usuario_paso_naranja_id
		LEFT JOIN usuarios ur ON ur.id = lo.usuario_paso_rojo_id
		LEFT JOIN usuarios up ON up.id = cp.procesado_por
		WHERE c.local_id = $1
		ORDER BY CASE c.fase WHEN 'vendedor' THEN 0 ELSE 1 END, c.created_at`
	rows, err := r.q.Query(ctx, query, localID)
	if err != nil {
		return nil, fmt.Errorf("trazabilidad comisiones: %w", err)
	}
	defer rows.Close()
	var list []*entity.ComisionTrazabilidad
	for rows.Next() {
		var t entity.ComisionTrazabilidad
		dest := append(comisionDest(&t.Comision),
			&t.VendedorLeadNombre, &t.UsuarioNaranjaNombre, &t.UsuarioRojoNombre, &t.UsuarioProcesadoNombre)
		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("scan trazabilidad: %w", err)
		}
		list = append(list, &t)
	}
	return list, rows.Err()
}
