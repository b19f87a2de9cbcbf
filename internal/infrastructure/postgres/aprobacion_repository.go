package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/ecoplaza/ecoplaza-api/internal/domain"
	"github.com/ecoplaza/ecoplaza-api/internal/domain/entity"
	"github.com/ecoplaza/ecoplaza-api/internal/domain/repository"
)

var _ repository.AprobacionRepository = (*AprobacionRepo)(nil)

// AprobacionRepo implementación del puerto AprobacionRepository sobre PostgreSQL.
// Rangos y decisiones se guardan como JSONB.
type AprobacionRepo struct {
	q Querier
}

// NewAprobacionRepository construye el adaptador.
func NewAprobacionRepository(q Querier) *AprobacionRepo {
	return &AprobacionRepo{q: q}
}

// GetConfig configuración del proyecto o nil.
func (r *AprobacionRepo) GetConfig(ctx context.Context, proyectoID string) (*entity.ConfigAprobacion, error) {
	var c entity.ConfigAprobacion
	err := r.q.QueryRow(ctx, `
		SELECT id, proyecto_id, rangos, notificar_whatsapp, bloquear_hasta_aprobacion, permitir_venta_provisional,
		       updated_by, updated_at
		FROM config_aprobaciones_descuento WHERE proyecto_id = $1`, proyectoID).
		Scan(&c.ID, &c.ProyectoID, &c.Rangos, &c.NotificarWhatsapp, &c.BloquearHastaAprobacion,
			&c.PermitirVentaProvisional, &c.UpdatedBy, &c.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get config aprobaciones: %w", err)
	}
	return &c, nil
}

// SaveConfig upsert por proyecto.
func (r *AprobacionRepo) SaveConfig(ctx context.Context, c *entity.ConfigAprobacion) error {
	err := r.q.QueryRow(ctx, `
		INSERT INTO config_aprobaciones_descuento (id, proyecto_id, rangos, notificar_whatsapp, bloquear_hasta_aprobacion,
		                                           permitir_venta_provisional, updated_by, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (proyecto_id) DO UPDATE SET
		       rangos = EXCLUDED.rangos, notificar_whatsapp = EXCLUDED.notificar_whatsapp,
		       bloquear_hasta_aprobacion = EXCLUDED.bloquear_hasta_aprobacion,
		       permitir_venta_provisional = EXCLUDED.permitir_venta_provisional,
		       updated_by = EXCLUDED.updated_by, updated_at = EXCLUDED.updated_at
		RETURNING id`,
		c.ID, c.ProyectoID, c.Rangos, c.NotificarWhatsapp, c.BloquearHastaAprobacion,
		c.PermitirVentaProvisional, c.UpdatedBy, c.UpdatedAt).Scan(&c.ID)
	if err != nil {
		return fmt.Errorf("save config aprobaciones: %w", err)
	}
	return nil
}

const solicitudSelect = `
	SELECT a.id, a.proyecto_id, a.local_id, a.vendedor_id, a.vendedor_nombre, a.precio_lista, a.precio_negociado,
	       a.descuento_porcentaje, a.descuento_monto, a.aprobadores_requeridos, a.aprobaciones, a.estado,
	       a.vendedor_comentario, a.fecha_solicitud, a.fecha_resolucion, a.resuelto_por, a.comentario_resolucion,
	       lo.codigo
	FROM aprobaciones_descuento a
	LEFT JOIN locales lo ON lo.id = a.local_id`

func solicitudDest(s *entity.SolicitudAprobacion) []any {
	return []any{&s.ID, &s.ProyectoID, &s.LocalID, &s.VendedorID, &s.VendedorNombre, &s.PrecioLista, &s.PrecioNegociado,
		&s.DescuentoPorcentaje, &s.DescuentoMonto, &s.AprobadoresRequeridos, &s.Aprobaciones, &s.Estado,
		&s.ComentarioVendedor, &s.FechaSolicitud, &s.FechaResolucion, &s.ResueltoPor, &s.ComentarioResolucion,
		&s.LocalCodigo}
}

// Create inserta una solicitud.
func (r *AprobacionRepo) Create(ctx context.Context, s *entity.SolicitudAprobacion) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO aprobaciones_descuento (id, proyecto_id, local_id, vendedor_id, vendedor_nombre, precio_lista,
		                                    precio_negociado, descuento_porcentaje, descuento_monto,
		                                    aprobadores_requeridos, aprobaciones, estado, vendedor_comentario,
		                                    fecha_solicitud)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`,
		s.ID, s.ProyectoID, s.LocalID, s.VendedorID, s.VendedorNombre, s.PrecioLista,
		s.PrecioNegociado, s.DescuentoPorcentaje, s.DescuentoMonto,
		s.AprobadoresRequeridos, s.Aprobaciones, s.Estado, s.ComentarioVendedor, s.FechaSolicitud)
	if err != nil {
		return fmt.Errorf("insert aprobacion: %w", err)
	}
	return nil
}

// GetByID obtiene una solicitud.
func (r *AprobacionRepo) GetByID(ctx context.Context, id string) (*entity.SolicitudAprobacion, error) {
	var s entity.SolicitudAprobacion
	if err := r.q.QueryRow(ctx, solicitudSelect+` WHERE a.id = $1`, id).Scan(solicitudDest(&s)...); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get aprobacion: %w", err)
	}
	return &s, nil
}

// List solicitudes más recientes primero.
func (r *AprobacionRepo) List(ctx context.Context, f entity.AprobacionFilter) ([]*entity.SolicitudAprobacion, error) {
	var w filtros
	if f.ProyectoID != "" {
		w.add("a.proyecto_id = ?", f.ProyectoID)
	}
	if f.Estado != "" {
		w.add("a.estado = ?", f.Estado)
	}
	if f.VendedorID != "" {
		w.add("a.vendedor_id = ?", f.VendedorID)
	}
	if f.Rol != "" {
		w.add("? = ANY(a.aprobadores_requeridos)", f.Rol)
	}
	if f.Desde != nil {
		w.add("a.fecha_solicitud >= ?", *f.Desde)
	}
	if f.Hasta != nil {
		w.add("a.fecha_solicitud <= ?", *f.Hasta)
	}
	rows, err := r.q.Query(ctx, solicitudSelect+w.where()+` ORDER BY a.fecha_solicitud DESC`, w.args...)
	if err != nil {
		return nil, fmt.Errorf("list aprobaciones: %w", err)
	}
	defer rows.Close()
	var list []*entity.SolicitudAprobacion
	for rows.Next() {
		var s entity.SolicitudAprobacion
		if err := rows.Scan(solicitudDest(&s)...); err != nil {
			return nil, fmt.Errorf("scan aprobacion: %w", err)
		}
		list = append(list, &s)
	}
	return list, rows.Err()
}

// Update persiste decisiones y resolución mientras la fila siga pendiente.
func (r *AprobacionRepo) Update(ctx context.Context, s *entity.SolicitudAprobacion) error {
	tag, err := r.q.Exec(ctx, `
		UPDATE aprobaciones_descuento SET aprobaciones = $2, estado = $3, fecha_resolucion = $4, resuelto_por = $5,
		       comentario_resolucion = $6, updated_at = NOW()
		WHERE id = $1 AND estado = 'pendiente'`,
		s.ID, s.Aprobaciones, s.Estado, s.FechaResolucion, s.ResueltoPor, s.ComentarioResolucion)
	if err != nil {
		return fmt.Errorf("update aprobacion: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: la solicitud ya fue procesada", domain.ErrConflict)
	}
	return nil
}

// Stats conteos, descuento promedio y horas promedio hasta la resolución.
func (r *AprobacionRepo) Stats(ctx context.Context, proyectoID string) (*entity.AprobacionStats, error) {
	var s entity.AprobacionStats
	err := r.q.QueryRow(ctx, `
		SELECT COUNT(*),
		       COUNT(*) FILTER (WHERE estado = 'pendiente'),
		       COUNT(*) FILTER (WHERE estado = 'aprobado'),
		       COUNT(*) FILTER (WHERE estado = 'rechazado'),
		       COUNT(*) FILTER (WHERE estado = 'cancelado'),
		       COALESCE(ROUND(AVG(descuento_porcentaje), 2), 0),
		       COALESCE(ROUND((AVG(EXTRACT(EPOCH FROM (fecha_resolucion - fecha_solicitud)))
		                FILTER (WHERE fecha_resolucion IS NOT NULL) / 3600)::numeric, 2), 0)
		FROM aprobaciones_descuento WHERE proyecto_id = $1`, proyectoID).
		Scan(&s.Total, &s.Pendientes, &s.Aprobadas, &s.Rechazadas, &s.Canceladas, &s.DescuentoPromedio, &s.TiempoResolucionHoras)
	if err != nil {
		return nil, fmt.Errorf("aprobaciones stats: %w", err)
	}
	return &s, nil
}
