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

var _ repository.LocalRepository = (*LocalRepo)(nil)

// LocalRepo implementación del puerto LocalRepository sobre PostgreSQL.
type LocalRepo struct {
	q Querier
}

// NewLocalRepository construye el adaptador de persistencia para locales.
func NewLocalRepository(q Querier) *LocalRepo {
	return &LocalRepo{q: q}
}

const localSelect = `
	SELECT lo.id, lo.codigo, lo.proyecto_id, lo.metraje, lo.precio_base, lo.estado, lo.bloqueado,
	       lo.monto_venta, lo.lead_id, lo.vendedor_actual_id, lo.vendedor_cerro_venta_id,
	       lo.fecha_cierre_venta, lo.usuario_paso_naranja_id, lo.usuario_paso_rojo_id,
	       lo.en_control_pagos, lo.created_at, lo.updated_at, p.nombre
	FROM locales lo
	LEFT JOIN proyectos p ON p.id = lo.proyecto_id`

func scanLocal(row pgx.Row) (*entity.Local, error) {
	var l entity.Local
	err := row.Scan(&l.ID, &l.Codigo, &l.ProyectoID, &l.Metraje, &l.PrecioBase, &l.Estado, &l.Bloqueado,
		&l.MontoVenta, &l.LeadID, &l.VendedorActualID, &l.VendedorCerroVentaID,
		&l.FechaCierreVenta, &l.UsuarioPasoNaranjaID, &l.UsuarioPasoRojoID,
		&l.EnControlPagos, &l.CreatedAt, &l.UpdatedAt, &l.ProyectoNombre)
	if err != nil {
		return nil, err
	}
	return &l, nil
}

// Create persiste un local. Código repetido en el proyecto ⇒ ErrDuplicate.
func (r *LocalRepo) Create(ctx context.Context, l *entity.Local) error {
	query := `
		INSERT INTO locales (id, codigo, proyecto_id, metraje, precio_base, estado, bloqueado, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(ctx, query,
		l.ID, l.Codigo, l.ProyectoID, l.Metraje, l.PrecioBase, l.Estado, l.Bloqueado, l.CreatedAt, l.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert local: %w", err)
	}
	return nil
}

// GetByID obtiene un local.
func (r *LocalRepo) GetByID(ctx context.Context, id string) (*entity.Local, error) {
	return r.getOne(ctx, localSelect+` WHERE lo.id = $1`, id)
}

// GetForUpdate obtiene el local bloqueando su fila hasta el fin de la transacción.
func (r *LocalRepo) GetForUpdate(ctx context.Context, id string) (*entity.Local, error) {
	return r.getOne(ctx, localSelect+` WHERE lo.id = $1 FOR UPDATE OF lo`, id)
}

// GetByCodigo obtiene un local por proyecto y código.
func (r *LocalRepo) GetByCodigo(ctx context.Context, proyectoID, codigo string) (*entity.Local, error) {
	return r.getOne(ctx, localSelect+` WHERE lo.proyecto_id = $1 AND lo.codigo = $2`, proyectoID, codigo)
}

func (r *LocalRepo) getOne(ctx context.Context, query string, args ...any) (*entity.Local, error) {
	l, err := scanLocal(r.q.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get local: %w", err)
	}
	return l, nil
}

// List página de locales ordenados por código y total sin paginar.
func (r *LocalRepo) List(ctx context.Context, f entity.LocalFilter) ([]*entity.Local, int, error) {
	var w filtros
	if f.ProyectoID != "" {
		w.add("lo.proyecto_id = ?", f.ProyectoID)
	}
	if f.Estado != "" {
		w.add("lo.estado = ?", f.Estado)
	}
	if f.MetrajeMin != nil {
		w.add("lo.metraje >= ?", *f.MetrajeMin)
	}
	if f.MetrajeMax != nil {
		w.add("lo.metraje <= ?", *f.MetrajeMax)
	}

	var total int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM locales lo`+w.where(), w.args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count locales: %w", err)
	}

	offset := (f.Page - 1) * f.PageSize
	query := localSelect + w.where() + ` ORDER BY lo.codigo LIMIT ` + w.next(f.PageSize) + ` OFFSET ` + w.next(offset)
	rows, err := r.q.Query(ctx, query, w.args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list locales: %w", err)
	}
	defer rows.Close()
	var list []*entity.Local
	for rows.Next() {
		l, err := scanLocal(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan local: %w", err)
		}
		list = append(list, l)
	}
	return list, total, rows.Err()
}

// Stats conteo por color del semáforo.
func (r *LocalRepo) Stats(ctx context.Context, proyectoID string) (*entity.LocalStats, error) {
	var w filtros
	if proyectoID != "" {
		w.add("proyecto_id = ?", proyectoID)
	}
	query := `
		SELECT COUNT(*) FILTER (WHERE estado = 'verde'),
		       COUNT(*) FILTER (WHERE estado = 'amarillo'),
		       COUNT(*) FILTER (WHERE estado = 'naranja'),
		       COUNT(*) FILTER (WHERE estado = 'rojo'),
		       COUNT(*)
		FROM locales` + w.where()
	var s entity.LocalStats
	if err := r.q.QueryRow(ctx, query, w.args...).Scan(&s.Verde, &s.Amarillo, &s.Naranja, &s.Rojo, &s.Total); err != nil {
		return nil, fmt.Errorf("local stats: %w", err)
	}
	return &s, nil
}

// Update persiste el estado completo del semáforo.
func (r *LocalRepo) Update(ctx context.Context, l *entity.Local) error {
	query := `
		UPDATE locales SET
			estado = $2, bloqueado = $3, monto_venta = $4, lead_id = $5, vendedor_actual_id = $6,
			vendedor_cerro_venta_id = $7, fecha_cierre_venta = $8, usuario_paso_naranja_id = $9,
			usuario_paso_rojo_id = $10, en_control_pagos = $11, precio_base = $12, updated_at = $13
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query,
		l.ID, l.Estado, l.Bloqueado, l.MontoVenta, l.LeadID, l.VendedorActualID,
		l.VendedorCerroVentaID, l.FechaCierreVenta, l.UsuarioPasoNaranjaID,
		l.UsuarioPasoRojoID, l.EnControlPagos, l.PrecioBase, l.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update local: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina un local.
func (r *LocalRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM locales WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete local: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// VincularLead registra el par local-lead si no existía.
func (r *LocalRepo) VincularLead(ctx context.Context, localID, leadID string) error {
	_, err := r.q.Exec(ctx,
		`INSERT INTO locales_leads (local_id, lead_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`, localID, leadID)
	if err != nil {
		return fmt.Errorf("vincular lead: %w", err)
	}
	return nil
}

// AddHistorial registra un cambio del semáforo.
func (r *LocalRepo) AddHistorial(ctx context.Context, h *entity.LocalHistorial) error {
	query := `
		INSERT INTO locales_historial (id, local_id, usuario_id, estado_anterior, estado_nuevo, accion, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(ctx, query, h.ID, h.LocalID, h.UsuarioID, h.EstadoAnterior, h.EstadoNuevo, h.Accion, h.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert historial local: %w", err)
	}
	return nil
}

// ListHistorial historial del local, más reciente primero, con nombre del usuario.
func (r *LocalRepo) ListHistorial(ctx context.Context, localID string) ([]*entity.LocalHistorial, error) {
	query := `
		SELECT h.id, h.local_id, COALESCE(h.usuario_id::TEXT, ''), h.estado_anterior, h.estado_nuevo, h.accion,
		       h.created_at, u.nombre
		FROM locales_historial h
		LEFT JOIN usuarios u ON u.id = h.usuario_id
		WHERE h.local_id = $1
		ORDER BY h.created_at DESC`
	rows, err := r.q.Query(ctx, query, localID)
	if err != nil {
		return nil, fmt.Errorf("list historial local: %w", err)
	}
	defer rows.Close()
	var list []*entity.LocalHistorial
	for rows.Next() {
		var h entity.LocalHistorial
		if err := rows.Scan(&h.ID, &h.LocalID, &h.UsuarioID, &h.EstadoAnterior, &h.EstadoNuevo, &h.Accion,
			&h.CreatedAt, &h.UsuarioNombre); err != nil {
			return nil, fmt.Errorf("scan historial local: %w", err)
		}
		list = append(list, &h)
	}
	return list, rows.Err()
}
