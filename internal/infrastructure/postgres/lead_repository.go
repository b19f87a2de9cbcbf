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

var _ repository.LeadRepository = (*LeadRepo)(nil)

// LeadRepo implementación del puerto LeadRepository sobre PostgreSQL.
type LeadRepo struct {
	q Querier
}

// NewLeadRepository construye el adaptador de persistencia para leads.
func NewLeadRepository(q Querier) *LeadRepo {
	return &LeadRepo{q: q}
}

const leadSelect = `
	SELECT l.id, l.proyecto_id, l.telefono, l.nombre, l.email, l.rubro, l.horario_visita, l.estado,
	       l.utm, l.asistio, l.vendedor_asignado_id, l.fecha_captura, l.created_at, l.updated_at,
	       p.nombre, v.nombre
	FROM leads l
	LEFT JOIN proyectos p ON p.id = l.proyecto_id
	LEFT JOIN vendedores v ON v.id = l.vendedor_asignado_id`

func scanLead(row pgx.Row) (*entity.Lead, error) {
	var l entity.Lead
	err := row.Scan(&l.ID, &l.ProyectoID, &l.Telefono, &l.Nombre, &l.Email, &l.Rubro, &l.HorarioVisita,
		&l.Estado, &l.UTM, &l.Asistio, &l.VendedorAsignadoID, &l.FechaCaptura, &l.CreatedAt, &l.UpdatedAt,
		&l.ProyectoNombre, &l.VendedorNombre)
	if err != nil {
		return nil, err
	}
	return &l, nil
}

// Create persiste un lead. Teléfono repetido en el proyecto ⇒ ErrDuplicate.
func (r *LeadRepo) Create(ctx context.Context, l *entity.Lead) error {
	query := `
		INSERT INTO leads (id, proyecto_id, telefono, nombre, email, rubro, horario_visita, estado, utm,
		                   asistio, vendedor_asignado_id, fecha_captura, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`
	_, err := r.q.Exec(ctx, query,
		l.ID, l.ProyectoID, l.Telefono, l.Nombre, l.Email, l.Rubro, l.HorarioVisita, l.Estado, l.UTM,
		l.Asistio, l.VendedorAsignadoID, l.FechaCaptura, l.CreatedAt, l.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert lead: %w", err)
	}
	return nil
}

// GetByID obtiene un lead con nombres de proyecto y vendedor.
func (r *LeadRepo) GetByID(ctx context.Context, id string) (*entity.Lead, error) {
	return r.getOne(ctx, leadSelect+` WHERE l.id = $1`, id)
}

// FindByTelefono lead más reciente con ese teléfono en cualquier proyecto.
func (r *LeadRepo) FindByTelefono(ctx context.Context, telefono string) (*entity.Lead, error) {
	return r.getOne(ctx, leadSelect+` WHERE l.telefono = $1 ORDER BY l.fecha_captura DESC LIMIT 1`, telefono)
}

// FindByTelefonoProyecto lead del proyecto con ese teléfono.
func (r *LeadRepo) FindByTelefonoProyecto(ctx context.Context, telefono, proyectoID string) (*entity.Lead, error) {
	return r.getOne(ctx, leadSelect+` WHERE l.telefono = $1 AND l.proyecto_id = $2`, telefono, proyectoID)
}

func (r *LeadRepo) getOne(ctx context.Context, query string, args ...any) (*entity.Lead, error) {
	l, err := scanLead(r.q.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get lead: %w", err)
	}
	return l, nil
}

func leadWhere(f entity.LeadFilter) *filtros {
	w := &filtros{}
	if f.ProyectoID != "" {
		w.add("l.proyecto_id = ?", f.ProyectoID)
	}
	if f.Estado != "" {
		w.add("l.estado = ?", f.Estado)
	}
	if f.VendedorID != "" {
		w.add("l.vendedor_asignado_id = ?", f.VendedorID)
	}
	if f.Desde != nil {
		w.add("l.fecha_captura >= ?", *f.Desde)
	}
	if f.Hasta != nil {
		w.add("l.fecha_captura <= ?", *f.Hasta)
	}
	return w
}

// List página de leads, más recientes primero, y total sin paginar.
func (r *LeadRepo) List(ctx context.Context, f entity.LeadFilter) ([]*entity.Lead, int, error) {
	w := leadWhere(f)

	var total int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM leads l`+w.where(), w.args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count leads: %w", err)
	}

	query := leadSelect + w.where() + ` ORDER BY l.fecha_captura DESC LIMIT ` + w.next(f.Limit) + ` OFFSET ` + w.next(f.Offset)
	rows, err := r.q.Query(ctx, query, w.args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list leads: %w", err)
	}
	defer rows.Close()
	var list []*entity.Lead
	for rows.Next() {
		l, err := scanLead(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan lead: %w", err)
		}
		list = append(list, l)
	}
	return list, total, rows.Err()
}

// Stats conteos por estado con los mismos filtros del listado.
func (r *LeadRepo) Stats(ctx context.Context, f entity.LeadFilter) (*entity.LeadStats, error) {
	w := leadWhere(f)
	query := `
		SELECT COUNT(*),
		       COUNT(*) FILTER (WHERE l.estado = 'lead_completo'),
		       COUNT(*) FILTER (WHERE l.estado = 'lead_incompleto'),
		       COUNT(*) FILTER (WHERE l.estado = 'en_conversacion'),
		       COUNT(*) FILTER (WHERE l.estado = 'conversacion_abandonada')
		FROM leads l` + w.where()
	var s entity.LeadStats
	if err := r.q.QueryRow(ctx, query, w.args...).Scan(&s.Total, &s.Completos, &s.Incompletos, &s.Conversacion, &s.Abandonados); err != nil {
		return nil, fmt.Errorf("lead stats: %w", err)
	}
	return &s, nil
}

// AsignarVendedor asigna o libera (nil) el lead.
func (r *LeadRepo) AsignarVendedor(ctx context.Context, id string, vendedorID *string) error {
	tag, err := r.q.Exec(ctx, `UPDATE leads SET vendedor_asignado_id = $2, updated_at = NOW() WHERE id = $1`, id, vendedorID)
	if err != nil {
		return fmt.Errorf("asignar lead: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// MarcarAsistio registra la visita del lead.
func (r *LeadRepo) MarcarAsistio(ctx context.Context, id string) error {
	_, err := r.q.Exec(ctx, `UPDATE leads SET asistio = TRUE, updated_at = NOW() WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("marcar asistio: %w", err)
	}
	return nil
}
