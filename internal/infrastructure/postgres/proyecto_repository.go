package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/ecoplaza/ecoplaza-api/internal/domain/entity"
	"github.com/ecoplaza/ecoplaza-api/internal/domain/repository"
)

var _ repository.ProyectoRepository = (*ProyectoRepo)(nil)

// ProyectoRepo lectura de proyectos.
type ProyectoRepo struct {
	q Querier
}

// NewProyectoRepository construye el adaptador.
func NewProyectoRepository(q Querier) *ProyectoRepo {
	return &ProyectoRepo{q: q}
}

const proyectoCols = `id, nombre, slug, color, activo, created_at`

func scanProyecto(row pgx.Row) (*entity.Proyecto, error) {
	var p entity.Proyecto
	if err := row.Scan(&p.ID, &p.Nombre, &p.Slug, &p.Color, &p.Activo, &p.CreatedAt); err != nil {
		return nil, err
	}
	return &p, nil
}

// List proyectos ordenados por nombre.
func (r *ProyectoRepo) List(ctx context.Context, includeInactive bool) ([]*entity.Proyecto, error) {
	query := `SELECT ` + proyectoCols + ` FROM proyectos`
	if !includeInactive {
		query += ` WHERE activo = TRUE`
	}
	rows, err := r.q.Query(ctx, query+` ORDER BY nombre`)
	if err != nil {
		return nil, fmt.Errorf("list proyectos: %w", err)
	}
	defer rows.Close()
	var list []*entity.Proyecto
	for rows.Next() {
		p, err := scanProyecto(rows)
		if err != nil {
			return nil, fmt.Errorf("scan proyecto: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

// GetByID obtiene un proyecto.
func (r *ProyectoRepo) GetByID(ctx context.Context, id string) (*entity.Proyecto, error) {
	return r.getOne(ctx, `SELECT `+proyectoCols+` FROM proyectos WHERE id = $1`, id)
}

// GetBySlug obtiene un proyecto por slug.
func (r *ProyectoRepo) GetBySlug(ctx context.Context, slug string) (*entity.Proyecto, error) {
	return r.getOne(ctx, `SELECT `+proyectoCols+` FROM proyectos WHERE slug = $1`, slug)
}

func (r *ProyectoRepo) getOne(ctx context.Context, query, arg string) (*entity.Proyecto, error) {
	p, err := scanProyecto(r.q.QueryRow(ctx, query, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get proyecto: %w", err)
	}
	return p, nil
}
