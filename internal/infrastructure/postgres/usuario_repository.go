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

var _ repository.UsuarioRepository = (*UsuarioRepo)(nil)

// UsuarioRepo implementación del puerto UsuarioRepository sobre PostgreSQL.
type UsuarioRepo struct {
	q Querier
}

// NewUsuarioRepository construye el adaptador de persistencia para usuarios.
func NewUsuarioRepository(q Querier) *UsuarioRepo {
	return &UsuarioRepo{q: q}
}

const usuarioCols = `id, nombre, email, password_hash, rol, activo, vendedor_id, telefono, created_at, updated_at`

func scanUsuario(row pgx.Row) (*entity.Usuario, error) {
	var u entity.Usuario
	err := row.Scan(&u.ID, &u.Nombre, &u.Email, &u.PasswordHash, &u.Rol, &u.Activo,
		&u.VendedorID, &u.Telefono, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// Create persiste un nuevo usuario.
func (r *UsuarioRepo) Create(ctx context.Context, u *entity.Usuario) error {
	query := `
		INSERT INTO usuarios (id, nombre, email, password_hash, rol, activo, vendedor_id, telefono, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(ctx, query,
		u.ID, u.Nombre, u.Email, u.PasswordHash, u.Rol, u.Activo, u.VendedorID, u.Telefono,
		u.CreatedAt, u.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrEmailAlreadyExists
		}
		return fmt.Errorf("insert usuario: %w", err)
	}
	return nil
}

// GetByID obtiene un usuario por ID.
func (r *UsuarioRepo) GetByID(ctx context.Context, id string) (*entity.Usuario, error) {
	u, err := scanUsuario(r.q.QueryRow(ctx, `SELECT `+usuarioCols+` FROM usuarios WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get usuario by id: %w", err)
	}
	return u, nil
}

// GetByEmail obtiene un usuario por email (sin distinguir mayúsculas).
func (r *UsuarioRepo) GetByEmail(ctx context.Context, email string) (*entity.Usuario, error) {
	u, err := scanUsuario(r.q.QueryRow(ctx, `SELECT `+usuarioCols+` FROM usuarios WHERE lower(email) = lower($1) LIMIT 1`, email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get usuario by email: %w", err)
	}
	return u, nil
}

// GetByVendedorID obtiene la cuenta enlazada a un vendedor.
func (r *UsuarioRepo) GetByVendedorID(ctx context.Context, vendedorID string) (*entity.Usuario, error) {
	u, err := scanUsuario(r.q.QueryRow(ctx, `SELECT `+usuarioCols+` FROM usuarios WHERE vendedor_id = $1 LIMIT 1`, vendedorID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get usuario by vendedor: %w", err)
	}
	return u, nil
}

// List lista usuarios ordenados por nombre.
func (r *UsuarioRepo) List(ctx context.Context, f entity.UsuarioFilter) ([]*entity.Usuario, error) {
	var w filtros
	if f.ActivosOnly {
		w.conds = append(w.conds, "activo = TRUE")
	}
	if f.Rol != "" {
		w.add("rol = ?", f.Rol)
	}
	if f.ConReunionesProyecto != "" {
		w.add("id IN (SELECT DISTINCT created_by FROM reuniones WHERE proyecto_id = ? AND created_by IS NOT NULL)", f.ConReunionesProyecto)
	}
	rows, err := r.q.Query(ctx, `SELECT `+usuarioCols+` FROM usuarios`+w.where()+` ORDER BY nombre`, w.args...)
	if err != nil {
		return nil, fmt.Errorf("list usuarios: %w", err)
	}
	defer rows.Close()
	var list []*entity.Usuario
	for rows.Next() {
		u, err := scanUsuario(rows)
		if err != nil {
			return nil, fmt.Errorf("scan usuario: %w", err)
		}
		list = append(list, u)
	}
	return list, rows.Err()
}

// SetActivo activa o desactiva la cuenta.
func (r *UsuarioRepo) SetActivo(ctx context.Context, id string, activo bool) error {
	tag, err := r.q.Exec(ctx, `UPDATE usuarios SET activo = $2, updated_at = NOW() WHERE id = $1`, id, activo)
	if err != nil {
		return fmt.Errorf("update usuario activo: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

var _ repository.VendedorRepository = (*VendedorRepo)(nil)

// VendedorRepo adaptador de la tabla vendedores.
type VendedorRepo struct {
	q Querier
}

// NewVendedorRepository construye el adaptador.
func NewVendedorRepository(q Querier) *VendedorRepo {
	return &VendedorRepo{q: q}
}

// Create persiste un vendedor.
func (r *VendedorRepo) Create(ctx context.Context, v *entity.Vendedor) error {
	_, err := r.q.Exec(ctx,
		`INSERT INTO vendedores (id, nombre, telefono, activo, created_at) VALUES ($1, $2, $3, $4, $5)`,
		v.ID, v.Nombre, v.Telefono, v.Activo, v.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert vendedor: %w", err)
	}
	return nil
}

// GetByID obtiene un vendedor por ID.
func (r *VendedorRepo) GetByID(ctx context.Context, id string) (*entity.Vendedor, error) {
	var v entity.Vendedor
	err := r.q.QueryRow(ctx,
		`SELECT id, nombre, telefono, activo, created_at FROM vendedores WHERE id = $1`, id,
	).Scan(&v.ID, &v.Nombre, &v.Telefono, &v.Activo, &v.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get vendedor: %w", err)
	}
	return &v, nil
}
