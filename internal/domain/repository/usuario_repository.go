package repository

import (
	"context"

	"github.com/ecoplaza/ecoplaza-api/internal/domain/entity"
)

// UsuarioRepository define el puerto de persistencia para Usuario.
type UsuarioRepository interface {
	Create(ctx context.Context, u *entity.Usuario) error
	GetByID(ctx context.Context, id string) (*entity.Usuario, error)
	GetByEmail(ctx context.Context, email string) (*entity.Usuario, error)
	// GetByVendedorID cuenta enlazada a la ficha de vendedor; nil si no hay.
	GetByVendedorID(ctx context.Context, vendedorID string) (*entity.Usuario, error)
	List(ctx context.Context, f entity.UsuarioFilter) ([]*entity.Usuario, error)
	SetActivo(ctx context.Context, id string, activo bool) error
}

// VendedorRepository puerto para la tabla de vendedores a la que se asignan leads.
type VendedorRepository interface {
	Create(ctx context.Context, v *entity.Vendedor) error
	GetByID(ctx context.Context, id string) (*entity.Vendedor, error)
}

// ProyectoRepository puerto de lectura de proyectos.
type ProyectoRepository interface {
	List(ctx context.Context, includeInactive bool) ([]*entity.Proyecto, error)
	GetByID(ctx context.Context, id string) (*entity.Proyecto, error)
	GetBySlug(ctx context.Context, slug string) (*entity.Proyecto, error)
}
