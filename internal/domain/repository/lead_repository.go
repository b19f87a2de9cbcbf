package repository

import (
	"context"

	"github.com/ecoplaza/ecoplaza-api/internal/domain/entity"
)

// LeadRepository define el puerto de persistencia para Lead.
type LeadRepository interface {
	Create(ctx context.Context, l *entity.Lead) error
	GetByID(ctx context.Context, id string) (*entity.Lead, error)
	// List devuelve la página pedida y el total sin paginar.
	List(ctx context.Context, f entity.LeadFilter) ([]*entity.Lead, int, error)
	Stats(ctx context.Context, f entity.LeadFilter) (*entity.LeadStats, error)
	// FindByTelefono busca en todos los proyectos; el teléfono llega normalizado.
	FindByTelefono(ctx context.Context, telefono string) (*entity.Lead, error)
	FindByTelefonoProyecto(ctx context.Context, telefono, proyectoID string) (*entity.Lead, error)
	// AsignarVendedor con vendedorID nil libera el lead.
	AsignarVendedor(ctx context.Context, id string, vendedorID *string) error
	MarcarAsistio(ctx context.Context, id string) error
}
