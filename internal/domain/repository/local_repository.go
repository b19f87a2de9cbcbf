package repository

import (
	"context"

	"github.com/ecoplaza/ecoplaza-api/internal/domain/entity"
)

// LocalRepository define el puerto de persistencia para Local y su historial.
type LocalRepository interface {
	Create(ctx context.Context, l *entity.Local) error
	GetByID(ctx context.Context, id string) (*entity.Local, error)
	// GetForUpdate bloquea la fila (usar dentro de una transacción).
	GetForUpdate(ctx context.Context, id string) (*entity.Local, error)
	GetByCodigo(ctx context.Context, proyectoID, codigo string) (*entity.Local, error)
	List(ctx context.Context, f entity.LocalFilter) ([]*entity.Local, int, error)
	Stats(ctx context.Context, proyectoID string) (*entity.LocalStats, error)
	// Update persiste estado, bloqueo, montos y usuarios del semáforo.
	Update(ctx context.Context, l *entity.Local) error
	Delete(ctx context.Context, id string) error
	// VincularLead registra la relación local-lead usada por los reportes de canales.
	VincularLead(ctx context.Context, localID, leadID string) error

	AddHistorial(ctx context.Context, h *entity.LocalHistorial) error
	ListHistorial(ctx context.Context, localID string) ([]*entity.LocalHistorial, error)
}
