package repository

import (
	"context"
	"time"

	"github.com/ecoplaza/ecoplaza-api/internal/domain/entity"
)

// ComisionRepository puerto de persistencia de comisiones.
type ComisionRepository interface {
	CreateBatch(ctx context.Context, cs []*entity.Comision) error
	GetByID(ctx context.Context, id string) (*entity.Comision, error)
	List(ctx context.Context, f entity.ComisionFilter) ([]*entity.Comision, error)
	// Stats con usuarioID vacío agrega todas las comisiones.
	Stats(ctx context.Context, usuarioID string) (*entity.ComisionStats, error)
	Update(ctx context.Context, c *entity.Comision) error
	// Liberar pasa las comisiones pendiente_inicial del control a disponible.
	Liberar(ctx context.Context, controlID string, ahora time.Time) (int64, error)
	Trazabilidad(ctx context.Context, localID string) ([]*entity.ComisionTrazabilidad, error)
}
