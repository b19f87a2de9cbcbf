package repository

import (
	"context"

	"github.com/ecoplaza/ecoplaza-api/internal/domain/entity"
)

// AprobacionRepository puerto de persistencia de aprobaciones de descuento.
type AprobacionRepository interface {
	// GetConfig devuelve nil si el proyecto no tiene configuración guardada.
	GetConfig(ctx context.Context, proyectoID string) (*entity.ConfigAprobacion, error)
	SaveConfig(ctx context.Context, c *entity.ConfigAprobacion) error
	Create(ctx context.Context, s *entity.SolicitudAprobacion) error
	GetByID(ctx context.Context, id string) (*entity.SolicitudAprobacion, error)
	List(ctx context.Context, f entity.AprobacionFilter) ([]*entity.SolicitudAprobacion, error)
	// Update solo persiste si la solicitud sigue pendiente; si no, domain.ErrConflict.
	Update(ctx context.Context, s *entity.SolicitudAprobacion) error
	Stats(ctx context.Context, proyectoID string) (*entity.AprobacionStats, error)
}
