package repository

import (
	"context"
	"time"

	"github.com/ecoplaza/ecoplaza-api/internal/domain/entity"
)

// ReunionRepository puerto de persistencia de reuniones.
type ReunionRepository interface {
	Create(ctx context.Context, r *entity.Reunion) error
	GetByID(ctx context.Context, id string) (*entity.Reunion, error)
	List(ctx context.Context, f entity.ReunionFilter) ([]*entity.Reunion, int, error)
	// Update persiste estado, error y resultado del procesamiento.
	Update(ctx context.Context, r *entity.Reunion) error
	Delete(ctx context.Context, id string) error
	// ListMediaVencida reuniones con media creada antes de la fecha y aún no eliminada.
	ListMediaVencida(ctx context.Context, antes time.Time) ([]*entity.Reunion, error)
	MarcarMediaEliminada(ctx context.Context, id string, ahora time.Time) error
}

// ActionItemRepository puerto de action items extraídos de reuniones.
type ActionItemRepository interface {
	CreateBatch(ctx context.Context, items []*entity.ActionItem) error
	DeleteByReunion(ctx context.Context, reunionID string) error
	GetByID(ctx context.Context, id string) (*entity.ActionItem, error)
	ListByReunion(ctx context.Context, reunionID string) ([]*entity.ActionItem, error)
	ListByUsuario(ctx context.Context, usuarioID string, includeCompleted bool) ([]*entity.ActionItem, error)
	Update(ctx context.Context, a *entity.ActionItem) error
}
