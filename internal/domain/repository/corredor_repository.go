package repository

import (
	"context"

	"github.com/ecoplaza/ecoplaza-api/internal/domain/entity"
)

// CorredorRepository puerto del registro de corredores (expansión).
type CorredorRepository interface {
	Create(ctx context.Context, r *entity.RegistroCorredor) error
	GetByID(ctx context.Context, id string) (*entity.RegistroCorredor, error)
	GetByUsuario(ctx context.Context, usuarioID string) (*entity.RegistroCorredor, error)
	Update(ctx context.Context, r *entity.RegistroCorredor) error
	List(ctx context.Context, f entity.RegistroFilter) ([]*entity.RegistroCorredor, error)
	Stats(ctx context.Context) (*entity.InboxStats, error)

	GetDocumento(ctx context.Context, registroID, tipo string) (*entity.DocumentoCorredor, error)
	// SaveDocumento reemplaza el documento previo del mismo tipo.
	SaveDocumento(ctx context.Context, d *entity.DocumentoCorredor) error
	ListDocumentos(ctx context.Context, registroID string) ([]*entity.DocumentoCorredor, error)

	AddHistorial(ctx context.Context, h *entity.HistorialCorredor) error
	ListHistorial(ctx context.Context, registroID string) ([]*entity.HistorialCorredor, error)
}
