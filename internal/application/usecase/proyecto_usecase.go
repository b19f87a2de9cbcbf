package usecase

import (
	"context"

	"github.com/ecoplaza/ecoplaza-api/internal/application/dto"
	"github.com/ecoplaza/ecoplaza-api/internal/domain/entity"
	"github.com/ecoplaza/ecoplaza-api/internal/domain/repository"
)

// ProyectoUseCase lectura de proyectos.
type ProyectoUseCase struct {
	repo repository.ProyectoRepository
}

// NewProyectoUseCase construye el caso de uso.
func NewProyectoUseCase(repo repository.ProyectoRepository) *ProyectoUseCase {
	return &ProyectoUseCase{repo: repo}
}

// List proyectos ordenados por nombre.
func (uc *ProyectoUseCase) List(ctx context.Context, includeInactive bool) ([]dto.ProyectoResponse, error) {
	list, err := uc.repo.List(ctx, includeInactive)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ProyectoResponse, 0, len(list))
	for _, p := range list {
		out = append(out, toProyectoResponse(p))
	}
	return out, nil
}

func toProyectoResponse(p *entity.Proyecto) dto.ProyectoResponse {
	return dto.ProyectoResponse{
		ID:     p.ID,
		Nombre: p.Nombre,
		Slug:   p.Slug,
		Color:  p.Color,
		Activo: p.Activo,
	}
}
