package ports

import (
	"context"

	"github.com/ecoplaza/ecoplaza-api/internal/domain/entity"
)

// ActionItemExtractor puerto de salida hacia el modelo de lenguaje que lee
// transcripciones. Cualquier adaptador (Anthropic, Gemini, mock) implementa este contrato.
type ActionItemExtractor interface {
	// ExtraerActionItems devuelve los compromisos detectados en la transcripción.
	// El contexto debe llevar un timeout.
	ExtraerActionItems(ctx context.Context, titulo, transcripcion string) ([]*entity.ActionItem, error)
}
