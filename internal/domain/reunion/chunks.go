package reunion

import (
	"strings"

	"github.com/ecoplaza/ecoplaza-api/internal/domain/entity"
)

// Tamaños de trozo para transcripciones largas, en runas.
const (
	MaxChunk = 80000
	Overlap  = 2000
)

// Chunks divide la transcripción en trozos de MaxChunk con Overlap de solape.
// Una transcripción corta devuelve un solo trozo.
func Chunks(texto string) []string {
	r := []rune(texto)
	if len(r) <= MaxChunk {
		return []string{texto}
	}
	var out []string
	for inicio := 0; inicio < len(r); {
		fin := min(inicio+MaxChunk, len(r))
		out = append(out, string(r[inicio:fin]))
		inicio = fin - Overlap
		if inicio >= len(r)-Overlap {
			break
		}
	}
	return out
}

// Dedup conserva el primer item por descripción (sin distinguir mayúsculas) y
// completa los valores por defecto.
func Dedup(lotes [][]*entity.ActionItem) []*entity.ActionItem {
	vistos := make(map[string]bool)
	var out []*entity.ActionItem
	for _, lote := range lotes {
		for _, it := range lote {
			if it == nil {
				continue
			}
			clave := strings.ToLower(strings.TrimSpace(it.Descripcion))
			if clave == "" || vistos[clave] {
				continue
			}
			vistos[clave] = true
			Normalizar(it)
			out = append(out, it)
		}
	}
	return out
}

// Normalizar asignado "No especificado" y prioridad media cuando faltan.
func Normalizar(it *entity.ActionItem) {
	it.Descripcion = strings.TrimSpace(it.Descripcion)
	if it.AsignadoNombre == nil || strings.TrimSpace(*it.AsignadoNombre) == "" {
		s := "No especificado"
		it.AsignadoNombre = &s
	}
	if !EsPrioridad(it.Prioridad) {
		it.Prioridad = entity.PrioridadMedia
	}
}
