// Package ai adaptadores de ports.ActionItemExtractor sobre modelos de lenguaje.
package ai

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/ecoplaza/ecoplaza-api/internal/application/ports"
	"github.com/ecoplaza/ecoplaza-api/internal/domain/entity"
)

var (
	_ ports.ActionItemExtractor = (*AnthropicExtractor)(nil)
	_ ports.ActionItemExtractor = (*GeminiExtractor)(nil)
)

const systemPrompt = `Eres un asistente que solo responde en JSON válido. Eres muy exhaustivo identificando tareas y compromisos en reuniones de trabajo.`

const userPrompt = `Analiza la transcripción de la reunión "%s" e identifica TODOS los action items, tareas, compromisos o pendientes mencionados.

Busca cualquier mención de:
- Algo que alguien va a hacer ("voy a...", "me encargo de...")
- Algo que alguien debe hacer ("tienes que...", "hay que...")
- Compromisos ("queda pendiente...", "se compromete a...")
- Envíos o entregas ("te mando...", "enviar...")
- Revisiones y seguimientos ("revisar...", "verificar...", "confirmar...")
- Coordinaciones ("coordinar con...", "reunirse con...")

Para cada action item extrae:
- descripcion: qué se debe hacer, claro y específico
- asignado_nombre: a quién se asignó ("Por asignar" si no está claro)
- deadline: fecha límite YYYY-MM-DD o null
- prioridad: "alta", "media" o "baja"
- contexto_quote: fragmento donde se mencionó

Responde SOLO con este JSON:
{"action_items":[{"descripcion":"...","asignado_nombre":"...","deadline":null,"prioridad":"media","contexto_quote":"..."}]}

TRANSCRIPCIÓN:
%s`

func buildPrompt(titulo, transcripcion string) string {
	return fmt.Sprintf(userPrompt, titulo, transcripcion)
}

// jsonBlockRe primer objeto JSON del texto aunque venga envuelto en markdown.
var jsonBlockRe = regexp.MustCompile(`(?s)\{.*\}`)

type itemPayload struct {
	Descripcion    string  `json:"descripcion"`
	AsignadoNombre *string `json:"asignado_nombre"`
	Deadline       *string `json:"deadline"`
	Prioridad      string  `json:"prioridad"`
	ContextoQuote  *string `json:"contexto_quote"`
}

type extraccionPayload struct {
	ActionItems []itemPayload `json:"action_items"`
}

// parseItems interpreta la respuesta del modelo. El deadline "null" como texto o
// con formato inválido se descarta.
func parseItems(raw string) ([]*entity.ActionItem, error) {
	clean := extractJSON(raw)
	if clean == "" {
		return nil, fmt.Errorf("AI: no se encontró JSON en la respuesta del modelo")
	}
	var p extraccionPayload
	if err := json.Unmarshal([]byte(clean), &p); err != nil {
		return nil, fmt.Errorf("AI: parsear action items: %w", err)
	}
	out := make([]*entity.ActionItem, 0, len(p.ActionItems))
	for _, it := range p.ActionItems {
		if strings.TrimSpace(it.Descripcion) == "" {
			continue
		}
		a := &entity.ActionItem{
			Descripcion:    strings.TrimSpace(it.Descripcion),
			AsignadoNombre: it.AsignadoNombre,
			Prioridad:      strings.ToLower(strings.TrimSpace(it.Prioridad)),
			ContextoQuote:  it.ContextoQuote,
		}
		if it.Deadline != nil && !strings.EqualFold(*it.Deadline, "null") {
			if t, err := time.ParseInLocation("2006-01-02", strings.TrimSpace(*it.Deadline), time.Local); err == nil {
				a.Deadline = &t
			}
		}
		out = append(out, a)
	}
	return out, nil
}

// extractJSON quita bloques ```json ... ``` y devuelve el primer {...}.
func extractJSON(text string) string {
	text = strings.TrimSpace(text)
	if idx := strings.Index(text, "```"); idx != -1 {
		after := text[idx+3:]
		if nl := strings.Index(after, "\n"); nl != -1 {
			after = after[nl+1:]
		}
		if end := strings.LastIndex(after, "```"); end != -1 {
			after = after[:end]
		}
		text = strings.TrimSpace(after)
	}
	if strings.HasPrefix(text, "{") {
		return text
	}
	return strings.TrimSpace(jsonBlockRe.FindString(text))
}
