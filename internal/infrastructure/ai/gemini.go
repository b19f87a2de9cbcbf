package ai

import (
	"context"
	"fmt"

	"google.golang.org/genai"

	"github.com/ecoplaza/ecoplaza-api/internal/domain/entity"
)

// GeminiExtractor extrae action items con el SDK de Google GenAI.
// responseMimeType application/json obliga al modelo a devolver JSON puro.
type GeminiExtractor struct {
	client *genai.Client
	model  string
}

// NewGeminiExtractor crea el cliente; model suele ser "gemini-2.0-flash".
func NewGeminiExtractor(ctx context.Context, apiKey, model string) (*GeminiExtractor, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("AI: GEMINI_API_KEY no configurado")
	}
	if model == "" {
		model = "gemini-2.0-flash"
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{APIKey: apiKey, Backend: genai.BackendGeminiAPI})
	if err != nil {
		return nil, fmt.Errorf("AI: crear cliente Gemini: %w", err)
	}
	return &GeminiExtractor{client: client, model: model}, nil
}

// ExtraerActionItems llama a GenerateContent con la transcripción.
func (s *GeminiExtractor) ExtraerActionItems(ctx context.Context, titulo, transcripcion string) ([]*entity.ActionItem, error) {
	resp, err := s.client.Models.GenerateContent(ctx, s.model,
		[]*genai.Content{genai.NewContentFromText(buildPrompt(titulo, transcripcion), genai.RoleUser)},
		&genai.GenerateContentConfig{
			SystemInstruction: genai.NewContentFromText(systemPrompt, genai.RoleUser),
			ResponseMIMEType:  "application/json",
			Temperature:       genai.Ptr[float32](0.2),
		},
	)
	if err != nil {
		if ctx.Err() != nil {
			return nil, fmt.Errorf("AI: timeout o cancelación: %w", ctx.Err())
		}
		return nil, fmt.Errorf("AI: Gemini: %w", err)
	}
	text := resp.Text()
	if text == "" {
		return nil, fmt.Errorf("AI: Gemini devolvió respuesta vacía")
	}
	return parseItems(text)
}
