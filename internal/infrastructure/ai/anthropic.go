package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/rs/zerolog/log"

	"github.com/ecoplaza/ecoplaza-api/internal/domain/entity"
)

const (
	anthropicMessagesURL = "https://api.anthropic.com/v1/messages"
	anthropicVersion     = "2023-06-01"
	anthropicMaxTokens   = 4096
)

// AnthropicExtractor extrae action items con la API REST de Messages.
type AnthropicExtractor struct {
	apiKey     string
	model      string
	url        string
	httpClient *http.Client
	maxRetries uint64
}

// NewAnthropicExtractor construye el adaptador. Sin apiKey las llamadas devuelven error.
func NewAnthropicExtractor(apiKey, model string) *AnthropicExtractor {
	return &AnthropicExtractor{
		apiKey: apiKey,
		model:  model,
		url:    anthropicMessagesURL,
		httpClient: &http.Client{
			// el caso de uso impone además el timeout total de la re-extracción
			Timeout: 90 * time.Second,
		},
		maxRetries: 2,
	}
}

type anthropicRequest struct {
	Model       string             `json:"model"`
	MaxTokens   int                `json:"max_tokens"`
	System      string             `json:"system"`
	Temperature float64            `json:"temperature"`
	Messages    []anthropicMessage `json:"messages"`
}

type anthropicMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type anthropicResponse struct {
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
	Error *struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	} `json:"error"`
}

// ExtraerActionItems envía la transcripción a Claude. Reintenta 429 y 5xx.
func (s *AnthropicExtractor) ExtraerActionItems(ctx context.Context, titulo, transcripcion string) ([]*entity.ActionItem, error) {
	if s.apiKey == "" {
		return nil, fmt.Errorf("AI: ANTHROPIC_API_KEY no configurado")
	}
	body, err := json.Marshal(anthropicRequest{
		Model:       s.model,
		MaxTokens:   anthropicMaxTokens,
		System:      systemPrompt,
		Temperature: 0.2,
		Messages:    []anthropicMessage{{Role: "user", Content: buildPrompt(titulo, transcripcion)}},
	})
	if err != nil {
		return nil, fmt.Errorf("AI: serializar request: %w", err)
	}

	var raw []byte
	op := func() error {
		raw, err = s.post(ctx, body)
		return err
	}
	b := backoff.WithContext(backoff.WithMaxRetries(backoff.NewExponentialBackOff(), s.maxRetries), ctx)
	notify := func(err error, espera time.Duration) {
		log.Warn().Err(err).Dur("espera", espera).Msg("ai: reintentando Anthropic")
	}
	if err := backoff.RetryNotify(op, b, notify); err != nil {
		return nil, err
	}

	var resp anthropicResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return nil, fmt.Errorf("AI: deserializar respuesta Anthropic: %w", err)
	}
	if len(resp.Content) == 0 {
		return nil, fmt.Errorf("AI: Claude devolvió respuesta vacía")
	}
	return parseItems(resp.Content[0].Text)
}

// post hace una llamada; los errores no reintentables se marcan como Permanent.
func (s *AnthropicExtractor) post(ctx context.Context, body []byte) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.url, bytes.NewReader(body))
	if err != nil {
		return nil, backoff.Permanent(fmt.Errorf("AI: crear HTTP request: %w", err))
	}
	req.Header.Set("x-api-key", s.apiKey)
	req.Header.Set("anthropic-version", anthropicVersion)
	req.Header.Set("content-type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, backoff.Permanent(fmt.Errorf("AI: timeout o cancelación: %w", ctx.Err()))
		}
		return nil, fmt.Errorf("AI: llamada HTTP fallida: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("AI: leer respuesta: %w", err)
	}
	if resp.StatusCode == http.StatusOK {
		return raw, nil
	}

	msg := fmt.Sprintf("AI: Anthropic HTTP %d", resp.StatusCode)
	var errResp anthropicResponse
	if json.Unmarshal(raw, &errResp) == nil && errResp.Error != nil {
		msg = fmt.Sprintf("AI: Anthropic error (%s): %s", errResp.Error.Type, errResp.Error.Message)
	}
	if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500 {
		return nil, fmt.Errorf("%s", msg)
	}
	return nil, backoff.Permanent(fmt.Errorf("%s", msg))
}
