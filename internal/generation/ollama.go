package generation

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/hyperjump/kotae/internal/ollama"
)

type ollamaGenerateRequest struct {
	Model       string  `json:"model"`
	Prompt      string  `json:"prompt"`
	Temperature float64 `json:"temperature"`
	Stream      bool    `json:"stream"`
}

type ollamaGenerateResponse struct {
	Response string `json:"response"`
	Done     bool   `json:"done"`
	Error    string `json:"error,omitempty"`
}

// OllamaGenerator calls an Ollama-compatible /api/generate endpoint.
type OllamaGenerator struct {
	client      *ollama.Client
	model       string
	temperature float64
	stream      bool
}

// NewOllamaGenerator creates a generator posting {model, prompt, temperature, stream} to url.
func NewOllamaGenerator(url, model string, temperature float64, stream bool, timeout time.Duration) *OllamaGenerator {
	return &OllamaGenerator{
		client:      ollama.NewClient(url, timeout),
		model:       model,
		temperature: temperature,
		stream:      stream,
	}
}

// Generate returns the model reply. In stream mode the chunks are concatenated until
// the service reports done.
func (g *OllamaGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	req := ollamaGenerateRequest{
		Model:       g.model,
		Prompt:      prompt,
		Temperature: g.temperature,
		Stream:      g.stream,
	}
	if !g.stream {
		var resp ollamaGenerateResponse
		if err := g.client.PostJSON(ctx, req, &resp); err != nil {
			return "", fmt.Errorf("failed to generate response: %w", err)
		}
		if resp.Error != "" {
			return "", fmt.Errorf("failed to generate response: %s", resp.Error)
		}
		return resp.Response, nil
	}

	var sb strings.Builder
	err := g.client.PostStream(ctx, req, func(line []byte) (bool, error) {
		var chunk ollamaGenerateResponse
		if err := json.Unmarshal(line, &chunk); err != nil {
			return false, fmt.Errorf("malformed stream chunk: %w", err)
		}
		if chunk.Error != "" {
			return false, fmt.Errorf("%s", chunk.Error)
		}
		sb.WriteString(chunk.Response)
		return chunk.Done, nil
	})
	if err != nil {
		return "", fmt.Errorf("failed to generate response: %w", err)
	}
	return sb.String(), nil
}

// Close is a no-op.
func (g *OllamaGenerator) Close() error {
	return nil
}
