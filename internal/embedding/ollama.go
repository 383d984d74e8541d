package embedding

import (
	"context"
	"fmt"
	"time"

	"github.com/hyperjump/kotae/internal/ollama"
)

type ollamaEmbedRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
}

type ollamaEmbedResponse struct {
	Embedding []float64 `json:"embedding"`
}

// OllamaEmbedder calls an Ollama-compatible /api/embeddings endpoint.
type OllamaEmbedder struct {
	client *ollama.Client
	model  string
}

// NewOllamaEmbedder creates an embedder posting {model, prompt} to url.
func NewOllamaEmbedder(url, model string, timeout time.Duration) *OllamaEmbedder {
	return &OllamaEmbedder{client: ollama.NewClient(url, timeout), model: model}
}

// Embed returns the embedding of text. A response without a usable vector is
// ErrInvalidEmbedding.
func (e *OllamaEmbedder) Embed(ctx context.Context, text string) ([]float64, error) {
	var resp ollamaEmbedResponse
	if err := e.client.PostJSON(ctx, ollamaEmbedRequest{Model: e.model, Prompt: text}, &resp); err != nil {
		return nil, fmt.Errorf("failed to embed query: %w", err)
	}
	return validate(resp.Embedding)
}

// Close is a no-op.
func (e *OllamaEmbedder) Close() error {
	return nil
}
