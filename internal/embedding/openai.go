package embedding

import (
	"context"
	"fmt"

	openaisdk "github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/openai/openai-go/packages/param"
)

// OpenAIEmbedder uses the OpenAI embeddings API, or any server speaking it.
type OpenAIEmbedder struct {
	client openaisdk.Client
	model  string
}

// NewOpenAIEmbedder creates an embedder for model. baseURL is optional.
func NewOpenAIEmbedder(apiKey, baseURL, model string, opts ...option.RequestOption) *OpenAIEmbedder {
	reqOpts := []option.RequestOption{option.WithAPIKey(apiKey)}
	if baseURL != "" {
		reqOpts = append(reqOpts, option.WithBaseURL(baseURL))
	}
	reqOpts = append(reqOpts, opts...)
	return &OpenAIEmbedder{client: openaisdk.NewClient(reqOpts...), model: model}
}

// Embed returns the embedding of text.
func (e *OpenAIEmbedder) Embed(ctx context.Context, text string) ([]float64, error) {
	resp, err := e.client.Embeddings.New(ctx, openaisdk.EmbeddingNewParams{
		Input: openaisdk.EmbeddingNewParamsInputUnion{OfString: param.NewOpt(text)},
		Model: openaisdk.EmbeddingModel(e.model),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to embed query: %w", err)
	}
	if len(resp.Data) == 0 {
		return nil, fmt.Errorf("%w: no data in response", ErrInvalidEmbedding)
	}
	return validate(resp.Data[0].Embedding)
}

// Close is a no-op.
func (e *OpenAIEmbedder) Close() error {
	return nil
}
