package generation

import (
	"context"
	"fmt"

	openaisdk "github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/openai/openai-go/packages/param"
	"github.com/openai/openai-go/shared"
)

// OpenAIGenerator uses the OpenAI chat completions API, or any server speaking it.
type OpenAIGenerator struct {
	client      openaisdk.Client
	model       string
	temperature float64
}

// NewOpenAIGenerator creates a generator for model. baseURL is optional.
func NewOpenAIGenerator(apiKey, baseURL, model string, temperature float64, opts ...option.RequestOption) *OpenAIGenerator {
	reqOpts := []option.RequestOption{option.WithAPIKey(apiKey)}
	if baseURL != "" {
		reqOpts = append(reqOpts, option.WithBaseURL(baseURL))
	}
	reqOpts = append(reqOpts, opts...)
	return &OpenAIGenerator{
		client:      openaisdk.NewClient(reqOpts...),
		model:       model,
		temperature: temperature,
	}
}

// Generate sends prompt as a single user message and returns the first choice.
func (g *OpenAIGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	params := openaisdk.ChatCompletionNewParams{
		Model: shared.ChatModel(g.model),
		Messages: []openaisdk.ChatCompletionMessageParamUnion{
			openaisdk.UserMessage(prompt),
		},
		Temperature: param.NewOpt(g.temperature),
	}
	resp, err := g.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return "", fmt.Errorf("failed to generate response: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("failed to generate response: no choices returned")
	}
	return resp.Choices[0].Message.Content, nil
}

// Close is a no-op.
func (g *OpenAIGenerator) Close() error {
	return nil
}
