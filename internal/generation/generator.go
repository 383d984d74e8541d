// Package generation sends prompts to a generative model and returns its reply.
package generation

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/hyperjump/kotae/internal/config"
	"go.uber.org/zap"
)

// Generator produces a text reply for a prompt.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
	Close() error
}

// NewGenerator builds the generator selected by cfg.Provider.
func NewGenerator(cfg config.GenerationConfig, logger *zap.Logger) (Generator, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 120 * time.Second
	}

	var g Generator
	switch strings.ToLower(cfg.Provider) {
	case config.ProviderOllama, "":
		if cfg.URL == "" {
			return nil, fmt.Errorf("generation.url is required for the ollama provider")
		}
		g = NewOllamaGenerator(cfg.URL, cfg.Model, cfg.Temperature, cfg.Stream, timeout)
	case config.ProviderOpenAI:
		if cfg.APIKey == "" {
			return nil, fmt.Errorf("generation.api_key is required for the openai provider")
		}
		g = NewOpenAIGenerator(cfg.APIKey, cfg.URL, cfg.Model, cfg.Temperature)
	case config.ProviderEcho:
		g = EchoGenerator{}
	default:
		return nil, fmt.Errorf("unknown generation provider: %s (supported: ollama, openai, echo)", cfg.Provider)
	}

	logger.Info("generator ready",
		zap.String("provider", cfg.Provider),
		zap.String("model", cfg.Model),
		zap.Float64("temperature", cfg.Temperature),
		zap.Bool("stream", cfg.Stream))
	return g, nil
}

// EchoGenerator returns the prompt unchanged. Useful offline and in tests.
type EchoGenerator struct{}

// Generate returns prompt.
func (EchoGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	return prompt, nil
}

// Close is a no-op.
func (EchoGenerator) Close() error { return nil }
