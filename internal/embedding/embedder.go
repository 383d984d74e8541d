// Package embedding turns query text into vectors through an external embedding model.
package embedding

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/hyperjump/kotae/internal/config"
	"github.com/hyperjump/kotae/pkg/utils"
	"go.uber.org/zap"
)

// ErrInvalidEmbedding is returned when the service answers without a usable vector:
// missing, empty, or all zeros.
var ErrInvalidEmbedding = errors.New("invalid embedding")

// Embedder produces vector embeddings for text.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float64, error)
	Close() error
}

// NewEmbedder builds the embedder selected by cfg.Provider, wrapped in an LRU cache
// when cfg.CacheSize is positive.
func NewEmbedder(cfg config.EmbeddingConfig, logger *zap.Logger) (Embedder, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	var e Embedder
	switch strings.ToLower(cfg.Provider) {
	case config.ProviderOllama, "":
		if cfg.URL == "" {
			return nil, fmt.Errorf("embedding.url is required for the ollama provider")
		}
		e = NewOllamaEmbedder(cfg.URL, cfg.Model, timeout)
	case config.ProviderOpenAI:
		if cfg.APIKey == "" {
			return nil, fmt.Errorf("embedding.api_key is required for the openai provider")
		}
		e = NewOpenAIEmbedder(cfg.APIKey, cfg.URL, cfg.Model)
	case config.ProviderMock:
		e = NewMockEmbedder(0)
	default:
		return nil, fmt.Errorf("unknown embedding provider: %s (supported: ollama, openai, mock)", cfg.Provider)
	}

	logger.Info("embedder ready",
		zap.String("provider", cfg.Provider),
		zap.String("model", cfg.Model),
		zap.Int("cache_size", cfg.CacheSize))

	if cfg.CacheSize > 0 {
		return NewCachedEmbedder(e, cfg.CacheSize), nil
	}
	return e, nil
}

func validate(vec []float64) ([]float64, error) {
	if len(vec) == 0 {
		return nil, fmt.Errorf("%w: empty vector", ErrInvalidEmbedding)
	}
	if utils.IsZeroVector(vec) {
		return nil, fmt.Errorf("%w: all components are zero", ErrInvalidEmbedding)
	}
	return vec, nil
}
