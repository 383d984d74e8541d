// Package answer runs the full query pipeline: embed, retrieve, generate.
package answer

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/hyperjump/kotae/internal/config"
	"github.com/hyperjump/kotae/internal/embedding"
	"github.com/hyperjump/kotae/internal/generation"
	"github.com/hyperjump/kotae/internal/models"
	"github.com/hyperjump/kotae/internal/search"
	"go.uber.org/zap"
)

var (
	// ErrEmptyQuery is returned for a query that is empty after trimming.
	ErrEmptyQuery = errors.New("query cannot be empty")
	// ErrEmbedding wraps failures of the embedding service.
	ErrEmbedding = errors.New("embedding failed")
	// ErrGeneration wraps failures of the generative model.
	ErrGeneration = errors.New("generation failed")
)

// Service answers queries one at a time against a loaded search engine.
type Service struct {
	embedder    embedding.Embedder
	engine      *search.Engine
	generator   generation.Generator
	promptStyle string
	logger      *zap.Logger

	// mu serializes queries so memory updates follow query order.
	mu sync.Mutex
}

// ServiceOption configures a Service.
type ServiceOption func(*Service)

// WithLogger sets the query lifecycle logger.
func WithLogger(l *zap.Logger) ServiceOption {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithPromptStyle selects the prompt layout passed to generation.BuildPrompt.
func WithPromptStyle(style string) ServiceOption {
	return func(s *Service) { s.promptStyle = style }
}

// NewService creates a query service.
func NewService(embedder embedding.Embedder, engine *search.Engine, generator generation.Generator, opts ...ServiceOption) *Service {
	s := &Service{
		embedder:    embedder,
		engine:      engine,
		generator:   generator,
		promptStyle: config.PromptStyleLabeled,
		logger:      zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Ask embeds query, finds the best record and, when one matched, asks the generator
// for a reply. A no-match answer has Match.Found false and no Response; the generator
// is not called.
func (s *Service) Ask(ctx context.Context, query string) (*models.Answer, error) {
	if strings.TrimSpace(query) == "" {
		return nil, ErrEmptyQuery
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	start := time.Now()
	queryID := uuid.New().String()
	logger := s.logger.With(zap.String("query_id", queryID))
	logger.Info("query received", zap.String("query", query))

	vec, err := s.embedder.Embed(ctx, query)
	if err != nil {
		logger.Error("embedding failed", zap.Error(err))
		return nil, fmt.Errorf("%w: %w", ErrEmbedding, err)
	}

	match := s.engine.Resolve(vec, query)
	ans := &models.Answer{
		QueryID: queryID,
		Query:   query,
		Match:   match,
	}
	if !match.Found {
		logger.Info("no relevant document", zap.Float64("best_score", match.Score), zap.Int("scanned", match.Scanned))
		ans.Memory = s.memoryEntries()
		ans.Elapsed = time.Since(start)
		return ans, nil
	}

	logger.Info("document matched", zap.String("document", match.ID), zap.Float64("score", match.Score))
	reply, err := s.generator.Generate(ctx, generation.BuildPrompt(s.promptStyle, query, match))
	if err != nil {
		logger.Error("generation failed", zap.Error(err))
		return nil, fmt.Errorf("%w: %w", ErrGeneration, err)
	}

	ans.Response = reply
	ans.Memory = s.memoryEntries()
	ans.Elapsed = time.Since(start)
	logger.Info("query answered", zap.Duration("elapsed", ans.Elapsed))
	return ans, nil
}

// Search resolves a query without generation. The embedding call is skipped when the
// request carries its own vector.
func (s *Service) Search(ctx context.Context, req models.QueryRequest) (models.QueryMatch, error) {
	if err := req.Validate(); err != nil {
		return models.QueryMatch{}, ErrEmptyQuery
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	vec := req.Vector
	if len(vec) == 0 {
		var err error
		vec, err = s.embedder.Embed(ctx, req.Query)
		if err != nil {
			return models.QueryMatch{}, fmt.Errorf("%w: %w", ErrEmbedding, err)
		}
	}
	return s.engine.Resolve(vec, req.Query), nil
}

// Memory returns the remembered IDs, oldest first, and the memory capacity.
// It does not wait for an in-flight query; QueryMemory guards itself.
func (s *Service) Memory() ([]string, int) {
	mem := s.engine.Memory()
	if mem == nil {
		return []string{}, 0
	}
	return mem.Entries(), mem.Capacity()
}

// Engine returns the underlying search engine.
func (s *Service) Engine() *search.Engine {
	return s.engine
}

// Close releases the embedder and generator.
func (s *Service) Close() error {
	return errors.Join(s.embedder.Close(), s.generator.Close())
}

func (s *Service) memoryEntries() []string {
	if mem := s.engine.Memory(); mem != nil {
		return mem.Entries()
	}
	return []string{}
}
