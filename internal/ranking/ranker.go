package ranking

import (
	"errors"
	"strings"

	"github.com/hyperjump/kotae/internal/models"
	"github.com/hyperjump/kotae/internal/vector"
	"go.uber.org/zap"
)

// Ranker scores records with the configured strategy. It is stateless apart from its
// configuration and safe for concurrent use.
type Ranker struct {
	config *RankingConfig
	logger *zap.Logger
}

// RankerOption configures a Ranker.
type RankerOption func(*Ranker)

// WithLogger sets a logger used to report dimension mismatches and degenerate vectors.
func WithLogger(l *zap.Logger) RankerOption {
	return func(r *Ranker) {
		if l != nil {
			r.logger = l
		}
	}
}

// NewRanker creates a Ranker. A nil config means the plain strategy.
func NewRanker(config *RankingConfig, opts ...RankerOption) *Ranker {
	if config == nil {
		config = DefaultRankingConfig()
	}
	config.ApplyDefaults()
	r := &Ranker{config: config, logger: zap.NewNop()}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Strategy returns the configured strategy.
func (r *Ranker) Strategy() Strategy {
	return r.config.Strategy
}

// Threshold returns the minimum accepted score for the boosted strategy.
func (r *Ranker) Threshold() float64 {
	return r.config.Threshold
}

// Score computes the score of rec for the query vector. queryText is only used by the
// boosted strategy.
func (r *Ranker) Score(query []float64, queryText string, rec *models.Record) Score {
	cos, err := vector.Cosine(query, rec.Vector)
	if err != nil {
		r.report(rec, len(query), err)
	}
	s := Score{Value: cos, Cosine: cos, Err: err}
	if r.config.Strategy == StrategyBoosted {
		s.Boost = r.NameBoost(rec.ID, queryText)
		s.Value += s.Boost
	}
	return s
}

// NameBoost returns the configured bonus when id contains queryText, ignoring case,
// and 0 otherwise.
func (r *Ranker) NameBoost(id, queryText string) float64 {
	// Plain substring test: empty text is contained in every id, whitespace is not trimmed.
	if strings.Contains(strings.ToLower(id), strings.ToLower(queryText)) {
		return r.config.NameBoost
	}
	return 0
}

// Accept reports whether a best score counts as a relevant match.
func (r *Ranker) Accept(value float64) bool {
	if r.config.Strategy != StrategyBoosted {
		return true
	}
	return value >= r.config.Threshold
}

func (r *Ranker) report(rec *models.Record, queryDims int, err error) {
	if errors.Is(err, vector.ErrDimensionMismatch) {
		r.logger.Debug("dimension mismatch, scoring 0",
			zap.String("document", rec.ID),
			zap.Int("query_dims", queryDims),
			zap.Int("document_dims", rec.Dimensions()))
		return
	}
	r.logger.Debug("degenerate vector, scoring 0", zap.String("document", rec.ID), zap.Error(err))
}
