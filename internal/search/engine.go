// Package search finds the single most relevant stored record for a query vector.
package search

import (
	"errors"
	"math"
	"sync"

	"github.com/hyperjump/kotae/internal/memory"
	"github.com/hyperjump/kotae/internal/models"
	"github.com/hyperjump/kotae/internal/ranking"
	"github.com/hyperjump/kotae/internal/vector"
	"go.uber.org/zap"
)

// Engine scans the record store exhaustively and returns the best-scoring record.
// One Engine owns its store, ranker and query memory; engines share no state.
type Engine struct {
	store   *vector.Store
	ranker  *ranking.Ranker
	memory  *memory.QueryMemory
	workers int
	logger  *zap.Logger
}

// EngineOption configures an Engine.
type EngineOption func(*Engine)

// WithWorkers splits each scan across n goroutines. Values below 2 scan sequentially.
func WithWorkers(n int) EngineOption {
	return func(e *Engine) { e.workers = n }
}

// WithLogger sets a logger for per-search debug output.
func WithLogger(l *zap.Logger) EngineOption {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// NewEngine creates a search engine. mem may be nil, in which case Resolve does not
// record matches.
func NewEngine(store *vector.Store, ranker *ranking.Ranker, mem *memory.QueryMemory, opts ...EngineOption) *Engine {
	if ranker == nil {
		ranker = ranking.NewRanker(nil)
	}
	e := &Engine{
		store:   store,
		ranker:  ranker,
		memory:  mem,
		workers: 1,
		logger:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// candidate is the running best of a scan over a contiguous range of the store.
type candidate struct {
	index      int
	score      ranking.Score
	mismatched int
	degenerate int
}

// FindBest scores every record once and returns the highest-scoring one. Ties go to
// the record added first. An empty store, or a best score rejected by the ranker's
// threshold, yields a match with Found false. The store is not modified.
func (e *Engine) FindBest(query []float64, queryText string) models.QueryMatch {
	n := e.store.Size()
	if n == 0 {
		return models.QueryMatch{Index: -1}
	}

	var best candidate
	workers := e.workers
	if workers > n {
		workers = n
	}
	if workers <= 1 {
		best = e.scan(query, queryText, 0, n)
	} else {
		best = e.parallelScan(query, queryText, n, workers)
	}

	match := models.QueryMatch{
		Index:      best.index,
		Score:      best.score.Value,
		Cosine:     best.score.Cosine,
		Boost:      best.score.Boost,
		Scanned:    n,
		Mismatched: best.mismatched,
		Degenerate: best.degenerate,
	}
	if best.index >= 0 && e.ranker.Accept(best.score.Value) {
		rec := e.store.At(best.index)
		match.Found = true
		match.ID = rec.ID
		match.Content = rec.Content
	}
	e.logger.Debug("search complete",
		zap.Bool("found", match.Found),
		zap.String("document", match.ID),
		zap.Float64("score", match.Score),
		zap.Int("scanned", n),
		zap.Int("mismatched", match.Mismatched),
		zap.Int("degenerate", match.Degenerate))
	return match
}

// Resolve runs FindBest and, only when a record matched, remembers its ID.
func (e *Engine) Resolve(query []float64, queryText string) models.QueryMatch {
	match := e.FindBest(query, queryText)
	if match.Found && e.memory != nil {
		e.memory.Remember(match.ID)
	}
	return match
}

func (e *Engine) scan(query []float64, queryText string, from, to int) candidate {
	best := candidate{index: -1, score: ranking.Score{Value: math.Inf(-1)}}
	for i := from; i < to; i++ {
		s := e.ranker.Score(query, queryText, e.store.At(i))
		switch {
		case errors.Is(s.Err, vector.ErrDimensionMismatch):
			best.mismatched++
		case errors.Is(s.Err, vector.ErrDegenerateVector):
			best.degenerate++
		}
		if s.Value > best.score.Value {
			best.index = i
			best.score = s
		}
	}
	return best
}

// parallelScan gives each worker a contiguous range and reduces the local winners by
// score, then by store position, so the result is the same as a sequential scan.
func (e *Engine) parallelScan(query []float64, queryText string, n, workers int) candidate {
	results := make([]candidate, workers)
	size := (n + workers - 1) / workers
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		from := w * size
		to := from + size
		if to > n {
			to = n
		}
		if from >= to {
			results[w] = candidate{index: -1}
			continue
		}
		wg.Add(1)
		go func(w, from, to int) {
			defer wg.Done()
			results[w] = e.scan(query, queryText, from, to)
		}(w, from, to)
	}
	wg.Wait()

	best := candidate{index: -1}
	for _, c := range results {
		best.mismatched += c.mismatched
		best.degenerate += c.degenerate
		if c.index < 0 {
			continue
		}
		if best.index < 0 || c.score.Value > best.score.Value ||
			(c.score.Value == best.score.Value && c.index < best.index) {
			best.index = c.index
			best.score = c.score
		}
	}
	return best
}

// Size returns the number of records in the store.
func (e *Engine) Size() int {
	return e.store.Size()
}

// Ranker returns the engine's ranker.
func (e *Engine) Ranker() *ranking.Ranker {
	return e.ranker
}

// Memory returns the engine's query memory, or nil.
func (e *Engine) Memory() *memory.QueryMemory {
	return e.memory
}
