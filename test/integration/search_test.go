// Package integration exercises SQLite loading and search together (requires cgo sqlite).
package integration

import (
	"context"
	"encoding/json"
	"math/rand"
	"path/filepath"
	"testing"

	"github.com/hyperjump/kotae/internal/indexer"
	"github.com/hyperjump/kotae/internal/memory"
	"github.com/hyperjump/kotae/internal/models"
	"github.com/hyperjump/kotae/internal/ranking"
	"github.com/hyperjump/kotae/internal/search"
	"github.com/hyperjump/kotae/internal/storage"
	"github.com/hyperjump/kotae/internal/vector"
)

func vecJSON(t *testing.T, v []float64) string {
	t.Helper()
	b, err := json.Marshal(v)
	if err != nil {
		t.Fatal(err)
	}
	return string(b)
}

func loadStore(t *testing.T, rows []*models.RecordRow) (*vector.Store, *indexer.LoadReport) {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "embeddings.db")
	if err := storage.WriteFixtureFile(dbPath, storage.DefaultSchema(), rows); err != nil {
		t.Fatal(err)
	}
	source, err := storage.NewSQLiteStorage(dbPath, storage.DefaultSchema())
	if err != nil {
		t.Fatal(err)
	}
	defer source.Close()
	store := vector.NewStore()
	report, err := indexer.NewLoader(source, store).Load(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	return store, report
}

func TestIntegration_LoadAndSearch(t *testing.T) {
	store, report := loadStore(t, []*models.RecordRow{
		{ID: "ml.txt", VectorJSON: "[0.9, 0.1, 0]", Content: "Machine learning algorithms learn from data."},
		{ID: "bad.txt", VectorJSON: `{"not":"a vector"}`},
		{ID: "search.txt", VectorJSON: "[0.1, 0.9, 0]", Content: "Semantic search uses embeddings."},
		{ID: "empty.txt", VectorJSON: "[]"},
		{ID: "wide.txt", VectorJSON: "[1, 0, 0, 0]", Content: "Different model, different size."},
		{ID: "zero.txt", VectorJSON: "[0, 0, 0]", Content: "degenerate"},
	})
	if report.Loaded != 4 || len(report.Rejected) != 2 {
		t.Fatalf("unexpected report: %+v", report)
	}

	mem, _ := memory.NewQueryMemory(2)
	engine := search.NewEngine(store, ranking.NewRanker(nil), mem)

	m := engine.Resolve([]float64{1, 0, 0}, "machine learning")
	if !m.Found || m.ID != "ml.txt" {
		t.Fatalf("expected ml.txt, got %+v", m)
	}
	if m.Scanned != 4 || m.Mismatched != 1 || m.Degenerate != 1 {
		t.Errorf("unexpected counters: %+v", m)
	}

	// The boosted ranker prefers the document whose name contains the query text.
	boosted := search.NewEngine(store, ranking.NewRanker(&ranking.RankingConfig{
		Strategy: ranking.StrategyBoosted, Threshold: 0.5,
	}), nil)
	m = boosted.FindBest([]float64{0.5, 0.5, 0}, "SEARCH")
	if !m.Found || m.ID != "search.txt" {
		t.Errorf("expected boosted search.txt, got %+v", m)
	}
	if m.Boost != ranking.DefaultNameBoost {
		t.Errorf("boost = %f", m.Boost)
	}
}

func TestIntegration_ParallelScanMatchesSequential(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	const dims = 8
	var rows []*models.RecordRow
	for i := 0; i < 500; i++ {
		v := make([]float64, dims)
		for j := range v {
			// a coarse grid produces many exact ties
			v[j] = float64(rng.Intn(3) - 1)
		}
		rows = append(rows, &models.RecordRow{ID: "doc-" + string(rune('a'+i%26)), VectorJSON: vecJSON(t, v)})
	}
	store, _ := loadStore(t, rows)

	seq := search.NewEngine(store, ranking.NewRanker(nil), nil)
	par := search.NewEngine(store, ranking.NewRanker(nil), nil, search.WithWorkers(6))
	for q := 0; q < 50; q++ {
		query := make([]float64, dims)
		for j := range query {
			query[j] = float64(rng.Intn(3) - 1)
		}
		a, b := seq.FindBest(query, ""), par.FindBest(query, "")
		if a.Index != b.Index || a.Score != b.Score || a.Found != b.Found {
			t.Fatalf("query %v: sequential %+v != parallel %+v", query, a, b)
		}
	}
}
