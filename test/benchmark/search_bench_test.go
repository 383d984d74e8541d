package benchmark

import (
	"context"
	"fmt"
	"math/rand"
	"testing"

	"github.com/hyperjump/kotae/internal/embedding"
	"github.com/hyperjump/kotae/internal/ranking"
	"github.com/hyperjump/kotae/internal/search"
	"github.com/hyperjump/kotae/internal/vector"
)

func randomStore(b *testing.B, n, dims int) *vector.Store {
	b.Helper()
	rng := rand.New(rand.NewSource(1))
	s := vector.NewStore()
	for i := 0; i < n; i++ {
		v := make([]float64, dims)
		for j := range v {
			v[j] = rng.NormFloat64()
		}
		if err := s.Add(fmt.Sprintf("doc-%d", i), v, ""); err != nil {
			b.Fatal(err)
		}
	}
	s.Freeze()
	return s
}

func BenchmarkCosine(b *testing.B) {
	x := make([]float64, 1024)
	y := make([]float64, 1024)
	for i := range x {
		x[i] = float64(i)
		y[i] = float64(1024 - i)
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = vector.Cosine(x, y)
	}
}

func BenchmarkFindBest(b *testing.B) {
	store := randomStore(b, 10000, 1024)
	query := make([]float64, 1024)
	query[0] = 1
	for _, workers := range []int{1, 4, 8} {
		b.Run(fmt.Sprintf("workers=%d", workers), func(b *testing.B) {
			engine := search.NewEngine(store, ranking.NewRanker(nil), nil, search.WithWorkers(workers))
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				_ = engine.FindBest(query, "")
			}
		})
	}
}

func BenchmarkMockEmbedder_Embed(b *testing.B) {
	e := embedding.NewMockEmbedder(1024)
	ctx := context.Background()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = e.Embed(ctx, "benchmark query text for embedding")
	}
}
