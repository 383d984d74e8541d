package ranking

import (
	"testing"

	"github.com/hyperjump/kotae/internal/models"
	"github.com/hyperjump/kotae/internal/vector"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestParseStrategy(t *testing.T) {
	tests := []struct {
		in      string
		want    Strategy
		wantErr bool
	}{
		{"", StrategyPlain, false},
		{"plain", StrategyPlain, false},
		{"boosted", StrategyBoosted, false},
		{"bm25", "", true},
	}
	for _, tt := range tests {
		got, err := ParseStrategy(tt.in)
		if tt.wantErr {
			assert.Error(t, err, tt.in)
			continue
		}
		require.NoError(t, err)
		assert.Equal(t, tt.want, got)
	}
}

func TestNewRanker_Defaults(t *testing.T) {
	r := NewRanker(nil)
	assert.Equal(t, StrategyPlain, r.Strategy())
	assert.Equal(t, DefaultNameBoost, r.config.NameBoost)
}

func TestRanker_PlainIgnoresQueryText(t *testing.T) {
	r := NewRanker(&RankingConfig{Strategy: StrategyPlain})
	rec := &models.Record{ID: "manual", Vector: []float64{1, 0}}
	s := r.Score([]float64{1, 0}, "manual", rec)
	assert.InDelta(t, 1.0, s.Value, 1e-9)
	assert.Zero(t, s.Boost)
	assert.NoError(t, s.Err)
}

func TestRanker_BoostedAddsExactBonus(t *testing.T) {
	plain := NewRanker(&RankingConfig{Strategy: StrategyPlain})
	boosted := NewRanker(&RankingConfig{Strategy: StrategyBoosted, Threshold: 0.5})
	rec := &models.Record{ID: "Manual_Usuario.pdf", Vector: []float64{0.6, 0.8}}
	query := []float64{1, 0}

	p := plain.Score(query, "manual_usuario.pdf", rec)
	b := boosted.Score(query, "manual_usuario.pdf", rec)
	assert.InDelta(t, 0.1, b.Value-p.Value, 1e-12)
	assert.Equal(t, 0.1, b.Boost)
	assert.Equal(t, p.Cosine, b.Cosine)
}

func TestRanker_BoostIsNotClamped(t *testing.T) {
	r := NewRanker(&RankingConfig{Strategy: StrategyBoosted})
	rec := &models.Record{ID: "faq", Vector: []float64{1, 0}}
	s := r.Score([]float64{2, 0}, "FAQ", rec)
	assert.InDelta(t, 1.1, s.Value, 1e-9)
}

func TestRanker_NameBoost(t *testing.T) {
	r := NewRanker(&RankingConfig{Strategy: StrategyBoosted})
	tests := []struct {
		id, text string
		want     float64
	}{
		{"Informe Anual 2023", "anual", 0.1},
		{"Informe Anual 2023", "INFORME", 0.1},
		{"informe", "informe anual", 0},
		{"informe", "", 0.1},
		{"informe", "   ", 0},
		{"my doc", " ", 0.1},
		{"My Doc", "y d", 0.1},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, r.NameBoost(tt.id, tt.text), "NameBoost(%q, %q)", tt.id, tt.text)
	}
}

func TestRanker_Accept(t *testing.T) {
	plain := NewRanker(&RankingConfig{Strategy: StrategyPlain, Threshold: 0.9})
	assert.True(t, plain.Accept(-1), "plain strategy never gates")

	boosted := NewRanker(&RankingConfig{Strategy: StrategyBoosted, Threshold: 0.5})
	assert.True(t, boosted.Accept(0.5))
	assert.True(t, boosted.Accept(0.75))
	assert.False(t, boosted.Accept(0.49))
}

func TestRanker_ReportsAnomalies(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	r := NewRanker(nil, WithLogger(zap.New(core)))

	s := r.Score([]float64{1, 0, 0}, "", &models.Record{ID: "short", Vector: []float64{1, 0}})
	assert.ErrorIs(t, s.Err, vector.ErrDimensionMismatch)
	assert.Zero(t, s.Value)

	s = r.Score([]float64{0, 0}, "", &models.Record{ID: "a", Vector: []float64{1, 0}})
	assert.ErrorIs(t, s.Err, vector.ErrDegenerateVector)
	assert.Zero(t, s.Value)

	require.Equal(t, 2, logs.Len())
	assert.Equal(t, "short", logs.All()[0].ContextMap()["document"])
}
