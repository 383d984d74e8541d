package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/hyperjump/kotae/internal/answer"
	"github.com/hyperjump/kotae/internal/config"
	"github.com/hyperjump/kotae/internal/generation"
	"github.com/hyperjump/kotae/internal/memory"
	"github.com/hyperjump/kotae/internal/models"
	"github.com/hyperjump/kotae/internal/ranking"
	"github.com/hyperjump/kotae/internal/search"
	"github.com/hyperjump/kotae/internal/vector"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubEmbedder struct {
	vec []float64
	err error
}

func (e *stubEmbedder) Embed(ctx context.Context, text string) ([]float64, error) {
	return e.vec, e.err
}

func (e *stubEmbedder) Close() error { return nil }

type stubStatus struct{}

func (stubStatus) Status(ctx context.Context) (*models.Status, error) {
	return &models.Status{Rows: 2, Loaded: 2, Ranker: "boosted", Threshold: 0.5}, nil
}

func newTestServer(t *testing.T, emb *stubEmbedder) *httptest.Server {
	t.Helper()
	store := vector.NewStore()
	require.NoError(t, store.Add("alpha.txt", []float64{1, 0}, "first"))
	require.NoError(t, store.Add("beta.txt", []float64{0, 1}, "second"))
	store.Freeze()
	mem, err := memory.NewQueryMemory(3)
	require.NoError(t, err)
	ranker := ranking.NewRanker(&ranking.RankingConfig{Strategy: ranking.StrategyBoosted, Threshold: 0.5})
	svc := answer.NewService(emb, search.NewEngine(store, ranker, mem), generation.EchoGenerator{})
	srv := NewServer(svc, stubStatus{}, &config.ServerConfig{Host: "localhost", Port: 0}, nil)
	ts := httptest.NewServer(srv.Router())
	t.Cleanup(ts.Close)
	return ts
}

func post(t *testing.T, url, body string) *http.Response {
	t.Helper()
	resp, err := http.Post(url, "application/json", bytes.NewBufferString(body))
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func TestHandleQuery(t *testing.T) {
	ts := newTestServer(t, &stubEmbedder{vec: []float64{1, 0}})

	resp := post(t, ts.URL+"/api/v1/query", `{"query":"tell me"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var ans models.Answer
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&ans))
	assert.True(t, ans.Match.Found)
	assert.Equal(t, "alpha.txt", ans.Match.ID)
	assert.Equal(t, "Query: tell me\nDocument: alpha.txt\nContent: first", ans.Response)
	assert.Equal(t, []string{"alpha.txt"}, ans.Memory)
}

func TestHandleQuery_NoMatch(t *testing.T) {
	ts := newTestServer(t, &stubEmbedder{vec: []float64{-1, -1}})

	resp := post(t, ts.URL+"/api/v1/query", `{"query":"nothing"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var ans models.Answer
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&ans))
	assert.False(t, ans.Match.Found)
	assert.Empty(t, ans.Response)
}

func TestHandleQuery_Errors(t *testing.T) {
	tests := []struct {
		name   string
		emb    *stubEmbedder
		body   string
		status int
	}{
		{"invalid body", &stubEmbedder{}, `{`, http.StatusBadRequest},
		{"empty query", &stubEmbedder{}, `{"query":"  "}`, http.StatusBadRequest},
		{"embedding down", &stubEmbedder{err: errors.New("refused")}, `{"query":"q"}`, http.StatusBadGateway},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts := newTestServer(t, tt.emb)
			resp := post(t, ts.URL+"/api/v1/query", tt.body)
			assert.Equal(t, tt.status, resp.StatusCode)
			var body map[string]string
			require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
			assert.NotEmpty(t, body["error"])
		})
	}
}

func TestHandleSearch(t *testing.T) {
	ts := newTestServer(t, &stubEmbedder{vec: []float64{1, 0}})

	resp := post(t, ts.URL+"/api/v1/search", `{"query":"beta","vector":[0,1]}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var m models.QueryMatch
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&m))
	assert.Equal(t, "beta.txt", m.ID)
	assert.InDelta(t, 1.1, m.Score, 1e-9)
	assert.InDelta(t, 0.1, m.Boost, 1e-9)

	resp = post(t, ts.URL+"/api/v1/search", `{}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestHandleMemory(t *testing.T) {
	ts := newTestServer(t, &stubEmbedder{vec: []float64{0, 1}})
	post(t, ts.URL+"/api/v1/query", `{"query":"one"}`)
	post(t, ts.URL+"/api/v1/query", `{"query":"two"}`)

	resp, err := http.Get(ts.URL + "/api/v1/memory")
	require.NoError(t, err)
	defer resp.Body.Close()
	var mem models.MemoryStatus
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&mem))
	assert.Equal(t, 3, mem.Capacity)
	assert.Equal(t, []string{"beta.txt", "beta.txt"}, mem.Entries)
}

func TestHandleStatusAndHealth(t *testing.T) {
	ts := newTestServer(t, &stubEmbedder{})

	resp, err := http.Get(ts.URL + "/api/v1/status")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var status models.Status
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&status))
	assert.Equal(t, "boosted", status.Ranker)
	assert.Equal(t, 2, status.Loaded)

	health, err := http.Get(ts.URL + "/health")
	require.NoError(t, err)
	defer health.Body.Close()
	assert.Equal(t, http.StatusOK, health.StatusCode)
}
