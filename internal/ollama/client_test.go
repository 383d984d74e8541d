package ollama

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_PostJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		var in map[string]string
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&in))
		fmt.Fprintf(w, `{"echo":%q}`, in["say"])
	}))
	defer srv.Close()

	var out struct{ Echo string }
	err := NewClient(srv.URL, time.Second).PostJSON(context.Background(), map[string]string{"say": "hola"}, &out)
	require.NoError(t, err)
	assert.Equal(t, "hola", out.Echo)
}

func TestClient_StatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model not found", http.StatusNotFound)
	}))
	defer srv.Close()

	var out map[string]any
	err := NewClient(srv.URL, time.Second).PostJSON(context.Background(), struct{}{}, &out)
	var se *StatusError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, http.StatusNotFound, se.Code)
	assert.Contains(t, err.Error(), "model not found")
}

func TestClient_PostStream(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintln(w, `{"n":1}`)
		fmt.Fprintln(w, ``)
		fmt.Fprintln(w, `{"n":2}`)
		fmt.Fprintln(w, `{"n":3}`)
	}))
	defer srv.Close()

	var seen []string
	err := NewClient(srv.URL, time.Second).PostStream(context.Background(), struct{}{}, func(line []byte) (bool, error) {
		seen = append(seen, string(line))
		return len(seen) == 2, nil
	})
	require.NoError(t, err)
	assert.Equal(t, []string{`{"n":1}`, `{"n":2}`}, seen)
}

func TestClient_PostStreamCallbackError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintln(w, `{"n":1}`)
	}))
	defer srv.Close()

	boom := errors.New("boom")
	err := NewClient(srv.URL, time.Second).PostStream(context.Background(), struct{}{}, func([]byte) (bool, error) {
		return false, boom
	})
	assert.ErrorIs(t, err, boom)
}
