package vector

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseVector(t *testing.T) {
	vec, err := ParseVector("[0.5, -1, 2e-3]")
	require.NoError(t, err)
	assert.Equal(t, []float64{0.5, -1, 0.002}, vec)
}

func TestParseVector_Rejections(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		wantErr error
	}{
		{"not json", "not a vector", ErrMalformedVector},
		{"object", `{"a": 1}`, ErrMalformedVector},
		{"number", "42", ErrMalformedVector},
		{"string entries", `["1", "2"]`, ErrMalformedVector},
		{"empty text", "", ErrMalformedVector},
		{"empty array", "[]", ErrEmptyVector},
		{"null", "null", ErrEmptyVector},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			vec, err := ParseVector(tt.raw)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Nil(t, vec)
		})
	}
}
