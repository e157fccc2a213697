package model

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSquare(t *testing.T) {
	tests := []struct {
		in   string
		want Square
	}{
		{in: "a1", want: Square{Row: 0, Col: 0}},
		{in: "e2", want: Square{Row: 1, Col: 4}},
		{in: "h8", want: Square{Row: 7, Col: 7}},
		{in: "d5", want: Square{Row: 4, Col: 3}},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseSquare(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.in, got.String())
		})
	}
}

func TestParseSquareRejectsMalformed(t *testing.T) {
	for _, in := range []string{"", "e", "e22", "i1", "a0", "a9", "E2", "2e", " e2"} {
		_, err := ParseSquare(in)
		assert.ErrorIs(t, err, ErrInvalidNotation, "input %q", in)
	}
}

func TestParseMove(t *testing.T) {
	for _, in := range []string{"e2 e4", "  e2   e4 ", "e2e4"} {
		from, to, err := ParseMove(in)
		require.NoError(t, err, "input %q", in)
		assert.Equal(t, Square{Row: 1, Col: 4}, from)
		assert.Equal(t, Square{Row: 3, Col: 4}, to)
	}

	for _, in := range []string{"", "e2", "e2 e4 e5", "e2-e4", "z2 e4", "e2 e9"} {
		_, _, err := ParseMove(in)
		assert.True(t, errors.Is(err, ErrInvalidNotation), "input %q", in)
	}
}

func TestSquareJSON(t *testing.T) {
	raw, err := json.Marshal(SimpleMove{From: Square{Row: 1, Col: 4}, To: Square{Row: 3, Col: 4}})
	require.NoError(t, err)
	assert.JSONEq(t, `{"from":"e2","to":"e4"}`, string(raw))

	var move SimpleMove
	require.NoError(t, json.Unmarshal([]byte(`{"from":"g1","to":"f3"}`), &move))
	assert.Equal(t, Square{Row: 0, Col: 6}, move.From)
	assert.Equal(t, Square{Row: 2, Col: 5}, move.To)

	err = json.Unmarshal([]byte(`{"from":"k1","to":"f3"}`), &move)
	assert.ErrorIs(t, err, ErrInvalidNotation)
}

func TestSquareStringOutsideBoard(t *testing.T) {
	assert.Equal(t, "invalid", Square{Row: 8, Col: 0}.String())
	assert.False(t, Square{Row: -1, Col: 3}.Inside())
}
