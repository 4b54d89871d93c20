package move

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFromString(t *testing.T) {
	type tcase struct {
		text string
		want Move
	}
	testCases := []tcase{
		{"H8", New(7, 7)},
		{"h8", New(7, 7)},
		{"A1", New(0, 0)},
		{"O15", New(14, 14)},
		{"a15", New(0, 14)},
		{"7,7", New(7, 7)},
		{"0,14", New(0, 14)},
		{"P1", None},
		{"Z9", None},
		{"H16", None},
		{"H0", None},
		{"15,3", None},
		{"", None},
		{"none", None},
	}
	for _, tc := range testCases {
		assert.Equal(t, tc.want, FromString(tc.text), "parsing %q", tc.text)
	}
}

func TestString(t *testing.T) {
	assert.Equal(t, "H8", New(7, 7).String())
	assert.Equal(t, "A1", New(0, 0).String())
	assert.Equal(t, "O15", New(14, 14).String())
	assert.Equal(t, "none", None.String())
}

func TestRoundTrip(t *testing.T) {
	for y := 0; y < BoardDim; y++ {
		for x := 0; x < BoardDim; x++ {
			m := New(x, y)
			assert.Equal(t, m, FromString(m.String()))
			assert.Equal(t, m, FromIndex(m.Index()))
		}
	}
}

func TestValid(t *testing.T) {
	assert.True(t, New(0, 0).Valid())
	assert.False(t, None.Valid())
}
