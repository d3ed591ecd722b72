package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindString(t *testing.T) {
	assert.Equal(t, "scalar", Scalar.String())
	assert.Equal(t, "array", Array.String())
	assert.Equal(t, "pair", Pair.String())
	assert.Equal(t, "standalone", Standalone.String())
	assert.Equal(t, "counter", Counter.String())
	assert.Equal(t, "empty", Empty.String())
	assert.Equal(t, "empty", Kind(99).String())
}

func TestArityBounds(t *testing.T) {
	cases := []struct {
		arity Arity
		min   int
		max   int
	}{
		{ExactlyOne, 1, 1},
		{ZeroOrOne, 0, 1},
		{OneOrMore, 1, -1},
		{Remaining, 0, -1},
	}
	for _, tc := range cases {
		min, max := tc.arity.Bounds()
		assert.Equal(t, tc.min, min, tc.arity.String())
		assert.Equal(t, tc.max, max, tc.arity.String())
	}
}
