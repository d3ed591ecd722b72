package parse

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStateWalk(t *testing.T) {
	s := NewState([]string{"a", "b", "c"})

	assert.Equal(t, "", s.CurrentArg())

	assert.True(t, s.Advance())
	assert.Equal(t, "a", s.CurrentArg())
	assert.True(t, s.Advance())
	assert.Equal(t, "b", s.CurrentArg())
	assert.True(t, s.Advance())
	assert.Equal(t, "c", s.CurrentArg())

	assert.False(t, s.Advance())
	assert.Equal(t, "c", s.CurrentArg())
}

func TestStateEmpty(t *testing.T) {
	s := NewState(nil)

	assert.False(t, s.Advance())
	assert.Equal(t, "", s.CurrentArg())
}
