package cpu

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/retroenv/retrogolib/assert"
)

func TestStackPushPop(t *testing.T) {
	var s Stack

	assert.NoError(t, s.Push(0x202))
	assert.NoError(t, s.Push(0x304))
	assert.Equal(t, 2, s.Depth())

	v, err := s.Pop()
	assert.NoError(t, err)
	assert.Equal(t, uint16(0x304), v)

	v, err = s.Pop()
	assert.NoError(t, err)
	assert.Equal(t, uint16(0x202), v)
	assert.Equal(t, 0, s.Depth())
}

func TestStackOverflow(t *testing.T) {
	var s Stack

	for i := 0; i < StackCapacity; i++ {
		assert.NoError(t, s.Push(uint16(i)))
	}

	assert.True(t, errors.Is(s.Push(0xfff), ErrStackOverflow))
	assert.Equal(t, StackCapacity, s.Depth())

	v, err := s.Pop()
	assert.NoError(t, err)
	assert.Equal(t, uint16(StackCapacity-1), v)
}

func TestStackUnderflow(t *testing.T) {
	var s Stack

	_, err := s.Pop()
	assert.True(t, errors.Is(err, ErrStackUnderflow))
	assert.Equal(t, 0, s.Depth())
}
