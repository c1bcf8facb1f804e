package cpu

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/retroenv/retrogolib/assert"
)

func TestMemoryFont(t *testing.T) {
	m := NewMemory()
	assert.Equal(t, MemoryCapacity, len(m))
	assert.Equal(t, []byte{0xf0, 0x90, 0x90, 0x90, 0xf0}, []byte(m[0:5]))
	assert.Equal(t, []byte{0xf0, 0x80, 0xf0, 0x80, 0x80}, []byte(m[15*GlyphSize:16*GlyphSize]))
	assert.Equal(t, byte(0), m[len(font)])
}

func TestMemoryLoad(t *testing.T) {
	m := NewMemory()
	assert.NoError(t, m.Load([]byte{0x60, 0x12, 0x70, 0x03}))
	assert.Equal(t, []byte{0x60, 0x12, 0x70, 0x03}, []byte(m[ProgramStart:ProgramStart+4]))
	assert.Equal(t, byte(0xf0), m[0])
}

func TestMemoryLoadExactFit(t *testing.T) {
	m := NewMemory()
	p := make([]byte, ProgramCapacity)
	p[len(p)-1] = 0xab
	assert.NoError(t, m.Load(p))
	assert.Equal(t, byte(0xab), m[MemoryCapacity-1])
}

func TestMemoryLoadTooLarge(t *testing.T) {
	m := NewMemory()
	p := make([]byte, ProgramCapacity+1)
	p[0] = 0xff

	err := m.Load(p)
	assert.True(t, errors.Is(err, ErrProgramTooLarge))
	assert.Equal(t, byte(0), m[ProgramStart])
}

func TestMemoryU16(t *testing.T) {
	m := NewMemory()
	m[0x300] = 0xa2
	m[0x301] = 0x3c

	v, err := m.U16(0x300)
	assert.NoError(t, err)
	assert.Equal(t, uint16(0xa23c), v)

	_, err = m.U16(0xffe)
	assert.NoError(t, err)

	_, err = m.U16(0xfff)
	assert.True(t, errors.Is(err, ErrAddress))
}

func TestMemoryBounds(t *testing.T) {
	m := NewMemory()

	assert.NoError(t, m.SetU8(0xfff, 7))
	v, err := m.U8(0xfff)
	assert.NoError(t, err)
	assert.Equal(t, byte(7), v)

	assert.True(t, errors.Is(m.SetU8(0x1000, 1), ErrAddress))
	_, err = m.U8(0x1000)
	assert.True(t, errors.Is(err, ErrAddress))

	assert.True(t, errors.Is(m.Write(0xffe, []byte{1, 2, 3}), ErrAddress))
	assert.Equal(t, byte(0), m[0xffe])

	var p [2]byte
	assert.NoError(t, m.Read(0xffe, p[:]))
	assert.Equal(t, [2]byte{0, 7}, p)
	assert.True(t, errors.Is(m.Read(0xfff, p[:]), ErrAddress))
}
