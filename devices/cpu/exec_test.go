package cpu

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/retroenv/retrogolib/assert"

	"github.com/hexaflex/chip8/arch"
)

// exec decodes and executes word against c, failing the test on error.
func exec(t *testing.T, c *CPU, word uint16) {
	t.Helper()

	instr, ok := arch.Decode(word)
	if !ok {
		t.Fatalf("invalid instruction %04x", word)
	}
	if err := c.Exec(instr); err != nil {
		t.Fatalf("%s: %v", instr, err)
	}
}

func TestADDCarry(t *testing.T) {
	c := New(nil)

	for a := 0; a < 0x100; a++ {
		for b := 0; b < 0x100; b++ {
			c.v[1], c.v[2] = byte(a), byte(b)
			exec(t, c, 0x8124)

			if c.v[1] != byte(a+b) || c.v[0xf] != flag(a+b > 0xff) {
				t.Fatalf("ADD %02x, %02x: have V1=%02x VF=%d", a, b, c.v[1], c.v[0xf])
			}
		}
	}
}

func TestSUBNotBorrow(t *testing.T) {
	c := New(nil)

	for a := 0; a < 0x100; a++ {
		for b := 0; b < 0x100; b++ {
			c.v[1], c.v[2] = byte(a), byte(b)
			exec(t, c, 0x8125)

			if c.v[1] != byte(a-b) || c.v[0xf] != flag(a >= b) {
				t.Fatalf("SUB %02x, %02x: have V1=%02x VF=%d", a, b, c.v[1], c.v[0xf])
			}
		}
	}
}

func TestSUBNNotBorrow(t *testing.T) {
	c := New(nil)

	for a := 0; a < 0x100; a++ {
		for b := 0; b < 0x100; b++ {
			c.v[1], c.v[2] = byte(a), byte(b)
			exec(t, c, 0x8127)

			if c.v[1] != byte(b-a) || c.v[0xf] != flag(b >= a) {
				t.Fatalf("SUBN %02x, %02x: have V1=%02x VF=%d", a, b, c.v[1], c.v[0xf])
			}
		}
	}
}

func TestShifts(t *testing.T) {
	c := New(nil)

	for a := 0; a < 0x100; a++ {
		c.v[1], c.v[2] = byte(a), 0xaa
		exec(t, c, 0x8126)
		assert.Equal(t, byte(a)>>1, c.v[1])
		assert.Equal(t, byte(a)&1, c.v[0xf])
		assert.Equal(t, byte(0xaa), c.v[2])

		c.v[1] = byte(a)
		exec(t, c, 0x812e)
		assert.Equal(t, byte(a)<<1, c.v[1])
		assert.Equal(t, byte(a)>>7, c.v[0xf])
	}
}

func TestBitwise(t *testing.T) {
	c := New(nil)

	c.v[1], c.v[2] = 0x0f, 0x3c
	exec(t, c, 0x8121)
	assert.Equal(t, byte(0x3f), c.v[1])

	c.v[1] = 0x0f
	exec(t, c, 0x8122)
	assert.Equal(t, byte(0x0c), c.v[1])

	c.v[1] = 0x0f
	exec(t, c, 0x8123)
	assert.Equal(t, byte(0x33), c.v[1])

	exec(t, c, 0x8120)
	assert.Equal(t, byte(0x3c), c.v[1])
}

func TestADDI(t *testing.T) {
	c := New(nil)

	exec(t, c, 0xa123)
	assert.Equal(t, uint16(0x123), c.i)

	c.v[0] = 0x10
	exec(t, c, 0xf01e)
	assert.Equal(t, uint16(0x133), c.i)

	c.i = 0xfffe
	c.v[0] = 3
	c.v[0xf] = 9
	exec(t, c, 0xf01e)
	assert.Equal(t, uint16(0x0001), c.i)
	assert.Equal(t, byte(9), c.v[0xf])
}

func TestLDF(t *testing.T) {
	c := New(nil)

	for digit := byte(0); digit < 16; digit++ {
		c.v[4] = digit
		exec(t, c, 0xf429)
		assert.Equal(t, uint16(digit)*GlyphSize, c.i)
	}
}

func TestBCD(t *testing.T) {
	tests := []struct {
		value byte
		want  []byte
	}{
		{255, []byte{2, 5, 5}},
		{107, []byte{1, 0, 7}},
		{42, []byte{0, 4, 2}},
		{0, []byte{0, 0, 0}},
	}

	c := New(nil)

	for _, test := range tests {
		c.i = 0x300
		c.v[5] = test.value
		exec(t, c, 0xf533)
		assert.Equal(t, test.want, []byte(c.memory[0x300:0x303]))
		assert.Equal(t, uint16(0x300), c.i)
	}
}

func TestStoreLoad(t *testing.T) {
	c := New(nil)

	for i := range c.v {
		c.v[i] = byte(0xa0 + i)
	}

	c.i = 0x400
	exec(t, c, 0xf355)
	assert.Equal(t, []byte{0xa0, 0xa1, 0xa2, 0xa3, 0x00}, []byte(c.memory[0x400:0x405]))
	assert.Equal(t, uint16(0x400), c.i)

	c.memory[0x400] = 0x11
	c.memory[0x401] = 0x22
	c.memory[0x402] = 0x33
	exec(t, c, 0xf165)
	assert.Equal(t, byte(0x11), c.v[0])
	assert.Equal(t, byte(0x22), c.v[1])
	assert.Equal(t, byte(0xa2), c.v[2])
	assert.Equal(t, uint16(0x400), c.i)
}

func TestMemoryAccessOutOfRange(t *testing.T) {
	for _, word := range []uint16{0xf155, 0xf165, 0xf033, 0xd002} {
		c := New(nil)
		c.i = 0xfff

		instr, _ := arch.Decode(word)
		assert.True(t, errors.Is(c.Exec(instr), ErrAddress))
	}

	c := New(nil)
	c.i = 0xffe
	exec(t, c, 0xf155)
	exec(t, c, 0xd002)
}

func TestExecRegisterIndex(t *testing.T) {
	c := New(nil)

	err := c.Exec(arch.Instruction{Op: arch.LDB, X: 16})
	assert.True(t, errors.Is(err, ErrRegisterIndex))

	err = c.Exec(arch.Instruction{Op: arch.LD, X: 1, Y: 0x20})
	assert.True(t, errors.Is(err, ErrRegisterIndex))
}

func TestExecInvalid(t *testing.T) {
	c := New(nil)
	assert.True(t, errors.Is(c.Exec(arch.Instruction{}), ErrUnknownOpcode))
}
