package arch

import (
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

func TestEncodeRoundTrip(t *testing.T) {
	for w := 0; w <= 0xffff; w++ {
		i, ok := Decode(uint16(w))
		if !ok {
			continue
		}

		have, ok := Encode(i)
		assert.True(t, ok)
		assert.Equal(t, uint16(w), have)
	}
}

func TestEncodeFields(t *testing.T) {
	w, ok := Encode(Instruction{Op: DRW, X: 0x1, Y: 0x2, N: 0x5})
	assert.True(t, ok)
	assert.Equal(t, uint16(0xd125), w)

	w, _ = Encode(Instruction{Op: LDI, NNN: 0x1234})
	assert.Equal(t, uint16(0xa234), w)

	_, ok = Encode(Instruction{Op: Invalid})
	assert.False(t, ok)
}

func TestRegisterIndex(t *testing.T) {
	assert.Equal(t, 0, RegisterIndex("V0"))
	assert.Equal(t, 0xa, RegisterIndex("va"))
	assert.Equal(t, 0xf, RegisterIndex("VF"))
	assert.Equal(t, -1, RegisterIndex("VG"))
	assert.Equal(t, -1, RegisterIndex("V10"))
	assert.Equal(t, -1, RegisterIndex("I"))
}
