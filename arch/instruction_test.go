package arch

import (
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

func TestDecode(t *testing.T) {
	tests := []struct {
		word uint16
		op   Op
		str  string
	}{
		{0x0000, NOP, "NOP"},
		{0x00e0, CLS, "CLS"},
		{0x00ee, RET, "RET"},
		{0x1abc, JP, "JP ABC"},
		{0x2300, CALL, "CALL 300"},
		{0x3a12, SEB, "SE VA, 12"},
		{0x4b34, SNEB, "SNE VB, 34"},
		{0x5120, SE, "SE V1, V2"},
		{0x6012, LDB, "LD V0, 12"},
		{0x7003, ADDB, "ADD V0, 03"},
		{0x8120, LD, "LD V1, V2"},
		{0x8121, OR, "OR V1, V2"},
		{0x8122, AND, "AND V1, V2"},
		{0x8123, XOR, "XOR V1, V2"},
		{0x8124, ADD, "ADD V1, V2"},
		{0x8125, SUB, "SUB V1, V2"},
		{0x8126, SHR, "SHR V1, V2"},
		{0x8127, SUBN, "SUBN V1, V2"},
		{0x812e, SHL, "SHL V1, V2"},
		{0x9120, SNE, "SNE V1, V2"},
		{0xa123, LDI, "LD I, 123"},
		{0xb200, JPV0, "JP V0, 200"},
		{0xc30f, RND, "RND V3, 0F"},
		{0xd125, DRW, "DRW V1, V2, 5"},
		{0xe49e, SKP, "SKP V4"},
		{0xe4a1, SKNP, "SKNP V4"},
		{0xf507, LDVDT, "LD V5, DT"},
		{0xf50a, LDK, "LD V5, K"},
		{0xf515, LDDT, "LD DT, V5"},
		{0xf518, LDST, "LD ST, V5"},
		{0xf51e, ADDI, "ADD I, V5"},
		{0xf529, LDF, "LD F, V5"},
		{0xf533, LDBCD, "LD B, V5"},
		{0xf555, STORE, "LD [I], V5"},
		{0xf565, LOAD, "LD V5, [I]"},
	}

	for _, test := range tests {
		i, ok := Decode(test.word)
		assert.True(t, ok)
		assert.Equal(t, test.op, i.Op)
		assert.Equal(t, test.str, i.String())
	}
}

func TestDecodeFields(t *testing.T) {
	i, ok := Decode(0xd7a3)
	assert.True(t, ok)
	assert.Equal(t, uint16(0xd7a3), i.Word)
	assert.Equal(t, uint8(0x7), i.X)
	assert.Equal(t, uint8(0xa), i.Y)
	assert.Equal(t, uint8(0x3), i.N)
	assert.Equal(t, uint8(0xa3), i.NN)
	assert.Equal(t, uint16(0x7a3), i.NNN)
}

func TestDecodeInvalid(t *testing.T) {
	for _, word := range []uint16{
		0x0001, 0x00e1, 0x0123, 0x5121, 0x8128, 0x812f,
		0x9121, 0xe100, 0xe19f, 0xf100, 0xf166, 0xffff,
	} {
		i, ok := Decode(word)
		assert.False(t, ok)
		assert.Equal(t, Invalid, i.Op)
	}

	i, _ := Decode(0x812f)
	assert.Equal(t, "DW 812F", i.String())
}

func TestRegisterName(t *testing.T) {
	assert.Equal(t, "V0", RegisterName(0))
	assert.Equal(t, "VF", RegisterName(VF))
	assert.Equal(t, "", RegisterName(16))
	assert.Equal(t, "", RegisterName(-1))
}
