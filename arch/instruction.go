package arch

import "fmt"

// Instruction defines decoded instruction data.
//
// Only the operand fields relevant to Op carry meaning; the others are
// still filled in from the raw word.
type Instruction struct {
	Op   Op     // Instruction family.
	Word uint16 // Raw instruction word.
	X    uint8  // Register index from the second nibble.
	Y    uint8  // Register index from the third nibble.
	N    uint8  // Lowest nibble.
	NN   uint8  // Lowest byte.
	NNN  uint16 // Lowest 12 bits.
}

// Decode splits the given word into its nibble fields and selects the
// instruction family. Returns false if the word is not a known instruction;
// the returned Instruction then has Op set to Invalid.
func Decode(word uint16) (Instruction, bool) {
	d1 := word >> 12
	d2 := word >> 8 & 0xf
	d3 := word >> 4 & 0xf
	d4 := word & 0xf

	i := Instruction{
		Word: word,
		X:    uint8(d2),
		Y:    uint8(d3),
		N:    uint8(d4),
		NN:   uint8(word),
		NNN:  word & 0xfff,
	}

	switch d1 {
	case 0x0:
		switch word {
		case 0x0000:
			i.Op = NOP
		case 0x00e0:
			i.Op = CLS
		case 0x00ee:
			i.Op = RET
		}
	case 0x1:
		i.Op = JP
	case 0x2:
		i.Op = CALL
	case 0x3:
		i.Op = SEB
	case 0x4:
		i.Op = SNEB
	case 0x5:
		if d4 == 0 {
			i.Op = SE
		}
	case 0x6:
		i.Op = LDB
	case 0x7:
		i.Op = ADDB
	case 0x8:
		i.Op = decodeALU(d4)
	case 0x9:
		if d4 == 0 {
			i.Op = SNE
		}
	case 0xa:
		i.Op = LDI
	case 0xb:
		i.Op = JPV0
	case 0xc:
		i.Op = RND
	case 0xd:
		i.Op = DRW
	case 0xe:
		switch i.NN {
		case 0x9e:
			i.Op = SKP
		case 0xa1:
			i.Op = SKNP
		}
	case 0xf:
		i.Op = decodeMisc(i.NN)
	}

	return i, i.Op != Invalid
}

// decodeALU selects the 8xyN family member.
func decodeALU(n uint16) Op {
	switch n {
	case 0x0:
		return LD
	case 0x1:
		return OR
	case 0x2:
		return AND
	case 0x3:
		return XOR
	case 0x4:
		return ADD
	case 0x5:
		return SUB
	case 0x6:
		return SHR
	case 0x7:
		return SUBN
	case 0xe:
		return SHL
	}
	return Invalid
}

// decodeMisc selects the FxNN family member.
func decodeMisc(nn uint8) Op {
	switch nn {
	case 0x07:
		return LDVDT
	case 0x0a:
		return LDK
	case 0x15:
		return LDDT
	case 0x18:
		return LDST
	case 0x1e:
		return ADDI
	case 0x29:
		return LDF
	case 0x33:
		return LDBCD
	case 0x55:
		return STORE
	case 0x65:
		return LOAD
	}
	return Invalid
}

// String returns the instruction in the conventional CHIP-8 assembly notation.
// Unknown words are rendered as raw data.
func (i Instruction) String() string {
	name, ok := Name(i.Op)
	if !ok {
		return fmt.Sprintf("DW %04X", i.Word)
	}

	vx := RegisterName(int(i.X))
	vy := RegisterName(int(i.Y))

	switch i.Op {
	case NOP, CLS, RET:
		return name
	case JP, CALL:
		return fmt.Sprintf("%s %03X", name, i.NNN)
	case JPV0:
		return fmt.Sprintf("%s V0, %03X", name, i.NNN)
	case SEB, SNEB, LDB, ADDB, RND:
		return fmt.Sprintf("%s %s, %02X", name, vx, i.NN)
	case SE, SNE, LD, OR, AND, XOR, ADD, SUB, SHR, SUBN, SHL:
		return fmt.Sprintf("%s %s, %s", name, vx, vy)
	case LDI:
		return fmt.Sprintf("%s I, %03X", name, i.NNN)
	case DRW:
		return fmt.Sprintf("%s %s, %s, %X", name, vx, vy, i.N)
	case SKP, SKNP:
		return fmt.Sprintf("%s %s", name, vx)
	case LDVDT:
		return fmt.Sprintf("%s %s, DT", name, vx)
	case LDK:
		return fmt.Sprintf("%s %s, K", name, vx)
	case LDDT:
		return fmt.Sprintf("%s DT, %s", name, vx)
	case LDST:
		return fmt.Sprintf("%s ST, %s", name, vx)
	case ADDI:
		return fmt.Sprintf("%s I, %s", name, vx)
	case LDF:
		return fmt.Sprintf("%s F, %s", name, vx)
	case LDBCD:
		return fmt.Sprintf("%s B, %s", name, vx)
	case STORE:
		return fmt.Sprintf("%s [I], %s", name, vx)
	case LOAD:
		return fmt.Sprintf("%s %s, [I]", name, vx)
	}

	return name
}
