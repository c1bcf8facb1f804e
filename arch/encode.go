package arch

// Encode builds the instruction word for i from its Op and the operand
// fields that Op uses. Fields are masked to their nibble widths.
// Returns false if i.Op is not a known instruction.
func Encode(i Instruction) (uint16, bool) {
	x := uint16(i.X&0xf) << 8
	y := uint16(i.Y&0xf) << 4
	n := uint16(i.N & 0xf)
	nn := uint16(i.NN)
	nnn := i.NNN & 0xfff

	switch i.Op {
	case NOP:
		return 0x0000, true
	case CLS:
		return 0x00e0, true
	case RET:
		return 0x00ee, true
	case JP:
		return 0x1000 | nnn, true
	case CALL:
		return 0x2000 | nnn, true
	case SEB:
		return 0x3000 | x | nn, true
	case SNEB:
		return 0x4000 | x | nn, true
	case SE:
		return 0x5000 | x | y, true
	case LDB:
		return 0x6000 | x | nn, true
	case ADDB:
		return 0x7000 | x | nn, true
	case LD:
		return 0x8000 | x | y, true
	case OR:
		return 0x8001 | x | y, true
	case AND:
		return 0x8002 | x | y, true
	case XOR:
		return 0x8003 | x | y, true
	case ADD:
		return 0x8004 | x | y, true
	case SUB:
		return 0x8005 | x | y, true
	case SHR:
		return 0x8006 | x | y, true
	case SUBN:
		return 0x8007 | x | y, true
	case SHL:
		return 0x800e | x | y, true
	case SNE:
		return 0x9000 | x | y, true
	case LDI:
		return 0xa000 | nnn, true
	case JPV0:
		return 0xb000 | nnn, true
	case RND:
		return 0xc000 | x | nn, true
	case DRW:
		return 0xd000 | x | y | n, true
	case SKP:
		return 0xe09e | x, true
	case SKNP:
		return 0xe0a1 | x, true
	case LDVDT:
		return 0xf007 | x, true
	case LDK:
		return 0xf00a | x, true
	case LDDT:
		return 0xf015 | x, true
	case LDST:
		return 0xf018 | x, true
	case ADDI:
		return 0xf01e | x, true
	case LDF:
		return 0xf029 | x, true
	case LDBCD:
		return 0xf033 | x, true
	case STORE:
		return 0xf055 | x, true
	case LOAD:
		return 0xf065 | x, true
	}

	return 0, false
}
