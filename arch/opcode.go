// Package arch defines the CHIP-8 instruction set along with
// some related helper functions.
package arch

// Op identifies a decoded instruction family.
type Op int

// Known opcodes.
const (
	Invalid Op = iota
	NOP        // 0000
	CLS        // 00E0
	RET        // 00EE
	JP         // 1nnn
	CALL       // 2nnn
	SEB        // 3xnn
	SNEB       // 4xnn
	SE         // 5xy0
	LDB        // 6xnn
	ADDB       // 7xnn
	LD         // 8xy0
	OR         // 8xy1
	AND        // 8xy2
	XOR        // 8xy3
	ADD        // 8xy4
	SUB        // 8xy5
	SHR        // 8xy6
	SUBN       // 8xy7
	SHL        // 8xyE
	SNE        // 9xy0
	LDI        // Annn
	JPV0       // Bnnn
	RND        // Cxnn
	DRW        // Dxyn
	SKP        // Ex9E
	SKNP       // ExA1
	LDVDT      // Fx07
	LDK        // Fx0A
	LDDT       // Fx15
	LDST       // Fx18
	ADDI       // Fx1E
	LDF        // Fx29
	LDBCD      // Fx33
	STORE      // Fx55
	LOAD       // Fx65
)

// Name returns the mnemonic for the given opcode.
// Returns false if the opcode is not recognized.
func Name(op Op) (string, bool) {
	switch op {
	case NOP:
		return "NOP", true
	case CLS:
		return "CLS", true
	case RET:
		return "RET", true
	case JP:
		return "JP", true
	case CALL:
		return "CALL", true
	case SEB, SE:
		return "SE", true
	case SNEB, SNE:
		return "SNE", true
	case LDB, LD, LDI, LDVDT, LDK, LDDT, LDST, LDF, LDBCD, STORE, LOAD:
		return "LD", true
	case ADDB, ADD, ADDI:
		return "ADD", true
	case OR:
		return "OR", true
	case AND:
		return "AND", true
	case XOR:
		return "XOR", true
	case SUB:
		return "SUB", true
	case SHR:
		return "SHR", true
	case SUBN:
		return "SUBN", true
	case SHL:
		return "SHL", true
	case JPV0:
		return "JP", true
	case RND:
		return "RND", true
	case DRW:
		return "DRW", true
	case SKP:
		return "SKP", true
	case SKNP:
		return "SKNP", true
	}

	return "", false
}
