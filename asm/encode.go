package asm

import (
	"strings"

	"github.com/hexaflex/chip8/arch"
	"github.com/hexaflex/chip8/asm/parser"
)

// role describes what an instruction expects in one operand slot and
// which instruction field it fills.
type role int

const (
	vx     role = iota // Register, stored in X.
	vy                 // Register, stored in Y.
	v0                 // Register V0 only.
	addr               // 12-bit address.
	imm8               // 8-bit value.
	imm4               // 4-bit value.
	regI               // I
	regDT              // DT
	regST              // ST
	regK               // K
	regF               // F
	regB               // B
	memI               // [I]
)

// keywords maps operand keywords onto the role they satisfy.
var keywords = map[string]role{
	"I":   regI,
	"DT":  regDT,
	"ST":  regST,
	"K":   regK,
	"F":   regF,
	"B":   regB,
	"[I]": memI,
}

// form is one operand pattern accepted by a mnemonic.
type form struct {
	op   arch.Op
	args []role
}

// forms lists the accepted operand patterns per mnemonic.
// The first matching pattern wins.
var forms = map[string][]form{
	"nop":  {{arch.NOP, nil}},
	"cls":  {{arch.CLS, nil}},
	"ret":  {{arch.RET, nil}},
	"jp":   {{arch.JP, []role{addr}}, {arch.JPV0, []role{v0, addr}}},
	"call": {{arch.CALL, []role{addr}}},
	"se":   {{arch.SE, []role{vx, vy}}, {arch.SEB, []role{vx, imm8}}},
	"sne":  {{arch.SNE, []role{vx, vy}}, {arch.SNEB, []role{vx, imm8}}},
	"ld": {
		{arch.LD, []role{vx, vy}},
		{arch.LDB, []role{vx, imm8}},
		{arch.LDI, []role{regI, addr}},
		{arch.LDVDT, []role{vx, regDT}},
		{arch.LDK, []role{vx, regK}},
		{arch.LDDT, []role{regDT, vx}},
		{arch.LDST, []role{regST, vx}},
		{arch.LDF, []role{regF, vx}},
		{arch.LDBCD, []role{regB, vx}},
		{arch.STORE, []role{memI, vx}},
		{arch.LOAD, []role{vx, memI}},
	},
	"add": {
		{arch.ADD, []role{vx, vy}},
		{arch.ADDB, []role{vx, imm8}},
		{arch.ADDI, []role{regI, vx}},
	},
	"or":   {{arch.OR, []role{vx, vy}}},
	"and":  {{arch.AND, []role{vx, vy}}},
	"xor":  {{arch.XOR, []role{vx, vy}}},
	"sub":  {{arch.SUB, []role{vx, vy}}},
	"subn": {{arch.SUBN, []role{vx, vy}}},
	"shr":  {{arch.SHR, []role{vx, vy}}, {arch.SHR, []role{vx}}},
	"shl":  {{arch.SHL, []role{vx, vy}}, {arch.SHL, []role{vx}}},
	"rnd":  {{arch.RND, []role{vx, imm8}}},
	"drw":  {{arch.DRW, []role{vx, vy, imm4}}},
	"skp":  {{arch.SKP, []role{vx}}},
	"sknp": {{arch.SKNP, []role{vx}}},
}

// operand is an evaluated instruction operand.
type operand struct {
	pos      parser.Position
	register int   // Register index, or -1.
	keyword  role  // Keyword role; only valid if isKeyword is set.
	value    int64 // Numeric value, when neither register nor keyword.

	isKeyword bool
}

// encodeInstruction encodes the instruction with the given evaluated
// operands into its two byte form.
func encodeInstruction(st *parser.Statement, args []operand) ([]byte, error) {
	set, ok := forms[strings.ToLower(st.Name)]
	if !ok {
		return nil, newError(st.Pos, "unknown instruction %q", st.Name)
	}

	for _, f := range set {
		if !f.matches(args) {
			continue
		}

		ins, err := f.build(args)
		if err != nil {
			return nil, err
		}

		word, _ := arch.Encode(ins)
		return []byte{byte(word >> 8), byte(word)}, nil
	}

	return nil, newError(st.Pos, "invalid operands for instruction %q", st.Name)
}

// matches returns true if args fit the operand pattern of f.
func (f form) matches(args []operand) bool {
	if len(args) != len(f.args) {
		return false
	}

	for i, r := range f.args {
		a := args[i]

		switch r {
		case vx, vy:
			if a.register < 0 {
				return false
			}
		case v0:
			if a.register != 0 {
				return false
			}
		case addr, imm8, imm4:
			if a.register >= 0 || a.isKeyword {
				return false
			}
		default:
			if !a.isKeyword || a.keyword != r {
				return false
			}
		}
	}

	return true
}

// build fills in the instruction fields from args, which must match f.
// Returns an error if a value does not fit its field.
func (f form) build(args []operand) (arch.Instruction, error) {
	ins := arch.Instruction{Op: f.op}

	for i, r := range f.args {
		a := args[i]

		switch r {
		case vx:
			ins.X = uint8(a.register)
		case vy:
			ins.Y = uint8(a.register)
		case addr:
			if a.value < 0 || a.value > 0xfff {
				return ins, newError(a.pos, "address %d out of range [0, 4095]", a.value)
			}
			ins.NNN = uint16(a.value)
		case imm8:
			if a.value < -128 || a.value > 0xff {
				return ins, newError(a.pos, "value %d out of range [-128, 255]", a.value)
			}
			ins.NN = uint8(a.value)
		case imm4:
			if a.value < 0 || a.value > 0xf {
				return ins, newError(a.pos, "value %d out of range [0, 15]", a.value)
			}
			ins.N = uint8(a.value)
		}
	}

	return ins, nil
}

// classifyOperand turns a lone register or keyword token into an operand.
// Returns false if op is an expression, which needs evaluation.
func classifyOperand(op parser.Operand) (operand, bool) {
	arg := operand{pos: op.Pos, register: -1}
	if len(op.Tokens) != 1 {
		return arg, false
	}

	switch tok := op.Tokens[0]; tok.Kind {
	case parser.Register:
		arg.register = int(tok.Num)
		return arg, true
	case parser.Keyword:
		arg.keyword = keywords[tok.Text]
		arg.isKeyword = true
		return arg, true
	}

	return arg, false
}
