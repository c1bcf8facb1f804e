package asm

import (
	"fmt"
	"strings"

	"github.com/hexaflex/chip8/asm/eval"
	"github.com/hexaflex/chip8/asm/parser"
	"github.com/hexaflex/chip8/devices/cpu"
)

// assembler holds assembler context. It turns a source AST into a program image.
type assembler struct {
	program []byte         // Encoded program, loaded at cpu.ProgramStart.
	symbols map[string]int // Table of labels or constants mapped to their respective addresses and values.
	address int            // Address at which next instruction is written.
}

func newAssembler() *assembler {
	return &assembler{
		symbols: make(map[string]int),
	}
}

// assemble compiles the given source AST into a program image.
func (a *assembler) assemble(ast *parser.AST) ([]byte, error) {
	sts := ast.Statements()

	if err := a.resolveLabels(sts); err != nil {
		return nil, err
	}

	if err := a.evaluateConstants(sts); err != nil {
		return nil, err
	}

	if err := a.compile(sts); err != nil {
		return nil, err
	}

	if len(a.program) > cpu.ProgramCapacity {
		return nil, fmt.Errorf("program size %d exceeds available memory of %d bytes", len(a.program), cpu.ProgramCapacity)
	}

	return a.program, nil
}

// resolveLabels finds all label definitions and resolves their addresses.
func (a *assembler) resolveLabels(sts []*parser.Statement) error {
	a.address = cpu.ProgramStart

	for _, st := range sts {
		switch st.Kind {
		case parser.LabelDef:
			if err := a.define(st.Pos, st.Name, a.address); err != nil {
				return err
			}

		case parser.Include:
			return newError(st.Pos, "unresolved include %q", st.Name)

		case parser.Instruction:
			size, err := encodedLen(st)
			if err != nil {
				return err
			}
			a.address += size
		}
	}

	return nil
}

// evaluateConstants evaluates constant definitions in source order.
// Constants may refer to labels and to constants defined before them.
func (a *assembler) evaluateConstants(sts []*parser.Statement) error {
	for _, st := range sts {
		if st.Kind != parser.Constant {
			continue
		}

		num, err := a.evaluateNumber(st.Operands[0])
		if err != nil {
			return err
		}

		if err := a.define(st.Pos, st.Name, int(num)); err != nil {
			return err
		}
	}

	return nil
}

// evaluateNumber evaluates op, which must yield a number.
func (a *assembler) evaluateNumber(op parser.Operand) (int64, error) {
	v, err := eval.Evaluate(op.Tokens, a.resolveReference)
	if err != nil {
		return 0, err
	}

	if v.Kind != parser.Number {
		return 0, newError(op.Pos, "invalid expression; expected a number")
	}

	return v.Num, nil
}

// define adds a symbol to the table. Names are case insensitive.
func (a *assembler) define(pos parser.Position, name string, value int) error {
	key := strings.ToLower(name)
	if _, ok := a.symbols[key]; ok {
		return newError(pos, "duplicate definition name %q", name)
	}

	a.symbols[key] = value
	return nil
}

// resolveReference finds the address or value for the given label or constant.
// $$ yields the address of the instruction being evaluated.
func (a *assembler) resolveReference(name string) (int, error) {
	if name == "$$" {
		return a.address, nil
	}

	if v, ok := a.symbols[strings.ToLower(name)]; ok {
		return v, nil
	}

	return 0, fmt.Errorf("reference to unresolved value %s", name)
}

// compile encodes all instructions and data directives.
func (a *assembler) compile(sts []*parser.Statement) error {
	a.address = cpu.ProgramStart

	for _, st := range sts {
		if st.Kind != parser.Instruction {
			continue
		}

		var code []byte
		var err error

		if size, ok := isDataDirective(st); ok {
			code, err = a.encodeDataDirective(st, size)
		} else {
			code, err = a.encodeInstruction(st)
		}

		if err != nil {
			return err
		}

		a.program = append(a.program, code...)
		a.address += len(code)
	}

	return nil
}

// encodeInstruction evaluates the operands of st and encodes it.
// Register and keyword operands are not evaluated.
func (a *assembler) encodeInstruction(st *parser.Statement) ([]byte, error) {
	args := make([]operand, len(st.Operands))

	for i, op := range st.Operands {
		arg, ok := classifyOperand(op)
		if !ok {
			num, err := a.evaluateNumber(op)
			if err != nil {
				return nil, err
			}
			arg.value = num
		}
		args[i] = arg
	}

	return encodeInstruction(st, args)
}

// encodeDataDirective encodes the operands for the given data directive.
func (a *assembler) encodeDataDirective(st *parser.Statement, size int) ([]byte, error) {
	lo, hi := int64(-128), int64(0xff)
	if size == 2 {
		lo, hi = -32768, 0xffff
	}

	var out []byte
	for _, op := range st.Operands {
		if str, ok := stringOperand(op); ok {
			for _, b := range []byte(str) {
				out = writeData(out, int64(b), size)
			}
			continue
		}

		num, err := a.evaluateNumber(op)
		if err != nil {
			return nil, err
		}

		if num < lo || num > hi {
			return nil, newError(op.Pos, "value %d out of range [%d, %d]", num, lo, hi)
		}

		out = writeData(out, num, size)
	}

	return out, nil
}

// writeData appends v to out as a big endian value of the given byte size.
func writeData(out []byte, v int64, size int) []byte {
	if size == 2 {
		return append(out, byte(v>>8), byte(v))
	}
	return append(out, byte(v))
}

// encodedLen returns the byte size occupied by the compiled statement.
func encodedLen(st *parser.Statement) (int, error) {
	size, ok := isDataDirective(st)
	if !ok {
		return 2, nil
	}

	var total int
	for _, op := range st.Operands {
		if str, ok := stringOperand(op); ok {
			total += len(str) * size
			continue
		}

		for _, tok := range op.Tokens {
			if tok.Kind == parser.String {
				return 0, newError(tok.Pos, "string data must be a single literal")
			}
		}

		total += size
	}

	return total, nil
}

// stringOperand returns the string if the data operand op is a lone string
// literal. Strings can not take part in data expressions, since their size
// must be known before labels are resolved.
func stringOperand(op parser.Operand) (string, bool) {
	if len(op.Tokens) == 1 && op.Tokens[0].Kind == parser.String {
		return op.Tokens[0].Text, true
	}
	return "", false
}

// isDataDirective returns true if st represents a data directive.
// If true, returns the byte size of each value.
func isDataDirective(st *parser.Statement) (int, bool) {
	switch strings.ToLower(st.Name) {
	case "db", "d8":
		return 1, true
	case "dw", "d16":
		return 2, true
	}
	return 0, false
}
