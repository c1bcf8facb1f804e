package parser

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/hexaflex/chip8/arch"
)

// Kind identifies the lexical class of a token.
type Kind int

// Known token kinds.
const (
	_        Kind = iota
	Newline       // End of a statement.
	Comma         // Operand separator.
	Assign        // '=' in a constant definition.
	Label         // ':name'; Text holds the name.
	Ident         // Mnemonic, directive or symbol reference.
	Register      // V0-VF; Num holds the register index.
	Keyword       // I, DT, ST, K, F, B or [I]; Text is upper case.
	Here          // $$, the address of the current instruction.
	Number        // Integer or character literal; Num holds the value.
	String        // String literal; Text holds the unquoted value.
	Operator      // Arithmetic or bitwise operator.
	LParen
	RParen
)

func (k Kind) String() string {
	switch k {
	case Newline:
		return "newline"
	case Comma:
		return "comma"
	case Assign:
		return "'='"
	case Label:
		return "label"
	case Ident:
		return "identifier"
	case Register:
		return "register"
	case Keyword:
		return "keyword"
	case Here:
		return "$$"
	case Number:
		return "number"
	case String:
		return "string"
	case Operator:
		return "operator"
	case LParen:
		return "'('"
	case RParen:
		return "')'"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Token is a single lexical element with its source position.
type Token struct {
	Kind Kind
	Pos  Position
	Text string
	Num  int64
}

// String returns the token in source form.
func (t Token) String() string {
	switch t.Kind {
	case Newline:
		return `\n`
	case Label:
		return ":" + t.Text
	case Register:
		return arch.RegisterName(int(t.Num))
	case Number:
		return strconv.FormatInt(t.Num, 10)
	case String:
		return strconv.Quote(t.Text)
	}
	return t.Text
}

// keywords holds the operand keywords besides the V registers.
var keywords = map[string]bool{
	"I":   true,
	"DT":  true,
	"ST":  true,
	"K":   true,
	"F":   true,
	"B":   true,
	"[I]": true,
}

// IsReserved returns true if name is a register or operand keyword, which
// can not be used for labels or constants.
func IsReserved(name string) bool {
	return arch.RegisterIndex(name) >= 0 || keywords[strings.ToUpper(name)]
}

// classifyWord turns a bare word into a register, keyword or identifier token.
func classifyWord(pos Position, word string) Token {
	if r := arch.RegisterIndex(word); r >= 0 {
		return Token{Kind: Register, Pos: pos, Text: word, Num: int64(r)}
	}

	if upper := strings.ToUpper(word); keywords[upper] {
		return Token{Kind: Keyword, Pos: pos, Text: upper}
	}

	return Token{Kind: Ident, Pos: pos, Text: word}
}
