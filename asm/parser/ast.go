package parser

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// StmtKind identifies the kind of a source statement.
type StmtKind int

// Known statement kinds.
const (
	_           StmtKind = iota
	Instruction          // Mnemonic or data directive with operands.
	LabelDef             // ':name'
	Constant             // const name = expr
	Include              // include "path"
)

func (k StmtKind) String() string {
	switch k {
	case Instruction:
		return "Instruction"
	case LabelDef:
		return "Label"
	case Constant:
		return "Constant"
	case Include:
		return "Include"
	}
	return fmt.Sprintf("StmtKind(%d)", int(k))
}

// Operand is one comma separated operand: the tokens of a register,
// keyword or expression.
type Operand struct {
	Pos    Position
	Tokens []Token
}

// Statement is a single source statement.
//
// Name holds the mnemonic for instructions, the label or constant name,
// or the path for includes. Constants carry their value expression as
// the only operand.
type Statement struct {
	Kind     StmtKind
	Pos      Position
	Name     string
	Operands []Operand
}

// AST defines an Abstract Syntax Tree for CHIP-8 assembly sources.
type AST struct {
	statements []*Statement
}

// NewAST creates a new, empty AST.
func NewAST() *AST {
	return &AST{}
}

// Statements returns the statements in source order.
func (a *AST) Statements() []*Statement {
	return a.statements
}

// Append adds statements to the end of the AST.
func (a *AST) Append(st ...*Statement) {
	a.statements = append(a.statements, st...)
}

// ParseFile parses the given file into the AST.
func (a *AST) ParseFile(filename string) error {
	fd, err := os.Open(filename)
	if err != nil {
		return err
	}
	defer fd.Close()
	return a.Parse(fd, filename)
}

// Parse parses the given stream into the AST. The filename is used to
// provide source context.
func (a *AST) Parse(r io.Reader, filename string) error {
	toks, err := Lex(r, filename)
	if err != nil {
		return err
	}

	p := parser{toks: toks}
	for !p.done() {
		st, err := p.statement()
		if err != nil {
			return err
		}
		if st != nil {
			a.statements = append(a.statements, st)
		}
	}

	return nil
}

// parser turns a token stream into statements.
type parser struct {
	toks []Token
	pos  int
}

// statement reads the next statement. Returns nil for blank lines.
func (p *parser) statement() (*Statement, error) {
	tok := p.next()

	switch tok.Kind {
	case Newline:
		return nil, nil
	case Label:
		return &Statement{Kind: LabelDef, Pos: tok.Pos, Name: tok.Text}, nil
	case Ident:
	default:
		return nil, NewError(tok.Pos, "unexpected %s %s; expected label or instruction", tok.Kind, tok)
	}

	switch strings.ToLower(tok.Text) {
	case "const":
		return p.constant(tok)
	case "include":
		return p.include(tok)
	}

	return p.instruction(tok)
}

// constant reads `const <name> = <expr>`.
func (p *parser) constant(head Token) (*Statement, error) {
	name := p.next()
	switch name.Kind {
	case Ident:
	case Register, Keyword:
		return nil, NewError(name.Pos, "%q is a reserved name", name.String())
	default:
		return nil, NewError(name.Pos, "invalid constant; expected `const <name> = <value>`")
	}

	if p.next().Kind != Assign {
		return nil, NewError(name.Pos, "invalid constant; expected `const <name> = <value>`")
	}

	st := &Statement{Kind: Constant, Pos: head.Pos, Name: name.Text}

	value := Operand{Pos: p.peek().Pos}
	for p.peek().Kind != Newline {
		value.Tokens = append(value.Tokens, p.next())
	}
	p.next()

	if len(value.Tokens) == 0 {
		return nil, NewError(name.Pos, "invalid constant %q; missing value", name.Text)
	}

	st.Operands = []Operand{value}
	return st, nil
}

// include reads `include "<path>"`.
func (p *parser) include(head Token) (*Statement, error) {
	path := p.next()
	if path.Kind != String {
		return nil, NewError(path.Pos, "invalid include path; expected string")
	}

	if end := p.next(); end.Kind != Newline {
		return nil, NewError(end.Pos, "unexpected %s after include path", end.Kind)
	}

	return &Statement{Kind: Include, Pos: head.Pos, Name: path.Text}, nil
}

// instruction reads a mnemonic followed by comma separated operands.
func (p *parser) instruction(head Token) (*Statement, error) {
	st := &Statement{Kind: Instruction, Pos: head.Pos, Name: head.Text}
	if p.peek().Kind == Newline {
		p.next()
		return st, nil
	}

	cur := Operand{Pos: p.peek().Pos}
	for {
		tok := p.next()

		switch tok.Kind {
		case Newline, Comma:
			if len(cur.Tokens) == 0 {
				return nil, NewError(tok.Pos, "missing operand for %q", head.Text)
			}

			st.Operands = append(st.Operands, cur)
			if tok.Kind == Newline {
				return st, nil
			}
			cur = Operand{Pos: p.peek().Pos}

		case Assign, Label:
			return nil, NewError(tok.Pos, "unexpected %s in operand", tok.Kind)

		default:
			cur.Tokens = append(cur.Tokens, tok)
		}
	}
}

func (p *parser) done() bool {
	return p.pos >= len(p.toks)
}

// peek returns the next token. The lexer ends every stream with a
// Newline, which peek also yields once input runs out.
func (p *parser) peek() Token {
	if p.done() {
		return Token{Kind: Newline}
	}
	return p.toks[p.pos]
}

func (p *parser) next() Token {
	tok := p.peek()
	if !p.done() {
		p.pos++
	}
	return tok
}

// String returns a human readable dump of the statements.
func (a *AST) String() string {
	var sb strings.Builder

	for _, st := range a.statements {
		_, file := filepath.Split(st.Pos.File)
		fmt.Fprintf(&sb, "%s:%d:%d %s %q", file, st.Pos.Line, st.Pos.Col, st.Kind, st.Name)

		for i, op := range st.Operands {
			if i == 0 {
				sb.WriteString(" ")
			} else {
				sb.WriteString(", ")
			}

			for j, tok := range op.Tokens {
				if j > 0 {
					sb.WriteString(" ")
				}
				sb.WriteString(tok.String())
			}
		}

		sb.WriteString("\n")
	}

	return sb.String()
}
