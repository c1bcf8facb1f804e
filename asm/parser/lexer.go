package parser

import (
	"bytes"
	"io"
	"strconv"
	"strings"
	"unicode/utf8"
)

// lexer splits CHIP-8 assembly source into tokens.
type lexer struct {
	src  []byte
	pos  Position // Position of the next unread byte.
	toks []Token
}

// Lex reads all of r and returns its tokens. Every statement, including
// the last one, is terminated by a Newline token. The filename is only
// used for positions.
func Lex(r io.Reader, filename string) ([]Token, error) {
	src, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	l := &lexer{
		src: src,
		pos: Position{File: filename, Line: 1, Col: 1},
	}

	if err := l.run(); err != nil {
		return nil, err
	}

	return l.toks, nil
}

func (l *lexer) run() error {
	for !l.done() {
		start := l.pos
		c := l.peek()

		switch {
		case c == '\n':
			l.next()
			l.emit(Token{Kind: Newline, Pos: start, Text: "\n"})

		case c == ' ' || c == '\t' || c == '\r':
			l.next()

		case c == ';':
			for !l.done() && l.peek() != '\n' {
				l.next()
			}

		case c == ',':
			l.next()
			l.emit(Token{Kind: Comma, Pos: start, Text: ","})

		case c == '=':
			l.next()
			l.emit(Token{Kind: Assign, Pos: start, Text: "="})

		case c == '(':
			l.next()
			l.emit(Token{Kind: LParen, Pos: start, Text: "("})

		case c == ')':
			l.next()
			l.emit(Token{Kind: RParen, Pos: start, Text: ")"})

		case c == ':':
			if err := l.label(); err != nil {
				return err
			}

		case c == '$':
			if !l.accept("$$") {
				return NewError(start, "unexpected '$'; expected $$")
			}
			l.emit(Token{Kind: Here, Pos: start, Text: "$$"})

		case c == '[':
			if !l.accept("[I]") && !l.accept("[i]") {
				return NewError(start, "invalid indirect operand; expected [I]")
			}
			l.emit(Token{Kind: Keyword, Pos: start, Text: "[I]"})

		case c == '"':
			if err := l.str(); err != nil {
				return err
			}

		case c == '\'':
			if err := l.char(); err != nil {
				return err
			}

		case isDigit(c):
			if err := l.number(); err != nil {
				return err
			}

		case isNameStart(c):
			l.emit(classifyWord(start, l.word()))

		default:
			if err := l.operator(); err != nil {
				return err
			}
		}
	}

	if n := len(l.toks); n > 0 && l.toks[n-1].Kind != Newline {
		l.emit(Token{Kind: Newline, Pos: l.pos, Text: "\n"})
	}

	return nil
}

// label reads a ':name' label definition.
func (l *lexer) label() error {
	start := l.pos
	l.next()

	if l.done() || !isNameStart(l.peek()) {
		return NewError(start, "invalid label definition; expected name")
	}

	name := l.word()
	if IsReserved(name) {
		return NewError(start, "%q is a reserved name", name)
	}

	l.emit(Token{Kind: Label, Pos: start, Text: name})
	return nil
}

// number reads an integer literal, with an optional base prefix.
func (l *lexer) number() error {
	start := l.pos
	text := l.span(func(c byte) bool {
		return c == '#' || c == '_' || isDigit(c) || isAlpha(c)
	})

	v, err := ParseNumber(text)
	if err != nil {
		return NewError(start, "%v", err)
	}

	l.emit(Token{Kind: Number, Pos: start, Text: text, Num: v})
	return nil
}

// str reads a double quoted string literal with Go escapes.
func (l *lexer) str() error {
	start := l.pos

	lit, err := l.quoted('"')
	if err != nil {
		return err
	}

	v, err := strconv.Unquote(lit)
	if err != nil {
		return NewError(start, "invalid string literal %s", lit)
	}

	l.emit(Token{Kind: String, Pos: start, Text: v})
	return nil
}

// char reads a single quoted character literal. It yields a Number token.
func (l *lexer) char() error {
	start := l.pos

	lit, err := l.quoted('\'')
	if err != nil {
		return err
	}

	v, err := strconv.Unquote(lit)
	if err != nil || utf8.RuneCountInString(v) != 1 {
		return NewError(start, "invalid character literal %s", lit)
	}

	r, _ := utf8.DecodeRuneInString(v)
	l.emit(Token{Kind: Number, Pos: start, Text: lit, Num: int64(r)})
	return nil
}

// quoted returns the literal from the opening quote up to and including
// the matching closing quote. Literals end at the line.
func (l *lexer) quoted(q byte) (string, error) {
	start := l.pos
	from := l.pos.Offset
	l.next()

	var escaped bool
	for {
		if l.done() || l.peek() == '\n' {
			return "", NewError(start, "unterminated literal")
		}

		c := l.next()
		switch {
		case escaped:
			escaped = false
		case c == '\\':
			escaped = true
		case c == q:
			return string(l.src[from:l.pos.Offset]), nil
		}
	}
}

// operator reads one of + - * / % & | ^ ~ << >>.
func (l *lexer) operator() error {
	start := l.pos

	switch {
	case l.accept("<<"), l.accept(">>"):
		l.emit(Token{Kind: Operator, Pos: start, Text: string(l.src[start.Offset:l.pos.Offset])})
		return nil
	case strings.IndexByte("+-*/%&|^~", l.peek()) >= 0:
		l.emit(Token{Kind: Operator, Pos: start, Text: string(l.next())})
		return nil
	}

	return NewError(start, "unexpected character %q", l.peek())
}

// word reads a name made of letters, digits, '_' and '.'.
func (l *lexer) word() string {
	return l.span(func(c byte) bool {
		return c == '_' || c == '.' || isAlpha(c) || isDigit(c)
	})
}

// span reads bytes while ok holds and returns them.
func (l *lexer) span(ok func(byte) bool) string {
	from := l.pos.Offset
	for !l.done() && ok(l.peek()) {
		l.next()
	}
	return string(l.src[from:l.pos.Offset])
}

// accept consumes s if the input continues with it.
func (l *lexer) accept(s string) bool {
	if !bytes.HasPrefix(l.src[l.pos.Offset:], []byte(s)) {
		return false
	}
	for range s {
		l.next()
	}
	return true
}

func (l *lexer) emit(t Token) {
	l.toks = append(l.toks, t)
}

func (l *lexer) done() bool {
	return l.pos.Offset >= len(l.src)
}

func (l *lexer) peek() byte {
	return l.src[l.pos.Offset]
}

// next consumes one byte and advances the position.
func (l *lexer) next() byte {
	c := l.src[l.pos.Offset]
	l.pos.Offset++

	if c == '\n' {
		l.pos.Line++
		l.pos.Col = 1
	} else {
		l.pos.Col++
	}

	return c
}

func isNameStart(c byte) bool {
	return c == '_' || c == '.' || isAlpha(c)
}

func isAlpha(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}
