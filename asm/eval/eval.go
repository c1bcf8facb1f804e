// Package eval facilitates compile-time evaluation of operand expressions.
// This covers integer arithmetic and bitwise operations.
package eval

import (
	"strings"

	"github.com/hexaflex/chip8/asm/parser"
)

// ReferenceFunc finds the address or value for a given reference.
// This can be a label or constant. "$$" names the current address.
type ReferenceFunc func(string) (int, error)

// Evaluate evaluates the given operand expression and returns its value
// as a single Number or String token.
func Evaluate(tokens []parser.Token, resolve ReferenceFunc) (parser.Token, error) {
	if len(tokens) == 0 {
		return parser.Token{}, NewError(parser.Position{}, "invalid expression; no value")
	}

	e := evaluator{toks: tokens, resolve: resolve}

	v, err := e.binary(1)
	if err != nil {
		return parser.Token{}, err
	}

	if !e.done() {
		tok := e.peek()
		if tok.Kind == parser.RParen {
			return parser.Token{}, NewError(tok.Pos, "mismatched closing parenthesis")
		}
		return parser.Token{}, NewError(tok.Pos, "unexpected %s %s in expression", tok.Kind, tok)
	}

	pos := tokens[0].Pos
	switch tv := v.(type) {
	case int64:
		return parser.Token{Kind: parser.Number, Pos: pos, Num: tv}, nil
	case string:
		return parser.Token{Kind: parser.String, Pos: pos, Text: tv}, nil
	}

	return parser.Token{}, NewError(pos, "expression evaluates to invalid type %T", v)
}

// evaluator evaluates a token list by precedence climbing.
type evaluator struct {
	toks    []parser.Token
	pos     int
	resolve ReferenceFunc
}

// precedence returns the binding strength of binary operator op, or 0
// if op is not a binary operator. All binary operators are left-associative.
func precedence(op string) int {
	switch op {
	case "|":
		return 1
	case "^":
		return 2
	case "&":
		return 3
	case "<<", ">>":
		return 4
	case "+", "-":
		return 5
	case "*", "/", "%":
		return 6
	}
	return 0
}

// binary evaluates operations whose precedence is at least min.
func (e *evaluator) binary(min int) (interface{}, error) {
	lhs, err := e.unary()
	if err != nil {
		return nil, err
	}

	for !e.done() {
		tok := e.peek()
		if tok.Kind != parser.Operator {
			break
		}

		prec := precedence(tok.Text)
		if prec < min {
			break
		}
		e.pos++

		rhs, err := e.binary(prec + 1)
		if err != nil {
			return nil, err
		}

		lhs, err = apply(tok.Text, lhs, rhs)
		if err != nil {
			return nil, NewError(tok.Pos, "%v", err)
		}
	}

	return lhs, nil
}

// unary evaluates a prefix operator chain and its operand.
func (e *evaluator) unary() (interface{}, error) {
	if e.done() {
		return nil, NewError(e.last().Pos, "invalid expression; missing operand")
	}

	tok := e.peek()
	if tok.Kind != parser.Operator {
		return e.operand()
	}

	switch tok.Text {
	case "-", "+", "~":
	default:
		return nil, NewError(tok.Pos, "missing operand for operation %q", tok.Text)
	}
	e.pos++

	v, err := e.unary()
	if err != nil {
		return nil, err
	}

	v, err = applyUnary(tok.Text, v)
	if err != nil {
		return nil, NewError(tok.Pos, "%v", err)
	}

	return v, nil
}

// operand evaluates a literal, a reference or a parenthesized expression.
func (e *evaluator) operand() (interface{}, error) {
	tok := e.peek()
	e.pos++

	switch tok.Kind {
	case parser.Number:
		return tok.Num, nil

	case parser.String:
		return tok.Text, nil

	case parser.Ident, parser.Here:
		name := strings.ToLower(tok.Text)
		value, err := e.resolve(name)
		if err != nil {
			return nil, NewError(tok.Pos, "%v", err)
		}
		return int64(value), nil

	case parser.LParen:
		v, err := e.binary(1)
		if err != nil {
			return nil, err
		}

		if e.done() || e.peek().Kind != parser.RParen {
			return nil, NewError(tok.Pos, "mismatched opening parenthesis")
		}
		e.pos++
		return v, nil
	}

	return nil, NewError(tok.Pos, "unexpected %s %s in expression", tok.Kind, tok)
}

func (e *evaluator) done() bool {
	return e.pos >= len(e.toks)
}

func (e *evaluator) peek() parser.Token {
	return e.toks[e.pos]
}

func (e *evaluator) last() parser.Token {
	return e.toks[len(e.toks)-1]
}
