package eval

import (
	"fmt"
)

// apply performs the given binary operation on operands a and b
// and returns the result. Returns an error if something went wrong.
//
// Operands are expected to be of the types int64 or string. Only +
// accepts strings; it concatenates them, or appends a character code.
//
// Supported operations are: + - * / % << >> & | ^
func apply(op string, a, b interface{}) (interface{}, error) {
	if op == "+" {
		return add(a, b)
	}

	va, oka := a.(int64)
	vb, okb := b.(int64)
	if !oka || !okb {
		return nil, fmt.Errorf("can not evaluate %T %s %T", a, op, b)
	}

	switch op {
	case "-":
		return va - vb, nil
	case "*":
		return va * vb, nil
	case "/", "%":
		if vb == 0 {
			return nil, fmt.Errorf("division by zero")
		}
		if op == "/" {
			return va / vb, nil
		}
		return va % vb, nil
	case "<<":
		if vb < 0 {
			return nil, fmt.Errorf("negative shift count %d", vb)
		}
		return va << uint64(vb), nil
	case ">>":
		if vb < 0 {
			return nil, fmt.Errorf("negative shift count %d", vb)
		}
		return va >> uint64(vb), nil
	case "&":
		return va & vb, nil
	case "|":
		return va | vb, nil
	case "^":
		return va ^ vb, nil
	}

	return nil, fmt.Errorf("unrecognized operation %q", op)
}

// applyUnary performs the given unary operation on a.
func applyUnary(op string, a interface{}) (interface{}, error) {
	va, ok := a.(int64)
	if !ok {
		return nil, fmt.Errorf("can not evaluate %s%T", op, a)
	}

	switch op {
	case "-":
		return -va, nil
	case "+":
		return va, nil
	case "~":
		return ^va, nil
	}

	return nil, fmt.Errorf("unrecognized operation %q", op)
}

// add returns a + b
func add(a, b interface{}) (interface{}, error) {
	switch va := a.(type) {
	case int64:
		switch vb := b.(type) {
		case int64:
			return va + vb, nil
		case string:
			return string(rune(va)) + vb, nil
		}
	case string:
		switch vb := b.(type) {
		case int64:
			return va + string(rune(vb)), nil
		case string:
			return va + vb, nil
		}
	}
	return nil, fmt.Errorf("can not evaluate %T + %T", a, b)
}
