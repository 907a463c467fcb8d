// internal/formula/formula.go
// Package formula parses and evaluates the restricted nested-call arithmetic
// language that models use to express numeric answers. The instruction set is
// closed: six named binary operations and decimal numerals, nothing else.
package formula

import (
	"errors"
	"fmt"
	"math"
)

// Op identifies one of the six permitted binary operations.
type Op int

const (
	OpAdd Op = iota
	OpSubtract
	OpMultiply
	OpDivide
	OpExp
	OpGreater
)

// opNames maps operation names as they appear in formulas to their Op value.
var opNames = map[string]Op{
	"add":      OpAdd,
	"subtract": OpSubtract,
	"multiply": OpMultiply,
	"divide":   OpDivide,
	"exp":      OpExp,
	"greater":  OpGreater,
}

// String returns the formula-level name of the operation.
func (o Op) String() string {
	switch o {
	case OpAdd:
		return "add"
	case OpSubtract:
		return "subtract"
	case OpMultiply:
		return "multiply"
	case OpDivide:
		return "divide"
	case OpExp:
		return "exp"
	case OpGreater:
		return "greater"
	default:
		return fmt.Sprintf("op(%d)", int(o))
	}
}

var (
	// ErrMalformedExpression indicates a formula that does not fit the
	// grammar: bad syntax, wrong argument count, or trailing garbage.
	ErrMalformedExpression = errors.New("malformed expression")
	// ErrUnknownOperation indicates a call to a name outside the
	// six-operation set.
	ErrUnknownOperation = errors.New("unknown operation")
)

// Expr is a node in a parsed formula: either a numeral or a binary call.
type Expr interface {
	value() float64
}

type number float64

func (n number) value() float64 { return float64(n) }

type call struct {
	op          Op
	left, right Expr
}

func (c call) value() float64 {
	x := c.left.value()
	y := c.right.value()
	switch c.op {
	case OpAdd:
		return x + y
	case OpSubtract:
		return x - y
	case OpMultiply:
		return x * y
	case OpDivide:
		// Division by zero yields +Inf regardless of the dividend's
		// sign. This mirrors the answer corpus the harness scores
		// against.
		if y == 0 {
			return math.Inf(1)
		}
		return x / y
	case OpExp:
		// math.Pow returns NaN for a negative base with a fractional
		// exponent; NaN propagates and is rejected downstream when the
		// formatted answer fails to parse.
		return math.Pow(x, y)
	case OpGreater:
		if x > y {
			return 1
		}
		return 0
	default:
		return math.NaN()
	}
}

// Evaluate parses a formula and returns its numeric value. Formulas are
// numerals or calls of the form name(arg1, arg2), nested to arbitrary depth;
// whitespace is insignificant.
func Evaluate(expression string) (float64, error) {
	expr, err := Parse(expression)
	if err != nil {
		return 0, err
	}
	return expr.value(), nil
}
