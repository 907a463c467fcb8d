// internal/formula/parser.go
package formula

import (
	"fmt"
	"strconv"
)

// parser is a recursive-descent parser over the formula grammar. Depth is
// bounded by input length, so arbitrarily nested well-formed formulas parse
// without special handling.
type parser struct {
	input string
	pos   int
}

// Parse converts a formula string into its expression tree.
func Parse(expression string) (Expr, error) {
	p := &parser{input: expression}
	expr, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	p.skipSpace()
	if p.pos != len(p.input) {
		return nil, fmt.Errorf("%w: trailing input %q in %q", ErrMalformedExpression, p.input[p.pos:], expression)
	}
	return expr, nil
}

func (p *parser) parseExpr() (Expr, error) {
	p.skipSpace()
	if p.pos >= len(p.input) {
		return nil, fmt.Errorf("%w: unexpected end of input in %q", ErrMalformedExpression, p.input)
	}
	if isNameStart(p.input[p.pos]) {
		return p.parseCall()
	}
	return p.parseNumber()
}

func (p *parser) parseCall() (Expr, error) {
	name := p.scanName()
	op, ok := opNames[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q in %q", ErrUnknownOperation, name, p.input)
	}
	if err := p.expect('('); err != nil {
		return nil, err
	}
	left, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if err := p.expect(','); err != nil {
		return nil, err
	}
	right, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	p.skipSpace()
	if p.pos < len(p.input) && p.input[p.pos] == ',' {
		return nil, fmt.Errorf("%w: %s takes exactly two arguments in %q", ErrMalformedExpression, name, p.input)
	}
	if err := p.expect(')'); err != nil {
		return nil, err
	}
	return call{op: op, left: left, right: right}, nil
}

func (p *parser) parseNumber() (Expr, error) {
	start := p.pos
	if p.pos < len(p.input) && (p.input[p.pos] == '-' || p.input[p.pos] == '+') {
		p.pos++
	}
	for p.pos < len(p.input) && (isDigit(p.input[p.pos]) || p.input[p.pos] == '.') {
		p.pos++
	}
	// Exponent suffix, e.g. 1.5e-3. Models occasionally emit these.
	if p.pos < len(p.input) && (p.input[p.pos] == 'e' || p.input[p.pos] == 'E') {
		mark := p.pos
		p.pos++
		if p.pos < len(p.input) && (p.input[p.pos] == '-' || p.input[p.pos] == '+') {
			p.pos++
		}
		digits := false
		for p.pos < len(p.input) && isDigit(p.input[p.pos]) {
			p.pos++
			digits = true
		}
		if !digits {
			p.pos = mark
		}
	}
	token := p.input[start:p.pos]
	value, err := strconv.ParseFloat(token, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: expected numeral at offset %d in %q", ErrMalformedExpression, start, p.input)
	}
	return number(value), nil
}

func (p *parser) scanName() string {
	start := p.pos
	for p.pos < len(p.input) && isNameChar(p.input[p.pos]) {
		p.pos++
	}
	return p.input[start:p.pos]
}

func (p *parser) expect(c byte) error {
	p.skipSpace()
	if p.pos >= len(p.input) || p.input[p.pos] != c {
		return fmt.Errorf("%w: expected %q at offset %d in %q", ErrMalformedExpression, string(c), p.pos, p.input)
	}
	p.pos++
	return nil
}

func (p *parser) skipSpace() {
	for p.pos < len(p.input) && (p.input[p.pos] == ' ' || p.input[p.pos] == '\t' || p.input[p.pos] == '\n' || p.input[p.pos] == '\r') {
		p.pos++
	}
}

func isNameStart(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || c == '_'
}

func isNameChar(c byte) bool {
	return isNameStart(c) || isDigit(c)
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

// Ops returns the permitted operation names, for prompt assembly and
// diagnostics.
func Ops() []string {
	names := make([]string, 0, len(opNames))
	for name := range opNames {
		names = append(names, name)
	}
	return names
}
