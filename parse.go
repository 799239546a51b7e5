package prefix

import (
	"io"
	"math"
	"strconv"
	"strings"
)

// Expr = num | var | '(' op Expr{arity} ')' | '(' varop Expr { Expr } ')'
// num = ['-'] digits ['.' digits] [('e' | 'E') ['-'] digits]
// var = 'x' | 'y' | 'z'
//
// Tokens are separated by whitespace, brackets, and + - * /. A - stuck
// to the rune after it is not a token by itself, so -5 is a literal and never
// a subtraction; negation of an expression is spelled (negate expr).

// parser holds the state of a single parse.
type parser struct {
	parsectx
	src source
	buf strings.Builder
}

// Parse parses a prefix expression. Unless the Partial option is given, the
// entire input must be a single expression. The given options are applied in
// order.
//
// Errors resulting from invalid input implement InputError. If reading from
// src fails, the read error is returned as is.
func Parse(src io.RuneScanner, opts ...ParseOption) (Expr, error) {
	p := parser{
		parsectx: parsectx{ops: ops},
		src:      source{src: src},
	}
	for _, opt := range opts {
		p.parsectx = opt.parseOption(p.parsectx)
	}
	e, err := p.parseExpr()
	if err == nil {
		if p.partial {
			err = p.rest()
		} else {
			err = p.end()
		}
	}
	if p.src.err != nil {
		return nil, p.src.err
	}
	if err != nil {
		return nil, err
	}
	return e, nil
}

// ParseString is a shortcut to parse an expression from a string.
func ParseString(src string, opts ...ParseOption) (Expr, error) {
	return Parse(strings.NewReader(src), opts...)
}

// parseExpr parses a constant, a variable, or a bracketed operation.
func (p *parser) parseExpr() (Expr, error) {
	tok, err := p.next(want{kind: wantExpr})
	if err != nil {
		return nil, err
	}
	if tok != "(" {
		return p.leaf(tok)
	}
	return p.parseOp()
}

// parseOp parses an operation following its open bracket, up to and including
// the close bracket.
func (p *parser) parseOp() (Expr, error) {
	sym, err := p.next(want{kind: wantOp})
	if err != nil {
		return nil, err
	}
	op := p.ops[sym]
	args, err := p.parseArgs(op)
	if err != nil {
		return nil, err
	}
	return op.apply(args), nil
}

// parseArgs parses the arguments to op and the close bracket that ends them.
func (p *parser) parseArgs(op *Op) ([]Expr, error) {
	variadic := op.arity == Variadic
	var args []Expr
	if !variadic {
		args = make([]Expr, 0, op.arity)
	}
	for i := 0; variadic || i < op.arity; i++ {
		tok, err := p.next(want{kind: wantArg, arg: i + 1, variadic: variadic, op: op.symbol})
		if err != nil {
			return nil, err
		}
		if tok == ")" {
			// Only variadic argument lists get here.
			if len(args) == 0 {
				return nil, &ArityError{Col: p.src.pos(), Op: op.symbol, Expected: "argument 1", Found: tok}
			}
			return args, nil
		}
		var arg Expr
		if tok == "(" {
			arg, err = p.parseOp()
		} else {
			arg, err = p.leaf(tok)
		}
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
	}
	if _, err := p.next(want{kind: wantClose, op: op.symbol}); err != nil {
		return nil, err
	}
	return args, nil
}

// leaf resolves a token as a constant or a variable.
func (p *parser) leaf(tok string) (Expr, error) {
	if isNumber(tok) {
		// isNumber accepts a subset of ParseFloat's syntax, so the only
		// possible error is a range error. Underflow to zero is fine, but
		// infinities would not render as something that parses.
		v, err := strconv.ParseFloat(tok, 64)
		if err != nil && math.IsInf(v, 0) {
			return nil, &NumberError{Col: p.src.pos(), Found: tok}
		}
		return Const(v), nil
	}
	if v, ok := variables[tok]; ok {
		return v, nil
	}
	return nil, &VariableError{Col: p.src.pos(), Found: tok}
}

// rest leaves the input after the expression in the reader. A - glued to the
// end of a top-level leaf, as in "x- 1", cannot be given back, so it is
// reported as trailing input.
func (p *parser) rest() error {
	if p.src.release() {
		return nil
	}
	b := p.src.back
	return &TrailingError{Col: p.src.pos(), Found: string(b[len(b)-1])}
}

// end checks that no input remains after the expression.
func (p *parser) end() error {
	if !p.src.hasNext() {
		return nil
	}
	col := p.src.pos()
	tok, err := p.next(want{kind: wantEnd})
	if err != nil {
		return err
	}
	return &TrailingError{Col: col, Found: tok}
}
