package prefix

import (
	"math"
	"strconv"
	"strings"
)

// Expr is a node in an expression tree. The implementations are Const,
// Variable, and *Operation. Expressions are immutable, so they are safe to
// evaluate concurrently.
type Expr interface {
	// Eval evaluates the expression with the given variable values. Eval
	// never fails; invalid operations like 0/0 produce NaN.
	Eval(x, y, z float64) float64
	// String renders the expression in postfix form, e.g. "x 2 +".
	String() string
	// Prefix renders the expression in the fully bracketed prefix form
	// accepted by Parse, e.g. "(+ x 2)".
	Prefix() string

	fmt(b *strings.Builder, prefix bool)
	push(ctx *Context) error
}

// Const is a constant.
type Const float64

func (c Const) Eval(x, y, z float64) float64 {
	return float64(c)
}

func (c Const) String() string {
	return fmtnum(float64(c))
}

func (c Const) Prefix() string {
	return fmtnum(float64(c))
}

func (c Const) fmt(b *strings.Builder, prefix bool) {
	b.WriteString(fmtnum(float64(c)))
}

// fmtnum formats a number so that finite values parse back to the same value.
// Exponents are written without + because + always ends a token.
func fmtnum(v float64) string {
	s := strconv.FormatFloat(v, 'g', -1, 64)
	if math.IsInf(v, 0) || math.IsNaN(v) {
		return s
	}
	return strings.Replace(s, "e+", "e", 1)
}

// Variable is one of the variables x, y, or z. The zero value is x.
type Variable struct {
	// slot is the index of the variable's value in the evaluation arguments.
	slot uint8
}

var (
	X = Variable{0}
	Y = Variable{1}
	Z = Variable{2}
)

var varnames = [...]string{"x", "y", "z"}

var variables = map[string]Variable{
	"x": X,
	"y": Y,
	"z": Z,
}

// Var returns the variable with the given name. Panics if the name is not x,
// y, or z.
func Var(name string) Variable {
	v, ok := variables[name]
	if !ok {
		panic("prefix: unknown variable " + strconv.Quote(name))
	}
	return v
}

// Name returns the variable's name.
func (v Variable) Name() string {
	return varnames[v.slot]
}

func (v Variable) Eval(x, y, z float64) float64 {
	switch v.slot {
	case 1:
		return y
	case 2:
		return z
	default:
		return x
	}
}

func (v Variable) String() string {
	return v.Name()
}

func (v Variable) Prefix() string {
	return v.Name()
}

func (v Variable) fmt(b *strings.Builder, prefix bool) {
	b.WriteString(v.Name())
}

// Operation is an operation applied to an ordered list of arguments.
type Operation struct {
	op   *Op
	args []Expr
}

// Op returns the operation being applied.
func (o *Operation) Op() *Op {
	return o.op
}

// Args returns a copy of the operation's arguments.
func (o *Operation) Args() []Expr {
	return append([]Expr(nil), o.args...)
}

func (o *Operation) Eval(x, y, z float64) float64 {
	var buf [5]float64
	v := buf[:0]
	for _, a := range o.args {
		v = append(v, a.Eval(x, y, z))
	}
	return o.op.f(v)
}

func (o *Operation) String() string {
	var b strings.Builder
	o.fmt(&b, false)
	return b.String()
}

func (o *Operation) Prefix() string {
	var b strings.Builder
	o.fmt(&b, true)
	return b.String()
}

func (o *Operation) fmt(b *strings.Builder, prefix bool) {
	if !prefix {
		for _, a := range o.args {
			a.fmt(b, false)
			b.WriteByte(' ')
		}
		b.WriteString(o.op.symbol)
		return
	}
	b.WriteByte('(')
	b.WriteString(o.op.symbol)
	for _, a := range o.args {
		b.WriteByte(' ')
		a.fmt(b, true)
	}
	b.WriteByte(')')
}

// Vars returns the sorted names of the variables that an expression uses.
func Vars(e Expr) []string {
	seen := make(map[string]bool, len(variables))
	var walk func(Expr)
	walk = func(e Expr) {
		switch e := e.(type) {
		case Variable:
			seen[e.Name()] = true
		case *Operation:
			for _, a := range e.args {
				walk(a)
			}
		}
	}
	walk(e)
	names := make([]string, 0, len(seen))
	for k := range seen {
		names = append(names, k)
	}
	sortstrs(names)
	return names
}

// sortstrs sorts a string slice without using package sort because that has
// reflection and allocation problems.
func sortstrs(names []string) {
	for i := 1; i < len(names); i++ {
		for j := i; j > 0 && names[j] < names[j-1]; j-- {
			names[j], names[j-1] = names[j-1], names[j]
		}
	}
}
