package prefix

import (
	"math"
	"math/big"
	"strconv"

	"github.com/zephyrtronium/bigfloat"
)

// Variadic is the arity of operations that accept one or more arguments.
const Variadic = -1

// Op is a built-in operation. The set of operations is fixed.
type Op struct {
	symbol string
	arity  int
	f      func(v []float64) float64
	// big sets r to the result without modifying v. It panics with
	// big.ErrNaN for operations that would produce NaN.
	big func(r *big.Float, v []*big.Float)
}

// Symbol returns the name of the operation as written in expressions.
func (op *Op) Symbol() string {
	return op.symbol
}

// Arity returns the number of arguments the operation takes, or Variadic.
func (op *Op) Arity() int {
	return op.arity
}

// CanCall returns whether the operation can be applied to n arguments.
func (op *Op) CanCall(n int) bool {
	if op.arity == Variadic {
		return n > 0
	}
	return n == op.arity
}

func (op *Op) apply(args []Expr) *Operation {
	return &Operation{op: op, args: args}
}

var ops = table(
	&Op{"+", 2, func(v []float64) float64 { return v[0] + v[1] }, func(r *big.Float, v []*big.Float) { r.Add(v[0], v[1]) }},
	&Op{"-", 2, func(v []float64) float64 { return v[0] - v[1] }, func(r *big.Float, v []*big.Float) { r.Sub(v[0], v[1]) }},
	&Op{"*", 2, func(v []float64) float64 { return v[0] * v[1] }, func(r *big.Float, v []*big.Float) { r.Mul(v[0], v[1]) }},
	&Op{"/", 2, func(v []float64) float64 { return v[0] / v[1] }, func(r *big.Float, v []*big.Float) { r.Quo(v[0], v[1]) }},
	&Op{"negate", 1, func(v []float64) float64 { return -v[0] }, func(r *big.Float, v []*big.Float) { r.Neg(v[0]) }},
	&Op{"avg5", 5, mean, bigmean},
	&Op{"med3", 3, med3, bigmed3},
	&Op{"arith-mean", Variadic, mean, bigmean},
	&Op{"geom-mean", Variadic, geomean, biggeomean},
	&Op{"harm-mean", Variadic, harmean, bigharmean},
)

func table(list ...*Op) map[string]*Op {
	m := make(map[string]*Op, len(list))
	for _, op := range list {
		m[op.symbol] = op
	}
	return m
}

// Lookup returns the operation with the given symbol, or nil if there is none.
func Lookup(symbol string) *Op {
	return ops[symbol]
}

// Operators returns the sorted symbols of all operations.
func Operators() []string {
	r := make([]string, 0, len(ops))
	for k := range ops {
		r = append(r, k)
	}
	sortstrs(r)
	return r
}

// Apply applies the operation with the given symbol to arguments. The error
// is an *OperationError if there is no such operation or an *ArityError if it
// cannot take len(args) arguments.
func Apply(symbol string, args ...Expr) (*Operation, error) {
	op := ops[symbol]
	if op == nil {
		return nil, &OperationError{Col: -1, Found: symbol}
	}
	if !op.CanCall(len(args)) {
		want := strconv.Itoa(op.arity) + " arguments"
		if op.arity == Variadic {
			want = "at least 1 argument"
		}
		return nil, &ArityError{Col: -1, Op: symbol, Expected: want, Found: strconv.Itoa(len(args)) + " arguments"}
	}
	for _, a := range args {
		if a == nil {
			panic("prefix: nil argument to " + symbol)
		}
	}
	return op.apply(append([]Expr(nil), args...)), nil
}

func must(symbol string, args ...Expr) *Operation {
	o, err := Apply(symbol, args...)
	if err != nil {
		panic("prefix: " + err.Error())
	}
	return o
}

// NewConst returns a constant expression.
func NewConst(v float64) Const {
	return Const(v)
}

// Add returns a + b.
func Add(a, b Expr) *Operation { return must("+", a, b) }

// Subtract returns a - b.
func Subtract(a, b Expr) *Operation { return must("-", a, b) }

// Multiply returns a * b.
func Multiply(a, b Expr) *Operation { return must("*", a, b) }

// Divide returns a / b.
func Divide(a, b Expr) *Operation { return must("/", a, b) }

// Negate returns -a.
func Negate(a Expr) *Operation { return must("negate", a) }

// Avg5 returns the mean of exactly five expressions.
func Avg5(a, b, c, d, e Expr) *Operation { return must("avg5", a, b, c, d, e) }

// Med3 returns the median of three expressions.
func Med3(a, b, c Expr) *Operation { return must("med3", a, b, c) }

// ArithMean returns the arithmetic mean of its arguments. Panics if there are
// none.
func ArithMean(args ...Expr) *Operation { return must("arith-mean", args...) }

// GeomMean returns the geometric mean of the absolute values of its arguments.
// Panics if there are none.
func GeomMean(args ...Expr) *Operation { return must("geom-mean", args...) }

// HarmMean returns the harmonic mean of its arguments. Panics if there are
// none.
func HarmMean(args ...Expr) *Operation { return must("harm-mean", args...) }

func mean(v []float64) float64 {
	var s float64
	for _, x := range v {
		s += x
	}
	return s / float64(len(v))
}

func geomean(v []float64) float64 {
	p := 1.0
	for _, x := range v {
		p *= x
	}
	return math.Pow(math.Abs(p), 1/float64(len(v)))
}

func harmean(v []float64) float64 {
	var s float64
	for _, x := range v {
		s += 1 / x
	}
	return float64(len(v)) / s
}

// larger and smaller compare the way the median is defined, so that NaN
// arguments do not always win.
func larger(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}

func smaller(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}

func med3(v []float64) float64 {
	a, b, c := v[0], v[1], v[2]
	return larger(smaller(a, c), larger(smaller(a, b), smaller(b, c)))
}

func bigmean(r *big.Float, v []*big.Float) {
	r.SetInt64(0)
	for _, x := range v {
		r.Add(r, x)
	}
	var n big.Float
	n.SetInt64(int64(len(v)))
	r.Quo(r, &n)
}

func biggeomean(r *big.Float, v []*big.Float) {
	p := new(big.Float).SetPrec(r.Prec()).SetInt64(1)
	for _, x := range v {
		p.Mul(p, x)
	}
	p.Abs(p)
	switch {
	case p.IsInf():
		r.SetInf(false)
	case p.Sign() == 0:
		r.SetInt64(0)
	default:
		e := new(big.Float).SetPrec(r.Prec()).SetInt64(1)
		e.Quo(e, new(big.Float).SetInt64(int64(len(v))))
		bigfloat.Pow(r, p, e)
	}
}

func bigharmean(r *big.Float, v []*big.Float) {
	var s, q, one big.Float
	s.SetPrec(r.Prec())
	q.SetPrec(r.Prec())
	one.SetInt64(1)
	for _, x := range v {
		s.Add(&s, q.Quo(&one, x))
	}
	r.SetInt64(int64(len(v)))
	r.Quo(r, &s)
}

func bigmed3(r *big.Float, v []*big.Float) {
	a, b, c := v[0], v[1], v[2]
	r.Set(biglarger(bigsmaller(a, c), biglarger(bigsmaller(a, b), bigsmaller(b, c))))
}

func biglarger(a, b *big.Float) *big.Float {
	if a.Cmp(b) > 0 {
		return a
	}
	return b
}

func bigsmaller(a, b *big.Float) *big.Float {
	if a.Cmp(b) < 0 {
		return a
	}
	return b
}
