package prefix

import (
	"math"
	"math/big"
	"strconv"
	"strings"
)

// Context is a context for evaluating expressions with arbitrary precision.
// It is not safe to use a Context concurrently.
type Context struct {
	stack []*big.Float
	vars  [3]*big.Float
	prec  uint
	err   error
}

// ContextOption changes a setting of a Context.
type ContextOption interface {
	setup(ctx *Context)
}

type (
	varopt struct {
		slot int
		val  *big.Float
	}
	varsopt [3]*big.Float
	precopt uint
)

func (o varopt) setup(ctx *Context) {
	ctx.vars[o.slot] = ctx.value(o.val)
}

func (o varsopt) setup(ctx *Context) {
	for i, v := range o {
		if v != nil {
			ctx.vars[i] = ctx.value(v)
		}
	}
}

// Precision is applied before any other option, in Clone.
func (precopt) setup(ctx *Context) {}

// SetVar binds a variable. Panics if the name is not x, y, or z.
func SetVar(name string, val *big.Float) ContextOption {
	return varopt{slot(name), val}
}

// SetVars binds all three variables at once. Nil values leave the
// corresponding variable as it was.
func SetVars(x, y, z *big.Float) ContextOption {
	return varsopt{x, y, z}
}

// Prec sets the precision of calculations in bits. If given more than once,
// the last one applies.
func Prec(prec uint) ContextOption {
	return precopt(prec)
}

// NewContext creates an evaluation context. The default precision is 64 bits,
// and variables which are never set evaluate to zero.
func NewContext(opts ...ContextOption) *Context {
	return (&Context{prec: 64}).Clone(opts...)
}

// slot gets the index of a variable. Panics if the name is not a variable.
func slot(name string) int {
	switch name {
	case "x":
		return 0
	case "y":
		return 1
	case "z":
		return 2
	default:
		panic("prefix: unknown variable " + strconv.Quote(name))
	}
}

// Eval evaluates an expression and returns the result. If an operation has
// no representable result, e.g. 0/0, then the result is nil and ctx.Err
// returns the error.
func (ctx *Context) Eval(e Expr) *big.Float {
	if len(ctx.stack) > 1 {
		panic("prefix: Eval during Eval")
	}
	if len(ctx.stack) == 1 {
		// The caller may still hold the previous result.
		ctx.stack[0] = nil
	}
	ctx.stack = ctx.stack[:0]
	if ctx.err = e.push(ctx); ctx.err != nil {
		ctx.stack = ctx.stack[:0]
		return nil
	}
	return ctx.Result()
}

// Result returns the value of the last expression evaluated with ctx, or nil
// if that evaluation failed. Panics if nothing has been evaluated yet.
func (ctx *Context) Result() *big.Float {
	if ctx.err != nil {
		return nil
	}
	switch len(ctx.stack) {
	case 0:
		panic("prefix: Context.Result called before evaluating any expression")
	case 1:
		return ctx.stack[0]
	default:
		panic("prefix: inconsistent stack: " + strconv.Itoa(len(ctx.stack)) + " items (bad tree?)")
	}
}

// Err returns the error from the last evaluation with ctx, if any.
func (ctx *Context) Err() error {
	return ctx.err
}

// Set sets the value of a variable. Returns ctx for chaining. Panics if the
// name is not x, y, or z.
func (ctx *Context) Set(name string, value *big.Float) *Context {
	ctx.vars[slot(name)] = ctx.value(value)
	return ctx
}

// Lookup returns a copy of the value of a variable. If the variable is unset,
// the result is nil.
func (ctx *Context) Lookup(name string) *big.Float {
	v := ctx.vars[slot(name)]
	if v == nil {
		return nil
	}
	return new(big.Float).Copy(v)
}

// Prec returns the precision of calculations in bits.
func (ctx *Context) Prec() uint {
	return ctx.prec
}

// Clone copies ctx and applies options to the copy. Variables are copied at
// the new precision. The copy has no result.
func (ctx *Context) Clone(opts ...ContextOption) *Context {
	n := &Context{prec: ctx.prec}
	for _, opt := range opts {
		if p, ok := opt.(precopt); ok {
			n.prec = uint(p)
		}
	}
	for i, v := range ctx.vars {
		if v != nil {
			n.vars[i] = n.value(v)
		}
	}
	for _, opt := range opts {
		if opt != nil {
			opt.setup(n)
		}
	}
	return n
}

// value returns a copy of v at the context's precision.
func (ctx *Context) value(v *big.Float) *big.Float {
	return new(big.Float).SetPrec(ctx.prec).Set(v)
}

// push grows the stack by one and returns the new top, reusing a previously
// allocated value when one is available.
func (ctx *Context) push() *big.Float {
	n := len(ctx.stack)
	if n < cap(ctx.stack) {
		ctx.stack = ctx.stack[:n+1]
	} else {
		ctx.stack = append(ctx.stack, nil)
	}
	if ctx.stack[n] == nil {
		ctx.stack[n] = new(big.Float).SetPrec(ctx.prec)
	}
	return ctx.stack[n]
}

func (c Const) push(ctx *Context) error {
	v := float64(c)
	if math.IsNaN(v) {
		return &DomainError{Func: "const"}
	}
	ctx.push().SetFloat64(v)
	return nil
}

func (v Variable) push(ctx *Context) error {
	r := ctx.push()
	x := ctx.vars[v.slot]
	if x == nil {
		r.SetInt64(0)
		return nil
	}
	r.Set(x)
	return nil
}

func (o *Operation) push(ctx *Context) (err error) {
	r := ctx.push()
	k := len(ctx.stack)
	for _, a := range o.args {
		if err := a.push(ctx); err != nil {
			return err
		}
	}
	invoc := ctx.stack[k:len(ctx.stack):len(ctx.stack)]
	defer func() {
		x := recover()
		if x == nil {
			return
		}
		if _, ok := x.(big.ErrNaN); !ok {
			panic(x)
		}
		args := make([]*big.Float, len(invoc))
		for i, v := range invoc {
			args[i] = new(big.Float).Copy(v)
		}
		err = &DomainError{Func: o.op.symbol, Args: args}
	}()
	o.op.big(r, invoc)
	ctx.stack = ctx.stack[:k]
	return nil
}

// DomainError is an error returned when an operation is applied to arguments
// for which it has no value, e.g. 0/0.
type DomainError struct {
	// Func is the symbol of the operation.
	Func string
	// Args are the values of the arguments.
	Args []*big.Float
}

func (err *DomainError) Error() string {
	var b strings.Builder
	b.WriteString("arguments outside domain of ")
	b.WriteString(err.Func)
	for i, a := range err.Args {
		if i == 0 {
			b.WriteString(": ")
		} else {
			b.WriteString(", ")
		}
		b.WriteString(a.Text('g', 10))
	}
	return b.String()
}
