package prefix_test

import (
	"fmt"
	"math"
	"math/rand"
	"reflect"
	"strings"
	"testing"

	"github.com/zephyrtronium/prefix"
)

func TestEval(t *testing.T) {
	type vc struct {
		x, y, z float64
		r       float64
	}
	cases := []struct {
		name string
		src  string
		r    []vc
	}{
		{"num", "1", []vc{{0, 0, 0, 1}, {5, 6, 7, 1}}},
		{"negnum", "-5", []vc{{0, 0, 0, -5}}},
		{"x", "x", []vc{{4, 0, 0, 4}, {5, 1, 2, 5}}},
		{"y", "y", []vc{{4, 0, 0, 0}, {5, 1, 2, 1}}},
		{"z", "z", []vc{{4, 0, 0, 0}, {5, 1, 2, 2}}},
		{"add", "(+ x 2)", []vc{{5, 0, 0, 7}}},
		{"addneg", "(+ x -5)", []vc{{10, 0, 0, 5}}},
		{"sub", "(- x y)", []vc{{5, 7, 0, -2}}},
		{"mul", "(* (- x 3) y)", []vc{{5, 2, 0, 4}}},
		{"div", "(/ x y)", []vc{{1, 4, 0, 0.25}}},
		{"negate", "(negate x)", []vc{{5, 0, 0, -5}, {-5, 0, 0, 5}}},
		{"avg5", "(avg5 1 2 3 4 x)", []vc{{5, 0, 0, 3}, {10, 0, 0, 4}}},
		{"med3", "(med3 x y z)", []vc{
			{1, 2, 3, 2},
			{3, 2, 1, 2},
			{2, 3, 1, 2},
			{1, 3, 2, 2},
			{5, 5, 1, 5},
		}},
		{"arith-mean", "(arith-mean 1 2 3 4)", []vc{{0, 0, 0, 2.5}}},
		{"arith-mean1", "(arith-mean x)", []vc{{7, 0, 0, 7}}},
		{"geom-mean", "(geom-mean 2 8)", []vc{{0, 0, 0, 4}}},
		{"geom-mean-abs", "(geom-mean x -8)", []vc{{2, 0, 0, 4}}},
		{"geom-mean3", "(geom-mean x y z)", []vc{{1, 3, 9, 3}}},
		{"harm-mean", "(harm-mean 1 4 4)", []vc{{0, 0, 0, 2}}},
		{"harm-mean-zero", "(harm-mean x 1)", []vc{{0, 0, 0, 0}}},
		{"nested", "(arith-mean (med3 x y z) (negate (/ x 2)) (avg5 x x x x x))", []vc{{4, 1, 9, 2}}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			a, err := prefix.ParseString(c.src)
			if err != nil {
				t.Fatal(c.src, "failed to parse:", err)
			}
			for _, v := range c.r {
				if r := a.Eval(v.x, v.y, v.z); math.Abs(r-v.r) > 1e-12 {
					t.Errorf("wrong result for x=%g y=%g z=%g: want %g, got %g", v.x, v.y, v.z, v.r, r)
				}
			}
		})
	}
}

func TestEvalSpecial(t *testing.T) {
	cases := []struct {
		name string
		src  string
		want func(float64) bool
	}{
		{"div-zero", "(/ x 0)", func(r float64) bool { return math.IsInf(r, 1) }},
		{"div-negzero", "(/ x -0)", func(r float64) bool { return math.IsInf(r, -1) }},
		{"zero-zero", "(/ 0 0)", math.IsNaN},
		{"harm-cancel", "(harm-mean 1 -1)", func(r float64) bool { return math.IsInf(r, 0) }},
		{"overflow", "(* 1e308 10)", func(r float64) bool { return math.IsInf(r, 1) }},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			a, err := prefix.ParseString(c.src)
			if err != nil {
				t.Fatalf("%q failed to parse: %v", c.src, err)
			}
			if r := a.Eval(1, 0, 0); !c.want(r) {
				t.Errorf("%q gave wrong result %g", c.src, r)
			}
		})
	}
}

func TestConstructors(t *testing.T) {
	cases := []struct {
		name   string
		e      prefix.Expr
		prefix string
		r      float64
	}{
		{"add", prefix.Add(prefix.X, prefix.NewConst(2)), "(+ x 2)", 7},
		{"sub", prefix.Subtract(prefix.Multiply(prefix.NewConst(2), prefix.X), prefix.NewConst(3)), "(- (* 2 x) 3)", 7},
		{"div", prefix.Divide(prefix.Y, prefix.Z), "(/ y z)", 0.5},
		{"negate", prefix.Negate(prefix.Var("x")), "(negate x)", -5},
		{"avg5", prefix.Avg5(prefix.X, prefix.X, prefix.Y, prefix.Y, prefix.Z), "(avg5 x x y y z)", 3.6},
		{"med3", prefix.Med3(prefix.X, prefix.Y, prefix.Z), "(med3 x y z)", 4},
		{"arith-mean", prefix.ArithMean(prefix.X, prefix.Y), "(arith-mean x y)", 3.5},
		{"geom-mean", prefix.GeomMean(prefix.Y, prefix.NewConst(-8)), "(geom-mean y -8)", 4},
		{"harm-mean", prefix.HarmMean(prefix.Y, prefix.Z, prefix.Z), "(harm-mean y z z)", 3},
		{"frac", prefix.NewConst(0.5), "0.5", 0.5},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if s := c.e.Prefix(); s != c.prefix {
				t.Errorf("wrong prefix: want %q, got %q", c.prefix, s)
			}
			if r := c.e.Eval(5, 2, 4); math.Abs(r-c.r) > 1e-12 {
				t.Errorf("wrong result: want %g, got %g", c.r, r)
			}
		})
	}
}

func TestApply(t *testing.T) {
	if _, err := prefix.Apply("+", prefix.X); err == nil {
		t.Error("applied + to one argument")
	} else if _, ok := err.(*prefix.ArityError); !ok {
		t.Errorf("%#v is not *prefix.ArityError", err)
	}
	if _, err := prefix.Apply("harm-mean"); err == nil {
		t.Error("applied harm-mean to no arguments")
	} else if _, ok := err.(*prefix.ArityError); !ok {
		t.Errorf("%#v is not *prefix.ArityError", err)
	}
	if _, err := prefix.Apply("^", prefix.X, prefix.Y); err == nil {
		t.Error("applied unknown ^")
	} else if _, ok := err.(*prefix.OperationError); !ok {
		t.Errorf("%#v is not *prefix.OperationError", err)
	}
	args := []prefix.Expr{prefix.X, prefix.Y}
	o, err := prefix.Apply("*", args...)
	if err != nil {
		t.Fatal(err)
	}
	args[0] = prefix.Z
	if s := o.Prefix(); s != "(* x y)" {
		t.Errorf("operation changed with its argument slice: %q", s)
	}
	o.Args()[0] = prefix.Z
	if s := o.Prefix(); s != "(* x y)" {
		t.Errorf("operation changed through Args: %q", s)
	}
}

func TestEmptyVariadicPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("ArithMean accepted no arguments")
		}
	}()
	prefix.ArithMean()
}

func TestVars(t *testing.T) {
	cases := []struct {
		name string
		src  string
		vars []string
	}{
		{"none", "(+ 1 2)", []string{}},
		{"one", "(+ 1 x)", []string{"x"}},
		{"sort", "(med3 z y x)", []string{"x", "y", "z"}},
		{"reuse", "(arith-mean z x z x)", []string{"x", "z"}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			a, err := prefix.ParseString(c.src)
			if err != nil {
				t.Fatalf("%q didn't parse: %v", c.src, err)
			}
			vars := prefix.Vars(a)
			if !reflect.DeepEqual(vars, c.vars) {
				t.Errorf("%q gave wrong variable names:\n\twant %q\n\tgot  %q", c.src, c.vars, vars)
			}
		})
	}
}

// randExpr builds a random expression tree of at most the given depth.
func randExpr(rng *rand.Rand, depth int) prefix.Expr {
	if depth == 0 || rng.Intn(4) == 0 {
		switch rng.Intn(3) {
		case 0:
			return prefix.NewConst(float64(rng.Intn(201) - 100))
		case 1:
			return prefix.NewConst((rng.Float64() - 0.5) * math.Pow(10, float64(rng.Intn(40)-20)))
		default:
			return prefix.Var(string("xyz"[rng.Intn(3)]))
		}
	}
	syms := prefix.Operators()
	sym := syms[rng.Intn(len(syms))]
	n := prefix.Lookup(sym).Arity()
	if n == prefix.Variadic {
		n = 1 + rng.Intn(6)
	}
	args := make([]prefix.Expr, n)
	for i := range args {
		args[i] = randExpr(rng, depth-1)
	}
	o, err := prefix.Apply(sym, args...)
	if err != nil {
		panic(err)
	}
	return o
}

func same(a, b float64) bool {
	return a == b || math.IsNaN(a) && math.IsNaN(b)
}

func TestRoundTrip(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 500; i++ {
		e := randExpr(rng, 5)
		s := e.Prefix()
		p, err := prefix.ParseString(s)
		if err != nil {
			t.Fatalf("%q failed to parse: %v", s, err)
		}
		if q := p.Prefix(); q != s {
			t.Errorf("prefix changed on round trip:\n\twant %q\n\tgot  %q", s, q)
		}
		for j := 0; j < 5; j++ {
			x, y, z := rng.NormFloat64()*10, rng.NormFloat64()*10, rng.NormFloat64()*10
			if a, b := e.Eval(x, y, z), p.Eval(x, y, z); !same(a, b) {
				t.Errorf("%q at (%g, %g, %g): tree gives %g, parsed gives %g", s, x, y, z, a, b)
			}
		}
	}
}

func TestConcurrentEval(t *testing.T) {
	a, err := prefix.ParseString("(harm-mean (+ x 1) (* y 2) (geom-mean z 4))")
	if err != nil {
		t.Fatal(err)
	}
	want := a.Eval(3, 4, 9)
	done := make(chan float64)
	for i := 0; i < 8; i++ {
		go func() { done <- a.Eval(3, 4, 9) }()
	}
	for i := 0; i < 8; i++ {
		if r := <-done; r != want {
			t.Errorf("concurrent result %g differs from %g", r, want)
		}
	}
}

func BenchmarkEval(b *testing.B) {
	cases := []struct {
		name string
		src  string
	}{
		{"nums", "(+ (+ 2 3) 4)"},
		{"vars", "(+ (+ x y) z)"},
		{"means", "(arith-mean (geom-mean x y z) (harm-mean x y z) (med3 x y z))"},
	}
	for _, c := range cases {
		b.Run(c.name, func(b *testing.B) {
			b.ReportAllocs()
			a, err := prefix.ParseString(c.src)
			if err != nil {
				b.Fatal(err)
			}
			for i := 0; i < b.N; i++ {
				a.Eval(2, 3, 4)
			}
		})
	}
}

func Example() {
	f, _ := prefix.Parse(strings.NewReader("(- (/ (* x (* x x)) 2) x)"))
	df, _ := prefix.Parse(strings.NewReader("(- (/ (* 3 (* x x)) 2) 1)"))
	ddf, _ := prefix.Parse(strings.NewReader("(* 3 x)"))

	for i := 0; i < 4; i++ {
		x := float64(i)
		fmt.Printf("x = %g   y = %-4g  y' = %-4g  y'' = %g\n", x, f.Eval(x, 0, 0), df.Eval(x, 0, 0), ddf.Eval(x, 0, 0))
	}

	// Output:
	// x = 0   y = 0     y' = -1    y'' = 0
	// x = 1   y = -0.5  y' = 0.5   y'' = 3
	// x = 2   y = 2     y' = 5     y'' = 6
	// x = 3   y = 10.5  y' = 12.5  y'' = 9
}

func ExampleParseString() {
	e, err := prefix.ParseString("(*(- x 3)y)")
	if err != nil {
		panic(err)
	}
	fmt.Println(e.Prefix())
	fmt.Println(e)
	fmt.Println(e.Eval(5, 2, 0))

	// Output:
	// (* (- x 3) y)
	// x 3 - y *
	// 4
}

func ExampleParseString_error() {
	_, err := prefix.ParseString("(+ x w)")
	fmt.Println(err)

	// Output:
	// 6: unknown variable: expected x or y or z, found "w"
}
