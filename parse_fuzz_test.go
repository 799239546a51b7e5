//go:build go1.18
// +build go1.18

package prefix_test

import (
	"testing"

	"github.com/zephyrtronium/prefix"
)

func FuzzParse(f *testing.F) {
	f.Add("x")
	f.Add("(+ x -5)")
	f.Add("(arith-mean(negate y)2 z)")
	f.Add("(+ x- 1)")
	f.Add("(arith- 000000000000")
	f.Add("(+ x 1e999)")
	f.Add("-1e999")
	f.Fuzz(func(t *testing.T, s string) {
		e, err := prefix.ParseString(s)
		if err != nil {
			return
		}
		p := e.Prefix()
		if _, err := prefix.ParseString(p); err != nil {
			t.Errorf("%q parsed to %q which failed to parse: %v", s, p, err)
		}
	})
}
