package prefix

import "strconv"

// ParseOption is an option for parsing.
type ParseOption interface {
	parseOption(parsectx) parsectx
}

type (
	partialopt struct{}
	onlyopt    map[string]*Op
)

// parsectx holds the settings of a parse.
type parsectx struct {
	// ops is the set of operations the parser recognizes.
	ops map[string]*Op
	// partial indicates that input may remain after the expression.
	partial bool
}

// Partial tells the parser to stop after one complete expression instead of
// requiring the whole input to be consumed. Any remaining input is left
// unread in the source, so a stream of expressions can be parsed by calling
// Parse repeatedly on the same io.RuneScanner.
func Partial() ParseOption {
	return partialopt{}
}

func (partialopt) parseOption(p parsectx) parsectx {
	p.partial = true
	return p
}

// Only restricts parsing to a subset of the built-in operations. Any other
// operation symbol fails with an OperationError. Only panics if a symbol does
// not name a built-in operation.
//
// Only overrides the effect of any previous Only in the parsing options.
func Only(symbols ...string) ParseOption {
	o := make(onlyopt, len(symbols))
	for _, s := range symbols {
		op := ops[s]
		if op == nil {
			panic("prefix: cannot restrict to unknown operation " + strconv.Quote(s))
		}
		o[s] = op
	}
	return o
}

func (o onlyopt) parseOption(p parsectx) parsectx {
	p.ops = o
	return p
}
