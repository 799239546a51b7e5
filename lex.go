package prefix

import (
	"errors"
	"io"
	"strconv"
	"strings"
)

// source is a cursor over the input. It tracks the number of runes consumed,
// which is the position reported in errors.
type source struct {
	src io.RuneScanner
	col int
	// back holds runes read from src and pushed back, last out first. The
	// tokenizer sometimes needs two: a - it gives back and the space it
	// looked at after it.
	back []rune
	// last is the rune most recently returned by next.
	last rune
	// err is the first read error other than io.EOF. Once set, the source
	// behaves as if the input had ended.
	err error
}

// read gets the next rune without counting it.
func (s *source) read() (rune, bool) {
	if n := len(s.back); n > 0 {
		r := s.back[n-1]
		s.back = s.back[:n-1]
		return r, true
	}
	if s.err != nil {
		return 0, false
	}
	r, _, err := s.src.ReadRune()
	if err != nil {
		if !errors.Is(err, io.EOF) {
			s.err = err
		}
		return 0, false
	}
	return r, true
}

// next reads a rune and advances the position. The second result is false if
// no input remains.
func (s *source) next() (rune, bool) {
	r, ok := s.read()
	if ok {
		s.col++
		s.last = r
	}
	return r, ok
}

// peek returns the next rune without consuming it.
func (s *source) peek() (rune, bool) {
	r, ok := s.read()
	if ok {
		s.back = append(s.back, r)
	}
	return r, ok
}

// unread gives back the rune returned by the last call to next. Calls to peek
// may come between them, but not other calls to next or unread.
func (s *source) unread() {
	s.back = append(s.back, s.last)
	s.col--
}

// isNextSpace reports whether the next rune is whitespace without consuming
// it. At the end of input, the result is false.
func (s *source) isNextSpace() bool {
	r, ok := s.peek()
	return ok && isSpace(r)
}

// release returns pending runes to the underlying scanner so that it can be
// read from where the parse stopped. The scanner can take back only one, so
// release reports false if there were more.
func (s *source) release() bool {
	switch len(s.back) {
	case 0:
		return true
	case 1:
		s.back = s.back[:0]
		return s.src.UnreadRune() == nil
	default:
		return false
	}
}

// hasNext skips whitespace and reports whether any input remains.
func (s *source) hasNext() bool {
	for {
		r, ok := s.next()
		if !ok {
			return false
		}
		if !isSpace(r) {
			s.unread()
			return true
		}
	}
}

// pos returns the number of runes consumed so far.
func (s *source) pos() int {
	return s.col
}

func isSpace(r rune) bool {
	return r == ' ' || r == '\t' || r == '\n'
}

// opRunes contains the runes which end a token. Each of them is a token by
// itself unless it is a - immediately followed by a non-space rune.
const opRunes = "+-*/()"

func isOpRune(r rune) bool {
	return strings.ContainsRune(opRunes, r)
}

// wantKind is the class of token the parser expects next.
type wantKind int8

const (
	wantExpr wantKind = iota
	wantOp
	wantArg
	wantClose
	wantEnd
)

type want struct {
	kind wantKind
	// arg is the 1-based index of the argument for wantArg.
	arg int
	// variadic disables the close bracket check so that argument lists of
	// variadic operations can end at any argument.
	variadic bool
	// op is the symbol of the operation whose arguments are being scanned.
	op string
}

func (w want) String() string {
	switch w.kind {
	case wantExpr:
		return "expression"
	case wantOp:
		return "operation"
	case wantArg:
		return "argument " + strconv.Itoa(w.arg)
	case wantClose:
		return ")"
	case wantEnd:
		return "end of input"
	default:
		panic("prefix: invalid token class " + strconv.Itoa(int(w.kind)))
	}
}

// next scans the next token from the input and checks it against the class
// of token the parser wants.
func (p *parser) next(w want) (string, error) {
	defer p.buf.Reset()
	src := &p.src
	src.hasNext()
	for !src.isNextSpace() {
		r, ok := src.next()
		if !ok {
			break
		}
		if r == '-' && !src.isNextSpace() {
			// A - stuck to the following rune is the sign of a literal or
			// part of a name like arith-mean, not subtraction.
			p.buf.WriteRune(r)
			r, ok = src.next()
			if !ok {
				break
			}
		}
		if isOpRune(r) {
			if p.buf.Len() == 0 {
				p.buf.WriteRune(r)
			} else {
				src.unread()
			}
			break
		}
		p.buf.WriteRune(r)
	}
	tok := p.buf.String()
	return tok, p.check(tok, w)
}

// check validates a scanned token against the wanted class.
func (p *parser) check(tok string, w want) error {
	col := p.src.pos()
	switch {
	case tok == "":
		return &EOFError{Col: col, Expected: w.String()}
	case w.kind == wantOp && p.ops[tok] == nil:
		return &OperationError{Col: col, Found: tok}
	case w.kind == wantEnd, w.variadic:
		return nil
	case (w.kind == wantClose) != (tok == ")"):
		return &ArityError{Col: col, Op: w.op, Expected: w.String(), Found: tok}
	}
	return nil
}

// isNumber reports whether a token is a numeric literal: an optional -, then
// decimal digits with an optional fraction and exponent.
func isNumber(s string) bool {
	s = strings.TrimPrefix(s, "-")
	var dig, dot, e, le, ed bool
	for _, r := range s {
		switch {
		case r == '+' || r == '-':
			// Signs are only allowed immediately following an exponent
			// marker.
			if !le {
				return false
			}
			le = false
			continue
		case r == '.':
			if dot || e {
				return false
			}
			dot = true
		case r == 'e' || r == 'E':
			if !dig || e {
				return false
			}
			e = true
			le = true
			continue
		case '0' <= r && r <= '9':
			if e {
				ed = true
			} else {
				dig = true
			}
		default:
			return false
		}
		le = false
	}
	return dig && (!e || ed)
}
