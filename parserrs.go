package prefix

import "strconv"

// EOFError is an error indicating that the input ended where a token was
// required. It implements InputError.
type EOFError struct {
	// Col is the position of the end of the input.
	Col int
	// Expected describes the token the parser wanted.
	Expected string
}

func (err *EOFError) Error() string {
	return errpos(err.Col, "unexpected end of input: expected "+err.Expected+", found \"\"")
}

func (err *EOFError) Pos() int {
	return err.Col
}

// OperationError is an error indicating a token that is not a known operation
// where one was required. It implements InputError.
type OperationError struct {
	// Col is the position just past the token.
	Col int
	// Found is the token that was not understood.
	Found string
}

func (err *OperationError) Error() string {
	return errpos(err.Col, "unknown operation: expected operation, found "+strconv.Quote(err.Found))
}

func (err *OperationError) Pos() int {
	return err.Col
}

// ArityError is an error indicating an operation applied to the wrong number
// of arguments, or a close bracket where none belongs. It implements
// InputError.
type ArityError struct {
	// Col is the position just past the token.
	Col int
	// Op is the symbol of the operation whose arguments were being parsed.
	// It is empty for a close bracket outside any operation.
	Op string
	// Expected describes the token the parser wanted.
	Expected string
	// Found is the token that was scanned instead.
	Found string
}

func (err *ArityError) Error() string {
	msg := "wrong number of arguments to " + err.Op
	if err.Op == "" {
		msg = "unbalanced brackets"
	}
	return errpos(err.Col, msg+": expected "+err.Expected+", found "+strconv.Quote(err.Found))
}

func (err *ArityError) Pos() int {
	return err.Col
}

// VariableError is an error indicating a leaf token that is neither a number
// nor a known variable. It implements InputError.
type VariableError struct {
	// Col is the position just past the token.
	Col int
	// Found is the token that was not understood.
	Found string
}

func (err *VariableError) Error() string {
	return errpos(err.Col, "unknown variable: expected x or y or z, found "+strconv.Quote(err.Found))
}

func (err *VariableError) Pos() int {
	return err.Col
}

// NumberError is an error indicating a numeric literal too large in magnitude
// to represent. It implements InputError.
type NumberError struct {
	// Col is the position just past the token.
	Col int
	// Found is the literal.
	Found string
}

func (err *NumberError) Error() string {
	return errpos(err.Col, "number out of range: expected finite number, found "+strconv.Quote(err.Found))
}

func (err *NumberError) Pos() int {
	return err.Col
}

// TrailingError is an error indicating input following a complete expression.
// It implements InputError.
type TrailingError struct {
	// Col is the position of the start of the extra token.
	Col int
	// Found is the first extra token.
	Found string
}

func (err *TrailingError) Error() string {
	return errpos(err.Col, "input after end of expression: expected nothing, found "+strconv.Quote(err.Found))
}

func (err *TrailingError) Pos() int {
	return err.Col
}

// errpos is a shortcut to create an error message with a position. Errors
// that do not come from parsing have a negative position and no prefix.
func errpos(pos int, msg string) string {
	if pos < 0 {
		return msg
	}
	return strconv.Itoa(pos) + ": " + msg
}

// InputError is an error with position information. Every error resulting from
// invalid input implements InputError.
type InputError interface {
	error
	// Pos returns the position of the error as the number of runes read from
	// the input when the error was detected.
	Pos() int
}

var (
	_ InputError = (*EOFError)(nil)
	_ InputError = (*OperationError)(nil)
	_ InputError = (*ArityError)(nil)
	_ InputError = (*VariableError)(nil)
	_ InputError = (*NumberError)(nil)
	_ InputError = (*TrailingError)(nil)
)
