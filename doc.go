// Package prefix parses and evaluates arithmetic expressions written in
// fully bracketed prefix notation over the variables x, y, and z.
//
// "(+ x 2)" adds 2 to x. "(* (- x 3) y)" multiplies x-3 by y. Besides the
// binary +, -, *, and /, there are negate, avg5 (mean of exactly five terms),
// med3 (median of three), and the variadic arith-mean, geom-mean, and
// harm-mean, which take one or more terms. A - stuck to a number is its
// sign, so "(+ x -5)" subtracts five.
//
// Parse an expression once and evaluate it for many inputs with Eval, or with
// a Context for arbitrary-precision arithmetic. Expressions render back to
// prefix form with Prefix and to postfix form with String.
package prefix
