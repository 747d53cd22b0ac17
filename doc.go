// Package emal implements an exact decimal expression calculator.
//
// Expressions are infix arithmetic over numeric literals, variables and a
// small set of functions: "2,5 * max(a, b)". Literals use a comma or dot
// as the decimal point and may carry an exponent, so "1,5e-3" and "1.5e-3"
// are the same number. Results render with a comma.
//
// Parsing and evaluation are separate: Parse compiles the text into an
// evaluation-order Expression, which can then be evaluated many times with
// different variable bindings, and over different operand types. Number
// evaluates exactly on scaled big integers; Real trades exactness for
// big.Float speed.
package emal
