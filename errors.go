package emal

import "strconv"

// LexError indicates an invalid token: a character that cannot start or
// continue any recognized token in the current state. It implements
// InputError.
type LexError struct {
	// Text is the text scanned up to and including the offending
	// character.
	Text string
	// Kind is the type of token being scanned, e.g. "number", or the
	// empty string if none had been decided.
	Kind string
	// Col is the 1-based rune column of the error.
	Col int
}

func (err *LexError) Error() string {
	if err.Kind == "" {
		return errpos(err.Col, "invalid token "+strconv.Quote(err.Text))
	}
	return errpos(err.Col, "invalid "+err.Kind+" token "+strconv.Quote(err.Text))
}

func (err *LexError) Pos() int {
	return err.Col
}

// IncompleteError indicates input that ended in the middle of a token. It
// implements InputError.
type IncompleteError struct {
	// Col is the 1-based rune column of the end of input.
	Col int
}

func (err *IncompleteError) Error() string {
	return errpos(err.Col, "input ended inside a token")
}

func (err *IncompleteError) Pos() int {
	return err.Col
}

// BracketError is an error indicating unbalanced brackets in the input. It
// implements InputError.
type BracketError struct {
	// Col is the position of the bracket.
	Col int
	// Left is an opening bracket with no closing bracket.
	Left string
	// Right is a closing bracket with no opening bracket.
	Right string
}

func (err *BracketError) Error() string {
	if err.Left == "" {
		return errpos(err.Col, "close bracket "+err.Right+" with no open bracket")
	}
	return errpos(err.Col, "open bracket "+err.Left+" with no close bracket")
}

func (err *BracketError) Pos() int {
	return err.Col
}

// SeparatorError is an error indicating an argument separator outside a
// function call. It implements InputError.
type SeparatorError struct {
	// Col is the position of the separator.
	Col int
	// Sep is the separator.
	Sep string
}

func (err *SeparatorError) Error() string {
	return errpos(err.Col, "invalid occurrence of separator "+strconv.Quote(err.Sep))
}

func (err *SeparatorError) Pos() int {
	return err.Col
}

// EmptyExpressionError is an error indicating input with no expression in
// it. It implements InputError.
type EmptyExpressionError struct {
	// Col is the position of the end of input.
	Col int
}

func (err *EmptyExpressionError) Error() string {
	return errpos(err.Col, "no expression")
}

func (err *EmptyExpressionError) Pos() int {
	return err.Col
}

// CallError is an error indicating a function call with the wrong number
// of arguments. It implements InputError.
type CallError struct {
	// Col is the position of the function name.
	Col int
	// Func is the function name that was called.
	Func string
	// Len is the number of arguments the call supplied.
	Len int
}

func (err *CallError) Error() string {
	return errpos(err.Col, "cannot call "+err.Func+" with "+strconv.Itoa(err.Len)+" arguments")
}

func (err *CallError) Pos() int {
	return err.Col
}

// NameError is an error from a lookup for a variable that is missing from
// the supplied bindings.
type NameError struct {
	// Name is the name that was missing.
	Name string
}

func (err *NameError) Error() string {
	return "undefined variable: " + strconv.Quote(err.Name)
}

// DomainError is an error from an operation applied outside its domain,
// e.g. a division by zero or the logarithm of a non-positive value.
type DomainError struct {
	// Func is a name identifying the operation.
	Func string
	// Value is the rendered out-of-domain operand.
	Value string
}

func (err *DomainError) Error() string {
	return err.Value + " outside domain of " + err.Func
}

// StackError indicates malformed postfix input: an operation missing its
// operands, or leftover values after full consumption. Expressions built
// by Parse never produce it; it is checked defensively.
type StackError struct {
	// Op is the operation that failed, or the empty string for leftover
	// values at the end of evaluation.
	Op string
	// Want and Have count the operands required and available.
	Want, Have int
}

func (err *StackError) Error() string {
	if err.Op == "" {
		return "inconsistent stack: " + strconv.Itoa(err.Have) + " values remain"
	}
	return "inconsistent stack: " + err.Op + " needs " + strconv.Itoa(err.Want) +
		" operands, have " + strconv.Itoa(err.Have)
}

// errpos is a shortcut to create an error message with a position.
func errpos(pos int, msg string) string {
	return strconv.Itoa(pos) + ": " + msg
}

// InputError is an error with position information. Every error resulting
// from invalid input text implements InputError.
type InputError interface {
	error
	// Pos returns the position of the error as the number of runes up to
	// and including the start of the token that caused the error.
	Pos() int
}

var (
	_ InputError = (*LexError)(nil)
	_ InputError = (*IncompleteError)(nil)
	_ InputError = (*BracketError)(nil)
	_ InputError = (*SeparatorError)(nil)
	_ InputError = (*EmptyExpressionError)(nil)
	_ InputError = (*CallError)(nil)
)
