package emal

import "strconv"

// TokenKind classifies lexed tokens.
type TokenKind int

const (
	TokenNone TokenKind = iota
	// TokenNumber is a numeric literal. Its Children hold the keyed tokens
	// of the nested numeric tokenizer.
	TokenNumber
	// TokenVariable is an identifier that did not match a registered
	// function name.
	TokenVariable
	// TokenFunction is an identifier matching a registered function name.
	TokenFunction
	// TokenOperator is a binary arithmetic operator.
	TokenOperator
	// TokenBracket is a grouping bracket; Opening tells which side.
	TokenBracket
	// TokenSeparator is a function argument separator, either , or ;.
	TokenSeparator
)

func (k TokenKind) String() string {
	switch k {
	case TokenNone:
		return "none"
	case TokenNumber:
		return "number"
	case TokenVariable:
		return "variable"
	case TokenFunction:
		return "function"
	case TokenOperator:
		return "operator"
	case TokenBracket:
		return "bracket"
	case TokenSeparator:
		return "separator"
	}
	return "kind(" + strconv.Itoa(int(k)) + ")"
}

// Token is one unit produced by a Machine. Tokens are transient: they live
// from a run until the caller has converted them into an Expression or a
// Number.
type Token struct {
	Kind TokenKind
	// Text is the accumulated text, or the consumed input slice for
	// delegated tokens.
	Text string
	// Key names the token in keyed machines.
	Key string
	// Opening distinguishes opening from closing brackets.
	Opening bool
	// Children holds the tokens of a delegated nested machine.
	Children []*Token
	// Col is the 1-based rune column where the token started.
	Col int
}

// Child returns the child token stored under key, or nil.
func (t *Token) Child(key string) *Token {
	for _, c := range t.Children {
		if c.Key == key {
			return c
		}
	}
	return nil
}

func (t *Token) String() string {
	return t.Kind.String() + ":" + t.Text + "@" + strconv.Itoa(t.Col)
}
