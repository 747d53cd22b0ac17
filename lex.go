package emal

import (
	"strings"
	"unicode"
)

// Character classes of the expression lexer.
const (
	// Operators are the binary arithmetic operators. × and ÷ are accepted
	// as synonyms of * and /.
	Operators = "+-*/×÷"
	// OpenBrackets and CloseBrackets are interchangeable grouping pairs;
	// matching is by position, not by glyph.
	OpenBrackets  = "(["
	CloseBrackets = ")]"
)

// exprLexer carries the function table into the lexer states, so
// identifiers matching a registered name become calls.
type exprLexer struct {
	funcs map[string]int
}

// lexerConfig builds the ordered-machine configuration of the expression
// lexer.
func lexerConfig(funcs map[string]int) *Config {
	l := &exprLexer{funcs: funcs}
	return &Config{Start: l.dispatch}
}

// termStart reports whether a term may begin after t, which is where a
// leading sign belongs to a numeric literal rather than being a binary
// operator.
func termStart(t *Token) bool {
	if t == nil {
		return true
	}
	switch t.Kind {
	case TokenOperator, TokenSeparator:
		return true
	case TokenBracket:
		return t.Opening
	}
	return false
}

// dispatch is the lexer's resting state between tokens.
func (l *exprLexer) dispatch(m *Machine, r rune) StateFn {
	switch {
	case r == EOF:
		return nil
	case unicode.IsSpace(r):
		return l.dispatch
	case isDigit(r):
		if err := m.Delegate(TokenNumber, NumberTokenizer()); err != nil {
			return m.Fail(err)
		}
		return l.dispatch
	case r == '+' || r == '-':
		if termStart(m.Last()) {
			// A sign here starts a literal, if one follows.
			if m.Delegate(TokenNumber, NumberTokenizer()) == nil {
				return l.dispatch
			}
		}
	}
	switch {
	case strings.ContainsRune(Operators, r):
		m.Open(TokenOperator)
		m.Append()
		return l.dispatch
	case r == ',' || r == ';':
		m.Open(TokenSeparator)
		m.Append()
		return l.dispatch
	case strings.ContainsRune(OpenBrackets, r):
		m.Open(TokenBracket).Opening = true
		m.Append()
		return l.dispatch
	case strings.ContainsRune(CloseBrackets, r):
		m.Open(TokenBracket)
		m.Append()
		return l.dispatch
	}
	m.Open(TokenVariable)
	m.Append()
	return l.ident
}

// ident accumulates an identifier until a delimiter, then reclassifies it
// as a function call when the name is registered.
func (l *exprLexer) ident(m *Machine, r rune) StateFn {
	if r == EOF || unicode.IsSpace(r) || strings.ContainsRune(Operators+OpenBrackets+CloseBrackets+",;", r) {
		if _, ok := l.funcs[m.Buffer()]; ok {
			m.Token().Kind = TokenFunction
		}
		if r == EOF {
			return nil
		}
		m.Retain()
		return l.dispatch
	}
	m.Append()
	return l.ident
}
