package emal

import (
	"github.com/emirpasic/gods/stacks/linkedliststack"
)

// precedence ranks the binary operators; larger binds tighter. All are
// left-associative.
var precedence = map[string]int{
	"+": 1, "-": 1,
	"*": 2, "/": 2,
	"×": 2, "÷": 2,
}

// shuntEntry is one held-back token. Opening markers (brackets and
// separators) carry the count of separators discharged so far in their
// group, which yields the argument count at the closing bracket.
type shuntEntry struct {
	tok  *Token
	args int
}

func isOpening(e *shuntEntry) bool {
	return e.tok.Kind == TokenSeparator || (e.tok.Kind == TokenBracket && e.tok.Opening)
}

// drainToMarker pops held-back operators and functions to the output until
// an opening marker surfaces, returning that marker still on the stack.
// Draining an empty stack means the token at is unbalanced.
func drainToMarker(stack *linkedliststack.Stack, out *[]*Token, at *Token) (*shuntEntry, error) {
	for {
		v, ok := stack.Peek()
		if !ok {
			if at.Kind == TokenSeparator {
				return nil, &SeparatorError{Col: at.Col, Sep: at.Text}
			}
			return nil, &BracketError{Col: at.Col, Right: at.Text}
		}
		e := v.(*shuntEntry)
		if isOpening(e) {
			return e, nil
		}
		stack.Pop()
		*out = append(*out, e.tok)
	}
}

// toPostfix converts the lexed infix tokens to postfix order, verifying
// bracket balance and call arity along the way.
func toPostfix(tokens []*Token, funcs map[string]int) ([]*Token, error) {
	var out []*Token
	stack := linkedliststack.New()
	var prev *Token
	for _, t := range tokens {
		switch t.Kind {
		case TokenNumber, TokenVariable:
			out = append(out, t)
		case TokenFunction:
			stack.Push(&shuntEntry{tok: t})
		case TokenOperator:
			for {
				v, ok := stack.Peek()
				if !ok {
					break
				}
				e := v.(*shuntEntry)
				if isOpening(e) {
					break
				}
				// A function here was applied without brackets; its lone
				// argument is complete, so it binds tighter than any
				// operator.
				if e.tok.Kind != TokenFunction && precedence[e.tok.Text] < precedence[t.Text] {
					break
				}
				stack.Pop()
				out = append(out, e.tok)
			}
			stack.Push(&shuntEntry{tok: t})
		case TokenSeparator:
			e, err := drainToMarker(stack, &out, t)
			if err != nil {
				return nil, err
			}
			// The separator replaces the previous marker as the group's
			// opening, carrying the discharge count forward.
			if e.tok.Kind == TokenSeparator {
				stack.Pop()
			}
			stack.Push(&shuntEntry{tok: t, args: e.args + 1})
		case TokenBracket:
			if t.Opening {
				stack.Push(&shuntEntry{tok: t})
				break
			}
			e, err := drainToMarker(stack, &out, t)
			if err != nil {
				return nil, err
			}
			argc := e.args + 1
			if prev != nil && prev.Kind == TokenBracket && prev.Opening {
				// Empty group: () calls with zero arguments.
				argc = 0
			}
			// Pop the marker chain down to and including the bracket.
			for {
				v, _ := stack.Pop()
				if v.(*shuntEntry).tok.Kind == TokenBracket {
					break
				}
			}
			if v, ok := stack.Peek(); ok && v.(*shuntEntry).tok.Kind == TokenFunction {
				stack.Pop()
				f := v.(*shuntEntry).tok
				if funcs[f.Text] != argc {
					return nil, &CallError{Col: f.Col, Func: f.Text, Len: argc}
				}
				out = append(out, f)
			} else if argc != 1 {
				return nil, &SeparatorError{Col: t.Col, Sep: ","}
			}
		}
		prev = t
	}
	for {
		v, ok := stack.Pop()
		if !ok {
			break
		}
		e := v.(*shuntEntry)
		switch {
		case e.tok.Kind == TokenSeparator:
			return nil, &SeparatorError{Col: e.tok.Col, Sep: e.tok.Text}
		case e.tok.Kind == TokenBracket:
			return nil, &BracketError{Col: e.tok.Col, Left: e.tok.Text}
		}
		out = append(out, e.tok)
	}
	return out, nil
}
