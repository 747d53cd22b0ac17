package emal

import (
	"errors"
	"testing"
)

func TestToPostfix(t *testing.T) {
	cases := []struct {
		name string
		src  string
		want string
	}{
		{"precedence", "a + b * a + (a - b)", "a b a * + a b - +"},
		{"left-assoc", "a - b + c", "a b - c +"},
		{"func-then-op", "log(x) + 2", "x log 2 +"},
		{"bare-func-then-op", "log x + 2", "x log 2 +"},
		{"semicolon-args", "max(a; b)", "a b max"},
		{"nested-call", "max(a, log(b))", "a b log max"},
		{"bare-nested-call", "max(a, log b)", "a b log max"},
		{"literal-call", "2,5 * max(a, b)", "2,5 a b max *"},
		{"brackets", "[a + b] * c", "a b + c *"},
		{"mixed-brackets", "[a + b) * c", "a b + c *"},
		{"unary-literal", "-3 * 2", "-3 2 *"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			e, err := Parse(c.src)
			if err != nil {
				t.Fatalf("Parse(%q) failed: %v", c.src, err)
			}
			if got := e.String(); got != c.want {
				t.Errorf("Parse(%q) = %q, want %q", c.src, got, c.want)
			}
		})
	}
}

func TestToPostfixErrors(t *testing.T) {
	cases := []struct {
		name string
		src  string
		want error
	}{
		{"bad-arity", "max(a)", &CallError{}},
		{"spurious-args", "(a, b)", &SeparatorError{}},
		{"unclosed", "(a", &BracketError{}},
		{"unopened", "a)", &BracketError{}},
		{"bare-separator", "a, b", &SeparatorError{}},
		{"empty", "", &EmptyExpressionError{}},
		{"blank", "   ", &EmptyExpressionError{}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := Parse(c.src)
			if err == nil {
				t.Fatalf("Parse(%q) succeeded", c.src)
			}
			target := c.want
			ok := false
			switch target.(type) {
			case *CallError:
				var e *CallError
				ok = errors.As(err, &e)
			case *SeparatorError:
				var e *SeparatorError
				ok = errors.As(err, &e)
			case *BracketError:
				var e *BracketError
				ok = errors.As(err, &e)
			case *EmptyExpressionError:
				var e *EmptyExpressionError
				ok = errors.As(err, &e)
			}
			if !ok {
				t.Errorf("Parse(%q) = %v, want a %T", c.src, err, target)
			}
			var ierr InputError
			if !errors.As(err, &ierr) {
				t.Errorf("Parse(%q) error %v carries no position", c.src, err)
			} else if ierr.Pos() < 1 {
				t.Errorf("Parse(%q) reports position %d", c.src, ierr.Pos())
			}
		})
	}
}
