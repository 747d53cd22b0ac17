package emal

import (
	"testing"

	"github.com/d4l3k/messagediff"
)

type lexWant struct {
	Kind TokenKind
	Text string
}

func lexAll(t *testing.T, src string) []*Token {
	t.Helper()
	m := NewMachine(lexerConfig(functions))
	if _, err := m.Run(src); err != nil {
		t.Fatalf("lexing %q failed: %v", src, err)
	}
	return m.Tokens()
}

func TestLex(t *testing.T) {
	cases := []struct {
		name string
		src  string
		want []lexWant
	}{
		{
			name: "spaced",
			src:  "a + b",
			want: []lexWant{{TokenVariable, "a"}, {TokenOperator, "+"}, {TokenVariable, "b"}},
		},
		{
			name: "packed",
			src:  "a+b",
			want: []lexWant{{TokenVariable, "a"}, {TokenOperator, "+"}, {TokenVariable, "b"}},
		},
		{
			name: "negative",
			src:  "-3",
			want: []lexWant{{TokenNumber, "-3"}},
		},
		{
			name: "signed-term",
			src:  "2 * -3",
			want: []lexWant{{TokenNumber, "2"}, {TokenOperator, "*"}, {TokenNumber, "-3"}},
		},
		{
			name: "binary-minus",
			src:  "2-3",
			want: []lexWant{{TokenNumber, "2"}, {TokenOperator, "-"}, {TokenNumber, "3"}},
		},
		{
			name: "call",
			src:  "2,5 * max(a, b)",
			want: []lexWant{
				{TokenNumber, "2,5"}, {TokenOperator, "*"}, {TokenFunction, "max"},
				{TokenBracket, "("}, {TokenVariable, "a"}, {TokenSeparator, ","},
				{TokenVariable, "b"}, {TokenBracket, ")"},
			},
		},
		{
			name: "semicolon",
			src:  "max(a; b)",
			want: []lexWant{
				{TokenFunction, "max"}, {TokenBracket, "("}, {TokenVariable, "a"},
				{TokenSeparator, ";"}, {TokenVariable, "b"}, {TokenBracket, ")"},
			},
		},
		{
			name: "func-needs-delimiter",
			src:  "logx",
			want: []lexWant{{TokenVariable, "logx"}},
		},
		{
			name: "bare-call",
			src:  "log x",
			want: []lexWant{{TokenFunction, "log"}, {TokenVariable, "x"}},
		},
		{
			name: "mixed-brackets",
			src:  "[a + b)",
			want: []lexWant{
				{TokenBracket, "["}, {TokenVariable, "a"}, {TokenOperator, "+"},
				{TokenVariable, "b"}, {TokenBracket, ")"},
			},
		},
		{
			name: "trailing-digits",
			src:  "x2 + 1e2",
			want: []lexWant{{TokenVariable, "x2"}, {TokenOperator, "+"}, {TokenNumber, "1e2"}},
		},
		{
			name: "unicode-ops",
			src:  "a × b ÷ c",
			want: []lexWant{
				{TokenVariable, "a"}, {TokenOperator, "×"}, {TokenVariable, "b"},
				{TokenOperator, "÷"}, {TokenVariable, "c"},
			},
		},
		{
			name: "digit-then-letters",
			src:  "2elephant",
			want: []lexWant{{TokenNumber, "2"}, {TokenVariable, "elephant"}},
		},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			toks := lexAll(t, c.src)
			got := make([]lexWant, len(toks))
			for i, tok := range toks {
				got[i] = lexWant{tok.Kind, tok.Text}
			}
			if diff, equal := messagediff.PrettyDiff(c.want, got); !equal {
				t.Errorf("wrong tokens for %q:\n%s", c.src, diff)
			}
		})
	}
}

func TestLexMeta(t *testing.T) {
	toks := lexAll(t, "max(a, 1,5)")
	if !toks[1].Opening {
		t.Errorf("token %v not marked opening", toks[1])
	}
	if toks[5].Opening {
		t.Errorf("token %v marked opening", toks[5])
	}
	cols := []int{1, 4, 5, 6, 8, 11}
	for i, tok := range toks {
		if tok.Col != cols[i] {
			t.Errorf("token %v at column %d, want %d", tok, tok.Col, cols[i])
		}
	}
	num := toks[4]
	if num.Kind != TokenNumber || num.Text != "1,5" {
		t.Fatalf("token %v, want a number with text 1,5", num)
	}
	if got := num.Child("fraction"); got == nil || got.Text != "5" {
		t.Errorf("number children %v missing fraction 5", num.Children)
	}
}
